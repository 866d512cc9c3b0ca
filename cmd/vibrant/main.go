// Command vibrant colors the letters of books with the colors of a color
// table, e.g. to give each vowel its own color.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&rootCmd.config, "config", "",
		"Read configuration from TOML file")
	flags.CountVarP(&rootCmd.verbose, "verbose", "v",
		"Log progress; give twice to log debug messages")
	flags.BoolVarP(&rootCmd.quiet, "quiet", "q", false,
		"Log errors only")
	rootCmd.PersistentPreRunE = setup
}

var rootCmd = struct {
	cobra.Command
	config  string
	verbose int
	quiet   bool

	cfg Config
	log *slog.Logger
}{
	Command: cobra.Command{
		Use:           "vibrant",
		Short:         "Color the letters of books",
		SilenceUsage:  true,
		SilenceErrors: true,
	},
}

func setup(cmd *cobra.Command, _ []string) (err error) {
	rootCmd.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: LevelFromFlags(rootCmd.verbose > 1, rootCmd.verbose > 0, rootCmd.quiet),
	}))
	if rootCmd.cfg, err = LoadConfig(rootCmd.config); err != nil {
		return err
	}
	rootCmd.log.Debug("configuration", "file", rootCmd.config, "config", rootCmd.cfg)
	return nil
}

// LevelFromFlags maps the verbosity flags to a log level. Without flags only
// warnings and errors are logged.
func LevelFromFlags(vv, v, q bool) slog.Level {
	switch {
	case vv:
		return slog.LevelDebug
	case v:
		return slog.LevelInfo
	case q:
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if rootCmd.log != nil {
			rootCmd.log.Error(err.Error())
		} else {
			fmt.Fprintln(os.Stderr, "vibrant:", err)
		}
		os.Exit(1)
	}
}
