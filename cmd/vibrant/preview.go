package main

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/fractalqb/vibrant"
)

func init() {
	previewCmd.Flags().StringVarP(&previewCmd.profile, "profile", "p", "",
		"Terminal colors: ascii, ansi, 256 or truecolor; detected if not set")
	previewCmd.RunE = previewFile
	rootCmd.AddCommand(&previewCmd.Command)
}

var previewCmd = struct {
	cobra.Command
	profile string
}{
	Command: cobra.Command{
		Use:   "preview <file>",
		Short: "Show a document on the terminal",
		Args:  cobra.ExactArgs(1),
	},
}

func parseProfile(s string) (termenv.Profile, error) {
	switch strings.ToLower(s) {
	case "ascii":
		return termenv.Ascii, nil
	case "ansi":
		return termenv.ANSI, nil
	case "256", "ansi256":
		return termenv.ANSI256, nil
	case "truecolor", "true":
		return termenv.TrueColor, nil
	}
	return termenv.Ascii, fmt.Errorf("unknown color profile '%s'", s)
}

func previewFile(cmd *cobra.Command, args []string) error {
	var profile termenv.Profile
	if previewCmd.profile == "" {
		profile = termenv.EnvColorProfile()
	} else {
		var err error
		if profile, err = parseProfile(previewCmd.profile); err != nil {
			return err
		}
	}
	doc, err := vibrant.LoadDocument(args[0])
	if err != nil {
		return err
	}
	return vibrant.WritePreview(cmd.OutOrStdout(), doc, profile)
}
