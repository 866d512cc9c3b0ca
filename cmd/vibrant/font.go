package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fractalqb/vibrant"
)

func init() {
	flags := fontCmd.Flags()
	flags.StringVarP(&fontCmd.dir, "dir", "d", "", "Directory of the books")
	flags.StringVarP(&fontCmd.name, "name", "n", "", "Font name")
	flags.Float64VarP(&fontCmd.size, "size", "s", 0, "Font size in points")
	fontCmd.RunE = fontBook
	rootCmd.AddCommand(&fontCmd.Command)
}

var fontCmd = struct {
	cobra.Command
	dir  string
	name string
	size float64
}{
	Command: cobra.Command{
		Use:   "font <book>",
		Short: "Replace the fonts of a book",
		Long: `Font sets font name and size of all text in <dir>/<book>.yaml.
Name and size default to the font section of the configuration.`,
		Args: cobra.ExactArgs(1),
	},
}

func fontBook(cmd *cobra.Command, args []string) error {
	cfg := rootCmd.cfg
	flags := cmd.Flags()
	if flags.Changed("dir") {
		cfg.BooksDir = fontCmd.dir
	}
	if flags.Changed("name") {
		cfg.Font.Name = fontCmd.name
	}
	if flags.Changed("size") {
		cfg.Font.Size = fontCmd.size
	}
	fonts := cfg.Font.Replacement()
	if fonts.Name == "" && fonts.Size <= 0 {
		return errors.New("neither font name nor size given")
	}
	file := vibrant.InputFile(cfg.BooksDir, args[0])
	doc, err := vibrant.LoadDocument(file)
	if err != nil {
		return err
	}
	n := fonts.Apply(doc)
	if err := doc.Save(file); err != nil {
		return err
	}
	rootCmd.log.Info("font replaced", "file", file, "name", fonts.Name, "size", fonts.Size, "runs", n)
	fmt.Fprintf(cmd.OutOrStdout(), "Changed font of %d runs in %s\n", n, file)
	return nil
}
