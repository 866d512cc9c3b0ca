package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/fractalqb/vibrant"
)

func init() {
	flags := colorCmd.Flags()
	flags.StringVarP(&colorCmd.dir, "dir", "d", "",
		"Directory of the books")
	flags.StringVarP(&colorCmd.colors, "colors", "c", "",
		"CSV color table with columns letter, r, g and b")
	flags.StringVarP(&colorCmd.suffix, "suffix", "s", "",
		"Suffix of the colored book's name")
	flags.Var(&colorCmd.unit, "unit",
		"Colorize each 'rune' or each 'grapheme'")
	flags.BoolVar(&colorCmd.coalesce, "coalesce", false,
		"Merge neighbouring runs of equal style")
	flags.StringVar(&colorCmd.font, "font", "",
		"Replace all fonts by this one")
	flags.Float64Var(&colorCmd.size, "size", 0,
		"Replace all font sizes by this one")
	flags.BoolVar(&colorCmd.askFont, "ask-font", false,
		"Ask whether to replace fonts")
	colorCmd.RunE = colorBook
	rootCmd.AddCommand(&colorCmd.Command)
}

type colorCommand struct {
	cobra.Command
	dir, colors, suffix string
	unit                vibrant.Unit
	coalesce            bool
	font                string
	size                float64
	askFont             bool
}

var colorCmd = colorCommand{
	Command: cobra.Command{
		Use:   "color [book]",
		Short: "Color the letters of a book from the color table",
		Long: `Color reads <dir>/<book>.yaml, colors every letter found in the
color table and saves the result as <dir>/<book><suffix>.yaml. The book's
name is asked for if it is not given. Nothing is saved if anything fails.`,
		Args: cobra.MaximumNArgs(1),
	},
}

// settings returns the configuration overridden by the flags given.
func (cc *colorCommand) settings(cfg Config) Config {
	flags := cc.Flags()
	if flags.Changed("dir") {
		cfg.BooksDir = cc.dir
	}
	if flags.Changed("colors") {
		cfg.Colors = cc.colors
	}
	if flags.Changed("suffix") {
		cfg.Suffix = cc.suffix
	}
	if flags.Changed("unit") {
		cfg.Unit = cc.unit
	}
	if flags.Changed("coalesce") {
		cfg.Coalesce = cc.coalesce
	}
	if flags.Changed("font") {
		cfg.Font.Enabled = true
		cfg.Font.Name = cc.font
	}
	if flags.Changed("size") {
		cfg.Font.Enabled = true
		cfg.Font.Size = cc.size
	}
	return cfg
}

func colorBook(cmd *cobra.Command, args []string) error {
	log := rootCmd.log
	cfg := colorCmd.settings(rootCmd.cfg)
	ask := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout())

	var book string
	if len(args) > 0 {
		book = args[0]
	} else {
		var err error
		if book, err = ask.book(); err != nil {
			return err
		}
	}
	fonts := cfg.Font.Replacement()
	if !cfg.Font.Enabled {
		fonts = vibrant.FontReplacement{}
	}
	if colorCmd.askFont {
		var err error
		if fonts, err = ask.font(); err != nil {
			return err
		}
	}

	table, err := vibrant.LoadColorTable(cfg.Colors)
	if err != nil {
		return err
	}
	log.Debug("color table", "file", cfg.Colors, "letters", table.Letters())
	doc, err := vibrant.LoadDocument(vibrant.InputFile(cfg.BooksDir, book))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	clr := vibrant.Colorizer{
		Table:    table,
		Unit:     cfg.Unit,
		Coalesce: cfg.Coalesce,
		Log:      log,
	}
	rep, err := clr.Document(ctx, doc)
	if err != nil {
		return err
	}
	for _, l := range table.Letters() {
		log.Info("letter", "letter", l, "count", rep.Letters[l])
	}
	if n := fonts.Apply(doc); n > 0 {
		log.Info("font replaced", "name", fonts.Name, "size", fonts.Size, "runs", n)
	}

	out := vibrant.OutputFile(cfg.BooksDir, book, cfg.Suffix)
	doc.Name = book + cfg.Suffix
	if err := doc.Save(out); err != nil {
		return err
	}
	log.Info("saved", "file", out, "elapsed", rep.Elapsed)
	fmt.Fprintf(cmd.OutOrStdout(), "New book saved as %s\n", out)
	return nil
}
