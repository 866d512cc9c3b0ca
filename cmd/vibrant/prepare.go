package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fractalqb/vibrant"
)

func init() {
	prepareCmd.RunE = prepareFiles
	prepareCmd.Flags().StringVarP(
		&prepareCmd.suffix,
		"suffix", "s",
		prepareCmd.suffix,
		"Set file suffix for created documents")
	prepareCmd.Flags().BoolVarP(
		&prepareCmd.force,
		"force", "f",
		prepareCmd.force,
		"Force to overwrite existing documents")
	rootCmd.AddCommand(&prepareCmd.Command)
}

var prepareCmd = struct {
	cobra.Command
	suffix string
	force  bool
}{
	Command: cobra.Command{
		Use:   "prepare [file...]",
		Short: "Prepare documents from plain text files",
		Long: `Prepare turns each line of a text file into a paragraph of a new
document. The document of book.txt is written to book.yaml. Without files
stdin is read and the document is written to stdout.`,
	},
	suffix: vibrant.DocExt,
	force:  false,
}

func prepareFiles(cmd *cobra.Command, files []string) error {
	if len(files) == 0 {
		return prepare("stdin", cmd.InOrStdin(), cmd.OutOrStdout())
	}
	for _, f := range files {
		if err := prepareFile(f); err != nil {
			return err
		}
	}
	return nil
}

func prepare(name string, rd io.Reader, wr io.Writer) error {
	doc, err := vibrant.Prepare{Name: name}.Text(rd)
	if err != nil {
		return err
	}
	return doc.Write(wr)
}

func preparedName(file, suffix string) string {
	return strings.TrimSuffix(file, filepath.Ext(file)) + suffix
}

func prepareFile(name string) error {
	docfile := preparedName(name, prepareCmd.suffix)
	if docfile == name {
		return fmt.Errorf("%s would overwrite itself", name)
	}
	if _, err := os.Stat(docfile); !os.IsNotExist(err) {
		if !prepareCmd.force {
			return fmt.Errorf("%s already exists", docfile)
		}
	}
	rd, err := os.Open(name)
	if err != nil {
		return err
	}
	defer rd.Close()
	base := filepath.Base(name)
	doc, err := vibrant.Prepare{Name: strings.TrimSuffix(base, filepath.Ext(base))}.Text(rd)
	if err != nil {
		return fmt.Errorf("%s:%w", name, err)
	}
	if err := doc.Save(docfile); err != nil {
		return err
	}
	rootCmd.log.Info("prepared", "text", name, "document", docfile, "paragraphs", doc.NumParagraphs())
	return nil
}
