package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/fractalqb/vibrant"
)

// Config is read from a TOML file. Command line flags override it.
type Config struct {
	BooksDir string       `toml:"books_dir"`
	Colors   string       `toml:"colors"`
	Suffix   string       `toml:"suffix"`
	Unit     vibrant.Unit `toml:"unit"`
	Coalesce bool         `toml:"coalesce"`
	Font     FontConfig   `toml:"font"`
}

type FontConfig struct {
	// Replace fonts without asking.
	Enabled bool    `toml:"enabled"`
	Name    string  `toml:"name"`
	Size    float64 `toml:"size"`
}

func (fc FontConfig) Replacement() vibrant.FontReplacement {
	return vibrant.FontReplacement{Name: fc.Name, Size: vibrant.Pt(fc.Size)}
}

const DefaultSuffix = "_vibrant_vowels"

func DefaultConfig() Config {
	return Config{
		BooksDir: "books",
		Colors:   filepath.Join("colors", "vibrant_vowels_colors.csv"),
		Suffix:   DefaultSuffix,
		Unit:     vibrant.UnitRune,
	}
}

// ReadConfig reads TOML from r into cfg. Keys missing in r leave cfg
// unchanged; unknown keys are an error.
func ReadConfig(r io.Reader, cfg *Config) error {
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return err
	}
	if cfg.Font.Size < 0 {
		return fmt.Errorf("negative font size %g", cfg.Font.Size)
	}
	return nil
}

// LoadConfig returns the default configuration updated from file. An empty
// file name yields the defaults.
func LoadConfig(file string) (Config, error) {
	cfg := DefaultConfig()
	if file == "" {
		return cfg, nil
	}
	r, err := os.Open(file)
	if err != nil {
		return cfg, err
	}
	defer r.Close()
	if err := ReadConfig(r, &cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", file, err)
	}
	return cfg, nil
}
