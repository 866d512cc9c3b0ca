package vibrant

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/rivo/uniseg"
)

// Unit is the granularity in which the colorizer addresses text.
type Unit int

const (
	// UnitRune addresses single Unicode code points.
	UnitRune Unit = iota
	// UnitGrapheme addresses extended grapheme clusters, i.e. what a reader
	// perceives as one character, e.g. "e" followed by a combining accent.
	UnitGrapheme
)

func (u Unit) String() string {
	switch u {
	case UnitRune:
		return "rune"
	case UnitGrapheme:
		return "grapheme"
	}
	return fmt.Sprintf("Unit(%d)", int(u))
}

func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(s) {
	case "rune", "char", "":
		return UnitRune, nil
	case "grapheme":
		return UnitGrapheme, nil
	}
	return UnitRune, fmt.Errorf("unknown unit '%s'", s)
}

func (u Unit) MarshalText() ([]byte, error) { return []byte(u.String()), nil }

func (u *Unit) UnmarshalText(text []byte) (err error) {
	*u, err = ParseUnit(string(text))
	return err
}

// Set implements the flag value interface used by the CLI.
func (u *Unit) Set(s string) error { return u.UnmarshalText([]byte(s)) }

// Type implements the flag value interface used by the CLI.
func (u *Unit) Type() string { return "unit" }

// unitLens returns the length in runes of each unit of text.
func (u Unit) unitLens(text string) []int {
	if u != UnitGrapheme {
		res := make([]int, runeLen(text))
		for i := range res {
			res[i] = 1
		}
		return res
	}
	var res []int
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		res = append(res, len(g.Runes()))
	}
	return res
}

// Colorizer colors every occurrence of the letters of a color table. Each
// unit of text is isolated into a run of its own; runs whose text is in the
// table get the table's color.
type Colorizer struct {
	// Letters to color; nil colors nothing.
	Table *ColorTable
	Unit  Unit
	// Merge adjacent runs with equal style after a paragraph is done.
	Coalesce bool
	// Log receives progress messages. Nil disables logging.
	Log *slog.Logger
}

// ParagraphReport counts what the colorizer did to one paragraph.
type ParagraphReport struct {
	Units   int
	Colored int
	Letters map[string]int
}

func (r *ParagraphReport) add(letter string) {
	r.Colored++
	if r.Letters == nil {
		r.Letters = make(map[string]int)
	}
	r.Letters[letter]++
}

// Report sums up the colorizing of a document.
type Report struct {
	Paragraphs int
	Units      int
	Colored    int
	Letters    map[string]int
	Elapsed    time.Duration
}

func (r *Report) add(pr ParagraphReport) {
	r.Paragraphs++
	r.Units += pr.Units
	r.Colored += pr.Colored
	for l, n := range pr.Letters {
		if r.Letters == nil {
			r.Letters = make(map[string]int)
		}
		r.Letters[l] += n
	}
}

// Paragraph colors the letters in p. The sweep starts at offset 0 and
// isolates one unit after the other.
func (c *Colorizer) Paragraph(p *Paragraph) (rep ParagraphReport, err error) {
	start := 0
	for _, n := range c.Unit.unitLens(p.Text()) {
		run, err := p.Isolate(start, start+n)
		if err != nil {
			return rep, err
		}
		start += n
		rep.Units++
		letter := p.RunText(run)
		if rgb, ok := c.Table.Lookup(letter); ok {
			s := p.Style(run)
			s.Color = &rgb
			p.SetStyle(run, s)
			rep.add(letter)
		}
	}
	if c.Coalesce {
		p.Coalesce()
	}
	return rep, nil
}

// Document colors all paragraphs of doc. It stops at the first error or when
// ctx is done; doc may then be partially colored.
func (c *Colorizer) Document(ctx context.Context, doc *Document) (rep Report, err error) {
	t0 := time.Now()
	log := c.Log
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	log.Info("colorizing",
		"document", doc.Name,
		"paragraphs", doc.NumParagraphs(),
		"letters", c.Table.Len(),
		"unit", c.Unit,
	)
	err = doc.EachParagraph(func(i int, p *Paragraph) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		pr, err := c.Paragraph(p)
		if err != nil {
			return fmt.Errorf("paragraph %d: %w", i, err)
		}
		log.Debug("paragraph done", "index", i, "units", pr.Units, "colored", pr.Colored)
		rep.add(pr)
		return nil
	})
	rep.Elapsed = time.Since(t0)
	if err != nil {
		return rep, err
	}
	log.Info("colorized",
		"document", doc.Name,
		"units", rep.Units,
		"colored", rep.Colored,
		"elapsed", rep.Elapsed,
	)
	return rep, nil
}

// FontReplacement overwrites font name and size of every run.
type FontReplacement struct {
	// Font name; empty leaves the name unchanged.
	Name string
	// Size in points; 0 leaves the size unchanged.
	Size Pt
}

// Apply overwrites the fonts in doc and returns the number of runs changed.
func (fr FontReplacement) Apply(doc *Document) (runs int) {
	if fr.Name == "" && fr.Size <= 0 {
		return 0
	}
	doc.EachParagraph(func(_ int, p *Paragraph) error {
		for id := p.First(); id != NoRun; id = p.Next(id) {
			s := p.Style(id)
			if fr.Name != "" {
				s.Font = fr.Name
			}
			if fr.Size > 0 {
				s.Size = fr.Size
			}
			p.SetStyle(id, s)
			runs++
		}
		return nil
	})
	return runs
}
