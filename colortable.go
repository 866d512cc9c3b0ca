package vibrant

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// Column names of a color table file.
const (
	ColLetter = "letter"
	ColRed    = "r"
	ColGreen  = "g"
	ColBlue   = "b"
)

// ColorTable maps letters to colors. Letters are case-sensitive. A nil
// table is empty.
type ColorTable struct {
	letters []string
	colors  map[string]RGB
}

// Set maps letter to c. Setting a letter twice replaces the color but keeps
// the letter's position.
func (ct *ColorTable) Set(letter string, c RGB) {
	if ct.colors == nil {
		ct.colors = make(map[string]RGB)
	}
	if _, ok := ct.colors[letter]; !ok {
		ct.letters = append(ct.letters, letter)
	}
	ct.colors[letter] = c
}

func (ct *ColorTable) Lookup(letter string) (RGB, bool) {
	if ct == nil {
		return RGB{}, false
	}
	c, ok := ct.colors[letter]
	return c, ok
}

// Letters returns the letters in the order they were first set.
func (ct *ColorTable) Letters() []string {
	if ct == nil {
		return nil
	}
	return ct.letters
}

func (ct *ColorTable) Len() int {
	if ct == nil {
		return 0
	}
	return len(ct.letters)
}

// ReadColorTable reads a CSV color table. The first record is the header
// and must name the columns "letter", "r", "g" and "b", in any order. Other
// columns are ignored. Color components are integers from 0 to 255. If a
// letter occurs more than once, the last color wins.
func ReadColorTable(r io.Reader) (*ColorTable, error) {
	crd := csv.NewReader(r)
	crd.FieldsPerRecord = -1
	crd.TrimLeadingSpace = true
	hdr, err := crd.Read()
	switch {
	case errors.Is(err, io.EOF):
		return nil, TableError{Line: 1, err: errors.New("missing header")}
	case err != nil:
		return nil, TableError{Line: 1, err: err}
	}
	cols, err := tableColumns(hdr)
	if err != nil {
		return nil, TableError{Line: 1, err: err}
	}
	ct := new(ColorTable)
	for {
		rec, err := crd.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				return nil, TableError{Line: perr.Line, err: perr.Err}
			}
			return nil, TableError{err: err}
		}
		line, _ := crd.FieldPos(0)
		letter, c, err := cols.parse(rec)
		if err != nil {
			return nil, TableError{Line: line, err: err}
		}
		ct.Set(letter, c)
	}
	return ct, nil
}

func LoadColorTable(file string) (*ColorTable, error) {
	r, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	ct, err := ReadColorTable(r)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", file, err)
	}
	return ct, nil
}

type tableCols struct {
	letter, r, g, b int
}

func tableColumns(hdr []string) (cols tableCols, err error) {
	cols = tableCols{-1, -1, -1, -1}
	for i, h := range hdr {
		var col *int
		switch strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))) {
		case ColLetter:
			col = &cols.letter
		case ColRed:
			col = &cols.r
		case ColGreen:
			col = &cols.g
		case ColBlue:
			col = &cols.b
		default:
			continue
		}
		if *col >= 0 {
			return cols, fmt.Errorf("duplicate column '%s'", h)
		}
		*col = i
	}
	for _, c := range []struct {
		name string
		idx  int
	}{{ColLetter, cols.letter}, {ColRed, cols.r}, {ColGreen, cols.g}, {ColBlue, cols.b}} {
		if c.idx < 0 {
			return cols, fmt.Errorf("missing column '%s'", c.name)
		}
	}
	return cols, nil
}

func (cols tableCols) parse(rec []string) (letter string, c RGB, err error) {
	field := func(i int, name string) (string, error) {
		if i >= len(rec) {
			return "", fmt.Errorf("missing field '%s'", name)
		}
		return rec[i], nil
	}
	if letter, err = field(cols.letter, ColLetter); err != nil {
		return "", c, err
	}
	if letter == "" {
		return "", c, errors.New("empty letter")
	}
	comps := []struct {
		idx  int
		name string
		dst  *uint8
	}{{cols.r, ColRed, &c.R}, {cols.g, ColGreen, &c.G}, {cols.b, ColBlue, &c.B}}
	for _, comp := range comps {
		s, err := field(comp.idx, comp.name)
		if err != nil {
			return "", c, err
		}
		if *comp.dst, err = parseComponent(s); err != nil {
			return "", c, fmt.Errorf("column '%s': %w", comp.name, err)
		}
	}
	return letter, c, nil
}

func parseComponent(s string) (uint8, error) {
	s = strings.TrimSpace(s)
	if v, err := strconv.Atoi(s); err == nil {
		if v < 0 || v > 255 {
			return 0, fmt.Errorf("value %d out of range 0..255", v)
		}
		return uint8(v), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid value '%s'", s)
	}
	if f != math.Trunc(f) || f < 0 || f > 255 {
		return 0, fmt.Errorf("value %s is not an integer in 0..255", s)
	}
	return uint8(f), nil
}
