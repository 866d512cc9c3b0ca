package vibrant

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Pt is a font size in points.
type Pt float64

// RGB is a 24-bit color. Its text form is "#rrggbb".
type RGB struct {
	R, G, B uint8
}

func (c RGB) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseRGB parses a color in the form "#rrggbb" (the '#' is optional).
func ParseRGB(s string) (RGB, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return RGB{}, fmt.Errorf("invalid color '%s': need 6 hex digits", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid color '%s': %w", s, err)
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

func (c RGB) MarshalYAML() (any, error) { return c.String(), nil }

func (c *RGB) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return errors.New("color must be a scalar")
	}
	tmp, err := ParseRGB(n.Value)
	if err != nil {
		return err
	}
	*c = tmp
	return nil
}

// Style is the formatting state of a run. Zero values of its fields mean
// "inherited", i.e. the run does not set that attribute itself.
type Style struct {
	Font      string `yaml:"font,omitempty"`
	Size      Pt     `yaml:"size,omitempty"`
	Color     *RGB   `yaml:"color,omitempty"`
	Bold      *bool  `yaml:"bold,omitempty"`
	Italic    *bool  `yaml:"italic,omitempty"`
	Underline *bool  `yaml:"underline,omitempty"`
}

// Flag returns a pointer to b for use with the optional flags of Style.
func Flag(b bool) *bool { return &b }

// Clone returns a deep copy of s.
func (s Style) Clone() Style {
	res := s
	if s.Color != nil {
		c := *s.Color
		res.Color = &c
	}
	res.Bold = cloneFlag(s.Bold)
	res.Italic = cloneFlag(s.Italic)
	res.Underline = cloneFlag(s.Underline)
	return res
}

func cloneFlag(f *bool) *bool {
	if f == nil {
		return nil
	}
	return Flag(*f)
}

// Equal reports whether s and o set the same attributes to the same values.
func (s Style) Equal(o Style) bool {
	if s.Font != o.Font || s.Size != o.Size {
		return false
	}
	switch {
	case s.Color == nil && o.Color != nil, s.Color != nil && o.Color == nil:
		return false
	case s.Color != nil && *s.Color != *o.Color:
		return false
	}
	return flagEqual(s.Bold, o.Bold) &&
		flagEqual(s.Italic, o.Italic) &&
		flagEqual(s.Underline, o.Underline)
}

func flagEqual(a, b *bool) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// IsZero reports whether s sets no attribute at all.
func (s Style) IsZero() bool { return s.Equal(Style{}) }

func (s Style) String() string {
	var sb strings.Builder
	add := func(k, v string) {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(k)
		sb.WriteByte('=')
		sb.WriteString(v)
	}
	if s.Font != "" {
		add("font", strconv.Quote(s.Font))
	}
	if s.Size != 0 {
		add("size", strconv.FormatFloat(float64(s.Size), 'g', -1, 64))
	}
	if s.Color != nil {
		add("color", s.Color.String())
	}
	if s.Bold != nil {
		add("bold", strconv.FormatBool(*s.Bold))
	}
	if s.Italic != nil {
		add("italic", strconv.FormatBool(*s.Italic))
	}
	if s.Underline != nil {
		add("underline", strconv.FormatBool(*s.Underline))
	}
	return "{" + sb.String() + "}"
}
