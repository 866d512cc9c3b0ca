package vibrant

import (
	"io"

	"github.com/muesli/termenv"
)

// WritePreview renders doc for a terminal with the given color profile, one
// line per paragraph. Colors, bold, italic and underline are rendered; fonts
// and sizes cannot be shown on a terminal and are ignored.
func WritePreview(w io.Writer, doc *Document, profile termenv.Profile) error {
	out := termenv.NewOutput(w, termenv.WithProfile(profile))
	return doc.EachParagraph(func(_ int, p *Paragraph) error {
		for id := p.First(); id != NoRun; id = p.Next(id) {
			text := p.RunText(id)
			if profile != termenv.Ascii {
				text = previewRun(out, text, p.Style(id))
			}
			if _, err := io.WriteString(w, text); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "\n")
		return err
	})
}

func previewRun(out *termenv.Output, text string, s Style) string {
	if s.Color == nil && !isSet(s.Bold) && !isSet(s.Italic) && !isSet(s.Underline) {
		return text
	}
	ts := out.String(text)
	if s.Color != nil {
		ts = ts.Foreground(out.Color(s.Color.String()))
	}
	if isSet(s.Bold) {
		ts = ts.Bold()
	}
	if isSet(s.Italic) {
		ts = ts.Italic()
	}
	if isSet(s.Underline) {
		ts = ts.Underline()
	}
	return ts.String()
}

func isSet(f *bool) bool { return f != nil && *f }
