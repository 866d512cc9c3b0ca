package vibrantest

import (
	"strings"
	"testing"

	"github.com/fractalqb/vibrant"
	"github.com/google/go-cmp/cmp"
)

// Plain returns a span without style.
func Plain(text string) vibrant.Span { return vibrant.Span{Text: text} }

func Bold(text string) vibrant.Span {
	return vibrant.Span{Text: text, Style: vibrant.Style{Bold: vibrant.Flag(true)}}
}

func Italic(text string) vibrant.Span {
	return vibrant.Span{Text: text, Style: vibrant.Style{Italic: vibrant.Flag(true)}}
}

// Colored returns a span with text color c.
func Colored(text string, c vibrant.RGB) vibrant.Span {
	return vibrant.Span{Text: text, Style: vibrant.Style{Color: &c}}
}

// Texts returns the texts of all runs of p in order.
func Texts(p *vibrant.Paragraph) []string {
	var res []string
	for id := p.First(); id != vibrant.NoRun; id = p.Next(id) {
		res = append(res, p.RunText(id))
	}
	return res
}

// CheckParagraph reports an error for each broken invariant of p: the runs
// must hold text, concatenate to want and be consistently linked.
func CheckParagraph(t testing.TB, p *vibrant.Paragraph, want string) bool {
	t.Helper()
	ok := true
	var (
		sb    strings.Builder
		prev  = vibrant.NoRun
		nruns int
	)
	for id := p.First(); id != vibrant.NoRun; id = p.Next(id) {
		if !p.Valid(id) {
			t.Errorf("run %d in sequence is not valid", id)
			return false
		}
		if p.Prev(id) != prev {
			t.Errorf("run %d: prev is %d, want %d", id, p.Prev(id), prev)
			ok = false
		}
		txt := p.RunText(id)
		if txt == "" {
			t.Errorf("run %d is empty", id)
			ok = false
		}
		sb.WriteString(txt)
		prev = id
		nruns++
	}
	if p.Last() != prev {
		t.Errorf("last run is %d, want %d", p.Last(), prev)
		ok = false
	}
	if nruns != p.NumRuns() {
		t.Errorf("counted %d runs, paragraph reports %d", nruns, p.NumRuns())
		ok = false
	}
	if diff := cmp.Diff(want, sb.String()); diff != "" {
		t.Errorf("paragraph text (-want +got):\n%s", diff)
		ok = false
	}
	if n := len([]rune(want)); p.Len() != n {
		t.Errorf("paragraph length is %d, want %d", p.Len(), n)
		ok = false
	}
	return ok
}
