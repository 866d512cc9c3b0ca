package vibrant

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"git.fractalqb.de/fractalqb/icontainer/islist"
)

// RunID identifies a run within its paragraph. It stays valid until the
// run is removed. IDs of removed runs are never reused by the paragraph.
type RunID int

// NoRun is returned where no run exists, e.g. Next of the last run.
const NoRun RunID = -1

// Span is the value form of a run: text with one style.
type Span struct {
	Text  string `yaml:"text"`
	Style Style  `yaml:"style,omitempty"`
}

type runRec struct {
	text       []rune
	style      Style
	prev, next RunID
	dead       bool
}

// Paragraph is an ordered sequence of runs. The runs live in an arena owned
// by the paragraph and are linked by their IDs. The concatenated text of
// all runs is the paragraph text.
//
// A paragraph must not be used concurrently.
type Paragraph struct {
	recs        []runRec
	first, last RunID
	nruns       int
	nchars      int

	lsNext *Paragraph
}

// NewParagraph creates a paragraph with one run per non-empty span.
func NewParagraph(spans ...Span) *Paragraph {
	p := &Paragraph{first: NoRun, last: NoRun}
	for _, s := range spans {
		if s.Text != "" {
			p.Append(s.Text, s.Style)
		}
	}
	return p
}

// Len returns the number of characters (runes) in the paragraph.
func (p *Paragraph) Len() int { return p.nchars }

// NumRuns returns the number of runs in the paragraph.
func (p *Paragraph) NumRuns() int { return p.nruns }

// First returns the first run or NoRun if the paragraph is empty.
func (p *Paragraph) First() RunID { return p.first }

// Last returns the last run or NoRun if the paragraph is empty.
func (p *Paragraph) Last() RunID { return p.last }

// Valid reports whether id refers to a run that is currently part of p.
func (p *Paragraph) Valid(id RunID) bool {
	return id >= 0 && int(id) < len(p.recs) && !p.recs[id].dead
}

func (p *Paragraph) rec(id RunID) *runRec {
	if !p.Valid(id) {
		panic(fmt.Sprintf("vibrant: invalid run id %d", id))
	}
	return &p.recs[id]
}

func (p *Paragraph) Next(id RunID) RunID { return p.rec(id).next }

func (p *Paragraph) Prev(id RunID) RunID { return p.rec(id).prev }

func (p *Paragraph) RunText(id RunID) string { return string(p.rec(id).text) }

// RunLen returns the number of characters in run id.
func (p *Paragraph) RunLen(id RunID) int { return len(p.rec(id).text) }

// Style returns a copy of the style of run id. Use SetStyle to change it.
func (p *Paragraph) Style(id RunID) Style { return p.rec(id).style.Clone() }

func (p *Paragraph) SetStyle(id RunID, s Style) { p.rec(id).style = s }

// Offset returns the character offset at which run id starts.
func (p *Paragraph) Offset(id RunID) int {
	off := 0
	for r := p.rec(id).prev; r != NoRun; r = p.recs[r].prev {
		off += len(p.recs[r].text)
	}
	return off
}

// Text returns the paragraph's full text.
func (p *Paragraph) Text() string {
	var sb strings.Builder
	for id := p.first; id != NoRun; id = p.recs[id].next {
		for _, r := range p.recs[id].text {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// Runs returns the IDs of all runs in order.
func (p *Paragraph) Runs() []RunID {
	res := make([]RunID, 0, p.nruns)
	for id := p.first; id != NoRun; id = p.recs[id].next {
		res = append(res, id)
	}
	return res
}

// Spans returns a snapshot of all runs in order.
func (p *Paragraph) Spans() []Span {
	res := make([]Span, 0, p.nruns)
	for id := p.first; id != NoRun; id = p.recs[id].next {
		rec := &p.recs[id]
		res = append(res, Span{Text: string(rec.text), Style: rec.style.Clone()})
	}
	return res
}

// Append adds a run at the end of the paragraph.
func (p *Paragraph) Append(text string, s Style) RunID {
	if p.last == NoRun {
		id := p.alloc([]rune(text), s)
		p.first, p.last = id, id
		return id
	}
	return p.InsertAfter(p.last, text, s)
}

// InsertBefore inserts a new run immediately before run at.
func (p *Paragraph) InsertBefore(at RunID, text string, s Style) RunID {
	return p.insertBefore(at, []rune(text), s)
}

// InsertAfter inserts a new run immediately after run at.
func (p *Paragraph) InsertAfter(at RunID, text string, s Style) RunID {
	return p.insertAfter(at, []rune(text), s)
}

// Remove removes run id from the paragraph. Its ID becomes invalid.
func (p *Paragraph) Remove(id RunID) {
	rec := p.rec(id)
	if rec.prev == NoRun {
		p.first = rec.next
	} else {
		p.recs[rec.prev].next = rec.next
	}
	if rec.next == NoRun {
		p.last = rec.prev
	} else {
		p.recs[rec.next].prev = rec.prev
	}
	p.nchars -= len(rec.text)
	p.nruns--
	*rec = runRec{prev: NoRun, next: NoRun, dead: true}
}

// SetText replaces the text of run id. This changes the paragraph text.
// A run set to empty text stays until the next Isolate.
func (p *Paragraph) SetText(id RunID, text string) {
	p.setText(id, []rune(text))
}

func (p *Paragraph) setText(id RunID, text []rune) {
	rec := p.rec(id)
	p.nchars += len(text) - len(rec.text)
	rec.text = text
}

func (p *Paragraph) alloc(text []rune, s Style) RunID {
	id := RunID(len(p.recs))
	p.recs = append(p.recs, runRec{
		text:  text,
		style: s,
		prev:  NoRun,
		next:  NoRun,
	})
	p.nruns++
	p.nchars += len(text)
	return id
}

func (p *Paragraph) insertBefore(at RunID, text []rune, s Style) RunID {
	p.rec(at)
	id := p.alloc(text, s)
	rec, atRec := &p.recs[id], &p.recs[at]
	rec.prev, rec.next = atRec.prev, at
	if atRec.prev == NoRun {
		p.first = id
	} else {
		p.recs[atRec.prev].next = id
	}
	atRec.prev = id
	return id
}

func (p *Paragraph) insertAfter(at RunID, text []rune, s Style) RunID {
	p.rec(at)
	id := p.alloc(text, s)
	rec, atRec := &p.recs[id], &p.recs[at]
	rec.prev, rec.next = at, atRec.next
	if atRec.next == NoRun {
		p.last = id
	} else {
		p.recs[atRec.next].prev = id
	}
	atRec.next = id
	return id
}

// Coalesce merges adjacent runs with equal styles and returns the number of
// runs removed. The first run of each merged group keeps its ID.
func (p *Paragraph) Coalesce() (removed int) {
	id := p.first
	for id != NoRun {
		next := p.recs[id].next
		if next == NoRun {
			break
		}
		if !p.recs[id].style.Equal(p.recs[next].style) {
			id = next
			continue
		}
		merged := append(slices.Clip(p.recs[id].text), p.recs[next].text...)
		p.Remove(next)
		p.setText(id, merged)
		removed++
	}
	return removed
}

func (p *Paragraph) String() string {
	var sb strings.Builder
	for id := p.first; id != NoRun; id = p.recs[id].next {
		rec := &p.recs[id]
		fmt.Fprintf(&sb, "[%q %s]", string(rec.text), rec.style)
	}
	return sb.String()
}

// ListNext to implement intrusive singly linked list
func (p *Paragraph) ListNext() islist.Node {
	if p.lsNext == nil {
		return nil
	}
	return p.lsNext
}

// SetListNext to implement intrusive singly linked list
func (p *Paragraph) SetListNext(n islist.Node) {
	if n == nil {
		p.lsNext = nil
	} else {
		p.lsNext = n.(*Paragraph)
	}
}

func runeLen(s string) int { return utf8.RuneCountInString(s) }
