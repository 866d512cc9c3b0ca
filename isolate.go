package vibrant

import "slices"

// absorption describes how much of a following run is taken over.
type absorption struct {
	id    RunID
	n     int
	whole bool
}

// isolation is the restructuring needed to make one run hold exactly the
// requested range. It is computed without touching the paragraph.
type isolation struct {
	run RunID
	// Characters of run before the range; split off into a new run.
	prefix int
	// Offset, relative to the end of the prefix, where a suffix is split
	// off. Zero means no suffix split.
	suffix int
	absorb []absorption
	// Text of all runs touched by the plan, in order.
	window []rune
}

// Isolate restructures the runs of p such that the characters [start, end)
// form exactly one run and returns that run. The paragraph text and the
// style of every character stay unchanged; a run merged from several runs
// gets the style of the run containing start.
//
// If [start, end) already is the span of a run, that run is returned and
// nothing changes. start and end are character offsets in slice notation,
// e.g. the first three characters are (0, 3).
//
// Offsets are always resolved against the current runs, so offsets
// computed from the paragraph text stay valid across calls. Empty runs, as
// the primitives may create them, are removed.
func (p *Paragraph) Isolate(start, end int) (RunID, error) {
	if err := checkRange(start, end, p.nchars); err != nil {
		return NoRun, err
	}
	p.dropEmpty()
	plan, err := p.planIsolation(start, end)
	if err != nil {
		return NoRun, err
	}
	return p.commit(plan)
}

func (p *Paragraph) dropEmpty() {
	for id := p.first; id != NoRun; {
		next := p.recs[id].next
		if len(p.recs[id].text) == 0 {
			p.Remove(id)
		}
		id = next
	}
}

// locate finds the run containing character offset off and returns it
// together with off relative to the run's start.
func (p *Paragraph) locate(off int) (RunID, int) {
	skipped := 0
	for id := p.first; id != NoRun; id = p.recs[id].next {
		l := len(p.recs[id].text)
		if off < skipped+l {
			return id, off - skipped
		}
		skipped += l
	}
	return NoRun, 0
}

func (p *Paragraph) planIsolation(start, end int) (*isolation, error) {
	r, rstart := p.locate(start)
	if r == NoRun {
		return nil, StructuralInvariantError{
			Op:   "locate",
			Want: "run containing start",
			Have: p.Text(),
		}
	}
	plan := &isolation{run: r, prefix: rstart}
	rend := end - start // relative to the end of the prefix
	text := p.recs[r].text
	plan.window = slices.Clone(text)
	switch avail := len(text) - rstart; {
	case avail > rend:
		plan.suffix = rend
	case avail < rend:
		need := rend - avail
		for next := p.recs[r].next; need > 0; next = p.recs[next].next {
			if next == NoRun {
				return nil, StructuralInvariantError{
					Op:   "lengthen",
					Want: "following run",
					Have: string(plan.window),
				}
			}
			ntxt := p.recs[next].text
			plan.window = append(plan.window, ntxt...)
			if len(ntxt) <= need {
				plan.absorb = append(plan.absorb, absorption{id: next, n: len(ntxt), whole: true})
				need -= len(ntxt)
			} else {
				plan.absorb = append(plan.absorb, absorption{id: next, n: need})
				need = 0
			}
		}
	}
	return plan, nil
}

func (p *Paragraph) commit(plan *isolation) (RunID, error) {
	r := plan.run
	first, last := r, r
	if plan.prefix > 0 {
		text := p.recs[r].text
		first = p.insertBefore(r,
			slices.Clone(text[:plan.prefix]),
			p.recs[r].style.Clone(),
		)
		p.setText(r, slices.Clone(text[plan.prefix:]))
	}
	if plan.suffix > 0 {
		text := p.recs[r].text
		last = p.insertAfter(r,
			slices.Clone(text[plan.suffix:]),
			p.recs[r].style.Clone(),
		)
		p.setText(r, slices.Clone(text[:plan.suffix]))
	}
	for _, a := range plan.absorb {
		text := slices.Clip(p.recs[r].text)
		if a.whole {
			text = append(text, p.recs[a.id].text...)
			p.Remove(a.id)
			p.setText(r, text)
			continue
		}
		ntxt := p.recs[a.id].text
		text = append(text, ntxt[:a.n]...)
		p.setText(a.id, slices.Clone(ntxt[a.n:]))
		p.setText(r, text)
		last = a.id
	}
	if err := p.verifyWindow(plan, first, last); err != nil {
		return NoRun, err
	}
	return r, nil
}

// verifyWindow checks that the runs first…last hold exactly the text the
// plan captured and that none of them is empty.
func (p *Paragraph) verifyWindow(plan *isolation, first, last RunID) error {
	var have []rune
	for id := first; ; id = p.recs[id].next {
		text := p.recs[id].text
		if len(text) == 0 {
			return StructuralInvariantError{
				Op:   "isolate",
				Want: string(plan.window),
				Have: string(append(have, []rune("<empty run>")...)),
			}
		}
		have = append(have, text...)
		if id == last {
			break
		}
		if p.recs[id].next == NoRun {
			return StructuralInvariantError{
				Op:   "isolate",
				Want: string(plan.window),
				Have: string(have),
			}
		}
	}
	if !slices.Equal(have, plan.window) {
		return StructuralInvariantError{
			Op:   "isolate",
			Want: string(plan.window),
			Have: string(have),
		}
	}
	return nil
}
