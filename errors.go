package vibrant

import "fmt"

// Bounds named by InvalidRangeError.
const (
	BoundStart = "start >= 0"
	BoundOrder = "start < end"
	BoundEnd   = "end <= len"
)

// InvalidRangeError reports an offset range that violates
// 0 <= Start < End <= Len. The paragraph is left untouched.
type InvalidRangeError struct {
	Start, End int
	Len        int
	// The violated bound, one of BoundStart, BoundOrder, BoundEnd.
	Bound string
}

func (e InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid range [%d:%d) in paragraph of length %d: violates %s",
		e.Start, e.End, e.Len,
		e.Bound,
	)
}

func checkRange(start, end, length int) error {
	switch {
	case start < 0:
		return InvalidRangeError{Start: start, End: end, Len: length, Bound: BoundStart}
	case start >= end:
		return InvalidRangeError{Start: start, End: end, Len: length, Bound: BoundOrder}
	case end > length:
		return InvalidRangeError{Start: start, End: end, Len: length, Bound: BoundEnd}
	}
	return nil
}

// StructuralInvariantError is returned when restructuring runs would change
// the paragraph text or leave an empty run. It indicates a bug.
type StructuralInvariantError struct {
	Op         string
	Want, Have string
}

func (e StructuralInvariantError) Error() string {
	return fmt.Sprintf("%s: broken run structure: want %q, have %q", e.Op, e.Want, e.Have)
}

// TableError is a color table error at a line of the CSV input.
type TableError struct {
	Line int
	err  error
}

func (e TableError) Error() string {
	return fmt.Sprintf("color table %d:%s", e.Line, e.err)
}

func (e TableError) Unwrap() error { return e.err }

// DocumentError locates an error in a document file. Para and Run are
// 0-based; Run is -1 if the error is not about a specific run.
type DocumentError struct {
	Para, Run int
	err       error
}

func (e DocumentError) Error() string {
	if e.Run < 0 {
		return fmt.Sprintf("paragraph %d:%s", e.Para, e.err)
	}
	return fmt.Sprintf("paragraph %d run %d:%s", e.Para, e.Run, e.err)
}

func (e DocumentError) Unwrap() error { return e.err }
