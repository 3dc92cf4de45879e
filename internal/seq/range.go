package seq

import "fmt"

// Range is a closed, 1-based interval [Begin, End]. A range whose Begin is
// below 1 or whose End precedes Begin is empty; the zero value is empty.
type Range struct {
	Begin int `json:"begin"`
	End   int `json:"end"`
}

// NewRange returns the range [begin, end].
func NewRange(begin, end int) Range {
	return Range{Begin: begin, End: end}
}

// IsEmpty reports whether r covers no positions.
func (r Range) IsEmpty() bool {
	return r.Begin < 1 || r.End < r.Begin
}

// Len returns the number of positions covered by r.
func (r Range) Len() int {
	if r.IsEmpty() {
		return 0
	}
	return r.End - r.Begin + 1
}

// Contains reports whether pos lies inside r.
func (r Range) Contains(pos int) bool {
	return !r.IsEmpty() && pos >= r.Begin && pos <= r.End
}

// Normalized returns r with Begin and End swapped if they are reversed.
func (r Range) Normalized() Range {
	if r.End < r.Begin {
		return Range{Begin: r.End, End: r.Begin}
	}
	return r
}

func (r Range) String() string {
	return fmt.Sprintf("%d..%d", r.Begin, r.End)
}
