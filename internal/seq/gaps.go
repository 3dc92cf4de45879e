package seq

import "fmt"

// GapsBetween returns the number of gaps inside r.
func (b *Buffer) GapsBetween(r Range) int {
	if r.IsEmpty() {
		return 0
	}
	b.checkRange(r)
	return CountGaps(b.data[r.Begin-1 : r.End])
}

// NonGapsBetween returns the number of non-gap bytes inside r.
func (b *Buffer) NonGapsBetween(r Range) int {
	return r.Len() - b.GapsBetween(r)
}

// GapsLeftOf returns the length of the gap run that ends immediately
// before pos. pos may be Len()+1.
func (b *Buffer) GapsLeftOf(pos int) int {
	b.checkInsertPos(pos)
	n := 0
	for i := pos - 2; i >= 0 && IsGap(b.data[i]); i-- {
		n++
	}
	return n
}

// GapsRightOf returns the length of the gap run that starts immediately
// after pos. pos may be 0.
func (b *Buffer) GapsRightOf(pos int) int {
	if pos < 0 || pos > len(b.data) {
		panic(fmt.Sprintf("seq: position %d out of range [0, %d]", pos, len(b.data)))
	}
	n := 0
	for i := pos; i < len(b.data) && IsGap(b.data[i]); i++ {
		n++
	}
	return n
}

// HeadGaps returns the number of gaps before the first non-gap byte.
func (b *Buffer) HeadGaps() int {
	return b.GapsRightOf(0)
}

// TailGaps returns the number of gaps after the last non-gap byte.
func (b *Buffer) TailGaps() int {
	return b.GapsLeftOf(len(b.data) + 1)
}

// HasGaps reports whether any byte is a gap.
func (b *Buffer) HasGaps() bool {
	for _, c := range b.data {
		if IsGap(c) {
			return true
		}
	}
	return false
}

// HasNonGaps reports whether any byte is not a gap.
func (b *Buffer) HasNonGaps() bool {
	for _, c := range b.data {
		if !IsGap(c) {
			return true
		}
	}
	return false
}

// UngappedLength returns the number of non-gap bytes.
func (b *Buffer) UngappedLength() int {
	return len(b.data) - CountGaps(b.data)
}

// FirstNonGap returns the position of the first non-gap byte, or -1.
func (b *Buffer) FirstNonGap() int {
	for i, c := range b.data {
		if !IsGap(c) {
			return i + 1
		}
	}
	return -1
}

// LastNonGap returns the position of the last non-gap byte, or -1.
func (b *Buffer) LastNonGap() int {
	for i := len(b.data) - 1; i >= 0; i-- {
		if !IsGap(b.data[i]) {
			return i + 1
		}
	}
	return -1
}

// LeftSlidablePositions returns how far r may slide to the left. A range
// holding residues is limited by the gap run directly to its left; an
// all-gap range may travel to the start of the buffer.
func (b *Buffer) LeftSlidablePositions(r Range) int {
	b.checkRange(r)
	if b.GapsBetween(r) == r.Len() {
		return r.Begin - 1
	}
	return b.GapsLeftOf(r.Begin)
}

// RightSlidablePositions is the mirror image of LeftSlidablePositions.
func (b *Buffer) RightSlidablePositions(r Range) int {
	b.checkRange(r)
	if b.GapsBetween(r) == r.Len() {
		return len(b.data) - r.End
	}
	return b.GapsRightOf(r.End)
}

// Slide moves the bytes in r by delta positions (negative is leftward),
// swapping them with the bytes they pass over. The move is clamped to the
// slidable positions on that side, so the order of non-gap bytes never
// changes. It returns the number of positions actually moved.
func (b *Buffer) Slide(r Range, delta int) int {
	b.checkRange(r)
	if delta == 0 {
		return 0
	}

	var n int
	if delta < 0 {
		n = min(-delta, b.LeftSlidablePositions(r))
	} else {
		n = min(delta, b.RightSlidablePositions(r))
	}
	if n == 0 {
		return 0
	}

	// Short moves stay on the stack.
	var stack [64]byte
	var scratch []byte
	if n <= len(stack) {
		scratch = stack[:n]
	} else {
		scratch = make([]byte, n)
	}

	begin, end := r.Begin-1, r.End
	if delta < 0 {
		copy(scratch, b.data[begin-n:begin])
		copy(b.data[begin-n:], b.data[begin:end])
		copy(b.data[end-n:end], scratch)
	} else {
		copy(scratch, b.data[end:end+n])
		copy(b.data[begin+n:end+n], b.data[begin:end])
		copy(b.data[begin:begin+n], scratch)
	}
	return n
}

// CollapseLeft packs the non-gap bytes inside r against its left edge,
// keeping their order, and moves the displaced gaps to the right. It
// returns the span that changed, or an empty Range when nothing moved.
func (b *Buffer) CollapseLeft(r Range) Range {
	affected := b.collapseLeftRange(r)
	if affected.IsEmpty() {
		return Range{}
	}
	b.partition(affected, false)
	return affected
}

// CollapseRight packs the non-gap bytes inside r against its right edge.
func (b *Buffer) CollapseRight(r Range) Range {
	affected := b.collapseRightRange(r)
	if affected.IsEmpty() {
		return Range{}
	}
	b.partition(affected, true)
	return affected
}

// CanCollapseLeft reports whether CollapseLeft(r) would change anything.
func (b *Buffer) CanCollapseLeft(r Range) bool {
	return !b.collapseLeftRange(r).IsEmpty()
}

// CanCollapseRight reports whether CollapseRight(r) would change anything.
func (b *Buffer) CanCollapseRight(r Range) bool {
	return !b.collapseRightRange(r).IsEmpty()
}

// collapseLeftRange spans from the first gap that has a residue after it to
// the last residue in r.
func (b *Buffer) collapseLeftRange(r Range) Range {
	b.checkRange(r)
	last := -1
	for i := r.End - 1; i >= r.Begin-1; i-- {
		if !IsGap(b.data[i]) {
			last = i
			break
		}
	}
	if last < 0 {
		return Range{}
	}
	for i := r.Begin - 1; i < last; i++ {
		if IsGap(b.data[i]) {
			return Range{Begin: i + 1, End: last + 1}
		}
	}
	return Range{}
}

// collapseRightRange spans from the first residue in r to the last gap that
// has a residue before it.
func (b *Buffer) collapseRightRange(r Range) Range {
	b.checkRange(r)
	first := -1
	for i := r.Begin - 1; i < r.End; i++ {
		if !IsGap(b.data[i]) {
			first = i
			break
		}
	}
	if first < 0 {
		return Range{}
	}
	for i := r.End - 1; i > first; i-- {
		if IsGap(b.data[i]) {
			return Range{Begin: first + 1, End: i + 1}
		}
	}
	return Range{}
}

// partition stably separates the gaps from the residues inside r. Residues
// go first unless gapsFirst is set. The gap bytes keep their own order, so
// mixed gap characters survive a collapse unchanged.
func (b *Buffer) partition(r Range, gapsFirst bool) {
	span := b.data[r.Begin-1 : r.End]
	gaps := make([]byte, 0, len(span))
	w := 0
	for _, c := range span {
		if IsGap(c) {
			gaps = append(gaps, c)
		} else {
			span[w] = c
			w++
		}
	}
	if !gapsFirst {
		copy(span[w:], gaps)
		return
	}
	residues := w
	copy(span[len(gaps):], span[:residues])
	copy(span, gaps)
}
