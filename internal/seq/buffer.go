package seq

import (
	"bytes"
	"fmt"
)

// Buffer is a growable byte sequence that may contain gap characters.
// It owns its storage; every mutating method works in place.
type Buffer struct {
	grammar Grammar
	data    []byte
}

// New creates a buffer holding a copy of s.
func New(s string, g Grammar) *Buffer {
	b := &Buffer{grammar: g}
	b.data = make([]byte, len(s), IdealCapacity(len(s)))
	copy(b.data, s)
	return b
}

// FromBytes creates a buffer holding a copy of p.
func FromBytes(p []byte, g Grammar) *Buffer {
	b := &Buffer{grammar: g}
	b.data = make([]byte, len(p), IdealCapacity(len(p)))
	copy(b.data, p)
	return b
}

// IdealCapacity returns the storage size used for a buffer of n bytes:
// the next power of two up to 2048, and the next multiple of 1024 above
// that (every power of two past 2048 is itself 1024-aligned).
func IdealCapacity(n int) int {
	if n <= 0 {
		return 0
	}
	if n <= 2048 {
		c := 1
		for c < n {
			c <<= 1
		}
		return c
	}
	return (n + 1023) &^ 1023
}

// Grammar returns the grammar tag.
func (b *Buffer) Grammar() Grammar {
	return b.grammar
}

// SetGrammar changes the grammar tag without touching the contents.
func (b *Buffer) SetGrammar(g Grammar) {
	b.grammar = g
}

// Len returns the number of bytes, gaps included.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Cap returns the allocated capacity.
func (b *Buffer) Cap() int {
	return cap(b.data)
}

// IsEmpty reports whether the buffer holds no bytes.
func (b *Buffer) IsEmpty() bool {
	return len(b.data) == 0
}

func (b *Buffer) String() string {
	return string(b.data)
}

// Bytes returns a copy of the contents.
func (b *Buffer) Bytes() []byte {
	return bytes.Clone(b.data)
}

// Clone returns a deep copy.
func (b *Buffer) Clone() *Buffer {
	return FromBytes(b.data, b.grammar)
}

// Equal reports whether both buffers hold the same bytes and grammar.
func (b *Buffer) Equal(other *Buffer) bool {
	if other == nil {
		return false
	}
	return b.grammar == other.grammar && bytes.Equal(b.data, other.data)
}

// At returns the byte at pos.
func (b *Buffer) At(pos int) byte {
	b.checkPos(pos)
	return b.data[pos-1]
}

// IsGapAt reports whether the byte at pos is a gap.
func (b *Buffer) IsGapAt(pos int) bool {
	return IsGap(b.At(pos))
}

// Mid returns a copy of the bytes covered by r.
func (b *Buffer) Mid(r Range) []byte {
	if r.IsEmpty() {
		return nil
	}
	b.checkRange(r)
	return bytes.Clone(b.data[r.Begin-1 : r.End])
}

// Ungapped returns the contents with every gap removed.
func (b *Buffer) Ungapped() string {
	return string(Ungap(b.data))
}

// Append adds p to the end of the buffer.
func (b *Buffer) Append(p []byte) {
	b.Insert(len(b.data)+1, p)
}

// Prepend adds p to the beginning of the buffer.
func (b *Buffer) Prepend(p []byte) {
	b.Insert(1, p)
}

// Insert places p so that its first byte ends up at pos. Valid insertion
// points are 1 through Len()+1.
func (b *Buffer) Insert(pos int, p []byte) {
	b.checkInsertPos(pos)
	if len(p) == 0 {
		return
	}
	old := len(b.data)
	b.resize(old + len(p))
	copy(b.data[pos-1+len(p):], b.data[pos-1:old])
	copy(b.data[pos-1:], p)
}

// InsertGaps inserts n copies of gap at pos.
func (b *Buffer) InsertGaps(pos, n int, gap byte) {
	b.checkInsertPos(pos)
	if n < 0 {
		panic(fmt.Sprintf("seq: negative gap count %d", n))
	}
	if n == 0 {
		return
	}
	old := len(b.data)
	b.resize(old + n)
	copy(b.data[pos-1+n:], b.data[pos-1:old])
	for i := pos - 1; i < pos-1+n; i++ {
		b.data[i] = gap
	}
}

// Remove deletes n bytes beginning at pos.
func (b *Buffer) Remove(pos, n int) {
	if n < 0 {
		panic(fmt.Sprintf("seq: negative remove count %d", n))
	}
	if pos < 1 || pos-1+n > len(b.data) {
		panic(fmt.Sprintf("seq: cannot remove %d bytes at %d from buffer of length %d", n, pos, len(b.data)))
	}
	if n == 0 {
		return
	}
	copy(b.data[pos-1:], b.data[pos-1+n:])
	b.data = b.data[:len(b.data)-n]
}

// RemoveGaps deletes n contiguous gaps beginning at pos. Every byte in the
// removed span must be a gap.
func (b *Buffer) RemoveGaps(pos, n int) {
	if n == 0 {
		return
	}
	r := Range{Begin: pos, End: pos + n - 1}
	b.checkRange(r)
	if g := b.GapsBetween(r); g != n {
		panic(fmt.Sprintf("seq: RemoveGaps(%d, %d) spans %d non-gap bytes", pos, n, n-g))
	}
	b.Remove(pos, n)
}

// RemoveAllGaps compacts the buffer to its non-gap bytes and releases
// surplus capacity.
func (b *Buffer) RemoveAllGaps() {
	w := 0
	for _, c := range b.data {
		if !IsGap(c) {
			b.data[w] = c
			w++
		}
	}
	b.data = b.data[:w]
	if ideal := IdealCapacity(w); cap(b.data) > ideal {
		shrunk := make([]byte, w, ideal)
		copy(shrunk, b.data)
		b.data = shrunk
	}
}

// Replace substitutes the amount bytes at pos with p, growing or shrinking
// the buffer as needed.
func (b *Buffer) Replace(pos, amount int, p []byte) {
	if amount < 0 {
		panic(fmt.Sprintf("seq: negative replace amount %d", amount))
	}
	b.checkInsertPos(pos)
	if pos-1+amount > len(b.data) {
		panic(fmt.Sprintf("seq: cannot replace %d bytes at %d in buffer of length %d", amount, pos, len(b.data)))
	}

	old := len(b.data)
	diff := len(p) - amount
	switch {
	case diff > 0:
		b.resize(old + diff)
		copy(b.data[pos-1+len(p):], b.data[pos-1+amount:old])
	case diff < 0:
		copy(b.data[pos-1+len(p):], b.data[pos-1+amount:])
		b.data = b.data[:old+diff]
	}
	copy(b.data[pos-1:], p)
}

// Clear empties the buffer.
func (b *Buffer) Clear() {
	b.data = b.data[:0]
}

// SetString replaces the contents with s.
func (b *Buffer) SetString(s string) {
	b.data = b.data[:0]
	b.resize(len(s))
	copy(b.data, s)
}

// Reverse reverses the contents in place.
func (b *Buffer) Reverse() {
	for i, j := 0, len(b.data)-1; i < j; i, j = i+1, j-1 {
		b.data[i], b.data[j] = b.data[j], b.data[i]
	}
}

// TranslateGaps rewrites every gap byte to gap.
func (b *Buffer) TranslateGaps(gap byte) {
	for i, c := range b.data {
		if IsGap(c) {
			b.data[i] = gap
		}
	}
}

// resize sets the length to n, reallocating with IdealCapacity when the
// current storage is too small.
func (b *Buffer) resize(n int) {
	if n <= cap(b.data) {
		b.data = b.data[:n]
		return
	}
	grown := make([]byte, n, IdealCapacity(n))
	copy(grown, b.data)
	b.data = grown
}

func (b *Buffer) checkPos(pos int) {
	if pos < 1 || pos > len(b.data) {
		panic(fmt.Sprintf("seq: position %d out of range [1, %d]", pos, len(b.data)))
	}
}

func (b *Buffer) checkInsertPos(pos int) {
	if pos < 1 || pos > len(b.data)+1 {
		panic(fmt.Sprintf("seq: insertion point %d out of range [1, %d]", pos, len(b.data)+1))
	}
}

func (b *Buffer) checkRange(r Range) {
	if r.IsEmpty() || r.End > len(b.data) {
		panic(fmt.Sprintf("seq: range %s invalid for buffer of length %d", r, len(b.data)))
	}
}
