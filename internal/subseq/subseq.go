// Package subseq provides Subseq, a gapped view of a contiguous stretch of an
// immutable parent sequence.
//
// A Subseq tracks which parent residues [Start, Stop] it currently shows.
// Every operation keeps three things true: the ungapped view equals
// parent[Start..Stop], Stop-Start+1 equals the number of non-gap bytes, and
// at least one non-gap byte remains. Operations that could break that
// (append, insert of residues, reverse, complement, tr) are simply not
// offered; the read-only surface is shared with seq.Buffer via seq.Reader.
package subseq

import (
	"bytes"
	"fmt"

	"github.com/inodb/vibe-align/internal/seq"
)

// Subseq is a gapped subsequence anchored to a parent sequence.
type Subseq struct {
	buf    *seq.Buffer
	parent *seq.Buffer // ungapped; never mutated, so clones share it
	start  int
	stop   int
}

var _ seq.Reader = (*Subseq)(nil)

// New creates a subsequence whose parent is the ungapped form of b.
func New(b *seq.Buffer) (*Subseq, error) {
	if !b.HasNonGaps() {
		return nil, &NoResiduesError{}
	}
	parent := seq.New(b.Ungapped(), b.Grammar())
	return &Subseq{
		buf:    b.Clone(),
		parent: parent,
		start:  1,
		stop:   parent.Len(),
	}, nil
}

// NewWithParent creates a subsequence of parent, locating the first
// occurrence of b's residues to determine the start.
func NewWithParent(b, parent *seq.Buffer) (*Subseq, error) {
	if err := checkParent(b, parent); err != nil {
		return nil, err
	}
	start := parent.IndexOf([]byte(b.Ungapped()), 1)
	if start == -1 {
		return nil, &ParentMismatchError{}
	}
	return newAnchored(b, parent, start), nil
}

// NewAt creates a subsequence of parent whose first residue corresponds to
// parent position start.
func NewAt(b, parent *seq.Buffer, start int) (*Subseq, error) {
	if err := checkParent(b, parent); err != nil {
		return nil, err
	}
	if start < 1 || start > parent.Len() || !parent.MatchesAt(start, []byte(b.Ungapped()), false) {
		return nil, &ParentMismatchError{Start: start}
	}
	return newAnchored(b, parent, start), nil
}

func checkParent(b, parent *seq.Buffer) error {
	if !b.HasNonGaps() {
		return &NoResiduesError{}
	}
	if !b.Grammar().Compatible(parent.Grammar()) {
		return &GrammarMismatchError{Sequence: b.Grammar(), Parent: parent.Grammar()}
	}
	for pos := 1; pos <= parent.Len(); pos++ {
		if parent.IsGapAt(pos) {
			return &GappedParentError{Position: pos}
		}
	}
	return nil
}

func newAnchored(b, parent *seq.Buffer, start int) *Subseq {
	g := b.Grammar()
	if g == seq.Unknown {
		g = parent.Grammar()
	}
	buf := b.Clone()
	buf.SetGrammar(g)
	p := parent.Clone()
	p.SetGrammar(g)
	return &Subseq{
		buf:    buf,
		parent: p,
		start:  start,
		stop:   start + b.UngappedLength() - 1,
	}
}

// Clone returns an independent copy that shares the immutable parent.
func (s *Subseq) Clone() *Subseq {
	return &Subseq{
		buf:    s.buf.Clone(),
		parent: s.parent,
		start:  s.start,
		stop:   s.stop,
	}
}

// Start returns the parent position of the first residue.
func (s *Subseq) Start() int { return s.start }

// Stop returns the parent position of the last residue.
func (s *Subseq) Stop() int { return s.stop }

// Parent returns the parent sequence.
func (s *Subseq) Parent() string { return s.parent.String() }

// ParentLength returns the length of the parent sequence.
func (s *Subseq) ParentLength() int { return s.parent.Len() }

// LeftUnusedSpace returns the number of parent residues before Start.
func (s *Subseq) LeftUnusedSpace() int { return s.start - 1 }

// RightUnusedSpace returns the number of parent residues after Stop.
func (s *Subseq) RightUnusedSpace() int { return s.parent.Len() - s.stop }

// IsEquivalentTo reports whether both subsequences show the same bytes of
// the same parent at the same coordinates.
func (s *Subseq) IsEquivalentTo(other *Subseq) bool {
	return other != nil &&
		s.start == other.start &&
		s.stop == other.stop &&
		s.buf.Equal(other.buf) &&
		s.parent.String() == other.parent.String()
}

// MapToSeq returns the parent position shown at pos, or -1 for a gap.
func (s *Subseq) MapToSeq(pos int) int {
	if s.buf.IsGapAt(pos) {
		return -1
	}
	return s.start + s.buf.NonGapsBetween(seq.NewRange(1, pos)) - 1
}

// MapFromSeq returns the column showing parent position p, or -1 when p
// lies outside [Start, Stop].
func (s *Subseq) MapFromSeq(p int) int {
	if p < s.start || p > s.stop {
		return -1
	}
	return s.nthNonGap(p - s.start + 1)
}

// Read-only view, delegated to the gapped buffer.

func (s *Subseq) Grammar() seq.Grammar           { return s.buf.Grammar() }
func (s *Subseq) Len() int                       { return s.buf.Len() }
func (s *Subseq) String() string                 { return s.buf.String() }
func (s *Subseq) At(pos int) byte                { return s.buf.At(pos) }
func (s *Subseq) IsGapAt(pos int) bool           { return s.buf.IsGapAt(pos) }
func (s *Subseq) Mid(r seq.Range) []byte         { return s.buf.Mid(r) }
func (s *Subseq) Ungapped() string               { return s.buf.Ungapped() }
func (s *Subseq) UngappedLength() int            { return s.buf.UngappedLength() }
func (s *Subseq) GapsBetween(r seq.Range) int    { return s.buf.GapsBetween(r) }
func (s *Subseq) NonGapsBetween(r seq.Range) int { return s.buf.NonGapsBetween(r) }
func (s *Subseq) GapsLeftOf(pos int) int         { return s.buf.GapsLeftOf(pos) }
func (s *Subseq) GapsRightOf(pos int) int        { return s.buf.GapsRightOf(pos) }
func (s *Subseq) HeadGaps() int                  { return s.buf.HeadGaps() }
func (s *Subseq) TailGaps() int                  { return s.buf.TailGaps() }
func (s *Subseq) HasGaps() bool                  { return s.buf.HasGaps() }
func (s *Subseq) HasNonGaps() bool               { return s.buf.HasNonGaps() }

func (s *Subseq) LeftSlidablePositions(r seq.Range) int  { return s.buf.LeftSlidablePositions(r) }
func (s *Subseq) RightSlidablePositions(r seq.Range) int { return s.buf.RightSlidablePositions(r) }
func (s *Subseq) CanCollapseLeft(r seq.Range) bool       { return s.buf.CanCollapseLeft(r) }
func (s *Subseq) CanCollapseRight(r seq.Range) bool      { return s.buf.CanCollapseRight(r) }

func (s *Subseq) IndexOf(query []byte, from int) int { return s.buf.IndexOf(query, from) }

func (s *Subseq) MatchesAt(pos int, query []byte, ignoreQueryGaps bool) bool {
	return s.buf.MatchesAt(pos, query, ignoreQueryGaps)
}

// Gap-only edits. None of these change which residues are shown.

// InsertGaps inserts n copies of gap at pos.
func (s *Subseq) InsertGaps(pos, n int, gap byte) {
	if !seq.IsGap(gap) {
		panic(fmt.Sprintf("subseq: %q is not a gap character", gap))
	}
	s.buf.InsertGaps(pos, n, gap)
}

// RemoveGaps deletes n contiguous gaps beginning at pos.
func (s *Subseq) RemoveGaps(pos, n int) { s.buf.RemoveGaps(pos, n) }

// RemoveAllGaps strips every gap.
func (s *Subseq) RemoveAllGaps() { s.buf.RemoveAllGaps() }

// TranslateGaps rewrites every gap byte to gap.
func (s *Subseq) TranslateGaps(gap byte) {
	if !seq.IsGap(gap) {
		panic(fmt.Sprintf("subseq: %q is not a gap character", gap))
	}
	s.buf.TranslateGaps(gap)
}

// Slide moves r by up to delta positions; see seq.Buffer.Slide.
func (s *Subseq) Slide(r seq.Range, delta int) int { return s.buf.Slide(r, delta) }

// CollapseLeft packs the residues in r to the left; see seq.Buffer.CollapseLeft.
func (s *Subseq) CollapseLeft(r seq.Range) seq.Range { return s.buf.CollapseLeft(r) }

// CollapseRight packs the residues in r to the right.
func (s *Subseq) CollapseRight(r seq.Range) seq.Range { return s.buf.CollapseRight(r) }

// Rearrange overwrites r with p, which must have the same length and the
// same residues in the same order; only gap placement may differ.
func (s *Subseq) Rearrange(r seq.Range, p []byte) {
	if len(p) != r.Len() {
		panic(fmt.Sprintf("subseq: rearrange of %s with %d bytes", r, len(p)))
	}
	if !bytes.Equal(seq.Ungap(p), seq.Ungap(s.buf.Mid(r))) {
		panic(fmt.Sprintf("subseq: rearrange of %s changes its residues", r))
	}
	s.buf.Replace(r.Begin, r.Len(), p)
}

// nthNonGap returns the position of the n-th residue counting from the left.
func (s *Subseq) nthNonGap(n int) int {
	want := n
	for pos := 1; pos <= s.buf.Len(); pos++ {
		if !s.buf.IsGapAt(pos) {
			n--
			if n == 0 {
				return pos
			}
		}
	}
	panic(fmt.Sprintf("subseq: fewer than %d residues", want))
}

// nthNonGapFromRight returns the position of the n-th residue counting from
// the right.
func (s *Subseq) nthNonGapFromRight(n int) int {
	want := n
	for pos := s.buf.Len(); pos >= 1; pos-- {
		if !s.buf.IsGapAt(pos) {
			n--
			if n == 0 {
				return pos
			}
		}
	}
	panic(fmt.Sprintf("subseq: fewer than %d residues", want))
}
