package subseq

import (
	"fmt"

	"github.com/inodb/vibe-align/internal/seq"
)

// LeftExtendableLength returns how many parent residues ExtendLeft could
// add so that the subsequence reaches back to column pos. It is zero
// unless pos lies within the head gaps.
func (s *Subseq) LeftExtendableLength(pos int) int {
	s.buf.At(pos)
	h := s.buf.HeadGaps()
	if pos > h {
		return 0
	}
	return min(h-pos+1, s.LeftUnusedSpace())
}

// RightExtendableLength is the mirror image of LeftExtendableLength.
func (s *Subseq) RightExtendableLength(pos int) int {
	s.buf.At(pos)
	first := s.buf.Len() - s.buf.TailGaps() + 1
	if pos < first {
		return 0
	}
	return min(pos-first+1, s.RightUnusedSpace())
}

// ExtendLeft replaces the n head gaps nearest the first residue with the n
// parent residues preceding Start. It returns the columns written.
func (s *Subseq) ExtendLeft(n int) seq.Range {
	h := s.buf.HeadGaps()
	if n < 1 || n > h || n > s.LeftUnusedSpace() {
		panic(fmt.Sprintf("subseq: cannot extend left by %d (head gaps %d, unused %d)", n, h, s.LeftUnusedSpace()))
	}
	r := seq.NewRange(h-n+1, h)
	s.buf.Replace(r.Begin, n, s.parent.Mid(seq.NewRange(s.start-n, s.start-1)))
	s.start -= n
	return r
}

// ExtendRight replaces the n tail gaps nearest the last residue with the n
// parent residues following Stop. It returns the columns written.
func (s *Subseq) ExtendRight(n int) seq.Range {
	t := s.buf.TailGaps()
	if n < 1 || n > t || n > s.RightUnusedSpace() {
		panic(fmt.Sprintf("subseq: cannot extend right by %d (tail gaps %d, unused %d)", n, t, s.RightUnusedSpace()))
	}
	first := s.buf.Len() - t + 1
	r := seq.NewRange(first, first+n-1)
	s.buf.Replace(r.Begin, n, s.parent.Mid(seq.NewRange(s.stop+1, s.stop+n)))
	s.stop += n
	return r
}

// ExtendLeftWith writes chars, residues and gaps alike, at pos. The span
// must lie within the head gaps and the residues of chars must be exactly
// the parent residues preceding Start. This restores a previous left trim.
func (s *Subseq) ExtendLeftWith(pos int, chars []byte) {
	n := len(chars) - seq.CountGaps(chars)
	r := seq.NewRange(pos, pos+len(chars)-1)
	if n < 1 || r.IsEmpty() || r.End > s.buf.HeadGaps() || n > s.LeftUnusedSpace() {
		panic(fmt.Sprintf("subseq: cannot extend left with %q at %d", chars, pos))
	}
	if !s.parent.MatchesAt(s.start-n, chars, true) {
		panic(fmt.Sprintf("subseq: %q does not precede parent position %d", chars, s.start))
	}
	s.buf.Replace(pos, len(chars), chars)
	s.start -= n
}

// ExtendRightWith is the mirror image of ExtendLeftWith.
func (s *Subseq) ExtendRightWith(pos int, chars []byte) {
	n := len(chars) - seq.CountGaps(chars)
	r := seq.NewRange(pos, pos+len(chars)-1)
	if n < 1 || r.IsEmpty() || r.End > s.buf.Len() || r.Begin <= s.buf.Len()-s.buf.TailGaps() || n > s.RightUnusedSpace() {
		panic(fmt.Sprintf("subseq: cannot extend right with %q at %d", chars, pos))
	}
	if !s.parent.MatchesAt(s.stop+1, chars, true) {
		panic(fmt.Sprintf("subseq: %q does not follow parent position %d", chars, s.stop))
	}
	s.buf.Replace(pos, len(chars), chars)
	s.stop += n
}

// LeftTrimRange returns the columns a left trim through pos would clear:
// from the first residue to the last residue at or before pos. The range
// stops one residue short when it would otherwise take every residue, and
// is empty when nothing can be trimmed.
func (s *Subseq) LeftTrimRange(pos int) seq.Range {
	s.buf.At(pos)
	first := s.buf.HeadGaps() + 1
	if pos < first {
		return seq.Range{}
	}
	n := min(s.buf.NonGapsBetween(seq.NewRange(1, pos)), s.buf.UngappedLength()-1)
	if n == 0 {
		return seq.Range{}
	}
	return seq.NewRange(first, s.nthNonGap(n))
}

// RightTrimRange is the mirror image of LeftTrimRange.
func (s *Subseq) RightTrimRange(pos int) seq.Range {
	s.buf.At(pos)
	last := s.buf.Len() - s.buf.TailGaps()
	if pos > last {
		return seq.Range{}
	}
	n := min(s.buf.NonGapsBetween(seq.NewRange(pos, s.buf.Len())), s.buf.UngappedLength()-1)
	if n == 0 {
		return seq.Range{}
	}
	return seq.NewRange(s.nthNonGapFromRight(n), last)
}

// LeftTrimmableLength returns the number of residues a left trim through
// pos would remove.
func (s *Subseq) LeftTrimmableLength(pos int) int {
	return s.buf.NonGapsBetween(s.LeftTrimRange(pos))
}

// RightTrimmableLength returns the number of residues a right trim from pos
// would remove.
func (s *Subseq) RightTrimmableLength(pos int) int {
	return s.buf.NonGapsBetween(s.RightTrimRange(pos))
}

// TrimLeft turns every residue in r into a gap and advances Start. No
// residue may lie left of r and at least one must remain. Residues become
// the gap next to r, or DefaultGap when neither neighbour is a gap. It
// returns the number of residues removed.
func (s *Subseq) TrimLeft(r seq.Range) int {
	return s.TrimLeftWith(r, s.gapFill(r))
}

// TrimRight turns every residue in r into a gap and pulls back Stop. No
// residue may lie right of r and at least one must remain.
func (s *Subseq) TrimRight(r seq.Range) int {
	return s.TrimRightWith(r, s.gapFill(r))
}

// TrimLeftWith is TrimLeft with the bytes written over r given
// explicitly; gaps must be as long as r and hold only gaps. This restores
// the gaps a previous left extension overwrote.
func (s *Subseq) TrimLeftWith(r seq.Range, gaps []byte) int {
	s.checkTrim(r, gaps)
	if s.buf.NonGapsBetween(seq.NewRange(1, r.Begin-1)) != 0 {
		panic(fmt.Sprintf("subseq: residues left of trim range %s", r))
	}
	n := s.clear(r, gaps)
	s.start += n
	return n
}

// TrimRightWith is the mirror image of TrimLeftWith.
func (s *Subseq) TrimRightWith(r seq.Range, gaps []byte) int {
	s.checkTrim(r, gaps)
	if s.buf.NonGapsBetween(seq.NewRange(r.End+1, s.buf.Len())) != 0 {
		panic(fmt.Sprintf("subseq: residues right of trim range %s", r))
	}
	n := s.clear(r, gaps)
	s.stop -= n
	return n
}

func (s *Subseq) checkTrim(r seq.Range, gaps []byte) {
	if r.IsEmpty() || r.End > s.buf.Len() {
		panic(fmt.Sprintf("subseq: trim range %s invalid for length %d", r, s.buf.Len()))
	}
	if len(gaps) != r.Len() || seq.CountGaps(gaps) != len(gaps) {
		panic(fmt.Sprintf("subseq: cannot trim %s to %q", r, gaps))
	}
}

// clear writes gaps over r, refusing to remove the last residue.
func (s *Subseq) clear(r seq.Range, gaps []byte) int {
	n := s.buf.NonGapsBetween(r)
	if n >= s.buf.UngappedLength() {
		panic(fmt.Sprintf("subseq: trimming %s would remove every residue", r))
	}
	s.buf.Replace(r.Begin, len(gaps), gaps)
	return n
}

// gapFill returns the bytes of r with each residue replaced by the gap
// bordering r. Gaps already inside r keep their byte.
func (s *Subseq) gapFill(r seq.Range) []byte {
	if r.IsEmpty() || r.End > s.buf.Len() {
		panic(fmt.Sprintf("subseq: trim range %s invalid for length %d", r, s.buf.Len()))
	}
	g := s.gapAt(r.Begin-1, s.gapAt(r.End+1, seq.DefaultGap))
	p := s.buf.Mid(r)
	for i, c := range p {
		if !seq.IsGap(c) {
			p[i] = g
		}
	}
	return p
}

// gapAt returns the gap at pos, or def when pos is outside the row or
// holds a residue.
func (s *Subseq) gapAt(pos int, def byte) byte {
	if pos < 1 || pos > s.buf.Len() || !s.buf.IsGapAt(pos) {
		return def
	}
	return s.buf.At(pos)
}

// SetStart re-anchors the subsequence so its first residue is parent
// position newStart. Moving left extends into the head gaps, inserting
// gap columns at the front when there are too few; moving inside the
// current span trims; moving past Stop first extends to newStart and then
// trims down to that single residue. Positions outside the parent are
// ignored and reported by returning false.
func (s *Subseq) SetStart(newStart int) bool {
	if newStart < 1 || newStart > s.parent.Len() {
		return false
	}
	switch {
	case newStart < s.start:
		n := s.start - newStart
		if h := s.buf.HeadGaps(); h < n {
			s.buf.InsertGaps(1, n-h, s.gapAt(1, seq.DefaultGap))
		}
		s.ExtendLeft(n)
	case newStart <= s.stop:
		if newStart > s.start {
			s.TrimLeft(seq.NewRange(s.buf.HeadGaps()+1, s.MapFromSeq(newStart-1)))
		}
	default:
		s.SetStop(newStart)
		s.SetStart(newStart)
	}
	return true
}

// SetStop is the mirror image of SetStart.
func (s *Subseq) SetStop(newStop int) bool {
	if newStop < 1 || newStop > s.parent.Len() {
		return false
	}
	switch {
	case newStop > s.stop:
		n := newStop - s.stop
		if t := s.buf.TailGaps(); t < n {
			s.buf.InsertGaps(s.buf.Len()+1, n-t, s.gapAt(s.buf.Len(), seq.DefaultGap))
		}
		s.ExtendRight(n)
	case newStop >= s.start:
		if newStop < s.stop {
			s.TrimRight(seq.NewRange(s.MapFromSeq(newStop+1), s.buf.Len()-s.buf.TailGaps()))
		}
	default:
		s.SetStart(newStop)
		s.SetStop(newStop)
	}
	return true
}
