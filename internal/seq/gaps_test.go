package seq

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGapQueries(t *testing.T) {
	b := New("--AB-C---", DNA)

	assert.Equal(t, 2, b.HeadGaps())
	assert.Equal(t, 3, b.TailGaps())
	assert.Equal(t, 0, b.GapsLeftOf(5))
	assert.Equal(t, 1, b.GapsLeftOf(6))
	assert.Equal(t, 3, b.GapsLeftOf(10))
	assert.Equal(t, 1, b.GapsRightOf(4))
	assert.Equal(t, 3, b.GapsRightOf(6))
	assert.Equal(t, 2, b.GapsRightOf(0))
	assert.Equal(t, 3, b.UngappedLength())
	assert.Equal(t, 3, b.FirstNonGap())
	assert.Equal(t, 6, b.LastNonGap())
	assert.Equal(t, 2, b.GapsBetween(NewRange(4, 7)))
	assert.Equal(t, 2, b.NonGapsBetween(NewRange(4, 7)))
	assert.Equal(t, 0, b.GapsBetween(Range{}))
	assert.True(t, b.HasGaps())
	assert.True(t, b.HasNonGaps())
	assert.Equal(t, "ABC", b.Ungapped())

	assert.Panics(t, func() { b.GapsLeftOf(11) })
	assert.Panics(t, func() { b.GapsRightOf(-1) })
}

func TestGapQueriesAllGapsAndNoGaps(t *testing.T) {
	gaps := New("---", Unknown)
	assert.False(t, gaps.HasNonGaps())
	assert.Equal(t, 3, gaps.HeadGaps())
	assert.Equal(t, 3, gaps.TailGaps())
	assert.Equal(t, -1, gaps.FirstNonGap())
	assert.Equal(t, -1, gaps.LastNonGap())

	residues := New("ACGT", DNA)
	assert.False(t, residues.HasGaps())
	assert.Equal(t, 0, residues.HeadGaps())
	assert.Equal(t, 0, residues.TailGaps())
}

func TestSlidablePositions(t *testing.T) {
	b := New("--AB-C---", DNA)

	assert.Equal(t, 2, b.LeftSlidablePositions(NewRange(3, 4)))
	assert.Equal(t, 1, b.RightSlidablePositions(NewRange(3, 4)))
	assert.Equal(t, 0, b.LeftSlidablePositions(NewRange(4, 6)))
	assert.Equal(t, 3, b.RightSlidablePositions(NewRange(4, 6)))

	// All-gap ranges may travel to the buffer edge.
	assert.Equal(t, 6, b.LeftSlidablePositions(NewRange(7, 9)))
	assert.Equal(t, 0, b.RightSlidablePositions(NewRange(7, 9)))
	assert.Equal(t, 4, b.RightSlidablePositions(NewRange(5, 5)))
}

func TestSlide(t *testing.T) {
	tests := []struct {
		name   string
		seq    string
		r      Range
		delta  int
		moved  int
		result string
	}{
		{"left by one", "ABC--D-EF--GH", NewRange(6, 9), -1, 1, "ABC-D-EF---GH"},
		{"left by two", "ABC--D-EF--GH", NewRange(6, 9), -2, 2, "ABCD-EF----GH"},
		{"left clamped", "ABC--D-EF--GH", NewRange(6, 9), -5, 2, "ABCD-EF----GH"},
		{"right clamped", "ABC--D-EF--GH", NewRange(6, 9), 4, 2, "ABC----D-EFGH"},
		{"blocked", "AB-CD", NewRange(1, 2), -1, 0, "AB-CD"},
		{"right into gap", "AB-CD", NewRange(1, 2), 3, 1, "-ABCD"},
		{"zero delta", "AB-CD", NewRange(1, 2), 0, 0, "AB-CD"},
		{"gaps to the left edge", "AB--CD", NewRange(3, 4), -5, 2, "--ABCD"},
		{"gaps to the right edge", "AB--CD", NewRange(3, 4), 5, 2, "ABCD--"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New(tt.seq, Unknown)
			got := b.Slide(tt.r, tt.delta)
			assert.Equal(t, tt.moved, got)
			assert.Equal(t, tt.result, b.String())
		})
	}
}

func TestSlideLongMove(t *testing.T) {
	b := New("A"+strings.Repeat("-", 100)+"B", Unknown)
	moved := b.Slide(NewRange(102, 102), -150)
	assert.Equal(t, 100, moved)
	assert.Equal(t, "AB"+strings.Repeat("-", 100), b.String())
}

func TestSlidePreservesResidues(t *testing.T) {
	seqs := []string{"AB--C-D--E", "--A-B", "A-B-C-D", "----A", "AB.-.CD"}
	for _, s := range seqs {
		for begin := 1; begin <= len(s); begin++ {
			for end := begin; end <= len(s); end++ {
				for _, delta := range []int{-3, -1, 1, 2, 5} {
					b := New(s, Unknown)
					b.Slide(NewRange(begin, end), delta)
					assert.Equal(t, len(s), b.Len())
					assert.Equal(t, string(Ungap([]byte(s))), b.Ungapped(),
						"slide %q [%d,%d] by %d", s, begin, end, delta)
				}
			}
		}
	}
}

func TestCollapse(t *testing.T) {
	tests := []struct {
		name     string
		seq      string
		r        Range
		left     bool
		result   string
		affected Range
	}{
		{"left", "A--B-C", NewRange(1, 6), true, "ABC---", NewRange(2, 6)},
		{"right", "A--B-C", NewRange(1, 6), false, "---ABC", NewRange(1, 5)},
		{"left inside sub-range", "-A-B--C", NewRange(2, 5), true, "-AB---C", NewRange(3, 4)},
		{"left already packed", "ABC---", NewRange(1, 6), true, "ABC---", Range{}},
		{"right already packed", "---ABC", NewRange(1, 6), false, "---ABC", Range{}},
		{"all gaps", "----", NewRange(1, 4), true, "----", Range{}},
		{"mixed gap characters", "A.-B", NewRange(1, 4), true, "AB.-", NewRange(2, 4)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New(tt.seq, Unknown)
			var got Range
			if tt.left {
				assert.Equal(t, !tt.affected.IsEmpty(), b.CanCollapseLeft(tt.r))
				got = b.CollapseLeft(tt.r)
			} else {
				assert.Equal(t, !tt.affected.IsEmpty(), b.CanCollapseRight(tt.r))
				got = b.CollapseRight(tt.r)
			}
			assert.Equal(t, tt.result, b.String())
			assert.Equal(t, tt.affected, got)
		})
	}
}

func BenchmarkSlide(b *testing.B) {
	buf := New(strings.Repeat("AC--GT--", 256), DNA)
	r := NewRange(3, 6)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf.Slide(r, 1)
		buf.Slide(NewRange(4, 7), -1)
	}
}
