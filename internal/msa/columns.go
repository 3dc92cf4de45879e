package msa

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/inodb/vibe-align/internal/seq"
)

// InsertGapColumns inserts count columns of gap at column col, which may
// be ColumnCount()+1 to append.
func (m *Msa) InsertGapColumns(col, count int, gap byte) {
	if col < 1 || col > m.ColumnCount()+1 {
		panic(fmt.Sprintf("msa: gap column insertion point %d out of range [1, %d]", col, m.ColumnCount()+1))
	}
	if count < 0 {
		panic(fmt.Sprintf("msa: negative gap column count %d", count))
	}
	if count == 0 {
		return
	}
	for _, r := range m.rows {
		r.InsertGaps(col, count, gap)
	}
}

// FindGapColumns returns, in ascending order, the maximal ranges within
// columns where every row holds a gap.
//
// The search is a row-major line sweep: it starts from one candidate
// covering columns and visits each row once, walking only the surviving
// candidates. A residue at a candidate's edge shrinks it and a residue in
// its interior splits it in two. Cost is O(rows x candidate columns).
func (m *Msa) FindGapColumns(columns seq.Range) []seq.Range {
	if len(m.rows) == 0 {
		return nil
	}
	m.checkColumns(columns)

	candidates := []seq.Range{columns}
	for _, row := range m.rows {
		var next []seq.Range
		for _, c := range candidates {
			begin := c.Begin
			for pos := c.Begin; pos <= c.End; pos++ {
				if row.IsGapAt(pos) {
					continue
				}
				if pos > begin {
					next = append(next, seq.NewRange(begin, pos-1))
				}
				begin = pos + 1
			}
			if begin <= c.End {
				next = append(next, seq.NewRange(begin, c.End))
			}
		}
		candidates = next
		if len(candidates) == 0 {
			return nil
		}
	}
	return candidates
}

// RemoveGapColumns deletes every all-gap column and returns the removed
// ranges in ascending order, using the coordinates they had beforehand.
func (m *Msa) RemoveGapColumns() []seq.Range {
	if len(m.rows) == 0 || m.ColumnCount() == 0 {
		return nil
	}
	return m.RemoveGapColumnsIn(seq.NewRange(1, m.ColumnCount()))
}

// RemoveGapColumnsIn is RemoveGapColumns restricted to columns.
func (m *Msa) RemoveGapColumnsIn(columns seq.Range) []seq.Range {
	found := m.FindGapColumns(columns)
	// Right to left so earlier ranges keep their coordinates.
	for i := len(found) - 1; i >= 0; i-- {
		r := found[i]
		for _, row := range m.rows {
			row.RemoveGaps(r.Begin, r.Len())
		}
	}
	if len(found) > 0 {
		m.logger.Debug("removed gap columns",
			zap.Int("ranges", len(found)),
			zap.Int("columns", m.ColumnCount()))
	}
	return found
}
