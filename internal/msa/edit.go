package msa

import (
	"go.uber.org/zap"

	"github.com/inodb/vibe-align/internal/seq"
	"github.com/inodb/vibe-align/internal/subseq"
)

// ExtendLeft extends each row in rows as far left as column col allows.
func (m *Msa) ExtendLeft(col int, rows seq.Range) []Change {
	m.checkColumn(col)
	m.checkRows(rows)
	var changes []Change
	for i := rows.Begin; i <= rows.End; i++ {
		if c, ok := m.extendLeft(i, col); ok {
			changes = append(changes, c)
		}
	}
	return changes
}

// ExtendRight extends each row in rows as far right as column col allows.
func (m *Msa) ExtendRight(col int, rows seq.Range) []Change {
	m.checkColumn(col)
	m.checkRows(rows)
	var changes []Change
	for i := rows.Begin; i <= rows.End; i++ {
		if c, ok := m.extendRight(i, col); ok {
			changes = append(changes, c)
		}
	}
	return changes
}

// TrimLeft trims each row in rows through column col, always leaving at
// least one residue.
func (m *Msa) TrimLeft(col int, rows seq.Range) []Change {
	m.checkColumn(col)
	m.checkRows(rows)
	var changes []Change
	for i := rows.Begin; i <= rows.End; i++ {
		if c, ok := m.trimLeft(i, col); ok {
			changes = append(changes, c)
		}
	}
	return changes
}

// TrimRight trims each row in rows from column col onwards, always
// leaving at least one residue.
func (m *Msa) TrimRight(col int, rows seq.Range) []Change {
	m.checkColumn(col)
	m.checkRows(rows)
	var changes []Change
	for i := rows.Begin; i <= rows.End; i++ {
		if c, ok := m.trimRight(i, col); ok {
			changes = append(changes, c)
		}
	}
	return changes
}

// LevelLeft makes every row in rows start as close to column col as its
// parent allows: residues left of col are trimmed, then the row is
// extended back to col. All trim records precede all extend records.
func (m *Msa) LevelLeft(col int, rows seq.Range) []Change {
	m.checkColumn(col)
	m.checkRows(rows)
	var trims, extends []Change
	for i := rows.Begin; i <= rows.End; i++ {
		if col > 1 {
			if c, ok := m.trimLeft(i, col-1); ok {
				trims = append(trims, c)
			}
		}
		if c, ok := m.extendLeft(i, col); ok {
			extends = append(extends, c)
		}
	}
	return append(trims, extends...)
}

// LevelRight is the mirror image of LevelLeft.
func (m *Msa) LevelRight(col int, rows seq.Range) []Change {
	m.checkColumn(col)
	m.checkRows(rows)
	var trims, extends []Change
	for i := rows.Begin; i <= rows.End; i++ {
		if col < m.ColumnCount() {
			if c, ok := m.trimRight(i, col+1); ok {
				trims = append(trims, c)
			}
		}
		if c, ok := m.extendRight(i, col); ok {
			extends = append(extends, c)
		}
	}
	return append(trims, extends...)
}

func (m *Msa) extendLeft(i, col int) (Change, bool) {
	row := m.rows[i-1]
	n := row.LeftExtendableLength(col)
	if n == 0 {
		return Change{}, false
	}
	return extendLeftChange(i, row, n), true
}

func (m *Msa) extendRight(i, col int) (Change, bool) {
	row := m.rows[i-1]
	n := row.RightExtendableLength(col)
	if n == 0 {
		return Change{}, false
	}
	return extendRightChange(i, row, n), true
}

// extendLeftChange extends row i by n and records the head gaps it
// overwrote.
func extendLeftChange(i int, row *subseq.Subseq, n int) Change {
	h := row.HeadGaps()
	gaps := row.Mid(seq.NewRange(h-n+1, h))
	r := row.ExtendLeft(n)
	return Change{Op: ExtendLeft, Row: i, Columns: r, Diff: row.Mid(r), Gaps: gaps}
}

func extendRightChange(i int, row *subseq.Subseq, n int) Change {
	first := row.Len() - row.TailGaps() + 1
	gaps := row.Mid(seq.NewRange(first, first+n-1))
	r := row.ExtendRight(n)
	return Change{Op: ExtendRight, Row: i, Columns: r, Diff: row.Mid(r), Gaps: gaps}
}

func (m *Msa) trimLeft(i, col int) (Change, bool) {
	row := m.rows[i-1]
	r := row.LeftTrimRange(col)
	if r.IsEmpty() {
		return Change{}, false
	}
	diff := row.Mid(r)
	row.TrimLeft(r)
	return Change{Op: TrimLeft, Row: i, Columns: r, Diff: diff}, true
}

func (m *Msa) trimRight(i, col int) (Change, bool) {
	row := m.rows[i-1]
	r := row.RightTrimRange(col)
	if r.IsEmpty() {
		return Change{}, false
	}
	diff := row.Mid(r)
	row.TrimRight(r)
	return Change{Op: TrimRight, Row: i, Columns: r, Diff: diff}, true
}

// CanExtendLeft reports whether ExtendLeft(col, rows) would change any row.
func (m *Msa) CanExtendLeft(col int, rows seq.Range) bool {
	return m.anyRow(col, rows, func(r *subseq.Subseq) bool { return r.LeftExtendableLength(col) > 0 })
}

// CanExtendRight reports whether ExtendRight(col, rows) would change any row.
func (m *Msa) CanExtendRight(col int, rows seq.Range) bool {
	return m.anyRow(col, rows, func(r *subseq.Subseq) bool { return r.RightExtendableLength(col) > 0 })
}

// CanTrimLeft reports whether TrimLeft(col, rows) would change any row.
func (m *Msa) CanTrimLeft(col int, rows seq.Range) bool {
	return m.anyRow(col, rows, func(r *subseq.Subseq) bool { return r.LeftTrimmableLength(col) > 0 })
}

// CanTrimRight reports whether TrimRight(col, rows) would change any row.
func (m *Msa) CanTrimRight(col int, rows seq.Range) bool {
	return m.anyRow(col, rows, func(r *subseq.Subseq) bool { return r.RightTrimmableLength(col) > 0 })
}

// CanLevelLeft reports whether LevelLeft(col, rows) would change any row.
func (m *Msa) CanLevelLeft(col int, rows seq.Range) bool {
	return m.anyRow(col, rows, func(r *subseq.Subseq) bool {
		return (col > 1 && r.LeftTrimmableLength(col-1) > 0) || r.LeftExtendableLength(col) > 0
	})
}

// CanLevelRight reports whether LevelRight(col, rows) would change any row.
func (m *Msa) CanLevelRight(col int, rows seq.Range) bool {
	return m.anyRow(col, rows, func(r *subseq.Subseq) bool {
		return (col < r.Len() && r.RightTrimmableLength(col+1) > 0) || r.RightExtendableLength(col) > 0
	})
}

func (m *Msa) anyRow(col int, rows seq.Range, f func(*subseq.Subseq) bool) bool {
	m.checkColumn(col)
	m.checkRows(rows)
	for _, r := range m.rows[rows.Begin-1 : rows.End] {
		if f(r) {
			return true
		}
	}
	return false
}

// CollapseLeft packs the residues of every row inside rect against the
// rect's left edge. Rows that do not change produce no record.
func (m *Msa) CollapseLeft(rect Rect) []Change {
	return m.collapse(rect, (*subseq.Subseq).CollapseLeft)
}

// CollapseRight packs the residues of every row inside rect against the
// rect's right edge.
func (m *Msa) CollapseRight(rect Rect) []Change {
	return m.collapse(rect, (*subseq.Subseq).CollapseRight)
}

func (m *Msa) collapse(rect Rect, f func(*subseq.Subseq, seq.Range) seq.Range) []Change {
	m.checkRect(rect)
	cols := rect.Columns()
	var changes []Change
	for i := rect.Top; i <= rect.Bottom; i++ {
		row := m.rows[i-1]
		before := row.Mid(cols)
		affected := f(row, cols)
		if affected.IsEmpty() {
			continue
		}
		changes = append(changes, Change{
			Op:      Internal,
			Row:     i,
			Columns: affected,
			Diff:    before[affected.Begin-cols.Begin : affected.End-cols.Begin+1],
		})
	}
	return changes
}

// CanCollapseLeft reports whether CollapseLeft(rect) would change any row.
func (m *Msa) CanCollapseLeft(rect Rect) bool {
	m.checkRect(rect)
	for _, r := range m.rows[rect.Top-1 : rect.Bottom] {
		if r.CanCollapseLeft(rect.Columns()) {
			return true
		}
	}
	return false
}

// CanCollapseRight reports whether CollapseRight(rect) would change any row.
func (m *Msa) CanCollapseRight(rect Rect) bool {
	m.checkRect(rect)
	for _, r := range m.rows[rect.Top-1 : rect.Bottom] {
		if r.CanCollapseRight(rect.Columns()) {
			return true
		}
	}
	return false
}

// SlidableDistance returns how far every row of rect can move together in
// the direction of delta's sign.
func (m *Msa) SlidableDistance(rect Rect, delta int) int {
	m.checkRect(rect)
	if delta == 0 {
		return 0
	}
	limit := -1
	for _, r := range m.rows[rect.Top-1 : rect.Bottom] {
		var n int
		if delta < 0 {
			n = r.LeftSlidablePositions(rect.Columns())
		} else {
			n = r.RightSlidablePositions(rect.Columns())
		}
		if limit < 0 || n < limit {
			limit = n
		}
	}
	return limit
}

// CanSlideRect reports whether rect can move at all in the direction of
// delta's sign.
func (m *Msa) CanSlideRect(rect Rect, delta int) bool {
	return m.SlidableDistance(rect, delta) > 0
}

// SlideRect moves the block rect by up to delta columns. The block moves
// in lockstep, so the distance is limited by the most constrained row. It
// returns the signed delta actually applied.
func (m *Msa) SlideRect(rect Rect, delta int) int {
	n := min(abs(delta), m.SlidableDistance(rect, delta))
	if n == 0 {
		return 0
	}
	if delta < 0 {
		n = -n
	}
	for _, r := range m.rows[rect.Top-1 : rect.Bottom] {
		r.Slide(rect.Columns(), n)
	}
	return n
}

// SetSubseqStart re-anchors row i so its first residue is parent position
// newStart. Gap columns are added at the left edge of the alignment when
// the row needs more room; those columns are not part of the returned
// records. It returns false, changing nothing, when newStart lies outside
// the row's parent.
func (m *Msa) SetSubseqStart(i, newStart int) ([]Change, bool) {
	m.checkRow(i)
	row := m.rows[i-1]
	if newStart < 1 || newStart > row.ParentLength() {
		return nil, false
	}
	switch {
	case newStart < row.Start():
		n := row.Start() - newStart
		if h := row.HeadGaps(); h < n {
			m.padColumns(1, n-h)
		}
		return []Change{extendLeftChange(i, row, n)}, true
	case newStart <= row.Stop():
		if newStart == row.Start() {
			return nil, true
		}
		r := seq.NewRange(row.HeadGaps()+1, row.MapFromSeq(newStart-1))
		diff := row.Mid(r)
		row.TrimLeft(r)
		return []Change{{Op: TrimLeft, Row: i, Columns: r, Diff: diff}}, true
	default:
		extend, _ := m.SetSubseqStop(i, newStart)
		trim, _ := m.SetSubseqStart(i, newStart)
		return append(extend, trim...), true
	}
}

// SetSubseqStop is the mirror image of SetSubseqStart; padding columns go
// after the last column.
func (m *Msa) SetSubseqStop(i, newStop int) ([]Change, bool) {
	m.checkRow(i)
	row := m.rows[i-1]
	if newStop < 1 || newStop > row.ParentLength() {
		return nil, false
	}
	switch {
	case newStop > row.Stop():
		n := newStop - row.Stop()
		if t := row.TailGaps(); t < n {
			m.padColumns(m.ColumnCount()+1, n-t)
		}
		return []Change{extendRightChange(i, row, n)}, true
	case newStop >= row.Start():
		if newStop == row.Stop() {
			return nil, true
		}
		r := seq.NewRange(row.MapFromSeq(newStop+1), row.Len()-row.TailGaps())
		diff := row.Mid(r)
		row.TrimRight(r)
		return []Change{{Op: TrimRight, Row: i, Columns: r, Diff: diff}}, true
	default:
		extend, _ := m.SetSubseqStart(i, newStop)
		trim, _ := m.SetSubseqStop(i, newStop)
		return append(extend, trim...), true
	}
}

func (m *Msa) padColumns(col, count int) {
	m.InsertGapColumns(col, count, m.gap)
	m.logger.Debug("inserted gap columns for re-anchoring",
		zap.Int("column", col),
		zap.Int("count", count))
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
