// Package msa provides Msa, a multiple sequence alignment of anchored
// subsequences that all share one column count and grammar.
//
// Rows and columns are 1-based. Row-level edits (extend, trim, level,
// collapse, re-anchor) return Change records that Undo can invert.
// Column-level edits (gap column insertion and removal, rectangle slides)
// return the ranges or deltas they actually applied instead.
package msa

import (
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/inodb/vibe-align/internal/seq"
	"github.com/inodb/vibe-align/internal/subseq"
)

// RowReader is the read-only view of a row held by an alignment.
type RowReader interface {
	seq.Reader
	Start() int
	Stop() int
	Parent() string
	ParentLength() int
	MapToSeq(pos int) int
	MapFromSeq(p int) int
	LeftUnusedSpace() int
	RightUnusedSpace() int
	LeftExtendableLength(pos int) int
	RightExtendableLength(pos int) int
	LeftTrimRange(pos int) seq.Range
	RightTrimRange(pos int) seq.Range
	LeftTrimmableLength(pos int) int
	RightTrimmableLength(pos int) int
}

var _ RowReader = (*subseq.Subseq)(nil)

// Msa is an ordered list of equal-length anchored subsequences.
type Msa struct {
	grammar seq.Grammar
	rows    []*subseq.Subseq
	gap     byte
	logger  *zap.Logger
}

// New creates an empty alignment for grammar g.
func New(g seq.Grammar) *Msa {
	return &Msa{
		grammar: g,
		gap:     seq.DefaultGap,
		logger:  zap.NewNop(),
	}
}

// SetLogger sets the logger for debug messages.
func (m *Msa) SetLogger(l *zap.Logger) {
	m.logger = l
}

// SetGap sets the gap written into columns the alignment adds by itself
// when re-anchoring rows.
func (m *Msa) SetGap(gap byte) {
	if !seq.IsGap(gap) {
		panic(fmt.Sprintf("msa: %q is not a gap", gap))
	}
	m.gap = gap
}

// Gap returns the gap written into padding columns.
func (m *Msa) Gap() byte {
	return m.gap
}

// Grammar returns the grammar shared by every row.
func (m *Msa) Grammar() seq.Grammar {
	return m.grammar
}

// RowCount returns the number of rows.
func (m *Msa) RowCount() int {
	return len(m.rows)
}

// ColumnCount returns the common row length, or 0 when there are no rows.
func (m *Msa) ColumnCount() int {
	if len(m.rows) == 0 {
		return 0
	}
	return m.rows[0].Len()
}

// IsEmpty reports whether the alignment has no rows.
func (m *Msa) IsEmpty() bool {
	return len(m.rows) == 0
}

// Row returns a read-only view of row i.
func (m *Msa) Row(i int) RowReader {
	m.checkRow(i)
	return m.rows[i-1]
}

// Strings returns the gapped contents of every row.
func (m *Msa) Strings() []string {
	out := make([]string, len(m.rows))
	for i, r := range m.rows {
		out[i] = r.String()
	}
	return out
}

// Insert adds rows so that the first lands at index at (1 through
// RowCount()+1). Nothing is inserted unless every row has the alignment's
// grammar, at least one residue and the common length. The alignment
// takes ownership of the inserted rows.
func (m *Msa) Insert(at int, rows ...*subseq.Subseq) error {
	if at < 1 || at > len(m.rows)+1 {
		panic(fmt.Sprintf("msa: insertion row %d out of range [1, %d]", at, len(m.rows)+1))
	}
	if err := m.checkCompatible(rows); err != nil {
		m.logger.Debug("rows rejected",
			zap.Int("at", at),
			zap.Int("count", len(rows)),
			zap.Error(err))
		return err
	}
	m.rows = slices.Insert(m.rows, at-1, rows...)
	return nil
}

// Append adds rows after the last row.
func (m *Msa) Append(rows ...*subseq.Subseq) error {
	return m.Insert(len(m.rows)+1, rows...)
}

// Prepend adds rows before the first row.
func (m *Msa) Prepend(rows ...*subseq.Subseq) error {
	return m.Insert(1, rows...)
}

func (m *Msa) checkCompatible(rows []*subseq.Subseq) error {
	width := m.ColumnCount()
	if len(m.rows) == 0 && len(rows) > 0 {
		width = rows[0].Len()
	}
	for i, r := range rows {
		switch {
		case r.Grammar() != m.grammar:
			return fmt.Errorf("row %d: %w", i+1, ErrGrammarMismatch)
		case !r.HasNonGaps():
			return fmt.Errorf("row %d: %w", i+1, ErrNoResidues)
		case r.Len() != width:
			return fmt.Errorf("row %d has %d columns, want %d: %w", i+1, r.Len(), width, ErrIncompatibleRow)
		}
	}
	return nil
}

// RemoveAt deletes row i.
func (m *Msa) RemoveAt(i int) {
	m.checkRow(i)
	m.rows = slices.Delete(m.rows, i-1, i)
}

// RemoveRows deletes the rows in r.
func (m *Msa) RemoveRows(r seq.Range) {
	m.TakeRows(r)
}

// TakeRows removes the rows in r and returns them to the caller.
func (m *Msa) TakeRows(r seq.Range) []*subseq.Subseq {
	m.checkRows(r)
	taken := slices.Clone(m.rows[r.Begin-1 : r.End])
	m.rows = slices.Delete(m.rows, r.Begin-1, r.End)
	return taken
}

// Clear removes every row.
func (m *Msa) Clear() {
	m.rows = nil
}

// MoveRow moves row from so that it ends up at index to.
func (m *Msa) MoveRow(from, to int) {
	m.MoveRowRange(seq.NewRange(from, from), to)
}

// MoveRowRange moves the block of rows r so that its first row ends up at
// index to.
func (m *Msa) MoveRowRange(r seq.Range, to int) {
	m.checkRows(r)
	if to < 1 || to > len(m.rows)-r.Len()+1 {
		panic(fmt.Sprintf("msa: cannot move %d rows to %d in alignment of %d rows", r.Len(), to, len(m.rows)))
	}
	if to == r.Begin {
		return
	}
	block := m.TakeRows(r)
	m.rows = slices.Insert(m.rows, to-1, block...)
}

// MoveRowRangeRelative moves the block of rows r by delta rows, clamped
// to the alignment, and returns the delta actually applied.
func (m *Msa) MoveRowRangeRelative(r seq.Range, delta int) int {
	m.checkRows(r)
	delta = max(delta, 1-r.Begin)
	delta = min(delta, len(m.rows)-r.End)
	if delta != 0 {
		m.MoveRowRange(r, r.Begin+delta)
	}
	return delta
}

// Sort stably orders the rows by cmp.
func (m *Msa) Sort(cmp func(a, b RowReader) int) {
	slices.SortStableFunc(m.rows, func(a, b *subseq.Subseq) int {
		return cmp(a, b)
	})
}

func (m *Msa) checkRow(i int) {
	if i < 1 || i > len(m.rows) {
		panic(fmt.Sprintf("msa: row %d out of range [1, %d]", i, len(m.rows)))
	}
}

func (m *Msa) checkRows(r seq.Range) {
	if r.IsEmpty() || r.End > len(m.rows) {
		panic(fmt.Sprintf("msa: rows %s invalid for alignment of %d rows", r, len(m.rows)))
	}
}

func (m *Msa) checkColumn(c int) {
	if c < 1 || c > m.ColumnCount() {
		panic(fmt.Sprintf("msa: column %d out of range [1, %d]", c, m.ColumnCount()))
	}
}

func (m *Msa) checkColumns(r seq.Range) {
	if r.IsEmpty() || r.End > m.ColumnCount() {
		panic(fmt.Sprintf("msa: columns %s invalid for alignment of %d columns", r, m.ColumnCount()))
	}
}

func (m *Msa) checkRect(r Rect) {
	m.checkColumns(r.Columns())
	m.checkRows(r.Rows())
}
