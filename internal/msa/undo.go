package msa

import (
	"fmt"
	"slices"

	"github.com/inodb/vibe-align/internal/seq"
)

// Undo inverts changes and returns the records of the inverse edits, which
// can themselves be passed to Undo to redo. Changes are applied last to
// first since edits to the same row may depend on each other.
func (m *Msa) Undo(changes []Change) []Change {
	inverse := make([]Change, 0, len(changes))
	for i := len(changes) - 1; i >= 0; i-- {
		inverse = append(inverse, m.revert(changes[i]))
	}
	return inverse
}

func (m *Msa) revert(c Change) Change {
	m.checkRow(c.Row)
	m.checkColumns(c.Columns)
	if len(c.Diff) != c.Columns.Len() {
		panic(fmt.Sprintf("msa: %s has %d diff bytes for %d columns", c, len(c.Diff), c.Columns.Len()))
	}
	if c.Gaps != nil && len(c.Gaps) != c.Columns.Len() {
		panic(fmt.Sprintf("msa: %s has %d gap bytes for %d columns", c, len(c.Gaps), c.Columns.Len()))
	}

	row := m.rows[c.Row-1]
	inv := Change{Op: c.Op.Inverse(), Row: c.Row, Columns: c.Columns, Diff: c.Diff}
	switch c.Op {
	case ExtendLeft:
		if c.Gaps == nil {
			row.TrimLeft(c.Columns)
		} else {
			row.TrimLeftWith(c.Columns, c.Gaps)
		}
	case ExtendRight:
		if c.Gaps == nil {
			row.TrimRight(c.Columns)
		} else {
			row.TrimRightWith(c.Columns, c.Gaps)
		}
	case TrimLeft:
		inv.Gaps = row.Mid(c.Columns)
		row.ExtendLeftWith(c.Columns.Begin, c.Diff)
	case TrimRight:
		inv.Gaps = row.Mid(c.Columns)
		row.ExtendRightWith(c.Columns.Begin, c.Diff)
	case Internal:
		inv.Diff = row.Mid(c.Columns)
		row.Rearrange(c.Columns, c.Diff)
	default:
		panic(fmt.Sprintf("msa: cannot undo %s", c.Op))
	}
	return inv
}

// ChangedRows returns the distinct rows touched by changes, in ascending
// order.
func ChangedRows(changes []Change) []int {
	seen := make(map[int]bool, len(changes))
	var rows []int
	for _, c := range changes {
		if !seen[c.Row] {
			seen[c.Row] = true
			rows = append(rows, c.Row)
		}
	}
	slices.Sort(rows)
	return rows
}

// ChangedColumns returns the smallest column range covering changes, the
// region a view must repaint.
func ChangedColumns(changes []Change) seq.Range {
	var r seq.Range
	for i, c := range changes {
		if i == 0 {
			r = c.Columns
			continue
		}
		r.Begin = min(r.Begin, c.Columns.Begin)
		r.End = max(r.End, c.Columns.End)
	}
	return r
}
