package session

import (
	"errors"
	"fmt"

	"github.com/inodb/vibe-align/internal/msa"
	"github.com/inodb/vibe-align/internal/seq"
)

// ErrOutOfRange is returned when an edit names rows or columns the
// alignment does not have.
var ErrOutOfRange = errors.New("out of range")

// Side selects the left or right flavour of an edit.
type Side int

const (
	Left Side = iota
	Right
)

// ParseSide converts "left" or "right" to a Side.
func ParseSide(s string) (Side, error) {
	switch s {
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	}
	return Left, fmt.Errorf("side must be left or right, got %q", s)
}

func (s Side) String() string {
	if s == Right {
		return "right"
	}
	return "left"
}

func checkColumn(m *msa.Msa, col int) error {
	if col < 1 || col > m.ColumnCount() {
		return fmt.Errorf("column %d not in [1, %d]: %w", col, m.ColumnCount(), ErrOutOfRange)
	}
	return nil
}

func checkColumns(m *msa.Msa, r seq.Range) error {
	if r.IsEmpty() || r.End > m.ColumnCount() {
		return fmt.Errorf("columns %s not in [1, %d]: %w", r, m.ColumnCount(), ErrOutOfRange)
	}
	return nil
}

func checkRow(m *msa.Msa, row int) error {
	if row < 1 || row > m.RowCount() {
		return fmt.Errorf("row %d not in [1, %d]: %w", row, m.RowCount(), ErrOutOfRange)
	}
	return nil
}

func checkRows(m *msa.Msa, r seq.Range) error {
	if r.IsEmpty() || r.End > m.RowCount() {
		return fmt.Errorf("rows %s not in [1, %d]: %w", r, m.RowCount(), ErrOutOfRange)
	}
	return nil
}

// allRows substitutes every row for the zero range.
func allRows(m *msa.Msa, r seq.Range) seq.Range {
	if r == (seq.Range{}) {
		return seq.NewRange(1, m.RowCount())
	}
	return r
}

// InsertGapColumns inserts count gap columns before column col.
func InsertGapColumns(col, count int, gap byte) Edit {
	return func(m *msa.Msa) (Result, error) {
		if col < 1 || col > m.ColumnCount()+1 {
			return Result{}, fmt.Errorf("insertion column %d not in [1, %d]: %w", col, m.ColumnCount()+1, ErrOutOfRange)
		}
		if count < 1 {
			return Result{}, fmt.Errorf("gap column count must be positive, got %d", count)
		}
		if !seq.IsGap(gap) {
			return Result{}, fmt.Errorf("%q is not a gap character", gap)
		}
		m.InsertGapColumns(col, count, gap)
		return Result{}, nil
	}
}

// RemoveGapColumns removes all-gap columns inside columns, or anywhere when
// columns is the zero range.
func RemoveGapColumns(columns seq.Range) Edit {
	return func(m *msa.Msa) (Result, error) {
		if m.IsEmpty() {
			return Result{}, nil
		}
		if columns == (seq.Range{}) {
			return Result{Removed: m.RemoveGapColumns()}, nil
		}
		if err := checkColumns(m, columns); err != nil {
			return Result{}, err
		}
		return Result{Removed: m.RemoveGapColumnsIn(columns)}, nil
	}
}

// SlideRect moves the block rect by up to delta columns.
func SlideRect(rect msa.Rect, delta int) Edit {
	return func(m *msa.Msa) (Result, error) {
		if err := checkRect(m, rect); err != nil {
			return Result{}, err
		}
		return Result{Delta: m.SlideRect(rect, delta)}, nil
	}
}

func checkRect(m *msa.Msa, rect msa.Rect) error {
	if err := checkColumns(m, rect.Columns()); err != nil {
		return err
	}
	return checkRows(m, rect.Rows())
}

// Extend extends rows (every row for the zero range) toward column col.
func Extend(side Side, col int, rows seq.Range) Edit {
	return columnEdit(col, rows, func(m *msa.Msa, r seq.Range) []msa.Change {
		if side == Right {
			return m.ExtendRight(col, r)
		}
		return m.ExtendLeft(col, r)
	})
}

// Trim trims rows (every row for the zero range) at column col.
func Trim(side Side, col int, rows seq.Range) Edit {
	return columnEdit(col, rows, func(m *msa.Msa, r seq.Range) []msa.Change {
		if side == Right {
			return m.TrimRight(col, r)
		}
		return m.TrimLeft(col, r)
	})
}

// Level makes rows (every row for the zero range) flush with column col.
func Level(side Side, col int, rows seq.Range) Edit {
	return columnEdit(col, rows, func(m *msa.Msa, r seq.Range) []msa.Change {
		if side == Right {
			return m.LevelRight(col, r)
		}
		return m.LevelLeft(col, r)
	})
}

func columnEdit(col int, rows seq.Range, f func(*msa.Msa, seq.Range) []msa.Change) Edit {
	return func(m *msa.Msa) (Result, error) {
		if err := checkColumn(m, col); err != nil {
			return Result{}, err
		}
		r := allRows(m, rows)
		if err := checkRows(m, r); err != nil {
			return Result{}, err
		}
		return Result{Changes: f(m, r), Journaled: true}, nil
	}
}

// Collapse packs the residues inside rect toward side.
func Collapse(side Side, rect msa.Rect) Edit {
	return func(m *msa.Msa) (Result, error) {
		if err := checkRect(m, rect); err != nil {
			return Result{}, err
		}
		if side == Right {
			return Result{Changes: m.CollapseRight(rect), Journaled: true}, nil
		}
		return Result{Changes: m.CollapseLeft(rect), Journaled: true}, nil
	}
}

// Anchor re-anchors row so it shows parent positions start..stop. Either
// bound may be zero to leave it alone.
func Anchor(row, start, stop int) Edit {
	return func(m *msa.Msa) (Result, error) {
		if err := checkRow(m, row); err != nil {
			return Result{}, err
		}
		if start == 0 && stop == 0 {
			return Result{}, errors.New("anchor needs a start or a stop")
		}
		n := m.Row(row).ParentLength()
		if start != 0 && stop != 0 && start > stop {
			return Result{}, fmt.Errorf("start %d after stop %d", start, stop)
		}
		for _, p := range []int{start, stop} {
			if p < 0 || p > n {
				return Result{}, fmt.Errorf("parent position %d not in [1, %d]: %w", p, n, ErrOutOfRange)
			}
		}

		var changes []msa.Change
		set := func(f func(int, int) ([]msa.Change, bool), p int) {
			if p != 0 {
				c, _ := f(row, p)
				changes = append(changes, c...)
			}
		}
		// Move the stop first when the new start lies past it.
		if start != 0 && start > m.Row(row).Stop() {
			set(m.SetSubseqStop, stop)
			set(m.SetSubseqStart, start)
		} else {
			set(m.SetSubseqStart, start)
			set(m.SetSubseqStop, stop)
		}
		return Result{Changes: changes, Journaled: true}, nil
	}
}

// MoveRows moves the block rows so its first row ends up at index to.
func MoveRows(rows seq.Range, to int) Edit {
	return func(m *msa.Msa) (Result, error) {
		if err := checkRows(m, rows); err != nil {
			return Result{}, err
		}
		if to < 1 || to > m.RowCount()-rows.Len()+1 {
			return Result{}, fmt.Errorf("destination row %d not in [1, %d]: %w", to, m.RowCount()-rows.Len()+1, ErrOutOfRange)
		}
		m.MoveRowRange(rows, to)
		return Result{}, nil
	}
}

// RemoveRows deletes rows.
func RemoveRows(rows seq.Range) Edit {
	return func(m *msa.Msa) (Result, error) {
		if err := checkRows(m, rows); err != nil {
			return Result{}, err
		}
		m.RemoveRows(rows)
		return Result{}, nil
	}
}
