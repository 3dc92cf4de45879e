package msa

import (
	"fmt"

	"github.com/inodb/vibe-align/internal/seq"
)

// Rect is a block of the alignment: columns Left..Right of rows
// Top..Bottom, all inclusive and 1-based.
type Rect struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
}

// NewRect returns the rectangle spanning columns and rows.
func NewRect(columns, rows seq.Range) Rect {
	return Rect{Left: columns.Begin, Top: rows.Begin, Right: columns.End, Bottom: rows.End}
}

// Columns returns the horizontal span.
func (r Rect) Columns() seq.Range { return seq.NewRange(r.Left, r.Right) }

// Rows returns the vertical span.
func (r Rect) Rows() seq.Range { return seq.NewRange(r.Top, r.Bottom) }

// IsEmpty reports whether r covers no cells.
func (r Rect) IsEmpty() bool {
	return r.Columns().IsEmpty() || r.Rows().IsEmpty()
}

func (r Rect) String() string {
	return fmt.Sprintf("columns %s rows %s", r.Columns(), r.Rows())
}
