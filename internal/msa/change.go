package msa

import (
	"fmt"

	"go.uber.org/zap/zapcore"

	"github.com/inodb/vibe-align/internal/seq"
)

// Op identifies the kind of edit a Change records.
type Op int

const (
	ExtendLeft Op = iota + 1
	ExtendRight
	TrimLeft
	TrimRight
	Internal
)

var opNames = map[Op]string{
	ExtendLeft:  "extend_left",
	ExtendRight: "extend_right",
	TrimLeft:    "trim_left",
	TrimRight:   "trim_right",
	Internal:    "internal",
}

func (o Op) String() string {
	if s, ok := opNames[o]; ok {
		return s
	}
	return fmt.Sprintf("Op(%d)", int(o))
}

// ParseOp returns the Op named s.
func ParseOp(s string) (Op, error) {
	for op, name := range opNames {
		if name == s {
			return op, nil
		}
	}
	return 0, fmt.Errorf("unknown change op %q", s)
}

// MarshalText encodes o by name.
func (o Op) MarshalText() ([]byte, error) {
	if _, ok := opNames[o]; !ok {
		return nil, fmt.Errorf("unknown change op %d", int(o))
	}
	return []byte(o.String()), nil
}

// UnmarshalText decodes an op name.
func (o *Op) UnmarshalText(b []byte) error {
	op, err := ParseOp(string(b))
	if err != nil {
		return err
	}
	*o = op
	return nil
}

// Inverse returns the operation that undoes o.
func (o Op) Inverse() Op {
	switch o {
	case ExtendLeft:
		return TrimLeft
	case TrimLeft:
		return ExtendLeft
	case ExtendRight:
		return TrimRight
	case TrimRight:
		return ExtendRight
	case Internal:
		return Internal
	}
	panic(fmt.Sprintf("msa: no inverse for %s", o))
}

// Change records one row edit in enough detail to invert it exactly.
//
// Columns is the span that changed. Diff holds the bytes Undo needs: the
// residues (with their interior gaps) that were added or removed for the
// extend and trim operations, or the bytes that occupied Columns before
// an Internal rearrangement. Gaps holds the gap bytes an extend overwrote
// so that undoing it puts back '.' and '-' exactly as they were.
type Change struct {
	Op      Op        `json:"op"`
	Row     int       `json:"row"`
	Columns seq.Range `json:"columns"`
	Diff    []byte    `json:"diff"`
	Gaps    []byte    `json:"gaps,omitempty"`
}

func (c Change) String() string {
	return fmt.Sprintf("%s row %d columns %s %q", c.Op, c.Row, c.Columns, c.Diff)
}

func (c Change) MarshalLogObject(oe zapcore.ObjectEncoder) error {
	oe.AddString("op", c.Op.String())
	oe.AddInt("row", c.Row)
	oe.AddInt("begin", c.Columns.Begin)
	oe.AddInt("end", c.Columns.End)
	oe.AddByteString("diff", c.Diff)
	if len(c.Gaps) > 0 {
		oe.AddByteString("gaps", c.Gaps)
	}
	return nil
}

// Changes is a change list that logs as an array.
type Changes []Change

func (cs Changes) MarshalLogArray(ae zapcore.ArrayEncoder) error {
	for _, c := range cs {
		if err := ae.AppendObject(c); err != nil {
			return err
		}
	}
	return nil
}
