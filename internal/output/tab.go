// Package output provides alignment output formatters.
package output

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/inodb/vibe-align/internal/msa"
	"github.com/inodb/vibe-align/internal/seq"
)

// AlignmentWriter writes alignment rows in tab-delimited format.
type AlignmentWriter struct {
	w       *bufio.Writer
	columns []string
}

// NewAlignmentWriter creates a new tab-delimited row writer.
func NewAlignmentWriter(w io.Writer) *AlignmentWriter {
	return &AlignmentWriter{
		w: bufio.NewWriter(w),
		columns: []string{
			"#Row",
			"Start",
			"Stop",
			"Length",
			"Sequence",
		},
	}
}

// WriteHeader writes the header line.
func (aw *AlignmentWriter) WriteHeader() error {
	_, err := aw.w.WriteString(strings.Join(aw.columns, "\t") + "\n")
	return err
}

// WriteRow writes row i.
func (aw *AlignmentWriter) WriteRow(i int, row msa.RowReader) error {
	values := []string{
		strconv.Itoa(i),
		strconv.Itoa(row.Start()),
		strconv.Itoa(row.Stop()),
		strconv.Itoa(row.UngappedLength()),
		row.String(),
	}
	_, err := aw.w.WriteString(strings.Join(values, "\t") + "\n")
	return err
}

// Write writes every row of m.
func (aw *AlignmentWriter) Write(m *msa.Msa) error {
	for i := 1; i <= m.RowCount(); i++ {
		if err := aw.WriteRow(i, m.Row(i)); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes any buffered data to the underlying writer.
func (aw *AlignmentWriter) Flush() error {
	return aw.w.Flush()
}

// ChangeWriter writes change records, one per line.
type ChangeWriter struct {
	w *bufio.Writer
}

// NewChangeWriter creates a new change record writer.
func NewChangeWriter(w io.Writer) *ChangeWriter {
	return &ChangeWriter{w: bufio.NewWriter(w)}
}

// WriteHeader writes the header line.
func (cw *ChangeWriter) WriteHeader() error {
	_, err := cw.w.WriteString("#Op\tRow\tColumns\tDiff\n")
	return err
}

// Write writes changes in order.
func (cw *ChangeWriter) Write(changes []msa.Change) error {
	for _, c := range changes {
		diff := string(c.Diff)
		if diff == "" {
			diff = "-"
		}
		values := []string{
			c.Op.String(),
			strconv.Itoa(c.Row),
			c.Columns.String(),
			diff,
		}
		if _, err := cw.w.WriteString(strings.Join(values, "\t") + "\n"); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes any buffered data to the underlying writer.
func (cw *ChangeWriter) Flush() error {
	return cw.w.Flush()
}

// RangeWriter writes column ranges, such as removed gap columns.
type RangeWriter struct {
	w *bufio.Writer
}

// NewRangeWriter creates a new range writer.
func NewRangeWriter(w io.Writer) *RangeWriter {
	return &RangeWriter{w: bufio.NewWriter(w)}
}

// WriteHeader writes the header line.
func (rw *RangeWriter) WriteHeader() error {
	_, err := rw.w.WriteString("#Begin\tEnd\tLength\n")
	return err
}

// Write writes ranges in order.
func (rw *RangeWriter) Write(ranges []seq.Range) error {
	for _, r := range ranges {
		values := []string{
			strconv.Itoa(r.Begin),
			strconv.Itoa(r.End),
			strconv.Itoa(r.Len()),
		}
		if _, err := rw.w.WriteString(strings.Join(values, "\t") + "\n"); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes any buffered data to the underlying writer.
func (rw *RangeWriter) Flush() error {
	return rw.w.Flush()
}
