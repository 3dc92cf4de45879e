package output

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/inodb/vibe-align/internal/store"
)

// SummaryWriter writes an aligned table of saved alignments.
type SummaryWriter struct {
	w     *tabwriter.Writer
	total int
}

// NewSummaryWriter creates a new summary table writer.
func NewSummaryWriter(w io.Writer) *SummaryWriter {
	return &SummaryWriter{
		w: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0),
	}
}

// WriteHeader writes the table header.
func (sw *SummaryWriter) WriteHeader() error {
	_, err := fmt.Fprintln(sw.w, "Name\tGrammar\tRows\tColumns\tUpdated")
	return err
}

// Write writes one alignment summary.
func (sw *SummaryWriter) Write(s store.Summary) error {
	sw.total++
	_, err := fmt.Fprintf(sw.w, "%s\t%s\t%s\t%s\t%s\n",
		s.Name, s.Grammar, humanize.Comma(int64(s.Rows)), humanize.Comma(int64(s.Columns)),
		s.UpdatedAt.Format(time.DateTime))
	return err
}

// Total returns the number of summaries written.
func (sw *SummaryWriter) Total() int {
	return sw.total
}

// Flush aligns and writes the buffered table.
func (sw *SummaryWriter) Flush() error {
	return sw.w.Flush()
}
