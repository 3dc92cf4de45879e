package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"time"

	goduckdb "github.com/marcboeker/go-duckdb"
	"go.uber.org/zap"

	"github.com/inodb/vibe-align/internal/msa"
	"github.com/inodb/vibe-align/internal/seq"
	"github.com/inodb/vibe-align/internal/subseq"
)

// Summary describes a saved alignment.
type Summary struct {
	Name      string    `json:"name"`
	Grammar   string    `json:"grammar"`
	Rows      int       `json:"rows"`
	Columns   int       `json:"columns"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Exists reports whether an alignment called name has been saved.
func (s *Store) Exists(ctx context.Context, name string) (bool, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM alignments WHERE name=?", name).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("query alignment: %w", err)
	}
	return n > 0, nil
}

// SaveAlignment replaces the stored rows of name with those of m. Rows are
// written with the Appender API inside the same transaction as the delete.
func (s *Store) SaveAlignment(ctx context.Context, name string, m *msa.Msa) error {
	if err := s.Update(ctx, func(tx *Tx) error {
		return tx.SaveAlignment(name, m)
	}); err != nil {
		return err
	}

	s.logger.Debug("saved alignment",
		zap.String("name", name),
		zap.Int("rows", m.RowCount()),
		zap.Int("columns", m.ColumnCount()))
	return nil
}

func (s *Store) writeAlignment(ctx context.Context, conn *sql.Conn, name string, m *msa.Msa) error {
	if _, err := conn.ExecContext(ctx, "DELETE FROM alignment_rows WHERE alignment=?", name); err != nil {
		return fmt.Errorf("delete rows: %w", err)
	}
	if _, err := conn.ExecContext(ctx, "DELETE FROM alignments WHERE name=?", name); err != nil {
		return fmt.Errorf("delete alignment: %w", err)
	}
	if _, err := conn.ExecContext(ctx, "INSERT INTO alignments VALUES (?, ?, ?)",
		name, m.Grammar().String(), time.Now().UTC()); err != nil {
		return fmt.Errorf("insert alignment: %w", err)
	}
	if m.IsEmpty() {
		return nil
	}

	var appender *goduckdb.Appender
	if err := conn.Raw(func(driverConn any) error {
		var err error
		appender, err = goduckdb.NewAppenderFromConn(driverConn.(driver.Conn), "", "alignment_rows")
		return err
	}); err != nil {
		return fmt.Errorf("create appender: %w", err)
	}

	for i := 1; i <= m.RowCount(); i++ {
		r := m.Row(i)
		if err := appender.AppendRow(
			name, int64(i), r.String(), r.Parent(),
			int64(r.Start()), int64(r.Stop()),
		); err != nil {
			appender.Close()
			return fmt.Errorf("append row %d: %w", i, err)
		}
	}
	if err := appender.Close(); err != nil {
		return fmt.Errorf("flush rows: %w", err)
	}
	return nil
}

// LoadAlignment rebuilds the alignment saved as name.
func (s *Store) LoadAlignment(ctx context.Context, name string) (*msa.Msa, error) {
	var grammarName string
	err := s.db.QueryRowContext(ctx, "SELECT grammar FROM alignments WHERE name=?", name).Scan(&grammarName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("load %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query alignment: %w", err)
	}
	g, err := seq.ParseGrammar(grammarName)
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", name, err)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT row_index, gapped, parent, start_pos, stop_pos
		FROM alignment_rows
		WHERE alignment=?
		ORDER BY row_index`, name)
	if err != nil {
		return nil, fmt.Errorf("query rows: %w", err)
	}
	defer rows.Close()

	m := msa.New(g)
	for rows.Next() {
		var index, start, stop int64
		var gapped, parent string
		if err := rows.Scan(&index, &gapped, &parent, &start, &stop); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		row, err := subseq.NewAt(seq.New(gapped, g), seq.New(parent, g), int(start))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", index, err)
		}
		if row.Stop() != int(stop) {
			return nil, fmt.Errorf("row %d: stored stop %d, sequence ends at %d", index, stop, row.Stop())
		}
		if err := m.Append(row); err != nil {
			return nil, fmt.Errorf("row %d: %w", index, err)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return m, nil
}

// ListAlignments returns a summary of every saved alignment, by name.
func (s *Store) ListAlignments(ctx context.Context) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT a.name, a.grammar, a.updated_at,
		COUNT(r.row_index), COALESCE(MAX(length(r.gapped)), 0)
		FROM alignments a
		LEFT JOIN alignment_rows r ON r.alignment = a.name
		GROUP BY a.name, a.grammar, a.updated_at
		ORDER BY a.name`)
	if err != nil {
		return nil, fmt.Errorf("query alignments: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var sum Summary
		var count, width int64
		if err := rows.Scan(&sum.Name, &sum.Grammar, &sum.UpdatedAt, &count, &width); err != nil {
			return nil, fmt.Errorf("scan alignment: %w", err)
		}
		sum.Rows = int(count)
		sum.Columns = int(width)
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate alignments: %w", err)
	}
	return out, nil
}

// DeleteAlignment removes name together with its rows and journal.
func (s *Store) DeleteAlignment(ctx context.Context, name string) error {
	ok, err := s.Exists(ctx, name)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("delete %q: %w", name, ErrNotFound)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, q := range []string{
		"DELETE FROM alignment_history WHERE alignment=?",
		"DELETE FROM alignment_rows WHERE alignment=?",
		"DELETE FROM alignments WHERE name=?",
	} {
		if _, err := tx.ExecContext(ctx, q, name); err != nil {
			return fmt.Errorf("delete %q: %w", name, err)
		}
	}
	return tx.Commit()
}
