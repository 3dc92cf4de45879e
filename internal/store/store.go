// Package store persists alignments and their undo/redo journals in DuckDB.
// Rows are stored as plain records (gapped sequence, parent, start, stop);
// journal entries are gob-encoded change lists.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/marcboeker/go-duckdb"
	"go.uber.org/zap"
)

// ErrNotFound is returned when a named alignment does not exist.
var ErrNotFound = errors.New("alignment not found")

// Store manages a DuckDB connection holding saved alignments.
type Store struct {
	db     *sql.DB
	path   string
	logger *zap.Logger
}

// Open opens or creates a DuckDB database at the given path.
// Use an empty string for an in-memory database.
func Open(path string) (*Store, error) {
	if path != "" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create store directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Store{db: db, path: path, logger: zap.NewNop()}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return s, nil
}

// SetLogger sets the logger for debug messages.
func (s *Store) SetLogger(l *zap.Logger) {
	s.logger = l
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for direct access.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Path returns the database path, empty for in-memory stores.
func (s *Store) Path() string {
	return s.path
}

// ensureSchema creates tables if they don't exist. The tables carry no
// key constraints: saves replace rows by delete-then-insert inside one
// transaction, which DuckDB's eager constraint checks would reject.
func (s *Store) ensureSchema() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS alignments (
			name VARCHAR,
			grammar VARCHAR,
			updated_at TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS alignment_rows (
			alignment VARCHAR,
			row_index BIGINT,
			gapped VARCHAR,
			parent VARCHAR,
			start_pos BIGINT,
			stop_pos BIGINT
		)`,
		`CREATE TABLE IF NOT EXISTS alignment_history (
			alignment VARCHAR,
			stack VARCHAR,
			depth BIGINT,
			payload BLOB
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
