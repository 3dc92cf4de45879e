package store

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/gob"
	"errors"
	"fmt"

	"github.com/inodb/vibe-align/internal/msa"
)

// Stack names one of an alignment's two journals.
type Stack string

const (
	Undo Stack = "undo"
	Redo Stack = "redo"
)

// ErrEmptyStack is returned when popping a journal with no entries.
var ErrEmptyStack = errors.New("history stack is empty")

// querier is satisfied by *sql.DB and *sql.Conn.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// PushHistory records changes as the newest entry of stack.
func (s *Store) PushHistory(ctx context.Context, name string, stack Stack, changes []msa.Change) error {
	return s.Update(ctx, func(tx *Tx) error {
		return tx.PushHistory(name, stack, changes)
	})
}

// PopHistory removes and returns the newest entry of stack.
func (s *Store) PopHistory(ctx context.Context, name string, stack Stack) ([]msa.Change, error) {
	var changes []msa.Change
	err := s.Update(ctx, func(tx *Tx) error {
		var err error
		changes, err = tx.PopHistory(name, stack)
		return err
	})
	return changes, err
}

// HistoryDepth returns the number of entries in stack.
func (s *Store) HistoryDepth(ctx context.Context, name string, stack Stack) (int, error) {
	return historyDepth(ctx, s.db, name, stack)
}

// ClearHistory drops every entry of stack.
func (s *Store) ClearHistory(ctx context.Context, name string, stack Stack) error {
	return clearHistory(ctx, s.db, name, stack)
}

// TrimHistory keeps only the newest limit entries of stack and renumbers
// them from 1.
func (s *Store) TrimHistory(ctx context.Context, name string, stack Stack, limit int) error {
	return s.Update(ctx, func(tx *Tx) error {
		return tx.TrimHistory(name, stack, limit)
	})
}

func pushHistory(ctx context.Context, q querier, name string, stack Stack, changes []msa.Change) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(changes); err != nil {
		return fmt.Errorf("encode changes: %w", err)
	}

	depth, err := historyDepth(ctx, q, name, stack)
	if err != nil {
		return err
	}
	if _, err := q.ExecContext(ctx, "INSERT INTO alignment_history VALUES (?, ?, ?, ?)",
		name, string(stack), int64(depth+1), buf.Bytes()); err != nil {
		return fmt.Errorf("insert %s entry: %w", stack, err)
	}
	return nil
}

func popHistory(ctx context.Context, q querier, name string, stack Stack) ([]msa.Change, error) {
	var depth int64
	var payload []byte
	err := q.QueryRowContext(ctx, `SELECT depth, payload FROM alignment_history
		WHERE alignment=? AND stack=?
		ORDER BY depth DESC
		LIMIT 1`, name, string(stack)).Scan(&depth, &payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEmptyStack
	}
	if err != nil {
		return nil, fmt.Errorf("query %s entry: %w", stack, err)
	}

	var changes []msa.Change
	if err := gob.NewDecoder(bytes.NewReader(payload)).Decode(&changes); err != nil {
		return nil, fmt.Errorf("decode %s entry: %w", stack, err)
	}
	if _, err := q.ExecContext(ctx, "DELETE FROM alignment_history WHERE alignment=? AND stack=? AND depth=?",
		name, string(stack), depth); err != nil {
		return nil, fmt.Errorf("delete %s entry: %w", stack, err)
	}
	return changes, nil
}

func historyDepth(ctx context.Context, q querier, name string, stack Stack) (int, error) {
	var depth int64
	err := q.QueryRowContext(ctx, `SELECT COALESCE(MAX(depth), 0) FROM alignment_history
		WHERE alignment=? AND stack=?`, name, string(stack)).Scan(&depth)
	if err != nil {
		return 0, fmt.Errorf("query %s depth: %w", stack, err)
	}
	return int(depth), nil
}

func clearHistory(ctx context.Context, q querier, name string, stack Stack) error {
	if _, err := q.ExecContext(ctx, "DELETE FROM alignment_history WHERE alignment=? AND stack=?",
		name, string(stack)); err != nil {
		return fmt.Errorf("clear %s: %w", stack, err)
	}
	return nil
}

func trimHistory(ctx context.Context, q querier, name string, stack Stack, limit int) error {
	depth, err := historyDepth(ctx, q, name, stack)
	if err != nil {
		return err
	}
	excess := depth - limit
	if excess <= 0 {
		return nil
	}
	if _, err := q.ExecContext(ctx, "DELETE FROM alignment_history WHERE alignment=? AND stack=? AND depth<=?",
		name, string(stack), int64(excess)); err != nil {
		return fmt.Errorf("trim %s: %w", stack, err)
	}
	if _, err := q.ExecContext(ctx, "UPDATE alignment_history SET depth = depth - ? WHERE alignment=? AND stack=?",
		int64(excess), name, string(stack)); err != nil {
		return fmt.Errorf("renumber %s: %w", stack, err)
	}
	return nil
}
