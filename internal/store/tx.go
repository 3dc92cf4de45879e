package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/inodb/vibe-align/internal/msa"
)

// Tx groups journal and alignment writes on one connection so they commit
// or roll back together.
type Tx struct {
	ctx  context.Context
	conn *sql.Conn
	s    *Store
}

// Update runs fn inside a single transaction. The transaction is rolled
// back when fn returns an error or panics.
func (s *Store) Update(ctx context.Context, fn func(tx *Tx) error) error {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, "BEGIN TRANSACTION"); err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			conn.ExecContext(context.WithoutCancel(ctx), "ROLLBACK")
		}
	}()

	if err := fn(&Tx{ctx: ctx, conn: conn, s: s}); err != nil {
		return err
	}
	if _, err := conn.ExecContext(ctx, "COMMIT"); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	committed = true
	return nil
}

// SaveAlignment replaces the stored rows of name with those of m.
func (tx *Tx) SaveAlignment(name string, m *msa.Msa) error {
	return tx.s.writeAlignment(tx.ctx, tx.conn, name, m)
}

// PushHistory records changes as the newest entry of stack.
func (tx *Tx) PushHistory(name string, stack Stack, changes []msa.Change) error {
	return pushHistory(tx.ctx, tx.conn, name, stack, changes)
}

// PopHistory removes and returns the newest entry of stack.
func (tx *Tx) PopHistory(name string, stack Stack) ([]msa.Change, error) {
	return popHistory(tx.ctx, tx.conn, name, stack)
}

// ClearHistory drops every entry of stack.
func (tx *Tx) ClearHistory(name string, stack Stack) error {
	return clearHistory(tx.ctx, tx.conn, name, stack)
}

// TrimHistory keeps only the newest limit entries of stack.
func (tx *Tx) TrimHistory(name string, stack Stack, limit int) error {
	return trimHistory(tx.ctx, tx.conn, name, stack, limit)
}
