// Package session runs edits against stored alignments. Each edit loads
// the alignment, applies one operation, journals its change records for
// undo and redo, and saves the result.
//
// Edits to the same alignment are serialized; edits to different
// alignments run independently.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/inodb/vibe-align/internal/msa"
	"github.com/inodb/vibe-align/internal/seq"
	"github.com/inodb/vibe-align/internal/store"
	"github.com/inodb/vibe-align/internal/subseq"
)

// DefaultHistoryLimit is the number of journal entries kept per stack.
const DefaultHistoryLimit = 100

var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
	ErrExists        = errors.New("alignment already exists")
	// ErrInvalid wraps errors caused by bad edit arguments or row input.
	ErrInvalid = errors.New("invalid request")
)

// Result describes what an edit did, for callers that redraw or report.
type Result struct {
	Changes []msa.Change `json:"changes,omitempty"`
	Removed []seq.Range  `json:"removed,omitempty"`
	Delta   int          `json:"delta,omitempty"`
	// Journaled is false for edits that cannot be undone; they clear both
	// journals.
	Journaled bool `json:"journaled"`
}

// Edit applies one operation to m. Edits that produce change records
// return them in Result.Changes and set Result.Journaled.
type Edit func(m *msa.Msa) (Result, error)

// Manager hands out per-alignment locks over a store.
type Manager struct {
	store        *store.Store
	historyLimit int
	gap          byte
	logger       *zap.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewManager creates a manager over s.
func NewManager(s *store.Store) *Manager {
	return &Manager{
		store:        s,
		historyLimit: DefaultHistoryLimit,
		gap:          seq.DefaultGap,
		logger:       zap.NewNop(),
		locks:        make(map[string]*sync.Mutex),
	}
}

// SetLogger sets the logger for info and debug messages.
func (mg *Manager) SetLogger(l *zap.Logger) {
	mg.logger = l
}

// SetHistoryLimit sets how many entries each journal keeps.
func (mg *Manager) SetHistoryLimit(n int) {
	mg.historyLimit = n
}

// SetGap sets the gap character used for inserted gap columns and for the
// padding columns added when re-anchoring rows.
func (mg *Manager) SetGap(gap byte) error {
	if !seq.IsGap(gap) {
		return fmt.Errorf("%q is not a gap character", gap)
	}
	mg.gap = gap
	return nil
}

// Gap returns the gap character used for inserted gap columns.
func (mg *Manager) Gap() byte {
	return mg.gap
}

func (mg *Manager) lock(name string) func() {
	mg.mu.Lock()
	l, ok := mg.locks[name]
	if !ok {
		l = &sync.Mutex{}
		mg.locks[name] = l
	}
	mg.mu.Unlock()
	l.Lock()
	return l.Unlock
}

// RowInput is a gapped sequence to add to a new alignment. Parent defaults
// to the ungapped sequence and Start, when zero, is found by searching
// the parent.
type RowInput struct {
	Sequence string `json:"sequence"`
	Parent   string `json:"parent,omitempty"`
	Start    int    `json:"start,omitempty"`
}

// Create saves a new alignment called name built from rows.
func (mg *Manager) Create(ctx context.Context, name string, g seq.Grammar, rows []RowInput) (*msa.Msa, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: alignment name is empty", ErrInvalid)
	}
	unlock := mg.lock(name)
	defer unlock()

	ok, err := mg.store.Exists(ctx, name)
	if err != nil {
		return nil, err
	}
	if ok {
		return nil, fmt.Errorf("create %q: %w", name, ErrExists)
	}

	m := msa.New(g)
	m.SetLogger(mg.logger)
	m.SetGap(mg.gap)
	for i, in := range rows {
		row, err := newRow(in, g)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %w", ErrInvalid, i+1, err)
		}
		if err := m.Append(row); err != nil {
			return nil, fmt.Errorf("%w: row %d: %w", ErrInvalid, i+1, err)
		}
	}
	if err := mg.store.SaveAlignment(ctx, name, m); err != nil {
		return nil, err
	}
	mg.logger.Info("created alignment",
		zap.String("name", name),
		zap.Int("rows", m.RowCount()),
		zap.Int("columns", m.ColumnCount()))
	return m, nil
}

func newRow(in RowInput, g seq.Grammar) (*subseq.Subseq, error) {
	b := seq.New(in.Sequence, g)
	if in.Parent == "" && in.Start == 0 {
		return subseq.New(b)
	}
	parent := seq.New(in.Parent, g)
	if in.Parent == "" {
		parent = seq.New(b.Ungapped(), g)
	}
	if in.Start == 0 {
		return subseq.NewWithParent(b, parent)
	}
	return subseq.NewAt(b, parent, in.Start)
}

// Load returns the current state of name.
func (mg *Manager) Load(ctx context.Context, name string) (*msa.Msa, error) {
	unlock := mg.lock(name)
	defer unlock()
	return mg.load(ctx, name)
}

func (mg *Manager) load(ctx context.Context, name string) (*msa.Msa, error) {
	m, err := mg.store.LoadAlignment(ctx, name)
	if err != nil {
		return nil, err
	}
	m.SetLogger(mg.logger)
	m.SetGap(mg.gap)
	return m, nil
}

// List returns every saved alignment.
func (mg *Manager) List(ctx context.Context) ([]store.Summary, error) {
	return mg.store.ListAlignments(ctx)
}

// Delete removes name and its journals.
func (mg *Manager) Delete(ctx context.Context, name string) error {
	unlock := mg.lock(name)
	defer unlock()
	return mg.store.DeleteAlignment(ctx, name)
}

// Apply runs edit against name and saves the result. Journaled edits push
// their non-empty change list onto the undo journal and clear redo. Edits
// that are not journaled, or that change the column count, first clear
// both journals since the recorded coordinates no longer hold.
func (mg *Manager) Apply(ctx context.Context, name string, edit Edit) (*msa.Msa, Result, error) {
	unlock := mg.lock(name)
	defer unlock()

	m, err := mg.load(ctx, name)
	if err != nil {
		return nil, Result{}, err
	}
	before := m.ColumnCount()

	res, err := edit(m)
	if err != nil {
		return nil, Result{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	err = mg.store.Update(ctx, func(tx *store.Tx) error {
		if !res.Journaled || m.ColumnCount() != before {
			// Column and row-order edits shift every recorded coordinate.
			if err := clearHistory(tx, name); err != nil {
				return err
			}
		}
		if res.Journaled && len(res.Changes) > 0 {
			if err := mg.push(tx, name, store.Undo, res.Changes); err != nil {
				return err
			}
			if err := tx.ClearHistory(name, store.Redo); err != nil {
				return err
			}
		}
		return tx.SaveAlignment(name, m)
	})
	if err != nil {
		return nil, Result{}, err
	}
	mg.logger.Debug("applied edit",
		zap.String("name", name),
		zap.Array("changes", msa.Changes(res.Changes)),
		zap.Int("removed", len(res.Removed)),
		zap.Int("delta", res.Delta),
		zap.Bool("journaled", res.Journaled))
	return m, res, nil
}

// Undo reverts the newest journaled edit of name.
func (mg *Manager) Undo(ctx context.Context, name string) (*msa.Msa, Result, error) {
	return mg.replay(ctx, name, store.Undo, store.Redo, ErrNothingToUndo)
}

// Redo reapplies the newest undone edit of name.
func (mg *Manager) Redo(ctx context.Context, name string) (*msa.Msa, Result, error) {
	return mg.replay(ctx, name, store.Redo, store.Undo, ErrNothingToRedo)
}

func (mg *Manager) replay(ctx context.Context, name string, from, to store.Stack, empty error) (*msa.Msa, Result, error) {
	unlock := mg.lock(name)
	defer unlock()

	m, err := mg.load(ctx, name)
	if err != nil {
		return nil, Result{}, err
	}
	// A failed save or a record that no longer fits leaves the journal
	// entry in place.
	var changes, inverse []msa.Change
	err = mg.store.Update(ctx, func(tx *store.Tx) error {
		var err error
		if changes, err = tx.PopHistory(name, from); err != nil {
			return err
		}
		inverse = m.Undo(changes)
		if err := mg.push(tx, name, to, inverse); err != nil {
			return err
		}
		return tx.SaveAlignment(name, m)
	})
	if errors.Is(err, store.ErrEmptyStack) {
		return nil, Result{}, empty
	}
	if err != nil {
		return nil, Result{}, err
	}
	mg.logger.Debug("replayed history",
		zap.String("name", name),
		zap.String("from", string(from)),
		zap.Array("changes", msa.Changes(changes)))
	return m, Result{Changes: inverse, Journaled: true}, nil
}

// History returns the depth of both journals of name.
func (mg *Manager) History(ctx context.Context, name string) (undo, redo int, err error) {
	unlock := mg.lock(name)
	defer unlock()

	if undo, err = mg.store.HistoryDepth(ctx, name, store.Undo); err != nil {
		return 0, 0, err
	}
	if redo, err = mg.store.HistoryDepth(ctx, name, store.Redo); err != nil {
		return 0, 0, err
	}
	return undo, redo, nil
}

func (mg *Manager) push(tx *store.Tx, name string, stack store.Stack, changes []msa.Change) error {
	if err := tx.PushHistory(name, stack, changes); err != nil {
		return err
	}
	return tx.TrimHistory(name, stack, mg.historyLimit)
}

func clearHistory(tx *store.Tx, name string) error {
	if err := tx.ClearHistory(name, store.Undo); err != nil {
		return err
	}
	return tx.ClearHistory(name, store.Redo)
}
