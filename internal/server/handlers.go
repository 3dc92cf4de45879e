package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/inodb/vibe-align/internal/msa"
	"github.com/inodb/vibe-align/internal/seq"
	"github.com/inodb/vibe-align/internal/session"
	"github.com/inodb/vibe-align/internal/store"
)

// CreateRequest creates a new alignment.
type CreateRequest struct {
	Name    string             `json:"name"`
	Grammar string             `json:"grammar"`
	Rows    []session.RowInput `json:"rows"`
}

// EditRequest carries the arguments of every edit endpoint. Each endpoint
// reads only the fields it needs.
type EditRequest struct {
	Column  int       `json:"column"`
	Count   int       `json:"count"`
	Gap     string    `json:"gap"`
	Columns seq.Range `json:"columns"`
	Rows    seq.Range `json:"rows"`
	Rect    msa.Rect  `json:"rect"`
	Delta   int       `json:"delta"`
	Row     int       `json:"row"`
	Start   int       `json:"start"`
	Stop    int       `json:"stop"`
	To      int       `json:"to"`
}

// RowResponse is one alignment row.
type RowResponse struct {
	Start    int    `json:"start"`
	Stop     int    `json:"stop"`
	Sequence string `json:"sequence"`
}

// ChangeResponse is a change record with its diff as text.
type ChangeResponse struct {
	Op      msa.Op    `json:"op"`
	Row     int       `json:"row"`
	Columns seq.Range `json:"columns"`
	Diff    string    `json:"diff"`
	Gaps    string    `json:"gaps,omitempty"`
}

// AlignmentResponse is the state of an alignment after a request, plus
// what the request changed.
type AlignmentResponse struct {
	Name      string           `json:"name"`
	Grammar   string           `json:"grammar"`
	Columns   int              `json:"columns"`
	Rows      []RowResponse    `json:"rows"`
	Changes   []ChangeResponse `json:"changes,omitempty"`
	Removed   []seq.Range      `json:"removed,omitempty"`
	Delta     int              `json:"delta,omitempty"`
	Journaled bool             `json:"journaled"`
}

// HistoryResponse reports the journal depths of an alignment.
type HistoryResponse struct {
	Undo int `json:"undo"`
	Redo int `json:"redo"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func newAlignmentResponse(name string, m *msa.Msa, res session.Result) AlignmentResponse {
	resp := AlignmentResponse{
		Name:      name,
		Grammar:   m.Grammar().String(),
		Columns:   m.ColumnCount(),
		Rows:      make([]RowResponse, 0, m.RowCount()),
		Removed:   res.Removed,
		Delta:     res.Delta,
		Journaled: res.Journaled,
	}
	for i := 1; i <= m.RowCount(); i++ {
		row := m.Row(i)
		resp.Rows = append(resp.Rows, RowResponse{Start: row.Start(), Stop: row.Stop(), Sequence: row.String()})
	}
	for _, c := range res.Changes {
		resp.Changes = append(resp.Changes, ChangeResponse{Op: c.Op, Row: c.Row, Columns: c.Columns, Diff: string(c.Diff), Gaps: string(c.Gaps)})
	}
	return resp
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps session and store errors to status codes.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, session.ErrExists),
		errors.Is(err, session.ErrNothingToUndo),
		errors.Is(err, session.ErrNothingToRedo):
		status = http.StatusConflict
	case errors.Is(err, session.ErrInvalid):
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", zap.Error(err))
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	list, err := s.sessions.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if list == nil {
		list = []store.Summary{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	g, err := seq.ParseGrammar(req.Grammar)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	m, err := s.sessions.Create(r.Context(), req.Name, g, req.Rows)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, newAlignmentResponse(req.Name, m, session.Result{}))
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	m, err := s.sessions.Load(r.Context(), name)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newAlignmentResponse(name, m, session.Result{}))
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Delete(r.Context(), chi.URLParam(r, "name")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	undo, redo, err := s.sessions.History(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, HistoryResponse{Undo: undo, Redo: redo})
}

func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	m, res, err := s.sessions.Undo(r.Context(), name)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newAlignmentResponse(name, m, res))
}

func (s *Server) handleRedo(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	m, res, err := s.sessions.Redo(r.Context(), name)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newAlignmentResponse(name, m, res))
}

// editFunc turns a decoded request into an edit.
type editFunc func(req EditRequest, gap byte) (session.Edit, error)

func (s *Server) edit(f editFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req EditRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
			return
		}
		e, err := f(req, s.sessions.Gap())
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		name := chi.URLParam(r, "name")
		m, res, err := s.sessions.Apply(r.Context(), name, e)
		if err != nil {
			s.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, newAlignmentResponse(name, m, res))
	}
}

func gapColumns(req EditRequest, gap byte) (session.Edit, error) {
	if req.Gap != "" {
		if len(req.Gap) != 1 {
			return nil, errors.New("gap must be a single character")
		}
		gap = req.Gap[0]
	}
	count := req.Count
	if count == 0 {
		count = 1
	}
	return session.InsertGapColumns(req.Column, count, gap), nil
}

func removeGapColumns(req EditRequest, _ byte) (session.Edit, error) {
	return session.RemoveGapColumns(req.Columns), nil
}

func slide(req EditRequest, _ byte) (session.Edit, error) {
	return session.SlideRect(req.Rect, req.Delta), nil
}

func sided(op func(session.Side, int, seq.Range) session.Edit, side session.Side) editFunc {
	return func(req EditRequest, _ byte) (session.Edit, error) {
		return op(side, req.Column, req.Rows), nil
	}
}

func collapse(side session.Side) editFunc {
	return func(req EditRequest, _ byte) (session.Edit, error) {
		return session.Collapse(side, req.Rect), nil
	}
}

func anchor(req EditRequest, _ byte) (session.Edit, error) {
	return session.Anchor(req.Row, req.Start, req.Stop), nil
}

func moveRows(req EditRequest, _ byte) (session.Edit, error) {
	return session.MoveRows(req.Rows, req.To), nil
}

func removeRows(req EditRequest, _ byte) (session.Edit, error) {
	return session.RemoveRows(req.Rows), nil
}
