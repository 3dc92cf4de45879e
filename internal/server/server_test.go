package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/vibe-align/internal/seq"
	"github.com/inodb/vibe-align/internal/session"
	"github.com/inodb/vibe-align/internal/store"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	st, err := store.Open("")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return New(session.NewManager(st), nil)
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func sequences(resp AlignmentResponse) []string {
	var out []string
	for _, r := range resp.Rows {
		out = append(out, r.Sequence)
	}
	return out
}

func createDemo(t *testing.T, s *Server) {
	t.Helper()
	rec := do(t, s, http.MethodPost, "/api/alignments", CreateRequest{
		Name:    "demo",
		Grammar: "amino",
		Rows: []session.RowInput{
			{Sequence: "--C-DEF--", Parent: "ABCDEFGH"},
			{Sequence: "-XY-ZZZ-W", Parent: "QXYZZZW", Start: 2},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestCreateAndGet(t *testing.T) {
	s := newTestServer(t)
	createDemo(t, s)

	rec := do(t, s, http.MethodGet, "/api/alignments/demo", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[AlignmentResponse](t, rec)
	assert.Equal(t, "Amino", resp.Grammar)
	assert.Equal(t, 9, resp.Columns)
	assert.Equal(t, []string{"--C-DEF--", "-XY-ZZZ-W"}, sequences(resp))
	assert.Equal(t, RowResponse{Start: 3, Stop: 6, Sequence: "--C-DEF--"}, resp.Rows[0])

	rec = do(t, s, http.MethodGet, "/api/alignments", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]store.Summary](t, rec)
	require.Len(t, list, 1)
	assert.Equal(t, 2, list[0].Rows)
}

func TestCreateErrors(t *testing.T) {
	s := newTestServer(t)
	createDemo(t, s)

	tests := []struct {
		name   string
		body   any
		status int
	}{
		{"duplicate", CreateRequest{Name: "demo", Grammar: "dna"}, http.StatusConflict},
		{"grammar", CreateRequest{Name: "x", Grammar: "klingon"}, http.StatusBadRequest},
		{"ragged rows", CreateRequest{Name: "x", Grammar: "dna", Rows: []session.RowInput{
			{Sequence: "AC"}, {Sequence: "ACG"},
		}}, http.StatusBadRequest},
		{"body", "not an object", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/api/alignments", tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
		})
	}
}

func TestEditUndoRedo(t *testing.T) {
	s := newTestServer(t)
	createDemo(t, s)

	rec := do(t, s, http.MethodPost, "/api/alignments/demo/extend-left", EditRequest{Column: 1})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decode[AlignmentResponse](t, rec)
	assert.Equal(t, []string{"ABC-DEF--", "QXY-ZZZ-W"}, sequences(resp))
	assert.True(t, resp.Journaled)
	require.Len(t, resp.Changes, 2)
	assert.Equal(t, "AB", resp.Changes[0].Diff)
	assert.Equal(t, "--", resp.Changes[0].Gaps)

	rec = do(t, s, http.MethodGet, "/api/alignments/demo/history", nil)
	assert.Equal(t, HistoryResponse{Undo: 1}, decode[HistoryResponse](t, rec))

	rec = do(t, s, http.MethodPost, "/api/alignments/demo/undo", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"--C-DEF--", "-XY-ZZZ-W"}, sequences(decode[AlignmentResponse](t, rec)))

	rec = do(t, s, http.MethodPost, "/api/alignments/demo/undo", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, s, http.MethodPost, "/api/alignments/demo/redo", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"ABC-DEF--", "QXY-ZZZ-W"}, sequences(decode[AlignmentResponse](t, rec)))
}

func TestColumnEdits(t *testing.T) {
	s := newTestServer(t)
	createDemo(t, s)

	rec := do(t, s, http.MethodPost, "/api/alignments/demo/gap-columns", EditRequest{Column: 1, Count: 2, Gap: "."})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decode[AlignmentResponse](t, rec)
	assert.Equal(t, 11, resp.Columns)
	assert.Equal(t, "..--C-DEF--", resp.Rows[0].Sequence)
	assert.False(t, resp.Journaled)

	rec = do(t, s, http.MethodPost, "/api/alignments/demo/remove-gap-columns", EditRequest{})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp = decode[AlignmentResponse](t, rec)
	assert.Equal(t, 7, resp.Columns)
	assert.Len(t, resp.Removed, 3)

	rec = do(t, s, http.MethodPost, "/api/alignments/demo/gap-columns", EditRequest{Column: 1, Gap: "--"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSlideAndCollapse(t *testing.T) {
	s := newTestServer(t)
	createDemo(t, s)

	rec := do(t, s, http.MethodPost, "/api/alignments/demo/slide", map[string]any{
		"rect":  map[string]int{"left": 3, "top": 1, "right": 3, "bottom": 1},
		"delta": 5,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decode[AlignmentResponse](t, rec)
	assert.Equal(t, 1, resp.Delta)
	assert.Equal(t, "---CDEF--", resp.Rows[0].Sequence)

	rec = do(t, s, http.MethodPost, "/api/alignments/demo/collapse-right", map[string]any{
		"rect": map[string]int{"left": 1, "top": 2, "right": 9, "bottom": 2},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp = decode[AlignmentResponse](t, rec)
	assert.Equal(t, "---XYZZZW", resp.Rows[1].Sequence)
	require.Len(t, resp.Changes, 1)
	assert.Equal(t, "internal", resp.Changes[0].Op.String())
}

func TestAnchorAndRows(t *testing.T) {
	s := newTestServer(t)
	createDemo(t, s)

	rec := do(t, s, http.MethodPost, "/api/alignments/demo/anchor", EditRequest{Row: 1, Start: 1, Stop: 8})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decode[AlignmentResponse](t, rec)
	assert.Equal(t, "ABC-DEFGH", resp.Rows[0].Sequence)

	rec = do(t, s, http.MethodPost, "/api/alignments/demo/move-rows", map[string]any{
		"rows": map[string]int{"begin": 2, "end": 2},
		"to":   1,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp = decode[AlignmentResponse](t, rec)
	assert.Equal(t, "-XY-ZZZ-W", resp.Rows[0].Sequence)

	rec = do(t, s, http.MethodPost, "/api/alignments/demo/remove-rows", map[string]any{
		"rows": map[string]int{"begin": 1, "end": 1},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Len(t, decode[AlignmentResponse](t, rec).Rows, 1)
}

func TestEditErrors(t *testing.T) {
	s := newTestServer(t)
	createDemo(t, s)

	tests := []struct {
		name   string
		path   string
		body   any
		status int
	}{
		{"missing alignment", "/api/alignments/nope/trim-left", EditRequest{Column: 1}, http.StatusNotFound},
		{"column out of range", "/api/alignments/demo/trim-left", EditRequest{Column: 20}, http.StatusBadRequest},
		{"rows out of range", "/api/alignments/demo/level-right", EditRequest{Column: 2, Rows: seq.NewRange(1, 5)}, http.StatusBadRequest},
		{"bad body", "/api/alignments/demo/trim-right", "nope", http.StatusBadRequest},
		{"redo empty", "/api/alignments/demo/redo", nil, http.StatusConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			assert.Contains(t, rec.Body.String(), `"error"`)
		})
	}
}

func TestDelete(t *testing.T) {
	s := newTestServer(t)
	createDemo(t, s)

	rec := do(t, s, http.MethodDelete, "/api/alignments/demo", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = do(t, s, http.MethodDelete, "/api/alignments/demo", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = do(t, s, http.MethodGet, "/api/alignments/demo", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
