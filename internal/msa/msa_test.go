package msa

import (
	"cmp"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/inodb/vibe-align/internal/seq"
	"github.com/inodb/vibe-align/internal/subseq"
)

type rowDef struct {
	gapped string
	parent string
	start  int
}

func newRow(t *testing.T, r rowDef) *subseq.Subseq {
	t.Helper()
	parent := r.parent
	start := r.start
	if parent == "" {
		parent = string(seq.Ungap([]byte(r.gapped)))
		start = 1
	}
	s, err := subseq.NewAt(seq.New(r.gapped, seq.Amino), seq.New(parent, seq.Amino), start)
	require.NoError(t, err)
	return s
}

func newMsa(t *testing.T, rows ...rowDef) *Msa {
	t.Helper()
	m := New(seq.Amino)
	for _, r := range rows {
		require.NoError(t, m.Append(newRow(t, r)))
	}
	return m
}

func plain(rows ...string) []rowDef {
	out := make([]rowDef, len(rows))
	for i, r := range rows {
		out[i] = rowDef{gapped: r}
	}
	return out
}

// checkAlignment asserts every row has the common width and is anchored.
func checkAlignment(t *testing.T, m *Msa) {
	t.Helper()
	for i := 1; i <= m.RowCount(); i++ {
		r := m.Row(i)
		assert.Equal(t, m.ColumnCount(), r.Len(), "row %d width", i)
		require.GreaterOrEqual(t, r.UngappedLength(), 1)
		assert.Equal(t, r.Parent()[r.Start()-1:r.Stop()], r.Ungapped(), "row %d anchor", i)
	}
}

func TestInsert(t *testing.T) {
	m := newMsa(t, plain("AB-C", "-DEF")...)
	assert.Equal(t, 2, m.RowCount())
	assert.Equal(t, 4, m.ColumnCount())
	assert.Equal(t, seq.Amino, m.Grammar())

	require.NoError(t, m.Prepend(newRow(t, rowDef{gapped: "GH--"})))
	assert.Equal(t, []string{"GH--", "AB-C", "-DEF"}, m.Strings())

	require.NoError(t, m.Insert(2, newRow(t, rowDef{gapped: "I--K"}), newRow(t, rowDef{gapped: "L-M-"})))
	assert.Equal(t, []string{"GH--", "I--K", "L-M-", "AB-C", "-DEF"}, m.Strings())

	assert.Panics(t, func() { _ = m.Insert(7, newRow(t, rowDef{gapped: "ABCD"})) })
}

func TestInsertRejected(t *testing.T) {
	m := newMsa(t, plain("AB-C")...)

	err := m.Append(newRow(t, rowDef{gapped: "ABC"}))
	assert.ErrorIs(t, err, ErrIncompatibleRow)

	dna, err := subseq.New(seq.New("ACGT", seq.DNA))
	require.NoError(t, err)
	assert.ErrorIs(t, m.Append(dna), ErrGrammarMismatch)

	// One bad row refuses the whole batch.
	err = m.Append(newRow(t, rowDef{gapped: "WXYZ"}), newRow(t, rowDef{gapped: "W"}))
	assert.ErrorIs(t, err, ErrIncompatibleRow)
	assert.Equal(t, 1, m.RowCount())

	// An empty alignment takes its width from the first row.
	e := New(seq.Amino)
	err = e.Append(newRow(t, rowDef{gapped: "AB"}), newRow(t, rowDef{gapped: "ABC"}))
	assert.ErrorIs(t, err, ErrIncompatibleRow)
	assert.True(t, e.IsEmpty())
}

func TestRemoveAndTake(t *testing.T) {
	m := newMsa(t, plain("A-", "B-", "C-", "D-")...)

	m.RemoveAt(2)
	assert.Equal(t, []string{"A-", "C-", "D-"}, m.Strings())

	taken := m.TakeRows(seq.NewRange(2, 3))
	require.Len(t, taken, 2)
	assert.Equal(t, "C-", taken[0].String())
	assert.Equal(t, []string{"A-"}, m.Strings())

	m.RemoveRows(seq.NewRange(1, 1))
	assert.True(t, m.IsEmpty())
	assert.Equal(t, 0, m.ColumnCount())

	assert.Panics(t, func() { m.RemoveAt(1) })
}

func TestMoveRows(t *testing.T) {
	m := newMsa(t, plain("A", "B", "C", "D", "E")...)

	m.MoveRow(1, 3)
	assert.Equal(t, []string{"B", "C", "A", "D", "E"}, m.Strings())

	m.MoveRowRange(seq.NewRange(4, 5), 1)
	assert.Equal(t, []string{"D", "E", "B", "C", "A"}, m.Strings())

	assert.Equal(t, 3, m.MoveRowRangeRelative(seq.NewRange(1, 2), 10))
	assert.Equal(t, []string{"B", "C", "A", "D", "E"}, m.Strings())

	assert.Equal(t, -1, m.MoveRowRangeRelative(seq.NewRange(2, 2), -1))
	assert.Equal(t, []string{"C", "B", "A", "D", "E"}, m.Strings())

	assert.Equal(t, 0, m.MoveRowRangeRelative(seq.NewRange(1, 5), 1))
	assert.Panics(t, func() { m.MoveRowRange(seq.NewRange(1, 2), 5) })
}

func TestSort(t *testing.T) {
	m := newMsa(t,
		rowDef{"-CD", "ABCD", 3},
		rowDef{"AB-", "ABCD", 1},
		rowDef{"B-C", "ABCD", 2},
		rowDef{"-AB", "ABCD", 1},
	)
	m.Sort(func(a, b RowReader) int { return cmp.Compare(a.Start(), b.Start()) })
	assert.Equal(t, []string{"AB-", "-AB", "B-C", "-CD"}, m.Strings())
}

func TestInsertGapColumns(t *testing.T) {
	m := newMsa(t, plain("AB", "C-")...)
	m.InsertGapColumns(2, 2, '.')
	assert.Equal(t, []string{"A..B", "C..-"}, m.Strings())
	m.InsertGapColumns(5, 1, seq.DefaultGap)
	assert.Equal(t, []string{"A..B-", "C..--"}, m.Strings())
	checkAlignment(t, m)

	assert.Panics(t, func() { m.InsertGapColumns(7, 1, '-') })
}

func TestFindGapColumns(t *testing.T) {
	m := newMsa(t, plain(
		"--A--B--",
		"-C---D--",
	)...)

	assert.Equal(t, []seq.Range{
		seq.NewRange(1, 1),
		seq.NewRange(4, 5),
		seq.NewRange(7, 8),
	}, m.FindGapColumns(seq.NewRange(1, 8)))
	assert.Equal(t, []seq.Range{seq.NewRange(4, 5)}, m.FindGapColumns(seq.NewRange(3, 6)))
	assert.Empty(t, m.FindGapColumns(seq.NewRange(2, 3)))

	// A third row splits the middle candidate.
	require.NoError(t, m.Append(newRow(t, rowDef{gapped: "----X---"})))
	assert.Equal(t, []seq.Range{
		seq.NewRange(1, 1),
		seq.NewRange(4, 4),
		seq.NewRange(7, 8),
	}, m.FindGapColumns(seq.NewRange(1, 8)))

	assert.Nil(t, New(seq.Amino).FindGapColumns(seq.NewRange(1, 1)))
}

func TestRemoveGapColumns(t *testing.T) {
	m := newMsa(t, plain("AC-G-T", "A-CG-T")...)

	removed := m.RemoveGapColumns()
	assert.Equal(t, []seq.Range{seq.NewRange(5, 5)}, removed)
	assert.Equal(t, 5, m.ColumnCount())
	assert.Equal(t, []string{"AC-GT", "A-CGT"}, m.Strings())

	// Idempotent.
	assert.Empty(t, m.RemoveGapColumns())
	assert.Equal(t, []string{"AC-GT", "A-CGT"}, m.Strings())
}

func TestRemoveGapColumnsMultiple(t *testing.T) {
	m := newMsa(t, plain("--A--B--", "-C---D--")...)

	removed := m.RemoveGapColumns()
	assert.Equal(t, []seq.Range{seq.NewRange(1, 1), seq.NewRange(4, 5), seq.NewRange(7, 8)}, removed)
	assert.Equal(t, []string{"-AB", "C-D"}, m.Strings())
	checkAlignment(t, m)

	m.InsertGapColumns(2, 3, '-')
	assert.Equal(t, []seq.Range{seq.NewRange(2, 4)}, m.RemoveGapColumnsIn(seq.NewRange(2, 5)))
	assert.Equal(t, []string{"-AB", "C-D"}, m.Strings())
}

func TestExtendLeft(t *testing.T) {
	m := newMsa(t,
		rowDef{"--C-DEF--", "ABCDEFGH", 3},
		rowDef{"-XY-ZZZ-W", "QXYZZZW", 2},
	)
	rows := seq.NewRange(1, 2)
	before := m.Strings()

	assert.True(t, m.CanExtendLeft(2, rows))
	changes := m.ExtendLeft(2, rows)
	assert.Equal(t, []Change{{Op: ExtendLeft, Row: 1, Columns: seq.NewRange(2, 2), Diff: []byte("B"), Gaps: []byte("-")}}, changes)
	assert.Equal(t, []string{"-BC-DEF--", "-XY-ZZZ-W"}, m.Strings())
	assert.False(t, m.CanExtendLeft(2, rows))

	more := m.ExtendLeft(1, rows)
	assert.Len(t, more, 2)
	assert.Equal(t, []string{"ABC-DEF--", "QXY-ZZZ-W"}, m.Strings())
	assert.Equal(t, 1, m.Row(1).Start())
	assert.Equal(t, 1, m.Row(2).Start())
	checkAlignment(t, m)
	assert.False(t, m.CanExtendLeft(1, rows))

	m.Undo(more)
	m.Undo(changes)
	assert.Equal(t, before, m.Strings())
	checkAlignment(t, m)
}

func TestExtendRight(t *testing.T) {
	m := newMsa(t,
		rowDef{"-CD---", "ABCDEF", 3},
		rowDef{"XY-Z--", "XYZ", 1},
	)
	changes := m.ExtendRight(6, seq.NewRange(1, 2))
	require.Len(t, changes, 1)
	assert.Equal(t, Change{Op: ExtendRight, Row: 1, Columns: seq.NewRange(4, 5), Diff: []byte("EF"), Gaps: []byte("--")}, changes[0])
	assert.Equal(t, []string{"-CDEF-", "XY-Z--"}, m.Strings())
	checkAlignment(t, m)
}

func TestTrim(t *testing.T) {
	m := newMsa(t, plain("AB-CD", "A-BCD", "----E")...)
	rows := seq.NewRange(1, 3)
	before := m.Strings()

	assert.True(t, m.CanTrimLeft(3, rows))
	changes := m.TrimLeft(3, rows)
	assert.Equal(t, []Change{
		{Op: TrimLeft, Row: 1, Columns: seq.NewRange(1, 2), Diff: []byte("AB")},
		{Op: TrimLeft, Row: 2, Columns: seq.NewRange(1, 3), Diff: []byte("A-B")},
	}, changes)
	assert.Equal(t, []string{"---CD", "---CD", "----E"}, m.Strings())
	checkAlignment(t, m)

	// The last residue of each row survives.
	right := m.TrimRight(1, rows)
	assert.Len(t, right, 2)
	assert.Equal(t, []string{"---C-", "---C-", "----E"}, m.Strings())
	assert.False(t, m.CanTrimRight(1, rows))
	assert.False(t, m.CanTrimLeft(5, rows))

	redo := m.Undo(right)
	assert.Equal(t, []string{"---CD", "---CD", "----E"}, m.Strings())
	again := m.Undo(redo)
	assert.Equal(t, []string{"---C-", "---C-", "----E"}, m.Strings())

	m.Undo(again)
	m.Undo(changes)
	assert.Equal(t, before, m.Strings())
	checkAlignment(t, m)
}

func TestLevelLeft(t *testing.T) {
	m := newMsa(t,
		rowDef{"ABC-D--", "ABCD", 1},
		rowDef{"--XYZ--", "WXYZ", 2},
	)
	rows := seq.NewRange(1, 2)
	before := m.Strings()

	assert.True(t, m.CanLevelLeft(2, rows))
	changes := m.LevelLeft(2, rows)
	assert.Equal(t, []Change{
		{Op: TrimLeft, Row: 1, Columns: seq.NewRange(1, 1), Diff: []byte("A")},
		{Op: ExtendLeft, Row: 2, Columns: seq.NewRange(2, 2), Diff: []byte("W"), Gaps: []byte("-")},
	}, changes)
	assert.Equal(t, []string{"-BC-D--", "-WXYZ--"}, m.Strings())
	checkAlignment(t, m)
	assert.False(t, m.CanLevelLeft(2, rows))

	inverse := m.Undo(changes)
	assert.Equal(t, before, m.Strings())
	assert.Equal(t, ExtendLeft, inverse[1].Op)
	assert.Equal(t, TrimLeft, inverse[0].Op)
}

func TestLevelLeftTrimThenExtendSameRow(t *testing.T) {
	m := newMsa(t, rowDef{"-B-CD", "ABCD", 2})
	rows := seq.NewRange(1, 1)

	// Column 3 is a gap: B is trimmed from column 2 and put back at 3.
	changes := m.LevelLeft(3, rows)
	require.Len(t, changes, 2)
	assert.Equal(t, TrimLeft, changes[0].Op)
	assert.Equal(t, ExtendLeft, changes[1].Op)
	assert.Equal(t, "--BCD", m.Strings()[0])
	checkAlignment(t, m)

	m.Undo(changes)
	assert.Equal(t, "-B-CD", m.Strings()[0])
}

func TestLevelRight(t *testing.T) {
	m := newMsa(t,
		rowDef{"-AB-CD", "ABCD", 1},
		rowDef{"XY----", "XYZ", 1},
	)
	rows := seq.NewRange(1, 2)
	before := m.Strings()

	changes := m.LevelRight(4, rows)
	assert.Equal(t, []string{"-ABC--", "XYZ---"}, m.Strings())
	checkAlignment(t, m)
	require.Len(t, changes, 3)
	assert.Equal(t, TrimRight, changes[0].Op)
	assert.Equal(t, ExtendRight, changes[1].Op)
	assert.Equal(t, ExtendRight, changes[2].Op)

	m.Undo(changes)
	assert.Equal(t, before, m.Strings())
}

func TestCollapse(t *testing.T) {
	m := newMsa(t, plain("A--B-C", "AB-C--")...)
	rect := NewRect(seq.NewRange(1, 6), seq.NewRange(1, 2))

	assert.True(t, m.CanCollapseLeft(rect))
	changes := m.CollapseLeft(rect)
	assert.Equal(t, []Change{
		{Op: Internal, Row: 1, Columns: seq.NewRange(2, 6), Diff: []byte("--B-C")},
		{Op: Internal, Row: 2, Columns: seq.NewRange(3, 4), Diff: []byte("-C")},
	}, changes)
	assert.Equal(t, []string{"ABC---", "ABC---"}, m.Strings())
	assert.False(t, m.CanCollapseLeft(rect))

	redo := m.Undo(changes)
	assert.Equal(t, []string{"A--B-C", "AB-C--"}, m.Strings())
	assert.Equal(t, []byte("BC---"), redo[1].Diff)

	m.Undo(redo)
	assert.Equal(t, []string{"ABC---", "ABC---"}, m.Strings())

	right := m.CollapseRight(NewRect(seq.NewRange(2, 5), seq.NewRange(1, 1)))
	require.Len(t, right, 1)
	assert.Equal(t, "A--BC-", m.Strings()[0])
	assert.True(t, m.CanCollapseRight(rect))
}

func TestSlideRect(t *testing.T) {
	m := newMsa(t, plain("AB----", "AB-C--")...)
	rect := NewRect(seq.NewRange(1, 2), seq.NewRange(1, 2))

	assert.Equal(t, 1, m.SlidableDistance(rect, 3))
	assert.Equal(t, 1, m.SlideRect(rect, 3))
	assert.Equal(t, []string{"-AB---", "-ABC--"}, m.Strings())
	checkAlignment(t, m)

	moved := NewRect(seq.NewRange(2, 3), seq.NewRange(1, 2))
	assert.False(t, m.CanSlideRect(moved, 1))
	assert.Equal(t, -1, m.SlideRect(moved, -5))
	assert.Equal(t, []string{"AB----", "AB-C--"}, m.Strings())
	assert.Equal(t, 0, m.SlideRect(rect, -1))
	assert.Equal(t, 0, m.SlideRect(rect, 0))
}

func TestSlideRectSingleRow(t *testing.T) {
	m := newMsa(t, plain("AB----", "AB-C--")...)
	rect := NewRect(seq.NewRange(1, 2), seq.NewRange(1, 1))
	assert.Equal(t, 3, m.SlideRect(rect, 3))
	assert.Equal(t, []string{"---AB-", "AB-C--"}, m.Strings())
}

func TestSetSubseqStart(t *testing.T) {
	m := newMsa(t,
		rowDef{"-C-D", "ABCDEF", 3},
		rowDef{"AB-C", "ABC", 1},
	)

	changes, ok := m.SetSubseqStart(1, 1)
	require.True(t, ok)
	assert.Equal(t, []Change{{Op: ExtendLeft, Row: 1, Columns: seq.NewRange(1, 2), Diff: []byte("AB"), Gaps: []byte("--")}}, changes)
	assert.Equal(t, []string{"ABC-D", "-AB-C"}, m.Strings())
	checkAlignment(t, m)

	changes, ok = m.SetSubseqStart(1, 9)
	assert.False(t, ok)
	assert.Empty(t, changes)

	changes, ok = m.SetSubseqStart(1, 1)
	assert.True(t, ok)
	assert.Empty(t, changes)

	changes, ok = m.SetSubseqStart(1, 3)
	require.True(t, ok)
	assert.Equal(t, []Change{{Op: TrimLeft, Row: 1, Columns: seq.NewRange(1, 2), Diff: []byte("AB")}}, changes)
	assert.Equal(t, "--C-D", m.Strings()[0])

	m.Undo(changes)
	assert.Equal(t, "ABC-D", m.Strings()[0])
}

func TestSetSubseqStop(t *testing.T) {
	m := newMsa(t,
		rowDef{"-C-D", "ABCDEF", 3},
		rowDef{"AB-C", "ABC", 1},
	)

	changes, ok := m.SetSubseqStop(2, 1)
	require.True(t, ok)
	assert.Equal(t, []Change{{Op: TrimRight, Row: 2, Columns: seq.NewRange(2, 4), Diff: []byte("B-C")}}, changes)
	assert.Equal(t, []string{"-C-D", "A---"}, m.Strings())

	changes, ok = m.SetSubseqStop(1, 6)
	require.True(t, ok)
	assert.Equal(t, []Change{{Op: ExtendRight, Row: 1, Columns: seq.NewRange(5, 6), Diff: []byte("EF"), Gaps: []byte("--")}}, changes)
	assert.Equal(t, []string{"-C-DEF", "A-----"}, m.Strings())
	checkAlignment(t, m)
}

func TestSetSubseqStartCrossingStop(t *testing.T) {
	m := newMsa(t,
		rowDef{"-C-D", "ABCDEF", 3},
		rowDef{"ABC-", "ABC", 1},
	)
	before := m.Strings()

	changes, ok := m.SetSubseqStart(1, 6)
	require.True(t, ok)
	require.Len(t, changes, 2)
	assert.Equal(t, ExtendRight, changes[0].Op)
	assert.Equal(t, TrimLeft, changes[1].Op)
	assert.Equal(t, []string{"-----F", "ABC---"}, m.Strings())
	assert.Equal(t, 6, m.Row(1).Start())
	assert.Equal(t, 6, m.Row(1).Stop())
	checkAlignment(t, m)

	// Undo restores the residues; the padding columns remain as gap
	// columns until they are removed.
	m.Undo(changes)
	assert.Equal(t, []seq.Range{seq.NewRange(5, 6)}, m.RemoveGapColumns())
	assert.Equal(t, before, m.Strings())
}

func TestUndoKeepsDotGaps(t *testing.T) {
	rows := seq.NewRange(1, 1)
	tests := []struct {
		name   string
		edit   func(m *Msa) []Change
		edited string
	}{
		{"extend left", func(m *Msa) []Change { return m.ExtendLeft(1, rows) }, "ABC-DEF.."},
		{"extend right", func(m *Msa) []Change { return m.ExtendRight(9, rows) }, "..C-DEFGH"},
		{"trim left", func(m *Msa) []Change { return m.TrimLeft(5, rows) }, "...-.EF.."},
		{"trim right", func(m *Msa) []Change { return m.TrimRight(6, rows) }, "..C-D...."},
		{"level left", func(m *Msa) []Change { return m.LevelLeft(2, rows) }, ".BC-DEF.."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMsa(t, rowDef{"..C-DEF..", "ABCDEFGH", 3})

			changes := tt.edit(m)
			require.NotEmpty(t, changes)
			assert.Equal(t, tt.edited, m.Strings()[0])

			redo := m.Undo(changes)
			assert.Equal(t, "..C-DEF..", m.Strings()[0])

			m.Undo(redo)
			assert.Equal(t, tt.edited, m.Strings()[0])
			checkAlignment(t, m)
		})
	}
}

func TestSetSubseqStartPadsWithGap(t *testing.T) {
	m := newMsa(t,
		rowDef{".C-D", "ABCDEF", 3},
		rowDef{"AB.C", "ABC", 1},
	)
	m.SetGap('.')

	changes, ok := m.SetSubseqStart(1, 1)
	require.True(t, ok)
	assert.Equal(t, []Change{{Op: ExtendLeft, Row: 1, Columns: seq.NewRange(1, 2), Diff: []byte("AB"), Gaps: []byte("..")}}, changes)
	assert.Equal(t, []string{"ABC-D", ".AB.C"}, m.Strings())

	m.Undo(changes)
	assert.Equal(t, []string{"..C-D", ".AB.C"}, m.Strings())
	assert.Panics(t, func() { m.SetGap('x') })
}

func TestUndoRejectsBadRecords(t *testing.T) {
	m := newMsa(t, plain("AB-C")...)
	assert.Panics(t, func() { m.Undo([]Change{{Op: ExtendLeft, Row: 2, Columns: seq.NewRange(1, 1), Diff: []byte("A")}}) })
	assert.Panics(t, func() { m.Undo([]Change{{Op: Internal, Row: 1, Columns: seq.NewRange(1, 2), Diff: []byte("A")}}) })
	assert.Panics(t, func() { m.Undo([]Change{{Row: 1, Columns: seq.NewRange(1, 1), Diff: []byte("A")}}) })
}

func TestChangedRowsAndColumns(t *testing.T) {
	changes := []Change{
		{Op: TrimLeft, Row: 3, Columns: seq.NewRange(4, 6)},
		{Op: ExtendLeft, Row: 1, Columns: seq.NewRange(2, 2)},
		{Op: ExtendLeft, Row: 3, Columns: seq.NewRange(7, 9)},
	}
	assert.Equal(t, []int{1, 3}, ChangedRows(changes))
	assert.Equal(t, seq.NewRange(2, 9), ChangedColumns(changes))
	assert.True(t, ChangedColumns(nil).IsEmpty())
}

func TestOp(t *testing.T) {
	for _, op := range []Op{ExtendLeft, ExtendRight, TrimLeft, TrimRight, Internal} {
		parsed, err := ParseOp(op.String())
		require.NoError(t, err)
		assert.Equal(t, op, parsed)
		assert.Equal(t, op, op.Inverse().Inverse())
	}
	_, err := ParseOp("bogus")
	assert.Error(t, err)
	assert.Equal(t, "Op(0)", Op(0).String())
	assert.Panics(t, func() { Op(0).Inverse() })

	c := Change{Op: TrimRight, Row: 2, Columns: seq.NewRange(4, 5), Diff: []byte("GT")}
	b, err := json.Marshal(c)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"op":"trim_right"`)
	var back Change
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, c, back)
	_, err = json.Marshal(Change{})
	assert.Error(t, err)
}

func TestChangesLogArray(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	changes := Changes{
		{Op: ExtendLeft, Row: 1, Columns: seq.NewRange(1, 2), Diff: []byte("AB")},
		{Op: Internal, Row: 3, Columns: seq.NewRange(4, 6), Diff: []byte("-C-")},
	}
	zap.New(core).Debug("edit", zap.Array("changes", changes))

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	got, ok := fields["changes"].([]interface{})
	require.True(t, ok)
	require.Len(t, got, 2)
	assert.Equal(t, map[string]interface{}{
		"op": "extend_left", "row": int64(1), "begin": int64(1), "end": int64(2), "diff": "AB",
	}, got[0])
}

func BenchmarkFindGapColumns(b *testing.B) {
	m := New(seq.Amino)
	row := []byte{}
	for i := 0; i < 2000; i++ {
		if i%7 == 0 {
			row = append(row, 'A')
		} else {
			row = append(row, '-')
		}
	}
	for i := 0; i < 100; i++ {
		s, err := subseq.New(seq.FromBytes(row, seq.Amino))
		if err != nil {
			b.Fatal(err)
		}
		if err := m.Append(s); err != nil {
			b.Fatal(err)
		}
	}
	cols := seq.NewRange(1, m.ColumnCount())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.FindGapColumns(cols)
	}
}
