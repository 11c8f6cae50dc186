package paste

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/tabgrid/internal/backend"
	"github.com/vk/tabgrid/internal/selection"
	"github.com/vk/tabgrid/internal/variant"
	"github.com/vk/tabgrid/internal/variantstore"
	"github.com/vk/tabgrid/internal/vecstore"
)

// newStore builds a store with columns Name (str), Count (u32), Note (str)
// and the given number of empty rows.
func newStore(rows int) (*variantstore.Store, []backend.ColumnUID) {
	s := variantstore.New(
		variantstore.ColumnSpec{Name: "Name", Type: variant.Str},
		variantstore.ColumnSpec{Name: "Count", Type: variant.U32},
		variantstore.ColumnSpec{Name: "Note", Type: variant.Str},
	)
	for range rows {
		s.InsertRow(nil)
	}
	return s, s.UsedColumns()
}

func get(t *testing.T, s backend.Backend, row int, col backend.ColumnUID) (variant.Value, bool) {
	t.Helper()
	uid, ok := s.RowUID(backend.VisualRowIdx(row))
	require.True(t, ok)
	return s.Get(backend.CellCoord{Row: uid, Col: col})
}

func TestParseBlock(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want Block
	}{
		{name: "empty", text: "", want: Block{}},
		{name: "only newline", text: "\n", want: Block{}},
		{
			name: "rectangle",
			text: "a\tb\nc\td",
			want: Block{Rows: [][]string{{"a", "b"}, {"c", "d"}}, Width: 2, Height: 2},
		},
		{
			name: "trailing newline and crlf",
			text: "a\tb\r\nc\td\r\n",
			want: Block{Rows: [][]string{{"a", "b"}, {"c", "d"}}, Width: 2, Height: 2},
		},
		{
			name: "holes",
			text: "a\tb\nc",
			want: Block{Rows: [][]string{{"a", "b"}, {"c"}}, Width: 2, Height: 2, HasHoles: true},
		},
		{
			name: "cells are trimmed",
			text: " x \t y",
			want: Block{Rows: [][]string{{"x", "y"}}, Width: 2, Height: 1},
		},
		{
			name: "inner empty line is a row",
			text: "a\n\nb",
			want: Block{Rows: [][]string{{"a"}, {""}, {"b"}}, Width: 1, Height: 3},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if diff := cmp.Diff(tc.want, ParseBlock(tc.text)); diff != "" {
				t.Errorf("ParseBlock(%q) mismatch (-want +got):\n%s", tc.text, diff)
			}
		})
	}
}

func TestFormatBlock(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "a\tb\nc\t", FormatBlock([][]string{{"a", "b"}, {"c", ""}}))
	assert.Equal(t, "", FormatBlock(nil))
}

func TestBegin_EmptyIsNoop(t *testing.T) {
	t.Parallel()

	var e Engine
	res := e.Begin("", selection.Single(0, 0), true, Capabilities{})
	assert.Equal(t, ResultNoop, res.Kind)
	_, pending := e.Pending()
	assert.False(t, pending)
}

func TestBegin_Refused(t *testing.T) {
	t.Parallel()

	var e Engine
	res := e.Begin("a", selection.Range{}, false, Capabilities{})
	assert.Equal(t, ResultRefused, res.Kind)
	assert.Contains(t, res.Warning, "without selection")

	res = e.Begin("a", selection.Single(0, 0), true, Capabilities{ReadOnly: true})
	assert.Equal(t, ResultRefused, res.Kind)
	assert.Contains(t, res.Warning, "read-only")
}

func TestPaste_ExactFitAppliesImmediately(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	store, cols := newStore(3)
	var e Engine
	sel := selection.Span(1, 0, 2, 1)

	// --- Act ---
	res := e.Begin("apple\t3\npear\t4", sel, true, Capabilities{})
	require.Equal(t, ResultApply, res.Kind)
	rep := Apply(context.Background(), store, cols, res.Job)

	// --- Assert ---
	assert.Len(t, rep.Written, 4)
	assert.Empty(t, rep.Coerced)
	v, _ := get(t, store, 1, 0)
	assert.Equal(t, "apple", v.AsString())
	v, _ = get(t, store, 2, 1)
	assert.True(t, variant.U32Val(4).Equals(v), "converted to column type")
	_, ok := get(t, store, 0, 0)
	assert.False(t, ok, "rows outside the selection are untouched")
	_, pending := e.Pending()
	assert.False(t, pending)
}

func TestPaste_CycleFill(t *testing.T) {
	t.Parallel()

	store, cols := newStore(2)
	var e Engine
	res := e.Begin("7", selection.Span(0, 0, 1, 2), true, Capabilities{})
	require.Equal(t, ResultNeedsDecision, res.Kind)
	assert.True(t, res.Prompt.CanFill)
	assert.False(t, res.Prompt.CanCreateRows)

	job, ok := e.Resolve(true, Options{FillWithSame: true})
	require.True(t, ok)
	rep := Apply(context.Background(), store, cols, job)

	assert.Len(t, rep.Written, 6)
	for row := range 2 {
		for _, col := range cols {
			v, ok := get(t, store, row, col)
			require.True(t, ok)
			assert.Equal(t, "7", v.String())
			if col == 1 {
				assert.Equal(t, variant.KindU32, v.Kind())
			} else {
				assert.Equal(t, variant.KindStr, v.Kind())
			}
		}
	}
}

func TestPaste_CreateRows(t *testing.T) {
	t.Parallel()

	store, cols := newStore(2)
	var e Engine
	res := e.Begin("a\nb\nc\nd\ne\n", selection.Span(0, 0, 1, 0), true, Capabilities{})
	require.Equal(t, ResultNeedsDecision, res.Kind)
	require.True(t, res.Prompt.CanCreateRows)
	assert.Equal(t, "You are about to paste 5x1 block into 2x1 selection", res.Prompt.String())

	job, ok := e.Resolve(true, Options{CreateRows: true})
	require.True(t, ok)
	rep := Apply(context.Background(), store, cols, job)

	assert.Len(t, rep.CreatedRows, 3)
	assert.Equal(t, 5, store.RowCount())
	for i, want := range []string{"a", "b", "c", "d", "e"} {
		v, ok := get(t, store, i, 0)
		require.True(t, ok, "row %d", i)
		assert.Equal(t, want, v.AsString())
	}
}

func TestPaste_TallerWithoutCreateRowsTruncates(t *testing.T) {
	t.Parallel()

	store, cols := newStore(2)
	var e Engine
	e.Begin("a\nb\nc", selection.Span(0, 0, 1, 0), true, Capabilities{})
	job, ok := e.Resolve(true, Options{})
	require.True(t, ok)
	rep := Apply(context.Background(), store, cols, job)

	assert.Len(t, rep.Written, 2)
	assert.Equal(t, 2, store.RowCount())
}

func TestPaste_HolesLeaveCellsUntouched(t *testing.T) {
	t.Parallel()

	store, cols := newStore(2)
	uid, _ := store.RowUID(1)
	require.NoError(t, store.Set(backend.CellCoord{Row: uid, Col: 1}, variant.U32Val(9)))

	var e Engine
	res := e.Begin("a\t1\nb", selection.Span(0, 0, 1, 1), true, Capabilities{})
	require.Equal(t, ResultNeedsDecision, res.Kind)
	assert.True(t, res.Prompt.HasHoles)

	job, _ := e.Resolve(true, Options{})
	rep := Apply(context.Background(), store, cols, job)

	assert.Len(t, rep.Written, 3)
	v, _ := get(t, store, 1, 1)
	assert.True(t, variant.U32Val(9).Equals(v))
}

func TestPaste_CreateAdhocColumns(t *testing.T) {
	t.Parallel()

	store, cols := newStore(1)
	var e Engine
	res := e.Begin("a\t1\tn\textra", selection.Span(0, 0, 0, 2), true, Capabilities{CanCreateCols: true})
	require.True(t, res.Prompt.CanCreateCols)

	job, _ := e.Resolve(true, Options{CreateAdhocCols: true})
	rep := Apply(context.Background(), store, cols, job)

	require.Len(t, rep.CreatedCols, 1)
	col, ok := store.Column(rep.CreatedCols[0])
	require.True(t, ok)
	assert.Equal(t, backend.KindAdhoc, col.Kind)
	v, ok := get(t, store, 0, rep.CreatedCols[0])
	require.True(t, ok)
	assert.Equal(t, "extra", v.AsString())
}

func TestPaste_CoercedValuesKeptAsText(t *testing.T) {
	t.Parallel()

	store, cols := newStore(1)
	var e Engine
	res := e.Begin("many", selection.Single(0, 1), true, Capabilities{})
	require.Equal(t, ResultApply, res.Kind)
	rep := Apply(context.Background(), store, cols, res.Job)

	require.Len(t, rep.Coerced, 1)
	v, _ := get(t, store, 0, 1)
	assert.True(t, variant.StrVal("many").Equals(v))
}

func TestPaste_DeclineClearsPending(t *testing.T) {
	t.Parallel()

	var e Engine
	e.Begin("a\nb", selection.Single(0, 0), true, Capabilities{})
	_, pending := e.Pending()
	require.True(t, pending)

	_, ok := e.Resolve(false, Options{CreateRows: true})
	assert.False(t, ok)
	_, pending = e.Pending()
	assert.False(t, pending)
	_, ok = e.Resolve(true, Options{})
	assert.False(t, ok, "nothing left to resolve")
}

func TestPaste_StaleRowsSkipped(t *testing.T) {
	t.Parallel()

	store, cols := newStore(1)
	var e Engine
	res := e.Begin("a\nb", selection.Span(0, 0, 1, 0), true, Capabilities{})
	require.Equal(t, ResultApply, res.Kind)
	rep := Apply(context.Background(), store, cols, res.Job)

	assert.Len(t, rep.Written, 1)
	assert.Equal(t, 1, rep.Skipped)
}

func TestPaste_ReadOnlyBackendWritesNothing(t *testing.T) {
	t.Parallel()

	store := vecstore.New([]string{"a"}, [][]string{{"x"}})
	job := Job{Block: ParseBlock("y"), Selection: selection.Single(0, 0)}
	rep := Apply(context.Background(), store, store.UsedColumns(), job)

	assert.Empty(t, rep.Written)
	assert.Equal(t, 1, rep.Skipped)
}

func TestCopyPasteRoundTrip(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	store, cols := newStore(4)
	values := [][]string{{"a", "b"}, {"c d", ""}}
	for r, row := range values {
		uid, _ := store.RowUID(backend.VisualRowIdx(r))
		for c, text := range row {
			col := cols[c*2]
			require.NoError(t, store.Set(backend.CellCoord{Row: uid, Col: col}, variant.StrVal(text)))
		}
	}
	// Columns 0 and 2 are both strings; reorder so they are adjacent.
	order := []backend.ColumnUID{cols[0], cols[2], cols[1]}

	// --- Act ---
	text := Copy(store, order, selection.Span(0, 0, 1, 1))
	var e Engine
	res := e.Begin(text, selection.Span(2, 0, 3, 1), true, Capabilities{})
	require.Equal(t, ResultApply, res.Kind)
	Apply(context.Background(), store, order, res.Job)

	// --- Assert ---
	assert.Equal(t, "a\tb\nc d\t", text)
	for r := range 2 {
		for c := range 2 {
			src, srcOK := get(t, store, r, order[c])
			dst, dstOK := get(t, store, r+2, order[c])
			require.True(t, srcOK, "row %d col %d", r, c)
			require.True(t, dstOK, "row %d col %d", r+2, c)
			assert.True(t, src.Equals(dst), "row %d col %d: %v != %v", r, c, src, dst)
		}
	}
}
