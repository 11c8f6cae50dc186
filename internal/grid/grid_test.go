package grid_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/tabgrid/internal/backend"
	"github.com/vk/tabgrid/internal/grid"
	"github.com/vk/tabgrid/internal/paste"
	"github.com/vk/tabgrid/internal/selection"
	"github.com/vk/tabgrid/internal/testutil"
	"github.com/vk/tabgrid/internal/variant"
	"github.com/vk/tabgrid/internal/vecstore"
)

func coord(row backend.RowUID, col backend.ColumnUID) backend.CellCoord {
	return backend.CellCoord{Row: row, Col: col}
}

func get(t *testing.T, be backend.Backend, c backend.CellCoord) variant.Value {
	t.Helper()
	v, ok := be.Get(c)
	require.True(t, ok, "cell %s has no entry", c)
	return v
}

func TestFrame_DrawsHeaderAndRows(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	s := testutil.FruitStore("apple", "pear")
	g := grid.New(grid.DefaultSettings(), nil)
	surf := testutil.NewFakeSurface(10)

	// --- Act ---
	res := g.Frame(context.Background(), s, surf)

	// --- Assert ---
	assert.Equal(t, []string{"Name", "Count", "ID"}, surf.HeaderNames())
	assert.Len(t, surf.Cells, 6)
	assert.Equal(t, []backend.RowUID{0, 1}, res.VisibleRows)
	c, ok := surf.Cell(1, 1)
	require.True(t, ok)
	assert.Equal(t, "2", c.Text)
	assert.True(t, c.Present)
	assert.True(t, s.OneShotFlags().FirstPass, "pending flags are archived at the end of the frame")
	assert.False(t, s.PendingFlags().Any())
}

func TestFrame_EditAndCommit(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	ctx := context.Background()
	s := testutil.FruitStore("apple", "pear")
	g := grid.New(grid.DefaultSettings(), nil)
	surf := testutil.NewFakeSurface(10)
	g.Frame(ctx, s, surf)

	// --- Act ---
	surf.Push(grid.ClickEvent{Row: 0, Col: 1})
	g.Frame(ctx, s, surf)
	surf.Push(grid.ClickEvent{Row: 0, Col: 1})
	g.Frame(ctx, s, surf)
	editing, _ := surf.Cell(0, 1)

	surf.Push(grid.EditTextEvent{Text: "42"}, grid.KeyEvent{Key: grid.KeyEnter})
	res := g.Frame(ctx, s, surf)
	g.Frame(ctx, s, surf)

	// --- Assert ---
	assert.True(t, editing.Editing)
	assert.Equal(t, "1", editing.EditText, "edit starts from the current value")

	require.Len(t, res.Mutations, 1)
	assert.Equal(t, grid.MutSetCell, res.Mutations[0].Kind)
	assert.Equal(t, []backend.CellCoord{coord(0, 1)}, res.Written)
	assert.True(t, variant.U32Val(42).Equals(get(t, s, coord(0, 1))))
	assert.Equal(t, selection.ModeNone, g.Mode())

	updated, _ := surf.Cell(0, 1)
	assert.True(t, updated.JustUpdated)
}

func TestFrame_CommitKeepsTextThatDoesNotFit(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	ctx := context.Background()
	s := testutil.FruitStore("apple")
	g := grid.New(grid.DefaultSettings(), nil)
	surf := testutil.NewFakeSurface(10)

	// --- Act ---
	surf.Push(grid.ClickEvent{Row: 0, Col: 1}, grid.ClickEvent{Row: 0, Col: 1})
	g.Frame(ctx, s, surf)
	surf.Push(grid.EditTextEvent{Text: "many"}, grid.ClickEvent{Row: 0, Col: 0})
	res := g.Frame(ctx, s, surf)

	// --- Assert ---
	assert.True(t, variant.StrVal("many").Equals(get(t, s, coord(0, 1))))
	require.Len(t, res.Notices, 1)
	assert.Equal(t, slog.LevelWarn, res.Notices[0].Level)
	assert.Contains(t, res.Notices[0].Text, `"Count"`)
	sel, ok := g.Selection()
	require.True(t, ok)
	assert.True(t, sel.Equal(selection.Single(0, 0)), "clicking elsewhere commits and moves")
}

func TestFrame_EscapeDiscardsEdit(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	ctx := context.Background()
	s := testutil.FruitStore("apple")
	g := grid.New(grid.DefaultSettings(), nil)
	surf := testutil.NewFakeSurface(10)

	// --- Act ---
	surf.Push(grid.ClickEvent{Row: 0, Col: 0}, grid.ClickEvent{Row: 0, Col: 0})
	g.Frame(ctx, s, surf)
	surf.Push(grid.EditTextEvent{Text: "banana"}, grid.KeyEvent{Key: grid.KeyEscape})
	res := g.Frame(ctx, s, surf)

	// --- Assert ---
	assert.Empty(t, res.Written)
	assert.Equal(t, "apple", get(t, s, coord(0, 0)).AsString())
	assert.Equal(t, selection.ModeNone, g.Mode())
}

func TestFrame_ReadOnlyGating(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	ctx := context.Background()
	s := testutil.FruitStore("apple")
	s.SetReadOnly(true)
	g := grid.New(grid.DefaultSettings(), nil)
	surf := testutil.NewFakeSurface(10)

	// --- Act ---
	surf.Push(
		grid.ClickEvent{Row: 0, Col: 0},
		grid.ClickEvent{Row: 0, Col: 0},
		grid.AddRowEvent{},
		grid.ClearRequestEvent{},
		grid.PasteEvent{Text: "x"},
	)
	res := g.Frame(ctx, s, surf)

	// --- Assert ---
	assert.Equal(t, selection.ModeRange, g.Mode(), "read-only cells never enter edit mode")
	assert.Empty(t, res.Mutations)
	assert.Equal(t, 1, s.RowCount())
	assert.Empty(t, surf.Prompts)
	require.Len(t, res.Notices, 2)
	assert.Equal(t, "Refusing to clear a read-only table", res.Notices[0].Text)
	assert.Equal(t, "Refusing to paste into a read-only table", res.Notices[1].Text)
	for _, c := range surf.Cells {
		assert.True(t, c.ReadOnly)
		assert.Equal(t, grid.AffordanceNone, c.Affordance)
	}
}

func TestFrame_ReadOnlyColumnNeverEdits(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	s := testutil.FruitStore("apple")
	g := grid.New(grid.DefaultSettings(), nil)
	surf := testutil.NewFakeSurface(10)

	// --- Act ---
	surf.Push(grid.ClickEvent{Row: 0, Col: 2}, grid.ClickEvent{Row: 0, Col: 2})
	g.Frame(context.Background(), s, surf)

	// --- Assert ---
	assert.Equal(t, selection.ModeRange, g.Mode())
}

func TestFrame_VecstoreIsReadOnly(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	vs := vecstore.New([]string{"a", "b"}, [][]string{{"1", "2"}})
	g := grid.New(grid.DefaultSettings(), nil)
	surf := testutil.NewFakeSurface(10)

	// --- Act ---
	surf.Push(grid.ClickEvent{Row: 0, Col: 0}, grid.ClickEvent{Row: 0, Col: 0})
	g.Frame(context.Background(), vs, surf)

	// --- Assert ---
	assert.Equal(t, selection.ModeRange, g.Mode())
	assert.Equal(t, []string{"a", "b"}, surf.HeaderNames())
}

func TestFrame_AddAffordance(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	ctx := context.Background()
	s := testutil.FruitStore("apple")
	s.InsertRow(nil)
	g := grid.New(grid.DefaultSettings(), nil)
	surf := testutil.NewFakeSurface(10)
	g.Frame(ctx, s, surf)
	name, _ := surf.Cell(1, 0)
	count, _ := surf.Cell(1, 1)
	id, _ := surf.Cell(1, 2)

	// --- Act ---
	surf.Push(grid.AddCellEvent{Row: 1, Col: 0})
	res := g.Frame(ctx, s, surf)

	// --- Assert ---
	assert.Equal(t, grid.AffordanceAdd, name.Affordance)
	assert.False(t, name.Present)
	assert.Equal(t, grid.AffordanceNone, count.Affordance, "default was filled in")
	assert.Equal(t, grid.AffordanceNone, id.Affordance, "read-only column")

	assert.Equal(t, []backend.CellCoord{coord(1, 0)}, res.Written)
	assert.True(t, variant.StrVal("").Equals(get(t, s, coord(1, 0))))
	sel, ok := g.Selection()
	require.True(t, ok)
	assert.True(t, sel.Equal(selection.Single(1, 0)))
}

func TestFrame_AddCellCommitsPendingEdit(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	ctx := context.Background()
	s := testutil.FruitStore("apple")
	s.InsertRow(nil)
	g := grid.New(grid.DefaultSettings(), nil)
	surf := testutil.NewFakeSurface(10)
	g.Frame(ctx, s, surf)
	surf.Push(grid.ClickEvent{Row: 0, Col: 0})
	g.Frame(ctx, s, surf)
	surf.Push(grid.ClickEvent{Row: 0, Col: 0})
	g.Frame(ctx, s, surf)
	require.Equal(t, selection.ModeEditing, g.Mode())

	// --- Act ---
	surf.Push(grid.EditTextEvent{Text: "banana"}, grid.AddCellEvent{Row: 1, Col: 0})
	res := g.Frame(ctx, s, surf)

	// --- Assert ---
	assert.ElementsMatch(t, []backend.CellCoord{coord(0, 0), coord(1, 0)}, res.Written)
	assert.Equal(t, "banana", get(t, s, coord(0, 0)).AsString(), "leaving the edited cell commits it")
	assert.True(t, variant.StrVal("").Equals(get(t, s, coord(1, 0))))
	assert.Equal(t, selection.ModeRange, g.Mode())
	sel, ok := g.Selection()
	require.True(t, ok)
	assert.True(t, sel.Equal(selection.Single(1, 0)))
}

func TestFrame_NeverCellIsHatched(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	s := testutil.FruitStore("apple")
	require.NoError(t, s.Set(coord(0, 0), variant.NeverVal()))
	g := grid.New(grid.DefaultSettings(), nil)
	surf := testutil.NewFakeSurface(10)

	// --- Act ---
	surf.Push(grid.ClickEvent{Row: 0, Col: 0}, grid.ClickEvent{Row: 0, Col: 0})
	g.Frame(context.Background(), s, surf)

	// --- Assert ---
	c, _ := surf.Cell(0, 0)
	assert.Equal(t, grid.AffordanceHatch, c.Affordance)
	assert.Equal(t, selection.ModeRange, g.Mode())
}

func TestFrame_AddRow(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	s := testutil.FruitStore("apple")
	g := grid.New(grid.DefaultSettings(), nil)
	surf := testutil.NewFakeSurface(10)

	// --- Act ---
	surf.Push(grid.AddRowEvent{})
	res := g.Frame(context.Background(), s, surf)

	// --- Assert ---
	assert.Equal(t, 2, s.RowCount())
	assert.Len(t, res.VisibleRows, 1, "rows are added after drawing")
	assert.True(t, s.OneShotFlags().RowSetUpdated)
	assert.False(t, s.PendingFlags().Any())
}

func TestFrame_PasteExactFit(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	s := testutil.FruitStore("apple", "pear")
	g := grid.New(grid.DefaultSettings(), nil)
	surf := testutil.NewFakeSurface(10)

	// --- Act ---
	surf.Push(
		grid.ClickEvent{Row: 0, Col: 0},
		grid.ClickEvent{Row: 1, Col: 1, Shift: true},
		grid.PasteEvent{Text: "kiwi\t7\nplum\t8\n"},
	)
	res := g.Frame(context.Background(), s, surf)

	// --- Assert ---
	assert.Len(t, res.Written, 4)
	assert.Equal(t, "kiwi", get(t, s, coord(0, 0)).AsString())
	assert.True(t, variant.U32Val(8).Equals(get(t, s, coord(1, 1))))
	c, _ := surf.Cell(1, 0)
	assert.Equal(t, "plum", c.Text, "pasted values are drawn in the same frame")
	assert.Empty(t, surf.Prompts)
}

func TestFrame_PasteNeedsDecision(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	ctx := context.Background()
	s := testutil.FruitStore("apple", "pear")
	g := grid.New(grid.DefaultSettings(), nil)
	surf := testutil.NewFakeSurface(10)

	// --- Act ---
	surf.Push(grid.ClickEvent{Row: 0, Col: 0}, grid.PasteEvent{Text: "a\nb\nc"})
	g.Frame(ctx, s, surf)
	prompts := surf.Prompts

	surf.Push(grid.PasteDecisionEvent{Confirm: true, Options: paste.Options{CreateRows: true}})
	res := g.Frame(ctx, s, surf)

	// --- Assert ---
	require.Len(t, prompts, 1)
	assert.Equal(t, grid.PromptPaste, prompts[0].Kind)
	assert.Equal(t, "You are about to paste 3x1 block into 1x1 selection", prompts[0].Text)
	assert.True(t, prompts[0].Paste.CanCreateRows)

	assert.Empty(t, surf.Prompts)
	assert.Len(t, res.Written, 3)
	assert.Equal(t, 4, s.RowCount())
	assert.Equal(t, "a", get(t, s, coord(0, 0)).AsString())
	assert.Equal(t, "c", get(t, s, coord(3, 0)).AsString())
}

func TestFrame_PasteDeclined(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	ctx := context.Background()
	s := testutil.FruitStore("apple")
	g := grid.New(grid.DefaultSettings(), nil)
	surf := testutil.NewFakeSurface(10)

	// --- Act ---
	surf.Push(grid.ClickEvent{Row: 0, Col: 0}, grid.PasteEvent{Text: "a\nb"})
	g.Frame(ctx, s, surf)
	surf.Push(grid.PasteDecisionEvent{Confirm: false})
	res := g.Frame(ctx, s, surf)

	// --- Assert ---
	assert.Empty(t, res.Written)
	assert.Equal(t, "apple", get(t, s, coord(0, 0)).AsString())
	assert.Equal(t, 1, s.RowCount())
}

func TestFrame_PasteWhileEditingAppendsText(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	s := testutil.FruitStore("apple")
	g := grid.New(grid.DefaultSettings(), nil)
	surf := testutil.NewFakeSurface(10)

	// --- Act ---
	surf.Push(
		grid.ClickEvent{Row: 0, Col: 0},
		grid.ClickEvent{Row: 0, Col: 0},
		grid.PasteEvent{Text: " pie"},
	)
	res := g.Frame(context.Background(), s, surf)

	// --- Assert ---
	assert.Equal(t, "apple pie", g.EditText())
	assert.Empty(t, res.Written)
}

func TestFrame_CopySelection(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	s := testutil.FruitStore("apple", "pear")
	clip := &testutil.RecordingClipboard{}
	g := grid.New(grid.DefaultSettings(), clip)
	surf := testutil.NewFakeSurface(10)

	// --- Act ---
	surf.Push(
		grid.ClickEvent{Row: 0, Col: 0},
		grid.ClickEvent{Row: 1, Col: 1, Shift: true},
		grid.KeyEvent{Key: grid.KeyCopy},
	)
	res := g.Frame(context.Background(), s, surf)

	// --- Assert ---
	assert.Equal(t, "apple\t1\npear\t2", res.Copied)
	assert.Equal(t, res.Copied, clip.Last())
}

func TestFrame_CopyClipboardFailure(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	s := testutil.FruitStore("apple")
	g := grid.New(grid.DefaultSettings(), &testutil.RecordingClipboard{Fail: true})
	surf := testutil.NewFakeSurface(10)

	// --- Act ---
	surf.Push(grid.ClickEvent{Row: 0, Col: 0}, grid.KeyEvent{Key: grid.KeyCopy})
	res := g.Frame(context.Background(), s, surf)

	// --- Assert ---
	assert.Equal(t, "apple", res.Copied)
	require.Len(t, res.Notices, 1)
	assert.Contains(t, res.Notices[0].Text, testutil.ErrClipboardUnavailable.Error())
	assert.Len(t, g.Notices(), 1)
}

func TestFrame_ClearAsksFirst(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	ctx := context.Background()
	s := testutil.FruitStore("apple", "pear")
	g := grid.New(grid.DefaultSettings(), nil)
	surf := testutil.NewFakeSurface(10)

	// --- Act ---
	surf.Push(grid.ClickEvent{Row: 1, Col: 1}, grid.ClearRequestEvent{})
	g.Frame(ctx, s, surf)
	prompts := surf.Prompts
	rowsBefore := s.RowCount()

	surf.Push(grid.ClearDecisionEvent{Confirm: true})
	res := g.Frame(ctx, s, surf)

	// --- Assert ---
	require.Len(t, prompts, 1)
	assert.Equal(t, grid.PromptClear, prompts[0].Kind)
	assert.Equal(t, 2, rowsBefore)

	require.Len(t, res.Mutations, 1)
	assert.Equal(t, grid.MutClear, res.Mutations[0].Kind)
	assert.Equal(t, 0, s.RowCount())
	assert.True(t, s.OneShotFlags().Cleared)
	_, ok := g.Selection()
	assert.False(t, ok)
	assert.Equal(t, []string{"Name", "Count", "ID"}, surf.HeaderNames(), "schema survives a clear")
}

func TestFrame_ExternalClearDropsSelection(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	ctx := context.Background()
	s := testutil.FruitStore("apple", "pear")
	g := grid.New(grid.DefaultSettings(), nil)
	surf := testutil.NewFakeSurface(10)
	surf.Push(grid.ClickEvent{Row: 1, Col: 1})
	g.Frame(ctx, s, surf)

	// --- Act ---
	s.Clear()
	g.Frame(ctx, s, surf)

	// --- Assert ---
	_, ok := g.Selection()
	assert.False(t, ok)
	assert.Empty(t, surf.Cells)
}

func TestFrame_RemovedRowsClampSelection(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	ctx := context.Background()
	s := testutil.FruitStore("apple", "pear", "plum")
	g := grid.New(grid.DefaultSettings(), nil)
	surf := testutil.NewFakeSurface(10)
	surf.Push(grid.ClickEvent{Row: 2, Col: 0})
	g.Frame(ctx, s, surf)

	// --- Act ---
	s.RemoveRow(2)
	g.Frame(ctx, s, surf)

	// --- Assert ---
	_, ok := g.Selection()
	assert.False(t, ok)
}

func TestFrame_ColumnDropSwapsColumns(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	ctx := context.Background()
	s := testutil.FruitStore("apple")
	g := grid.New(grid.DefaultSettings(), nil)
	surf := testutil.NewFakeSurface(10)
	surf.Push(grid.ClickEvent{Row: 0, Col: 0})
	g.Frame(ctx, s, surf)

	// --- Act ---
	surf.Push(grid.ColumnDropEvent{Dragged: 0, Target: 2})
	g.Frame(ctx, s, surf)

	// --- Assert ---
	assert.Equal(t, []backend.ColumnUID{2, 1, 0}, g.Columns())
	assert.Equal(t, []string{"ID", "Count", "Name"}, surf.HeaderNames())
	sel, ok := g.Selection()
	require.True(t, ok)
	assert.True(t, sel.Equal(selection.Single(0, 2)), "single cell follows its column")
	c, _ := surf.Cell(0, 2)
	assert.Equal(t, "apple", c.Text)
	assert.True(t, c.Selected)
}

func TestViewConfig_LooseOrderAndMapping(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	ctx := context.Background()
	s := testutil.FruitStore("apple")
	s.SetColumnMappingChoices([]string{"fruit", "quantity"})
	g := grid.New(grid.DefaultSettings(), nil)
	v := grid.DefaultViewConfig()
	v.ColumnOrder = []string{"ID", "Missing", "Name"}
	v.ColumnMapping = map[string]string{"Name": "fruit"}
	v.ShowColumnTypes = false
	g.LoadViewConfig(v)
	surf := testutil.NewFakeSurface(10)

	// --- Act ---
	g.Frame(ctx, s, surf)
	surf.Push(grid.ColumnMappingEvent{Col: 1, Choice: "quantity"})
	g.Frame(ctx, s, surf)
	saved := g.SaveViewConfig()

	// --- Assert ---
	assert.Equal(t, []string{"ID", "Name", "Count"}, surf.HeaderNames())
	assert.False(t, surf.Header.Cells[0].ShowType)
	assert.Equal(t, []string{"fruit", "quantity"}, surf.Header.MappingChoices)

	choice, ok := s.ColumnMapping(0)
	require.True(t, ok)
	assert.Equal(t, "fruit", choice)

	assert.Equal(t, []string{"ID", "Name", "Count"}, saved.ColumnOrder)
	assert.Equal(t, map[string]string{"Name": "fruit", "Count": "quantity"}, saved.ColumnMapping)
	assert.False(t, saved.ShowColumnTypes)
}

func TestFrame_HeterogeneousRowHeights(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	ctx := context.Background()
	s := testutil.FruitStore("apple", "pear", "plum")
	g := grid.New(grid.DefaultSettings(), nil)
	surf := testutil.NewFakeSurface(4)

	// --- Act ---
	surf.Push(grid.RowMeasuredEvent{Row: 0, Height: 3})
	res := g.Frame(ctx, s, surf)

	// --- Assert ---
	assert.Equal(t, []backend.RowUID{0, 1}, res.VisibleRows)
	c, _ := surf.Cell(1, 0)
	assert.Equal(t, 3, c.Line)
	assert.Equal(t, 1, c.Height)
	assert.Equal(t, 3, g.RowHeight(0))
}

func TestFrame_UniformRowHeights(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	s := testutil.FruitStore("apple", "pear", "plum")
	g := grid.New(grid.DefaultSettings(), nil)
	v := grid.DefaultViewConfig()
	v.HeterogeneousRows = false
	v.MinRowHeight = 2
	g.LoadViewConfig(v)
	surf := testutil.NewFakeSurface(4)

	// --- Act ---
	surf.Push(grid.RowMeasuredEvent{Row: 0, Height: 3})
	res := g.Frame(context.Background(), s, surf)

	// --- Assert ---
	assert.Equal(t, []backend.RowUID{0, 1}, res.VisibleRows)
	assert.Equal(t, 2, g.RowHeight(0))
}

func TestFrame_ScrollFollowsKeyboard(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	ctx := context.Background()
	s := testutil.FruitStore("a", "b", "c", "d", "e")
	g := grid.New(grid.DefaultSettings(), nil)
	surf := testutil.NewFakeSurface(2)
	surf.Push(grid.ClickEvent{Row: 0, Col: 0})
	g.Frame(ctx, s, surf)

	// --- Act ---
	surf.Push(
		grid.KeyEvent{Key: grid.KeyDown},
		grid.KeyEvent{Key: grid.KeyDown},
		grid.KeyEvent{Key: grid.KeyDown},
	)
	res := g.Frame(ctx, s, surf)

	// --- Assert ---
	assert.Equal(t, 2, g.Scroll())
	assert.Equal(t, []backend.RowUID{2, 3}, res.VisibleRows)
	c, ok := surf.Cell(3, 0)
	require.True(t, ok)
	assert.True(t, c.Selected)
}

func TestFrame_ScrollEventIsClamped(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	s := testutil.FruitStore("a", "b", "c")
	g := grid.New(grid.DefaultSettings(), nil)
	surf := testutil.NewFakeSurface(10)

	// --- Act ---
	surf.Push(grid.ScrollEvent{FirstRow: 50})
	res := g.Frame(context.Background(), s, surf)

	// --- Assert ---
	assert.Equal(t, 2, g.Scroll())
	assert.Equal(t, []backend.RowUID{2}, res.VisibleRows)
}

func TestFrame_SkipRowAndColumn(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	ctx := context.Background()
	s := testutil.FruitStore("apple", "pear")
	s.SetSkippable(true, true)
	g := grid.New(grid.DefaultSettings(), nil)
	surf := testutil.NewFakeSurface(10)

	// --- Act ---
	surf.Push(grid.SkipRowEvent{Row: 1, Skip: true}, grid.SkipColumnEvent{Col: 2, Skip: true})
	g.Frame(ctx, s, surf)
	g.Frame(ctx, s, surf)

	// --- Assert ---
	assert.True(t, s.IsRowSkipped(1))
	assert.True(t, s.IsColumnSkipped(2))
	c, _ := surf.Cell(1, 0)
	assert.True(t, c.RowSkipped)
	assert.True(t, surf.Header.Cells[2].Skipped)
}

func TestFrame_HighlightOnSingleCell(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	ctx := context.Background()
	rec := &testutil.HighlightRecorder{Backend: testutil.FruitStore("apple", "pear")}
	g := grid.New(grid.DefaultSettings(), nil)
	surf := testutil.NewFakeSurface(10)

	// --- Act ---
	surf.Push(grid.ClickEvent{Row: 1, Col: 0})
	g.Frame(ctx, rec, surf)
	g.Frame(ctx, rec, surf)
	surf.Push(grid.ClickEvent{Row: 0, Col: 1, Shift: true})
	g.Frame(ctx, rec, surf)

	// --- Assert ---
	assert.Equal(t, []backend.CellCoord{coord(1, 0)}, rec.Highlighted)
}

func TestCellMetadata(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	s := testutil.FruitStore("apple")
	g := grid.New(grid.DefaultSettings(), nil)
	surf := testutil.NewFakeSurface(10)
	lint := grid.Lint{Kind: grid.LintHighlightRange, Start: 0, End: 2, Color: "red"}

	// --- Act ---
	g.AddCellLint(coord(0, 0), lint)
	g.AddCellLint(coord(0, 0), lint)
	g.AddCellTooltip(coord(0, 0), "unknown fruit")
	g.SetCellColor(coord(0, 1), "yellow")
	g.Frame(context.Background(), s, surf)
	drawn, _ := surf.Cell(0, 0)
	g.ClearCellLints(coord(0, 0))

	// --- Assert ---
	assert.Equal(t, []grid.Lint{lint}, drawn.Meta.Lints)
	assert.Equal(t, []string{"unknown fruit"}, drawn.Meta.Tooltips)
	assert.Equal(t, grid.CellMeta{}, g.CellMeta(coord(0, 0)))
	assert.Equal(t, "yellow", g.CellMeta(coord(0, 1)).Color)
}
