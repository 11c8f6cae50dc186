package variantstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/tabgrid/internal/backend"
	"github.com/vk/tabgrid/internal/variant"
)

func newTestStore() *Store {
	zero := variant.U32Val(0)
	return New(
		ColumnSpec{Name: "Name", Type: variant.Str, Required: true},
		ColumnSpec{Name: "Count", Type: variant.U32, Default: &zero, Required: true},
	)
}

func TestCreateRow_FillsDefaults(t *testing.T) {
	s := newTestStore()

	uid, ok := s.CreateRow(map[backend.ColumnUID]variant.Value{0: variant.StrVal("apple")})
	require.True(t, ok)

	name, ok := s.Get(backend.CellCoord{Row: uid, Col: 0})
	require.True(t, ok)
	assert.Equal(t, "apple", name.AsString())

	count, ok := s.Get(backend.CellCoord{Row: uid, Col: 1})
	require.True(t, ok, "declared default must be stored")
	assert.True(t, variant.U32Val(0).Equals(count))

	assert.True(t, s.PersistentFlags().HaveUncommittedData)
}

func TestCreateRow_NoEntryWithoutDefault(t *testing.T) {
	s := newTestStore()
	uid, ok := s.CreateRow(nil)
	require.True(t, ok)

	_, ok = s.Get(backend.CellCoord{Row: uid, Col: 0})
	assert.False(t, ok, "column without default has no entry")
}

func TestRowUIDsAreMonotonic(t *testing.T) {
	s := newTestStore()
	a, _ := s.CreateRow(nil)
	b, _ := s.CreateRow(nil)
	s.RemoveRow(b)
	c, _ := s.CreateRow(nil)
	s.Clear()
	d, _ := s.CreateRow(nil)

	assert.Equal(t, []backend.RowUID{0, 1, 2, 3}, []backend.RowUID{a, b, c, d})
	assert.Equal(t, 1, s.RowCount())
}

func TestReadOnly(t *testing.T) {
	s := newTestStore()
	uid := s.InsertRow(nil)
	s.SetReadOnly(true)

	_, ok := s.CreateRow(nil)
	assert.False(t, ok)
	assert.ErrorIs(t, s.Set(backend.CellCoord{Row: uid, Col: 0}, variant.StrVal("x")), backend.ErrReadOnly)
	_, ok = s.CreateColumn("extra")
	assert.False(t, ok)
}

func TestSet_StaleCoord(t *testing.T) {
	s := newTestStore()
	uid := s.InsertRow(nil)
	s.RemoveRow(uid)

	err := s.Set(backend.CellCoord{Row: uid, Col: 0}, variant.StrVal("x"))
	assert.ErrorIs(t, err, backend.ErrStaleCoord)
	err = s.Set(backend.CellCoord{Row: 99, Col: 7}, variant.StrVal("x"))
	assert.ErrorIs(t, err, backend.ErrStaleCoord)
}

func TestClearKeepsSchema(t *testing.T) {
	s := newTestStore()
	s.InsertRow(map[backend.ColumnUID]variant.Value{0: variant.StrVal("a")})
	s.ArchiveFlags()

	s.Clear()

	assert.Equal(t, 0, s.RowCount())
	assert.Equal(t, []backend.ColumnUID{0, 1}, s.UsedColumns())
	assert.True(t, s.PendingFlags().Cleared)
	assert.False(t, s.OneShotFlags().Cleared, "host sees the flag only after archive")
	s.ArchiveFlags()
	assert.True(t, s.OneShotFlags().Cleared)
}

func TestFiltersAndSort(t *testing.T) {
	s := newTestStore()
	for _, row := range []struct {
		name  string
		count uint32
	}{{"pear", 3}, {"apple", 10}, {"plum", 1}} {
		s.InsertRow(map[backend.ColumnUID]variant.Value{0: variant.StrVal(row.name), 1: variant.U32Val(row.count)})
	}

	names := func() []string {
		var out []string
		for i := 0; i < s.RowCount(); i++ {
			uid, ok := s.RowUID(backend.VisualRowIdx(i))
			require.True(t, ok)
			v, _ := s.Get(backend.CellCoord{Row: uid, Col: 0})
			out = append(out, v.AsString())
		}
		return out
	}

	s.SortBy(1, false)
	assert.Equal(t, []string{"plum", "pear", "apple"}, names(), "numeric sort, not lexical")

	s.SortBy(0, true)
	assert.Equal(t, []string{"plum", "pear", "apple"}, names())

	s.AddRowFilter(ValueFilter{Col: 0, Op: OpContains, Value: variant.StrVal("P")})
	assert.Equal(t, []string{"plum", "pear", "apple"}, names())

	s.AddRowFilter(HideRows{0})
	assert.Equal(t, []string{"plum", "apple"}, names())

	s.ClearRowFilters()
	s.ClearSort()
	assert.Equal(t, []string{"pear", "apple", "plum"}, names())
	assert.True(t, s.PendingFlags().VisibleRowVecUpdated)

	_, ok := s.RowUID(backend.VisualRowIdx(3))
	assert.False(t, ok)
}

func TestSkipAndMapping(t *testing.T) {
	s := newTestStore()
	uid := s.InsertRow(nil)

	s.SkipRow(uid, true)
	assert.False(t, s.IsRowSkipped(uid), "skipping is ignored unless enabled")

	s.SetSkippable(true, true)
	s.SkipRow(uid, true)
	s.SkipColumn(1, true)
	assert.True(t, s.IsRowSkipped(uid))
	assert.True(t, s.IsColumnSkipped(1))

	s.SetColumnMappingChoices([]string{"sku", "title"})
	s.SetColumnMapping(0, "title")
	choice, ok := s.ColumnMapping(0)
	assert.True(t, ok)
	assert.Equal(t, "title", choice)
	if mapped := s.PendingFlags().ColumnMappingChanged; assert.NotNil(t, mapped) {
		assert.Equal(t, backend.ColumnUID(0), *mapped)
	}
}

func TestCreateColumn(t *testing.T) {
	s := newTestStore()
	uid, ok := s.CreateColumn("Extra")
	require.True(t, ok)
	assert.Equal(t, backend.ColumnUID(2), uid)

	col, ok := s.Column(uid)
	require.True(t, ok)
	assert.Equal(t, backend.KindAdhoc, col.Kind)
	assert.Equal(t, variant.Str, col.Type)
	assert.True(t, s.PendingFlags().ColumnsChanged)
}
