package variantstore

import (
	"cmp"
	"slices"
	"strings"

	"github.com/vk/tabgrid/internal/backend"
	"github.com/vk/tabgrid/internal/variant"
)

// RowFilter decides whether a row stays visible. Filters are combined with
// logical AND.
type RowFilter interface {
	keep(s *Store, uid backend.RowUID) bool
}

// HideRows hides the listed rows.
type HideRows []backend.RowUID

func (h HideRows) keep(_ *Store, uid backend.RowUID) bool {
	return !slices.Contains(h, uid)
}

// ShowRows hides every row that is not listed.
type ShowRows []backend.RowUID

func (f ShowRows) keep(_ *Store, uid backend.RowUID) bool {
	return slices.Contains(f, uid)
}

// FilterOp is the comparison used by ValueFilter.
type FilterOp uint8

const (
	OpEquals FilterOp = iota
	OpContains
)

// ValueFilter keeps rows whose cell in Col matches Value. Contains compares
// the stringified values case-insensitively.
type ValueFilter struct {
	Col   backend.ColumnUID
	Op    FilterOp
	Value variant.Value
}

func (f ValueFilter) keep(s *Store, uid backend.RowUID) bool {
	v, ok := s.cells[backend.CellCoord{Row: uid, Col: f.Col}]
	if !ok {
		return false
	}
	switch f.Op {
	case OpContains:
		return strings.Contains(strings.ToLower(v.String()), strings.ToLower(f.Value.String()))
	default:
		return v.Equals(f.Value)
	}
}

type sortKey struct {
	col        backend.ColumnUID
	descending bool
}

// AddRowFilter narrows the visible rows.
func (s *Store) AddRowFilter(f RowFilter) {
	s.filters = append(s.filters, f)
	s.visibleChanged()
}

// ClearRowFilters makes every row visible again.
func (s *Store) ClearRowFilters() {
	s.filters = nil
	s.visibleChanged()
}

// SortBy orders visible rows by the values of col. Rows without an entry go
// last; ties keep insertion order.
func (s *Store) SortBy(col backend.ColumnUID, descending bool) {
	s.sort = &sortKey{col: col, descending: descending}
	s.visibleChanged()
}

// ClearSort restores insertion order.
func (s *Store) ClearSort() {
	s.sort = nil
	s.visibleChanged()
}

func (s *Store) visibleChanged() {
	s.rebuildVisible()
	s.flags.Mutate(func(f *backend.OneShotFlags) { f.VisibleRowVecUpdated = true })
}

func (s *Store) rebuildVisible() {
	visible := make([]backend.RowUID, 0, len(s.rowOrder))
	for _, uid := range s.rowOrder {
		if s.passesFilters(uid) {
			visible = append(visible, uid)
		}
	}
	if s.sort != nil {
		key := *s.sort
		slices.SortStableFunc(visible, func(a, b backend.RowUID) int {
			va, okA := s.cells[backend.CellCoord{Row: a, Col: key.col}]
			vb, okB := s.cells[backend.CellCoord{Row: b, Col: key.col}]
			switch {
			case !okA && !okB:
				return 0
			case !okA:
				return 1
			case !okB:
				return -1
			}
			c := compareValues(va, vb)
			if key.descending {
				c = -c
			}
			return c
		})
	}
	s.visible = visible
}

func (s *Store) passesFilters(uid backend.RowUID) bool {
	for _, f := range s.filters {
		if !f.keep(s, uid) {
			return false
		}
	}
	return true
}

func compareValues(a, b variant.Value) int {
	na, okA := a.AsUint()
	nb, okB := b.AsUint()
	if okA && okB && a.Kind() != variant.KindEnum {
		return cmp.Compare(na, nb)
	}
	return cmp.Compare(a.String(), b.String())
}
