package variantstore

import (
	"maps"
	"slices"

	"github.com/vk/tabgrid/internal/backend"
	"github.com/vk/tabgrid/internal/variant"
)

// ColumnSpec declares a column when building a Store.
type ColumnSpec struct {
	Name     string
	Synonyms []string
	Type     variant.Type
	Default  *variant.Value
	Kind     backend.ColumnKind
	Required bool
	ReadOnly bool
}

// Store is an in-memory backend.Backend.
type Store struct {
	cells    map[backend.CellCoord]variant.Value
	rowOrder []backend.RowUID
	rowSet   map[backend.RowUID]struct{}
	visible  []backend.RowUID
	nextRow  backend.RowUID

	columns map[backend.ColumnUID]*backend.Column
	nextCol backend.ColumnUID

	rowSkip        map[backend.RowUID]bool
	rowsSkippable  bool
	colsSkippable  bool
	filters        []RowFilter
	sort           *sortKey
	mappingChoices []string
	mapping        map[backend.ColumnUID]string

	persistent backend.PersistentFlags
	flags      *backend.FlagBuffer
}

// New creates a store with columns assigned ColumnUIDs 0..n-1 in order.
func New(columns ...ColumnSpec) *Store {
	s := &Store{
		cells:   make(map[backend.CellCoord]variant.Value),
		rowSet:  make(map[backend.RowUID]struct{}),
		columns: make(map[backend.ColumnUID]*backend.Column),
		rowSkip: make(map[backend.RowUID]bool),
		mapping: make(map[backend.ColumnUID]string),
		persistent: backend.PersistentFlags{
			ColumnInfoPresent: true,
			RowSetPresent:     true,
		},
		flags: backend.NewFlagBuffer(backend.OneShotFlags{FirstPass: true, ColumnsReset: true}),
	}
	for i, spec := range columns {
		s.InsertColumn(backend.ColumnUID(i), spec)
	}
	return s
}

// SetReadOnly marks the whole table as read only.
func (s *Store) SetReadOnly(readOnly bool) {
	s.persistent.IsReadOnly = readOnly
}

// SetSkippable enables soft-hiding of rows and/or columns.
func (s *Store) SetSkippable(rows, cols bool) {
	s.rowsSkippable = rows
	s.colsSkippable = cols
}

// SetColumnMappingChoices sets the external entities columns can map to.
func (s *Store) SetColumnMappingChoices(choices []string) {
	s.mappingChoices = slices.Clone(choices)
}

// ColumnMapping returns the choice made for a column, if any.
func (s *Store) ColumnMapping(uid backend.ColumnUID) (string, bool) {
	choice, ok := s.mapping[uid]
	return choice, ok
}

// MarkCommitted clears the uncommitted-data flag, e.g. after saving.
func (s *Store) MarkCommitted() {
	s.persistent.HaveUncommittedData = false
}

// InsertColumn adds or replaces the column with the given uid.
func (s *Store) InsertColumn(uid backend.ColumnUID, spec ColumnSpec) {
	s.columns[uid] = &backend.Column{
		Name:       spec.Name,
		Synonyms:   slices.Clone(spec.Synonyms),
		Type:       spec.Type,
		Default:    spec.Default,
		Kind:       spec.Kind,
		IsSortable: true,
		IsRequired: spec.Required,
		IsUsed:     true,
		IsReadOnly: spec.ReadOnly,
	}
	if uid >= s.nextCol {
		s.nextCol = uid + 1
	}
	s.flags.Mutate(func(f *backend.OneShotFlags) { f.ColumnsChanged = true })
}

// RemoveAllColumns drops every column and all row data.
func (s *Store) RemoveAllColumns() {
	s.columns = make(map[backend.ColumnUID]*backend.Column)
	s.mapping = make(map[backend.ColumnUID]string)
	s.nextCol = 0
	s.Clear()
	s.flags.Mutate(func(f *backend.OneShotFlags) { f.ColumnsReset = true })
}

// MarkReloaded records that the store was refilled from its source.
func (s *Store) MarkReloaded() {
	s.persistent.HaveUncommittedData = false
	s.flags.Mutate(func(f *backend.OneShotFlags) {
		f.Reloaded = true
		f.ColumnsReset = true
		f.RowSetUpdated = true
		f.VisibleRowVecUpdated = true
	})
}

// InsertRow appends a row regardless of the read-only flag. It is used by
// importers to fill the store.
func (s *Store) InsertRow(values map[backend.ColumnUID]variant.Value) backend.RowUID {
	uid := s.nextRow
	s.nextRow++
	for col, v := range values {
		s.cells[backend.CellCoord{Row: uid, Col: col}] = v
	}
	for col, c := range s.columns {
		if c.Default == nil {
			continue
		}
		if _, provided := values[col]; !provided {
			s.cells[backend.CellCoord{Row: uid, Col: col}] = *c.Default
		}
	}
	s.rowOrder = append(s.rowOrder, uid)
	s.rowSet[uid] = struct{}{}
	s.rebuildVisible()
	s.flags.Mutate(func(f *backend.OneShotFlags) {
		f.RowSetUpdated = true
		f.VisibleRowVecUpdated = true
	})
	return uid
}

// Remove deletes the entry of a cell, making it "no entry" again.
func (s *Store) Remove(coord backend.CellCoord) {
	delete(s.cells, coord)
}

// RowUIDs returns every row in insertion order, ignoring filters.
func (s *Store) RowUIDs() []backend.RowUID {
	return slices.Clone(s.rowOrder)
}

func (s *Store) Clear() {
	s.cells = make(map[backend.CellCoord]variant.Value)
	s.rowOrder = nil
	s.rowSet = make(map[backend.RowUID]struct{})
	s.visible = nil
	s.rowSkip = make(map[backend.RowUID]bool)
	s.flags.Mutate(func(f *backend.OneShotFlags) {
		f.Cleared = true
		f.RowSetUpdated = true
		f.VisibleRowVecUpdated = true
	})
}

func (s *Store) PersistentFlags() backend.PersistentFlags { return s.persistent }

func (s *Store) OneShotFlags() backend.OneShotFlags { return s.flags.Archived() }

func (s *Store) PendingFlags() backend.OneShotFlags { return s.flags.Pending() }

func (s *Store) ArchiveFlags() { s.flags.Archive() }

func (s *Store) AvailableColumns() []backend.ColumnUID {
	return slices.Sorted(maps.Keys(s.columns))
}

func (s *Store) UsedColumns() []backend.ColumnUID {
	var used []backend.ColumnUID
	for _, uid := range s.AvailableColumns() {
		if s.columns[uid].IsUsed {
			used = append(used, uid)
		}
	}
	return used
}

func (s *Store) Column(uid backend.ColumnUID) (backend.Column, bool) {
	c, ok := s.columns[uid]
	if !ok {
		return backend.Column{}, false
	}
	return *c, true
}

func (s *Store) UseColumn(uid backend.ColumnUID, used bool) {
	c, ok := s.columns[uid]
	if !ok || c.IsUsed == used {
		return
	}
	c.IsUsed = used
	s.flags.Mutate(func(f *backend.OneShotFlags) { f.ColumnsChanged = true })
}

func (s *Store) RowCount() int { return len(s.visible) }

func (s *Store) RowUID(idx backend.VisualRowIdx) (backend.RowUID, bool) {
	if idx < 0 || int(idx) >= len(s.visible) {
		return 0, false
	}
	return s.visible[idx], true
}

func (s *Store) Get(coord backend.CellCoord) (variant.Value, bool) {
	v, ok := s.cells[coord]
	return v, ok
}

func (s *Store) Set(coord backend.CellCoord, value variant.Value) error {
	if s.persistent.IsReadOnly {
		return backend.ErrReadOnly
	}
	if _, ok := s.rowSet[coord.Row]; !ok {
		return backend.ErrStaleCoord
	}
	if _, ok := s.columns[coord.Col]; !ok {
		return backend.ErrStaleCoord
	}
	s.cells[coord] = value
	s.persistent.HaveUncommittedData = true
	if len(s.filters) > 0 || (s.sort != nil && s.sort.col == coord.Col) {
		s.rebuildVisible()
		s.flags.Mutate(func(f *backend.OneShotFlags) { f.VisibleRowVecUpdated = true })
	}
	return nil
}

func (s *Store) CreateRow(values map[backend.ColumnUID]variant.Value) (backend.RowUID, bool) {
	if s.persistent.IsReadOnly {
		return 0, false
	}
	uid := s.InsertRow(values)
	s.persistent.HaveUncommittedData = true
	return uid, true
}

func (s *Store) RemoveRow(uid backend.RowUID) {
	if _, ok := s.rowSet[uid]; !ok {
		return
	}
	delete(s.rowSet, uid)
	delete(s.rowSkip, uid)
	s.rowOrder = slices.DeleteFunc(s.rowOrder, func(r backend.RowUID) bool { return r == uid })
	for coord := range s.cells {
		if coord.Row == uid {
			delete(s.cells, coord)
		}
	}
	s.rebuildVisible()
	s.persistent.HaveUncommittedData = true
	s.flags.Mutate(func(f *backend.OneShotFlags) {
		f.RowSetUpdated = true
		f.VisibleRowVecUpdated = true
	})
}

// CreateColumn appends an adhoc string column.
func (s *Store) CreateColumn(name string) (backend.ColumnUID, bool) {
	if s.persistent.IsReadOnly {
		return 0, false
	}
	uid := s.nextCol
	s.InsertColumn(uid, ColumnSpec{Name: name, Type: variant.Str, Kind: backend.KindAdhoc})
	return uid, true
}

func (s *Store) AreRowsSkippable() bool { return s.rowsSkippable }

func (s *Store) SkipRow(uid backend.RowUID, skipped bool) {
	if !s.rowsSkippable {
		return
	}
	if skipped {
		s.rowSkip[uid] = true
	} else {
		delete(s.rowSkip, uid)
	}
}

func (s *Store) IsRowSkipped(uid backend.RowUID) bool { return s.rowSkip[uid] }

func (s *Store) AreColumnsSkippable() bool { return s.colsSkippable }

func (s *Store) SkipColumn(uid backend.ColumnUID, skipped bool) {
	if c, ok := s.columns[uid]; ok && s.colsSkippable {
		c.IsSkipped = skipped
	}
}

func (s *Store) IsColumnSkipped(uid backend.ColumnUID) bool {
	c, ok := s.columns[uid]
	return ok && c.IsSkipped
}

func (s *Store) ColumnMappingChoices() []string { return s.mappingChoices }

func (s *Store) SetColumnMapping(uid backend.ColumnUID, choice string) {
	if _, ok := s.columns[uid]; !ok {
		return
	}
	if choice == "" {
		delete(s.mapping, uid)
	} else {
		s.mapping[uid] = choice
	}
	s.flags.Mutate(func(f *backend.OneShotFlags) { f.ColumnMappingChanged = &uid })
}

var (
	_ backend.Backend       = (*Store)(nil)
	_ backend.ColumnCreator = (*Store)(nil)
)
