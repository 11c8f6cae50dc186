// Package vecstore is a read-only backend over rows of strings, for showing
// data that must not be edited (previews, reports).
package vecstore

import (
	"slices"

	"github.com/vk/tabgrid/internal/backend"
	"github.com/vk/tabgrid/internal/variant"
)

// Store serves a fixed header and a row-major [][]string. Rows shorter than
// the header have no entry for the missing cells.
type Store struct {
	header []string
	rows   [][]string
	flags  *backend.FlagBuffer
}

// New returns a store over header and rows. The slices are not copied.
func New(header []string, rows [][]string) *Store {
	return &Store{
		header: header,
		rows:   rows,
		flags:  backend.NewFlagBuffer(backend.OneShotFlags{FirstPass: true, ColumnsReset: true}),
	}
}

// Replace swaps the data, e.g. after reloading the source.
func (s *Store) Replace(header []string, rows [][]string) {
	s.header = header
	s.rows = rows
	s.flags.Mutate(func(f *backend.OneShotFlags) {
		f.Reloaded = true
		f.ColumnsReset = true
		f.RowSetUpdated = true
		f.VisibleRowVecUpdated = true
	})
}

// Clear drops the rows. It is allowed on a read-only store because it does
// not touch the source data, only this view of it.
func (s *Store) Clear() {
	s.rows = nil
	s.flags.Mutate(func(f *backend.OneShotFlags) {
		f.Cleared = true
		f.RowSetUpdated = true
		f.VisibleRowVecUpdated = true
	})
}

func (s *Store) PersistentFlags() backend.PersistentFlags {
	return backend.PersistentFlags{
		IsReadOnly:        true,
		ColumnInfoPresent: len(s.header) > 0,
		RowSetPresent:     true,
	}
}

func (s *Store) OneShotFlags() backend.OneShotFlags { return s.flags.Archived() }
func (s *Store) PendingFlags() backend.OneShotFlags { return s.flags.Pending() }
func (s *Store) ArchiveFlags() { s.flags.Archive() }

func (s *Store) AvailableColumns() []backend.ColumnUID {
	cols := make([]backend.ColumnUID, len(s.header))
	for i := range cols {
		cols[i] = backend.ColumnUID(i)
	}
	return cols
}

func (s *Store) UsedColumns() []backend.ColumnUID { return s.AvailableColumns() }

func (s *Store) Column(uid backend.ColumnUID) (backend.Column, bool) {
	if int(uid) >= len(s.header) {
		return backend.Column{}, false
	}
	return backend.Column{
		Name:       s.header[uid],
		Type:       variant.Str,
		Kind:       backend.KindAdhoc,
		IsUsed:     true,
		IsReadOnly: true,
	}, true
}

func (s *Store) UseColumn(backend.ColumnUID, bool) {}

func (s *Store) RowCount() int { return len(s.rows) }

func (s *Store) RowUID(idx backend.VisualRowIdx) (backend.RowUID, bool) {
	if idx < 0 || int(idx) >= len(s.rows) {
		return 0, false
	}
	return backend.RowUID(idx), true
}

func (s *Store) Get(coord backend.CellCoord) (variant.Value, bool) {
	if int(coord.Row) >= len(s.rows) {
		return variant.Value{}, false
	}
	row := s.rows[coord.Row]
	if int(coord.Col) >= len(row) {
		return variant.Value{}, false
	}
	return variant.StrVal(row[coord.Col]), true
}

func (s *Store) Set(backend.CellCoord, variant.Value) error { return backend.ErrReadOnly }

func (s *Store) CreateRow(map[backend.ColumnUID]variant.Value) (backend.RowUID, bool) {
	return 0, false
}

func (s *Store) RemoveRow(backend.RowUID) {}

func (s *Store) AreRowsSkippable() bool { return false }
func (s *Store) SkipRow(backend.RowUID, bool) {}
func (s *Store) IsRowSkipped(backend.RowUID) bool { return false }
func (s *Store) AreColumnsSkippable() bool { return false }
func (s *Store) SkipColumn(backend.ColumnUID, bool) {}
func (s *Store) IsColumnSkipped(backend.ColumnUID) bool { return false }
func (s *Store) ColumnMappingChoices() []string { return nil }
func (s *Store) SetColumnMapping(backend.ColumnUID, string) {}

// Header returns a copy of the column names.
func (s *Store) Header() []string { return slices.Clone(s.header) }

var _ backend.Backend = (*Store)(nil)
