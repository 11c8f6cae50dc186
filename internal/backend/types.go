package backend

import (
	"errors"
	"fmt"

	"github.com/vk/tabgrid/internal/variant"
)

var (
	// ErrReadOnly is returned by mutations on a read-only backend.
	ErrReadOnly = errors.New("backend is read only")
	// ErrStaleCoord is returned when a coordinate refers to a row or column
	// that no longer exists. Callers skip the cell.
	ErrStaleCoord = errors.New("cell coordinate no longer exists")
)

// RowUID identifies a row for the lifetime of a backend. UIDs are assigned
// monotonically and never reused until Clear.
type RowUID uint32

// ColumnUID identifies a column's storage slot independent of display order.
type ColumnUID uint32

// VisualRowIdx is a 0-based position in the currently displayed (filtered,
// sorted) row sequence.
type VisualRowIdx int

// CellCoord addresses one cell.
type CellCoord struct {
	Row RowUID
	Col ColumnUID
}

func (c CellCoord) String() string {
	return fmt.Sprintf("r%d:c%d", c.Row, c.Col)
}

// ColumnKind tells where a column comes from.
type ColumnKind uint8

const (
	// KindStatic columns are declared by the embedding application.
	KindStatic ColumnKind = iota
	// KindGlobal columns are shared parameters defined outside the table.
	KindGlobal
	// KindAdhoc columns were discovered in a data source or created by the
	// user and exist only in this table.
	KindAdhoc
)

func (k ColumnKind) String() string {
	switch k {
	case KindStatic:
		return "static"
	case KindGlobal:
		return "global"
	default:
		return "adhoc"
	}
}

// Column is the metadata of one column.
type Column struct {
	Name     string
	Synonyms []string
	Type     variant.Type
	// Default is used for cells of rows created without a value for this
	// column. Nil means the cell is left without an entry.
	Default    *variant.Value
	Kind       ColumnKind
	IsSortable bool
	IsRequired bool
	IsUsed     bool
	IsSkipped  bool
	// IsReadOnly columns (e.g. auto generated) never enter edit mode.
	IsReadOnly bool
}

// PersistentFlags keep their value across frames.
type PersistentFlags struct {
	IsReloadRecommended bool
	IsReadOnly          bool
	ColumnInfoPresent   bool
	RowSetPresent       bool
	HaveUncommittedData bool
}

// OneShotFlags describe what changed since the previous frame.
type OneShotFlags struct {
	FirstPass            bool
	Reloaded             bool
	ColumnsReset         bool
	ColumnsChanged       bool
	RowSetUpdated        bool
	VisibleRowVecUpdated bool
	Cleared              bool
	ColumnMappingChanged *ColumnUID
}

// Any reports whether any flag is set.
func (f OneShotFlags) Any() bool {
	return f.FirstPass || f.Reloaded || f.ColumnsReset || f.ColumnsChanged ||
		f.RowSetUpdated || f.VisibleRowVecUpdated || f.Cleared || f.ColumnMappingChanged != nil
}

// ColumnsNeedRefresh reports whether the cached column order is stale.
func (f OneShotFlags) ColumnsNeedRefresh() bool {
	return f.FirstPass || f.Reloaded || f.ColumnsReset || f.ColumnsChanged
}

// Merge sets every flag that is set in o.
func (f *OneShotFlags) Merge(o OneShotFlags) {
	f.FirstPass = f.FirstPass || o.FirstPass
	f.Reloaded = f.Reloaded || o.Reloaded
	f.ColumnsReset = f.ColumnsReset || o.ColumnsReset
	f.ColumnsChanged = f.ColumnsChanged || o.ColumnsChanged
	f.RowSetUpdated = f.RowSetUpdated || o.RowSetUpdated
	f.VisibleRowVecUpdated = f.VisibleRowVecUpdated || o.VisibleRowVecUpdated
	f.Cleared = f.Cleared || o.Cleared
	if o.ColumnMappingChanged != nil {
		f.ColumnMappingChanged = o.ColumnMappingChanged
	}
}
