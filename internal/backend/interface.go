package backend

import "github.com/vk/tabgrid/internal/variant"

// Backend is the storage abstraction the grid renders and mutates.
//
// Reads of absent cells return ok=false ("no entry"), which is distinct from
// an explicit Empty value. Set on a coordinate whose row no longer exists
// returns ErrStaleCoord.
type Backend interface {
	// Clear drops all row data but keeps the column schema.
	Clear()

	PersistentFlags() PersistentFlags
	// OneShotFlags returns the flags archived at the end of the previous
	// frame.
	OneShotFlags() OneShotFlags
	// PendingFlags returns the flags set since the last archive. Only the
	// grid should consume these.
	PendingFlags() OneShotFlags
	// ArchiveFlags is called once per frame by the grid.
	ArchiveFlags()

	AvailableColumns() []ColumnUID
	UsedColumns() []ColumnUID
	Column(uid ColumnUID) (Column, bool)
	UseColumn(uid ColumnUID, used bool)

	// RowCount is the number of rows after filtering.
	RowCount() int
	// RowUID maps a visual index in [0, RowCount) to a row, applying the
	// current sort order.
	RowUID(idx VisualRowIdx) (RowUID, bool)

	Get(coord CellCoord) (variant.Value, bool)
	Set(coord CellCoord, value variant.Value) error

	// CreateRow appends a row. Columns missing from values get their
	// declared default. ok is false when rows cannot be created.
	CreateRow(values map[ColumnUID]variant.Value) (uid RowUID, ok bool)
	RemoveRow(uid RowUID)

	AreRowsSkippable() bool
	SkipRow(uid RowUID, skipped bool)
	IsRowSkipped(uid RowUID) bool
	AreColumnsSkippable() bool
	SkipColumn(uid ColumnUID, skipped bool)
	IsColumnSkipped(uid ColumnUID) bool

	// ColumnMappingChoices lists external entities a column can be mapped to.
	ColumnMappingChoices() []string
	SetColumnMapping(uid ColumnUID, choice string)
}

// ColumnCreator is implemented by backends that can add columns on demand,
// e.g. to receive the extra width of a pasted block.
type ColumnCreator interface {
	CreateColumn(name string) (ColumnUID, bool)
}

// Poller is implemented by backends that need periodic work (file watching,
// remote requests). The grid calls Poll at the start of every frame.
type Poller interface {
	Poll()
}

// Highlighter is notified when a cell becomes the single selected cell.
type Highlighter interface {
	OnHighlightCell(coord CellCoord)
}
