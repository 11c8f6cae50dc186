package grid

import (
	"github.com/vk/tabgrid/internal/backend"
	"github.com/vk/tabgrid/internal/paste"
)

// Event is input delivered by a Surface. Row and column fields are visual
// indices unless they are typed as UIDs.
type Event interface {
	isEvent()
}

// Key is a keyboard key the grid reacts to.
type Key uint8

const (
	KeyUp Key = iota
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyEscape
	// KeyCopy is the platform copy shortcut.
	KeyCopy
)

// ClickEvent is a primary click on a cell.
type ClickEvent struct {
	Row, Col int
	Shift    bool
}

// KeyEvent is a key press.
type KeyEvent struct {
	Key   Key
	Shift bool
}

// PasteEvent carries clipboard text.
type PasteEvent struct {
	Text string
}

// PasteDecisionEvent answers the paste prompt.
type PasteDecisionEvent struct {
	Confirm bool
	Options paste.Options
}

// EditTextEvent replaces the text of the cell being edited.
type EditTextEvent struct {
	Text string
}

// ColumnDropEvent is a column header dragged onto another header. The two
// columns trade places.
type ColumnDropEvent struct {
	Dragged, Target backend.ColumnUID
}

// AddCellEvent is a click on the add affordance of a cell without a value.
type AddCellEvent struct {
	Row, Col int
}

// AddRowEvent appends an empty row.
type AddRowEvent struct{}

// ClearRequestEvent asks to drop all rows; the grid prompts first.
type ClearRequestEvent struct{}

// ClearDecisionEvent answers the clear prompt.
type ClearDecisionEvent struct {
	Confirm bool
}

// SkipRowEvent toggles the soft-hide marker of a row.
type SkipRowEvent struct {
	Row  int
	Skip bool
}

// SkipColumnEvent toggles the soft-hide marker of a column.
type SkipColumnEvent struct {
	Col  int
	Skip bool
}

// ColumnMappingEvent maps a column to one of the backend's mapping choices.
// An empty Choice removes the mapping.
type ColumnMappingEvent struct {
	Col    backend.ColumnUID
	Choice string
}

// RowMeasuredEvent reports the height a row needed when it was drawn.
type RowMeasuredEvent struct {
	Row    backend.RowUID
	Height int
}

// ScrollEvent moves the first visible row.
type ScrollEvent struct {
	FirstRow int
}

func (ClickEvent) isEvent()         {}
func (KeyEvent) isEvent()           {}
func (PasteEvent) isEvent()         {}
func (PasteDecisionEvent) isEvent() {}
func (EditTextEvent) isEvent()      {}
func (ColumnDropEvent) isEvent()    {}
func (AddCellEvent) isEvent()       {}
func (AddRowEvent) isEvent()        {}
func (ClearRequestEvent) isEvent()  {}
func (ClearDecisionEvent) isEvent() {}
func (SkipRowEvent) isEvent()       {}
func (SkipColumnEvent) isEvent()    {}
func (ColumnMappingEvent) isEvent() {}
func (RowMeasuredEvent) isEvent()   {}
func (ScrollEvent) isEvent()        {}
