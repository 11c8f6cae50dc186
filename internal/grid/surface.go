package grid

import (
	"github.com/vk/tabgrid/internal/backend"
	"github.com/vk/tabgrid/internal/paste"
	"github.com/vk/tabgrid/internal/variant"
)

// Surface is what a Grid draws onto and reads input from. A terminal UI
// implements it; tests use a recording fake.
type Surface interface {
	// Events returns the input collected since the previous frame.
	Events() []Event
	// Viewport is the number of lines available for rows.
	Viewport() int
	DrawHeader(HeaderView)
	DrawCell(CellView)
	// Prompt is called every frame while a decision is pending.
	Prompt(PromptView)
}

// Clipboard receives copied blocks.
type Clipboard interface {
	WriteText(text string) error
}

// Affordance is drawn in place of a value.
type Affordance uint8

const (
	AffordanceNone Affordance = iota
	// AffordanceAdd offers to create a value for a cell without one.
	AffordanceAdd
	// AffordanceHatch marks a cell that can never hold a value.
	AffordanceHatch
)

// HeaderCell describes one column header.
type HeaderCell struct {
	UID      backend.ColumnUID
	Col      int
	Name     string
	Type     string
	ShowType bool
	Kind     backend.ColumnKind
	Required bool
	Skipped  bool
	ReadOnly bool
}

// HeaderView is the header row of one frame.
type HeaderView struct {
	Cells []HeaderCell
	// MappingChoices is non-empty when columns can be mapped.
	MappingChoices []string
}

// CellView is everything needed to draw one cell.
type CellView struct {
	Coord backend.CellCoord
	// Row and Col are visual indices.
	Row, Col int
	// Line is the first viewport line of the row and Height its height.
	Line, Height int
	Value        variant.Value
	Present      bool
	Text         string
	Selected     bool
	Editing      bool
	EditText     string
	RowSkipped   bool
	ReadOnly     bool
	JustUpdated  bool
	Affordance   Affordance
	Meta         CellMeta
}

// PromptKind tells which question a PromptView asks.
type PromptKind uint8

const (
	PromptPaste PromptKind = iota
	PromptClear
)

// PromptView is a pending yes/no question.
type PromptView struct {
	Kind  PromptKind
	Text  string
	Paste paste.Prompt
}
