// Package selection tracks the rectangular cell selection of a grid and the
// single-cell edit mode layered on top of it.
//
// All indices are visual: 0-based positions in the rows and columns as they
// are currently displayed. The grid maps them to RowUIDs and ColumnUIDs when
// it reads or writes cells.
//
// A State is in one of three modes. ModeNone has no selection. ModeRange has
// a rectangle of at least one cell. ModeEditing is a 1x1 rectangle whose
// cell is being edited; the text being typed lives in the State until the
// edit is committed or discarded. Transitions that end an edit return an
// Outcome telling the caller what to write back, so the State itself never
// touches a backend.
package selection
