package grid

import (
	"slices"

	"github.com/vk/tabgrid/internal/backend"
)

// LintKind is the kind of decoration attached to a cell.
type LintKind uint8

const (
	// LintHighlightRange highlights a byte range of the cell text.
	LintHighlightRange LintKind = iota
	// LintHighlightIndex highlights a single character.
	LintHighlightIndex
	// LintAddButton shows a button that appends Text to the cell.
	LintAddButton
	// LintAddIcon shows Text as an icon next to the value.
	LintAddIcon
)

// Lint is a decoration host code attaches to a cell, e.g. to point at the
// part of a value that failed validation.
type Lint struct {
	Kind       LintKind
	Start, End int
	Text       string
	Color      string
}

// CellMeta is the host-provided decoration of one cell.
type CellMeta struct {
	Lints    []Lint
	Tooltips []string
	Color    string
}

func (m CellMeta) isZero() bool {
	return len(m.Lints) == 0 && len(m.Tooltips) == 0 && m.Color == ""
}

// AddCellLint attaches l to coord. Identical lints are stored once.
func (g *Grid) AddCellLint(coord backend.CellCoord, l Lint) {
	m := g.meta[coord]
	if slices.Contains(m.Lints, l) {
		return
	}
	m.Lints = append(m.Lints, l)
	g.meta[coord] = m
}

// AddCellTooltip attaches a hover text to coord.
func (g *Grid) AddCellTooltip(coord backend.CellCoord, text string) {
	m := g.meta[coord]
	if slices.Contains(m.Tooltips, text) {
		return
	}
	m.Tooltips = append(m.Tooltips, text)
	g.meta[coord] = m
}

// SetCellColor overrides the text color of coord. An empty color restores
// the default.
func (g *Grid) SetCellColor(coord backend.CellCoord, color string) {
	m := g.meta[coord]
	m.Color = color
	g.setMeta(coord, m)
}

// ClearCellLints drops the lints and tooltips of coord.
func (g *Grid) ClearCellLints(coord backend.CellCoord) {
	m := g.meta[coord]
	m.Lints, m.Tooltips = nil, nil
	g.setMeta(coord, m)
}

// CellMeta returns the decoration of coord.
func (g *Grid) CellMeta(coord backend.CellCoord) CellMeta {
	return g.meta[coord]
}

func (g *Grid) setMeta(coord backend.CellCoord, m CellMeta) {
	if m.isZero() {
		delete(g.meta, coord)
		return
	}
	g.meta[coord] = m
}
