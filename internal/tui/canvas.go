package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/vk/tabgrid/internal/backend"
	"github.com/vk/tabgrid/internal/grid"
)

const (
	minColWidth = 3
	maxColWidth = 30
	maxRowLines = 4
	colSep      = " "
	addMark     = "+"
	hatchRune   = "╱"
	cursorMark  = "▏"
)

// Canvas is a grid.Surface that renders to text.
type Canvas struct {
	height int
	queued []grid.Event

	header  grid.HeaderView
	cells   []grid.CellView
	prompts []grid.PromptView
	// reported holds the line count last sent for each row. Rows not in
	// it are taken to need one line.
	reported map[backend.RowUID]int

	// layout of the last Render
	headerLines int
	colX, colW  []int
	lineRow     []int
}

// NewCanvas returns a canvas with room for height lines of rows.
func NewCanvas(height int) *Canvas {
	return &Canvas{height: max(height, 1), reported: make(map[backend.RowUID]int)}
}

// SetHeight changes the number of lines available for rows.
func (c *Canvas) SetHeight(height int) { c.height = max(height, 1) }

// Push queues events for the next frame.
func (c *Canvas) Push(events ...grid.Event) {
	c.queued = append(c.queued, events...)
}

// NeedsFrame reports whether rows drawn in the last frame need a line count
// the grid has not been told about, so another frame would lay them out
// better.
func (c *Canvas) NeedsFrame() bool {
	return len(c.measure()) > 0
}

func (c *Canvas) Events() []grid.Event {
	measured := c.measure()
	for _, e := range measured {
		m := e.(grid.RowMeasuredEvent)
		c.reported[m.Row] = m.Height
	}
	ev := append(c.queued, measured...)
	c.queued = nil
	c.cells = c.cells[:0]
	c.prompts = c.prompts[:0]
	return ev
}

func (c *Canvas) Viewport() int { return c.height }

func (c *Canvas) DrawHeader(h grid.HeaderView) { c.header = h }

func (c *Canvas) DrawCell(cv grid.CellView) { c.cells = append(c.cells, cv) }

func (c *Canvas) Prompt(p grid.PromptView) { c.prompts = append(c.prompts, p) }

// Prompts returns the questions asked during the last frame.
func (c *Canvas) Prompts() []grid.PromptView { return c.prompts }

// measure reports rows whose content needs a line count other than the
// one last reported for them.
func (c *Canvas) measure() []grid.Event {
	need := make(map[backend.RowUID]int)
	var order []backend.RowUID
	for _, cv := range c.cells {
		uid := cv.Coord.Row
		if _, ok := need[uid]; !ok {
			order = append(order, uid)
		}
		need[uid] = max(need[uid], min(len(cellLines(cv)), maxRowLines))
	}
	var ev []grid.Event
	for _, uid := range order {
		last, ok := c.reported[uid]
		if !ok {
			last = 1
		}
		if need[uid] != last {
			ev = append(ev, grid.RowMeasuredEvent{Row: uid, Height: need[uid]})
		}
	}
	return ev
}

// cellText is what a cell shows, ignoring styles.
func cellText(cv grid.CellView) string {
	switch {
	case cv.Editing:
		return cv.EditText + cursorMark
	case cv.Affordance == grid.AffordanceAdd:
		return addMark
	default:
		return cv.Text
	}
}

func cellLines(cv grid.CellView) []string {
	return strings.Split(cellText(cv), "\n")
}

func headerLabel(h grid.HeaderCell) string {
	label := h.Name
	if h.Required {
		label += "*"
	}
	return label
}

// layout computes column widths from the header and the drawn cells, and
// the x offset of each column, dropping columns past width.
func (c *Canvas) layout(width int) {
	n := len(c.header.Cells)
	widths := make([]int, n)
	for i, h := range c.header.Cells {
		widths[i] = runewidth.StringWidth(headerLabel(h))
		if h.ShowType {
			widths[i] = max(widths[i], runewidth.StringWidth(h.Type))
		}
	}
	for _, cv := range c.cells {
		if cv.Col >= n {
			continue
		}
		for _, line := range cellLines(cv) {
			widths[cv.Col] = max(widths[cv.Col], runewidth.StringWidth(line))
		}
	}

	c.colX, c.colW = c.colX[:0], c.colW[:0]
	x := 0
	for _, w := range widths {
		w = min(max(w, minColWidth), maxColWidth)
		if width > 0 && x+w > width {
			w = width - x
		}
		if w < minColWidth {
			break
		}
		c.colX = append(c.colX, x)
		c.colW = append(c.colW, w)
		x += w + runewidth.StringWidth(colSep)
	}
}

func fit(s string, w int) string {
	return runewidth.FillRight(runewidth.Truncate(s, w, "…"), w)
}

// Render lays out the last frame in at most width columns. A width of zero
// or less means unlimited.
func (c *Canvas) Render(width int, st Styles) string {
	c.layout(width)
	var out []string

	names := make([]string, len(c.colW))
	types := make([]string, len(c.colW))
	showTypes := false
	for i := range c.colW {
		h := c.header.Cells[i]
		style := st.Header
		if h.Skipped {
			style = style.Inherit(st.Skipped)
		}
		names[i] = style.Render(fit(headerLabel(h), c.colW[i]))
		typ := ""
		if h.ShowType {
			showTypes = true
			typ = h.Type
		}
		types[i] = st.HeaderType.Render(fit(typ, c.colW[i]))
	}
	out = append(out, strings.Join(names, colSep))
	if showTypes {
		out = append(out, strings.Join(types, colSep))
	}
	c.headerLines = len(out)

	c.lineRow = c.lineRow[:0]
	for start := 0; start < len(c.cells); {
		row := c.cells[start].Row
		end := start
		for end < len(c.cells) && c.cells[end].Row == row {
			end++
		}
		h := max(c.cells[start].Height, 1)
		lines := make([][]string, h)
		for _, cv := range c.cells[start:end] {
			if cv.Col >= len(c.colW) {
				continue
			}
			w := c.colW[cv.Col]
			text := cellLines(cv)
			style := cellStyle(cv, st)
			for l := range h {
				s := ""
				switch {
				case cv.Affordance == grid.AffordanceHatch:
					s = strings.Repeat(hatchRune, w)
				case l < len(text):
					s = text[l]
				}
				lines[l] = append(lines[l], style.Render(fit(s, w)))
			}
		}
		for _, l := range lines {
			out = append(out, strings.Join(l, colSep))
			c.lineRow = append(c.lineRow, row)
		}
		start = end
	}
	return strings.Join(out, "\n")
}

func cellStyle(cv grid.CellView, st Styles) lipgloss.Style {
	style := st.Cell
	switch {
	case cv.Editing:
		style = st.Editing
	case cv.Selected:
		style = st.Selected
	case cv.JustUpdated:
		style = st.JustUpdated
	case cv.Affordance != grid.AffordanceNone:
		style = st.Affordance
	case cv.ReadOnly:
		style = st.ReadOnly
	}
	if cv.RowSkipped {
		style = style.Inherit(st.Skipped)
	}
	if cv.Meta.Color != "" && !cv.Selected {
		style = style.Foreground(lipgloss.Color(cv.Meta.Color))
	}
	return style
}

// CellAt maps a position in the last Render output to a visual cell.
func (c *Canvas) CellAt(x, y int) (row, col int, ok bool) {
	line := y - c.headerLines
	if line < 0 || line >= len(c.lineRow) {
		return 0, 0, false
	}
	for i := range c.colX {
		if x >= c.colX[i] && x < c.colX[i]+c.colW[i] {
			return c.lineRow[line], i, true
		}
	}
	return 0, 0, false
}

// HeaderAt maps a position on the header to a column.
func (c *Canvas) HeaderAt(x, y int) (backend.ColumnUID, bool) {
	if y < 0 || y >= c.headerLines {
		return 0, false
	}
	for i := range c.colX {
		if x >= c.colX[i] && x < c.colX[i]+c.colW[i] {
			return c.header.Cells[i].UID, true
		}
	}
	return 0, false
}

// Cell returns the view drawn at a visual position in the last frame.
func (c *Canvas) Cell(row, col int) (grid.CellView, bool) {
	for _, cv := range c.cells {
		if cv.Row == row && cv.Col == col {
			return cv, true
		}
	}
	return grid.CellView{}, false
}
