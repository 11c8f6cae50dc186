package grid

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vk/tabgrid/internal/backend"
	"github.com/vk/tabgrid/internal/ctxlog"
	"github.com/vk/tabgrid/internal/paste"
	"github.com/vk/tabgrid/internal/selection"
	"github.com/vk/tabgrid/internal/variant"
)

const (
	maxNotices      = 8
	clearPromptText = "About to clear all table's data, are you sure?"
)

// Settings are the host's choices about what the user may do.
type Settings struct {
	// EditableCells allows edit mode, pasting, adding cells and rows. A
	// read-only backend overrides it.
	EditableCells bool
}

// DefaultSettings allows editing.
func DefaultSettings() Settings {
	return Settings{EditableCells: true}
}

// Notice is a message for the user, e.g. a value that did not fit its
// column type.
type Notice struct {
	Level slog.Level
	Text  string
}

// FrameResult describes what one frame did.
type FrameResult struct {
	// Mutations are the deferred writes that were applied.
	Mutations []Mutation
	// Written lists every cell written during the frame, pasted or edited.
	Written []backend.CellCoord
	Notices []Notice
	// Copied is the text placed on the clipboard, if any.
	Copied string
	// VisibleRows are the rows drawn, top to bottom.
	VisibleRows []backend.RowUID
}

// Grid keeps the view state of one table between frames.
type Grid struct {
	settings Settings
	view     ViewConfig
	clip     Clipboard

	columns []backend.ColumnUID
	colMeta map[backend.ColumnUID]backend.Column
	mapping map[string]string
	reorder bool
	remap   bool

	sel          selection.State
	paste        paste.Engine
	clearPending bool
	highlighted  *backend.CellCoord

	scroll      int
	lastVisible int
	rowHeights  map[backend.RowUID]int
	meta        map[backend.CellCoord]CellMeta
	justUpdated map[backend.CellCoord]bool
	notices     []Notice
	initialized bool
}

// New returns a grid with default view settings. clip may be nil, in which
// case copied text is only reported in FrameResult.Copied.
func New(settings Settings, clip Clipboard) *Grid {
	return &Grid{
		settings:    settings,
		view:        DefaultViewConfig(),
		clip:        clip,
		colMeta:     make(map[backend.ColumnUID]backend.Column),
		mapping:     make(map[string]string),
		rowHeights:  make(map[backend.RowUID]int),
		meta:        make(map[backend.CellCoord]CellMeta),
		justUpdated: make(map[backend.CellCoord]bool),
	}
}

// Columns returns the display order of the columns.
func (g *Grid) Columns() []backend.ColumnUID {
	return append([]backend.ColumnUID(nil), g.columns...)
}

// Selection returns the selected range, if any.
func (g *Grid) Selection() (selection.Range, bool) { return g.sel.Selection() }

// Mode returns the selection mode.
func (g *Grid) Mode() selection.Mode { return g.sel.Mode() }

// EditText returns the text of the cell being edited.
func (g *Grid) EditText() string { return g.sel.EditText() }

// Notices returns the most recent notices, oldest first.
func (g *Grid) Notices() []Notice { return append([]Notice(nil), g.notices...) }

// Scroll returns the first visible row.
func (g *Grid) Scroll() int { return g.scroll }

// RowHeight returns the height row is drawn with.
func (g *Grid) RowHeight(row backend.RowUID) int {
	if g.view.HeterogeneousRows {
		if h, ok := g.rowHeights[row]; ok {
			return h
		}
	}
	return g.view.MinRowHeight
}

// SwapColumns exchanges the display positions of a and b. The selection
// follows the swap.
func (g *Grid) SwapColumns(a, b backend.ColumnUID) bool {
	ia, ib := g.columnIndex(a), g.columnIndex(b)
	if ia < 0 || ib < 0 || ia == ib {
		return false
	}
	g.columns[ia], g.columns[ib] = g.columns[ib], g.columns[ia]
	g.sel.SwapColumns(ia, ib)
	return true
}

// SetColumnMapping maps col to choice in be and remembers the choice by
// column name for SaveViewConfig. An empty choice removes the mapping.
func (g *Grid) SetColumnMapping(be backend.Backend, col backend.ColumnUID, choice string) {
	c, ok := g.colMeta[col]
	if !ok {
		return
	}
	be.SetColumnMapping(col, choice)
	if choice == "" {
		delete(g.mapping, c.Name)
	} else {
		g.mapping[c.Name] = choice
	}
}

func (g *Grid) columnIndex(uid backend.ColumnUID) int {
	for i, c := range g.columns {
		if c == uid {
			return i
		}
	}
	return -1
}

func (g *Grid) readOnly(be backend.Backend) bool {
	return !g.settings.EditableCells || be.PersistentFlags().IsReadOnly
}

func (g *Grid) notify(ctx context.Context, res *FrameResult, level slog.Level, text string) {
	ctxlog.FromContext(ctx).Log(ctx, level, "Grid notice.", "text", text)
	n := Notice{Level: level, Text: text}
	res.Notices = append(res.Notices, n)
	g.notices = append(g.notices, n)
	if len(g.notices) > maxNotices {
		g.notices = g.notices[len(g.notices)-maxNotices:]
	}
}

// Frame runs one frame against be, reading input from and drawing onto
// surf. See the package documentation for the order of the steps.
func (g *Grid) Frame(ctx context.Context, be backend.Backend, surf Surface) FrameResult {
	var res FrameResult
	g.refresh(ctx, be)

	events := surf.Events()
	var muts []Mutation
	for _, ev := range events {
		muts = g.handleEvent(ctx, be, ev, muts, &res)
	}
	for _, ev := range events {
		g.handlePaste(ctx, be, ev, &res)
	}
	g.highlight(be)

	g.render(be, surf, &res)

	g.apply(ctx, be, muts, &res)
	be.ArchiveFlags()

	g.justUpdated = make(map[backend.CellCoord]bool, len(res.Written))
	for _, c := range res.Written {
		g.justUpdated[c] = true
	}
	return res
}

// refresh brings the cached columns and the selection in line with the
// backend's pending flags.
func (g *Grid) refresh(ctx context.Context, be backend.Backend) {
	logger := ctxlog.FromContext(ctx)
	if p, ok := be.(backend.Poller); ok {
		p.Poll()
	}
	flags := be.PendingFlags()
	if !g.initialized {
		flags.FirstPass = true
		g.initialized = true
	}

	if flags.ColumnsNeedRefresh() || g.reorder {
		g.rebuildColumns(be, flags.Reloaded || flags.ColumnsReset || flags.FirstPass)
		logger.Debug("Refreshed columns.", "count", len(g.columns))
	}
	if flags.ColumnMappingChanged != nil {
		if c, ok := be.Column(*flags.ColumnMappingChanged); ok {
			g.colMeta[*flags.ColumnMappingChanged] = c
		}
	}
	if g.remap {
		g.applyMapping(be)
	}

	if flags.Cleared || flags.Reloaded || flags.ColumnsReset {
		g.sel.Reset()
		g.clearPending = false
		clear(g.rowHeights)
		g.scroll = 0
	}
	if flags.RowSetUpdated || flags.VisibleRowVecUpdated || flags.ColumnsChanged {
		if g.sel.Clamp(be.RowCount(), len(g.columns)) {
			logger.Debug("Dropped selection outside the table.")
		}
	}
	g.scroll = max(0, min(g.scroll, be.RowCount()-1))
}

// rebuildColumns refetches column metadata. On a reset the display order
// starts over from the backend's order and the saved loose order; otherwise
// existing positions are kept and new columns are appended.
func (g *Grid) rebuildColumns(be backend.Backend, reset bool) {
	used := be.UsedColumns()
	clear(g.colMeta)
	for _, uid := range used {
		if c, ok := be.Column(uid); ok {
			g.colMeta[uid] = c
		}
	}
	if reset {
		g.columns = used
		if len(g.view.ColumnOrder) > 0 {
			g.columns = applyLooseOrder(g.columns, g.colMeta, g.view.ColumnOrder)
		}
		g.reorder = false
		return
	}
	present := make(map[backend.ColumnUID]bool, len(used))
	for _, uid := range used {
		present[uid] = true
	}
	kept := g.columns[:0:0]
	seen := make(map[backend.ColumnUID]bool, len(used))
	for _, uid := range g.columns {
		if present[uid] {
			kept = append(kept, uid)
			seen[uid] = true
		}
	}
	for _, uid := range used {
		if !seen[uid] {
			kept = append(kept, uid)
		}
	}
	g.columns = kept
	if g.reorder {
		g.columns = applyLooseOrder(g.columns, g.colMeta, g.view.ColumnOrder)
		g.reorder = false
	}
}

func (g *Grid) applyMapping(be backend.Backend) {
	g.remap = false
	for _, uid := range g.columns {
		if choice, ok := g.mapping[g.colMeta[uid].Name]; ok {
			be.SetColumnMapping(uid, choice)
		}
	}
}

// coord resolves visual indices against the backend.
func (g *Grid) coord(be backend.Backend, row, col int) (backend.CellCoord, bool) {
	if col < 0 || col >= len(g.columns) {
		return backend.CellCoord{}, false
	}
	uid, ok := be.RowUID(backend.VisualRowIdx(row))
	if !ok {
		return backend.CellCoord{}, false
	}
	return backend.CellCoord{Row: uid, Col: g.columns[col]}, true
}

func (g *Grid) cellEditable(be backend.Backend, coord backend.CellCoord) bool {
	if g.readOnly(be) || g.colMeta[coord.Col].IsReadOnly {
		return false
	}
	v, ok := be.Get(coord)
	return !ok || !v.IsNever()
}

func (g *Grid) handleEvent(ctx context.Context, be backend.Backend, ev Event, muts []Mutation, res *FrameResult) []Mutation {
	logger := ctxlog.FromContext(ctx)
	rows, cols := be.RowCount(), len(g.columns)
	switch ev := ev.(type) {
	case ClickEvent:
		coord, ok := g.coord(be, ev.Row, ev.Col)
		if !ok {
			return muts
		}
		var out selection.Outcome
		if ev.Shift {
			out = g.sel.ShiftClick(ev.Row, ev.Col)
		} else {
			out = g.sel.Click(ev.Row, ev.Col, g.cellEditable(be, coord))
		}
		return g.outcome(ctx, be, out, muts, res)

	case KeyEvent:
		var out selection.Outcome
		switch ev.Key {
		case KeyUp, KeyDown, KeyLeft, KeyRight:
			if g.sel.Move(direction(ev.Key), ev.Shift, rows, cols) {
				g.follow()
			}
		case KeyEnter:
			out = g.sel.Enter()
		case KeyEscape:
			out = g.sel.Escape()
		case KeyCopy:
			g.copy(ctx, be, res)
		}
		return g.outcome(ctx, be, out, muts, res)

	case EditTextEvent:
		g.sel.SetEditText(ev.Text)

	case ColumnDropEvent:
		if g.SwapColumns(ev.Dragged, ev.Target) {
			logger.Debug("Swapped columns.", "dragged", ev.Dragged, "target", ev.Target)
		}

	case AddCellEvent:
		coord, ok := g.coord(be, ev.Row, ev.Col)
		if !ok || !g.cellEditable(be, coord) {
			return muts
		}
		if _, present := be.Get(coord); present {
			return muts
		}
		col := g.colMeta[coord.Col]
		value := variant.DefaultOf(col.Type)
		if col.Default != nil {
			value = *col.Default
		}
		// Leaving a cell being edited commits it before the new value lands.
		muts = g.outcome(ctx, be, g.sel.Click(ev.Row, ev.Col, false), muts, res)
		return append(muts, Mutation{Kind: MutSetCell, Coord: coord, Value: value})

	case AddRowEvent:
		if g.readOnly(be) {
			logger.Debug("Ignored row append on a read-only table.")
			return muts
		}
		return append(muts, Mutation{Kind: MutCreateRow})

	case ClearRequestEvent:
		if g.readOnly(be) {
			g.notify(ctx, res, slog.LevelWarn, "Refusing to clear a read-only table")
			return muts
		}
		g.clearPending = true

	case ClearDecisionEvent:
		if !g.clearPending {
			return muts
		}
		g.clearPending = false
		if ev.Confirm {
			return append(muts, Mutation{Kind: MutClear})
		}

	case SkipRowEvent:
		if !be.AreRowsSkippable() {
			return muts
		}
		uid, ok := be.RowUID(backend.VisualRowIdx(ev.Row))
		if !ok {
			return muts
		}
		return append(muts, Mutation{Kind: MutSkipRow, Coord: backend.CellCoord{Row: uid}, Skip: ev.Skip})

	case SkipColumnEvent:
		if !be.AreColumnsSkippable() || ev.Col < 0 || ev.Col >= cols {
			return muts
		}
		return append(muts, Mutation{Kind: MutSkipColumn, Coord: backend.CellCoord{Col: g.columns[ev.Col]}, Skip: ev.Skip})

	case ColumnMappingEvent:
		g.SetColumnMapping(be, ev.Col, ev.Choice)

	case RowMeasuredEvent:
		if g.view.HeterogeneousRows {
			g.rowHeights[ev.Row] = max(ev.Height, g.view.MinRowHeight)
		}

	case ScrollEvent:
		g.scroll = max(0, min(ev.FirstRow, rows-1))
	}
	return muts
}

// outcome turns a selection transition into view state or a deferred write.
func (g *Grid) outcome(ctx context.Context, be backend.Backend, out selection.Outcome, muts []Mutation, res *FrameResult) []Mutation {
	switch out.Kind {
	case selection.OutcomeBeginEdit:
		if coord, ok := g.coord(be, out.Row, out.Col); ok {
			if v, ok := be.Get(coord); ok {
				g.sel.SetEditText(v.String())
			}
		}
	case selection.OutcomeCommit:
		coord, ok := g.coord(be, out.Row, out.Col)
		if !ok {
			return muts
		}
		current, present := be.Get(coord)
		if (present && current.String() == out.Text) || (!present && out.Text == "") {
			return muts
		}
		col := g.colMeta[coord.Col]
		value, fits := variant.FromText(out.Text, col.Type)
		if !fits {
			g.notify(ctx, res, slog.LevelWarn,
				fmt.Sprintf("Incorrect value for required type %s in column %q, kept as text", col.Type, col.Name))
		}
		return append(muts, Mutation{Kind: MutSetCell, Coord: coord, Value: value})
	case selection.OutcomeDiscard:
		ctxlog.FromContext(ctx).Debug("Discarded edit.", "row", out.Row, "col", out.Col)
	}
	return muts
}

func direction(k Key) selection.Direction {
	switch k {
	case KeyUp:
		return selection.Up
	case KeyDown:
		return selection.Down
	case KeyLeft:
		return selection.Left
	default:
		return selection.Right
	}
}

// follow scrolls so the anchor row stays in the last drawn window.
func (g *Grid) follow() {
	row, _, ok := g.sel.Anchor()
	if !ok {
		return
	}
	if row < g.scroll {
		g.scroll = row
	} else if g.lastVisible > 0 && row >= g.scroll+g.lastVisible {
		g.scroll = row - g.lastVisible + 1
	}
}

func (g *Grid) copy(ctx context.Context, be backend.Backend, res *FrameResult) {
	sel, ok := g.sel.Selection()
	if !ok {
		return
	}
	text := paste.Copy(be, g.columns, sel)
	res.Copied = text
	if g.clip == nil || text == "" {
		return
	}
	if err := g.clip.WriteText(text); err != nil {
		g.notify(ctx, res, slog.LevelWarn, fmt.Sprintf("Could not copy to clipboard: %v", err))
	}
}

func (g *Grid) handlePaste(ctx context.Context, be backend.Backend, ev Event, res *FrameResult) {
	switch ev := ev.(type) {
	case PasteEvent:
		if g.sel.Mode() == selection.ModeEditing {
			g.sel.SetEditText(g.sel.EditText() + ev.Text)
			return
		}
		sel, hasSel := g.sel.Selection()
		_, canCreate := be.(backend.ColumnCreator)
		r := g.paste.Begin(ev.Text, sel, hasSel, paste.Capabilities{
			ReadOnly:      g.readOnly(be),
			CanCreateCols: canCreate,
		})
		switch r.Kind {
		case paste.ResultRefused:
			g.notify(ctx, res, slog.LevelWarn, r.Warning)
		case paste.ResultApply:
			g.applyPaste(ctx, be, r.Job, res)
		}
	case PasteDecisionEvent:
		if job, ok := g.paste.Resolve(ev.Confirm, ev.Options); ok {
			g.applyPaste(ctx, be, job, res)
		}
	}
}

func (g *Grid) applyPaste(ctx context.Context, be backend.Backend, job paste.Job, res *FrameResult) {
	rep := paste.Apply(ctx, be, g.columns, job)
	for _, uid := range rep.CreatedCols {
		if c, ok := be.Column(uid); ok {
			g.colMeta[uid] = c
		}
		g.columns = append(g.columns, uid)
	}
	res.Written = append(res.Written, rep.Written...)
	if len(rep.Coerced) > 0 {
		g.notify(ctx, res, slog.LevelWarn,
			fmt.Sprintf("%d pasted values did not fit their column type and were kept as text", len(rep.Coerced)))
	}
	if rep.Skipped > 0 {
		g.notify(ctx, res, slog.LevelInfo, fmt.Sprintf("%d cells could not be pasted into", rep.Skipped))
	}
}

// highlight tells a Highlighter backend about a newly selected single cell.
func (g *Grid) highlight(be backend.Backend) {
	h, ok := be.(backend.Highlighter)
	if !ok {
		return
	}
	sel, active := g.sel.Selection()
	if !active || !sel.IsSingleCell() {
		g.highlighted = nil
		return
	}
	coord, ok := g.coord(be, sel.RowStart(), sel.ColStart())
	if !ok || (g.highlighted != nil && *g.highlighted == coord) {
		return
	}
	g.highlighted = &coord
	h.OnHighlightCell(coord)
}

func (g *Grid) render(be backend.Backend, surf Surface, res *FrameResult) {
	header := HeaderView{MappingChoices: be.ColumnMappingChoices()}
	for i, uid := range g.columns {
		c := g.colMeta[uid]
		header.Cells = append(header.Cells, HeaderCell{
			UID:      uid,
			Col:      i,
			Name:     c.Name,
			Type:     c.Type.String(),
			ShowType: g.view.ShowColumnTypes,
			Kind:     c.Kind,
			Required: c.IsRequired,
			Skipped:  be.IsColumnSkipped(uid),
			ReadOnly: c.IsReadOnly,
		})
	}
	surf.DrawHeader(header)

	readOnly := g.readOnly(be)
	sel, hasSel := g.sel.Selection()
	height := surf.Viewport()
	line, drawn := 0, 0
	for vis := g.scroll; vis < be.RowCount() && line < height; vis++ {
		rowUID, ok := be.RowUID(backend.VisualRowIdx(vis))
		if !ok {
			break
		}
		h := g.RowHeight(rowUID)
		skipped := be.IsRowSkipped(rowUID)
		for ci, colUID := range g.columns {
			coord := backend.CellCoord{Row: rowUID, Col: colUID}
			v, present := be.Get(coord)
			colRO := readOnly || g.colMeta[colUID].IsReadOnly
			cv := CellView{
				Coord:       coord,
				Row:         vis,
				Col:         ci,
				Line:        line,
				Height:      h,
				Value:       v,
				Present:     present,
				Selected:    hasSel && sel.Contains(vis, ci),
				RowSkipped:  skipped,
				ReadOnly:    colRO,
				JustUpdated: g.justUpdated[coord],
				Meta:        g.meta[coord],
			}
			switch {
			case present && v.IsNever():
				cv.Affordance = AffordanceHatch
			case present:
				cv.Text = v.String()
			case !colRO:
				cv.Affordance = AffordanceAdd
			}
			if cv.Selected && sel.IsEditing() {
				cv.Editing = true
				cv.EditText = g.sel.EditText()
			}
			surf.DrawCell(cv)
		}
		res.VisibleRows = append(res.VisibleRows, rowUID)
		line += h
		drawn++
	}
	g.lastVisible = drawn

	if p, ok := g.paste.Pending(); ok {
		surf.Prompt(PromptView{Kind: PromptPaste, Text: p.String(), Paste: p})
	}
	if g.clearPending {
		surf.Prompt(PromptView{Kind: PromptClear, Text: clearPromptText})
	}
}
