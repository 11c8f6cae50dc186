package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/vk/tabgrid/internal/backend"
	"github.com/vk/tabgrid/internal/ctxlog"
	"github.com/vk/tabgrid/internal/grid"
	"github.com/vk/tabgrid/internal/paste"
	"github.com/vk/tabgrid/internal/selection"
)

// chromeLines are the lines around the rows: title, two header lines,
// prompt and status.
const chromeLines = 5

const helpText = "arrows move · shift extends · e edit · a add · o new row · y copy · p paste · s/S skip · </> move column · X clear · q quit"

// ClipboardReader supplies text for the paste key.
type ClipboardReader interface {
	ReadText() (string, error)
}

type model struct {
	ctx    context.Context
	g      *grid.Grid
	be     backend.Backend
	canvas *Canvas
	styles Styles
	title  string
	reader ClipboardReader

	width, height int
	pasteOpts     paste.Options
	dragCol       *backend.ColumnUID
	status        string
	statusWarn    bool
}

func newModel(ctx context.Context, g *grid.Grid, be backend.Backend, opts Options) *model {
	m := &model{
		ctx:    ctx,
		g:      g,
		be:     be,
		canvas: NewCanvas(20),
		styles: opts.Styles,
		title:  opts.Title,
		reader: opts.Reader,
	}
	m.frame()
	return m
}

func (m *model) Init() tea.Cmd { return nil }

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.canvas.SetHeight(msg.Height - chromeLines)
	case tea.KeyMsg:
		if m.handleKey(msg) {
			return m, tea.Quit
		}
	case tea.MouseMsg:
		m.handleMouse(msg)
	default:
		return m, nil
	}
	m.frame()
	return m, nil
}

// maxFrames bounds the follow-up frames run for one message.
const maxFrames = 3

// frame runs the grid until the drawn cells are current: writes are applied
// after drawing, and rows may need laying out again at their measured height.
func (m *model) frame() {
	res := m.g.Frame(m.ctx, m.be, m.canvas)
	for i := 1; i < maxFrames && (len(res.Mutations) > 0 || m.canvas.NeedsFrame()); i++ {
		again := m.g.Frame(m.ctx, m.be, m.canvas)
		again.Notices = append(res.Notices, again.Notices...)
		if again.Copied == "" {
			again.Copied = res.Copied
		}
		res = again
	}
	switch {
	case len(res.Notices) > 0:
		n := res.Notices[len(res.Notices)-1]
		m.status, m.statusWarn = n.Text, n.Level >= slog.LevelWarn
	case res.Copied != "":
		m.status, m.statusWarn = "Copied selection", false
	}
}

func (m *model) push(events ...grid.Event) {
	m.canvas.Push(events...)
}

// handleKey translates a key press and reports whether to quit.
func (m *model) handleKey(msg tea.KeyMsg) bool {
	if msg.Paste {
		m.push(grid.PasteEvent{Text: string(msg.Runes)})
		return false
	}
	if prompts := m.canvas.Prompts(); len(prompts) > 0 {
		m.answer(prompts[0], msg.String())
		return false
	}
	if m.g.Mode() == selection.ModeEditing {
		return m.editKey(msg)
	}

	sel, hasSel := m.g.Selection()
	switch key := msg.String(); key {
	case "ctrl+c", "q":
		return true
	case "up", "down", "left", "right", "shift+up", "shift+down", "shift+left", "shift+right":
		m.push(grid.KeyEvent{Key: arrowKey(key), Shift: strings.HasPrefix(key, "shift+")})
	case "enter":
		m.push(grid.KeyEvent{Key: grid.KeyEnter})
	case "esc":
		m.push(grid.KeyEvent{Key: grid.KeyEscape})
	case "e", "f2":
		if hasSel && sel.IsSingleCell() {
			m.push(grid.ClickEvent{Row: sel.RowStart(), Col: sel.ColStart()})
		}
	case "a":
		if hasSel {
			m.push(grid.AddCellEvent{Row: sel.RowStart(), Col: sel.ColStart()})
		}
	case "o":
		m.push(grid.AddRowEvent{})
	case "y":
		m.push(grid.KeyEvent{Key: grid.KeyCopy})
	case "p", "ctrl+v":
		m.pasteFromClipboard()
	case "X":
		m.push(grid.ClearRequestEvent{})
	case "s":
		if uid, ok := m.be.RowUID(backend.VisualRowIdx(sel.RowStart())); hasSel && ok {
			m.push(grid.SkipRowEvent{Row: sel.RowStart(), Skip: !m.be.IsRowSkipped(uid)})
		}
	case "S":
		if cols := m.g.Columns(); hasSel && sel.ColStart() < len(cols) {
			m.push(grid.SkipColumnEvent{Col: sel.ColStart(), Skip: !m.be.IsColumnSkipped(cols[sel.ColStart()])})
		}
	case "<", ">":
		m.moveColumn(sel, hasSel, key == "<")
	case "pgdown":
		m.push(grid.ScrollEvent{FirstRow: m.g.Scroll() + m.canvas.Viewport()})
	case "pgup":
		m.push(grid.ScrollEvent{FirstRow: max(0, m.g.Scroll()-m.canvas.Viewport())})
	case "home":
		m.push(grid.ScrollEvent{FirstRow: 0})
	}
	return false
}

func arrowKey(key string) grid.Key {
	switch strings.TrimPrefix(key, "shift+") {
	case "up":
		return grid.KeyUp
	case "down":
		return grid.KeyDown
	case "left":
		return grid.KeyLeft
	default:
		return grid.KeyRight
	}
}

func (m *model) editKey(msg tea.KeyMsg) bool {
	text := m.g.EditText()
	switch msg.Type {
	case tea.KeyCtrlC:
		return true
	case tea.KeyEnter:
		m.push(grid.KeyEvent{Key: grid.KeyEnter})
	case tea.KeyEsc:
		m.push(grid.KeyEvent{Key: grid.KeyEscape})
	case tea.KeyBackspace:
		if r := []rune(text); len(r) > 0 {
			m.push(grid.EditTextEvent{Text: string(r[:len(r)-1])})
		}
	case tea.KeyRunes, tea.KeySpace:
		m.push(grid.EditTextEvent{Text: text + string(msg.Runes)})
	}
	return false
}

func (m *model) answer(p grid.PromptView, key string) {
	yes := key == "y" || key == "enter"
	no := key == "n" || key == "esc"
	switch p.Kind {
	case grid.PromptClear:
		if yes || no {
			m.push(grid.ClearDecisionEvent{Confirm: yes})
		}
	case grid.PromptPaste:
		switch {
		case yes || no:
			m.push(grid.PasteDecisionEvent{Confirm: yes, Options: m.pasteOpts})
			m.pasteOpts = paste.Options{}
		case key == "r" && p.Paste.CanCreateRows:
			m.pasteOpts.CreateRows = !m.pasteOpts.CreateRows
		case key == "f" && p.Paste.CanFill:
			m.pasteOpts.FillWithSame = !m.pasteOpts.FillWithSame
		case key == "c" && p.Paste.CanCreateCols:
			m.pasteOpts.CreateAdhocCols = !m.pasteOpts.CreateAdhocCols
		}
	}
}

func (m *model) pasteFromClipboard() {
	if m.reader == nil {
		return
	}
	text, err := m.reader.ReadText()
	if err != nil {
		ctxlog.FromContext(m.ctx).Warn("Could not read clipboard.", "error", err)
		m.status, m.statusWarn = err.Error(), true
		return
	}
	m.push(grid.PasteEvent{Text: text})
}

func (m *model) moveColumn(sel selection.Range, hasSel, left bool) {
	cols := m.g.Columns()
	if !hasSel || sel.ColStart() >= len(cols) {
		return
	}
	target := sel.ColStart() + 1
	if left {
		target = sel.ColStart() - 1
	}
	if target < 0 || target >= len(cols) {
		return
	}
	m.push(grid.ColumnDropEvent{Dragged: cols[sel.ColStart()], Target: cols[target]})
}

func (m *model) handleMouse(msg tea.MouseMsg) {
	x, y := msg.X, msg.Y-1 // title line
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.push(grid.ScrollEvent{FirstRow: max(0, m.g.Scroll()-3)})
	case msg.Button == tea.MouseButtonWheelDown:
		m.push(grid.ScrollEvent{FirstRow: m.g.Scroll() + 3})
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if uid, ok := m.canvas.HeaderAt(x, y); ok {
			m.dragCol = &uid
			return
		}
		row, col, ok := m.canvas.CellAt(x, y)
		if !ok {
			return
		}
		if cv, ok := m.canvas.Cell(row, col); ok && cv.Affordance == grid.AffordanceAdd && !msg.Shift {
			m.push(grid.AddCellEvent{Row: row, Col: col})
			return
		}
		m.push(grid.ClickEvent{Row: row, Col: col, Shift: msg.Shift})
	case msg.Action == tea.MouseActionRelease && m.dragCol != nil:
		if uid, ok := m.canvas.HeaderAt(x, y); ok && uid != *m.dragCol {
			m.push(grid.ColumnDropEvent{Dragged: *m.dragCol, Target: uid})
		}
		m.dragCol = nil
	}
}

func (m *model) View() string {
	st := m.styles
	var b strings.Builder

	title := m.title
	flags := m.be.PersistentFlags()
	if flags.IsReadOnly {
		title += " [read only]"
	}
	if flags.HaveUncommittedData {
		title += " [modified]"
	}
	b.WriteString(st.Title.Render(title))
	b.WriteByte('\n')
	b.WriteString(m.canvas.Render(m.width, st))
	b.WriteByte('\n')

	if prompts := m.canvas.Prompts(); len(prompts) > 0 {
		b.WriteString(st.Prompt.Render(m.promptLine(prompts[0])))
	}
	b.WriteByte('\n')

	switch {
	case m.status != "" && m.statusWarn:
		b.WriteString(st.Warning.Render(m.status))
	case m.status != "":
		b.WriteString(st.Status.Render(m.status))
	default:
		b.WriteString(st.Status.Render(helpText))
	}
	return b.String()
}

func (m *model) promptLine(p grid.PromptView) string {
	if p.Kind == grid.PromptClear {
		return p.Text + " [y/n]"
	}
	opts := []string{p.Text}
	toggle := func(key, label string, on bool) {
		state := "off"
		if on {
			state = "on"
		}
		opts = append(opts, fmt.Sprintf("%s: %s (%s)", key, label, state))
	}
	if p.Paste.CanCreateRows {
		toggle("r", "create rows", m.pasteOpts.CreateRows)
	}
	if p.Paste.CanFill {
		toggle("f", "fill with same", m.pasteOpts.FillWithSame)
	}
	if p.Paste.CanCreateCols {
		toggle("c", "create columns", m.pasteOpts.CreateAdhocCols)
	}
	return strings.Join(opts, " · ") + " [y/n]"
}
