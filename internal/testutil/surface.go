package testutil

import (
	"errors"
	"sync"

	"github.com/vk/tabgrid/internal/backend"
	"github.com/vk/tabgrid/internal/grid"
)

// FakeSurface is a grid.Surface that hands out queued events and records
// everything drawn during the last frame.
type FakeSurface struct {
	Height int

	queued  []grid.Event
	Header  grid.HeaderView
	Cells   []grid.CellView
	Prompts []grid.PromptView
}

// NewFakeSurface returns a surface with room for height lines of rows.
func NewFakeSurface(height int) *FakeSurface {
	return &FakeSurface{Height: height}
}

// Push queues events for the next frame.
func (s *FakeSurface) Push(events ...grid.Event) {
	s.queued = append(s.queued, events...)
}

func (s *FakeSurface) Events() []grid.Event {
	ev := s.queued
	s.queued = nil
	s.Cells = nil
	s.Prompts = nil
	return ev
}

func (s *FakeSurface) Viewport() int { return s.Height }

func (s *FakeSurface) DrawHeader(h grid.HeaderView) { s.Header = h }

func (s *FakeSurface) DrawCell(c grid.CellView) { s.Cells = append(s.Cells, c) }

func (s *FakeSurface) Prompt(p grid.PromptView) { s.Prompts = append(s.Prompts, p) }

// Cell returns the view drawn for the visual position (row, col).
func (s *FakeSurface) Cell(row, col int) (grid.CellView, bool) {
	for _, c := range s.Cells {
		if c.Row == row && c.Col == col {
			return c, true
		}
	}
	return grid.CellView{}, false
}

// HeaderNames returns the drawn column names in display order.
func (s *FakeSurface) HeaderNames() []string {
	names := make([]string, 0, len(s.Header.Cells))
	for _, c := range s.Header.Cells {
		names = append(names, c.Name)
	}
	return names
}

// ErrClipboardUnavailable is returned by a failing RecordingClipboard.
var ErrClipboardUnavailable = errors.New("clipboard unavailable")

// RecordingClipboard is a grid.Clipboard that keeps what was written.
type RecordingClipboard struct {
	mu    sync.Mutex
	texts []string
	Fail  bool
}

func (c *RecordingClipboard) WriteText(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Fail {
		return ErrClipboardUnavailable
	}
	c.texts = append(c.texts, text)
	return nil
}

// Last returns the most recent text written.
func (c *RecordingClipboard) Last() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.texts) == 0 {
		return ""
	}
	return c.texts[len(c.texts)-1]
}

// HighlightRecorder wraps a backend and records OnHighlightCell calls.
type HighlightRecorder struct {
	backend.Backend
	Highlighted []backend.CellCoord
}

func (h *HighlightRecorder) OnHighlightCell(coord backend.CellCoord) {
	h.Highlighted = append(h.Highlighted, coord)
}
