package tui

import (
	"context"
	"fmt"
	"io"

	"github.com/vk/tabgrid/internal/backend"
	"github.com/vk/tabgrid/internal/grid"
)

// Dump runs one frame of g without a terminal and writes the rendered table
// to w, with at most height lines of rows. Rows that need more than one line
// are measured by a second frame.
func Dump(ctx context.Context, g *grid.Grid, be backend.Backend, w io.Writer, width, height int) (grid.FrameResult, error) {
	canvas := NewCanvas(height)
	res := g.Frame(ctx, be, canvas)
	if canvas.NeedsFrame() {
		res = g.Frame(ctx, be, canvas)
	}
	if _, err := fmt.Fprintln(w, canvas.Render(width, PlainStyles())); err != nil {
		return res, fmt.Errorf("failed to write table: %w", err)
	}
	return res, nil
}
