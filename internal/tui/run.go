package tui

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/vk/tabgrid/internal/backend"
	"github.com/vk/tabgrid/internal/ctxlog"
	"github.com/vk/tabgrid/internal/grid"
)

// Options configure Run.
type Options struct {
	Title  string
	Styles Styles
	// Reader supplies text for the paste key. Bracketed paste from the
	// terminal works without it.
	Reader ClipboardReader
	// Input and Output replace the terminal when set.
	Input  io.Reader
	Output io.Writer
}

// Run shows g in the terminal until the user quits or ctx is cancelled.
func Run(ctx context.Context, g *grid.Grid, be backend.Backend, opts Options) error {
	logger := ctxlog.FromContext(ctx)
	progOpts := []tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
	if opts.Input != nil {
		progOpts = append(progOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		progOpts = append(progOpts, tea.WithOutput(opts.Output))
	}

	logger.Debug("Starting terminal UI.")
	_, err := tea.NewProgram(newModel(ctx, g, be, opts), progOpts...).Run()
	if err != nil && !(errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil) {
		return fmt.Errorf("terminal UI failed: %w", err)
	}
	logger.Debug("Terminal UI closed.")
	return nil
}
