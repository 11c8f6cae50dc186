package app

import (
	"context"
	"fmt"

	"github.com/vk/tabgrid/internal/ctxlog"
	"github.com/vk/tabgrid/internal/importer"
	"github.com/vk/tabgrid/internal/tui"
)

// Run imports the data file and shows the grid until the user quits, or
// prints a single frame in headless mode. The view state is saved afterwards
// when a view file was configured.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")
	defer func() {
		if a.logFile != nil {
			a.logFile.Close()
		}
	}()

	st, err := a.load(ctx)
	if err != nil {
		return err
	}
	a.configureStore()

	if a.cfg.Headless {
		if _, err := fmt.Fprintln(a.outW, statusLine(a.Title(), st)); err != nil {
			return fmt.Errorf("failed to write status: %w", err)
		}
		if _, err := tui.Dump(ctx, a.grid, a.store, a.outW, a.cfg.Width, a.cfg.Height); err != nil {
			return err
		}
	} else {
		opts := tui.Options{
			Title:  statusLine(a.Title(), st),
			Styles: tui.DefaultStyles(),
			Reader: a.reader,
		}
		if err := tui.Run(ctx, a.grid, a.store, opts); err != nil {
			return err
		}
	}

	if err := a.saveView(ctx); err != nil {
		return err
	}
	a.logger.Debug("App.Run method finished.")
	return nil
}

// load fills the store from the data file, or declares the required columns
// of an empty table when there is none. Rows read before a reader error are
// kept; a file that cannot be opened or split aborts the run.
func (a *App) load(ctx context.Context) (importer.Status, error) {
	logger := ctxlog.FromContext(ctx)
	if a.cfg.DataPath == "" {
		a.importer.Required().Declare(a.store)
		a.store.MarkReloaded()
		logger.Info("No data file given, starting with an empty table.", "columns", a.importer.Required().Len())
		return importer.Status{Kind: importer.StatusEmpty}, nil
	}

	base, err := a.model.Import.Merge(importer.DefaultConfig())
	if err != nil {
		return importer.Status{}, fmt.Errorf("invalid import configuration: %w", err)
	}
	cfg := a.cfg.importConfig(base)

	st := a.importer.LoadFile(ctx, a.cfg.DataPath, cfg, a.store)
	switch st.Kind {
	case importer.StatusIOError, importer.StatusUnknownSeparator:
		return st, fmt.Errorf("failed to import %s: %s", a.cfg.DataPath, st)
	case importer.StatusReaderError, importer.StatusReaderErrorAtLine:
		logger.Warn("Data file was only partly imported.", "path", a.cfg.DataPath, "status", st.String())
	default:
		logger.Info("Data file imported.", "path", a.cfg.DataPath, "rows", st.Rows, "coerced", st.Coerced)
	}
	return st, nil
}

// saveView writes the column layout back to the view file.
func (a *App) saveView(ctx context.Context) error {
	if a.cfg.ViewPath == "" || a.views == nil {
		return nil
	}
	if err := a.views.SaveView(ctx, a.cfg.ViewPath, a.grid.SaveViewConfig()); err != nil {
		return fmt.Errorf("failed to save view: %w", err)
	}
	ctxlog.FromContext(ctx).Debug("View saved.", "path", a.cfg.ViewPath)
	return nil
}
