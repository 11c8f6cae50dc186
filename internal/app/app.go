package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/vk/tabgrid/internal/config"
	"github.com/vk/tabgrid/internal/ctxlog"
	"github.com/vk/tabgrid/internal/grid"
	"github.com/vk/tabgrid/internal/importer"
	"github.com/vk/tabgrid/internal/tui"
	"github.com/vk/tabgrid/internal/variantstore"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW    io.Writer
	logger  *slog.Logger
	logFile io.Closer
	cfg     *Config
	model   *config.Model
	views   config.ViewWriter
	reader  tui.ClipboardReader

	store    *variantstore.Store
	importer *importer.Importer
	grid     *grid.Grid
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger. A configuration that
// cannot be loaded is a fatal startup error and panics.
func NewApp(outW io.Writer, cfg *Config, loader config.Loader) *App {
	w, closer, err := logWriter(cfg, outW)
	if err != nil {
		panic(err)
	}
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, w)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	var configPaths []string
	if cfg.TablePath != "" {
		configPaths = append(configPaths, cfg.TablePath)
	}
	if cfg.ViewPath != "" {
		configPaths = append(configPaths, cfg.ViewPath)
	}
	model, err := loader.Load(ctx, configPaths...)
	if err != nil {
		panic(fmt.Errorf("failed to load configuration: %w", err))
	}
	logger.Debug("Configuration loaded and translated into unified model.")

	required := model.Table.RequiredSet()
	store := variantstore.New()
	readOnly := cfg.ReadOnly || (model.Table != nil && model.Table.ReadOnly)
	var clip grid.Clipboard
	var reader tui.ClipboardReader
	if sys := (tui.SystemClipboard{}); sys.Available() {
		clip, reader = sys, sys
	} else {
		logger.Warn("No system clipboard utility found, copy and paste go through the terminal only.")
	}
	g := grid.New(grid.Settings{EditableCells: !readOnly}, clip)
	if model.View != nil {
		g.LoadViewConfig(*model.View)
	}
	logger.Debug("Grid created.", "required_columns", required.Len(), "read_only", readOnly)

	a := &App{
		outW:     outW,
		logger:   logger,
		logFile:  closer,
		cfg:      cfg,
		model:    model,
		store:    store,
		importer: importer.New(required),
		grid:     g,
		reader:   reader,
	}
	if vw, ok := loader.(config.ViewWriter); ok {
		a.views = vw
	}
	return a
}

// Store returns the backend the data was imported into. This is primarily
// for testing.
func (a *App) Store() *variantstore.Store { return a.store }

// Grid returns the application's grid. This is primarily for testing.
func (a *App) Grid() *grid.Grid { return a.grid }

// Title is the table name from the definition, or the data file name.
func (a *App) Title() string {
	if a.model.Table != nil && a.model.Table.Name != "" {
		return a.model.Table.Name
	}
	if a.cfg.DataPath != "" {
		return filepath.Base(a.cfg.DataPath)
	}
	return "table"
}

// configureStore applies the table-level switches. It runs after the import,
// which rebuilds the columns and writes rows regardless of read-only mode.
func (a *App) configureStore() {
	t := a.model.Table
	a.store.SetReadOnly(a.cfg.ReadOnly || (t != nil && t.ReadOnly))
	if t != nil {
		a.store.SetSkippable(t.SkippableRows, t.SkippableColumns)
		a.store.SetColumnMappingChoices(t.MappingChoices)
	}
}

// statusLine summarizes the import for the user.
func statusLine(title string, st importer.Status) string {
	return title + ": " + st.String()
}
