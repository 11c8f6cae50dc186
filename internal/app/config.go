package app

import (
	"errors"
	"fmt"

	"github.com/vk/tabgrid/internal/importer"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	TablePath string // hcl file or directory with the table definition
	DataPath  string // csv, tsv, txt or xlsx file
	ViewPath  string // hcl file with the view state, rewritten on exit

	// Import overrides. Nil and zero values keep what the table definition
	// or the importer default says.
	Separator string
	SkipRows  *int
	MaxRows   *int
	NoHeader  bool
	ReadOnly  bool

	// Headless prints one frame of Width x Height instead of starting the
	// terminal UI. A zero Width does not truncate.
	Headless bool
	Width    int
	Height   int

	LogFormat string
	LogLevel  string
	LogFile   string
}

// DefaultHeight is the number of row lines a headless dump shows when no
// height is given.
const DefaultHeight = 50

func NewConfig(cfg Config) (*Config, error) {
	if cfg.TablePath == "" && cfg.DataPath == "" {
		return nil, errors.New("either a table definition or a data file is required")
	}
	if _, err := importer.ParseSeparator(cfg.Separator); err != nil {
		return nil, fmt.Errorf("invalid separator: %w", err)
	}
	if cfg.SkipRows != nil && *cfg.SkipRows < 0 {
		return nil, errors.New("skip-rows cannot be negative")
	}
	if cfg.MaxRows != nil && *cfg.MaxRows < 0 {
		return nil, errors.New("max-rows cannot be negative")
	}
	if cfg.Width < 0 || cfg.Height < 0 {
		return nil, errors.New("width and height cannot be negative")
	}
	if cfg.Height == 0 {
		cfg.Height = DefaultHeight
	}
	return &cfg, nil
}

// importConfig layers the importer default, the import block of the table
// definition and the command line, in that order.
func (c *Config) importConfig(base importer.Config) importer.Config {
	if c.Separator != "" {
		// Validated by NewConfig.
		base.Separator, _ = importer.ParseSeparator(c.Separator)
	}
	if c.SkipRows != nil {
		base.SkipFirstRows = *c.SkipRows
	}
	if c.MaxRows != nil {
		base.MaxRows = *c.MaxRows
	}
	if c.NoHeader {
		base.HasHeaders = false
	}
	return base
}
