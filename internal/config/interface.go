package config

import (
	"context"

	"github.com/vk/tabgrid/internal/grid"
)

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Load reads configuration from the given paths and translates it into
	// the format-agnostic model. Paths that do not exist are ignored.
	Load(ctx context.Context, paths ...string) (*Model, error)
}

// ViewWriter persists the view state of the grid.
type ViewWriter interface {
	SaveView(ctx context.Context, path string, view grid.ViewConfig) error
}
