package grid

import "github.com/vk/tabgrid/internal/backend"

// ViewConfig is the part of the grid state worth keeping between runs.
type ViewConfig struct {
	// MinRowHeight is the height of a row that was never measured, in lines.
	MinRowHeight int
	// HeterogeneousRows lets rows grow to their measured height.
	HeterogeneousRows bool
	ShowColumnTypes   bool
	// ColumnOrder lists column names. Columns not named keep their relative
	// order after the named ones; unknown names are ignored.
	ColumnOrder []string
	// ColumnMapping maps column names to mapping choices.
	ColumnMapping map[string]string
}

// DefaultViewConfig returns the settings used when nothing was saved.
func DefaultViewConfig() ViewConfig {
	return ViewConfig{
		MinRowHeight:      1,
		HeterogeneousRows: true,
		ShowColumnTypes:   true,
	}
}

// LoadViewConfig replaces the view settings. Column order and mappings are
// applied on the next frame, once the backend's columns are known.
func (g *Grid) LoadViewConfig(v ViewConfig) {
	if v.MinRowHeight < 1 {
		v.MinRowHeight = 1
	}
	g.view = v
	g.mapping = make(map[string]string, len(v.ColumnMapping))
	for name, choice := range v.ColumnMapping {
		g.mapping[name] = choice
	}
	g.reorder = len(v.ColumnOrder) > 0
	g.remap = len(v.ColumnMapping) > 0
	if !v.HeterogeneousRows {
		clear(g.rowHeights)
	}
}

// SaveViewConfig returns the current view settings, with the column order
// as displayed.
func (g *Grid) SaveViewConfig() ViewConfig {
	v := g.view
	v.ColumnOrder = make([]string, 0, len(g.columns))
	for _, uid := range g.columns {
		v.ColumnOrder = append(v.ColumnOrder, g.colMeta[uid].Name)
	}
	v.ColumnMapping = nil
	if len(g.mapping) > 0 {
		v.ColumnMapping = make(map[string]string, len(g.mapping))
		for name, choice := range g.mapping {
			v.ColumnMapping[name] = choice
		}
	}
	return v
}

// applyLooseOrder puts the columns named in order first, then the rest in
// their current relative order. Names match the first unplaced column.
func applyLooseOrder(cols []backend.ColumnUID, meta map[backend.ColumnUID]backend.Column, order []string) []backend.ColumnUID {
	placed := make(map[backend.ColumnUID]bool, len(cols))
	out := make([]backend.ColumnUID, 0, len(cols))
	for _, name := range order {
		for _, uid := range cols {
			if !placed[uid] && meta[uid].Name == name {
				placed[uid] = true
				out = append(out, uid)
				break
			}
		}
	}
	for _, uid := range cols {
		if !placed[uid] {
			out = append(out, uid)
		}
	}
	return out
}
