package config

import (
	"fmt"

	"github.com/vk/tabgrid/internal/columns"
	"github.com/vk/tabgrid/internal/grid"
	"github.com/vk/tabgrid/internal/importer"
	"github.com/vk/tabgrid/internal/variant"
)

// Model is the unified, format-agnostic representation of the whole
// configuration. Sections absent from every source are nil.
type Model struct {
	Table  *Table
	Import *Import
	View   *grid.ViewConfig
}

// Table describes the table data is imported into.
type Table struct {
	Name             string
	ReadOnly         bool
	SkippableRows    bool
	SkippableColumns bool
	// MappingChoices are the external entities columns can be mapped to.
	MappingChoices []string
	Columns        []*Column
}

// Column is a required column of the table.
type Column struct {
	Name     string
	Type     variant.Type
	Synonyms []string
	Default  *variant.Value
	ReadOnly bool
}

// Import holds the importer settings. Nil fields keep the importer default.
type Import struct {
	Separator     string
	SkipFirstRows *int
	HasHeaders    *bool
	MaxRows       *int
}

// RequiredSet converts the declared columns into a columns.Set, in
// declaration order.
func (t *Table) RequiredSet() *columns.Set {
	if t == nil {
		return columns.NewSet()
	}
	req := make([]columns.Required, 0, len(t.Columns))
	for _, c := range t.Columns {
		r := columns.New(c.Name, c.Type).WithSynonyms(c.Synonyms...)
		if c.Default != nil {
			r = r.WithDefault(*c.Default)
		}
		r.ReadOnly = c.ReadOnly
		req = append(req, r)
	}
	return columns.NewSet(req...)
}

// Merge overrides fields of base that are set in i.
func (i *Import) Merge(base importer.Config) (importer.Config, error) {
	if i == nil {
		return base, nil
	}
	if i.Separator != "" {
		sep, err := importer.ParseSeparator(i.Separator)
		if err != nil {
			return base, fmt.Errorf("import block: %w", err)
		}
		base.Separator = sep
	}
	if i.SkipFirstRows != nil {
		base.SkipFirstRows = *i.SkipFirstRows
	}
	if i.HasHeaders != nil {
		base.HasHeaders = *i.HasHeaders
	}
	if i.MaxRows != nil {
		base.MaxRows = *i.MaxRows
	}
	return base, nil
}
