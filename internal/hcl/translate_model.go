package hcl

import (
	"github.com/hashicorp/hcl/v2"
)

// fileRoot decodes every top-level block a file may contain. Unknown blocks
// are an error.
type fileRoot struct {
	Tables  []*tableBlock  `hcl:"table,block"`
	Imports []*importBlock `hcl:"import,block"`
	Views   []*viewBlock   `hcl:"view,block"`
}

type tableBlock struct {
	Name             string         `hcl:"name,label"`
	ReadOnly         *bool          `hcl:"read_only,optional"`
	SkippableRows    *bool          `hcl:"skippable_rows,optional"`
	SkippableColumns *bool          `hcl:"skippable_columns,optional"`
	MappingChoices   []string       `hcl:"mapping_choices,optional"`
	Columns          []*columnBlock `hcl:"column,block"`
}

type columnBlock struct {
	Name     string         `hcl:"name,label"`
	Type     hcl.Expression `hcl:"type,optional"`
	Synonyms []string       `hcl:"synonyms,optional"`
	Default  hcl.Expression `hcl:"default,optional"`
	ReadOnly *bool          `hcl:"read_only,optional"`
}

type importBlock struct {
	Separator     *string `hcl:"separator,optional"`
	SkipFirstRows *int    `hcl:"skip_first_rows,optional"`
	HasHeaders    *bool   `hcl:"has_headers,optional"`
	MaxRows       *int    `hcl:"max_rows,optional"`
}

type viewBlock struct {
	MinRowHeight      *int              `hcl:"min_row_height,optional"`
	HeterogeneousRows *bool             `hcl:"heterogeneous_rows,optional"`
	ShowColumnTypes   *bool             `hcl:"show_column_types,optional"`
	ColumnOrder       []string          `hcl:"column_order,optional"`
	ColumnMapping     map[string]string `hcl:"column_mapping,optional"`
}
