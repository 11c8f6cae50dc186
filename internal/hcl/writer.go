package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/vk/tabgrid/internal/ctxlog"
	"github.com/vk/tabgrid/internal/fsutil"
	"github.com/vk/tabgrid/internal/grid"
	"github.com/zclconf/go-cty/cty"
)

// FormatView renders view as a `view` block.
func FormatView(view grid.ViewConfig) []byte {
	f := hclwrite.NewEmptyFile()
	body := f.Body().AppendNewBlock("view", nil).Body()
	body.SetAttributeValue("min_row_height", cty.NumberIntVal(int64(view.MinRowHeight)))
	body.SetAttributeValue("heterogeneous_rows", cty.BoolVal(view.HeterogeneousRows))
	body.SetAttributeValue("show_column_types", cty.BoolVal(view.ShowColumnTypes))

	order := cty.ListValEmpty(cty.String)
	if len(view.ColumnOrder) > 0 {
		vals := make([]cty.Value, 0, len(view.ColumnOrder))
		for _, name := range view.ColumnOrder {
			vals = append(vals, cty.StringVal(name))
		}
		order = cty.ListVal(vals)
	}
	body.SetAttributeValue("column_order", order)

	mapping := cty.MapValEmpty(cty.String)
	if len(view.ColumnMapping) > 0 {
		vals := make(map[string]cty.Value, len(view.ColumnMapping))
		for name, choice := range view.ColumnMapping {
			vals[name] = cty.StringVal(choice)
		}
		mapping = cty.MapVal(vals)
	}
	body.SetAttributeValue("column_mapping", mapping)
	return f.Bytes()
}

// SaveView writes view to path, replacing the file atomically.
func (l *Loader) SaveView(ctx context.Context, path string, view grid.ViewConfig) error {
	if err := fsutil.WriteFileAtomic(path, FormatView(view), 0o644); err != nil {
		return fmt.Errorf("failed to save view: %w", err)
	}
	ctxlog.FromContext(ctx).Debug("Saved view configuration.", "path", path)
	return nil
}
