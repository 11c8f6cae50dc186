package hcl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/tabgrid/internal/config"
	"github.com/vk/tabgrid/internal/ctxlog"
	"github.com/vk/tabgrid/internal/fsutil"
	"github.com/vk/tabgrid/internal/grid"
	"github.com/vk/tabgrid/internal/variant"
)

// Loader is the HCL implementation of config.Loader and config.ViewWriter.
type Loader struct{}

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every .hcl file found in paths (directories are walked) and
// merges their blocks into one model. At most one table, import and view
// block may appear across all files.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	hclFiles, err := l.findAllHCLFiles(paths)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(hclFiles))

	model := &config.Model{}
	parser := hclparse.NewParser()
	for _, file := range hclFiles {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}
		if err := l.decodeInto(ctx, hclFile.Body, file, model); err != nil {
			return nil, err
		}
	}

	logger.Debug("HCL loading complete.",
		"table", model.Table != nil, "import", model.Import != nil, "view", model.View != nil)
	return model, nil
}

// LoadBytes parses a single in-memory file.
func (l *Loader) LoadBytes(ctx context.Context, src []byte, filename string) (*config.Model, error) {
	hclFile, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}
	model := &config.Model{}
	if err := l.decodeInto(ctx, hclFile.Body, filename, model); err != nil {
		return nil, err
	}
	return model, nil
}

func (l *Loader) decodeInto(ctx context.Context, body hcl.Body, file string, model *config.Model) error {
	var root fileRoot
	if diags := gohcl.DecodeBody(body, nil, &root); diags.HasErrors() {
		return fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
	}

	for _, tb := range root.Tables {
		if model.Table != nil {
			return fmt.Errorf("%s: table %q: only one table may be defined, already have %q", file, tb.Name, model.Table.Name)
		}
		table, err := translateTable(ctx, tb)
		if err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
		model.Table = table
	}
	for _, ib := range root.Imports {
		if model.Import != nil {
			return fmt.Errorf("%s: only one import block may be defined", file)
		}
		model.Import = translateImport(ib)
	}
	for _, vb := range root.Views {
		if model.View != nil {
			return fmt.Errorf("%s: only one view block may be defined", file)
		}
		model.View = translateView(vb)
	}
	return nil
}

func translateTable(ctx context.Context, tb *tableBlock) (*config.Table, error) {
	logger := ctxlog.FromContext(ctx).With("table", tb.Name)
	table := &config.Table{
		Name:             tb.Name,
		ReadOnly:         deref(tb.ReadOnly, false),
		SkippableRows:    deref(tb.SkippableRows, false),
		SkippableColumns: deref(tb.SkippableColumns, false),
		MappingChoices:   tb.MappingChoices,
	}
	seen := make(map[string]bool, len(tb.Columns))
	for _, cb := range tb.Columns {
		if seen[cb.Name] {
			return nil, fmt.Errorf("table %q: column %q is declared twice", tb.Name, cb.Name)
		}
		seen[cb.Name] = true

		col, err := translateColumn(ctx, cb)
		if err != nil {
			return nil, fmt.Errorf("table %q, column %q: %w", tb.Name, cb.Name, err)
		}
		logger.Debug("Translated column.", "column", col.Name, "type", col.Type.String())
		table.Columns = append(table.Columns, col)
	}
	return table, nil
}

func translateColumn(ctx context.Context, cb *columnBlock) (*config.Column, error) {
	t, err := typeExprToVariantType(ctx, cb.Type, cb.Name)
	if err != nil {
		return nil, err
	}
	col := &config.Column{
		Name:     cb.Name,
		Type:     t,
		Synonyms: cb.Synonyms,
		ReadOnly: deref(cb.ReadOnly, false),
	}
	if isExprDefined(cb.Default) {
		val, diags := cb.Default.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("invalid default value: %w", diags)
		}
		if !val.IsNull() {
			v, err := variant.FromCty(val, t)
			if err != nil {
				return nil, fmt.Errorf("default value does not fit type %s: %w", t, err)
			}
			col.Default = &v
		}
	}
	return col, nil
}

func translateImport(ib *importBlock) *config.Import {
	return &config.Import{
		Separator:     deref(ib.Separator, ""),
		SkipFirstRows: ib.SkipFirstRows,
		HasHeaders:    ib.HasHeaders,
		MaxRows:       ib.MaxRows,
	}
}

func translateView(vb *viewBlock) *grid.ViewConfig {
	v := grid.DefaultViewConfig()
	v.MinRowHeight = deref(vb.MinRowHeight, v.MinRowHeight)
	v.HeterogeneousRows = deref(vb.HeterogeneousRows, v.HeterogeneousRows)
	v.ShowColumnTypes = deref(vb.ShowColumnTypes, v.ShowColumnTypes)
	v.ColumnOrder = vb.ColumnOrder
	v.ColumnMapping = vb.ColumnMapping
	return &v
}

func deref[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}

// findAllHCLFiles walks all given paths and returns a flat list of all .hcl
// files found. A path given directly is used whatever its extension.
func (l *Loader) findAllHCLFiles(paths []string) ([]string, error) {
	var allFiles []string
	seen := make(map[string]struct{})
	add := func(p string) {
		key, err := filepath.Abs(p)
		if err != nil {
			key = filepath.Clean(p)
		}
		if _, wasSeen := seen[key]; !wasSeen {
			allFiles = append(allFiles, p)
			seen[key] = struct{}{}
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue // A view file that was never saved is not an error.
			}
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}

		if !info.IsDir() {
			add(path)
			continue
		}
		found, err := fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			return nil, fmt.Errorf("error walking %s: %w", path, err)
		}
		for _, p := range found {
			add(p)
		}
	}
	return allFiles, nil
}
