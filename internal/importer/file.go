package importer

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/vk/tabgrid/internal/ctxlog"
	"github.com/vk/tabgrid/internal/variantstore"
)

// LoadFile picks the loader from the file extension. .xlsx files go to
// LoadXLSX, everything else is delimited text; .tsv files default to tab
// when the separator is auto.
func (i *Importer) LoadFile(ctx context.Context, path string, cfg Config, store *variantstore.Store) Status {
	ctxlog.FromContext(ctx).Debug("Loading data file.", "path", path, "separator", cfg.Separator.String())

	f, err := os.Open(path)
	if err != nil {
		store.RemoveAllColumns()
		return i.finish(ctx, Status{Kind: StatusIOError, Err: err}, store)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		info, err := f.Stat()
		if err != nil {
			store.RemoveAllColumns()
			return i.finish(ctx, Status{Kind: StatusIOError, Err: err}, store)
		}
		return i.LoadXLSX(ctx, f, info.Size(), cfg, store)
	case ".tsv":
		if cfg.Separator == SeparatorAuto {
			cfg.Separator = SeparatorTab
		}
	}
	return i.LoadCSV(ctx, f, cfg, store)
}
