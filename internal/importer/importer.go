package importer

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/vk/tabgrid/internal/backend"
	"github.com/vk/tabgrid/internal/columns"
	"github.com/vk/tabgrid/internal/ctxlog"
	"github.com/vk/tabgrid/internal/variant"
	"github.com/vk/tabgrid/internal/variantstore"
)

// recordReader yields one record per call and io.EOF after the last one.
type recordReader interface {
	Read() ([]string, error)
}

// lineError lets a reader report the line an error occurred on.
type lineError interface {
	errorLine() (int, bool)
}

// Importer loads files into a store, matching headers against a fixed set
// of required columns. The zero value is not usable; use New.
type Importer struct {
	required  *columns.Set
	separator Separator
	status    Status
}

// New creates an importer for the given required columns. A nil set means
// every column is adhoc.
func New(required *columns.Set) *Importer {
	if required == nil {
		required = columns.NewSet()
	}
	return &Importer{required: required}
}

// Status returns the outcome of the last load.
func (i *Importer) Status() Status { return i.status }

// Separator returns the delimiter used by the last delimited-text load,
// after auto detection.
func (i *Importer) Separator() Separator { return i.separator }

// Required returns the column set headers are matched against.
func (i *Importer) Required() *columns.Set { return i.required }

// load runs the shared pipeline. The store must already be emptied.
func (i *Importer) load(ctx context.Context, rr recordReader, cfg Config, store *variantstore.Store) Status {
	logger := ctxlog.FromContext(ctx)
	line := 0
	next := func() ([]string, error) {
		line++
		return rr.Read()
	}

	for range cfg.SkipFirstRows {
		if _, err := next(); err != nil {
			if errors.Is(err, io.EOF) {
				return Status{Kind: StatusEmpty}
			}
			return Status{Kind: StatusReaderError, Err: err}
		}
	}

	sourceToColumn := make(map[int]backend.ColumnUID)
	nextUID := backend.ColumnUID(0)
	if cfg.HasHeaders {
		header, err := next()
		if errors.Is(err, io.EOF) {
			return Status{Kind: StatusEmpty}
		}
		if err != nil {
			return Status{Kind: StatusReaderError, Err: err}
		}
		for k := range header {
			header[k] = strings.TrimSpace(header[k])
		}
		mapping := i.required.Match(header)
		for _, w := range mapping.Warnings {
			logger.Warn("Double match for column, first match wins.", "column", w.Required, "header", w.Header, "source_index", w.Source)
		}
		i.required.Declare(store)
		mapping.Apply(store)
		sourceToColumn = mapping.SourceToColumn
		nextUID = backend.ColumnUID(i.required.Len() + len(mapping.Adhoc))
		logger.Debug("Header matched.", "required", i.required.Len(), "adhoc", len(mapping.Adhoc))
	}

	st := Status{Kind: StatusLoaded}
	for cfg.MaxRows <= 0 || st.Rows < cfg.MaxRows {
		rec, err := next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			st.Kind = StatusReaderErrorAtLine
			st.Line = line
			if le, ok := err.(lineError); ok {
				if l, ok := le.errorLine(); ok {
					st.Line = l
				}
			}
			st.Err = err
			logger.Warn("Import stopped on read error.", "line", st.Line, "error", err)
			break
		}

		values := make(map[backend.ColumnUID]variant.Value, len(rec))
		for src, text := range rec {
			uid, ok := sourceToColumn[src]
			if !ok {
				// Records wider than the header (or any record of a
				// header-less file) get positional columns.
				uid = nextUID
				nextUID++
				sourceToColumn[src] = uid
				store.InsertColumn(uid, variantstore.ColumnSpec{
					Name: Base26(src + 1),
					Type: variant.Str,
					Kind: backend.KindAdhoc,
				})
			}
			col, _ := store.Column(uid)
			v, ok := variant.FromText(text, col.Type)
			if !ok {
				st.Coerced++
				logger.Debug("Value kept as text.", "line", line, "column", col.Name, "type", col.Type.String())
			}
			values[uid] = v
		}
		store.InsertRow(values)
		st.Rows++
	}

	if st.Kind == StatusLoaded && st.Rows == 0 && len(sourceToColumn) == 0 && !cfg.HasHeaders {
		st.Kind = StatusEmpty
	}
	return st
}

func (i *Importer) finish(ctx context.Context, st Status, store *variantstore.Store) Status {
	store.MarkReloaded()
	i.status = st
	logger := ctxlog.FromContext(ctx)
	if st.IsError() {
		logger.Error("Import failed.", "status", st.String())
	} else {
		logger.Info("Import finished.", "status", st.String())
	}
	return st
}

// Base26 names the n-th (1-based) column the way spreadsheets do: A..Z, AA.
func Base26(n int) string {
	if n <= 0 {
		return ""
	}
	var b []byte
	for n > 0 {
		n--
		b = append(b, byte('A'+n%26))
		n /= 26
	}
	for l, r := 0, len(b)-1; l < r; l, r = l+1, r-1 {
		b[l], b[r] = b[r], b[l]
	}
	return string(b)
}
