package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"io"

	"github.com/vk/tabgrid/internal/variantstore"
)

type csvRecords struct {
	r *csv.Reader
}

func (c csvRecords) Read() ([]string, error) {
	rec, err := c.r.Read()
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, &csvError{err: err}
	}
	return rec, err
}

type csvError struct{ err error }

func (e *csvError) Error() string { return e.err.Error() }
func (e *csvError) Unwrap() error { return e.err }

func (e *csvError) errorLine() (int, bool) {
	var pe *csv.ParseError
	if errors.As(e.err, &pe) {
		return pe.Line, true
	}
	return 0, false
}

// LoadCSV replaces the columns and rows of store with the contents of r.
// With SeparatorAuto the input is sampled first and then rewound.
func (i *Importer) LoadCSV(ctx context.Context, r io.ReadSeeker, cfg Config, store *variantstore.Store) Status {
	store.RemoveAllColumns()

	sep := cfg.Separator
	if sep == SeparatorAuto {
		detected, err := DetectSeparator(r)
		if err != nil {
			return i.finish(ctx, Status{Kind: StatusIOError, Err: err}, store)
		}
		if _, err := r.Seek(0, io.SeekStart); err != nil {
			return i.finish(ctx, Status{Kind: StatusIOError, Err: err}, store)
		}
		sep = detected
	}
	if sep.Rune() == 0 {
		return i.finish(ctx, Status{Kind: StatusUnknownSeparator}, store)
	}
	i.separator = sep

	cr := csv.NewReader(r)
	cr.Comma = sep.Rune()
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	return i.finish(ctx, i.load(ctx, csvRecords{r: cr}, cfg, store), store)
}
