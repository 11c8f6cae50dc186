package paste

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/tabgrid/internal/backend"
	"github.com/vk/tabgrid/internal/ctxlog"
	"github.com/vk/tabgrid/internal/selection"
	"github.com/vk/tabgrid/internal/variant"
)

// Report lists what Apply did.
type Report struct {
	Written     []backend.CellCoord
	CreatedRows []backend.RowUID
	// CreatedCols should be appended to the display order by the caller.
	CreatedCols []backend.ColumnUID
	// Coerced cells did not fit their column type and hold the raw text.
	Coerced []backend.CellCoord
	// Skipped counts destinations that could not be written: stale rows,
	// read-only columns and Never cells.
	Skipped int
}

// Apply writes job into be. columns is the display order the selection's
// column indices refer to. Rows are resolved first (creating extra rows
// when asked), then columns; with FillWithSame each axis cycles the block
// independently wherever the destination is larger.
func Apply(ctx context.Context, be backend.Backend, columns []backend.ColumnUID, job Job) Report {
	logger := ctxlog.FromContext(ctx)
	sel, block, opts := job.Selection, job.Block, job.Options
	var rep Report
	if block.IsEmpty() {
		return rep
	}

	type optRow struct {
		uid backend.RowUID
		ok  bool
	}
	rows := make([]optRow, 0, max(sel.Height(), block.Height))
	for i := range sel.Height() {
		uid, ok := be.RowUID(backend.VisualRowIdx(sel.RowStart() + i))
		rows = append(rows, optRow{uid, ok})
	}
	if opts.CreateRows && block.Height > sel.Height() {
		for range block.Height - sel.Height() {
			uid, ok := be.CreateRow(nil)
			if ok {
				rep.CreatedRows = append(rep.CreatedRows, uid)
			}
			rows = append(rows, optRow{uid, ok})
		}
	}

	type optCol struct {
		uid backend.ColumnUID
		typ variant.Type
		ok  bool
	}
	cols := make([]optCol, 0, max(sel.Width(), block.Width))
	for j := range sel.Width() {
		idx := sel.ColStart() + j
		if idx >= len(columns) {
			cols = append(cols, optCol{})
			continue
		}
		col, ok := be.Column(columns[idx])
		cols = append(cols, optCol{uid: columns[idx], typ: col.Type, ok: ok && !col.IsReadOnly})
	}
	if opts.CreateAdhocCols && block.Width > sel.Width() {
		if creator, ok := be.(backend.ColumnCreator); ok {
			for k := range block.Width - sel.Width() {
				uid, ok := creator.CreateColumn(fmt.Sprintf("Column %d", len(columns)+k+1))
				if ok {
					rep.CreatedCols = append(rep.CreatedCols, uid)
				}
				cols = append(cols, optCol{uid: uid, typ: variant.Str, ok: ok})
			}
		} else {
			logger.Warn("Backend cannot create columns, extra pasted columns dropped.")
		}
	}

	for i, row := range rows {
		if !opts.FillWithSame && i >= block.Height {
			break
		}
		src := block.Rows[i%block.Height]
		if len(src) == 0 {
			continue
		}
		for j, col := range cols {
			if !opts.FillWithSame && j >= len(src) {
				break
			}
			if !row.ok || !col.ok {
				rep.Skipped++
				continue
			}
			coord := backend.CellCoord{Row: row.uid, Col: col.uid}
			if cur, ok := be.Get(coord); ok && cur.IsNever() {
				rep.Skipped++
				continue
			}
			v, fits := variant.FromText(src[j%len(src)], col.typ)
			if err := be.Set(coord, v); err != nil {
				if !errors.Is(err, backend.ErrStaleCoord) && !errors.Is(err, backend.ErrReadOnly) {
					logger.Warn("Paste could not write cell.", "coord", coord.String(), "error", err)
				}
				rep.Skipped++
				continue
			}
			rep.Written = append(rep.Written, coord)
			if !fits {
				rep.Coerced = append(rep.Coerced, coord)
			}
		}
	}

	logger.Debug("Paste applied.",
		"written", len(rep.Written), "created_rows", len(rep.CreatedRows),
		"created_cols", len(rep.CreatedCols), "coerced", len(rep.Coerced), "skipped", rep.Skipped)
	return rep
}

// Copy serializes the cells of sel, row-major. Cells without a value become
// empty strings.
func Copy(be backend.Backend, columns []backend.ColumnUID, sel selection.Range) string {
	rows := make([][]string, 0, sel.Height())
	for r := sel.RowStart(); r <= sel.RowEnd(); r++ {
		uid, ok := be.RowUID(backend.VisualRowIdx(r))
		if !ok {
			continue
		}
		cells := make([]string, 0, sel.Width())
		for c := sel.ColStart(); c <= sel.ColEnd(); c++ {
			text := ""
			if c < len(columns) {
				if v, ok := be.Get(backend.CellCoord{Row: uid, Col: columns[c]}); ok {
					text = v.String()
				}
			}
			cells = append(cells, text)
		}
		rows = append(rows, cells)
	}
	return FormatBlock(rows)
}
