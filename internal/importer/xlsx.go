package importer

import (
	"context"
	"errors"
	"io"

	"github.com/unidoc/unioffice/spreadsheet"
	"github.com/unidoc/unioffice/spreadsheet/reference"
	"github.com/vk/tabgrid/internal/variantstore"
)

// errNoSheets is reported for workbooks without a worksheet.
var errNoSheets = errors.New("workbook has no sheets")

type sliceRecords struct {
	rows [][]string
	pos  int
}

func (s *sliceRecords) Read() ([]string, error) {
	if s.pos >= len(s.rows) {
		return nil, io.EOF
	}
	rec := s.rows[s.pos]
	s.pos++
	return rec, nil
}

// sheetRows flattens the first worksheet into records of formatted cell
// text. Missing rows become empty records so record numbers match sheet
// row numbers.
func sheetRows(r io.ReaderAt, size int64) ([][]string, error) {
	wb, err := spreadsheet.Read(r, size)
	if err != nil {
		return nil, err
	}
	sheets := wb.Sheets()
	if len(sheets) == 0 {
		return nil, errNoSheets
	}

	var rows [][]string
	for _, row := range sheets[0].Rows() {
		idx := int(row.RowNumber()) - 1
		for len(rows) < idx {
			rows = append(rows, nil)
		}
		var rec []string
		for _, cell := range row.Cells() {
			colName, err := cell.Column()
			if err != nil {
				continue
			}
			col := int(reference.ColumnToIndex(colName))
			for len(rec) <= col {
				rec = append(rec, "")
			}
			rec[col] = cell.GetFormattedValue()
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

// LoadXLSX replaces the columns and rows of store with the first worksheet
// of the workbook in r. The separator setting is ignored.
func (i *Importer) LoadXLSX(ctx context.Context, r io.ReaderAt, size int64, cfg Config, store *variantstore.Store) Status {
	store.RemoveAllColumns()
	rows, err := sheetRows(r, size)
	if err != nil {
		return i.finish(ctx, Status{Kind: StatusReaderError, Err: err}, store)
	}
	return i.finish(ctx, i.load(ctx, &sliceRecords{rows: rows}, cfg, store), store)
}
