package selection

import "fmt"

// Range is an inclusive rectangle of visual cell indices. Bounds are always
// ordered and editing is only ever set on a single cell.
type Range struct {
	rowStart, rowEnd int
	colStart, colEnd int
	editing          bool
}

// Single returns the 1x1 range at (row, col).
func Single(row, col int) Range {
	return Range{rowStart: row, rowEnd: row, colStart: col, colEnd: col}
}

// Span returns the smallest range containing both corners.
func Span(row1, col1, row2, col2 int) Range {
	return Range{
		rowStart: min(row1, row2), rowEnd: max(row1, row2),
		colStart: min(col1, col2), colEnd: max(col1, col2),
	}
}

func (r Range) RowStart() int { return r.rowStart }
func (r Range) RowEnd() int { return r.rowEnd }
func (r Range) ColStart() int { return r.colStart }
func (r Range) ColEnd() int { return r.colEnd }

// IsEditing reports whether the single cell of r is being edited.
func (r Range) IsEditing() bool { return r.editing }

// Equal compares bounds only; the editing flag is ignored.
func (r Range) Equal(o Range) bool {
	return r.rowStart == o.rowStart && r.rowEnd == o.rowEnd &&
		r.colStart == o.colStart && r.colEnd == o.colEnd
}

func (r Range) IsSingleCell() bool {
	return r.rowStart == r.rowEnd && r.colStart == r.colEnd
}

func (r Range) Height() int { return r.rowEnd - r.rowStart + 1 }
func (r Range) Width() int { return r.colEnd - r.colStart + 1 }

func (r Range) Contains(row, col int) bool {
	return r.ContainsRow(row) && r.ContainsCol(col)
}

func (r Range) ContainsRow(row int) bool { return row >= r.rowStart && row <= r.rowEnd }
func (r Range) ContainsCol(col int) bool { return col >= r.colStart && col <= r.colEnd }

// SetEditing turns edit mode on (only if r is a single cell) or off.
func (r *Range) SetEditing(editing bool) {
	r.editing = editing && r.IsSingleCell()
}

// StretchTo grows r so that it includes (row, col). Growing past one cell
// ends edit mode.
func (r *Range) StretchTo(row, col int) {
	r.rowStart = min(r.rowStart, row)
	r.rowEnd = max(r.rowEnd, row)
	r.colStart = min(r.colStart, col)
	r.colEnd = max(r.colEnd, col)
	if !r.IsSingleCell() {
		r.editing = false
	}
}

// SwapColumns keeps a single-cell range on the same logical column after
// the columns at visual positions a and b trade places. Multi-cell ranges
// are left alone; see State.SwapColumns.
func (r *Range) SwapColumns(a, b int) {
	if !r.IsSingleCell() {
		return
	}
	switch r.colStart {
	case a:
		r.colStart, r.colEnd = b, b
	case b:
		r.colStart, r.colEnd = a, a
	}
}

func (r Range) String() string {
	s := fmt.Sprintf("[%d..%d]x[%d..%d]", r.rowStart, r.rowEnd, r.colStart, r.colEnd)
	if r.editing {
		s += " editing"
	}
	return s
}
