package paste

import "strings"

// Block is clipboard text split into rows of trimmed cells.
type Block struct {
	Rows [][]string
	// Width is the length of the longest row.
	Width  int
	Height int
	// HasHoles is set when rows differ in length.
	HasHoles bool
}

// IsEmpty reports whether the block has no rows.
func (b Block) IsEmpty() bool { return b.Height == 0 }

// ParseBlock splits text on newlines and tabs. CRLF line endings are
// accepted and a single trailing newline ends the last row instead of
// starting an empty one.
func ParseBlock(text string) Block {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return Block{}
	}
	lines := strings.Split(text, "\n")
	b := Block{Rows: make([][]string, 0, len(lines)), Height: len(lines)}
	for _, line := range lines {
		cells := strings.Split(line, "\t")
		for i := range cells {
			cells[i] = strings.TrimSpace(cells[i])
		}
		b.Rows = append(b.Rows, cells)
		b.Width = max(b.Width, len(cells))
	}
	for _, row := range b.Rows {
		if len(row) != b.Width {
			b.HasHoles = true
			break
		}
	}
	return b
}

// FormatBlock joins cells with tabs and rows with newlines. There is no
// trailing newline.
func FormatBlock(rows [][]string) string {
	var sb strings.Builder
	for i, row := range rows {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(strings.Join(row, "\t"))
	}
	return sb.String()
}
