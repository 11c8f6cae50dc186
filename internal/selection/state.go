package selection

// Mode is the coarse state of a selection.
type Mode uint8

const (
	ModeNone Mode = iota
	ModeRange
	ModeEditing
)

func (m Mode) String() string {
	switch m {
	case ModeRange:
		return "range"
	case ModeEditing:
		return "editing"
	default:
		return "none"
	}
}

// Direction of an arrow key.
type Direction uint8

const (
	Up Direction = iota
	Down
	Left
	Right
)

// OutcomeKind tells the caller what a transition requires of it.
type OutcomeKind uint8

const (
	// OutcomeNone needs no action.
	OutcomeNone OutcomeKind = iota
	// OutcomeBeginEdit asks the caller to fill the edit buffer with the
	// current text of the cell via SetEditText.
	OutcomeBeginEdit
	// OutcomeCommit asks the caller to write Text into the cell.
	OutcomeCommit
	// OutcomeDiscard reports an edit that was abandoned.
	OutcomeDiscard
	// OutcomeDeselect reports that a selection without edit was dropped.
	OutcomeDeselect
)

// Outcome is returned by transitions. Row and Col are visual indices of the
// cell concerned.
type Outcome struct {
	Kind OutcomeKind
	Row  int
	Col  int
	Text string
}

// State is the selection of one grid. The zero value has no selection.
type State struct {
	rng      Range
	active   bool
	anchorR  int
	anchorC  int
	editText string
}

// Mode returns the current mode.
func (s *State) Mode() Mode {
	switch {
	case !s.active:
		return ModeNone
	case s.rng.editing:
		return ModeEditing
	default:
		return ModeRange
	}
}

// Selection returns the selected range, if any.
func (s *State) Selection() (Range, bool) {
	return s.rng, s.active
}

// Anchor returns the cell keyboard extension grows from.
func (s *State) Anchor() (row, col int, ok bool) {
	return s.anchorR, s.anchorC, s.active
}

// EditText is the text typed into the cell being edited.
func (s *State) EditText() string { return s.editText }

// SetEditText replaces the edit buffer. It is ignored outside edit mode.
func (s *State) SetEditText(text string) {
	if s.Mode() == ModeEditing {
		s.editText = text
	}
}

// Reset drops the selection and any edit in progress without an outcome.
// It is used when the rows or columns under the selection went away.
func (s *State) Reset() {
	*s = State{}
}

func (s *State) selectSingle(row, col int) {
	s.rng = Single(row, col)
	s.active = true
	s.anchorR, s.anchorC = row, col
	s.editText = ""
}

// endEdit leaves edit mode committing the buffer.
func (s *State) endEdit() Outcome {
	out := Outcome{Kind: OutcomeCommit, Row: s.rng.rowStart, Col: s.rng.colStart, Text: s.editText}
	s.rng.editing = false
	s.editText = ""
	return out
}

// Click handles a plain click on (row, col). Clicking the already selected
// single cell enters edit mode when editable is set. Clicking elsewhere
// while editing commits the edit first.
func (s *State) Click(row, col int, editable bool) Outcome {
	switch s.Mode() {
	case ModeEditing:
		if s.rng.Contains(row, col) {
			return Outcome{}
		}
		out := s.endEdit()
		s.selectSingle(row, col)
		return out
	case ModeRange:
		if s.rng.IsSingleCell() && s.rng.Contains(row, col) {
			if !editable {
				return Outcome{}
			}
			s.rng.SetEditing(true)
			s.editText = ""
			return Outcome{Kind: OutcomeBeginEdit, Row: row, Col: col}
		}
	}
	s.selectSingle(row, col)
	return Outcome{}
}

// ShiftClick grows the selection to include (row, col) without moving the
// anchor. With no selection it behaves like a click that never edits.
func (s *State) ShiftClick(row, col int) Outcome {
	if !s.active {
		s.selectSingle(row, col)
		return Outcome{}
	}
	var out Outcome
	if s.rng.editing && !s.rng.Contains(row, col) {
		out = s.endEdit()
	}
	s.rng.StretchTo(row, col)
	// The anchor goes to the corner facing away from the clicked cell.
	s.anchorR = oppositeEdge(row, s.rng.rowStart, s.rng.rowEnd, s.anchorR)
	s.anchorC = oppositeEdge(col, s.rng.colStart, s.rng.colEnd, s.anchorC)
	return out
}

func oppositeEdge(pos, start, end, anchor int) int {
	switch {
	case start == end:
		return anchor
	case pos == start:
		return end
	case pos == end:
		return start
	}
	return anchor
}

// Move handles an arrow key. Without shift the rectangle collapses onto the
// leading edge in the direction of travel and steps one cell; the other
// axis keeps its extent. With shift the edge away from the anchor moves,
// growing or shrinking the rectangle. Moves past the first or last row or
// column, and any move while editing, do nothing. It reports whether the
// selection changed.
func (s *State) Move(dir Direction, shift bool, rowCount, colCount int) bool {
	if s.Mode() != ModeRange {
		return false
	}
	r := &s.rng
	vertical := dir == Up || dir == Down
	step := 1
	if dir == Up || dir == Left {
		step = -1
	}
	limit := colCount
	if vertical {
		limit = rowCount
	}

	if !shift {
		lead := r.colEnd
		if vertical {
			lead = r.rowEnd
		}
		if step < 0 {
			lead = r.colStart
			if vertical {
				lead = r.rowStart
			}
		}
		next := lead + step
		if next < 0 || next >= limit {
			return false
		}
		if vertical {
			r.rowStart, r.rowEnd = next, next
			s.anchorR = next
		} else {
			r.colStart, r.colEnd = next, next
			s.anchorC = next
		}
		return true
	}

	anchor, cursor := s.anchorC, r.colStart
	if vertical {
		anchor, cursor = s.anchorR, r.rowStart
	}
	if cursor == anchor {
		cursor = r.colEnd
		if vertical {
			cursor = r.rowEnd
		}
	}
	next := cursor + step
	if next < 0 || next >= limit {
		return false
	}
	if vertical {
		r.rowStart, r.rowEnd = min(anchor, next), max(anchor, next)
	} else {
		r.colStart, r.colEnd = min(anchor, next), max(anchor, next)
	}
	return true
}

// Enter commits an edit in progress, or drops a plain selection.
func (s *State) Enter() Outcome {
	switch s.Mode() {
	case ModeEditing:
		out := s.endEdit()
		s.Reset()
		return out
	case ModeRange:
		out := Outcome{Kind: OutcomeDeselect, Row: s.rng.rowStart, Col: s.rng.colStart}
		s.Reset()
		return out
	}
	return Outcome{}
}

// Escape abandons an edit in progress, or drops a plain selection.
func (s *State) Escape() Outcome {
	switch s.Mode() {
	case ModeEditing:
		out := Outcome{Kind: OutcomeDiscard, Row: s.rng.rowStart, Col: s.rng.colStart, Text: s.editText}
		s.Reset()
		return out
	case ModeRange:
		out := Outcome{Kind: OutcomeDeselect, Row: s.rng.rowStart, Col: s.rng.colStart}
		s.Reset()
		return out
	}
	return Outcome{}
}

// SwapColumns follows a swap of the columns at visual positions a and b. A
// single cell moves with its column. A multi-cell rectangle that has exactly
// one of the two columns inside it is dropped, since it would otherwise
// cover a different set of columns.
func (s *State) SwapColumns(a, b int) {
	if !s.active || a == b {
		return
	}
	if s.rng.IsSingleCell() {
		s.rng.SwapColumns(a, b)
		switch s.anchorC {
		case a:
			s.anchorC = b
		case b:
			s.anchorC = a
		}
		return
	}
	if s.rng.ContainsCol(a) != s.rng.ContainsCol(b) {
		s.Reset()
	}
}

// Clamp drops the selection if it reaches past rowCount rows or colCount
// columns, e.g. after rows were removed.
func (s *State) Clamp(rowCount, colCount int) bool {
	if !s.active {
		return false
	}
	if s.rng.rowEnd >= rowCount || s.rng.colEnd >= colCount {
		s.Reset()
		return true
	}
	return false
}
