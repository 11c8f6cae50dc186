package importer

import "fmt"

// StatusKind classifies the outcome of a load.
type StatusKind uint8

const (
	StatusEmpty StatusKind = iota
	StatusLoaded
	StatusIOError
	StatusReaderError
	StatusReaderErrorAtLine
	StatusUnknownSeparator
)

// Status is what the host shows next to the grid after a load.
type Status struct {
	Kind StatusKind
	// Line is the 1-based line of the record that failed to read, for
	// StatusReaderErrorAtLine.
	Line int
	Err  error
	// Rows is the number of data rows inserted, including those inserted
	// before a failure.
	Rows int
	// Coerced counts cells stored as raw strings because they did not fit
	// their column type.
	Coerced int
}

// IsError reports whether the load failed.
func (s Status) IsError() bool {
	switch s.Kind {
	case StatusIOError, StatusReaderError, StatusReaderErrorAtLine, StatusUnknownSeparator:
		return true
	}
	return false
}

func (s Status) String() string {
	switch s.Kind {
	case StatusEmpty:
		return "empty"
	case StatusLoaded:
		if s.Coerced > 0 {
			return fmt.Sprintf("loaded %d rows, %d values kept as text", s.Rows, s.Coerced)
		}
		return fmt.Sprintf("loaded %d rows", s.Rows)
	case StatusIOError:
		return fmt.Sprintf("i/o error: %v", s.Err)
	case StatusReaderError:
		return fmt.Sprintf("read error: %v", s.Err)
	case StatusReaderErrorAtLine:
		return fmt.Sprintf("read error at line %d: %v", s.Line, s.Err)
	case StatusUnknownSeparator:
		return "unknown separator"
	}
	return fmt.Sprintf("status(%d)", uint8(s.Kind))
}
