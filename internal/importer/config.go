package importer

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrUnknownSeparator is returned for separator names other than auto,
// comma, tab and semicolon.
var ErrUnknownSeparator = errors.New("unknown separator")

// Separator selects the field delimiter of delimited text.
type Separator uint8

const (
	SeparatorAuto Separator = iota
	SeparatorComma
	SeparatorTab
	SeparatorSemicolon
)

var separatorNames = []string{"auto", "comma", "tab", "semicolon"}

func (s Separator) String() string {
	if int(s) < len(separatorNames) {
		return separatorNames[s]
	}
	return fmt.Sprintf("separator(%d)", uint8(s))
}

// Rune returns the delimiter, or 0 for SeparatorAuto and unknown values.
func (s Separator) Rune() rune {
	switch s {
	case SeparatorComma:
		return ','
	case SeparatorTab:
		return '\t'
	case SeparatorSemicolon:
		return ';'
	}
	return 0
}

// ParseSeparator accepts a separator name or the delimiter itself.
func ParseSeparator(name string) (Separator, error) {
	switch strings.ToLower(name) {
	case "", "auto":
		return SeparatorAuto, nil
	case "comma", ",":
		return SeparatorComma, nil
	case "tab", "\t", `\t`:
		return SeparatorTab, nil
	case "semicolon", ";":
		return SeparatorSemicolon, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSeparator, name)
}

// Config controls how a file is read.
type Config struct {
	Separator     Separator
	SkipFirstRows int
	HasHeaders    bool
	// MaxRows caps the number of data rows read. Zero means no cap.
	MaxRows int
}

// DefaultConfig reads comma/tab/semicolon files with a header row.
func DefaultConfig() Config {
	return Config{Separator: SeparatorAuto, HasHeaders: true}
}

// sniffWindow bounds how much input DetectSeparator inspects.
const sniffWindow = 1 << 20

// DetectSeparator counts commas, tabs and semicolons in the first MiB of r
// and returns the most frequent. Ties go to the earlier of comma, tab,
// semicolon, so input without any of them is treated as comma separated.
func DetectSeparator(r io.Reader) (Separator, error) {
	var counts [3]int
	buf := make([]byte, 32*1024)
	lr := io.LimitReader(r, sniffWindow)
	for {
		n, err := lr.Read(buf)
		for _, b := range buf[:n] {
			switch b {
			case ',':
				counts[0]++
			case '\t':
				counts[1]++
			case ';':
				counts[2]++
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return SeparatorAuto, err
		}
	}
	best := 0
	for i := 1; i < len(counts); i++ {
		if counts[i] > counts[best] {
			best = i
		}
	}
	return []Separator{SeparatorComma, SeparatorTab, SeparatorSemicolon}[best], nil
}
