package tui

import "github.com/charmbracelet/lipgloss"

// Styles decide how each kind of cell looks.
type Styles struct {
	Title       lipgloss.Style
	Header      lipgloss.Style
	HeaderType  lipgloss.Style
	Cell        lipgloss.Style
	Selected    lipgloss.Style
	Editing     lipgloss.Style
	Skipped     lipgloss.Style
	ReadOnly    lipgloss.Style
	JustUpdated lipgloss.Style
	Affordance  lipgloss.Style
	Prompt      lipgloss.Style
	Status      lipgloss.Style
	Warning     lipgloss.Style
}

// DefaultStyles are used in the terminal.
func DefaultStyles() Styles {
	return Styles{
		Title:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Header:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("8")),
		HeaderType:  lipgloss.NewStyle().Foreground(lipgloss.Color("7")).Background(lipgloss.Color("8")),
		Cell:        lipgloss.NewStyle(),
		Selected:    lipgloss.NewStyle().Background(lipgloss.Color("4")).Foreground(lipgloss.Color("15")),
		Editing:     lipgloss.NewStyle().Background(lipgloss.Color("3")).Foreground(lipgloss.Color("0")),
		Skipped:     lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("8")),
		ReadOnly:    lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		JustUpdated: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Affordance:  lipgloss.NewStyle().Faint(true),
		Prompt:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11")),
		Status:      lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		Warning:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	}
}

// PlainStyles add no escape codes.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		Title: plain, Header: plain, HeaderType: plain, Cell: plain,
		Selected: plain, Editing: plain, Skipped: plain, ReadOnly: plain,
		JustUpdated: plain, Affordance: plain, Prompt: plain, Status: plain,
		Warning: plain,
	}
}
