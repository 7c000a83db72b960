package ui

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles used by the checklist screen.
type Styles struct {
	Title    lipgloss.Style
	Cursor   lipgloss.Style
	Checked  lipgloss.Style
	Category lipgloss.Style
	Date     lipgloss.Style
	Percent  lipgloss.Style
	Button   lipgloss.Style
	Muted    lipgloss.Style
}

// DefaultStyles returns the default styles.
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1),
		Cursor:   lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
		Checked:  lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Category: lipgloss.NewStyle().Bold(true).Width(10),
		Date:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Percent:  lipgloss.NewStyle().Bold(true),
		Button: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 2),
		Muted: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}
