package report

import "github.com/charmbracelet/lipgloss"

type styles struct {
	event lipgloss.Style
	label lipgloss.Style
	value lipgloss.Style
	title lipgloss.Style
}

// newStyles binds the palette to r so color is dropped when the output is
// not a terminal.
func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		event: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffaa00")),
		label: r.NewStyle().
			Foreground(lipgloss.Color("#888899")),
		value: r.NewStyle().
			Foreground(lipgloss.Color("#00ccff")).
			Bold(true),
		title: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ffff")),
	}
}
