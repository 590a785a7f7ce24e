package cli

import "github.com/charmbracelet/lipgloss"

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ff9f"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6e7681"))
)

func heading(s string) string {
	return headingStyle.Render(s)
}
