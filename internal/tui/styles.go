package tui

import "github.com/charmbracelet/lipgloss"

// Styles for the terminal front-end
var (
	appStyle = lipgloss.NewStyle().
			Padding(1, 2)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7B61FF")).
			MarginBottom(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F5F"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFB454"))

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#73F59F"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#5A9"))
)
