package cmd

import "github.com/charmbracelet/lipgloss"

var (
	colorRed    = lipgloss.Color("#FF0000")
	colorGreen  = lipgloss.Color("#00FF00")
	colorYellow = lipgloss.Color("#FFFF00")
	colorCyan   = lipgloss.Color("#00FFFF")
	colorGray   = lipgloss.Color("#666666")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCyan)

	labelStyle = lipgloss.NewStyle().
			Width(18).
			Foreground(colorCyan)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorGray)

	okStyle = lipgloss.NewStyle().
		Foreground(colorGreen).
		Bold(true)

	warnStyle = lipgloss.NewStyle().
			Foreground(colorYellow).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorRed).
			Bold(true)
)

// statusBadge colours a permission or availability keyword.
func statusBadge(status string) string {
	switch status {
	case "granted", "available", "not_applicable":
		return okStyle.Render(status)
	case "denied", "unavailable":
		return errorStyle.Render(status)
	default:
		return warnStyle.Render(status)
	}
}
