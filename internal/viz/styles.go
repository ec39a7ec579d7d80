package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#00ffff"))

	Subtle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688"))

	StatusRunning = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ff88"))

	StatusWarn = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffaa00"))

	StatusFailed = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff4444"))

	MetricValue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ccff")).
			Bold(true)

	MetricLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899")).
			Width(14)

	KeyHint = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688")).
		Italic(true)

	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444466")).
		Padding(0, 1)

	sparkHigh = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88"))
	sparkMid  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffcc00"))
	sparkLow  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
)

// Metric renders an aligned "label value" line.
func Metric(label, value string) string {
	return MetricLabel.Render(label) + MetricValue.Render(value)
}

// ProgressBar renders a bar for percent in [0, 1].
func ProgressBar(percent float64, width int) string {
	filled := int(percent * float64(width))
	filled = max(0, min(filled, width))

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	switch {
	case percent > 0.8:
		return sparkHigh.Render(bar)
	case percent > 0.4:
		return sparkMid.Render(bar)
	}
	return sparkLow.Render(bar)
}
