package tui

import "github.com/charmbracelet/lipgloss"

// Adaptive color definitions for light/dark terminal support
var (
	colorGreen  = lipgloss.AdaptiveColor{Light: "#006400", Dark: "#00ff5f"}
	colorRed    = lipgloss.AdaptiveColor{Light: "#8b0000", Dark: "#ff5f5f"}
	colorYellow = lipgloss.AdaptiveColor{Light: "#b8860b", Dark: "#ffd75f"}
	colorGray   = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"}
	colorCyan   = lipgloss.AdaptiveColor{Light: "#008b8b", Dark: "#00d7d7"}
)

var (
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorGreen)

	styleTab = lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(colorGray)

	styleTabActive = lipgloss.NewStyle().
			Padding(0, 2).
			Bold(true).
			Foreground(colorGreen).
			Underline(true)

	styleSelected = lipgloss.NewStyle().
			Background(lipgloss.AdaptiveColor{Light: "#d3d3d3", Dark: "#3a3a3a"}).
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"})

	styleLabel = lipgloss.NewStyle().
			Foreground(colorCyan)

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorGreen)

	styleError = lipgloss.NewStyle().
			Foreground(colorRed)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorYellow)

	styleSubtle = lipgloss.NewStyle().
			Foreground(colorGray)

	styleBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorGreen).
			Padding(0, 1)

	styleDialog = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(colorCyan).
			Padding(1, 2)
)
