package ui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	ColorGreenStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00")).Bold(true)
	ColorRedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000")).Bold(true)
	ColorYellowStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true)
	ColorBlueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00BFFF")).Bold(true)
	ColorCyanStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FFFF"))
	ColorMagentaStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF00FF")).Italic(true)
	ColorGrayStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))

	// Object kinds
	BlobStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00"))
	TreeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00BFFF")).Bold(true)
	CommitStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true)
)

// Icons
const (
	IconCheckmark = "✓"
	IconCross     = "✗"
	IconWarning   = "!"
	IconTree      = "▸"
	IconBlob      = "•"
	IconCommit    = "⊚"
)

func Green(s string) string {
	return ColorGreenStyle.Render(s)
}

func Red(s string) string {
	return ColorRedStyle.Render(s)
}

func Yellow(s string) string {
	return ColorYellowStyle.Render(s)
}

func Blue(s string) string {
	return ColorBlueStyle.Render(s)
}

func Cyan(s string) string {
	return ColorCyanStyle.Render(s)
}

func Magenta(s string) string {
	return ColorMagentaStyle.Render(s)
}

func Gray(s string) string {
	return ColorGrayStyle.Render(s)
}
