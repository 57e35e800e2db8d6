// tui/styles.go
package tui

import "github.com/charmbracelet/lipgloss"

var (
	primaryColor = lipgloss.Color("#0078D4")
	errorColor   = lipgloss.Color("#EF4444")
	successColor = lipgloss.Color("#22C55E")
	mutedColor   = lipgloss.Color("#6C7086")
	borderColor  = lipgloss.Color("#45475A")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Bold(true)

	modeStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true)

	validationStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	statusStyle = lipgloss.NewStyle().
			Foreground(successColor)

	errorStatusStyle = lipgloss.NewStyle().
				Foreground(errorColor).
				Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			MarginTop(1)

	tableBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor)
)
