package tui

import "github.com/charmbracelet/lipgloss"

var (
	appStyle        = lipgloss.NewStyle().Padding(1, 2)
	titleStyle      = lipgloss.NewStyle().Bold(true)
	helpStyle       = lipgloss.NewStyle().Faint(true)
	errorStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	overlayBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2)
	selectedStyle   = lipgloss.NewStyle().Bold(true)

	badgeActiveStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	badgeErrorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	badgeInactiveStyle = lipgloss.NewStyle().Faint(true)
)
