package tui

import "github.com/charmbracelet/lipgloss"

var (
	appStyle        = lipgloss.NewStyle().Padding(1, 2)
	titleStyle      = lipgloss.NewStyle().Bold(true)
	helpStyle       = lipgloss.NewStyle().Faint(true)
	errorStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	selectedStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	overlayBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2)

	statusOnlineStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	statusOfflineStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	statusSyncingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	statusErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)
