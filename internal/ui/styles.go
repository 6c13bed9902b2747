package ui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	tagStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	detailBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("238")).
				Padding(0, 1)

	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	footerKeyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
)
