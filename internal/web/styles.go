package web

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")).MarginBottom(1)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			Width(36)
	selectedCardStyle = cardStyle.BorderForeground(lipgloss.Color("63"))

	categoryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	tagStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	panelStyle    = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(1, 2)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Bold(true)
	focusedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1)
)

func button(label string, focused, disabled bool) string {
	style := lipgloss.NewStyle().Padding(0, 2).Background(lipgloss.Color("237"))
	switch {
	case disabled:
		style = style.Foreground(lipgloss.Color("243"))
	case focused:
		style = style.Background(lipgloss.Color("63")).Foreground(lipgloss.Color("230"))
	}
	return style.Render(label)
}
