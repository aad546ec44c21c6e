package tui

import "github.com/charmbracelet/lipgloss"

var (
	activeTabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(lipgloss.Color("236")).
			Padding(0, 1).
			Bold(true)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Padding(0, 1)

	docStyle = lipgloss.NewStyle().Padding(1, 2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true).
			MarginBottom(1)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1).
			MarginRight(1)

	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	dangerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)

	userBubbleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("81"))
	coachBubbleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("219"))

	barStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
)

// verdictStyle colours a forecast verdict
func verdictStyle(prob float64) lipgloss.Style {
	switch {
	case prob >= 0.8:
		return successStyle
	case prob >= 0.6:
		return warningStyle
	default:
		return dangerStyle
	}
}
