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

	dangerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Italic(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	streakStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("208")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("208"))

	heatmapLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240"))

	heatmapCellStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34")).
				Padding(0, 1)

	heatmapTodayStyle = heatmapCellStyle.
				Background(lipgloss.Color("236")).
				Bold(true)

	heatmapFocusStyle = heatmapCellStyle.
				Foreground(lipgloss.Color("75"))
)
