package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/growthlog/internal/tracker"
	"github.com/julianstephens/growthlog/internal/utils"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateHome:
		content = m.viewHome()
	case StateRecord:
		content = docStyle.Render(m.recorder.View())
	case StateGroups:
		content = docStyle.Render(m.people.View())
	case StateDiscover:
		content = docStyle.Render(m.discover.View())
	case StateForm:
		content = docStyle.Render(m.form.View())
	case StateConfirm:
		content = m.viewConfirm()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.viewStatus(),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range tabTitles {
		if m.tab == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewStatus() string {
	switch {
	case m.formError != "":
		return dangerStyle.Render("Error: " + m.formError)
	case m.status != "":
		return statusStyle.Render(m.status)
	}
	return ""
}

func (m Model) viewHome() string {
	badge := streakStyle.Render(fmt.Sprintf("🔥 %d day streak", m.streak))
	if m.userState.IsOnMaintenance {
		badge = lipgloss.JoinHorizontal(lipgloss.Center, badge, " ", warningStyle.Render("break day"))
	}

	var unlocked []string
	for _, a := range tracker.Unlocked(&m.userState) {
		unlocked = append(unlocked, a.Icon+" "+a.Title)
	}
	achievements := ""
	if len(unlocked) > 0 {
		achievements = heatmapLabelStyle.Render(strings.Join(unlocked, "  "))
	}

	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		badge,
		m.viewHeatmap(),
		achievements,
		"",
		m.feedList.View(),
	))
}

// heatmapCell picks the glyph for a day: a diamond for focus days, otherwise
// shading by logged hours.
func heatmapCell(d tracker.HeatmapDay) string {
	switch {
	case d.IsFocus:
		return "◇"
	case !d.HasActivity():
		return "·"
	case d.Intensity() < 0.34:
		return "░"
	case d.Intensity() < 0.67:
		return "▒"
	}
	return "█"
}

func (m Model) viewHeatmap() string {
	var columns []string
	for _, d := range m.heatmap {
		label := d.Date
		if t, err := utils.ParseDay(d.Date); err == nil {
			label = t.Format("Mon")
		}
		style := heatmapCellStyle
		switch {
		case d.IsToday:
			style = heatmapTodayStyle
		case d.IsFocus:
			style = heatmapFocusStyle
		}
		columns = append(columns, lipgloss.JoinVertical(lipgloss.Center,
			heatmapLabelStyle.Render(label),
			style.Render(heatmapCell(d)),
		))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, columns...)
}

func (m Model) viewConfirm() string {
	return lipgloss.Place(m.width, max(m.height-4, 5),
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(m.confirmPrompt),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
