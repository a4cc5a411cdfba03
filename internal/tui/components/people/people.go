package people

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/growthlog/internal/models"
	"github.com/julianstephens/growthlog/internal/streak"
)

type NewGroupMsg struct{}

// ShareGroupMsg asks for the join link of a group.
type ShareGroupMsg struct {
	GroupID string
}

// ShareSelfMsg asks for the user's own follow link.
type ShareSelfMsg struct{}

type DeleteGroupMsg struct {
	GroupID string
	Name    string
}

type UnfollowMsg struct {
	ID   string
	Name string
}

type Item struct {
	Group  *models.Group
	Person *models.FollowedPerson
	Today  string
}

func (i Item) Title() string {
	if i.Group != nil {
		return fmt.Sprintf("👥 %s (%d members)", i.Group.Name, len(i.Group.Members))
	}
	return "👤 " + i.Person.Name
}

func (i Item) Description() string {
	if i.Group != nil {
		parts := make([]string, 0, len(i.Group.Members))
		for _, m := range i.Group.Members {
			parts = append(parts, personSummary(m.Name, &m.UserState, i.Today))
		}
		return strings.Join(parts, " · ")
	}
	return personSummary("", &i.Person.UserState, i.Today)
}

func (i Item) FilterValue() string {
	if i.Group != nil {
		return i.Group.Name
	}
	return i.Person.Name
}

// personSummary renders a streak badge and whether the person was active today.
func personSummary(name string, s *models.UserState, today string) string {
	mark := "–"
	if s.HasGrowthDate(today) || s.DailyShipped[today] || s.DailyInfrastructureFocus[today] {
		mark = "✓"
	}
	summary := fmt.Sprintf("🔥%d %s", streak.ForState(s, today), mark)
	if name == "" {
		return summary
	}
	return name + " " + summary
}

// Items lists groups in creation order, then followed people by name.
func Items(groups map[string]models.Group, following map[string]models.FollowedPerson, today string) []Item {
	var items []Item
	for _, g := range models.SortedGroups(groups) {
		items = append(items, Item{Group: &g, Today: today})
	}
	for _, p := range models.SortedFollowing(following) {
		items = append(items, Item{Person: &p, Today: today})
	}
	return items
}

type KeyMap struct {
	New    key.Binding
	Share  key.Binding
	Self   key.Binding
	Delete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new group"),
		),
		Share: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "share group"),
		),
		Self: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "my follow link"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "leave/unfollow"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "Groups & Following"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.New, keys.Share, keys.Self, keys.Delete}
	}
	return Model{list: l, keys: keys}
}

func (m *Model) SetItems(items []Item) {
	listItems := make([]list.Item, len(items))
	for i, it := range items {
		listItems[i] = it
	}
	m.list.SetItems(listItems)
}

func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && !m.Filtering() {
		switch {
		case key.Matches(msg, m.keys.New):
			return m, func() tea.Msg { return NewGroupMsg{} }
		case key.Matches(msg, m.keys.Self):
			return m, func() tea.Msg { return ShareSelfMsg{} }
		case key.Matches(msg, m.keys.Share):
			if i, ok := m.list.SelectedItem().(Item); ok && i.Group != nil {
				return m, func() tea.Msg { return ShareGroupMsg{GroupID: i.Group.ID} }
			}
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.list.SelectedItem().(Item); ok {
				if i.Group != nil {
					return m, func() tea.Msg { return DeleteGroupMsg{GroupID: i.Group.ID, Name: i.Group.Name} }
				}
				return m, func() tea.Msg { return UnfollowMsg{ID: i.Person.ID, Name: i.Person.Name} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && !m.Filtering() {
		return "\n  No groups or follows yet.\n  Press 'n' to start a group or 'i' to import a link."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
