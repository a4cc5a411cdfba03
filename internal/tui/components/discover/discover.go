package discover

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/growthlog/internal/models"
	"github.com/julianstephens/growthlog/internal/streak"
)

type FollowMsg struct {
	Person models.DiscoverablePerson
}

type AddLinkMsg struct{}

type Item struct {
	Person models.DiscoverablePerson
	Today  string
}

func (i Item) Title() string { return i.Person.Name }
func (i Item) Description() string {
	desc := fmt.Sprintf("🔥%d | %s", streak.ForState(&i.Person.UserState, i.Today), i.Person.Source)
	if bio := i.Person.UserState.ProfileBio; bio != "" {
		desc += " | " + bio
	}
	return desc
}
func (i Item) FilterValue() string { return i.Person.Name }

// substringFilter ranks targets that contain term, ignoring case, in their
// original order.
func substringFilter(term string, targets []string) []list.Rank {
	term = strings.ToLower(term)
	var ranks []list.Rank
	for i, t := range targets {
		lower := strings.ToLower(t)
		idx := strings.Index(lower, term)
		if idx < 0 {
			continue
		}
		start := utf8.RuneCountInString(lower[:idx])
		n := utf8.RuneCountInString(term)
		matched := make([]int, 0, n)
		for j := range n {
			matched = append(matched, start+j)
		}
		ranks = append(ranks, list.Rank{Index: i, MatchedIndexes: matched})
	}
	return ranks
}

type KeyMap struct {
	Follow  key.Binding
	AddLink key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Follow: key.NewBinding(
			key.WithKeys("f", "enter"),
			key.WithHelp("f", "follow"),
		),
		AddLink: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add community link"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "Discover"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.Filter = substringFilter

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Follow, keys.AddLink}
	}
	return Model{list: l, keys: keys}
}

func (m *Model) SetPeople(people []models.DiscoverablePerson, today string) {
	items := make([]list.Item, len(people))
	for i, p := range people {
		items[i] = Item{Person: p, Today: today}
	}
	m.list.SetItems(items)
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
		case key.Matches(msg, m.keys.Follow):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return FollowMsg{Person: i.Person} }
			}
		case key.Matches(msg, m.keys.AddLink):
			return m, func() tea.Msg { return AddLinkMsg{} }
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && !m.Filtering() {
		return "\n  Nobody to discover yet.\n  Press 'a' to add a community follow link."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
