package feedlist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/growthlog/internal/feed"
	"github.com/julianstephens/growthlog/internal/models"
)

// ReactMsg sets the user's reaction on an activity. An empty Emoji removes it.
type ReactMsg struct {
	ID    string
	Emoji string
}

type CommentMsg struct {
	ID string
}

type Item struct {
	Event    models.ActivityEvent
	Kudos    string
	Comments int
}

func (i Item) Title() string { return feed.Describe(i.Event) }
func (i Item) Description() string {
	desc := "no reactions yet"
	if i.Kudos != "" {
		desc = "you reacted " + i.Kudos
	}
	if i.Comments > 0 {
		desc += fmt.Sprintf(" | 💬 %d", i.Comments)
	}
	return desc
}
func (i Item) FilterValue() string { return i.Event.PersonName }

// NextReaction cycles through the reactions, then back to none.
func NextReaction(current string) string {
	for i, e := range models.ReactionEmoji {
		if e == current {
			if i+1 < len(models.ReactionEmoji) {
				return models.ReactionEmoji[i+1]
			}
			return ""
		}
	}
	return models.ReactionEmoji[0]
}

type KeyMap struct {
	React   key.Binding
	Comment key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		React: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "react"),
		),
		Comment: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "comment"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "Today"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.React, keys.Comment}
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
		case key.Matches(msg, m.keys.React):
			if i, ok := m.list.SelectedItem().(Item); ok {
				next := NextReaction(i.Kudos)
				return m, func() tea.Msg { return ReactMsg{ID: i.Event.ID, Emoji: next} }
			}
		case key.Matches(msg, m.keys.Comment):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return CommentMsg{ID: i.Event.ID} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && !m.Filtering() {
		return "\n  No activity today yet.\n  Join a group or follow someone to fill your feed."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
