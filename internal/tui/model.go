package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/growthlog/internal/cli"
	"github.com/julianstephens/growthlog/internal/discovery"
	"github.com/julianstephens/growthlog/internal/feed"
	"github.com/julianstephens/growthlog/internal/models"
	"github.com/julianstephens/growthlog/internal/streak"
	"github.com/julianstephens/growthlog/internal/tracker"
	"github.com/julianstephens/growthlog/internal/tui/components/discover"
	"github.com/julianstephens/growthlog/internal/tui/components/feedlist"
	"github.com/julianstephens/growthlog/internal/tui/components/people"
	"github.com/julianstephens/growthlog/internal/tui/components/recorder"
)

type SessionState int

const (
	StateHome SessionState = iota
	StateRecord
	StateGroups
	StateDiscover
	StateForm
	StateConfirm
)

var tabTitles = []string{"Today", "Record", "Groups", "Discover"}

// storeChangedMsg reports a write to the store by another process.
type storeChangedMsg struct{}

func waitForChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return storeChangedMsg{}
	}
}

type Model struct {
	ctx  *cli.Context
	sess *session

	state    SessionState
	tab      SessionState
	keys     KeyMap
	help     help.Model
	recorder recorder.Model
	feedList feedlist.Model
	people   people.Model
	discover discover.Model

	userState models.UserState
	today     string
	streak    int
	heatmap   []tracker.HeatmapDay

	// form is a single-input huh form; formValue is bound to it and
	// onSubmit receives the trimmed value once it completes.
	form      *huh.Form
	formValue *string
	onSubmit  func(*Model, string) tea.Cmd

	confirmPrompt string
	pendingAction func(*Model) tea.Cmd

	status    string
	formError string
	quitting  bool
	width     int
	height    int
}

// NewModel builds the TUI over ctx and starts watching file-backed stores
// for external changes. Callers must Close the model once the program exits.
func NewModel(ctx *cli.Context) Model {
	sess := newSession(ctx)
	sess.watch()

	m := Model{
		ctx:      ctx,
		sess:     sess,
		state:    StateHome,
		tab:      StateHome,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		recorder: recorder.New(ctx.Now),
		feedList: feedlist.New(0, 0),
		people:   people.New(0, 0),
		discover: discover.New(0, 0),
	}
	m.reload()
	return m
}

// Close saves any pending post and stops background work.
func (m Model) Close() {
	m.sess.close()
}

func (m Model) Init() tea.Cmd {
	return waitForChange(m.sess.changes)
}

// reload refreshes every view from the store.
func (m *Model) reload() {
	now := m.ctx.Now()
	m.userState = m.ctx.State()
	m.today = m.ctx.Today()
	m.streak = streak.ForState(&m.userState, m.today)
	m.heatmap = tracker.WeekHeatmap(&m.userState, now)
	m.recorder.SetState(m.userState, m.today)

	store := m.ctx.Store
	groups := store.Groups()
	following := store.Following()
	name := store.DisplayName()

	events := feed.Build(feed.Roster(following, groups), name, m.today)
	items := make([]feedlist.Item, 0, len(events))
	for _, e := range events {
		item := feedlist.Item{Event: e, Comments: len(store.Comments(e.ID))}
		if k, ok := store.FindKudos(e.ID); ok {
			item.Kudos = k.Emoji
		}
		items = append(items, item)
	}
	m.feedList.SetItems(items)
	m.people.SetItems(people.Items(groups, following, m.today))
	m.discover.SetPeople(discovery.Build(groups, following, store.DiscoveryList(), name), m.today)
}

// capturingKeys reports whether the focused component is consuming text input.
func (m Model) capturingKeys() bool {
	switch m.state {
	case StateForm, StateConfirm:
		return true
	case StateHome:
		return m.feedList.Filtering()
	case StateRecord:
		return m.recorder.Editing()
	case StateGroups:
		return m.people.Filtering()
	case StateDiscover:
		return m.discover.Filtering()
	}
	return false
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help, m.keys.Import}
	if m.state == StateRecord {
		keys = append(keys, m.recorder.ShortHelp()...)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	groups := m.keys.FullHelp()
	if m.state == StateRecord {
		groups = append(groups, m.recorder.ShortHelp())
	}
	return groups
}

func (m *Model) setStatus(format string, args ...any) {
	m.status = fmt.Sprintf(format, args...)
	m.formError = ""
}

func (m *Model) setError(err error) {
	m.formError = err.Error()
	m.status = ""
}
