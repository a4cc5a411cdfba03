package recorder

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/growthlog/internal/constants"
	"github.com/julianstephens/growthlog/internal/models"
	"github.com/julianstephens/growthlog/internal/tracker"
)

var (
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Width(12)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	clockStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62"))
)

type LoopsMsg struct {
	Delta int
}

type BreakMsg struct {
	On bool
}

type ShipMsg struct {
	Kept bool
}

// PostChangedMsg carries the edited post text on every keystroke.
type PostChangedMsg struct {
	Text string
}

// SessionDoneMsg is sent when a finished session is saved with its post.
type SessionDoneMsg struct {
	Elapsed time.Duration
	Post    string
}

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

type KeyMap struct {
	LoopUp   key.Binding
	LoopDown key.Binding
	Break    key.Binding
	Ship     key.Binding
	Edit     key.Binding
	Session  key.Binding
	Finish   key.Binding
	Save     key.Binding
	Discard  key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		LoopUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "loop"),
		),
		LoopDown: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "unloop"),
		),
		Break: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "break day"),
		),
		Ship: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "shipped"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit post"),
		),
		Session: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "start/pause"),
		),
		Finish: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "finish session"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "record session"),
		),
		Discard: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "discard session"),
		),
	}
}

type Model struct {
	State models.UserState
	Today string

	clock func() time.Time
	now   time.Time
	watch *tracker.Stopwatch
	post  textarea.Model
	keys  KeyMap
	width int
}

func New(clock func() time.Time) Model {
	if clock == nil {
		clock = time.Now
	}
	ta := textarea.New()
	ta.Placeholder = "What did you work on today?"
	ta.CharLimit = constants.MaxPostLength
	ta.ShowLineNumbers = false
	ta.SetHeight(4)
	ta.SetWidth(60)

	return Model{
		clock: clock,
		now:   clock(),
		watch: &tracker.Stopwatch{},
		post:  ta,
		keys:  DefaultKeyMap(),
	}
}

// SetState refreshes the displayed day. The post is left alone while it is
// being edited.
func (m *Model) SetState(st models.UserState, today string) {
	m.State = st
	m.Today = today
	if !m.Editing() && m.watch.Phase() != tracker.PhaseRecording {
		m.post.SetValue(st.DailyInputPost[today])
	}
}

// Editing reports whether the post editor has focus.
func (m Model) Editing() bool {
	return m.post.Focused()
}

// Phase returns the stopwatch phase.
func (m Model) Phase() tracker.Phase {
	return m.watch.Phase()
}

func (m Model) ShortHelp() []key.Binding {
	if m.Editing() {
		return []key.Binding{m.keys.Save}
	}
	return []key.Binding{m.keys.LoopUp, m.keys.LoopDown, m.keys.Break, m.keys.Ship, m.keys.Edit, m.keys.Session, m.keys.Finish}
}

func (m *Model) SetSize(width, _ int) {
	m.width = width
	if width > 8 {
		m.post.SetWidth(min(width-4, 80))
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func send(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		m.now = time.Time(msg)
		if m.watch.Phase() == tracker.PhaseRunning {
			return m, tick()
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Save) && m.watch.Phase() == tracker.PhaseRecording {
			return m.finishRecording()
		}

		if m.Editing() {
			if msg.Type == tea.KeyEsc {
				m.post.Blur()
				return m, nil
			}
			before := m.post.Value()
			var cmd tea.Cmd
			m.post, cmd = m.post.Update(msg)
			if after := m.post.Value(); after != before {
				return m, tea.Batch(cmd, send(PostChangedMsg{Text: after}))
			}
			return m, cmd
		}

		now := m.clock()
		m.now = now
		switch {
		case key.Matches(msg, m.keys.LoopUp):
			return m, send(LoopsMsg{Delta: 1})
		case key.Matches(msg, m.keys.LoopDown):
			return m, send(LoopsMsg{Delta: -1})
		case key.Matches(msg, m.keys.Break):
			return m, send(BreakMsg{On: !m.State.IsOnMaintenance})
		case key.Matches(msg, m.keys.Ship):
			return m, send(ShipMsg{Kept: !m.State.DailyShipped[m.Today]})
		case key.Matches(msg, m.keys.Edit):
			cmd := m.post.Focus()
			return m, cmd
		case key.Matches(msg, m.keys.Session):
			switch m.watch.Phase() {
			case tracker.PhaseIdle:
				m.watch.Start(now)
				return m, tick()
			case tracker.PhaseRunning:
				m.watch.Pause(now)
			case tracker.PhasePaused:
				m.watch.Resume(now)
				return m, tick()
			}
		case key.Matches(msg, m.keys.Finish):
			if p := m.watch.Phase(); p == tracker.PhaseRunning || p == tracker.PhasePaused {
				m.watch.Finish(now)
				cmd := m.post.Focus()
				return m, cmd
			}
		case key.Matches(msg, m.keys.Discard):
			if m.watch.Phase() != tracker.PhaseIdle {
				m.watch.Reset()
			}
		}
	}
	return m, nil
}

func (m Model) finishRecording() (Model, tea.Cmd) {
	done := SessionDoneMsg{
		Elapsed: m.watch.Elapsed(m.clock()),
		Post:    m.post.Value(),
	}
	if strings.TrimSpace(done.Post) == "" {
		// Keep the session until it has a post.
		cmd := m.post.Focus()
		return m, cmd
	}
	m.watch.Reset()
	m.post.Blur()
	return m, send(done)
}

func (m Model) View() string {
	yesNo := func(b bool) string {
		if b {
			return "yes"
		}
		return "no"
	}
	row := func(label, value string) string {
		return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), valueStyle.Render(value))
	}

	session := fmt.Sprintf("%s  %s", tracker.FormatElapsed(m.watch.Elapsed(m.now)), m.watch.Phase())
	if m.watch.Phase() == tracker.PhaseRecording {
		session += "  (write a post, ctrl+s to record)"
	}

	postTitle := "Post"
	if m.Editing() {
		postTitle = "Post (esc to stop editing)"
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		row("Loops", fmt.Sprintf("%d", m.State.DailyUvs[m.Today])),
		row("Shipped", yesNo(m.State.DailyShipped[m.Today])),
		row("Break day", yesNo(m.State.IsOnMaintenance)),
		row("Hours", fmt.Sprintf("%.2f", m.State.DailyHours[m.Today])),
		"",
		clockStyle.Render(session),
		"",
		labelStyle.Width(0).Render(postTitle),
		m.post.View(),
		labelStyle.Width(0).Render(fmt.Sprintf("%d/%d", len([]rune(m.post.Value())), constants.MaxPostLength)),
	)
}
