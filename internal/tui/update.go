package tui

import (
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/growthlog/internal/constants"
	"github.com/julianstephens/growthlog/internal/importer"
	"github.com/julianstephens/growthlog/internal/logger"
	"github.com/julianstephens/growthlog/internal/models"
	"github.com/julianstephens/growthlog/internal/sharelink"
	"github.com/julianstephens/growthlog/internal/tracker"
	"github.com/julianstephens/growthlog/internal/tui/components/discover"
	"github.com/julianstephens/growthlog/internal/tui/components/feedlist"
	"github.com/julianstephens/growthlog/internal/tui/components/people"
	"github.com/julianstephens/growthlog/internal/tui/components/recorder"
	"github.com/julianstephens/growthlog/internal/utils"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resize()
		return m, nil

	case storeChangedMsg:
		if err := m.sess.reloadProvider(); err != nil {
			logger.Warn("Failed to reload store after external change", "error", err)
		}
		m.reload()
		return m, waitForChange(m.sess.changes)

	case recorder.TickMsg:
		var cmd tea.Cmd
		m.recorder, cmd = m.recorder.Update(msg)
		return m, cmd
	}

	switch m.state {
	case StateForm:
		return m.updateForm(msg)
	case StateConfirm:
		return m.updateConfirm(msg)
	}

	if handled, cmd := m.handleComponentMsg(msg); handled {
		return m, cmd
	}

	if msg, ok := msg.(tea.KeyMsg); ok && !m.capturingKeys() {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.switchTab((m.tab + 1) % SessionState(len(tabTitles)))
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.switchTab((m.tab - 1 + SessionState(len(tabTitles))) % SessionState(len(tabTitles)))
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Import):
			cmd := m.openForm("Paste a join or follow link", "https://...", "", (*Model).importLink)
			return m, cmd
		}
	}

	return m.updateActive(msg)
}

func (m *Model) switchTab(tab SessionState) {
	m.tab = tab
	m.state = tab
	m.status = ""
	m.formError = ""
}

func (m *Model) resize() {
	// Tabs, status line and help take the rest.
	h := max(m.height-8, 4)
	w := max(m.width-4, 10)
	m.feedList.SetSize(w, max(h-6, 3))
	m.people.SetSize(w, h)
	m.discover.SetSize(w, h)
	m.recorder.SetSize(w, h)
}

func (m Model) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.state {
	case StateHome:
		m.feedList, cmd = m.feedList.Update(msg)
	case StateRecord:
		m.recorder, cmd = m.recorder.Update(msg)
	case StateGroups:
		m.people, cmd = m.people.Update(msg)
	case StateDiscover:
		m.discover, cmd = m.discover.Update(msg)
	}
	return m, cmd
}

// mutate applies fn to the user's state and refreshes the views.
func (m *Model) mutate(fn func(st *models.UserState, now time.Time)) {
	if _, err := m.sess.mutate(fn); err != nil {
		m.setError(err)
		return
	}
	m.reload()
}

// write runs a store write under the session lock and refreshes the views.
func (m *Model) write(fn func() error) error {
	if err := m.sess.locked(fn); err != nil {
		m.setError(err)
		return err
	}
	m.reload()
	return nil
}

func (m *Model) handleComponentMsg(msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case recorder.LoopsMsg:
		m.mutate(func(st *models.UserState, now time.Time) {
			tracker.LogLoops(st, msg.Delta, now)
		})
	case recorder.BreakMsg:
		m.mutate(func(st *models.UserState, now time.Time) {
			tracker.SetBreak(st, msg.On, now)
		})
	case recorder.ShipMsg:
		m.mutate(func(st *models.UserState, now time.Time) {
			tracker.SetShipped(st, msg.Kept, "", now)
		})
	case recorder.PostChangedMsg:
		m.sess.autosave.Trigger(msg.Text)
	case recorder.SessionDoneMsg:
		if err := m.sess.autosave.Flush(); err != nil {
			logger.Warn("Autosave failed", "error", err)
		}
		recorded := false
		m.mutate(func(st *models.UserState, now time.Time) {
			recorded = tracker.RecordSession(st, msg.Elapsed, msg.Post, now)
		})
		if recorded {
			m.setStatus("✓ Recorded %s session", tracker.FormatElapsed(msg.Elapsed))
		} else if m.formError == "" {
			m.setStatus("Nothing recorded: the post is empty.")
		}

	case feedlist.ReactMsg:
		err := m.write(func() error {
			if msg.Emoji == "" {
				return m.ctx.Store.RemoveKudos(msg.ID)
			}
			return m.ctx.Store.AddKudos(msg.ID, msg.Emoji)
		})
		if err == nil && msg.Emoji == "" {
			m.setStatus("Reaction removed")
		}
	case feedlist.CommentMsg:
		id := msg.ID
		return true, m.openForm("Comment", "Nice work!", "", func(m *Model, text string) tea.Cmd {
			if m.write(func() error {
				_, err := m.ctx.Store.AddComment(id, m.ctx.Store.DisplayName(), text, m.ctx.Now())
				return err
			}) == nil {
				m.setStatus("✓ Comment added")
			}
			return nil
		})

	case people.NewGroupMsg:
		return true, m.openForm("Group name", "Indie hackers", "", func(m *Model, name string) tea.Cmd {
			var g models.Group
			if m.write(func() error {
				var err error
				g, err = m.ctx.Store.CreateGroup(name, m.ctx.Store.DisplayName(), m.ctx.State(), m.ctx.Now())
				return err
			}) == nil {
				m.setStatus("✓ Created %s. Share it with 's'.", g.Name)
			}
			return nil
		})
	case people.ShareGroupMsg:
		g, ok := m.ctx.Store.Groups()[msg.GroupID]
		if !ok {
			m.setError(errors.New("group no longer exists"))
			return true, nil
		}
		m.setStatus("Join link for %s: %s", g.Name, sharelink.JoinLink(m.ctx.ShareBase(), g))
	case people.ShareSelfMsg:
		m.setStatus("Your follow link: %s", sharelink.FollowLink(m.ctx.ShareBase(), m.ctx.Store.DisplayName(), m.ctx.State()))
	case people.DeleteGroupMsg:
		m.confirm("Leave "+msg.Name+"? Its members will disappear from your feed.", func(m *Model) tea.Cmd {
			if m.write(func() error { return m.ctx.Store.DeleteGroup(msg.GroupID) }) == nil {
				m.setStatus("Left %s", msg.Name)
			}
			return nil
		})
	case people.UnfollowMsg:
		m.confirm("Unfollow "+msg.Name+"?", func(m *Model) tea.Cmd {
			if m.write(func() error { return m.ctx.Store.RemoveFollowed(msg.ID) }) == nil {
				m.setStatus("Unfollowed %s", msg.Name)
			}
			return nil
		})

	case discover.FollowMsg:
		p := msg.Person
		m.confirm("Follow "+p.Name+"?", func(m *Model) tea.Cmd {
			if m.write(func() error {
				_, err := m.ctx.Store.AddFollowed(utils.NewID(constants.FollowIDPrefix), p.Name, p.UserState, m.ctx.Now())
				return err
			}) == nil {
				m.setStatus("✓ Following %s", p.Name)
			}
			return nil
		})
	case discover.AddLinkMsg:
		return true, m.openForm("Community follow link", "https://...", "", func(m *Model, link string) tea.Cmd {
			if _, _, ok := sharelink.ParseLink(link); !ok {
				m.setError(errors.New("not a follow link"))
				return nil
			}
			if m.write(func() error { return m.ctx.Store.AddToDiscoveryList(link) }) == nil {
				m.setStatus("✓ Link added to discovery list")
			}
			return nil
		})

	default:
		return false, nil
	}
	return true, nil
}

// importLink applies a pasted share link. New groups ask for a name and new
// people ask for confirmation; known ones refresh in place. A link carrying
// both parameters is worked through join first.
func (m *Model) importLink(link string) tea.Cmd {
	var results []importer.Result
	err := m.sess.locked(func() error {
		var err error
		results, err = m.ctx.Importer().ProcessAll(link)
		return err
	})
	switch {
	case errors.Is(err, importer.ErrIgnored):
		m.setStatus("Link ignored: not a valid join or follow link.")
		return nil
	case err != nil:
		m.setError(err)
		return nil
	}

	var pending []importer.Result
	for _, res := range results {
		if res.Outcome == importer.Updated {
			m.reload()
			m.setStatus("✓ Refreshed %s", res.Name)
			continue
		}
		pending = append(pending, res)
	}
	return m.nextImport(pending)
}

// nextImport prompts for the first pending import and queues the rest
// behind it. Cancelling a prompt drops the rest.
func (m *Model) nextImport(pending []importer.Result) tea.Cmd {
	if len(pending) == 0 {
		return nil
	}
	res, rest := pending[0], pending[1:]

	if res.Join != nil {
		join := res.Join
		return m.openForm("Join "+res.Name+" as", "Your name", m.ctx.Store.DisplayName(), func(m *Model, name string) tea.Cmd {
			var g models.Group
			if m.write(func() error {
				var err error
				g, err = join.Accept(name, m.ctx.State())
				return err
			}) == nil {
				m.setStatus("✓ Joined %s", g.Name)
			}
			return m.nextImport(rest)
		})
	}

	follow := res.Follow
	m.confirm("Follow "+res.Name+"?", func(m *Model) tea.Cmd {
		if m.write(func() error {
			_, err := follow.Accept()
			return err
		}) == nil {
			m.setStatus("✓ Following %s", res.Name)
		}
		return m.nextImport(rest)
	})
	return nil
}

// openForm shows a single required text input. The value is trimmed before
// it reaches onSubmit.
func (m *Model) openForm(title, placeholder, initial string, onSubmit func(*Model, string) tea.Cmd) tea.Cmd {
	value := initial
	m.formValue = &value
	m.onSubmit = onSubmit
	m.formError = ""
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Placeholder(placeholder).
				Value(m.formValue).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("required")
					}
					return nil
				}),
		),
	)
	m.state = StateForm
	return m.form.Init()
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.closeForm()
		return m, nil
	}

	var cmds []tea.Cmd
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		submit, value := m.onSubmit, strings.TrimSpace(*m.formValue)
		m.closeForm()
		if submit != nil {
			// submit may open a follow-up form or confirmation.
			cmds = append(cmds, submit(&m, value))
		}
	case huh.StateAborted:
		m.closeForm()
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) closeForm() {
	m.form = nil
	m.formValue = nil
	m.onSubmit = nil
	if m.state == StateForm {
		m.state = m.tab
	}
}

func (m *Model) confirm(prompt string, action func(*Model) tea.Cmd) {
	m.confirmPrompt = prompt
	m.pendingAction = action
	m.state = StateConfirm
}

func (m Model) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "y", "Y":
		action := m.pendingAction
		m.pendingAction = nil
		m.confirmPrompt = ""
		m.state = m.tab
		if action != nil {
			cmd := action(&m)
			return m, cmd
		}
	case "n", "N", "esc", "q":
		m.pendingAction = nil
		m.confirmPrompt = ""
		m.state = m.tab
		m.setStatus("Cancelled")
	}
	return m, nil
}
