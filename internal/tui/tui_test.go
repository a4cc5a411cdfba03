package tui

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/goleak"

	"github.com/julianstephens/growthlog/internal/cli"
	"github.com/julianstephens/growthlog/internal/config"
	"github.com/julianstephens/growthlog/internal/constants"
	"github.com/julianstephens/growthlog/internal/feed"
	"github.com/julianstephens/growthlog/internal/models"
	"github.com/julianstephens/growthlog/internal/sharelink"
	"github.com/julianstephens/growthlog/internal/storage"
	"github.com/julianstephens/growthlog/internal/tracker"
	"github.com/julianstephens/growthlog/internal/tui/components/feedlist"
	"github.com/julianstephens/growthlog/internal/tui/components/recorder"
)

const today = "2025-02-12"

var fixedNow = time.Date(2025, 2, 12, 9, 0, 0, 0, time.UTC)

func setupModel(t *testing.T) (Model, *cli.Context) {
	t.Helper()
	provider := storage.NewJSONStore(filepath.Join(t.TempDir(), "growthlog.json"))
	if err := provider.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	cfg := config.DefaultConfig()
	cfg.Timezone = "UTC"
	ctx := cli.NewContext(provider, cfg)
	ctx.Out = &bytes.Buffer{}
	ctx.Clock = func() time.Time { return fixedNow }

	m := NewModel(ctx)
	t.Cleanup(m.Close)
	return m, ctx
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update() returned %T, want Model", next)
	}
	return model, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestTabsCycle(t *testing.T) {
	m, _ := setupModel(t)

	for _, want := range []SessionState{StateRecord, StateGroups, StateDiscover, StateHome} {
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
		if m.state != want {
			t.Fatalf("state = %v, want %v", m.state, want)
		}
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.state != StateDiscover {
		t.Errorf("shift+tab state = %v, want %v", m.state, StateDiscover)
	}
}

func TestRecorderLogsLoops(t *testing.T) {
	m, ctx := setupModel(t)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})

	m, cmd := update(t, m, runes("+"))
	if cmd == nil {
		t.Fatal("'+' produced no command")
	}
	msg := cmd()
	if _, ok := msg.(recorder.LoopsMsg); !ok {
		t.Fatalf("'+' produced %T, want recorder.LoopsMsg", msg)
	}
	m, _ = update(t, m, msg)

	st := ctx.State()
	if got := st.DailyUvs[today]; got != 1 {
		t.Errorf("loops = %d, want 1", got)
	}
	if m.streak != 2 {
		t.Errorf("streak = %d, want 2", m.streak)
	}
}

func TestSessionDoneRecordsHours(t *testing.T) {
	m, ctx := setupModel(t)

	m, _ = update(t, m, recorder.SessionDoneMsg{Elapsed: 90 * time.Minute, Post: "Shipped auth\nand tests"})

	st := ctx.State()
	if got := st.DailyHours[today]; got != 1.5 {
		t.Errorf("hours = %v, want 1.5", got)
	}
	if got := st.DailyFirstNote[today]; got != "Shipped auth" {
		t.Errorf("first note = %q", got)
	}
	if !strings.Contains(m.status, "Recorded") {
		t.Errorf("status = %q", m.status)
	}

	m, _ = update(t, m, recorder.SessionDoneMsg{Elapsed: time.Minute, Post: "   "})
	if m.status != "Nothing recorded: the post is empty." {
		t.Errorf("status = %q", m.status)
	}
}

func TestImportFollowLink(t *testing.T) {
	tests := []struct {
		name     string
		answer   string
		wantSeen bool
	}{
		{"confirmed", "y", true},
		{"declined", "n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ctx := setupModel(t)
			state := models.DefaultUserState("2025-02-11")
			link := sharelink.FollowLink(constants.DefaultShareBaseURL, "Ada", state)

			m.importLink(link)
			if m.state != StateConfirm {
				t.Fatalf("state = %v, want confirmation", m.state)
			}
			m, _ = update(t, m, runes(tt.answer))
			if m.state != StateHome {
				t.Errorf("state after answer = %v, want home", m.state)
			}

			_, seen := models.FindFollowedByName(ctx.Store.Following(), "Ada")
			if seen != tt.wantSeen {
				t.Errorf("following Ada = %v, want %v", seen, tt.wantSeen)
			}
		})
	}
}

func TestImportIgnoresGarbage(t *testing.T) {
	m, _ := setupModel(t)

	m.importLink("https://example.com/?nothing=here")
	if m.state != StateHome {
		t.Errorf("state = %v, want home", m.state)
	}
	if !strings.Contains(m.status, "ignored") {
		t.Errorf("status = %q", m.status)
	}
}

func TestReactOnFeed(t *testing.T) {
	m, ctx := setupModel(t)

	st := models.DefaultUserState("2025-02-11")
	tracker.LogLoops(&st, 3, fixedNow)
	if _, err := ctx.Store.AddFollowed("f-1", "Ada", st, fixedNow); err != nil {
		t.Fatal(err)
	}
	events := feed.Build(feed.Roster(ctx.Store.Following(), ctx.Store.Groups()), ctx.Store.DisplayName(), today)
	if len(events) == 0 {
		t.Fatal("expected a feed event for Ada")
	}
	id := events[0].ID

	m, _ = update(t, m, feedlist.ReactMsg{ID: id, Emoji: models.EmojiFire})
	if k, ok := ctx.Store.FindKudos(id); !ok || k.Emoji != models.EmojiFire {
		t.Errorf("kudos = %+v, %v", k, ok)
	}

	m, _ = update(t, m, feedlist.ReactMsg{ID: id})
	if _, ok := ctx.Store.FindKudos(id); ok {
		t.Error("reaction not removed")
	}
	if m.status != "Reaction removed" {
		t.Errorf("status = %q", m.status)
	}
}

func TestCloseSavesPendingPost(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	m, ctx := setupModel(t)
	m, _ = update(t, m, recorder.PostChangedMsg{Text: "half a thought"})
	m.Close()

	if got := ctx.State().DailyInputPost[today]; got != "half a thought" {
		t.Errorf("post = %q, want the pending draft", got)
	}
}

func TestHeatmapCell(t *testing.T) {
	tests := []struct {
		name string
		day  tracker.HeatmapDay
		want string
	}{
		{"empty", tracker.HeatmapDay{}, "·"},
		{"focus", tracker.HeatmapDay{IsFocus: true, Hours: 8}, "◇"},
		{"light", tracker.HeatmapDay{Hours: 1}, "░"},
		{"medium", tracker.HeatmapDay{Hours: 4}, "▒"},
		{"heavy", tracker.HeatmapDay{Hours: 9}, "█"},
		{"note only", tracker.HeatmapDay{FirstNote: "hi"}, "░"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := heatmapCell(tt.day); got != tt.want {
				t.Errorf("heatmapCell() = %q, want %q", got, tt.want)
			}
		})
	}
}
