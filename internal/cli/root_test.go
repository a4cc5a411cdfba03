package cli

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/growthlog/internal/config"
	"github.com/julianstephens/growthlog/internal/keyring"
	"github.com/julianstephens/growthlog/internal/models"
	"github.com/julianstephens/growthlog/internal/storage"
)

func setupContext(t *testing.T) *Context {
	t.Helper()
	provider := storage.NewJSONStore(filepath.Join(t.TempDir(), "growthlog.json"))
	if err := provider.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	ctx := NewContext(provider, config.DefaultConfig())
	ctx.Out = &bytes.Buffer{}
	ctx.Clock = func() time.Time { return time.Date(2025, 2, 12, 10, 0, 0, 0, time.UTC) }
	ctx.Config.Timezone = "UTC"
	return ctx
}

func TestContext_Today(t *testing.T) {
	ctx := setupContext(t)
	ctx.Config.Timezone = "Asia/Tokyo"
	ctx.Clock = func() time.Time { return time.Date(2025, 2, 12, 20, 0, 0, 0, time.UTC) }

	if got := ctx.Today(); got != "2025-02-13" {
		t.Errorf("Today() = %q, want 2025-02-13", got)
	}
}

func TestContext_TimezoneFallsBackToSettings(t *testing.T) {
	ctx := setupContext(t)
	ctx.Config.Timezone = "Local"
	if err := ctx.Store.SaveSettings(models.Settings{DisplayName: "Dee", Timezone: "America/Denver"}); err != nil {
		t.Fatalf("SaveSettings() failed: %v", err)
	}

	if got := ctx.Timezone(); got != "America/Denver" {
		t.Errorf("Timezone() = %q, want America/Denver", got)
	}
}

func TestContext_SaveStateSyncsGroups(t *testing.T) {
	ctx := setupContext(t)
	if err := ctx.Store.SetDisplayName("Dee"); err != nil {
		t.Fatal(err)
	}
	g, err := ctx.Store.CreateGroup("Owls", "Dee", ctx.State(), ctx.Now())
	if err != nil {
		t.Fatalf("CreateGroup() failed: %v", err)
	}

	st := ctx.State()
	st.DailyUvs["2025-02-12"] = 11
	if err := ctx.SaveState(st); err != nil {
		t.Fatalf("SaveState() failed: %v", err)
	}

	if got := ctx.Store.Groups()[g.ID].Members[0].UserState.DailyUvs["2025-02-12"]; got != 11 {
		t.Errorf("group member loops = %d, want 11", got)
	}
}

func TestResolveTarget(t *testing.T) {
	gokeyring.MockInit()

	cfg := config.DefaultConfig()

	target, trusted := ResolveTarget("/tmp/x.json", cfg)
	if target != "/tmp/x.json" || trusted {
		t.Errorf("flag: got %q trusted=%v", target, trusted)
	}

	target, trusted = ResolveTarget("", cfg)
	if target != cfg.Store || !trusted {
		t.Errorf("default: got %q trusted=%v", target, trusted)
	}

	if err := keyring.SetConnectionString("postgres://u:pw@localhost/db"); err != nil {
		t.Fatal(err)
	}
	defer func() { _ = keyring.Delete(keyring.DatabaseConnection) }()
	if target, _ = ResolveTarget("", cfg); target != "postgres://u:pw@localhost/db" {
		t.Errorf("keyring: got %q", target)
	}

	cfg.DBConnection = "postgres://env@localhost/db"
	if target, _ = ResolveTarget("", cfg); target != cfg.DBConnection {
		t.Errorf("env: got %q", target)
	}
}
