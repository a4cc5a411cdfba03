package system

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/growthlog/internal/cli"
	"github.com/julianstephens/growthlog/internal/config"
	"github.com/julianstephens/growthlog/internal/storage"
)

func newContext(t *testing.T, provider storage.Provider) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	t.Cleanup(func() { provider.Close() })
	cfg := config.DefaultConfig()
	cfg.Timezone = "UTC"
	out := &bytes.Buffer{}
	ctx := cli.NewContext(provider, cfg)
	ctx.Out = out
	ctx.Prompt = cli.StaticPrompter{Confirmed: true}
	ctx.Clock = func() time.Time { return time.Date(2025, 2, 12, 8, 30, 0, 0, time.UTC) }
	return ctx, out
}

func setupSQLiteContext(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	provider := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "growthlog.db"))
	if err := provider.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	return newContext(t, provider)
}

func TestInitCmd_Success(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "growthlog.db")
	ctx, out := newContext(t, storage.NewSQLiteStore(dbPath))

	if err := (&InitCmd{Name: "  Ada "}).Run(ctx); err != nil {
		t.Fatalf("init command failed: %v", err)
	}
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Errorf("database file was not created at %s", dbPath)
	}
	if got := ctx.Store.DisplayName(); got != "Ada" {
		t.Errorf("DisplayName() = %q, want Ada", got)
	}
	if !strings.Contains(out.String(), "Initialized growthlog storage at: "+dbPath) {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}

func TestInitCmd_CopiesSource(t *testing.T) {
	srcPath := filepath.Join(t.TempDir(), "old.json")
	src := storage.NewJSONStore(srcPath)
	if err := src.Init(); err != nil {
		t.Fatalf("source Init() failed: %v", err)
	}
	srcStore := storage.NewStore(src)
	if err := srcStore.SetDisplayName("Grace"); err != nil {
		t.Fatalf("SetDisplayName() failed: %v", err)
	}
	if err := srcStore.AddToDiscoveryList("https://growthlog.app/?follow=abc"); err != nil {
		t.Fatalf("AddToDiscoveryList() failed: %v", err)
	}

	ctx, out := newContext(t, storage.NewSQLiteStore(filepath.Join(t.TempDir(), "growthlog.db")))
	if err := (&InitCmd{Source: srcPath}).Run(ctx); err != nil {
		t.Fatalf("init command failed: %v", err)
	}

	if got := ctx.Store.DisplayName(); got != "Grace" {
		t.Errorf("DisplayName() = %q, want Grace", got)
	}
	if got := ctx.Store.DiscoveryList(); len(got) != 1 {
		t.Errorf("DiscoveryList() = %v, want one link", got)
	}
	if !strings.Contains(out.String(), "Copied 2 document(s)") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}

func TestInitCmd_Force(t *testing.T) {
	path := filepath.Join(t.TempDir(), "growthlog.json")
	provider := storage.NewJSONStore(path)
	if err := provider.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	ctx, _ := newContext(t, provider)
	if err := ctx.Store.SetDisplayName("Old"); err != nil {
		t.Fatalf("SetDisplayName() failed: %v", err)
	}

	if err := (&InitCmd{}).Run(ctx); err == nil {
		t.Error("init without --force should refuse an existing store")
	}
	if err := (&InitCmd{Force: true, Source: path}).Run(ctx); err == nil {
		t.Error("--force with the store as its own source should fail")
	}
	if err := (&InitCmd{Force: true}).Run(ctx); err != nil {
		t.Fatalf("init --force failed: %v", err)
	}
	if got := ctx.Store.DisplayName(); got != "You" {
		t.Errorf("DisplayName() after reset = %q, want You", got)
	}
}

func TestDoctorCmd_HealthyDB(t *testing.T) {
	gokeyring.MockInit()
	ctx, out := setupSQLiteContext(t)

	if err := (&DoctorCmd{}).Run(ctx); err != nil {
		t.Errorf("doctor command failed on healthy database: %v\n%s", err, out.String())
	}
	for _, want := range []string{
		"✓ Database reachable: OK",
		"✓ Migrations complete: OK",
		"⚠ Backups present: WARNING",
		"✓ Data validation: OK",
		"All diagnostics passed!",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestDoctorCmd_DataConflicts(t *testing.T) {
	gokeyring.MockInit()
	ctx, out := setupSQLiteContext(t)

	st := ctx.State()
	st.DailyUvs["2025-02-10"] = -3
	if err := ctx.Store.SaveUserState(st); err != nil {
		t.Fatalf("SaveUserState() failed: %v", err)
	}

	if err := (&DoctorCmd{}).Run(ctx); err == nil {
		t.Error("doctor should fail on data conflicts")
	}
	if !strings.Contains(out.String(), "❌ Data validation: FAIL") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}

func TestDoctorCmd_Unreachable(t *testing.T) {
	gokeyring.MockInit()
	ctx, out := newContext(t, storage.NewSQLiteStore(filepath.Join(t.TempDir(), "missing.db")))

	if err := (&DoctorCmd{}).Run(ctx); err == nil {
		t.Error("doctor should fail when the store is not initialized")
	}
	for _, want := range []string{
		"❌ Database reachable: FAIL",
		"⊘ Schema version: SKIPPED",
		"⊘ Data validation: SKIPPED",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestValidateCmd(t *testing.T) {
	ctx, out := setupSQLiteContext(t)

	if err := (&ValidateCmd{}).Run(ctx); err != nil {
		t.Errorf("fresh store should validate, got %v\n%s", err, out.String())
	}

	st := ctx.State()
	st.DailyUvs["2025-02-10"] = -3
	if err := ctx.Store.SaveUserState(st); err != nil {
		t.Fatalf("SaveUserState() failed: %v", err)
	}

	if err := (&ValidateCmd{}).Run(ctx); err == nil {
		t.Error("validate should fail on negative loops")
	}
	if err := (&ValidateCmd{Fix: true}).Run(ctx); err != nil {
		t.Fatalf("validate --fix failed: %v", err)
	}
	if got := ctx.State().DailyUvs["2025-02-10"]; got != 0 {
		t.Errorf("loops after fix = %d, want 0", got)
	}
	if !strings.Contains(out.String(), "Fixes applied:") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}

func TestMigrateCmd(t *testing.T) {
	ctx, out := setupSQLiteContext(t)
	if err := (&MigrateCmd{}).Run(ctx); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	if !strings.Contains(out.String(), "No migrations to apply") {
		t.Errorf("unexpected output:\n%s", out.String())
	}

	provider := storage.NewJSONStore(filepath.Join(t.TempDir(), "growthlog.json"))
	if err := provider.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	jsonCtx, _ := newContext(t, provider)
	if err := (&MigrateCmd{}).Run(jsonCtx); err == nil {
		t.Error("migrate should refuse a JSON store")
	}
}

func TestDebugCmds(t *testing.T) {
	ctx, out := setupSQLiteContext(t)
	if err := ctx.Store.SetDisplayName("Ada"); err != nil {
		t.Fatalf("SetDisplayName() failed: %v", err)
	}

	if err := (&DebugKeysCmd{}).Run(ctx); err != nil {
		t.Fatalf("debug keys failed: %v", err)
	}
	if !strings.Contains(out.String(), "dbd_display_name") {
		t.Errorf("keys output missing display name:\n%s", out.String())
	}

	out.Reset()
	if err := (&DebugDumpCmd{Key: "dbd_display_name"}).Run(ctx); err != nil {
		t.Fatalf("debug dump failed: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != `"Ada"` {
		t.Errorf("dump = %s, want \"Ada\"", got)
	}
	if err := (&DebugDumpCmd{Key: "missing"}).Run(ctx); err == nil {
		t.Error("dumping a missing key should fail")
	}

	out.Reset()
	if err := (&DebugDBPathCmd{}).Run(ctx); err != nil {
		t.Fatalf("debug db-path failed: %v", err)
	}
	if !strings.Contains(out.String(), `"path"`) {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}
