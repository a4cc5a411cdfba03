package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"GROWTHLOG_TIMEZONE", "GROWTHLOG_DB_CONNECTION", "GEMINI_API_KEY"} {
		t.Setenv(key, "")
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `timezone: America/New_York
store: /tmp/growthlog.json
debug: true
coach:
  model: gemini-pro
share:
  base_url: https://example.com/app
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	want := &Config{
		Timezone: "America/New_York",
		Store:    "/tmp/growthlog.json",
		Debug:    true,
		Coach:    CoachConfig{Model: "gemini-pro"},
		Share:    ShareConfig{BaseURL: "https://example.com/app"},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("debug: true\n"), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Coach.Model != "gemini-2.5-flash" || cfg.Timezone != "Local" || cfg.Share.BaseURL == "" {
		t.Errorf("Load() = %+v, want defaults for unset fields", cfg)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("GROWTHLOG_TIMEZONE", "Europe/Berlin")
	t.Setenv("GROWTHLOG_DB_CONNECTION", "postgres://u@localhost/db")
	t.Setenv("GEMINI_API_KEY", "secret")

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("timezone: Asia/Tokyo\n"), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Timezone != "Europe/Berlin" {
		t.Errorf("Timezone = %q, want env override", cfg.Timezone)
	}
	if cfg.DBConnection != "postgres://u@localhost/db" {
		t.Errorf("DBConnection = %q", cfg.DBConnection)
	}
	if cfg.Coach.APIKey != "secret" {
		t.Errorf("Coach.APIKey = %q", cfg.Coach.APIKey)
	}
}

func TestLoad_Errors(t *testing.T) {
	clearEnv(t)

	tests := []struct {
		name    string
		content string
	}{
		{"invalid yaml", "timezone: [unclosed"},
		{"invalid timezone", "timezone: Mars/Olympus"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0600); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("Load() should fail")
			}
		})
	}
}

func TestSave_OmitsSecrets(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.Coach.APIKey = "do-not-write"
	cfg.DBConnection = "postgres://u@h/db"

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, secret := range []string{"do-not-write", "postgres://"} {
		if strings.Contains(string(data), secret) {
			t.Errorf("saved config contains %q:\n%s", secret, data)
		}
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if diff := cmp.Diff(DefaultConfig(), loaded); diff != "" {
		t.Errorf("reloaded config mismatch (-want +got):\n%s", diff)
	}
}
