package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInit(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	if err := Init(Config{ConfigDir: configDir}); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}

	logDir := filepath.Join(configDir, "logs")
	if _, err := os.Stat(logDir); os.IsNotExist(err) {
		t.Errorf("Log directory was not created: %s", logDir)
	}
	if Logger == nil {
		t.Fatal("Logger is nil after initialization")
	}

	Info("imported follow link", "name", "Ana")
	Debug("hidden outside debug mode")

	data, err := os.ReadFile(LogPath(configDir))
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "imported follow link") || !strings.Contains(out, "name=Ana") {
		t.Errorf("info line missing from log file:\n%s", out)
	}
	if strings.Contains(out, "hidden outside debug mode") {
		t.Error("debug line written at info level")
	}
}

func TestInitDebugModeQuiet(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	if err := Init(Config{Debug: true, Quiet: true, ConfigDir: configDir}); err != nil {
		t.Fatalf("Failed to initialize logger in debug mode: %v", err)
	}

	Debug("debug visible", "key", "value")

	data, err := os.ReadFile(LogPath(configDir))
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), "debug visible") {
		t.Error("debug line missing in debug mode")
	}
}

func TestLogFunctionsWithoutInit(t *testing.T) {
	Logger = nil

	// These must not panic when Logger is nil
	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message")
	Error("Test error message")
}

func TestLogPath(t *testing.T) {
	got := LogPath("/tmp/growthlog")
	if got != filepath.Join("/tmp/growthlog", "logs", "growthlog.log") {
		t.Errorf("LogPath() = %q", got)
	}
}
