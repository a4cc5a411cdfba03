package e2e

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const TEST_WATCH_TIMEOUT = 5 * time.Second

// TestEndToEndWorkflow drives two users' stores through the CLI: Ada logs
// work and shares a follow link, Bo imports it and sees Ada in the feed.
func TestEndToEndWorkflow(t *testing.T) {
	// 1. Setup Environment
	// Allow overriding bin dir via env var, default to ../../bin (relative to tests/e2e)
	binDir := os.Getenv("GROWTHLOG_BIN_DIR")
	if binDir == "" {
		binDir = filepath.Join("..", "..", "bin")
	}
	binDir, _ = filepath.Abs(binDir)
	t.Logf("Using bin dir: %s", binDir)

	cliPath := filepath.Join(binDir, "growthlog")
	if _, err := os.Stat(cliPath); os.IsNotExist(err) {
		t.Skipf("CLI binary not found at %s. Build it with 'go build -o bin/growthlog ./cmd/growthlog'.", cliPath)
	}

	tempDir := t.TempDir()
	t.Logf("Running test in temp dir: %s", tempDir)

	var env []string
	for _, e := range os.Environ() {
		if strings.HasPrefix(e, "HOME=") || strings.HasPrefix(e, "GROWTHLOG_") || strings.HasPrefix(e, "GEMINI_API_KEY=") {
			continue
		}
		env = append(env, e)
	}
	env = append(env,
		fmt.Sprintf("HOME=%s", tempDir),
		"GROWTHLOG_TIMEZONE=UTC",
		// Keep the OS keyring out of storage resolution.
		fmt.Sprintf("GROWTHLOG_CONFIG=%s", filepath.Join(tempDir, "config.yaml")),
	)

	ada := filepath.Join(tempDir, "ada", "growthlog.json")
	bo := filepath.Join(tempDir, "bo", "growthlog.db")

	// 2. Initialize both stores
	t.Log("Initializing stores...")
	runCmd(t, cliPath, env, "--store", ada, "init", "--name", "Ada")
	runCmd(t, cliPath, env, "--store", bo, "init", "--name", "Bo")

	// 3. Ada logs a day of work
	t.Log("Logging Ada's day...")
	runCmd(t, cliPath, env, "--store", ada, "log", "3")
	runCmd(t, cliPath, env, "--store", ada, "ship", "--note", "pricing page")
	runCmd(t, cliPath, env, "--store", ada, "record", "--minutes", "45", "Wrote the onboarding email")

	status := runCmd(t, cliPath, env, "--store", ada, "status")
	if !strings.Contains(status, "Loops today: 4") {
		t.Errorf("status missing loop count:\n%s", status)
	}

	// 4. Share and import a follow link
	link := strings.TrimSpace(runCmd(t, cliPath, env, "--store", ada, "follow", "link"))
	if !strings.Contains(link, "follow=") {
		t.Fatalf("follow link = %q", link)
	}
	t.Logf("Follow link: %s", link)
	runCmd(t, cliPath, env, "--store", bo, "import", link, "--yes")

	// 5. Bo's feed shows Ada
	feed := runCmd(t, cliPath, env, "--store", bo, "feed")
	for _, want := range []string{"Ada shipped: pricing page", "Ada logged 4 loop(s)", "Wrote the onboarding email"} {
		if !strings.Contains(feed, want) {
			t.Errorf("feed missing %q:\n%s", want, feed)
		}
	}

	// 6. Groups round-trip through a join link
	runCmd(t, cliPath, env, "--store", ada, "group", "create", "Night Owls")
	groups := runCmd(t, cliPath, env, "--store", ada, "group", "list")
	id := groupID(groups)
	if id == "" {
		t.Fatalf("no group id in:\n%s", groups)
	}
	joinLink := strings.TrimSpace(runCmd(t, cliPath, env, "--store", ada, "group", "link", id))
	runCmd(t, cliPath, env, "--store", bo, "join", joinLink, "--yes")

	boGroups := runCmd(t, cliPath, env, "--store", bo, "group", "list")
	if !strings.Contains(boGroups, "Night Owls") || !strings.Contains(boGroups, "Bo") {
		t.Errorf("Bo's groups:\n%s", boGroups)
	}

	// 7. Health checks pass on both stores
	runCmd(t, cliPath, env, "--store", ada, "doctor")
	runCmd(t, cliPath, env, "--store", bo, "validate")

	// 8. Backups exist after a manual backup
	runCmd(t, cliPath, env, "--store", bo, "backup", "create")
	waitForFile(t, filepath.Join(filepath.Dir(bo), "backups"), TEST_WATCH_TIMEOUT)
}

// groupID finds the first g_ prefixed token in group list output.
func groupID(out string) string {
	for _, field := range strings.Fields(out) {
		field = strings.Trim(field, "()[],")
		if strings.HasPrefix(field, "g_") {
			return field
		}
	}
	return ""
}

func runCmd(t *testing.T, path string, env []string, args ...string) string {
	t.Helper()
	cmd := exec.Command(path, args...)
	cmd.Env = env
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("Command %s %v failed: %v\nOutput: %s", path, args, err, out)
	}
	return string(out)
}

func waitForFile(t *testing.T, path string, timeout time.Duration) {
	t.Helper()
	start := time.Now()
	for {
		if _, err := os.Stat(path); err == nil {
			return
		}
		if time.Since(start) > timeout {
			t.Fatalf("Timed out waiting for file: %s", path)
		}
		time.Sleep(100 * time.Millisecond)
	}
}
