package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/julianstephens/growthlog/internal/backup"
	"github.com/julianstephens/growthlog/internal/config"
	"github.com/julianstephens/growthlog/internal/constants"
	"github.com/julianstephens/growthlog/internal/importer"
	"github.com/julianstephens/growthlog/internal/keyring"
	"github.com/julianstephens/growthlog/internal/logger"
	"github.com/julianstephens/growthlog/internal/models"
	"github.com/julianstephens/growthlog/internal/storage"
	"github.com/julianstephens/growthlog/internal/utils"
)

type Context struct {
	Provider storage.Provider
	Store    *storage.Store
	Config   *config.Config
	Prompt   Prompter
	Out      io.Writer

	// Clock overrides the wall clock in tests.
	Clock func() time.Time
}

// NewContext wires a store over provider with interactive huh prompts.
func NewContext(provider storage.Provider, cfg *config.Config) *Context {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Context{
		Provider: provider,
		Store:    storage.NewStore(provider),
		Config:   cfg,
		Prompt:   HuhPrompter{},
		Out:      os.Stdout,
	}
}

// Printf writes formatted command output.
func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.out(), format, args...)
}

// Println writes a line of command output.
func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.out(), args...)
}

func (c *Context) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

// Timezone returns the timezone day-keys are computed in. An explicit
// config or environment timezone wins over the one saved in settings.
func (c *Context) Timezone() string {
	if c.Config != nil && c.Config.Timezone != "" && c.Config.Timezone != constants.DefaultTimezone {
		return c.Config.Timezone
	}
	if c.Store != nil {
		if tz := c.Store.Settings().Timezone; tz != "" {
			return tz
		}
	}
	return constants.DefaultTimezone
}

// Now returns the current time in the configured timezone.
func (c *Context) Now() time.Time {
	now := time.Now()
	if c.Clock != nil {
		now = c.Clock()
	}
	loc, err := utils.LoadLocation(c.Timezone())
	if err != nil {
		logger.Warn("Invalid timezone, using local time", "timezone", c.Timezone(), "error", err)
		return now
	}
	return now.In(loc)
}

// Today returns today's day-key.
func (c *Context) Today() string {
	return utils.Today(c.Now())
}

// ShareBase returns the base URL for join and follow links.
func (c *Context) ShareBase() string {
	if c.Config != nil && c.Config.Share.BaseURL != "" {
		return c.Config.Share.BaseURL
	}
	return constants.DefaultShareBaseURL
}

// Importer returns a link importer bound to the store and clock.
func (c *Context) Importer() *importer.Importer {
	return importer.New(c.Store, c.Now)
}

// State loads the user's state.
func (c *Context) State() models.UserState {
	return c.Store.UserState(c.Now())
}

// SaveState persists st and copies it into the user's own group memberships.
func (c *Context) SaveState(st models.UserState) error {
	if err := c.Store.SaveUserState(st); err != nil {
		return err
	}
	if _, err := c.Importer().SyncSelf(c.Store.DisplayName(), st); err != nil {
		logger.Warn("Failed to sync state into groups", "error", err)
	}
	return nil
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	if !storage.IsFileBacked(c.Provider) {
		return
	}
	mgr := backup.NewManager(c.Provider.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// ResolveTarget picks the storage location. An explicit flag wins, then
// GROWTHLOG_DB_CONNECTION, then a connection string in the OS keyring, then
// the configured store path. Only the flag is untrusted.
func ResolveTarget(flag string, cfg *config.Config) (target string, trusted bool) {
	if flag != "" {
		return flag, false
	}
	if cfg.DBConnection != "" {
		return cfg.DBConnection, true
	}
	connStr, err := keyring.GetConnectionString()
	switch {
	case err == nil:
		return connStr, true
	case !errors.Is(err, keyring.ErrNotFound):
		logger.Debug("Keyring lookup skipped", "error", err)
	}
	return cfg.Store, true
}
