package system

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/growthlog/internal/backup"
	"github.com/julianstephens/growthlog/internal/cli"
	"github.com/julianstephens/growthlog/internal/keyring"
	"github.com/julianstephens/growthlog/internal/storage"
	"github.com/julianstephens/growthlog/internal/utils"
	"github.com/julianstephens/growthlog/internal/validation"
)

type DoctorCmd struct{}

type check struct {
	name     string
	needsDB  bool
	warnOnly bool
	run      func(ctx *cli.Context) error
}

var checks = []check{
	{name: "Schema version", needsDB: true, run: checkSchemaVersion},
	{name: "Migrations complete", needsDB: true, run: checkMigrationsComplete},
	{name: "Backups present", warnOnly: true, run: checkBackupsPresent},
	{name: "Data validation", needsDB: true, run: checkValidation},
	{name: "Group snapshots", needsDB: true, warnOnly: true, run: checkSnapshots},
	{name: "Clock/timezone", run: checkClockTimezone},
	{name: "OS keyring", warnOnly: true, run: checkKeyring},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	dbReachable := false

	if err := checkDBReachable(ctx); err != nil {
		ctx.Printf("❌ Database reachable: FAIL\n")
		ctx.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		ctx.Printf("✓ Database reachable: OK\n")
		dbReachable = true
	}

	for _, c := range checks {
		if c.needsDB && !dbReachable {
			ctx.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
		case c.warnOnly:
			ctx.Printf("⚠ %s: WARNING\n", c.name)
			ctx.Printf("   %v\n", err)
		default:
			ctx.Printf("❌ %s: FAIL\n", c.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	ctx.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Provider.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	if _, err := ctx.Provider.Keys(); err != nil {
		return fmt.Errorf("failed to query database: %w", err)
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	runner, err := storage.MigrationRunner(ctx.Provider)
	if errors.Is(err, storage.ErrNoSchema) {
		// JSON store doesn't have schema version
		return nil
	}
	if err != nil {
		return err
	}

	currentVersion, err := runner.GetCurrentVersion()
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}
	latestVersion, err := runner.GetLatestVersion()
	if err != nil {
		return fmt.Errorf("failed to get latest schema version: %w", err)
	}
	if currentVersion > latestVersion {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", currentVersion, latestVersion)
	}
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	runner, err := storage.MigrationRunner(ctx.Provider)
	if errors.Is(err, storage.ErrNoSchema) {
		return nil
	}
	if err != nil {
		return err
	}

	currentVersion, err := runner.GetCurrentVersion()
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}
	latestVersion, err := runner.GetLatestVersion()
	if err != nil {
		return fmt.Errorf("failed to get latest schema version: %w", err)
	}
	if currentVersion < latestVersion {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d", currentVersion, latestVersion)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	if !storage.IsFileBacked(ctx.Provider) {
		return errors.New("backups are only taken for file-backed stores")
	}
	mgr := backup.NewManager(ctx.Provider.GetConfigPath())
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found in %s", mgr.GetBackupDir())
	}

	age := time.Since(backups[0].Timestamp)
	if age > 7*24*time.Hour {
		return fmt.Errorf("most recent backup is %d days old", int(age.Hours()/24))
	}
	return nil
}

func checkValidation(ctx *cli.Context) error {
	st := ctx.State()
	result := validation.ValidateState(&st, ctx.Today())
	if blocking := result.Blocking(); len(blocking) > 0 {
		return fmt.Errorf("%d conflict(s) found, run 'validate --fix' to repair", len(blocking))
	}
	return nil
}

// checkSnapshots reports conflicts in imported member and followed states.
// They came from someone else's device, so they only warn.
func checkSnapshots(ctx *cli.Context) error {
	today := ctx.Today()
	bad := 0
	for _, g := range ctx.Store.Groups() {
		for _, m := range g.Members {
			if r := validation.ValidateState(&m.UserState, today); len(r.Blocking()) > 0 {
				bad++
			}
		}
	}
	for _, p := range ctx.Store.Following() {
		if r := validation.ValidateState(&p.UserState, today); len(r.Blocking()) > 0 {
			bad++
		}
	}
	if bad > 0 {
		return fmt.Errorf("%d imported snapshot(s) have conflicts", bad)
	}
	return nil
}

func checkKeyring(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		return keyring.ErrKeyringUnavailable
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	tz := ctx.Timezone()
	if !utils.ValidateTimezone(tz) {
		return fmt.Errorf("invalid timezone: %s", tz)
	}
	if _, err := utils.NowInTimezone(tz); err != nil {
		return fmt.Errorf("failed to read clock in %s: %w", tz, err)
	}
	if time.Now().Year() < 2020 {
		return fmt.Errorf("system clock looks wrong: %s", time.Now().Format(time.RFC3339))
	}
	return nil
}
