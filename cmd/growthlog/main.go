package main

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/growthlog/internal/cli"
	"github.com/julianstephens/growthlog/internal/cli/backups"
	"github.com/julianstephens/growthlog/internal/cli/profile"
	"github.com/julianstephens/growthlog/internal/cli/social"
	"github.com/julianstephens/growthlog/internal/cli/system"
	"github.com/julianstephens/growthlog/internal/cli/tracking"
	"github.com/julianstephens/growthlog/internal/config"
	"github.com/julianstephens/growthlog/internal/constants"
	"github.com/julianstephens/growthlog/internal/errors"
	"github.com/julianstephens/growthlog/internal/logger"
	"github.com/julianstephens/growthlog/internal/storage"
	"github.com/julianstephens/growthlog/internal/utils"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." type:"string" env:"GROWTHLOG_CONFIG" default:"${config_file}"`
	Store   string `help:"Store location: a .json or SQLite file, or a PostgreSQL connection string without an embedded password."`
	Debug   bool   `help:"Enable debug logging." env:"GROWTHLOG_DEBUG"`

	Init      system.InitCmd       `cmd:"" help:"Initialize growthlog storage."`
	Migrate   system.MigrateCmd    `cmd:"" help:"Run database migrations."`
	Doctor    system.DoctorCmd     `cmd:"" help:"Run health checks and diagnostics."`
	Tui       system.TuiCmd        `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Status    tracking.StatusCmd   `cmd:"" help:"Show today's streak and activity."`
	Log       tracking.LogCmd      `cmd:"" help:"Log growth loops for today."`
	Ship      tracking.ShipCmd     `cmd:"" help:"Keep today's honor code."`
	Break     tracking.BreakCmd    `cmd:"" help:"Turn break mode on or off."`
	Post      tracking.PostCmd     `cmd:"" help:"Write today's post."`
	Record    tracking.RecordCmd   `cmd:"" help:"Record a timed work session."`
	Seed      tracking.SeedCmd     `cmd:"" hidden:"" help:"Fill the store with sample history."`
	Feed      social.FeedCmd       `cmd:"" help:"Show today's feed."`
	React     social.ReactCmd      `cmd:"" help:"React to an activity."`
	Comment   social.CommentCmd    `cmd:"" help:"Comment on an activity."`
	Group     social.GroupCmd      `cmd:"" help:"Manage groups."`
	Join      social.JoinCmd       `cmd:"" help:"Join a group from a link."`
	Follow    social.FollowCmd     `cmd:"" help:"Manage people you follow."`
	Import    social.ImportCmd     `cmd:"" help:"Apply a join or follow link."`
	Discover  social.DiscoverCmd   `cmd:"" help:"Find people to follow."`
	Challenge profile.ChallengeCmd `cmd:"" help:"Weekly challenges."`
	Profile   profile.ProfileCmd   `cmd:"" help:"Manage your profile."`
	Coach     profile.CoachCmd     `cmd:"" help:"Ask the AI coach."`
	Keyring   system.KeyringCmd    `cmd:"" help:"Manage secrets in the OS keyring."`
	Backup    backups.BackupCmd    `cmd:"" help:"Manage store backups."`
	DebugCmd  system.DebugCmd      `cmd:"" name:"debug" hidden:"" help:"Debug commands for troubleshooting."`
	Validate  system.ValidateCmd   `cmd:"" help:"Check stored data for conflicts."`
}

// skipLoad lists commands that open the store themselves or never need it.
func skipLoad(command string) bool {
	switch {
	case command == "init", command == "doctor":
		return true
	case strings.HasPrefix(command, "keyring"):
		return true
	}
	return false
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Daily growth streak tracker for indie builders"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_file": constants.DefaultConfigFile,
		},
	)
	command := ctx.Command()

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		errors.Fatal(err)
	}
	cfg.Debug = cfg.Debug || CLI.Debug

	configPath, err := utils.ExpandHome(CLI.Config)
	if err != nil {
		errors.Fatal(err)
	}
	if err := logger.Init(logger.Config{
		Debug:     cfg.Debug,
		ConfigDir: filepath.Dir(configPath),
		Quiet:     command == "tui",
	}); err != nil {
		errors.Fatal(err)
	}

	target, trusted := cli.ResolveTarget(CLI.Store, cfg)
	provider, err := storage.NewProvider(target, trusted)
	if err != nil {
		errors.Fatal(err)
	}
	defer provider.Close()

	if !skipLoad(command) {
		if err := provider.Load(); err != nil {
			errors.Fatal(err)
		}
	}

	logger.Debug("Running command", "command", command, "store", provider.GetConfigPath())
	if err := ctx.Run(cli.NewContext(provider, cfg)); err != nil {
		provider.Close()
		errors.Fatal(err)
	}
}
