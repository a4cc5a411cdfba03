package constants

import "time"

const (
	AppName            = "growthlog"
	DefaultKeyringUser = "database-connection"
	CoachKeyringUser   = "gemini-api-key"
	DefaultConfigPath  = "~/.config/growthlog/growthlog.db"
	DefaultConfigFile  = "~/.config/growthlog/config.yaml"
	Version            = "v0.3.0"

	// DefaultDisplayName is used until the user picks a name.
	DefaultDisplayName = "You"

	// DefaultCoachModel is the Gemini model used when config leaves it unset.
	DefaultCoachModel = "gemini-2.5-flash"

	// DefaultShareBaseURL prefixes join and follow links when no base URL is configured.
	DefaultShareBaseURL = "https://growthlog.app/"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "growthlog-"

	// Record constants
	MaxPostLength       = 160
	FirstNoteMaxLength  = 80
	MorningCutoffHour   = 9
	AutosaveDelay       = 500 * time.Millisecond
	HeatmapDays         = 7
	HeatmapHoursPerLoop = 0.5
	HeatmapMaxIntensity = 8.0
)
