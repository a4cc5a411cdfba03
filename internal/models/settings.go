package models

import "github.com/julianstephens/growthlog/internal/constants"

// Settings represents user preferences persisted in the store
type Settings struct {
	DisplayName string `json:"displayName"` // name used for self-exclusion and group membership
	Timezone    string `json:"timezone"`    // IANA timezone name, or "Local" for the system timezone
}

// ApplyDefaultSettings applies default values to missing settings.
func ApplyDefaultSettings(settings *Settings) {
	if settings.DisplayName == "" {
		settings.DisplayName = constants.DefaultDisplayName
	}
	if settings.Timezone == "" {
		settings.Timezone = constants.DefaultTimezone
	}
}
