package constants

const (
	// DateFormat is the canonical day-key format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"
)

// DefaultTimezone selects the system timezone for day-keys.
const DefaultTimezone = "Local"
