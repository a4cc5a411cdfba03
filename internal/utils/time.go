package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/growthlog/internal/constants"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// NowInTimezone returns the current time in the specified timezone.
func NowInTimezone(timezone string) (time.Time, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return time.Now().In(loc), nil
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	if timezone == "" || timezone == "Local" {
		return true
	}
	_, err := time.LoadLocation(timezone)
	return err == nil
}

// DayKey returns the YYYY-MM-DD key of t's calendar day in t's own location.
func DayKey(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// Today returns the day-key for now.
func Today(now time.Time) string {
	return DayKey(now)
}

// Yesterday returns the key of the calendar day before now. It steps the
// civil date rather than subtracting 24h so DST transitions cannot skip or
// repeat a day.
func Yesterday(now time.Time) string {
	y, m, d := now.Date()
	return DayKey(time.Date(y, m, d-1, 12, 0, 0, 0, now.Location()))
}

// ParseDay parses a day-key as a civil date at UTC midnight. Day keys carry no
// zone, so arithmetic on the result is free of offset shifts.
func ParseDay(key string) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day key %q: %w", key, err)
	}
	return t, nil
}

// ValidDayKey reports whether key is a canonical YYYY-MM-DD day-key.
func ValidDayKey(key string) bool {
	t, err := ParseDay(key)
	return err == nil && DayKey(t) == key
}

// DaysBetween returns the calendar-day difference a - b.
func DaysBetween(a, b string) (int, error) {
	ta, err := ParseDay(a)
	if err != nil {
		return 0, err
	}
	tb, err := ParseDay(b)
	if err != nil {
		return 0, err
	}
	return int(ta.Sub(tb).Hours() / 24), nil
}

// AddDays shifts a day-key by n calendar days.
func AddDays(key string, n int) (string, error) {
	t, err := ParseDay(key)
	if err != nil {
		return "", err
	}
	return DayKey(t.AddDate(0, 0, n)), nil
}

// DayRange returns every day-key from start to end inclusive. It returns nil
// when either key is malformed or end precedes start.
func DayRange(start, end string) []string {
	ts, err := ParseDay(start)
	if err != nil {
		return nil
	}
	te, err := ParseDay(end)
	if err != nil {
		return nil
	}
	var days []string
	for d := ts; !d.After(te); d = d.AddDate(0, 0, 1) {
		days = append(days, DayKey(d))
	}
	return days
}

// WeekBounds returns the Monday and Sunday keys of the week containing now.
func WeekBounds(now time.Time) (string, string) {
	y, m, d := now.Date()
	offset := int(now.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset = 6
	}
	monday := time.Date(y, m, d-offset, 12, 0, 0, 0, now.Location())
	sunday := monday.AddDate(0, 0, 6)
	return DayKey(monday), DayKey(sunday)
}

// ParseTimestamp parses an RFC3339 timestamp, accepting the fractional
// seconds produced by JavaScript's toISOString.
func ParseTimestamp(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}
