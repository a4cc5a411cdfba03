// Package tracker applies the user's daily actions to their state.
//
// Every mutation takes the wall-clock time already converted to the
// configured timezone, derives today's key from it, and finishes by
// recomputing the cached streak.
package tracker

import (
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/julianstephens/growthlog/internal/constants"
	"github.com/julianstephens/growthlog/internal/models"
	"github.com/julianstephens/growthlog/internal/streak"
	"github.com/julianstephens/growthlog/internal/utils"
)

// LogLoops adds delta to today's loop count, clamped at zero. Logging loops
// marks today as a growth day and ends break mode.
func LogLoops(s *models.UserState, delta int, now time.Time) {
	s.Normalize()
	today := utils.Today(now)

	if !s.HasGrowthDate(today) {
		s.GrowthDates = append(s.GrowthDates, today)
	}
	s.DailyUvs[today] = max(0, s.DailyUvs[today]+delta)

	s.Stats.TotalUniqueVisitors += delta
	if delta > 0 && now.Hour() < constants.MorningCutoffHour {
		s.Stats.MorningShipments++
	}
	s.IsOnMaintenance = false

	finish(s, today)
}

// SetBreak turns break mode on or off. A break day keeps the streak alive.
func SetBreak(s *models.UserState, active bool, now time.Time) {
	s.Normalize()
	today := utils.Today(now)

	s.IsOnMaintenance = active
	s.DailyInfrastructureFocus[today] = active

	finish(s, today)
}

// SetShipped marks or clears today's honor code. A non-blank note is kept
// alongside; clearing the flag drops the note.
func SetShipped(s *models.UserState, kept bool, note string, now time.Time) {
	s.Normalize()
	today := utils.Today(now)

	s.DailyShipped[today] = kept
	if !kept {
		delete(s.DailyShipNote, today)
	} else if note = strings.TrimSpace(note); note != "" {
		s.DailyShipNote[today] = note
	}

	finish(s, today)
}

// SavePost stores today's post, trimmed and capped at MaxPostLength runes.
// The post time only moves when the text is non-blank.
func SavePost(s *models.UserState, text string, now time.Time) {
	s.Normalize()
	today := utils.Today(now)

	text = truncate(strings.TrimSpace(text), constants.MaxPostLength)
	s.DailyInputPost[today] = text
	if text != "" {
		s.DailyPostTime[today] = now.Format(time.RFC3339)
	}

	finish(s, today)
}

// SaveSession adds a timed session to today. The first note of the day is
// kept once set.
func SaveSession(s *models.UserState, hours float64, firstNote string, now time.Time) {
	s.Normalize()
	today := utils.Today(now)

	s.DailyHours[today] += hours
	if s.DailyFirstNote[today] == "" && firstNote != "" {
		s.DailyFirstNote[today] = firstNote
	}
	s.DailyPostTime[today] = now.Format(time.RFC3339)

	finish(s, today)
}

// RecordSession saves a finished stopwatch session with its post. It counts
// as one loop. A blank post records nothing and returns false.
func RecordSession(s *models.UserState, elapsed time.Duration, post string, now time.Time) bool {
	post = strings.TrimSpace(post)
	if post == "" {
		return false
	}

	SavePost(s, post, now)
	LogLoops(s, 1, now)
	SaveSession(s, RoundHours(elapsed), FirstLine(post), now)
	return true
}

// UpdateProfile sets the bio and photo fields that are non-nil.
func UpdateProfile(s *models.UserState, bio, photo *string) {
	if bio != nil {
		s.ProfileBio = strings.TrimSpace(*bio)
	}
	if photo != nil {
		s.ProfilePhoto = strings.TrimSpace(*photo)
	}
}

// RoundHours converts d to hours rounded to two decimals.
func RoundHours(d time.Duration) float64 {
	return math.Round(d.Hours()*100) / 100
}

// FirstLine returns the first non-empty line of text, capped at
// FirstNoteMaxLength runes.
func FirstLine(text string) string {
	text = strings.TrimSpace(text)
	line, _, _ := strings.Cut(text, "\n")
	line = strings.TrimSpace(line)
	if line == "" {
		line = text
	}
	return truncate(line, constants.FirstNoteMaxLength)
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func finish(s *models.UserState, today string) {
	s.Streak = streak.ForState(s, today)
	RefreshAchievements(s, today)
}
