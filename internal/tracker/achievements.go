package tracker

import (
	"strings"

	"github.com/julianstephens/growthlog/internal/models"
	"github.com/julianstephens/growthlog/internal/streak"
)

// RefreshAchievements updates achievement progress from the current state.
// Survival progress never decreases; it tracks the best of the stored value,
// the current streak and the longest run on record.
func RefreshAchievements(s *models.UserState, today string) {
	current := streak.ForState(s, today)
	best := max(current, streak.Longest(s.GrowthDates, s.DailyInfrastructureFocus, s.DailyShipped))
	total := s.TotalLoops()

	for i := range s.Achievements {
		a := &s.Achievements[i]
		switch {
		case strings.HasPrefix(a.ID, models.SurvivalPrefix):
			a.Progress = max(a.Progress, best)
		case a.ID == models.AchievementLoops10k:
			a.Progress = total
		case a.ID == models.AchievementMorning30:
			a.Progress = max(a.Progress, s.Stats.MorningShipments)
		}
		a.Unlocked = a.Progress >= a.Target
	}
}

// Unlocked returns the achievements that are unlocked.
func Unlocked(s *models.UserState) []models.Achievement {
	var out []models.Achievement
	for _, a := range s.Achievements {
		if a.Unlocked {
			out = append(out, a)
		}
	}
	return out
}
