package challenges

import (
	"time"

	"github.com/julianstephens/growthlog/internal/models"
	"github.com/julianstephens/growthlog/internal/streak"
	"github.com/julianstephens/growthlog/internal/utils"
)

// Default challenge IDs.
const (
	WeeklyShipID  = "ch_weekly_ship"
	WeeklyLoopsID = "ch_weekly_loops"
	Streak7ID     = "ch_streak_7"
)

// Defaults returns the built-in challenges over the Monday–Sunday week that contains now.
func Defaults(now time.Time) []models.Challenge {
	start, end := utils.WeekBounds(now)
	return []models.Challenge{
		{ID: WeeklyShipID, Name: "Ship 5 days this week", Type: models.ChallengeWeeklyShip, Target: 5, StartDate: start, EndDate: end},
		{ID: WeeklyLoopsID, Name: "Log 50 loops this week", Type: models.ChallengeWeeklyLoops, Target: 50, StartDate: start, EndDate: end},
		{ID: Streak7ID, Name: "7-day streak", Type: models.ChallengeStreak, Target: 7, StartDate: start, EndDate: end},
	}
}

// Progress measures s against ch. Streak challenges use the streak computed
// from the per-day maps, never the cached value.
func Progress(ch models.Challenge, s *models.UserState, today string) int {
	switch ch.Type {
	case models.ChallengeStreak:
		return streak.ForState(s, today)
	case models.ChallengeWeeklyShip:
		count := 0
		for _, d := range utils.DayRange(ch.StartDate, ch.EndDate) {
			if s.DailyShipped[d] {
				count++
			}
		}
		return count
	case models.ChallengeWeeklyLoops:
		total := 0
		for _, d := range utils.DayRange(ch.StartDate, ch.EndDate) {
			total += s.DailyUvs[d]
		}
		return total
	}
	return 0
}

// Status pairs a challenge with its current progress.
type Status struct {
	Challenge models.Challenge
	Progress  int
}

// Complete reports whether the target has been reached.
func (st Status) Complete() bool {
	return st.Progress >= st.Challenge.Target
}

// Percent is the progress as a whole percentage capped at 100.
func (st Status) Percent() int {
	if st.Challenge.Target <= 0 {
		return 100
	}
	p := st.Progress * 100 / st.Challenge.Target
	if p > 100 {
		return 100
	}
	return p
}

// Evaluate computes the status of every challenge.
func Evaluate(list []models.Challenge, s *models.UserState, today string) []Status {
	out := make([]Status, 0, len(list))
	for _, ch := range list {
		out = append(out, Status{Challenge: ch, Progress: Progress(ch, s, today)})
	}
	return out
}
