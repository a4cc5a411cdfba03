package tracker

import (
	"math/rand"
	"time"

	"github.com/julianstephens/growthlog/internal/models"
	"github.com/julianstephens/growthlog/internal/utils"
)

// Seed fills the last days of history with random activity for demos and
// manual testing. Roughly 70% of days get loops, most of those ship, and a
// few idle days become break days. Stats and achievements are recomputed.
func Seed(s *models.UserState, days int, now time.Time, rng *rand.Rand) {
	s.Normalize()
	y, m, d := now.Date()

	for i := 0; i < days; i++ {
		key := utils.DayKey(time.Date(y, m, d-i, 12, 0, 0, 0, now.Location()))
		if rng.Float64() > 0.3 {
			if !s.HasGrowthDate(key) {
				s.GrowthDates = append(s.GrowthDates, key)
			}
			s.DailyUvs[key] = rng.Intn(20) + 1
			s.DailyInfrastructureFocus[key] = false
			s.DailyShipped[key] = rng.Float64() > 0.2
		} else {
			s.DailyUvs[key] = 0
			s.DailyInfrastructureFocus[key] = rng.Float64() > 0.8
			s.DailyShipped[key] = false
		}
	}

	s.Stats.TotalUniqueVisitors = s.TotalLoops()
	finish(s, utils.Today(now))
}
