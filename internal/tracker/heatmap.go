package tracker

import (
	"math"
	"time"

	"github.com/julianstephens/growthlog/internal/constants"
	"github.com/julianstephens/growthlog/internal/models"
	"github.com/julianstephens/growthlog/internal/utils"
)

// HeatmapDay is one cell of the activity heatmap.
type HeatmapDay struct {
	Date      string
	Hours     float64
	IsFocus   bool
	FirstNote string
	IsToday   bool
}

// HasActivity reports whether the cell should render as active.
func (d HeatmapDay) HasActivity() bool {
	return d.Hours > 0 || d.FirstNote != ""
}

// Intensity maps hours onto [0, 1], saturating at HeatmapMaxIntensity hours.
func (d HeatmapDay) Intensity() float64 {
	return math.Min(1, d.Hours/constants.HeatmapMaxIntensity)
}

// Heatmap returns the n days ending today, oldest first. Days without logged
// hours fall back to an estimate from the loop count.
func Heatmap(s *models.UserState, now time.Time, n int) []HeatmapDay {
	today := utils.Today(now)
	y, m, d := now.Date()

	days := make([]HeatmapDay, 0, n)
	for i := n - 1; i >= 0; i-- {
		key := utils.DayKey(time.Date(y, m, d-i, 12, 0, 0, 0, now.Location()))
		days = append(days, HeatmapDay{
			Date:      key,
			Hours:     dayHours(s, key),
			IsFocus:   s.DailyInfrastructureFocus[key],
			FirstNote: dayFirstNote(s, key),
			IsToday:   key == today,
		})
	}
	return days
}

// WeekHeatmap returns the last seven days.
func WeekHeatmap(s *models.UserState, now time.Time) []HeatmapDay {
	return Heatmap(s, now, constants.HeatmapDays)
}

func dayHours(s *models.UserState, key string) float64 {
	if h, ok := s.DailyHours[key]; ok {
		return h
	}
	return float64(s.DailyUvs[key]) * constants.HeatmapHoursPerLoop
}

func dayFirstNote(s *models.UserState, key string) string {
	if note := s.DailyFirstNote[key]; note != "" {
		return note
	}
	if post := s.DailyInputPost[key]; post != "" {
		return FirstLine(post)
	}
	return ""
}
