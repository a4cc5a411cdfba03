// Package streak computes consecutive-day activity streaks from per-day maps.
package streak

import (
	"sort"

	"github.com/julianstephens/growthlog/internal/models"
	"github.com/julianstephens/growthlog/internal/utils"
)

// ActiveDays returns the union of growthDates, focus days and shipped days,
// deduplicated and sorted newest first.
func ActiveDays(growthDates []string, infrastructureFocus, shipped map[string]bool) []string {
	set := make(map[string]struct{}, len(growthDates)+len(infrastructureFocus)+len(shipped))
	for _, d := range growthDates {
		set[d] = struct{}{}
	}
	for d, active := range infrastructureFocus {
		if active {
			set[d] = struct{}{}
		}
	}
	for d, ok := range shipped {
		if ok {
			set[d] = struct{}{}
		}
	}

	days := make([]string, 0, len(set))
	for d := range set {
		days = append(days, d)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(days)))
	return days
}

// Compute returns the current streak: the run of consecutive active days
// ending today or yesterday. A streak whose latest day is older than
// yesterday is 0. An unparseable key ends the walk.
func Compute(growthDates []string, infrastructureFocus, shipped map[string]bool, today string) int {
	days := ActiveDays(growthDates, infrastructureFocus, shipped)
	if len(days) == 0 {
		return 0
	}

	yesterday, err := utils.AddDays(today, -1)
	if err != nil {
		return 0
	}
	if days[0] != today && days[0] != yesterday {
		return 0
	}

	return runFrom(days, 0)
}

// ForState computes the current streak of s.
func ForState(s *models.UserState, today string) int {
	return Compute(s.GrowthDates, s.DailyInfrastructureFocus, s.DailyShipped, today)
}

// Longest returns the longest run of consecutive active days ever recorded.
func Longest(growthDates []string, infrastructureFocus, shipped map[string]bool) int {
	days := ActiveDays(growthDates, infrastructureFocus, shipped)
	best := 0
	for i := 0; i < len(days); {
		n := runFrom(days, i)
		if n > best {
			best = n
		}
		i += n
	}
	return best
}

// runFrom counts the consecutive-day run starting at days[i], which must be
// sorted newest first.
func runFrom(days []string, i int) int {
	n := 1
	for ; i+1 < len(days); i++ {
		diff, err := utils.DaysBetween(days[i], days[i+1])
		if err != nil || diff != 1 {
			break
		}
		n++
	}
	return n
}
