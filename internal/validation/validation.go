package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/julianstephens/growthlog/internal/constants"
	"github.com/julianstephens/growthlog/internal/models"
	"github.com/julianstephens/growthlog/internal/streak"
	"github.com/julianstephens/growthlog/internal/utils"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictInvalidDayKey     ConflictType = "invalid_day_key"
	ConflictDuplicateDate     ConflictType = "duplicate_growth_date"
	ConflictNegativeLoops     ConflictType = "negative_loops"
	ConflictStaleStreak       ConflictType = "stale_streak"
	ConflictMissingGrowthDate ConflictType = "missing_growth_date"
	ConflictInvalidPostTime   ConflictType = "invalid_post_time"
	ConflictPostTooLong       ConflictType = "post_too_long"
	ConflictNegativeHours     ConflictType = "negative_hours"
)

// Conflict represents one inconsistency found in a state
type Conflict struct {
	Type        ConflictType
	Description string
	Field       string // per-day map or field involved
	Date        string // day-key involved, if any
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// FixAction describes a change made by Fix
type FixAction struct {
	Action         string
	SourceConflict Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// Blocking returns the conflicts other than a stale cached streak. The
// cached streak goes stale whenever a day passes without a write.
func (vr *ValidationResult) Blocking() []Conflict {
	var out []Conflict
	for _, c := range vr.Conflicts {
		if c.Type != ConflictStaleStreak {
			out = append(out, c)
		}
	}
	return out
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, c := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", c.Description)
	}
	return b.String()
}

// ValidateState checks a user state for inconsistencies. today is the
// day-key used to recompute the streak.
func ValidateState(s *models.UserState, today string) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}
	add := func(c Conflict) { result.Conflicts = append(result.Conflicts, c) }

	seen := make(map[string]bool, len(s.GrowthDates))
	for _, d := range s.GrowthDates {
		if !utils.ValidDayKey(d) {
			add(Conflict{Type: ConflictInvalidDayKey, Field: "growthDates", Date: d,
				Description: fmt.Sprintf("growthDates has a malformed day-key %q", d)})
			continue
		}
		if seen[d] {
			add(Conflict{Type: ConflictDuplicateDate, Field: "growthDates", Date: d,
				Description: fmt.Sprintf("growthDates lists %s more than once", d)})
		}
		seen[d] = true
	}

	for _, field := range perDayKeys(s) {
		for _, d := range field.keys {
			if !utils.ValidDayKey(d) {
				add(Conflict{Type: ConflictInvalidDayKey, Field: field.name, Date: d,
					Description: fmt.Sprintf("%s has a malformed day-key %q", field.name, d)})
			}
		}
	}

	for _, d := range sortedKeys(s.DailyUvs) {
		if s.DailyUvs[d] < 0 {
			add(Conflict{Type: ConflictNegativeLoops, Field: "dailyUvs", Date: d,
				Description: fmt.Sprintf("dailyUvs[%s] is negative (%d)", d, s.DailyUvs[d])})
		}
		if s.DailyUvs[d] > 0 && utils.ValidDayKey(d) && !seen[d] {
			add(Conflict{Type: ConflictMissingGrowthDate, Field: "growthDates", Date: d,
				Description: fmt.Sprintf("%s has loops but is missing from growthDates", d)})
		}
	}

	for _, d := range sortedKeys(s.DailyHours) {
		if s.DailyHours[d] < 0 {
			add(Conflict{Type: ConflictNegativeHours, Field: "dailyHours", Date: d,
				Description: fmt.Sprintf("dailyHours[%s] is negative (%.2f)", d, s.DailyHours[d])})
		}
	}

	for _, d := range sortedKeys(s.DailyPostTime) {
		if _, err := utils.ParseTimestamp(s.DailyPostTime[d]); err != nil {
			add(Conflict{Type: ConflictInvalidPostTime, Field: "dailyPostTime", Date: d,
				Description: fmt.Sprintf("dailyPostTime[%s] is not an RFC3339 timestamp", d)})
		}
	}

	for _, d := range sortedKeys(s.DailyInputPost) {
		if n := len([]rune(s.DailyInputPost[d])); n > constants.MaxPostLength {
			add(Conflict{Type: ConflictPostTooLong, Field: "dailyInputPost", Date: d,
				Description: fmt.Sprintf("dailyInputPost[%s] is %d characters, over the %d limit", d, n, constants.MaxPostLength)})
		}
	}

	if fresh := streak.ForState(s, today); fresh != s.Streak {
		add(Conflict{Type: ConflictStaleStreak, Field: "streak",
			Description: fmt.Sprintf("cached streak %d differs from recomputed streak %d", s.Streak, fresh)})
	}

	return result
}

// Fix repairs what it safely can: duplicate and missing growth dates,
// negative counts, and the cached streak. Malformed keys are reported but
// left in place.
func Fix(s *models.UserState, today string, result ValidationResult) []FixAction {
	s.Normalize()
	var actions []FixAction
	for _, c := range result.Conflicts {
		switch c.Type {
		case ConflictDuplicateDate:
			actions = append(actions, FixAction{Action: fmt.Sprintf("Removed duplicate growth date %s", c.Date), SourceConflict: c})
		case ConflictMissingGrowthDate:
			s.GrowthDates = append(s.GrowthDates, c.Date)
			actions = append(actions, FixAction{Action: fmt.Sprintf("Added %s to growth dates", c.Date), SourceConflict: c})
		case ConflictNegativeLoops:
			s.DailyUvs[c.Date] = 0
			actions = append(actions, FixAction{Action: fmt.Sprintf("Reset loops on %s to 0", c.Date), SourceConflict: c})
		case ConflictNegativeHours:
			s.DailyHours[c.Date] = 0
			actions = append(actions, FixAction{Action: fmt.Sprintf("Reset hours on %s to 0", c.Date), SourceConflict: c})
		}
	}

	s.GrowthDates = dedupe(s.GrowthDates)

	if fresh := streak.ForState(s, today); fresh != s.Streak {
		actions = append(actions, FixAction{
			Action:         fmt.Sprintf("Updated cached streak from %d to %d", s.Streak, fresh),
			SourceConflict: Conflict{Type: ConflictStaleStreak, Field: "streak"},
		})
		s.Streak = fresh
	}
	return actions
}

type dayField struct {
	name string
	keys []string
}

func perDayKeys(s *models.UserState) []dayField {
	return []dayField{
		{"dailyUvs", sortedKeys(s.DailyUvs)},
		{"dailyGrowthActions", sortedKeys(s.DailyGrowthActions)},
		{"dailyInfrastructureFocus", sortedKeys(s.DailyInfrastructureFocus)},
		{"dailyShipped", sortedKeys(s.DailyShipped)},
		{"dailyShipNote", sortedKeys(s.DailyShipNote)},
		{"dailyInputPost", sortedKeys(s.DailyInputPost)},
		{"dailyPostTime", sortedKeys(s.DailyPostTime)},
		{"dailyHours", sortedKeys(s.DailyHours)},
		{"dailyFirstNote", sortedKeys(s.DailyFirstNote)},
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func dedupe(days []string) []string {
	seen := make(map[string]bool, len(days))
	out := make([]string, 0, len(days))
	for _, d := range days {
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	return out
}
