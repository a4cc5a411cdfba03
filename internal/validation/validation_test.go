package validation

import (
	"strings"
	"testing"

	"github.com/julianstephens/growthlog/internal/models"
)

const today = "2025-02-12"

func cleanState() models.UserState {
	s := models.UserState{
		Streak:       2,
		GrowthDates:  []string{"2025-02-11", "2025-02-12"},
		DailyUvs:     map[string]int{"2025-02-11": 3, "2025-02-12": 4},
		DailyShipped: map[string]bool{"2025-02-12": true},
		DailyPostTime: map[string]string{
			"2025-02-12": "2025-02-12T09:30:00.000Z",
		},
	}
	s.Normalize()
	return s
}

func conflictTypes(r ValidationResult) []ConflictType {
	var out []ConflictType
	for _, c := range r.Conflicts {
		out = append(out, c.Type)
	}
	return out
}

func TestValidateState(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.UserState)
		want   []ConflictType
	}{
		{
			name:   "clean state",
			mutate: func(*models.UserState) {},
			want:   nil,
		},
		{
			name: "duplicate growth date",
			mutate: func(s *models.UserState) {
				s.GrowthDates = append(s.GrowthDates, "2025-02-12")
			},
			want: []ConflictType{ConflictDuplicateDate},
		},
		{
			name: "malformed key in per-day map",
			mutate: func(s *models.UserState) {
				s.DailyShipNote["2025-2-3"] = "shipped"
			},
			want: []ConflictType{ConflictInvalidDayKey},
		},
		{
			name: "negative loops",
			mutate: func(s *models.UserState) {
				s.DailyUvs["2025-02-11"] = -2
			},
			want: []ConflictType{ConflictNegativeLoops},
		},
		{
			name: "loops without growth date",
			mutate: func(s *models.UserState) {
				s.DailyUvs["2025-02-01"] = 1
			},
			want: []ConflictType{ConflictMissingGrowthDate},
		},
		{
			name: "stale streak",
			mutate: func(s *models.UserState) {
				s.Streak = 40
			},
			want: []ConflictType{ConflictStaleStreak},
		},
		{
			name: "bad post time",
			mutate: func(s *models.UserState) {
				s.DailyPostTime["2025-02-12"] = "yesterday at noon"
			},
			want: []ConflictType{ConflictInvalidPostTime},
		},
		{
			name: "post over the limit",
			mutate: func(s *models.UserState) {
				s.DailyInputPost["2025-02-12"] = strings.Repeat("x", 161)
			},
			want: []ConflictType{ConflictPostTooLong},
		},
		{
			name: "negative hours",
			mutate: func(s *models.UserState) {
				s.DailyHours["2025-02-12"] = -1
			},
			want: []ConflictType{ConflictNegativeHours},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := cleanState()
			tt.mutate(&s)

			result := ValidateState(&s, today)
			got := conflictTypes(result)
			if len(got) != len(tt.want) {
				t.Fatalf("ValidateState() conflicts = %v, want %v\n%s", got, tt.want, result.FormatReport())
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("conflict %d = %s, want %s", i, got[i], tt.want[i])
				}
			}
			if result.HasConflicts() != (len(tt.want) > 0) {
				t.Errorf("HasConflicts() = %v", result.HasConflicts())
			}
		})
	}
}

func TestFormatReport(t *testing.T) {
	clean := cleanState()
	r := ValidateState(&clean, today)
	if got := r.FormatReport(); got != "No conflicts detected." {
		t.Errorf("FormatReport() = %q", got)
	}

	clean.Streak = 9
	r = ValidateState(&clean, today)
	if got := r.FormatReport(); !strings.Contains(got, "cached streak 9 differs from recomputed streak 2") {
		t.Errorf("FormatReport() = %q", got)
	}
}

func TestBlocking(t *testing.T) {
	s := cleanState()
	s.Streak = 9
	r := ValidateState(&s, today)
	if !r.HasConflicts() {
		t.Fatal("stale streak not reported")
	}
	if got := r.Blocking(); len(got) != 0 {
		t.Errorf("Blocking() = %v, want none for a stale streak", got)
	}

	s.DailyUvs["2025-02-09"] = -1
	r = ValidateState(&s, today)
	got := r.Blocking()
	if len(got) != 1 || got[0].Type != ConflictNegativeLoops {
		t.Errorf("Blocking() = %v, want one negative_loops conflict", got)
	}
}

func TestFix(t *testing.T) {
	s := cleanState()
	s.GrowthDates = append(s.GrowthDates, "2025-02-12")
	s.DailyUvs["2025-02-10"] = 5
	s.DailyUvs["2025-02-09"] = -4
	s.Streak = 0

	actions := Fix(&s, today, ValidateState(&s, today))
	if len(actions) == 0 {
		t.Fatal("Fix() returned no actions")
	}

	after := ValidateState(&s, today)
	if after.HasConflicts() {
		t.Errorf("conflicts remain after Fix():\n%s", after.FormatReport())
	}
	if s.Streak != 3 {
		t.Errorf("Streak = %d, want 3 (10..12)", s.Streak)
	}
	if s.DailyUvs["2025-02-09"] != 0 {
		t.Errorf("negative loops not reset: %d", s.DailyUvs["2025-02-09"])
	}
}

func TestFixLeavesMalformedKeys(t *testing.T) {
	s := cleanState()
	s.DailyShipNote["bogus"] = "note"

	Fix(&s, today, ValidateState(&s, today))
	if s.DailyShipNote["bogus"] != "note" {
		t.Error("Fix() should not drop malformed keys")
	}
}
