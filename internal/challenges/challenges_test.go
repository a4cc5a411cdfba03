package challenges

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/julianstephens/growthlog/internal/models"
)

func TestDefaults(t *testing.T) {
	// Wednesday
	now := time.Date(2025, 2, 12, 15, 0, 0, 0, time.UTC)
	got := Defaults(now)

	want := []models.Challenge{
		{ID: WeeklyShipID, Name: "Ship 5 days this week", Type: models.ChallengeWeeklyShip, Target: 5, StartDate: "2025-02-10", EndDate: "2025-02-16"},
		{ID: WeeklyLoopsID, Name: "Log 50 loops this week", Type: models.ChallengeWeeklyLoops, Target: 50, StartDate: "2025-02-10", EndDate: "2025-02-16"},
		{ID: Streak7ID, Name: "7-day streak", Type: models.ChallengeStreak, Target: 7, StartDate: "2025-02-10", EndDate: "2025-02-16"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Defaults() mismatch (-want +got):\n%s", diff)
	}
	for _, ch := range got {
		if err := ch.Validate(); err != nil {
			t.Errorf("default challenge %s invalid: %v", ch.ID, err)
		}
	}
}

func TestProgress(t *testing.T) {
	state := models.UserState{
		Streak:      99, // stale cache
		GrowthDates: []string{"2025-02-12", "2025-02-11", "2025-02-09"},
		DailyUvs: map[string]int{
			"2025-02-09": 100, // outside the week
			"2025-02-11": 20,
			"2025-02-12": 15,
		},
		DailyShipped: map[string]bool{
			"2025-02-10": true,
			"2025-02-11": true,
			"2025-02-12": false,
			"2025-02-03": true, // outside the week
		},
	}
	state.Normalize()

	week := func(typ models.ChallengeType) models.Challenge {
		return models.Challenge{ID: "x", Type: typ, Target: 5, StartDate: "2025-02-10", EndDate: "2025-02-16"}
	}

	tests := []struct {
		name string
		ch   models.Challenge
		want int
	}{
		{"weekly ship counts shipped days in range", week(models.ChallengeWeeklyShip), 2},
		{"weekly loops sums loops in range", week(models.ChallengeWeeklyLoops), 35},
		// 02-10 is active through the ship flag, so the run is 09..12.
		{"streak recomputed from the maps", week(models.ChallengeStreak), 4},
		{"unknown type", week("mystery"), 0},
		{"inverted range", models.Challenge{Type: models.ChallengeWeeklyLoops, StartDate: "2025-02-16", EndDate: "2025-02-10"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Progress(tt.ch, &state, "2025-02-12"); got != tt.want {
				t.Errorf("Progress() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestEvaluate(t *testing.T) {
	state := models.UserState{
		DailyShipped: map[string]bool{"2025-02-10": true},
		DailyUvs:     map[string]int{"2025-02-10": 60},
	}
	state.Normalize()

	got := Evaluate(Defaults(time.Date(2025, 2, 12, 9, 0, 0, 0, time.UTC)), &state, "2025-02-12")
	if len(got) != 3 {
		t.Fatalf("Evaluate() returned %d statuses, want 3", len(got))
	}

	if got[0].Progress != 1 || got[0].Complete() || got[0].Percent() != 20 {
		t.Errorf("ship status = %+v, percent %d", got[0], got[0].Percent())
	}
	if !got[1].Complete() || got[1].Percent() != 100 {
		t.Errorf("loops status = %+v, want complete at 100%%", got[1])
	}
	if got[2].Progress != 0 {
		t.Errorf("streak status = %+v, want 0 since latest activity is two days old", got[2])
	}
}
