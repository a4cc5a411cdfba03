package streak

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/julianstephens/growthlog/internal/models"
)

const today = "2025-02-12"

func TestCompute(t *testing.T) {
	tests := []struct {
		name     string
		growth   []string
		focus    map[string]bool
		shipped  map[string]bool
		expected int
	}{
		{
			name:     "no activity",
			expected: 0,
		},
		{
			name:     "today only",
			growth:   []string{"2025-02-12"},
			expected: 1,
		},
		{
			name:     "yesterday only keeps the streak alive",
			growth:   []string{"2025-02-11"},
			expected: 1,
		},
		{
			name:     "latest day two days ago breaks the streak",
			growth:   []string{"2025-02-10", "2025-02-09", "2025-02-08"},
			expected: 0,
		},
		{
			name:     "three consecutive days",
			growth:   []string{"2025-02-10", "2025-02-12", "2025-02-11"},
			expected: 3,
		},
		{
			name:     "gap stops the walk",
			growth:   []string{"2025-02-12", "2025-02-11", "2025-02-09", "2025-02-08"},
			expected: 2,
		},
		{
			name:     "union of growth, focus and shipped",
			growth:   []string{"2025-02-12"},
			focus:    map[string]bool{"2025-02-11": true},
			shipped:  map[string]bool{"2025-02-10": true},
			expected: 3,
		},
		{
			name:     "false flags are not active",
			growth:   []string{"2025-02-12"},
			focus:    map[string]bool{"2025-02-11": false},
			shipped:  map[string]bool{"2025-02-11": false},
			expected: 1,
		},
		{
			name:     "same day from several signals counts once",
			growth:   []string{"2025-02-12", "2025-02-12", "2025-02-11"},
			focus:    map[string]bool{"2025-02-12": true},
			shipped:  map[string]bool{"2025-02-12": true, "2025-02-11": true},
			expected: 2,
		},
		{
			name:     "break-only day counts",
			focus:    map[string]bool{"2025-02-12": true, "2025-02-11": true},
			expected: 2,
		},
		{
			name:     "latest day in the future is not current",
			growth:   []string{"2025-03-01", "2025-02-28", "2025-02-27"},
			expected: 0,
		},
		{
			name:     "malformed key ends the walk without panicking",
			growth:   []string{"2025-02-12", "2025-02-11x", "2025-02-11", "2025-02-10"},
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(tt.growth, tt.focus, tt.shipped, today)
			if got != tt.expected {
				t.Errorf("Compute() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestCompute_MonthBoundary(t *testing.T) {
	got := Compute([]string{"2025-03-01", "2025-02-28", "2025-02-27"}, nil, nil, "2025-03-02")
	if got != 3 {
		t.Errorf("Compute() = %d, want 3", got)
	}
}

func TestCompute_DSTWeekend(t *testing.T) {
	// Day keys are civil dates, so the 23-hour day of a DST change is still one day apart.
	got := Compute([]string{"2025-03-10", "2025-03-09", "2025-03-08"}, nil, nil, "2025-03-10")
	if got != 3 {
		t.Errorf("Compute() = %d, want 3", got)
	}
}

func TestForState(t *testing.T) {
	s := models.DefaultUserState("2025-02-11")
	if got := ForState(&s, today); got != 1 {
		t.Errorf("ForState() = %d, want 1", got)
	}

	// The cached value is never consulted.
	s.Streak = 40
	if got := ForState(&s, "2025-02-20"); got != 0 {
		t.Errorf("ForState() = %d, want 0", got)
	}
}

func TestLongest(t *testing.T) {
	growth := []string{"2025-01-01", "2025-01-02", "2025-01-03", "2025-01-04", "2025-01-10", "2025-01-11"}
	shipped := map[string]bool{"2025-01-05": true}

	if got := Longest(growth, nil, shipped); got != 5 {
		t.Errorf("Longest() = %d, want 5", got)
	}
	if got := Longest(nil, nil, nil); got != 0 {
		t.Errorf("Longest(empty) = %d, want 0", got)
	}
}

func TestActiveDays(t *testing.T) {
	got := ActiveDays(
		[]string{"2025-02-10", "2025-02-12"},
		map[string]bool{"2025-02-11": true, "2025-02-09": false},
		map[string]bool{"2025-02-12": true},
	)
	want := []string{"2025-02-12", "2025-02-11", "2025-02-10"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ActiveDays() mismatch (-want +got):\n%s", diff)
	}
}
