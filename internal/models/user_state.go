package models

// Achievement categories.
const (
	CategoryConsistency = "CONSISTENCY"
	CategoryVolume      = "VOLUME"
	CategoryMomentum    = "MOMENTUM"
	CategorySurvival    = "SURVIVAL"
)

// Achievement IDs tracked by the app.
const (
	AchievementSurvival3 = "survival-3"
	AchievementSurvival7 = "survival-7"
	AchievementLoops10k  = "uv-10k"
	AchievementMorning30 = "morning-30"
	SurvivalPrefix       = "survival-"
)

// Achievement is a progress milestone shown on the profile.
type Achievement struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Unlocked    bool   `json:"unlocked"`
	Progress    int    `json:"progress"`
	Target      int    `json:"target"`
	Category    string `json:"category"`
}

// UserStats holds running aggregates.
type UserStats struct {
	AvgUvPerDay          float64 `json:"avgUvPerDay"`
	ConversionResilience float64 `json:"conversionResilience"`
	MorningShipments     int     `json:"morningShipments"`
	TotalUniqueVisitors  int     `json:"totalUniqueVisitors"`
	TotalChurnedLeads    int     `json:"totalChurnedLeads"`
}

// HistoryPoint is a legacy (date, value) sample kept for document compatibility.
type HistoryPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// UserState is the whole tracked state of one person. All per-day maps are
// keyed by YYYY-MM-DD day-keys. Field names follow the shared document format
// so share links stay interoperable.
type UserState struct {
	DefaultKpi      string `json:"defaultKpi"`
	WebsiteURL      string `json:"websiteUrl,omitempty"`
	GrowthObjective string `json:"growthObjective,omitempty"`
	ProfileBio      string `json:"profileBio,omitempty"`
	ProfilePhoto    string `json:"profilePhoto,omitempty"`

	// Streak is a display cache; use streak.ForState for logic.
	Streak  int            `json:"streak"`
	History []HistoryPoint `json:"history"`

	GrowthDates              []string           `json:"growthDates"`
	DailyUvs                 map[string]int     `json:"dailyUvs"`
	DailyGrowthActions       map[string]int     `json:"dailyGrowthActions"`
	DailyInfrastructureFocus map[string]bool    `json:"dailyInfrastructureFocus"`
	DailyShipped             map[string]bool    `json:"dailyShipped"`
	DailyShipNote            map[string]string  `json:"dailyShipNote,omitempty"`
	DailyInputPost           map[string]string  `json:"dailyInputPost,omitempty"`
	DailyPostTime            map[string]string  `json:"dailyPostTime,omitempty"` // RFC3339
	DailyHours               map[string]float64 `json:"dailyHours,omitempty"`
	DailyFirstNote           map[string]string  `json:"dailyFirstNote,omitempty"`

	Stats        UserStats     `json:"stats"`
	Achievements []Achievement `json:"achievements"`

	CurrentUvs      int  `json:"currentUvs"`
	IsOnMaintenance bool `json:"isOnMaintenance"`
	MinThreshold    int  `json:"minThreshold"`
}

// Normalize replaces nil collections with empty ones so callers can index
// maps without guarding. It is applied to every state read from storage or a
// share link.
func (s *UserState) Normalize() {
	if s.History == nil {
		s.History = []HistoryPoint{}
	}
	if s.GrowthDates == nil {
		s.GrowthDates = []string{}
	}
	if s.DailyUvs == nil {
		s.DailyUvs = map[string]int{}
	}
	if s.DailyGrowthActions == nil {
		s.DailyGrowthActions = map[string]int{}
	}
	if s.DailyInfrastructureFocus == nil {
		s.DailyInfrastructureFocus = map[string]bool{}
	}
	if s.DailyShipped == nil {
		s.DailyShipped = map[string]bool{}
	}
	if s.DailyShipNote == nil {
		s.DailyShipNote = map[string]string{}
	}
	if s.DailyInputPost == nil {
		s.DailyInputPost = map[string]string{}
	}
	if s.DailyPostTime == nil {
		s.DailyPostTime = map[string]string{}
	}
	if s.DailyHours == nil {
		s.DailyHours = map[string]float64{}
	}
	if s.DailyFirstNote == nil {
		s.DailyFirstNote = map[string]string{}
	}
	if s.Achievements == nil {
		s.Achievements = []Achievement{}
	}
}

// HasGrowthDate reports whether day is already in GrowthDates.
func (s *UserState) HasGrowthDate(day string) bool {
	for _, d := range s.GrowthDates {
		if d == day {
			return true
		}
	}
	return false
}

// TotalLoops sums DailyUvs across every day.
func (s *UserState) TotalLoops() int {
	total := 0
	for _, v := range s.DailyUvs {
		total += v
	}
	return total
}

// Clone returns a deep copy of s.
func (s *UserState) Clone() UserState {
	out := *s
	out.History = append([]HistoryPoint(nil), s.History...)
	out.GrowthDates = append([]string(nil), s.GrowthDates...)
	out.Achievements = append([]Achievement(nil), s.Achievements...)
	out.DailyUvs = cloneMap(s.DailyUvs)
	out.DailyGrowthActions = cloneMap(s.DailyGrowthActions)
	out.DailyInfrastructureFocus = cloneMap(s.DailyInfrastructureFocus)
	out.DailyShipped = cloneMap(s.DailyShipped)
	out.DailyShipNote = cloneMap(s.DailyShipNote)
	out.DailyInputPost = cloneMap(s.DailyInputPost)
	out.DailyPostTime = cloneMap(s.DailyPostTime)
	out.DailyHours = cloneMap(s.DailyHours)
	out.DailyFirstNote = cloneMap(s.DailyFirstNote)
	out.Normalize()
	return out
}

func cloneMap[V any](m map[string]V) map[string]V {
	if m == nil {
		return nil
	}
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// DefaultAchievements returns the starting achievement set.
func DefaultAchievements() []Achievement {
	return []Achievement{
		{ID: AchievementSurvival3, Title: "Survival Instinct", Description: "Maintain growth activity for 3 consecutive days", Icon: "🩸", Progress: 0, Target: 3, Category: CategorySurvival},
		{ID: AchievementSurvival7, Title: "Default Alive", Description: "Maintain growth activity for 7 consecutive days", Icon: "🔥", Progress: 0, Target: 7, Category: CategorySurvival},
		{ID: AchievementLoops10k, Title: "The Network Effect", Description: "Log 10,000 total loops", Icon: "📈", Progress: 24, Target: 10000, Category: CategoryVolume},
		{ID: AchievementMorning30, Title: "First Mover", Description: "Log 30 growth logs before 9AM", Icon: "☀️", Progress: 12, Target: 30, Category: CategoryConsistency},
	}
}

// DefaultUserState returns the first-run state. It seeds a single active day
// on yesterday so a new user starts with a live streak.
func DefaultUserState(yesterday string) UserState {
	s := UserState{
		DefaultKpi:               "Unique Visitors",
		GrowthObjective:          "INCREASE DAILY UNIQUE VISITORS",
		MinThreshold:             100,
		GrowthDates:              []string{yesterday},
		DailyUvs:                 map[string]int{yesterday: 5},
		DailyGrowthActions:       map[string]int{yesterday: 5},
		DailyInfrastructureFocus: map[string]bool{yesterday: false},
		DailyShipped:             map[string]bool{yesterday: true},
		Stats: UserStats{
			AvgUvPerDay:          4,
			ConversionResilience: 4.2,
			MorningShipments:     12,
			TotalUniqueVisitors:  24,
			TotalChurnedLeads:    890,
		},
		Achievements: DefaultAchievements(),
	}
	s.Normalize()
	return s
}
