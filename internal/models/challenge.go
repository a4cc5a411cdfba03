package models

import "fmt"

// ChallengeType is the metric a challenge measures.
type ChallengeType string

const (
	ChallengeWeeklyShip  ChallengeType = "weekly_ship"
	ChallengeWeeklyLoops ChallengeType = "weekly_loops"
	ChallengeStreak      ChallengeType = "streak"
)

// Challenge is a time-boxed goal.
type Challenge struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Type      ChallengeType `json:"type"`
	Target    int           `json:"target"`
	StartDate string        `json:"startDate"` // YYYY-MM-DD
	EndDate   string        `json:"endDate"`   // YYYY-MM-DD
}

func (c *Challenge) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("challenge id cannot be empty")
	}
	if c.Target < 0 {
		return fmt.Errorf("challenge target cannot be negative")
	}
	if c.StartDate > c.EndDate {
		return fmt.Errorf("challenge %s ends before it starts", c.ID)
	}
	return nil
}
