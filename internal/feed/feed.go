// Package feed builds the activity feed of followed people and group members.
package feed

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/growthlog/internal/models"
)

// EventID returns the dedup key of a person's activity on a day.
func EventID(personID, day string, typ models.ActivityType) string {
	return fmt.Sprintf("%s_%s_%s", personID, day, typ)
}

// Roster flattens followed people and group members into one list,
// followed people first. Groups are visited in creation order and members
// keep their roster order.
func Roster(following map[string]models.FollowedPerson, groups map[string]models.Group) []models.TrackedPerson {
	var people []models.TrackedPerson
	for _, p := range models.SortedFollowing(following) {
		people = append(people, models.TrackedPerson{ID: p.ID, Name: p.Name, UserState: p.UserState})
	}
	for _, g := range models.SortedGroups(groups) {
		for _, m := range g.Members {
			people = append(people, models.TrackedPerson{ID: m.ID, Name: m.Name, UserState: m.UserState})
		}
	}
	return people
}

// Build returns today's feed for people, skipping anyone named excludeName.
// Events are deduplicated by EventID, first seen wins, and sorted by date
// descending then type priority.
func Build(people []models.TrackedPerson, excludeName, today string) []models.ActivityEvent {
	var events []models.ActivityEvent
	seen := make(map[string]bool)

	add := func(p models.TrackedPerson, ev models.ActivityEvent) {
		ev.ID = EventID(p.ID, today, ev.Type)
		if seen[ev.ID] {
			return
		}
		seen[ev.ID] = true
		ev.PersonID = p.ID
		ev.PersonName = p.Name
		ev.Date = today
		events = append(events, ev)
	}

	for _, p := range people {
		if p.Name == excludeName {
			continue
		}
		s := p.UserState

		if s.IsOnMaintenance {
			add(p, models.ActivityEvent{Type: models.ActivityBreak})
		}
		if s.DailyShipped[today] {
			add(p, models.ActivityEvent{Type: models.ActivityShip, Note: s.DailyShipNote[today]})
		}
		if loops := s.DailyUvs[today]; loops > 0 {
			add(p, models.ActivityEvent{Type: models.ActivityLoops, Value: loops})
		}
		if post := s.DailyInputPost[today]; strings.TrimSpace(post) != "" {
			add(p, models.ActivityEvent{
				Type:  models.ActivityPost,
				Note:  post,
				Time:  s.DailyPostTime[today],
				Hours: s.DailyHours[today],
			})
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Date != events[j].Date {
			return events[i].Date > events[j].Date
		}
		return events[i].Type.Priority() < events[j].Type.Priority()
	})
	return events
}

// Describe renders an event as one line of feed text.
func Describe(e models.ActivityEvent) string {
	switch e.Type {
	case models.ActivityShip:
		if e.Note != "" {
			return fmt.Sprintf("🚀 %s shipped: %s", e.PersonName, e.Note)
		}
		return fmt.Sprintf("🚀 %s kept the honor code", e.PersonName)
	case models.ActivityLoops:
		return fmt.Sprintf("📈 %s logged %d loop(s)", e.PersonName, e.Value)
	case models.ActivityBreak:
		return fmt.Sprintf("🛠  %s is on a break day", e.PersonName)
	case models.ActivityPost:
		at := ""
		if t, err := time.Parse(time.RFC3339, e.Time); err == nil {
			at = " at " + t.Format("15:04")
		}
		text := strings.TrimSpace(e.Note)
		if e.Hours > 0 {
			return fmt.Sprintf("✍️  %s posted%s (%.2fh): %s", e.PersonName, at, e.Hours, text)
		}
		return fmt.Sprintf("✍️  %s posted%s: %s", e.PersonName, at, text)
	}
	return fmt.Sprintf("%s: %s", e.PersonName, e.Type)
}
