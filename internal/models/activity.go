package models

import "time"

// ActivityType is the kind of feed event.
type ActivityType string

const (
	ActivityShip  ActivityType = "ship"
	ActivityLoops ActivityType = "loops"
	ActivityBreak ActivityType = "break"
	ActivityPost  ActivityType = "post"
)

// Valid reports whether t is a known activity type.
func (t ActivityType) Valid() bool {
	switch t {
	case ActivityShip, ActivityLoops, ActivityBreak, ActivityPost:
		return true
	}
	return false
}

// Priority orders events of the same date. Lower sorts first.
func (t ActivityType) Priority() int {
	switch t {
	case ActivityShip:
		return 0
	case ActivityLoops:
		return 1
	case ActivityBreak:
		return 2
	case ActivityPost:
		return 3
	}
	return 4
}

// ActivityEvent is one entry in the feed.
type ActivityEvent struct {
	ID         string       `json:"id"`
	PersonID   string       `json:"personId"`
	PersonName string       `json:"personName"`
	Type       ActivityType `json:"type"`
	Date       string       `json:"date"`
	Time       string       `json:"time,omitempty"`  // RFC3339, posts only
	Value      int          `json:"value,omitempty"` // loop count
	Note       string       `json:"note,omitempty"`
	Hours      float64      `json:"hours,omitempty"`
}

// Reaction emoji.
const (
	EmojiFire   = "🔥"
	EmojiRocket = "🚀"
	EmojiMuscle = "💪"
	EmojiClap   = "👏"
)

// ReactionEmoji lists the allowed reactions in display order.
var ReactionEmoji = []string{EmojiFire, EmojiRocket, EmojiMuscle, EmojiClap}

// ValidEmoji reports whether e is an allowed reaction.
func ValidEmoji(e string) bool {
	for _, r := range ReactionEmoji {
		if r == e {
			return true
		}
	}
	return false
}

// Kudos is the user's single reaction to an activity.
type Kudos struct {
	ActivityKey string `json:"activityKey"`
	Emoji       string `json:"emoji"`
}

// ActivityComment is a note attached to an activity.
type ActivityComment struct {
	ID          string    `json:"id"`
	ActivityKey string    `json:"activityKey"`
	Author      string    `json:"author"`
	Text        string    `json:"text"`
	Timestamp   time.Time `json:"timestamp"`
}
