package models

import (
	"sort"
	"time"
)

// GroupMember is one person inside a group, carrying a snapshot of their state.
type GroupMember struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	UserState UserState `json:"userState"`
}

// Group is a named accountability group.
type Group struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Members   []GroupMember `json:"members"`
	CreatedAt time.Time     `json:"createdAt"`
}

// FollowedPerson is someone the user follows through a follow link.
type FollowedPerson struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	UserState  UserState `json:"userState"`
	FollowedAt time.Time `json:"followedAt"`
}

// TrackedPerson is the common view of a group member or followed person.
type TrackedPerson struct {
	ID        string
	Name      string
	UserState UserState
}

// DiscoverySource says where a discoverable person came from.
type DiscoverySource string

const (
	SourceGroup     DiscoverySource = "group"
	SourceCommunity DiscoverySource = "community"
)

// DiscoverablePerson is a candidate to follow.
type DiscoverablePerson struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	UserState UserState       `json:"userState"`
	Source    DiscoverySource `json:"source"`
}

// SortedGroups returns the groups ordered by creation time, then ID.
func SortedGroups(groups map[string]Group) []Group {
	out := make([]Group, 0, len(groups))
	for _, g := range groups {
		out = append(out, g)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// SortedFollowing returns followed people ordered by follow time, then ID.
func SortedFollowing(following map[string]FollowedPerson) []FollowedPerson {
	out := make([]FollowedPerson, 0, len(following))
	for _, p := range following {
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].FollowedAt.Equal(out[j].FollowedAt) {
			return out[i].FollowedAt.Before(out[j].FollowedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// FindFollowedByName returns the followed person with the given name.
func FindFollowedByName(following map[string]FollowedPerson, name string) (FollowedPerson, bool) {
	for _, p := range SortedFollowing(following) {
		if p.Name == name {
			return p, true
		}
	}
	return FollowedPerson{}, false
}

// FollowedNames returns the set of names the user follows.
func FollowedNames(following map[string]FollowedPerson) map[string]bool {
	names := make(map[string]bool, len(following))
	for _, p := range following {
		names[p.Name] = true
	}
	return names
}
