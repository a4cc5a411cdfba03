// Package discovery lists people the user could follow.
package discovery

import (
	"strings"

	"github.com/julianstephens/growthlog/internal/constants"
	"github.com/julianstephens/growthlog/internal/models"
	"github.com/julianstephens/growthlog/internal/sharelink"
)

// Build returns group members the user does not follow yet, then people from
// collected community follow links. Self and followed names are skipped, and
// invalid links are dropped.
func Build(groups map[string]models.Group, following map[string]models.FollowedPerson, links []string, currentName string) []models.DiscoverablePerson {
	followed := models.FollowedNames(following)
	seen := make(map[string]bool)
	out := []models.DiscoverablePerson{}

	for _, g := range models.SortedGroups(groups) {
		for _, m := range g.Members {
			if m.Name == currentName || followed[m.Name] {
				continue
			}
			key := "group_" + m.ID
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, models.DiscoverablePerson{
				ID:        m.ID,
				Name:      m.Name,
				UserState: m.UserState,
				Source:    models.SourceGroup,
			})
		}
	}

	for _, link := range links {
		kind, code, ok := sharelink.ParseLink(link)
		if !ok || kind != sharelink.KindFollow {
			continue
		}
		p, ok := sharelink.DecodeProfile(code)
		if !ok || p.Name == currentName || followed[p.Name] {
			continue
		}
		key := "community_" + p.Name
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, models.DiscoverablePerson{
			ID:        constants.CommunityIDPrefix + p.Name,
			Name:      p.Name,
			UserState: p.UserState,
			Source:    models.SourceCommunity,
		})
	}

	return out
}

// Filter keeps the people whose name contains query, ignoring case. A blank
// query keeps everyone.
func Filter(people []models.DiscoverablePerson, query string) []models.DiscoverablePerson {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return people
	}
	var out []models.DiscoverablePerson
	for _, p := range people {
		if strings.Contains(strings.ToLower(p.Name), q) {
			out = append(out, p)
		}
	}
	return out
}
