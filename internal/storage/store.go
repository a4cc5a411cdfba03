package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/julianstephens/growthlog/internal/challenges"
	"github.com/julianstephens/growthlog/internal/constants"
	"github.com/julianstephens/growthlog/internal/logger"
	"github.com/julianstephens/growthlog/internal/models"
	"github.com/julianstephens/growthlog/internal/utils"
)

// Store is the typed document layer over a Provider. Every document is read
// and written whole. A document that fails to parse falls back to its default
// and is logged, never returned as an error.
type Store struct {
	provider Provider
	mu       sync.Mutex
}

func NewStore(p Provider) *Store {
	return &Store{provider: p}
}

// Provider returns the backend the store writes through.
func (s *Store) Provider() Provider {
	return s.provider
}

// readDoc decodes the document at key into v. It reports false when the
// document is missing or unreadable, in which case v must be left to the
// caller's default.
func (s *Store) readDoc(key string, v any) bool {
	raw, err := s.provider.Get(key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			logger.Warn("Failed to read document", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal(raw, v); err != nil {
		logger.Warn("Corrupt document, using default", "key", key, "error", err)
		return false
	}
	return true
}

func (s *Store) writeDoc(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to serialize %s: %w", key, err)
	}
	if err := s.provider.Put(key, data); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

// --- User state ---

// UserState returns the stored state, or the first-run default.
func (s *Store) UserState(now time.Time) models.UserState {
	var st models.UserState
	if !s.readDoc(constants.KeyUserState, &st) {
		return models.DefaultUserState(utils.Yesterday(now))
	}
	st.Normalize()
	return st
}

func (s *Store) SaveUserState(st models.UserState) error {
	return s.writeDoc(constants.KeyUserState, st)
}

// --- Display name ---

// DisplayName returns the user's name, "You" when unset.
func (s *Store) DisplayName() string {
	raw, err := s.provider.Get(constants.KeyDisplayName)
	if err != nil {
		return constants.DefaultDisplayName
	}
	var name string
	if err := json.Unmarshal(raw, &name); err != nil {
		// Older stores kept the bare string.
		name = string(raw)
	}
	if name = strings.TrimSpace(name); name == "" {
		return constants.DefaultDisplayName
	}
	return name
}

// SetDisplayName stores name trimmed, or "You" when it is blank.
func (s *Store) SetDisplayName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		name = constants.DefaultDisplayName
	}
	return s.writeDoc(constants.KeyDisplayName, name)
}

// --- Groups ---

func (s *Store) Groups() map[string]models.Group {
	groups := map[string]models.Group{}
	if !s.readDoc(constants.KeyGroups, &groups) || groups == nil {
		return map[string]models.Group{}
	}
	for id, g := range groups {
		for i := range g.Members {
			g.Members[i].UserState.Normalize()
		}
		groups[id] = g
	}
	return groups
}

func (s *Store) SaveGroups(groups map[string]models.Group) error {
	return s.writeDoc(constants.KeyGroups, groups)
}

// CreateGroup stores a new group whose only member is the creator.
func (s *Store) CreateGroup(name, creatorName string, creatorState models.UserState, now time.Time) (models.Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Group{}, fmt.Errorf("group name cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	g := models.Group{
		ID:   utils.NewID(constants.GroupIDPrefix),
		Name: name,
		Members: []models.GroupMember{
			{ID: utils.NewID(constants.MemberIDPrefix), Name: creatorName, UserState: creatorState},
		},
		CreatedAt: now.UTC(),
	}
	groups := s.Groups()
	groups[g.ID] = g
	if err := s.SaveGroups(groups); err != nil {
		return models.Group{}, err
	}
	return g, nil
}

// PutGroup inserts or replaces a whole group.
func (s *Store) PutGroup(g models.Group) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	groups := s.Groups()
	groups[g.ID] = g
	return s.SaveGroups(groups)
}

// UpdateGroupMembers replaces the member list of an existing group.
func (s *Store) UpdateGroupMembers(id string, members []models.GroupMember) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	groups := s.Groups()
	g, ok := groups[id]
	if !ok {
		return fmt.Errorf("group %s: %w", id, ErrNotFound)
	}
	g.Members = members
	groups[id] = g
	return s.SaveGroups(groups)
}

func (s *Store) DeleteGroup(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	groups := s.Groups()
	if _, ok := groups[id]; !ok {
		return fmt.Errorf("group %s: %w", id, ErrNotFound)
	}
	delete(groups, id)
	return s.SaveGroups(groups)
}

// --- Following ---

func (s *Store) Following() map[string]models.FollowedPerson {
	following := map[string]models.FollowedPerson{}
	if !s.readDoc(constants.KeyFollowing, &following) || following == nil {
		return map[string]models.FollowedPerson{}
	}
	for id, p := range following {
		p.UserState.Normalize()
		following[id] = p
	}
	return following
}

func (s *Store) saveFollowing(following map[string]models.FollowedPerson) error {
	return s.writeDoc(constants.KeyFollowing, following)
}

// AddFollowed stores a followed person under id, stamping the follow time.
func (s *Store) AddFollowed(id, name string, state models.UserState, now time.Time) (models.FollowedPerson, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := models.FollowedPerson{ID: id, Name: name, UserState: state, FollowedAt: now.UTC()}
	following := s.Following()
	following[id] = p
	if err := s.saveFollowing(following); err != nil {
		return models.FollowedPerson{}, err
	}
	return p, nil
}

// UpdateFollowed replaces the state snapshot of a followed person.
func (s *Store) UpdateFollowed(id string, state models.UserState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	following := s.Following()
	p, ok := following[id]
	if !ok {
		return fmt.Errorf("followed person %s: %w", id, ErrNotFound)
	}
	p.UserState = state
	following[id] = p
	return s.saveFollowing(following)
}

func (s *Store) RemoveFollowed(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	following := s.Following()
	if _, ok := following[id]; !ok {
		return fmt.Errorf("followed person %s: %w", id, ErrNotFound)
	}
	delete(following, id)
	return s.saveFollowing(following)
}

// --- Kudos ---

func (s *Store) Kudos() []models.Kudos {
	var kudos []models.Kudos
	if !s.readDoc(constants.KeyKudos, &kudos) {
		return []models.Kudos{}
	}
	return kudos
}

// AddKudos sets the user's single reaction on an activity, replacing any earlier one.
func (s *Store) AddKudos(activityKey, emoji string) error {
	if !models.ValidEmoji(emoji) {
		return fmt.Errorf("unsupported reaction %q", emoji)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	kudos := withoutKudos(s.Kudos(), activityKey)
	kudos = append(kudos, models.Kudos{ActivityKey: activityKey, Emoji: emoji})
	return s.writeDoc(constants.KeyKudos, kudos)
}

func (s *Store) RemoveKudos(activityKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.writeDoc(constants.KeyKudos, withoutKudos(s.Kudos(), activityKey))
}

// FindKudos returns the user's reaction on an activity, if any.
func (s *Store) FindKudos(activityKey string) (models.Kudos, bool) {
	for _, k := range s.Kudos() {
		if k.ActivityKey == activityKey {
			return k, true
		}
	}
	return models.Kudos{}, false
}

func withoutKudos(kudos []models.Kudos, activityKey string) []models.Kudos {
	out := make([]models.Kudos, 0, len(kudos))
	for _, k := range kudos {
		if k.ActivityKey != activityKey {
			out = append(out, k)
		}
	}
	return out
}

// --- Comments ---

func (s *Store) allComments() []models.ActivityComment {
	var comments []models.ActivityComment
	if !s.readDoc(constants.KeyComments, &comments) {
		return []models.ActivityComment{}
	}
	return comments
}

// Comments returns the comments on an activity, oldest first.
func (s *Store) Comments(activityKey string) []models.ActivityComment {
	var out []models.ActivityComment
	for _, c := range s.allComments() {
		if c.ActivityKey == activityKey {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out
}

// AddComment appends a comment to an activity.
func (s *Store) AddComment(activityKey, author, text string, now time.Time) (models.ActivityComment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.ActivityComment{}, fmt.Errorf("comment cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := models.ActivityComment{
		ID:          utils.NewID(constants.CommentIDPrefix),
		ActivityKey: activityKey,
		Author:      author,
		Text:        text,
		Timestamp:   now.UTC(),
	}
	comments := append(s.allComments(), c)
	if err := s.writeDoc(constants.KeyComments, comments); err != nil {
		return models.ActivityComment{}, err
	}
	return c, nil
}

// --- Challenges ---

// Challenges returns the stored challenges, or this week's defaults when
// none are stored.
func (s *Store) Challenges(now time.Time) []models.Challenge {
	var list []models.Challenge
	if !s.readDoc(constants.KeyChallenges, &list) || len(list) == 0 {
		return challenges.Defaults(now)
	}
	return list
}

func (s *Store) SaveChallenges(list []models.Challenge) error {
	for i := range list {
		if err := list[i].Validate(); err != nil {
			return err
		}
	}
	return s.writeDoc(constants.KeyChallenges, list)
}

// ResetChallenges drops stored challenges so the next read returns the defaults.
func (s *Store) ResetChallenges() error {
	err := s.provider.Delete(constants.KeyChallenges)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	return nil
}

// --- Discovery list ---

// DiscoveryList returns the community follow links the user has collected.
func (s *Store) DiscoveryList() []string {
	var links []string
	if !s.readDoc(constants.KeyDiscoveryList, &links) {
		return []string{}
	}
	return links
}

// AddToDiscoveryList appends link unless it is already present.
func (s *Store) AddToDiscoveryList(link string) error {
	link = strings.TrimSpace(link)
	if link == "" {
		return fmt.Errorf("link cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	links := s.DiscoveryList()
	for _, l := range links {
		if l == link {
			return nil
		}
	}
	return s.writeDoc(constants.KeyDiscoveryList, append(links, link))
}

// --- Settings ---

// Settings returns user preferences with defaults applied. The display name
// comes from its own document.
func (s *Store) Settings() models.Settings {
	var settings models.Settings
	s.readDoc(constants.KeySettings, &settings)
	settings.DisplayName = s.DisplayName()
	models.ApplyDefaultSettings(&settings)
	return settings
}

func (s *Store) SaveSettings(settings models.Settings) error {
	if settings.Timezone != "" && !utils.ValidateTimezone(settings.Timezone) {
		return fmt.Errorf("invalid timezone: %s", settings.Timezone)
	}
	if err := s.SetDisplayName(settings.DisplayName); err != nil {
		return err
	}
	return s.writeDoc(constants.KeySettings, models.Settings{Timezone: settings.Timezone})
}
