// Package importer applies join and follow links to the local store.
package importer

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/growthlog/internal/constants"
	"github.com/julianstephens/growthlog/internal/logger"
	"github.com/julianstephens/growthlog/internal/models"
	"github.com/julianstephens/growthlog/internal/sharelink"
	"github.com/julianstephens/growthlog/internal/storage"
	"github.com/julianstephens/growthlog/internal/utils"
	"github.com/julianstephens/growthlog/internal/validation"
)

// ErrIgnored is returned for a link whose code cannot be decoded. Callers
// drop the link silently.
var ErrIgnored = errors.New("share link ignored")

// Outcome says what an import did.
type Outcome int

const (
	// Updated means an existing group or followed person was refreshed in place.
	Updated Outcome = iota
	// NeedsConfirmation means the caller must Accept the pending import.
	NeedsConfirmation
)

// Result describes one processed link. Exactly one of Join and Follow is
// set when Outcome is NeedsConfirmation.
type Result struct {
	Kind    sharelink.Kind
	Outcome Outcome
	Name    string // group name or person name
	Join    *PendingJoin
	Follow  *PendingFollow
}

// Importer applies decoded links to a Store.
type Importer struct {
	store *storage.Store
	now   func() time.Time
}

// New returns an importer writing to store. now supplies timestamps in the
// configured timezone.
func New(store *storage.Store, now func() time.Time) *Importer {
	if now == nil {
		now = time.Now
	}
	return &Importer{store: store, now: now}
}

// Process dispatches a full link, or a bare code, on its parameter. A link
// carrying both parameters yields the join result only; see ProcessAll.
func (im *Importer) Process(raw string) (Result, error) {
	results, err := im.ProcessAll(raw)
	if err != nil {
		return Result{}, err
	}
	return results[0], nil
}

// ProcessAll applies every share parameter in raw, join first. Codes that
// fail to decode are skipped; ErrIgnored is returned when nothing applied.
func (im *Importer) ProcessAll(raw string) ([]Result, error) {
	links := sharelink.ParseLinks(raw)
	if len(links) == 0 {
		logger.Debug("Link has no join or follow parameter", "link", raw)
		return nil, ErrIgnored
	}

	var results []Result
	for _, link := range links {
		var (
			res Result
			err error
		)
		if link.Kind == sharelink.KindJoin {
			res, err = im.Join(link.Code)
		} else {
			res, err = im.Follow(link.Code)
		}
		if errors.Is(err, ErrIgnored) {
			continue
		}
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	if len(results) == 0 {
		return nil, ErrIgnored
	}
	return results, nil
}

// Join handles a join code. A group that already exists locally has its
// member list replaced by the link's. A new group needs confirmation.
func (im *Importer) Join(code string) (Result, error) {
	payload, ok := sharelink.DecodeGroup(code)
	if !ok {
		logger.Debug("Ignoring undecodable join code")
		return Result{}, ErrIgnored
	}
	for _, m := range payload.Members {
		im.inspect("member", m.Name, &m.UserState)
	}

	res := Result{Kind: sharelink.KindJoin, Name: payload.Name}
	if _, exists := im.store.Groups()[payload.ID]; exists {
		if err := im.store.UpdateGroupMembers(payload.ID, payload.Members); err != nil {
			return Result{}, fmt.Errorf("failed to update group %s: %w", payload.Name, err)
		}
		logger.Info("Refreshed group from join link", "group", payload.Name, "members", len(payload.Members))
		res.Outcome = Updated
		return res, nil
	}

	res.Outcome = NeedsConfirmation
	res.Join = &PendingJoin{im: im, Payload: payload}
	return res, nil
}

// Follow handles a follow code. Someone already followed under the same
// name gets the new state. A new person needs confirmation.
func (im *Importer) Follow(code string) (Result, error) {
	payload, ok := sharelink.DecodeProfile(code)
	if !ok {
		logger.Debug("Ignoring undecodable follow code")
		return Result{}, ErrIgnored
	}
	im.inspect("profile", payload.Name, &payload.UserState)

	res := Result{Kind: sharelink.KindFollow, Name: payload.Name}
	if existing, ok := models.FindFollowedByName(im.store.Following(), payload.Name); ok {
		if err := im.store.UpdateFollowed(existing.ID, payload.UserState); err != nil {
			return Result{}, fmt.Errorf("failed to update %s: %w", payload.Name, err)
		}
		logger.Info("Refreshed followed person from link", "name", payload.Name)
		res.Outcome = Updated
		return res, nil
	}

	res.Outcome = NeedsConfirmation
	res.Follow = &PendingFollow{im: im, Payload: payload}
	return res, nil
}

// inspect logs validation findings on imported state. Imports are never
// rejected for them.
func (im *Importer) inspect(kind, name string, s *models.UserState) {
	result := validation.ValidateState(s, utils.Today(im.now()))
	for _, c := range result.Conflicts {
		logger.Debug("Imported state has a conflict", kind, name, "type", c.Type, "detail", c.Description)
	}
}

// PendingJoin is a join waiting for the user to pick a name.
type PendingJoin struct {
	im      *Importer
	Payload sharelink.GroupPayload
}

// Accept joins the group as name, appending a member that carries self. The
// name also becomes the display name.
func (p *PendingJoin) Accept(name string, self models.UserState) (models.Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Group{}, fmt.Errorf("name cannot be empty")
	}

	member := models.GroupMember{ID: utils.NewID(constants.MemberIDPrefix), Name: name, UserState: self}
	members := append(append([]models.GroupMember(nil), p.Payload.Members...), member)

	store := p.im.store
	g, exists := store.Groups()[p.Payload.ID]
	if exists {
		if err := store.UpdateGroupMembers(p.Payload.ID, members); err != nil {
			return models.Group{}, err
		}
		g.Members = members
	} else {
		g = models.Group{
			ID:        p.Payload.ID,
			Name:      p.Payload.Name,
			Members:   members,
			CreatedAt: p.im.now().UTC(),
		}
		if err := store.PutGroup(g); err != nil {
			return models.Group{}, err
		}
	}

	if err := store.SetDisplayName(name); err != nil {
		return models.Group{}, err
	}
	logger.Info("Joined group", "group", g.Name, "as", name)
	return g, nil
}

// PendingFollow is a follow waiting for confirmation.
type PendingFollow struct {
	im      *Importer
	Payload sharelink.ProfilePayload
}

// Accept adds the person under a fresh id.
func (p *PendingFollow) Accept() (models.FollowedPerson, error) {
	person, err := p.im.store.AddFollowed(utils.NewID(constants.FollowIDPrefix), p.Payload.Name, p.Payload.UserState, p.im.now())
	if err != nil {
		return models.FollowedPerson{}, err
	}
	logger.Info("Followed", "name", person.Name)
	return person, nil
}

// SyncSelf copies state into every group member named name, so the user's
// own entry in each group stays current. It returns the number of members
// updated.
func (im *Importer) SyncSelf(name string, state models.UserState) (int, error) {
	groups := im.store.Groups()
	updated := 0
	for id, g := range groups {
		for i := range g.Members {
			if g.Members[i].Name == name {
				g.Members[i].UserState = state.Clone()
				updated++
			}
		}
		groups[id] = g
	}
	if updated == 0 {
		return 0, nil
	}
	if err := im.store.SaveGroups(groups); err != nil {
		return 0, err
	}
	return updated, nil
}
