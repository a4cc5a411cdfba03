// Package sharelink encodes groups and profiles into self-contained link
// codes. A code is JSON, percent-escaped, then base64 encoded. There is no
// signature; anyone holding a link can read and forge it.
package sharelink

import (
	"encoding/base64"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/julianstephens/growthlog/internal/constants"
	"github.com/julianstephens/growthlog/internal/models"
)

// Kind identifies which query parameter a link carries.
type Kind string

const (
	KindJoin   Kind = constants.JoinParam
	KindFollow Kind = constants.FollowParam
)

// GroupPayload is the content of a join link.
type GroupPayload struct {
	ID      string               `json:"id"`
	Name    string               `json:"name"`
	Members []models.GroupMember `json:"members"`
}

// ProfilePayload is the content of a follow link.
type ProfilePayload struct {
	Name      string           `json:"name"`
	UserState models.UserState `json:"userState"`
}

// GroupPayloadFrom builds a payload from a stored group.
func GroupPayloadFrom(g models.Group) GroupPayload {
	return GroupPayload{ID: g.ID, Name: g.Name, Members: g.Members}
}

// EncodeGroup returns the join code for p.
func EncodeGroup(p GroupPayload) string {
	if p.Members == nil {
		p.Members = []models.GroupMember{}
	}
	return encode(p)
}

// EncodeProfile returns the follow code for p.
func EncodeProfile(p ProfilePayload) string {
	return encode(p)
}

// DecodeGroup decodes a join code. It reports false for any malformed code
// or a payload missing its id or name. Missing collections come back empty,
// so a round trip is exact up to nil versus empty.
func DecodeGroup(code string) (GroupPayload, bool) {
	var p GroupPayload
	if !decode(code, &p) {
		return GroupPayload{}, false
	}
	if p.ID == "" || p.Name == "" {
		return GroupPayload{}, false
	}
	if p.Members == nil {
		p.Members = []models.GroupMember{}
	}
	for i := range p.Members {
		p.Members[i].UserState.Normalize()
	}
	return p, true
}

// DecodeProfile decodes a follow code. It reports false for any malformed
// code or a payload without a name. The state is normalized like a stored one.
func DecodeProfile(code string) (ProfilePayload, bool) {
	var p ProfilePayload
	if !decode(code, &p) {
		return ProfilePayload{}, false
	}
	if p.Name == "" {
		return ProfilePayload{}, false
	}
	p.UserState.Normalize()
	return p, true
}

// JoinLink returns base with a join parameter for g.
func JoinLink(base string, g models.Group) string {
	return withParam(base, KindJoin, EncodeGroup(GroupPayloadFrom(g)))
}

// FollowLink returns base with a follow parameter for the named profile.
func FollowLink(base, name string, state models.UserState) string {
	return withParam(base, KindFollow, EncodeProfile(ProfilePayload{Name: name, UserState: state}))
}

// Link is one share parameter found in a link.
type Link struct {
	Kind Kind
	Code string
}

// ParseLinks extracts every share parameter from a full or relative link,
// join before follow.
func ParseLinks(raw string) []Link {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil
	}
	q := u.Query()
	var links []Link
	for _, kind := range []Kind{KindJoin, KindFollow} {
		if code := q.Get(string(kind)); code != "" {
			links = append(links, Link{Kind: kind, Code: code})
		}
	}
	return links
}

// ParseLink returns the first share parameter of a link.
func ParseLink(raw string) (Kind, string, bool) {
	links := ParseLinks(raw)
	if len(links) == 0 {
		return "", "", false
	}
	return links[0].Kind, links[0].Code, true
}

func withParam(base string, kind Kind, code string) string {
	if base == "" {
		base = constants.DefaultShareBaseURL
	}
	u, err := url.Parse(base)
	if err != nil {
		return base + "?" + string(kind) + "=" + code
	}
	q := u.Query()
	q.Set(string(kind), code)
	u.RawQuery = q.Encode()
	return u.String()
}

// encode returns "" when v holds a value JSON cannot represent, such as a
// NaN hours entry.
func encode(v any) string {
	raw, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString([]byte(url.PathEscape(string(raw))))
}

// decode accepts both base64 alphabets with or without padding. Query
// decoding turns '+' into a space, so spaces are read back as '+'.
func decode(code string, v any) bool {
	code = strings.ReplaceAll(strings.Trim(code, "\t\r\n"), " ", "+")
	if code == "" {
		return false
	}
	code = strings.TrimRight(code, "=")
	code = strings.NewReplacer("-", "+", "_", "/").Replace(code)

	escaped, err := base64.RawStdEncoding.DecodeString(code)
	if err != nil {
		return false
	}
	plain, err := url.PathUnescape(string(escaped))
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(plain), v) == nil
}
