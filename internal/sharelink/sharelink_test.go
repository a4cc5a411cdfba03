package sharelink

import (
	"encoding/base64"
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/julianstephens/growthlog/internal/models"
)

func sampleState() models.UserState {
	s := models.DefaultUserState("2025-02-11")
	s.DailyShipNote["2025-02-11"] = "shipped the café page ✨"
	s.DailyInputPost["2025-02-11"] = "50% done & counting +1"
	return s
}

// jsStyle mimics btoa(encodeURIComponent(json)): standard alphabet with padding.
func jsStyle(json string) string {
	escaped := strings.ReplaceAll(url.QueryEscape(json), "+", "%20")
	return base64.StdEncoding.EncodeToString([]byte(escaped))
}

func TestGroupRoundTrip(t *testing.T) {
	p := GroupPayload{
		ID:   "g_1",
		Name: "Night Owls",
		Members: []models.GroupMember{
			{ID: "m_1", Name: "Ana", UserState: sampleState()},
			{ID: "m_2", Name: "Bo", UserState: sampleState()},
		},
	}

	code := EncodeGroup(p)
	if strings.ContainsAny(code, "+/=") {
		t.Errorf("EncodeGroup() produced non URL-safe code %q", code)
	}

	got, ok := DecodeGroup(code)
	if !ok {
		t.Fatal("DecodeGroup() failed on its own encoding")
	}
	if diff := cmp.Diff(p, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestProfileRoundTrip(t *testing.T) {
	p := ProfilePayload{Name: "Zoë", UserState: sampleState()}

	got, ok := DecodeProfile(EncodeProfile(p))
	if !ok {
		t.Fatal("DecodeProfile() failed on its own encoding")
	}
	if diff := cmp.Diff(p, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeProfile_JavaScriptCodes(t *testing.T) {
	code := jsStyle(`{"name":"Ana Lu","userState":{"growthDates":["2025-02-12"],"dailyUvs":{"2025-02-12":3}}}`)

	tests := []struct {
		name string
		code string
	}{
		{"padded standard alphabet", code},
		{"unpadded", strings.TrimRight(code, "=")},
		{"plus turned into space", strings.ReplaceAll(code, "+", " ")},
		{"trailing newline", code + "\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := DecodeProfile(tt.code)
			if !ok {
				t.Fatalf("DecodeProfile(%q) failed", tt.code)
			}
			if p.Name != "Ana Lu" || p.UserState.DailyUvs["2025-02-12"] != 3 {
				t.Errorf("DecodeProfile() = %+v", p)
			}
			if p.UserState.DailyShipped == nil {
				t.Error("decoded state was not normalized")
			}
		})
	}
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name string
		code string
	}{
		{"empty", ""},
		{"not base64", "!!!notbase64!!!"},
		{"bad escape", base64.StdEncoding.EncodeToString([]byte("%zz"))},
		{"not json", base64.StdEncoding.EncodeToString([]byte("hello"))},
		{"json array", jsStyle(`[1,2,3]`)},
		{"json null", jsStyle(`null`)},
		{"json string", jsStyle(`"Ana"`)},
		{"missing required fields", jsStyle(`{}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := DecodeGroup(tt.code); ok {
				t.Errorf("DecodeGroup(%q) succeeded", tt.code)
			}
			if _, ok := DecodeProfile(tt.code); ok {
				t.Errorf("DecodeProfile(%q) succeeded", tt.code)
			}
		})
	}
}

func TestDecodeGroup_RequiresIDAndName(t *testing.T) {
	if _, ok := DecodeGroup(jsStyle(`{"name":"No ID","members":[]}`)); ok {
		t.Error("group without id decoded")
	}
	if _, ok := DecodeGroup(jsStyle(`{"id":"g_1","members":[]}`)); ok {
		t.Error("group without name decoded")
	}

	p, ok := DecodeGroup(jsStyle(`{"id":"g_1","name":"Crew"}`))
	if !ok {
		t.Fatal("minimal group failed to decode")
	}
	if p.Members == nil {
		t.Error("missing members should decode as empty slice")
	}
}

func TestLinks(t *testing.T) {
	g := models.Group{ID: "g_1", Name: "Crew"}

	link := JoinLink("https://example.com/app", g)
	kind, code, ok := ParseLink(link)
	if !ok || kind != KindJoin {
		t.Fatalf("ParseLink(%q) = %v, %v", link, kind, ok)
	}
	if p, ok := DecodeGroup(code); !ok || p.ID != "g_1" {
		t.Errorf("DecodeGroup() = %+v, %v", p, ok)
	}

	link = FollowLink("", "Ana", sampleState())
	if !strings.HasPrefix(link, "https://growthlog.app/?follow=") {
		t.Errorf("FollowLink() = %q", link)
	}
	kind, code, ok = ParseLink(link)
	if !ok || kind != KindFollow {
		t.Fatalf("ParseLink(%q) = %v, %v", link, kind, ok)
	}
	if p, ok := DecodeProfile(code); !ok || p.Name != "Ana" {
		t.Errorf("DecodeProfile() = %+v, %v", p, ok)
	}
}

func TestParseLink(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantKind Kind
		wantCode string
		wantOK   bool
	}{
		{"relative follow", "?follow=abc", KindFollow, "abc", true},
		{"path with join", "/app?join=xyz", KindJoin, "xyz", true},
		{"join wins over follow", "https://x.test/?follow=a&join=b", KindJoin, "b", true},
		{"no share param", "https://x.test/?ref=1", "", "", false},
		{"empty param", "https://x.test/?follow=", "", "", false},
		{"garbage", "%%%", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, code, ok := ParseLink(tt.raw)
			if kind != tt.wantKind || code != tt.wantCode || ok != tt.wantOK {
				t.Errorf("ParseLink(%q) = (%q, %q, %v), want (%q, %q, %v)", tt.raw, kind, code, ok, tt.wantKind, tt.wantCode, tt.wantOK)
			}
		})
	}
}

func TestSparseRoundTripEqualUpToEmpty(t *testing.T) {
	sparse := models.UserState{
		GrowthDates: []string{"2025-02-10", "2025-02-11"},
		DailyUvs:    map[string]int{"2025-02-11": 4},
	}

	tests := []struct {
		name   string
		decode func() (any, any, bool)
	}{
		{"group without members", func() (any, any, bool) {
			p := GroupPayload{ID: "g_1", Name: "Night Owls"}
			got, ok := DecodeGroup(EncodeGroup(p))
			return p, got, ok
		}},
		{"group with sparse member", func() (any, any, bool) {
			p := GroupPayload{ID: "g_1", Name: "Night Owls", Members: []models.GroupMember{{ID: "m_1", Name: "Ana", UserState: sparse}}}
			got, ok := DecodeGroup(EncodeGroup(p))
			return p, got, ok
		}},
		{"sparse profile", func() (any, any, bool) {
			p := ProfilePayload{Name: "Ana", UserState: sparse}
			got, ok := DecodeProfile(EncodeProfile(p))
			return p, got, ok
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want, got, ok := tt.decode()
			if !ok {
				t.Fatal("decode failed on its own encoding")
			}
			if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseLinks(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []Link
	}{
		{"both, join first", "https://x.test/?follow=a&join=b", []Link{{KindJoin, "b"}, {KindFollow, "a"}}},
		{"follow only", "?follow=abc", []Link{{KindFollow, "abc"}}},
		{"empty join skipped", "?join=&follow=abc", []Link{{KindFollow, "abc"}}},
		{"none", "https://x.test/", nil},
		{"garbage", "%%%", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, ParseLinks(tt.raw)); diff != "" {
				t.Errorf("ParseLinks(%q) mismatch (-want +got):\n%s", tt.raw, diff)
			}
		})
	}
}
