package constants

// Document keys. Each key holds one whole JSON document that is read and
// written as a unit.
const (
	KeyUserState     = "deadbydefault_state_v1"
	KeyGroups        = "dbd_groups_v2"
	KeyFollowing     = "dbd_following_v1"
	KeyDisplayName   = "dbd_display_name"
	KeyKudos         = "dbd_kudos_v1"
	KeyComments      = "dbd_comments_v1"
	KeyChallenges    = "dbd_challenges_v1"
	KeyDiscoveryList = "dbd_discovery_list_v1"
	KeySettings      = "growthlog_settings_v1"
)

// Share link query parameters.
const (
	JoinParam   = "join"
	FollowParam = "follow"
)

// ID prefixes for locally minted relationship ids.
const (
	GroupIDPrefix     = "g_"
	MemberIDPrefix    = "m_"
	FollowIDPrefix    = "f_"
	CommunityIDPrefix = "c_"
	CommentIDPrefix   = "cm_"
)
