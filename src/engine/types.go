package engine

import (
	"context"
	"time"

	"github.com/stake-plus/nameguard/src/records"
)

// Candidate is the member whose identity just changed.
type Candidate struct {
	GuildID   string
	GuildName string
	UserID    string
	Username  string
	// Nickname is empty when the member has no guild nickname.
	Nickname string
	RoleIDs  []string
}

// Member is a current holder of a protected role.
type Member struct {
	UserID   string
	Username string
	Nickname string
}

// DisplayName is the nickname if set, else the username.
func (m Member) DisplayName() string {
	if m.Nickname != "" {
		return m.Nickname
	}
	return m.Username
}

// ConfigSource is the read side of records.Store.
type ConfigSource interface {
	ListByTypeAndServer(ctx context.Context, t records.ObjectType, serverID string) ([]records.ConfigRecord, error)
}

// Directory answers membership and hierarchy questions about a guild.
type Directory interface {
	MembersWithRoles(ctx context.Context, guildID string, roleIDs []string) ([]Member, error)
	IsBannable(ctx context.Context, guildID, userID string) (bool, error)
}

// Actor performs the side effects of a match.
type Actor interface {
	SendDirectMessage(ctx context.Context, userID, text string) error
	Ban(ctx context.Context, guildID, userID, reason string) error
}

// Recorder receives outcomes that reached a match.
type Recorder interface {
	Record(ctx context.Context, o Outcome) error
}

// Result is the terminal state of one evaluation.
type Result struct {
	State State
	// Matched is the verdict. It stays true when the ban itself fails.
	Matched    bool
	SkipReason SkipReason
	// MatchedName is the canonical name that collided, when Matched.
	MatchedName string
	// MatchedMember is the protected member whose name collided, when Matched.
	MatchedMember Member
}

// Outcome is what a Recorder persists.
type Outcome struct {
	Candidate   Candidate
	Result      Result
	TraceID     string
	EvaluatedAt time.Time
}
