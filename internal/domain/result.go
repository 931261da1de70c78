package domain

import (
	"fmt"
	"strings"
	"time"
)

// LookupResult is one of ServerSnapshot, ChatUserProfile or
// PlatformUserProfile. Results are built once and never mutated; a new lookup
// yields a new value.
type LookupResult interface {
	ResultKind() Kind
}

// ServerSnapshot is the state of a game server at lookup time.
type ServerSnapshot struct {
	// ─────────────────────────────
	// Identity
	// ─────────────────────────────

	// Address is the identifier the snapshot was fetched for.
	Address string

	// Title is the raw hostname, color tokens included.
	Title string

	// ─────────────────────────────
	// Occupancy
	// ─────────────────────────────

	CurrentPlayers int
	MaxPlayers     int

	// Players is owned by the snapshot; callers must not modify it.
	Players []PlayerRecord
}

func (*ServerSnapshot) ResultKind() Kind { return KindServer }

// DisplayTitle returns the hostname without color tokens.
func (s *ServerSnapshot) DisplayTitle() string { return StripColorCodes(s.Title) }

// Headline renders "<title> - <current>/<max> Players".
func (s *ServerSnapshot) Headline() string {
	return fmt.Sprintf("%s - %d/%d Players", s.DisplayTitle(), s.CurrentPlayers, s.MaxPlayers)
}

// ChatUserProfile is the public profile of a chat-platform user.
type ChatUserProfile struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	Handle      string    `json:"handle"`
	AvatarURL   string    `json:"avatar_url"`
	CreatedAt   time.Time `json:"created_at"`
	Badges      []string  `json:"badges"`
}

func (*ChatUserProfile) ResultKind() Kind { return KindChatUser }

// BadgeLabels returns the badges with underscores rendered as spaces.
func (p *ChatUserProfile) BadgeLabels() []string {
	out := make([]string, 0, len(p.Badges))
	for _, b := range p.Badges {
		out = append(out, strings.ReplaceAll(b, "_", " "))
	}
	return out
}

// PresenceState is the platform's 0-6 persona state.
type PresenceState int

var presenceNames = []string{
	"Offline", "Online", "Busy", "Away", "Snooze", "Looking to Trade", "Looking to Play",
}

func (s PresenceState) String() string {
	if s < 0 || int(s) >= len(presenceNames) {
		return "Unknown"
	}
	return presenceNames[s]
}

// PlatformUserProfile is the public profile of a game-distribution-platform
// user.
type PlatformUserProfile struct {
	ID          string
	DisplayName string
	RealName    string
	AvatarURL   string
	ProfileURL  string
	CountryCode string
	// LastSeenAt is zero when the platform does not disclose it.
	LastSeenAt    time.Time
	PresenceState PresenceState
}

func (*PlatformUserProfile) ResultKind() Kind { return KindPlatformUser }
