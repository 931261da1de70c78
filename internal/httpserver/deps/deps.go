package deps

import (
	"context"
	"encoding/json"
	"net/url"
	"time"

	"github.com/MrSnakeDoc/cfxlookup/internal/domain"
	"github.com/MrSnakeDoc/cfxlookup/internal/logger"
	"github.com/MrSnakeDoc/cfxlookup/internal/upstream"
)

// ChatDirectory resolves chat user ids.
type ChatDirectory interface {
	Fetch(ctx context.Context, id domain.Identifier) (json.RawMessage, error)
}

// PlatformDirectory resolves platform hex ids with a server-held key.
type PlatformDirectory interface {
	Fetch(ctx context.Context, id domain.Identifier) (json.RawMessage, error)
	Configured() bool
}

// AvatarSource fetches avatar images.
type AvatarSource interface {
	ParseAvatarURL(raw string) (*url.URL, error)
	Fetch(ctx context.Context, raw string) (*upstream.Avatar, error)
}

type Deps struct {
	Logger       logger.Logger
	StartTime    time.Time
	Version      string
	Commit       string
	BuildDate    string
	GoVersion    string
	TimeNow      func() time.Time // for testing, defaults to time.Now
	AllowedHosts []string         // Host headers allowed to reach the relay routes
	AllowedCIDRS []string         // IPs allowed to access healthz/readyz/infra
	TrustProxy   bool             // true if running behind a trusted reverse proxy (e.g., cloudflared)
	CORSOrigins  []string         // Origins allowed to call the relay from a browser
	RateBurst    int              // per-IP token bucket size on relay routes
	RatePerMin   int              // per-IP refill rate on relay routes

	Chat         ChatDirectory
	Platform     PlatformDirectory
	Avatars      AvatarSource
	AvatarMaxAge time.Duration // Cache-Control max-age for relayed avatars

	// Upstream base URLs, reported by /infra.
	ChatDirectoryURL string
	PlatformAPIURL   string
}
