package lookup

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/cfxlookup/internal/domain"
)

// Options tunes the HTTP client shared by the three lookup clients.
type Options struct {
	Timeout time.Duration
}

// Resolver parses raw input for a panel kind and runs the matching client.
// Parse failures are returned before any request is made.
type Resolver struct {
	Server   *ServerClient
	Chat     *ChatUserClient
	Platform *PlatformUserClient
}

// NewResolver wires the three clients against one HTTP client.
func NewResolver(serverDirectoryURL, relayURL string, opts Options) *Resolver {
	client := NewHTTPClient(opts.Timeout)
	return &Resolver{
		Server:   NewServerClient(serverDirectoryURL, client),
		Chat:     NewChatUserClient(relayURL, client),
		Platform: NewPlatformUserClient(relayURL, client),
	}
}

// Resolve never returns a nil result together with a nil error.
func (r *Resolver) Resolve(ctx context.Context, kind domain.Kind, raw string) (domain.LookupResult, error) {
	id, err := domain.Parse(kind, raw)
	if err != nil {
		return nil, err
	}

	switch kind {
	case domain.KindServer:
		snap, err := r.Server.Lookup(ctx, id)
		if err != nil {
			return nil, err
		}
		return snap, nil
	case domain.KindChatUser:
		profile, err := r.Chat.Lookup(ctx, id)
		if err != nil {
			return nil, err
		}
		return profile, nil
	default:
		profile, err := r.Platform.Lookup(ctx, id)
		if err != nil {
			return nil, err
		}
		return profile, nil
	}
}
