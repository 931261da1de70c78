package lookup

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/MrSnakeDoc/cfxlookup/internal/domain"
)

// DefaultAvatarURL is shown when a chat user has no avatar.
const DefaultAvatarURL = "https://cdn.discordapp.com/embed/avatars/0.png"

// ChatProfilePayload is the upstream chat-directory user shape, forwarded
// unchanged by the relay.
type ChatProfilePayload struct {
	ID         string  `json:"id"`
	Username   string  `json:"username"`
	GlobalName *string `json:"global_name"`
	Avatar     *struct {
		Link string `json:"link"`
	} `json:"avatar"`
	CreatedAt string   `json:"created_at"`
	Badges    []string `json:"badges"`
}

// ChatUserClient looks chat users up through the relay.
type ChatUserClient struct {
	relayURL string
	http     *http.Client
}

func NewChatUserClient(relayURL string, client *http.Client) *ChatUserClient {
	return &ChatUserClient{relayURL: relayURL, http: client}
}

// Lookup fetches {relay}/relay/chat-profile?id={id}.
func (c *ChatUserClient) Lookup(ctx context.Context, id domain.Identifier) (*domain.ChatUserProfile, error) {
	if id.Kind != domain.KindChatUser {
		return nil, domain.InvalidIdentifier("expected a user id")
	}

	endpoint := c.relayURL + "/relay/chat-profile?" + url.Values{"id": {id.Value}}.Encode()

	var body ChatProfilePayload
	if err := getJSON(ctx, c.http, endpoint, "User not found.", &body); err != nil {
		return nil, err
	}
	return NormalizeChatProfile(body)
}

// NormalizeChatProfile validates an upstream payload and converts it to the
// domain profile.
func NormalizeChatProfile(body ChatProfilePayload) (*domain.ChatUserProfile, error) {
	if body.ID == "" || body.Username == "" {
		return nil, domain.Transport("Received an incomplete user profile.", nil)
	}

	profile := &domain.ChatUserProfile{
		ID:          body.ID,
		Handle:      body.Username,
		DisplayName: body.Username,
		AvatarURL:   DefaultAvatarURL,
		Badges:      dedupe(body.Badges),
	}
	if body.GlobalName != nil && *body.GlobalName != "" {
		profile.DisplayName = *body.GlobalName
	}
	if body.Avatar != nil && body.Avatar.Link != "" {
		profile.AvatarURL = body.Avatar.Link
	}
	if body.CreatedAt != "" {
		created, err := time.Parse(time.RFC3339, body.CreatedAt)
		if err != nil {
			return nil, domain.Transport("Received an invalid account creation date.", err)
		}
		profile.CreatedAt = created
	}
	return profile, nil
}

// dedupe keeps the first occurrence of every badge.
func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
