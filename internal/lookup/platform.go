package lookup

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/MrSnakeDoc/cfxlookup/internal/domain"
)

// PlatformProfilePayload is one upstream player summary, forwarded by the
// relay.
type PlatformProfilePayload struct {
	SteamID        string `json:"steamid"`
	PersonaName    string `json:"personaname"`
	RealName       string `json:"realname,omitempty"`
	AvatarFull     string `json:"avatarfull"`
	ProfileURL     string `json:"profileurl"`
	LocCountryCode string `json:"loccountrycode,omitempty"`
	LastLogoff     int64  `json:"lastlogoff,omitempty"`
	PersonaState   int    `json:"personastate"`
}

// PlatformUserClient looks platform users up through the relay, which holds
// the API key.
type PlatformUserClient struct {
	relayURL string
	http     *http.Client
}

func NewPlatformUserClient(relayURL string, client *http.Client) *PlatformUserClient {
	return &PlatformUserClient{relayURL: relayURL, http: client}
}

// Lookup fetches {relay}/relay/platform-profile?hex={hex}.
func (c *PlatformUserClient) Lookup(ctx context.Context, id domain.Identifier) (*domain.PlatformUserProfile, error) {
	if id.Kind != domain.KindPlatformUser {
		return nil, domain.InvalidIdentifier("expected a platform hex id")
	}

	endpoint := c.relayURL + "/relay/platform-profile?" + url.Values{"hex": {id.Value}}.Encode()

	var body PlatformProfilePayload
	if err := getJSON(ctx, c.http, endpoint, "No profile found for this platform id.", &body); err != nil {
		return nil, err
	}
	if body.SteamID == "" {
		return nil, domain.Transport("Received an incomplete platform profile.", nil)
	}

	profile := &domain.PlatformUserProfile{
		ID:            body.SteamID,
		DisplayName:   body.PersonaName,
		RealName:      body.RealName,
		AvatarURL:     body.AvatarFull,
		ProfileURL:    body.ProfileURL,
		CountryCode:   body.LocCountryCode,
		PresenceState: domain.PresenceState(body.PersonaState),
	}
	if body.LastLogoff > 0 {
		profile.LastSeenAt = time.Unix(body.LastLogoff, 0).UTC()
	}
	return profile, nil
}
