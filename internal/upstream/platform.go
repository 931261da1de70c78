package upstream

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"github.com/MrSnakeDoc/cfxlookup/internal/domain"
	"github.com/MrSnakeDoc/cfxlookup/internal/utils"
)

const notFoundPlatform = "No profile found for this platform id."

// summariesResponse is the player summaries envelope.
type summariesResponse struct {
	Response struct {
		Players []json.RawMessage `json:"players"`
	} `json:"response"`
}

// PlatformDirectory resolves platform hex ids through the player summaries
// API. The API key stays inside this type: it is never logged and never
// part of a returned error.
type PlatformDirectory struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewPlatformDirectory(baseURL, apiKey string, client *http.Client) *PlatformDirectory {
	return &PlatformDirectory{baseURL: baseURL, apiKey: apiKey, http: client}
}

// Configured reports whether an API key is present.
func (p *PlatformDirectory) Configured() bool { return p.apiKey != "" }

// Fetch returns the first player summary for id.
func (p *PlatformDirectory) Fetch(ctx context.Context, id domain.Identifier) (json.RawMessage, error) {
	steamID, err := id.PlatformDecimal()
	if err != nil {
		return nil, err
	}
	if !p.Configured() {
		return nil, domain.MissingCredential("platform API key is not configured")
	}

	q := url.Values{"key": {p.apiKey}, "steamids": {steamID}}
	resp, err := get(ctx, p.http, p.baseURL+"/?"+q.Encode(), "application/json")
	if err != nil {
		return nil, err
	}
	defer utils.Close(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusError(resp.StatusCode, notFoundPlatform)
	}

	var body summariesResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxJSONBytes)).Decode(&body); err != nil {
		return nil, domain.Transport("Upstream returned an invalid response.", err)
	}
	if len(body.Response.Players) == 0 {
		return nil, domain.NotFound(notFoundPlatform)
	}
	return body.Response.Players[0], nil
}
