package lookup

import (
	"context"
	"net/http"
	"net/url"

	"github.com/MrSnakeDoc/cfxlookup/internal/domain"
)

// serverResponse is the directory's single-server payload.
type serverResponse struct {
	Data *struct {
		Hostname   string `json:"hostname"`
		Clients    int    `json:"clients"`
		MaxClients int    `json:"sv_maxclients"`
		Players    []struct {
			ID          int      `json:"id"`
			Name        string   `json:"name"`
			Ping        int      `json:"ping"`
			Identifiers []string `json:"identifiers"`
		} `json:"players"`
	} `json:"Data"`
}

// ServerClient queries the game server directory directly; it needs no
// credential and no relay.
type ServerClient struct {
	baseURL string
	http    *http.Client
}

func NewServerClient(baseURL string, client *http.Client) *ServerClient {
	return &ServerClient{baseURL: baseURL, http: client}
}

// Lookup fetches {base}/api/servers/single/{address}.
func (c *ServerClient) Lookup(ctx context.Context, id domain.Identifier) (*domain.ServerSnapshot, error) {
	if id.Kind != domain.KindServer {
		return nil, domain.InvalidIdentifier("expected a server address")
	}

	endpoint := c.baseURL + "/api/servers/single/" + url.PathEscape(id.Value)

	var body serverResponse
	if err := getJSON(ctx, c.http, endpoint, "Server not found.", &body); err != nil {
		return nil, err
	}
	if body.Data == nil {
		return nil, domain.Transport("Received an unexpected response.", nil)
	}

	snap := &domain.ServerSnapshot{
		Address:        id.Value,
		Title:          body.Data.Hostname,
		CurrentPlayers: body.Data.Clients,
		MaxPlayers:     body.Data.MaxClients,
		Players:        make([]domain.PlayerRecord, 0, len(body.Data.Players)),
	}
	for _, p := range body.Data.Players {
		ping := p.Ping
		if ping < 0 {
			ping = 0
		}
		snap.Players = append(snap.Players, domain.PlayerRecord{
			ID:          p.ID,
			Name:        p.Name,
			Ping:        ping,
			Identifiers: append([]string(nil), p.Identifiers...),
		})
	}
	return snap, nil
}
