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

// ChatDirectory resolves chat user ids against {base}/{id}.
type ChatDirectory struct {
	baseURL string
	http    *http.Client
}

func NewChatDirectory(baseURL string, client *http.Client) *ChatDirectory {
	return &ChatDirectory{baseURL: baseURL, http: client}
}

// Fetch returns the upstream user object unchanged. The body must be a JSON
// object.
func (c *ChatDirectory) Fetch(ctx context.Context, id domain.Identifier) (json.RawMessage, error) {
	if id.Kind != domain.KindChatUser {
		return nil, domain.InvalidIdentifier("Invalid user id")
	}

	resp, err := get(ctx, c.http, c.baseURL+"/"+url.PathEscape(id.Value), "application/json")
	if err != nil {
		return nil, err
	}
	defer utils.Close(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusError(resp.StatusCode, "User not found")
	}

	var obj map[string]json.RawMessage
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxJSONBytes))
	if err != nil {
		return nil, domain.Transport("Failed to read upstream response.", err)
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, domain.Transport("Upstream returned an invalid response.", err)
	}
	return json.RawMessage(raw), nil
}
