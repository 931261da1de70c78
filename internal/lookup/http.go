// Package lookup performs the outbound request for each panel kind and turns
// the response into a domain.LookupResult or a classified *domain.LookupError.
//
// Clients never retry and never cache: one call is one request.
package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/cfxlookup/internal/domain"
	"github.com/MrSnakeDoc/cfxlookup/internal/utils"
)

// maxBodyBytes bounds every decoded response.
const maxBodyBytes = 4 << 20

// NewHTTPClient returns the client shared by all lookup clients.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// relayError is the error body written by the relay server.
type relayError struct {
	Error string `json:"error"`
}

// getJSON issues one GET and decodes a 2xx body into dst. Failures are
// classified: 404 => NotFound, 400 => InvalidIdentifier, anything else =>
// Transport. notFoundMsg is used when the body carries no message.
func getJSON(ctx context.Context, client *http.Client, url, notFoundMsg string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return domain.Transport("Failed to build request.", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return domain.Transport("The request timed out. Please try again.", err)
		}
		return domain.Transport("Could not reach the lookup service.", err)
	}
	defer utils.Close(resp.Body)

	body := io.LimitReader(resp.Body, maxBodyBytes)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := remoteMessage(body)
		switch resp.StatusCode {
		case http.StatusNotFound:
			if msg == "" {
				msg = notFoundMsg
			}
			return domain.NotFound(msg)
		case http.StatusBadRequest:
			if msg == "" {
				msg = "The identifier was rejected."
			}
			return domain.InvalidIdentifier(msg)
		default:
			if msg == "" {
				msg = fmt.Sprintf("Lookup failed (HTTP %d).", resp.StatusCode)
			}
			return domain.Transport(msg, fmt.Errorf("unexpected status %d", resp.StatusCode))
		}
	}

	if err := json.NewDecoder(body).Decode(dst); err != nil {
		return domain.Transport("Received an unexpected response.", err)
	}
	return nil
}

// remoteMessage extracts the relay's {"error": "..."} message, if any.
func remoteMessage(r io.Reader) string {
	var re relayError
	if err := json.NewDecoder(r).Decode(&re); err != nil {
		return ""
	}
	return re.Error
}
