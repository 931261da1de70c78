// Package upstream holds the relay server's clients for the third-party
// directories it fronts: the chat user directory, the platform player
// summaries API, and arbitrary avatar images.
package upstream

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/MrSnakeDoc/cfxlookup/internal/domain"
)

// maxJSONBytes bounds upstream JSON bodies.
const maxJSONBytes = 2 << 20

// NewHTTPClient returns the client shared by the relay's upstreams.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// get issues a GET and returns the response when the request itself
// succeeded. Transport errors are stripped of the request URL.
func get(ctx context.Context, client *http.Client, endpoint, accept string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, domain.Transport("Failed to build upstream request.", scrubURL(err))
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, domain.Transport("Upstream request failed.", scrubURL(err))
	}
	return resp, nil
}

// scrubURL drops the request URL from net/http errors so query strings
// carrying credentials never reach logs.
func scrubURL(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		return fmt.Errorf("%s: %w", ue.Op, ue.Err)
	}
	return err
}

// statusError classifies a non-2xx upstream status.
func statusError(status int, notFoundMsg string) error {
	if status == http.StatusNotFound {
		return domain.NotFound(notFoundMsg)
	}
	return domain.Transport("Upstream returned an error.", fmt.Errorf("status %d", status))
}
