package upstream

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/MrSnakeDoc/cfxlookup/internal/domain"
	"github.com/MrSnakeDoc/cfxlookup/internal/utils"
)

// DefaultImageType is used when the upstream does not declare an image type.
const DefaultImageType = "image/png"

// Avatar is a fetched image, fully buffered.
type Avatar struct {
	ContentType string
	Body        []byte
}

// AvatarFetcher proxies avatar images.
type AvatarFetcher struct {
	http         *http.Client
	maxBytes     int64
	allowedHosts []string
}

// NewAvatarFetcher builds a fetcher. An empty allowedHosts accepts any host;
// entries may use the "*.example.com" form.
func NewAvatarFetcher(client *http.Client, maxBytes int64, allowedHosts []string) *AvatarFetcher {
	return &AvatarFetcher{http: client, maxBytes: maxBytes, allowedHosts: allowedHosts}
}

// ParseAvatarURL validates a raw avatar url: absolute http(s) with a host on
// the allowlist.
func (f *AvatarFetcher) ParseAvatarURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, domain.InvalidIdentifier("Invalid avatar URL")
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, domain.InvalidIdentifier("Invalid avatar URL")
	}
	if !f.hostAllowed(u.Hostname()) {
		return nil, domain.InvalidIdentifier("Avatar host is not allowed")
	}
	return u, nil
}

func (f *AvatarFetcher) hostAllowed(host string) bool {
	if len(f.allowedHosts) == 0 {
		return true
	}
	host = strings.ToLower(host)
	return slices.ContainsFunc(f.allowedHosts, func(pattern string) bool {
		pattern = strings.ToLower(pattern)
		if suffix, ok := strings.CutPrefix(pattern, "*"); ok {
			return strings.HasSuffix(host, suffix)
		}
		return host == pattern
	})
}

// Fetch downloads the image at raw.
func (f *AvatarFetcher) Fetch(ctx context.Context, raw string) (*Avatar, error) {
	u, err := f.ParseAvatarURL(raw)
	if err != nil {
		return nil, err
	}

	resp, err := get(ctx, f.http, u.String(), "image/*")
	if err != nil {
		return nil, err
	}
	defer utils.Close(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusError(resp.StatusCode, "Avatar not found")
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, domain.Transport("Failed to read avatar.", err)
	}
	if int64(len(body)) > f.maxBytes {
		return nil, domain.Transport("Avatar is too large.", fmt.Errorf("body exceeds %d bytes", f.maxBytes))
	}

	return &Avatar{ContentType: imageType(resp.Header.Get("Content-Type")), Body: body}, nil
}

// imageType passes image media types through and maps anything else to
// DefaultImageType.
func imageType(header string) string {
	mt, _, err := mime.ParseMediaType(header)
	if err != nil || !strings.HasPrefix(mt, "image/") {
		return DefaultImageType
	}
	return mt
}
