package httpserver_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MrSnakeDoc/cfxlookup/internal/config"
	"github.com/MrSnakeDoc/cfxlookup/internal/domain"
	"github.com/MrSnakeDoc/cfxlookup/internal/httpserver"
	"github.com/MrSnakeDoc/cfxlookup/internal/httpserver/deps"
	"github.com/MrSnakeDoc/cfxlookup/internal/logger"
	"github.com/MrSnakeDoc/cfxlookup/internal/lookup"
	"github.com/MrSnakeDoc/cfxlookup/internal/upstream"
)

const platformKey = "TOPSECRETKEY"

// startRelay serves the real router in front of fake upstream directories
// and returns a resolver pointed at it, the way the shell is wired.
func startRelay(t *testing.T, key string) *lookup.Resolver {
	t.Helper()

	chatDir := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/user/80351110224678912":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"80351110224678912","username":"nelly","global_name":null,
				"avatar":{"link":""},"created_at":"2015-05-13T00:00:00.000Z","badges":["HYPESQUAD_ONLINE_HOUSE_1"]}`))
		case "/v1/user/500":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(chatDir.Close)

	platformAPI := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("key") != platformKey {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("steamids") != "76561198912121779" {
			_, _ = w.Write([]byte(`{"response":{"players":[]}}`))
			return
		}
		_, _ = w.Write([]byte(`{"response":{"players":[{"steamid":"76561198912121779",
			"personaname":"gordon","avatarfull":"https://avatars.example/a.jpg","profileurl":"https://example/p",
			"lastlogoff":0,"personastate":1}]}}`))
	}))
	t.Cleanup(platformAPI.Close)

	cfg := &config.ServerConfig{UpstreamTimeout: 2 * time.Second}
	client := upstream.NewHTTPClient(cfg.UpstreamTimeout)
	d := deps.Deps{
		Logger:           logger.Nop(),
		StartTime:        time.Now(),
		TimeNow:          time.Now,
		RateBurst:        100,
		RatePerMin:       100,
		Chat:             upstream.NewChatDirectory(chatDir.URL+"/v1/user", client),
		Platform:         upstream.NewPlatformDirectory(platformAPI.URL, key, client),
		Avatars:          upstream.NewAvatarFetcher(client, 1<<20, nil),
		AvatarMaxAge:     time.Hour,
		ChatDirectoryURL: chatDir.URL,
		PlatformAPIURL:   platformAPI.URL,
	}
	relay := httptest.NewServer(httpserver.NewRouter(cfg, logger.Nop(), d))
	t.Cleanup(relay.Close)

	return lookup.NewResolver("http://127.0.0.1:1", relay.URL, lookup.Options{Timeout: 2 * time.Second})
}

func TestRelayChatProfileEndToEnd(t *testing.T) {
	r := startRelay(t, platformKey)
	ctx := context.Background()

	res, err := r.Resolve(ctx, domain.KindChatUser, "80351110224678912")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	profile, ok := res.(*domain.ChatUserProfile)
	if !ok {
		t.Fatalf("Resolve() result = %T", res)
	}
	if profile.Handle != "nelly" || profile.DisplayName != "nelly" || profile.AvatarURL != lookup.DefaultAvatarURL {
		t.Errorf("profile = %+v", profile)
	}

	tests := []struct {
		name string
		raw  string
		want domain.FailureKind
	}{
		{name: "blank id never leaves the shell", raw: "  ", want: domain.FailureInvalidIdentifier},
		{name: "unknown user", raw: "1", want: domain.FailureNotFound},
		{name: "upstream failure", raw: "500", want: domain.FailureTransport},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Resolve(ctx, domain.KindChatUser, tt.raw)
			if got := domain.FailureOf(err); err == nil || got != tt.want {
				t.Errorf("Resolve(%q) error = %v (%v), want %v", tt.raw, err, got, tt.want)
			}
		})
	}
}

func TestRelayPlatformProfileEndToEnd(t *testing.T) {
	r := startRelay(t, platformKey)
	ctx := context.Background()

	res, err := r.Resolve(ctx, domain.KindPlatformUser, "steam:110000138bc2bb3")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	profile, ok := res.(*domain.PlatformUserProfile)
	if !ok {
		t.Fatalf("Resolve() result = %T", res)
	}
	if profile.ID != "76561198912121779" || profile.DisplayName != "gordon" || !profile.LastSeenAt.IsZero() {
		t.Errorf("profile = %+v", profile)
	}

	_, err = r.Resolve(ctx, domain.KindPlatformUser, "steam:1")
	if domain.FailureOf(err) != domain.FailureNotFound {
		t.Errorf("empty player list: error = %v, want not found", err)
	}
}

func TestRelayWithoutKeyNeverLeaksIt(t *testing.T) {
	r := startRelay(t, "")

	_, err := r.Resolve(context.Background(), domain.KindPlatformUser, "steam:110000138bc2bb3")
	if err == nil {
		t.Fatal("Resolve() expected error without a platform key")
	}
	if domain.FailureOf(err) != domain.FailureTransport {
		t.Errorf("error kind = %v, want transport", domain.FailureOf(err))
	}
	if strings.Contains(err.Error(), platformKey) {
		t.Errorf("error %q leaks the key", err)
	}
}
