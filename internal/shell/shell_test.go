package shell

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MrSnakeDoc/cfxlookup/internal/bookmarks"
	"github.com/MrSnakeDoc/cfxlookup/internal/domain"
	"github.com/MrSnakeDoc/cfxlookup/internal/logger"
	"github.com/MrSnakeDoc/cfxlookup/internal/lookup"
	"github.com/MrSnakeDoc/cfxlookup/internal/panel"
	"github.com/MrSnakeDoc/cfxlookup/internal/session"
	"github.com/MrSnakeDoc/cfxlookup/internal/store"
)

// fakeBackend serves the server directory and the relay from one listener.
func fakeBackend(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/servers/single/127.0.0.1:30120", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"Data":{"hostname":"^3Test ^0Server","clients":2,"sv_maxclients":32,"players":[
			{"id":1,"name":"^1Zed","ping":20,"identifiers":["steam:110000138bc2bb3","license:abcdef"]},
			{"id":2,"name":"amy","ping":40,"identifiers":["discord:80351110224678912"]}]}}`))
	})
	mux.HandleFunc("/relay/platform-profile", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("hex") != "steam:110000138bc2bb3" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"No profile found for this platform id."}`))
			return
		}
		_, _ = w.Write([]byte(`{"steamid":"76561198912121779","personaname":"Zed","personastate":1}`))
	})
	mux.HandleFunc("/relay/chat-profile", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"` + r.URL.Query().Get("id") + `","username":"amy"}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newShell(t *testing.T, kv store.KV) *Shell {
	t.Helper()
	srv := fakeBackend(t)
	r := lookup.NewResolver(srv.URL, srv.URL, lookup.Options{Timeout: 2 * time.Second})
	return New(r,
		session.NewAccess(kv),
		session.NewChatMemory(kv),
		bookmarks.New(kv, r.Server),
		logger.Nop(),
	)
}

func runAndCommit(t *testing.T, s *Shell, req Request) {
	t.Helper()
	if !s.Commit(context.Background(), s.Run(context.Background(), req)) {
		t.Fatalf("Commit(%+v) dropped", req)
	}
}

func TestServerToPlatformHandoff(t *testing.T) {
	ctx := context.Background()
	s := newShell(t, store.NewMemory())

	s.Panel(domain.KindServer).SetInput("127.0.0.1:30120")
	req, ok := s.Search(domain.KindServer)
	if !ok {
		t.Fatal("Search() did not trigger")
	}
	runAndCommit(t, s, req)

	st := s.Panel(domain.KindServer).State()
	if st.Status != panel.Ready {
		t.Fatalf("server panel = %v (%v)", st.Status, st.Err)
	}
	snap := st.Result.(*domain.ServerSnapshot)
	if len(snap.Players) != 2 || snap.Headline() != "Test Server - 2/32 Players" {
		t.Fatalf("snapshot = %+v", snap)
	}

	h, err := s.Activate(ctx, snap.Players[0].Identifiers[0])
	if err != nil {
		t.Fatalf("Activate() error = %v", err)
	}
	if h.Action != ActionHandoff || !h.Triggered {
		t.Fatalf("Activate() = %+v", h)
	}
	if s.Active() != domain.KindPlatformUser {
		t.Errorf("Active() = %v, want platform-user", s.Active())
	}
	pp := s.Panel(domain.KindPlatformUser).State()
	if pp.Input != "steam:110000138bc2bb3" || pp.Status != panel.Loading {
		t.Errorf("platform panel = %+v", pp)
	}

	runAndCommit(t, s, h.Request)
	profile := s.Panel(domain.KindPlatformUser).State().Result.(*domain.PlatformUserProfile)
	if profile.ID != "76561198912121779" || profile.PresenceState.String() != "Online" {
		t.Errorf("profile = %+v", profile)
	}
}

func TestChatHandoffClearsMemory(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	s := newShell(t, kv)

	s.Panel(domain.KindChatUser).SetInput("1")
	req, _ := s.Search(domain.KindChatUser)
	runAndCommit(t, s, req)

	mem := session.NewChatMemory(kv)
	if q, _, ok, _ := mem.Last(ctx); !ok || q != "1" {
		t.Fatalf("remembered = %q, %v", q, ok)
	}

	h, err := s.Activate(ctx, "discord:80351110224678912")
	if err != nil {
		t.Fatalf("Activate() error = %v", err)
	}
	if _, _, ok, _ := mem.Last(ctx); ok {
		t.Error("chat memory survived handoff")
	}
	if s.Active() != domain.KindChatUser || h.Request.Query != "80351110224678912" {
		t.Errorf("handoff request = %+v", h.Request)
	}
	runAndCommit(t, s, h.Request)
	if q, _, _, _ := mem.Last(ctx); q != "80351110224678912" {
		t.Errorf("remembered after handoff = %q", q)
	}
}

func TestActivateCopies(t *testing.T) {
	s := newShell(t, store.NewMemory())
	tests := []struct{ in, want string }{
		{"license:abcdef", "abcdef"},
		{"xbl:1:2", "1:2"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		h, err := s.Activate(context.Background(), tt.in)
		if err != nil || h.Action != ActionCopy || h.Copy != tt.want {
			t.Errorf("Activate(%q) = %+v, %v; want copy %q", tt.in, h, err, tt.want)
		}
	}
	if s.Active() != domain.KindServer {
		t.Errorf("copy changed active panel to %v", s.Active())
	}
}

func TestRestoreChatSearch(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	first := newShell(t, kv)
	first.Panel(domain.KindChatUser).SetInput("7")
	req, _ := first.Search(domain.KindChatUser)
	runAndCommit(t, first, req)
	if err := first.Unlock(ctx); err != nil {
		t.Fatal(err)
	}

	second := newShell(t, kv)
	unlocked, err := second.Restore(ctx)
	if err != nil || !unlocked {
		t.Fatalf("Restore() = %v, %v", unlocked, err)
	}
	st := second.Panel(domain.KindChatUser).State()
	if st.Status != panel.Ready || st.Input != "7" {
		t.Errorf("restored chat panel = %+v", st)
	}

	if err := second.Logout(ctx); err != nil {
		t.Fatal(err)
	}
	if unlocked, _ := newShell(t, kv).Restore(ctx); unlocked {
		t.Error("still unlocked after Logout")
	}
}

func TestSupersededOutcomeDropped(t *testing.T) {
	ctx := context.Background()
	s := newShell(t, store.NewMemory())
	p := s.Panel(domain.KindPlatformUser)

	p.SetInput("steam:1")
	stale, _ := s.Search(domain.KindPlatformUser)
	p.SetInput("steam:110000138bc2bb3")
	fresh, _ := s.Search(domain.KindPlatformUser)

	freshOut := s.Run(ctx, fresh)
	staleOut := s.Run(ctx, stale)
	if !s.Commit(ctx, freshOut) {
		t.Fatal("fresh outcome dropped")
	}
	if s.Commit(ctx, staleOut) {
		t.Error("stale outcome committed")
	}
	if p.State().Status != panel.Ready {
		t.Errorf("status = %v, want ready", p.State().Status)
	}
}

func TestSelectBookmark(t *testing.T) {
	s := newShell(t, store.NewMemory())
	s.SetActive(domain.KindChatUser)

	bm, err := s.Bookmarks().Add(context.Background(), "Test", "127.0.0.1:30120")
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if bm.ServerName != "Test Server" {
		t.Errorf("ServerName = %q", bm.ServerName)
	}

	req, ok := s.SelectBookmark(bm)
	if !ok || s.Active() != domain.KindServer || req.Query != "127.0.0.1:30120" {
		t.Errorf("SelectBookmark() = %+v, %v; active %v", req, ok, s.Active())
	}
}
