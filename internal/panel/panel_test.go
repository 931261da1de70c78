package panel

import (
	"testing"

	"github.com/MrSnakeDoc/cfxlookup/internal/domain"
)

func TestTriggerEmptyInputIsNoop(t *testing.T) {
	p := New(domain.KindServer)
	for _, in := range []string{"", "   "} {
		p.SetInput(in)
		if _, ok := p.Trigger(); ok {
			t.Errorf("Trigger() with %q started a lookup", in)
		}
	}
	if p.State().Status != Idle {
		t.Errorf("Status = %v, want idle", p.State().Status)
	}
}

func TestLifecycle(t *testing.T) {
	p := New(domain.KindServer)
	p.SetInput("1.2.3.4:30120")

	t1, ok := p.Trigger()
	if !ok || p.State().Status != Loading {
		t.Fatalf("Trigger() = %v, %v; status %v", t1, ok, p.State().Status)
	}

	snap := &domain.ServerSnapshot{Address: "1.2.3.4:30120"}
	if !p.Resolve(t1, snap, nil) {
		t.Fatal("Resolve() rejected the latest ticket")
	}
	s := p.State()
	if s.Status != Ready || s.Result != snap || s.Err != nil {
		t.Errorf("State = %+v", s)
	}

	t2, _ := p.Trigger()
	if s := p.State(); s.Status != Loading || s.Result != nil {
		t.Errorf("re-trigger did not clear result: %+v", s)
	}
	p.Resolve(t2, nil, domain.NotFound("Server not found."))
	s = p.State()
	if s.Status != Failed || s.Message() != "Server not found." || s.Result != nil {
		t.Errorf("State = %+v", s)
	}
}

func TestLastTriggeredWins(t *testing.T) {
	p := New(domain.KindChatUser)
	p.SetInput("1")
	t1, _ := p.Trigger()
	p.SetInput("2")
	t2, _ := p.Trigger()

	second := &domain.ChatUserProfile{ID: "2"}
	if !p.Resolve(t2, second, nil) {
		t.Fatal("Resolve(t2) rejected")
	}
	if p.Resolve(t1, &domain.ChatUserProfile{ID: "1"}, nil) {
		t.Error("Resolve(t1) committed a superseded ticket")
	}
	if got := p.State().Result.(*domain.ChatUserProfile); got.ID != "2" {
		t.Errorf("Result = %+v, want profile 2", got)
	}
	if p.State().Query != "2" {
		t.Errorf("Query = %q", p.State().Query)
	}
}

func TestSupersededBeforeLatestResolves(t *testing.T) {
	p := New(domain.KindChatUser)
	p.SetInput("1")
	t1, _ := p.Trigger()
	p.SetInput("2")
	p.Trigger()

	if p.Resolve(t1, &domain.ChatUserProfile{ID: "1"}, nil) {
		t.Error("stale ticket committed while the latest is in flight")
	}
	if p.State().Status != Loading {
		t.Errorf("Status = %v, want loading", p.State().Status)
	}
}

func TestStateIsAValue(t *testing.T) {
	p := New(domain.KindServer)
	p.SetInput("a")
	before := p.State()
	tk, _ := p.Trigger()
	p.Resolve(tk, &domain.ServerSnapshot{}, nil)

	if before.Status != Idle || before.Result != nil {
		t.Errorf("earlier snapshot changed: %+v", before)
	}
}

func TestRestoreAndReset(t *testing.T) {
	p := New(domain.KindChatUser)
	p.SetInput("9")
	tk, _ := p.Trigger()

	p.Restore("42", &domain.ChatUserProfile{ID: "42"})
	if s := p.State(); s.Status != Ready || s.Input != "42" {
		t.Errorf("Restore() state = %+v", s)
	}
	if p.Resolve(tk, nil, domain.NotFound("x")) {
		t.Error("in-flight ticket survived Restore")
	}

	p.Reset()
	if s := p.State(); s.Status != Idle || s.Input != "" || s.Result != nil {
		t.Errorf("Reset() state = %+v", s)
	}
}
