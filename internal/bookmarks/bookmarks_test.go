package bookmarks

import (
	"context"
	"errors"
	"testing"

	"github.com/MrSnakeDoc/cfxlookup/internal/domain"
	"github.com/MrSnakeDoc/cfxlookup/internal/store"
)

type fakeLookup struct {
	calls int
	err   error
	title string
}

func (f *fakeLookup) Lookup(_ context.Context, id domain.Identifier) (*domain.ServerSnapshot, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &domain.ServerSnapshot{Address: id.Value, Title: f.title}, nil
}

func TestAddListRemove(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	lookup := &fakeLookup{title: "^1Red ^7RP"}
	s := New(kv, lookup)

	if list, err := s.List(ctx); err != nil || len(list) != 0 {
		t.Fatalf("List() on empty store = %v, %v", list, err)
	}

	bm, err := s.Add(ctx, "Main", " 127.0.0.1:30120 ")
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if bm.Address != "127.0.0.1:30120" || bm.ServerName != "Red RP" || bm.CreatedAt.IsZero() {
		t.Errorf("Add() = %+v", bm)
	}
	if _, err := s.Add(ctx, "Second", "10.0.0.1:30120"); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	list, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 2 || list[0].Label != "Main" || list[1].Label != "Second" {
		t.Errorf("List() = %+v, want insertion order", list)
	}

	// A fresh store over the same KV sees the persisted list.
	if again, _ := New(kv, lookup).List(ctx); len(again) != 2 {
		t.Errorf("persisted list = %+v", again)
	}

	if err := s.Remove(ctx, "127.0.0.1:30120"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if err := s.Remove(ctx, "127.0.0.1:30120"); err != nil {
		t.Fatalf("second Remove() error = %v", err)
	}
	list, _ = s.List(ctx)
	if len(list) != 1 || list[0].Address != "10.0.0.1:30120" {
		t.Errorf("List() after Remove = %+v", list)
	}
}

func TestAddDuplicateSkipsLookup(t *testing.T) {
	ctx := context.Background()
	lookup := &fakeLookup{}
	s := New(store.NewMemory(), lookup)

	if _, err := s.Add(ctx, "A", "1.2.3.4:30120"); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if _, err := s.Add(ctx, "B", "1.2.3.4:30120"); !errors.Is(err, ErrDuplicateAddress) {
		t.Fatalf("Add() duplicate error = %v, want ErrDuplicateAddress", err)
	}
	if lookup.calls != 1 {
		t.Errorf("lookup calls = %d, want 1", lookup.calls)
	}
}

func TestAddFailedLookupPersistsNothing(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	s := New(kv, &fakeLookup{err: domain.NotFound("Server not found.")})

	_, err := s.Add(ctx, "Gone", "9.9.9.9:30120")
	if domain.FailureOf(err) != domain.FailureNotFound {
		t.Fatalf("Add() error = %v, want not found", err)
	}
	if kv.Len() != 0 {
		t.Errorf("store has %d keys, want 0", kv.Len())
	}
}

func TestAddValidatesInput(t *testing.T) {
	ctx := context.Background()
	lookup := &fakeLookup{}
	s := New(store.NewMemory(), lookup)

	tests := []struct{ label, address string }{
		{"", "1.2.3.4:30120"},
		{"Label", "   "},
	}
	for _, tt := range tests {
		if _, err := s.Add(ctx, tt.label, tt.address); domain.FailureOf(err) != domain.FailureInvalidIdentifier {
			t.Errorf("Add(%q, %q) error = %v", tt.label, tt.address, err)
		}
	}
	if lookup.calls != 0 {
		t.Errorf("lookup calls = %d, want 0", lookup.calls)
	}
}

func TestSelect(t *testing.T) {
	id := Select(domain.Bookmark{Address: "1.2.3.4:30120", Label: "x"})
	if id.Kind != domain.KindServer || id.Value != "1.2.3.4:30120" {
		t.Errorf("Select() = %+v", id)
	}
}
