// Package bookmarks keeps the user's saved server addresses in the keyed
// store. The list is unique by address, kept in insertion order, and written
// back whole after every mutation.
package bookmarks

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/MrSnakeDoc/cfxlookup/internal/domain"
	"github.com/MrSnakeDoc/cfxlookup/internal/store"
)

// StorageKey is where the list lives in the keyed store.
const StorageKey = "server.bookmarks"

// ErrDuplicateAddress is returned by Add when the address is already saved.
var ErrDuplicateAddress = errors.New("server is already bookmarked")

// ServerLookup validates an address before it is saved.
type ServerLookup interface {
	Lookup(ctx context.Context, id domain.Identifier) (*domain.ServerSnapshot, error)
}

// Store is safe for concurrent use.
type Store struct {
	mu     sync.Mutex
	kv     store.KV
	lookup ServerLookup
	now    func() time.Time
}

func New(kv store.KV, lookup ServerLookup) *Store {
	return &Store{kv: kv, lookup: lookup, now: time.Now}
}

// List returns the saved bookmarks in insertion order. A missing key is an
// empty list.
func (s *Store) List(ctx context.Context) ([]domain.Bookmark, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// Add validates address with one server lookup and appends it. Nothing is
// persisted when the address is a duplicate or the lookup fails.
func (s *Store) Add(ctx context.Context, label, address string) (domain.Bookmark, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return domain.Bookmark{}, domain.InvalidIdentifier("bookmark label is required")
	}
	id, err := domain.ParseServerAddress(address)
	if err != nil {
		return domain.Bookmark{}, err
	}

	if exists, err := s.Contains(ctx, id.Value); err != nil {
		return domain.Bookmark{}, err
	} else if exists {
		return domain.Bookmark{}, ErrDuplicateAddress
	}

	snap, err := s.lookup.Lookup(ctx, id)
	if err != nil {
		return domain.Bookmark{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.load(ctx)
	if err != nil {
		return domain.Bookmark{}, err
	}
	// Another Add may have won while the lookup was in flight.
	if indexOf(list, id.Value) >= 0 {
		return domain.Bookmark{}, ErrDuplicateAddress
	}

	bm := domain.Bookmark{
		Address:    id.Value,
		Label:      label,
		ServerName: snap.DisplayTitle(),
		CreatedAt:  s.now().UTC(),
	}
	if err := s.save(ctx, append(list, bm)); err != nil {
		return domain.Bookmark{}, err
	}
	return bm, nil
}

// Remove deletes the bookmark for address. Removing an absent address is a
// no-op that still succeeds.
func (s *Store) Remove(ctx context.Context, address string) error {
	address = strings.TrimSpace(address)

	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.load(ctx)
	if err != nil {
		return err
	}
	i := indexOf(list, address)
	if i < 0 {
		return nil
	}
	return s.save(ctx, slices.Delete(list, i, i+1))
}

// Contains reports whether address is saved.
func (s *Store) Contains(ctx context.Context, address string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.load(ctx)
	if err != nil {
		return false, err
	}
	return indexOf(list, strings.TrimSpace(address)) >= 0, nil
}

// Select projects a bookmark to the server identifier that should be looked
// up. It has no side effects.
func Select(bm domain.Bookmark) domain.Identifier {
	return domain.Identifier{Kind: domain.KindServer, Value: bm.Address}
}

func (s *Store) load(ctx context.Context) ([]domain.Bookmark, error) {
	var list []domain.Bookmark
	if _, err := store.GetJSON(ctx, s.kv, StorageKey, &list); err != nil {
		return nil, fmt.Errorf("failed to load bookmarks: %w", err)
	}
	return list, nil
}

func (s *Store) save(ctx context.Context, list []domain.Bookmark) error {
	if list == nil {
		list = []domain.Bookmark{}
	}
	if err := store.SetJSON(ctx, s.kv, StorageKey, list); err != nil {
		return fmt.Errorf("failed to save bookmarks: %w", err)
	}
	return nil
}

func indexOf(list []domain.Bookmark, address string) int {
	return slices.IndexFunc(list, func(b domain.Bookmark) bool { return b.Address == address })
}
