// Package session holds the small pieces of shell state that survive a
// restart: whether the access gate has been passed, and the last chat user
// search.
package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/MrSnakeDoc/cfxlookup/internal/domain"
	"github.com/MrSnakeDoc/cfxlookup/internal/store"
)

const (
	KeyUnlocked        = "unlocked"
	KeyChatLastSearch  = "chat.lastSearch"
	KeyChatLastProfile = "chat.lastProfile"
)

// Access persists the unlock flag.
type Access struct {
	kv store.KV
}

func NewAccess(kv store.KV) *Access { return &Access{kv: kv} }

// Unlocked reports the persisted flag. Absent or unparsable values count as
// locked.
func (a *Access) Unlocked(ctx context.Context) (bool, error) {
	v, err := a.kv.Get(ctx, KeyUnlocked)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read unlock flag: %w", err)
	}
	ok, _ := strconv.ParseBool(string(v))
	return ok, nil
}

func (a *Access) Unlock(ctx context.Context) error {
	if err := a.kv.Set(ctx, KeyUnlocked, []byte("true")); err != nil {
		return fmt.Errorf("failed to persist unlock flag: %w", err)
	}
	return nil
}

// Logout clears the flag so the next start shows the gate again.
func (a *Access) Logout(ctx context.Context) error {
	if err := a.kv.Delete(ctx, KeyUnlocked); err != nil {
		return fmt.Errorf("failed to clear unlock flag: %w", err)
	}
	return nil
}

// ChatMemory remembers the last successful chat user lookup.
type ChatMemory struct {
	kv store.KV
}

func NewChatMemory(kv store.KV) *ChatMemory { return &ChatMemory{kv: kv} }

// Remember stores the query and its profile.
func (m *ChatMemory) Remember(ctx context.Context, query string, profile *domain.ChatUserProfile) error {
	if err := store.SetJSON(ctx, m.kv, KeyChatLastProfile, profile); err != nil {
		return err
	}
	if err := m.kv.Set(ctx, KeyChatLastSearch, []byte(query)); err != nil {
		return fmt.Errorf("failed to persist last chat search: %w", err)
	}
	return nil
}

// Last returns the remembered query and profile. ok is false when nothing
// complete was remembered.
func (m *ChatMemory) Last(ctx context.Context) (query string, profile *domain.ChatUserProfile, ok bool, err error) {
	q, err := m.kv.Get(ctx, KeyChatLastSearch)
	if errors.Is(err, store.ErrNotFound) {
		return "", nil, false, nil
	}
	if err != nil {
		return "", nil, false, fmt.Errorf("failed to read last chat search: %w", err)
	}

	var p domain.ChatUserProfile
	found, err := store.GetJSON(ctx, m.kv, KeyChatLastProfile, &p)
	if err != nil || !found {
		return "", nil, false, err
	}
	return string(q), &p, true, nil
}

// Clear forgets the remembered search.
func (m *ChatMemory) Clear(ctx context.Context) error {
	if err := m.kv.Delete(ctx, KeyChatLastSearch); err != nil {
		return fmt.Errorf("failed to clear last chat search: %w", err)
	}
	if err := m.kv.Delete(ctx, KeyChatLastProfile); err != nil {
		return fmt.Errorf("failed to clear last chat profile: %w", err)
	}
	return nil
}
