// Package gate detects the hidden key sequence that unlocks the shell.
package gate

import (
	"strings"
	"sync"
)

// Gate counts consecutive presses of one key. Any other key resets the
// count. When the count reaches the required number the unlock callback runs
// once and the gate stops listening for good.
type Gate struct {
	mu       sync.Mutex
	key      string
	required int
	count    int
	retired  bool
	onUnlock func()
}

// New builds a gate for key (compared case-insensitively). required below 1
// is treated as 1.
func New(key string, required int, onUnlock func()) *Gate {
	if required < 1 {
		required = 1
	}
	return &Gate{key: strings.ToLower(key), required: required, onUnlock: onUnlock}
}

// Press feeds one key and reports whether this press unlocked the gate.
func (g *Gate) Press(key string) bool {
	g.mu.Lock()
	if g.retired {
		g.mu.Unlock()
		return false
	}
	if strings.ToLower(key) != g.key {
		g.count = 0
		g.mu.Unlock()
		return false
	}
	g.count++
	if g.count < g.required {
		g.mu.Unlock()
		return false
	}
	g.retired = true
	cb := g.onUnlock
	g.mu.Unlock()

	if cb != nil {
		cb()
	}
	return true
}

// Progress returns how many matching presses are buffered.
func (g *Gate) Progress() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.count
}

// Retire stops the gate without unlocking.
func (g *Gate) Retire() {
	g.mu.Lock()
	g.retired = true
	g.mu.Unlock()
}

func (g *Gate) Retired() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.retired
}
