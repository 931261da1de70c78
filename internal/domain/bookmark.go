package domain

import "time"

// Bookmark is a saved server address.
// Bookmarks are unique by Address and are only ever added or removed as a
// whole.
type Bookmark struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// Address is the uniqueness key.
	// Example: 127.0.0.1:30120
	Address string `json:"address"`

	// Label is the user-chosen display name.
	Label string `json:"label"`

	// ─────────────────────────────
	// Observation
	// ─────────────────────────────

	// ServerName is the color-stripped hostname seen by the validating
	// lookup when the bookmark was created.
	ServerName string `json:"server_name,omitempty"`

	// CreatedAt is when the bookmark was added.
	CreatedAt time.Time `json:"created_at"`
}
