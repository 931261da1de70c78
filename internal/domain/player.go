package domain

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// PlayerRecord is one connected player of a ServerSnapshot.
type PlayerRecord struct {
	ID int
	// Name is the raw name as reported by the server, color tokens included.
	Name string
	// Ping in milliseconds, never negative.
	Ping        int
	Identifiers []string
}

// DisplayName returns Name without color tokens.
func (p PlayerRecord) DisplayName() string { return StripColorCodes(p.Name) }

var colorToken = regexp.MustCompile(`\^[0-9]`)

// StripColorCodes removes every caret-digit color token from s.
func StripColorCodes(s string) string {
	return colorToken.ReplaceAllString(s, "")
}

// SearchField selects what FilterPlayers matches against.
type SearchField int

const (
	SearchByName SearchField = iota
	SearchByID
)

func (f SearchField) String() string {
	if f == SearchByID {
		return "id"
	}
	return "name"
}

// FilterPlayers returns the players matching term on field, sorted by
// lowercase display name. Name matching is a case-insensitive substring match
// on the display name; id matching is a substring match on the decimal id.
// The input slice is not modified.
func FilterPlayers(players []PlayerRecord, term string, field SearchField) []PlayerRecord {
	term = strings.ToLower(strings.TrimSpace(term))
	out := make([]PlayerRecord, 0, len(players))
	for _, p := range players {
		var haystack string
		if field == SearchByID {
			haystack = strconv.Itoa(p.ID)
		} else {
			haystack = strings.ToLower(p.DisplayName())
		}
		if strings.Contains(haystack, term) {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].DisplayName()) < strings.ToLower(out[j].DisplayName())
	})
	return out
}
