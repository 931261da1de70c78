package domain

import (
	"reflect"
	"testing"
)

func TestStripColorCodes(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "^1Player", want: "Player"},
		{in: "^1Red^7White", want: "RedWhite"},
		{in: "no codes", want: "no codes"},
		{in: "^aNotAToken", want: "^aNotAToken"},
		{in: "trailing^", want: "trailing^"},
		{in: "^^12", want: "^2"},
	}

	for _, tt := range tests {
		if got := StripColorCodes(tt.in); got != tt.want {
			t.Errorf("StripColorCodes(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPlayerDisplayNameKeepsRaw(t *testing.T) {
	p := PlayerRecord{ID: 1, Name: "^1Player"}
	if p.DisplayName() != "Player" {
		t.Errorf("DisplayName() = %q, want Player", p.DisplayName())
	}
	if p.Name != "^1Player" {
		t.Errorf("Name mutated to %q", p.Name)
	}
}

func TestFilterPlayers(t *testing.T) {
	players := []PlayerRecord{
		{ID: 12, Name: "^1zeta"},
		{ID: 3, Name: "Alpha"},
		{ID: 120, Name: "^2Player"},
		{ID: 7, Name: "beta^3"},
	}

	tests := []struct {
		name  string
		term  string
		field SearchField
		want  []int
	}{
		{name: "empty term sorts all", term: "", field: SearchByName, want: []int{3, 7, 120, 12}},
		{name: "name match ignores color token", term: "player", field: SearchByName, want: []int{120}},
		{name: "name match is case-insensitive", term: "ALP", field: SearchByName, want: []int{3}},
		{name: "token text does not match", term: "^1", field: SearchByName, want: []int{}},
		{name: "id substring", term: "12", field: SearchByID, want: []int{120, 12}},
		{name: "no match", term: "nobody", field: SearchByName, want: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterPlayers(players, tt.term, tt.field)
			ids := make([]int, 0, len(got))
			for _, p := range got {
				ids = append(ids, p.ID)
			}
			if !reflect.DeepEqual(ids, tt.want) {
				t.Errorf("FilterPlayers(%q, %s) = %v, want %v", tt.term, tt.field, ids, tt.want)
			}
		})
	}

	if players[0].ID != 12 {
		t.Error("FilterPlayers() reordered its input")
	}
}

func TestServerSnapshotHeadline(t *testing.T) {
	s := &ServerSnapshot{Title: "^1My ^7Server", CurrentPlayers: 2, MaxPlayers: 64}
	if got := s.Headline(); got != "My Server - 2/64 Players" {
		t.Errorf("Headline() = %q", got)
	}
}

func TestPresenceState(t *testing.T) {
	tests := map[PresenceState]string{
		0:  "Offline",
		1:  "Online",
		6:  "Looking to Play",
		7:  "Unknown",
		-1: "Unknown",
	}
	for state, want := range tests {
		if got := state.String(); got != want {
			t.Errorf("PresenceState(%d) = %q, want %q", int(state), got, want)
		}
	}
}

func TestBadgeLabels(t *testing.T) {
	p := &ChatUserProfile{Badges: []string{"HYPESQUAD_ONLINE_HOUSE_1", "ACTIVE_DEVELOPER"}}
	want := []string{"HYPESQUAD ONLINE HOUSE 1", "ACTIVE DEVELOPER"}
	if got := p.BadgeLabels(); !reflect.DeepEqual(got, want) {
		t.Errorf("BadgeLabels() = %v, want %v", got, want)
	}
}
