package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// The header types itself out, then erases itself, forever. Purely
// decorative: nothing here reads or writes lookup state.

const titleText = "CFX LOOKUP"

const (
	titleTypeDelay  = 150 * time.Millisecond
	titleEraseDelay = 75 * time.Millisecond
)

type titleTickMsg struct{}

type title struct {
	runes   []rune
	shown   int
	erasing bool
}

func newTitle() title {
	return title{runes: []rune(titleText)}
}

func (t title) tick() tea.Cmd {
	d := titleTypeDelay
	if t.erasing {
		d = titleEraseDelay
	}
	return tea.Tick(d, func(time.Time) tea.Msg { return titleTickMsg{} })
}

func (t title) advance() title {
	switch {
	case !t.erasing && t.shown < len(t.runes):
		t.shown++
	case !t.erasing:
		t.erasing = true
	case t.shown > 0:
		t.shown--
	default:
		t.erasing = false
	}
	return t
}

func (t title) String() string { return string(t.runes[:t.shown]) }
