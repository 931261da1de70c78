package tui

import (
	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

type copiedMsg struct {
	text string
	err  error
}

// copyCmd writes text to the system clipboard off the update loop.
func copyCmd(write func(string) error, text string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{text: text, err: write(text)}
	}
}

// systemClipboard is the default writer.
func systemClipboard(text string) error { return clipboard.WriteAll(text) }
