package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrSnakeDoc/cfxlookup/internal/domain"
	"github.com/MrSnakeDoc/cfxlookup/internal/shell"
)

type lookupMsg struct {
	outcome shell.Outcome
}

type bookmarksMsg struct {
	list []domain.Bookmark
	err  error
}

type bookmarkAddedMsg struct {
	bookmark domain.Bookmark
	err      error
}

// BookmarksChangedMsg tells the model to reload the bookmark list, e.g.
// after a background seed import.
type BookmarksChangedMsg struct{}

// lookupCmd runs req off the update loop.
func (m *Model) lookupCmd(req shell.Request) tea.Cmd {
	ctx, sh := m.ctx, m.shell
	return func() tea.Msg {
		return lookupMsg{outcome: sh.Run(ctx, req)}
	}
}

func (m *Model) loadBookmarks() tea.Cmd {
	ctx, store := m.ctx, m.shell.Bookmarks()
	return func() tea.Msg {
		list, err := store.List(ctx)
		return bookmarksMsg{list: list, err: err}
	}
}

func (m *Model) addBookmarkCmd(label, address string) tea.Cmd {
	ctx, store := m.ctx, m.shell.Bookmarks()
	return func() tea.Msg {
		bm, err := store.Add(ctx, label, address)
		return bookmarkAddedMsg{bookmark: bm, err: err}
	}
}
