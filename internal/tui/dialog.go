package tui

import (
	"errors"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrSnakeDoc/cfxlookup/internal/bookmarks"
	"github.com/MrSnakeDoc/cfxlookup/internal/domain"
	"github.com/MrSnakeDoc/cfxlookup/internal/logger"
)

// addDialog collects a label and an address for a new bookmark.
type addDialog struct {
	label   textinput.Model
	address textinput.Model
	onLabel bool
	busy    bool
	err     string
}

func newAddDialog(address string) addDialog {
	label := textinput.New()
	label.Placeholder = "Label"
	label.Prompt = "Label:   "
	label.CharLimit = 48
	label.Focus()

	addr := textinput.New()
	addr.Placeholder = "127.0.0.1:30120"
	addr.Prompt = "Address: "
	addr.CharLimit = 128
	addr.SetValue(address)

	return addDialog{label: label, address: addr, onLabel: true}
}

func (d *addDialog) toggle() {
	d.onLabel = !d.onLabel
	if d.onLabel {
		d.label.Focus()
		d.address.Blur()
	} else {
		d.address.Focus()
		d.label.Blur()
	}
}

func (m *Model) openAddDialog() tea.Cmd {
	m.dialog = newAddDialog(m.shell.Panel(domain.KindServer).State().Query)
	m.mode = modeAddBookmark
	return textinput.Blink
}

func (m *Model) handleDialogKey(msg tea.KeyMsg) tea.Cmd {
	if m.dialog.busy {
		return nil
	}
	switch msg.String() {
	case "esc":
		m.mode = modeMain
		m.setFocus(focusBookmarks)
		return nil
	case "tab", "shift+tab", "up", "down":
		m.dialog.toggle()
		return nil
	case "enter":
		m.dialog.busy = true
		m.dialog.err = ""
		return tea.Batch(m.spinner.Tick, m.addBookmarkCmd(m.dialog.label.Value(), m.dialog.address.Value()))
	}

	var cmd tea.Cmd
	if m.dialog.onLabel {
		m.dialog.label, cmd = m.dialog.label.Update(msg)
	} else {
		m.dialog.address, cmd = m.dialog.address.Update(msg)
	}
	return cmd
}

func (m *Model) applyBookmarkAdded(msg bookmarkAddedMsg) tea.Cmd {
	if m.mode != modeAddBookmark {
		return m.loadBookmarks()
	}
	m.dialog.busy = false
	if msg.err != nil {
		if errors.Is(msg.err, bookmarks.ErrDuplicateAddress) {
			m.dialog.err = "This server is already bookmarked."
		} else {
			m.dialog.err = domain.PublicMessage(msg.err)
		}
		m.log.Debug("bookmark add rejected", logger.Error(msg.err))
		return nil
	}

	m.mode = modeMain
	m.setFocus(focusBookmarks)
	m.setStatus("Bookmarked " + msg.bookmark.Label)
	return m.loadBookmarks()
}
