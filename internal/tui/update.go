package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrSnakeDoc/cfxlookup/internal/domain"
	"github.com/MrSnakeDoc/cfxlookup/internal/logger"
	"github.com/MrSnakeDoc/cfxlookup/internal/panel"
	"github.com/MrSnakeDoc/cfxlookup/internal/shell"
)

// handleKey routes key presses based on the current mode and focus.
func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Quit) {
		return tea.Quit
	}

	switch m.mode {
	case modeGate:
		return m.handleGateKey(msg)
	case modeAddBookmark:
		return m.handleDialogKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Logout):
		return m.logout()
	case key.Matches(msg, m.keys.Reload):
		return m.requestReload()
	case key.Matches(msg, m.keys.NextTab):
		m.switchPanel(1)
		return nil
	case key.Matches(msg, m.keys.PrevTab):
		m.switchPanel(-1)
		return nil
	}

	switch m.focus {
	case focusInput:
		return m.handleInputKey(msg)
	case focusFilter:
		return m.handleFilterKey(msg)
	case focusBookmarks:
		return m.handleBookmarkKey(msg)
	default:
		return m.handleResultsKey(msg)
	}
}

func (m *Model) handleGateKey(msg tea.KeyMsg) tea.Cmd {
	m.gate.Press(msg.String())
	if !m.unlocked {
		return nil
	}
	if err := m.shell.Unlock(m.ctx); err != nil {
		m.log.Warn("failed to persist unlock", logger.Error(err))
	}
	m.enterMain()
	m.setStatus("")
	return textinput.Blink
}

func (m *Model) logout() tea.Cmd {
	if err := m.shell.Logout(m.ctx); err != nil {
		m.log.Warn("failed to clear unlock flag", logger.Error(err))
	}
	m.enterGate()
	m.setStatus("")
	return nil
}

func (m *Model) requestReload() tea.Cmd {
	if m.opts.Reload == nil {
		m.setError("No bookmark seed file configured.")
		return nil
	}
	select {
	case m.opts.Reload <- struct{}{}:
		m.setStatus("Importing bookmark seed file...")
	default:
		m.setStatus("Bookmark import already pending.")
	}
	return nil
}

func (m *Model) switchPanel(step int) {
	n := len(domain.Kinds)
	next := (int(m.shell.Active()) + step + n) % n
	m.shell.SetActive(domain.Kinds[next])
	m.setFocus(focusInput)
}

func (m *Model) setFocus(f focus) {
	if f == focusBookmarks && m.shell.Active() != domain.KindServer {
		f = focusResults
	}
	m.focus = f
	for k := range m.inputs {
		m.inputs[k].Blur()
	}
	m.filter.Blur()

	switch f {
	case focusInput:
		m.inputs[m.shell.Active()].Focus()
	case focusFilter:
		m.filter.Focus()
	}
}

func (m *Model) handleInputKey(msg tea.KeyMsg) tea.Cmd {
	kind := m.shell.Active()
	switch {
	case key.Matches(msg, m.keys.Submit):
		return m.search(kind)
	case key.Matches(msg, m.keys.Focus):
		m.setFocus(focusResults)
		return nil
	}

	var cmd tea.Cmd
	m.inputs[kind], cmd = m.inputs[kind].Update(msg)
	m.shell.Panel(kind).SetInput(m.inputs[kind].Value())
	return cmd
}

func (m *Model) handleFilterKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Focus) || key.Matches(msg, m.keys.Submit) {
		m.setFocus(focusResults)
		return nil
	}
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.refreshPlayers()
	return cmd
}

func (m *Model) handleResultsKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Focus):
		m.setFocus(focusInput)
		return nil
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return nil
	}

	if m.shell.Active() != domain.KindServer {
		if key.Matches(msg, m.keys.Submit) {
			return m.search(m.shell.Active())
		}
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		m.movePlayer(-1)
	case key.Matches(msg, m.keys.Down):
		m.movePlayer(1)
	case key.Matches(msg, m.keys.Left):
		m.moveIdentifier(-1)
	case key.Matches(msg, m.keys.Right):
		m.moveIdentifier(1)
	case key.Matches(msg, m.keys.Submit):
		return m.activateIdentifier()
	case key.Matches(msg, m.keys.Filter):
		m.setFocus(focusFilter)
		return textinput.Blink
	case key.Matches(msg, m.keys.FilterField):
		if m.field == domain.SearchByName {
			m.field = domain.SearchByID
		} else {
			m.field = domain.SearchByName
		}
		m.refreshPlayers()
	case key.Matches(msg, m.keys.Bookmarks):
		m.setFocus(focusBookmarks)
	case key.Matches(msg, m.keys.AddBookmark):
		return m.openAddDialog()
	}
	return nil
}

func (m *Model) handleBookmarkKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Focus), key.Matches(msg, m.keys.Bookmarks):
		m.setFocus(focusResults)
	case key.Matches(msg, m.keys.Left), key.Matches(msg, m.keys.Up):
		m.bmCursor = clamp(m.bmCursor-1, len(m.bookmarks))
	case key.Matches(msg, m.keys.Right), key.Matches(msg, m.keys.Down):
		m.bmCursor = clamp(m.bmCursor+1, len(m.bookmarks))
	case key.Matches(msg, m.keys.AddBookmark):
		return m.openAddDialog()
	case key.Matches(msg, m.keys.Remove):
		return m.removeBookmark()
	case key.Matches(msg, m.keys.Submit):
		if len(m.bookmarks) == 0 {
			return nil
		}
		req, ok := m.shell.SelectBookmark(m.bookmarks[m.bmCursor])
		m.inputs[domain.KindServer].SetValue(req.Query)
		if !ok {
			return nil
		}
		m.players = nil
		m.setFocus(focusResults)
		return tea.Batch(m.spinner.Tick, m.lookupCmd(req))
	}
	return nil
}

func (m *Model) removeBookmark() tea.Cmd {
	if len(m.bookmarks) == 0 {
		return nil
	}
	bm := m.bookmarks[m.bmCursor]
	if err := m.shell.Bookmarks().Remove(m.ctx, bm.Address); err != nil {
		m.log.Warn("failed to remove bookmark", logger.Error(err))
		m.setError("Failed to remove bookmark.")
		return nil
	}
	m.setStatus("Removed " + bm.Label)
	return m.loadBookmarks()
}

// search triggers the panel for kind. Blank input does nothing.
func (m *Model) search(kind domain.Kind) tea.Cmd {
	m.shell.Panel(kind).SetInput(m.inputs[kind].Value())
	req, ok := m.shell.Search(kind)
	if !ok {
		return nil
	}
	m.setStatus("")
	if kind == domain.KindServer {
		m.players = nil
		m.filter.SetValue("")
	}
	return tea.Batch(m.spinner.Tick, m.lookupCmd(req))
}

func (m *Model) applyLookup(o shell.Outcome) tea.Cmd {
	if !m.shell.Commit(m.ctx, o) {
		return nil
	}
	if o.Kind == domain.KindServer {
		m.playerCursor, m.idCursor = 0, 0
		m.refreshPlayers()
	}
	return nil
}

func (m *Model) refreshPlayers() {
	st := m.shell.Panel(domain.KindServer).State()
	snap, ok := st.Result.(*domain.ServerSnapshot)
	if st.Status != panel.Ready || !ok {
		m.players = nil
		return
	}
	m.players = domain.FilterPlayers(snap.Players, m.filter.Value(), m.field)
	m.playerCursor = clamp(m.playerCursor, len(m.players))
	m.idCursor = 0
}

func (m *Model) movePlayer(step int) {
	m.playerCursor = clamp(m.playerCursor+step, len(m.players))
	m.idCursor = 0
}

func (m *Model) moveIdentifier(step int) {
	if len(m.players) == 0 {
		return
	}
	m.idCursor = clamp(m.idCursor+step, len(m.players[m.playerCursor].Identifiers))
}

func (m *Model) selectedIdentifier() (string, bool) {
	if len(m.players) == 0 {
		return "", false
	}
	ids := m.players[m.playerCursor].Identifiers
	if len(ids) == 0 {
		return "", false
	}
	return ids[clamp(m.idCursor, len(ids))], true
}

func (m *Model) activateIdentifier() tea.Cmd {
	id, ok := m.selectedIdentifier()
	if !ok {
		return nil
	}

	h, err := m.shell.Activate(m.ctx, id)
	if err != nil {
		m.log.Warn("identifier handoff failed", logger.Error(err))
		m.setError("Failed to open identifier.")
		return nil
	}

	switch h.Action {
	case shell.ActionCopy:
		return copyCmd(m.opts.Clipboard, h.Copy)
	default:
		kind := m.shell.Active()
		m.inputs[kind].SetValue(m.shell.Panel(kind).State().Input)
		m.setFocus(focusResults)
		m.setStatus("")
		if !h.Triggered {
			return nil
		}
		return tea.Batch(m.spinner.Tick, m.lookupCmd(h.Request))
	}
}

// forwardToInput hands non-key messages (cursor blink) to the focused input.
func (m *Model) forwardToInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch {
	case m.mode == modeAddBookmark && m.dialog.onLabel:
		m.dialog.label, cmd = m.dialog.label.Update(msg)
	case m.mode == modeAddBookmark:
		m.dialog.address, cmd = m.dialog.address.Update(msg)
	case m.mode == modeMain && m.focus == focusInput:
		kind := m.shell.Active()
		m.inputs[kind], cmd = m.inputs[kind].Update(msg)
	case m.mode == modeMain && m.focus == focusFilter:
		m.filter, cmd = m.filter.Update(msg)
	}
	return cmd
}
