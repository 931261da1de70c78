package tui

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/MrSnakeDoc/cfxlookup/internal/domain"
	"github.com/MrSnakeDoc/cfxlookup/internal/panel"
)

const (
	defaultWidth   = 80
	playerRows     = 8
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04"
)

var tabNames = map[domain.Kind]string{
	domain.KindServer:       "FiveM",
	domain.KindChatUser:     "Discord",
	domain.KindPlatformUser: "Steam",
}

func (m *Model) View() (out string) {
	defer func() {
		if r := recover(); r != nil {
			m.fatal = fallbackMessage
			out = styleError.Render(fallbackMessage)
		}
	}()

	if m.fatal != "" {
		return styleError.Render(m.fatal) + "\n" + styleSubtle.Render("ctrl+c to quit")
	}

	switch m.mode {
	case modeGate:
		return m.renderGate()
	case modeAddBookmark:
		return m.renderDialog()
	default:
		return m.renderMain()
	}
}

func (m *Model) contentWidth() int {
	if m.width <= 0 {
		return defaultWidth
	}
	return max(m.width-4, 20)
}

func (m *Model) renderGate() string {
	lines := []string{
		styleTitle.Render("404 Error"),
		"",
		"Access Denied: You don't have permission to use this tool.",
		styleSubtle.Render("[ERR_CODE: 0x8007045D]"),
	}
	body := strings.Join(lines, "\n")
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
	}
	return body
}

func (m *Model) renderMain() string {
	var b strings.Builder

	b.WriteString(styleTitle.Render(m.title.String() + "▌"))
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	kind := m.shell.Active()
	b.WriteString(m.inputs[kind].View())
	b.WriteString("\n")

	if kind == domain.KindServer {
		b.WriteString(m.renderBookmarkBar())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(m.renderPanel(kind))
	b.WriteString("\n")

	if m.status != "" {
		if m.statusErr {
			b.WriteString(styleError.Render(m.status))
		} else {
			b.WriteString(styleSuccess.Render(m.status))
		}
		b.WriteString("\n")
	}

	m.help.ShowAll = m.showHelp
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *Model) renderTabs() string {
	tabs := make([]string, 0, len(domain.Kinds))
	for _, k := range domain.Kinds {
		style := styleTab
		if k == m.shell.Active() {
			style = styleTabActive
		}
		tabs = append(tabs, style.Render(tabNames[k]))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m *Model) renderBookmarkBar() string {
	if len(m.bookmarks) == 0 {
		return styleSubtle.Render("no bookmarks (a to add)")
	}
	parts := make([]string, 0, len(m.bookmarks))
	for i, bm := range m.bookmarks {
		label := "★ " + truncate(bm.Label, 24)
		if m.focus == focusBookmarks && i == m.bmCursor {
			label = styleSelected.Render(label)
		}
		parts = append(parts, label)
	}
	bar := strings.Join(parts, "  ")
	if m.focus == focusBookmarks {
		bm := m.bookmarks[clamp(m.bmCursor, len(m.bookmarks))]
		hint := bm.Address
		if bm.ServerName != "" {
			hint = bm.ServerName + " (" + bm.Address + ")"
		}
		bar += "\n" + styleSubtle.Render(truncate(hint, m.contentWidth()))
	}
	return bar
}

func (m *Model) renderPanel(kind domain.Kind) string {
	st := m.shell.Panel(kind).State()
	switch st.Status {
	case panel.Idle:
		return styleSubtle.Render("Enter an identifier and press enter.")
	case panel.Loading:
		return m.spinner.View() + " Looking up " + st.Query + "..."
	case panel.Failed:
		return styleError.Render("✗ " + st.Message())
	}

	switch res := st.Result.(type) {
	case *domain.ServerSnapshot:
		return m.renderServer(res)
	case *domain.ChatUserProfile:
		return m.renderChatProfile(res)
	case *domain.PlatformUserProfile:
		return m.renderPlatformProfile(res)
	default:
		return ""
	}
}

func (m *Model) renderServer(snap *domain.ServerSnapshot) string {
	w := m.contentWidth()
	var b strings.Builder

	b.WriteString(styleTitle.Render(truncate(snap.Headline(), w)))
	b.WriteString("\n")

	filterLine := m.filter.View()
	if m.focus != focusFilter && m.filter.Value() == "" {
		filterLine = styleSubtle.Render("/ to filter")
	}
	b.WriteString(filterLine + styleSubtle.Render(fmt.Sprintf("  [by %s, f to toggle]", m.field)))
	b.WriteString("\n\n")

	if len(m.players) == 0 {
		b.WriteString(styleSubtle.Render("No players found."))
		return b.String()
	}

	start := max(0, min(m.playerCursor-playerRows/2, len(m.players)-playerRows))
	end := min(len(m.players), start+playerRows)
	for i := start; i < end; i++ {
		p := m.players[i]
		nameW := max(w-16, 8)
		line := fmt.Sprintf("%4d  %s %4dms", p.ID, runewidth.FillRight(truncate(p.DisplayName(), nameW), nameW), p.Ping)
		if i == m.playerCursor && m.focus == focusResults {
			line = styleSelected.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
		if i == m.playerCursor {
			b.WriteString(m.renderIdentifiers(p, w))
		}
	}
	if len(m.players) > playerRows {
		b.WriteString(styleSubtle.Render(fmt.Sprintf("%d/%d players", m.playerCursor+1, len(m.players))))
	}
	return b.String()
}

func (m *Model) renderIdentifiers(p domain.PlayerRecord, w int) string {
	if len(p.Identifiers) == 0 {
		return styleSubtle.Render("      no identifiers") + "\n"
	}
	var b strings.Builder
	for j, id := range p.Identifiers {
		line := "      " + truncate(id, w-8)
		if j == m.idCursor && m.focus == focusResults {
			line = styleLabel.Render("    ▸ " + truncate(id, w-8))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) renderChatProfile(p *domain.ChatUserProfile) string {
	rows := [][2]string{
		{"Name", p.DisplayName},
		{"Username", p.Handle},
		{"ID", p.ID},
		{"Created", formatDate(p.CreatedAt.IsZero(), p.CreatedAt.Format(dateLayout))},
		{"Badges", orNA(strings.Join(p.BadgeLabels(), ", "))},
		{"Avatar", m.avatarLink(p.AvatarURL)},
	}
	return styleBox.Render(renderRows(rows, m.contentWidth()-4))
}

func (m *Model) renderPlatformProfile(p *domain.PlatformUserProfile) string {
	rows := [][2]string{
		{"Name", p.DisplayName},
		{"Real name", orNA(p.RealName)},
		{"Steam ID", p.ID},
		{"Status", p.PresenceState.String()},
		{"Country", orNA(p.CountryCode)},
		{"Last seen", formatDate(p.LastSeenAt.IsZero(), p.LastSeenAt.Format(dateTimeLayout))},
		{"Profile", orNA(p.ProfileURL)},
		{"Avatar", m.avatarLink(p.AvatarURL)},
	}
	return styleBox.Render(renderRows(rows, m.contentWidth()-4))
}

func (m *Model) renderDialog() string {
	var b strings.Builder
	b.WriteString(styleTitle.Render("Add bookmark"))
	b.WriteString("\n\n")
	b.WriteString(m.dialog.label.View())
	b.WriteString("\n")
	b.WriteString(m.dialog.address.View())
	b.WriteString("\n\n")
	switch {
	case m.dialog.busy:
		b.WriteString(m.spinner.View() + " Validating server...")
	case m.dialog.err != "":
		b.WriteString(styleError.Render(m.dialog.err))
	default:
		b.WriteString(styleSubtle.Render("enter to save • tab to switch field • esc to cancel"))
	}

	box := styleDialog.Render(b.String())
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}

// avatarLink routes avatar images through the relay.
func (m *Model) avatarLink(raw string) string {
	if raw == "" {
		return "N/A"
	}
	if m.opts.RelayURL == "" {
		return raw
	}
	return m.opts.RelayURL + "/relay/avatar?" + url.Values{"url": {raw}}.Encode()
}

func renderRows(rows [][2]string, w int) string {
	labelW := 0
	for _, r := range rows {
		labelW = max(labelW, runewidth.StringWidth(r[0]))
	}
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		label := styleLabel.Render(runewidth.FillRight(r[0], labelW))
		lines = append(lines, label+"  "+truncate(r[1], w-labelW-2))
	}
	return strings.Join(lines, "\n")
}

// truncate cuts s to w display cells.
func truncate(s string, w int) string {
	if w <= 1 {
		return ""
	}
	return runewidth.Truncate(s, w, "…")
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

func formatDate(zero bool, formatted string) string {
	if zero {
		return "N/A"
	}
	return formatted
}
