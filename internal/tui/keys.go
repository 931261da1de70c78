package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	NextTab     key.Binding
	PrevTab     key.Binding
	Submit      key.Binding
	Focus       key.Binding
	Up          key.Binding
	Down        key.Binding
	Left        key.Binding
	Right       key.Binding
	Filter      key.Binding
	FilterField key.Binding
	Bookmarks   key.Binding
	AddBookmark key.Binding
	Remove      key.Binding
	Reload      key.Binding
	Logout      key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		NextTab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next panel")),
		PrevTab:     key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev panel")),
		Submit:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "search / open")),
		Focus:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "input ⇄ results")),
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:        key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev identifier")),
		Right:       key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next identifier")),
		Filter:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter players")),
		FilterField: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter by name/id")),
		Bookmarks:   key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "bookmarks")),
		AddBookmark: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add bookmark")),
		Remove:      key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "remove bookmark")),
		Reload:      key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "import seed file")),
		Logout:      key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "logout")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:        key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.Submit, k.Focus, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextTab, k.PrevTab, k.Submit, k.Focus},
		{k.Up, k.Down, k.Left, k.Right},
		{k.Filter, k.FilterField, k.Bookmarks, k.AddBookmark, k.Remove},
		{k.Reload, k.Logout, k.Help, k.Quit},
	}
}
