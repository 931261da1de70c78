// Package tui is the terminal front end of the lookup shell, built on
// bubbletea. All shell state is touched from Update only; lookups run as
// commands and come back as messages carrying their ticket.
package tui

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrSnakeDoc/cfxlookup/internal/domain"
	"github.com/MrSnakeDoc/cfxlookup/internal/gate"
	"github.com/MrSnakeDoc/cfxlookup/internal/logger"
	"github.com/MrSnakeDoc/cfxlookup/internal/shell"
)

type mode int

const (
	modeGate mode = iota
	modeMain
	modeAddBookmark
)

type focus int

const (
	focusInput focus = iota
	focusResults
	focusFilter
	focusBookmarks
)

// fallbackMessage replaces the whole view after an unexpected failure.
const fallbackMessage = "Something went wrong. Please restart cfxlookup."

// Options configures a Model.
type Options struct {
	GateKey     string
	GatePresses int
	// RelayURL is used to build avatar links shown in profiles.
	RelayURL string
	// Reload, when set, asks the bookmark seed importer to run.
	Reload chan<- struct{}
	// Clipboard defaults to the system clipboard.
	Clipboard func(string) error
}

type Model struct {
	ctx   context.Context
	shell *shell.Shell
	log   logger.Logger
	opts  Options

	mode  mode
	focus focus
	gate  *gate.Gate
	// unlocked is set by the gate callback and consumed by Update.
	unlocked bool

	keys     keyMap
	help     help.Model
	spinner  spinner.Model
	inputs   [3]textinput.Model
	filter   textinput.Model
	field    domain.SearchField
	title    title
	dialog   addDialog
	showHelp bool

	players      []domain.PlayerRecord
	playerCursor int
	idCursor     int

	bookmarks []domain.Bookmark
	bmCursor  int

	status    string
	statusErr bool

	fatal  string
	width  int
	height int
}

// New builds the model. unlocked is the persisted gate state.
func New(ctx context.Context, sh *shell.Shell, log logger.Logger, unlocked bool, opts Options) *Model {
	if opts.Clipboard == nil {
		opts.Clipboard = systemClipboard
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styleSuccess

	m := &Model{
		ctx:     ctx,
		shell:   sh,
		log:     log,
		opts:    opts,
		keys:    defaultKeyMap(),
		help:    help.New(),
		spinner: sp,
		title:   newTitle(),
		field:   domain.SearchByName,
	}

	placeholders := map[domain.Kind]string{
		domain.KindServer:       "Server address (e.g., 127.0.0.1:30120)",
		domain.KindChatUser:     "Discord user id",
		domain.KindPlatformUser: "Steam hex (e.g., " + domain.PlatformHexExample + ")",
	}
	for _, k := range domain.Kinds {
		in := textinput.New()
		in.Placeholder = placeholders[k]
		in.Prompt = "> "
		in.CharLimit = 128
		in.SetValue(sh.Panel(k).State().Input)
		m.inputs[k] = in
	}

	m.filter = textinput.New()
	m.filter.Prompt = "filter: "
	m.filter.CharLimit = 64

	if unlocked {
		m.enterMain()
	} else {
		m.enterGate()
	}
	return m
}

func (m *Model) enterGate() {
	m.mode = modeGate
	m.unlocked = false
	m.gate = gate.New(m.opts.GateKey, m.opts.GatePresses, func() { m.unlocked = true })
	for k := range m.inputs {
		m.inputs[k].Blur()
	}
}

func (m *Model) enterMain() {
	m.mode = modeMain
	m.setFocus(focusInput)
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.title.tick(), m.loadBookmarks(), textinput.Blink)
}

// Update is the single place state changes. A panic here is turned into the
// fallback view.
func (m *Model) Update(msg tea.Msg) (model tea.Model, cmd tea.Cmd) {
	defer func() {
		if r := recover(); r != nil {
			m.log.Error("tui update panicked",
				logger.String("panic", fmt.Sprint(r)),
				logger.String("stack", string(debug.Stack())))
			m.fatal = fallbackMessage
			model, cmd = m, nil
		}
	}()

	if m.fatal != "" {
		if k, ok := msg.(tea.KeyMsg); ok && k.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil
	}
	return m, m.update(msg)
}

func (m *Model) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		for k := range m.inputs {
			m.inputs[k].Width = max(msg.Width-8, 10)
		}
		return nil

	case titleTickMsg:
		m.title = m.title.advance()
		return m.title.tick()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd

	case lookupMsg:
		return m.applyLookup(msg.outcome)

	case bookmarksMsg:
		if msg.err != nil {
			m.setError("Failed to load bookmarks.")
			m.log.Warn("failed to load bookmarks", logger.Error(msg.err))
			return nil
		}
		m.bookmarks = msg.list
		m.bmCursor = clamp(m.bmCursor, len(m.bookmarks))
		return nil

	case BookmarksChangedMsg:
		return m.loadBookmarks()

	case bookmarkAddedMsg:
		return m.applyBookmarkAdded(msg)

	case copiedMsg:
		if msg.err != nil {
			m.setError("Clipboard unavailable.")
			m.log.Debug("clipboard write failed", logger.Error(msg.err))
			return nil
		}
		m.setStatus("Copied " + msg.text)
		return nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.forwardToInput(msg)
}

func (m *Model) setStatus(s string) { m.status, m.statusErr = s, false }
func (m *Model) setError(s string)  { m.status, m.statusErr = s, true }

func clamp(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
