// Package shell is the interactive application core: three lookup panels,
// the persisted session, bookmarks and the cross-panel handoff. It holds no
// presentation code; the terminal UI drives it.
//
// A Shell is owned by one goroutine. Run is the only method meant to be
// called elsewhere, and it touches nothing but the resolver.
package shell

import (
	"context"
	"fmt"
	"strings"

	"github.com/MrSnakeDoc/cfxlookup/internal/bookmarks"
	"github.com/MrSnakeDoc/cfxlookup/internal/domain"
	"github.com/MrSnakeDoc/cfxlookup/internal/logger"
	"github.com/MrSnakeDoc/cfxlookup/internal/panel"
	"github.com/MrSnakeDoc/cfxlookup/internal/session"
)

// Resolver turns raw panel input into a result.
type Resolver interface {
	Resolve(ctx context.Context, kind domain.Kind, raw string) (domain.LookupResult, error)
}

// Request is one triggered lookup.
type Request struct {
	Kind   domain.Kind
	Ticket panel.Ticket
	Query  string
}

// Outcome is what Run produced for a Request.
type Outcome struct {
	Request
	Result domain.LookupResult
	Err    error
}

type Shell struct {
	panels    map[domain.Kind]*panel.Panel
	active    domain.Kind
	resolver  Resolver
	access    *session.Access
	chat      *session.ChatMemory
	bookmarks *bookmarks.Store
	log       logger.Logger
}

func New(resolver Resolver, access *session.Access, chat *session.ChatMemory, bm *bookmarks.Store, log logger.Logger) *Shell {
	panels := make(map[domain.Kind]*panel.Panel, len(domain.Kinds))
	for _, k := range domain.Kinds {
		panels[k] = panel.New(k)
	}
	return &Shell{
		panels:    panels,
		active:    domain.KindServer,
		resolver:  resolver,
		access:    access,
		chat:      chat,
		bookmarks: bm,
		log:       log,
	}
}

// Restore loads persisted state: the unlock flag and the remembered chat
// search, which puts the chat panel in Ready without a request.
func (s *Shell) Restore(ctx context.Context) (unlocked bool, err error) {
	unlocked, err = s.access.Unlocked(ctx)
	if err != nil {
		return false, err
	}

	query, profile, ok, err := s.chat.Last(ctx)
	if err != nil {
		// A broken remembered search is not worth refusing to start.
		s.log.Warn("failed to restore last chat search", logger.Error(err))
		return unlocked, nil
	}
	if ok {
		s.panels[domain.KindChatUser].Restore(query, profile)
		s.log.Debug("restored last chat search", logger.String("query", query))
	}
	return unlocked, nil
}

func (s *Shell) Active() domain.Kind { return s.active }

func (s *Shell) SetActive(kind domain.Kind) {
	if _, ok := s.panels[kind]; ok {
		s.active = kind
	}
}

func (s *Shell) Panel(kind domain.Kind) *panel.Panel { return s.panels[kind] }

func (s *Shell) Bookmarks() *bookmarks.Store { return s.bookmarks }

// Search triggers the panel for kind with its current input.
func (s *Shell) Search(kind domain.Kind) (Request, bool) {
	p := s.panels[kind]
	t, ok := p.Trigger()
	if !ok {
		return Request{}, false
	}
	return Request{Kind: kind, Ticket: t, Query: p.State().Query}, true
}

// Run performs the lookup for req. It blocks and is safe to call from any
// goroutine.
func (s *Shell) Run(ctx context.Context, req Request) Outcome {
	res, err := s.resolver.Resolve(ctx, req.Kind, req.Query)
	if err != nil {
		s.log.Debug("lookup failed",
			logger.String("kind", req.Kind.String()),
			logger.String("failure", domain.FailureOf(err).String()),
			logger.Error(err))
	}
	return Outcome{Request: req, Result: res, Err: err}
}

// Commit applies an outcome to its panel. Superseded outcomes are dropped
// and reported as false. A successful chat lookup is remembered.
func (s *Shell) Commit(ctx context.Context, o Outcome) bool {
	if !s.panels[o.Kind].Resolve(o.Ticket, o.Result, o.Err) {
		s.log.Debug("dropped superseded lookup",
			logger.String("kind", o.Kind.String()),
			logger.Uint64("ticket", uint64(o.Ticket)))
		return false
	}
	if o.Err == nil && o.Kind == domain.KindChatUser {
		if profile, ok := o.Result.(*domain.ChatUserProfile); ok {
			if err := s.chat.Remember(ctx, o.Query, profile); err != nil {
				s.log.Warn("failed to remember chat search", logger.Error(err))
			}
		}
	}
	return true
}

// SelectBookmark switches to the server panel and searches the bookmark's
// address.
func (s *Shell) SelectBookmark(bm domain.Bookmark) (Request, bool) {
	id := bookmarks.Select(bm)
	s.active = id.Kind
	s.panels[id.Kind].SetInput(id.Value)
	return s.Search(id.Kind)
}

// Action tells the caller what activating a player identifier did.
type Action int

const (
	// ActionCopy means Copy holds text for the clipboard.
	ActionCopy Action = iota
	// ActionHandoff means the active panel changed and, when Triggered,
	// Request must be run.
	ActionHandoff
)

type Handoff struct {
	Action    Action
	Request   Request
	Triggered bool
	Copy      string
}

// Activate handles a player identifier. discord:<id> moves to the chat user
// panel with <id>, steam:<hex> moves to the platform panel with the whole
// identifier; both clear the destination's remembered search and start a
// lookup. Anything else yields the text after the first colon for copying.
func (s *Shell) Activate(ctx context.Context, identifier string) (Handoff, error) {
	prefix, rest, found := strings.Cut(identifier, ":")
	if !found {
		return Handoff{Action: ActionCopy, Copy: identifier}, nil
	}

	var (
		kind  domain.Kind
		input string
	)
	switch prefix {
	case "discord":
		kind, input = domain.KindChatUser, rest
		if err := s.chat.Clear(ctx); err != nil {
			return Handoff{}, fmt.Errorf("handoff to %s: %w", kind, err)
		}
	case "steam":
		kind, input = domain.KindPlatformUser, identifier
	default:
		return Handoff{Action: ActionCopy, Copy: rest}, nil
	}

	s.log.Debug("handoff",
		logger.String("identifier", identifier),
		logger.String("to", kind.String()))

	s.active = kind
	p := s.panels[kind]
	p.Reset()
	p.SetInput(input)
	req, ok := s.Search(kind)
	return Handoff{Action: ActionHandoff, Request: req, Triggered: ok}, nil
}

// Unlock persists the passed gate.
func (s *Shell) Unlock(ctx context.Context) error { return s.access.Unlock(ctx) }

// Logout clears the unlock flag. Panels keep their state for the next
// unlock within the same process.
func (s *Shell) Logout(ctx context.Context) error {
	if err := s.access.Logout(ctx); err != nil {
		return err
	}
	s.log.Info("logged out")
	return nil
}
