// Package panel implements the per-kind lookup state machine.
//
//	Idle ──trigger──▶ Loading ──ok──▶ Ready
//	                     │
//	                     └──err──▶ Failed
//	Ready/Failed ──trigger──▶ Loading
//
// Every trigger hands out a ticket. Only the most recent ticket may commit a
// result; outcomes carrying an older ticket are dropped.
package panel

import (
	"strings"

	"github.com/MrSnakeDoc/cfxlookup/internal/domain"
)

type Status int

const (
	Idle Status = iota
	Loading
	Ready
	Failed
)

func (s Status) String() string {
	switch s {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return "idle"
	}
}

// Ticket identifies one trigger.
type Ticket uint64

// State is a snapshot of a panel. Panels replace their State wholesale, so a
// State obtained from Panel.State is never modified afterwards.
type State struct {
	Status Status
	Input  string
	// Query is the input the current result or error belongs to.
	Query  string
	Result domain.LookupResult
	Err    error
}

// Message is the inline failure text, empty unless Failed.
func (s State) Message() string {
	if s.Status != Failed {
		return ""
	}
	return domain.PublicMessage(s.Err)
}

// Panel is owned by a single goroutine.
type Panel struct {
	kind   domain.Kind
	state  State
	latest Ticket
}

func New(kind domain.Kind) *Panel {
	return &Panel{kind: kind}
}

func (p *Panel) Kind() domain.Kind { return p.kind }

func (p *Panel) State() State { return p.state }

// Latest returns the ticket of the newest trigger, zero before the first.
func (p *Panel) Latest() Ticket { return p.latest }

// SetInput edits the input without touching status or result.
func (p *Panel) SetInput(input string) {
	next := p.state
	next.Input = input
	p.state = next
}

// Trigger starts a lookup for the current input. Blank input is a no-op and
// reports false.
func (p *Panel) Trigger() (Ticket, bool) {
	if strings.TrimSpace(p.state.Input) == "" {
		return 0, false
	}
	p.latest++
	p.state = State{
		Status: Loading,
		Input:  p.state.Input,
		Query:  p.state.Input,
	}
	return p.latest, true
}

// Resolve commits the outcome of ticket t. It reports false and changes
// nothing when t has been superseded or the panel is not loading.
func (p *Panel) Resolve(t Ticket, result domain.LookupResult, err error) bool {
	if t != p.latest || p.state.Status != Loading {
		return false
	}
	next := State{Input: p.state.Input, Query: p.state.Query}
	if err != nil {
		next.Status = Failed
		next.Err = err
	} else {
		next.Status = Ready
		next.Result = result
	}
	p.state = next
	return true
}

// Restore puts the panel straight into Ready with a remembered result. Any
// in-flight ticket is superseded.
func (p *Panel) Restore(query string, result domain.LookupResult) {
	p.latest++
	p.state = State{Status: Ready, Input: query, Query: query, Result: result}
}

// Reset returns the panel to Idle with empty input, superseding any
// in-flight ticket.
func (p *Panel) Reset() {
	p.latest++
	p.state = State{}
}
