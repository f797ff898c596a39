package statemachine

import (
	"context"
)

// State is one node of the machine, identified by its name. The submission
// lifecycle uses StringState values (idle, submitting, succeeded, failed).
type State interface {
	Name() string
}

// Event names a trigger that may move the machine to another state.
type Event interface {
	Name() string
}

// Action runs a side effect while a transition is taken, before the state
// changes. A non-nil error aborts the transition and leaves the machine in
// its current state.
type Action func(ctx context.Context, from, to State, event Event, data any) error

// Guard decides at fire time whether a transition may be taken. All guards
// of a transition must pass.
type Guard func(ctx context.Context, from State, event Event, data any) bool

// Transition is one edge of the machine: an event moving it from one state
// to another, with optional guards and actions.
type Transition struct {
	From    State
	To      State
	Event   Event
	Guards  []Guard
	Actions []Action
}

// StateMachine is what callers drive after construction: inspect the current
// state, fire events, and probe whether an event would be accepted. The
// transition table is fixed at construction time through options.
type StateMachine interface {
	Current() State
	Fire(ctx context.Context, event Event, data any) error
	CanFire(ctx context.Context, event Event, data any) bool
}

// StringState is the plain string State used throughout this module.
type StringState string

func (s StringState) Name() string {
	return string(s)
}

// StringEvent is the plain string Event counterpart of StringState.
type StringEvent string

func (e StringEvent) Name() string {
	return string(e)
}
