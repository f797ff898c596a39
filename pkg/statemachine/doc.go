// Package statemachine implements a small, thread-safe finite state machine
// with guarded transitions and transition actions.
//
// States and events are interfaces with a single Name method; StringState and
// StringEvent cover the common case. Transitions are declared up front via
// options, optionally protected by Guard functions (all must pass) and
// accompanied by Action functions executed before the state changes. An
// action returning an error aborts the transition, leaving the machine in its
// previous state.
//
// # Usage
//
// The contact-form submission lifecycle is the motivating example:
//
//	const (
//	    Idle       = statemachine.StringState("idle")
//	    Submitting = statemachine.StringState("submitting")
//	    Succeeded  = statemachine.StringState("succeeded")
//	    Failed     = statemachine.StringState("failed")
//	)
//
//	sm := statemachine.MustNew(Idle,
//	    statemachine.WithTransition(Idle, Submitting, Submit),
//	    statemachine.WithTransition(Submitting, Succeeded, Succeed),
//	    statemachine.WithTransition(Submitting, Failed, Fail),
//	    statemachine.WithTransition(Failed, Submitting, Submit),
//	)
//
//	if sm.CanFire(ctx, Submit, nil) {
//	    _ = sm.Fire(ctx, Submit, nil)
//	}
//
// When several transitions share a from-state and event, the first one whose
// guards pass wins, so declaration order doubles as priority.
//
// Fire and CanFire take a context and an opaque data value which are passed
// through to guards and actions; the machine itself never inspects them.
package statemachine
