package statemachine_test

import (
	"context"
	"errors"
	"testing"

	"github.com/excelglass/contactrelay/pkg/statemachine"
)

const (
	Idle       = statemachine.StringState("idle")
	Submitting = statemachine.StringState("submitting")
	Succeeded  = statemachine.StringState("succeeded")
	Failed     = statemachine.StringState("failed")
)

const (
	Submit  = statemachine.StringEvent("submit")
	Succeed = statemachine.StringEvent("succeed")
	Fail    = statemachine.StringEvent("fail")
)

func TestStateMachine(t *testing.T) {
	t.Parallel()

	t.Run("Basic Transitions", func(t *testing.T) {
		t.Parallel()
		sm := statemachine.MustNew(Idle,
			statemachine.WithTransition(Idle, Submitting, Submit),
			statemachine.WithTransition(Submitting, Succeeded, Succeed),
		)

		if sm.Current() != Idle {
			t.Fatalf("Expected initial state to be %s, got %s", Idle, sm.Current())
		}

		ctx := context.Background()

		if !sm.CanFire(ctx, Submit, nil) {
			t.Fatal("Expected CanFire to return true for Submit event in Idle state")
		}

		if err := sm.Fire(ctx, Submit, nil); err != nil {
			t.Fatalf("Failed to fire Submit event: %v", err)
		}
		if sm.Current() != Submitting {
			t.Fatalf("Expected state to be %s, got %s", Submitting, sm.Current())
		}

		if err := sm.Fire(ctx, Succeed, nil); err != nil {
			t.Fatalf("Failed to fire Succeed event: %v", err)
		}
		if sm.Current() != Succeeded {
			t.Fatalf("Expected state to be %s, got %s", Succeeded, sm.Current())
		}
	})

	t.Run("No Transition Available", func(t *testing.T) {
		t.Parallel()
		sm := statemachine.MustNew(Idle,
			statemachine.WithTransition(Idle, Submitting, Submit),
		)

		ctx := context.Background()

		// Succeed is only valid from Submitting.
		err := sm.Fire(ctx, Succeed, nil)
		if !statemachine.IsNoTransitionAvailableError(err) {
			t.Fatalf("Expected ErrNoTransitionAvailable, got %v", err)
		}
		if sm.CanFire(ctx, Succeed, nil) {
			t.Fatal("Expected CanFire to return false for Succeed event in Idle state")
		}

		// Re-firing the event that triggered Submitting must not be allowed.
		if err := sm.Fire(ctx, Submit, nil); err != nil {
			t.Fatalf("Failed to fire Submit event: %v", err)
		}
		if sm.CanFire(ctx, Submit, nil) {
			t.Fatal("Expected CanFire to return false for Submit event while Submitting")
		}
	})

	t.Run("Guards", func(t *testing.T) {
		t.Parallel()
		transportReady := func(ctx context.Context, from statemachine.State, event statemachine.Event, data any) bool {
			ready, ok := data.(bool)
			return ok && ready
		}

		sm := statemachine.MustNew(Idle,
			statemachine.WithTransition(Idle, Submitting, Submit,
				statemachine.WithGuard(transportReady),
			),
		)

		ctx := context.Background()

		err := sm.Fire(ctx, Submit, false)
		if !statemachine.IsTransitionRejectedError(err) {
			t.Fatalf("Expected ErrTransitionRejected, got %v", err)
		}
		if sm.Current() != Idle {
			t.Fatalf("Expected state to remain %s, got %s", Idle, sm.Current())
		}

		if err := sm.Fire(ctx, Submit, true); err != nil {
			t.Fatalf("Failed to fire Submit event with passing guard: %v", err)
		}
		if sm.Current() != Submitting {
			t.Fatalf("Expected state to be %s, got %s", Submitting, sm.Current())
		}
	})

	t.Run("Actions", func(t *testing.T) {
		t.Parallel()
		var calls []string
		record := func(name string) statemachine.Action {
			return func(ctx context.Context, from, to statemachine.State, event statemachine.Event, data any) error {
				calls = append(calls, name)
				return nil
			}
		}

		sm := statemachine.MustNew(Submitting,
			statemachine.WithTransition(Submitting, Succeeded, Succeed,
				statemachine.WithAction(record("reset-draft")),
				statemachine.WithAction(record("notify")),
			),
		)

		if err := sm.Fire(context.Background(), Succeed, nil); err != nil {
			t.Fatalf("Failed to fire Succeed event: %v", err)
		}
		if len(calls) != 2 || calls[0] != "reset-draft" || calls[1] != "notify" {
			t.Fatalf("Expected actions in declaration order, got %v", calls)
		}
	})

	t.Run("Action Failure Aborts Transition", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("boom")
		failing := func(ctx context.Context, from, to statemachine.State, event statemachine.Event, data any) error {
			return boom
		}

		sm := statemachine.MustNew(Submitting,
			statemachine.WithTransition(Submitting, Succeeded, Succeed,
				statemachine.WithAction(failing),
			),
		)

		err := sm.Fire(context.Background(), Succeed, nil)
		if !errors.Is(err, boom) {
			t.Fatalf("Expected action error, got %v", err)
		}
		if sm.Current() != Submitting {
			t.Fatalf("Expected state to remain %s after action failure, got %s", Submitting, sm.Current())
		}
	})

	t.Run("Guard Priority", func(t *testing.T) {
		t.Parallel()
		always := func(ctx context.Context, from statemachine.State, event statemachine.Event, data any) bool { return true }
		never := func(ctx context.Context, from statemachine.State, event statemachine.Event, data any) bool { return false }

		// First declared transition with passing guards wins.
		sm := statemachine.MustNew(Submitting,
			statemachine.WithTransition(Submitting, Failed, Fail, statemachine.WithGuard(never)),
			statemachine.WithTransition(Submitting, Idle, Fail, statemachine.WithGuard(always)),
		)

		if err := sm.Fire(context.Background(), Fail, nil); err != nil {
			t.Fatalf("Failed to fire Fail event: %v", err)
		}
		if sm.Current() != Idle {
			t.Fatalf("Expected guarded fallback to %s, got %s", Idle, sm.Current())
		}
	})

	t.Run("Nil Event", func(t *testing.T) {
		t.Parallel()
		sm := statemachine.MustNew(Idle,
			statemachine.WithTransition(Idle, Submitting, Submit),
		)
		if err := sm.Fire(context.Background(), nil, nil); !errors.Is(err, statemachine.ErrInvalidEvent) {
			t.Fatalf("Expected ErrInvalidEvent, got %v", err)
		}
		if sm.CanFire(context.Background(), nil, nil) {
			t.Fatal("Expected CanFire to return false for nil event")
		}
	})
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("nil initial state", func(t *testing.T) {
		t.Parallel()
		if _, err := statemachine.New(nil); err == nil {
			t.Fatal("Expected error for nil initial state")
		}
	})

	t.Run("invalid transition option", func(t *testing.T) {
		t.Parallel()
		_, err := statemachine.New(Idle,
			statemachine.WithTransition(Idle, nil, Submit),
		)
		if !errors.Is(err, statemachine.ErrInvalidTransition) {
			t.Fatalf("Expected ErrInvalidTransition, got %v", err)
		}
	})
}
