package statemachine

import (
	"context"
	"fmt"
	"sync"
)

// machine is a thread-safe in-memory StateMachine. Transitions are indexed
// by [fromState][event] for O(1) lookup on Fire.
type machine struct {
	current     State
	transitions map[string]map[string][]Transition
	mu          sync.RWMutex
}

func newMachine(initial State) *machine {
	return &machine{
		current:     initial,
		transitions: make(map[string]map[string][]Transition),
	}
}

func (m *machine) Current() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

func (m *machine) addTransition(from, to State, event Event, guards []Guard, actions []Action) error {
	if from == nil || to == nil || event == nil {
		return ErrInvalidTransition
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	fromName := from.Name()
	if _, ok := m.transitions[fromName]; !ok {
		m.transitions[fromName] = make(map[string][]Transition)
	}

	// Multiple transitions may share from/event; guards pick the winner.
	m.transitions[fromName][event.Name()] = append(m.transitions[fromName][event.Name()], Transition{
		From:    from,
		To:      to,
		Event:   event,
		Guards:  guards,
		Actions: actions,
	})
	return nil
}

func (m *machine) Fire(ctx context.Context, event Event, data any) error {
	if event == nil {
		return ErrInvalidEvent
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	candidates, err := m.candidates(event)
	if err != nil {
		return err
	}

	// First transition whose guards all pass wins, so declaration order
	// doubles as priority.
	var selected *Transition
	for i := range candidates {
		if guardsPass(ctx, m.current, event, data, candidates[i].Guards) {
			selected = &candidates[i]
			break
		}
	}
	if selected == nil {
		return NewErrTransitionRejected(m.current.Name(), event.Name())
	}

	// Any action failure aborts the transition before the state changes.
	for _, action := range selected.Actions {
		if action == nil {
			continue
		}
		if err := action(ctx, m.current, selected.To, event, data); err != nil {
			return fmt.Errorf("action failed: %w", err)
		}
	}

	m.current = selected.To
	return nil
}

func (m *machine) CanFire(ctx context.Context, event Event, data any) bool {
	if event == nil {
		return false
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	candidates, err := m.candidates(event)
	if err != nil {
		return false
	}
	for _, t := range candidates {
		if guardsPass(ctx, m.current, event, data, t.Guards) {
			return true
		}
	}
	return false
}

// candidates returns the transitions registered for the current state and
// event. Callers must hold at least a read lock.
func (m *machine) candidates(event Event) ([]Transition, error) {
	byEvent, ok := m.transitions[m.current.Name()]
	if !ok {
		return nil, NewErrNoTransitionAvailable(m.current.Name(), event.Name())
	}
	ts, ok := byEvent[event.Name()]
	if !ok || len(ts) == 0 {
		return nil, NewErrNoTransitionAvailable(m.current.Name(), event.Name())
	}
	return ts, nil
}

func guardsPass(ctx context.Context, from State, event Event, data any, guards []Guard) bool {
	for _, guard := range guards {
		if guard != nil && !guard(ctx, from, event, data) {
			return false
		}
	}
	return true
}
