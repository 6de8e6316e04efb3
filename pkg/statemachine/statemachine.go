package statemachine

import (
	"context"
	"sync"
)

// State identifies a state in the machine.
type State string

// Event identifies a trigger that may cause a transition.
type Event string

// Guard evaluates whether a transition is allowed given runtime data.
type Guard func(ctx context.Context, from State, event Event, data any) bool

// Hook is invoked after every completed transition.
type Hook func(ctx context.Context, from, to State, event Event)

type transition struct {
	to    State
	guard Guard
}

// Machine is a thread-safe finite state machine. Transitions are registered
// at construction time and the machine only mutates its current state through
// Fire, so concurrent readers always observe a consistent state.
type Machine struct {
	initial     State
	transitions map[State]map[Event][]transition
	hooks       []Hook

	mu      sync.RWMutex
	current State
}

// New creates a machine starting in the given initial state.
func New(initial State, opts ...Option) (*Machine, error) {
	if initial == "" {
		return nil, ErrEmptyState
	}

	m := &Machine{
		initial:     initial,
		current:     initial,
		transitions: make(map[State]map[Event][]transition),
	}

	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// MustNew is like New but panics on configuration errors. Intended for
// machines built from static transition tables.
func MustNew(initial State, opts ...Option) *Machine {
	m, err := New(initial, opts...)
	if err != nil {
		panic("statemachine: " + err.Error())
	}
	return m
}

// Current returns the machine's current state.
func (m *Machine) Current() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Fire attempts to transition the machine using the given event. The data
// value is passed to transition guards. When several transitions are
// registered for the same state/event pair, the first one whose guard passes
// wins; transitions without a guard always pass.
func (m *Machine) Fire(ctx context.Context, event Event, data any) error {
	if event == "" {
		return ErrEmptyEvent
	}

	m.mu.Lock()
	from := m.current
	next, err := m.resolve(ctx, from, event, data)
	if err != nil {
		m.mu.Unlock()
		return err
	}
	m.current = next
	hooks := m.hooks
	m.mu.Unlock()

	for _, h := range hooks {
		h(ctx, from, next, event)
	}
	return nil
}

// Can reports whether Fire would succeed for the given event and data.
func (m *Machine) Can(ctx context.Context, event Event, data any) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, err := m.resolve(ctx, m.current, event, data)
	return err == nil
}

// Reset returns the machine to its initial state without running hooks.
func (m *Machine) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = m.initial
}

func (m *Machine) resolve(ctx context.Context, from State, event Event, data any) (State, error) {
	candidates, ok := m.transitions[from][event]
	if !ok || len(candidates) == 0 {
		return "", &UnknownTransitionError{From: from, Event: event}
	}

	for _, t := range candidates {
		if t.guard == nil || t.guard(ctx, from, event, data) {
			return t.to, nil
		}
	}
	return "", &RejectedTransitionError{From: from, Event: event}
}

func (m *Machine) add(from, to State, event Event, guard Guard) error {
	if from == "" || to == "" {
		return ErrEmptyState
	}
	if event == "" {
		return ErrEmptyEvent
	}

	if _, ok := m.transitions[from]; !ok {
		m.transitions[from] = make(map[Event][]transition)
	}
	m.transitions[from][event] = append(m.transitions[from][event], transition{to: to, guard: guard})
	return nil
}
