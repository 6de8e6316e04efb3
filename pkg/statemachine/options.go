package statemachine

// Option configures a machine during construction.
type Option func(*Machine) error

// WithTransition registers an unconditional transition.
func WithTransition(from State, event Event, to State) Option {
	return func(m *Machine) error {
		return m.add(from, to, event, nil)
	}
}

// WithGuardedTransition registers a transition that only fires when the guard
// passes. Registration order matters: the first passing transition for a
// state/event pair wins.
func WithGuardedTransition(from State, event Event, to State, guard Guard) Option {
	return func(m *Machine) error {
		return m.add(from, to, event, guard)
	}
}

// WithHook registers a hook invoked after every completed transition.
func WithHook(h Hook) Option {
	return func(m *Machine) error {
		if h != nil {
			m.hooks = append(m.hooks, h)
		}
		return nil
	}
}
