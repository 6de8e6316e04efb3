// Package statemachine implements a small, thread-safe finite state machine
// with string-typed states and events, guarded transitions and post-transition
// hooks.
//
// Machines are fully configured at construction time via functional options,
// which keeps the transition table immutable after New returns:
//
//	m := statemachine.MustNew("anonymous",
//	    statemachine.WithTransition("anonymous", "attempt", "authenticating"),
//	    statemachine.WithTransition("authenticating", "establish", "authenticated"),
//	    statemachine.WithTransition("authenticated", "sign_out", "anonymous"),
//	)
//
//	if err := m.Fire(ctx, "attempt", nil); err != nil {
//	    // no transition registered, or all guards rejected it
//	}
//
// Guards receive the data value passed to Fire and can branch the same
// state/event pair to different targets; the first registered transition whose
// guard passes wins.
package statemachine
