package statemachine

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyState = errors.New("statemachine: state cannot be empty")
	ErrEmptyEvent = errors.New("statemachine: event cannot be empty")
)

// UnknownTransitionError indicates no transition is registered for the
// current state and event.
type UnknownTransitionError struct {
	From  State
	Event Event
}

func (e *UnknownTransitionError) Error() string {
	return fmt.Sprintf("statemachine: no transition from %q for event %q", e.From, e.Event)
}

// RejectedTransitionError indicates every candidate transition was blocked by
// its guard.
type RejectedTransitionError struct {
	From  State
	Event Event
}

func (e *RejectedTransitionError) Error() string {
	return fmt.Sprintf("statemachine: transition from %q for event %q rejected by guards", e.From, e.Event)
}

func IsUnknownTransition(err error) bool {
	var e *UnknownTransitionError
	return errors.As(err, &e)
}

func IsRejectedTransition(err error) bool {
	var e *RejectedTransitionError
	return errors.As(err, &e)
}
