package session

import "errors"

var (
	// ErrAttemptInFlight rejects a login or registration while another
	// attempt is still running. Exactly one attempt may be in flight.
	ErrAttemptInFlight = errors.New("session: another authentication attempt is in flight")
)

// Fallback messages shown when the server provides no error of its own.
// Wording matches what the forms display inline.
const (
	genericLoginError    = "Login failed. Please try again."
	genericRegisterError = "Registration failed. Please try again."
)
