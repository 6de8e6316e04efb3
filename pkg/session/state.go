package session

import (
	"github.com/hiredesk/hiredesk/pkg/atsapi"
	"github.com/hiredesk/hiredesk/pkg/statemachine"
)

// Session lifecycle states.
const (
	StatusAnonymous      statemachine.State = "anonymous"
	StatusAuthenticating statemachine.State = "authenticating"
	StatusAuthenticated  statemachine.State = "authenticated"
)

// Lifecycle events. attempt starts a login or registration; establish lands
// a successful login; conclude ends an attempt without establishing a session
// (failure, or a successful registration); restore is the optimistic
// rehydration at startup.
const (
	eventAttempt   statemachine.Event = "attempt"
	eventEstablish statemachine.Event = "establish"
	eventConclude  statemachine.Event = "conclude"
	eventSignOut   statemachine.Event = "sign_out"
	eventRestore   statemachine.Event = "restore"
)

// State is a read-only snapshot of the session exposed to the rest of the
// application. User is nil while no session is believed to exist.
type State struct {
	User      *atsapi.User
	IsLoading bool
	LastError string
}

// Result reports the outcome of a login or registration attempt. Failures
// carry the server's message, or a generic fallback, ready for inline
// display; they are never surfaced as faults.
type Result struct {
	Success bool
	Error   string
}
