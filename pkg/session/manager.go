package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/hiredesk/hiredesk/pkg/atsapi"
	"github.com/hiredesk/hiredesk/pkg/credstore"
	"github.com/hiredesk/hiredesk/pkg/logger"
	"github.com/hiredesk/hiredesk/pkg/statemachine"
)

// AuthAPI is the slice of the API client the session manager depends on.
type AuthAPI interface {
	Login(ctx context.Context, username, password string) (*atsapi.LoginResponse, error)
	Register(ctx context.Context, req atsapi.RegisterRequest) error
}

// Manager owns the client-side authentication lifecycle: bootstrap from the
// credential store, login, registration and logout. It is the only writer of
// the credential store and of the token source; everything else consumes the
// session through State.
type Manager struct {
	store  credstore.Store
	api    AuthAPI
	source *atsapi.CredentialSource
	fsm    *statemachine.Machine
	log    *slog.Logger

	mu        sync.Mutex
	user      *atsapi.User
	loading   bool
	lastError string
	inFlight  bool
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the manager logger. Defaults to a discard logger.
func WithLogger(log *slog.Logger) Option {
	return func(m *Manager) {
		if log != nil {
			m.log = log
		}
	}
}

// NewManager creates a session manager. All three collaborators are
// required; passing nil is a programming error and panics.
func NewManager(store credstore.Store, api AuthAPI, source *atsapi.CredentialSource, opts ...Option) *Manager {
	if store == nil {
		panic("session: credential store is required")
	}
	if api == nil {
		panic("session: auth API is required")
	}
	if source == nil {
		panic("session: credential source is required")
	}

	m := &Manager{
		store:   store,
		api:     api,
		source:  source,
		log:     logger.Discard(),
		loading: true,
	}
	for _, opt := range opts {
		opt(m)
	}

	m.fsm = newLifecycle(m.log)
	// Persist rotated access tokens so a refresh survives a restart.
	source.OnRotate(m.persistRotatedAccess)

	return m
}

// newLifecycle builds the session state machine. The conclude event branches
// on whether a user was already established before the attempt: a failed
// re-login falls back to authenticated, a failed first login to anonymous.
func newLifecycle(log *slog.Logger) *statemachine.Machine {
	hadUser := func(ctx context.Context, from statemachine.State, event statemachine.Event, data any) bool {
		b, _ := data.(bool)
		return b
	}
	wasAnonymous := func(ctx context.Context, from statemachine.State, event statemachine.Event, data any) bool {
		b, _ := data.(bool)
		return !b
	}

	return statemachine.MustNew(StatusAnonymous,
		statemachine.WithTransition(StatusAnonymous, eventAttempt, StatusAuthenticating),
		statemachine.WithTransition(StatusAuthenticated, eventAttempt, StatusAuthenticating),
		statemachine.WithTransition(StatusAuthenticating, eventEstablish, StatusAuthenticated),
		statemachine.WithGuardedTransition(StatusAuthenticating, eventConclude, StatusAuthenticated, hadUser),
		statemachine.WithGuardedTransition(StatusAuthenticating, eventConclude, StatusAnonymous, wasAnonymous),
		statemachine.WithTransition(StatusAuthenticated, eventSignOut, StatusAnonymous),
		statemachine.WithTransition(StatusAnonymous, eventSignOut, StatusAnonymous),
		statemachine.WithTransition(StatusAuthenticating, eventSignOut, StatusAnonymous),
		statemachine.WithTransition(StatusAnonymous, eventRestore, StatusAuthenticated),
		// A login response landing after a mid-attempt logout re-establishes
		// the session; the pending result is applied unconditionally.
		statemachine.WithTransition(StatusAnonymous, eventEstablish, StatusAuthenticated),
		statemachine.WithTransition(StatusAnonymous, eventConclude, StatusAnonymous),
		statemachine.WithHook(func(ctx context.Context, from, to statemachine.State, event statemachine.Event) {
			log.DebugContext(ctx, "session transition", "from", from, "to", to, "event", event)
		}),
	)
}

// Bootstrap rehydrates the session from the credential store. It is
// optimistic: a stored token is trusted without contacting the server, and
// any missing or corrupt stored state simply leaves the session anonymous.
// Bootstrap never fails and must be called once before other operations.
func (m *Manager) Bootstrap(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	defer func() { m.loading = false }()

	cred, user, err := m.store.Load()
	if err != nil {
		if !errors.Is(err, credstore.ErrNoCredential) {
			m.log.WarnContext(ctx, "reading stored credential failed", logger.Error(err))
		}
		return
	}

	m.source.Set(cred.AccessToken, cred.RefreshToken)
	m.user = &user
	m.fire(ctx, eventRestore, nil)
	m.log.DebugContext(ctx, "session restored", logger.UserID(user.ID), logger.Role(user.Role))
}

// Login authenticates against the API. On success the credential and user
// record are persisted, the token source is armed and the session becomes
// authenticated. On failure nothing is mutated except LastError, and the
// failure message is returned for inline display.
func (m *Manager) Login(ctx context.Context, username, password string) Result {
	hadUser, ok := m.beginAttempt(ctx)
	if !ok {
		return Result{Success: false, Error: ErrAttemptInFlight.Error()}
	}
	defer m.endAttempt()

	resp, err := m.api.Login(ctx, username, password)
	if err != nil {
		msg := failureMessage(err, genericLoginError)
		m.mu.Lock()
		m.lastError = msg
		m.fire(ctx, eventConclude, hadUser)
		m.mu.Unlock()
		m.log.InfoContext(ctx, "login failed", "username", username, logger.Error(err))
		return Result{Success: false, Error: msg}
	}

	user := resp.User()
	cred := credstore.Credential{AccessToken: resp.Access, RefreshToken: resp.Refresh}
	if err := m.store.Save(cred, user); err != nil {
		// The session still proceeds in memory; it just will not survive a
		// restart.
		m.log.WarnContext(ctx, "persisting credential failed", logger.Error(err))
	}
	m.source.Set(resp.Access, resp.Refresh)

	m.mu.Lock()
	m.user = &user
	m.fire(ctx, eventEstablish, nil)
	m.mu.Unlock()

	m.log.InfoContext(ctx, "login succeeded", logger.UserID(user.ID), logger.Role(user.Role))
	return Result{Success: true}
}

// Register creates an account. It does not establish a session on success;
// the caller is expected to proceed to login.
func (m *Manager) Register(ctx context.Context, req atsapi.RegisterRequest) Result {
	hadUser, ok := m.beginAttempt(ctx)
	if !ok {
		return Result{Success: false, Error: ErrAttemptInFlight.Error()}
	}
	defer m.endAttempt()

	err := m.api.Register(ctx, req)

	m.mu.Lock()
	if err != nil {
		m.lastError = failureMessage(err, genericRegisterError)
	}
	m.fire(ctx, eventConclude, hadUser)
	msg := m.lastError
	m.mu.Unlock()

	if err != nil {
		m.log.InfoContext(ctx, "registration failed", "username", req.Username, logger.Error(err))
		return Result{Success: false, Error: msg}
	}
	m.log.InfoContext(ctx, "registration succeeded", "username", req.Username, logger.Role(req.Role))
	return Result{Success: true}
}

// Logout clears the credential store, disarms the token source and drops the
// in-memory user, in that order. It is purely local, synchronous, idempotent
// and cannot fail.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Clear(); err != nil {
		m.log.WarnContext(ctx, "clearing stored credential failed", logger.Error(err))
	}
	m.source.Clear()
	m.user = nil
	m.fire(ctx, eventSignOut, nil)
	m.log.DebugContext(ctx, "session cleared")
}

// State returns a read-only snapshot of the session.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()

	st := State{IsLoading: m.loading, LastError: m.lastError}
	if m.user != nil {
		u := *m.user
		st.User = &u
	}
	return st
}

// Status returns the lifecycle state: anonymous, authenticating or
// authenticated.
func (m *Manager) Status() statemachine.State {
	return m.fsm.Current()
}

// beginAttempt arms the single-slot attempt guard and records whether a user
// was established before the attempt. ok is false when another attempt holds
// the slot.
func (m *Manager) beginAttempt(ctx context.Context) (hadUser, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.inFlight {
		return false, false
	}
	m.inFlight = true
	m.loading = true
	m.lastError = ""
	hadUser = m.user != nil
	m.fire(ctx, eventAttempt, nil)
	return hadUser, true
}

func (m *Manager) endAttempt() {
	m.mu.Lock()
	m.loading = false
	m.inFlight = false
	m.mu.Unlock()
}

// fire advances the lifecycle machine. Callers hold m.mu where state
// consistency matters; transition errors indicate a lifecycle hole and are
// logged rather than surfaced.
func (m *Manager) fire(ctx context.Context, event statemachine.Event, data any) {
	if err := m.fsm.Fire(ctx, event, data); err != nil {
		m.log.WarnContext(ctx, "session transition rejected", "event", event, logger.Error(err))
	}
}

// persistRotatedAccess stores a refreshed access token next to the current
// refresh token and user, keeping the store in step with the token source.
func (m *Manager) persistRotatedAccess(access string) {
	m.mu.Lock()
	user := m.user
	m.mu.Unlock()

	_, refresh, ok := m.source.Credential()
	if user == nil || !ok {
		return
	}
	cred := credstore.Credential{AccessToken: access, RefreshToken: refresh}
	if err := m.store.Save(cred, *user); err != nil {
		m.log.Warn("persisting rotated token failed", logger.Error(err))
	}
}

// failureMessage extracts the server's message from err, falling back to the
// generic text when the failure carried none (network errors, empty bodies).
func failureMessage(err error, fallback string) string {
	if apiErr, ok := atsapi.AsAPIError(err); ok && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
