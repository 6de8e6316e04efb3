package session_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hiredesk/hiredesk/pkg/atsapi"
	"github.com/hiredesk/hiredesk/pkg/atstest"
	"github.com/hiredesk/hiredesk/pkg/credstore"
	"github.com/hiredesk/hiredesk/pkg/session"
)

var alice = atsapi.User{ID: 1, Username: "alice", Email: "a@x.com", Role: atsapi.RoleCandidate}

var aliceLogin = &atsapi.LoginResponse{
	Access:   "tok1",
	Refresh:  "ref1",
	UserID:   1,
	Username: "alice",
	Email:    "a@x.com",
	Role:     atsapi.RoleCandidate,
}

// fakeAuthAPI scripts login/register outcomes. block, when set, stalls the
// call until released so tests can observe in-flight state.
type fakeAuthAPI struct {
	mu          sync.Mutex
	loginResp   *atsapi.LoginResponse
	loginErr    error
	registerErr error
	block       chan struct{}
	loginCalls  int
}

func (f *fakeAuthAPI) Login(ctx context.Context, username, password string) (*atsapi.LoginResponse, error) {
	f.mu.Lock()
	f.loginCalls++
	block := f.block
	resp, err := f.loginResp, f.loginErr
	f.mu.Unlock()

	if block != nil {
		<-block
	}
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (f *fakeAuthAPI) Register(ctx context.Context, req atsapi.RegisterRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.registerErr
}

type managerFixture struct {
	store   *credstore.MemoryStore
	api     *fakeAuthAPI
	source  *atsapi.CredentialSource
	manager *session.Manager
}

func newFixture(api *fakeAuthAPI) *managerFixture {
	store := credstore.NewMemoryStore()
	source := atsapi.NewCredentialSource()
	return &managerFixture{
		store:   store,
		api:     api,
		source:  source,
		manager: session.NewManager(store, api, source),
	}
}

// assertHeaderInvariant checks that the token source is armed if and only if
// a user is present.
func assertHeaderInvariant(t *testing.T, f *managerFixture) {
	t.Helper()
	_, _, armed := f.source.Credential()
	assert.Equal(t, f.manager.State().User != nil, armed,
		"token source must be armed iff a user is present")
}

func TestNewManager(t *testing.T) {
	assert.Panics(t, func() {
		session.NewManager(nil, &fakeAuthAPI{}, atsapi.NewCredentialSource())
	})
	assert.Panics(t, func() {
		session.NewManager(credstore.NewMemoryStore(), nil, atsapi.NewCredentialSource())
	})
	assert.Panics(t, func() {
		session.NewManager(credstore.NewMemoryStore(), &fakeAuthAPI{}, nil)
	})
}

func TestManager_Bootstrap(t *testing.T) {
	ctx := context.Background()

	t.Run("no stored credential leaves session anonymous", func(t *testing.T) {
		f := newFixture(&fakeAuthAPI{})

		assert.True(t, f.manager.State().IsLoading, "loading until bootstrap completes")
		f.manager.Bootstrap(ctx)

		state := f.manager.State()
		assert.Nil(t, state.User)
		assert.False(t, state.IsLoading)
		assert.Equal(t, session.StatusAnonymous, f.manager.Status())
		assertHeaderInvariant(t, f)
	})

	t.Run("stored credential restores the session optimistically", func(t *testing.T) {
		f := newFixture(&fakeAuthAPI{})
		require.NoError(t, f.store.Save(credstore.Credential{AccessToken: "abc", RefreshToken: "r"}, alice))

		f.manager.Bootstrap(ctx)

		state := f.manager.State()
		require.NotNil(t, state.User)
		assert.Equal(t, alice, *state.User)
		assert.Equal(t, session.StatusAuthenticated, f.manager.Status())

		access, _, armed := f.source.Credential()
		assert.True(t, armed)
		assert.Equal(t, "abc", access)
		assert.Zero(t, f.api.loginCalls, "bootstrap must not contact the API")
	})

	t.Run("corrupt stored state presents as logged out", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "credentials.json")
		require.NoError(t, os.WriteFile(path, []byte("{garbage"), 0o600))
		store, err := credstore.NewFileStore(path)
		require.NoError(t, err)

		source := atsapi.NewCredentialSource()
		mgr := session.NewManager(store, &fakeAuthAPI{}, source)
		mgr.Bootstrap(ctx)

		state := mgr.State()
		assert.Nil(t, state.User)
		assert.False(t, state.IsLoading)
		assert.Empty(t, state.LastError, "corrupt storage is not a user-visible error")
		assert.Equal(t, session.StatusAnonymous, mgr.Status())
	})
}

func TestManager_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("success persists, arms the source and sets the user", func(t *testing.T) {
		f := newFixture(&fakeAuthAPI{loginResp: aliceLogin})
		f.manager.Bootstrap(ctx)

		res := f.manager.Login(ctx, "alice", "secret")
		require.True(t, res.Success)
		assert.Empty(t, res.Error)

		cred, user, err := f.store.Load()
		require.NoError(t, err)
		assert.Equal(t, "tok1", cred.AccessToken)
		assert.Equal(t, "ref1", cred.RefreshToken)
		assert.Equal(t, alice, user)

		state := f.manager.State()
		require.NotNil(t, state.User)
		assert.Equal(t, alice, *state.User)
		assert.False(t, state.IsLoading)
		assert.Equal(t, session.StatusAuthenticated, f.manager.Status())
		assertHeaderInvariant(t, f)
	})

	t.Run("server failure surfaces its message and mutates nothing", func(t *testing.T) {
		f := newFixture(&fakeAuthAPI{
			loginErr: &atsapi.APIError{StatusCode: 400, Message: "Invalid credentials"},
		})
		f.manager.Bootstrap(ctx)

		res := f.manager.Login(ctx, "alice", "bad")
		assert.False(t, res.Success)
		assert.Equal(t, "Invalid credentials", res.Error)

		state := f.manager.State()
		assert.Nil(t, state.User)
		assert.Equal(t, "Invalid credentials", state.LastError)
		assert.False(t, state.IsLoading)
		assert.Equal(t, session.StatusAnonymous, f.manager.Status())

		// No partial writes: the store was never touched.
		_, _, err := f.store.Load()
		assert.ErrorIs(t, err, credstore.ErrNoCredential)
		assertHeaderInvariant(t, f)
	})

	t.Run("network failure falls back to the generic message", func(t *testing.T) {
		f := newFixture(&fakeAuthAPI{loginErr: errors.New("connection refused")})
		f.manager.Bootstrap(ctx)

		res := f.manager.Login(ctx, "alice", "secret")
		assert.False(t, res.Success)
		assert.Equal(t, "Login failed. Please try again.", res.Error)
	})

	t.Run("failed re-login keeps the previous session", func(t *testing.T) {
		api := &fakeAuthAPI{loginResp: aliceLogin}
		f := newFixture(api)
		f.manager.Bootstrap(ctx)
		require.True(t, f.manager.Login(ctx, "alice", "secret").Success)

		api.mu.Lock()
		api.loginResp = nil
		api.loginErr = &atsapi.APIError{StatusCode: 400, Message: "Invalid credentials"}
		api.mu.Unlock()

		res := f.manager.Login(ctx, "alice", "typo")
		assert.False(t, res.Success)

		state := f.manager.State()
		require.NotNil(t, state.User, "previously authenticated user must survive a failed attempt")
		assert.Equal(t, alice, *state.User)
		assert.Equal(t, "Invalid credentials", state.LastError)
		assert.Equal(t, session.StatusAuthenticated, f.manager.Status())
		assertHeaderInvariant(t, f)
	})

	t.Run("a new attempt clears the previous error", func(t *testing.T) {
		api := &fakeAuthAPI{loginErr: &atsapi.APIError{StatusCode: 400, Message: "Invalid credentials"}}
		f := newFixture(api)
		f.manager.Bootstrap(ctx)

		require.False(t, f.manager.Login(ctx, "alice", "bad").Success)
		assert.Equal(t, "Invalid credentials", f.manager.State().LastError)

		api.mu.Lock()
		api.loginErr = nil
		api.loginResp = aliceLogin
		api.mu.Unlock()

		require.True(t, f.manager.Login(ctx, "alice", "secret").Success)
		assert.Empty(t, f.manager.State().LastError)
	})

	t.Run("overlapping attempts are rejected", func(t *testing.T) {
		block := make(chan struct{})
		api := &fakeAuthAPI{loginResp: aliceLogin, block: block}
		f := newFixture(api)
		f.manager.Bootstrap(ctx)

		done := make(chan session.Result, 1)
		go func() { done <- f.manager.Login(ctx, "alice", "secret") }()

		// Wait for the first attempt to reach the API.
		require.Eventually(t, func() bool {
			return f.manager.State().IsLoading
		}, time.Second, time.Millisecond)
		assert.Equal(t, session.StatusAuthenticating, f.manager.Status())

		second := f.manager.Login(ctx, "alice", "secret")
		assert.False(t, second.Success)
		assert.Equal(t, session.ErrAttemptInFlight.Error(), second.Error)

		close(block)
		first := <-done
		assert.True(t, first.Success)
		assert.False(t, f.manager.State().IsLoading)
	})
}

func TestManager_Register(t *testing.T) {
	ctx := context.Background()
	req := atsapi.RegisterRequest{
		Username: "bob", Email: "b@x.com", Password: "hunter2", Role: atsapi.RoleEmployer,
	}

	t.Run("success does not establish a session", func(t *testing.T) {
		f := newFixture(&fakeAuthAPI{})
		f.manager.Bootstrap(ctx)

		res := f.manager.Register(ctx, req)
		require.True(t, res.Success)

		state := f.manager.State()
		assert.Nil(t, state.User)
		assert.Equal(t, session.StatusAnonymous, f.manager.Status())
		_, _, err := f.store.Load()
		assert.ErrorIs(t, err, credstore.ErrNoCredential)
		assertHeaderInvariant(t, f)
	})

	t.Run("failure carries the server message", func(t *testing.T) {
		f := newFixture(&fakeAuthAPI{
			registerErr: &atsapi.APIError{StatusCode: 400, Message: "Username already exists"},
		})
		f.manager.Bootstrap(ctx)

		res := f.manager.Register(ctx, req)
		assert.False(t, res.Success)
		assert.Equal(t, "Username already exists", res.Error)
		assert.Equal(t, "Username already exists", f.manager.State().LastError)
	})

	t.Run("network failure falls back to the generic message", func(t *testing.T) {
		f := newFixture(&fakeAuthAPI{registerErr: errors.New("connection refused")})
		f.manager.Bootstrap(ctx)

		res := f.manager.Register(ctx, req)
		assert.Equal(t, "Registration failed. Please try again.", res.Error)
	})
}

func TestManager_Logout(t *testing.T) {
	ctx := context.Background()

	t.Run("clears store, source and user", func(t *testing.T) {
		f := newFixture(&fakeAuthAPI{loginResp: aliceLogin})
		f.manager.Bootstrap(ctx)
		require.True(t, f.manager.Login(ctx, "alice", "secret").Success)

		f.manager.Logout(ctx)

		_, _, err := f.store.Load()
		assert.ErrorIs(t, err, credstore.ErrNoCredential)
		assert.Nil(t, f.manager.State().User)
		assert.Equal(t, session.StatusAnonymous, f.manager.Status())
		assertHeaderInvariant(t, f)
	})

	t.Run("idempotent when already anonymous", func(t *testing.T) {
		f := newFixture(&fakeAuthAPI{})
		f.manager.Bootstrap(ctx)

		f.manager.Logout(ctx)
		f.manager.Logout(ctx)

		assert.Equal(t, session.StatusAnonymous, f.manager.Status())
		_, _, err := f.store.Load()
		assert.ErrorIs(t, err, credstore.ErrNoCredential)
		assertHeaderInvariant(t, f)
	})
}

func TestManager_HeaderInvariantAcrossLifecycle(t *testing.T) {
	ctx := context.Background()
	api := &fakeAuthAPI{loginResp: aliceLogin}
	f := newFixture(api)

	f.manager.Bootstrap(ctx)
	assertHeaderInvariant(t, f)

	f.manager.Login(ctx, "alice", "secret")
	assertHeaderInvariant(t, f)

	f.manager.Logout(ctx)
	assertHeaderInvariant(t, f)

	// Failed attempt after logout.
	api.mu.Lock()
	api.loginResp = nil
	api.loginErr = errors.New("boom")
	api.mu.Unlock()
	f.manager.Login(ctx, "alice", "secret")
	assertHeaderInvariant(t, f)
}

func TestManager_PersistsRotatedAccessToken(t *testing.T) {
	ctx := context.Background()
	f := newFixture(&fakeAuthAPI{loginResp: aliceLogin})
	f.manager.Bootstrap(ctx)
	require.True(t, f.manager.Login(ctx, "alice", "secret").Success)

	// The transport rotates the access token after a refresh exchange; the
	// manager must keep the store in step.
	f.source.RotateAccess("tok2")

	cred, user, err := f.store.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok2", cred.AccessToken)
	assert.Equal(t, "ref1", cred.RefreshToken)
	assert.Equal(t, alice, user)
}

// TestManager_EndToEnd wires the manager to the real API client against the
// fake server, covering the full login/refresh/logout path without scripted
// responses.
func TestManager_EndToEnd(t *testing.T) {
	srv := atstest.New()
	srv.SeedUser("alice", "secret", "a@x.com", atsapi.RoleCandidate)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	source := atsapi.NewCredentialSource()
	client, err := atsapi.New(atsapi.Config{BaseURL: ts.URL, Timeout: 5 * time.Second},
		atsapi.WithTokenSource(source))
	require.NoError(t, err)

	store := credstore.NewMemoryStore()
	mgr := session.NewManager(store, client, source)
	ctx := context.Background()

	mgr.Bootstrap(ctx)
	assert.Equal(t, session.StatusAnonymous, mgr.Status())

	res := mgr.Login(ctx, "alice", "wrong")
	assert.False(t, res.Success)
	assert.Equal(t, "Invalid credentials", res.Error)

	res = mgr.Login(ctx, "alice", "secret")
	require.True(t, res.Success)
	require.NotNil(t, mgr.State().User)
	assert.Equal(t, "alice", mgr.State().User.Username)

	// Authenticated call through the shared client works.
	_, err = client.GetCandidateDashboard(ctx)
	assert.NoError(t, err)

	mgr.Logout(ctx)
	_, err = client.GetCandidateDashboard(ctx)
	assert.Error(t, err, "requests are unauthenticated after logout")

	// A fresh manager against the same store stays anonymous.
	mgr2 := session.NewManager(store, client, atsapi.NewCredentialSource())
	mgr2.Bootstrap(ctx)
	assert.Nil(t, mgr2.State().User)
}
