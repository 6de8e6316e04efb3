package atsapi

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"golang.org/x/sync/singleflight"
)

// TokenSource supplies the credential attached to outgoing requests. It is
// deliberately small so session-owning code can control what the transport
// sees without the transport depending on any particular storage.
type TokenSource interface {
	// Credential returns the current token pair. ok is false when no
	// credential is held, in which case requests go out unauthenticated.
	Credential() (access, refresh string, ok bool)

	// RotateAccess replaces the access token after a refresh exchange,
	// keeping the refresh token as-is.
	RotateAccess(access string)
}

// CredentialSource is a thread-safe TokenSource holding a single credential.
// The session manager owns its contents: Set on login or bootstrap, Clear on
// logout. Subscribers registered via OnRotate are notified when the transport
// rotates the access token, so rotated tokens can be persisted.
type CredentialSource struct {
	mu       sync.RWMutex
	access   string
	refresh  string
	onRotate []func(access string)
}

// NewCredentialSource creates an empty credential source.
func NewCredentialSource() *CredentialSource {
	return &CredentialSource{}
}

// Set installs a credential pair.
func (s *CredentialSource) Set(access, refresh string) {
	s.mu.Lock()
	s.access = access
	s.refresh = refresh
	s.mu.Unlock()
}

// Clear removes the held credential. Subsequent requests go out
// unauthenticated.
func (s *CredentialSource) Clear() {
	s.mu.Lock()
	s.access = ""
	s.refresh = ""
	s.mu.Unlock()
}

// Credential implements TokenSource.
func (s *CredentialSource) Credential() (string, string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.access, s.refresh, s.access != ""
}

// RotateAccess implements TokenSource. Rotation on an already-cleared source
// is ignored so a refresh landing after logout cannot resurrect a credential.
func (s *CredentialSource) RotateAccess(access string) {
	s.mu.Lock()
	if s.access == "" {
		s.mu.Unlock()
		return
	}
	s.access = access
	subs := s.onRotate
	s.mu.Unlock()

	for _, fn := range subs {
		fn(access)
	}
}

// OnRotate registers a callback invoked after every access token rotation.
func (s *CredentialSource) OnRotate(fn func(access string)) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	s.onRotate = append(s.onRotate, fn)
	s.mu.Unlock()
}

type contextKey struct{ name string }

var skipAuthKey = contextKey{"atsapi-skip-auth"}

// withoutAuth marks a request context so the transport neither attaches a
// token nor attempts a refresh. Used for login, register and the refresh
// exchange itself.
func withoutAuth(ctx context.Context) context.Context {
	return context.WithValue(ctx, skipAuthKey, true)
}

func isAuthSkipped(req *http.Request) bool {
	skip, _ := req.Context().Value(skipAuthKey).(bool)
	return skip
}

// authTransport injects the current access token into every request and,
// on a 401 with a refresh token available, performs a single-flight refresh
// exchange and retries the request once with the rotated token. If the
// refresh fails the original 401 response is returned untouched.
type authTransport struct {
	base    http.RoundTripper
	source  TokenSource
	refresh func(ctx context.Context, refreshToken string) (string, error)
	group   singleflight.Group
	log     *slog.Logger
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.source == nil || isAuthSkipped(req) {
		return t.base.RoundTrip(req)
	}

	access, refreshToken, ok := t.source.Credential()
	if !ok {
		return t.base.RoundTrip(req)
	}

	resp, err := t.base.RoundTrip(cloneWithToken(req, access))
	if err != nil || resp.StatusCode != http.StatusUnauthorized {
		return resp, err
	}
	if refreshToken == "" || t.refresh == nil {
		return resp, nil
	}
	// Requests with a consumed, non-replayable body cannot be retried.
	if req.Body != nil && req.GetBody == nil {
		return resp, nil
	}

	rotated, rerr, _ := t.group.Do("refresh", func() (any, error) {
		return t.refresh(req.Context(), refreshToken)
	})
	if rerr != nil {
		t.log.DebugContext(req.Context(), "token refresh failed", "error", rerr)
		return resp, nil
	}

	newAccess := rotated.(string)
	t.source.RotateAccess(newAccess)

	// Drain and close the 401 response before reusing the connection.
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()

	retry := cloneWithToken(req, newAccess)
	if req.GetBody != nil {
		body, berr := req.GetBody()
		if berr != nil {
			return nil, berr
		}
		retry.Body = body
	}
	return t.base.RoundTrip(retry)
}

func cloneWithToken(req *http.Request, access string) *http.Request {
	clone := req.Clone(req.Context())
	clone.Header.Set("Authorization", "Bearer "+access)
	return clone
}
