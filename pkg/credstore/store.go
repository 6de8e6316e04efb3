package credstore

import "github.com/hiredesk/hiredesk/pkg/atsapi"

// Credential is the access/refresh token pair proving authentication to the
// API. It never leaves the session layer.
type Credential struct {
	AccessToken  string
	RefreshToken string
}

// Store persists a single credential and its cached user record across
// process restarts. Implementations perform no validation of token shape or
// expiry; they are dumb storage.
type Store interface {
	// Save persists the credential and user record together. A reader must
	// never observe one without the other.
	Save(cred Credential, user atsapi.User) error

	// Load returns the stored pair. It returns ErrNoCredential when nothing
	// is stored or when the stored data is incomplete or unparsable.
	Load() (Credential, atsapi.User, error)

	// Clear removes the stored credential and user record. Clearing an
	// already-empty store succeeds.
	Clear() error
}
