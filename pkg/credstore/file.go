package credstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hiredesk/hiredesk/pkg/atsapi"
)

// filePayload is the on-disk format: the three keys written together on
// login and removed together on logout. The user record is stored as a
// serialized JSON string under its own key, so a corrupt user value can be
// detected independently of the surrounding document.
type filePayload struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
	User         string `json:"user"`
}

// FileStore persists the credential in a single JSON file with 0600
// permissions. Writes go through a temp file and rename, so a reader sees
// either the previous or the new content, never a partial write.
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by the given file path. The file and
// its directory are created on first Save.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	return &FileStore{path: path}, nil
}

// DefaultPath returns the conventional credentials file location,
// $HOME/.hiredesk/credentials.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("credstore: resolve home directory: %w", err)
	}
	return filepath.Join(home, ".hiredesk", "credentials.json"), nil
}

// Save implements Store.
func (s *FileStore) Save(cred Credential, user atsapi.User) error {
	userJSON, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("credstore: marshal user: %w", err)
	}
	payload, err := json.Marshal(filePayload{
		Token:        cred.AccessToken,
		RefreshToken: cred.RefreshToken,
		User:         string(userJSON),
	})
	if err != nil {
		return fmt.Errorf("credstore: marshal payload: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("credstore: create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".credentials-*")
	if err != nil {
		return fmt.Errorf("credstore: create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("credstore: chmod temp file: %w", err)
	}
	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		return fmt.Errorf("credstore: write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("credstore: close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("credstore: replace credentials file: %w", err)
	}
	return nil
}

// Load implements Store. Any unreadable or incomplete file presents as
// ErrNoCredential; only unexpected I/O failures surface as distinct errors.
func (s *FileStore) Load() (Credential, atsapi.User, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Credential{}, atsapi.User{}, ErrNoCredential
		}
		return Credential{}, atsapi.User{}, fmt.Errorf("credstore: read credentials file: %w", err)
	}

	var payload filePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return Credential{}, atsapi.User{}, ErrNoCredential
	}
	if payload.Token == "" || payload.User == "" {
		return Credential{}, atsapi.User{}, ErrNoCredential
	}

	var user atsapi.User
	if err := json.Unmarshal([]byte(payload.User), &user); err != nil {
		return Credential{}, atsapi.User{}, ErrNoCredential
	}

	return Credential{
		AccessToken:  payload.Token,
		RefreshToken: payload.RefreshToken,
	}, user, nil
}

// Clear implements Store.
func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("credstore: remove credentials file: %w", err)
	}
	return nil
}
