package credstore

import (
	"sync"

	"github.com/hiredesk/hiredesk/pkg/atsapi"
)

// MemoryStore is an in-memory Store for tests and ephemeral sessions.
type MemoryStore struct {
	mu   sync.RWMutex
	cred Credential
	user atsapi.User
	set  bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Save implements Store.
func (m *MemoryStore) Save(cred Credential, user atsapi.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cred = cred
	m.user = user
	m.set = true
	return nil
}

// Load implements Store.
func (m *MemoryStore) Load() (Credential, atsapi.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.set {
		return Credential{}, atsapi.User{}, ErrNoCredential
	}
	return m.cred, m.user, nil
}

// Clear implements Store.
func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cred = Credential{}
	m.user = atsapi.User{}
	m.set = false
	return nil
}
