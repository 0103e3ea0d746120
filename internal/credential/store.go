package credential

import (
	"errors"
	"sync"
)

// ErrNoCredential is returned by Read when no credential is persisted.
var ErrNoCredential = errors.New("no stored credential")

// Store is the single slot holding the persisted bearer credential.
// The transport layer never touches the storage mechanism directly;
// everything goes through this port.
type Store interface {
	// Read returns the persisted credential, or ErrNoCredential.
	Read() (string, error)
	// Write persists the credential, replacing any previous value.
	Write(token string) error
	// Clear removes the persisted credential. Clearing an empty slot is
	// a no-op.
	Clear() error
}

// MemoryStore is an in-process Store, used in tests and ephemeral runs.
type MemoryStore struct {
	mu    sync.Mutex
	token string
	set   bool
}

// NewMemoryStore creates an empty in-memory credential store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Read() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.set {
		return "", ErrNoCredential
	}
	return s.token, nil
}

func (s *MemoryStore) Write(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.set = true
	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.set = false
	return nil
}
