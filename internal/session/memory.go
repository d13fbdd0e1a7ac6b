package session

import (
	"sync"

	"github.com/flexfitapp/flexfit/internal/errors"
)

// MemStore is an in-memory Store used by tests and anywhere durable storage
// is undesirable. It honors the same whole-record semantics as FileStore.
type MemStore struct {
	mu      sync.RWMutex
	session *Session
	pending string
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{}
}

// Save replaces the held session with a copy of s.
func (ms *MemStore) Save(s Session) error {
	if !s.Valid() {
		return errors.New(errors.ErrCodeSessionInvalid, "refusing to hold a partial session")
	}
	ms.mu.Lock()
	defer ms.mu.Unlock()
	copied := s
	ms.session = &copied
	return nil
}

// Load returns a copy of the held session, or (nil, nil) when absent.
func (ms *MemStore) Load() (*Session, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	if ms.session == nil {
		return nil, nil
	}
	copied := *ms.session
	return &copied, nil
}

// Clear drops the held session; idempotent.
func (ms *MemStore) Clear() error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.session = nil
	return nil
}

// SavePendingSignup remembers the signup email.
func (ms *MemStore) SavePendingSignup(email string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.pending = email
	return nil
}

// LoadPendingSignup returns the remembered signup email, or "" when none.
func (ms *MemStore) LoadPendingSignup() (string, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	return ms.pending, nil
}

// ClearPendingSignup forgets the remembered signup email; idempotent.
func (ms *MemStore) ClearPendingSignup() error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.pending = ""
	return nil
}

var _ Store = (*MemStore)(nil)
