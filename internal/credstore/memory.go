package credstore

import "sync"

// MemoryStore is an in-memory credential store for tests.
type MemoryStore struct {
	mu    sync.Mutex
	creds *Credentials

	// Counters let tests assert on store traffic.
	Saves  int
	Clears int
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Save stores a copy of the credentials in memory
func (s *MemoryStore) Save(creds Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := creds
	s.creds = &c
	s.Saves++
	return nil
}

// Load returns the stored credentials, or ErrNoCredentials
func (s *MemoryStore) Load() (*Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.creds == nil {
		return nil, ErrNoCredentials
	}
	c := *s.creds
	return &c, nil
}

// Clear removes the stored credentials
func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = nil
	s.Clears++
	return nil
}

// Current returns the stored credentials without copying, for test assertions
func (s *MemoryStore) Current() *Credentials {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.creds
}
