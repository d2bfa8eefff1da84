package confirmation

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-process Store used in tests and local development
// without Redis.
type MemoryStore struct {
	mu    sync.Mutex
	codes map[string]memoryEntry
}

type memoryEntry struct {
	hash      string
	expiresAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{codes: make(map[string]memoryEntry)}
}

func (s *MemoryStore) Save(ctx context.Context, username, codeHash string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[username] = memoryEntry{hash: codeHash, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, username string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.codes[username]
	if !ok {
		return "", ErrNoCode
	}
	if time.Now().After(entry.expiresAt) {
		delete(s.codes, username)
		return "", ErrNoCode
	}
	return entry.hash, nil
}

func (s *MemoryStore) Delete(ctx context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.codes, username)
	return nil
}
