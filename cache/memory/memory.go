// Package memory is an in-process cache backend with process-lifetime
// scope, the default memoization for a single dashboard instance.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/dataiesb/pnaes/cache"
)

type entry struct {
	value     string
	expiresAt time.Time // zero means no expiry
}

// Store is a mutex-guarded map cache.
type Store struct {
	mu      sync.RWMutex
	entries map[string]entry
}

// New creates an empty Store.
func New() *Store {
	return &Store{entries: make(map[string]entry)}
}

// Ping always succeeds.
func (s *Store) Ping(_ context.Context) error {
	return nil
}

// Set stores a value. A zero TTL keeps the entry until Del or process exit.
func (s *Store) Set(_ context.Context, key string, value string, ttl time.Duration) error {
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}

	s.mu.Lock()
	s.entries[key] = entry{value: value, expiresAt: expiresAt}
	s.mu.Unlock()
	return nil
}

// Get retrieves a value, treating expired entries as misses.
func (s *Store) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok {
		return "", cache.ErrCacheMiss
	}
	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return "", cache.ErrCacheMiss
	}

	return e.value, nil
}

// Del removes a key. No-op if the key does not exist.
func (s *Store) Del(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
	return nil
}

var _ cache.Cache = (*Store)(nil)
