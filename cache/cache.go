// Package cache provides load memoization for the dataset repo.
//
// The original dashboard memoized every loader for the process lifetime;
// here that is an explicit, dependency-injected decorator (NewRepo) over a
// small key/value Cache. The memory backend is the default and keeps the
// process-lifetime semantics; the redis backend shares the memo between
// instances.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by Get when a key is absent or expired.
var ErrCacheMiss = errors.New("cache miss")

// Cache is a minimal key/value cache interface.
type Cache interface {
	// Ping checks if the cache is reachable.
	Ping(ctx context.Context) error

	// Set stores a value with the given TTL. A zero TTL means no expiry.
	Set(ctx context.Context, key string, value string, ttl time.Duration) error

	// Get retrieves a value by key. Returns ErrCacheMiss (or an error
	// wrapping it) if the key is missing.
	Get(ctx context.Context, key string) (string, error)

	// Del removes a key. No-op if the key does not exist.
	Del(ctx context.Context, key string) error
}

// Dataset keys under which loader results are memoized.
const (
	KeyAmbulatory     = "dataset:ambulatory"
	KeyPopulation     = "dataset:population"
	KeyEconomic       = "dataset:economic"
	KeyMunicipalities = "dataset:municipalities"
)
