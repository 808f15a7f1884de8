package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/dataiesb/pnaes"
)

// Repo memoizes a DatasetRepo through a Cache. Each loader is keyed by its
// dataset identity; a hit skips the database entirely. Caching is best
// effort: a broken cache degrades to loading from the inner repo, and a
// loader failure is never cached.
type Repo struct {
	inner pnaes.DatasetRepo
	cache Cache
	ttl   time.Duration
}

// NewRepo wraps inner with memoization. A zero ttl memoizes for the cache's
// lifetime (the original process-lifetime behavior).
func NewRepo(inner pnaes.DatasetRepo, c Cache, ttl time.Duration) *Repo {
	return &Repo{inner: inner, cache: c, ttl: ttl}
}

func (r *Repo) LoadAmbulatory(ctx context.Context) ([]pnaes.AmbulatoryRecord, error) {
	return memoized(ctx, r, KeyAmbulatory, r.inner.LoadAmbulatory)
}

func (r *Repo) LoadPopulation(ctx context.Context) ([]pnaes.PopulationRecord, error) {
	return memoized(ctx, r, KeyPopulation, r.inner.LoadPopulation)
}

func (r *Repo) LoadEconomic(ctx context.Context) ([]pnaes.EconomicRecord, error) {
	return memoized(ctx, r, KeyEconomic, r.inner.LoadEconomic)
}

func (r *Repo) LoadMunicipalities(ctx context.Context) ([]pnaes.Municipality, error) {
	return memoized(ctx, r, KeyMunicipalities, r.inner.LoadMunicipalities)
}

// Invalidate drops all memoized datasets so the next load hits the
// database again.
func (r *Repo) Invalidate(ctx context.Context) error {
	for _, key := range []string{KeyAmbulatory, KeyPopulation, KeyEconomic, KeyMunicipalities} {
		if err := r.cache.Del(ctx, key); err != nil {
			return err
		}
	}
	return nil
}

func memoized[T any](ctx context.Context, r *Repo, key string, load func(context.Context) ([]T, error)) ([]T, error) {
	if raw, err := r.cache.Get(ctx, key); err == nil {
		var records []T
		if err := json.Unmarshal([]byte(raw), &records); err == nil {
			return records, nil
		}
		slog.Warn("dropping undecodable cache entry", "key", key)
		_ = r.cache.Del(ctx, key)
	}

	records, err := load(ctx)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(records)
	if err == nil {
		if err := r.cache.Set(ctx, key, string(raw), r.ttl); err != nil {
			slog.Debug("cache set failed", "key", key, "err", err)
		}
	}

	return records, nil
}

var _ pnaes.DatasetRepo = (*Repo)(nil)
