package main

import (
	"context"
	"fmt"
	"time"

	"github.com/dataiesb/pnaes"
	"github.com/dataiesb/pnaes/cache"
	"github.com/dataiesb/pnaes/cache/memory"
	cacheredis "github.com/dataiesb/pnaes/cache/redis"
	"github.com/dataiesb/pnaes/config"
	"github.com/dataiesb/pnaes/database"
)

// newCache builds the configured memoization backend.
func newCache(ctx context.Context, cfg config.CacheConfig) (cache.Cache, error) {
	switch cfg.Backend {
	case "memory", "":
		return memory.New(), nil
	case "redis":
		client := cacheredis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := client.Ping(ctx); err != nil {
			return nil, fmt.Errorf("ping redis: %w", err)
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unsupported cache backend: %s", cfg.Backend)
	}
}

// openService connects to the database once and builds the dashboard
// service over the memoized repo. The cleanup function closes the
// connection.
func openService(ctx context.Context, cfg *config.Config) (*pnaes.DashboardService, database.Store, func(), error) {
	store, cleanup, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("connect database: %w", err)
	}

	c, err := newCache(ctx, cfg.Cache)
	if err != nil {
		cleanup()
		return nil, nil, nil, err
	}

	ttl := time.Duration(cfg.Cache.TTLSeconds) * time.Second
	repo := cache.NewRepo(store, c, ttl)

	service, err := pnaes.NewDashboardService(repo, store, cfg.Database.Tables)
	if err != nil {
		cleanup()
		return nil, nil, nil, fmt.Errorf("create service: %w", err)
	}

	return service, store, cleanup, nil
}
