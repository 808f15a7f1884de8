package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dataiesb/pnaes"
	"github.com/dataiesb/pnaes/database/postgres"
	"github.com/dataiesb/pnaes/database/sqlite"

	_ "modernc.org/sqlite" // SQLite driver
)

// Store is the full read surface of one database backend: the four dataset
// loaders, schema introspection, and a liveness check.
type Store interface {
	pnaes.DatasetRepo
	pnaes.SchemaIntrospector
	Ping(ctx context.Context) error
}

// Config holds the configuration for connecting to the analytics database.
type Config struct {
	// Type specifies the database type: "postgres" or "sqlite"
	Type string `mapstructure:"type" validate:"required,oneof=postgres sqlite"`
	// DSN is the data source name; when empty for postgres, it is built
	// from Conn
	DSN string `mapstructure:"dsn"`
	// Conn holds the connection parts used when DSN is empty
	Conn ConnConfig `mapstructure:"conn"`
	// Tables holds the source table names
	Tables pnaes.Tables `mapstructure:"tables"`
	// Limits holds the per-dataset row caps
	Limits pnaes.Limits `mapstructure:"limits"`
	// MinYear is the earliest production/GDP year loaded
	MinYear string `mapstructure:"min_year"`
}

// Connect establishes a single connection to the configured backend, pings
// it once, and returns a ready-to-use Store. The returned cleanup function
// closes the connection. A failed attempt wraps pnaes.ErrUnavailable; there
// is no retry.
func Connect(ctx context.Context, cfg Config) (Store, func(), error) {
	if err := cfg.Tables.Validate(); err != nil {
		return nil, nil, fmt.Errorf("connect: %w", err)
	}
	if err := cfg.Limits.Validate(); err != nil {
		return nil, nil, fmt.Errorf("connect: %w", err)
	}

	minYear := cfg.MinYear
	if minYear == "" {
		minYear = pnaes.DefaultMinYear
	}

	switch cfg.Type {
	case "postgres":
		dsn := cfg.DSN
		if dsn == "" {
			dsn = BuildConnString(cfg.Conn)
		}
		return connectPostgres(ctx, dsn, cfg.Tables, cfg.Limits, minYear)
	case "sqlite":
		return connectSQLite(ctx, cfg.DSN, cfg.Tables, cfg.Limits, minYear)
	default:
		return nil, nil, fmt.Errorf("unsupported database type: %s", cfg.Type)
	}
}

func connectPostgres(ctx context.Context, dsn string, tables pnaes.Tables, limits pnaes.Limits, minYear string) (Store, func(), error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("connect postgres: %w: %w", pnaes.ErrUnavailable, err)
	}

	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("ping postgres: %w: %w", pnaes.ErrUnavailable, err)
	}

	repo, err := postgres.NewRepo(pool, postgres.Options{Tables: tables, Limits: limits, MinYear: minYear})
	if err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("create postgres repo: %w", err)
	}

	return repo, pool.Close, nil
}

func connectSQLite(ctx context.Context, dsn string, tables pnaes.Tables, limits pnaes.Limits, minYear string) (Store, func(), error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("open sqlite: %w: %w", pnaes.ErrUnavailable, err)
	}

	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("ping sqlite: %w: %w", pnaes.ErrUnavailable, err)
	}

	repo, err := sqlite.NewRepo(db, sqlite.Options{Tables: tables, Limits: limits, MinYear: minYear})
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("create sqlite repo: %w", err)
	}

	cleanup := func() {
		_ = db.Close()
	}

	return repo, cleanup, nil
}
