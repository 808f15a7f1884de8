package postgres_test

import (
	"context"
	"crypto/rand"
	"fmt"
	"math"
	"math/big"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/dataiesb/pnaes"
	"github.com/dataiesb/pnaes/database/postgres"
)

var (
	testPool     *pgxpool.Pool
	testPoolOnce sync.Once
	testCleanup  func()
)

// getSharedTestDatabase returns a shared database pool for all tests.
// This significantly improves test performance by reusing the same container.
func getSharedTestDatabase(t *testing.T) *pgxpool.Pool {
	t.Helper()

	testPoolOnce.Do(func() {
		ctx := context.Background()

		pgContainer, err := pgcontainer.Run(ctx,
			"postgres:18-alpine",
			pgcontainer.WithDatabase("testdb"),
			pgcontainer.WithUsername("testuser"),
			pgcontainer.WithPassword("testpass"),
			pgcontainer.BasicWaitStrategies(),
		)
		if err != nil {
			t.Fatalf("failed to start postgres container: %v", err)
		}

		testCleanup = func() {
			if testPool != nil {
				testPool.Close()
			}
			if err := testcontainers.TerminateContainer(pgContainer); err != nil {
				t.Logf("failed to terminate container: %s", err)
			}
		}

		connectionStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
		if err != nil {
			testCleanup()
			t.Fatalf("failed to get connection string: %v", err)
		}

		pool, err := pgxpool.New(ctx, connectionStr)
		if err != nil {
			testCleanup()
			t.Fatalf("could not connect to database: %v", err)
		}

		testPool = pool
	})

	return testPool
}

// getRandomString generates a random string for unique test identifiers.
func getRandomString(t *testing.T) string {
	t.Helper()
	n, err := rand.Int(rand.Reader, big.NewInt(math.MaxInt64))
	assert.NoError(t, err, "random string")
	return fmt.Sprintf("test%x", n.Int64())
}

// dropTable drops the specified table for test cleanup.
func dropTable(ctx context.Context, pool *pgxpool.Pool, tableName string) {
	quotedTable := pgx.Identifier{tableName}.Sanitize()
	_, _ = pool.Exec(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", quotedTable))
}

// setupTestRepo creates the four source tables with unique names, seeds a
// small fixture, and returns a repo over them. Tables are dropped on cleanup.
func setupTestRepo(t *testing.T, limits pnaes.Limits, minYear string) *postgres.Repo {
	t.Helper()

	pool := getSharedTestDatabase(t)
	ctx := context.Background()

	suffix := getRandomString(t)
	tables := pnaes.Tables{
		Ambulatory:   "ambulatorio_" + suffix,
		Population:   "Censo_" + suffix,
		Economic:     "pib_" + suffix,
		Municipality: "municipio_" + suffix,
	}

	ddl := []string{
		fmt.Sprintf(`CREATE TABLE %s (
			municipio_codigo_com_dv TEXT,
			municipio_nome TEXT,
			regiao_nome TEXT,
			uf_sigla TEXT,
			ano_producao_ambulatorial TEXT,
			qtd_total BIGINT,
			vl_total DOUBLE PRECISION,
			qtd_total_subgrupos BIGINT
		)`, pgx.Identifier{tables.Ambulatory}.Sanitize()),
		fmt.Sprintf(`CREATE TABLE %s (
			"ANO" TEXT,
			"CO_MUNICIPIO" TEXT,
			"IDADE" TEXT,
			"SEXO" TEXT,
			"TOTAL" BIGINT
		)`, pgx.Identifier{tables.Population}.Sanitize()),
		fmt.Sprintf(`CREATE TABLE %s (
			codigo_municipio_dv TEXT,
			ano_pib TEXT,
			vl_pib DOUBLE PRECISION,
			vl_pib_per_capta DOUBLE PRECISION,
			vl_servicos DOUBLE PRECISION
		)`, pgx.Identifier{tables.Economic}.Sanitize()),
		fmt.Sprintf(`CREATE TABLE %s (
			codigo_municipio_dv TEXT,
			nome_municipio TEXT,
			municipio_capital BOOLEAN,
			latitude DOUBLE PRECISION,
			longitude DOUBLE PRECISION
		)`, pgx.Identifier{tables.Municipality}.Sanitize()),
	}
	for _, stmt := range ddl {
		_, err := pool.Exec(ctx, stmt)
		require.NoError(t, err, "create fixture table")
	}

	seed := []string{
		fmt.Sprintf(`INSERT INTO %s VALUES
			('1100015', 'Alta Floresta D''Oeste', 'Norte', 'RO', '2019', 7, 70.0, 1),
			('1100015', 'Alta Floresta D''Oeste', 'Norte', 'RO', '2020', 10, 100.0, 2),
			('2300101', 'Abaiara', 'Nordeste', 'CE', '2021', 30, 450.5, 3)`,
			pgx.Identifier{tables.Ambulatory}.Sanitize()),
		fmt.Sprintf(`INSERT INTO %s VALUES
			('2022', '1100015', '25', 'F', 412),
			('2022', '1100015', '25', 'M', 398),
			('2022', '2300101', '30', 'F', 275)`,
			pgx.Identifier{tables.Population}.Sanitize()),
		fmt.Sprintf(`INSERT INTO %s VALUES
			('1100015', '2019', 100000.0, 9.5, 40000.0),
			('1100015', '2021', 512000.5, 12.4, 200000.0),
			('2300101', '2021', 98000.0, 8.1, 30000.0)`,
			pgx.Identifier{tables.Economic}.Sanitize()),
		fmt.Sprintf(`INSERT INTO %s VALUES
			('1100015', 'Alta Floresta D''Oeste', false, -11.93, -61.99),
			('2300101', 'Abaiara', false, -7.34, -39.04),
			('5300108', 'Brasília', true, -15.78, -47.93)`,
			pgx.Identifier{tables.Municipality}.Sanitize()),
	}
	for _, stmt := range seed {
		_, err := pool.Exec(ctx, stmt)
		require.NoError(t, err, "seed fixture table")
	}

	t.Cleanup(func() {
		for _, name := range tables.Names() {
			dropTable(ctx, pool, name)
		}
	})

	repo, err := postgres.NewRepo(pool, postgres.Options{Tables: tables, Limits: limits, MinYear: minYear})
	require.NoError(t, err, "new repo")

	return repo
}
