package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/dataiesb/pnaes"
	"github.com/dataiesb/pnaes/database/sqlite"
)

// setupTestRepo opens an in-memory database, creates the four source tables
// and loads a small fixture.
func setupTestRepo(t *testing.T, opts sqlite.Options) (*sqlite.Repo, *sql.DB) {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err, "open sqlite")
	// A second connection would see a different in-memory database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()

	ddl := []string{
		`CREATE TABLE sus_procedimento_ambulatorial (
			municipio_codigo_com_dv TEXT,
			municipio_nome TEXT,
			regiao_nome TEXT,
			uf_sigla TEXT,
			ano_producao_ambulatorial TEXT,
			qtd_total INTEGER,
			vl_total REAL,
			qtd_total_subgrupos INTEGER
		)`,
		`CREATE TABLE "Censo_20222_Populacao_Idade_Sexo" (
			"ANO" TEXT,
			"CO_MUNICIPIO" TEXT,
			"IDADE" TEXT,
			"SEXO" TEXT,
			"TOTAL" INTEGER
		)`,
		`CREATE TABLE pib_municipios (
			codigo_municipio_dv TEXT,
			ano_pib TEXT,
			vl_pib REAL,
			vl_pib_per_capta REAL,
			vl_servicos REAL
		)`,
		`CREATE TABLE municipio (
			codigo_municipio_dv TEXT,
			nome_municipio TEXT,
			municipio_capital INTEGER,
			latitude REAL,
			longitude REAL
		)`,
	}
	for _, stmt := range ddl {
		_, err := db.ExecContext(ctx, stmt)
		require.NoError(t, err, "create fixture table")
	}

	seed := []string{
		`INSERT INTO sus_procedimento_ambulatorial VALUES
			('1100015', 'Alta Floresta D''Oeste', 'Norte', 'RO', '2019', 7, 70.0, 1),
			('1100015', 'Alta Floresta D''Oeste', 'Norte', 'RO', '2020', 10, 100.0, 2),
			('2300101', 'Abaiara', 'Nordeste', 'CE', '2021', 30, 450.5, 3)`,
		`INSERT INTO "Censo_20222_Populacao_Idade_Sexo" VALUES
			('2022', '1100015', '25', 'F', 412),
			('2022', '1100015', '25', 'M', 398),
			('2022', '2300101', '30', 'F', 275)`,
		`INSERT INTO pib_municipios VALUES
			('1100015', '2019', 100000.0, 9.5, 40000.0),
			('1100015', '2021', 512000.5, 12.4, 200000.0),
			('2300101', '2021', 98000.0, 8.1, 30000.0)`,
		`INSERT INTO municipio VALUES
			('1100015', 'Alta Floresta D''Oeste', 0, -11.93, -61.99),
			('2300101', 'Abaiara', 0, -7.34, -39.04),
			('5300108', 'Brasília', 1, -15.78, -47.93)`,
	}
	for _, stmt := range seed {
		_, err := db.ExecContext(ctx, stmt)
		require.NoError(t, err, "seed fixture table")
	}

	if opts.Tables == (pnaes.Tables{}) {
		opts.Tables = pnaes.DefaultTables()
	}

	repo, err := sqlite.NewRepo(db, opts)
	require.NoError(t, err, "new repo")

	return repo, db
}
