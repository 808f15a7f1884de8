// Package sqlite implements the dataset repo using SQLite
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dataiesb/pnaes"
)

// Options configures the repo. Tables must pass validation before any name
// is interpolated into query text.
type Options struct {
	Tables  pnaes.Tables
	Limits  pnaes.Limits
	MinYear string
}

// Repo loads the four source datasets from a SQLite snapshot of the
// production tables. Intended for local development and fixtures.
type Repo struct {
	db   *sql.DB
	opts Options
}

// NewRepo creates a Repo over an open database handle.
func NewRepo(db *sql.DB, opts Options) (*Repo, error) {
	if err := opts.Tables.Validate(); err != nil {
		return nil, fmt.Errorf("new repo: %w", err)
	}
	if err := opts.Limits.Validate(); err != nil {
		return nil, fmt.Errorf("new repo: %w", err)
	}
	if opts.MinYear == "" {
		opts.MinYear = pnaes.DefaultMinYear
	}

	return &Repo{db: db, opts: opts}, nil
}

// Ping verifies database connectivity
func (r *Repo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func quoteIdent(name string) string {
	return `"` + name + `"`
}

func (r *Repo) LoadAmbulatory(ctx context.Context) ([]pnaes.AmbulatoryRecord, error) {
	query := fmt.Sprintf( //nolint:gosec // G201: table name is validated
		`SELECT
			municipio_codigo_com_dv AS codigo_municipio,
			municipio_nome AS nome_municipio,
			regiao_nome,
			uf_sigla,
			ano_producao_ambulatorial,
			qtd_total,
			vl_total,
			qtd_total_subgrupos
		FROM %s
		WHERE ano_producao_ambulatorial >= ?`, quoteIdent(r.opts.Tables.Ambulatory))

	rows, err := r.db.QueryContext(ctx, query, r.opts.MinYear)
	if err != nil {
		return nil, fmt.Errorf("load ambulatory: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []pnaes.AmbulatoryRecord
	for rows.Next() {
		var rec pnaes.AmbulatoryRecord
		if err := rows.Scan(
			&rec.MunicipalityCode, &rec.MunicipalityName, &rec.RegionName, &rec.StateAbbr,
			&rec.Year, &rec.QuantityTotal, &rec.ValueTotal, &rec.SubgroupQuantity,
		); err != nil {
			return nil, fmt.Errorf("load ambulatory: scan: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load ambulatory: rows: %w", err)
	}

	return records, nil
}

func (r *Repo) LoadPopulation(ctx context.Context) ([]pnaes.PopulationRecord, error) {
	query := fmt.Sprintf( //nolint:gosec // G201: table name is validated
		`SELECT "ANO", "CO_MUNICIPIO", "IDADE", "SEXO", "TOTAL" AS populacao
		FROM %s`, quoteIdent(r.opts.Tables.Population))

	var args []any
	if r.opts.Limits.Population > 0 {
		query += ` LIMIT ?`
		args = append(args, r.opts.Limits.Population)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("load population: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []pnaes.PopulationRecord
	for rows.Next() {
		var rec pnaes.PopulationRecord
		if err := rows.Scan(&rec.Year, &rec.MunicipalityCode, &rec.Age, &rec.Sex, &rec.Population); err != nil {
			return nil, fmt.Errorf("load population: scan: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load population: rows: %w", err)
	}

	return records, nil
}

func (r *Repo) LoadEconomic(ctx context.Context) ([]pnaes.EconomicRecord, error) {
	query := fmt.Sprintf( //nolint:gosec // G201: table name is validated
		`SELECT codigo_municipio_dv, ano_pib, vl_pib, vl_pib_per_capta, vl_servicos
		FROM %s
		WHERE ano_pib >= ?`, quoteIdent(r.opts.Tables.Economic))

	args := []any{r.opts.MinYear}
	if r.opts.Limits.Economic > 0 {
		query += ` LIMIT ?`
		args = append(args, r.opts.Limits.Economic)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("load economic: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []pnaes.EconomicRecord
	for rows.Next() {
		var rec pnaes.EconomicRecord
		if err := rows.Scan(&rec.MunicipalityCode, &rec.Year, &rec.GDPTotal, &rec.GDPPerCapita, &rec.ServicesValue); err != nil {
			return nil, fmt.Errorf("load economic: scan: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load economic: rows: %w", err)
	}

	return records, nil
}

func (r *Repo) LoadMunicipalities(ctx context.Context) ([]pnaes.Municipality, error) {
	query := fmt.Sprintf( //nolint:gosec // G201: table name is validated
		`SELECT
			codigo_municipio_dv AS codigo_municipio,
			nome_municipio,
			municipio_capital,
			latitude,
			longitude
		FROM %s`, quoteIdent(r.opts.Tables.Municipality))

	var args []any
	if r.opts.Limits.Municipality > 0 {
		query += ` LIMIT ?`
		args = append(args, r.opts.Limits.Municipality)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("load municipalities: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []pnaes.Municipality
	for rows.Next() {
		var rec pnaes.Municipality
		if err := rows.Scan(&rec.Code, &rec.Name, &rec.IsCapital, &rec.Latitude, &rec.Longitude); err != nil {
			return nil, fmt.Errorf("load municipalities: scan: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load municipalities: rows: %w", err)
	}

	return records, nil
}
