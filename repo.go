package pnaes

import "context"

// DatasetRepo loads the four source datasets. Each loader issues exactly
// one fixed, parameterized query; a failing loader returns its error to the
// caller with no retry or fallback. Implementations must be safe for
// concurrent use.
type DatasetRepo interface {
	// LoadAmbulatory returns SUS ambulatory production rows for production
	// years at or after the configured minimum year.
	LoadAmbulatory(ctx context.Context) ([]AmbulatoryRecord, error)

	// LoadPopulation returns Censo 2022 population rows, capped at the
	// configured row limit.
	LoadPopulation(ctx context.Context) ([]PopulationRecord, error)

	// LoadEconomic returns municipal GDP rows for years at or after the
	// configured minimum year, capped at the configured row limit.
	LoadEconomic(ctx context.Context) ([]EconomicRecord, error)

	// LoadMunicipalities returns municipality reference rows, capped at the
	// configured row limit.
	LoadMunicipalities(ctx context.Context) ([]Municipality, error)
}

// SchemaIntrospector samples one row per table to report which columns
// actually exist. A failure on one table is recorded in its probe and never
// aborts the remaining tables.
type SchemaIntrospector interface {
	Inspect(ctx context.Context, tables []string) map[string]TableProbe
}
