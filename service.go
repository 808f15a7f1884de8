package pnaes

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// DashboardService is the read-side facade over a DatasetRepo. Summaries
// are computed fresh from the ambulatory table on every call; memoization
// of the underlying loads belongs to the repo (see the cache package).
type DashboardService struct {
	repo      DatasetRepo
	inspector SchemaIntrospector
	tables    Tables
}

// NewDashboardService creates a service over the given repo. The
// introspector is optional; without one, Diagnostics returns an error.
func NewDashboardService(repo DatasetRepo, inspector SchemaIntrospector, tables Tables) (*DashboardService, error) {
	if repo == nil {
		return nil, errors.New("new dashboard service: repo is required")
	}
	if err := tables.Validate(); err != nil {
		return nil, fmt.Errorf("new dashboard service: %w", err)
	}

	return &DashboardService{repo: repo, inspector: inspector, tables: tables}, nil
}

// Ambulatory returns the raw ambulatory production table.
func (s *DashboardService) Ambulatory(ctx context.Context) ([]AmbulatoryRecord, error) {
	records, err := s.repo.LoadAmbulatory(ctx)
	if err != nil {
		return nil, fmt.Errorf("ambulatory: %w", err)
	}
	return records, nil
}

// Population returns the raw census population table.
func (s *DashboardService) Population(ctx context.Context) ([]PopulationRecord, error) {
	records, err := s.repo.LoadPopulation(ctx)
	if err != nil {
		return nil, fmt.Errorf("population: %w", err)
	}
	return records, nil
}

// Economic returns the raw municipal GDP table.
func (s *DashboardService) Economic(ctx context.Context) ([]EconomicRecord, error) {
	records, err := s.repo.LoadEconomic(ctx)
	if err != nil {
		return nil, fmt.Errorf("economic: %w", err)
	}
	return records, nil
}

// Municipalities returns the municipality reference table.
func (s *DashboardService) Municipalities(ctx context.Context) ([]Municipality, error) {
	records, err := s.repo.LoadMunicipalities(ctx)
	if err != nil {
		return nil, fmt.Errorf("municipalities: %w", err)
	}
	return records, nil
}

// Overview loads all four datasets and reports their row counts plus the
// number of distinct regions in the ambulatory table.
func (s *DashboardService) Overview(ctx context.Context) (Overview, error) {
	ambulatory, err := s.repo.LoadAmbulatory(ctx)
	if err != nil {
		return Overview{}, fmt.Errorf("overview: %w", err)
	}
	population, err := s.repo.LoadPopulation(ctx)
	if err != nil {
		return Overview{}, fmt.Errorf("overview: %w", err)
	}
	economic, err := s.repo.LoadEconomic(ctx)
	if err != nil {
		return Overview{}, fmt.Errorf("overview: %w", err)
	}
	municipalities, err := s.repo.LoadMunicipalities(ctx)
	if err != nil {
		return Overview{}, fmt.Errorf("overview: %w", err)
	}

	regions := make(map[string]struct{})
	for _, r := range ambulatory {
		regions[r.RegionName] = struct{}{}
	}

	return Overview{
		AmbulatoryRecords: len(ambulatory),
		PopulationRecords: len(population),
		EconomicRecords:   len(economic),
		Municipalities:    len(municipalities),
		Regions:           len(regions),
	}, nil
}

// RegionSummaries aggregates the ambulatory table by macro-region.
func (s *DashboardService) RegionSummaries(ctx context.Context) ([]RegionSummary, error) {
	records, err := s.repo.LoadAmbulatory(ctx)
	if err != nil {
		return nil, fmt.Errorf("region summaries: %w", err)
	}
	return SummarizeByRegion(records), nil
}

// RegionDistribution reports the loaded record count per macro-region.
func (s *DashboardService) RegionDistribution(ctx context.Context) ([]RegionCount, error) {
	records, err := s.repo.LoadAmbulatory(ctx)
	if err != nil {
		return nil, fmt.Errorf("region distribution: %w", err)
	}
	return CountByRegion(records), nil
}

// StateSummaries aggregates the ambulatory table by state. When top > 0 the
// result is the top states ranked descending by summed value total.
func (s *DashboardService) StateSummaries(ctx context.Context, top int) ([]StateSummary, error) {
	records, err := s.repo.LoadAmbulatory(ctx)
	if err != nil {
		return nil, fmt.Errorf("state summaries: %w", err)
	}

	states := SummarizeByState(records)
	if top > 0 {
		states = TopStatesByValue(states, top)
	}
	return states, nil
}

// YearSummaries aggregates the ambulatory table by production year.
func (s *DashboardService) YearSummaries(ctx context.Context) ([]YearSummary, error) {
	records, err := s.repo.LoadAmbulatory(ctx)
	if err != nil {
		return nil, fmt.Errorf("year summaries: %w", err)
	}
	return SummarizeByYear(records), nil
}

// ExportAmbulatoryCSV writes the raw ambulatory table to w as CSV.
func (s *DashboardService) ExportAmbulatoryCSV(ctx context.Context, w io.Writer) error {
	records, err := s.repo.LoadAmbulatory(ctx)
	if err != nil {
		return fmt.Errorf("export ambulatory csv: %w", err)
	}
	if err := WriteAmbulatoryCSV(w, records); err != nil {
		return fmt.Errorf("export ambulatory csv: %w", err)
	}
	return nil
}

// Diagnostics samples one row from each configured source table and reports
// the columns found, or the per-table error. Partial failure is expected;
// only a missing introspector is an error.
func (s *DashboardService) Diagnostics(ctx context.Context) (map[string]TableProbe, error) {
	if s.inspector == nil {
		return nil, errors.New("diagnostics: no schema introspector configured")
	}
	return s.inspector.Inspect(ctx, s.tables.Names()), nil
}
