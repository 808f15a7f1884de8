package pnaes_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dataiesb/pnaes"
)

type SpyDatasetRepo struct {
	mock.Mock
}

func (s *SpyDatasetRepo) LoadAmbulatory(ctx context.Context) ([]pnaes.AmbulatoryRecord, error) {
	args := s.Called(ctx)
	return args.Get(0).([]pnaes.AmbulatoryRecord), args.Error(1)
}

func (s *SpyDatasetRepo) LoadPopulation(ctx context.Context) ([]pnaes.PopulationRecord, error) {
	args := s.Called(ctx)
	return args.Get(0).([]pnaes.PopulationRecord), args.Error(1)
}

func (s *SpyDatasetRepo) LoadEconomic(ctx context.Context) ([]pnaes.EconomicRecord, error) {
	args := s.Called(ctx)
	return args.Get(0).([]pnaes.EconomicRecord), args.Error(1)
}

func (s *SpyDatasetRepo) LoadMunicipalities(ctx context.Context) ([]pnaes.Municipality, error) {
	args := s.Called(ctx)
	return args.Get(0).([]pnaes.Municipality), args.Error(1)
}

type SpyIntrospector struct {
	mock.Mock
}

func (s *SpyIntrospector) Inspect(ctx context.Context, tables []string) map[string]pnaes.TableProbe {
	args := s.Called(ctx, tables)
	return args.Get(0).(map[string]pnaes.TableProbe)
}

func NewDashboardService(t *testing.T) (*pnaes.DashboardService, *SpyDatasetRepo, *SpyIntrospector) {
	t.Helper()
	spyRepo := new(SpyDatasetRepo)
	spyInspector := new(SpyIntrospector)
	s, err := pnaes.NewDashboardService(spyRepo, spyInspector, pnaes.DefaultTables())
	assert.NoError(t, err, "new dashboard service")
	return s, spyRepo, spyInspector
}

func TestNewDashboardService(t *testing.T) {
	t.Run("nil repo", func(t *testing.T) {
		_, err := pnaes.NewDashboardService(nil, nil, pnaes.DefaultTables())
		assert.Error(t, err)
	})

	t.Run("invalid tables", func(t *testing.T) {
		tables := pnaes.DefaultTables()
		tables.Municipality = "not a table"

		_, err := pnaes.NewDashboardService(new(SpyDatasetRepo), nil, tables)
		assert.Error(t, err)
	})
}

func TestServiceDatasets(t *testing.T) {
	t.Run("ambulatory", func(t *testing.T) {
		s, spyRepo, _ := NewDashboardService(t)
		records := fixtureRecords()
		spyRepo.On("LoadAmbulatory", mock.Anything).Return(records, nil)

		got, err := s.Ambulatory(context.Background())
		require.NoError(t, err)
		assert.Equal(t, records, got)
		spyRepo.AssertExpectations(t)
	})

	t.Run("ambulatory load failure", func(t *testing.T) {
		s, spyRepo, _ := NewDashboardService(t)
		spyRepo.On("LoadAmbulatory", mock.Anything).
			Return([]pnaes.AmbulatoryRecord(nil), pnaes.ErrUnavailable)

		_, err := s.Ambulatory(context.Background())
		assert.ErrorIs(t, err, pnaes.ErrUnavailable)
	})

	t.Run("population", func(t *testing.T) {
		s, spyRepo, _ := NewDashboardService(t)
		records := []pnaes.PopulationRecord{{Year: "2022", MunicipalityCode: "1100015", Age: "25", Sex: "F", Population: 412}}
		spyRepo.On("LoadPopulation", mock.Anything).Return(records, nil)

		got, err := s.Population(context.Background())
		require.NoError(t, err)
		assert.Equal(t, records, got)
	})

	t.Run("economic", func(t *testing.T) {
		s, spyRepo, _ := NewDashboardService(t)
		records := []pnaes.EconomicRecord{{MunicipalityCode: "1100015", Year: "2021", GDPTotal: 512000.5}}
		spyRepo.On("LoadEconomic", mock.Anything).Return(records, nil)

		got, err := s.Economic(context.Background())
		require.NoError(t, err)
		assert.Equal(t, records, got)
	})

	t.Run("municipalities", func(t *testing.T) {
		s, spyRepo, _ := NewDashboardService(t)
		records := []pnaes.Municipality{{Code: "5300108", Name: "Brasília", IsCapital: true}}
		spyRepo.On("LoadMunicipalities", mock.Anything).Return(records, nil)

		got, err := s.Municipalities(context.Background())
		require.NoError(t, err)
		assert.Equal(t, records, got)
	})
}

func TestServiceOverview(t *testing.T) {
	t.Run("counts all datasets", func(t *testing.T) {
		s, spyRepo, _ := NewDashboardService(t)
		spyRepo.On("LoadAmbulatory", mock.Anything).Return(fixtureRecords(), nil)
		spyRepo.On("LoadPopulation", mock.Anything).Return([]pnaes.PopulationRecord{{}, {}}, nil)
		spyRepo.On("LoadEconomic", mock.Anything).Return([]pnaes.EconomicRecord{{}}, nil)
		spyRepo.On("LoadMunicipalities", mock.Anything).Return([]pnaes.Municipality{{}, {}, {}}, nil)

		got, err := s.Overview(context.Background())
		require.NoError(t, err)
		assert.Equal(t, pnaes.Overview{
			AmbulatoryRecords: 6,
			PopulationRecords: 2,
			EconomicRecords:   1,
			Municipalities:    3,
			Regions:           3,
		}, got)
		spyRepo.AssertExpectations(t)
	})

	t.Run("fails when any load fails", func(t *testing.T) {
		s, spyRepo, _ := NewDashboardService(t)
		spyRepo.On("LoadAmbulatory", mock.Anything).Return(fixtureRecords(), nil)
		spyRepo.On("LoadPopulation", mock.Anything).
			Return([]pnaes.PopulationRecord(nil), pnaes.ErrUnavailable)

		_, err := s.Overview(context.Background())
		assert.ErrorIs(t, err, pnaes.ErrUnavailable)
	})
}

func TestServiceSummaries(t *testing.T) {
	t.Run("regions", func(t *testing.T) {
		s, spyRepo, _ := NewDashboardService(t)
		spyRepo.On("LoadAmbulatory", mock.Anything).Return(fixtureRecords(), nil)

		got, err := s.RegionSummaries(context.Background())
		require.NoError(t, err)
		assert.Equal(t, pnaes.SummarizeByRegion(fixtureRecords()), got)
	})

	t.Run("region distribution", func(t *testing.T) {
		s, spyRepo, _ := NewDashboardService(t)
		spyRepo.On("LoadAmbulatory", mock.Anything).Return(fixtureRecords(), nil)

		got, err := s.RegionDistribution(context.Background())
		require.NoError(t, err)
		assert.Len(t, got, 3)
	})

	t.Run("states without top", func(t *testing.T) {
		s, spyRepo, _ := NewDashboardService(t)
		spyRepo.On("LoadAmbulatory", mock.Anything).Return(fixtureRecords(), nil)

		got, err := s.StateSummaries(context.Background(), 0)
		require.NoError(t, err)
		assert.Len(t, got, 4)
		assert.Equal(t, "CE", got[0].State, "unranked output is ordered by state")
	})

	t.Run("states with top", func(t *testing.T) {
		s, spyRepo, _ := NewDashboardService(t)
		spyRepo.On("LoadAmbulatory", mock.Anything).Return(fixtureRecords(), nil)

		got, err := s.StateSummaries(context.Background(), 2)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "SP", got[0].State)
	})

	t.Run("years", func(t *testing.T) {
		s, spyRepo, _ := NewDashboardService(t)
		spyRepo.On("LoadAmbulatory", mock.Anything).Return(fixtureRecords(), nil)

		got, err := s.YearSummaries(context.Background())
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "2020", got[0].Year)
	})

	t.Run("load failure propagates", func(t *testing.T) {
		s, spyRepo, _ := NewDashboardService(t)
		spyRepo.On("LoadAmbulatory", mock.Anything).
			Return([]pnaes.AmbulatoryRecord(nil), errors.New("boom"))

		_, err := s.RegionSummaries(context.Background())
		assert.Error(t, err)
	})
}

func TestServiceExportAmbulatoryCSV(t *testing.T) {
	s, spyRepo, _ := NewDashboardService(t)
	spyRepo.On("LoadAmbulatory", mock.Anything).Return(fixtureRecords(), nil)

	var buf bytes.Buffer
	require.NoError(t, s.ExportAmbulatoryCSV(context.Background(), &buf))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Len(t, lines, len(fixtureRecords())+1)
}

func TestServiceDiagnostics(t *testing.T) {
	t.Run("reports per table probes", func(t *testing.T) {
		s, _, spyInspector := NewDashboardService(t)
		probes := map[string]pnaes.TableProbe{
			"municipio":                     {Columns: []string{"codigo_municipio", "nome_municipio"}},
			"sus_procedimento_ambulatorial": {Error: "relation does not exist"},
		}
		spyInspector.On("Inspect", mock.Anything, pnaes.DefaultTables().Names()).Return(probes)

		got, err := s.Diagnostics(context.Background())
		require.NoError(t, err)
		assert.Equal(t, probes, got)
		spyInspector.AssertExpectations(t)
	})

	t.Run("no introspector", func(t *testing.T) {
		s, err := pnaes.NewDashboardService(new(SpyDatasetRepo), nil, pnaes.DefaultTables())
		require.NoError(t, err)

		_, err = s.Diagnostics(context.Background())
		assert.Error(t, err)
	})
}
