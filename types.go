package pnaes

import (
	"errors"
	"fmt"
	"regexp"
)

// AmbulatoryRecord is one row of SUS ambulatory production per
// (municipality, production year). Field names follow the source query
// aliases so the JSON and CSV surfaces match the upstream schema.
type AmbulatoryRecord struct {
	MunicipalityCode string  `json:"codigo_municipio"`
	MunicipalityName string  `json:"nome_municipio"`
	RegionName       string  `json:"regiao_nome"`
	StateAbbr        string  `json:"uf_sigla"`
	Year             string  `json:"ano_producao_ambulatorial"`
	QuantityTotal    int64   `json:"qtd_total"`
	ValueTotal       float64 `json:"vl_total"`
	SubgroupQuantity int64   `json:"qtd_total_subgrupos"`
}

// PopulationRecord is one Censo 2022 row per (year, municipality, age, sex).
type PopulationRecord struct {
	Year             string `json:"ano"`
	MunicipalityCode string `json:"co_municipio"`
	Age              string `json:"idade"`
	Sex              string `json:"sexo"`
	Population       int64  `json:"populacao"`
}

// EconomicRecord is one municipal GDP row per (municipality, year).
type EconomicRecord struct {
	MunicipalityCode string  `json:"codigo_municipio_dv"`
	Year             string  `json:"ano_pib"`
	GDPTotal         float64 `json:"vl_pib"`
	GDPPerCapita     float64 `json:"vl_pib_per_capta"`
	ServicesValue    float64 `json:"vl_servicos"`
}

// Municipality is reference data for a Brazilian municipality.
type Municipality struct {
	Code      string  `json:"codigo_municipio"`
	Name      string  `json:"nome_municipio"`
	IsCapital bool    `json:"municipio_capital"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// RegionSummary aggregates ambulatory production for one macro-region.
// The per-municipality ratios are nil when the region has no distinct
// municipalities.
type RegionSummary struct {
	Region             string   `json:"regiao_nome"`
	ValueTotal         float64  `json:"investimento_total"`
	QuantityTotal      int64    `json:"procedimentos_total"`
	Municipalities     int      `json:"municipios"`
	ValuePerMunicip    *float64 `json:"investimento_por_municipio"`
	QuantityPerMunicip *float64 `json:"procedimentos_por_municipio"`
}

// StateSummary aggregates ambulatory production for one federative unit.
type StateSummary struct {
	State              string   `json:"uf_sigla"`
	ValueTotal         float64  `json:"investimento_total"`
	QuantityTotal      int64    `json:"procedimentos_total"`
	Municipalities     int      `json:"municipios"`
	ValuePerMunicip    *float64 `json:"investimento_por_municipio"`
	QuantityPerMunicip *float64 `json:"procedimentos_por_municipio"`
}

// YearSummary aggregates ambulatory production for one production year.
type YearSummary struct {
	Year          string  `json:"ano_producao_ambulatorial"`
	ValueTotal    float64 `json:"investimento_total"`
	QuantityTotal int64   `json:"procedimentos_total"`
}

// RegionCount is the number of ambulatory records loaded for one region.
type RegionCount struct {
	Region  string `json:"regiao_nome"`
	Records int    `json:"registros"`
}

// Overview reports how much of each dataset was loaded.
type Overview struct {
	AmbulatoryRecords int `json:"ambulatory_records"`
	PopulationRecords int `json:"population_records"`
	EconomicRecords   int `json:"economic_records"`
	Municipalities    int `json:"municipalities"`
	Regions           int `json:"regions"`
}

// TableProbe is the per-table result of schema introspection: either the
// column names (plus the first row, when the table has one) or an error
// string. Exactly one of Columns and Error is set.
type TableProbe struct {
	Columns []string `json:"columns,omitempty"`
	Sample  []string `json:"sample,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// Tables holds the configurable source table names. Defaults mirror the
// production schema at bigdata.dataiesb.com.
type Tables struct {
	Ambulatory   string `mapstructure:"ambulatory"`
	Population   string `mapstructure:"population"`
	Economic     string `mapstructure:"economic"`
	Municipality string `mapstructure:"municipality"`
}

// DefaultTables returns the production table names.
func DefaultTables() Tables {
	return Tables{
		Ambulatory:   "sus_procedimento_ambulatorial",
		Population:   "Censo_20222_Populacao_Idade_Sexo",
		Economic:     "pib_municipios",
		Municipality: "municipio",
	}
}

// Names returns the table names in introspection order.
func (t Tables) Names() []string {
	return []string{t.Municipality, t.Ambulatory, t.Economic, t.Population}
}

var validTableNameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// IsValidTableName checks that a name is a plain SQL identifier (letters,
// digits, underscores, max 63 chars). Table names are interpolated into
// query text, so anything else is rejected before it reaches SQL.
func IsValidTableName(name string) bool {
	return validTableNameRegex.MatchString(name) && len(name) <= 63
}

// Validate checks that all four table names are set and valid.
func (t Tables) Validate() error {
	named := []struct {
		key  string
		name string
	}{
		{"ambulatory", t.Ambulatory},
		{"population", t.Population},
		{"economic", t.Economic},
		{"municipality", t.Municipality},
	}

	for _, n := range named {
		if n.name == "" {
			return fmt.Errorf("validate tables: %s table name cannot be empty", n.key)
		}
		if !IsValidTableName(n.name) {
			return fmt.Errorf("validate tables: invalid %s table name: %s (must match ^[A-Za-z_][A-Za-z0-9_]*$ and be <= 63 chars)", n.key, n.name)
		}
	}

	return nil
}

// Limits caps how many rows each loader pulls. The caps are performance
// guards, not business rules; zero disables the cap for that dataset.
type Limits struct {
	Population   int `mapstructure:"population"`
	Economic     int `mapstructure:"economic"`
	Municipality int `mapstructure:"municipality"`
}

// DefaultLimits returns the original dashboard's row caps.
func DefaultLimits() Limits {
	return Limits{
		Population:   100000,
		Economic:     50000,
		Municipality: 5000,
	}
}

// Validate rejects negative caps.
func (l Limits) Validate() error {
	if l.Population < 0 || l.Economic < 0 || l.Municipality < 0 {
		return errors.New("validate limits: row caps cannot be negative")
	}
	return nil
}

// DefaultMinYear is the earliest production year loaded. Years are stored
// as text upstream, so the filter compares strings.
const DefaultMinYear = "2020"
