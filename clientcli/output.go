package clientcli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/dataiesb/pnaes"
)

// Formatter formats results for output.
type Formatter interface {
	FormatOverview(w io.Writer, overview pnaes.Overview) error
	FormatRegions(w io.Writer, summaries []pnaes.RegionSummary) error
	FormatStates(w io.Writer, summaries []pnaes.StateSummary) error
	FormatYears(w io.Writer, summaries []pnaes.YearSummary) error
	FormatSchema(w io.Writer, probes map[string]pnaes.TableProbe) error
	FormatProfileList(w io.Writer, profiles []Profile, defaultName string) error
}

// NewFormatter returns the appropriate formatter based on flags.
func NewFormatter(jsonOutput bool) Formatter {
	if jsonOutput {
		return &JSONFormatter{}
	}
	return &HumanFormatter{}
}

// HumanFormatter outputs aligned, human-readable tables.
type HumanFormatter struct{}

func ratioString(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *v)
}

// FormatOverview formats dataset counts as human-readable text.
func (f *HumanFormatter) FormatOverview(w io.Writer, overview pnaes.Overview) error {
	_, _ = fmt.Fprintf(w, "Ambulatory records: %d\n", overview.AmbulatoryRecords)
	_, _ = fmt.Fprintf(w, "Population records: %d\n", overview.PopulationRecords)
	_, _ = fmt.Fprintf(w, "Economic records:   %d\n", overview.EconomicRecords)
	_, _ = fmt.Fprintf(w, "Municipalities:     %d\n", overview.Municipalities)
	_, _ = fmt.Fprintf(w, "Regions:            %d\n", overview.Regions)
	return nil
}

// FormatRegions formats the by-region aggregate as an aligned table.
func (f *HumanFormatter) FormatRegions(w io.Writer, summaries []pnaes.RegionSummary) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "REGION\tVALUE\tPROCEDURES\tMUNICIPALITIES\tVALUE/MUN\tPROC/MUN")
	for _, s := range summaries {
		_, _ = fmt.Fprintf(tw, "%s\t%.2f\t%d\t%d\t%s\t%s\n",
			s.Region, s.ValueTotal, s.QuantityTotal, s.Municipalities,
			ratioString(s.ValuePerMunicip), ratioString(s.QuantityPerMunicip))
	}
	return tw.Flush()
}

// FormatStates formats the by-state aggregate as an aligned table.
func (f *HumanFormatter) FormatStates(w io.Writer, summaries []pnaes.StateSummary) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "UF\tVALUE\tPROCEDURES\tMUNICIPALITIES\tVALUE/MUN\tPROC/MUN")
	for _, s := range summaries {
		_, _ = fmt.Fprintf(tw, "%s\t%.2f\t%d\t%d\t%s\t%s\n",
			s.State, s.ValueTotal, s.QuantityTotal, s.Municipalities,
			ratioString(s.ValuePerMunicip), ratioString(s.QuantityPerMunicip))
	}
	return tw.Flush()
}

// FormatYears formats the by-year aggregate as an aligned table.
func (f *HumanFormatter) FormatYears(w io.Writer, summaries []pnaes.YearSummary) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "YEAR\tVALUE\tPROCEDURES")
	for _, s := range summaries {
		_, _ = fmt.Fprintf(tw, "%s\t%.2f\t%d\n", s.Year, s.ValueTotal, s.QuantityTotal)
	}
	return tw.Flush()
}

// FormatSchema formats the introspection diagnostics per table.
func (f *HumanFormatter) FormatSchema(w io.Writer, probes map[string]pnaes.TableProbe) error {
	tables := make([]string, 0, len(probes))
	for table := range probes {
		tables = append(tables, table)
	}
	sort.Strings(tables)

	for _, table := range tables {
		probe := probes[table]
		_, _ = fmt.Fprintf(w, "Table: %s\n", table)
		if probe.Error != "" {
			_, _ = fmt.Fprintf(w, "  Error: %s\n", probe.Error)
			continue
		}
		for _, col := range probe.Columns {
			_, _ = fmt.Fprintf(w, "  - %s\n", col)
		}
	}
	return nil
}

// FormatProfileList formats configured profiles, marking the default with *.
func (f *HumanFormatter) FormatProfileList(w io.Writer, profiles []Profile, defaultName string) error {
	for _, p := range profiles {
		marker := " "
		if p.Name == defaultName {
			marker = "*"
		}
		_, _ = fmt.Fprintf(w, "%s %s\t%s\n", marker, p.Name, p.Endpoint)
	}
	return nil
}

// JSONFormatter outputs raw JSON.
type JSONFormatter struct{}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (f *JSONFormatter) FormatOverview(w io.Writer, overview pnaes.Overview) error {
	return writeJSON(w, overview)
}

func (f *JSONFormatter) FormatRegions(w io.Writer, summaries []pnaes.RegionSummary) error {
	return writeJSON(w, summaries)
}

func (f *JSONFormatter) FormatStates(w io.Writer, summaries []pnaes.StateSummary) error {
	return writeJSON(w, summaries)
}

func (f *JSONFormatter) FormatYears(w io.Writer, summaries []pnaes.YearSummary) error {
	return writeJSON(w, summaries)
}

func (f *JSONFormatter) FormatSchema(w io.Writer, probes map[string]pnaes.TableProbe) error {
	return writeJSON(w, probes)
}

func (f *JSONFormatter) FormatProfileList(w io.Writer, profiles []Profile, defaultName string) error {
	type profileOut struct {
		Name      string `json:"name"`
		Endpoint  string `json:"endpoint"`
		IsDefault bool   `json:"is_default"`
	}
	out := make([]profileOut, len(profiles))
	for i, p := range profiles {
		out[i] = profileOut{Name: p.Name, Endpoint: p.Endpoint, IsDefault: p.Name == defaultName}
	}
	return writeJSON(w, out)
}
