package pnaes

import (
	"math"
	"sort"
)

// Round2 rounds a currency or ratio value to 2 decimal places for display.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// perMunicipality divides a total by the distinct-municipality count,
// rounded to 2 decimals. A zero count has no defined ratio and yields nil.
func perMunicipality(total float64, municipalities int) *float64 {
	if municipalities == 0 {
		return nil
	}
	r := Round2(total / float64(municipalities))
	return &r
}

type groupTotals struct {
	value          float64
	quantity       int64
	records        int
	municipalities map[string]struct{}
}

// groupBy accumulates totals per key, returning the map plus keys in
// ascending order so summaries come out deterministic.
func groupBy(records []AmbulatoryRecord, key func(AmbulatoryRecord) string) (map[string]*groupTotals, []string) {
	groups := make(map[string]*groupTotals)

	for _, rec := range records {
		k := key(rec)
		g, ok := groups[k]
		if !ok {
			g = &groupTotals{municipalities: make(map[string]struct{})}
			groups[k] = g
		}
		g.value += rec.ValueTotal
		g.quantity += rec.QuantityTotal
		g.records++
		g.municipalities[rec.MunicipalityCode] = struct{}{}
	}

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return groups, keys
}

// SummarizeByRegion groups ambulatory records by macro-region and computes
// summed value, summed quantity, the distinct-municipality count, and the
// two per-municipality ratios. An empty input yields an empty summary.
func SummarizeByRegion(records []AmbulatoryRecord) []RegionSummary {
	groups, keys := groupBy(records, func(r AmbulatoryRecord) string { return r.RegionName })

	summaries := make([]RegionSummary, 0, len(keys))
	for _, k := range keys {
		g := groups[k]
		n := len(g.municipalities)
		value := Round2(g.value)
		summaries = append(summaries, RegionSummary{
			Region:             k,
			ValueTotal:         value,
			QuantityTotal:      g.quantity,
			Municipalities:     n,
			ValuePerMunicip:    perMunicipality(value, n),
			QuantityPerMunicip: perMunicipality(float64(g.quantity), n),
		})
	}

	return summaries
}

// SummarizeByState groups ambulatory records by state abbreviation with the
// same aggregates as SummarizeByRegion.
func SummarizeByState(records []AmbulatoryRecord) []StateSummary {
	groups, keys := groupBy(records, func(r AmbulatoryRecord) string { return r.StateAbbr })

	summaries := make([]StateSummary, 0, len(keys))
	for _, k := range keys {
		g := groups[k]
		n := len(g.municipalities)
		value := Round2(g.value)
		summaries = append(summaries, StateSummary{
			State:              k,
			ValueTotal:         value,
			QuantityTotal:      g.quantity,
			Municipalities:     n,
			ValuePerMunicip:    perMunicipality(value, n),
			QuantityPerMunicip: perMunicipality(float64(g.quantity), n),
		})
	}

	return summaries
}

// TopStatesByValue returns the top n states ranked descending by summed
// value total. The sort is stable, so ties keep the incoming grouping
// order. The input slice is not modified.
func TopStatesByValue(states []StateSummary, n int) []StateSummary {
	ranked := make([]StateSummary, len(states))
	copy(ranked, states)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].ValueTotal > ranked[j].ValueTotal
	})

	if n < 0 {
		n = 0
	}
	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}

// SummarizeByYear groups ambulatory records by production year and computes
// summed value and quantity only (no per-municipality ratios).
func SummarizeByYear(records []AmbulatoryRecord) []YearSummary {
	groups, keys := groupBy(records, func(r AmbulatoryRecord) string { return r.Year })

	summaries := make([]YearSummary, 0, len(keys))
	for _, k := range keys {
		g := groups[k]
		summaries = append(summaries, YearSummary{
			Year:          k,
			ValueTotal:    Round2(g.value),
			QuantityTotal: g.quantity,
		})
	}

	return summaries
}

// CountByRegion returns the number of records loaded per region, ordered by
// region name.
func CountByRegion(records []AmbulatoryRecord) []RegionCount {
	groups, keys := groupBy(records, func(r AmbulatoryRecord) string { return r.RegionName })

	counts := make([]RegionCount, 0, len(keys))
	for _, k := range keys {
		counts = append(counts, RegionCount{Region: k, Records: groups[k].records})
	}

	return counts
}
