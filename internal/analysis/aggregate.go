// Package analysis computes grouped impact totals over normalized storm
// event records: per-category sums, per-category-per-year sums, and ranked
// top-N tables. All functions are pure and single-pass over their input.
package analysis

import (
	"sort"

	"github.com/couchcryptid/storm-impact-report/internal/domain"
)

// CategoryTotals is the aggregate row for one canonical category.
type CategoryTotals struct {
	Category               string  `json:"category"`
	Fatalities             int     `json:"fatalities"`
	Injuries               int     `json:"injuries"`
	HealthImpact           int     `json:"health_impact"`
	EconomicImpactBillions float64 `json:"economic_impact_billions"`
}

// YearlyTotals is the aggregate row for one (category, year) pair, used
// for trend tables.
type YearlyTotals struct {
	Category               string  `json:"category"`
	Year                   int     `json:"year"`
	HealthImpact           int     `json:"health_impact"`
	EconomicImpactBillions float64 `json:"economic_impact_billions"`
}

// SortKey selects the metric TopN ranks by.
type SortKey string

const (
	SortByHealthImpact   SortKey = "health_impact"
	SortByEconomicImpact SortKey = "economic_impact"
)

// AggregateByCategory groups records by exact canonical-category equality
// and sums their impact metrics. Rows come back in first-seen category
// order, which downstream ranking relies on for stable tie-breaks.
// Economic sums accumulate in dollars and convert to billions once at the
// end.
func AggregateByCategory(records []domain.ImpactRecord) []CategoryTotals {
	index := make(map[string]int)
	rows := make([]CategoryTotals, 0)
	dollars := make([]float64, 0)

	for _, rec := range records {
		i, ok := index[rec.Category]
		if !ok {
			i = len(rows)
			index[rec.Category] = i
			rows = append(rows, CategoryTotals{Category: rec.Category})
			dollars = append(dollars, 0)
		}
		rows[i].Fatalities += rec.Fatalities
		rows[i].Injuries += rec.Injuries
		rows[i].HealthImpact += rec.HealthImpact()
		dollars[i] += rec.EconomicDamage()
	}

	for i := range rows {
		rows[i].EconomicImpactBillions = dollars[i] / 1e9
	}
	return rows
}

// TopN returns the n categories with the largest value of the chosen
// metric, descending. The sort is stable, so categories tied on the metric
// keep their input order. Never errors: n larger than the row count just
// returns everything, n <= 0 returns an empty slice. The input is left
// untouched.
func TopN(totals []CategoryTotals, n int, key SortKey) []CategoryTotals {
	if n <= 0 {
		return []CategoryTotals{}
	}

	ranked := make([]CategoryTotals, len(totals))
	copy(ranked, totals)

	sort.SliceStable(ranked, func(a, b int) bool {
		return metric(ranked[a], key) > metric(ranked[b], key)
	})

	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}

func metric(row CategoryTotals, key SortKey) float64 {
	if key == SortByEconomicImpact {
		return row.EconomicImpactBillions
	}
	return float64(row.HealthImpact)
}

// AggregateByCategoryAndYear groups records by (category, year). Records
// without a known year (year 0) belong to no year and are excluded here,
// though AggregateByCategory still counts them. A non-nil categories slice
// restricts the input to those categories before grouping, which is how
// trend tables stay limited to the previously ranked top N. Rows are
// ordered by first appearance of the category, then year ascending.
func AggregateByCategoryAndYear(records []domain.ImpactRecord, categories []string) []YearlyTotals {
	var allowed map[string]struct{}
	if categories != nil {
		allowed = make(map[string]struct{}, len(categories))
		for _, c := range categories {
			allowed[c] = struct{}{}
		}
	}

	type groupKey struct {
		category string
		year     int
	}

	index := make(map[groupKey]int)
	catOrder := make(map[string]int)
	rows := make([]YearlyTotals, 0)
	dollars := make([]float64, 0)

	for _, rec := range records {
		if rec.Year == 0 {
			continue
		}
		if allowed != nil {
			if _, ok := allowed[rec.Category]; !ok {
				continue
			}
		}

		if _, ok := catOrder[rec.Category]; !ok {
			catOrder[rec.Category] = len(catOrder)
		}

		key := groupKey{category: rec.Category, year: rec.Year}
		i, ok := index[key]
		if !ok {
			i = len(rows)
			index[key] = i
			rows = append(rows, YearlyTotals{Category: rec.Category, Year: rec.Year})
			dollars = append(dollars, 0)
		}
		rows[i].HealthImpact += rec.HealthImpact()
		dollars[i] += rec.EconomicDamage()
	}

	for i := range rows {
		rows[i].EconomicImpactBillions = dollars[i] / 1e9
	}

	sort.SliceStable(rows, func(a, b int) bool {
		if rows[a].Category != rows[b].Category {
			return catOrder[rows[a].Category] < catOrder[rows[b].Category]
		}
		return rows[a].Year < rows[b].Year
	})
	return rows
}
