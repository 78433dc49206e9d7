// Package report assembles the storm impact report: ranked category tables
// and per-year trend rows derived from the full dataset, plus the refresh
// orchestration that keeps a current report available to the HTTP and Kafka
// surfaces.
package report

import (
	"time"

	"github.com/couchcryptid/storm-impact-report/internal/analysis"
	"github.com/couchcryptid/storm-impact-report/internal/domain"
	"github.com/couchcryptid/storm-impact-report/internal/loader"
)

// Report is one complete analysis pass over the dataset.
type Report struct {
	GeneratedAt time.Time `json:"generated_at"`
	RecordCount int       `json:"record_count"`
	TopN        int       `json:"top_n"`

	// Parse and normalization bookkeeping. Unmapped labels and yearless
	// records are informational, never errors: unmapped labels pass
	// through as their own categories, yearless records count toward the
	// category tables but not the trends.
	SkippedRows     int `json:"skipped_rows"`
	UnmappedLabels  int `json:"unmapped_labels"`
	YearlessRecords int `json:"yearless_records"`

	TopHealthImpact   []analysis.CategoryTotals `json:"top_health_impact"`
	TopEconomicImpact []analysis.CategoryTotals `json:"top_economic_impact"`

	// Trend rows are restricted to the categories in the corresponding
	// ranked table.
	HealthTrends   []analysis.YearlyTotals `json:"health_trends"`
	EconomicTrends []analysis.YearlyTotals `json:"economic_trends"`
}

// Build runs the normalize-aggregate-rank pass over a parsed dataset and
// produces the report. Pure apart from the GeneratedAt timestamp.
func Build(ds loader.Dataset, topN int) Report {
	records := make([]domain.ImpactRecord, len(ds.Records))
	unmapped, yearless := 0, 0
	for i, raw := range ds.Records {
		rec := domain.Annotate(raw)
		if !rec.Mapped {
			unmapped++
		}
		if rec.Year == 0 {
			yearless++
		}
		records[i] = rec
	}

	totals := analysis.AggregateByCategory(records)
	topHealth := analysis.TopN(totals, topN, analysis.SortByHealthImpact)
	topEconomic := analysis.TopN(totals, topN, analysis.SortByEconomicImpact)

	return Report{
		GeneratedAt:     clock.Now().UTC(),
		RecordCount:     len(ds.Records),
		TopN:            topN,
		SkippedRows:     ds.SkippedRows,
		UnmappedLabels:  unmapped,
		YearlessRecords: yearless,

		TopHealthImpact:   topHealth,
		TopEconomicImpact: topEconomic,
		HealthTrends:      analysis.AggregateByCategoryAndYear(records, categoriesOf(topHealth)),
		EconomicTrends:    analysis.AggregateByCategoryAndYear(records, categoriesOf(topEconomic)),
	}
}

func categoriesOf(rows []analysis.CategoryTotals) []string {
	categories := make([]string, len(rows))
	for i, row := range rows {
		categories[i] = row.Category
	}
	return categories
}
