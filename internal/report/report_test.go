package report_test

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/storm-impact-report/internal/domain"
	"github.com/couchcryptid/storm-impact-report/internal/loader"
	"github.com/couchcryptid/storm-impact-report/internal/report"
)

func sampleDataset() loader.Dataset {
	date := func(year int) time.Time {
		return time.Date(year, 5, 3, 0, 0, 0, 0, time.UTC)
	}
	return loader.Dataset{
		Records: []domain.RawRecord{
			{EventType: "TORNADO", BeginDate: date(1995), Fatalities: 30, Injuries: 400},
			{EventType: "TORNDAO", BeginDate: date(1996), Injuries: 50},
			{EventType: "EXCESSIVE HEAT", BeginDate: date(1995), Fatalities: 80},
			{EventType: "FLASH FLOOD", BeginDate: date(1995), Fatalities: 10, PropertyDamage: 3, PropertyMagnitude: "B"},
			{EventType: "TSTM WIND", BeginDate: date(1996), Injuries: 5, PropertyDamage: 500, PropertyMagnitude: "M"},
			{EventType: "APACHE COUNTY", Injuries: 1}, // unmapped, no year
		},
		SkippedRows: 2,
	}
}

func TestBuild(t *testing.T) {
	frozen := time.Date(2026, 3, 1, 6, 0, 0, 0, time.UTC)
	report.SetClock(clockwork.NewFakeClockAt(frozen))
	defer report.SetClock(nil)

	r := report.Build(sampleDataset(), 2)

	assert.Equal(t, frozen, r.GeneratedAt)
	assert.Equal(t, 6, r.RecordCount)
	assert.Equal(t, 2, r.TopN)
	assert.Equal(t, 2, r.SkippedRows)
	assert.Equal(t, 1, r.UnmappedLabels)
	assert.Equal(t, 1, r.YearlessRecords)

	require.Len(t, r.TopHealthImpact, 2)
	assert.Equal(t, "TORNADO", r.TopHealthImpact[0].Category)
	assert.Equal(t, 480, r.TopHealthImpact[0].HealthImpact)
	assert.Equal(t, "HEAT", r.TopHealthImpact[1].Category)

	require.Len(t, r.TopEconomicImpact, 2)
	assert.Equal(t, "FLOOD", r.TopEconomicImpact[0].Category)
	assert.InDelta(t, 3.0, r.TopEconomicImpact[0].EconomicImpactBillions, 1e-9)
	assert.Equal(t, "STORM", r.TopEconomicImpact[1].Category)
	assert.InDelta(t, 0.5, r.TopEconomicImpact[1].EconomicImpactBillions, 1e-9)

	// Trends carry only the ranked categories, year-keyed.
	for _, row := range r.HealthTrends {
		assert.Contains(t, []string{"TORNADO", "HEAT"}, row.Category)
		assert.NotZero(t, row.Year)
	}
	for _, row := range r.EconomicTrends {
		assert.Contains(t, []string{"FLOOD", "STORM"}, row.Category)
	}
}

func TestBuild_EmptyDataset(t *testing.T) {
	r := report.Build(loader.Dataset{}, 5)
	assert.Zero(t, r.RecordCount)
	assert.Empty(t, r.TopHealthImpact)
	assert.Empty(t, r.HealthTrends)
}
