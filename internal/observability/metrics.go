package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus gauges, counters, and histograms for the
// impact report service.
type Metrics struct {
	// Dataset gauges, set after each successful refresh.
	RecordsLoaded   prometheus.Gauge
	SkippedRows     prometheus.Gauge
	UnmappedLabels  prometheus.Gauge
	YearlessRecords prometheus.Gauge
	ServiceReady    prometheus.Gauge

	RefreshDuration prometheus.Histogram
	RefreshErrors   prometheus.Counter

	ReportsPublished prometheus.Counter
	PublishErrors    prometheus.Counter

	ReportRequests *prometheus.CounterVec // label: table={impact,health,economic}
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		RecordsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "storm_impact",
			Name:      "records_loaded",
			Help:      "Raw records parsed from the dataset in the last refresh.",
		}),
		SkippedRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "storm_impact",
			Name:      "skipped_rows",
			Help:      "Source rows dropped during parsing in the last refresh.",
		}),
		UnmappedLabels: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "storm_impact",
			Name:      "unmapped_labels",
			Help:      "Records whose event type matched no normalization rule.",
		}),
		YearlessRecords: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "storm_impact",
			Name:      "yearless_records",
			Help:      "Records excluded from trend tables for lack of a parseable year.",
		}),
		ServiceReady: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "storm_impact",
			Name:      "service_ready",
			Help:      "1 once a report has been generated, 0 before.",
		}),
		RefreshDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "storm_impact",
			Name:      "refresh_duration_seconds",
			Help:      "Duration of a complete load-normalize-aggregate refresh.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}),
		RefreshErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "storm_impact",
			Name:      "refresh_errors_total",
			Help:      "Total failed report refreshes.",
		}),
		ReportsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "storm_impact",
			Name:      "reports_published_total",
			Help:      "Total reports written to the sink topic.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "storm_impact",
			Name:      "publish_errors_total",
			Help:      "Total failed report publishes.",
		}),
		ReportRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "storm_impact",
			Name:      "report_requests_total",
			Help:      "Report HTTP requests by table.",
		}, []string{"table"}),
	}

	prometheus.MustRegister(
		m.RecordsLoaded,
		m.SkippedRows,
		m.UnmappedLabels,
		m.YearlessRecords,
		m.ServiceReady,
		m.RefreshDuration,
		m.RefreshErrors,
		m.ReportsPublished,
		m.PublishErrors,
		m.ReportRequests,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		RecordsLoaded:    prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "storm_impact", Name: "records_loaded"}),
		SkippedRows:      prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "storm_impact", Name: "skipped_rows"}),
		UnmappedLabels:   prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "storm_impact", Name: "unmapped_labels"}),
		YearlessRecords:  prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "storm_impact", Name: "yearless_records"}),
		ServiceReady:     prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "storm_impact", Name: "service_ready"}),
		RefreshDuration:  prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "storm_impact", Name: "refresh_duration_seconds"}),
		RefreshErrors:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "storm_impact", Name: "refresh_errors_total"}),
		ReportsPublished: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "storm_impact", Name: "reports_published_total"}),
		PublishErrors:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "storm_impact", Name: "publish_errors_total"}),
		ReportRequests:   prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "storm_impact", Name: "report_requests_total"}, []string{"table"}),
	}
}
