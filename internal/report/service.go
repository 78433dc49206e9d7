package report

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/storm-impact-report/internal/loader"
	"github.com/couchcryptid/storm-impact-report/internal/observability"
)

// RecordLoader supplies the parsed dataset. Implemented by the loader
// package's file and HTTP loaders.
type RecordLoader interface {
	LoadRecords(ctx context.Context) (loader.Dataset, error)
}

// Publisher delivers a finished report to an external sink.
type Publisher interface {
	PublishReport(ctx context.Context, r Report) error
}

// Service owns the current report and refreshes it on demand. The report is
// swapped atomically, so readers never observe a partial refresh.
type Service struct {
	loader    RecordLoader
	publisher Publisher // nil disables publishing
	logger    *slog.Logger
	metrics   *observability.Metrics
	topN      int
	current   atomic.Pointer[Report]
}

// NewService creates a Service. Pass a nil publisher to disable publishing.
func NewService(l RecordLoader, p Publisher, logger *slog.Logger, metrics *observability.Metrics, topN int) *Service {
	return &Service{
		loader:    l,
		publisher: p,
		logger:    logger,
		metrics:   metrics,
		topN:      topN,
	}
}

// Current returns the most recent report, or false when no refresh has
// completed yet.
func (s *Service) Current() (Report, bool) {
	r := s.current.Load()
	if r == nil {
		return Report{}, false
	}
	return *r, true
}

// CheckReadiness returns nil once a report has been produced, or an error
// describing why the service is not yet ready.
func (s *Service) CheckReadiness(_ context.Context) error {
	if s.current.Load() == nil {
		return errors.New("no report has been generated yet")
	}
	return nil
}

// Refresh loads the dataset, rebuilds the report, swaps it in, and publishes
// it when a publisher is configured. A publish failure is logged and counted
// but does not fail the refresh; the new report is already being served.
func (s *Service) Refresh(ctx context.Context) error {
	start := time.Now()
	s.logger.Info("report refresh started", "top_n", s.topN)

	ds, err := s.loader.LoadRecords(ctx)
	if err != nil {
		s.metrics.RefreshErrors.Inc()
		return err
	}

	r := Build(ds, s.topN)
	s.current.Store(&r)

	s.metrics.RefreshDuration.Observe(time.Since(start).Seconds())
	s.metrics.RecordsLoaded.Set(float64(r.RecordCount))
	s.metrics.SkippedRows.Set(float64(r.SkippedRows))
	s.metrics.UnmappedLabels.Set(float64(r.UnmappedLabels))
	s.metrics.YearlessRecords.Set(float64(r.YearlessRecords))
	s.metrics.ServiceReady.Set(1)

	s.logger.Info("report refreshed",
		"records", r.RecordCount,
		"unmapped_labels", r.UnmappedLabels,
		"yearless_records", r.YearlessRecords,
		"duration", time.Since(start),
	)

	if s.publisher != nil {
		if err := s.publisher.PublishReport(ctx, r); err != nil {
			s.metrics.PublishErrors.Inc()
			s.logger.Error("report publish failed", "error", err)
		} else {
			s.metrics.ReportsPublished.Inc()
		}
	}
	return nil
}

// RunInitialRefresh retries Refresh with exponential backoff until it
// succeeds or the context is cancelled. Start at 200ms, double each retry,
// cap at 5s; keeps retry storms short while avoiding tight loops when the
// dataset source is down.
func (s *Service) RunInitialRefresh(ctx context.Context) error {
	backoff := 200 * time.Millisecond
	maxBackoff := 5 * time.Second

	for {
		err := s.Refresh(ctx)
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		s.logger.Error("initial refresh failed, retrying", "error", err, "backoff", backoff)
		if !sleepWithContext(ctx, backoff) {
			return ctx.Err()
		}
		backoff = nextBackoff(backoff, maxBackoff)
	}
}

func nextBackoff(current, maxBackoff time.Duration) time.Duration {
	next := current * 2
	if next > maxBackoff {
		return maxBackoff
	}
	return next
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
