package report_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/storm-impact-report/internal/loader"
	"github.com/couchcryptid/storm-impact-report/internal/observability"
	"github.com/couchcryptid/storm-impact-report/internal/report"
)

// --- mocks ---

type mockLoader struct {
	dataset loader.Dataset
	errs    []error // one per call, nil entries succeed; exhausted = success
	calls   int
}

func (m *mockLoader) LoadRecords(_ context.Context) (loader.Dataset, error) {
	call := m.calls
	m.calls++
	if call < len(m.errs) && m.errs[call] != nil {
		return loader.Dataset{}, m.errs[call]
	}
	return m.dataset, nil
}

type mockPublisher struct {
	published []report.Report
	err       error
}

func (m *mockPublisher) PublishReport(_ context.Context, r report.Report) error {
	if m.err != nil {
		return m.err
	}
	m.published = append(m.published, r)
	return nil
}

func newTestMetrics() *observability.Metrics {
	// Use unregistered metrics to avoid "already registered" panics in tests.
	return observability.NewMetricsForTesting()
}

// --- tests ---

func TestService_Refresh(t *testing.T) {
	t.Run("produces and publishes a report", func(t *testing.T) {
		ldr := &mockLoader{dataset: sampleDataset()}
		pub := &mockPublisher{}
		svc := report.NewService(ldr, pub, slog.Default(), newTestMetrics(), 3)

		require.Error(t, svc.CheckReadiness(context.Background()))
		_, ok := svc.Current()
		assert.False(t, ok)

		require.NoError(t, svc.Refresh(context.Background()))

		require.NoError(t, svc.CheckReadiness(context.Background()))
		r, ok := svc.Current()
		require.True(t, ok)
		assert.Equal(t, 6, r.RecordCount)

		require.Len(t, pub.published, 1)
		assert.Equal(t, r.RecordCount, pub.published[0].RecordCount)
	})

	t.Run("load failure leaves previous report in place", func(t *testing.T) {
		ldr := &mockLoader{dataset: sampleDataset()}
		svc := report.NewService(ldr, nil, slog.Default(), newTestMetrics(), 3)

		require.NoError(t, svc.Refresh(context.Background()))
		first, _ := svc.Current()

		ldr.errs = []error{nil, errors.New("source down")}
		require.Error(t, svc.Refresh(context.Background()))

		got, ok := svc.Current()
		require.True(t, ok)
		assert.Equal(t, first.GeneratedAt, got.GeneratedAt)
	})

	t.Run("publish failure does not fail the refresh", func(t *testing.T) {
		ldr := &mockLoader{dataset: sampleDataset()}
		pub := &mockPublisher{err: errors.New("broker down")}
		svc := report.NewService(ldr, pub, slog.Default(), newTestMetrics(), 3)

		require.NoError(t, svc.Refresh(context.Background()))
		_, ok := svc.Current()
		assert.True(t, ok)
	})

	t.Run("nil publisher is fine", func(t *testing.T) {
		ldr := &mockLoader{dataset: sampleDataset()}
		svc := report.NewService(ldr, nil, slog.Default(), newTestMetrics(), 3)
		require.NoError(t, svc.Refresh(context.Background()))
	})
}

func TestService_RunInitialRefresh(t *testing.T) {
	t.Run("retries until success", func(t *testing.T) {
		ldr := &mockLoader{
			dataset: sampleDataset(),
			errs:    []error{errors.New("transient"), errors.New("transient")},
		}
		svc := report.NewService(ldr, nil, slog.Default(), newTestMetrics(), 3)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		require.NoError(t, svc.RunInitialRefresh(ctx))
		assert.Equal(t, 3, ldr.calls)
		require.NoError(t, svc.CheckReadiness(ctx))
	})

	t.Run("stops on context cancellation", func(t *testing.T) {
		ldr := &mockLoader{errs: make([]error, 100)}
		for i := range ldr.errs {
			ldr.errs[i] = errors.New("down")
		}
		svc := report.NewService(ldr, nil, slog.Default(), newTestMetrics(), 3)

		ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
		defer cancel()

		err := svc.RunInitialRefresh(ctx)
		require.Error(t, err)
	})
}
