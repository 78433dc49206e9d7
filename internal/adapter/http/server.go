package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/storm-impact-report/internal/observability"
	"github.com/couchcryptid/storm-impact-report/internal/report"
)

// ReportProvider hands out the current report and answers readiness probes.
// Implemented by report.Service.
type ReportProvider interface {
	CheckReadiness(ctx context.Context) error
	Current() (report.Report, bool)
}

// Server exposes health, readiness, metrics, and report HTTP endpoints.
type Server struct {
	httpServer *http.Server
	provider   ReportProvider
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics, and
// /reports/* routes.
func NewServer(addr string, provider ReportProvider, metrics *observability.Metrics, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		provider: provider,
		metrics:  metrics,
		logger:   logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /reports/impact", s.handleFullReport)
	mux.HandleFunc("GET /reports/health", s.handleHealthTable)
	mux.HandleFunc("GET /reports/economic", s.handleEconomicTable)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.provider.CheckReadiness(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) handleFullReport(w http.ResponseWriter, _ *http.Request) {
	s.metrics.ReportRequests.WithLabelValues("impact").Inc()

	r, ok := s.provider.Current()
	if !ok {
		writeNoReport(w)
		return
	}
	writeJSON(w, http.StatusOK, r)
}

// tableResponse is one ranked table plus its trend rows.
type tableResponse struct {
	GeneratedAt time.Time `json:"generated_at"`
	Rows        any       `json:"rows"`
	Trends      any       `json:"trends"`
}

func (s *Server) handleHealthTable(w http.ResponseWriter, _ *http.Request) {
	s.metrics.ReportRequests.WithLabelValues("health").Inc()

	r, ok := s.provider.Current()
	if !ok {
		writeNoReport(w)
		return
	}
	writeJSON(w, http.StatusOK, tableResponse{
		GeneratedAt: r.GeneratedAt,
		Rows:        r.TopHealthImpact,
		Trends:      r.HealthTrends,
	})
}

func (s *Server) handleEconomicTable(w http.ResponseWriter, _ *http.Request) {
	s.metrics.ReportRequests.WithLabelValues("economic").Inc()

	r, ok := s.provider.Current()
	if !ok {
		writeNoReport(w)
		return
	}
	writeJSON(w, http.StatusOK, tableResponse{
		GeneratedAt: r.GeneratedAt,
		Rows:        r.TopEconomicImpact,
		Trends:      r.EconomicTrends,
	})
}

func writeNoReport(w http.ResponseWriter) {
	writeJSON(w, http.StatusServiceUnavailable, map[string]string{
		"error": "no report has been generated yet",
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
