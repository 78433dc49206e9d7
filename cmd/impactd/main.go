package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"

	httpadapter "github.com/couchcryptid/storm-impact-report/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/storm-impact-report/internal/adapter/kafka"
	"github.com/couchcryptid/storm-impact-report/internal/config"
	"github.com/couchcryptid/storm-impact-report/internal/loader"
	"github.com/couchcryptid/storm-impact-report/internal/observability"
	"github.com/couchcryptid/storm-impact-report/internal/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	// Local file takes precedence over the remote dataset URL.
	var recordLoader report.RecordLoader
	if cfg.DatasetPath != "" {
		recordLoader = loader.NewFileLoader(cfg.DatasetPath, logger)
		logger.Info("using local dataset", "path", cfg.DatasetPath)
	} else {
		recordLoader = loader.NewHTTPLoader(cfg.DatasetURL, cfg.DownloadTimeout, logger)
		logger.Info("using remote dataset", "url", cfg.DatasetURL)
	}

	// Kafka publishing is feature-flagged via KAFKA_ENABLED.
	var publisher report.Publisher
	var writer *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		publisher = writer
		logger.Info("kafka publishing enabled", "topic", cfg.KafkaSinkTopic)
	} else {
		logger.Info("kafka publishing disabled")
	}

	svc := report.NewService(recordLoader, publisher, logger, metrics, cfg.TopN)
	srv := httpadapter.NewServer(cfg.HTTPAddr, svc, metrics, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var scheduler *cron.Cron
	if cfg.RefreshCron != "" {
		scheduler = cron.New()
		if _, err := scheduler.AddFunc(cfg.RefreshCron, func() {
			if err := svc.Refresh(ctx); err != nil {
				logger.Error("scheduled refresh failed", "error", err)
			}
		}); err != nil {
			logger.Error("invalid REFRESH_CRON", "error", err)
			os.Exit(1)
		}
		scheduler.Start()
		logger.Info("refresh schedule active", "cron", cfg.RefreshCron)
	}

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Produce the first report; the service stays unready until it lands.
	go func() {
		if err := svc.RunInitialRefresh(ctx); err != nil {
			logger.Error("initial refresh aborted", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if scheduler != nil {
		<-scheduler.Stop().Done()
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
