// Command labeler runs the flood-labeling ETL service: it consumes raw BMD
// monthly observation rows from the source topic, assigns region-specific
// flood labels, and publishes labeled events to the sink topic.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/flood-signal-etl/internal/adapter/httpadapter"
	kafkaadapter "github.com/couchcryptid/flood-signal-etl/internal/adapter/kafka"
	"github.com/couchcryptid/flood-signal-etl/internal/config"
	"github.com/couchcryptid/flood-signal-etl/internal/observability"
	"github.com/couchcryptid/flood-signal-etl/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	policy, err := cfg.LabelPolicy()
	if err != nil {
		logger.Error("invalid label policy", "error", err)
		os.Exit(1)
	}
	stations, err := cfg.StationMap()
	if err != nil {
		logger.Error("invalid station map", "error", err)
		os.Exit(1)
	}
	logger.Info("label policy loaded",
		"coastal_threshold_mm", policy.CoastalThresholdMM,
		"deltaic_threshold_mm", policy.DeltaicThresholdMM,
	)

	reader := kafkaadapter.NewReader(cfg, logger)
	writer := kafkaadapter.NewWriter(cfg, logger)
	transformer := pipeline.NewTransformer(stations, policy, logger, metrics)

	p := pipeline.New(reader, transformer, writer, logger, metrics, cfg.BatchSize)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start labeling pipeline.
	go func() {
		if err := p.Run(ctx); err != nil {
			logger.Error("pipeline error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := reader.Close(); err != nil {
		logger.Error("kafka reader close error", "error", err)
	}
	if err := writer.Close(); err != nil {
		logger.Error("kafka writer close error", "error", err)
	}

	logger.Info("shutdown complete")
}
