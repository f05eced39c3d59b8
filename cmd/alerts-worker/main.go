package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"fintrack/internal/amqp"
	"fintrack/internal/backend"
	"fintrack/internal/cache"
	"fintrack/internal/config"
	"fintrack/internal/core"
	applog "fintrack/internal/log"
	"fintrack/internal/services"
	"fintrack/internal/storage"
	"fintrack/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)
	workerLogger := logger.WithComponent(applog.ComponentWorker)

	workerLogger.Info("Starting alerts-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		workerLogger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	// Data backend
	factory := backend.NewFactory(logger.WithComponent(applog.ComponentBackend).Logger)
	result, err := factory.CreateBackend(backend.Config{
		Type:          backend.Type(cfg.DataBackend),
		BaseURL:       cfg.BackendBaseURL,
		APIToken:      cfg.BackendAPIToken,
		DataDirectory: cfg.DataDirectory,
	})
	if err != nil {
		workerLogger.Error("Failed to initialize data backend", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	if result.Cleanup != nil {
		defer result.Cleanup()
	}

	// Dismissed-alert store, shared with the server via the same SQLite file
	store, err := storage.New(cfg.SQLiteDBPath)
	if err != nil {
		workerLogger.Error("Failed to open alert store", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer store.Close()

	// AMQP publishing is optional; without it alerts are logged only
	var publisher worker.AlertPublisher
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			workerLogger.Error("Failed to initialize AMQP client", "error", err)
			os.Exit(1)
		}
		defer amqpClient.Close()
		publisher = amqpClient
		workerLogger.Info("AMQP publisher initialized", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	} else {
		workerLogger.Info("AMQP disabled - alerts will be logged only")
	}

	snapshots := services.NewSnapshotService(
		result.Backend,
		cache.NewLRUCache[core.Snapshot](2, cfg.CacheTTL),
	)
	alertSvc := services.NewAlertService(snapshots, store)
	alertWorker := worker.NewAlertWorker(alertSvc, publisher, store, cfg.AlertsInterval)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := alertWorker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		workerLogger.Error("Alert worker stopped", "error", err)
		os.Exit(1)
	}
	workerLogger.Info("Alerts-worker stopped gracefully")
}
