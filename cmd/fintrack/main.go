package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"fintrack/internal/backend"
	"fintrack/internal/cache"
	"fintrack/internal/config"
	"fintrack/internal/core"
	apphttp "fintrack/internal/http"
	applog "fintrack/internal/log"
	gsheet "fintrack/internal/sheets/google"
	"fintrack/internal/services"
	"fintrack/internal/storage"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)
	appLogger := logger.WithComponent(applog.ComponentApp)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		appLogger.Error("Configuration validation failed", "error", err)
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
		appLogger.Error("Failed to initialize data backend", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	if result.Cleanup != nil {
		defer result.Cleanup()
	}

	// Dismissed-alert store
	store, err := storage.New(cfg.SQLiteDBPath)
	if err != nil {
		appLogger.Error("Failed to open alert store", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer store.Close()

	// Graceful shutdown handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Snapshot cache with periodic expiry sweeps
	snapshotCache := cache.NewLRUCache[core.Snapshot](4, cfg.CacheTTL)
	janitor := cache.NewJanitor()
	janitor.Register(snapshotCache)
	go janitor.Run(ctx, 10*time.Minute)

	snapshots := services.NewSnapshotService(result.Backend, snapshotCache)
	analyticsSvc := services.NewAnalyticsService(snapshots)
	alertSvc := services.NewAlertService(snapshots, store)

	// Google Sheets export is optional
	var sheetsSvc *services.SheetsExportService
	if cfg.GoogleSpreadsheetID != "" {
		client, err := gsheet.NewFromEnv(ctx)
		if err != nil {
			appLogger.Error("Failed to initialize Google Sheets client", "error", err)
			os.Exit(1)
		}
		sheetsSvc = services.NewSheetsExportService(snapshots, client)
		appLogger.Info("Google Sheets export enabled", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	} else {
		appLogger.Info("Google Sheets export disabled - no GOOGLE_SPREADSHEET_ID provided")
	}

	srv := apphttp.NewServer(":"+cfg.Port, analyticsSvc, alertSvc, sheetsSvc)
	srv.Handler = applog.Middleware(logger.WithComponent(applog.ComponentHTTP))(srv.Handler)

	// Configure server timeouts and limits
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 30 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		appLogger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			appLogger.Error("Server shutdown error", "error", err)
		}
		cancel()
	}()

	appLogger.Info("Starting fintrack server", "port", cfg.Port, "backend", cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		appLogger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	appLogger.Info("Server stopped gracefully")
}
