package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/timlee789/pos-system/internal/dispatch"
	"github.com/timlee789/pos-system/internal/dispatch/joblog"
	jobsqlite "github.com/timlee789/pos-system/internal/dispatch/joblog/sqlite"
	"github.com/timlee789/pos-system/internal/pkg/cache"
	"github.com/timlee789/pos-system/internal/pkg/telemetry"
	"github.com/timlee789/pos-system/internal/print-service/config"
	"github.com/timlee789/pos-system/internal/print-service/infra/adapters/printer"
	"github.com/timlee789/pos-system/internal/print-service/infra/httpx"
)

func main() {
	// Optional .env for the till box; real deployments set the
	// environment directly.
	_ = godotenv.Load()

	telemetry.InitLogger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdown, err := telemetry.SetupTracer(ctx, getEnv("OTEL_SERVICE_NAME", "print-service"))
	if err != nil {
		slog.Error("failed to initialise tracer", "error", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			slog.Error("tracer shutdown error", "error", err)
		}
	}()

	cfg := config.Load()

	// The job log is the operator's only view of printer outages, but a
	// broken disk must not stop printing: fall back to logs-only.
	var jobRepo joblog.Repository
	var jobReader joblog.Reader
	if cfg.JobLogPath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.JobLogPath), 0o755); err != nil {
			slog.Warn("job log directory unavailable, job log disabled", "path", cfg.JobLogPath, "error", err)
		} else if repo, err := jobsqlite.Open(cfg.JobLogPath); err != nil {
			slog.Warn("job log unavailable, continuing without it", "path", cfg.JobLogPath, "error", err)
		} else {
			defer repo.Close()
			jobRepo = repo
			jobReader = repo
		}
	}

	var idem cache.Cache
	if cfg.RedisAddr != "" {
		idem = cache.NewRedisCache(cfg.RedisAddr, "print")
	}

	sender := printer.NewTCPSender(cfg.SendTimeout)
	dispatcher := dispatch.New(sender, dispatch.Printers{
		Kitchen:      cfg.KitchenIP,
		Milkshake:    cfg.MilkshakeIP,
		ReceiptPOS:   cfg.ReceiptPOSIP,
		ReceiptKiosk: cfg.ReceiptKioskIP,
	}, jobRepo)

	handler := httpx.NewHandler(dispatcher, jobReader, idem)
	router := httpx.NewRouter(handler)

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: otelhttp.NewHandler(router, "print-service"),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("http shutdown error", "error", err)
		}
	}()

	slog.Info("print service running",
		"addr", srv.Addr,
		"kitchen", cfg.KitchenIP,
		"milkshake", cfg.MilkshakeIP,
		"receipt_pos", cfg.ReceiptPOSIP,
		"receipt_kiosk", cfg.ReceiptKioskIP,
	)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("http server failed", "error", err)
		os.Exit(1)
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
