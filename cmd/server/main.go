package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	agecheckhandler "ageutil/internal/agecheck/handler"
	agecheckmetrics "ageutil/internal/agecheck/metrics"
	agecheckservice "ageutil/internal/agecheck/service"
	"ageutil/internal/bracket"
	"ageutil/internal/platform/config"
	"ageutil/internal/platform/health"
	"ageutil/internal/platform/logger"
	"ageutil/internal/platform/metrics"
	"ageutil/internal/platform/tracer"
	httptransport "ageutil/internal/transport/http"
	request "ageutil/pkg/platform/middleware/request"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal service packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel)

	if err := run(cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Server, log *slog.Logger) error {
	log.Info("initializing ageutil",
		"addr", cfg.Addr,
		"environment", cfg.Environment,
		"brackets_file", cfg.BracketsFile,
	)

	catalog, err := loadCatalog(cfg.BracketsFile)
	if err != nil {
		return err
	}
	log.Info("bracket catalog loaded", "brackets", catalog.Names())

	appMetrics := metrics.New()
	appMetrics.SetBuildInfo(health.Version, cfg.Environment)
	appMetrics.SetBracketsLoaded(catalog.Len())

	svc, err := agecheckservice.New(catalog,
		agecheckservice.WithLogger(log),
		agecheckservice.WithMetrics(agecheckmetrics.New()),
		agecheckservice.WithTracer(tracer.NewOTel()),
		agecheckservice.WithBatchLimit(cfg.BatchLimit),
		agecheckservice.WithMaxBatchSize(cfg.MaxBatchSize),
		agecheckservice.WithTimeout(cfg.EvaluateTimeout),
	)
	if err != nil {
		return fmt.Errorf("init age check service: %w", err)
	}

	healthHandler := health.New(cfg.Environment)
	healthHandler.RegisterCheck("brackets", func() error {
		if catalog.Len() == 0 {
			return errors.New("bracket catalog is empty")
		}
		return nil
	})

	router := httptransport.NewRouter(httptransport.Dependencies{
		Logger:   log,
		AgeCheck: agecheckhandler.New(svc, log),
		Health:   healthHandler,
		Latency:  request.NewMetrics(),
		Metrics:  promhttp.Handler(),
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      cfg.EvaluateTimeout + 10*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		log.Info("starting http server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down server gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}

	log.Info("server stopped")
	return nil
}

// loadCatalog reads the bracket file when one is configured and falls back to
// the built-in brackets otherwise.
func loadCatalog(path string) (*bracket.Catalog, error) {
	if path == "" {
		return bracket.Defaults(), nil
	}
	catalog, err := bracket.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load bracket catalog: %w", err)
	}
	return catalog, nil
}
