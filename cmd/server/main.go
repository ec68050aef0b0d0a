package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Shamanth-8/drones/internal/api"
	"github.com/Shamanth-8/drones/internal/config"
	"github.com/Shamanth-8/drones/internal/jobs"
	"github.com/Shamanth-8/drones/internal/logging"
	"github.com/Shamanth-8/drones/internal/metrics"
	"github.com/Shamanth-8/drones/internal/routes"
)

func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}

	// Initialize structured logging
	if err := logging.Init(cfg.AppEnv); err != nil {
		log.Fatalf("❌ Failed to initialize logger: %v", err)
	}
	defer logging.Close()

	logging.Info("Fleet coordinator starting up",
		"environment", cfg.AppEnv,
		"store", cfg.StoreDriver,
		"sync_provider", cfg.SyncProvider,
		"timestamp", time.Now().Format(time.RFC3339),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metricsReg := metrics.NewMetricsRegistry(prometheus.DefaultRegisterer)

	deps, err := api.InitDependencies(ctx, cfg, metricsReg)
	if err != nil {
		logging.Error("Failed to initialize dependencies", "error", err)
		log.Fatalf("❌ Failed to initialize dependencies: %v", err)
	}
	defer deps.Close()

	scheduler, err := jobs.InitializeJobs(ctx, jobs.Schedules{
		Sync:  cfg.SyncSchedule,
		Sweep: cfg.SweepSchedule,
	}, deps.Jobs.Sync, deps.Jobs.Sweep)
	if err != nil {
		logging.Error("Failed to schedule jobs", "error", err)
		log.Fatalf("❌ Failed to schedule jobs: %v", err)
	}
	defer scheduler.Stop()

	// Prime the active conflicts gauge before the first scheduled sweep.
	deps.Jobs.Sweep.Run(ctx)

	upSince := time.Now()
	router := routes.RegisterRoutes(deps, upSince)

	// Setup metrics endpoint outside of Chi router
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", router)
	logging.Info("Prometheus metrics endpoint registered at /metrics")

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logging.Info("Server starting", "addr", cfg.HTTPAddr, "environment", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("Server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logging.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error("Graceful shutdown failed", "error", err)
	}
}
