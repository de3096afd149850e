package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/angelmondragon/tastybytes-dashboard/api/routes"
	"github.com/angelmondragon/tastybytes-dashboard/internal/dashboard"
	"github.com/angelmondragon/tastybytes-dashboard/internal/dashboard/types"
	"github.com/angelmondragon/tastybytes-dashboard/pkg/config"
	"github.com/angelmondragon/tastybytes-dashboard/pkg/env"
	"github.com/angelmondragon/tastybytes-dashboard/pkg/instance"
	"github.com/angelmondragon/tastybytes-dashboard/pkg/logger"
	"github.com/angelmondragon/tastybytes-dashboard/pkg/metrics"
	"github.com/angelmondragon/tastybytes-dashboard/pkg/warehouse"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "dashboard"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "dashboard",
		Level:       cfg.App.LogLevel,
		WarnStack:   cfg.App.LogWarnStack,
		Console:     cfg.App.IsDev(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	wh, err := warehouse.Open(ctx, cfg, logg)
	if err != nil {
		logg.Error(ctx, "failed to open warehouse", err)
		os.Exit(1)
	}
	defer func() {
		if err := warehouse.CloseAll(wh); err != nil {
			logg.Error(context.Background(), "error closing warehouse", err)
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	dashboardService, err := dashboard.NewService(dashboard.ServiceParams{
		Executor: wh,
		Tables: types.Tables{
			Products:     types.TableRef(cfg.Dashboard.ProductsTable),
			DailyMetrics: types.TableRef(cfg.Dashboard.DailyMetricsTable),
		},
		ParallelReads: cfg.Dashboard.ParallelReads,
		Metrics:       metrics.NewQueryMetrics(registry),
		Logger:        logg,
	})
	if err != nil {
		logg.Error(ctx, "failed to create dashboard service", err)
		os.Exit(1)
	}

	addr := ":" + env.First(cfg.App.Port, "PORT")
	ctx = logg.WithFields(ctx, map[string]any{
		"env":       cfg.App.Env,
		"addr":      addr,
		"instance":  instance.GetID(),
		"warehouse": cfg.Warehouse.Driver,
	})
	logg.Info(ctx, "starting dashboard server")

	server := &http.Server{
		Addr:              addr,
		Handler:           routes.NewRouter(cfg, logg, wh, dashboardService, registry),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "dashboard server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logg.Info(ctx, "shutting down dashboard server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}
}
