package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hirelink/points/internal/config"
	"github.com/hirelink/points/internal/database"
	"github.com/hirelink/points/internal/database/postgres"
	"github.com/hirelink/points/internal/handler"
	"github.com/hirelink/points/internal/pricing"
	"github.com/hirelink/points/internal/repository"
	"github.com/hirelink/points/internal/scheduler"
	"github.com/hirelink/points/internal/server"
	"github.com/hirelink/points/internal/wallet"
	"github.com/hirelink/points/internal/worker"
)

const (
	dbMaxConnections = 25
	dbMaxIdleTime    = 5 * time.Minute
	dbMaxLifetime    = 30 * time.Minute

	sweepWorkers   = 1
	sweepQueueSize = 4

	shutdownTimeout = 10 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	initLogger(cfg)

	if err := config.ValidateEnv(); err != nil {
		slog.Error("Environment validation failed", "error", err)
		os.Exit(1)
	}

	handler.InitValidator()

	table, err := pricing.LoadTable(cfg.PricingConfig)
	if err != nil {
		slog.Error("Failed to load pricing table", "error", err, "path", cfg.PricingConfig)
		os.Exit(1)
	}
	engine := pricing.NewEngine(table)

	var (
		repo   repository.Wallet
		dbPool database.Pool
	)
	switch cfg.Storage {
	case config.StorageMemory:
		slog.Warn("Running with in-memory storage, all data is lost on shutdown")
		repo = wallet.NewFakeRepository()
	default:
		pool, err := database.NewPool(cfg.GetDBConnString(), dbMaxConnections, dbMaxIdleTime, dbMaxLifetime)
		if err != nil {
			slog.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		repo = postgres.NewWalletRepository(pool)
		dbPool = pool
	}

	catalog := wallet.DefaultCatalog()
	walletService := wallet.NewService(repo, catalog)

	// Background settlement sweep for abandoned pending purchases
	pool := worker.NewPool(sweepWorkers, sweepQueueSize)
	pool.Start()
	defer pool.Stop()

	sched := scheduler.New(pool)
	sched.Schedule(worker.DefaultSettlementInterval, worker.NewSettlementWorker(walletService, worker.DefaultPendingMaxAge))
	defer sched.Stop()

	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, dbPool, walletService, engine, catalog)

	// Run the server in the background so we can watch for shutdown signals
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	case sig := <-stop:
		slog.Info("Shutdown signal received", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Stop(ctx); err != nil {
			slog.Error("Server forced to shutdown", "error", err)
		}
	}

	slog.Info("Server stopped")
}
