package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/boqworks/boqworks/internal/app"
	"github.com/boqworks/boqworks/internal/boq"
	"github.com/boqworks/boqworks/internal/catalog"
	"github.com/boqworks/boqworks/internal/export"
	"github.com/boqworks/boqworks/internal/observability"
	"github.com/boqworks/boqworks/internal/wizard"
	"github.com/boqworks/boqworks/jobs"
	"github.com/boqworks/boqworks/report"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := pgxpool.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	metrics := observability.NewMetrics()

	catalogRepo := catalog.NewRepository(dbpool)
	catalogService := catalog.NewService(catalog.Default(), catalogRepo, redisClient, cfg.CatalogCacheTTL, logger)

	jobClient, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	if err != nil {
		logger.Error("init job client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := jobClient.Close(); err != nil {
			logger.Warn("job client close", slog.Any("error", err))
		}
	}()

	catalogHandler := catalog.NewHandler(logger, catalogService, jobClient)

	boqRepo := boq.NewRepository(dbpool)
	boqService := boq.NewService(boq.ServiceConfig{
		Repo:           boqRepo,
		Catalog:        catalogService,
		Signer:         boq.NewShareSigner(cfg.ShareTokenSecret),
		Locker:         redisClient,
		LockTTL:        cfg.AutosaveLockTTL,
		ExchangeRate:   cfg.ExchangeRate,
		BoundaryLength: cfg.BoundaryWallLength,
		Logger:         logger,
	})
	boqHandler := boq.NewHandler(logger, boqService, metrics)

	wizardHandler := wizard.NewHandler()

	reportClient := report.NewClient(cfg.GotenbergURL)
	exportHandler := export.NewHandler(logger, boqService, reportClient, metrics)

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobHandler := jobs.NewHandler(inspector, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:         logger,
		Config:         cfg,
		CatalogHandler: catalogHandler,
		WizardHandler:  wizardHandler,
		BOQHandler:     boqHandler,
		ExportHandler:  exportHandler,
		JobHandler:     jobHandler,
		Pool:           dbpool,
		Metrics:        metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
