package main

import (
	"context"
	"log/slog"
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
	"github.com/boqworks/boqworks/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
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

	pool, err := pgxpool.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect database", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}

	catalogRepo := catalog.NewRepository(pool)
	catalogService := catalog.NewService(catalog.Default(), catalogRepo, redisClient, cfg.CatalogCacheTTL, logger)

	boqRepo := boq.NewRepository(pool)
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

	reminderTask, err := jobs.NewReminderScanTask(time.Time{})
	if err != nil {
		logger.Error("build reminder task", slog.Any("error", err))
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskCatalogPriceRefresh, Handler: jobs.NewPriceRefreshHandler(logger, boqService)},
			{Type: jobs.TaskReminderScan, Handler: jobs.NewReminderScanHandler(logger, boqService)},
		},
		Cron: []jobs.CronRegistration{
			{Spec: "0 6 * * *", Task: reminderTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
