package components

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/Sidoine1991/agent-position-sub003/internal/api"
	"github.com/Sidoine1991/agent-position-sub003/internal/api/handlers/http/system"
	"github.com/Sidoine1991/agent-position-sub003/internal/config"
	"github.com/Sidoine1991/agent-position-sub003/internal/geofence"
	"github.com/Sidoine1991/agent-position-sub003/internal/metrics"
	"github.com/Sidoine1991/agent-position-sub003/internal/redis"
	"github.com/Sidoine1991/agent-position-sub003/internal/service"
	"github.com/Sidoine1991/agent-position-sub003/internal/storage/postgres"
	"github.com/Sidoine1991/agent-position-sub003/internal/workers"
	"github.com/Sidoine1991/agent-position-sub003/pkg/logger"
)

const publisherWorkers = 2

type Components struct {
	logger     *slog.Logger
	HttpServer *api.Server
	Postgres   *postgres.Postgres
	Redis      *redis.Redis
	// Publisher is nil when webhooks are disabled.
	Publisher *workers.RecordPublisher
}

func InitComponents(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Components, error) {
	metrics.Register()

	logger.Info("Initializing Postgres")
	storage, err := postgres.NewPostgres(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to init postgres",
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("failed to init postgres: %w", err)
	}

	logger.Info("Initializing Redis")
	redisClient, err := redis.NewRedis(ctx, cfg, logger)
	if err != nil {
		storage.Pool.Close()
		return nil, fmt.Errorf("failed to init redis: %w", err)
	}

	refCache := redis.NewReferenceCache(redisClient, cfg.Sync.ReferenceCacheTTL)
	provider := service.NewReferenceProvider(storage.References(), refCache, logger)
	references := service.NewReferenceAdmin(storage.References(), refCache, logger)

	var (
		recordQueue service.RecordQueue
		publisher   *workers.RecordPublisher
	)
	if !cfg.Webhook.Disabled && cfg.Webhook.URL != "" {
		q := redis.NewRecordQueue(redisClient.Client, cfg.Webhook.QueueKey)
		recordQueue = q
		publisher = workers.NewRecordPublisher(logger, cfg.Webhook, q, publisherWorkers)
	}

	reconciler := service.NewReconciler(storage.Reconciliation(), provider, recordQueue, service.ReconcileOptions{
		Policy:             geofence.Policy{AllowMissingReference: cfg.Geofence.AllowMissingReference},
		MaxClockSkewFuture: cfg.Sync.MaxClockSkewFuture,
		MaxEventAge:        cfg.Sync.MaxEventAge,
	}, logger)

	srv := service.NewService(reconciler, references, provider)

	health := system.NewHandler(logger,
		map[string]system.Pinger{"postgres": storage.Pool},
		map[string]system.Pinger{"redis": redisClient},
	)
	httpServer := api.NewServer(cfg, logger, srv, health)
	logger.Info("Initialized server")

	return &Components{
		logger:     logger,
		HttpServer: httpServer,
		Postgres:   storage,
		Redis:      redisClient,
		Publisher:  publisher,
	}, nil
}

func SetupLogger(env string) *slog.Logger {
	switch env {
	case "local":
		return logger.SetupPrettySlog()
	case "dev":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	default:
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	}
}

func (c *Components) ShutdownAll() {
	start := time.Now()
	c.logger.Info("Shutting down components")

	c.Postgres.Pool.Close()
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.logger.Error("Redis close failed", slog.String("err", err.Error()))
		}
	}

	c.logger.Info("All components stopped",
		slog.Duration("latency", time.Since(start)))
}
