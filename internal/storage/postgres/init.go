package postgres

import (
	"context"
	_ "embed"
	"fmt"

	"log/slog"

	"github.com/Sidoine1991/agent-position-sub003/internal/config"
	"github.com/Sidoine1991/agent-position-sub003/pkg/e"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schemaSQL string

type Postgres struct {
	Pool      *pgxpool.Pool
	Reference ReferenceRepository
	Reconcile ReconciliationRepository
}

func NewPostgres(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Postgres, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Postgres.Host,
		cfg.Postgres.Port,
		cfg.Postgres.User,
		cfg.Postgres.Password,
		cfg.Postgres.Database,
		cfg.Postgres.SSLMode,
	)

	logger.Info("Connecting to Postgres",
		slog.String("host", cfg.Postgres.Host),
		slog.Int("port", cfg.Postgres.Port),
		slog.String("db", cfg.Postgres.Database),
	)

	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("Failed to parse pgx config", slog.String("error", err.Error()))
		return nil, e.Wrap("storage.pg.NewPostgres.ParseConfig", err)
	}
	if cfg.Postgres.MaxConns > 0 {
		poolCfg.MaxConns = cfg.Postgres.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		logger.Error("Failed to create pgx pool", slog.String("error", err.Error()))
		return nil, e.Wrap("storage.pg.NewPostgres.NewWithConfig", err)
	}

	if err := pool.Ping(ctx); err != nil {
		logger.Error("Failed to ping Postgres database", slog.String("error", err.Error()))
		pool.Close()
		return nil, e.Wrap("storage.pg.NewPostgres.Ping", err)
	}

	if err := EnsureSchema(ctx, pool); err != nil {
		logger.Error("Failed to apply schema", slog.String("error", err.Error()))
		pool.Close()
		return nil, err
	}
	logger.Info("Connected to Postgres successfully")

	return &Postgres{
		Pool:      pool,
		Reference: NewReferenceRepo(pool, logger),
		Reconcile: NewReconciliationRepo(pool, logger),
	}, nil
}

// EnsureSchema creates missing tables and indexes. It never alters existing ones.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		return e.Wrap("storage.pg.EnsureSchema", err)
	}
	return nil
}
