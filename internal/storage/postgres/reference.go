package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Sidoine1991/agent-position-sub003/internal/domain"
	"github.com/Sidoine1991/agent-position-sub003/pkg/e"
)

type ReferenceRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewReferenceRepo(pool *pgxpool.Pool, logger *slog.Logger) *ReferenceRepo {
	return &ReferenceRepo{pool: pool, logger: logger}
}

func (p *ReferenceRepo) Get(ctx context.Context, agentID string) (*domain.ReferenceLocation, error) {
	const op = "postgres.Reference.Get"

	const query = `
		SELECT agent_id, latitude, longitude, tolerance_radius_meters, updated_at
		FROM agent_reference_locations
		WHERE agent_id = $1
	`

	var ref domain.ReferenceLocation
	err := p.pool.QueryRow(ctx, query, agentID).Scan(
		&ref.AgentID,
		&ref.Latitude,
		&ref.Longitude,
		&ref.ToleranceRadiusMeters,
		&ref.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, e.ErrNotFound)
		}
		p.logger.Error("db queryrow scan failed", slog.String("op", op), slog.Any("error", err), slog.String("agent_id", agentID))
		return nil, e.WrapError(ctx, op, err)
	}

	return &ref, nil
}

func (p *ReferenceRepo) Upsert(ctx context.Context, ref *domain.ReferenceLocation) error {
	const op = "postgres.Reference.Upsert"

	if ref == nil || ref.AgentID == "" {
		return fmt.Errorf("%s: %w", op, e.ErrInvalidInput)
	}
	if ref.ToleranceRadiusMeters <= 0 {
		return fmt.Errorf("%s: tolerance must be positive: %w", op, e.ErrInvalidInput)
	}
	if ref.UpdatedAt.IsZero() {
		ref.UpdatedAt = time.Now().UTC()
	}

	const query = `
		INSERT INTO agent_reference_locations (agent_id, latitude, longitude, tolerance_radius_meters, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (agent_id) DO UPDATE
		SET latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			tolerance_radius_meters = EXCLUDED.tolerance_radius_meters,
			updated_at = EXCLUDED.updated_at
	`

	_, err := p.pool.Exec(ctx, query,
		ref.AgentID,
		ref.Latitude,
		ref.Longitude,
		ref.ToleranceRadiusMeters,
		ref.UpdatedAt,
	)
	if err != nil {
		p.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err), slog.String("agent_id", ref.AgentID))
		return e.WrapError(ctx, op, err)
	}

	return nil
}

func (p *ReferenceRepo) Delete(ctx context.Context, agentID string) error {
	const op = "postgres.Reference.Delete"

	cmd, err := p.pool.Exec(ctx, `DELETE FROM agent_reference_locations WHERE agent_id = $1`, agentID)
	if err != nil {
		p.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err), slog.String("agent_id", agentID))
		return e.WrapError(ctx, op, err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, e.ErrNotFound)
	}

	return nil
}
