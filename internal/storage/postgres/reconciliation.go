package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Sidoine1991/agent-position-sub003/internal/domain"
	"github.com/Sidoine1991/agent-position-sub003/pkg/e"
)

const (
	constraintOneOpenMission = "missions_one_open_per_agent"
	constraintMissionPKey    = "missions_pkey"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type ReconciliationRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewReconciliationRepo(pool *pgxpool.Pool, logger *slog.Logger) *ReconciliationRepo {
	return &ReconciliationRepo{pool: pool, logger: logger}
}

func (p *ReconciliationRepo) FindRecord(ctx context.Context, clientEventID uuid.UUID) (*domain.ValidationRecord, error) {
	return findRecord(ctx, p.pool, p.logger, clientEventID)
}

func (p *ReconciliationRepo) WithinTx(ctx context.Context, fn func(tx ReconcileTx) error) error {
	const op = "postgres.Reconciliation.WithinTx"

	tx, err := p.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		p.logger.Error("begin tx failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(&reconcileTx{tx: tx, logger: p.logger}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		p.logger.Error("commit failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}
	return nil
}

type reconcileTx struct {
	tx     pgx.Tx
	logger *slog.Logger
}

func (t *reconcileTx) FindRecord(ctx context.Context, clientEventID uuid.UUID) (*domain.ValidationRecord, error) {
	return findRecord(ctx, t.tx, t.logger, clientEventID)
}

func (t *reconcileTx) InsertRecord(ctx context.Context, rec *domain.ValidationRecord) error {
	const op = "postgres.Reconciliation.InsertRecord"

	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}

	const query = `
		INSERT INTO validation_records (
			id, client_event_id, agent_id, mission_id, kind, valid, reason,
			distance_meters, tolerance_meters, reference_latitude, reference_longitude,
			latitude, longitude, captured_at, server_received_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := t.tx.Exec(ctx, query,
		rec.ID,
		rec.CheckinEventID,
		rec.AgentID,
		rec.MissionID,
		string(rec.Kind),
		rec.Valid,
		string(rec.Reason),
		rec.DistanceMeters,
		rec.ToleranceMeters,
		rec.ReferenceLatitude,
		rec.ReferenceLongitude,
		rec.Latitude,
		rec.Longitude,
		rec.CapturedAt,
		rec.ServerReceivedAt,
	)
	if err != nil {
		t.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err),
			slog.String("client_event_id", rec.CheckinEventID.String()))
		return e.WrapError(ctx, op, err)
	}
	return nil
}

func (t *reconcileTx) GetMission(ctx context.Context, id uuid.UUID) (*domain.Mission, error) {
	const op = "postgres.Reconciliation.GetMission"

	m, err := scanMission(t.tx.QueryRow(ctx, missionSelect+` WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, e.ErrNotFound)
		}
		return nil, e.WrapError(ctx, op, err)
	}
	return m, nil
}

func (t *reconcileTx) OpenMission(ctx context.Context, agentID string) (*domain.Mission, error) {
	const op = "postgres.Reconciliation.OpenMission"

	m, err := scanMission(t.tx.QueryRow(ctx, missionSelect+` WHERE agent_id = $1 AND status = 'open' FOR UPDATE`, agentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, e.ErrNotFound)
		}
		return nil, e.WrapError(ctx, op, err)
	}
	return m, nil
}

func (t *reconcileTx) MissionAt(ctx context.Context, agentID string, at time.Time) (*domain.Mission, error) {
	const op = "postgres.Reconciliation.MissionAt"

	const where = `
		WHERE agent_id = $1
		  AND opened_at <= $2
		  AND (closed_at IS NULL OR closed_at >= $2)
		ORDER BY opened_at DESC
		LIMIT 1
		FOR UPDATE
	`

	m, err := scanMission(t.tx.QueryRow(ctx, missionSelect+where, agentID, at))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, e.ErrNotFound)
		}
		return nil, e.WrapError(ctx, op, err)
	}
	return m, nil
}

func (t *reconcileTx) InsertMission(ctx context.Context, m *domain.Mission) error {
	const op = "postgres.Reconciliation.InsertMission"

	const query = `
		INSERT INTO missions (id, agent_id, status, opened_at, start_event_id)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := t.tx.Exec(ctx, query, m.ID, m.AgentID, string(m.Status), m.OpenedAt, m.StartEventID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			switch pgErr.ConstraintName {
			case constraintOneOpenMission:
				return fmt.Errorf("%s: %w", op, e.ErrMissionAlreadyOpen)
			case constraintMissionPKey:
				return fmt.Errorf("%s: mission %s exists: %w", op, m.ID, e.ErrConflict)
			}
		}
		t.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err), slog.String("agent_id", m.AgentID))
		return e.WrapError(ctx, op, err)
	}
	return nil
}

func (t *reconcileTx) CloseMission(ctx context.Context, id, endEventID uuid.UUID, closedAt time.Time) error {
	const op = "postgres.Reconciliation.CloseMission"

	const query = `
		UPDATE missions
		SET status = 'closed', closed_at = $2, end_event_id = $3
		WHERE id = $1 AND status = 'open'
	`

	cmd, err := t.tx.Exec(ctx, query, id, closedAt, endEventID)
	if err != nil {
		t.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err), slog.String("mission_id", id.String()))
		return e.WrapError(ctx, op, err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, e.ErrNoOpenMission)
	}
	return nil
}

const recordSelect = `
	SELECT id, client_event_id, agent_id, mission_id, kind, valid, reason,
		   distance_meters, tolerance_meters, reference_latitude, reference_longitude,
		   latitude, longitude, captured_at, server_received_at
	FROM validation_records
`

func findRecord(ctx context.Context, q querier, logger *slog.Logger, clientEventID uuid.UUID) (*domain.ValidationRecord, error) {
	const op = "postgres.Reconciliation.FindRecord"

	var (
		rec    domain.ValidationRecord
		kind   string
		reason string
	)
	err := q.QueryRow(ctx, recordSelect+` WHERE client_event_id = $1`, clientEventID).Scan(
		&rec.ID,
		&rec.CheckinEventID,
		&rec.AgentID,
		&rec.MissionID,
		&kind,
		&rec.Valid,
		&reason,
		&rec.DistanceMeters,
		&rec.ToleranceMeters,
		&rec.ReferenceLatitude,
		&rec.ReferenceLongitude,
		&rec.Latitude,
		&rec.Longitude,
		&rec.CapturedAt,
		&rec.ServerReceivedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, e.ErrNotFound)
		}
		logger.Error("db queryrow scan failed", slog.String("op", op), slog.Any("error", err),
			slog.String("client_event_id", clientEventID.String()))
		return nil, e.WrapError(ctx, op, err)
	}
	rec.Kind = domain.CheckinKind(kind)
	rec.Reason = domain.Reason(reason)
	return &rec, nil
}

const missionSelect = `
	SELECT id, agent_id, status, opened_at, closed_at, start_event_id, end_event_id
	FROM missions
`

func scanMission(row pgx.Row) (*domain.Mission, error) {
	var (
		m      domain.Mission
		status string
	)
	if err := row.Scan(&m.ID, &m.AgentID, &status, &m.OpenedAt, &m.ClosedAt, &m.StartEventID, &m.EndEventID); err != nil {
		return nil, err
	}
	m.Status = domain.MissionStatus(status)
	return &m, nil
}
