package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Sidoine1991/agent-position-sub003/internal/domain"
)

//go:generate mockgen -source=repository.go -destination=mocks/mock.go
type ReferenceRepository interface {
	Get(ctx context.Context, agentID string) (*domain.ReferenceLocation, error)
	Upsert(ctx context.Context, ref *domain.ReferenceLocation) error
	Delete(ctx context.Context, agentID string) error
}

type ReconciliationRepository interface {
	FindRecord(ctx context.Context, clientEventID uuid.UUID) (*domain.ValidationRecord, error)
	// WithinTx runs fn in one transaction; fn returning an error rolls back.
	WithinTx(ctx context.Context, fn func(tx ReconcileTx) error) error
}

// ReconcileTx is the set of statements one event's reconciliation may run.
// Everything done through it commits or rolls back together.
type ReconcileTx interface {
	FindRecord(ctx context.Context, clientEventID uuid.UUID) (*domain.ValidationRecord, error)
	InsertRecord(ctx context.Context, rec *domain.ValidationRecord) error
	GetMission(ctx context.Context, id uuid.UUID) (*domain.Mission, error)
	OpenMission(ctx context.Context, agentID string) (*domain.Mission, error)
	// MissionAt returns the agent's mission that was open at the given instant.
	MissionAt(ctx context.Context, agentID string, at time.Time) (*domain.Mission, error)
	InsertMission(ctx context.Context, mission *domain.Mission) error
	CloseMission(ctx context.Context, id, endEventID uuid.UUID, closedAt time.Time) error
}

func (p *Postgres) References() ReferenceRepository          { return p.Reference }
func (p *Postgres) Reconciliation() ReconciliationRepository { return p.Reconcile }
