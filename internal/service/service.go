package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/Sidoine1991/agent-position-sub003/internal/domain"
)

//go:generate mockgen -source=service.go -destination=mocks/mock.go
type ReconciliationService interface {
	Reconcile(ctx context.Context, agentID string, events []domain.CheckinEvent) (domain.SyncResponse, error)
	GetValidation(ctx context.Context, clientEventID uuid.UUID) (*domain.ValidationRecord, error)
}

// ReferenceLocationProvider returns nil, nil when the agent has no reference.
type ReferenceLocationProvider interface {
	GetReferenceLocation(ctx context.Context, agentID string) (*domain.ReferenceLocation, error)
}

type ReferenceAdminService interface {
	Put(ctx context.Context, agentID string, req domain.UpsertReferenceRequest) (*domain.ReferenceLocation, error)
	Get(ctx context.Context, agentID string) (*domain.ReferenceLocation, error)
	Delete(ctx context.Context, agentID string) error
}

type ReferenceCache interface {
	Get(ctx context.Context, agentID string) (*domain.ReferenceLocation, bool, error)
	Set(ctx context.Context, agentID string, ref *domain.ReferenceLocation) error
	Invalidate(ctx context.Context, agentID string) error
}

type RecordQueue interface {
	Enqueue(ctx context.Context, rec domain.ValidationRecord) error
}

type Service struct {
	Reconciliation ReconciliationService
	References     ReferenceAdminService
	Provider       ReferenceLocationProvider
}

func NewService(
	reconciliation ReconciliationService,
	references ReferenceAdminService,
	provider ReferenceLocationProvider,
) *Service {
	return &Service{
		Reconciliation: reconciliation,
		References:     references,
		Provider:       provider,
	}
}
