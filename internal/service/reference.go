package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Sidoine1991/agent-position-sub003/internal/domain"
	"github.com/Sidoine1991/agent-position-sub003/internal/storage/postgres"
	"github.com/Sidoine1991/agent-position-sub003/pkg/e"
	"github.com/Sidoine1991/agent-position-sub003/pkg/validator"
)

const maxAgentIDLen = 64

type referenceProvider struct {
	repo   postgres.ReferenceRepository
	cache  ReferenceCache
	logger *slog.Logger
}

// NewReferenceProvider reads through the cache. A cache outage degrades to
// direct repository reads.
func NewReferenceProvider(repo postgres.ReferenceRepository, cache ReferenceCache, logger *slog.Logger) ReferenceLocationProvider {
	return &referenceProvider{repo: repo, cache: cache, logger: logger}
}

func (p *referenceProvider) GetReferenceLocation(ctx context.Context, agentID string) (*domain.ReferenceLocation, error) {
	ref, found, err := p.cache.Get(ctx, agentID)
	if err != nil {
		p.logger.Warn("reference cache get failed", slog.String("agent_id", agentID), slog.Any("error", err))
	} else if found {
		return ref, nil
	}

	ref, err = p.repo.Get(ctx, agentID)
	if err != nil && !errors.Is(err, e.ErrNotFound) {
		return nil, err
	}
	if errors.Is(err, e.ErrNotFound) {
		ref = nil
	}

	if err := p.cache.Set(ctx, agentID, ref); err != nil {
		p.logger.Warn("reference cache set failed", slog.String("agent_id", agentID), slog.Any("error", err))
	}
	return ref, nil
}

type ReferenceAdmin struct {
	repo   postgres.ReferenceRepository
	cache  ReferenceCache
	logger *slog.Logger
	now    func() time.Time
}

func NewReferenceAdmin(repo postgres.ReferenceRepository, cache ReferenceCache, logger *slog.Logger) *ReferenceAdmin {
	return &ReferenceAdmin{repo: repo, cache: cache, logger: logger, now: time.Now}
}

func (s *ReferenceAdmin) Put(ctx context.Context, agentID string, req domain.UpsertReferenceRequest) (*domain.ReferenceLocation, error) {
	if err := checkAgentID(agentID); err != nil {
		return nil, err
	}
	if err := validator.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", e.ErrInvalidInput, err)
	}

	ref := &domain.ReferenceLocation{
		AgentID:               agentID,
		Latitude:              req.Latitude,
		Longitude:             req.Longitude,
		ToleranceRadiusMeters: req.ToleranceRadiusMeters,
		UpdatedAt:             s.now().UTC(),
	}
	if err := s.repo.Upsert(ctx, ref); err != nil {
		return nil, err
	}
	s.invalidate(ctx, agentID)

	s.logger.Info("reference location set",
		slog.String("agent_id", agentID),
		slog.Float64("tolerance_m", ref.ToleranceRadiusMeters),
	)
	return ref, nil
}

func (s *ReferenceAdmin) Get(ctx context.Context, agentID string) (*domain.ReferenceLocation, error) {
	if err := checkAgentID(agentID); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, agentID)
}

func (s *ReferenceAdmin) Delete(ctx context.Context, agentID string) error {
	if err := checkAgentID(agentID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, agentID); err != nil {
		return err
	}
	s.invalidate(ctx, agentID)
	return nil
}

func (s *ReferenceAdmin) invalidate(ctx context.Context, agentID string) {
	if err := s.cache.Invalidate(ctx, agentID); err != nil {
		s.logger.Error("reference cache invalidate failed", slog.String("agent_id", agentID), slog.Any("error", err))
	}
}

func checkAgentID(agentID string) error {
	if agentID == "" || len(agentID) > maxAgentIDLen {
		return e.ErrInvalidAgentID
	}
	return nil
}
