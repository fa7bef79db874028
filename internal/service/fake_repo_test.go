package service

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Sidoine1991/agent-position-sub003/internal/domain"
	"github.com/Sidoine1991/agent-position-sub003/internal/storage/postgres"
	"github.com/Sidoine1991/agent-position-sub003/pkg/e"
)

// memRepo mirrors the Postgres constraints: one record per client event and
// at most one open mission per agent. A failed tx leaves no trace.
type memRepo struct {
	mu       sync.Mutex
	records  map[uuid.UUID]domain.ValidationRecord
	missions map[uuid.UUID]domain.Mission
}

func newMemRepo() *memRepo {
	return &memRepo{
		records:  map[uuid.UUID]domain.ValidationRecord{},
		missions: map[uuid.UUID]domain.Mission{},
	}
}

func (r *memRepo) FindRecord(_ context.Context, id uuid.UUID) (*domain.ValidationRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[id]
	if !ok {
		return nil, e.ErrNotFound
	}
	return &rec, nil
}

func (r *memRepo) WithinTx(_ context.Context, fn func(tx postgres.ReconcileTx) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx := &memTx{records: maps.Clone(r.records), missions: maps.Clone(r.missions)}
	if err := fn(tx); err != nil {
		return err
	}
	r.records, r.missions = tx.records, tx.missions
	return nil
}

func (r *memRepo) missionList() []domain.Mission {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Mission, 0, len(r.missions))
	for _, m := range r.missions {
		out = append(out, m)
	}
	return out
}

type memTx struct {
	records  map[uuid.UUID]domain.ValidationRecord
	missions map[uuid.UUID]domain.Mission
}

func (t *memTx) FindRecord(_ context.Context, id uuid.UUID) (*domain.ValidationRecord, error) {
	rec, ok := t.records[id]
	if !ok {
		return nil, e.ErrNotFound
	}
	return &rec, nil
}

func (t *memTx) InsertRecord(_ context.Context, rec *domain.ValidationRecord) error {
	if _, ok := t.records[rec.CheckinEventID]; ok {
		return e.ErrUniqueViolation
	}
	t.records[rec.CheckinEventID] = *rec
	return nil
}

func (t *memTx) GetMission(_ context.Context, id uuid.UUID) (*domain.Mission, error) {
	m, ok := t.missions[id]
	if !ok {
		return nil, e.ErrNotFound
	}
	return &m, nil
}

func (t *memTx) OpenMission(_ context.Context, agentID string) (*domain.Mission, error) {
	for _, m := range t.missions {
		if m.AgentID == agentID && m.Status == domain.MissionOpen {
			return &m, nil
		}
	}
	return nil, e.ErrNotFound
}

func (t *memTx) MissionAt(_ context.Context, agentID string, at time.Time) (*domain.Mission, error) {
	var found *domain.Mission
	for _, m := range t.missions {
		if m.AgentID != agentID || m.OpenedAt.After(at) {
			continue
		}
		if m.ClosedAt != nil && m.ClosedAt.Before(at) {
			continue
		}
		if found == nil || m.OpenedAt.After(found.OpenedAt) {
			found = &m
		}
	}
	if found == nil {
		return nil, e.ErrNotFound
	}
	return found, nil
}

func (t *memTx) InsertMission(ctx context.Context, m *domain.Mission) error {
	if _, err := t.OpenMission(ctx, m.AgentID); err == nil {
		return e.ErrMissionAlreadyOpen
	}
	if _, ok := t.missions[m.ID]; ok {
		return e.ErrConflict
	}
	t.missions[m.ID] = *m
	return nil
}

func (t *memTx) CloseMission(_ context.Context, id, endEventID uuid.UUID, closedAt time.Time) error {
	m, ok := t.missions[id]
	if !ok || m.Status != domain.MissionOpen {
		return e.ErrNoOpenMission
	}
	m.Status = domain.MissionClosed
	m.ClosedAt = &closedAt
	m.EndEventID = &endEventID
	t.missions[id] = m
	return nil
}
