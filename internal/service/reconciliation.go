package service

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/Sidoine1991/agent-position-sub003/internal/domain"
	"github.com/Sidoine1991/agent-position-sub003/internal/geofence"
	"github.com/Sidoine1991/agent-position-sub003/internal/metrics"
	"github.com/Sidoine1991/agent-position-sub003/internal/storage/postgres"
	"github.com/Sidoine1991/agent-position-sub003/pkg/e"
	"github.com/Sidoine1991/agent-position-sub003/pkg/validator"
)

type ReconcileOptions struct {
	Policy             geofence.Policy
	MaxClockSkewFuture time.Duration
	MaxEventAge        time.Duration
}

type Reconciler struct {
	repo     postgres.ReconciliationRepository
	provider ReferenceLocationProvider
	queue    RecordQueue
	opts     ReconcileOptions
	logger   *slog.Logger
	now      func() time.Time
}

// NewReconciler builds the server side of sync. queue may be nil when
// downstream delivery is disabled.
func NewReconciler(
	repo postgres.ReconciliationRepository,
	provider ReferenceLocationProvider,
	queue RecordQueue,
	opts ReconcileOptions,
	logger *slog.Logger,
) *Reconciler {
	return &Reconciler{
		repo:     repo,
		provider: provider,
		queue:    queue,
		opts:     opts,
		logger:   logger,
		now:      time.Now,
	}
}

// Reconcile validates a batch of offline events for agentID. Events are
// handled in capture order and each one commits on its own, so a failure on
// one never rolls back the others. A replayed event answers with the record
// stored the first time.
func (s *Reconciler) Reconcile(ctx context.Context, agentID string, events []domain.CheckinEvent) (domain.SyncResponse, error) {
	start := time.Now()
	metrics.BatchSize.Observe(float64(len(events)))
	defer func() { metrics.ReconcileDurationSeconds.Observe(time.Since(start).Seconds()) }()

	ordered := slices.Clone(events)
	slices.SortStableFunc(ordered, func(a, b domain.CheckinEvent) int {
		return a.CapturedAt.Compare(b.CapturedAt)
	})

	resp := domain.SyncResponse{
		Accepted: make([]domain.ValidationRecord, 0, len(ordered)),
		Rejected: make([]domain.Rejection, 0),
	}
	for _, ev := range ordered {
		if err := ctx.Err(); err != nil {
			return domain.SyncResponse{}, err
		}

		rec, rej := s.reconcileOne(ctx, agentID, ev)
		if rej != nil {
			metrics.RejectedTotal.WithLabelValues(string(rej.Code)).Inc()
			resp.Rejected = append(resp.Rejected, *rej)
			continue
		}
		resp.Accepted = append(resp.Accepted, *rec)
	}

	s.logger.Info("sync batch reconciled",
		slog.String("agent_id", agentID),
		slog.Int("events", len(events)),
		slog.Int("accepted", len(resp.Accepted)),
		slog.Int("rejected", len(resp.Rejected)),
	)
	return resp, nil
}

func (s *Reconciler) reconcileOne(ctx context.Context, agentID string, ev domain.CheckinEvent) (*domain.ValidationRecord, *domain.Rejection) {
	if ev.ClientEventID == uuid.Nil {
		return nil, reject(ev, domain.RejectInvalidEvent, "client_event_id is required")
	}
	if !geofence.ValidCoordinates(ev.Latitude, ev.Longitude) {
		return nil, reject(ev, domain.RejectInvalidCoordinates, e.ErrInvalidCoordinates.Error())
	}
	if err := validator.ValidateStruct(ev); err != nil {
		return nil, reject(ev, domain.RejectInvalidEvent, err.Error())
	}
	if ev.AgentID != agentID {
		return nil, reject(ev, domain.RejectAgentMismatch, "event agent_id does not match the authenticated agent")
	}

	if rec, rej, ok := s.replay(ctx, agentID, ev); ok {
		return rec, rej
	}

	ref, err := s.provider.GetReferenceLocation(ctx, agentID)
	if err != nil {
		s.logger.Error("reference lookup failed", slog.String("agent_id", agentID), slog.Any("error", err))
		return nil, reject(ev, domain.RejectInternal, e.ErrInternal.Error())
	}

	now := s.now()
	verdict := geofence.Evaluate(
		geofence.Point{Lat: ev.Latitude, Lon: ev.Longitude},
		geofence.ReferenceFrom(ref),
		s.opts.Policy,
	)
	if s.staleClock(ev.CapturedAt, now) {
		verdict.Valid = false
		verdict.Reason = domain.ReasonStaleClock
	}
	rec := Materialize(verdict, ev, ref, now)

	err = s.repo.WithinTx(ctx, func(tx postgres.ReconcileTx) error {
		missionID, err := applyKind(ctx, tx, ev)
		if err != nil {
			return err
		}
		rec.MissionID = missionID
		return tx.InsertRecord(ctx, &rec)
	})
	if err != nil {
		// A concurrent request may have stored the same event first.
		if prev, rej, ok := s.replay(ctx, agentID, ev); ok {
			return prev, rej
		}
		return nil, s.rejectFor(ev, err)
	}

	metrics.ReconciledTotal.WithLabelValues(string(rec.Reason), strconv.FormatBool(rec.Valid)).Inc()
	s.publish(ctx, rec)
	return &rec, nil
}

// replay reports ok when ev already has a stored record.
func (s *Reconciler) replay(ctx context.Context, agentID string, ev domain.CheckinEvent) (*domain.ValidationRecord, *domain.Rejection, bool) {
	prev, err := s.repo.FindRecord(ctx, ev.ClientEventID)
	switch {
	case err == nil:
		if prev.AgentID != agentID {
			return nil, reject(ev, domain.RejectAgentMismatch, "client_event_id belongs to another agent"), true
		}
		metrics.ReplayedTotal.Inc()
		return prev, nil, true
	case errors.Is(err, e.ErrNotFound):
		return nil, nil, false
	default:
		s.logger.Error("find record failed", slog.String("client_event_id", ev.ClientEventID.String()), slog.Any("error", err))
		return nil, reject(ev, domain.RejectInternal, e.ErrInternal.Error()), true
	}
}

func (s *Reconciler) staleClock(capturedAt, now time.Time) bool {
	if s.opts.MaxClockSkewFuture > 0 && capturedAt.After(now.Add(s.opts.MaxClockSkewFuture)) {
		return true
	}
	if s.opts.MaxEventAge > 0 && capturedAt.Before(now.Add(-s.opts.MaxEventAge)) {
		return true
	}
	return false
}

func (s *Reconciler) rejectFor(ev domain.CheckinEvent, err error) *domain.Rejection {
	switch {
	case errors.Is(err, e.ErrMissionAlreadyOpen):
		return reject(ev, domain.RejectMissionOpen, e.ErrMissionAlreadyOpen.Error())
	case errors.Is(err, e.ErrUnknownMission):
		return reject(ev, domain.RejectUnknownMission, e.ErrUnknownMission.Error())
	case errors.Is(err, e.ErrNoOpenMission):
		return reject(ev, domain.RejectNoOpenMission, e.ErrNoOpenMission.Error())
	case errors.Is(err, e.ErrConflict), errors.Is(err, e.ErrInvalidInput):
		return reject(ev, domain.RejectInvalidEvent, err.Error())
	default:
		s.logger.Error("reconcile event failed",
			slog.String("client_event_id", ev.ClientEventID.String()),
			slog.Any("error", err),
		)
		return reject(ev, domain.RejectInternal, e.ErrInternal.Error())
	}
}

func (s *Reconciler) publish(ctx context.Context, rec domain.ValidationRecord) {
	if s.queue == nil {
		return
	}
	if err := s.queue.Enqueue(ctx, rec); err != nil {
		s.logger.Warn("enqueue validation record failed",
			slog.String("client_event_id", rec.CheckinEventID.String()),
			slog.Any("error", err),
		)
	}
}

func (s *Reconciler) GetValidation(ctx context.Context, clientEventID uuid.UUID) (*domain.ValidationRecord, error) {
	return s.repo.FindRecord(ctx, clientEventID)
}

// applyKind runs the mission side effect of ev and returns the mission the
// record belongs to.
func applyKind(ctx context.Context, tx postgres.ReconcileTx, ev domain.CheckinEvent) (*uuid.UUID, error) {
	switch ev.Kind {
	case domain.KindStartMission:
		id := domain.MissionIDFor(ev.ClientEventID)
		if ev.MissionID != nil {
			id = *ev.MissionID
		}
		m := &domain.Mission{
			ID:           id,
			AgentID:      ev.AgentID,
			Status:       domain.MissionOpen,
			OpenedAt:     ev.CapturedAt.UTC(),
			StartEventID: ev.ClientEventID,
		}
		if err := tx.InsertMission(ctx, m); err != nil {
			return nil, err
		}
		return &id, nil

	case domain.KindCheckin:
		if ev.MissionID != nil {
			m, err := tx.GetMission(ctx, *ev.MissionID)
			if errors.Is(err, e.ErrNotFound) || (err == nil && m.AgentID != ev.AgentID) {
				return nil, e.ErrUnknownMission
			}
			if err != nil {
				return nil, err
			}
			return &m.ID, nil
		}
		m, err := tx.MissionAt(ctx, ev.AgentID, ev.CapturedAt.UTC())
		if errors.Is(err, e.ErrNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return &m.ID, nil

	case domain.KindEndMission:
		var (
			m   *domain.Mission
			err error
		)
		if ev.MissionID != nil {
			m, err = tx.GetMission(ctx, *ev.MissionID)
		} else {
			m, err = tx.OpenMission(ctx, ev.AgentID)
		}
		if errors.Is(err, e.ErrNotFound) {
			return nil, e.ErrNoOpenMission
		}
		if err != nil {
			return nil, err
		}
		if m.AgentID != ev.AgentID || m.Status != domain.MissionOpen {
			return nil, e.ErrNoOpenMission
		}
		if err := tx.CloseMission(ctx, m.ID, ev.ClientEventID, ev.CapturedAt.UTC()); err != nil {
			return nil, err
		}
		return &m.ID, nil
	}
	return nil, e.ErrInvalidInput
}

func reject(ev domain.CheckinEvent, code domain.RejectionCode, msg string) *domain.Rejection {
	return &domain.Rejection{
		ClientEventID: ev.ClientEventID,
		Error:         msg,
		Code:          code,
		Retryable:     code.Retryable(),
	}
}
