// Package capture turns an agent action into a queued check-in event with an
// immediate, provisional verdict.
package capture

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Sidoine1991/agent-position-sub003/internal/domain"
	"github.com/Sidoine1991/agent-position-sub003/internal/geofence"
	"github.com/Sidoine1991/agent-position-sub003/pkg/e"
	"github.com/Sidoine1991/agent-position-sub003/pkg/validator"
)

type Store interface {
	Enqueue(ctx context.Context, ev domain.CheckinEvent) (domain.PendingQueueItem, error)
	LoadReference(ctx context.Context, agentID string) (*domain.ReferenceLocation, error)
	SaveReference(ctx context.Context, ref domain.ReferenceLocation) error
	ForgetReference(ctx context.Context, agentID string) error
}

type ReferenceFetcher interface {
	FetchReference(ctx context.Context) (*domain.ReferenceLocation, error)
}

type Input struct {
	Kind           domain.CheckinKind
	Latitude       float64
	Longitude      float64
	AccuracyMeters float64
	MissionID      *uuid.UUID
	Note           string
	PhotoRef       string
}

// Result carries the queued item and the local verdict. The verdict is only a
// hint for the user; the server decides.
type Result struct {
	Item    domain.PendingQueueItem
	Verdict geofence.Verdict
}

type Recorder struct {
	log     *slog.Logger
	store   Store
	agentID string
	policy  geofence.Policy
	now     func() time.Time
}

func NewRecorder(log *slog.Logger, store Store, agentID string, policy geofence.Policy) *Recorder {
	return &Recorder{
		log:     log.With(slog.String("component", "capture")),
		store:   store,
		agentID: agentID,
		policy:  policy,
		now:     time.Now,
	}
}

// Record validates the input, evaluates it against the cached reference and
// enqueues it. Nothing is enqueued for invalid coordinates.
func (r *Recorder) Record(ctx context.Context, in Input) (Result, error) {
	const op = "capture.Recorder.Record"

	if !geofence.ValidCoordinates(in.Latitude, in.Longitude) {
		return Result{}, fmt.Errorf("%s: %w", op, e.ErrInvalidCoordinates)
	}

	ev := domain.CheckinEvent{
		ClientEventID:  uuid.New(),
		AgentID:        r.agentID,
		MissionID:      in.MissionID,
		Kind:           in.Kind,
		Latitude:       in.Latitude,
		Longitude:      in.Longitude,
		AccuracyMeters: in.AccuracyMeters,
		CapturedAt:     r.now().UTC(),
		Note:           in.Note,
		PhotoRef:       in.PhotoRef,
	}
	if ev.Kind == domain.KindStartMission && ev.MissionID == nil {
		id := domain.MissionIDFor(ev.ClientEventID)
		ev.MissionID = &id
	}
	if err := validator.ValidateStruct(ev); err != nil {
		return Result{}, fmt.Errorf("%s: %w: %v", op, e.ErrInvalidInput, err)
	}

	ref, err := r.store.LoadReference(ctx, r.agentID)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", op, err)
	}
	verdict := geofence.Evaluate(
		geofence.Point{Lat: ev.Latitude, Lon: ev.Longitude},
		geofence.ReferenceFrom(ref),
		r.policy,
	)

	item, err := r.store.Enqueue(ctx, ev)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", op, err)
	}

	r.log.Info("check-in captured",
		slog.String("client_event_id", ev.ClientEventID.String()),
		slog.String("kind", string(ev.Kind)),
		slog.Bool("valid", verdict.Valid),
		slog.String("reason", string(verdict.Reason)),
	)
	return Result{Item: item, Verdict: verdict}, nil
}

// RefreshReference replaces the cached reference with the server's copy.
// A server without a reference clears the cache.
func (r *Recorder) RefreshReference(ctx context.Context, f ReferenceFetcher) (*domain.ReferenceLocation, error) {
	const op = "capture.Recorder.RefreshReference"

	ref, err := f.FetchReference(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if ref == nil {
		if err := r.store.ForgetReference(ctx, r.agentID); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return nil, nil
	}

	ref.AgentID = r.agentID
	if err := r.store.SaveReference(ctx, *ref); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ref, nil
}
