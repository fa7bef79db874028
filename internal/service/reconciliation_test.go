package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sidoine1991/agent-position-sub003/internal/domain"
	"github.com/Sidoine1991/agent-position-sub003/internal/geofence"
	mock_postgres "github.com/Sidoine1991/agent-position-sub003/internal/storage/postgres/mocks"
	"github.com/Sidoine1991/agent-position-sub003/pkg/e"
)

const agent = "agent-7"

var serverNow = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

type stubProvider struct {
	ref *domain.ReferenceLocation
	err error
}

func (p stubProvider) GetReferenceLocation(context.Context, string) (*domain.ReferenceLocation, error) {
	return p.ref, p.err
}

type stubQueue struct {
	mu   sync.Mutex
	recs []domain.ValidationRecord
	err  error
}

func (q *stubQueue) Enqueue(_ context.Context, rec domain.ValidationRecord) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return q.err
	}
	q.recs = append(q.recs, rec)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func cotonou() *domain.ReferenceLocation {
	return &domain.ReferenceLocation{AgentID: agent, Latitude: 6.3654, Longitude: 2.4183, ToleranceRadiusMeters: 500}
}

func newReconciler(repo *memRepo, ref *domain.ReferenceLocation, q RecordQueue) *Reconciler {
	r := NewReconciler(repo, stubProvider{ref: ref}, q, ReconcileOptions{
		Policy:             geofence.DefaultPolicy(),
		MaxClockSkewFuture: 10 * time.Minute,
		MaxEventAge:        30 * 24 * time.Hour,
	}, testLogger())
	r.now = func() time.Time { return serverNow }
	return r
}

func event(kind domain.CheckinKind, lat, lon float64, capturedAgo time.Duration) domain.CheckinEvent {
	return domain.CheckinEvent{
		ClientEventID: uuid.New(),
		AgentID:       agent,
		Kind:          kind,
		Latitude:      lat,
		Longitude:     lon,
		CapturedAt:    serverNow.Add(-capturedAgo),
	}
}

func TestReconcile_GeofenceVerdicts(t *testing.T) {
	t.Parallel()

	r := newReconciler(newMemRepo(), cotonou(), nil)
	far := event(domain.KindCheckin, 6.3654, 2.4230, 2*time.Minute)
	near := event(domain.KindCheckin, 6.3658, 2.4186, time.Minute)

	resp, err := r.Reconcile(context.Background(), agent, []domain.CheckinEvent{far, near})
	require.NoError(t, err)
	require.Empty(t, resp.Rejected)
	require.Len(t, resp.Accepted, 2)

	out := resp.Accepted[0]
	assert.Equal(t, far.ClientEventID, out.CheckinEventID)
	assert.False(t, out.Valid)
	assert.Equal(t, domain.ReasonOutOfZone, out.Reason)
	require.NotNil(t, out.DistanceMeters)
	assert.InDelta(t, 519.39, *out.DistanceMeters, 0.5)
	assert.Equal(t, 500.0, *out.ToleranceMeters)
	assert.Equal(t, serverNow, out.ServerReceivedAt)

	in := resp.Accepted[1]
	assert.True(t, in.Valid)
	assert.Equal(t, domain.ReasonOK, in.Reason)
	assert.InDelta(t, 55.47, *in.DistanceMeters, 0.5)
}

func TestReconcile_ReplayReturnsStoredRecord(t *testing.T) {
	t.Parallel()

	repo := newMemRepo()
	q := &stubQueue{}
	r := newReconciler(repo, cotonou(), q)
	batch := []domain.CheckinEvent{event(domain.KindCheckin, 6.3658, 2.4186, time.Minute)}

	first, err := r.Reconcile(context.Background(), agent, batch)
	require.NoError(t, err)

	r.now = func() time.Time { return serverNow.Add(time.Hour) }
	second, err := r.Reconcile(context.Background(), agent, batch)
	require.NoError(t, err)

	require.Len(t, second.Accepted, 1)
	assert.Equal(t, first.Accepted[0], second.Accepted[0])
	assert.Len(t, repo.records, 1)
	assert.Len(t, q.recs, 1, "replays are not republished")
}

func TestReconcile_OfflineStartThenEndArrivingReversed(t *testing.T) {
	t.Parallel()

	repo := newMemRepo()
	r := newReconciler(repo, cotonou(), nil)

	start := event(domain.KindStartMission, 6.3654, 2.4183, 30*time.Minute)
	missionID := domain.MissionIDFor(start.ClientEventID)
	start.MissionID = &missionID
	end := event(domain.KindEndMission, 6.3655, 2.4184, 5*time.Minute)
	end.MissionID = &missionID

	resp, err := r.Reconcile(context.Background(), agent, []domain.CheckinEvent{end, start})
	require.NoError(t, err)
	require.Empty(t, resp.Rejected)
	require.Len(t, resp.Accepted, 2)
	assert.Equal(t, domain.KindStartMission, resp.Accepted[0].Kind)

	missions := repo.missionList()
	require.Len(t, missions, 1)
	m := missions[0]
	assert.Equal(t, missionID, m.ID)
	assert.Equal(t, domain.MissionClosed, m.Status)
	assert.Equal(t, start.CapturedAt, m.OpenedAt)
	require.NotNil(t, m.EndEventID)
	assert.Equal(t, end.ClientEventID, *m.EndEventID)
}

func TestReconcile_CheckinAttachesToOpenMission(t *testing.T) {
	t.Parallel()

	r := newReconciler(newMemRepo(), cotonou(), nil)
	start := event(domain.KindStartMission, 6.3654, 2.4183, 30*time.Minute)
	checkin := event(domain.KindCheckin, 6.3654, 2.4183, 20*time.Minute)
	loose := event(domain.KindCheckin, 6.3654, 2.4183, 40*time.Minute)

	resp, err := r.Reconcile(context.Background(), agent, []domain.CheckinEvent{start, checkin, loose})
	require.NoError(t, err)
	require.Len(t, resp.Accepted, 3)

	assert.Nil(t, resp.Accepted[0].MissionID, "checkin before the mission stands alone")
	require.NotNil(t, resp.Accepted[1].MissionID)
	assert.Equal(t, domain.MissionIDFor(start.ClientEventID), *resp.Accepted[1].MissionID)
	assert.Equal(t, *resp.Accepted[1].MissionID, *resp.Accepted[2].MissionID)
}

func TestReconcile_LateCheckinAttachesToMissionOpenAtCapture(t *testing.T) {
	t.Parallel()

	r := newReconciler(newMemRepo(), cotonou(), nil)
	ctx := context.Background()

	startA := event(domain.KindStartMission, 6.3654, 2.4183, 60*time.Minute)
	endA := event(domain.KindEndMission, 6.3654, 2.4183, 40*time.Minute)
	startB := event(domain.KindStartMission, 6.3654, 2.4183, 20*time.Minute)
	resp, err := r.Reconcile(ctx, agent, []domain.CheckinEvent{startA, endA, startB})
	require.NoError(t, err)
	require.Empty(t, resp.Rejected)

	duringA := event(domain.KindCheckin, 6.3654, 2.4183, 50*time.Minute)
	between := event(domain.KindCheckin, 6.3654, 2.4183, 30*time.Minute)
	duringB := event(domain.KindCheckin, 6.3654, 2.4183, 10*time.Minute)
	resp, err = r.Reconcile(ctx, agent, []domain.CheckinEvent{duringB, between, duringA})
	require.NoError(t, err)
	require.Len(t, resp.Accepted, 3)

	missionA := domain.MissionIDFor(startA.ClientEventID)
	missionB := domain.MissionIDFor(startB.ClientEventID)

	require.NotNil(t, resp.Accepted[0].MissionID)
	assert.Equal(t, missionA, *resp.Accepted[0].MissionID)
	assert.Nil(t, resp.Accepted[1].MissionID)
	require.NotNil(t, resp.Accepted[2].MissionID)
	assert.Equal(t, missionB, *resp.Accepted[2].MissionID)
}

func TestApplyKind_Statements(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	tx := mock_postgres.NewMockReconcileTx(ctrl)
	ctx := context.Background()

	start := event(domain.KindStartMission, 6.3654, 2.4183, time.Hour)
	missionID := domain.MissionIDFor(start.ClientEventID)
	tx.EXPECT().InsertMission(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, mission *domain.Mission) error {
		assert.Equal(t, missionID, mission.ID)
		assert.Equal(t, domain.MissionOpen, mission.Status)
		assert.Equal(t, start.CapturedAt, mission.OpenedAt)
		return nil
	})
	got, err := applyKind(ctx, tx, start)
	require.NoError(t, err)
	assert.Equal(t, missionID, *got)

	checkin := event(domain.KindCheckin, 6.3654, 2.4183, 30*time.Minute)
	tx.EXPECT().MissionAt(ctx, agent, checkin.CapturedAt).Return(&domain.Mission{ID: missionID, AgentID: agent}, nil)
	got, err = applyKind(ctx, tx, checkin)
	require.NoError(t, err)
	assert.Equal(t, missionID, *got)

	loose := event(domain.KindCheckin, 6.3654, 2.4183, 2*time.Hour)
	tx.EXPECT().MissionAt(ctx, agent, loose.CapturedAt).Return(nil, e.ErrNotFound)
	got, err = applyKind(ctx, tx, loose)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestReconcile_MissionStateRejections(t *testing.T) {
	t.Parallel()

	r := newReconciler(newMemRepo(), cotonou(), nil)
	ctx := context.Background()

	end := event(domain.KindEndMission, 6.3654, 2.4183, 50*time.Minute)
	resp, err := r.Reconcile(ctx, agent, []domain.CheckinEvent{end})
	require.NoError(t, err)
	require.Len(t, resp.Rejected, 1)
	assert.Equal(t, domain.RejectNoOpenMission, resp.Rejected[0].Code)
	assert.True(t, resp.Rejected[0].Retryable)

	unknown := uuid.New()
	stray := event(domain.KindCheckin, 6.3654, 2.4183, 45*time.Minute)
	stray.MissionID = &unknown
	resp, err = r.Reconcile(ctx, agent, []domain.CheckinEvent{stray})
	require.NoError(t, err)
	require.Len(t, resp.Rejected, 1)
	assert.Equal(t, domain.RejectUnknownMission, resp.Rejected[0].Code)

	first := event(domain.KindStartMission, 6.3654, 2.4183, 40*time.Minute)
	second := event(domain.KindStartMission, 6.3654, 2.4183, 30*time.Minute)
	resp, err = r.Reconcile(ctx, agent, []domain.CheckinEvent{first, second})
	require.NoError(t, err)
	require.Len(t, resp.Accepted, 1)
	require.Len(t, resp.Rejected, 1)
	assert.Equal(t, second.ClientEventID, resp.Rejected[0].ClientEventID)
	assert.Equal(t, domain.RejectMissionOpen, resp.Rejected[0].Code)
	assert.False(t, resp.Rejected[0].Retryable)

	// the earlier no_open_mission end can now be retried against the open mission
	resp, err = r.Reconcile(ctx, agent, []domain.CheckinEvent{event(domain.KindEndMission, 6.3654, 2.4183, 10*time.Minute)})
	require.NoError(t, err)
	assert.Len(t, resp.Accepted, 1)
}

func TestReconcile_StaleClockStillRecorded(t *testing.T) {
	t.Parallel()

	repo := newMemRepo()
	r := newReconciler(repo, cotonou(), nil)
	future := event(domain.KindCheckin, 6.3658, 2.4186, -2*time.Hour)
	ancient := event(domain.KindCheckin, 6.3658, 2.4186, 90*24*time.Hour)

	resp, err := r.Reconcile(context.Background(), agent, []domain.CheckinEvent{future, ancient})
	require.NoError(t, err)
	require.Len(t, resp.Accepted, 2)
	for _, rec := range resp.Accepted {
		assert.False(t, rec.Valid)
		assert.Equal(t, domain.ReasonStaleClock, rec.Reason)
		assert.NotNil(t, rec.DistanceMeters)
	}
	assert.Len(t, repo.records, 2)
}

func TestReconcile_NoReferenceFollowsPolicy(t *testing.T) {
	t.Parallel()

	ev := event(domain.KindCheckin, 6.3658, 2.4186, time.Minute)

	lenient := newReconciler(newMemRepo(), nil, nil)
	resp, err := lenient.Reconcile(context.Background(), agent, []domain.CheckinEvent{ev})
	require.NoError(t, err)
	require.Len(t, resp.Accepted, 1)
	assert.True(t, resp.Accepted[0].Valid)
	assert.Equal(t, domain.ReasonNoReference, resp.Accepted[0].Reason)
	assert.Nil(t, resp.Accepted[0].DistanceMeters)
	assert.Nil(t, resp.Accepted[0].ToleranceMeters)

	strict := newReconciler(newMemRepo(), nil, nil)
	strict.opts.Policy = geofence.Policy{AllowMissingReference: false}
	resp, err = strict.Reconcile(context.Background(), agent, []domain.CheckinEvent{ev})
	require.NoError(t, err)
	assert.False(t, resp.Accepted[0].Valid)
	assert.Equal(t, domain.ReasonNoReference, resp.Accepted[0].Reason)
}

func TestReconcile_RejectsMalformedEvents(t *testing.T) {
	t.Parallel()

	r := newReconciler(newMemRepo(), cotonou(), nil)

	badLat := event(domain.KindCheckin, 91, 2.4186, time.Minute)
	noID := event(domain.KindCheckin, 6.3658, 2.4186, time.Minute)
	noID.ClientEventID = uuid.Nil
	badKind := event("teleport", 6.3658, 2.4186, time.Minute)
	other := event(domain.KindCheckin, 6.3658, 2.4186, time.Minute)
	other.AgentID = "agent-8"

	resp, err := r.Reconcile(context.Background(), agent, []domain.CheckinEvent{badLat, noID, badKind, other})
	require.NoError(t, err)
	assert.Empty(t, resp.Accepted)

	codes := map[domain.RejectionCode]int{}
	for _, rej := range resp.Rejected {
		codes[rej.Code]++
		assert.False(t, rej.Retryable)
	}
	assert.Equal(t, map[domain.RejectionCode]int{
		domain.RejectInvalidCoordinates: 1,
		domain.RejectInvalidEvent:       2,
		domain.RejectAgentMismatch:      1,
	}, codes)
}

func TestReconcile_ReplayFromAnotherAgentRejected(t *testing.T) {
	t.Parallel()

	repo := newMemRepo()
	r := newReconciler(repo, cotonou(), nil)
	ev := event(domain.KindCheckin, 6.3658, 2.4186, time.Minute)
	_, err := r.Reconcile(context.Background(), agent, []domain.CheckinEvent{ev})
	require.NoError(t, err)

	ev.AgentID = "agent-8"
	resp, err := r.Reconcile(context.Background(), "agent-8", []domain.CheckinEvent{ev})
	require.NoError(t, err)
	require.Len(t, resp.Rejected, 1)
	assert.Equal(t, domain.RejectAgentMismatch, resp.Rejected[0].Code)
}

func TestReconcile_QueueFailureDoesNotRejectEvent(t *testing.T) {
	t.Parallel()

	q := &stubQueue{err: errors.New("redis down")}
	r := newReconciler(newMemRepo(), cotonou(), q)

	resp, err := r.Reconcile(context.Background(), agent, []domain.CheckinEvent{event(domain.KindCheckin, 6.3658, 2.4186, time.Minute)})
	require.NoError(t, err)
	assert.Len(t, resp.Accepted, 1)
	assert.Empty(t, resp.Rejected)
}

func TestReconcile_ProviderErrorIsRetryable(t *testing.T) {
	t.Parallel()

	r := newReconciler(newMemRepo(), nil, nil)
	r.provider = stubProvider{err: e.ErrInternal}

	resp, err := r.Reconcile(context.Background(), agent, []domain.CheckinEvent{event(domain.KindCheckin, 6.3658, 2.4186, time.Minute)})
	require.NoError(t, err)
	require.Len(t, resp.Rejected, 1)
	assert.Equal(t, domain.RejectInternal, resp.Rejected[0].Code)
	assert.True(t, resp.Rejected[0].Retryable)
}

func TestReconcile_StoreFailureMapsToInternal(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	repo := mock_postgres.NewMockReconciliationRepository(ctrl)

	ev := event(domain.KindCheckin, 6.3658, 2.4186, time.Minute)
	repo.EXPECT().FindRecord(gomock.Any(), ev.ClientEventID).Return(nil, e.ErrNotFound).Times(2)
	repo.EXPECT().WithinTx(gomock.Any(), gomock.Any()).Return(errors.New("postgres.Reconciliation.WithinTx: internal error"))

	r := NewReconciler(repo, stubProvider{ref: cotonou()}, nil, ReconcileOptions{Policy: geofence.DefaultPolicy()}, testLogger())
	resp, err := r.Reconcile(context.Background(), agent, []domain.CheckinEvent{ev})
	require.NoError(t, err)
	require.Len(t, resp.Rejected, 1)
	assert.Equal(t, domain.RejectInternal, resp.Rejected[0].Code)
	assert.Equal(t, "internal error", resp.Rejected[0].Error)
}

func TestReconcile_LostRaceAnswersWithWinner(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	repo := mock_postgres.NewMockReconciliationRepository(ctrl)

	ev := event(domain.KindStartMission, 6.3654, 2.4183, time.Minute)
	winner := &domain.ValidationRecord{ID: uuid.New(), AgentID: agent, CheckinEventID: ev.ClientEventID, Reason: domain.ReasonOK, Valid: true}
	gomock.InOrder(
		repo.EXPECT().FindRecord(gomock.Any(), ev.ClientEventID).Return(nil, e.ErrNotFound),
		repo.EXPECT().WithinTx(gomock.Any(), gomock.Any()).Return(e.ErrMissionAlreadyOpen),
		repo.EXPECT().FindRecord(gomock.Any(), ev.ClientEventID).Return(winner, nil),
	)

	r := NewReconciler(repo, stubProvider{ref: cotonou()}, nil, ReconcileOptions{Policy: geofence.DefaultPolicy()}, testLogger())
	resp, err := r.Reconcile(context.Background(), agent, []domain.CheckinEvent{ev})
	require.NoError(t, err)
	require.Empty(t, resp.Rejected)
	assert.Equal(t, winner.ID, resp.Accepted[0].ID)
}

func TestReconcile_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := newReconciler(newMemRepo(), cotonou(), nil)
	_, err := r.Reconcile(ctx, agent, []domain.CheckinEvent{event(domain.KindCheckin, 6.3658, 2.4186, time.Minute)})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGetValidation(t *testing.T) {
	t.Parallel()

	r := newReconciler(newMemRepo(), cotonou(), nil)
	ev := event(domain.KindCheckin, 6.3658, 2.4186, time.Minute)
	_, err := r.Reconcile(context.Background(), agent, []domain.CheckinEvent{ev})
	require.NoError(t, err)

	got, err := r.GetValidation(context.Background(), ev.ClientEventID)
	require.NoError(t, err)
	assert.Equal(t, ev.ClientEventID, got.CheckinEventID)

	_, err = r.GetValidation(context.Background(), uuid.New())
	assert.ErrorIs(t, err, e.ErrNotFound)
}
