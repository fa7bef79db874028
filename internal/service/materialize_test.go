package service_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/Sidoine1991/agent-position-sub003/internal/domain"
	"github.com/Sidoine1991/agent-position-sub003/internal/geofence"
	"github.com/Sidoine1991/agent-position-sub003/internal/service"
)

func TestMaterialize(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	missionID := uuid.New()
	ev := domain.CheckinEvent{
		ClientEventID: uuid.New(),
		AgentID:       "agent-7",
		MissionID:     &missionID,
		Kind:          domain.KindCheckin,
		Latitude:      6.3658,
		Longitude:     2.4186,
		CapturedAt:    now.Add(-time.Hour).In(time.FixedZone("WAT", 3600)),
	}
	ref := &domain.ReferenceLocation{AgentID: "agent-7", Latitude: 6.3654, Longitude: 2.4183, ToleranceRadiusMeters: 500}
	d := 55.47

	tests := []struct {
		name      string
		verdict   geofence.Verdict
		ref       *domain.ReferenceLocation
		wantValid bool
	}{
		{"ok", geofence.Verdict{Valid: true, DistanceMeters: &d, Reason: domain.ReasonOK}, ref, true},
		{"out of zone", geofence.Verdict{Valid: false, DistanceMeters: &d, Reason: domain.ReasonOutOfZone}, ref, false},
		{"stale clock ignores geometry", geofence.Verdict{Valid: true, DistanceMeters: &d, Reason: domain.ReasonStaleClock}, ref, false},
		{"no reference allowed", geofence.Verdict{Valid: true, Reason: domain.ReasonNoReference}, nil, true},
		{"no reference denied", geofence.Verdict{Valid: false, Reason: domain.ReasonNoReference}, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := service.Materialize(tt.verdict, ev, tt.ref, now)

			assert.NotEqual(t, uuid.Nil, rec.ID)
			assert.Equal(t, ev.ClientEventID, rec.CheckinEventID)
			assert.Equal(t, &missionID, rec.MissionID)
			assert.Equal(t, tt.wantValid, rec.Valid)
			assert.Equal(t, tt.verdict.Reason, rec.Reason)
			assert.Equal(t, time.UTC, rec.CapturedAt.Location())
			assert.True(t, rec.CapturedAt.Equal(ev.CapturedAt))
			assert.Equal(t, now, rec.ServerReceivedAt)

			if tt.ref == nil {
				assert.Nil(t, rec.ToleranceMeters)
				assert.Nil(t, rec.ReferenceLatitude)
				assert.Nil(t, rec.DistanceMeters)
				return
			}
			assert.Equal(t, 500.0, *rec.ToleranceMeters)
			assert.Equal(t, 6.3654, *rec.ReferenceLatitude)
			assert.Equal(t, 2.4183, *rec.ReferenceLongitude)
			assert.Equal(t, d, *rec.DistanceMeters)
		})
	}
}
