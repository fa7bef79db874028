package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/Sidoine1991/agent-position-sub003/internal/domain"
	"github.com/Sidoine1991/agent-position-sub003/internal/geofence"
)

// Materialize builds the persisted record for ev from its verdict. Validity
// follows the reason: ok is valid, out_of_zone and stale_clock are not, and
// no_reference carries the policy verdict.
func Materialize(v geofence.Verdict, ev domain.CheckinEvent, ref *domain.ReferenceLocation, now time.Time) domain.ValidationRecord {
	rec := domain.ValidationRecord{
		ID:               uuid.New(),
		AgentID:          ev.AgentID,
		CheckinEventID:   ev.ClientEventID,
		MissionID:        ev.MissionID,
		Kind:             ev.Kind,
		Reason:           v.Reason,
		Latitude:         ev.Latitude,
		Longitude:        ev.Longitude,
		CapturedAt:       ev.CapturedAt.UTC(),
		ServerReceivedAt: now.UTC(),
	}

	switch v.Reason {
	case domain.ReasonOK:
		rec.Valid = true
	case domain.ReasonNoReference:
		rec.Valid = v.Valid
	default:
		rec.Valid = false
	}

	if v.DistanceMeters != nil {
		d := *v.DistanceMeters
		rec.DistanceMeters = &d
	}
	if ref != nil {
		tol, lat, lon := ref.ToleranceRadiusMeters, ref.Latitude, ref.Longitude
		rec.ToleranceMeters = &tol
		rec.ReferenceLatitude = &lat
		rec.ReferenceLongitude = &lon
	}
	return rec
}
