package domain

import (
	"time"

	"github.com/google/uuid"
)

type CheckinKind string

const (
	KindStartMission CheckinKind = "start_mission"
	KindCheckin      CheckinKind = "checkin"
	KindEndMission   CheckinKind = "end_mission"
)

// CheckinEvent is authored by the client and never changes after capture.
// ClientEventID is the idempotency key across retries.
type CheckinEvent struct {
	ClientEventID  uuid.UUID   `json:"client_event_id" validate:"required"`
	AgentID        string      `json:"agent_id" validate:"required,max=64"`
	MissionID      *uuid.UUID  `json:"mission_id,omitempty"`
	Kind           CheckinKind `json:"kind" validate:"required,checkin_kind"`
	Latitude       float64     `json:"latitude" validate:"lat"`
	Longitude      float64     `json:"longitude" validate:"lng"`
	AccuracyMeters float64     `json:"accuracy_meters" validate:"gte=0"`
	CapturedAt     time.Time   `json:"captured_at" validate:"required"`
	Note           string      `json:"note,omitempty" validate:"max=1000"`
	PhotoRef       string      `json:"photo_ref,omitempty" validate:"max=512"`
}

type SyncRequest struct {
	AgentID string         `json:"agent_id"`
	Events  []CheckinEvent `json:"events"`
}

type RejectionCode string

const (
	RejectInvalidEvent       RejectionCode = "invalid_event"
	RejectInvalidCoordinates RejectionCode = "invalid_coordinates"
	RejectAgentMismatch      RejectionCode = "agent_mismatch"
	RejectMissionOpen        RejectionCode = "mission_already_open"
	RejectUnknownMission     RejectionCode = "unknown_mission"
	RejectNoOpenMission      RejectionCode = "no_open_mission"
	RejectInternal           RejectionCode = "internal"
)

// Retryable reports whether resending the same event later can succeed.
func (c RejectionCode) Retryable() bool {
	switch c {
	case RejectUnknownMission, RejectNoOpenMission, RejectInternal:
		return true
	}
	return false
}

// ServerFault reports a rejection caused by a server-side failure. The event
// itself was never judged.
func (c RejectionCode) ServerFault() bool {
	return c == RejectInternal
}

type Rejection struct {
	ClientEventID uuid.UUID     `json:"client_event_id"`
	Error         string        `json:"error"`
	Code          RejectionCode `json:"code"`
	Retryable     bool          `json:"retryable"`
}

type SyncResponse struct {
	Accepted []ValidationRecord `json:"accepted"`
	Rejected []Rejection        `json:"rejected"`
}
