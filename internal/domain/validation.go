package domain

import (
	"time"

	"github.com/google/uuid"
)

type Reason string

const (
	ReasonOK                 Reason = "ok"
	ReasonOutOfZone          Reason = "out_of_zone"
	ReasonNoReference        Reason = "no_reference"
	ReasonStaleClock         Reason = "stale_clock"
	ReasonInvalidCoordinates Reason = "invalid_coordinates"
)

// ValidationRecord is the server's authoritative verdict for one check-in
// event. Exactly one exists per CheckinEventID.
type ValidationRecord struct {
	ID                 uuid.UUID   `json:"id"`
	AgentID            string      `json:"agent_id"`
	CheckinEventID     uuid.UUID   `json:"checkin_event_id"`
	MissionID          *uuid.UUID  `json:"mission_id,omitempty"`
	Kind               CheckinKind `json:"kind"`
	Valid              bool        `json:"valid"`
	Reason             Reason      `json:"reason"`
	DistanceMeters     *float64    `json:"distance_meters,omitempty"`
	ToleranceMeters    *float64    `json:"tolerance_meters,omitempty"`
	ReferenceLatitude  *float64    `json:"reference_latitude,omitempty"`
	ReferenceLongitude *float64    `json:"reference_longitude,omitempty"`
	Latitude           float64     `json:"latitude"`
	Longitude          float64     `json:"longitude"`
	CapturedAt         time.Time   `json:"captured_at"`
	ServerReceivedAt   time.Time   `json:"server_received_at"`
}
