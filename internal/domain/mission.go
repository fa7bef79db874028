package domain

import (
	"time"

	"github.com/google/uuid"
)

type MissionStatus string

const (
	MissionOpen   MissionStatus = "open"
	MissionClosed MissionStatus = "closed"
)

type Mission struct {
	ID           uuid.UUID     `json:"id"`
	AgentID      string        `json:"agent_id"`
	Status       MissionStatus `json:"status"`
	OpenedAt     time.Time     `json:"opened_at"`
	ClosedAt     *time.Time    `json:"closed_at,omitempty"`
	StartEventID uuid.UUID     `json:"start_event_id"`
	EndEventID   *uuid.UUID    `json:"end_event_id,omitempty"`
}

var missionNamespace = uuid.MustParse("9b3c5d2e-7f41-4a8b-b6c2-1e0d4f7a8c35")

// MissionIDFor derives the mission id opened by a start_mission event that
// does not name one. Client and server compute the same value offline.
func MissionIDFor(startEventID uuid.UUID) uuid.UUID {
	return uuid.NewSHA1(missionNamespace, startEventID[:])
}
