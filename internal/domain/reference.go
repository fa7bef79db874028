package domain

import "time"

type ReferenceLocation struct {
	AgentID               string    `json:"agent_id"`
	Latitude              float64   `json:"latitude"`
	Longitude             float64   `json:"longitude"`
	ToleranceRadiusMeters float64   `json:"tolerance_radius_meters"`
	UpdatedAt             time.Time `json:"updated_at"`
}

type UpsertReferenceRequest struct {
	Latitude              float64 `json:"latitude" validate:"lat"`
	Longitude             float64 `json:"longitude" validate:"lng"`
	ToleranceRadiusMeters float64 `json:"tolerance_radius_meters" validate:"gt=0,max=100000"`
}
