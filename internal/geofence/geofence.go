// Package geofence decides whether a captured position counts as presence at
// an agent's reference location. The same code runs on the client for the
// optimistic verdict and on the server for the authoritative one.
package geofence

import (
	"math"

	"github.com/golang/geo/s2"

	"github.com/Sidoine1991/agent-position-sub003/internal/domain"
)

// EarthRadiusMeters is the mean Earth radius used for every distance.
const EarthRadiusMeters = 6371000.0

type Point struct {
	Lat float64
	Lon float64
}

type Reference struct {
	Lat             float64
	Lon             float64
	ToleranceMeters float64
}

// Policy controls verdicts that are not determined by geometry alone.
type Policy struct {
	// AllowMissingReference is the verdict given when the agent has no
	// reference location configured.
	AllowMissingReference bool
}

func DefaultPolicy() Policy {
	return Policy{AllowMissingReference: true}
}

type Verdict struct {
	Valid          bool
	DistanceMeters *float64
	Reason         domain.Reason
}

// ReferenceFrom adapts a stored reference location; nil stays nil.
func ReferenceFrom(loc *domain.ReferenceLocation) *Reference {
	if loc == nil {
		return nil
	}
	return &Reference{Lat: loc.Latitude, Lon: loc.Longitude, ToleranceMeters: loc.ToleranceRadiusMeters}
}

func ValidCoordinates(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lon) || math.IsInf(lat, 0) || math.IsInf(lon, 0) {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// Distance returns the haversine great-circle distance in meters.
func Distance(a, b Point) float64 {
	la := s2.LatLngFromDegrees(a.Lat, a.Lon)
	lb := s2.LatLngFromDegrees(b.Lat, b.Lon)
	return la.Distance(lb).Radians() * EarthRadiusMeters
}

// Evaluate is pure: identical inputs always give identical verdicts.
// The tolerance boundary is inclusive.
func Evaluate(p Point, ref *Reference, policy Policy) Verdict {
	if !ValidCoordinates(p.Lat, p.Lon) {
		return Verdict{Valid: false, Reason: domain.ReasonInvalidCoordinates}
	}
	if ref == nil {
		return Verdict{Valid: policy.AllowMissingReference, Reason: domain.ReasonNoReference}
	}

	d := Distance(p, Point{Lat: ref.Lat, Lon: ref.Lon})
	if d <= ref.ToleranceMeters {
		return Verdict{Valid: true, DistanceMeters: &d, Reason: domain.ReasonOK}
	}
	return Verdict{Valid: false, DistanceMeters: &d, Reason: domain.ReasonOutOfZone}
}
