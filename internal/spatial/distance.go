package spatial

import (
	"math"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// Constants
const (
	EarthRadiusMeters = 6371000.0 // Earth's mean radius in meters
	EarthRadiusKm     = 6371.0    // Earth's mean radius in kilometers
)

// HaversineDistance calculates the great-circle distance between two points in meters
// using the Haversine formula
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}

// IsometricLatitude returns ψ = ln(tan(φ/2 + π/4)) for a latitude φ in radians.
// It diverges at the poles.
func IsometricLatitude(lat s1.Angle) float64 {
	return math.Log(math.Tan(lat.Radians()/2 + math.Pi/4))
}

// RhumbBearing calculates the direction of travel from point 1 to point 2 along
// a loxodrome, in radians. The longitude difference is taken as an absolute
// value, so the result lies in [0, π] for real inputs; degenerate inputs
// (poles) yield NaN.
func RhumbBearing(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)

	dPsi := IsometricLatitude(p2.Lat) - IsometricLatitude(p1.Lat)
	dLng := math.Abs((p1.Lng - p2.Lng).Radians())
	return math.Atan2(dLng, dPsi)
}

// Midpoint calculates the midpoint between two points
func Midpoint(lat1, lon1, lat2, lon2 float64) (float64, float64) {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)

	mid := s2.Interpolate(0.5, s2.PointFromLatLng(p1), s2.PointFromLatLng(p2))
	midLatLng := s2.LatLngFromPoint(mid)

	return midLatLng.Lat.Degrees(), midLatLng.Lng.Degrees()
}

// MetersToAngle converts a surface distance into the central angle it spans.
func MetersToAngle(meters float64) s1.Angle {
	return s1.Angle(meters / EarthRadiusMeters)
}
