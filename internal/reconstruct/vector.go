package reconstruct

import (
	"math"

	"github.com/criticalsnake/tracks-backend-go/internal/models"
	"github.com/criticalsnake/tracks-backend-go/internal/spatial"
)

// ComputeVector derives the transition from latest to next, two consecutive
// points of the same participant. A non-nil error is a *RejectError whose
// Reason tells why the pair was rejected.
func ComputeVector(latest, next models.Point) (models.Vector, error) {
	if next.Stamp.Equal(latest.Stamp) {
		return models.Vector{}, reject(ErrDuplicateTimestamp, latest, next, 0)
	}

	if latest.Lat == next.Lat && latest.Lng == next.Lng {
		return models.Vector{}, reject(ErrDuplicatePosition, latest, next, 0)
	}

	if latest.Stamp.After(next.Stamp) {
		return models.Vector{}, reject(ErrOutOfOrder, latest, next, next.Stamp.Sub(latest.Stamp).Seconds())
	}

	// atan2 cannot leave [0, 2π) here except through NaN at the poles.
	bearing := spatial.RhumbBearing(latest.Lat, latest.Lng, next.Lat, next.Lng)
	if math.IsNaN(bearing) || bearing < 0 || bearing >= 2*math.Pi {
		return models.Vector{}, reject(ErrInvalidBearing, latest, next, bearing)
	}

	distance := spatial.HaversineDistance(latest.Lat, latest.Lng, next.Lat, next.Lng)
	if !(distance > 0) {
		return models.Vector{}, reject(ErrInvalidDistance, latest, next, distance)
	}

	duration := next.Stamp.Sub(latest.Stamp).Seconds()
	if duration < 0 {
		return models.Vector{}, reject(ErrInvalidDuration, latest, next, duration)
	}

	return models.Vector{
		Bearing:  bearing,
		Distance: distance,
		Duration: duration,
	}, nil
}
