package reconstruct

import "github.com/criticalsnake/tracks-backend-go/internal/models"

// ShouldSplit reports whether the gap a vector spans ends the current track.
// Exceeding either the duration or the distance limit is enough.
func ShouldSplit(v models.Vector, r models.TrackRestrictions) bool {
	if v.Duration > r.MaxGapDuration {
		return true
	}
	if v.Distance > r.MaxGapDistance {
		return true
	}
	return false
}
