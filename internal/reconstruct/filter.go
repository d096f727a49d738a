package reconstruct

import "github.com/criticalsnake/tracks-backend-go/internal/models"

// TotalDistance sums the outgoing vector distances of a track in meters.
func TotalDistance(track models.Track) float64 {
	var sum float64
	for _, p := range track.Points {
		if p.Vector != nil {
			sum += p.Vector.Distance
		}
	}
	return sum
}

// TotalDuration sums the outgoing vector durations of a track in seconds.
func TotalDuration(track models.Track) float64 {
	var sum float64
	for _, p := range track.Points {
		if p.Vector != nil {
			sum += p.Vector.Duration
		}
	}
	return sum
}

// KeepTrack reports whether a track meets every minimum of r.
func KeepTrack(track models.Track, r models.TrackRestrictions) bool {
	if len(track.Points) < r.MinDataPoints {
		return false
	}
	if TotalDistance(track) < r.MinTotalDistance {
		return false
	}
	if TotalDuration(track) < r.MinTotalDuration {
		return false
	}
	return true
}

// FilterTracks returns the tracks that meet every minimum of r, in their
// input order. The input is not modified.
func FilterTracks(tracks []models.Track, r models.TrackRestrictions) []models.Track {
	kept := make([]models.Track, 0, len(tracks))
	for _, track := range tracks {
		if KeepTrack(track, r) {
			kept = append(kept, track)
		}
	}
	return kept
}
