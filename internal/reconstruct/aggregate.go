package reconstruct

import "github.com/criticalsnake/tracks-backend-go/internal/models"

// AggregateRange returns the span from the earliest first point to the latest
// last point of the tracks. ok is false when there is no non-empty track, in
// which case the range is undefined.
func AggregateRange(tracks []models.Track) (tr models.TimeRange, ok bool) {
	for _, track := range tracks {
		if len(track.Points) == 0 {
			continue
		}
		first, last := track.First().Stamp, track.Last().Stamp
		if !ok || first.Before(tr.Min) {
			tr.Min = first
		}
		if !ok || last.After(tr.Max) {
			tr.Max = last
		}
		ok = true
	}
	return tr, ok
}
