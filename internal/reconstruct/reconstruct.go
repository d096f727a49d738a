package reconstruct

import (
	"errors"
	"fmt"
	"log"
	"slices"

	"github.com/criticalsnake/tracks-backend-go/internal/gate"
	"github.com/criticalsnake/tracks-backend-go/internal/models"
)

// Options configures a reconstruction run.
type Options struct {
	// CoordFilter admits decoded points; nil admits every valid coordinate.
	CoordFilter       gate.Gate
	TrackRestrictions models.TrackRestrictions
}

// DefaultOptions returns options that admit every valid coordinate and use
// models.DefaultTrackRestrictions.
func DefaultOptions() Options {
	return Options{
		CoordFilter:       gate.AcceptAll,
		TrackRestrictions: models.DefaultTrackRestrictions,
	}
}

// Validate checks that every restriction is non-negative.
func (o Options) Validate() error {
	r := o.TrackRestrictions
	if r.MaxGapDuration < 0 || r.MaxGapDistance < 0 {
		return fmt.Errorf("%w: negative gap limit", ErrInvalidOptions)
	}
	if r.MinDataPoints < 0 || r.MinTotalDistance < 0 || r.MinTotalDuration < 0 {
		return fmt.Errorf("%w: negative track minimum", ErrInvalidOptions)
	}
	return nil
}

// CheckOrder verifies that explicit snapshot stamps never decrease. Snapshots
// without a stamp are skipped; a stale ping inside one is rejected per point
// with ErrOutOfOrder during the run.
func CheckOrder(dataset models.Dataset) error {
	var prev int64
	for i, snapshot := range dataset {
		t := snapshot.Stamp
		if t == 0 {
			continue
		}
		if t < prev {
			return fmt.Errorf("%w: snapshot %d at %d precedes %d", ErrUnorderedDataset, i, t, prev)
		}
		prev = t
	}
	return nil
}

// Run reconstructs tracks from a dataset. The snapshots must be in
// chronological order; Run returns ErrUnorderedDataset otherwise. Problems with
// individual pings are reported through the result's diagnostics, not as
// errors.
func Run(dataset models.Dataset, opts Options) (*models.Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := CheckOrder(dataset); err != nil {
		return nil, err
	}
	if opts.CoordFilter == nil {
		opts.CoordFilter = gate.AcceptAll
	}

	r := newRun(opts)
	for _, snapshot := range dataset {
		r.consumeSnapshot(snapshot)
	}
	return r.finish(), nil
}

// run is the state of one reconstruction.
type run struct {
	opts     Options
	tracks   []models.Track
	registry *Registry
	diag     models.Diagnostics
}

func newRun(opts Options) *run {
	return &run{
		opts:     opts,
		registry: NewRegistry(),
	}
}

// consumeSnapshot processes participants in sorted order so track indices
// are deterministic.
func (r *run) consumeSnapshot(snapshot models.Snapshot) {
	participants := make([]string, 0, len(snapshot.Points))
	for participant := range snapshot.Points {
		participants = append(participants, participant)
	}
	slices.Sort(participants)
	for _, participant := range participants {
		r.consume(participant, snapshot.Points[participant])
	}
}

func (r *run) consume(participant string, raw models.RawPoint) {
	point, err := DecodePoint(raw)
	if err != nil {
		r.diag.DecodeFailures++
		log.Printf("[Reconstructor] Dropping data-point of %s: %v", participant, err)
		return
	}

	if !r.opts.CoordFilter(point.Lat, point.Lng) {
		r.diag.OutOfRangeFiltered++
		return
	}

	idx := r.registry.CurrentIndex(participant)
	if idx >= len(r.tracks) {
		r.startTrack(idx, participant, point)
		return
	}

	track := &r.tracks[idx]
	latest := &track.Points[len(track.Points)-1]

	vector, err := ComputeVector(*latest, point)
	if err != nil {
		r.reject(participant, err)
		return
	}

	if ShouldSplit(vector, r.opts.TrackRestrictions) {
		// The vector spans the gap and belongs to neither track.
		r.diag.Splits++
		r.startTrack(r.registry.OpenNewTrack(participant), participant, point)
		return
	}

	latest.Vector = &vector
	track.Points = append(track.Points, point)
	r.diag.PointsAccepted++
}

func (r *run) startTrack(idx int, participant string, point models.Point) {
	if idx != len(r.tracks) {
		panic(fmt.Sprintf("reconstruct: track index %d allocated out of sequence (have %d tracks)", idx, len(r.tracks)))
	}
	r.tracks = append(r.tracks, models.Track{
		Index:       idx,
		Participant: participant,
		Points:      []models.Point{point},
	})
	r.diag.PointsAccepted++
}

func (r *run) reject(participant string, err error) {
	switch {
	case IsDuplicate(err):
		r.diag.DuplicatesFiltered++
	case errors.Is(err, ErrOutOfOrder):
		r.diag.OutOfOrderRejected++
		log.Printf("[Reconstructor] Invalid dataset ordering for %s: %v", participant, err)
	default:
		r.diag.InvalidVectors++
		log.Printf("[Reconstructor] Dropping data-point of %s: %v", participant, err)
	}
}

func (r *run) finish() *models.Result {
	kept := FilterTracks(r.tracks, r.opts.TrackRestrictions)
	r.diag.TracksDropped = len(r.tracks) - len(kept)

	result := &models.Result{
		Tracks:      kept,
		Diagnostics: r.diag,
	}
	if tr, ok := AggregateRange(kept); ok {
		result.TimeRange = &tr
	}

	log.Printf("[Reconstructor] Run completed: %d tracks kept, %d dropped, %d duplicates, %d out of range",
		len(kept), r.diag.TracksDropped, r.diag.DuplicatesFiltered, r.diag.OutOfRangeFiltered)
	return result
}
