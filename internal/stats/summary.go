// Package stats summarizes reconstructed tracks.
package stats

import (
	"time"

	"github.com/criticalsnake/tracks-backend-go/internal/models"
	"github.com/criticalsnake/tracks-backend-go/internal/reconstruct"
	"github.com/criticalsnake/tracks-backend-go/internal/spatial"
)

// TrackSummary describes a single track.
type TrackSummary struct {
	Index       int       `json:"index"`
	Participant string    `json:"participant"`
	Points      int       `json:"points"`
	Distance    float64   `json:"distance"`    // Meters
	Duration    float64   `json:"duration"`    // Seconds
	AvgSpeed    float64   `json:"avgSpeed"`    // Meters per second
	MeanBearing float64   `json:"meanBearing"` // Radians, weighted by distance
	Directness  float64   `json:"directness"`  // Mean resultant length of the bearings, 0..1
	Tortuosity  float64   `json:"tortuosity"`  // Path length over start-to-end distance
	Gyration    float64   `json:"gyration"`    // Radius of gyration in meters
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
}

// Summary describes a set of tracks.
type Summary struct {
	Tracks         int     `json:"tracks"`
	Participants   int     `json:"participants"`
	Points         int     `json:"points"`
	TotalDistance  float64 `json:"totalDistance"`
	TotalDuration  float64 `json:"totalDuration"`
	MeanDistance   float64 `json:"meanDistance"`
	MedianDistance float64 `json:"medianDistance"`
	P90Distance    float64 `json:"p90Distance"`
	MeanDuration   float64 `json:"meanDuration"`
	MedianDuration float64 `json:"medianDuration"`
	P90Duration    float64 `json:"p90Duration"`
}

// SummarizeTrack computes the summary of one track.
func SummarizeTrack(track models.Track) TrackSummary {
	s := TrackSummary{
		Index:       track.Index,
		Participant: track.Participant,
		Points:      len(track.Points),
		Distance:    reconstruct.TotalDistance(track),
		Duration:    reconstruct.TotalDuration(track),
	}
	if len(track.Points) == 0 {
		return s
	}
	s.Start = track.First().Stamp
	s.End = track.Last().Stamp
	if s.Duration > 0 {
		s.AvgSpeed = s.Distance / s.Duration
	}

	path := make([]spatial.Point, len(track.Points))
	var bearings, weights []float64
	for i, p := range track.Points {
		path[i] = spatial.Point{Lat: p.Lat, Lon: p.Lng}
		if p.Vector != nil {
			bearings = append(bearings, p.Vector.Bearing)
			weights = append(weights, p.Vector.Distance)
		}
	}
	s.MeanBearing = spatial.CircularMean(bearings, weights)
	s.Directness = spatial.MeanResultantLength(bearings, weights)
	s.Tortuosity = spatial.Tortuosity(path)
	s.Gyration = spatial.RadiusOfGyration(path)
	return s
}

// Summarize computes totals and distributions over tracks.
func Summarize(tracks []models.Track) Summary {
	s := Summary{Tracks: len(tracks)}
	if len(tracks) == 0 {
		return s
	}

	participants := make(map[string]struct{})
	distances := make([]float64, 0, len(tracks))
	durations := make([]float64, 0, len(tracks))
	for _, track := range tracks {
		participants[track.Participant] = struct{}{}
		s.Points += len(track.Points)

		d, t := reconstruct.TotalDistance(track), reconstruct.TotalDuration(track)
		distances = append(distances, d)
		durations = append(durations, t)
		s.TotalDistance += d
		s.TotalDuration += t
	}
	s.Participants = len(participants)

	s.MeanDistance = Mean(distances)
	dq := Percentiles(distances, 50, 90)
	s.MedianDistance, s.P90Distance = dq[0], dq[1]

	s.MeanDuration = Mean(durations)
	tq := Percentiles(durations, 50, 90)
	s.MedianDuration, s.P90Duration = tq[0], tq[1]
	return s
}
