package models

import "time"

// Track is a contiguous, validated sequence of points of one participant.
type Track struct {
	Index       int     `json:"index"`
	Participant string  `json:"participant"`
	Points      []Point `json:"points"`
}

// First returns the first point of the track.
func (t Track) First() Point {
	return t.Points[0]
}

// Last returns the last point of the track.
func (t Track) Last() Point {
	return t.Points[len(t.Points)-1]
}

// TimeRange is the span covered by a set of tracks.
type TimeRange struct {
	Min time.Time `json:"min"`
	Max time.Time `json:"max"`
}

// Diagnostics counts the data points and transitions dropped during a run.
type Diagnostics struct {
	DuplicatesFiltered int `json:"duplicatesFiltered"`
	OutOfRangeFiltered int `json:"outOfRangeFiltered"`
	DecodeFailures     int `json:"decodeFailures"`
	OutOfOrderRejected int `json:"outOfOrderRejected"`
	InvalidVectors     int `json:"invalidVectors"`
	Splits             int `json:"splits"`
	TracksDropped      int `json:"tracksDropped"`
	PointsAccepted     int `json:"pointsAccepted"`
}

// Result is the outcome of one reconstruction run.
type Result struct {
	// TimeRange is nil when no track survived filtering.
	TimeRange   *TimeRange  `json:"timeRange"`
	Tracks      []Track     `json:"tracks"`
	Diagnostics Diagnostics `json:"diagnostics"`
}
