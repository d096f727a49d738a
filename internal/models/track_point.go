package models

import "time"

// RawPoint is a single position ping as reported by a participant.
// Coordinates are fixed-point integers with six implied decimal places
// (52510670 means 52.510670).
type RawPoint struct {
	Timestamp int64 `json:"timestamp"` // Unix timestamp in seconds
	Latitude  int64 `json:"latitude"`
	Longitude int64 `json:"longitude"`
}

// Snapshot holds the latest known ping of every participant reporting at one
// moment in time.
type Snapshot struct {
	Stamp  int64               `json:"stamp,omitempty"` // Unix timestamp in seconds, 0 if unknown
	Points map[string]RawPoint `json:"points"`
}

// Time returns the moment the snapshot represents: Stamp when set, otherwise
// the newest ping it contains.
func (s Snapshot) Time() int64 {
	if s.Stamp != 0 {
		return s.Stamp
	}
	var newest int64
	for _, p := range s.Points {
		if p.Timestamp > newest {
			newest = p.Timestamp
		}
	}
	return newest
}

// Dataset is a chronologically ordered sequence of snapshots.
type Dataset []Snapshot

// Point is a decoded position inside a track.
type Point struct {
	Stamp time.Time `json:"stamp"`
	Lat   float64   `json:"lat"`
	Lng   float64   `json:"lng"`

	// Vector describes the transition to the next point of the same track.
	// It is nil for the last point.
	Vector *Vector `json:"vector,omitempty"`
}

// Vector is the validated transition between two adjacent points.
type Vector struct {
	Bearing  float64 `json:"bearing"`  // Radians, [0, 2π)
	Distance float64 `json:"distance"` // Meters
	Duration float64 `json:"duration"` // Seconds
}
