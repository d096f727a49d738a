package models

// TrackRestrictions bounds how tracks are split and which tracks survive.
type TrackRestrictions struct {
	MaxGapDuration   float64 `json:"maxGapDuration" yaml:"maxGapDuration" validate:"gte=0"`     // Seconds
	MaxGapDistance   float64 `json:"maxGapDistance" yaml:"maxGapDistance" validate:"gte=0"`     // Meters
	MinDataPoints    int     `json:"minDataPoints" yaml:"minDataPoints" validate:"gte=0"`       // Points
	MinTotalDistance float64 `json:"minTotalDistance" yaml:"minTotalDistance" validate:"gte=0"` // Meters
	MinTotalDuration float64 `json:"minTotalDuration" yaml:"minTotalDuration" validate:"gte=0"` // Seconds
}

// DefaultTrackRestrictions suit a city ride sampled every few seconds to
// minutes.
var DefaultTrackRestrictions = TrackRestrictions{
	MaxGapDuration:   300,  // 5 minutes
	MaxGapDistance:   1000, // 1 km
	MinDataPoints:    10,
	MinTotalDistance: 1000, // 1 km
	MinTotalDuration: 300,  // 5 minutes
}

// TrackFilter represents query parameters for reconstructing tracks from the
// stored ping archive.
type TrackFilter struct {
	From int64 `form:"from"` // Unix timestamp, 0 for unbounded
	To   int64 `form:"to"`   // Unix timestamp, 0 for unbounded
}
