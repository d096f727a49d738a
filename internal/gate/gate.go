// Package gate provides coordinate predicates that decide which decoded
// positions are admitted into track reconstruction.
package gate

import (
	"fmt"

	"github.com/golang/geo/r1"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"

	"github.com/criticalsnake/tracks-backend-go/internal/spatial"
)

// Gate reports whether a position given in degrees is accepted.
type Gate func(lat, lng float64) bool

// Gate types understood by FromConfig
const (
	TypeAll    = "all"
	TypeBounds = "bounds"
	TypeRadius = "radius"
)

// Config describes a gate in a configuration file.
type Config struct {
	Type string `yaml:"type" json:"type" validate:"omitempty,oneof=all bounds radius"`

	// Bounds
	MinLat float64 `yaml:"minLat" json:"minLat" validate:"gte=-90,lte=90"`
	MinLng float64 `yaml:"minLng" json:"minLng" validate:"gte=-180,lte=180"`
	MaxLat float64 `yaml:"maxLat" json:"maxLat" validate:"gte=-90,lte=90"`
	MaxLng float64 `yaml:"maxLng" json:"maxLng" validate:"gte=-180,lte=180"`

	// Radius
	CenterLat    float64 `yaml:"centerLat" json:"centerLat" validate:"gte=-90,lte=90"`
	CenterLng    float64 `yaml:"centerLng" json:"centerLng" validate:"gte=-180,lte=180"`
	RadiusMeters float64 `yaml:"radiusMeters" json:"radiusMeters" validate:"gte=0"`
}

// AcceptAll admits any position that is a valid WGS84 coordinate.
func AcceptAll(lat, lng float64) bool {
	return s2.LatLngFromDegrees(lat, lng).IsValid()
}

// Bounds admits positions inside the rectangle spanned by the two corners.
// A minLng greater than maxLng describes a box crossing the antimeridian.
func Bounds(minLat, minLng, maxLat, maxLng float64) Gate {
	rect := s2.Rect{
		Lat: r1.Interval{Lo: (s1.Angle(minLat) * s1.Degree).Radians(), Hi: (s1.Angle(maxLat) * s1.Degree).Radians()},
		Lng: s1.IntervalFromEndpoints((s1.Angle(minLng) * s1.Degree).Radians(), (s1.Angle(maxLng) * s1.Degree).Radians()),
	}
	return func(lat, lng float64) bool {
		return rect.ContainsLatLng(s2.LatLngFromDegrees(lat, lng))
	}
}

// Radius admits positions within meters of the center, measured along the
// surface of the earth.
func Radius(centerLat, centerLng, meters float64) Gate {
	center := s2.PointFromLatLng(s2.LatLngFromDegrees(centerLat, centerLng))
	c := s2.CapFromCenterAngle(center, spatial.MetersToAngle(meters))
	return func(lat, lng float64) bool {
		ll := s2.LatLngFromDegrees(lat, lng)
		if !ll.IsValid() {
			return false
		}
		return c.ContainsPoint(s2.PointFromLatLng(ll))
	}
}

// FromConfig builds the gate a configuration describes. An empty type means
// TypeAll.
func FromConfig(cfg Config) (Gate, error) {
	switch cfg.Type {
	case "", TypeAll:
		return AcceptAll, nil
	case TypeBounds:
		if cfg.MinLat > cfg.MaxLat {
			return nil, fmt.Errorf("invalid bounds: minLat %f > maxLat %f", cfg.MinLat, cfg.MaxLat)
		}
		return Bounds(cfg.MinLat, cfg.MinLng, cfg.MaxLat, cfg.MaxLng), nil
	case TypeRadius:
		if cfg.RadiusMeters <= 0 {
			return nil, fmt.Errorf("invalid radius: %f meters", cfg.RadiusMeters)
		}
		return Radius(cfg.CenterLat, cfg.CenterLng, cfg.RadiusMeters), nil
	default:
		return nil, fmt.Errorf("unknown gate type %q", cfg.Type)
	}
}
