// Package export renders reconstructed tracks for map clients.
package export

import (
	"math"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/simplify"

	"github.com/criticalsnake/tracks-backend-go/internal/models"
	"github.com/criticalsnake/tracks-backend-go/internal/reconstruct"
	"github.com/criticalsnake/tracks-backend-go/internal/spatial"
)

// CoordBounds is the bounding box of all track coordinates, in degrees.
type CoordBounds struct {
	MinLat    float64 `json:"minLat"`
	MinLng    float64 `json:"minLng"`
	MaxLat    float64 `json:"maxLat"`
	MaxLng    float64 `json:"maxLng"`
	CenterLat float64 `json:"centerLat"`
	CenterLng float64 `json:"centerLng"`
}

// Bounds returns the bounding box of every point in tracks. ok is false when
// there are no points.
func Bounds(tracks []models.Track) (b CoordBounds, ok bool) {
	var bound orb.Bound
	for _, track := range tracks {
		for _, p := range track.Points {
			pt := orb.Point{p.Lng, p.Lat}
			if !ok {
				bound = pt.Bound()
				ok = true
				continue
			}
			bound = bound.Extend(pt)
		}
	}
	if !ok {
		return CoordBounds{}, false
	}

	b = CoordBounds{
		MinLat: bound.Min.Lat(),
		MinLng: bound.Min.Lon(),
		MaxLat: bound.Max.Lat(),
		MaxLng: bound.Max.Lon(),
	}
	b.CenterLat, b.CenterLng = spatial.Midpoint(b.MinLat, b.MinLng, b.MaxLat, b.MaxLng)
	return b, true
}

// Geometry returns the track as a LineString, or a Point when it has a single
// position.
func Geometry(track models.Track) orb.Geometry {
	if len(track.Points) == 1 {
		p := track.Points[0]
		return orb.Point{p.Lng, p.Lat}
	}
	line := make(orb.LineString, 0, len(track.Points))
	for _, p := range track.Points {
		line = append(line, orb.Point{p.Lng, p.Lat})
	}
	return line
}

// Feature converts a track into a GeoJSON feature.
func Feature(track models.Track) *geojson.Feature {
	f := geojson.NewFeature(Geometry(track))
	f.ID = track.Index
	f.Properties["index"] = track.Index
	f.Properties["participant"] = track.Participant
	f.Properties["points"] = len(track.Points)
	f.Properties["distance"] = reconstruct.TotalDistance(track)
	f.Properties["duration"] = reconstruct.TotalDuration(track)
	if len(track.Points) > 0 {
		f.Properties["start"] = track.First().Stamp.Format(time.RFC3339)
		f.Properties["end"] = track.Last().Stamp.Format(time.RFC3339)
	}
	return f
}

// FeatureCollection converts tracks into a GeoJSON feature collection with
// one feature per track, in order. Empty tracks are skipped.
func FeatureCollection(tracks []models.Track) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, track := range tracks {
		if len(track.Points) == 0 {
			continue
		}
		fc.Append(Feature(track))
	}
	return fc
}

// Simplify reduces every LineString in fc with Douglas-Peucker at a tolerance
// given in meters. A non-positive tolerance leaves fc unchanged.
func Simplify(fc *geojson.FeatureCollection, toleranceMeters float64) {
	if toleranceMeters <= 0 {
		return
	}
	metersPerDegree := spatial.EarthRadiusMeters * math.Pi / 180
	s := simplify.DouglasPeucker(toleranceMeters / metersPerDegree)
	for _, f := range fc.Features {
		if line, ok := f.Geometry.(orb.LineString); ok {
			f.Geometry = s.LineString(line.Clone())
		}
	}
}
