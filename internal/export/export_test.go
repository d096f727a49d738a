package export

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/criticalsnake/tracks-backend-go/internal/models"
)

var epoch = time.Unix(1700000000, 0).UTC()

func track(index int, participant string, coords ...[2]float64) models.Track {
	t := models.Track{Index: index, Participant: participant}
	for i, c := range coords {
		t.Points = append(t.Points, models.Point{Stamp: epoch.Add(time.Duration(i) * time.Minute), Lat: c[0], Lng: c[1]})
	}
	return t
}

func TestBounds(t *testing.T) {
	tracks := []models.Track{
		track(0, "a", [2]float64{52.50, 13.40}, [2]float64{52.52, 13.38}),
		track(1, "b", [2]float64{52.48, 13.45}),
	}

	b, ok := Bounds(tracks)
	require.True(t, ok)
	assert.Equal(t, 52.48, b.MinLat)
	assert.Equal(t, 13.38, b.MinLng)
	assert.Equal(t, 52.52, b.MaxLat)
	assert.Equal(t, 13.45, b.MaxLng)
	assert.InDelta(t, 52.50, b.CenterLat, 1e-3)
	assert.InDelta(t, 13.415, b.CenterLng, 1e-3)

	_, ok = Bounds(nil)
	assert.False(t, ok)
	_, ok = Bounds([]models.Track{{Index: 0}})
	assert.False(t, ok)
}

func TestFeatureCollection(t *testing.T) {
	tracks := []models.Track{
		track(0, "a", [2]float64{52.50, 13.40}, [2]float64{52.51, 13.40}),
		track(1, "b", [2]float64{52.48, 13.45}),
		{Index: 2, Participant: "c"},
	}

	fc := FeatureCollection(tracks)
	require.Len(t, fc.Features, 2)

	line, ok := fc.Features[0].Geometry.(orb.LineString)
	require.True(t, ok)
	assert.Equal(t, orb.Point{13.40, 52.50}, line[0], "positions are lng, lat")
	assert.Equal(t, "a", fc.Features[0].Properties["participant"])
	assert.Equal(t, epoch.Format(time.RFC3339), fc.Features[0].Properties["start"])

	_, ok = fc.Features[1].Geometry.(orb.Point)
	assert.True(t, ok, "single positions become points")

	data, err := json.Marshal(fc)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"type":"FeatureCollection"`)
	assert.Contains(t, string(data), `"LineString"`)
}

func TestSimplify(t *testing.T) {
	tracks := []models.Track{
		track(0, "a", [2]float64{52.5000, 13.4}, [2]float64{52.5010, 13.40001}, [2]float64{52.5020, 13.4}, [2]float64{52.5020, 13.41}),
	}

	fc := FeatureCollection(tracks)
	Simplify(fc, 0)
	assert.Len(t, fc.Features[0].Geometry.(orb.LineString), 4)

	Simplify(fc, 5)
	line := fc.Features[0].Geometry.(orb.LineString)
	assert.Len(t, line, 3, "the near-collinear middle point is dropped")
	assert.Equal(t, 4, fc.Features[0].Properties["points"], "properties describe the full track")
	assert.Len(t, tracks[0].Points, 4)
}
