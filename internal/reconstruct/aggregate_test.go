package reconstruct

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/criticalsnake/tracks-backend-go/internal/models"
)

func TestAggregateRange(t *testing.T) {
	a := models.Track{Points: []models.Point{pt(100, 1, 1), pt(200, 1, 2)}}
	b := models.Track{Points: []models.Point{pt(50, 1, 1), pt(150, 1, 2)}}
	c := models.Track{Points: []models.Point{pt(120, 1, 1), pt(400, 1, 2)}}

	tr, ok := AggregateRange([]models.Track{a, b, c})

	assert.True(t, ok)
	assert.Equal(t, pt(50, 0, 0).Stamp, tr.Min)
	assert.Equal(t, pt(400, 0, 0).Stamp, tr.Max)
}

func TestAggregateRangeUndefined(t *testing.T) {
	_, ok := AggregateRange(nil)
	assert.False(t, ok)

	_, ok = AggregateRange([]models.Track{{Index: 3}})
	assert.False(t, ok)
}
