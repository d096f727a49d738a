package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/criticalsnake/tracks-backend-go/internal/models"
)

func TestParseObjectKeepsDocumentOrder(t *testing.T) {
	doc := `{
		"1700000060": {"b": {"timestamp": 1700000055, "latitude": 52500000, "longitude": 13400000}},
		"1700000000": {"a": {"timestamp": 1700000000, "latitude": -33868820, "longitude": 151209290}},
		"later":      {}
	}`

	dataset, err := Parse([]byte(doc))
	require.NoError(t, err)
	require.Len(t, dataset, 3)

	assert.Equal(t, int64(1700000060), dataset[0].Stamp)
	assert.Equal(t, models.RawPoint{Timestamp: 1700000055, Latitude: 52500000, Longitude: 13400000}, dataset[0].Points["b"])
	assert.Equal(t, int64(1700000000), dataset[1].Stamp)
	assert.Equal(t, int64(-33868820), dataset[1].Points["a"].Latitude)
	assert.Zero(t, dataset[2].Stamp, "non-numeric keys carry no stamp")
	assert.Empty(t, dataset[2].Points)
}

func TestParseArray(t *testing.T) {
	doc := `[
		{"a": {"timestamp": 1700000000, "latitude": 52500000, "longitude": 13400000}},
		{"stamp": 1700000030, "points": {"a": {"timestamp": 1700000030, "latitude": 52501000, "longitude": 13400000}}},
		{"points": {"timestamp": 1700000060, "latitude": 52502000, "longitude": 13400000}}
	]`

	dataset, err := Parse([]byte(doc))
	require.NoError(t, err)
	require.Len(t, dataset, 3)

	assert.Zero(t, dataset[0].Stamp)
	assert.Contains(t, dataset[0].Points, "a")
	assert.Equal(t, int64(1700000030), dataset[1].Stamp)
	assert.Equal(t, int64(52501000), dataset[1].Points["a"].Latitude)
	assert.Contains(t, dataset[2].Points, "points", "a participant named points is not a wrapper")
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"malformed", `{"a": `},
		{"scalar root", `42`},
		{"participants not an object", `{"1": [1, 2]}`},
		{"ping not an object", `{"1": {"a": 5}}`},
		{"missing longitude", `{"1": {"a": {"timestamp": 1, "latitude": 52500000}}}`},
		{"string coordinate", `[{"a": {"timestamp": 1, "latitude": "52500000", "longitude": 1}}]`},
		{"string stamp", `[{"stamp": "x", "points": {}}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			assert.ErrorIs(t, err, ErrInvalidDataset)
		})
	}
}

func TestLoadFileAndRead(t *testing.T) {
	doc := `{"1700000000": {"a": {"timestamp": 1700000000, "latitude": 52500000, "longitude": 13400000}}}`
	path := filepath.Join(t.TempDir(), "dataset.json")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	fromFile, err := LoadFile(path)
	require.NoError(t, err)
	fromReader, err := Read(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, fromFile, fromReader)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestParseTellsWrappedFromParticipantNamedPoints(t *testing.T) {
	dataset, err := Parse([]byte(`[
		{"points": {"timestamp": 1, "latitude": 52500000, "longitude": 13400000}},
		{"points": {"points": {"timestamp": 2, "latitude": 52500000, "longitude": 13400000}}},
		{"stamp": 3, "points": {}}
	]`))
	require.NoError(t, err)
	require.Len(t, dataset, 3)

	assert.Equal(t, int64(1), dataset[0].Points["points"].Timestamp, "bare participant map")
	assert.Equal(t, int64(2), dataset[1].Points["points"].Timestamp, "wrapper around a participant named points")
	assert.Equal(t, int64(3), dataset[2].Stamp)
	assert.Empty(t, dataset[2].Points)
}
