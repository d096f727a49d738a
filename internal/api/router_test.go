package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/criticalsnake/tracks-backend-go/internal/auth"
	"github.com/criticalsnake/tracks-backend-go/internal/config"
	"github.com/criticalsnake/tracks-backend-go/internal/database"
	"github.com/criticalsnake/tracks-backend-go/internal/middleware"
	"github.com/criticalsnake/tracks-backend-go/internal/models"
	"github.com/criticalsnake/tracks-backend-go/internal/reconstruct"
	"github.com/criticalsnake/tracks-backend-go/internal/repository"
	"github.com/criticalsnake/tracks-backend-go/internal/service"
)

const secret = "s3cret"

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func setup(t *testing.T, store service.SnapshotStore, rateLimit int) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	opts := reconstruct.Options{TrackRestrictions: models.TrackRestrictions{MaxGapDuration: 600, MaxGapDistance: 5000, MinDataPoints: 2}}
	svc := service.NewTrackService(store, opts)
	return SetupRouter(&config.Config{JWTSecret: secret}, svc, middleware.NewRateLimiter(rateLimit, time.Minute))
}

func archive(t *testing.T) *repository.SnapshotRepository {
	t.Helper()
	db, err := database.Open(database.Config{Path: filepath.Join(t.TempDir(), "pings.db")})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return repository.NewSnapshotRepository(db)
}

func do(r *gin.Engine, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, data any) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	if data != nil {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}

// rideJSON is an archive-form dataset of one rider heading north.
func rideJSON(n int) string {
	var b bytes.Buffer
	b.WriteString("{")
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteString(",")
		}
		ts := 1700000000 + i*30
		fmt.Fprintf(&b, `"%d": {"a": {"timestamp": %d, "latitude": %d, "longitude": 13400000}}`, ts, ts, 52500000+i*1000)
	}
	b.WriteString("}")
	return b.String()
}

func TestHealth(t *testing.T) {
	r := setup(t, nil, 100)
	w := do(r, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestReconstructEndpoint(t *testing.T) {
	r := setup(t, nil, 100)

	w := do(r, http.MethodPost, "/api/v1/tracks/reconstruct", rideJSON(4), "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var rec service.Reconstruction
	env := decode(t, w, &rec)
	assert.Equal(t, 0, env.Code)
	assert.NotEmpty(t, rec.RunID)
	require.Len(t, rec.Tracks, 1)
	assert.Len(t, rec.Tracks[0].Points, 4)
	require.NotNil(t, rec.Tracks[0].Points[0].Vector)
	assert.Nil(t, rec.Tracks[0].Points[3].Vector)
	assert.Equal(t, 4, rec.Diagnostics.PointsAccepted)
	assert.Equal(t, 1, rec.Summary.Tracks)
	require.NotNil(t, rec.TimeRange)
	assert.Equal(t, int64(1700000090), rec.TimeRange.Max.Unix())
	require.NotNil(t, rec.Bounds)
}

func TestReconstructEndpointErrors(t *testing.T) {
	r := setup(t, nil, 100)

	w := do(r, http.MethodPost, "/api/v1/tracks/reconstruct", `{"a": `, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	unordered := `[{"stamp": 200, "points": {}}, {"stamp": 100, "points": {}}]`
	w = do(r, http.MethodPost, "/api/v1/tracks/reconstruct", unordered, "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestArchiveEndpointsWithoutArchive(t *testing.T) {
	r := setup(t, nil, 100)

	w := do(r, http.MethodGet, "/api/v1/tracks", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	w = do(r, http.MethodGet, "/api/v1/snapshots/count", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestIngestAndReconstructStored(t *testing.T) {
	r := setup(t, archive(t), 100)
	token, err := auth.IssueToken(secret, "station-7", time.Hour)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		ts := 1700000000 + i*30
		body := fmt.Sprintf(`{"stamp": %d, "points": {"a": {"timestamp": %d, "latitude": %d, "longitude": 13400000}}}`, ts, ts, 52500000+i*1000)
		w := do(r, http.MethodPost, "/api/v1/snapshots", body, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	t.Run("ingestion requires a token", func(t *testing.T) {
		w := do(r, http.MethodPost, "/api/v1/snapshots", `{"stamp": 1, "points": {}}`, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("empty snapshots are refused", func(t *testing.T) {
		w := do(r, http.MethodPost, "/api/v1/snapshots", `{"stamp": 1, "points": {}}`, token)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("count", func(t *testing.T) {
		w := do(r, http.MethodGet, "/api/v1/snapshots/count", "", "")
		require.Equal(t, http.StatusOK, w.Code)
		var stats service.ArchiveStats
		decode(t, w, &stats)
		assert.Equal(t, service.ArchiveStats{Snapshots: 3, Pings: 3}, stats)
	})

	t.Run("tracks in range", func(t *testing.T) {
		w := do(r, http.MethodGet, "/api/v1/tracks?from=1700000000&to=1700000060", "", "")
		require.Equal(t, http.StatusOK, w.Code)
		var rec service.Reconstruction
		decode(t, w, &rec)
		require.Len(t, rec.Tracks, 1)
		assert.Len(t, rec.Tracks[0].Points, 3)

		w = do(r, http.MethodGet, "/api/v1/tracks?from=1700000030", "", "")
		decode(t, w, &rec)
		require.Len(t, rec.Tracks, 1)
		assert.Len(t, rec.Tracks[0].Points, 2)
	})

	t.Run("invalid range", func(t *testing.T) {
		w := do(r, http.MethodGet, "/api/v1/tracks?from=20&to=10", "", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		w = do(r, http.MethodGet, "/api/v1/tracks?from=abc", "", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("geojson", func(t *testing.T) {
		w := do(r, http.MethodGet, "/api/v1/tracks/geojson", "", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, w.Header().Get("X-Run-Id"))

		var fc struct {
			Type     string `json:"type"`
			Features []struct {
				Geometry struct {
					Type        string       `json:"type"`
					Coordinates [][2]float64 `json:"coordinates"`
				} `json:"geometry"`
			} `json:"features"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fc))
		assert.Equal(t, "FeatureCollection", fc.Type)
		require.Len(t, fc.Features, 1)
		assert.Equal(t, "LineString", fc.Features[0].Geometry.Type)
		assert.Equal(t, [2]float64{13.4, 52.5}, fc.Features[0].Geometry.Coordinates[0])
		assert.Len(t, fc.Features[0].Geometry.Coordinates, 3)

		w = do(r, http.MethodGet, "/api/v1/tracks/geojson?simplify=50", "", "")
		require.Equal(t, http.StatusOK, w.Code)
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fc))
		assert.Len(t, fc.Features[0].Geometry.Coordinates, 2, "collinear points collapse")

		w = do(r, http.MethodGet, "/api/v1/tracks/geojson?simplify=-1", "", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRateLimit(t *testing.T) {
	r := setup(t, nil, 1)

	assert.Equal(t, http.StatusOK, do(r, http.MethodPost, "/api/v1/tracks/reconstruct", "[]", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, do(r, http.MethodPost, "/api/v1/tracks/reconstruct", "[]", "").Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/health", "", "").Code, "health is not limited")
}
