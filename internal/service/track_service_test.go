package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/criticalsnake/tracks-backend-go/internal/models"
	"github.com/criticalsnake/tracks-backend-go/internal/reconstruct"
)

type memoryStore struct {
	dataset models.Dataset
	filter  models.TrackFilter
	err     error
}

func (m *memoryStore) InsertSnapshot(_ context.Context, snapshot models.Snapshot) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.dataset = append(m.dataset, snapshot)
	return snapshot.Time(), nil
}

func (m *memoryStore) LoadDataset(_ context.Context, filter models.TrackFilter) (models.Dataset, error) {
	m.filter = filter
	return m.dataset, m.err
}

func (m *memoryStore) CountSnapshots(context.Context) (int64, int64, error) {
	var pings int64
	for _, s := range m.dataset {
		pings += int64(len(s.Points))
	}
	return int64(len(m.dataset)), pings, m.err
}

var permissive = reconstruct.Options{
	TrackRestrictions: models.TrackRestrictions{MaxGapDuration: 600, MaxGapDistance: 5000},
}

func ride() models.Dataset {
	var dataset models.Dataset
	for i := int64(0); i < 5; i++ {
		dataset = append(dataset, models.Snapshot{Stamp: 1700000000 + i*30, Points: map[string]models.RawPoint{
			"a": {Timestamp: 1700000000 + i*30, Latitude: 52500000 + i*1000, Longitude: 13400000},
		}})
	}
	return dataset
}

func TestReconstruct(t *testing.T) {
	svc := NewTrackService(nil, permissive)

	rec, err := svc.Reconstruct(ride())
	require.NoError(t, err)

	_, err = uuid.Parse(rec.RunID)
	assert.NoError(t, err)
	require.Len(t, rec.Tracks, 1)
	assert.Equal(t, 1, rec.Summary.Tracks)
	assert.Equal(t, 5, rec.Summary.Points)
	require.NotNil(t, rec.Bounds)
	assert.InDelta(t, 52.5, rec.Bounds.MinLat, 1e-9)
	assert.InDelta(t, 52.504, rec.Bounds.MaxLat, 1e-9)
	require.NotNil(t, rec.TimeRange)

	other, err := svc.Reconstruct(ride())
	require.NoError(t, err)
	assert.NotEqual(t, rec.RunID, other.RunID)
}

func TestReconstructNothingSurvives(t *testing.T) {
	rec, err := NewTrackService(nil, reconstruct.DefaultOptions()).Reconstruct(ride())
	require.NoError(t, err)
	assert.Empty(t, rec.Tracks)
	assert.Nil(t, rec.Bounds)
	assert.Nil(t, rec.TimeRange)
}

func TestReconstructRejectsUnorderedDataset(t *testing.T) {
	dataset := ride()
	dataset[0], dataset[4] = dataset[4], dataset[0]

	_, err := NewTrackService(nil, permissive).Reconstruct(dataset)
	assert.ErrorIs(t, err, reconstruct.ErrUnorderedDataset)
}

func TestReconstructStored(t *testing.T) {
	store := &memoryStore{}
	svc := NewTrackService(store, permissive)
	ctx := context.Background()

	for _, snapshot := range ride() {
		_, err := svc.Ingest(ctx, snapshot)
		require.NoError(t, err)
	}

	rec, err := svc.ReconstructStored(ctx, models.TrackFilter{From: 1})
	require.NoError(t, err)
	assert.Len(t, rec.Tracks, 1)
	assert.Equal(t, int64(1), store.filter.From)

	archive, err := svc.ArchiveStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, &ArchiveStats{Snapshots: 5, Pings: 5}, archive)
}

func TestArchiveErrors(t *testing.T) {
	ctx := context.Background()

	noArchive := NewTrackService(nil, permissive)
	_, err := noArchive.ReconstructStored(ctx, models.TrackFilter{})
	assert.ErrorIs(t, err, ErrNoArchive)
	_, err = noArchive.Ingest(ctx, ride()[0])
	assert.ErrorIs(t, err, ErrNoArchive)
	_, err = noArchive.ArchiveStats(ctx)
	assert.ErrorIs(t, err, ErrNoArchive)

	boom := errors.New("disk full")
	failing := NewTrackService(&memoryStore{err: boom}, permissive)
	_, err = failing.Ingest(ctx, ride()[0])
	assert.ErrorIs(t, err, boom)
	_, err = failing.ReconstructStored(ctx, models.TrackFilter{})
	assert.ErrorIs(t, err, boom)

	_, err = failing.Ingest(ctx, models.Snapshot{})
	assert.Error(t, err)
}
