package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/criticalsnake/tracks-backend-go/internal/export"
	"github.com/criticalsnake/tracks-backend-go/internal/models"
	"github.com/criticalsnake/tracks-backend-go/internal/reconstruct"
	"github.com/criticalsnake/tracks-backend-go/internal/stats"
)

// ErrNoArchive is returned for archive operations when no store is configured.
var ErrNoArchive = errors.New("no snapshot archive configured")

// SnapshotStore is the raw ping archive.
type SnapshotStore interface {
	InsertSnapshot(ctx context.Context, snapshot models.Snapshot) (int64, error)
	LoadDataset(ctx context.Context, filter models.TrackFilter) (models.Dataset, error)
	CountSnapshots(ctx context.Context) (snapshots, pings int64, err error)
}

// Reconstruction is a reconstruction result tagged with run metadata.
type Reconstruction struct {
	RunID       string    `json:"runId"`
	GeneratedAt time.Time `json:"generatedAt"`
	models.Result
	Summary stats.Summary       `json:"summary"`
	Bounds  *export.CoordBounds `json:"bounds"`
}

// ArchiveStats describes the contents of the ping archive.
type ArchiveStats struct {
	Snapshots int64 `json:"snapshots"`
	Pings     int64 `json:"pings"`
}

// TrackService runs track reconstruction over submitted or archived datasets
type TrackService struct {
	store SnapshotStore
	opts  reconstruct.Options
}

// NewTrackService creates a new track service. store may be nil when only
// submitted datasets are reconstructed.
func NewTrackService(store SnapshotStore, opts reconstruct.Options) *TrackService {
	return &TrackService{
		store: store,
		opts:  opts,
	}
}

// Reconstruct runs the pipeline over a dataset.
func (s *TrackService) Reconstruct(dataset models.Dataset) (*Reconstruction, error) {
	start := time.Now()
	result, err := reconstruct.Run(dataset, s.opts)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct tracks: %w", err)
	}

	rec := &Reconstruction{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Result:      *result,
		Summary:     stats.Summarize(result.Tracks),
	}
	if b, ok := export.Bounds(result.Tracks); ok {
		rec.Bounds = &b
	}

	log.Printf("[TrackService] Run %s: %d snapshots -> %d tracks in %v",
		rec.RunID, len(dataset), len(result.Tracks), time.Since(start))
	return rec, nil
}

// ReconstructStored runs the pipeline over the archived snapshots within the
// filter's time range.
func (s *TrackService) ReconstructStored(ctx context.Context, filter models.TrackFilter) (*Reconstruction, error) {
	if s.store == nil {
		return nil, ErrNoArchive
	}
	dataset, err := s.store.LoadDataset(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}
	return s.Reconstruct(dataset)
}

// Ingest archives a snapshot and returns the time it was stored under.
func (s *TrackService) Ingest(ctx context.Context, snapshot models.Snapshot) (int64, error) {
	if s.store == nil {
		return 0, ErrNoArchive
	}
	if len(snapshot.Points) == 0 {
		return 0, fmt.Errorf("snapshot has no points")
	}
	stamp, err := s.store.InsertSnapshot(ctx, snapshot)
	if err != nil {
		return 0, fmt.Errorf("failed to store snapshot: %w", err)
	}
	return stamp, nil
}

// ArchiveStats returns the number of archived snapshots and pings.
func (s *TrackService) ArchiveStats(ctx context.Context) (*ArchiveStats, error) {
	if s.store == nil {
		return nil, ErrNoArchive
	}
	snapshots, pings, err := s.store.CountSnapshots(ctx)
	if err != nil {
		return nil, err
	}
	return &ArchiveStats{Snapshots: snapshots, Pings: pings}, nil
}
