package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/criticalsnake/tracks-backend-go/internal/database"
	"github.com/criticalsnake/tracks-backend-go/internal/models"
)

// SnapshotRepository stores raw pings grouped by snapshot
type SnapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository creates a new snapshot repository
func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// InsertSnapshot stores every ping of a snapshot under the snapshot's time.
// A participant reported twice for the same snapshot time keeps the latest
// write. It returns the snapshot time used.
func (r *SnapshotRepository) InsertSnapshot(ctx context.Context, snapshot models.Snapshot) (int64, error) {
	snapshotTime := snapshot.Time()
	if snapshotTime == 0 {
		return 0, fmt.Errorf("snapshot has neither stamp nor points")
	}

	err := database.Transaction(r.db, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO pings (snapshot_time, participant, timestamp, latitude, longitude)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT (snapshot_time, participant) DO UPDATE SET
				timestamp = excluded.timestamp,
				latitude = excluded.latitude,
				longitude = excluded.longitude`)
		if err != nil {
			return fmt.Errorf("failed to prepare insert: %w", err)
		}
		defer stmt.Close()

		for participant, p := range snapshot.Points {
			if _, err := stmt.ExecContext(ctx, snapshotTime, participant, p.Timestamp, p.Latitude, p.Longitude); err != nil {
				return fmt.Errorf("failed to insert ping of %s: %w", participant, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return snapshotTime, nil
}

// LoadDataset returns the stored snapshots with a time within [from, to] in
// chronological order. A zero bound is unbounded.
func (r *SnapshotRepository) LoadDataset(ctx context.Context, filter models.TrackFilter) (models.Dataset, error) {
	query := `SELECT snapshot_time, participant, timestamp, latitude, longitude FROM pings`

	var conditions []string
	var args []interface{}
	if filter.From > 0 {
		conditions = append(conditions, "snapshot_time >= ?")
		args = append(args, filter.From)
	}
	if filter.To > 0 {
		conditions = append(conditions, "snapshot_time <= ?")
		args = append(args, filter.To)
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY snapshot_time, participant"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query pings: %w", err)
	}
	defer rows.Close()

	var dataset models.Dataset
	for rows.Next() {
		var (
			snapshotTime int64
			participant  string
			p            models.RawPoint
		)
		if err := rows.Scan(&snapshotTime, &participant, &p.Timestamp, &p.Latitude, &p.Longitude); err != nil {
			return nil, fmt.Errorf("failed to scan ping: %w", err)
		}

		if n := len(dataset); n == 0 || dataset[n-1].Stamp != snapshotTime {
			dataset = append(dataset, models.Snapshot{
				Stamp:  snapshotTime,
				Points: make(map[string]models.RawPoint),
			})
		}
		dataset[len(dataset)-1].Points[participant] = p
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate pings: %w", err)
	}

	log.Printf("[SnapshotRepository] Loaded %d snapshots", len(dataset))
	return dataset, nil
}

// CountSnapshots returns the number of distinct snapshots and pings stored.
func (r *SnapshotRepository) CountSnapshots(ctx context.Context) (snapshots, pings int64, err error) {
	err = r.db.QueryRowContext(ctx, "SELECT COUNT(DISTINCT snapshot_time), COUNT(*) FROM pings").Scan(&snapshots, &pings)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count snapshots: %w", err)
	}
	return snapshots, pings, nil
}
