package postgres

import (
	"context"
	"fmt"

	"github.com/NordCoder/Coloscope/internal/domain/result"
	"github.com/jackc/pgx/v5"
)

var _ result.Repo = (*SnapshotRepoImpl)(nil)

// SnapshotRepoImpl persists one row per run in snapshots and the full
// result set in snapshot_results, atomically.
type SnapshotRepoImpl struct{ db *DB }

func NewSnapshotRepo(db *DB) *SnapshotRepoImpl { return &SnapshotRepoImpl{db: db} }

const (
	qSnapshotInsert = `
INSERT INTO snapshots (taken_at, threshold_ms, colo_count, total_count)
VALUES ($1, $2, $3, $4)
RETURNING id;
`
	qResultInsert = `
INSERT INTO snapshot_results
  (snapshot_id, name, category, domain, ip, latency_ms, status, aws_region, country, region, city)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
`
)

func (r *SnapshotRepoImpl) SaveSnapshot(ctx context.Context, s *result.Snapshot) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := tx.QueryRow(ctx, qSnapshotInsert,
		s.TakenAt, s.Threshold, s.Colo, s.Total,
	).Scan(&s.ID); err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}

	batch := &pgx.Batch{}
	for _, row := range s.Results {
		batch.Queue(qResultInsert,
			s.ID, row.Name, row.Category, row.Domain, row.IP,
			row.LatencyMs, string(row.Status), row.AWSRegion,
			row.Country, row.Region, row.City,
		)
	}
	br := tx.SendBatch(ctx, batch)
	for range s.Results {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return fmt.Errorf("insert snapshot result: %w", err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("close batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
