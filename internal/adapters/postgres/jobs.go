package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"greenmile/internal/ports"
)

// JobRepository

func (db *DB) Enqueue(ctx context.Context, merchantID string) (string, error) {
	var id string
	err := db.Pool.QueryRow(ctx, `
		INSERT INTO sync_jobs (merchant_id) VALUES ($1) RETURNING id
	`, merchantID).Scan(&id)
	return id, err
}

// ClaimNext selects the next queued job using SKIP LOCKED and marks it
// running, so concurrent workers never pick the same job twice.
func (db *DB) ClaimNext(ctx context.Context) (job ports.SyncJob, found bool, err error) {
	tx, err := db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return job, false, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			_ = tx.Commit(ctx)
		}
	}()

	err = tx.QueryRow(ctx, `
		SELECT id, merchant_id FROM sync_jobs
		WHERE status = 'queued'
		ORDER BY queued_at
		FOR UPDATE SKIP LOCKED
		LIMIT 1
	`).Scan(&job.ID, &job.MerchantID)
	if errors.Is(err, pgx.ErrNoRows) {
		return job, false, nil
	}
	if err != nil {
		return job, false, err
	}

	if _, err = tx.Exec(ctx, `
		UPDATE sync_jobs SET status='running', started_at=now(), attempts=attempts+1 WHERE id=$1
	`, job.ID); err != nil {
		return job, false, err
	}
	return job, true, nil
}

func (db *DB) MarkCompleted(ctx context.Context, jobID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	_, err := db.Pool.Exec(ctx, `
		UPDATE sync_jobs SET status='completed', finished_at=now() WHERE id=$1
	`, jobID)
	return err
}

func (db *DB) MarkFailed(ctx context.Context, jobID string, reason string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	_, err := db.Pool.Exec(ctx, `
		UPDATE sync_jobs SET status='failed', finished_at=now(), last_error=$2 WHERE id=$1
	`, jobID, reason)
	return err
}
