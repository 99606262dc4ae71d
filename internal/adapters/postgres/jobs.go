package postgres

import (
    "context"
    "errors"
    "time"

    "github.com/jackc/pgx/v5"

    "librefind/internal/ports"
)

// ClaimNext selects the next queued job using SKIP LOCKED and marks it and
// its scan running.
func (db *DB) ClaimNext(ctx context.Context) (job ports.ScanJob, found bool, err error) {
    err = db.withTx(ctx, func(tx pgx.Tx) error {
        err := tx.QueryRow(ctx, `
            SELECT id, scan_id FROM scan_jobs
            WHERE status = 'queued'
            ORDER BY queued_at
            FOR UPDATE SKIP LOCKED
            LIMIT 1
        `).Scan(&job.ID, &job.ScanID)
        if errors.Is(err, pgx.ErrNoRows) {
            return nil
        }
        if err != nil { return err }
        found = true
        return markRunning(ctx, tx, job.ID, job.ScanID)
    })
    if err != nil {
        return ports.ScanJob{}, false, err
    }
    return job, found, nil
}

func markRunning(ctx context.Context, tx pgx.Tx, jobID, scanID string) error {
    if _, err := tx.Exec(ctx, `
        UPDATE scan_jobs SET status = 'running', started_at = now(), attempts = attempts + 1 WHERE id = $1
    `, jobID); err != nil {
        return err
    }
    _, err := tx.Exec(ctx, `
        UPDATE scans SET status = 'running', started_at = COALESCE(started_at, now()) WHERE id = $1
    `, scanID)
    return err
}

func (db *DB) MarkRunning(ctx context.Context, jobID string) error {
    _, err := db.Pool.Exec(ctx, `UPDATE scan_jobs SET status = 'running', started_at = COALESCE(started_at, now()) WHERE id = $1`, jobID)
    return err
}

func (db *DB) UpdateScanProgress(ctx context.Context, scanID string, progress float64) error {
    if progress < 0 { progress = 0 }
    if progress > 1 { progress = 1 }
    _, err := db.Pool.Exec(ctx, `UPDATE scans SET progress = GREATEST(progress, $2) WHERE id = $1`, scanID, progress)
    return err
}

// finish moves a job and its scan to a terminal status together.
func (db *DB) finish(ctx context.Context, jobID, status string, reason *string) error {
    ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
    defer cancel()
    return db.withTx(ctx, func(tx pgx.Tx) error {
        var scanID string
        if err := tx.QueryRow(ctx, `
            UPDATE scan_jobs SET status = $2, finished_at = now(), last_error = $3 WHERE id = $1
            RETURNING scan_id
        `, jobID, status, reason).Scan(&scanID); err != nil {
            return err
        }
        progress := `progress`
        if status == "completed" {
            progress = `1`
        }
        _, err := tx.Exec(ctx, `UPDATE scans SET status = $2, progress = `+progress+`, finished_at = now() WHERE id = $1`, scanID, status)
        return err
    })
}

func (db *DB) MarkCompleted(ctx context.Context, jobID string) error {
    return db.finish(ctx, jobID, "completed", nil)
}

func (db *DB) MarkFailed(ctx context.Context, jobID string, reason string) error {
    return db.finish(ctx, jobID, "failed", &reason)
}

// StartJobForScan claims the queued job of one specific scan and returns its id.
func (db *DB) StartJobForScan(ctx context.Context, scanID string) (jobID string, err error) {
    err = db.withTx(ctx, func(tx pgx.Tx) error {
        if err := tx.QueryRow(ctx, `
            SELECT id FROM scan_jobs
            WHERE scan_id = $1 AND status = 'queued'
            FOR UPDATE SKIP LOCKED
        `, scanID).Scan(&jobID); err != nil {
            return err
        }
        return markRunning(ctx, tx, jobID, scanID)
    })
    return jobID, err
}
