package postgres

import (
    "context"
    "errors"

    "github.com/google/uuid"
    "github.com/jackc/pgx/v5"

    "librefind/internal/domain"
)

// Create stores a scan with its submitted inventory and queues a job for it.
func (db *DB) Create(ctx context.Context, deviceID *string, pkgs []domain.InstalledPackage) (scanID string, err error) {
    err = db.withTx(ctx, func(tx pgx.Tx) error {
        if err := tx.QueryRow(ctx, `
            INSERT INTO scans (device_id, status, progress)
            VALUES ($1, 'queued', 0)
            RETURNING id
        `, deviceID).Scan(&scanID); err != nil {
            return err
        }
        rows := make([][]any, 0, len(pkgs))
        for i, p := range pkgs {
            rows = append(rows, []any{scanID, i, p.PackageName, p.Label, p.Installer, p.Fingerprint, p.System, p.UpdatedSystem})
        }
        if _, err := tx.CopyFrom(ctx, pgx.Identifier{"scan_packages"},
            []string{"scan_id", "position", "package_name", "label", "installer", "fingerprint", "system", "updated_system"},
            pgx.CopyFromRows(rows)); err != nil {
            return err
        }
        _, err := tx.Exec(ctx, `INSERT INTO scan_jobs (scan_id) VALUES ($1)`, scanID)
        return err
    })
    return scanID, err
}

// validScanID reports whether id is shaped like a scan id. Lookups of any
// other id answer domain.ErrNotFound without a query.
func validScanID(id string) bool {
    _, err := uuid.Parse(id)
    return err == nil
}

func (db *DB) Status(ctx context.Context, scanID string) (string, float64, error) {
    if !validScanID(scanID) {
        return "", 0, domain.ErrNotFound
    }
    var status string
    var progress float64
    err := db.Pool.QueryRow(ctx, `SELECT status, progress FROM scans WHERE id = $1`, scanID).Scan(&status, &progress)
    if errors.Is(err, pgx.ErrNoRows) {
        return "", 0, domain.ErrNotFound
    }
    return status, progress, err
}

// Packages returns the raw inventory submitted with a scan, in submission order.
func (db *DB) Packages(ctx context.Context, scanID string) ([]domain.InstalledPackage, error) {
    rows, err := db.Pool.Query(ctx, `
        SELECT package_name, label, installer, fingerprint, system, updated_system
        FROM scan_packages WHERE scan_id = $1 ORDER BY position
    `, scanID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var out []domain.InstalledPackage
    for rows.Next() {
        var p domain.InstalledPackage
        if err := rows.Scan(&p.PackageName, &p.Label, &p.Installer, &p.Fingerprint, &p.System, &p.UpdatedSystem); err != nil {
            return nil, err
        }
        out = append(out, p)
    }
    return out, rows.Err()
}

// SaveResult replaces the scan's classified list and records its score.
func (db *DB) SaveResult(ctx context.Context, scanID string, apps []domain.ClassifiedApp, score domain.SovereigntyScore) error {
    return db.withTx(ctx, func(tx pgx.Tx) error {
        if _, err := tx.Exec(ctx, `DELETE FROM scan_results WHERE scan_id = $1`, scanID); err != nil {
            return err
        }
        rows := make([][]any, 0, len(apps))
        for i, a := range apps {
            rows = append(rows, []any{scanID, i, a.PackageName, a.Label, string(a.Status), a.Installer, a.KnownAlternatives})
        }
        if _, err := tx.CopyFrom(ctx, pgx.Identifier{"scan_results"},
            []string{"scan_id", "position", "package_name", "label", "status", "installer", "known_alternatives"},
            pgx.CopyFromRows(rows)); err != nil {
            return err
        }
        _, err := tx.Exec(ctx, `
            UPDATE scans SET total_apps = $2, foss_count = $3, proprietary_count = $4,
                unknown_count = $5, percentage = $6, level = $7
            WHERE id = $1
        `, scanID, score.TotalApps, score.FossCount, score.ProprietaryCount, score.UnknownCount, score.Percentage, string(score.Level))
        return err
    })
}

const scanColumns = `
    id, device_id, status, progress, created_at, started_at, finished_at,
    total_apps, foss_count, proprietary_count, unknown_count, percentage, level`

func scanRow(row pgx.Row) (domain.Scan, error) {
    var s domain.Scan
    var total, foss, prop, unkn *int
    var pct *float64
    var level *string
    if err := row.Scan(&s.ID, &s.DeviceID, &s.Status, &s.Progress, &s.CreatedAt, &s.StartedAt, &s.FinishedAt,
        &total, &foss, &prop, &unkn, &pct, &level); err != nil {
        return s, err
    }
    if total != nil && level != nil {
        s.Score = &domain.SovereigntyScore{
            TotalApps:        *total,
            FossCount:        deref(foss),
            ProprietaryCount: deref(prop),
            UnknownCount:     deref(unkn),
            Level:            domain.SovereigntyLevel(*level),
        }
        if pct != nil { s.Score.Percentage = *pct }
    }
    return s, nil
}

func deref(p *int) int {
    if p == nil { return 0 }
    return *p
}

// Get returns a scan with its classified list once it has been scored.
func (db *DB) Get(ctx context.Context, scanID string) (domain.Scan, error) {
    if !validScanID(scanID) {
        return domain.Scan{}, domain.ErrNotFound
    }
    s, err := scanRow(db.Pool.QueryRow(ctx, `SELECT `+scanColumns+` FROM scans WHERE id = $1`, scanID))
    if errors.Is(err, pgx.ErrNoRows) {
        return domain.Scan{}, domain.ErrNotFound
    }
    if err != nil {
        return domain.Scan{}, err
    }
    if s.Score == nil {
        return s, nil
    }
    s.Apps, err = db.results(ctx, scanID)
    return s, err
}

func (db *DB) results(ctx context.Context, scanID string) ([]domain.ClassifiedApp, error) {
    rows, err := db.Pool.Query(ctx, `
        SELECT package_name, label, status, installer, known_alternatives
        FROM scan_results WHERE scan_id = $1 ORDER BY position
    `, scanID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]domain.ClassifiedApp, 0)
    for rows.Next() {
        var a domain.ClassifiedApp
        var status string
        if err := rows.Scan(&a.PackageName, &a.Label, &status, &a.Installer, &a.KnownAlternatives); err != nil {
            return nil, err
        }
        a.Status = domain.Status(status)
        out = append(out, a)
    }
    return out, rows.Err()
}

// GetLatestByDevice returns the most recently completed scan for a device.
func (db *DB) GetLatestByDevice(ctx context.Context, deviceID string) (bool, domain.Scan, error) {
    s, err := scanRow(db.Pool.QueryRow(ctx, `
        SELECT `+scanColumns+` FROM scans
        WHERE device_id = $1 AND status = 'completed'
        ORDER BY finished_at DESC NULLS LAST
        LIMIT 1
    `, deviceID))
    if errors.Is(err, pgx.ErrNoRows) {
        return false, domain.Scan{}, nil
    }
    if err != nil {
        return false, domain.Scan{}, err
    }
    if s.Apps, err = db.results(ctx, s.ID); err != nil {
        return false, domain.Scan{}, err
    }
    return true, s, nil
}
