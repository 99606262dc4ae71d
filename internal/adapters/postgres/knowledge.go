package postgres

import (
    "context"
    "errors"

    "github.com/jackc/pgx/v5"

    "librefind/internal/domain"
)

// GetTarget loads a proprietary target by sanitized key.
func (db *DB) GetTarget(ctx context.Context, key string) (domain.ProprietaryTarget, error) {
    t := domain.ProprietaryTarget{ID: key}
    err := db.Pool.QueryRow(ctx, `
        SELECT package_name, name, icon, category, alternatives
        FROM proprietary_targets WHERE id = $1
    `, key).Scan(&t.PackageName, &t.Name, &t.Icon, &t.Category, &t.Alternatives)
    if errors.Is(err, pgx.ErrNoRows) {
        return domain.ProprietaryTarget{}, domain.ErrNotFound
    }
    if err != nil {
        return domain.ProprietaryTarget{}, err
    }
    return t, nil
}

func (db *DB) GetSolution(ctx context.Context, id string) (domain.Alternative, error) {
    a := domain.Alternative{ID: id}
    err := db.Pool.QueryRow(ctx, `
        SELECT name, license, repo_url, fdroid_id, icon_url, package_name, description, votes
        FROM foss_solutions WHERE id = $1
    `, id).Scan(&a.Name, &a.License, &a.RepoURL, &a.FdroidID, &a.IconURL, &a.PackageName, &a.Description, &a.Votes)
    if errors.Is(err, pgx.ErrNoRows) {
        return domain.Alternative{}, domain.ErrNotFound
    }
    if err != nil {
        return domain.Alternative{}, err
    }
    return a, nil
}

func (db *DB) PutTarget(ctx context.Context, t domain.ProprietaryTarget) error {
    if t.ID == "" {
        t.ID = domain.SanitizeKey(t.PackageName)
    }
    if t.Alternatives == nil {
        t.Alternatives = []string{}
    }
    _, err := db.Pool.Exec(ctx, `
        INSERT INTO proprietary_targets (id, package_name, name, icon, category, alternatives)
        VALUES ($1, $2, $3, $4, $5, $6)
        ON CONFLICT (id) DO UPDATE SET
            package_name = EXCLUDED.package_name, name = EXCLUDED.name, icon = EXCLUDED.icon,
            category = EXCLUDED.category, alternatives = EXCLUDED.alternatives
    `, t.ID, t.PackageName, t.Name, t.Icon, t.Category, t.Alternatives)
    return err
}

// PutSolution upserts a solution. Existing vote counts are kept.
func (db *DB) PutSolution(ctx context.Context, a domain.Alternative) error {
    if a.ID == "" {
        return errors.New("solution id is required")
    }
    if a.Votes == nil {
        a.Votes = map[string]int{}
    }
    _, err := db.Pool.Exec(ctx, `
        INSERT INTO foss_solutions (id, name, license, repo_url, fdroid_id, icon_url, package_name, description, votes)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        ON CONFLICT (id) DO UPDATE SET
            name = EXCLUDED.name, license = EXCLUDED.license, repo_url = EXCLUDED.repo_url,
            fdroid_id = EXCLUDED.fdroid_id, icon_url = EXCLUDED.icon_url,
            package_name = EXCLUDED.package_name, description = EXCLUDED.description
    `, a.ID, a.Name, a.License, a.RepoURL, a.FdroidID, a.IconURL, a.PackageName, a.Description, a.Votes)
    return err
}

func (db *DB) AddProposal(ctx context.Context, sub domain.Submission) (string, error) {
    var id string
    err := db.Pool.QueryRow(ctx, `
        INSERT INTO alternative_proposals (proprietary_package, alternative_id, user_id, status)
        VALUES ($1, $2, $3, $4)
        RETURNING id
    `, sub.ProprietaryPackage, sub.AlternativeID, sub.UserID, string(domain.SubmissionPending)).Scan(&id)
    return id, err
}

// ListProposalsByUser returns the user's proposals, newest first.
func (db *DB) ListProposalsByUser(ctx context.Context, userID string) ([]domain.Submission, error) {
    rows, err := db.Pool.Query(ctx, `
        SELECT id, proprietary_package, alternative_id, user_id, timestamp, status
        FROM alternative_proposals
        WHERE user_id = $1
        ORDER BY timestamp DESC
    `, userID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var out []domain.Submission
    for rows.Next() {
        var s domain.Submission
        var status string
        if err := rows.Scan(&s.ID, &s.ProprietaryPackage, &s.AlternativeID, &s.UserID, &s.Timestamp, &status); err != nil {
            return nil, err
        }
        s.Status = domain.ParseSubmissionStatus(status)
        out = append(out, s)
    }
    return out, rows.Err()
}

// IncrementVote locks the solution row, bumps votes[category] from the
// freshly read map and writes the whole map back before commit.
func (db *DB) IncrementVote(ctx context.Context, solutionID, category string) (count int, err error) {
    tx, err := db.Pool.BeginTx(ctx, pgx.TxOptions{})
    if err != nil { return 0, err }
    defer func() {
        if err != nil {
            _ = tx.Rollback(ctx)
            return
        }
        err = tx.Commit(ctx)
    }()

    var votes map[string]int
    err = tx.QueryRow(ctx, `SELECT votes FROM foss_solutions WHERE id = $1 FOR UPDATE`, solutionID).Scan(&votes)
    if errors.Is(err, pgx.ErrNoRows) {
        err = domain.ErrNotFound
        return 0, err
    }
    if err != nil { return 0, err }
    if votes == nil {
        votes = map[string]int{}
    }
    count = votes[category] + 1
    votes[category] = count
    if _, err = tx.Exec(ctx, `UPDATE foss_solutions SET votes = $2 WHERE id = $1`, solutionID, votes); err != nil {
        return 0, err
    }
    return count, nil
}
