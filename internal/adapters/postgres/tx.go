package postgres

import (
    "context"

    "github.com/jackc/pgx/v5"
)

// withTx runs fn in a transaction, committing when fn succeeds.
func (db *DB) withTx(ctx context.Context, fn func(tx pgx.Tx) error) (err error) {
    tx, err := db.Pool.BeginTx(ctx, pgx.TxOptions{})
    if err != nil { return err }
    defer func() {
        if err != nil {
            _ = tx.Rollback(ctx)
            return
        }
        err = tx.Commit(ctx)
    }()
    return fn(tx)
}
