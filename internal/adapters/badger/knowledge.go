package badger

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "sort"
    "time"

    "github.com/dgraph-io/badger/v4"
    "github.com/google/uuid"

    "librefind/internal/domain"
    "librefind/internal/metrics"
)

const (
    prefixTarget       = "proprietary_targets/"
    prefixSolution     = "foss_solutions/"
    prefixProposal     = "alternative_proposals/"
    prefixUserProposal = "alternative_proposals_by_user/"

    maxVoteAttempts = 64
)

func targetKey(key string) []byte  { return []byte(prefixTarget + key) }
func solutionKey(id string) []byte { return []byte(prefixSolution + id) }

func getJSON(txn *badger.Txn, key []byte, out any) error {
    item, err := txn.Get(key)
    if errors.Is(err, badger.ErrKeyNotFound) {
        return domain.ErrNotFound
    }
    if err != nil {
        return err
    }
    return item.Value(func(val []byte) error { return json.Unmarshal(val, out) })
}

func setJSON(txn *badger.Txn, key []byte, v any) error {
    b, err := json.Marshal(v)
    if err != nil {
        return err
    }
    return txn.Set(key, b)
}

// GetTarget loads a proprietary target by sanitized key.
func (d *DB) GetTarget(ctx context.Context, key string) (domain.ProprietaryTarget, error) {
    var t domain.ProprietaryTarget
    if err := ctx.Err(); err != nil { return t, err }
    err := d.db.View(func(txn *badger.Txn) error { return getJSON(txn, targetKey(key), &t) })
    if err != nil {
        return domain.ProprietaryTarget{}, err
    }
    t.ID = key
    return t, nil
}

func (d *DB) GetSolution(ctx context.Context, id string) (domain.Alternative, error) {
    var a domain.Alternative
    if err := ctx.Err(); err != nil { return a, err }
    err := d.db.View(func(txn *badger.Txn) error { return getJSON(txn, solutionKey(id), &a) })
    if err != nil {
        return domain.Alternative{}, err
    }
    a.ID = id
    return a, nil
}

func (d *DB) PutTarget(ctx context.Context, t domain.ProprietaryTarget) error {
    if err := ctx.Err(); err != nil { return err }
    if t.ID == "" {
        t.ID = domain.SanitizeKey(t.PackageName)
    }
    return d.db.Update(func(txn *badger.Txn) error { return setJSON(txn, targetKey(t.ID), t) })
}

func (d *DB) PutSolution(ctx context.Context, a domain.Alternative) error {
    if err := ctx.Err(); err != nil { return err }
    if a.ID == "" {
        return errors.New("solution id is required")
    }
    return d.db.Update(func(txn *badger.Txn) error { return setJSON(txn, solutionKey(a.ID), a) })
}

// AddProposal appends a proposal and its per-user index entry in one txn.
func (d *DB) AddProposal(ctx context.Context, sub domain.Submission) (string, error) {
    if err := ctx.Err(); err != nil { return "", err }
    sub.ID = uuid.NewString()
    if sub.Timestamp.IsZero() {
        sub.Timestamp = time.Now().UTC()
    }
    err := d.db.Update(func(txn *badger.Txn) error {
        if err := setJSON(txn, []byte(prefixProposal+sub.ID), sub); err != nil {
            return err
        }
        return txn.Set([]byte(prefixUserProposal+sub.UserID+"/"+sub.ID), nil)
    })
    if err != nil {
        return "", err
    }
    return sub.ID, nil
}

// ListProposalsByUser returns the user's proposals, newest first.
func (d *DB) ListProposalsByUser(ctx context.Context, userID string) ([]domain.Submission, error) {
    if err := ctx.Err(); err != nil { return nil, err }
    var out []domain.Submission
    err := d.db.View(func(txn *badger.Txn) error {
        prefix := []byte(prefixUserProposal + userID + "/")
        opts := badger.DefaultIteratorOptions
        opts.PrefetchValues = false
        opts.Prefix = prefix
        it := txn.NewIterator(opts)
        defer it.Close()
        for it.Rewind(); it.ValidForPrefix(prefix); it.Next() {
            id := string(it.Item().Key()[len(prefix):])
            var sub domain.Submission
            if err := getJSON(txn, []byte(prefixProposal+id), &sub); err != nil {
                if errors.Is(err, domain.ErrNotFound) {
                    continue
                }
                return err
            }
            sub.Status = domain.ParseSubmissionStatus(string(sub.Status))
            out = append(out, sub)
        }
        return nil
    })
    if err != nil {
        return nil, err
    }
    sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
    return out, nil
}

// IncrementVote reads the solution's vote map, bumps one category and writes
// the whole map back. Badger aborts the commit with ErrConflict when another
// transaction wrote the document after our read; the loop then retries on a
// fresh snapshot, so no increment is lost.
func (d *DB) IncrementVote(ctx context.Context, solutionID, category string) (int, error) {
    for attempt := 0; attempt < maxVoteAttempts; attempt++ {
        if err := ctx.Err(); err != nil {
            return 0, err
        }
        var count int
        err := d.db.Update(func(txn *badger.Txn) error {
            var a domain.Alternative
            if err := getJSON(txn, solutionKey(solutionID), &a); err != nil {
                return err
            }
            if a.Votes == nil {
                a.Votes = map[string]int{}
            }
            count = a.Votes[category] + 1
            a.Votes[category] = count
            return setJSON(txn, solutionKey(solutionID), a)
        })
        if errors.Is(err, badger.ErrConflict) {
            metrics.VoteConflicts.Inc()
            continue
        }
        if err != nil {
            return 0, err
        }
        return count, nil
    }
    return 0, fmt.Errorf("vote on %s: gave up after %d conflicting attempts", solutionID, maxVoteAttempts)
}
