// Package knowledge is the fail-soft facade over the knowledge graph store.
//
// Every operation degrades to a safe default (false, empty list) instead of
// returning an error. The store itself reports absences as domain.ErrNotFound;
// the client logs those at debug and everything else at warn, but callers
// see the same default either way.
package knowledge

import (
    "context"
    "errors"
    "sort"
    "time"

    "github.com/go-playground/validator/v10"
    "go.uber.org/zap"
    "golang.org/x/sync/errgroup"

    "librefind/internal/domain"
    "librefind/internal/metrics"
    "librefind/internal/ports"
)

// fetchLimit bounds concurrent solution lookups per target.
const fetchLimit = 8

type Client struct {
    store    ports.KnowledgeStore
    log      *zap.Logger
    timeout  time.Duration
    validate *validator.Validate
}

// New returns a client. timeout bounds every store call; zero disables it.
func New(store ports.KnowledgeStore, log *zap.Logger, timeout time.Duration) *Client {
    return &Client{store: store, log: log.Named("knowledge"), timeout: timeout, validate: validator.New()}
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
    if c.timeout <= 0 {
        return context.WithCancel(ctx)
    }
    return context.WithTimeout(ctx, c.timeout)
}

// observe records the outcome of a store call and logs failures.
func (c *Client) observe(op string, err error, fields ...zap.Field) {
    switch {
    case err == nil:
        metrics.StoreCalls.WithLabelValues(op, metrics.OutcomeOK).Inc()
    case errors.Is(err, domain.ErrNotFound):
        metrics.StoreCalls.WithLabelValues(op, metrics.OutcomeNotFound).Inc()
        c.log.Debug(op+": not found", fields...)
    default:
        metrics.StoreCalls.WithLabelValues(op, metrics.OutcomeError).Inc()
        c.log.Warn(op+" failed", append(fields, zap.Error(err))...)
    }
}

// IsProprietaryTarget reports whether the package has a proprietary target
// document. Any failure, including absence, yields false.
func (c *Client) IsProprietaryTarget(ctx context.Context, packageName string) bool {
    ctx, cancel := c.withTimeout(ctx)
    defer cancel()
    _, err := c.store.GetTarget(ctx, domain.SanitizeKey(packageName))
    c.observe("get_target", err, zap.String("package", packageName))
    return err == nil
}

// FetchAlternatives resolves every alternative linked from the package's
// target concurrently and returns those that resolved. Order follows the
// target's list, but callers needing a ranking must sort.
func (c *Client) FetchAlternatives(ctx context.Context, packageName string) []domain.Alternative {
    tctx, cancel := c.withTimeout(ctx)
    target, err := c.store.GetTarget(tctx, domain.SanitizeKey(packageName))
    cancel()
    c.observe("get_target", err, zap.String("package", packageName))
    if err != nil || len(target.Alternatives) == 0 {
        return []domain.Alternative{}
    }

    slots := make([]*domain.Alternative, len(target.Alternatives))
    g, gctx := errgroup.WithContext(ctx)
    g.SetLimit(fetchLimit)
    for i, id := range target.Alternatives {
        g.Go(func() error {
            sctx, cancel := c.withTimeout(gctx)
            defer cancel()
            alt, err := c.store.GetSolution(sctx, id)
            c.observe("get_solution", err, zap.String("solution", id))
            if err == nil {
                slots[i] = &alt
            }
            return nil // a missing alternative never fails the group
        })
    }
    _ = g.Wait()

    out := make([]domain.Alternative, 0, len(slots))
    for _, alt := range slots {
        if alt != nil {
            out = append(out, *alt)
        }
    }
    return out
}

// AlternativesFor returns the package's alternatives ranked by total score,
// highest first, ties broken by name.
func (c *Client) AlternativesFor(ctx context.Context, packageName string) []domain.Alternative {
    alts := c.FetchAlternatives(ctx, packageName)
    sort.SliceStable(alts, func(i, j int) bool {
        si, sj := alts[i].TotalScore(), alts[j].TotalScore()
        if si != sj {
            return si > sj
        }
        return alts[i].Name < alts[j].Name
    })
    return alts
}

type proposalInput struct {
    TargetPackage string `validate:"required,max=255"`
    AlternativeID string `validate:"required,max=128"`
    UserID        string `validate:"required,max=128,excludesall=/"`
}

// SubmitProposal records a pending proposal linking an alternative to a
// proprietary package. The created record is not returned.
func (c *Client) SubmitProposal(ctx context.Context, targetPackage, alternativeID, userID string) bool {
    in := proposalInput{TargetPackage: targetPackage, AlternativeID: alternativeID, UserID: userID}
    if err := c.validate.Struct(in); err != nil {
        c.log.Debug("rejecting proposal", zap.Error(err))
        return false
    }
    ctx, cancel := c.withTimeout(ctx)
    defer cancel()
    id, err := c.store.AddProposal(ctx, domain.Submission{
        ProprietaryPackage: targetPackage,
        AlternativeID:      alternativeID,
        UserID:             userID,
        Timestamp:          time.Now().UTC(),
        Status:             domain.SubmissionPending,
    })
    c.observe("add_proposal", err, zap.String("target", targetPackage), zap.String("alternative", alternativeID))
    if err != nil {
        return false
    }
    c.log.Info("proposal submitted", zap.String("id", id), zap.String("target", targetPackage), zap.String("user", userID))
    return true
}

type voteInput struct {
    AlternativeID string `validate:"required,max=128"`
    Category      string `validate:"required,max=32,lowercase,excludesall=/"`
    UserID        string `validate:"required,max=128"`
}

// VoteForAlternative adds one vote in category to the alternative. The store
// performs the increment transactionally.
func (c *Client) VoteForAlternative(ctx context.Context, alternativeID, category, userID string) bool {
    in := voteInput{AlternativeID: alternativeID, Category: category, UserID: userID}
    if err := c.validate.Struct(in); err != nil {
        c.log.Debug("rejecting vote", zap.Error(err))
        return false
    }
    ctx, cancel := c.withTimeout(ctx)
    defer cancel()
    n, err := c.store.IncrementVote(ctx, alternativeID, category)
    c.observe("increment_vote", err, zap.String("alternative", alternativeID), zap.String("category", category))
    if err != nil {
        return false
    }
    c.log.Debug("vote recorded", zap.String("alternative", alternativeID), zap.String("category", category),
        zap.String("user", userID), zap.Int("count", n))
    return true
}

// ListSubmissions returns the user's proposals, newest first.
func (c *Client) ListSubmissions(ctx context.Context, userID string) []domain.Submission {
    if userID == "" {
        return []domain.Submission{}
    }
    ctx, cancel := c.withTimeout(ctx)
    defer cancel()
    subs, err := c.store.ListProposalsByUser(ctx, userID)
    c.observe("list_proposals", err, zap.String("user", userID))
    if err != nil || subs == nil {
        return []domain.Submission{}
    }
    return subs
}
