package ports

import (
    "context"

    "librefind/internal/domain"
)

// KnowledgeStore is the document store behind the knowledge graph. Lookups
// return domain.ErrNotFound for absent documents so callers can tell a
// confirmed absence from a transient failure.
type KnowledgeStore interface {
    GetTarget(ctx context.Context, key string) (domain.ProprietaryTarget, error)
    GetSolution(ctx context.Context, id string) (domain.Alternative, error)
    AddProposal(ctx context.Context, sub domain.Submission) (id string, err error)
    ListProposalsByUser(ctx context.Context, userID string) ([]domain.Submission, error)
    // IncrementVote atomically bumps votes[category] on one solution.
    IncrementVote(ctx context.Context, solutionID, category string) (newCount int, err error)
}

// KnowledgeWriter seeds targets and solutions.
type KnowledgeWriter interface {
    PutTarget(ctx context.Context, t domain.ProprietaryTarget) error
    PutSolution(ctx context.Context, a domain.Alternative) error
}

// ScanRepository manages scan records, their submitted inventories and results.
type ScanRepository interface {
    Create(ctx context.Context, deviceID *string, pkgs []domain.InstalledPackage) (scanID string, err error)
    Status(ctx context.Context, scanID string) (status string, progress float64, err error)
    Get(ctx context.Context, scanID string) (domain.Scan, error)
    Packages(ctx context.Context, scanID string) ([]domain.InstalledPackage, error)
    SaveResult(ctx context.Context, scanID string, apps []domain.ClassifiedApp, score domain.SovereigntyScore) error
}

// ScoreRepository provides the latest completed score per device.
type ScoreRepository interface {
    GetLatestByDevice(ctx context.Context, deviceID string) (exists bool, scan domain.Scan, err error)
}
