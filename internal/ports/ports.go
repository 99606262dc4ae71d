package ports

import (
    "context"

    "librefind/internal/domain"
)

// Scanner enqueues and tracks scans.
type Scanner interface {
    Enqueue(ctx context.Context, deviceID *string, pkgs []domain.InstalledPackage) (scanID string, err error)
    Status(ctx context.Context, scanID string) (status string, progress float64, err error)
    Result(ctx context.Context, scanID string) (domain.Scan, error)
}

// Profiles provides the latest sovereignty profile for a device.
type Profiles interface {
    GetLatest(ctx context.Context, deviceID string) (domain.Scan, error)
}

// Knowledge is the fail-soft knowledge graph facade.
type Knowledge interface {
    IsProprietaryTarget(ctx context.Context, packageName string) bool
    FetchAlternatives(ctx context.Context, packageName string) []domain.Alternative
    AlternativesFor(ctx context.Context, packageName string) []domain.Alternative
    SubmitProposal(ctx context.Context, targetPackage, alternativeID, userID string) bool
    VoteForAlternative(ctx context.Context, alternativeID, category, userID string) bool
    ListSubmissions(ctx context.Context, userID string) []domain.Submission
}
