package inventory

import (
    "context"
    "fmt"

    "librefind/internal/domain"
)

// PackageLoader returns the raw inventory submitted with a scan.
type PackageLoader interface {
    Packages(ctx context.Context, scanID string) ([]domain.InstalledPackage, error)
}

// Stored is the inventory persisted with a scan.
type Stored struct {
    loader PackageLoader
    scanID string
    snap   *Snapshot
}

func NewStored(loader PackageLoader, scanID string) *Stored {
    return &Stored{loader: loader, scanID: scanID, snap: NewSnapshot(nil)}
}

func (s *Stored) ListInstalledPackages(ctx context.Context) ([]domain.InstalledPackage, error) {
    pkgs, err := s.loader.Packages(ctx, s.scanID)
    if err != nil {
        return nil, fmt.Errorf("load inventory for scan %s: %w", s.scanID, err)
    }
    s.snap.replace(pkgs)
    return s.snap.ListInstalledPackages(ctx)
}

func (s *Stored) ResolveInstaller(ctx context.Context, packageName string) *string {
    return s.snap.ResolveInstaller(ctx, packageName)
}

func (s *Stored) ResolveLabel(ctx context.Context, packageName string) string {
    return s.snap.ResolveLabel(ctx, packageName)
}

func (s *Stored) Fingerprint(ctx context.Context, packageName string) string {
    return s.snap.Fingerprint(ctx, packageName)
}
