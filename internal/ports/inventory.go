package ports

import (
    "context"

    "librefind/internal/domain"
)

// InventorySource reads installed packages from a device or a snapshot of one.
//
// ListInstalledPackages returns only user-facing packages (see
// domain.InstalledPackage.UserFacing). An error means the inventory itself
// could not be read; callers decide whether to degrade to an empty list.
// The resolve methods never fail: they fall back to nil installer, the
// package name as label, and an empty fingerprint.
type InventorySource interface {
    ListInstalledPackages(ctx context.Context) ([]domain.InstalledPackage, error)
    ResolveInstaller(ctx context.Context, packageName string) *string
    ResolveLabel(ctx context.Context, packageName string) string
    Fingerprint(ctx context.Context, packageName string) string
}

// SignatureRegistry knows the expected signing fingerprints of FOSS packages.
type SignatureRegistry interface {
    IsKnown(packageName string) bool
    Matches(packageName, fingerprint string) bool
}
