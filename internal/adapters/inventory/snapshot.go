// Package inventory provides device inventory sources: an in-memory snapshot,
// a YAML manifest exported from a device, and the inventory stored with a scan.
package inventory

import (
    "context"
    "sync"

    "librefind/internal/domain"
)

// InstallSource mirrors the newer platform install-source record.
type InstallSource struct {
    InstallingPackage *string `json:"installing_package,omitempty" yaml:"installing_package,omitempty"`
}

// Entry is one package as reported by a device. Devices on newer platform
// versions report InstallSource; older ones only the legacy Installer field.
type Entry struct {
    PackageName   string         `json:"package_name" yaml:"package_name" validate:"required,max=255"`
    Label         string         `json:"label,omitempty" yaml:"label,omitempty"`
    InstallSource *InstallSource `json:"install_source,omitempty" yaml:"install_source,omitempty"`
    Installer     *string        `json:"installer,omitempty" yaml:"installer,omitempty"`
    Fingerprint   string         `json:"signing_fingerprint,omitempty" yaml:"signing_fingerprint,omitempty"`
    System        bool           `json:"system,omitempty" yaml:"system,omitempty"`
    UpdatedSystem bool           `json:"updated_system,omitempty" yaml:"updated_system,omitempty"`
}

// ResolvedInstaller prefers the install-source record and falls back to the
// legacy field. Empty values count as unknown.
func (e Entry) ResolvedInstaller() *string {
    if e.InstallSource != nil && e.InstallSource.InstallingPackage != nil && *e.InstallSource.InstallingPackage != "" {
        v := *e.InstallSource.InstallingPackage
        return &v
    }
    if e.Installer != nil && *e.Installer != "" {
        v := *e.Installer
        return &v
    }
    return nil
}

func (e Entry) Package() domain.InstalledPackage {
    return domain.InstalledPackage{
        PackageName:   e.PackageName,
        Label:         e.Label,
        Installer:     e.ResolvedInstaller(),
        Fingerprint:   e.Fingerprint,
        System:        e.System,
        UpdatedSystem: e.UpdatedSystem,
    }
}

// Packages converts entries, dropping those without a package name and
// keeping the first occurrence of duplicates.
func Packages(entries []Entry) []domain.InstalledPackage {
    out := make([]domain.InstalledPackage, 0, len(entries))
    for _, e := range entries {
        out = append(out, e.Package())
    }
    return dedupe(out)
}

func dedupe(pkgs []domain.InstalledPackage) []domain.InstalledPackage {
    seen := make(map[string]struct{}, len(pkgs))
    out := make([]domain.InstalledPackage, 0, len(pkgs))
    for _, p := range pkgs {
        if p.PackageName == "" {
            continue
        }
        if _, ok := seen[p.PackageName]; ok {
            continue
        }
        seen[p.PackageName] = struct{}{}
        out = append(out, p)
    }
    return out
}

// Snapshot is an InventorySource over a fixed package list.
type Snapshot struct {
    mu     sync.RWMutex
    order  []string
    byName map[string]domain.InstalledPackage
}

func NewSnapshot(pkgs []domain.InstalledPackage) *Snapshot {
    s := &Snapshot{}
    s.replace(pkgs)
    return s
}

func (s *Snapshot) replace(pkgs []domain.InstalledPackage) {
    pkgs = dedupe(pkgs)
    order := make([]string, 0, len(pkgs))
    byName := make(map[string]domain.InstalledPackage, len(pkgs))
    for _, p := range pkgs {
        order = append(order, p.PackageName)
        byName[p.PackageName] = p
    }
    s.mu.Lock()
    s.order, s.byName = order, byName
    s.mu.Unlock()
}

func (s *Snapshot) ListInstalledPackages(ctx context.Context) ([]domain.InstalledPackage, error) {
    if err := ctx.Err(); err != nil {
        return nil, err
    }
    s.mu.RLock()
    defer s.mu.RUnlock()
    out := make([]domain.InstalledPackage, 0, len(s.order))
    for _, name := range s.order {
        if p := s.byName[name]; p.UserFacing() {
            out = append(out, p)
        }
    }
    return out, nil
}

func (s *Snapshot) lookup(packageName string) (domain.InstalledPackage, bool) {
    s.mu.RLock()
    defer s.mu.RUnlock()
    p, ok := s.byName[packageName]
    return p, ok
}

func (s *Snapshot) ResolveInstaller(_ context.Context, packageName string) *string {
    p, ok := s.lookup(packageName)
    if !ok || p.Installer == nil || *p.Installer == "" {
        return nil
    }
    v := *p.Installer
    return &v
}

func (s *Snapshot) ResolveLabel(_ context.Context, packageName string) string {
    if p, ok := s.lookup(packageName); ok && p.Label != "" {
        return p.Label
    }
    return packageName
}

func (s *Snapshot) Fingerprint(_ context.Context, packageName string) string {
    p, _ := s.lookup(packageName)
    return p.Fingerprint
}
