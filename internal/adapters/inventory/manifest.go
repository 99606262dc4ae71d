package inventory

import (
    "context"
    "fmt"
    "io"
    "os"

    "gopkg.in/yaml.v3"

    "librefind/internal/domain"
)

// Manifest is an inventory exported from a device:
//
//  device_id: pixel-7
//  packages:
//    - package_name: org.mozilla.firefox
//      label: Firefox
//      install_source: {installing_package: com.android.vending}
//      signing_fingerprint: A78B62A5...
type Manifest struct {
    DeviceID string  `json:"device_id,omitempty" yaml:"device_id,omitempty"`
    Packages []Entry `json:"packages" yaml:"packages"`
}

func ReadManifest(r io.Reader) (Manifest, error) {
    var m Manifest
    if err := yaml.NewDecoder(r).Decode(&m); err != nil && err != io.EOF {
        return Manifest{}, fmt.Errorf("decode manifest: %w", err)
    }
    return m, nil
}

func ReadManifestFile(path string) (Manifest, error) {
    f, err := os.Open(path)
    if err != nil {
        return Manifest{}, err
    }
    defer f.Close()
    return ReadManifest(f)
}

// ManifestSource re-reads the manifest file on every ListInstalledPackages so
// each scan sees a fresh snapshot. Resolve calls answer from the last read.
type ManifestSource struct {
    path string
    snap *Snapshot
}

func NewManifestSource(path string) *ManifestSource {
    return &ManifestSource{path: path, snap: NewSnapshot(nil)}
}

func (m *ManifestSource) Path() string { return m.path }

func (m *ManifestSource) ListInstalledPackages(ctx context.Context) ([]domain.InstalledPackage, error) {
    man, err := ReadManifestFile(m.path)
    if err != nil {
        return nil, fmt.Errorf("read manifest %s: %w", m.path, err)
    }
    m.snap.replace(Packages(man.Packages))
    return m.snap.ListInstalledPackages(ctx)
}

func (m *ManifestSource) ResolveInstaller(ctx context.Context, packageName string) *string {
    return m.snap.ResolveInstaller(ctx, packageName)
}

func (m *ManifestSource) ResolveLabel(ctx context.Context, packageName string) string {
    return m.snap.ResolveLabel(ctx, packageName)
}

func (m *ManifestSource) Fingerprint(ctx context.Context, packageName string) string {
    return m.snap.Fingerprint(ctx, packageName)
}
