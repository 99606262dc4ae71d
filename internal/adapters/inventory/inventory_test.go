package inventory

import (
    "context"
    "errors"
    "os"
    "path/filepath"
    "strings"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "librefind/internal/domain"
)

func strp(s string) *string { return &s }

func TestResolvedInstallerPrefersInstallSource(t *testing.T) {
    e := Entry{
        PackageName:   "com.example",
        InstallSource: &InstallSource{InstallingPackage: strp("org.fdroid.fdroid")},
        Installer:     strp("com.android.vending"),
    }
    require.NotNil(t, e.ResolvedInstaller())
    assert.Equal(t, "org.fdroid.fdroid", *e.ResolvedInstaller())

    legacy := Entry{PackageName: "com.example", InstallSource: &InstallSource{}, Installer: strp("com.android.vending")}
    assert.Equal(t, "com.android.vending", *legacy.ResolvedInstaller())

    assert.Nil(t, Entry{PackageName: "com.example", Installer: strp("")}.ResolvedInstaller())
}

func TestSnapshotFiltersSystemPackages(t *testing.T) {
    snap := NewSnapshot([]domain.InstalledPackage{
        {PackageName: "com.user.app"},
        {PackageName: "com.android.systemui", System: true},
        {PackageName: "com.google.android.gm", System: true, UpdatedSystem: true},
        {PackageName: ""},
        {PackageName: "com.user.app", Label: "duplicate"},
    })
    pkgs, err := snap.ListInstalledPackages(context.Background())
    require.NoError(t, err)

    var names []string
    for _, p := range pkgs {
        names = append(names, p.PackageName)
    }
    assert.Equal(t, []string{"com.user.app", "com.google.android.gm"}, names)
    assert.Equal(t, "com.user.app", snap.ResolveLabel(context.Background(), "com.user.app"))
}

func TestSnapshotResolveFallbacks(t *testing.T) {
    ctx := context.Background()
    snap := NewSnapshot([]domain.InstalledPackage{
        {PackageName: "org.mozilla.firefox", Label: "Firefox", Installer: strp("com.android.vending"), Fingerprint: "AB"},
    })
    assert.Equal(t, "Firefox", snap.ResolveLabel(ctx, "org.mozilla.firefox"))
    assert.Equal(t, "com.android.vending", *snap.ResolveInstaller(ctx, "org.mozilla.firefox"))
    assert.Equal(t, "AB", snap.Fingerprint(ctx, "org.mozilla.firefox"))

    assert.Equal(t, "missing.pkg", snap.ResolveLabel(ctx, "missing.pkg"))
    assert.Nil(t, snap.ResolveInstaller(ctx, "missing.pkg"))
    assert.Empty(t, snap.Fingerprint(ctx, "missing.pkg"))
}

const manifestYAML = `
device_id: pixel-7
packages:
  - package_name: org.mozilla.firefox
    label: Firefox
    install_source:
      installing_package: com.android.vending
    signing_fingerprint: A78B62A5165B4494B2FEAD9E76A280D22D937FEA
  - package_name: com.example.tracker
    installer: com.android.vending
  - package_name: com.android.phone
    system: true
`

func TestReadManifest(t *testing.T) {
    m, err := ReadManifest(strings.NewReader(manifestYAML))
    require.NoError(t, err)
    assert.Equal(t, "pixel-7", m.DeviceID)
    require.Len(t, m.Packages, 3)
    assert.Equal(t, "com.android.vending", *m.Packages[1].ResolvedInstaller())

    _, err = ReadManifest(strings.NewReader("packages: [oops"))
    assert.Error(t, err)
}

func TestManifestSourceRereadsFile(t *testing.T) {
    ctx := context.Background()
    path := filepath.Join(t.TempDir(), "inventory.yaml")
    require.NoError(t, os.WriteFile(path, []byte(manifestYAML), 0o600))

    src := NewManifestSource(path)
    pkgs, err := src.ListInstalledPackages(ctx)
    require.NoError(t, err)
    assert.Len(t, pkgs, 2)
    assert.Equal(t, "Firefox", src.ResolveLabel(ctx, "org.mozilla.firefox"))

    require.NoError(t, os.WriteFile(path, []byte("packages:\n  - package_name: org.videolan.vlc\n"), 0o600))
    pkgs, err = src.ListInstalledPackages(ctx)
    require.NoError(t, err)
    require.Len(t, pkgs, 1)
    assert.Equal(t, "org.videolan.vlc", pkgs[0].PackageName)
    assert.Equal(t, "org.mozilla.firefox", src.ResolveLabel(ctx, "org.mozilla.firefox"))
}

func TestManifestSourceMissingFile(t *testing.T) {
    src := NewManifestSource(filepath.Join(t.TempDir(), "nope.yaml"))
    _, err := src.ListInstalledPackages(context.Background())
    assert.Error(t, err)
}

type loaderFunc func(ctx context.Context, scanID string) ([]domain.InstalledPackage, error)

func (f loaderFunc) Packages(ctx context.Context, scanID string) ([]domain.InstalledPackage, error) {
    return f(ctx, scanID)
}

func TestStored(t *testing.T) {
    ctx := context.Background()
    src := NewStored(loaderFunc(func(_ context.Context, scanID string) ([]domain.InstalledPackage, error) {
        assert.Equal(t, "scan-1", scanID)
        return []domain.InstalledPackage{{PackageName: "com.fsck.k9", Label: "K-9 Mail"}}, nil
    }), "scan-1")
    pkgs, err := src.ListInstalledPackages(ctx)
    require.NoError(t, err)
    assert.Len(t, pkgs, 1)
    assert.Equal(t, "K-9 Mail", src.ResolveLabel(ctx, "com.fsck.k9"))

    failing := NewStored(loaderFunc(func(context.Context, string) ([]domain.InstalledPackage, error) {
        return nil, errors.New("connection refused")
    }), "scan-2")
    _, err = failing.ListInstalledPackages(ctx)
    assert.ErrorContains(t, err, "scan-2")
}
