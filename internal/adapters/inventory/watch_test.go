package inventory

import (
    "context"
    "os"
    "path/filepath"
    "testing"
    "time"

    "github.com/stretchr/testify/require"
    "go.uber.org/goleak"
    "go.uber.org/zap"
)

func TestManifestWatch(t *testing.T) {
    defer goleak.VerifyNone(t)

    path := filepath.Join(t.TempDir(), "inventory.yaml")
    require.NoError(t, os.WriteFile(path, []byte("packages: []\n"), 0o644))
    src := NewManifestSource(path)

    changed := make(chan struct{}, 1)
    onChange := func() {
        select {
        case changed <- struct{}{}:
        default:
        }
    }

    ctx, cancel := context.WithCancel(context.Background())
    done := make(chan error, 1)
    go func() { done <- src.Watch(ctx, onChange, zap.NewNop()) }()

    // the watch is registered asynchronously; keep writing until it fires
    require.Eventually(t, func() bool {
        _ = os.WriteFile(path, []byte("packages:\n  - package_name: org.mozilla.firefox\n"), 0o644)
        select {
        case <-changed:
            return true
        default:
            return false
        }
    }, 5*time.Second, 50*time.Millisecond)

    pkgs, err := src.ListInstalledPackages(context.Background())
    require.NoError(t, err)
    require.Len(t, pkgs, 1)

    cancel()
    require.NoError(t, <-done)
}

func TestManifestWatchMissingDir(t *testing.T) {
    src := NewManifestSource(filepath.Join(t.TempDir(), "nope", "inventory.yaml"))
    err := src.Watch(context.Background(), func() {}, zap.NewNop())
    require.Error(t, err)
}
