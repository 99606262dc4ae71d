package classifier

import (
    "context"
    "errors"
    "sync"
    "sync/atomic"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
    "go.uber.org/zap"

    "librefind/internal/adapters/inventory"
    "librefind/internal/domain"
    "librefind/internal/signatures"
)

const (
    playStore = "com.android.vending"
    fdroid    = "org.fdroid.fdroid"
    firefoxFP = "A78B62A5165B4494B2FEAD9E76A280D22D937FEA"
)

func strp(s string) *string { return &s }

// fakeGraph answers from fixed tables and counts lookups.
type fakeGraph struct {
    mu           sync.Mutex
    proprietary  map[string]bool
    alternatives map[string]int
    targetCalls  map[string]int
    altCalls     map[string]int
}

func newFakeGraph() *fakeGraph {
    return &fakeGraph{
        proprietary:  map[string]bool{},
        alternatives: map[string]int{},
        targetCalls:  map[string]int{},
        altCalls:     map[string]int{},
    }
}

func (f *fakeGraph) IsProprietaryTarget(_ context.Context, pkg string) bool {
    f.mu.Lock()
    defer f.mu.Unlock()
    f.targetCalls[pkg]++
    return f.proprietary[pkg]
}

func (f *fakeGraph) FetchAlternatives(_ context.Context, pkg string) []domain.Alternative {
    f.mu.Lock()
    defer f.mu.Unlock()
    f.altCalls[pkg]++
    return make([]domain.Alternative, f.alternatives[pkg])
}

func newPipeline(kg KnowledgeGraph, verify bool) *Pipeline {
    return New(signatures.Default(), kg, zap.NewNop(), Options{VerifySignatures: verify})
}

func byName(apps []domain.ClassifiedApp) map[string]domain.ClassifiedApp {
    out := map[string]domain.ClassifiedApp{}
    for _, a := range apps {
        out[a.PackageName] = a
    }
    return out
}

func TestTrustedInstallerWins(t *testing.T) {
    kg := newFakeGraph()
    kg.proprietary["com.example.tracker"] = true
    src := inventory.NewSnapshot([]domain.InstalledPackage{
        {PackageName: "com.example.tracker", Installer: strp(fdroid)},
    })

    apps, err := newPipeline(kg, true).Classify(context.Background(), src)
    require.NoError(t, err)
    require.Len(t, apps, 1)
    assert.Equal(t, domain.StatusFOSS, apps[0].Status)
    assert.Equal(t, 0, apps[0].KnownAlternatives)
    assert.Zero(t, kg.targetCalls["com.example.tracker"])
}

func TestFirefoxFromPlayStoreWithMatchingSignature(t *testing.T) {
    kg := newFakeGraph()
    src := inventory.NewSnapshot([]domain.InstalledPackage{
        {PackageName: "org.mozilla.firefox", Label: "Firefox", Installer: strp(playStore), Fingerprint: firefoxFP},
    })

    apps, err := newPipeline(kg, true).Classify(context.Background(), src)
    require.NoError(t, err)
    require.Len(t, apps, 1)
    assert.Equal(t, domain.StatusFOSS, apps[0].Status)
    assert.Equal(t, "Firefox", apps[0].Label)
    assert.Equal(t, playStore, *apps[0].Installer)
    assert.Equal(t, 0, apps[0].KnownAlternatives)
    assert.Zero(t, kg.targetCalls["org.mozilla.firefox"])
}

func TestSignatureMismatch(t *testing.T) {
    pkgs := []domain.InstalledPackage{
        {PackageName: "org.mozilla.firefox", Installer: strp(playStore), Fingerprint: "DEADBEEF"},
    }

    // verify mode falls through to the knowledge graph
    kg := newFakeGraph()
    apps, err := newPipeline(kg, true).Classify(context.Background(), inventory.NewSnapshot(pkgs))
    require.NoError(t, err)
    assert.Equal(t, domain.StatusUnknown, apps[0].Status)
    assert.Equal(t, 1, kg.targetCalls["org.mozilla.firefox"])

    // known mode trusts registry membership alone
    kg = newFakeGraph()
    apps, err = newPipeline(kg, false).Classify(context.Background(), inventory.NewSnapshot(pkgs))
    require.NoError(t, err)
    assert.Equal(t, domain.StatusFOSS, apps[0].Status)
}

func TestTrackerWithPartiallyResolvedAlternatives(t *testing.T) {
    kg := newFakeGraph()
    kg.proprietary["com.example.tracker"] = true
    kg.alternatives["com.example.tracker"] = 2 // 3 linked, 2 resolve
    src := inventory.NewSnapshot([]domain.InstalledPackage{{PackageName: "com.example.tracker"}})

    apps, err := newPipeline(kg, true).Classify(context.Background(), src)
    require.NoError(t, err)
    require.Len(t, apps, 1)
    assert.Equal(t, domain.StatusProprietary, apps[0].Status)
    assert.Equal(t, 2, apps[0].KnownAlternatives)
    assert.Nil(t, apps[0].Installer)
    assert.Equal(t, "com.example.tracker", apps[0].Label)
}

func TestOnlyProprietaryAppsQueryAlternatives(t *testing.T) {
    kg := newFakeGraph()
    kg.proprietary["com.whatsapp"] = true
    kg.alternatives["com.whatsapp"] = 3
    kg.alternatives["com.unknown.app"] = 5
    src := inventory.NewSnapshot([]domain.InstalledPackage{
        {PackageName: "com.whatsapp"},
        {PackageName: "com.unknown.app"},
        {PackageName: "org.videolan.vlc", Installer: strp(fdroid)},
    })

    apps, err := newPipeline(kg, true).Classify(context.Background(), src)
    require.NoError(t, err)
    m := byName(apps)
    assert.Equal(t, 3, m["com.whatsapp"].KnownAlternatives)
    assert.Equal(t, 0, m["com.unknown.app"].KnownAlternatives)
    assert.Zero(t, kg.altCalls["com.unknown.app"])
    assert.Zero(t, kg.altCalls["org.videolan.vlc"])
    for _, a := range apps {
        if a.KnownAlternatives > 0 {
            assert.Equal(t, domain.StatusProprietary, a.Status)
        }
    }
}

func TestSortOrderIsStable(t *testing.T) {
    kg := newFakeGraph()
    kg.proprietary["com.b.prop"] = true
    kg.proprietary["com.a.prop"] = true
    pkgs := []domain.InstalledPackage{
        {PackageName: "org.z.foss", Installer: strp(fdroid)},
        {PackageName: "com.b.prop"},
        {PackageName: "com.y.unknown"},
        {PackageName: "org.a.foss", Installer: strp(fdroid)},
        {PackageName: "com.a.prop"},
        {PackageName: "com.x.unknown"},
        {PackageName: "android", System: true},
    }
    p := newPipeline(kg, true)

    want := []string{"com.a.prop", "com.b.prop", "com.x.unknown", "com.y.unknown", "org.a.foss", "org.z.foss"}
    for run := 0; run < 5; run++ {
        apps, err := p.Classify(context.Background(), inventory.NewSnapshot(pkgs))
        require.NoError(t, err)
        var got []string
        for _, a := range apps {
            got = append(got, a.PackageName)
            assert.True(t, a.Status.Valid())
        }
        assert.Equal(t, want, got)
    }
}

func TestEmptyInventory(t *testing.T) {
    apps, err := newPipeline(newFakeGraph(), true).Classify(context.Background(), inventory.NewSnapshot(nil))
    require.NoError(t, err)
    assert.Empty(t, apps)
}

type brokenSource struct{ inventory.Snapshot }

func (*brokenSource) ListInstalledPackages(context.Context) ([]domain.InstalledPackage, error) {
    return nil, errors.New("package manager died")
}

func TestInventoryFailureIsReported(t *testing.T) {
    _, err := newPipeline(newFakeGraph(), true).Classify(context.Background(), &brokenSource{})
    assert.ErrorIs(t, err, ErrInventoryUnavailable)
}

func TestCancelledContext(t *testing.T) {
    ctx, cancel := context.WithCancel(context.Background())
    cancel()
    src := inventory.NewSnapshot([]domain.InstalledPackage{{PackageName: "com.a"}})
    _, err := newPipeline(newFakeGraph(), true).Classify(ctx, src)
    assert.ErrorIs(t, err, context.Canceled)
}

func TestProgress(t *testing.T) {
    var calls atomic.Int32
    var last atomic.Int32
    src := inventory.NewSnapshot([]domain.InstalledPackage{{PackageName: "a"}, {PackageName: "b"}, {PackageName: "c"}})
    _, err := newPipeline(newFakeGraph(), true).ClassifyWithProgress(context.Background(), src, func(done, total int) {
        calls.Add(1)
        assert.Equal(t, 3, total)
        if done == total {
            last.Store(int32(done))
        }
    })
    require.NoError(t, err)
    assert.Equal(t, int32(3), calls.Load())
    assert.Equal(t, int32(3), last.Load())
}
