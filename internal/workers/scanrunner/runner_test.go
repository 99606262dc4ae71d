package scanrunner

import (
    "context"
    "errors"
    "fmt"
    "sort"
    "sync"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
    "go.uber.org/goleak"
    "go.uber.org/zap"

    "librefind/internal/domain"
    "librefind/internal/ports"
    "librefind/internal/services/classifier"
    "librefind/internal/services/score"
    "librefind/internal/signatures"
)

// memRepo is an in-memory job queue and scan store.
type memRepo struct {
    mu       sync.Mutex
    queue    []ports.ScanJob
    status   map[string]string // job id -> status
    reasons  map[string]string
    progress map[string][]float64
    packages map[string][]domain.InstalledPackage
    results  map[string][]domain.ClassifiedApp
    scores   map[string]domain.SovereigntyScore
}

func newMemRepo() *memRepo {
    return &memRepo{
        status:   map[string]string{},
        reasons:  map[string]string{},
        progress: map[string][]float64{},
        packages: map[string][]domain.InstalledPackage{},
        results:  map[string][]domain.ClassifiedApp{},
        scores:   map[string]domain.SovereigntyScore{},
    }
}

func (m *memRepo) add(jobID, scanID string, pkgs []domain.InstalledPackage) {
    m.mu.Lock()
    defer m.mu.Unlock()
    m.queue = append(m.queue, ports.ScanJob{ID: jobID, ScanID: scanID})
    m.status[jobID] = "queued"
    if pkgs != nil {
        m.packages[scanID] = pkgs
    }
}

func (m *memRepo) jobStatus(jobID string) string {
    m.mu.Lock()
    defer m.mu.Unlock()
    return m.status[jobID]
}

func (m *memRepo) ClaimNext(context.Context) (ports.ScanJob, bool, error) {
    m.mu.Lock()
    defer m.mu.Unlock()
    if len(m.queue) == 0 {
        return ports.ScanJob{}, false, nil
    }
    job := m.queue[0]
    m.queue = m.queue[1:]
    m.status[job.ID] = "running"
    return job, true, nil
}

func (m *memRepo) MarkRunning(_ context.Context, jobID string) error {
    m.mu.Lock()
    defer m.mu.Unlock()
    m.status[jobID] = "running"
    return nil
}

func (m *memRepo) UpdateScanProgress(_ context.Context, scanID string, p float64) error {
    m.mu.Lock()
    defer m.mu.Unlock()
    m.progress[scanID] = append(m.progress[scanID], p)
    return nil
}

func (m *memRepo) MarkCompleted(_ context.Context, jobID string) error {
    m.mu.Lock()
    defer m.mu.Unlock()
    m.status[jobID] = "completed"
    return nil
}

func (m *memRepo) MarkFailed(_ context.Context, jobID, reason string) error {
    m.mu.Lock()
    defer m.mu.Unlock()
    m.status[jobID] = "failed"
    m.reasons[jobID] = reason
    return nil
}

func (m *memRepo) StartJobForScan(_ context.Context, scanID string) (string, error) {
    m.mu.Lock()
    defer m.mu.Unlock()
    for i, j := range m.queue {
        if j.ScanID == scanID {
            m.queue = append(m.queue[:i], m.queue[i+1:]...)
            m.status[j.ID] = "running"
            return j.ID, nil
        }
    }
    return "", domain.ErrNotFound
}

func (m *memRepo) Packages(_ context.Context, scanID string) ([]domain.InstalledPackage, error) {
    m.mu.Lock()
    defer m.mu.Unlock()
    pkgs, ok := m.packages[scanID]
    if !ok {
        return nil, errors.New("scan inventory missing")
    }
    return pkgs, nil
}

func (m *memRepo) SaveResult(_ context.Context, scanID string, apps []domain.ClassifiedApp, s domain.SovereigntyScore) error {
    m.mu.Lock()
    defer m.mu.Unlock()
    m.results[scanID] = apps
    m.scores[scanID] = s
    return nil
}

type staticGraph map[string]int

func (g staticGraph) IsProprietaryTarget(_ context.Context, pkg string) bool {
    _, ok := g[pkg]
    return ok
}

func (g staticGraph) FetchAlternatives(_ context.Context, pkg string) []domain.Alternative {
    return make([]domain.Alternative, g[pkg])
}

func newProcessor(repo *memRepo) ClassifyProcessor {
    return ClassifyProcessor{
        Store:      repo,
        Pipeline:   classifier.New(signatures.Default(), staticGraph{"com.whatsapp": 2}, zap.NewNop(), classifier.Options{VerifySignatures: true}),
        Thresholds: score.DefaultThresholds(),
        Log:        zap.NewNop(),
    }
}

func strp(s string) *string { return &s }

func TestProcessInline(t *testing.T) {
    repo := newMemRepo()
    repo.add("job-1", "scan-1", []domain.InstalledPackage{
        {PackageName: "org.videolan.vlc", Installer: strp("org.fdroid.fdroid")},
        {PackageName: "com.whatsapp", Label: "WhatsApp"},
    })

    require.NoError(t, ProcessInline(context.Background(), repo, newProcessor(repo), "scan-1"))
    assert.Equal(t, "completed", repo.jobStatus("job-1"))

    apps := repo.results["scan-1"]
    require.Len(t, apps, 2)
    assert.Equal(t, "com.whatsapp", apps[0].PackageName)
    assert.Equal(t, domain.StatusProprietary, apps[0].Status)
    assert.Equal(t, 2, apps[0].KnownAlternatives)
    assert.Equal(t, domain.StatusFOSS, apps[1].Status)
    assert.Equal(t, 50.0, repo.scores["scan-1"].Percentage)

    for _, p := range repo.progress["scan-1"] {
        assert.Less(t, p, 1.0)
    }
}

// slowEarlyProgress delays the low progress writes so an unserialised
// caller would record them after the higher ones.
type slowEarlyProgress struct {
    *memRepo
}

func (s slowEarlyProgress) UpdateScanProgress(ctx context.Context, scanID string, p float64) error {
    if p < 0.5 {
        time.Sleep(2 * time.Millisecond)
    }
    return s.memRepo.UpdateScanProgress(ctx, scanID, p)
}

func TestProcessProgressNeverGoesBackwards(t *testing.T) {
    repo := newMemRepo()
    pkgs := make([]domain.InstalledPackage, 0, 200)
    for i := 0; i < 200; i++ {
        pkgs = append(pkgs, domain.InstalledPackage{PackageName: fmt.Sprintf("com.example.app%03d", i)})
    }
    repo.add("job-1", "scan-1", pkgs)

    proc := newProcessor(repo)
    proc.Store = slowEarlyProgress{repo}
    require.NoError(t, ProcessInline(context.Background(), repo, proc, "scan-1"))

    got := repo.progress["scan-1"]
    require.NotEmpty(t, got)
    assert.True(t, sort.Float64sAreSorted(got), "progress went backwards: %v", got)
    for i := 1; i < len(got); i++ {
        assert.NotEqual(t, got[i-1], got[i], "step written twice: %v", got)
    }
}

func TestProcessInlineUnknownScan(t *testing.T) {
    repo := newMemRepo()
    err := ProcessInline(context.Background(), repo, newProcessor(repo), "nope")
    assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRunProcessesQueueAndFailsUnreadableInventory(t *testing.T) {
    defer goleak.VerifyNone(t)
    repo := newMemRepo()
    repo.add("job-ok", "scan-ok", []domain.InstalledPackage{{PackageName: "com.example"}})
    repo.add("job-bad", "scan-bad", nil)

    ctx, cancel := context.WithCancel(context.Background())
    finished := make(chan struct{})
    go func() {
        Run(ctx, repo, newProcessor(repo), 2, 5*time.Millisecond, zap.NewNop())
        close(finished)
    }()

    require.Eventually(t, func() bool {
        return repo.jobStatus("job-ok") == "completed" && repo.jobStatus("job-bad") == "failed"
    }, 2*time.Second, 5*time.Millisecond)

    repo.mu.Lock()
    assert.ErrorContains(t, errors.New(repo.reasons["job-bad"]), classifier.ErrInventoryUnavailable.Error())
    repo.mu.Unlock()

    cancel()
    <-finished
}
