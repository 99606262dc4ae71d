// Package classifier labels every installed package as FOSS, proprietary or
// unknown.
//
// Each package runs a short three-step decision: a trusted installer settles
// it as FOSS, then a known signing certificate, and finally the knowledge
// graph decides between proprietary and unknown. Packages are classified
// concurrently and the result is sorted most concerning first.
package classifier

import (
    "context"
    "errors"
    "fmt"
    "sort"
    "sync/atomic"
    "time"

    "go.uber.org/zap"
    "golang.org/x/sync/errgroup"

    "librefind/internal/domain"
    "librefind/internal/metrics"
    "librefind/internal/ports"
)

// ErrInventoryUnavailable wraps failures to read the inventory itself, which
// callers report differently from a scan that found no apps.
var ErrInventoryUnavailable = errors.New("inventory unavailable")

// DefaultTrustedInstaller is the F-Droid client.
const DefaultTrustedInstaller = "org.fdroid.fdroid"

// Steps that can decide a label, used in logs and metrics.
const (
    StepInstaller = "installer"
    StepSignature = "signature"
    StepKnowledge = "knowledge"
)

// KnowledgeGraph is the part of the knowledge client the pipeline needs.
type KnowledgeGraph interface {
    IsProprietaryTarget(ctx context.Context, packageName string) bool
    FetchAlternatives(ctx context.Context, packageName string) []domain.Alternative
}

type Options struct {
    TrustedInstaller string
    // VerifySignatures requires the package's live signing fingerprint to
    // match the registry. When false, being listed in the registry is enough.
    VerifySignatures bool
    // Concurrency bounds in-flight package classifications; <= 0 means 16.
    Concurrency int
}

// ProgressFunc is called after each package is classified.
type ProgressFunc func(done, total int)

type Pipeline struct {
    sigs ports.SignatureRegistry
    kg   KnowledgeGraph
    log  *zap.Logger
    opts Options
}

func New(sigs ports.SignatureRegistry, kg KnowledgeGraph, log *zap.Logger, opts Options) *Pipeline {
    if opts.TrustedInstaller == "" {
        opts.TrustedInstaller = DefaultTrustedInstaller
    }
    if opts.Concurrency <= 0 {
        opts.Concurrency = 16
    }
    return &Pipeline{sigs: sigs, kg: kg, log: log.Named("classifier"), opts: opts}
}

func (p *Pipeline) Classify(ctx context.Context, src ports.InventorySource) ([]domain.ClassifiedApp, error) {
    return p.ClassifyWithProgress(ctx, src, nil)
}

// ClassifyWithProgress reads the inventory, classifies every package and
// returns the list sorted by status weight, then package name.
func (p *Pipeline) ClassifyWithProgress(ctx context.Context, src ports.InventorySource, progress ProgressFunc) ([]domain.ClassifiedApp, error) {
    start := time.Now()
    pkgs, err := src.ListInstalledPackages(ctx)
    if err != nil {
        return nil, fmt.Errorf("%w: %w", ErrInventoryUnavailable, err)
    }

    apps := make([]domain.ClassifiedApp, len(pkgs))
    var done atomic.Int64
    g, gctx := errgroup.WithContext(ctx)
    g.SetLimit(p.opts.Concurrency)
    for i, pkg := range pkgs {
        g.Go(func() error {
            if err := gctx.Err(); err != nil {
                return err
            }
            apps[i] = p.classifyOne(gctx, src, pkg)
            if progress != nil {
                progress(int(done.Add(1)), len(pkgs))
            }
            return nil
        })
    }
    if err := g.Wait(); err != nil {
        return nil, err
    }
    if err := ctx.Err(); err != nil {
        return nil, err
    }

    SortApps(apps)
    metrics.ScanDuration.Observe(time.Since(start).Seconds())
    p.log.Debug("inventory classified", zap.Int("apps", len(apps)), zap.Duration("took", time.Since(start)))
    return apps, nil
}

// SortApps orders apps proprietary first, then unknown, then FOSS. Ties are
// broken by package name so identical inputs always sort the same way.
func SortApps(apps []domain.ClassifiedApp) {
    sort.SliceStable(apps, func(i, j int) bool {
        wi, wj := apps[i].Status.SortWeight(), apps[j].Status.SortWeight()
        if wi != wj {
            return wi < wj
        }
        return apps[i].PackageName < apps[j].PackageName
    })
}

func (p *Pipeline) classifyOne(ctx context.Context, src ports.InventorySource, pkg domain.InstalledPackage) domain.ClassifiedApp {
    name := pkg.PackageName
    installer := src.ResolveInstaller(ctx, name)
    status, step := p.decide(ctx, src, name, installer)

    app := domain.ClassifiedApp{
        PackageName: name,
        Label:       src.ResolveLabel(ctx, name),
        Status:      status,
        Installer:   installer,
    }
    if status == domain.StatusProprietary {
        app.KnownAlternatives = len(p.kg.FetchAlternatives(ctx, name))
    }
    metrics.Classifications.WithLabelValues(string(status), step).Inc()
    return app
}

func (p *Pipeline) decide(ctx context.Context, src ports.InventorySource, name string, installer *string) (domain.Status, string) {
    if installer != nil && *installer == p.opts.TrustedInstaller {
        return domain.StatusFOSS, StepInstaller
    }
    if p.signatureTrusted(ctx, src, name) {
        return domain.StatusFOSS, StepSignature
    }
    if p.kg.IsProprietaryTarget(ctx, name) {
        return domain.StatusProprietary, StepKnowledge
    }
    return domain.StatusUnknown, StepKnowledge
}

func (p *Pipeline) signatureTrusted(ctx context.Context, src ports.InventorySource, name string) bool {
    if !p.sigs.IsKnown(name) {
        return false
    }
    if !p.opts.VerifySignatures {
        return true
    }
    if p.sigs.Matches(name, src.Fingerprint(ctx, name)) {
        return true
    }
    p.log.Info("signing certificate does not match registry", zap.String("package", name))
    return false
}
