// Package dashboard keeps the current classified inventory and score of one
// device, rescanning on request. A new request supersedes any scan still in
// flight: the stale scan is cancelled and its results are never published.
package dashboard

import (
    "context"
    "sync"

    "go.uber.org/zap"

    "librefind/internal/domain"
    "librefind/internal/metrics"
    "librefind/internal/ports"
    "librefind/internal/services/score"
)

type Classifier interface {
    Classify(ctx context.Context, src ports.InventorySource) ([]domain.ClassifiedApp, error)
}

// State is a snapshot of the dashboard. Err is set when the inventory could
// not be scanned at all; Apps is then empty and Score nil.
type State struct {
    Loading    bool
    Apps       []domain.ClassifiedApp
    Score      *domain.SovereigntyScore
    Err        error
    Generation uint64
}

type Dashboard struct {
    classifier Classifier
    src        ports.InventorySource
    thresholds score.Thresholds
    log        *zap.Logger
    onUpdate   func(State)

    // trigger holds at most one pending refresh request.
    trigger chan struct{}

    mu    sync.RWMutex
    state State
}

// New builds a dashboard. onUpdate, if set, is called from Run's goroutine
// with every published (non-loading) state.
func New(c Classifier, src ports.InventorySource, t score.Thresholds, log *zap.Logger, onUpdate func(State)) *Dashboard {
    return &Dashboard{
        classifier: c,
        src:        src,
        thresholds: t,
        log:        log.Named("dashboard"),
        onUpdate:   onUpdate,
        trigger:    make(chan struct{}, 1),
    }
}

// Refresh requests a rescan. It never blocks; requests arriving while one is
// already pending collapse into it.
func (d *Dashboard) Refresh() {
    select {
    case d.trigger <- struct{}{}:
    default:
    }
}

func (d *Dashboard) State() State {
    d.mu.RLock()
    defer d.mu.RUnlock()
    return d.state
}

type result struct {
    gen  uint64
    apps []domain.ClassifiedApp
    err  error
}

// Run performs an initial scan and then one per Refresh until ctx ends.
func (d *Dashboard) Run(ctx context.Context) {
    var (
        wg       sync.WaitGroup
        gen      uint64
        inFlight bool
        cancel   context.CancelFunc = func() {}
        results  = make(chan result)
    )
    start := func() {
        cancel()
        if inFlight {
            metrics.ScansSuperseded.Inc()
            d.log.Debug("superseding in-flight scan", zap.Uint64("generation", gen))
        }
        gen++
        inFlight = true
        var sctx context.Context
        sctx, cancel = context.WithCancel(ctx)
        d.mu.Lock()
        d.state.Loading = true
        d.state.Generation = gen
        d.mu.Unlock()

        wg.Add(1)
        go func(g uint64) {
            defer wg.Done()
            apps, err := d.classifier.Classify(sctx, d.src)
            select {
            case results <- result{gen: g, apps: apps, err: err}:
            case <-sctx.Done():
            }
        }(gen)
    }

    start()
    for {
        select {
        case <-ctx.Done():
            cancel()
            wg.Wait()
            return
        case <-d.trigger:
            start()
        case r := <-results:
            if r.gen != gen {
                continue
            }
            inFlight = false
            d.publish(r)
        }
    }
}

func (d *Dashboard) publish(r result) {
    st := State{Generation: r.gen}
    if r.err != nil {
        d.log.Warn("scan failed", zap.Error(r.err))
        st.Err = r.err
        st.Apps = []domain.ClassifiedApp{}
    } else {
        s := score.Compute(r.apps, d.thresholds)
        st.Apps = r.apps
        st.Score = &s
    }
    d.mu.Lock()
    d.state = st
    d.mu.Unlock()
    if d.onUpdate != nil {
        d.onUpdate(st)
    }
}
