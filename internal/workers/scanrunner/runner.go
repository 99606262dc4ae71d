package scanrunner

import (
    "context"
    "sync"
    "time"

    "go.uber.org/zap"

    "librefind/internal/adapters/inventory"
    "librefind/internal/domain"
    "librefind/internal/ports"
    "librefind/internal/services/classifier"
    "librefind/internal/services/score"
)

// ScanProcessor performs the scan work for a job's scan id.
type ScanProcessor interface {
    Process(ctx context.Context, scanID string) error
}

// Store is what the classify processor needs from persistence.
type Store interface {
    inventory.PackageLoader
    UpdateScanProgress(ctx context.Context, scanID string, progress float64) error
    SaveResult(ctx context.Context, scanID string, apps []domain.ClassifiedApp, score domain.SovereigntyScore) error
}

// ClassifyProcessor classifies the inventory stored with a scan and saves the
// sorted list and score. A scan whose inventory cannot be read fails.
type ClassifyProcessor struct {
    Store      Store
    Pipeline   *classifier.Pipeline
    Thresholds score.Thresholds
    Log        *zap.Logger
}

func (p ClassifyProcessor) Process(ctx context.Context, scanID string) error {
    src := inventory.NewStored(p.Store, scanID)

    // report progress in 10% steps, capped below 1 until results are saved;
    // writes stay under mu so a lower step never lands after a higher one
    var (
        mu       sync.Mutex
        lastStep int
    )
    progress := func(done, total int) {
        step := done * 10 / total
        mu.Lock()
        defer mu.Unlock()
        if step <= lastStep {
            return
        }
        lastStep = step
        if err := p.Store.UpdateScanProgress(ctx, scanID, float64(step)/10*0.9); err != nil {
            p.Log.Warn("progress update failed", zap.String("scan", scanID), zap.Error(err))
        }
    }

    apps, err := p.Pipeline.ClassifyWithProgress(ctx, src, progress)
    if err != nil {
        return err
    }
    s := score.Compute(apps, p.Thresholds)
    if err := p.Store.SaveResult(ctx, scanID, apps, s); err != nil {
        return err
    }
    p.Log.Info("scan classified",
        zap.String("scan", scanID),
        zap.Int("apps", s.TotalApps),
        zap.Float64("percentage", s.Percentage),
        zap.String("level", string(s.Level)))
    return nil
}

// Run starts worker goroutines that claim jobs and process them. It returns
// once ctx is done and every worker has finished its current job.
func Run(ctx context.Context, repo ports.JobRepository, processor ScanProcessor, concurrency int, pollInterval time.Duration, log *zap.Logger) {
    if concurrency < 1 { return }
    jobsCh := make(chan ports.ScanJob, concurrency)

    // dispatcher loop
    go func() {
        defer close(jobsCh)
        ticker := time.NewTicker(pollInterval)
        defer ticker.Stop()
        for {
            select {
            case <-ctx.Done():
                return
            case <-ticker.C:
                for {
                    job, found, err := repo.ClaimNext(ctx)
                    if err != nil {
                        if ctx.Err() == nil {
                            log.Warn("job claim error", zap.Error(err))
                        }
                        break
                    }
                    if !found { break }
                    select {
                    case jobsCh <- job:
                    case <-ctx.Done():
                        return
                    }
                }
            }
        }
    }()

    done := make(chan struct{}, concurrency)
    for i := 0; i < concurrency; i++ {
        go func(idx int) {
            defer func() { done <- struct{}{} }()
            for job := range jobsCh {
                if err := processor.Process(ctx, job.ScanID); err != nil {
                    _ = repo.MarkFailed(context.WithoutCancel(ctx), job.ID, err.Error())
                    log.Warn("job failed", zap.Int("worker", idx), zap.String("job", job.ID), zap.Error(err))
                    continue
                }
                if err := repo.MarkCompleted(ctx, job.ID); err != nil {
                    log.Warn("job complete error", zap.Int("worker", idx), zap.String("job", job.ID), zap.Error(err))
                }
            }
        }(i)
    }
    for i := 0; i < concurrency; i++ {
        <-done
    }
}

// ProcessInline starts and processes a specific scan synchronously using the same processor logic
// as the background workers. It marks the job as running, calls processor.Process, and completes or fails.
func ProcessInline(ctx context.Context, repo ports.JobRepository, processor ScanProcessor, scanID string) error {
    jobID, err := repo.StartJobForScan(ctx, scanID)
    if err != nil { return err }
    if err := processor.Process(ctx, scanID); err != nil {
        _ = repo.MarkFailed(context.WithoutCancel(ctx), jobID, err.Error())
        return err
    }
    return repo.MarkCompleted(ctx, jobID)
}
