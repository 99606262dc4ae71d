package main

import (
    "context"
    "errors"
    "net/http"
    "os"
    "os/signal"
    "syscall"
    "time"

    "github.com/go-chi/chi/v5"
    "go.uber.org/zap"
    "golang.org/x/time/rate"

    badgerstore "librefind/internal/adapters/badger"
    httpadapter "librefind/internal/adapters/http"
    pg "librefind/internal/adapters/postgres"
    "librefind/internal/config"
    "librefind/internal/logging"
    "librefind/internal/ports"
    "librefind/internal/services/classifier"
    "librefind/internal/services/knowledge"
    profsvc "librefind/internal/services/profiles"
    scansvc "librefind/internal/services/scanner"
    "librefind/internal/services/score"
    "librefind/internal/signatures"
    scanworker "librefind/internal/workers/scanrunner"
)

func main() {
    cfg, cfgErr := config.Load()
    log, err := logging.New(cfg.Env, cfg.LogLevel)
    if err != nil {
        panic(err)
    }
    defer func() { _ = log.Sync() }()
    if cfgErr != nil {
        log.Warn("configuration problems", zap.Error(cfgErr))
    }
    if !cfg.KnownSignatureMode() {
        log.Fatal("unknown SIGNATURE_MODE", zap.String("mode", cfg.SignatureMode))
    }
    // scans and jobs live in Postgres whichever store backs the knowledge graph
    if cfg.DatabaseURL == "" {
        log.Fatal("DATABASE_URL is required for the scan store")
    }

    ctx, cancel := context.WithCancel(context.Background())
    defer cancel()

    db, err := pg.Connect(ctx, cfg.DatabaseURL)
    if err != nil {
        log.Fatal("db connect error", zap.Error(err))
    }
    defer db.Close()
    if err := db.Migrate(ctx); err != nil {
        log.Fatal("migrate", zap.Error(err))
    }

    var _ ports.ScanRepository = db
    var _ ports.ScoreRepository = db
    var _ ports.JobRepository = db

    var store ports.KnowledgeStore = db
    if cfg.StoreDriver == config.DriverBadger {
        kdb, err := badgerstore.Open(badgerstore.Config{Path: cfg.BadgerPath, InMemory: cfg.BadgerPath == "", Logger: log})
        if err != nil {
            log.Fatal("open badger", zap.Error(err))
        }
        defer kdb.Close()
        store = kdb
    }

    sigs := signatures.Default()
    if cfg.SignaturesFile != "" {
        if sigs, err = signatures.LoadFile(cfg.SignaturesFile); err != nil {
            log.Fatal("load signatures", zap.Error(err))
        }
    }
    log.Info("signature registry loaded", zap.Int("entries", sigs.Len()), zap.String("mode", cfg.SignatureMode))

    kc := knowledge.New(store, log, cfg.StoreTimeout)
    pipe := classifier.New(sigs, kc, log, classifier.Options{
        TrustedInstaller: cfg.TrustedInstaller,
        VerifySignatures: cfg.VerifySignatures(),
    })
    thresholds := score.Thresholds{Sovereign: cfg.TierSovereign, Transitioning: cfg.TierTransitioning}
    processor := scanworker.ClassifyProcessor{Store: db, Pipeline: pipe, Thresholds: thresholds, Log: log.Named("scan")}

    srv := httpadapter.New(scansvc.New(db), profsvc.New(db), kc, db, processor,
        httpadapter.VoteLimit{Rate: rate.Limit(cfg.VoteRate), Burst: cfg.VoteBurst}, log)
    r := chi.NewRouter()
    r.Mount("/", srv.Routes())

    workersDone := make(chan struct{})
    go func() {
        defer close(workersDone)
        if cfg.ScanWorkers > 0 {
            log.Info("scan workers started", zap.Int("workers", cfg.ScanWorkers))
            scanworker.Run(ctx, db, processor, cfg.ScanWorkers, 500*time.Millisecond, log.Named("worker"))
        }
    }()

    httpSrv := &http.Server{Addr: cfg.ListenAddr, Handler: r, ReadHeaderTimeout: 10 * time.Second}
    errCh := make(chan error, 1)
    go func() { errCh <- httpSrv.ListenAndServe() }()
    log.Info("listening", zap.String("addr", cfg.ListenAddr))

    sigCh := make(chan os.Signal, 1)
    signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
    select {
    case sig := <-sigCh:
        log.Info("shutting down", zap.String("signal", sig.String()))
    case err := <-errCh:
        if !errors.Is(err, http.ErrServerClosed) {
            log.Error("server error", zap.Error(err))
        }
    }
    shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
    defer stop()
    if err := httpSrv.Shutdown(shutdownCtx); err != nil {
        log.Warn("http shutdown", zap.Error(err))
    }
    cancel()
    <-workersDone
    srv.Wait()
}
