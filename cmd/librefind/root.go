package main

import (
    "context"
    "errors"
    "fmt"
    "io"

    "github.com/spf13/cobra"
    "go.uber.org/zap"

    badgerstore "librefind/internal/adapters/badger"
    pg "librefind/internal/adapters/postgres"
    "librefind/internal/config"
    "librefind/internal/logging"
    "librefind/internal/ports"
    "librefind/internal/services/classifier"
    "librefind/internal/services/knowledge"
    "librefind/internal/services/score"
    "librefind/internal/signatures"
)

// knowledgeStore is a store that can both serve and seed the knowledge graph.
type knowledgeStore interface {
    ports.KnowledgeStore
    ports.KnowledgeWriter
}

// app carries what every subcommand shares. Fields left nil are filled from
// the environment on first use.
type app struct {
    out   io.Writer
    cfg   *config.Config
    log   *zap.Logger
    store knowledgeStore
    pg    *pg.DB

    closers []func()
}

func (a *app) setup() error {
    if a.cfg == nil {
        cfg, err := config.Load()
        a.cfg = &cfg
        if err != nil && a.cfg.StoreDriver == config.DriverPostgres && a.cfg.DatabaseURL == "" {
            // offline use defaults to the embedded store
            a.cfg.StoreDriver = config.DriverBadger
            err = a.cfg.Validate()
        }
        if err != nil {
            return err
        }
    }
    if a.log == nil {
        log, err := logging.New(a.cfg.Env, a.cfg.LogLevel)
        if err != nil {
            return err
        }
        a.log = log
        a.closers = append(a.closers, func() { _ = log.Sync() })
    }
    return nil
}

func (a *app) postgres(ctx context.Context) (*pg.DB, error) {
    if a.pg != nil {
        return a.pg, nil
    }
    if a.cfg.DatabaseURL == "" {
        return nil, errors.New("DATABASE_URL not set")
    }
    db, err := pg.Connect(ctx, a.cfg.DatabaseURL)
    if err != nil {
        return nil, fmt.Errorf("connect: %w", err)
    }
    a.pg = db
    a.closers = append(a.closers, db.Close)
    return db, nil
}

func (a *app) knowledgeStore(ctx context.Context) (knowledgeStore, error) {
    if a.store != nil {
        return a.store, nil
    }
    switch a.cfg.StoreDriver {
    case config.DriverPostgres:
        db, err := a.postgres(ctx)
        if err != nil {
            return nil, err
        }
        a.store = db
    default:
        kdb, err := badgerstore.Open(badgerstore.Config{
            Path:     a.cfg.BadgerPath,
            InMemory: a.cfg.BadgerPath == "",
            Logger:   a.log,
        })
        if err != nil {
            return nil, err
        }
        a.store = kdb
        a.closers = append(a.closers, func() { _ = kdb.Close() })
    }
    return a.store, nil
}

func (a *app) knowledge(ctx context.Context) (*knowledge.Client, error) {
    store, err := a.knowledgeStore(ctx)
    if err != nil {
        return nil, err
    }
    return knowledge.New(store, a.log, a.cfg.StoreTimeout), nil
}

func (a *app) pipeline(kc *knowledge.Client) (*classifier.Pipeline, error) {
    if !a.cfg.KnownSignatureMode() {
        return nil, fmt.Errorf("unknown SIGNATURE_MODE %q", a.cfg.SignatureMode)
    }
    sigs := signatures.Default()
    if a.cfg.SignaturesFile != "" {
        var err error
        if sigs, err = signatures.LoadFile(a.cfg.SignaturesFile); err != nil {
            return nil, err
        }
    }
    return classifier.New(sigs, kc, a.log, classifier.Options{
        TrustedInstaller: a.cfg.TrustedInstaller,
        VerifySignatures: a.cfg.VerifySignatures(),
    }), nil
}

func (a *app) thresholds() score.Thresholds {
    return score.Thresholds{Sovereign: a.cfg.TierSovereign, Transitioning: a.cfg.TierTransitioning}
}

// close releases stores and flushes the logger, in reverse order of opening.
func (a *app) close() {
    for i := len(a.closers) - 1; i >= 0; i-- {
        a.closers[i]()
    }
    a.closers = nil
}

func newRootCmd(a *app) *cobra.Command {
    root := &cobra.Command{
        Use:   "librefind",
        Short: "Find out how much of a device runs on free software",
        Long: `librefind classifies the apps installed on a device as FOSS, proprietary
or unknown, scores the device's digital sovereignty and suggests FOSS
alternatives from a community-curated knowledge graph.

Configuration comes from the environment (or a .env file). Without
DATABASE_URL the embedded store at BADGER_PATH is used.`,
        Example: `  # Classify an exported inventory
  librefind scan --manifest pixel-7.yaml

  # Rescan whenever the manifest changes
  librefind scan --manifest pixel-7.yaml --watch

  # Load the knowledge graph, then look up alternatives
  librefind seed knowledge.yaml
  librefind alternatives com.whatsapp`,
        SilenceUsage: true,
        PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
            return a.setup()
        },
    }
    root.SetOut(a.out)
    root.AddCommand(
        newScanCmd(a),
        newAlternativesCmd(a),
        newProposeCmd(a),
        newVoteCmd(a),
        newSubmissionsCmd(a),
        newSeedCmd(a),
        newMigrateCmd(a),
    )
    return root
}
