// Package badger is an embedded knowledge store backed by BadgerDB. It serves
// offline CLI use and tests; the server normally runs against Postgres.
package badger

import (
    "errors"
    "fmt"
    "os"

    "github.com/dgraph-io/badger/v4"
    "go.uber.org/zap"
)

type Config struct {
    // Path is the database directory. Ignored when InMemory is true.
    Path string
    // InMemory keeps everything in memory, with no disk persistence.
    InMemory   bool
    SyncWrites bool
    // Logger receives BadgerDB's internal logs. Nil disables them.
    Logger *zap.Logger
}

func InMemoryConfig() Config {
    return Config{InMemory: true}
}

type badgerLogger struct {
    log *zap.SugaredLogger
}

func (l badgerLogger) Errorf(format string, args ...interface{})   { l.log.Errorf(format, args...) }
func (l badgerLogger) Warningf(format string, args ...interface{}) { l.log.Warnf(format, args...) }
func (l badgerLogger) Infof(format string, args ...interface{})    { l.log.Debugf(format, args...) }
func (l badgerLogger) Debugf(format string, args ...interface{})   { l.log.Debugf(format, args...) }

type DB struct {
    db *badger.DB
}

func Open(cfg Config) (*DB, error) {
    if !cfg.InMemory && cfg.Path == "" {
        return nil, errors.New("path is required for persistent database")
    }
    var opts badger.Options
    if cfg.InMemory {
        opts = badger.DefaultOptions("").WithInMemory(true)
    } else {
        if err := os.MkdirAll(cfg.Path, 0o750); err != nil {
            return nil, fmt.Errorf("create database directory %s: %w", cfg.Path, err)
        }
        opts = badger.DefaultOptions(cfg.Path)
    }
    opts = opts.WithSyncWrites(cfg.SyncWrites).WithNumVersionsToKeep(1)
    if cfg.Logger != nil {
        opts = opts.WithLogger(badgerLogger{log: cfg.Logger.Named("badger").Sugar()})
    } else {
        opts = opts.WithLogger(nil)
    }
    db, err := badger.Open(opts)
    if err != nil {
        return nil, fmt.Errorf("open badger database: %w", err)
    }
    return &DB{db: db}, nil
}

func (d *DB) Close() error { return d.db.Close() }
