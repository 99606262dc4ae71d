package inventory

import (
    "context"
    "fmt"
    "path/filepath"

    "github.com/fsnotify/fsnotify"
    "go.uber.org/zap"
)

// Watch calls onChange every time the manifest file is written, created or
// replaced, until ctx is done. The parent directory is watched so that
// editors saving through a rename are noticed too.
func (m *ManifestSource) Watch(ctx context.Context, onChange func(), log *zap.Logger) error {
    abs, err := filepath.Abs(m.path)
    if err != nil {
        return err
    }
    w, err := fsnotify.NewWatcher()
    if err != nil {
        return err
    }
    defer w.Close()
    if err := w.Add(filepath.Dir(abs)); err != nil {
        return fmt.Errorf("watch %s: %w", abs, err)
    }
    log.Debug("watching manifest", zap.String("path", abs))

    for {
        select {
        case <-ctx.Done():
            return nil
        case ev, ok := <-w.Events:
            if !ok {
                return nil
            }
            if filepath.Clean(ev.Name) != abs {
                continue
            }
            if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
                log.Debug("manifest changed", zap.String("op", ev.Op.String()))
                onChange()
            }
        case err, ok := <-w.Errors:
            if !ok {
                return nil
            }
            log.Warn("manifest watcher error", zap.Error(err))
        }
    }
}
