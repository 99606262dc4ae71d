package logging

import (
    "fmt"

    "go.uber.org/zap"
    "go.uber.org/zap/zapcore"
)

// New builds the process logger: JSON output in production, console output
// otherwise. level accepts the zapcore level names ("debug", "info", ...).
func New(env, level string) (*zap.Logger, error) {
    var cfg zap.Config
    if env == "production" {
        cfg = zap.NewProductionConfig()
    } else {
        cfg = zap.NewDevelopmentConfig()
    }
    lvl, err := zapcore.ParseLevel(level)
    if err != nil {
        return nil, fmt.Errorf("invalid log level %q: %w", level, err)
    }
    cfg.Level = zap.NewAtomicLevelAt(lvl)
    logger, err := cfg.Build()
    if err != nil {
        return nil, fmt.Errorf("failed to initialize logger: %w", err)
    }
    return logger, nil
}
