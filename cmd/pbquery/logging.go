package main

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newLogger builds a zap logger for a single pbquery invocation. Every
// line carries a "run" field so that output from one run can be picked
// out of an aggregated log stream.
func newLogger(verbose bool) (*zap.Logger, func(), error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	cfg.DisableStacktrace = true

	logger, err := cfg.Build()
	if err != nil {
		return nil, nil, err
	}

	runID := uuid.New().String()
	logger = logger.With(zap.String("run", runID))
	return logger, func() { _ = logger.Sync() }, nil
}
