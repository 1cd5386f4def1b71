// Package log builds the zap.Logger shared by the coordinator and the
// cmd/ drivers, in development or production configuration depending on
// a verbosity flag, the way cmd/nerd builds its CLI logger.
package log

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a *zap.Logger. verbose lowers the level to Debug and switches
// to zap's human-readable development encoder; otherwise a production
// (JSON) encoder at Info level is used.
func New(verbose bool) (*zap.Logger, error) {
	if verbose {
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		return cfg.Build()
	}
	cfg := zap.NewProductionConfig()
	return cfg.Build()
}

// Nop returns a logger that discards everything, for callers (tests,
// library consumers that haven't configured logging) that need a
// non-nil *zap.Logger.
func Nop() *zap.Logger {
	return zap.NewNop()
}
