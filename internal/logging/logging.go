// Package logging configures the process-wide zap logger. Log output goes
// to stderr so report JSON on stdout stays machine-readable.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a console-encoded SugaredLogger. With debug enabled it logs at
// debug level with development settings, otherwise info and above.
func New(debug bool) (*zap.SugaredLogger, error) {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}
	cfg.Encoding = "console"
	cfg.OutputPaths = []string{"stderr"}
	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}

// Nop returns a logger that discards everything. Used in tests and as the
// fallback when no logger is injected.
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
