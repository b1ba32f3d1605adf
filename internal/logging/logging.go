// Package logging configures the application-wide zap logger.
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a zap logger: JSON output in production, human-readable console
// output everywhere else. The level defaults to info and can be overridden
// with LOG_LEVEL (debug, info, warn, error).
func New(production bool) (*zap.Logger, error) {
	var cfg zap.Config
	if production {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	if levelStr := os.Getenv("LOG_LEVEL"); levelStr != "" {
		var level zapcore.Level
		if err := level.UnmarshalText([]byte(levelStr)); err == nil {
			cfg.Level = zap.NewAtomicLevelAt(level)
		}
	}

	return cfg.Build()
}
