package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"comanda/internal/config"
)

// New builds the application logger. Format "console" switches to the
// human-readable development encoder; anything else means JSON. An
// unknown level falls back to info rather than failing startup.
func New(cfg config.LogConfig) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	zcfg := zap.NewProductionConfig()
	if cfg.Format == "console" {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	zcfg.EncoderConfig.TimeKey = "timestamp"
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return zcfg.Build()
}
