package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"docstatus/internal/config"
)

// New builds a logger from the log section of the config. An unrecognized
// level falls back to info; "json" selects the production encoder and
// anything else the console encoder.
func New(cfg *config.LogConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	zcfg := zap.NewDevelopmentConfig()
	if cfg.Format == "json" {
		zcfg = zap.NewProductionConfig()
		zcfg.EncoderConfig.TimeKey = "timestamp"
		zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		zcfg.EncoderConfig.MessageKey = "message"
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	// Reports may be written to stdout.
	zcfg.OutputPaths = []string{"stderr"}
	zcfg.ErrorOutputPaths = []string{"stderr"}

	return zcfg.Build()
}
