package cmd

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// bootstrapLogger is a plain console logger for the window before the
// config file has been read.
func bootstrapLogger() *zap.Logger {
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig = encCfg
	lg, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return lg
}
