// Package logger provides the global structured logger used across the
// engine. The variadic arguments are key-value pairs.
package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

var global = zap.NewNop().Sugar()

func InitGlobalLogger(cfg *Config) {
	zapCfg := zap.NewProductionConfig()
	if cfg.Development {
		zapCfg = zap.NewDevelopmentConfig()
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Level)) {
	case "debug":
		zapCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	case "warn", "warning":
		zapCfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	case "error":
		zapCfg.Level = zap.NewAtomicLevelAt(zapcore.ErrorLevel)
	default:
		zapCfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}

	l, err := zapCfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return
	}

	global = l.Sugar()
}

func Debug(msg string, keysAndValues ...any) {
	global.Debugw(msg, keysAndValues...)
}

func Info(msg string, keysAndValues ...any) {
	global.Infow(msg, keysAndValues...)
}

func Warn(msg string, keysAndValues ...any) {
	global.Warnw(msg, keysAndValues...)
}

func Error(msg string, keysAndValues ...any) {
	global.Errorw(msg, keysAndValues...)
}
