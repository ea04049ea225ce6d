// Package log holds the process-wide structured logger used by the geolbl tools.
package log

import (
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger atomic.Pointer[zap.Logger]

func init() {
	logger.Store(newLogger(zapcore.InfoLevel, false))
}

func newLogger(level zapcore.Level, development bool) *zap.Logger {
	var cfg zap.Config
	if development {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return zap.NewNop()
	}
	return l
}

// Init replaces the global logger. level is one of debug, info, warn, error.
func Init(level string, development bool) error {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return err
	}
	logger.Store(newLogger(lvl, development))
	return nil
}

// Replace swaps the global logger and returns the previous one.
func Replace(l *zap.Logger) *zap.Logger {
	return logger.Swap(l)
}

// With adds fields to every subsequent entry of the global logger.
func With(fields ...zap.Field) {
	logger.Store(logger.Load().With(fields...))
}

// Debug logs at debug level.
func Debug(msg string, fields ...zap.Field) {
	logger.Load().Debug(msg, fields...)
}

// Info logs at info level.
func Info(msg string, fields ...zap.Field) {
	logger.Load().Info(msg, fields...)
}

// Warn logs at warn level.
func Warn(msg string, fields ...zap.Field) {
	logger.Load().Warn(msg, fields...)
}

// Error logs at error level.
func Error(msg string, fields ...zap.Field) {
	logger.Load().Error(msg, fields...)
}

// Fatal logs and exits the process with status 1.
func Fatal(msg string, fields ...zap.Field) {
	logger.Load().Fatal(msg, fields...)
}

// Sync flushes buffered entries.
func Sync() {
	_ = logger.Load().Sync()
}
