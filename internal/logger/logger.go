package logger

import (
	"fmt"
	"os"
	"path/filepath"

	config "github.com/inference-gateway/hotcli/config"
	zap "go.uber.org/zap"
	zapcore "go.uber.org/zap/zapcore"
)

// Init builds the process logger and installs it as zap's global logger.
// Stdout belongs to the console, so logs only ever go to the configured file.
// An empty path disables logging.
func Init(verbose bool, cfg config.LoggingConfig) error {
	if cfg.Path == "" {
		zap.ReplaceGlobals(zap.NewNop())
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	level := zapcore.InfoLevel
	if verbose || cfg.Debug {
		level = zapcore.DebugLevel
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.OutputPaths = []string{cfg.Path}
	zcfg.ErrorOutputPaths = []string{cfg.Path}
	zcfg.EncoderConfig.TimeKey = "time"
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zcfg.Sampling = nil

	l, err := zcfg.Build()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}

	zap.ReplaceGlobals(l)
	return nil
}

// Close flushes buffered log entries
func Close() {
	_ = zap.L().Sync()
}

// Debug logs a debug message
func Debug(msg string, args ...any) {
	zap.S().Debugw(msg, args...)
}

// Info logs an info message
func Info(msg string, args ...any) {
	zap.S().Infow(msg, args...)
}

// Warn logs a warning message
func Warn(msg string, args ...any) {
	zap.S().Warnw(msg, args...)
}

// Error logs an error message
func Error(msg string, args ...any) {
	zap.S().Errorw(msg, args...)
}
