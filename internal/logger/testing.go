package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// TestLogger creates a logger that captures logs for assertions
func TestLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	return zap.New(core), logs
}

// UseTestLogger installs an observing logger as the global logger and returns
// the captured entries plus a restore func
func UseTestLogger() (*observer.ObservedLogs, func()) {
	l, logs := TestLogger()
	restore := zap.ReplaceGlobals(l)
	return logs, restore
}
