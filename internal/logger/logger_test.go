package logger

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	config "github.com/inference-gateway/hotcli/config"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
	zap "go.uber.org/zap"
)

func TestInit_WritesToConfiguredFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "hotcli.log")
	restore := zap.ReplaceGlobals(zap.NewNop())
	defer restore()

	require.NoError(t, Init(false, config.LoggingConfig{Path: path}))
	Info("console started", "mode", "Interactive")
	Debug("filtered out at info level")
	Close()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "console started")
	assert.NotContains(t, string(data), "filtered out")
}

func TestInit_EmptyPathDisablesLogging(t *testing.T) {
	restore := zap.ReplaceGlobals(zap.NewNop())
	defer restore()

	require.NoError(t, Init(true, config.LoggingConfig{}))
	assert.False(t, zap.L().Core().Enabled(zap.ErrorLevel))
}

func TestPackageFunctions_UseGlobalLogger(t *testing.T) {
	logs, restore := UseTestLogger()
	defer restore()

	Debug("debug message", "key", "value")
	Warn("warn message")
	Error("error message", "err", "boom")

	require.Equal(t, 3, logs.Len())
	entries := logs.All()
	assert.Equal(t, "debug message", entries[0].Message)
	assert.Equal(t, "value", entries[0].ContextMap()["key"])
	assert.Equal(t, "boom", entries[2].ContextMap()["err"])
}

func TestFromContext(t *testing.T) {
	l, logs := TestLogger()
	ctx := ContextWithLogger(context.Background(), l)
	ctx = With(ctx, zap.String("task_id", "t-1"))

	FromContext(ctx).Info("task started")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "t-1", logs.All()[0].ContextMap()["task_id"])
}
