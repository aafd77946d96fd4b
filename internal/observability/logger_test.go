package observability

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/restfield/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewWithoutSinksIsNop(t *testing.T) {
	logger := New(config.LogConfig{Level: "debug"}, nil)
	assert.False(t, logger.Core().Enabled(zapcore.ErrorLevel))
}

func TestNewConsoleJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(config.LogConfig{Level: "info", Format: "json"}, zapcore.AddSync(&buf))

	logger.Debug("hidden")
	logger.Info("field initialized", zap.Int("particles", 12))
	require.NoError(t, logger.Sync())

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "restfield", entry["logger"])
	assert.Equal(t, "field initialized", entry["msg"])
	assert.EqualValues(t, 12, entry["particles"])
}

func TestNewBadLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := New(config.LogConfig{Level: "loud", Format: "console"}, zapcore.AddSync(&buf))

	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
}

func TestNewFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "restfield.log")
	logger := New(config.LogConfig{Level: "debug", File: path, MaxSize: 1}, nil)

	logger.Debug("engine started")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"engine started"`)
}
