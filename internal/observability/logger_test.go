package observability

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/iburimskiy/wave-line/internal/config"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) Sync() error { return nil }

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestConsoleLogger(t *testing.T) {
	out := &syncBuffer{}
	l, err := New(config.LoggerConfig{Level: "debug", Format: "console", Color: true}, out)
	require.NoError(t, err)

	l.Named("engine").Info("Wave engine started", zap.Int("ticks", 3))
	line := out.String()
	assert.Contains(t, line, "\x1b[34mINFO\x1b[0m")
	assert.Contains(t, line, "engine")
	assert.Contains(t, line, "Wave engine started")
	assert.Contains(t, line, `"ticks": 3`)
}

func TestConsoleLoggerWithoutColor(t *testing.T) {
	out := &syncBuffer{}
	l, err := New(config.LoggerConfig{Level: "info", Format: "console"}, out)
	require.NoError(t, err)

	l.Warn("plain")
	assert.Contains(t, out.String(), "WARN")
	assert.NotContains(t, out.String(), "\x1b[")
}

func TestJSONLogger(t *testing.T) {
	out := &syncBuffer{}
	l, err := New(config.LoggerConfig{Level: "info", Format: "json"}, out)
	require.NoError(t, err)
	l.Debug("hidden")
	l.Named("nav").Warn("visible", zap.String("k", "v"))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 1)
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "nav", entry["logger"])
	assert.Equal(t, "v", entry["k"])
}

func TestInvalidLevel(t *testing.T) {
	_, err := New(config.LoggerConfig{Level: "loud"}, &syncBuffer{})
	assert.ErrorContains(t, err, "logger level")
}

func TestEmptyLevelIsInfo(t *testing.T) {
	l, err := New(config.LoggerConfig{}, &syncBuffer{})
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
}

func TestFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wave.log")
	l, err := New(config.LoggerConfig{
		Level:  "info",
		Format: "console",
		File:   config.LogFileConfig{Path: path, MaxSizeMB: 1},
	}, &syncBuffer{})
	require.NoError(t, err)
	l.Info("to file")
	require.NoError(t, l.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"to file"`)
}

func TestInstall(t *testing.T) {
	t.Cleanup(func() { Install(nil) })

	Install(nil)
	require.NotNil(t, L())
	L().Info("dropped")

	out := &syncBuffer{}
	l, err := New(config.LoggerConfig{Level: "info", Format: "json"}, out)
	require.NoError(t, err)
	Install(l)
	assert.Same(t, l, L())

	L().Info("kept")
	Sync()
	assert.Contains(t, out.String(), "kept")
	assert.NotContains(t, out.String(), "dropped")
}
