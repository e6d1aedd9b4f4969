package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

// TestNew_FileOutput tests JSON logging into a file
func TestNew_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "combined.log")

	log, err := New(Config{Level: "info", Format: "json", Output: path})
	require.NoError(t, err)

	log.Info("Ride created", Int64("ride_id", 7), Duration("latency", 1500*time.Millisecond))
	log.Debug("dropped below level")
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "Ride created", entry["message"])
	assert.Equal(t, float64(7), entry["ride_id"])
	assert.Equal(t, 1.5, entry["latency_seconds"])
}

// TestNew_InvalidLevelFallsBackToInfo tests level parsing
func TestNew_InvalidLevelFallsBackToInfo(t *testing.T) {
	log, err := New(Config{Level: "loud", Format: "console", Output: "stderr"})
	require.NoError(t, err)

	assert.True(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, log.Core().Enabled(zapcore.DebugLevel))
}

// TestNew_BadOutputPath tests that an unopenable sink is reported
func TestNew_BadOutputPath(t *testing.T) {
	_, err := New(Config{Level: "info", Format: "json", Output: filepath.Join(t.TempDir(), "missing", "dir", "x.log")})
	assert.Error(t, err)
}

// TestWith tests child loggers keep fields
func TestWith(t *testing.T) {
	child := NewNop().With(String("request_id", "abc"))
	assert.NotNil(t, child)
	child.Info("noop")
}
