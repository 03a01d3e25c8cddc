package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"ERROR", LevelError},
		{"bogus", LevelInfo},
		{"", LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.in), "ParseLevel(%q)", tt.in)
	}
}

func TestLoggerWritesToFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "test.log")

	log, err := New(Config{Level: "debug", File: logFile})
	require.NoError(t, err)

	log.Debug("scanner", "starting scan", F("folder", "/shows/x"))
	log.Info("scanner", "scan complete", F("files", 3))
	log.Error("novelty", "save failed", os.ErrPermission)
	require.NoError(t, log.Close())

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, "[DEBUG] [scanner] starting scan | folder=/shows/x")
	assert.Contains(t, out, "[INFO] [scanner] scan complete | files=3")
	assert.Contains(t, out, "[ERROR] [novelty] save failed | error=permission denied")
}

func TestLoggerLevelFilter(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "test.log")

	log, err := New(Config{Level: "warn", File: logFile})
	require.NoError(t, err)

	log.Debug("x", "hidden debug")
	log.Info("x", "hidden info")
	log.Warn("x", "visible warn")
	require.NoError(t, log.Close())

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)

	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "visible warn")
}

func TestRotateFiles(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "app.log")

	require.NoError(t, os.WriteFile(base, []byte("current"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.1.log"), []byte("one"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.2.log"), []byte("two"), 0o644))

	require.NoError(t, rotateFiles(base, 2))

	// Current becomes .1, .1 becomes .2, old .2 falls off the end.
	assert.NoFileExists(t, base)
	one, err := os.ReadFile(filepath.Join(dir, "app.1.log"))
	require.NoError(t, err)
	assert.Equal(t, "current", string(one))
	two, err := os.ReadFile(filepath.Join(dir, "app.2.log"))
	require.NoError(t, err)
	assert.Equal(t, "one", string(two))
	assert.NoFileExists(t, filepath.Join(dir, "app.3.log"))
}

func TestNop(t *testing.T) {
	log := Nop()
	log.Info("x", "goes nowhere")
	log.Error("x", "also nowhere", os.ErrNotExist)
	assert.Empty(t, log.FilePath())
}
