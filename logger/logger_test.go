package logger

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestInitLogger_Level verifies the configured level is applied
func TestInitLogger_Level(t *testing.T) {
	require.NoError(t, InitLogger("debug", ""))
	assert.Equal(t, logrus.DebugLevel, Log.GetLevel())
}

// TestInitLogger_UnknownLevel verifies fallback to info
func TestInitLogger_UnknownLevel(t *testing.T) {
	require.NoError(t, InitLogger("chatty", ""))
	assert.Equal(t, logrus.InfoLevel, Log.GetLevel())
}

// TestInitLogger_File verifies log lines are written to the file
func TestInitLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scrape.log")
	require.NoError(t, InitLogger("info", path))
	t.Cleanup(Discard)

	Log.Info("hello from the test")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello from the test")
}

// TestInitLogger_BadFile verifies an unwritable path is reported
func TestInitLogger_BadFile(t *testing.T) {
	err := InitLogger("info", filepath.Join(t.TempDir(), "missing", "scrape.log"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open log file")
}

// TestQuiet_KeepsFile verifies Quiet writes only to the log file
func TestQuiet_KeepsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scrape.log")
	require.NoError(t, InitLogger("info", path))
	t.Cleanup(Discard)

	Quiet()

	file, ok := Log.Out.(*os.File)
	require.True(t, ok, "output should be the log file alone")
	assert.NotEqual(t, os.Stderr, file)

	Log.Info("only in the file")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "only in the file")
}

// TestQuiet_NoFile verifies Quiet discards output without a log file
func TestQuiet_NoFile(t *testing.T) {
	require.NoError(t, InitLogger("info", ""))
	t.Cleanup(Discard)

	Quiet()

	assert.Equal(t, io.Discard, Log.Out)
}
