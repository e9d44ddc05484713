package common

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterLoggerFormatsSeverity(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger(&buf)

	logger.Info("hello %s", "world")
	logger.Warning("careful")
	logger.Error("broken: %d", 42)

	out := buf.String()
	assert.Contains(t, out, "[INFO] hello world")
	assert.Contains(t, out, "[WARNING] careful")
	assert.Contains(t, out, "[ERROR] broken: 42")
	assert.Equal(t, 3, strings.Count(out, "\n"))
}

func TestNilLoggerIsSafe(t *testing.T) {
	var logger *Logger
	assert.NotPanics(t, func() {
		logger.Info("ignored")
		assert.NoError(t, logger.Close())
	})
}

func TestFileLoggerWritesAndCloses(t *testing.T) {
	path := filepath.Join(t.TempDir(), FolderNameLog, FileNameLog)

	logger, err := NewLogger(path, 1, 1)
	require.NoError(t, err)
	logger.Info("first line")
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[INFO] first line")
}

func TestLoggerRotatesOldFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileNameLog)
	require.NoError(t, os.WriteFile(path, []byte("old\n"), 0644))
	old := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(path, old, old))

	logger, err := NewLogger(path, 1, 1)
	require.NoError(t, err)
	defer logger.Close()

	rotated, err := filepath.Glob(filepath.Join(dir, "metacleaner_*.log"))
	require.NoError(t, err)
	assert.Len(t, rotated, 1)
}

func TestFlushEarlyLogs(t *testing.T) {
	CaptureEarlyLog(SeverityWarning, "before logger %d", 1)

	var buf bytes.Buffer
	FlushEarlyLogs(NewWriterLogger(&buf))

	assert.Contains(t, buf.String(), "[WARNING] before logger 1")

	buf.Reset()
	FlushEarlyLogs(NewWriterLogger(&buf))
	assert.Empty(t, buf.String())
}
