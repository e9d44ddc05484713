package common

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJournal(t *testing.T) *JournalManager {
	t.Helper()
	jm, err := NewJournalManager(filepath.Join(t.TempDir(), "data", FileNameJournal), nil)
	require.NoError(t, err)
	t.Cleanup(func() { jm.Finalize() })
	return jm
}

func TestNewJournalManagerRejectsEmptyPath(t *testing.T) {
	_, err := NewJournalManager("  ", nil)
	assert.Error(t, err)
}

func TestJournalRecordAndList(t *testing.T) {
	jm := newTestJournal(t)

	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	first, err := jm.Record(JournalEntry{FilePath: "/photos/a.jpg", ToolPath: "/usr/bin/exiftool", ClearedAt: base, Succeeded: true})
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)

	_, err = jm.Record(JournalEntry{FilePath: "/photos/b.jpg", ToolPath: "/usr/bin/exiftool", ClearedAt: base.Add(time.Minute), ExitCode: 1, Stderr: "Error: bad file"})
	require.NoError(t, err)

	entries, err := jm.List(0)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "/photos/b.jpg", entries[0].FilePath)
	assert.False(t, entries[0].Succeeded)
	assert.Equal(t, 1, entries[0].ExitCode)
	assert.Equal(t, "Error: bad file", entries[0].Stderr)

	assert.Equal(t, first.ID, entries[1].ID)
	assert.True(t, entries[1].Succeeded)
	assert.True(t, base.Equal(entries[1].ClearedAt))
}

func TestJournalListLimit(t *testing.T) {
	jm := newTestJournal(t)
	for i := 0; i < 5; i++ {
		_, err := jm.Record(JournalEntry{FilePath: "/f.jpg", ToolPath: "exiftool", Succeeded: true})
		require.NoError(t, err)
	}

	entries, err := jm.List(3)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestJournalTruncatesStderr(t *testing.T) {
	jm := newTestJournal(t)
	entry, err := jm.Record(JournalEntry{FilePath: "/f.jpg", ToolPath: "exiftool", Stderr: strings.Repeat("x", maxStderrExcerpt+50)})
	require.NoError(t, err)
	assert.Len(t, entry.Stderr, maxStderrExcerpt)
}

func TestJournalClear(t *testing.T) {
	jm := newTestJournal(t)
	_, err := jm.Record(JournalEntry{FilePath: "/f.jpg", ToolPath: "exiftool", Succeeded: true})
	require.NoError(t, err)

	require.NoError(t, jm.Clear())

	entries, err := jm.List(0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestJournalPersistsAcrossManagers(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileNameJournal)

	jm, err := NewJournalManager(path, nil)
	require.NoError(t, err)
	_, err = jm.Record(JournalEntry{FilePath: "/f.jpg", ToolPath: "exiftool", Succeeded: true})
	require.NoError(t, err)
	require.NoError(t, jm.Finalize())

	reopened, err := NewJournalManager(path, nil)
	require.NoError(t, err)
	defer reopened.Finalize()

	entries, err := reopened.List(0)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestJournalFinalizeIsIdempotent(t *testing.T) {
	jm := newTestJournal(t)
	require.NoError(t, jm.Connect())
	require.NoError(t, jm.Finalize())
	require.NoError(t, jm.Finalize())

	_, err := jm.Record(JournalEntry{FilePath: "/f.jpg"})
	assert.Error(t, err)
}
