package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasExtension(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/p/photo.JPG", true},
		{"/p/clip.mov", true},
		{"/p/scan.tiff", true},
		{"/p/notes.txt", false},
		{"/p/noext", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, HasExtension(tt.path, MediaExtensions))
		})
	}
}

func TestExistenceHelpers(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.png")
	require.NoError(t, os.WriteFile(file, []byte("png"), 0644))

	assert.True(t, FileExists(file))
	assert.False(t, FileExists(dir))
	assert.True(t, DirectoryExists(dir))
	assert.False(t, DirectoryExists(file))

	info, err := GetFileInfo(file)
	require.NoError(t, err)
	assert.Equal(t, "a.png", info.Name)
	assert.Equal(t, int64(3), info.Size)
}

func TestEnsureDirectoryExists(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "x", "y")
	require.NoError(t, EnsureDirectoryExists(dir))
	assert.DirExists(t, dir)
	assert.NoError(t, IsDirWritable(dir))
	assert.Error(t, EnsureDirectoryExists(" "))
}

func TestNormalizePath(t *testing.T) {
	assert.Equal(t, "", NormalizePath("   "))
	assert.Equal(t, filepath.Clean("a/b"), NormalizePath(" a/./b "))
}
