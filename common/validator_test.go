package common

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingReporter struct {
	infos  []string
	errors []string
}

func (r *recordingReporter) ClearStatusMessages()      { r.infos, r.errors = nil, nil }
func (r *recordingReporter) AddInfoMessage(m string)  { r.infos = append(r.infos, m) }
func (r *recordingReporter) AddErrorMessage(m string) { r.errors = append(r.errors, m) }

func TestValidateTargetFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "photo.jpg")
	require.NoError(t, os.WriteFile(file, []byte("jpeg"), 0644))

	assert.ErrorIs(t, ValidateTargetFile("", false), ErrNoFileSelected)
	assert.ErrorIs(t, ValidateTargetFile(filepath.Join(dir, "missing.jpg"), false), ErrFileMissing)
	assert.ErrorIs(t, ValidateTargetFile(dir, false), ErrNotRegularFile)
	assert.NoError(t, ValidateTargetFile(file, false))
	assert.NoError(t, ValidateTargetFile(file, true))
}

func TestValidateTargetFileReadOnly(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced")
	}
	file := filepath.Join(t.TempDir(), "locked.jpg")
	require.NoError(t, os.WriteFile(file, []byte("jpeg"), 0444))

	assert.NoError(t, ValidateTargetFile(file, false))
	assert.ErrorIs(t, ValidateTargetFile(file, true), ErrFileNotWritable)
}

func TestValidatorReportsStatus(t *testing.T) {
	reporter := &recordingReporter{}
	v := NewValidator(reporter, nil)

	assert.Error(t, v.Validate("", true))
	assert.Len(t, reporter.errors, 1)

	file := filepath.Join(t.TempDir(), "clip.mp4")
	require.NoError(t, os.WriteFile(file, []byte("mp4"), 0644))
	assert.NoError(t, v.Validate(file, true))
	assert.Empty(t, reporter.errors)
	assert.Len(t, reporter.infos, 2)
}

func TestValidateGlobalConfig(t *testing.T) {
	_, err := ValidateGlobalConfig(GlobalCfg{CommandTimeoutSeconds: -1})
	assert.ErrorIs(t, err, ErrInvalidSetting)

	_, err = ValidateGlobalConfig(GlobalCfg{CommandTimeoutSeconds: MaxCommandTimeoutSeconds + 1})
	assert.ErrorIs(t, err, ErrInvalidSetting)

	existing := t.TempDir()
	warnings, err := ValidateGlobalConfig(GlobalCfg{
		ExiftoolPath: existing,
		SearchPaths:  []string{filepath.Join(existing, "nope")},
	})
	require.NoError(t, err)
	assert.Len(t, warnings, 1)
}
