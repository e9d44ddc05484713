package ui

import (
	"context"
	"errors"
	"testing"

	"MetaCleaner/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildGlobalConfig(t *testing.T) {
	base := common.GlobalCfg{Language: "en", CommandTimeoutSeconds: 5}

	updated, err := buildGlobalConfig(base, "ru", " /opt/exiftool ", []string{"", " /a "}, true, "30")
	require.NoError(t, err)
	assert.Equal(t, "ru", updated.Language)
	assert.Equal(t, "/opt/exiftool", updated.ExiftoolPath)
	assert.Equal(t, []string{"/a"}, updated.SearchPaths)
	assert.True(t, updated.JournalDisabled)
	assert.Equal(t, 30, updated.CommandTimeoutSeconds)

	kept, err := buildGlobalConfig(base, "", "", nil, false, "")
	require.NoError(t, err)
	assert.Equal(t, "en", kept.Language)
	assert.Zero(t, kept.CommandTimeoutSeconds)
}

func TestParseTimeout(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"", 0, false},
		{" 15 ", 15, false},
		{"-1", 0, true},
		{"abc", 0, true},
		{"999999", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseTimeout(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

type fakeVersioner struct {
	available bool
	version   string
	err       error
}

func (f fakeVersioner) Available() bool                         { return f.available }
func (f fakeVersioner) Version(context.Context) (string, error) { return f.version, f.err }

func TestDescribeToolVersion(t *testing.T) {
	assert.Equal(t, "about.label.toolmissing", describeToolVersion(nil))
	assert.Equal(t, "about.label.toolmissing", describeToolVersion(fakeVersioner{}))
	assert.Contains(t, describeToolVersion(fakeVersioner{available: true, version: "12.76"}), "12.76")
	assert.Contains(t, describeToolVersion(fakeVersioner{available: true, err: errors.New("boom")}), "boom")
}
