package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToolSearchPathsAppliesSettings(t *testing.T) {
	paths := ToolSearchPaths(GlobalCfg{
		ExiftoolPath: "/custom/exiftool",
		SearchPaths:  []string{"/extra/one"},
	}, "linux")

	assert.Equal(t, "/custom/exiftool", paths.Primary)
	assert.Equal(t, "/extra/one", paths.Alternatives[0])
	assert.Equal(t, "/usr/local/bin/exiftool", paths.Alternatives[1])
	assert.Equal(t, "exiftool", paths.Command)
}

func TestToolSearchPathsDefaults(t *testing.T) {
	paths := ToolSearchPaths(GlobalCfg{}, "windows")
	assert.Equal(t, `c:\exiftool\exiftool.exe`, paths.Primary)
}
