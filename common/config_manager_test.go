package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigManagerUsesDefaultsWhenFileMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileNameSettings)

	mgr, err := NewConfigManager(path)
	require.NoError(t, err)

	global := mgr.GetGlobalConfig()
	assert.Empty(t, global.ExiftoolPath)
	assert.False(t, global.JournalDisabled)
	assert.Equal(t, time.Duration(0), global.CommandTimeout())
	assert.Equal(t, GetDefaultCleanerCfg(), mgr.GetCleanerCfg())
	assert.NoFileExists(t, path)
}

func TestNewConfigManagerRejectsEmptyPath(t *testing.T) {
	_, err := NewConfigManager("")
	assert.Error(t, err)
}

func TestSaveGlobalConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileNameSettings)
	mgr, err := NewConfigManager(path)
	require.NoError(t, err)

	require.NoError(t, mgr.SaveGlobalConfig(GlobalCfg{
		Language:              "ru",
		ExiftoolPath:          "/opt/tools/exiftool",
		SearchPaths:           []string{" /a ", "", "/b", "/a"},
		JournalDisabled:       true,
		CommandTimeoutSeconds: 30,
	}))

	reloaded, err := NewConfigManager(path)
	require.NoError(t, err)
	global := reloaded.GetGlobalConfig()
	assert.Equal(t, "ru", global.Language)
	assert.Equal(t, "/opt/tools/exiftool", global.ExiftoolPath)
	assert.Equal(t, []string{"/a", "/b"}, global.SearchPaths)
	assert.True(t, global.JournalDisabled)
	assert.Equal(t, 30*time.Second, global.CommandTimeout())
}

func TestGetGlobalConfigReturnsCopy(t *testing.T) {
	mgr, err := NewConfigManager(filepath.Join(t.TempDir(), FileNameSettings))
	require.NoError(t, err)
	require.NoError(t, mgr.SaveGlobalConfig(GlobalCfg{SearchPaths: []string{"/a"}}))

	global := mgr.GetGlobalConfig()
	global.SearchPaths[0] = "/changed"

	assert.Equal(t, []string{"/a"}, mgr.GetGlobalConfig().SearchPaths)
}

func TestSaveModuleCfg(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileNameSettings)
	mgr, err := NewConfigManager(path)
	require.NoError(t, err)

	cfg := mgr.GetCleanerCfg()
	cfg.LastDirectory.Value = "/photos"
	require.NoError(t, mgr.SaveModuleCfg(ModuleKeyCleaner, cfg))

	reloaded, err := NewConfigManager(path)
	require.NoError(t, err)
	assert.Equal(t, "/photos", reloaded.GetCleanerCfg().LastDirectory.Value)

	assert.Error(t, mgr.SaveModuleCfg("unknown", cfg))
	assert.Error(t, mgr.SaveModuleCfg(ModuleKeyCleaner, "not a config"))
}

func TestLoadCfgRejectsInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileNameSettings)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	mgr, err := NewConfigManager(path)
	require.NoError(t, err)
	assert.Error(t, mgr.LoadCfg())
	assert.Equal(t, GetDefaultCleanerCfg(), mgr.GetCleanerCfg())
}

func TestCreateCfgFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg", FileNameSettings)
	require.NoError(t, CreateCfgFile(path))
	assert.FileExists(t, path)

	mgr, err := NewConfigManager(path)
	require.NoError(t, err)
	assert.NoError(t, mgr.LoadCfg())
}
