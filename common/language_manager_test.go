package common

import (
	"path/filepath"
	"testing"

	"MetaCleaner/locales"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeLanguageCode(t *testing.T) {
	assert.Equal(t, "ru", normalizeLanguageCode("ru_RU.UTF-8"))
	assert.Equal(t, "en", normalizeLanguageCode("en-US"))
	assert.Equal(t, "c", normalizeLanguageCode("C"))
	assert.Equal(t, "", normalizeLanguageCode(""))
}

func TestDetectLanguage(t *testing.T) {
	newMgr := func(lang string) *ConfigManager {
		mgr, err := NewConfigManager(filepath.Join(t.TempDir(), FileNameSettings))
		require.NoError(t, err)
		if lang != "" {
			require.NoError(t, mgr.SaveGlobalConfig(GlobalCfg{Language: lang}))
		}
		return mgr
	}
	logger := NewWriterLogger(nil)

	assert.Equal(t, "ru", detectLanguage(newMgr("RU"), logger, "en_US"))

	mgr := newMgr("")
	assert.Equal(t, "ru", detectLanguage(mgr, logger, "ru_RU.UTF-8"))
	assert.Equal(t, "ru", mgr.GetGlobalConfig().Language)

	mgr = newMgr("xx")
	assert.Equal(t, locales.DefaultLanguage, detectLanguage(mgr, logger, "fr_FR"))
	assert.Equal(t, locales.DefaultLanguage, mgr.GetGlobalConfig().Language)
	assert.Equal(t, locales.DefaultLanguage, locales.CurrentLanguage())
}
