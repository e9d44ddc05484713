// common/language_manager.go

package common

import (
	"strings"

	"MetaCleaner/locales"
)

// LanguageItem is a selectable UI language
type LanguageItem struct {
	Code string
	Name string
}

// DetectAndSetLanguage sets the application language based on the following priorities:
// configured language, system language, English.
func DetectAndSetLanguage(configMgr *ConfigManager, logger *Logger) string {
	return detectLanguage(configMgr, logger, getSystemLanguage())
}

func detectLanguage(configMgr *ConfigManager, logger *Logger, systemLang string) string {
	globalConfig := configMgr.GetGlobalConfig()
	configLang := strings.ToLower(globalConfig.Language)
	supportedLangs := locales.GetAvailableLanguages()

	logger.Info("Supported languages: %v", supportedLangs)
	logger.Info("Current configuration language: %s", configLang)

	if configLang != "" {
		for _, lang := range supportedLangs {
			if strings.EqualFold(configLang, lang) {
				if err := locales.LoadTranslations(lang); err != nil {
					logger.Error("Failed to load translations for %s: %v", lang, err)
				} else {
					logger.Info("Loaded configured language: %s", lang)
					return lang
				}
			}
		}
	}

	systemLang = normalizeLanguageCode(systemLang)
	logger.Info("Detected system language: %s", systemLang)

	for _, lang := range supportedLangs {
		if strings.EqualFold(systemLang, lang) {
			if err := locales.LoadTranslations(lang); err != nil {
				logger.Error("Failed to load system language translations: %v", err)
				break
			}
			logger.Info("Using system language: %s", lang)
			globalConfig.Language = lang
			if err := configMgr.SaveGlobalConfig(globalConfig); err != nil {
				logger.Error("Failed to save language config: %v", err)
			}
			return lang
		}
	}

	logger.Info("Using fallback language: %s", locales.DefaultLanguage)
	if err := locales.LoadTranslations(locales.DefaultLanguage); err != nil {
		logger.Error("Failed to load fallback translations: %v", err)
	}
	globalConfig.Language = locales.DefaultLanguage
	if err := configMgr.SaveGlobalConfig(globalConfig); err != nil {
		logger.Error("Failed to save fallback language config: %v", err)
	}
	return locales.DefaultLanguage
}

// normalizeLanguageCode turns "ru_RU.UTF-8" or "ru-RU" into "ru"
func normalizeLanguageCode(locale string) string {
	locale = strings.ToLower(strings.TrimSpace(locale))
	if i := strings.IndexAny(locale, "_-."); i >= 0 {
		locale = locale[:i]
	}
	return locale
}

// GetAvailableLanguages returns the embedded languages with their display names
func GetAvailableLanguages() []LanguageItem {
	langs := locales.GetAvailableLanguages()
	var items []LanguageItem

	for _, code := range langs {
		name := locales.Translate("settings.lang." + code)
		if strings.HasPrefix(name, "settings.lang.") {
			name = code
		}
		items = append(items, LanguageItem{Code: code, Name: name})
	}
	return items
}
