package locales

import (
	"embed"
	"encoding/json"
	"fmt"
	"sync"
)

// DefaultLanguage is used when neither the configuration nor the system locale matches
const DefaultLanguage = "en"

//go:embed en/translations.json
//go:embed ru/translations.json
var translationsFS embed.FS

// translations stores the loaded translations in memory
var (
	translations map[string]string
	current      string
	mu           sync.RWMutex
)

// LoadTranslations loads the translation file for the specified language.
// It reads the JSON translation file and stores the translations in memory.
// Returns an error if the file cannot be loaded or parsed.
func LoadTranslations(lang string) error {
	data, err := translationsFS.ReadFile(lang + "/translations.json")
	if err != nil {
		return fmt.Errorf("failed to load translation file: %w", err)
	}

	loaded := make(map[string]string)
	if err := json.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("failed to parse translation file: %w", err)
	}

	mu.Lock()
	translations = loaded
	current = lang
	mu.Unlock()
	return nil
}

// Translate returns the translated string for the given key.
// If the translation is not found, returns the key itself.
func Translate(key string) string {
	mu.RLock()
	defer mu.RUnlock()
	if translation, ok := translations[key]; ok {
		return translation
	}
	return key
}

// CurrentLanguage returns the code of the loaded language, empty before the first load
func CurrentLanguage() string {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// GetAvailableLanguages returns a list of all available languages
// from the embedded filesystem. Returns ["en"] as fallback on error.
func GetAvailableLanguages() []string {
	var langs []string
	entries, err := translationsFS.ReadDir(".")
	if err != nil {
		return []string{DefaultLanguage}
	}
	for _, entry := range entries {
		if entry.IsDir() {
			langs = append(langs, entry.Name())
		}
	}
	return langs
}
