//go:build !windows

// common/language_manager_unix.go
// This file contains language detection for macOS and Linux.

package common

import "os"

// getSystemLanguage reads the locale from the environment, LC_ALL > LC_MESSAGES > LANG.
func getSystemLanguage() string {
	for _, env := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if locale := os.Getenv(env); locale != "" {
			return locale
		}
	}
	return ""
}
