//go:build windows

// common/language_manager_windows.go
// This file contains Windows-specific language detection functionality.

package common

import (
	"syscall"
	"unsafe"
)

// getSystemLanguage retrieves the system language on Windows via kernel32.dll calls.
func getSystemLanguage() string {
	kernel32 := syscall.NewLazyDLL("kernel32.dll")
	getUserDefaultLocaleName := kernel32.NewProc("GetUserDefaultLocaleName")

	localeName := make([]uint16, 85) // LOCALE_NAME_MAX_LENGTH
	getUserDefaultLocaleName.Call(uintptr(unsafe.Pointer(&localeName[0])), uintptr(len(localeName)))
	return syscall.UTF16ToString(localeName)
}
