// common/files_helpers.go

package common

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileInfo provides extended information about a file
type FileInfo struct {
	Path      string
	Name      string
	Extension string
	Directory string
	Size      int64
	ModTime   time.Time
	IsDir     bool
}

// IsEmptyString reports whether s is empty after trimming whitespace
func IsEmptyString(s string) bool {
	return strings.TrimSpace(s) == ""
}

// NormalizePath provides normalized path
func NormalizePath(path string) string {
	if IsEmptyString(path) {
		return ""
	}
	return filepath.Clean(filepath.FromSlash(strings.TrimSpace(path)))
}

// FileExists checks if a regular (non-directory) file exists
func FileExists(filePath string) bool {
	info, err := os.Stat(filePath)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirectoryExists checks if a directory exists
func DirectoryExists(dirPath string) bool {
	info, err := os.Stat(dirPath)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// EnsureDirectoryExists ensures the specified directory exists
func EnsureDirectoryExists(path string) error {
	if IsEmptyString(path) {
		return fmt.Errorf("path cannot be empty")
	}

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}

	if os.IsNotExist(err) {
		if err := os.MkdirAll(path, 0755); err != nil {
			return fmt.Errorf("failed to create directory '%s': %w", path, err)
		}
		return nil
	}

	return fmt.Errorf("failed to check existence of directory '%s': %w", path, err)
}

// GetFileInfo returns extended information about a file
func GetFileInfo(filePath string) (FileInfo, error) {
	var fileInfo FileInfo

	info, err := os.Stat(filePath)
	if err != nil {
		return fileInfo, fmt.Errorf("failed to get file info for '%s': %w", filePath, err)
	}

	fileInfo.Path = filePath
	fileInfo.Name = info.Name()
	fileInfo.Extension = filepath.Ext(filePath)
	fileInfo.Directory = filepath.Dir(filePath)
	fileInfo.Size = info.Size()
	fileInfo.ModTime = info.ModTime()
	fileInfo.IsDir = info.IsDir()

	return fileInfo, nil
}

// JoinPaths joins path elements into a single path
func JoinPaths(elements ...string) string {
	return filepath.Join(elements...)
}

// IsFileWritable checks that filePath can be opened for writing without truncating it
func IsFileWritable(filePath string) error {
	f, err := os.OpenFile(filePath, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("file '%s' is not writable: %w", filePath, err)
	}
	return f.Close()
}

// AppDataDir returns the per-user application directory (e.g. %APPDATA%\MetaCleaner, ~/.config/MetaCleaner)
func AppDataDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, AppName), nil
}

// LocateOrCreatePath finds fileName using the application lookup chain and returns its path.
//  1. An existing file in the working directory wins.
//  2. Otherwise the per-user application directory (plus subDir) is used; it is created if needed.
//  3. If that fails the working directory is the fallback.
func LocateOrCreatePath(fileName string, subDir string) (string, error) {
	rootPath := filepath.Join(".", fileName)
	if FileExists(rootPath) {
		return rootPath, nil
	}

	if appDir, err := AppDataDir(); err == nil {
		dir := appDir
		if subDir != "" {
			dir = filepath.Join(appDir, subDir)
		}
		if err := EnsureDirectoryExists(dir); err == nil {
			return filepath.Join(dir, fileName), nil
		}
		CaptureEarlyLog(SeverityWarning, "Failed to prepare directory '%s', falling back to working directory", dir)
	}

	if err := IsDirWritable("."); err != nil {
		return "", fmt.Errorf("no writable location for %s: %w", fileName, err)
	}
	return rootPath, nil
}

// IsDirWritable checks if a directory is writable by attempting to create a temporary file
func IsDirWritable(dirPath string) error {
	if !DirectoryExists(dirPath) {
		return fmt.Errorf("directory does not exist: %s", dirPath)
	}

	tempFile := filepath.Join(dirPath, ".write_test")
	f, err := os.Create(tempFile)
	if err != nil {
		return fmt.Errorf("failed to create test file in directory '%s': %w", dirPath, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close test file in directory '%s': %w", dirPath, err)
	}
	if err := os.Remove(tempFile); err != nil {
		return fmt.Errorf("failed to remove test file in directory '%s': %w", dirPath, err)
	}
	return nil
}

// HasExtension reports whether path ends with one of the extensions (case-insensitive, with or without dot)
func HasExtension(path string, extensions []string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	for _, candidate := range extensions {
		if ext == strings.TrimPrefix(strings.ToLower(candidate), ".") {
			return true
		}
	}
	return false
}
