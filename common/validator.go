// common/validator.go

// Package common implements shared functionality used across the MetaCleaner application.
// This file validates the selected file before an ExifTool run and the settings before they are saved.

package common

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"MetaCleaner/locales"
)

var (
	// ErrNoFileSelected is returned when an operation is requested without a target file
	ErrNoFileSelected = errors.New("no file selected")
	// ErrFileMissing is returned when the target file no longer exists
	ErrFileMissing = errors.New("file does not exist")
	// ErrNotRegularFile is returned when the target is a directory or a device
	ErrNotRegularFile = errors.New("not a regular file")
	// ErrFileNotWritable is returned when a clear is requested on a read-only file
	ErrFileNotWritable = errors.New("file is not writable")
	// ErrInvalidSetting is returned for settings values outside their allowed range
	ErrInvalidSetting = errors.New("invalid setting")
)

// MaxCommandTimeoutSeconds is the largest accepted per-run timeout
const MaxCommandTimeoutSeconds = 3600

// statusReporter is the part of ModuleBase the validator reports progress to
type statusReporter interface {
	ClearStatusMessages()
	AddInfoMessage(string)
	AddErrorMessage(string)
}

// Validator checks the target file of a module before a tool invocation.
type Validator struct {
	reporter statusReporter
	logger   *Logger
}

// NewValidator creates a new instance of Validator. reporter may be nil.
func NewValidator(reporter statusReporter, logger *Logger) *Validator {
	if logger == nil {
		logger = NewWriterLogger(nil)
	}
	return &Validator{reporter: reporter, logger: logger}
}

// Validate checks path for an operation and reports the result as status messages.
// Mutating operations additionally require write access.
func (v *Validator) Validate(path string, mutating bool) error {
	if v.reporter != nil {
		v.reporter.ClearStatusMessages()
		v.reporter.AddInfoMessage(locales.Translate("validator.status.start"))
	}

	if err := ValidateTargetFile(path, mutating); err != nil {
		v.logger.Warning("Validation of '%s' failed: %v", path, err)
		if v.reporter != nil {
			v.reporter.AddErrorMessage(fmt.Sprintf("%s: %v", locales.Translate("validator.status.failed"), err))
		}
		return err
	}

	if v.reporter != nil {
		v.reporter.AddInfoMessage(locales.Translate("validator.status.ok"))
	}
	return nil
}

// ValidateTargetFile checks that path names an existing regular file, writable when mutating is set.
func ValidateTargetFile(path string, mutating bool) error {
	if IsEmptyString(path) {
		return ErrNoFileSelected
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrFileMissing, path)
		}
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s", ErrNotRegularFile, path)
	}

	if mutating {
		if err := IsFileWritable(path); err != nil {
			return fmt.Errorf("%w: %v", ErrFileNotWritable, err)
		}
	}
	return nil
}

// ValidateGlobalConfig checks settings before they are saved.
// A configured ExiftoolPath that does not exist is only reported through warnings.
func ValidateGlobalConfig(cfg GlobalCfg) (warnings []string, err error) {
	if cfg.CommandTimeoutSeconds < 0 || cfg.CommandTimeoutSeconds > MaxCommandTimeoutSeconds {
		return nil, fmt.Errorf("%w: %s must be between 0 and %d", ErrInvalidSetting, "CommandTimeoutSeconds", MaxCommandTimeoutSeconds)
	}

	if p := strings.TrimSpace(cfg.ExiftoolPath); p != "" && !FileExists(p) && !DirectoryExists(p) {
		warnings = append(warnings, fmt.Sprintf(locales.Translate("validator.warn.pathmissing"), p))
	}
	for _, p := range cfg.SearchPaths {
		if p = strings.TrimSpace(p); p != "" && !FileExists(p) && !DirectoryExists(p) {
			warnings = append(warnings, fmt.Sprintf(locales.Translate("validator.warn.pathmissing"), p))
		}
	}
	return warnings, nil
}
