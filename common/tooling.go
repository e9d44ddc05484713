// common/tooling.go

// Package common implements shared functionality used across the MetaCleaner application.
// This file builds the ExifTool locator and runner from the global settings.

package common

import (
	"runtime"

	"MetaCleaner/exiftool"
)

// ToolSearchPaths returns the candidate list for goos with the configured override and extra paths applied
func ToolSearchPaths(cfg GlobalCfg, goos string) exiftool.SearchPaths {
	if goos == "" {
		goos = runtime.GOOS
	}
	return exiftool.DefaultSearchPaths(goos).
		WithOverride(cfg.ExiftoolPath).
		WithExtra(cfg.SearchPaths)
}

// NewToolLocator creates the locator used at startup. warn receives the single not-found warning.
func NewToolLocator(cfg GlobalCfg, logger *Logger, warn func(message string)) *exiftool.Locator {
	opts := []exiftool.LocatorOption{
		exiftool.WithExecutor(exiftool.NewExecExecutor(cfg.CommandTimeout())),
		exiftool.WithLogger(logger),
	}
	if warn != nil {
		opts = append(opts, exiftool.WithWarning(warn))
	}
	return exiftool.NewLocator(ToolSearchPaths(cfg, runtime.GOOS), opts...)
}

// NewToolRunner creates the runner bound to ref with the configured timeout
func NewToolRunner(ref exiftool.ToolReference, cfg GlobalCfg, logger *Logger) *exiftool.Runner {
	return exiftool.NewRunner(ref,
		exiftool.WithRunnerExecutor(exiftool.NewExecExecutor(cfg.CommandTimeout())),
		exiftool.WithRunnerLogger(logger),
	)
}
