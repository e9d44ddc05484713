// common/config_default.go

// Package common implements shared functionality used across the MetaCleaner application.
// This file contains default configuration values.

package common

// DefaultCfg returns the configuration written to a fresh settings.conf
func DefaultCfg() *Cfg {
	return &Cfg{
		Global: GlobalCfg{
			Language:              "",
			ExiftoolPath:          "",
			SearchPaths:           nil,
			JournalDisabled:       false,
			CommandTimeoutSeconds: 0,
		},
		Modules: ModuleCfgs{
			Cleaner: GetDefaultCleanerCfg(),
		},
	}
}

// GetDefaultCleanerCfg returns default configuration for the cleaner module
func GetDefaultCleanerCfg() CleanerCfg {
	return CleanerCfg{
		LastDirectory: FieldCfg{
			FieldType:      "folder",
			Required:       false,
			ValidationType: "exists",
			Value:          "",
		},
		ShowDetailedOnSelect: FieldCfg{
			FieldType:      "checkbox",
			Required:       false,
			ValidationType: "none",
			Value:          "false",
		},
	}
}
