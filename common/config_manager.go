// common/config_manager.go
// Package common implements shared functionality used across the MetaCleaner application.
// This file contains configuration management functionality.

package common

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"time"
)

// Cfg maps the whole settings.conf file.
type Cfg struct {
	Global  GlobalCfg  `json:"global"`
	Modules ModuleCfgs `json:"modules"`
}

// GlobalCfg holds application-wide settings.
type GlobalCfg struct {
	Language string `json:"Language"`
	// ExiftoolPath replaces the built-in primary candidate when set.
	ExiftoolPath string `json:"ExiftoolPath"`
	// SearchPaths are extra candidates probed before the built-in alternatives.
	SearchPaths []string `json:"SearchPaths"`
	// JournalDisabled turns off the clear history database.
	JournalDisabled bool `json:"JournalDisabled"`
	// CommandTimeoutSeconds bounds each ExifTool run; 0 means no timeout.
	CommandTimeoutSeconds int `json:"CommandTimeoutSeconds"`
}

// CommandTimeout returns the configured timeout as a duration.
func (g GlobalCfg) CommandTimeout() time.Duration {
	if g.CommandTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(g.CommandTimeoutSeconds) * time.Second
}

// FieldCfg describes a single persisted module field. Value is always a string and is
// converted where it is used.
type FieldCfg struct {
	FieldType      string `json:"FieldType"`
	Required       bool   `json:"Required"`
	ValidationType string `json:"ValidationType"`
	Value          string `json:"Value"`
}

// ModuleCfgs groups the configurations of all modules.
type ModuleCfgs struct {
	Cleaner CleanerCfg `json:"cleaner"`
}

// CleanerCfg holds the persisted state of the metadata cleaner module.
type CleanerCfg struct {
	LastDirectory        FieldCfg `json:"last_directory"`
	ShowDetailedOnSelect FieldCfg `json:"show_detailed_on_select"`
}

// ConfigManager handles loading, saving, and managing application configuration.
// It provides thread-safe access to both global and module-specific settings.
type ConfigManager struct {
	configPath string
	cfg        *Cfg
	mutex      sync.Mutex
}

// NewConfigManager initializes a configuration manager for configPath.
// A missing or unreadable file is not fatal: defaults are used and written on first save.
func NewConfigManager(configPath string) (*ConfigManager, error) {
	if IsEmptyString(configPath) {
		return nil, fmt.Errorf("NewConfigManager: config path is empty")
	}

	mgr := &ConfigManager{
		configPath: configPath,
		cfg:        DefaultCfg(),
	}

	if err := mgr.LoadCfg(); err != nil {
		CaptureEarlyLog(SeverityInfo, "Configuration '%s' not loaded, defaults will be written on first save: %v", configPath, err)
	}

	return mgr, nil
}

// Path returns the configuration file path
func (mgr *ConfigManager) Path() string {
	return mgr.configPath
}

// GetGlobalConfig returns a copy of the current global configuration.
func (mgr *ConfigManager) GetGlobalConfig() GlobalCfg {
	mgr.mutex.Lock()
	defer mgr.mutex.Unlock()

	global := mgr.cfg.Global
	global.SearchPaths = append([]string(nil), mgr.cfg.Global.SearchPaths...)
	return global
}

// SaveGlobalConfig updates and persists the global configuration.
func (mgr *ConfigManager) SaveGlobalConfig(config GlobalCfg) error {
	mgr.mutex.Lock()
	config.SearchPaths = cleanSearchPaths(config.SearchPaths)
	mgr.cfg.Global = config
	mgr.mutex.Unlock()

	return mgr.SaveCfg()
}

// LoadCfg reads the typed configuration from disk.
func (mgr *ConfigManager) LoadCfg() error {
	mgr.mutex.Lock()
	defer mgr.mutex.Unlock()

	data, err := os.ReadFile(mgr.configPath)
	if err != nil {
		return err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}

	cfg := DefaultCfg()
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("ConfigManager.LoadCfg: failed to unmarshal config data from %s: %w", mgr.configPath, err)
	}
	if isEmptyModuleConfig(cfg.Modules.Cleaner) {
		cfg.Modules.Cleaner = GetDefaultCleanerCfg()
	}

	mgr.cfg = cfg
	return nil
}

// SaveCfg writes the typed configuration to disk.
func (mgr *ConfigManager) SaveCfg() error {
	mgr.mutex.Lock()
	defer mgr.mutex.Unlock()

	data, err := json.MarshalIndent(mgr.cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("ConfigManager.SaveCfg: failed to marshal config data: %w", err)
	}

	if err := EnsureDirectoryExists(filepath.Dir(mgr.configPath)); err != nil {
		return fmt.Errorf("ConfigManager.SaveCfg: %w", err)
	}

	if err = os.WriteFile(mgr.configPath, data, 0644); err != nil {
		return fmt.Errorf("ConfigManager.SaveCfg: failed to write config file %s: %w", mgr.configPath, err)
	}
	return nil
}

// isEmptyModuleConfig checks if a module configuration contains only empty field values
func isEmptyModuleConfig(config interface{}) bool {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return true
		}
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return true
	}

	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		if field.Kind() != reflect.Struct {
			continue
		}
		valueField := field.FieldByName("Value")
		if valueField.IsValid() && valueField.Kind() == reflect.String && valueField.String() != "" {
			return false
		}
	}
	return true
}

// GetModuleCfg returns the typed configuration of a module
func (mgr *ConfigManager) GetModuleCfg(moduleKey string) (interface{}, error) {
	mgr.mutex.Lock()
	defer mgr.mutex.Unlock()

	switch strings.ToLower(moduleKey) {
	case strings.ToLower(ModuleKeyCleaner):
		return mgr.cfg.Modules.Cleaner, nil
	default:
		return nil, fmt.Errorf("unknown module type: %s", moduleKey)
	}
}

// SaveModuleCfg stores the typed configuration of a module and persists it
func (mgr *ConfigManager) SaveModuleCfg(moduleKey string, config interface{}) error {
	mgr.mutex.Lock()
	switch strings.ToLower(moduleKey) {
	case strings.ToLower(ModuleKeyCleaner):
		cfg, ok := config.(CleanerCfg)
		if !ok {
			mgr.mutex.Unlock()
			return fmt.Errorf("invalid configuration type for %s", moduleKey)
		}
		mgr.cfg.Modules.Cleaner = cfg
	default:
		mgr.mutex.Unlock()
		return fmt.Errorf("unknown module type: %s", moduleKey)
	}
	mgr.mutex.Unlock()

	return mgr.SaveCfg()
}

// GetCleanerCfg returns the cleaner module configuration
func (mgr *ConfigManager) GetCleanerCfg() CleanerCfg {
	cfg, err := mgr.GetModuleCfg(ModuleKeyCleaner)
	if err != nil {
		return GetDefaultCleanerCfg()
	}
	return cfg.(CleanerCfg)
}

// CreateCfgFile creates a configuration file with default settings
func CreateCfgFile(cfgPath string) error {
	dir := filepath.Dir(cfgPath)
	if err := EnsureDirectoryExists(dir); err != nil {
		return fmt.Errorf("CreateCfgFile: failed to ensure directory %s exists: %w", dir, err)
	}

	data, err := json.MarshalIndent(DefaultCfg(), "", "  ")
	if err != nil {
		return fmt.Errorf("CreateCfgFile: failed to marshal default config data: %w", err)
	}

	if err = os.WriteFile(cfgPath, data, 0644); err != nil {
		return fmt.Errorf("CreateCfgFile: failed to write default config file %s: %w", cfgPath, err)
	}
	return nil
}

func cleanSearchPaths(paths []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, p := range paths {
		p = strings.TrimSpace(p)
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}
