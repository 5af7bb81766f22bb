package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/afero"
)

// FileLoggingConfig represents file-based logging configuration
type FileLoggingConfig struct {
	Enabled    bool   `json:"enabled"`      // Whether file logging is enabled
	Filename   string `json:"filename"`     // Log file path (empty = XDG cache path)
	MaxSizeMB  int    `json:"max_size_mb"`  // Max file size in MB before rotation
	MaxBackups int    `json:"max_backups"`  // Max number of backup files to keep
	MaxAgeDays int    `json:"max_age_days"` // Max age in days before deletion
	Compress   bool   `json:"compress"`     // Whether to compress rotated files
}

// HistoryConfig represents selection history configuration
type HistoryConfig struct {
	Enabled      bool   `json:"enabled"`       // Whether selections are recorded
	DatabasePath string `json:"database_path"` // Database path (empty = XDG cache path)
}

// Config represents logpick configuration
type Config struct {
	Picker      string             `json:"picker"`                 // Picker backend (auto, fzf, builtin)
	LogLevel    string             `json:"log_level"`              // Log level (debug, info, warn, error)
	FileLogging *FileLoggingConfig `json:"file_logging,omitempty"` // File logging configuration
	History     *HistoryConfig     `json:"history,omitempty"`      // Selection history configuration
}

// XDGInterface defines the interface for XDG directory operations
type XDGInterface interface {
	GetConfigPaths(filename string) []string
	GetCachePath(purpose string) string
	CreateCacheDir(purpose string) error
}

// ConfigManager handles loading, saving, and validating configuration
type ConfigManager struct {
	fs  afero.Fs
	xdg XDGInterface
}

// NewConfigManager creates a configuration manager backed by the OS
// filesystem
func NewConfigManager() *ConfigManager {
	return NewConfigManagerWithFs(afero.NewOsFs())
}

// NewConfigManagerWithFs creates a configuration manager on the given
// filesystem (in-memory in tests)
func NewConfigManagerWithFs(fs afero.Fs) *ConfigManager {
	slog.Debug("creating new config manager")
	return &ConfigManager{
		fs:  fs,
		xdg: NewXDGDirs(),
	}
}

// GetDefaultConfig returns the default configuration
func (cm *ConfigManager) GetDefaultConfig() *Config {
	defaultConfig := &Config{
		Picker:   "auto",
		LogLevel: "warn",
		FileLogging: &FileLoggingConfig{
			Enabled:    false,
			Filename:   "", // Empty = XDG cache path
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 30,
			Compress:   true,
		},
		History: &HistoryConfig{
			Enabled:      true,
			DatabasePath: "", // Empty = XDG cache path
		},
	}

	slog.Debug("generated default config",
		"picker", defaultConfig.Picker,
		"log_level", defaultConfig.LogLevel,
		"history_enabled", defaultConfig.History.Enabled)

	return defaultConfig
}

// LoadFromFile loads configuration from a specific file
func (cm *ConfigManager) LoadFromFile(filePath string) (*Config, error) {
	slog.Debug("loading config from file", "file_path", filePath)

	data, err := afero.ReadFile(cm.fs, filePath)
	if err != nil {
		slog.Error("failed to read config file", "file_path", filePath, "error", err)
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	err = json.Unmarshal(data, &config)
	if err != nil {
		slog.Error("failed to parse config JSON", "file_path", filePath, "error", err)
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	err = cm.ValidateConfig(&config)
	if err != nil {
		slog.Error("config validation failed", "file_path", filePath, "error", err)
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	slog.Debug("config loaded successfully",
		"file_path", filePath,
		"picker", config.Picker,
		"log_level", config.LogLevel)

	return &config, nil
}

// SaveToFile saves configuration to a specific file
func (cm *ConfigManager) SaveToFile(config *Config, filePath string) error {
	slog.Debug("saving config to file", "file_path", filePath)

	err := cm.ValidateConfig(config)
	if err != nil {
		slog.Error("cannot save invalid config", "error", err)
		return fmt.Errorf("cannot save invalid config: %w", err)
	}

	dir := filepath.Dir(filePath)
	err = cm.fs.MkdirAll(dir, 0755)
	if err != nil {
		slog.Error("failed to create config directory", "directory", dir, "error", err)
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		slog.Error("failed to marshal config", "error", err)
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	err = afero.WriteFile(cm.fs, filePath, data, 0644)
	if err != nil {
		slog.Error("failed to write config file", "file_path", filePath, "error", err)
		return fmt.Errorf("failed to write config file: %w", err)
	}

	slog.Info("config saved successfully", "file_path", filePath)
	return nil
}

// LoadConfig loads configuration using XDG path discovery
func (cm *ConfigManager) LoadConfig() (*Config, error) {
	slog.Debug("loading config using XDG path discovery")

	configPaths := cm.xdg.GetConfigPaths("config.json")

	for i, configPath := range configPaths {
		if _, err := cm.fs.Stat(configPath); err == nil {
			slog.Debug("found config file", "path_index", i, "path", configPath)
			return cm.LoadFromFile(configPath)
		}
	}

	slog.Debug("no config file found, using defaults")
	return cm.GetDefaultConfig(), nil
}

// ValidateConfig validates configuration values
func (cm *ConfigManager) ValidateConfig(config *Config) error {
	var errors []string

	if !cm.IsValidPicker(config.Picker) {
		errors = append(errors, fmt.Sprintf("invalid picker '%s', must be one of: %s",
			config.Picker, strings.Join(cm.GetSupportedPickers(), ", ")))
	}

	validLogLevels := []string{"debug", "info", "warn", "error"}
	if config.LogLevel != "" {
		valid := false
		for _, level := range validLogLevels {
			if config.LogLevel == level {
				valid = true
				break
			}
		}
		if !valid {
			errors = append(errors, fmt.Sprintf("invalid log level '%s', must be one of: %s",
				config.LogLevel, strings.Join(validLogLevels, ", ")))
		}
	}

	if config.FileLogging != nil {
		fileLogging := config.FileLogging

		if fileLogging.MaxSizeMB < 0 {
			errors = append(errors, fmt.Sprintf("file logging max_size_mb must be >= 0, got %d", fileLogging.MaxSizeMB))
		}

		if fileLogging.MaxBackups < 0 {
			errors = append(errors, fmt.Sprintf("file logging max_backups must be >= 0, got %d", fileLogging.MaxBackups))
		}

		if fileLogging.MaxAgeDays < 0 {
			errors = append(errors, fmt.Sprintf("file logging max_age_days must be >= 0, got %d", fileLogging.MaxAgeDays))
		}
	}

	if len(errors) > 0 {
		errMsg := strings.Join(errors, "; ")
		slog.Error("config validation failed", "errors", errMsg)
		return fmt.Errorf("config validation failed: %s", errMsg)
	}

	slog.Debug("config validation passed")
	return nil
}

// ApplyEnvironmentOverrides applies environment variable overrides to config
func (cm *ConfigManager) ApplyEnvironmentOverrides(config *Config) *Config {
	slog.Debug("applying environment variable overrides")

	// Create a copy to modify
	result := *config

	// LOGPICK_PICKER
	if picker := os.Getenv("LOGPICK_PICKER"); picker != "" {
		if cm.IsValidPicker(picker) {
			result.Picker = picker
			slog.Debug("applied picker override from environment", "value", picker)
		} else {
			slog.Warn("invalid LOGPICK_PICKER environment variable", "value", picker)
		}
	}

	// LOGPICK_LOG_LEVEL
	if logLevel := os.Getenv("LOGPICK_LOG_LEVEL"); logLevel != "" {
		result.LogLevel = logLevel
		slog.Debug("applied log level override from environment", "value", logLevel)
	}

	// LOGPICK_HISTORY
	if historyStr := os.Getenv("LOGPICK_HISTORY"); historyStr != "" {
		if enabled, err := strconv.ParseBool(historyStr); err == nil {
			history := HistoryConfig{}
			if result.History != nil {
				history = *result.History
			}
			history.Enabled = enabled
			result.History = &history
			slog.Debug("applied history override from environment", "value", enabled)
		} else {
			slog.Warn("invalid LOGPICK_HISTORY environment variable", "value", historyStr, "error", err)
		}
	}

	slog.Debug("environment overrides applied")
	return &result
}

// ResolveLogFilePath resolves the log file path using the XDG cache
// directory when filename is empty
func (cm *ConfigManager) ResolveLogFilePath(filename string) string {
	if filename != "" {
		return filename
	}

	return filepath.Join(cm.xdg.GetCachePath("logs"), "logpick.log")
}

// ResolveHistoryPath resolves the history database path using the XDG
// cache directory when path is empty
func (cm *ConfigManager) ResolveHistoryPath(path string) string {
	if path != "" {
		return path
	}

	return filepath.Join(cm.xdg.GetCachePath(""), "history.db")
}

// GetSupportedPickers returns a list of all supported picker types
func (cm *ConfigManager) GetSupportedPickers() []string {
	return []string{"auto", "fzf", "builtin"}
}

// IsValidPicker checks if a picker type is supported
func (cm *ConfigManager) IsValidPicker(picker string) bool {
	// Empty string is valid (defaults to auto)
	if picker == "" {
		return true
	}

	for _, supported := range cm.GetSupportedPickers() {
		if picker == supported {
			return true
		}
	}
	return false
}
