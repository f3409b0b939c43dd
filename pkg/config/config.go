/*
Package config manages TOML config for snipserve services.
*/
package config

import (
	"os"
	"path/filepath"
	"regexp"

	"github.com/snipserve/snipserve/internal/utils"

	"github.com/charmbracelet/log"
)

// Config holds the entire config structure
type Config struct {
	Engine       EngineConfig       `toml:"engine"`
	Suppress     SuppressConfig     `toml:"suppress"`
	Capabilities CapabilitiesConfig `toml:"capabilities"`
	Server       ServerConfig       `toml:"server"`
}

// EngineConfig has suggestion synthesis options.
type EngineConfig struct {
	MaxResults int `toml:"max_results"`
}

// SuppressConfig holds the regex lists that veto completion per location.
// Line regexes run against a bounded slice of the current line, file
// regexes against the document path. Empty lists mean completion is
// always allowed.
type SuppressConfig struct {
	LineRegexes []string `toml:"line_regexes"`
	FileRegexes []string `toml:"file_regexes"`
}

// CapabilitiesConfig holds the boolean feature toggles consumed by the engine.
type CapabilitiesConfig struct {
	OneSuggestion    bool `toml:"one_suggestion"`
	TwoSuggestions   bool `toml:"two_suggestions"`
	OnboardingMarker bool `toml:"onboarding_marker"`
	AutoImport       bool `toml:"auto_import"`
}

// ServerConfig has IPC server related options.
type ServerConfig struct {
	ReloadOnChange bool `toml:"reload_on_change"`
}

// Settings is the compiled, immutable view of a Config that the engine
// consumes. The engine reads no ambient state; everything it needs to
// decide travels in here.
type Settings struct {
	MaxResults   int
	LineRegexes  []*regexp.Regexp
	FileRegexes  []*regexp.Regexp
	Capabilities CapabilitiesConfig
}

// Compile turns the raw config into engine Settings. Patterns that fail
// to compile are skipped with a warning; a bad pattern must never take
// completion down with it.
func (c *Config) Compile() Settings {
	return Settings{
		MaxResults:   c.Engine.MaxResults,
		LineRegexes:  compilePatterns(c.Suppress.LineRegexes),
		FileRegexes:  compilePatterns(c.Suppress.FileRegexes),
		Capabilities: c.Capabilities,
	}
}

func compilePatterns(patterns []string) []*regexp.Regexp {
	var compiled []*regexp.Regexp
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			log.Warnf("Skipping invalid suppression pattern %q: %v", p, err)
			continue
		}
		compiled = append(compiled, re)
	}
	return compiled
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/
// 2. ~/Library/Application Support/ (macOS)
// 3. Current executable dir
// 4. builtin defaults
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		execDir, execErr := utils.GetExecutableDir()
		if execErr != nil {
			return "", execErr
		}
		return execDir, nil
	}
	primaryPath := filepath.Join(homeDir, ".config", "snipserve")
	if result := utils.CheckDirStatus(primaryPath); result.Writable {
		return primaryPath, nil
	}
	// Not conventional, fallback from ~/.config if not writable
	macOSPath := filepath.Join(homeDir, "Library", "Application Support", "snipserve")
	if result := utils.CheckDirStatus(macOSPath); result.Writable {
		return macOSPath, nil
	}
	execDir, err := utils.GetExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/snipserve/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	var config *Config
	var err error

	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err = LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	config, err = InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Engine: EngineConfig{
			MaxResults: 5,
		},
		Suppress: SuppressConfig{},
		Capabilities: CapabilitiesConfig{
			AutoImport: true,
		},
		Server: ServerConfig{
			ReloadOnChange: true,
		},
	}
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// LoadConfig loads from a TOML file
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	return config, nil
}

// tryPartialParse attempts to salvage valid sections from a broken TOML file
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if engineSection, ok := utils.ExtractSection(tempConfig, "engine"); ok {
		extractEngineConfig(engineSection, &config.Engine)
	}
	if suppressSection, ok := utils.ExtractSection(tempConfig, "suppress"); ok {
		extractSuppressConfig(suppressSection, &config.Suppress)
	}
	if capsSection, ok := utils.ExtractSection(tempConfig, "capabilities"); ok {
		extractCapabilitiesConfig(capsSection, &config.Capabilities)
	}
	if serverSection, ok := utils.ExtractSection(tempConfig, "server"); ok {
		extractServerConfig(serverSection, &config.Server)
	}
	return config, nil
}

// extractEngineConfig extracts engine configuration from a map
func extractEngineConfig(data map[string]any, engine *EngineConfig) {
	if val, ok := utils.ExtractInt64(data, "max_results"); ok {
		engine.MaxResults = val
	}
}

// extractSuppressConfig extracts suppression configuration from a map
func extractSuppressConfig(data map[string]any, suppress *SuppressConfig) {
	if val, ok := utils.ExtractStringSlice(data, "line_regexes"); ok {
		suppress.LineRegexes = val
	}
	if val, ok := utils.ExtractStringSlice(data, "file_regexes"); ok {
		suppress.FileRegexes = val
	}
}

// extractCapabilitiesConfig extracts capability toggles from a map
func extractCapabilitiesConfig(data map[string]any, caps *CapabilitiesConfig) {
	if val, ok := utils.ExtractBool(data, "one_suggestion"); ok {
		caps.OneSuggestion = val
	}
	if val, ok := utils.ExtractBool(data, "two_suggestions"); ok {
		caps.TwoSuggestions = val
	}
	if val, ok := utils.ExtractBool(data, "onboarding_marker"); ok {
		caps.OnboardingMarker = val
	}
	if val, ok := utils.ExtractBool(data, "auto_import"); ok {
		caps.AutoImport = val
	}
}

// extractServerConfig extracts server configuration from a map
func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractBool(data, "reload_on_change"); ok {
		server.ReloadOnChange = val
	}
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	return utils.GetAbsolutePath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}
