package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pstuifzand/tui-smartlist/internal/model"
)

const (
	defaultTheme    = "tokyo-night"
	defaultLogLevel = "info"
)

// Config holds application configuration
type Config struct {
	Theme    string            `toml:"theme"`
	LogLevel string            `toml:"log_level"`
	List     model.Config      `toml:"list"`
	Settings map[string]string `toml:"settings"`

	// Session settings (not persisted to TOML, overrides persisted settings)
	sessionSettings map[string]string
}

// Load loads the config file from the standard location
func Load() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return defaultConfig(), nil // Return default if can't find config path
	}

	return LoadFromFile(configPath)
}

// LoadFromFile loads config from a specific file
func LoadFromFile(filePath string) (*Config, error) {
	// If file doesn't exist, return default config
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return defaultConfig(), nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	err = toml.Unmarshal(data, &config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply defaults if not specified
	if config.Theme == "" {
		config.Theme = defaultTheme
	}
	if config.LogLevel == "" {
		config.LogLevel = defaultLogLevel
	}
	config.List = config.List.Normalize()

	if config.Settings == nil {
		config.Settings = make(map[string]string)
	}
	config.sessionSettings = make(map[string]string)

	return &config, nil
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(configDir, "config.toml"), nil
}

// Default returns the configuration used when no config file exists
func Default() *Config {
	return defaultConfig()
}

// defaultConfig returns the default configuration
func defaultConfig() *Config {
	return &Config{
		Theme:           defaultTheme,
		LogLevel:        defaultLogLevel,
		List:            model.DefaultConfig(),
		Settings:        make(map[string]string),
		sessionSettings: make(map[string]string),
	}
}

// GetConfigDir returns the config directory
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, ".config", "tui-smartlist"), nil
}

// EnsureConfigDir creates the config directory if it doesn't exist
func EnsureConfigDir() error {
	configDir, err := GetConfigDir()
	if err != nil {
		return err
	}

	return os.MkdirAll(configDir, 0755)
}

// Set sets a session configuration value
func (c *Config) Set(key, value string) {
	if c.sessionSettings == nil {
		c.sessionSettings = make(map[string]string)
	}
	c.sessionSettings[key] = value
}

// Unset removes a session value, exposing the persisted one again
func (c *Config) Unset(key string) {
	delete(c.sessionSettings, key)
}

// Get retrieves a configuration value, checking session settings first (which override persisted settings)
// Returns empty string if not found in either source
func (c *Config) Get(key string) string {
	if c.sessionSettings != nil {
		if val, ok := c.sessionSettings[key]; ok {
			return val
		}
	}

	if c.Settings != nil {
		if val, ok := c.Settings[key]; ok {
			return val
		}
	}

	return ""
}

// GetAll returns all configuration values (both persisted and session)
// Session settings override persisted settings with the same key
func (c *Config) GetAll() map[string]string {
	result := make(map[string]string)

	for k, v := range c.Settings {
		result[k] = v
	}
	for k, v := range c.sessionSettings {
		result[k] = v
	}

	return result
}

// ListKeys are the setting keys ApplyTo understands
var ListKeys = []string{
	"icon_set",
	"secondary_icon_set",
	"collapse_default",
	"reveal_mode",
	"show_numbering",
	"numbering_format",
	"child_numbering_format",
	"filter_by_statuses",
	"group_by_status",
	"conditional_formatting",
	"intensity",
	"progress_summary",
	"detail_mode",
}

// ApplyTo overlays the list settings stored with Set or in [settings] on
// cfg. Unknown keys are ignored; a bad boolean is an error.
func (c *Config) ApplyTo(cfg model.Config) (model.Config, error) {
	all := c.GetAll()
	for _, key := range ListKeys {
		value, ok := all[key]
		if !ok {
			continue
		}
		if err := applyKey(&cfg, key, value); err != nil {
			return cfg, err
		}
	}
	return cfg.Normalize(), nil
}

func applyKey(cfg *model.Config, key, value string) error {
	switch key {
	case "icon_set":
		cfg.IconSetID = value
	case "secondary_icon_set":
		cfg.SecondaryIconSetID = value
	case "collapse_default":
		cfg.CollapseDefault = model.CollapseDefault(value)
	case "reveal_mode":
		cfg.RevealMode = model.RevealMode(value)
	case "numbering_format":
		cfg.NumberingFormat = model.NumberingFormat(value)
	case "child_numbering_format":
		cfg.ChildNumberingFormat = model.NumberingFormat(value)
	case "filter_by_statuses":
		cfg.FilterByStatuses = splitList(value)
	case "intensity":
		cfg.Intensity = model.Intensity(value)
	case "progress_summary":
		cfg.ProgressSummary = model.ProgressSummary(value)
	case "detail_mode":
		cfg.DetailMode = model.DetailMode(value)
	case "show_numbering", "group_by_status", "conditional_formatting":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value for %s: %q", key, value)
		}
		switch key {
		case "show_numbering":
			cfg.ShowNumbering = b
		case "group_by_status":
			cfg.GroupByStatus = b
		default:
			cfg.ConditionalFormatting = b
		}
	}
	return nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Save persists the configuration to the TOML file
// Note: This only persists the Settings map, not session settings
func (c *Config) Save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	if err := EnsureConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
