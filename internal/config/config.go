package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// EnvConfigPath overrides the default config file location
const EnvConfigPath = "MAILBRIEF_CONFIG"

// APIConfig describes how to reach the assistant backend
type APIConfig struct {
	BaseURL    string `json:"base_url"`
	Timeout    string `json:"timeout"`
	MaxResults int    `json:"max_results"`

	// Optional bearer credentials sent to the backend
	Token     string `json:"token"`
	TokenFile string `json:"token_file"`
}

// CacheConfig controls the session summary cache
type CacheConfig struct {
	Enabled bool `json:"enabled"`
}

// Config holds all configuration for mailbrief
type Config struct {
	API   APIConfig   `json:"api"`
	Cache CacheConfig `json:"cache"`

	// Initial date window length in days
	RangeDays int `json:"range_days"`

	// Layout configuration
	Layout LayoutConfig `json:"layout"`

	// Keyboard shortcuts
	Keys KeyBindings `json:"keys"`

	// Logging
	LogFile string `json:"log_file"`
}

// LayoutConfig defines layout-specific configuration
type LayoutConfig struct {
	ShowBorders    bool   `json:"show_borders"`
	ShowTitles     bool   `json:"show_titles"`
	CurrentTheme   string `json:"current_theme"`    // Theme file name without extension
	CustomThemeDir string `json:"custom_theme_dir"` // Extra themes directory (empty = none)
}

// KeyBindings defines keyboard shortcuts for the TUI
type KeyBindings struct {
	Generate  string `json:"generate"`
	Summarize string `json:"summarize"`
	Extract   string `json:"extract"`
	Connect   string `json:"connect"`
	Logout    string `json:"logout"`
	FocusDate string `json:"focus_date"` // Jump to the date range form
	Help      string `json:"help"`
	Quit      string `json:"quit"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		API:       DefaultAPIConfig(),
		Cache:     CacheConfig{Enabled: true},
		RangeDays: 7,
		Layout:    DefaultLayoutConfig(),
		Keys:      DefaultKeyBindings(),
		LogFile:   "",
	}
}

// DefaultAPIConfig returns default backend settings
func DefaultAPIConfig() APIConfig {
	return APIConfig{
		BaseURL:    "http://localhost:8000",
		Timeout:    "20s",
		MaxResults: 50,
	}
}

// DefaultKeyBindings returns default keyboard shortcuts
func DefaultKeyBindings() KeyBindings {
	return KeyBindings{
		Generate:  "g",
		Summarize: "s",
		Extract:   "e",
		Connect:   "c",
		Logout:    "L",
		FocusDate: "d",
		Help:      "?",
		Quit:      "q",
	}
}

// DefaultLayoutConfig returns default layout configuration
func DefaultLayoutConfig() LayoutConfig {
	return LayoutConfig{
		ShowBorders:    true,
		ShowTitles:     true,
		CurrentTheme:   "default",
		CustomThemeDir: "",
	}
}

// LoadConfig loads configuration from file. A missing file yields defaults.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if data, err := os.ReadFile(configPath); err == nil {
			if err := json.Unmarshal(data, cfg); err != nil {
				return nil, err
			}
		}
	}

	return cfg, nil
}

// ResolveConfigPath picks the config file: explicit flag, then the
// MAILBRIEF_CONFIG environment variable, then the default location.
func ResolveConfigPath(flagPath string) string {
	if strings.TrimSpace(flagPath) != "" {
		return flagPath
	}
	if env := strings.TrimSpace(os.Getenv(EnvConfigPath)); env != "" {
		return env
	}
	return DefaultConfigPath()
}

// DefaultConfigDir returns ~/.config/mailbrief
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "mailbrief")
}

// DefaultConfigPath returns the default configuration file path
func DefaultConfigPath() string {
	dir := DefaultConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.json")
}

// DefaultLogDir returns the default log directory path
func DefaultLogDir() string {
	return DefaultConfigDir()
}

// DefaultThemesDir returns the user themes directory
func DefaultThemesDir() string {
	dir := DefaultConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "themes")
}

// SaveConfig saves the configuration to a file
func (c *Config) SaveConfig(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	// may hold a bearer token
	return os.WriteFile(path, data, 0o600)
}

// GetAPITimeout returns the parsed per-request timeout
func (c *Config) GetAPITimeout() time.Duration {
	if c.API.Timeout != "" {
		if d, err := time.ParseDuration(c.API.Timeout); err == nil && d > 0 {
			return d
		}
	}
	return 20 * time.Second
}
