package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Manager provides centralized configuration management with validation
type Manager struct {
	mu         sync.RWMutex
	config     *Config
	configPath string
}

// NewManager creates a new configuration manager
func NewManager() *Manager {
	return &Manager{config: DefaultConfig()}
}

// LoadFromFile loads configuration from a file with validation
func (m *Manager) LoadFromFile(configPath string) error {
	configPath = ExpandPath(configPath)

	cfg, err := LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	applyDefaults(cfg)
	if err := Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	m.mu.Lock()
	m.config = cfg
	m.configPath = configPath
	m.mu.Unlock()
	return nil
}

// LoadFromDefaults loads default configuration
func (m *Manager) LoadFromDefaults() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.config = DefaultConfig()
	m.configPath = ""
}

// GetConfig returns a copy of the current configuration
func (m *Manager) GetConfig() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return copyConfig(m.config)
}

// ConfigPath returns the path the configuration was loaded from
func (m *Manager) ConfigPath() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.configPath
}

// UpdateConfig replaces the configuration after validation, e.g. to apply
// command line overrides. An invalid cfg leaves the current one in place.
func (m *Manager) UpdateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config cannot be nil")
	}
	next := copyConfig(cfg)
	applyDefaults(next)
	if err := Validate(next); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	m.mu.Lock()
	m.config = next
	m.mu.Unlock()
	return nil
}

// SaveToFile saves the current configuration to a file
func (m *Manager) SaveToFile(filePath string) error {
	cfg := m.GetConfig()
	if err := cfg.SaveConfig(ExpandPath(filePath)); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

// TokenFilePath returns the expanded bearer token file path, if any
func (m *Manager) TokenFilePath() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if strings.TrimSpace(m.config.API.TokenFile) == "" {
		return ""
	}
	return ExpandPath(m.config.API.TokenFile)
}

// Validate checks a configuration for values the app cannot run with
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config cannot be nil")
	}

	u, err := url.Parse(strings.TrimSpace(cfg.API.BaseURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid api base_url %q", cfg.API.BaseURL)
	}

	if cfg.API.Timeout != "" {
		d, err := time.ParseDuration(cfg.API.Timeout)
		if err != nil {
			return fmt.Errorf("invalid api timeout: %w", err)
		}
		if d <= 0 {
			return fmt.Errorf("api timeout must be positive")
		}
	}

	if cfg.API.MaxResults < 0 {
		return fmt.Errorf("api max_results cannot be negative")
	}

	if cfg.RangeDays < 0 {
		return fmt.Errorf("range_days cannot be negative")
	}

	return nil
}

// applyDefaults fills zero values left by a partial config file
func applyDefaults(cfg *Config) {
	def := DefaultConfig()

	if strings.TrimSpace(cfg.API.BaseURL) == "" {
		cfg.API.BaseURL = def.API.BaseURL
	}
	if cfg.API.MaxResults == 0 {
		cfg.API.MaxResults = def.API.MaxResults
	}
	if cfg.RangeDays == 0 {
		cfg.RangeDays = def.RangeDays
	}
	if cfg.Keys == (KeyBindings{}) {
		cfg.Keys = def.Keys
	}
	if cfg.Layout == (LayoutConfig{}) {
		cfg.Layout = def.Layout
	}
	if cfg.Layout.CurrentTheme == "" {
		cfg.Layout.CurrentTheme = def.Layout.CurrentTheme
	}
}

func copyConfig(cfg *Config) *Config {
	if cfg == nil {
		return nil
	}
	c := *cfg
	return &c
}

// ExpandPath expands a leading ~ to the home directory
func ExpandPath(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(home, strings.TrimPrefix(strings.TrimPrefix(path, "~"), "/"))
}
