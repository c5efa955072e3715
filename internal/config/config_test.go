package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotNil(t, cfg)
	assert.Equal(t, "http://localhost:8000", cfg.API.BaseURL)
	assert.Equal(t, "20s", cfg.API.Timeout)
	assert.Equal(t, 50, cfg.API.MaxResults)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 7, cfg.RangeDays)
	assert.True(t, cfg.Layout.ShowBorders)
	assert.NotEmpty(t, cfg.Keys.Summarize)
}

func TestDefaultKeyBindings(t *testing.T) {
	keys := DefaultKeyBindings()

	assert.Equal(t, "g", keys.Generate)
	assert.Equal(t, "s", keys.Summarize)
	assert.Equal(t, "e", keys.Extract)
	assert.Equal(t, "c", keys.Connect)
	assert.Equal(t, "L", keys.Logout)
	assert.Equal(t, "d", keys.FocusDate)
	assert.Equal(t, "?", keys.Help)
	assert.Equal(t, "q", keys.Quit)
}

func TestGetAPITimeout(t *testing.T) {
	tests := []struct {
		name     string
		timeout  string
		expected time.Duration
	}{
		{"valid_seconds", "30s", 30 * time.Second},
		{"valid_minutes", "2m", 2 * time.Minute},
		{"valid_milliseconds", "500ms", 500 * time.Millisecond},
		{"invalid_format", "invalid", 20 * time.Second},
		{"negative", "-5s", 20 * time.Second},
		{"empty_string", "", 20 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{API: APIConfig{Timeout: tt.timeout}}
			assert.Equal(t, tt.expected, cfg.GetAPITimeout())
		})
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("missing_file_gives_defaults", func(t *testing.T) {
		cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("empty_path_gives_defaults", func(t *testing.T) {
		cfg, err := LoadConfig("")
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("partial_file_overrides", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"api":{"base_url":"https://brief.example.com"},"range_days":14}`), 0o600))

		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "https://brief.example.com", cfg.API.BaseURL)
		assert.Equal(t, 14, cfg.RangeDays)
		assert.True(t, cfg.Cache.Enabled)
	})

	t.Run("malformed_file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"api":`), 0o600))

		cfg, err := LoadConfig(path)
		assert.Error(t, err)
		assert.Nil(t, cfg)
	})
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	cfg := DefaultConfig()
	cfg.API.Token = "secret"
	cfg.RangeDays = 3

	require.NoError(t, cfg.SaveConfig(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "api")
	assert.Contains(t, raw, "range_days")

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestResolveConfigPath(t *testing.T) {
	t.Setenv(EnvConfigPath, "")
	assert.Equal(t, "/tmp/flag.json", ResolveConfigPath("/tmp/flag.json"))
	assert.Equal(t, DefaultConfigPath(), ResolveConfigPath(""))

	t.Setenv(EnvConfigPath, "/tmp/env.json")
	assert.Equal(t, "/tmp/env.json", ResolveConfigPath(""))
	assert.Equal(t, "/tmp/flag.json", ResolveConfigPath("/tmp/flag.json"))
}

func TestDefaultPaths(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	assert.Equal(t, filepath.Join(home, ".config", "mailbrief", "config.json"), DefaultConfigPath())
	assert.Equal(t, filepath.Join(home, ".config", "mailbrief"), DefaultLogDir())
	assert.Equal(t, filepath.Join(home, ".config", "mailbrief", "themes"), DefaultThemesDir())
}
