package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// themeFile is the on-disk layout of a theme
type themeFile struct {
	Mailbrief *ColorsConfig `yaml:"mailbrief"`
}

// ThemeLoader handles loading and saving themes
type ThemeLoader struct {
	themesDir string
}

// NewThemeLoader creates a new theme loader
func NewThemeLoader(themesDir string) *ThemeLoader {
	return &ThemeLoader{
		themesDir: themesDir,
	}
}

// LoadThemeFromFile loads a theme from a YAML file, looked up in the themes
// directory first and then as a plain path.
func (tl *ThemeLoader) LoadThemeFromFile(filename string) (*ColorsConfig, error) {
	path := filepath.Join(tl.themesDir, filename)
	if !fileExists(path) {
		path = filename
		if !fileExists(path) {
			return nil, fmt.Errorf("theme file not found: %s", filename)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme file: %w", err)
	}

	var theme themeFile
	if err := yaml.Unmarshal(data, &theme); err != nil {
		return nil, fmt.Errorf("failed to parse theme file: %w", err)
	}
	if theme.Mailbrief == nil {
		return nil, fmt.Errorf("invalid theme file: missing mailbrief section")
	}

	fillMissing(theme.Mailbrief, DefaultColors())
	return theme.Mailbrief, nil
}

// LoadTheme loads the named theme (with or without .yaml extension)
func (tl *ThemeLoader) LoadTheme(name string) (*ColorsConfig, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("theme name cannot be empty")
	}
	if filepath.Ext(name) != ".yaml" {
		name += ".yaml"
	}
	return tl.LoadThemeFromFile(name)
}

// ListAvailableThemes returns the theme names in the themes directory, sorted
func (tl *ThemeLoader) ListAvailableThemes() ([]string, error) {
	entries, err := os.ReadDir(tl.themesDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read themes directory: %w", err)
	}

	var themes []string
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".yaml" {
			themes = append(themes, strings.TrimSuffix(entry.Name(), ".yaml"))
		}
	}
	sort.Strings(themes)
	return themes, nil
}

// SaveThemeToFile saves a theme configuration to a YAML file
func (tl *ThemeLoader) SaveThemeToFile(theme *ColorsConfig, filename string) error {
	if err := os.MkdirAll(tl.themesDir, 0o755); err != nil {
		return fmt.Errorf("failed to create themes directory: %w", err)
	}

	data, err := yaml.Marshal(themeFile{Mailbrief: theme})
	if err != nil {
		return fmt.Errorf("failed to marshal theme: %w", err)
	}

	if err := os.WriteFile(filepath.Join(tl.themesDir, filename), data, 0o644); err != nil {
		return fmt.Errorf("failed to write theme file: %w", err)
	}
	return nil
}

// ValidateTheme checks that the colors the UI cannot do without are set
func (tl *ThemeLoader) ValidateTheme(theme *ColorsConfig) error {
	if theme == nil {
		return fmt.Errorf("theme is nil")
	}

	required := []struct {
		name  string
		color Color
	}{
		{"Body.FgColor", theme.Body.FgColor},
		{"Body.BgColor", theme.Body.BgColor},
		{"Frame.Border.FocusColor", theme.Frame.Border.FocusColor},
		{"Status.ErrorColor", theme.Status.ErrorColor},
	}
	for _, req := range required {
		if req.color == "" {
			return fmt.Errorf("missing required color: %s", req.name)
		}
	}
	return nil
}

// CreateDefaultTheme writes default.yaml if it does not exist yet
func (tl *ThemeLoader) CreateDefaultTheme() error {
	if fileExists(filepath.Join(tl.themesDir, "default.yaml")) {
		return nil
	}
	return tl.SaveThemeToFile(DefaultColors(), "default.yaml")
}

// fillMissing copies colors from def wherever theme left them empty
func fillMissing(theme, def *ColorsConfig) {
	pairs := []struct {
		dst *Color
		src Color
	}{
		{&theme.Body.FgColor, def.Body.FgColor},
		{&theme.Body.BgColor, def.Body.BgColor},
		{&theme.Body.LogoColor, def.Body.LogoColor},
		{&theme.Body.HintColor, def.Body.HintColor},
		{&theme.Frame.Border.FgColor, def.Frame.Border.FgColor},
		{&theme.Frame.Border.FocusColor, def.Frame.Border.FocusColor},
		{&theme.Frame.Title.FgColor, def.Frame.Title.FgColor},
		{&theme.Frame.Title.CounterColor, def.Frame.Title.CounterColor},
		{&theme.List.SubjectColor, def.List.SubjectColor},
		{&theme.List.FromColor, def.List.FromColor},
		{&theme.List.HighlightColor, def.List.HighlightColor},
		{&theme.List.TaskColor, def.List.TaskColor},
		{&theme.List.TaskMetaColor, def.List.TaskMetaColor},
		{&theme.List.SelectedBg, def.List.SelectedBg},
		{&theme.Status.InfoColor, def.Status.InfoColor},
		{&theme.Status.SuccessColor, def.Status.SuccessColor},
		{&theme.Status.WarningColor, def.Status.WarningColor},
		{&theme.Status.ErrorColor, def.Status.ErrorColor},
	}
	for _, p := range pairs {
		if *p.dst == "" {
			*p.dst = p.src
		}
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
