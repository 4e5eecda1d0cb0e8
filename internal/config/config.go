package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
)

const (
	appName        = "gnome-theme-accent"
	configFileName = "config.toml"

	SourceGSettings = "gsettings"
	SourcePortal    = "portal"
)

type Config struct {
	Themes   ThemesConfig   `toml:"themes"`
	Tools    ToolsConfig    `toml:"tools"`
	Settings SettingsConfig `toml:"settings"`
}

type ThemesConfig struct {
	Root           string `toml:"root"`
	Subdir         string `toml:"subdir"`
	Stylesheet     string `toml:"stylesheet"`
	DarkStylesheet string `toml:"dark_stylesheet"`
	Bundle         string `toml:"bundle"`
	Marker         string `toml:"marker"`
}

type ToolsConfig struct {
	GSettings string `toml:"gsettings"`
	GResource string `toml:"gresource"`
}

type SettingsConfig struct {
	Source string `toml:"source"`
	Schema string `toml:"schema"`
	Key    string `toml:"key"`
}

func DefaultConfig() *Config {
	return &Config{
		Themes: ThemesConfig{
			Root:           "/usr/share/themes",
			Subdir:         "gtk-4.0",
			Stylesheet:     "gtk.css",
			DarkStylesheet: "gtk-dark.css",
			Bundle:         "gtk.gresource",
			Marker:         "theme_selected_bg_color",
		},
		Tools: ToolsConfig{
			GSettings: "gsettings",
			GResource: "gresource",
		},
		Settings: SettingsConfig{
			Source: SourceGSettings,
			Schema: "org.gnome.desktop.interface",
			Key:    "gtk-theme",
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/gnome-theme-accent/config.toml.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, appName, configFileName)
}

func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return NormalizeAndValidate(cfg)
}

// LoadDefault loads the config at DefaultPath, falling back to defaults when
// the file does not exist.
func LoadDefault() (*Config, error) {
	cfg, err := Load(DefaultPath())
	if os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	return cfg, err
}

func NormalizeAndValidate(cfg *Config) (*Config, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}

	sanitized := *cfg

	var err error
	sanitized.Themes.Root, err = absDir("themes.root", sanitized.Themes.Root)
	if err != nil {
		return nil, err
	}

	names := []struct {
		key   string
		value *string
	}{
		{"themes.subdir", &sanitized.Themes.Subdir},
		{"themes.stylesheet", &sanitized.Themes.Stylesheet},
		{"themes.dark_stylesheet", &sanitized.Themes.DarkStylesheet},
		{"themes.bundle", &sanitized.Themes.Bundle},
	}
	for _, n := range names {
		*n.value, err = sanitizeFileName(n.key, *n.value)
		if err != nil {
			return nil, err
		}
	}

	required := []struct {
		key   string
		value *string
	}{
		{"themes.marker", &sanitized.Themes.Marker},
		{"tools.gsettings", &sanitized.Tools.GSettings},
		{"tools.gresource", &sanitized.Tools.GResource},
		{"settings.schema", &sanitized.Settings.Schema},
		{"settings.key", &sanitized.Settings.Key},
	}
	for _, r := range required {
		*r.value = strings.TrimSpace(*r.value)
		if *r.value == "" {
			return nil, fmt.Errorf("%s must not be empty", r.key)
		}
	}

	sanitized.Settings.Source = strings.ToLower(strings.TrimSpace(sanitized.Settings.Source))
	switch sanitized.Settings.Source {
	case SourceGSettings, SourcePortal:
	default:
		return nil, fmt.Errorf("settings.source must be %q or %q, got %q", SourceGSettings, SourcePortal, cfg.Settings.Source)
	}

	return &sanitized, nil
}

// Save validates cfg and writes it to path as TOML, replacing any existing
// file in one rename.
func Save(path string, cfg *Config) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return fmt.Errorf("save config: empty path")
	}

	valid, err := NormalizeAndValidate(cfg)
	if err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("# " + appName + " configuration\n\n")
	if err := toml.NewEncoder(&buf).Encode(valid); err != nil {
		return fmt.Errorf("save config: encode: %w", err)
	}

	return replaceFile(path, buf.Bytes())
}

func replaceFile(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("save config: mkdir %s: %w", dir, err)
	}

	f, err := os.CreateTemp(dir, "."+configFileName+".*")
	if err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	if _, err = f.Write(data); err != nil {
		return fmt.Errorf("save config: write %s: %w", f.Name(), err)
	}
	if err = f.Chmod(0o644); err != nil {
		return fmt.Errorf("save config: chmod %s: %w", f.Name(), err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("save config: close %s: %w", f.Name(), err)
	}
	if err = os.Rename(f.Name(), path); err != nil {
		return fmt.Errorf("save config: rename to %s: %w", path, err)
	}
	return nil
}

// absDir cleans an absolute directory setting.
func absDir(key, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("%s must not be empty", key)
	}
	if !filepath.IsAbs(value) {
		return "", fmt.Errorf("%s must be an absolute path, got %q", key, value)
	}
	return filepath.Clean(value), nil
}

// sanitizeFileName requires a single path element; theme files are always
// looked up inside the theme directory.
func sanitizeFileName(name, value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", fmt.Errorf("%s must not be empty", name)
	}
	if trimmed == "." || trimmed == ".." || strings.ContainsRune(trimmed, filepath.Separator) {
		return "", fmt.Errorf("%s must be a file name, got %q", name, value)
	}
	return trimmed, nil
}
