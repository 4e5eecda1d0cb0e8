package settings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cptspacemanspiff/gnome-theme-accent/internal/execx"
)

const (
	InterfaceSchema = "org.gnome.desktop.interface"
	GTKThemeKey     = "gtk-theme"
)

// ErrNoTheme is returned when the settings store reports an empty theme name.
var ErrNoTheme = errors.New("no theme name reported")

// Source reports the name of the active GTK theme.
type Source interface {
	ThemeName(ctx context.Context) (string, error)
}

// GSettings queries the theme through the gsettings command-line tool.
type GSettings struct {
	Path   string
	Schema string
	Key    string
	Runner execx.Runner
}

// NewGSettings returns a GSettings source for org.gnome.desktop.interface gtk-theme.
func NewGSettings(path string) *GSettings {
	if path == "" {
		path = "gsettings"
	}
	return &GSettings{
		Path:   path,
		Schema: InterfaceSchema,
		Key:    GTKThemeKey,
		Runner: execx.ExecRunner{},
	}
}

func (g *GSettings) ThemeName(ctx context.Context) (string, error) {
	stdout, stderr, err := g.Runner.Run(ctx, g.Path, "get", g.Schema, g.Key)
	if err != nil {
		if msg := strings.TrimSpace(string(stderr)); msg != "" {
			return "", fmt.Errorf("gsettings get %s %s: %w: %s", g.Schema, g.Key, err, msg)
		}
		return "", fmt.Errorf("gsettings get %s %s: %w", g.Schema, g.Key, err)
	}
	name := NormalizeThemeName(string(stdout))
	if name == "" {
		return "", ErrNoTheme
	}
	return name, nil
}

// NormalizeThemeName removes GVariant string quoting and surrounding whitespace.
func NormalizeThemeName(raw string) string {
	return strings.TrimSpace(strings.ReplaceAll(raw, "'", ""))
}
