package theme

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/cptspacemanspiff/gnome-theme-accent/internal/gresource"
	"github.com/cptspacemanspiff/gnome-theme-accent/internal/settings"
)

// ErrInvalidThemeName is returned when the settings source reports a theme
// name that is not a single directory name.
var ErrInvalidThemeName = errors.New("invalid theme name")

// Result is the active theme and its accent color, if one was found.
type Result struct {
	Theme  string `json:"theme"`
	Accent Accent `json:"accent"`
}

// Resolver finds the accent color of the active GTK theme.
type Resolver struct {
	source    settings.Source
	extractor gresource.Extractor
	layout    Layout
	logger    *slog.Logger
}

// NewResolver creates a Resolver. A nil logger uses slog.Default().
func NewResolver(source settings.Source, extractor gresource.Extractor, layout Layout, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{source: source, extractor: extractor, layout: layout, logger: logger}
}

// Resolve queries the theme name, follows its stylesheet import into the
// theme's resource bundle, and scans the extracted CSS for the selected
// background color.
func (r *Resolver) Resolve(ctx context.Context) (*Result, error) {
	name, err := r.source.ThemeName(ctx)
	if err != nil {
		return nil, fmt.Errorf("query theme name: %w", err)
	}
	name = settings.NormalizeThemeName(name)
	if err := CheckThemeName(name); err != nil {
		return nil, err
	}
	r.logger.Debug("theme", "name", name)

	cssPath := r.layout.StylesheetPath(name)
	data, err := os.ReadFile(cssPath)
	if err != nil {
		return nil, fmt.Errorf("read stylesheet: %w", err)
	}
	resource := ResourcePath(string(data))
	r.logger.Debug("stylesheet import", "path", cssPath, "resource", resource)

	bundle := r.layout.BundlePath(name)
	css, err := r.extractor.Extract(ctx, bundle, resource)
	if err != nil {
		return nil, fmt.Errorf("extract %s from %s: %w", resource, bundle, err)
	}

	accent := FindAccent(css, r.layout.Marker)
	if !accent.Present() {
		r.logger.Debug("no accent declaration", "marker", r.layout.Marker, "bytes", len(css))
	}
	return &Result{Theme: name, Accent: accent}, nil
}
