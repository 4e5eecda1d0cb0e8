package theme

import (
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
)

// Layout describes where a theme's GTK 4 files live on disk.
type Layout struct {
	Root           string
	Subdir         string
	Stylesheet     string
	DarkStylesheet string
	Bundle         string
	Marker         string
}

// DefaultLayout returns the layout of the system Yaru themes on Ubuntu 24.04.
func DefaultLayout() Layout {
	return Layout{
		Root:           "/usr/share/themes",
		Subdir:         "gtk-4.0",
		Stylesheet:     "gtk.css",
		DarkStylesheet: "gtk-dark.css",
		Bundle:         "gtk.gresource",
		Marker:         "theme_selected_bg_color",
	}
}

// CheckThemeName rejects names that would resolve outside the themes root.
func CheckThemeName(theme string) error {
	if theme == "" || theme == "." || theme == ".." || strings.ContainsRune(theme, filepath.Separator) {
		return fmt.Errorf("%w: %q", ErrInvalidThemeName, theme)
	}
	return nil
}

// StylesheetFor picks the dark stylesheet when the theme name mentions "dark"
// in any case.
func (l Layout) StylesheetFor(theme string) string {
	fold := cases.Fold()
	if strings.Contains(fold.String(theme), fold.String("dark")) {
		return l.DarkStylesheet
	}
	return l.Stylesheet
}

// StylesheetPath returns <root>/<theme>/<subdir>/<stylesheet>.
func (l Layout) StylesheetPath(theme string) string {
	return filepath.Join(l.Root, theme, l.Subdir, l.StylesheetFor(theme))
}

// BundlePath returns <root>/<theme>/<subdir>/<bundle>.
func (l Layout) BundlePath(theme string) string {
	return filepath.Join(l.Root, theme, l.Subdir, l.Bundle)
}
