package theme

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

type fakeSource struct {
	name string
	err  error
}

func (s fakeSource) ThemeName(context.Context) (string, error) {
	return s.name, s.err
}

type fakeExtractor struct {
	output string
	err    error

	bundle   string
	resource string
}

func (e *fakeExtractor) Extract(_ context.Context, bundle, resource string) (string, error) {
	e.bundle = bundle
	e.resource = resource
	return e.output, e.err
}

func writeTestFile(t *testing.T, path, contents string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func newTestLayout(t *testing.T) Layout {
	t.Helper()

	l := DefaultLayout()
	l.Root = t.TempDir()
	return l
}

func newTestResolver(src fakeSource, ext *fakeExtractor, l Layout) *Resolver {
	return NewResolver(src, ext, l, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestResolve_DarkTheme(t *testing.T) {
	l := newTestLayout(t)
	writeTestFile(t, filepath.Join(l.Root, "Yaru-purple-dark/gtk-4.0/gtk-dark.css"),
		`@import url("resource:///com/ubuntu/themes/Yaru-purple-dark/4.0/gtk-dark.css");`+"\n")
	ext := &fakeExtractor{output: "@define-color theme_selected_bg_color #7764d8;\n"}

	res, err := newTestResolver(fakeSource{name: "'Yaru-purple-dark'\n"}, ext, l).Resolve(context.Background())
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if res.Theme != "Yaru-purple-dark" {
		t.Fatalf("Theme = %q, want Yaru-purple-dark", res.Theme)
	}
	if res.Accent.Hex() != "#7764d8" {
		t.Fatalf("Accent = %q, want #7764d8", res.Accent.Hex())
	}
	if want := filepath.Join(l.Root, "Yaru-purple-dark/gtk-4.0/gtk.gresource"); ext.bundle != want {
		t.Fatalf("bundle = %q, want %q", ext.bundle, want)
	}
	if ext.resource != "/com/ubuntu/themes/Yaru-purple-dark/4.0/gtk-dark.css" {
		t.Fatalf("resource = %q", ext.resource)
	}
}

func TestResolve_LightThemeUsesDefaultStylesheet(t *testing.T) {
	l := newTestLayout(t)
	writeTestFile(t, filepath.Join(l.Root, "Yaru/gtk-4.0/gtk.css"), `@import url("resource:///com/ubuntu/themes/Yaru/4.0/gtk.css");`)
	ext := &fakeExtractor{output: "  theme_selected_bg_color: #e95420;\n"}

	res, err := newTestResolver(fakeSource{name: "Yaru"}, ext, l).Resolve(context.Background())
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if res.Accent.Hex() != "#e95420" {
		t.Fatalf("Accent = %q, want #e95420", res.Accent.Hex())
	}
	if ext.resource != "/com/ubuntu/themes/Yaru/4.0/gtk.css" {
		t.Fatalf("resource = %q", ext.resource)
	}
}

func TestResolve_NoMarkerStillReturnsTheme(t *testing.T) {
	l := newTestLayout(t)
	writeTestFile(t, filepath.Join(l.Root, "Adwaita/gtk-4.0/gtk.css"), `@import url("resource:///org/gtk/gtk.css");`)
	ext := &fakeExtractor{output: ""}

	res, err := newTestResolver(fakeSource{name: "Adwaita"}, ext, l).Resolve(context.Background())
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if res.Theme != "Adwaita" {
		t.Fatalf("Theme = %q, want Adwaita", res.Theme)
	}
	if res.Accent.Present() {
		t.Fatalf("Accent = %q, want absent", res.Accent.Hex())
	}
}

func TestResolve_MissingStylesheet(t *testing.T) {
	l := newTestLayout(t)
	ext := &fakeExtractor{}

	_, err := newTestResolver(fakeSource{name: "Missing"}, ext, l).Resolve(context.Background())
	if err == nil {
		t.Fatal("Resolve() error = nil, want missing stylesheet error")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Resolve() error = %v, want not-exist", err)
	}
	if ext.bundle != "" {
		t.Fatal("extractor called after stylesheet read failed")
	}
}

func TestResolve_SourceError(t *testing.T) {
	l := newTestLayout(t)
	srcErr := errors.New("gsettings missing")

	_, err := newTestResolver(fakeSource{err: srcErr}, &fakeExtractor{}, l).Resolve(context.Background())
	if !errors.Is(err, srcErr) {
		t.Fatalf("Resolve() error = %v, want %v", err, srcErr)
	}
}

func TestResolve_ExtractorError(t *testing.T) {
	l := newTestLayout(t)
	writeTestFile(t, filepath.Join(l.Root, "Yaru/gtk-4.0/gtk.css"), `@import url("resource:///a.css");`)
	extErr := errors.New("exec: gresource not found")

	_, err := newTestResolver(fakeSource{name: "Yaru"}, &fakeExtractor{err: extErr}, l).Resolve(context.Background())
	if !errors.Is(err, extErr) {
		t.Fatalf("Resolve() error = %v, want %v", err, extErr)
	}
}

func TestResolve_RejectsThemeOutsideRoot(t *testing.T) {
	l := newTestLayout(t)
	writeTestFile(t, filepath.Join(filepath.Dir(l.Root), "gtk-4.0/gtk.css"), `@import url("resource:///a.css");`)
	ext := &fakeExtractor{}

	_, err := newTestResolver(fakeSource{name: "'..'"}, ext, l).Resolve(context.Background())
	if !errors.Is(err, ErrInvalidThemeName) {
		t.Fatalf("Resolve() error = %v, want ErrInvalidThemeName", err)
	}
	if ext.bundle != "" {
		t.Fatal("extractor called for rejected theme name")
	}
}
