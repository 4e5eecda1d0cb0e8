package gresource

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/cptspacemanspiff/gnome-theme-accent/internal/execx"
)

// Extractor returns the text of a resource stored in a GResource bundle.
type Extractor interface {
	Extract(ctx context.Context, bundle, resource string) (string, error)
}

// Tool extracts resources with the gresource command-line tool.
type Tool struct {
	Path   string
	Runner execx.Runner
	Logger *slog.Logger
}

// NewTool returns a Tool that runs the gresource binary at path.
func NewTool(path string, logger *slog.Logger) *Tool {
	if path == "" {
		path = "gresource"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Tool{Path: path, Runner: execx.ExecRunner{}, Logger: logger}
}

// Extract runs "gresource extract bundle resource" and returns its stdout.
// A nonzero exit status is logged and the output is returned anyway; only a
// failure to start the tool is an error.
func (t *Tool) Extract(ctx context.Context, bundle, resource string) (string, error) {
	stdout, stderr, err := t.Runner.Run(ctx, t.Path, "extract", bundle, resource)
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return "", fmt.Errorf("run %s extract: %w", t.Path, err)
		}
		t.Logger.Warn("gresource exited with error",
			"bundle", bundle,
			"resource", resource,
			"exit_code", exitErr.ExitCode(),
			"stderr", strings.TrimSpace(string(stderr)))
	}
	return string(stdout), nil
}
