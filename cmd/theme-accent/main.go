package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/cptspacemanspiff/gnome-theme-accent/internal/config"
	"github.com/cptspacemanspiff/gnome-theme-accent/internal/gresource"
	"github.com/cptspacemanspiff/gnome-theme-accent/internal/settings"
	"github.com/cptspacemanspiff/gnome-theme-accent/internal/theme"
)

type jsonResult struct {
	Theme  string       `json:"theme"`
	Accent theme.Accent `json:"accent"`
	RGB    []int        `json:"rgb,omitempty"`
}

func main() {
	configPath := flag.String("config", "", "path to config file (default $XDG_CONFIG_HOME/gnome-theme-accent/config.toml)")
	source := flag.String("source", "", "theme name source: gsettings or portal (overrides config)")
	asJSON := flag.Bool("json", false, "print the result as JSON")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	writeConfig := flag.Bool("write-config", false, "write the effective config to the config path and exit")
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := loadConfig(*configPath)
	if err != nil {
		logger.Error("load config", "err", err)
		os.Exit(1)
	}
	if *source != "" {
		cfg.Settings.Source = *source
		if cfg, err = config.NormalizeAndValidate(cfg); err != nil {
			logger.Error("invalid -source", "err", err)
			os.Exit(1)
		}
	}

	if *writeConfig {
		path := *configPath
		if path == "" {
			path = config.DefaultPath()
		}
		if err := config.Save(path, cfg); err != nil {
			logger.Error("write config", "err", err)
			os.Exit(1)
		}
		fmt.Println(path)
		return
	}

	src, err := newSource(cfg)
	if err != nil {
		logger.Error("settings source", "err", err)
		os.Exit(1)
	}

	layout := theme.Layout{
		Root:           cfg.Themes.Root,
		Subdir:         cfg.Themes.Subdir,
		Stylesheet:     cfg.Themes.Stylesheet,
		DarkStylesheet: cfg.Themes.DarkStylesheet,
		Bundle:         cfg.Themes.Bundle,
		Marker:         cfg.Themes.Marker,
	}
	resolver := theme.NewResolver(src, gresource.NewTool(cfg.Tools.GResource, logger), layout, logger)

	res, err := resolver.Resolve(context.Background())
	if err != nil {
		logger.Error("resolve theme color", "err", err)
		os.Exit(1)
	}

	if *asJSON {
		err = printJSON(os.Stdout, res)
	} else {
		err = printText(os.Stdout, res)
	}
	if err != nil {
		logger.Error("write output", "err", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.LoadDefault()
	}
	return config.Load(path)
}

func newSource(cfg *config.Config) (settings.Source, error) {
	switch cfg.Settings.Source {
	case config.SourcePortal:
		p, err := settings.NewPortal()
		if err != nil {
			return nil, err
		}
		p.Schema = cfg.Settings.Schema
		p.Key = cfg.Settings.Key
		return p, nil
	default:
		g := settings.NewGSettings(cfg.Tools.GSettings)
		g.Schema = cfg.Settings.Schema
		g.Key = cfg.Settings.Key
		return g, nil
	}
}

// printText writes the theme name and the accent, or None, on separate lines.
func printText(w io.Writer, res *theme.Result) error {
	_, err := fmt.Fprintf(w, "%s\n%s\n", res.Theme, res.Accent)
	return err
}

func printJSON(w io.Writer, res *theme.Result) error {
	out := jsonResult{Theme: res.Theme, Accent: res.Accent}
	if c, err := res.Accent.Color(); err == nil {
		r, g, b := c.RGB255()
		out.RGB = []int{int(r), int(g), int(b)}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
