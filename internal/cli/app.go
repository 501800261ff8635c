// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// app.go - Shared command environment.
package cli

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/PoChenKuo/chat-gpt-reader/internal/config"
	"github.com/PoChenKuo/chat-gpt-reader/internal/formats"
	"github.com/PoChenKuo/chat-gpt-reader/internal/i18n"
)

// App carries everything a command handler needs. Handlers never reach for
// os.Stdout or the global config directly, so tests can build an App by
// hand.
type App struct {
	Args    Args
	Config  *config.Config
	Catalog *i18n.Catalog
	Formats *formats.Registry
	Logger  *log.Logger

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// StdoutTTY enables styled terminal output for the preview.
	StdoutTTY bool
}

// NewApp loads configuration, the locale catalog and the format registry
// for args.
func NewApp(args Args) (*App, error) {
	cfg, err := loadConfig(args)
	if cfg == nil {
		return nil, err
	}
	if err != nil {
		// Broken config file: defaults are usable, say so and carry on.
		fmt.Fprintf(os.Stderr, "%s %v\n", WarningStyle.Render("[WARN]"), err)
	}

	if args.NoColor || cfg.UI.NoColor {
		ForceColorsEnabled(false)
	}

	app := &App{
		Args:      args,
		Config:    cfg,
		Stdin:     os.Stdin,
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
		StdoutTTY: IsStdoutTTY(),
		Logger:    log.New(io.Discard, "", 0),
	}
	if args.Verbose {
		app.Logger = log.New(os.Stderr, "", log.LstdFlags)
	}

	locale := cfg.ResolvedLocale()
	if args.Locale != "" {
		locale = i18n.Match(args.Locale)
	}
	app.Catalog = i18n.Load(locale)

	registry, err := loadRegistry(cfg)
	if err != nil {
		return nil, err
	}
	app.Formats = registry
	for _, key := range app.missingLabels() {
		app.Logger.Printf("LABEL_MISSING | locale=%s key=%q", app.Catalog.Code(), key)
	}

	app.Logger.Printf("APP_START | version=%s locale=%s formats=%d", Version, app.Catalog.Code(), registry.Len())
	return app, nil
}

// loadConfig installs the config named by --config, or the user's config
// file, as the global instance and hands the App its own copy of it.
func loadConfig(args Args) (*config.Config, error) {
	cfg, err := config.LoadGlobal(args.ConfigPath)
	if cfg == nil {
		return nil, err
	}
	return config.Global().Clone(), err
}

func loadRegistry(cfg *config.Config) (*formats.Registry, error) {
	if cfg.FormatsFile == "" {
		return formats.Default(), nil
	}
	registry, err := formats.LoadFile(cfg.FormatsFile)
	if err != nil {
		return nil, NewCommandError("config", "load formats", cfg.FormatsFile, err)
	}
	return registry, nil
}

// missingLabels lists the format label keys the active catalog does not
// define. A formats file may use literal text instead of keys; such labels
// are shown as written.
func (a *App) missingLabels() []string {
	var missing []string
	seen := make(map[string]bool)
	for _, f := range a.Formats.List() {
		for _, key := range []string{f.NameKey, f.DescriptionKey, f.UserPrefixKey, f.AssistantPrefixKey} {
			if key == "" || seen[key] || a.Catalog.Has(key) {
				continue
			}
			seen[key] = true
			missing = append(missing, key)
		}
	}
	return missing
}

// T looks up a label in the active catalog.
func (a *App) T(key string) string {
	return a.Catalog.T(key)
}
