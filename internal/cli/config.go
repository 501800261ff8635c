// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config.go - Config command implementation.
//
// Command: config [subcommand]
// Short:   View and modify configuration
//
// Subcommands:
//   show (default)      Display the effective configuration
//   path                Show the configuration file path
//   init                Write a default configuration file
//   get <key>           Show one setting
//   set <key> <value>   Change one setting
//
// Examples:
//   chat-gpt-reader config
//   chat-gpt-reader config show --json
//   chat-gpt-reader config set default_format claude
//   chat-gpt-reader config set display.role_headers never
//   chat-gpt-reader config set print.browser "firefox --new-window"
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/PoChenKuo/chat-gpt-reader/internal/config"
)

// =============================================================================
// CONFIG STYLES
// =============================================================================

var (
	// Config section style
	configSectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("255")). // White
				MarginTop(1)

	// Config key style
	configKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")). // Light gray
			Width(26)

	// Config value style
	configValueStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("82")) // Green

	// Path style
	configPathStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Italic(true)
)

// ConfigShowData is the JSON shape of config show.
type ConfigShowData struct {
	Config *config.Config `json:"config"`
	Path   string         `json:"path"`
	Locale string         `json:"effective_locale"`
}

// =============================================================================
// HANDLE CONFIG
// =============================================================================

// HandleConfig handles the "config" command.
func HandleConfig(app *App) error {
	args := app.Args
	switch args.Subcommand {
	case "", "show":
		return handleConfigShow(app)
	case "path":
		return handleConfigPath(app)
	case "init":
		return handleConfigInit(app)
	case "get":
		return handleConfigGet(app, args.ConfigKey)
	case "set":
		return handleConfigSet(app, args.ConfigKey, args.ConfigVal)
	default:
		return NewValidationErrorWithExample("config subcommand", args.Subcommand,
			"unknown subcommand", "chat-gpt-reader config show")
	}
}

// configPath returns --config or the default TOML path.
func (a *App) configPath() (string, error) {
	if a.Args.ConfigPath != "" {
		return a.Args.ConfigPath, nil
	}
	return config.ConfigPathTOML()
}

func handleConfigShow(app *App) error {
	path, _ := app.configPath()

	if app.Args.JSON {
		data := ConfigShowData{Config: app.Config, Path: path, Locale: app.Catalog.Code()}
		return NewJSONResponse("config show", data).PrintTo(app.Stdout)
	}

	w := app.Stdout
	fmt.Fprintln(w)
	fmt.Fprintln(w, TitleStyle.Render("chat-gpt-reader configuration"))
	fmt.Fprintln(w, RenderSeparator(41))

	section := ""
	for _, key := range config.GetAllKeys() {
		name := key
		if i := strings.LastIndex(key, "."); i >= 0 {
			if s := key[:i]; s != section {
				section = s
				fmt.Fprintln(w, configSectionStyle.Render("["+section+"]"))
			}
			name = key[i+1:]
		}
		value, err := app.Config.Get(key)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "  %s%s\n",
			configKeyStyle.Render(name+":"),
			configValueStyle.Render(displayValue(value)))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, RenderSeparator(41))
	fmt.Fprintf(w, "Config file: %s\n", configPathStyle.Render(path))
	return nil
}

func handleConfigPath(app *App) error {
	path, err := app.configPath()
	if err != nil {
		return err
	}
	_, statErr := os.Stat(path)
	exists := statErr == nil

	if app.Args.JSON {
		return NewJSONResponse("config path", ConfigPathData{Path: path, Exists: exists}).PrintTo(app.Stdout)
	}

	fmt.Fprintln(app.Stdout, path)
	if !exists {
		fmt.Fprintf(app.Stderr, "%s (file does not exist; run 'chat-gpt-reader config init')\n",
			DimStyle.Render("Note"))
	}
	return nil
}

func handleConfigInit(app *App) error {
	path, err := app.configPath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil {
		return NewCommandError("config", "init", "file already exists: "+path, nil)
	}
	if err := saveConfigFile(config.Default(), path); err != nil {
		return err
	}
	fmt.Fprintf(app.Stdout, "%s Wrote %s\n", SuccessStyle.Render("[OK]"), configPathStyle.Render(path))
	return nil
}

func handleConfigGet(app *App, key string) error {
	if key == "" {
		return ErrMissingArgument("key", "chat-gpt-reader config get print.host")
	}
	value, err := app.Config.Get(key)
	if err != nil {
		return NewNotFoundError("config key", key)
	}
	if app.Args.JSON {
		return NewJSONResponse("config get", map[string]interface{}{"key": key, "value": value}).PrintTo(app.Stdout)
	}
	fmt.Fprintln(app.Stdout, displayValue(value))
	return nil
}

// handleConfigSet changes one key in the config file. The file is read
// without environment overrides so they are never persisted.
func handleConfigSet(app *App, key, value string) error {
	if key == "" {
		return ErrMissingArgument("key", "chat-gpt-reader config set <key> <value>")
	}

	path, err := app.configPath()
	if err != nil {
		return err
	}

	cfg := config.Default()
	if _, err := os.Stat(path); err == nil {
		load := config.LoadTOML
		if isJSONPath(path) {
			load = config.LoadJSON
		}
		if err := load(cfg, path); err != nil {
			return NewCommandError("config", "set", "cannot read "+path, err)
		}
	}

	if err := cfg.Set(key, value); err != nil {
		return NewValidationError(key, value, err.Error())
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if key == "default_format" {
		if _, ok := app.Formats.Lookup(cfg.DefaultFormat); !ok {
			return NewNotFoundErrorIn("format", cfg.DefaultFormat, app.Formats.IDs())
		}
	}

	if err := saveConfigFile(cfg, path); err != nil {
		return err
	}
	app.Logger.Printf("CONFIG_SET | key=%s path=%s", key, path)
	fmt.Fprintf(app.Stdout, "%s %s = %s\n", SuccessStyle.Render("[OK]"), key, value)
	return nil
}

// =============================================================================
// HELPERS
// =============================================================================

func saveConfigFile(cfg *config.Config, path string) error {
	if isJSONPath(path) {
		return config.SaveJSON(cfg, path)
	}
	return config.SaveTOML(cfg, path)
}

func isJSONPath(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

func displayValue(v interface{}) string {
	if s, ok := v.(string); ok && s == "" {
		return "(not set)"
	}
	return fmt.Sprint(v)
}
