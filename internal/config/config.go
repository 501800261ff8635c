// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/PoChenKuo/chat-gpt-reader/internal/i18n"
	"github.com/PoChenKuo/chat-gpt-reader/internal/util"
)

// CurrentVersion is the config schema version written by Save.
const CurrentVersion = "1"

// LocaleAuto selects the locale from LC_ALL, LC_MESSAGES or LANG.
const LocaleAuto = "auto"

// Role header modes.
const (
	HeadersAuto   = "auto"   // headers only while both roles are shown
	HeadersAlways = "always" // single flag on
	HeadersNever  = "never"  // single flag off
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete chat-gpt-reader configuration.
type Config struct {
	// Version is the config schema version.
	Version string `toml:"version" json:"version"`

	// Locale is a supported locale code or "auto".
	Locale string `toml:"locale" json:"locale"`

	// DefaultFormat is the chat format used when --format is not given.
	DefaultFormat string `toml:"default_format" json:"default_format"`

	// FormatsFile replaces the built-in format catalog (.toml, .yaml or .yml).
	FormatsFile string `toml:"formats_file" json:"formats_file"`

	Custom  CustomConfig  `toml:"custom" json:"custom"`
	Display DisplayConfig `toml:"display" json:"display"`
	Print   PrintConfig   `toml:"print" json:"print"`
	UI      UIConfig      `toml:"ui" json:"ui"`
}

// CustomConfig holds the prefixes of the custom chat format.
type CustomConfig struct {
	UserPrefix      string `toml:"user_prefix" json:"user_prefix"`
	AssistantPrefix string `toml:"assistant_prefix" json:"assistant_prefix"`
}

// DisplayConfig controls which turns are shown and how they are labeled.
type DisplayConfig struct {
	ShowUser      bool `toml:"show_user" json:"show_user"`
	ShowAssistant bool `toml:"show_assistant" json:"show_assistant"`

	// RoleHeaders is "auto", "always" or "never".
	RoleHeaders string `toml:"role_headers" json:"role_headers"`
}

// PrintConfig configures the browser print surface.
type PrintConfig struct {
	// Title is the printed page title when --title is not given. Empty uses
	// the localized default.
	Title string `toml:"title" json:"title"`

	// Host is the loopback address the print server binds to.
	Host string `toml:"host" json:"host"`

	// Browser overrides the command used to open the print page.
	Browser string `toml:"browser" json:"browser"`

	AcquireTimeoutSecs int `toml:"acquire_timeout_secs" json:"acquire_timeout_secs"`
	LoadTimeoutSecs    int `toml:"load_timeout_secs" json:"load_timeout_secs"`
	PrintTimeoutSecs   int `toml:"print_timeout_secs" json:"print_timeout_secs"`
}

// AcquireTimeout returns the browser connect timeout.
func (p PrintConfig) AcquireTimeout() time.Duration {
	return time.Duration(p.AcquireTimeoutSecs) * time.Second
}

// LoadTimeout returns the document load timeout.
func (p PrintConfig) LoadTimeout() time.Duration {
	return time.Duration(p.LoadTimeoutSecs) * time.Second
}

// PrintTimeout returns the print dialog timeout.
func (p PrintConfig) PrintTimeout() time.Duration {
	return time.Duration(p.PrintTimeoutSecs) * time.Second
}

// UIConfig contains terminal output settings.
type UIConfig struct {
	// NoColor disables colored output regardless of the terminal.
	NoColor bool `toml:"no_color" json:"no_color"`

	// WordWrap is the preview wrap width. Zero uses the terminal width.
	WordWrap int `toml:"word_wrap" json:"word_wrap"`
}

// =============================================================================
// DEFAULT CONFIG
// =============================================================================

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Version:       CurrentVersion,
		Locale:        i18n.TraditionalChinese,
		DefaultFormat: "chatgpt-default",
		Display: DisplayConfig{
			ShowUser:      true,
			ShowAssistant: true,
			RoleHeaders:   HeadersAuto,
		},
		Print: PrintConfig{
			Host:               "127.0.0.1",
			AcquireTimeoutSecs: 15,
			LoadTimeoutSecs:    30,
			PrintTimeoutSecs:   600,
		},
		UI: UIConfig{
			WordWrap: 0,
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the configuration directory path.
func ConfigDir() (string, error) {
	if dir := os.Getenv("CHATREADER_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".chat-gpt-reader"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults.
// Environment overrides are applied last.
//
// A file that fails to decode is reported alongside the defaults so that
// the caller can warn and keep going.
func Load() (*Config, error) {
	var loadErr error

	if path, err := ConfigPathTOML(); err == nil && fileExists(path) {
		cfg := Default()
		if err := LoadTOML(cfg, path); err != nil {
			loadErr = fmt.Errorf("failed to load TOML config: %w", err)
		} else {
			return finish(cfg)
		}
	}

	if path, err := ConfigPathJSON(); err == nil && fileExists(path) {
		cfg := Default()
		if err := LoadJSON(cfg, path); err != nil {
			loadErr = errors.Join(loadErr, fmt.Errorf("failed to load JSON config: %w", err))
		} else {
			return finish(cfg)
		}
	}

	cfg, err := finish(Default())
	if err != nil {
		return nil, err
	}
	return cfg, loadErr
}

// LoadTOML decodes a TOML file over cfg.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	fillDefaults(cfg)
	return nil
}

// LoadJSON decodes a JSON file over cfg.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	fillDefaults(cfg)
	return nil
}

// LoadFromPath loads configuration from a specific file path with full
// validation.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
	} else {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}

	return finish(cfg)
}

// finish applies environment overrides and validates.
func finish(cfg *Config) (*Config, error) {
	cfg.ApplyEnvOverrides()
	fillDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// fillDefaults replaces empty strings and zero durations with defaults.
// Booleans are left alone; Default() seeds them before decoding.
func fillDefaults(cfg *Config) {
	defaults := Default()

	if cfg.Version == "" {
		cfg.Version = defaults.Version
	}
	if cfg.Locale == "" {
		cfg.Locale = defaults.Locale
	}
	if cfg.DefaultFormat == "" {
		cfg.DefaultFormat = defaults.DefaultFormat
	}

	if cfg.Display.RoleHeaders == "" {
		cfg.Display.RoleHeaders = defaults.Display.RoleHeaders
	}

	if cfg.Print.Host == "" {
		cfg.Print.Host = defaults.Print.Host
	}
	if cfg.Print.AcquireTimeoutSecs == 0 {
		cfg.Print.AcquireTimeoutSecs = defaults.Print.AcquireTimeoutSecs
	}
	if cfg.Print.LoadTimeoutSecs == 0 {
		cfg.Print.LoadTimeoutSecs = defaults.Print.LoadTimeoutSecs
	}
	if cfg.Print.PrintTimeoutSecs == 0 {
		cfg.Print.PrintTimeoutSecs = defaults.Print.PrintTimeoutSecs
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML saves the configuration to a TOML file.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, "# chat-gpt-reader configuration file")
	fmt.Fprintln(&buf, "# Generated by chat-gpt-reader - edit with care")
	fmt.Fprintln(&buf, "")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := util.AtomicWriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SaveJSON saves the configuration to a JSON file.
func SaveJSON(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := util.AtomicWriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

var formatIDPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]*$`)

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	// Locale
	if c.Locale != LocaleAuto && !isSupportedLocale(c.Locale) {
		errs = append(errs, ValidationError{
			Field:   "locale",
			Message: fmt.Sprintf("unsupported locale '%s', must be one of: %s", c.Locale, strings.Join(localeChoices(), ", ")),
		})
	}

	// Formats
	if !formatIDPattern.MatchString(c.DefaultFormat) {
		errs = append(errs, ValidationError{
			Field:   "default_format",
			Message: fmt.Sprintf("invalid format id '%s'", c.DefaultFormat),
		})
	}
	if c.FormatsFile != "" {
		switch strings.ToLower(filepath.Ext(c.FormatsFile)) {
		case ".toml", ".yaml", ".yml":
		default:
			errs = append(errs, ValidationError{
				Field:   "formats_file",
				Message: "must be a .toml, .yaml or .yml file",
			})
		}
	}
	if c.DefaultFormat == "custom" {
		if strings.TrimSpace(c.Custom.UserPrefix) == "" || strings.TrimSpace(c.Custom.AssistantPrefix) == "" {
			errs = append(errs, ValidationError{
				Field:   "custom",
				Message: "user_prefix and assistant_prefix are required when default_format is custom",
			})
		}
	}

	// Display
	switch c.Display.RoleHeaders {
	case HeadersAuto, HeadersAlways, HeadersNever:
	default:
		errs = append(errs, ValidationError{
			Field:   "display.role_headers",
			Message: fmt.Sprintf("invalid mode '%s', must be one of: auto, always, never", c.Display.RoleHeaders),
		})
	}

	// Print
	if !isLoopback(c.Print.Host) {
		errs = append(errs, ValidationError{
			Field:   "print.host",
			Message: fmt.Sprintf("'%s' is not a loopback address", c.Print.Host),
		})
	}
	errs = appendRange(errs, "print.acquire_timeout_secs", c.Print.AcquireTimeoutSecs, 1, 600)
	errs = appendRange(errs, "print.load_timeout_secs", c.Print.LoadTimeoutSecs, 1, 600)
	errs = appendRange(errs, "print.print_timeout_secs", c.Print.PrintTimeoutSecs, 1, 86400)

	// UI
	if c.UI.WordWrap != 0 && (c.UI.WordWrap < 20 || c.UI.WordWrap > 400) {
		errs = append(errs, ValidationError{
			Field:   "ui.word_wrap",
			Message: fmt.Sprintf("must be 0 or between 20 and 400, got %d", c.UI.WordWrap),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func appendRange(errs ValidateErrors, field string, value, lo, hi int) ValidateErrors {
	if value < lo || value > hi {
		errs = append(errs, ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be between %d and %d, got %d", lo, hi, value),
		})
	}
	return errs
}

func isSupportedLocale(code string) bool {
	for _, lang := range i18n.Supported() {
		if lang.Code == code {
			return true
		}
	}
	return false
}

func localeChoices() []string {
	choices := []string{LocaleAuto}
	for _, lang := range i18n.Supported() {
		choices = append(choices, lang.Code)
	}
	return choices
}

func isLoopback(host string) bool {
	if strings.EqualFold(host, "localhost") {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - CHATREADER_LOCALE: overrides locale
//   - CHATREADER_FORMAT: overrides default_format
//   - CHATREADER_FORMATS_FILE: overrides formats_file
//   - CHATREADER_ROLE_HEADERS: overrides display.role_headers
//   - CHATREADER_BROWSER: overrides print.browser
//   - CHATREADER_PRINT_HOST: overrides print.host
//   - CHATREADER_NO_COLOR: set to "1" or "true" to disable colors
func (c *Config) ApplyEnvOverrides() {
	if locale := os.Getenv("CHATREADER_LOCALE"); locale != "" {
		c.Locale = strings.ToLower(locale)
	}
	if format := os.Getenv("CHATREADER_FORMAT"); format != "" {
		c.DefaultFormat = format
	}
	if file := os.Getenv("CHATREADER_FORMATS_FILE"); file != "" {
		c.FormatsFile = file
	}
	if mode := os.Getenv("CHATREADER_ROLE_HEADERS"); mode != "" {
		c.Display.RoleHeaders = strings.ToLower(mode)
	}
	if browser := os.Getenv("CHATREADER_BROWSER"); browser != "" {
		c.Print.Browser = browser
	}
	if host := os.Getenv("CHATREADER_PRINT_HOST"); host != "" {
		c.Print.Host = host
	}
	if noColor := os.Getenv("CHATREADER_NO_COLOR"); noColor != "" {
		c.UI.NoColor = noColor == "1" || strings.ToLower(noColor) == "true"
	}
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value using dot notation (e.g., "print.host").
func (c *Config) Get(key string) (interface{}, error) {
	field, err := c.lookup(key)
	if err != nil {
		return nil, err
	}
	return field.Interface(), nil
}

// Set sets a configuration value using dot notation (e.g., "print.host").
// The result is not validated; call Validate before saving.
func (c *Config) Set(key string, value interface{}) error {
	field, err := c.lookup(key)
	if err != nil {
		return err
	}
	if !field.CanSet() {
		return fmt.Errorf("cannot set field: %s", key)
	}
	return setFieldValue(field, value)
}

// lookup walks the struct along a dotted key.
func (c *Config) lookup(key string) (reflect.Value, error) {
	if strings.TrimSpace(key) == "" {
		return reflect.Value{}, errors.New("empty key")
	}
	parts := strings.Split(key, ".")

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		fieldName := normalizeFieldName(part)
		field := v.FieldByNameFunc(func(name string) bool {
			return strings.EqualFold(name, fieldName)
		})
		if !field.IsValid() {
			return reflect.Value{}, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}

		if i == len(parts)-1 {
			if field.Kind() == reflect.Struct {
				return reflect.Value{}, fmt.Errorf("'%s' is a section, not a value", key)
			}
			return field, nil
		}

		if field.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("field '%s' is not a struct", strings.Join(parts[:i+1], "."))
		}
		v = field
	}

	return reflect.Value{}, fmt.Errorf("invalid key: %s", key)
}

// normalizeFieldName converts a snake_case or kebab-case name to its Go field equivalent.
func normalizeFieldName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})

	var result strings.Builder
	for _, part := range parts {
		if len(part) > 0 {
			result.WriteString(strings.ToUpper(string(part[0])))
			result.WriteString(strings.ToLower(part[1:]))
		}
	}

	return result.String()
}

// setFieldValue sets a reflect.Value from an interface{} value with type conversion.
func setFieldValue(field reflect.Value, value interface{}) error {
	if strVal, ok := value.(string); ok {
		switch field.Kind() {
		case reflect.String:
			field.SetString(strVal)
			return nil
		case reflect.Int, reflect.Int64:
			intVal, err := strconv.ParseInt(strVal, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer value: %v", err)
			}
			field.SetInt(intVal)
			return nil
		case reflect.Bool:
			switch strings.ToLower(strings.TrimSpace(strVal)) {
			case "1", "true", "yes":
				field.SetBool(true)
			case "0", "false", "no":
				field.SetBool(false)
			default:
				return fmt.Errorf("invalid boolean value %q (want true/false, yes/no or 1/0)", strVal)
			}
			return nil
		}
	}

	val := reflect.ValueOf(value)
	if !val.IsValid() {
		return fmt.Errorf("cannot assign nil to %s", field.Type())
	}
	if val.Type().AssignableTo(field.Type()) {
		field.Set(val)
		return nil
	}
	if val.Type().ConvertibleTo(field.Type()) && field.Kind() != reflect.String && val.Kind() != reflect.String {
		field.Set(val.Convert(field.Type()))
		return nil
	}

	return fmt.Errorf("cannot assign %T to %s", value, field.Type())
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// GetAllKeys returns all configuration keys in dot notation.
func GetAllKeys() []string {
	return []string{
		"version",
		"locale",
		"default_format",
		"formats_file",
		"custom.user_prefix",
		"custom.assistant_prefix",
		"display.show_user",
		"display.show_assistant",
		"display.role_headers",
		"print.title",
		"print.host",
		"print.browser",
		"print.acquire_timeout_secs",
		"print.load_timeout_secs",
		"print.print_timeout_secs",
		"ui.no_color",
		"ui.word_wrap",
	}
}

// ResolvedLocale returns the locale code to load, detecting it from the
// environment when Locale is "auto".
func (c *Config) ResolvedLocale() string {
	if c.Locale == LocaleAuto {
		return i18n.Match(i18n.DetectLocale())
	}
	return c.Locale
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// String returns the config as indented JSON.
func (c *Config) String() string {
	data, _ := json.MarshalIndent(c, "", "  ")
	return string(data)
}

// =============================================================================
// SINGLETON PATTERN (THREAD-SAFE)
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the global configuration instance.
// Loads configuration on first access. Thread-safe.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
		}
		if cfg == nil {
			cfg = Default()
		}
		globalConfigMu.Lock()
		globalConfig = cfg
		globalConfigMu.Unlock()
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// LoadGlobal loads the configuration at path, or from the default locations
// when path is empty, and installs it as the global instance. A config that
// could be recovered from a broken file is installed and returned together
// with the load error; an unusable one returns nil and leaves the global
// instance untouched.
func LoadGlobal(path string) (*Config, error) {
	var (
		cfg *Config
		err error
	)
	if path != "" {
		cfg, err = LoadFromPath(path)
	} else {
		cfg, err = Load()
	}
	if cfg == nil {
		return nil, err
	}
	SetGlobal(cfg)
	return cfg, err
}

// SetGlobal sets the global configuration instance. Thread-safe.
func SetGlobal(cfg *Config) {
	// Later Global calls must not replace an explicitly installed config.
	globalConfigOnce.Do(func() {})

	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting resets the global config state for testing.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}
