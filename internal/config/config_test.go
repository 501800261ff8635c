// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

// isolate points the config directory at an empty temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("CHATREADER_HOME", dir)
	return dir
}

// TestConfig_ConcurrentAccess tests that Global() and SetGlobal() can be
// safely called concurrently.
// Run with: go test -race -v ./internal/config/
func TestConfig_ConcurrentAccess(t *testing.T) {
	isolate(t)
	ResetGlobalForTesting()

	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(2)

		go func() {
			defer wg.Done()
			c := Default()
			c.Version = "test"
			SetGlobal(c)
		}()

		go func() {
			defer wg.Done()
			if Global() == nil {
				t.Error("Global() returned nil")
			}
		}()
	}

	wg.Wait()
}

// TestConfig_ConcurrentLoadGlobal tests concurrent LoadGlobal and Global calls.
func TestConfig_ConcurrentLoadGlobal(t *testing.T) {
	isolate(t)
	ResetGlobalForTesting()
	_ = Global()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := LoadGlobal(""); err != nil {
				t.Errorf("LoadGlobal() error = %v", err)
			}
		}()
	}
	for i := 0; i < 80; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if Global() == nil {
				t.Error("Global() returned nil")
			}
		}()
	}
	wg.Wait()
}

// TestConfig_GlobalInitialization tests that Global() loads defaults when no
// file exists.
func TestConfig_GlobalInitialization(t *testing.T) {
	isolate(t)
	ResetGlobalForTesting()

	cfg := Global()
	if cfg == nil {
		t.Fatal("Global() returned nil")
	}
	if cfg.Version != CurrentVersion {
		t.Errorf("Version = %q, want %q", cfg.Version, CurrentVersion)
	}
	if cfg.DefaultFormat == "" {
		t.Error("DefaultFormat should not be empty")
	}
}

// TestConfig_SetGlobalOverwrites tests that SetGlobal replaces the instance.
func TestConfig_SetGlobalOverwrites(t *testing.T) {
	isolate(t)
	ResetGlobalForTesting()
	_ = Global()

	custom := Default()
	custom.DefaultFormat = "claude"
	SetGlobal(custom)

	if got := Global().DefaultFormat; got != "claude" {
		t.Errorf("DefaultFormat = %q, want 'claude'", got)
	}
}

// TestConfig_SetGlobalBeforeFirstAccess tests that an installed config is
// not replaced by the lazy load in Global.
func TestConfig_SetGlobalBeforeFirstAccess(t *testing.T) {
	dir := isolate(t)
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(`default_format = "bard"`), 0644); err != nil {
		t.Fatal(err)
	}
	ResetGlobalForTesting()

	custom := Default()
	custom.DefaultFormat = "claude"
	SetGlobal(custom)

	if got := Global().DefaultFormat; got != "claude" {
		t.Errorf("DefaultFormat = %q, want 'claude'", got)
	}
}

// TestConfig_LoadGlobal tests explicit paths, broken files and invalid files.
func TestConfig_LoadGlobal(t *testing.T) {
	dir := isolate(t)

	explicit := filepath.Join(dir, "custom.toml")
	if err := os.WriteFile(explicit, []byte(`default_format = "claude"`), 0644); err != nil {
		t.Fatal(err)
	}
	ResetGlobalForTesting()
	cfg, err := LoadGlobal(explicit)
	if err != nil {
		t.Fatalf("LoadGlobal(path) error = %v", err)
	}
	if cfg.DefaultFormat != "claude" || Global() != cfg {
		t.Errorf("LoadGlobal(path) should install the loaded config, got %q", Global().DefaultFormat)
	}

	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte("locale = "), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err = LoadGlobal("")
	if err == nil {
		t.Error("LoadGlobal() should report the broken file")
	}
	if cfg == nil || Global() != cfg || cfg.DefaultFormat != "chatgpt-default" {
		t.Errorf("LoadGlobal() should install defaults for a broken file, got %v", cfg)
	}

	invalid := filepath.Join(dir, "invalid.toml")
	if err := os.WriteFile(invalid, []byte(`locale = "fr"`), 0644); err != nil {
		t.Fatal(err)
	}
	before := Global()
	cfg, err = LoadGlobal(invalid)
	if err == nil || cfg != nil {
		t.Errorf("LoadGlobal(invalid) = %v, %v; want nil and an error", cfg, err)
	}
	if Global() != before {
		t.Error("LoadGlobal(invalid) should leave the global config alone")
	}
}

// TestConfig_Default tests that Default() returns a valid config.
func TestConfig_Default(t *testing.T) {
	cfg := Default()

	if cfg.Locale != "zh-tw" {
		t.Errorf("Locale = %q, want 'zh-tw'", cfg.Locale)
	}
	if cfg.DefaultFormat != "chatgpt-default" {
		t.Errorf("DefaultFormat = %q, want 'chatgpt-default'", cfg.DefaultFormat)
	}
	if !cfg.Display.ShowUser || !cfg.Display.ShowAssistant {
		t.Error("both roles should be shown by default")
	}
	if cfg.Display.RoleHeaders != HeadersAuto {
		t.Errorf("RoleHeaders = %q, want %q", cfg.Display.RoleHeaders, HeadersAuto)
	}
	if cfg.Print.AcquireTimeout() != 15*time.Second {
		t.Errorf("AcquireTimeout = %v, want 15s", cfg.Print.AcquireTimeout())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}

// TestConfig_Validate tests configuration validation.
func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid default config", mutate: func(c *Config) {}},
		{name: "auto locale", mutate: func(c *Config) { c.Locale = LocaleAuto }},
		{name: "english locale", mutate: func(c *Config) { c.Locale = "en" }},
		{name: "unsupported locale", mutate: func(c *Config) { c.Locale = "fr" }, wantErr: "locale"},
		{name: "bad format id", mutate: func(c *Config) { c.DefaultFormat = "Chat GPT" }, wantErr: "default_format"},
		{name: "yaml formats file", mutate: func(c *Config) { c.FormatsFile = "formats.yml" }},
		{name: "json formats file", mutate: func(c *Config) { c.FormatsFile = "formats.json" }, wantErr: "formats_file"},
		{
			name:    "custom without prefixes",
			mutate:  func(c *Config) { c.DefaultFormat = "custom" },
			wantErr: "custom",
		},
		{
			name: "custom with prefixes",
			mutate: func(c *Config) {
				c.DefaultFormat = "custom"
				c.Custom = CustomConfig{UserPrefix: "Q:", AssistantPrefix: "A:"}
			},
		},
		{name: "invalid header mode", mutate: func(c *Config) { c.Display.RoleHeaders = "sometimes" }, wantErr: "display.role_headers"},
		{name: "never header mode", mutate: func(c *Config) { c.Display.RoleHeaders = HeadersNever }},
		{name: "localhost", mutate: func(c *Config) { c.Print.Host = "localhost" }},
		{name: "ipv6 loopback", mutate: func(c *Config) { c.Print.Host = "::1" }},
		{name: "public host", mutate: func(c *Config) { c.Print.Host = "0.0.0.0" }, wantErr: "print.host"},
		{name: "zero acquire timeout", mutate: func(c *Config) { c.Print.AcquireTimeoutSecs = 0 }, wantErr: "print.acquire_timeout_secs"},
		{name: "huge load timeout", mutate: func(c *Config) { c.Print.LoadTimeoutSecs = 601 }, wantErr: "print.load_timeout_secs"},
		{name: "narrow word wrap", mutate: func(c *Config) { c.UI.WordWrap = 10 }, wantErr: "ui.word_wrap"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(c)
			err := c.Validate()

			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}

			var verrs ValidateErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("Validate() error = %v, want ValidateErrors", err)
			}
			if verrs[0].Field != tt.wantErr {
				t.Errorf("Field = %q, want %q", verrs[0].Field, tt.wantErr)
			}
		})
	}
}

// TestConfig_LoadTOMLOverDefaults tests that a partial file keeps defaults
// for everything it does not mention.
func TestConfig_LoadTOMLOverDefaults(t *testing.T) {
	dir := isolate(t)
	data := `
locale = "en"
default_format = "claude"

[display]
show_assistant = false

[print]
load_timeout_secs = 5
`
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Locale != "en" || cfg.DefaultFormat != "claude" {
		t.Errorf("got locale=%q format=%q", cfg.Locale, cfg.DefaultFormat)
	}
	if !cfg.Display.ShowUser {
		t.Error("show_user should keep its default")
	}
	if cfg.Display.ShowAssistant {
		t.Error("show_assistant should be false")
	}
	if cfg.Print.LoadTimeout() != 5*time.Second {
		t.Errorf("LoadTimeout = %v, want 5s", cfg.Print.LoadTimeout())
	}
	if cfg.Print.Host != "127.0.0.1" {
		t.Errorf("Host = %q, want default", cfg.Print.Host)
	}
}

// TestConfig_LoadJSONFallback tests that config.json is read when there is
// no config.toml.
func TestConfig_LoadJSONFallback(t *testing.T) {
	dir := isolate(t)
	data := `{"default_format": "bard", "ui": {"word_wrap": 100}}`
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.DefaultFormat != "bard" || cfg.UI.WordWrap != 100 {
		t.Errorf("got format=%q wrap=%d", cfg.DefaultFormat, cfg.UI.WordWrap)
	}
}

// TestConfig_LoadBrokenFileKeepsDefaults tests that a file that cannot be
// decoded is reported but does not prevent loading defaults.
func TestConfig_LoadBrokenFileKeepsDefaults(t *testing.T) {
	dir := isolate(t)
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte("locale = "), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err == nil {
		t.Error("Load() should report the broken file")
	}
	if cfg == nil || cfg.DefaultFormat != "chatgpt-default" {
		t.Fatalf("Load() should fall back to defaults, got %v", cfg)
	}
}

// TestConfig_EnvOverrides tests the CHATREADER_* variables.
func TestConfig_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("CHATREADER_LOCALE", "EN")
	t.Setenv("CHATREADER_FORMAT", "claude")
	t.Setenv("CHATREADER_ROLE_HEADERS", "Never")
	t.Setenv("CHATREADER_BROWSER", "firefox")
	t.Setenv("CHATREADER_NO_COLOR", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Locale != "en" {
		t.Errorf("Locale = %q, want 'en'", cfg.Locale)
	}
	if cfg.DefaultFormat != "claude" {
		t.Errorf("DefaultFormat = %q, want 'claude'", cfg.DefaultFormat)
	}
	if cfg.Display.RoleHeaders != HeadersNever {
		t.Errorf("RoleHeaders = %q, want 'never'", cfg.Display.RoleHeaders)
	}
	if cfg.Print.Browser != "firefox" {
		t.Errorf("Browser = %q, want 'firefox'", cfg.Print.Browser)
	}
	if !cfg.UI.NoColor {
		t.Error("NoColor should be true")
	}
}

// TestConfig_InvalidEnvOverrideFails tests that overrides are validated.
func TestConfig_InvalidEnvOverrideFails(t *testing.T) {
	isolate(t)
	t.Setenv("CHATREADER_PRINT_HOST", "example.com")

	if _, err := Load(); err == nil {
		t.Error("Load() should reject a non-loopback host")
	}
}

// TestConfig_SaveRoundTrip tests SaveTOML and SaveJSON followed by
// LoadFromPath.
func TestConfig_SaveRoundTrip(t *testing.T) {
	dir := isolate(t)

	cfg := Default()
	cfg.Locale = "en"
	cfg.Display.ShowUser = false
	cfg.Custom = CustomConfig{UserPrefix: "Me:", AssistantPrefix: "Bot:"}

	for _, name := range []string{"config.toml", "nested/config.json"} {
		path := filepath.Join(dir, name)
		var err error
		if strings.HasSuffix(name, ".json") {
			err = SaveJSON(cfg, path)
		} else {
			err = SaveTOML(cfg, path)
		}
		if err != nil {
			t.Fatalf("save %s: %v", name, err)
		}

		loaded, err := LoadFromPath(path)
		if err != nil {
			t.Fatalf("LoadFromPath(%s) error = %v", name, err)
		}
		if *loaded != *cfg {
			t.Errorf("%s round trip:\n got %+v\nwant %+v", name, loaded, cfg)
		}
	}
}

// TestConfig_GetSet tests Get and Set methods with dot notation.
func TestConfig_GetSet(t *testing.T) {
	cfg := Default()

	val, err := cfg.Get("print.host")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if val != "127.0.0.1" {
		t.Errorf("Get('print.host') = %v, want '127.0.0.1'", val)
	}

	if err := cfg.Set("print.load_timeout_secs", "9"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if cfg.Print.LoadTimeoutSecs != 9 {
		t.Errorf("LoadTimeoutSecs = %d, want 9", cfg.Print.LoadTimeoutSecs)
	}

	if err := cfg.Set("display.show_user", "no"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if cfg.Display.ShowUser {
		t.Error("ShowUser should be false")
	}

	if err := cfg.Set("display.show_assistant", false); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if cfg.Display.ShowAssistant {
		t.Error("ShowAssistant should be false")
	}

	if _, err := cfg.Get("invalid.key"); err == nil {
		t.Error("Get() with invalid key should return error")
	}
	if _, err := cfg.Get("print"); err == nil {
		t.Error("Get() on a section should return error")
	}
	if err := cfg.Set("print.title", 42); err == nil {
		t.Error("Set() should not convert an int into a string")
	}
}

// TestConfig_SetBool tests the accepted spellings of boolean values.
func TestConfig_SetBool(t *testing.T) {
	tests := []struct {
		value   string
		want    bool
		wantErr bool
	}{
		{"true", true, false},
		{"YES", true, false},
		{"1", true, false},
		{"false", false, false},
		{"No", false, false},
		{" 0 ", false, false},
		{"banana", false, true},
		{"", false, true},
		{"on", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			cfg := Default()
			cfg.Display.ShowUser = !tt.want

			err := cfg.Set("display.show_user", tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Set(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if tt.wantErr {
				if !cfg.Display.ShowUser {
					t.Error("a rejected value should leave the field unchanged")
				}
				return
			}
			if cfg.Display.ShowUser != tt.want {
				t.Errorf("ShowUser = %v, want %v", cfg.Display.ShowUser, tt.want)
			}
		})
	}
}

// TestConfig_GetAllKeysResolve tests that every listed key can be read.
func TestConfig_GetAllKeysResolve(t *testing.T) {
	cfg := Default()
	for _, key := range GetAllKeys() {
		if _, err := cfg.Get(key); err != nil {
			t.Errorf("Get(%q) error = %v", key, err)
		}
	}
}

// TestConfig_Clone tests that Clone creates an independent copy.
func TestConfig_Clone(t *testing.T) {
	original := Default()
	clone := original.Clone()
	clone.Print.Title = "changed"

	if original.Print.Title != "" {
		t.Error("Clone should create an independent copy")
	}
}

// TestConfig_ResolvedLocale tests locale detection for "auto".
func TestConfig_ResolvedLocale(t *testing.T) {
	cfg := Default()
	if got := cfg.ResolvedLocale(); got != "zh-tw" {
		t.Errorf("ResolvedLocale() = %q, want 'zh-tw'", got)
	}

	t.Setenv("LC_ALL", "")
	t.Setenv("LC_MESSAGES", "")
	t.Setenv("LANG", "en_US.UTF-8")
	cfg.Locale = LocaleAuto
	if got := cfg.ResolvedLocale(); got != "en" {
		t.Errorf("ResolvedLocale() = %q, want 'en'", got)
	}
}
