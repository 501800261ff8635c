// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package i18n

import (
	"embed"
	"fmt"
	"os"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var localeFS embed.FS

const (
	// English is the fallback locale.
	English = "en"
	// TraditionalChinese is the default locale of the reader.
	TraditionalChinese = "zh-tw"
)

// Language describes a selectable locale.
type Language struct {
	Code string
	Name string
	Flag string
}

// languages lists the supported locales in display order.
var languages = []Language{
	{Code: TraditionalChinese, Name: "繁體中文", Flag: "🇹🇼"},
	{Code: English, Name: "English", Flag: "🇺🇸"},
}

// English comes first so that unmatched requests resolve to it.
var matcher = language.NewMatcher([]language.Tag{
	language.English,
	language.MustParse("zh-TW"),
})

var matcherCodes = []string{English, TraditionalChinese}

// Supported returns the selectable locales.
func Supported() []Language {
	out := make([]Language, len(languages))
	copy(out, languages)
	return out
}

// Catalog is the flattened message table of one locale.
type Catalog struct {
	code     string
	messages map[string]string
	fallback *Catalog
}

var (
	loadOnce sync.Once
	catalogs map[string]*Catalog
	loadErr  error
)

func loadAll() {
	catalogs = make(map[string]*Catalog, len(languages))
	for _, lang := range languages {
		data, err := localeFS.ReadFile(path.Join("locales", lang.Code+".toml"))
		if err != nil {
			loadErr = fmt.Errorf("read %s catalog: %w", lang.Code, err)
			return
		}
		messages, err := Parse(data)
		if err != nil {
			loadErr = fmt.Errorf("%s catalog: %w", lang.Code, err)
			return
		}
		catalogs[lang.Code] = &Catalog{code: lang.Code, messages: messages}
	}
	for code, cat := range catalogs {
		if code != English {
			cat.fallback = catalogs[English]
		}
	}
}

// Load returns the catalog that best matches the requested locale, such as
// "zh-TW", "zh_TW.UTF-8" or "en-US". Unknown or empty requests get English.
func Load(requested string) *Catalog {
	loadOnce.Do(loadAll)
	if loadErr != nil {
		// Embedded catalogs are part of the build.
		panic(fmt.Sprintf("i18n: %v", loadErr))
	}
	return catalogs[Match(requested)]
}

// Match returns the supported locale code closest to requested.
func Match(requested string) string {
	requested = normalize(requested)
	if requested == "" {
		return English
	}
	tag, err := language.Parse(requested)
	if err != nil {
		return English
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return English
	}
	return matcherCodes[idx]
}

// normalize turns POSIX locale names ("zh_TW.UTF-8@euro") into BCP 47 form.
func normalize(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, ".@"); i >= 0 {
		s = s[:i]
	}
	if s == "C" || s == "POSIX" {
		return ""
	}
	return strings.ReplaceAll(s, "_", "-")
}

// DetectLocale reads the locale from the usual POSIX environment variables.
func DetectLocale() string {
	for _, name := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			return v
		}
	}
	return ""
}

// Parse flattens a TOML catalog into dotted keys. Only string leaves are
// allowed.
func Parse(data []byte) (map[string]string, error) {
	var tree map[string]interface{}
	if _, err := toml.Decode(string(data), &tree); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	out := make(map[string]string)
	if err := flatten("", tree, out); err != nil {
		return nil, err
	}
	return out, nil
}

func flatten(prefix string, node map[string]interface{}, out map[string]string) error {
	for k, v := range node {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case string:
			out[key] = val
		case map[string]interface{}:
			if err := flatten(key, val, out); err != nil {
				return err
			}
		default:
			return fmt.Errorf("catalog key %s: unsupported value type %T", key, v)
		}
	}
	return nil
}

// Code returns the locale code of the catalog.
func (c *Catalog) Code() string {
	return c.code
}

// T returns the message for key. Missing keys fall back to English and then
// to the key itself. Keys that exist with an empty value (custom format
// prefixes) return the empty string.
func (c *Catalog) T(key string) string {
	for cat := c; cat != nil; cat = cat.fallback {
		if msg, ok := cat.messages[key]; ok {
			return msg
		}
	}
	return key
}

// Has reports whether key exists in this catalog itself, without fallback.
func (c *Catalog) Has(key string) bool {
	_, ok := c.messages[key]
	return ok
}

// Keys returns the catalog's keys in sorted order.
func (c *Catalog) Keys() []string {
	keys := make([]string, 0, len(c.messages))
	for k := range c.messages {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
