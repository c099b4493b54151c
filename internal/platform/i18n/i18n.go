// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package i18n loads the localized UI message catalogs and negotiates the
catalog for each request.

Catalogs are YAML documents (one per locale) whose nested keys are flattened
into dotted identifiers, e.g. "book.not_found". Lookups fall back to the
default locale and finally to the key itself, so a missing translation is
visible on the page instead of producing an empty string.
*/
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var embeddedLocales embed.FS

// Bundle holds every loaded catalog plus the matcher used for negotiation.
type Bundle struct {
	defaultLocale string
	catalogs      map[string]map[string]string
	tags          []language.Tag
	matcher       language.Matcher
}

// Default loads the catalogs compiled into the binary.
func Default(defaultLocale string) (*Bundle, error) {
	return Load(embeddedLocales, "locales", defaultLocale)
}

// Load reads every "<locale>.yaml" file in dir and builds a [Bundle].
//
// The default locale must be among the loaded catalogs; it is placed first in
// the matcher so that it wins when Accept-Language matches nothing.
func Load(fsys fs.FS, dir, defaultLocale string) (*Bundle, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("i18n: read locales dir: %w", err)
	}

	catalogs := make(map[string]map[string]string, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".yaml" {
			continue
		}
		locale := strings.TrimSuffix(entry.Name(), ".yaml")

		raw, err := fs.ReadFile(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("i18n: read %s: %w", entry.Name(), err)
		}

		var tree map[string]any
		if err := yaml.Unmarshal(raw, &tree); err != nil {
			return nil, fmt.Errorf("i18n: parse %s: %w", entry.Name(), err)
		}

		messages := make(map[string]string)
		flatten("", tree, messages)
		catalogs[locale] = messages
	}

	if _, ok := catalogs[defaultLocale]; !ok {
		return nil, fmt.Errorf("i18n: default locale %q has no catalog", defaultLocale)
	}

	locales := make([]string, 0, len(catalogs))
	for locale := range catalogs {
		if locale != defaultLocale {
			locales = append(locales, locale)
		}
	}
	sort.Strings(locales)
	locales = append([]string{defaultLocale}, locales...)

	tags := make([]language.Tag, 0, len(locales))
	for _, locale := range locales {
		tag, err := language.Parse(locale)
		if err != nil {
			return nil, fmt.Errorf("i18n: invalid locale %q: %w", locale, err)
		}
		tags = append(tags, tag)
	}

	return &Bundle{
		defaultLocale: defaultLocale,
		catalogs:      catalogs,
		tags:          tags,
		matcher:       language.NewMatcher(tags),
	}, nil
}

// Negotiate picks the best catalog for an Accept-Language header value.
func (b *Bundle) Negotiate(acceptLanguage string) *Localizer {
	preferred, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(preferred) == 0 {
		return b.Localizer(b.defaultLocale)
	}

	_, index, confidence := b.matcher.Match(preferred...)
	if confidence == language.No {
		return b.Localizer(b.defaultLocale)
	}
	base, _ := b.tags[index].Base()
	return b.Localizer(base.String())
}

// Localizer returns the catalog for locale, or the default one when unknown.
func (b *Bundle) Localizer(locale string) *Localizer {
	messages, ok := b.catalogs[locale]
	if !ok {
		locale = b.defaultLocale
		messages = b.catalogs[locale]
	}
	return &Localizer{
		lang:     locale,
		messages: messages,
		fallback: b.catalogs[b.defaultLocale],
	}
}

// Localizer resolves message keys for one locale. A nil Localizer returns keys unchanged.
type Localizer struct {
	lang     string
	messages map[string]string
	fallback map[string]string
}

// Lang is the BCP 47 base language of the catalog in use.
func (l *Localizer) Lang() string {
	if l == nil {
		return ""
	}
	return l.lang
}

// T returns the message for key.
func (l *Localizer) T(key string) string {
	if l == nil {
		return key
	}
	if message, ok := l.messages[key]; ok {
		return message
	}
	if message, ok := l.fallback[key]; ok {
		return message
	}
	return key
}

// Tf formats the message for key with args.
func (l *Localizer) Tf(key string, args ...any) string {
	return fmt.Sprintf(l.T(key), args...)
}

func flatten(prefix string, node map[string]any, out map[string]string) {
	for key, value := range node {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}
		switch typed := value.(type) {
		case map[string]any:
			flatten(full, typed, out)
		case string:
			out[full] = typed
		default:
			out[full] = fmt.Sprint(typed)
		}
	}
}
