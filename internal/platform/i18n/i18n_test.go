// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package i18n_test

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/librarium/internal/platform/i18n"
)

func testBundle(t *testing.T) *i18n.Bundle {
	t.Helper()
	fsys := fstest.MapFS{
		"locales/ru.yaml": {Data: []byte("book:\n  not_found: Книга не найдена\n  header: \"Книга #%s\"\nonly_ru: да\n")},
		"locales/en.yaml": {Data: []byte("book:\n  not_found: Book not found\n  header: \"Book #%s\"\n")},
	}
	bundle, err := i18n.Load(fsys, "locales", "ru")
	require.NoError(t, err)
	return bundle
}

/*
TestNegotiate checks Accept-Language negotiation against the loaded catalogs.
*/
func TestNegotiate(t *testing.T) {
	bundle := testBundle(t)

	tests := []struct {
		name   string
		header string
		lang   string
	}{
		{"english_preferred", "en-US,en;q=0.9", "en"},
		{"russian_preferred", "ru-RU,ru;q=0.9,en;q=0.5", "ru"},
		{"unknown_language", "de-DE", "ru"},
		{"empty_header", "", "ru"},
		{"malformed_header", ";;;", "ru"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.lang, bundle.Negotiate(tt.header).Lang())
		})
	}
}

/*
TestLocalizer_Fallbacks verifies default-locale and key fallbacks.
*/
func TestLocalizer_Fallbacks(t *testing.T) {
	bundle := testBundle(t)
	en := bundle.Localizer("en")

	assert.Equal(t, "Book not found", en.T("book.not_found"))
	assert.Equal(t, "Book #7", en.Tf("book.header", "7"))

	// Missing in en, present in the default catalog.
	assert.Equal(t, "да", en.T("only_ru"))

	// Missing everywhere.
	assert.Equal(t, "nope.key", en.T("nope.key"))

	var nilLocalizer *i18n.Localizer
	assert.Equal(t, "book.not_found", nilLocalizer.T("book.not_found"))
}

/*
TestLoad_MissingDefault rejects a bundle without the default catalog.
*/
func TestLoad_MissingDefault(t *testing.T) {
	fsys := fstest.MapFS{
		"locales/en.yaml": {Data: []byte("a: b\n")},
	}
	_, err := i18n.Load(fsys, "locales", "ru")
	require.Error(t, err)
}

/*
TestDefault_EmbeddedCatalogsAgree ensures every embedded locale defines the same keys.
*/
func TestDefault_EmbeddedCatalogsAgree(t *testing.T) {
	bundle, err := i18n.Default("ru")
	require.NoError(t, err)

	ru := bundle.Localizer("ru")
	en := bundle.Localizer("en")

	for _, key := range []string{
		"author.not_found", "book.not_found", "genre.not_found", "comment.not_found",
		"common.save_error", "book.genres_required", "comment.unknown_book",
	} {
		assert.NotEqual(t, key, ru.T(key), key)
		assert.NotEqual(t, key, en.T(key), key)
		assert.NotEqual(t, ru.T(key), en.T(key), key)
	}
}
