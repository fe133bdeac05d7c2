// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package domain

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/language"
)

// Category is one of the fixed groupings recommendations are organised into.
type Category string

// Category keys as used by the provider contract and in navigation targets.
const (
	CategoryArtists     Category = "artists"
	CategoryCelebrities Category = "celebrities"
	CategoryMedia       Category = "media"
	CategoryFashion     Category = "fashion"
)

// categoryOrder is the enumeration order for every rendering of a set.
var categoryOrder = [...]Category{ //nolint:gochecknoglobals
	CategoryArtists,
	CategoryCelebrities,
	CategoryMedia,
	CategoryFashion,
}

// supportedLocales lists label sets in matcher preference order; the first is the fallback.
var supportedLocales = []language.Tag{ //nolint:gochecknoglobals
	language.Japanese,
	language.English,
}

var categoryLabels = map[language.Tag]map[Category]string{ //nolint:gochecknoglobals
	language.Japanese: {
		CategoryArtists:     "アーティスト",
		CategoryCelebrities: "芸能人/インフルエンサー",
		CategoryMedia:       "映画/アニメ",
		CategoryFashion:     "ファッションブランド",
	},
	language.English: {
		CategoryArtists:     "Artists",
		CategoryCelebrities: "Celebrities & Influencers",
		CategoryMedia:       "Movies & Anime",
		CategoryFashion:     "Fashion Brands",
	},
}

// String returns the category key.
func (c Category) String() string {
	return string(c)
}

// Valid reports whether c is one of the four known keys.
func (c Category) Valid() bool {
	for _, known := range categoryOrder {
		if c == known {
			return true
		}
	}

	return false
}

// ParseCategory maps a key to its Category.
func ParseCategory(key string) (Category, error) {
	category := Category(strings.ToLower(strings.TrimSpace(key)))
	if !category.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, key)
	}

	return category, nil
}

// CategoryIndex maps category keys to display labels for one locale.
type CategoryIndex struct {
	locale language.Tag
	labels map[Category]string
}

// NewCategoryIndex builds the index for the best label set matching locale.
// Unknown or empty locales fall back to Japanese labels.
func NewCategoryIndex(locale string) CategoryIndex {
	matcher := language.NewMatcher(supportedLocales)

	tag := supportedLocales[0]

	if requested, err := language.Parse(locale); err == nil {
		_, index, confidence := matcher.Match(requested)
		if confidence != language.No {
			tag = supportedLocales[index]
		}
	}

	return CategoryIndex{locale: tag, labels: categoryLabels[tag]}
}

// Locale returns the label set in use.
func (i CategoryIndex) Locale() language.Tag {
	return i.locale
}

// Categories returns the fixed enumeration order.
func (i CategoryIndex) Categories() []Category {
	return slices.Clone(categoryOrder[:])
}

// Label returns the display label for c, or the key itself for unknown categories.
func (i CategoryIndex) Label(c Category) string {
	if label, ok := i.labels[c]; ok {
		return label
	}

	return string(c)
}
