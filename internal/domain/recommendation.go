// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package domain

import (
	"slices"
	"strings"
)

// RecommendationItem is a single suggestion returned by the provider.
// Name identifies the item within its category.
type RecommendationItem struct {
	Name        string   `json:"name"        toml:"name"         yaml:"name"`
	Reason      string   `json:"reason"      toml:"reason"       yaml:"reason"`
	Features    []string `json:"features"    toml:"features"     yaml:"features"`
	ImageURL    string   `json:"imageUrl"    toml:"image_url"    yaml:"imageUrl"`
	OfficialURL string   `json:"officialUrl" toml:"official_url" yaml:"officialUrl"`
}

// RecommendationSet maps category keys to items in provider order.
// Iterate with CategoryIndex.Categories, never with range over the map.
type RecommendationSet map[Category][]RecommendationItem

// Items returns the items of c in source order.
func (s RecommendationSet) Items(c Category) []RecommendationItem {
	if s == nil {
		return nil
	}

	return s[c]
}

// Len returns the number of items across all known categories.
func (s RecommendationSet) Len() int {
	total := 0
	for _, c := range categoryOrder {
		total += len(s[c])
	}

	return total
}

// Find returns the first item named name, searching categories in enumeration order.
func (s RecommendationSet) Find(name string) (RecommendationItem, Category, bool) {
	for _, c := range categoryOrder {
		for _, item := range s[c] {
			if item.Name == name {
				return item, c, true
			}
		}
	}

	return RecommendationItem{}, "", false
}

// Normalize returns a copy restricted to known categories in which every item
// has a non-empty name that is unique within its category. The first
// occurrence of a duplicated name wins; order is otherwise preserved.
func (s RecommendationSet) Normalize() RecommendationSet {
	normalized := make(RecommendationSet, len(categoryOrder))

	for _, c := range categoryOrder {
		seen := make(map[string]struct{}, len(s[c]))
		items := make([]RecommendationItem, 0, len(s[c]))

		for _, item := range s[c] {
			item.Name = strings.TrimSpace(item.Name)
			if item.Name == "" {
				continue
			}

			if _, dup := seen[item.Name]; dup {
				continue
			}

			seen[item.Name] = struct{}{}
			item.Features = slices.Clone(item.Features)
			items = append(items, item)
		}

		normalized[c] = items
	}

	return normalized
}

// ResultPage pairs a set with the exact query text that produced it.
type ResultPage struct {
	Query string
	Set   RecommendationSet
}

// SeeAll returns the category-listing target for c on this page.
func (p ResultPage) SeeAll(c Category) Target {
	return CategoryListing(c, p.Query)
}
