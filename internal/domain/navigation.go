// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package domain

import (
	"fmt"
	"net/url"
	"strings"
)

// TargetKind names an addressable view.
type TargetKind int

// Target kinds consumed by the router.
const (
	TargetSearchResults TargetKind = iota
	TargetCategoryListing
)

// Route prefixes for rendered hrefs.
const (
	searchPath   = "/search"
	categoryPath = "/category/"
)

// Target is a navigation destination. Both kinds carry the query text.
type Target struct {
	Kind     TargetKind
	Category Category
	Query    string
}

// SearchResults addresses the results view for query.
func SearchResults(query string) Target {
	return Target{Kind: TargetSearchResults, Query: query}
}

// CategoryListing addresses the full listing of c for query.
func CategoryListing(c Category, query string) Target {
	return Target{Kind: TargetCategoryListing, Category: c, Query: query}
}

// Href renders the target with the query URL-encoded.
func (t Target) Href() string {
	values := url.Values{}
	values.Set("q", t.Query)

	switch t.Kind {
	case TargetCategoryListing:
		return categoryPath + url.PathEscape(string(t.Category)) + "?" + values.Encode()
	default:
		return searchPath + "?" + values.Encode()
	}
}

// String implements fmt.Stringer.
func (t Target) String() string {
	return t.Href()
}

// ParseTarget reconstructs a target from an href produced by Href.
func ParseTarget(href string) (Target, error) {
	parsed, err := url.Parse(href)
	if err != nil {
		return Target{}, fmt.Errorf("%w: %w", ErrInvalidTarget, err)
	}

	query := parsed.Query().Get("q")

	switch {
	case parsed.Path == searchPath:
		return SearchResults(query), nil
	case strings.HasPrefix(parsed.Path, categoryPath):
		category, err := ParseCategory(strings.TrimPrefix(parsed.Path, categoryPath))
		if err != nil {
			return Target{}, fmt.Errorf("%w: %w", ErrInvalidTarget, err)
		}

		return CategoryListing(category, query), nil
	default:
		return Target{}, fmt.Errorf("%w: %s", ErrInvalidTarget, href)
	}
}
