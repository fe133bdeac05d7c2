// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package domain

import "context"

// RecommendationProvider produces a categorised set for a keyword.
// Implementations own their timeout and retry policy.
type RecommendationProvider interface {
	// FetchRecommendations returns the set for query. Any error is treated as a generic fetch failure.
	FetchRecommendations(ctx context.Context, query string) (*RecommendationSet, error)
}

// FavoritesStore persists favorite membership keyed by item name.
type FavoritesStore interface {
	// IsFavorite reports whether an item named name is a favorite.
	IsFavorite(name string) bool

	// Toggle flips membership for item and returns the new membership.
	Toggle(item RecommendationItem) (bool, error)

	// List returns every favorite, oldest first.
	List() ([]RecommendationItem, error)

	// Clear removes all favorites.
	Clear() error
}

// Completion is the outcome of one provider call, tagged with the generation that started it.
type Completion struct {
	Generation uint64
	Query      string
	Set        RecommendationSet
	Err        error
}

// Fetch is a deferred provider call. It blocks and is meant to run off the UI loop.
type Fetch func() Completion

// QueryRunner starts a search for text.
type QueryRunner interface {
	RunQuery(ctx context.Context, text string) (Fetch, error)
}

// ImageRef describes a tile or detail image and its deterministic fallback.
type ImageRef struct {
	Src          string
	FallbackText string
	Identifier   string
}

// ImageRenderer turns an ImageRef into terminal output of the given width.
// A failed or missing image renders the fallback for ref.Identifier.
type ImageRenderer interface {
	Render(ref ImageRef, width int) string
}
