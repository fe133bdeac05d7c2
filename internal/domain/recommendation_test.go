// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package domain_test

import (
	"testing"

	"github.com/janderssonse/osusume/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestRecommendationSetItemsNilSafe(t *testing.T) {
	t.Parallel()

	var set domain.RecommendationSet

	assert.Empty(t, set.Items(domain.CategoryArtists))
	assert.Zero(t, set.Len())
}

func TestRecommendationSetFindUsesCategoryOrder(t *testing.T) {
	t.Parallel()

	set := domain.RecommendationSet{
		domain.CategoryFashion: {{Name: "Yuzu", Reason: "brand"}},
		domain.CategoryArtists: {{Name: "Yuzu", Reason: "duo"}},
	}

	item, category, ok := set.Find("Yuzu")
	assert.True(t, ok)
	assert.Equal(t, domain.CategoryArtists, category)
	assert.Equal(t, "duo", item.Reason)

	_, _, ok = set.Find("missing")
	assert.False(t, ok)
}

func TestRecommendationSetNormalize(t *testing.T) {
	t.Parallel()

	features := []string{"live"}
	set := domain.RecommendationSet{
		domain.CategoryArtists: {
			{Name: " A ", Features: features},
			{Name: ""},
			{Name: "B"},
			{Name: "A", Reason: "duplicate"},
		},
		domain.Category("podcasts"): {{Name: "P"}},
	}

	normalized := set.Normalize()

	assert.Len(t, normalized.Items(domain.CategoryArtists), 2)
	assert.Equal(t, "A", normalized.Items(domain.CategoryArtists)[0].Name)
	assert.Empty(t, normalized.Items(domain.CategoryArtists)[0].Reason, "first occurrence wins")
	assert.Equal(t, "B", normalized.Items(domain.CategoryArtists)[1].Name)
	assert.NotContains(t, normalized, domain.Category("podcasts"))
	assert.Equal(t, 2, normalized.Len())

	normalized[domain.CategoryArtists][0].Features[0] = "changed"
	assert.Equal(t, "live", features[0], "normalize must not alias provider slices")
}

func TestResultPageSeeAllCarriesQuery(t *testing.T) {
	t.Parallel()

	page := domain.ResultPage{Query: "jazz cafe", Set: domain.RecommendationSet{}}
	target := page.SeeAll(domain.CategoryMedia)

	assert.Equal(t, domain.TargetCategoryListing, target.Kind)
	assert.Equal(t, domain.CategoryMedia, target.Category)
	assert.Equal(t, "jazz cafe", target.Query)
}
