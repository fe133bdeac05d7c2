// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package handlers

import (
	"context"
	"time"

	"github.com/janderssonse/osusume/internal/application"
	"github.com/janderssonse/osusume/internal/domain"
)

// SearchHandler runs a one-shot search and prints the sections.
type SearchHandler struct {
	*BaseHandler

	Provider    domain.RecommendationProvider
	Favorites   domain.FavoritesStore
	Locale      string
	ReasonWidth int

	// Warnf reports provider failure causes in verbose mode.
	Warnf func(format string, args ...any)

	now func() time.Time
}

// NewSearchHandler creates a search handler.
func NewSearchHandler(base *BaseHandler, provider domain.RecommendationProvider,
	favorites domain.FavoritesStore, locale string, reasonWidth int,
) *SearchHandler {
	if writer, ok := base.GetOutput().(interface{ SetReasonWidth(width int) }); ok {
		width := reasonWidth
		if width <= 0 {
			width = application.DefaultReasonWidth
		}

		writer.SetReasonWidth(width)
	}

	return &SearchHandler{
		BaseHandler: base,
		Provider:    provider,
		Favorites:   favorites,
		Locale:      locale,
		ReasonWidth: reasonWidth,
		now:         time.Now,
	}
}

// Search fetches recommendations for keyword. With a category only that
// category is printed, in full.
func (h *SearchHandler) Search(ctx context.Context, keyword, category string) error {
	var only domain.Category

	if category != "" {
		parsed, err := domain.ParseCategory(category)
		if err != nil {
			return h.Fail(ExitCodeFor(err), err)
		}

		only = parsed
	}

	ctx, cancel := h.WithTimeout(ctx)
	defer cancel()

	start := h.now()
	controller := application.NewSearchController(h.Provider)

	if err := controller.Do(ctx, keyword); err != nil {
		if cause := controller.LastError(); cause != nil && h.Verbose && h.Warnf != nil {
			h.Warnf("search %q failed: %v", controller.State().Text, cause)
		}

		return h.Fail(ExitCodeFor(err), err)
	}

	page, _ := controller.Page()
	presenter := application.NewResultsPresenter(domain.NewCategoryIndex(h.Locale), h.Favorites,
		application.NewSelectionController(), h.ReasonWidth)

	var sections []application.CategorySection

	if only != "" {
		section, err := presenter.Listing(page, only)
		if err != nil {
			return h.Fail(ExitCodeFor(err), err)
		}

		if len(section.Tiles) > 0 {
			sections = append(sections, section)
		}
	} else {
		sections = presenter.Present(page)
	}

	result := domain.SearchResult{
		Query:      page.Query,
		Href:       domain.SearchResults(page.Query).Href(),
		Categories: make([]domain.CategoryResult, 0, len(sections)),
		Total:      page.Set.Len(),
		Duration:   h.now().Sub(start),
		Timestamp:  h.now(),
	}

	for _, section := range sections {
		result.Categories = append(result.Categories, categoryResult(section))
	}

	return h.GetOutput().SearchResult(result)
}

func categoryResult(section application.CategorySection) domain.CategoryResult {
	items := make([]domain.ItemResult, 0, len(section.Tiles))
	for _, tile := range section.Tiles {
		items = append(items, domain.ItemResult{
			Name:        tile.Name,
			Reason:      tile.Item.Reason,
			Features:    tile.Item.Features,
			ImageURL:    tile.Item.ImageURL,
			OfficialURL: tile.Item.OfficialURL,
			Favorite:    tile.Favorite,
		})
	}

	return domain.CategoryResult{
		Key:    section.Category,
		Label:  section.Label,
		SeeAll: section.SeeAll.Href(),
		Items:  items,
	}
}
