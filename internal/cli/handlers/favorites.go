// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/janderssonse/osusume/internal/domain"
)

// FavoritesHandler manages the favorites store from the command line.
type FavoritesHandler struct {
	*BaseHandler

	Store    domain.FavoritesStore
	Provider domain.RecommendationProvider

	now func() time.Time
}

// NewFavoritesHandler creates a favorites handler. provider may be nil when
// items are never looked up.
func NewFavoritesHandler(base *BaseHandler, store domain.FavoritesStore,
	provider domain.RecommendationProvider,
) *FavoritesHandler {
	return &FavoritesHandler{
		BaseHandler: base,
		Store:       store,
		Provider:    provider,
		now:         time.Now,
	}
}

// List prints every stored favorite.
func (h *FavoritesHandler) List() error {
	items, err := h.Store.List()
	if err != nil {
		return h.Fail(domain.ExitGeneralError, err)
	}

	result := domain.FavoritesResult{
		Favorites: make([]domain.ItemResult, 0, len(items)),
		Total:     len(items),
		Timestamp: h.now(),
	}

	for _, item := range items {
		result.Favorites = append(result.Favorites, domain.ItemResult{
			Name:        item.Name,
			Reason:      item.Reason,
			Features:    item.Features,
			ImageURL:    item.ImageURL,
			OfficialURL: item.OfficialURL,
			Favorite:    true,
		})
	}

	return h.GetOutput().FavoritesResult(result)
}

// Toggle flips the membership of name. A stored favorite is removed. An
// unknown name is added, with its details looked up in the results for
// query when one is given.
func (h *FavoritesHandler) Toggle(ctx context.Context, name, query string) error {
	item, err := h.resolve(ctx, name, query)
	if err != nil {
		return err
	}

	favorite, err := h.Store.Toggle(item)
	if err != nil {
		return h.Fail(ExitCodeFor(err), err)
	}

	message := "Removed " + item.Name + " from favorites"
	if favorite {
		message = "Added " + item.Name + " to favorites"
	}

	return h.GetOutput().Success(message, domain.ToggleResult{Name: item.Name, Favorite: favorite})
}

// Remove deletes name and fails when it is not a favorite.
func (h *FavoritesHandler) Remove(name string) error {
	if !h.Store.IsFavorite(name) {
		err := fmt.Errorf("%w: %q", domain.ErrNotFavorite, name)

		return h.Fail(ExitCodeFor(err), err)
	}

	return h.Toggle(context.Background(), name, "")
}

// Clear empties the store.
func (h *FavoritesHandler) Clear() error {
	if err := h.Store.Clear(); err != nil {
		return h.Fail(domain.ExitGeneralError, err)
	}

	return h.GetOutput().Success("Cleared favorites", nil)
}

func (h *FavoritesHandler) resolve(ctx context.Context, name, query string) (domain.RecommendationItem, error) {
	if name == "" {
		return domain.RecommendationItem{}, h.Fail(domain.ExitUsageError, domain.ErrInvalidItem)
	}

	stored, err := h.Store.List()
	if err != nil {
		return domain.RecommendationItem{}, h.Fail(domain.ExitGeneralError, err)
	}

	for _, item := range stored {
		if item.Name == name {
			return item, nil
		}
	}

	if query == "" || h.Provider == nil {
		return domain.RecommendationItem{Name: name}, nil
	}

	ctx, cancel := h.WithTimeout(ctx)
	defer cancel()

	set, err := h.Provider.FetchRecommendations(ctx, query)
	if err != nil {
		wrapped := fmt.Errorf("%w: %w", domain.ErrProviderFailure, err)

		return domain.RecommendationItem{}, h.Fail(ExitCodeFor(wrapped), wrapped)
	}

	if set != nil {
		if item, _, ok := set.Normalize().Find(name); ok {
			return item, nil
		}
	}

	err = fmt.Errorf("%w: %q is not among the results for %q", domain.ErrUnknownItem, name, query)

	return domain.RecommendationItem{}, h.Fail(ExitCodeFor(err), err)
}
