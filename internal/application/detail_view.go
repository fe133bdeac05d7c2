// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package application

import (
	"context"
	"slices"

	"github.com/janderssonse/osusume/internal/domain"
	"github.com/janderssonse/osusume/internal/stringutil"
)

// Detail is the full rendering of the selected item.
type Detail struct {
	Item          domain.RecommendationItem
	Image         domain.ImageRef
	Name          string
	Reason        string
	Features      []string
	OfficialURL   string
	OfficialLabel string
	Favorite      bool
}

// DetailView renders the open selection and starts follow-up searches.
type DetailView struct {
	selection *SelectionController
	runner    domain.QueryRunner
	favorites domain.FavoritesStore
}

// NewDetailView creates a DetailView. favorites may be nil.
func NewDetailView(selection *SelectionController, runner domain.QueryRunner, favorites domain.FavoritesStore) *DetailView {
	return &DetailView{
		selection: selection,
		runner:    runner,
		favorites: favorites,
	}
}

// Render returns the detail of the open selection.
func (v *DetailView) Render() (Detail, error) {
	state := v.selection.State()
	if !state.Visible {
		return Detail{}, domain.ErrNoSelection
	}

	item := *state.Selected

	return Detail{
		Item:          item,
		Image:         ImageRefFor(item),
		Name:          item.Name,
		Reason:        item.Reason,
		Features:      slices.Clone(item.Features),
		OfficialURL:   item.OfficialURL,
		OfficialLabel: stringutil.HostLabel(item.OfficialURL),
		Favorite:      v.favorites != nil && v.favorites.IsFavorite(item.Name),
	}, nil
}

// ConfirmSearch closes the dialog, starts a search for the selected name and
// returns the provider call with the results target to navigate to.
func (v *DetailView) ConfirmSearch(ctx context.Context) (domain.Fetch, domain.Target, error) {
	state := v.selection.State()
	if !state.Visible {
		return nil, domain.Target{}, domain.ErrNoSelection
	}

	name := state.Selected.Name
	v.selection.Close()

	fetch, err := v.runner.RunQuery(ctx, name)
	if err != nil {
		return nil, domain.Target{}, err
	}

	return fetch, domain.SearchResults(stringutil.NormalizeQuery(name)), nil
}
