// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package models

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/janderssonse/osusume/internal/domain"
	"github.com/janderssonse/osusume/internal/testutil"
	"github.com/janderssonse/osusume/internal/tui/styles"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestFavoritesListsStoredItems(t *testing.T) {
	t.Parallel()

	session, store, _ := NewTestSession(&testutil.MockProvider{})

	for _, item := range testutil.Items("fav", 3) {
		_, err := store.Toggle(item)
		require.NoError(t, err)
	}

	model := NewFavorites(styles.New(), session)
	model.Update(tea.WindowSizeMsg{Width: 80, Height: 30})

	items := model.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "fav-1", items[0].Name)
	assert.Contains(t, model.View(), "★ fav-2")
}

func TestFavoritesEnterSearchesForFavorite(t *testing.T) {
	t.Parallel()

	provider := &testutil.MockProvider{}
	provider.On("FetchRecommendations", mock.Anything, "fav-1").Return(sampleSet(), nil)

	session, store, _ := NewTestSession(provider)
	_, err := store.Toggle(testutil.Items("fav", 1)[0])
	require.NoError(t, err)

	model := NewFavorites(styles.New(), session)

	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	msgs := collect(cmd)

	nav, ok := findMsg[NavigateMsg](msgs)
	require.True(t, ok)
	assert.Equal(t, SearchScreen, nav.Screen)
	assert.Equal(t, domain.SearchResults("fav-1"), nav.Data)

	_, ok = findMsg[FetchDoneMsg](msgs)
	assert.True(t, ok)
	provider.AssertNumberOfCalls(t, "FetchRecommendations", 1)
}

func TestFavoritesRemove(t *testing.T) {
	t.Parallel()

	session, store, _ := NewTestSession(&testutil.MockProvider{})

	for _, item := range testutil.Items("fav", 2) {
		_, err := store.Toggle(item)
		require.NoError(t, err)
	}

	model := NewFavorites(styles.New(), session)

	_, cmd := model.Update(keyRune('x'))

	toggled, ok := findMsg[FavoriteToggledMsg](collect(cmd))
	require.True(t, ok)
	assert.False(t, toggled.Favorite)

	model.Update(toggled)

	require.Len(t, model.Items(), 1)
	assert.Equal(t, "fav-2", model.Items()[0].Name)
	assert.Contains(t, model.View(), "removed fav-1")
	assert.False(t, model.warning)

	model.Update(FavoriteToggledMsg{Name: "fav-2", Err: errors.New("disk full")})
	assert.True(t, model.warning)
	assert.Contains(t, model.View(), "favorite not saved: disk full")
}

func TestFavoritesStoreFailure(t *testing.T) {
	t.Parallel()

	store := &testutil.MockFavoritesStore{}
	store.On("List").Return(nil, errors.New("locked"))

	session := NewSession(t.Context(), &testutil.MockProvider{}, store, SessionOptions{})
	model := NewFavorites(styles.New(), session)

	assert.Empty(t, model.Items())
	assert.Contains(t, model.View(), "favorites unavailable: locked")
	assert.True(t, model.warning)
}

func TestFavoritesBack(t *testing.T) {
	t.Parallel()

	session, _, _ := NewTestSession(&testutil.MockProvider{})
	model := NewFavorites(styles.New(), session)

	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEsc})

	nav, ok := findMsg[NavigateMsg](collect(cmd))
	require.True(t, ok)
	assert.Equal(t, SearchScreen, nav.Screen)
	assert.Nil(t, nav.Data)
}
