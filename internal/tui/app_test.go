// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/janderssonse/osusume/internal/domain"
	"github.com/janderssonse/osusume/internal/testutil"
	"github.com/janderssonse/osusume/internal/tui/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func sampleProvider() *testutil.MockProvider {
	provider := &testutil.MockProvider{}
	provider.On("FetchRecommendations", mock.Anything, mock.Anything).Return(testutil.SetOf(domain.RecommendationSet{
		domain.CategoryArtists: testutil.Items("artist", 3),
		domain.CategoryFashion: testutil.Items("brand", 1),
	}), nil)

	return provider
}

// fetchDone runs cmd and returns the first provider completion it yields.
func fetchDone(t *testing.T, cmd tea.Cmd) models.FetchDoneMsg {
	t.Helper()

	require.NotNil(t, cmd)

	pending := []tea.Cmd{cmd}
	for len(pending) > 0 {
		next := pending[0]
		pending = pending[1:]

		if next == nil {
			continue
		}

		switch msg := next().(type) {
		case models.FetchDoneMsg:
			return msg
		case tea.BatchMsg:
			pending = append(pending, msg...)
		}
	}

	t.Fatal("no FetchDoneMsg produced")

	return models.FetchDoneMsg{}
}

func TestNewAppStartsOnSearch(t *testing.T) {
	t.Parallel()

	session, _, _ := models.NewTestSession(sampleProvider())
	app := NewApp(session, "")

	assert.Equal(t, SearchScreen, app.GetCurrentScreen())
	assert.IsType(t, &models.Search{}, app.GetContentModel())
	assert.Same(t, session, app.Session())
	assert.NotNil(t, app.styles)
}

func TestAppCachesPreloadedHelp(t *testing.T) {
	t.Parallel()

	session, _, _ := models.NewTestSession(sampleProvider())
	app := NewApp(session, "")

	help := models.NewHelp(app.styles)
	app.Update(helpPreloadedMsg{model: help})

	_, cmd := app.Update(models.NavigateMsg{Screen: int(HelpScreen)})
	assert.Nil(t, cmd)
	assert.Equal(t, HelpScreen, app.GetCurrentScreen())
	assert.Same(t, help, app.GetContentModel())
}

func TestAppResolvesCompletionsIntoSearch(t *testing.T) {
	t.Parallel()

	session, _, _ := models.NewTestSession(sampleProvider())
	app := NewApp(session, "")
	app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	app.Update(fetchDone(t, session.Submit("YOASOBI")))

	search, ok := app.GetContentModel().(*models.Search)
	require.True(t, ok)
	require.Len(t, search.Sections(), 2)
	assert.Equal(t, domain.CategoryArtists, search.Sections()[0].Category)
	assert.False(t, search.InputFocused())
}

func TestAppDropsStaleCompletions(t *testing.T) {
	t.Parallel()

	session, _, _ := models.NewTestSession(sampleProvider())
	app := NewApp(session, "")

	stale := fetchDone(t, session.Submit("Ado"))
	current := fetchDone(t, session.Submit("UNIQLO"))

	_, cmd := app.Update(current)
	assert.NotNil(t, cmd)

	_, cmd = app.Update(stale)
	assert.Nil(t, cmd)

	state := session.Search.State()
	assert.Equal(t, "UNIQLO", state.Text)
	assert.Equal(t, domain.StatusIdle, state.Status)
}

func TestAppNavigation(t *testing.T) {
	t.Parallel()

	session, _, _ := models.NewTestSession(sampleProvider())
	app := NewApp(session, "")
	search := app.GetContentModel()

	app.Update(fetchDone(t, session.Submit("Ado")))

	target := domain.CategoryListing(domain.CategoryArtists, "Ado")
	app.Update(models.NavigateMsg{Screen: int(CategoryScreen), Data: target})

	category, ok := app.GetContentModel().(*models.Category)
	require.True(t, ok)
	assert.Equal(t, target, category.Target())
	assert.Len(t, category.Section().Tiles, 3)

	app.Update(models.NavigateMsg{Screen: int(FavoritesScreen)})
	assert.IsType(t, &models.Favorites{}, app.GetContentModel())

	app.Update(models.Back())
	assert.Equal(t, SearchScreen, app.GetCurrentScreen())
	assert.Same(t, search, app.GetContentModel(), "search state survives navigation")
}

func TestAppRebuildsCategoryPerVisit(t *testing.T) {
	t.Parallel()

	session, _, _ := models.NewTestSession(sampleProvider())
	app := NewApp(session, "")
	app.Update(fetchDone(t, session.Submit("Ado")))

	app.Update(models.NavigateMsg{Screen: int(CategoryScreen), Data: domain.CategoryListing(domain.CategoryArtists, "Ado")})
	first := app.GetContentModel()

	app.Update(models.NavigateMsg{Screen: int(CategoryScreen), Data: domain.CategoryListing(domain.CategoryFashion, "Ado")})
	second, ok := app.GetContentModel().(*models.Category)
	require.True(t, ok)

	assert.NotSame(t, first, second)
	assert.Equal(t, domain.CategoryFashion, second.Target().Category)
}

func TestAppBroadcastsFavoriteToggles(t *testing.T) {
	t.Parallel()

	session, store, _ := models.NewTestSession(sampleProvider())
	app := NewApp(session, "")
	app.Update(fetchDone(t, session.Submit("Ado")))

	app.Update(models.NavigateMsg{Screen: int(CategoryScreen), Data: domain.CategoryListing(domain.CategoryArtists, "Ado")})

	item := testutil.Items("artist", 1)[0]
	favorite, err := store.Toggle(item)
	require.NoError(t, err)

	app.Update(models.FavoriteToggledMsg{Name: item.Name, Favorite: favorite})

	category, ok := app.GetContentModel().(*models.Category)
	require.True(t, ok)
	assert.True(t, category.Section().Tiles[0].Favorite)
}

func TestAppQuitsOnCtrlC(t *testing.T) {
	t.Parallel()

	session, _, _ := models.NewTestSession(sampleProvider())
	app := NewApp(session, "")

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)

	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Equal(t, models.GoodbyeMessage, app.View())
}

func TestAppTypingQDoesNotQuit(t *testing.T) {
	t.Parallel()

	session, _, _ := models.NewTestSession(sampleProvider())
	app := NewApp(session, "")

	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})

	search, ok := app.GetContentModel().(*models.Search)
	require.True(t, ok)
	assert.Equal(t, "q", search.Query())
	assert.NotEqual(t, models.GoodbyeMessage, app.View())
}
