// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package models

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/janderssonse/osusume/internal/domain"
	"github.com/janderssonse/osusume/internal/stringutil"
	"github.com/janderssonse/osusume/internal/tui/styles"
)

type favoriteItem struct {
	item domain.RecommendationItem
}

func (i favoriteItem) Title() string       { return "★ " + i.item.Name }
func (i favoriteItem) Description() string { return stringutil.OneLine(i.item.Reason) }
func (i favoriteItem) FilterValue() string { return i.item.Name }

// FavoritesKeyMap defines key bindings for the favorites screen.
type FavoritesKeyMap struct {
	Search key.Binding
	Remove key.Binding
	Back   key.Binding
}

// DefaultFavoritesKeyMap returns the default key bindings.
func DefaultFavoritesKeyMap() FavoritesKeyMap {
	return FavoritesKeyMap{
		Search: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "search")),
		Remove: key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "remove")),
		Back:   key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
	}
}

// Favorites lists stored favorites. Selecting one searches for it.
type Favorites struct {
	styles  *styles.Styles
	session *Session
	list    list.Model
	keyMap  FavoritesKeyMap
	message string
	warning bool
	width   int
}

// NewFavorites creates the favorites screen and loads the store.
func NewFavorites(styleConfig *styles.Styles, session *Session) *Favorites {
	items := list.New(nil, list.NewDefaultDelegate(), 80, 20)
	items.Title = "お気に入り"
	items.Styles.Title = styleConfig.Header
	items.SetShowHelp(false)
	items.DisableQuitKeybindings()
	items.SetStatusBarItemName("favorite", "favorites")

	model := &Favorites{
		styles:  styleConfig,
		session: session,
		list:    items,
		keyMap:  DefaultFavoritesKeyMap(),
	}

	model.reload()

	return model
}

// Init implements tea.Model.
func (m *Favorites) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Favorites) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.list.SetSize(msg.Width, max(msg.Height-2, 3))

		return m, nil
	case NavigateMsg:
		m.reload()

		return m, nil
	case FavoriteToggledMsg:
		if msg.Err != nil {
			m.message, m.warning = "favorite not saved: "+msg.Err.Error(), true
		} else {
			m.message, m.warning = "removed "+msg.Name, false
		}

		m.reload()

		return m, nil
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	var cmd tea.Cmd

	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

// View implements tea.Model.
func (m *Favorites) View() string {
	parts := []string{m.list.View()}

	switch {
	case m.message == "":
	case m.warning:
		parts = append(parts, m.styles.WarningText.Render(m.message))
	default:
		parts = append(parts, m.styles.MutedText.Render(m.message))
	}

	parts = append(parts, RenderFooter(m.styles, m.width, []FooterAction{
		{"enter", "Search"}, {"x", "Remove"}, {"/", "Filter"}, {"esc", "Back"},
	}, false))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Items returns the listed favorites.
func (m *Favorites) Items() []domain.RecommendationItem {
	listed := m.list.Items()

	items := make([]domain.RecommendationItem, 0, len(listed))
	for _, entry := range listed {
		if favorite, ok := entry.(favoriteItem); ok {
			items = append(items, favorite.item)
		}
	}

	return items
}

func (m *Favorites) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd

		m.list, cmd = m.list.Update(msg)

		return cmd
	}

	switch {
	case key.Matches(msg, m.keyMap.Back):
		if m.list.FilterState() == list.FilterApplied {
			m.list.ResetFilter()

			return nil
		}

		return Back
	case key.Matches(msg, m.keyMap.Search):
		selected, ok := m.list.SelectedItem().(favoriteItem)
		if !ok {
			return nil
		}

		query := stringutil.NormalizeQuery(selected.item.Name)

		return tea.Batch(m.session.Run(query), NavigateTo(domain.SearchResults(query)))
	case key.Matches(msg, m.keyMap.Remove):
		if selected, ok := m.list.SelectedItem().(favoriteItem); ok {
			return m.session.Toggle(selected.item)
		}

		return nil
	}

	var cmd tea.Cmd

	m.list, cmd = m.list.Update(msg)

	return cmd
}

func (m *Favorites) reload() {
	if m.session.Favorites == nil {
		m.list.SetItems(nil)

		return
	}

	stored, err := m.session.Favorites.List()
	if err != nil {
		m.message, m.warning = "favorites unavailable: "+err.Error(), true

		return
	}

	items := make([]list.Item, 0, len(stored))
	for _, item := range stored {
		items = append(items, favoriteItem{item: item})
	}

	m.list.SetItems(items)
}
