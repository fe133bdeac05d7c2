// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package models defines the screens of the osusume TUI and the messages
// they exchange.
package models

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/janderssonse/osusume/internal/adapters/imagery"
	"github.com/janderssonse/osusume/internal/domain"
)

// Screen constants for navigation.
const (
	SearchScreen = iota
	CategoryScreen
	FavoritesScreen
	HelpScreen
)

// GoodbyeMessage is shown after quitting.
const GoodbyeMessage = "またね!\n"

// NavigateMsg is a message sent to request navigation to a specific screen.
type NavigateMsg struct {
	Screen int
	Data   any // Optional data to pass to the new screen
}

// FetchDoneMsg carries a finished provider call back to the UI loop.
type FetchDoneMsg struct {
	domain.Completion
}

// ResultsUpdatedMsg is sent after a completion has been applied to the
// search controller.
type ResultsUpdatedMsg struct{}

// ImagesProbedMsg reports image checks; failures are already recorded in the renderer.
type ImagesProbedMsg struct {
	Failures []imagery.Failure
}

// FavoriteToggledMsg reports the outcome of a favorite toggle.
type FavoriteToggledMsg struct {
	Name     string
	Favorite bool
	Err      error
}

// ToastMsg shows a short status message.
type ToastMsg struct {
	Text  string
	Error bool
}

// NavigateTo routes target to the screen that can show it.
func NavigateTo(target domain.Target) tea.Cmd {
	screen := SearchScreen
	if target.Kind == domain.TargetCategoryListing {
		screen = CategoryScreen
	}

	return func() tea.Msg {
		return NavigateMsg{Screen: screen, Data: target}
	}
}

// Back returns to the search screen without changing its state.
func Back() tea.Msg {
	return NavigateMsg{Screen: SearchScreen}
}

// fetchCmd runs fetch off the UI loop.
func fetchCmd(fetch domain.Fetch) tea.Cmd {
	if fetch == nil {
		return nil
	}

	return func() tea.Msg {
		return FetchDoneMsg{Completion: fetch()}
	}
}

// toggleCmd toggles item in the favorites store.
func toggleCmd(favorites domain.FavoritesStore, item domain.RecommendationItem) tea.Cmd {
	if favorites == nil {
		return nil
	}

	return func() tea.Msg {
		favorite, err := favorites.Toggle(item)

		return FavoriteToggledMsg{Name: item.Name, Favorite: favorite, Err: err}
	}
}
