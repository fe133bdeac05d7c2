// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package testutil provides testify mocks for the domain ports.
package testutil

import (
	"context"
	"strconv"

	"github.com/janderssonse/osusume/internal/domain"
	"github.com/stretchr/testify/mock"
)

// MockProvider mocks the RecommendationProvider port for testing.
type MockProvider struct {
	mock.Mock
}

// FetchRecommendations mocks a provider call.
func (m *MockProvider) FetchRecommendations(ctx context.Context, query string) (*domain.RecommendationSet, error) {
	args := m.Called(ctx, query)
	if result := args.Get(0); result != nil {
		res, ok := result.(*domain.RecommendationSet)
		if !ok {
			return nil, args.Error(1)
		}

		return res, args.Error(1)
	}

	return nil, args.Error(1)
}

// MockFavoritesStore mocks the FavoritesStore port for testing.
type MockFavoritesStore struct {
	mock.Mock
}

// IsFavorite mocks a membership query.
func (m *MockFavoritesStore) IsFavorite(name string) bool {
	args := m.Called(name)
	return args.Bool(0)
}

// Toggle mocks a membership toggle.
func (m *MockFavoritesStore) Toggle(item domain.RecommendationItem) (bool, error) {
	args := m.Called(item)
	return args.Bool(0), args.Error(1)
}

// List mocks listing favorites.
func (m *MockFavoritesStore) List() ([]domain.RecommendationItem, error) {
	args := m.Called()
	if result := args.Get(0); result != nil {
		res, ok := result.([]domain.RecommendationItem)
		if !ok {
			return nil, args.Error(1)
		}

		return res, args.Error(1)
	}

	return nil, args.Error(1)
}

// Clear mocks clearing favorites.
func (m *MockFavoritesStore) Clear() error {
	args := m.Called()
	return args.Error(0)
}

// MockQueryRunner mocks the QueryRunner port for testing.
type MockQueryRunner struct {
	mock.Mock
}

// RunQuery mocks starting a search.
func (m *MockQueryRunner) RunQuery(ctx context.Context, text string) (domain.Fetch, error) {
	args := m.Called(ctx, text)
	if fetch, ok := args.Get(0).(domain.Fetch); ok {
		return fetch, args.Error(1)
	}

	return nil, args.Error(1)
}

// SetOf builds a RecommendationSet pointer for provider expectations.
func SetOf(set domain.RecommendationSet) *domain.RecommendationSet {
	return &set
}

// Items builds n items named prefix-1 .. prefix-n.
func Items(prefix string, n int) []domain.RecommendationItem {
	items := make([]domain.RecommendationItem, 0, n)
	for i := 1; i <= n; i++ {
		name := prefix + "-" + strconv.Itoa(i)
		items = append(items, domain.RecommendationItem{
			Name:        name,
			Reason:      "because " + name,
			Features:    []string{name + " feature"},
			OfficialURL: "https://example.com/" + name,
		})
	}

	return items
}
