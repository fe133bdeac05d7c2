// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package favorites

import (
	"slices"
	"sync"

	"github.com/janderssonse/osusume/internal/domain"
)

// Memory keeps favorites for the lifetime of the process.
type Memory struct {
	mu    sync.RWMutex
	items []domain.RecommendationItem
}

// NewMemory creates a store seeded with items.
func NewMemory(items ...domain.RecommendationItem) *Memory {
	return &Memory{items: slices.Clone(items)}
}

// IsFavorite implements domain.FavoritesStore.
func (m *Memory) IsFavorite(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return indexOf(m.items, name) >= 0
}

// Toggle implements domain.FavoritesStore.
func (m *Memory) Toggle(item domain.RecommendationItem) (bool, error) {
	if item.Name == "" {
		return false, domain.ErrInvalidItem
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var favorite bool

	m.items, favorite = toggled(m.items, item)

	return favorite, nil
}

// List implements domain.FavoritesStore.
func (m *Memory) List() ([]domain.RecommendationItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return slices.Clone(m.items), nil
}

// Clear implements domain.FavoritesStore.
func (m *Memory) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items = nil

	return nil
}

// Close implements io.Closer.
func (m *Memory) Close() error {
	return nil
}

func indexOf(items []domain.RecommendationItem, name string) int {
	return slices.IndexFunc(items, func(item domain.RecommendationItem) bool {
		return item.Name == name
	})
}

// toggled removes item when present and appends it otherwise.
func toggled(items []domain.RecommendationItem, item domain.RecommendationItem) ([]domain.RecommendationItem, bool) {
	if i := indexOf(items, item.Name); i >= 0 {
		return slices.Delete(items, i, i+1), false
	}

	return append(items, item), true
}
