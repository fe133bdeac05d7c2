// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package favorites

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/janderssonse/osusume/internal/config"
	"github.com/janderssonse/osusume/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type storeFactory func(t *testing.T) Store

func storeFactories() map[string]storeFactory {
	return map[string]storeFactory{
		"memory": func(*testing.T) Store { return NewMemory() },
		"file": func(t *testing.T) Store {
			t.Helper()

			store, err := OpenFile(filepath.Join(t.TempDir(), "favorites.toml"))
			require.NoError(t, err)

			return store
		},
		"sqlite": func(t *testing.T) Store {
			t.Helper()

			store, err := OpenSQLite(filepath.Join(t.TempDir(), "favorites.db"))
			require.NoError(t, err)
			t.Cleanup(func() { _ = store.Close() })

			return store
		},
	}
}

var ghibli = domain.RecommendationItem{ //nolint:gochecknoglobals
	Name:        "Studio Ghibli",
	Reason:      "Hand-drawn classics",
	Features:    []string{"animation", "fantasy"},
	ImageURL:    "https://img.example.com/ghibli.png",
	OfficialURL: "https://www.ghibli.jp/",
}

func TestStoreContract(t *testing.T) {
	t.Parallel()

	for name, open := range storeFactories() {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			t.Run("toggle twice restores membership", func(t *testing.T) {
				store := open(t)

				before := store.IsFavorite(ghibli.Name)

				first, err := store.Toggle(ghibli)
				require.NoError(t, err)
				assert.Equal(t, !before, first)
				assert.Equal(t, first, store.IsFavorite(ghibli.Name))

				second, err := store.Toggle(ghibli)
				require.NoError(t, err)
				assert.Equal(t, before, second)
				assert.Equal(t, before, store.IsFavorite(ghibli.Name))
			})

			t.Run("list keeps insertion order and fields", func(t *testing.T) {
				store := open(t)

				for _, item := range []domain.RecommendationItem{ghibli, {Name: "Ado"}, {Name: "UNIQLO"}} {
					_, err := store.Toggle(item)
					require.NoError(t, err)
				}

				items, err := store.List()
				require.NoError(t, err)
				require.Len(t, items, 3)
				assert.Equal(t, ghibli, items[0])
				assert.Equal(t, "Ado", items[1].Name)
				assert.Equal(t, "UNIQLO", items[2].Name)
			})

			t.Run("clear empties the store", func(t *testing.T) {
				store := open(t)

				_, err := store.Toggle(ghibli)
				require.NoError(t, err)
				require.NoError(t, store.Clear())

				items, err := store.List()
				require.NoError(t, err)
				assert.Empty(t, items)
				assert.False(t, store.IsFavorite(ghibli.Name))
			})

			t.Run("unnamed item is rejected", func(t *testing.T) {
				store := open(t)

				_, err := store.Toggle(domain.RecommendationItem{Reason: "anonymous"})
				require.ErrorIs(t, err, domain.ErrInvalidItem)
			})

			t.Run("concurrent toggles of distinct items", func(t *testing.T) {
				store := open(t)

				var wg sync.WaitGroup
				for _, name := range []string{"a", "b", "c", "d"} {
					wg.Add(1)

					go func() {
						defer wg.Done()

						_, err := store.Toggle(domain.RecommendationItem{Name: name})
						assert.NoError(t, err)
					}()
				}

				wg.Wait()

				items, err := store.List()
				require.NoError(t, err)
				assert.Len(t, items, 4)
			})
		})
	}
}

func TestFileStoreSharesStateAcrossInstances(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "favorites.toml")

	writer, err := OpenFile(path)
	require.NoError(t, err)

	reader, err := OpenFile(path)
	require.NoError(t, err)

	_, err = writer.Toggle(ghibli)
	require.NoError(t, err)

	items, err := reader.List()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, reader.IsFavorite(ghibli.Name), "List refreshes the cached state")

	// A toggle from the reader sees the writer's change and removes it.
	favorite, err := reader.Toggle(ghibli)
	require.NoError(t, err)
	assert.False(t, favorite)

	reopened, err := OpenFile(path)
	require.NoError(t, err)
	assert.False(t, reopened.IsFavorite(ghibli.Name))
	assert.Equal(t, path, reopened.Path())
}

func TestSQLiteStorePersists(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "favorites.db")

	store, err := OpenSQLite(path)
	require.NoError(t, err)

	_, err = store.Toggle(ghibli)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := OpenSQLite(path)
	require.NoError(t, err)

	defer func() { _ = reopened.Close() }()

	assert.True(t, reopened.IsFavorite(ghibli.Name))

	items, err := reopened.List()
	require.NoError(t, err)
	assert.Equal(t, []domain.RecommendationItem{ghibli}, items)
}

func TestOpenSelectsBackend(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	tests := []struct {
		backend string
		path    string
		want    any
	}{
		{config.BackendMemory, "", &Memory{}},
		{config.BackendFile, filepath.Join(dir, "favorites.toml"), &File{}},
		{config.BackendSQLite, filepath.Join(dir, "favorites.db"), &SQLite{}},
	}

	for _, tc := range tests {
		cfg := config.Default()
		cfg.Favorites.Backend = tc.backend
		cfg.Favorites.Path = tc.path

		store, err := Open(cfg)
		require.NoError(t, err, tc.backend)
		assert.IsType(t, tc.want, store)
		require.NoError(t, store.Close())
	}

	cfg := config.Default()
	cfg.Favorites.Backend = "redis"

	_, err := Open(cfg)
	require.ErrorIs(t, err, config.ErrInvalidConfig)
}
