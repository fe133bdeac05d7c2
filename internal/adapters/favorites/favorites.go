// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package favorites implements the favorites store port on a TOML file,
// a SQLite database, or process memory.
package favorites

import (
	"fmt"
	"io"

	"github.com/janderssonse/osusume/internal/config"
	"github.com/janderssonse/osusume/internal/domain"
)

// Store is a favorites store that owns resources.
type Store interface {
	domain.FavoritesStore
	io.Closer
}

// Open builds the store selected by cfg.
func Open(cfg config.Config) (Store, error) {
	switch cfg.Favorites.Backend {
	case config.BackendFile:
		store, err := OpenFile(cfg.FavoritesPath())
		if err != nil {
			return nil, err
		}

		return store, nil
	case config.BackendSQLite:
		store, err := OpenSQLite(cfg.FavoritesPath())
		if err != nil {
			return nil, err
		}

		return store, nil
	case config.BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("%w: unknown favorites.backend %q", config.ErrInvalidConfig, cfg.Favorites.Backend)
	}
}
