// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package favorites

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/goccy/go-json"
	"github.com/janderssonse/osusume/internal/domain"
	"github.com/janderssonse/osusume/internal/platform"
	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// SQLite stores favorites in a SQLite database.
type SQLite struct {
	db   *sql.DB
	path string
}

// OpenSQLite opens or creates the database at path and applies migrations.
func OpenSQLite(path string) (*SQLite, error) {
	if err := platform.EnsureDir(filepath.Dir(path)); err != nil {
		return nil, fmt.Errorf("failed to create favorites directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open favorites database: %w", err)
	}

	// A single connection keeps toggles strictly serialised.
	db.SetMaxOpenConns(1)

	if err := migrateSQLite(db); err != nil {
		_ = db.Close()

		return nil, err
	}

	return &SQLite{db: db, path: path}, nil
}

func migrateSQLite(db *sql.DB) error {
	statements := []string{
		`PRAGMA journal_mode=WAL;`,
		`CREATE TABLE IF NOT EXISTS favorites (
			name TEXT PRIMARY KEY,
			reason TEXT NOT NULL DEFAULT '',
			features TEXT NOT NULL DEFAULT '[]',
			image_url TEXT NOT NULL DEFAULT '',
			official_url TEXT NOT NULL DEFAULT '',
			added_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("favorites migration failed: %w", err)
		}
	}

	return nil
}

// Path returns the database location.
func (s *SQLite) Path() string {
	return s.path
}

// IsFavorite implements domain.FavoritesStore. Lookup errors read as "not a favorite".
func (s *SQLite) IsFavorite(name string) bool {
	var one int

	err := s.db.QueryRow(`SELECT 1 FROM favorites WHERE name = ?`, name).Scan(&one)

	return err == nil
}

// Toggle implements domain.FavoritesStore.
func (s *SQLite) Toggle(item domain.RecommendationItem) (bool, error) {
	if item.Name == "" {
		return false, domain.ErrInvalidItem
	}

	tx, err := s.db.Begin()
	if err != nil {
		return false, fmt.Errorf("failed to begin toggle: %w", err)
	}

	defer func() {
		_ = tx.Rollback()
	}()

	result, err := tx.Exec(`DELETE FROM favorites WHERE name = ?`, item.Name)
	if err != nil {
		return false, fmt.Errorf("failed to remove favorite: %w", err)
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to remove favorite: %w", err)
	}

	if removed == 0 {
		features, err := json.Marshal(item.Features)
		if err != nil {
			return false, fmt.Errorf("failed to encode features: %w", err)
		}

		if _, err := tx.Exec(`INSERT INTO favorites (name, reason, features, image_url, official_url)
			VALUES (?, ?, ?, ?, ?)`,
			item.Name, item.Reason, string(features), item.ImageURL, item.OfficialURL); err != nil {
			return false, fmt.Errorf("failed to add favorite: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit toggle: %w", err)
	}

	return removed == 0, nil
}

// List implements domain.FavoritesStore.
func (s *SQLite) List() ([]domain.RecommendationItem, error) {
	rows, err := s.db.Query(`SELECT name, reason, features, image_url, official_url
		FROM favorites ORDER BY added_at ASC, rowid ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}

	defer func() {
		_ = rows.Close()
	}()

	var items []domain.RecommendationItem

	for rows.Next() {
		var (
			item     domain.RecommendationItem
			features string
		)

		if err := rows.Scan(&item.Name, &item.Reason, &features, &item.ImageURL, &item.OfficialURL); err != nil {
			return nil, fmt.Errorf("failed to read favorite: %w", err)
		}

		if err := json.Unmarshal([]byte(features), &item.Features); err != nil {
			return nil, fmt.Errorf("failed to decode features of %q: %w", item.Name, err)
		}

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}

	return items, nil
}

// Clear implements domain.FavoritesStore.
func (s *SQLite) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM favorites`); err != nil {
		return fmt.Errorf("failed to clear favorites: %w", err)
	}

	return nil
}

// Close implements io.Closer.
func (s *SQLite) Close() error {
	if s == nil || s.db == nil {
		return nil
	}

	if err := s.db.Close(); err != nil && !errors.Is(err, sql.ErrConnDone) {
		return fmt.Errorf("failed to close favorites database: %w", err)
	}

	return nil
}
