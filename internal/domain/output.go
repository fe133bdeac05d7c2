// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package domain

import "time"

// OutputPort defines the interface for presenting command results.
// This is a domain port that adapters implement for different output formats.
type OutputPort interface {
	// Success outputs a success message with optional structured data
	Success(message string, data interface{}) error

	// Error outputs an error message
	Error(message string) error

	// Info outputs an informational message
	Info(message string) error

	// Progress outputs progress information for long-running operations
	Progress(message string) error

	// Table outputs tabular data
	Table(headers []string, rows [][]string) error

	// IsQuiet returns true if output should be suppressed
	IsQuiet() bool
}

// SearchResult is the structured outcome of a search command.
type SearchResult struct {
	Query      string           `json:"query"`
	Href       string           `json:"href"`
	Categories []CategoryResult `json:"categories"`
	Total      int              `json:"total"`
	Duration   time.Duration    `json:"duration"`
	Timestamp  time.Time        `json:"timestamp"`
}

// CategoryResult is one rendered category section.
type CategoryResult struct {
	Key    Category     `json:"key"`
	Label  string       `json:"label"`
	SeeAll string       `json:"see_all"`
	Items  []ItemResult `json:"items"`
}

// ItemResult is one rendered item.
type ItemResult struct {
	Name        string   `json:"name"`
	Reason      string   `json:"reason"`
	Features    []string `json:"features,omitempty"`
	ImageURL    string   `json:"image_url,omitempty"`
	OfficialURL string   `json:"official_url,omitempty"`
	Favorite    bool     `json:"favorite"`
}

// FavoritesResult lists stored favorites.
type FavoritesResult struct {
	Favorites []ItemResult `json:"favorites"`
	Total     int          `json:"total"`
	Timestamp time.Time    `json:"timestamp"`
}

// ToggleResult reports the membership after a toggle.
type ToggleResult struct {
	Name     string `json:"name"`
	Favorite bool   `json:"favorite"`
}
