// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package domain

// SearchStatus is the lifecycle of the current query.
type SearchStatus int

// Search statuses.
const (
	StatusIdle SearchStatus = iota
	StatusLoading
	StatusError
)

// String implements fmt.Stringer.
func (s SearchStatus) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// SearchQueryState is owned by the search controller.
// StatusError always carries a non-empty ErrorMessage.
type SearchQueryState struct {
	Text         string
	Status       SearchStatus
	ErrorMessage string
}

// SelectionState is a read-only snapshot of the detail dialog.
// Visible implies Selected is non-nil.
type SelectionState struct {
	Selected *RecommendationItem
	Visible  bool
}
