// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package application

import (
	"context"
	"fmt"

	"github.com/janderssonse/osusume/internal/domain"
	"github.com/janderssonse/osusume/internal/stringutil"
)

// SearchController owns the query state and the current result page.
// It is not safe for concurrent use: the UI loop is its only caller, and
// Fetch values are the only part that runs elsewhere.
type SearchController struct {
	provider   domain.RecommendationProvider
	state      domain.SearchQueryState
	page       *domain.ResultPage
	generation uint64
	lastErr    error
}

// NewSearchController creates a SearchController in the idle state.
func NewSearchController(provider domain.RecommendationProvider) *SearchController {
	return &SearchController{provider: provider}
}

// Submit validates raw and, when non-blank, moves to loading and returns the
// provider call to run. A blank query sets the validation error and returns
// ErrEmptyQuery without touching the provider.
func (c *SearchController) Submit(ctx context.Context, raw string) (domain.Fetch, error) {
	query := stringutil.NormalizeQuery(raw)
	if query == "" {
		c.state = domain.SearchQueryState{
			Text:         query,
			Status:       domain.StatusError,
			ErrorMessage: domain.MessageQueryRequired,
		}

		return nil, domain.ErrEmptyQuery
	}

	c.generation++
	c.lastErr = nil
	c.state = domain.SearchQueryState{Text: query, Status: domain.StatusLoading}

	generation := c.generation
	provider := c.provider

	return func() domain.Completion {
		done := domain.Completion{Generation: generation, Query: query}

		set, err := provider.FetchRecommendations(ctx, query)
		if err != nil {
			done.Err = fmt.Errorf("%w: %w", domain.ErrProviderFailure, err)

			return done
		}

		if set != nil {
			done.Set = set.Normalize()
		} else {
			done.Set = domain.RecommendationSet{}.Normalize()
		}

		return done
	}, nil
}

// RunQuery has the same contract as Submit. The detail view calls it.
func (c *SearchController) RunQuery(ctx context.Context, text string) (domain.Fetch, error) {
	return c.Submit(ctx, text)
}

// Resolve applies a completion if it belongs to the latest submission and
// reports whether it did. Stale completions leave state untouched.
func (c *SearchController) Resolve(done domain.Completion) bool {
	if done.Generation != c.generation || c.state.Status != domain.StatusLoading {
		return false
	}

	if done.Err != nil {
		c.lastErr = done.Err
		c.state = domain.SearchQueryState{
			Text:         done.Query,
			Status:       domain.StatusError,
			ErrorMessage: domain.MessageFetchFailed,
		}

		return true
	}

	c.page = &domain.ResultPage{Query: done.Query, Set: done.Set}
	c.state = domain.SearchQueryState{Text: done.Query, Status: domain.StatusIdle}

	return true
}

// Do submits raw, runs the provider call and resolves it before returning.
func (c *SearchController) Do(ctx context.Context, raw string) error {
	fetch, err := c.Submit(ctx, raw)
	if err != nil {
		return err
	}

	done := fetch()
	c.Resolve(done)

	return done.Err
}

// State returns a copy of the query state.
func (c *SearchController) State() domain.SearchQueryState {
	return c.state
}

// Page returns the last successful page. While a newer search is loading or
// has failed, the previous page is still returned.
func (c *SearchController) Page() (domain.ResultPage, bool) {
	if c.page == nil {
		return domain.ResultPage{}, false
	}

	return *c.page, true
}

// Current reports whether the stored page answers the query in State.
func (c *SearchController) Current() bool {
	return c.page != nil && c.state.Status == domain.StatusIdle && c.page.Query == c.state.Text
}

// LastError returns the cause of the most recent provider failure.
func (c *SearchController) LastError() error {
	return c.lastErr
}
