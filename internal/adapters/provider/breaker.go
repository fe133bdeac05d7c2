// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package provider

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/janderssonse/osusume/internal/domain"
	gobreaker "github.com/sony/gobreaker/v2"
)

// BreakerProvider wraps a provider with a circuit breaker so a failing
// endpoint is not hammered by repeated searches.
type BreakerProvider struct {
	next domain.RecommendationProvider
	cb   *gobreaker.CircuitBreaker[*domain.RecommendationSet]
	name string
}

// StateChangeFunc observes breaker transitions.
type StateChangeFunc func(name, from, to string)

// NewBreakerProvider opens the circuit after failures consecutive errors and
// tries again after cooldown. Cancelled searches do not count as failures.
func NewBreakerProvider(next domain.RecommendationProvider, failures uint32, cooldown time.Duration,
	onStateChange StateChangeFunc,
) *BreakerProvider {
	name := "recommendation-provider"

	if failures == 0 {
		failures = 1
	}

	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	}

	if onStateChange != nil {
		settings.OnStateChange = func(name string, from, to gobreaker.State) {
			onStateChange(name, stateToString(from), stateToString(to))
		}
	}

	return &BreakerProvider{
		next: next,
		cb:   gobreaker.NewCircuitBreaker[*domain.RecommendationSet](settings),
		name: name,
	}
}

// FetchRecommendations implements domain.RecommendationProvider.
func (b *BreakerProvider) FetchRecommendations(ctx context.Context, query string) (*domain.RecommendationSet, error) {
	set, err := b.cb.Execute(func() (*domain.RecommendationSet, error) {
		return b.next.FetchRecommendations(ctx, query)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("circuit breaker %s: %w", b.name, err)
		}

		return nil, err
	}

	return set, nil
}

// State returns the breaker state as text.
func (b *BreakerProvider) State() string {
	return stateToString(b.cb.State())
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
