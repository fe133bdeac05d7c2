// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package provider implements the recommendation provider port: an HTTP
// client guarded by a circuit breaker, and a YAML fixture for offline use.
package provider

import (
	"fmt"

	"github.com/janderssonse/osusume/internal/adapters/network"
	"github.com/janderssonse/osusume/internal/config"
	"github.com/janderssonse/osusume/internal/domain"
)

// New builds the provider selected by cfg.
func New(cfg config.Config, onStateChange StateChangeFunc) (domain.RecommendationProvider, error) {
	switch cfg.Provider.Kind {
	case config.ProviderHTTP:
		client := network.NewHTTPClient(cfg.Provider.Timeout.Duration)
		httpProvider := NewHTTPProvider(cfg.Provider.Endpoint, client, cfg.Provider.MaxRetries)

		return NewBreakerProvider(httpProvider, cfg.Provider.BreakerFailures,
			cfg.Provider.BreakerCooldown.Duration, onStateChange), nil
	case config.ProviderFixture:
		fixture, err := loadConfiguredFixture(cfg.FixturePath())
		if err != nil {
			return nil, err
		}

		return fixture, nil
	default:
		return nil, fmt.Errorf("%w: unknown provider.kind %q", config.ErrInvalidConfig, cfg.Provider.Kind)
	}
}

func loadConfiguredFixture(path string) (*FixtureProvider, error) {
	if path != "" {
		return LoadFixture(path)
	}

	return NewDemoProvider()
}
