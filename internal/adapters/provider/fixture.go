// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package provider

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/janderssonse/osusume/internal/domain"
	"github.com/janderssonse/osusume/internal/stringutil"
	"gopkg.in/yaml.v3"
)

//go:embed demo.yaml
var demoFixture []byte

// ErrFixtureFailure is returned for queries listed under failures.
var ErrFixtureFailure = errors.New("fixture failure")

// fixtureDocument is the YAML layout of a fixture file.
type fixtureDocument struct {
	Latency  string                              `yaml:"latency"`
	Failures []string                            `yaml:"failures"`
	Default  domain.RecommendationSet            `yaml:"default"`
	Queries  map[string]domain.RecommendationSet `yaml:"queries"`
}

// FixtureProvider serves canned recommendations from YAML.
// Queries are matched after normalisation and case folding; unmatched queries
// get the default set.
type FixtureProvider struct {
	latency  time.Duration
	failures map[string]struct{}
	fallback domain.RecommendationSet
	queries  map[string]domain.RecommendationSet
}

// NewDemoProvider loads the embedded demo data.
func NewDemoProvider() (*FixtureProvider, error) {
	return ParseFixture(demoFixture)
}

// LoadFixture reads a fixture file from path.
func LoadFixture(path string) (*FixtureProvider, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- fixture path comes from the user's config
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture: %w", err)
	}

	return ParseFixture(data)
}

// ParseFixture decodes fixture YAML.
func ParseFixture(data []byte) (*FixtureProvider, error) {
	var doc fixtureDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse fixture: %w", err)
	}

	sanitizer := NewSanitizer()

	provider := &FixtureProvider{
		failures: make(map[string]struct{}, len(doc.Failures)),
		fallback: sanitizer.Set(doc.Default),
		queries:  make(map[string]domain.RecommendationSet, len(doc.Queries)),
	}

	if doc.Latency != "" {
		latency, err := time.ParseDuration(doc.Latency)
		if err != nil {
			return nil, fmt.Errorf("invalid fixture latency %q: %w", doc.Latency, err)
		}

		provider.latency = latency
	}

	for _, query := range doc.Failures {
		provider.failures[fixtureKey(query)] = struct{}{}
	}

	for query, set := range doc.Queries {
		provider.queries[fixtureKey(query)] = sanitizer.Set(set)
	}

	return provider, nil
}

// WithLatency overrides the simulated latency.
func (p *FixtureProvider) WithLatency(latency time.Duration) *FixtureProvider {
	p.latency = latency

	return p
}

// FetchRecommendations implements domain.RecommendationProvider.
func (p *FixtureProvider) FetchRecommendations(ctx context.Context, query string) (*domain.RecommendationSet, error) {
	if p.latency > 0 {
		select {
		case <-time.After(p.latency):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	key := fixtureKey(query)

	if _, fail := p.failures[key]; fail {
		return nil, fmt.Errorf("%w: %q", ErrFixtureFailure, query)
	}

	set, ok := p.queries[key]
	if !ok {
		set = p.fallback
	}

	clone := make(domain.RecommendationSet, len(set))
	for category, items := range set {
		clone[category] = append([]domain.RecommendationItem(nil), items...)
	}

	return &clone, nil
}

// Queries returns the keywords that have dedicated results, sorted.
func (p *FixtureProvider) Queries() []string {
	return slices.Sorted(maps.Keys(p.queries))
}

func fixtureKey(query string) string {
	return strings.ToLower(stringutil.NormalizeQuery(query))
}
