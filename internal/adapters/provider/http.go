// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package provider

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/janderssonse/osusume/internal/adapters/network"
	"github.com/janderssonse/osusume/internal/domain"
)

var (
	// ErrRateLimited is returned when the endpoint keeps answering 429.
	ErrRateLimited = errors.New("rate limit exceeded")
	// ErrUnexpectedStatus is returned for any other non-200 response.
	ErrUnexpectedStatus = errors.New("unexpected status")
)

// maxErrorBody bounds how much of an error response is kept for diagnostics.
const maxErrorBody = 512

// HTTPProvider fetches recommendations from a JSON endpoint:
// GET <endpoint>?q=<query> answering {"artists":[...],"celebrities":[...],...}.
type HTTPProvider struct {
	endpoint       string
	client         *network.HTTPClient
	sanitizer      *Sanitizer
	maxRetries     int
	retryBaseDelay time.Duration
}

// NewHTTPProvider creates an HTTPProvider. 429 responses are retried up to
// maxRetries times with exponential backoff starting at one second.
func NewHTTPProvider(endpoint string, client *network.HTTPClient, maxRetries int) *HTTPProvider {
	return &HTTPProvider{
		endpoint:       endpoint,
		client:         client,
		sanitizer:      NewSanitizer(),
		maxRetries:     maxRetries,
		retryBaseDelay: time.Second,
	}
}

// FetchRecommendations implements domain.RecommendationProvider.
func (p *HTTPProvider) FetchRecommendations(ctx context.Context, query string) (*domain.RecommendationSet, error) {
	reqURL, err := p.requestURL(query)
	if err != nil {
		return nil, err
	}

	resp, err := p.doWithRateLimit(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

		return nil, fmt.Errorf("%w %d: %s", ErrUnexpectedStatus, resp.StatusCode, body)
	}

	var raw domain.RecommendationSet
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode recommendations: %w", err)
	}

	set := p.sanitizer.Set(raw)

	return &set, nil
}

func (p *HTTPProvider) requestURL(query string) (string, error) {
	base, err := url.Parse(p.endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint %q: %w", p.endpoint, err)
	}

	values := base.Query()
	values.Set("q", query)
	base.RawQuery = values.Encode()

	return base.String(), nil
}

// doWithRateLimit retries 429 responses with exponential backoff (1s, 2s, 4s, ...),
// honouring Retry-After when it is given in seconds.
func (p *HTTPProvider) doWithRateLimit(ctx context.Context, reqURL string) (*http.Response, error) {
	for attempt := 0; ; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		req.Header.Set("Accept", "application/json")

		resp, err := p.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrNetworkFailure, err)
		}

		if resp.StatusCode != http.StatusTooManyRequests {
			return resp, nil
		}

		_ = resp.Body.Close()

		if attempt >= p.maxRetries {
			return nil, fmt.Errorf("%w after %d retries (HTTP 429)", ErrRateLimited, p.maxRetries)
		}

		delay := p.retryBaseDelay * time.Duration(1<<uint(attempt))
		if seconds, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil && seconds >= 0 {
			delay = time.Duration(seconds) * time.Second
		}

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}
