// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package network provides the shared HTTP client.
package network

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrBadStatus is returned when a probe gets a non-2xx response.
var ErrBadStatus = errors.New("bad HTTP status")

// UserAgent identifies osusume to remote services.
const UserAgent = "osusume/1"

// HTTPClient wraps http.Client with proxy support and a timeout.
type HTTPClient struct {
	client *http.Client
}

// NewHTTPClient creates a new HTTP client with timeout.
func NewHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
			},
		},
	}
}

// WrapHTTPClient uses an existing client, for example one from httptest.
func WrapHTTPClient(client *http.Client) *HTTPClient {
	return &HTTPClient{client: client}
}

// Do sends req with the osusume user agent.
func (c *HTTPClient) Do(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", UserAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}

	return resp, nil
}

// Probe checks that url answers a HEAD request with a 2xx status.
func (c *HTTPClient) Probe(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, http.NoBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.Do(req)
	if err != nil {
		return err
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: %d", ErrBadStatus, resp.StatusCode)
	}

	return nil
}
