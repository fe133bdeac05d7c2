// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/janderssonse/osusume/internal/adapters/network"
	"github.com/janderssonse/osusume/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResponse = `{
  "artists": [
    {"name": "<b>YOASOBI</b>", "reason": "Story &amp; song", "features": ["duo", "<i></i>"],
     "imageUrl": "javascript:alert(1)", "officialUrl": "https://www.yoasobi-music.jp/"},
    {"name": "YOASOBI", "reason": "duplicate"}
  ],
  "media": [],
  "podcasts": [{"name": "ignored"}]
}`

func newTestHTTPProvider(t *testing.T, handler http.HandlerFunc) *HTTPProvider {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p := NewHTTPProvider(server.URL+"/api/recommendations", network.WrapHTTPClient(server.Client()), 2)
	p.retryBaseDelay = time.Millisecond

	return p
}

func TestHTTPProviderFetch(t *testing.T) {
	t.Parallel()

	seen := make(chan [2]string, 1)

	p := newTestHTTPProvider(t, func(w http.ResponseWriter, r *http.Request) {
		seen <- [2]string{r.URL.Query().Get("q"), r.Header.Get("User-Agent")}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleResponse))
	})

	set, err := p.FetchRecommendations(context.Background(), "米津玄師 & co")
	require.NoError(t, err)
	require.NotNil(t, set)

	got := <-seen
	assert.Equal(t, "米津玄師 & co", got[0])
	assert.Equal(t, network.UserAgent, got[1])

	artists := set.Items(domain.CategoryArtists)
	require.Len(t, artists, 1, "duplicates are dropped")
	assert.Equal(t, "YOASOBI", artists[0].Name)
	assert.Equal(t, "Story & song", artists[0].Reason)
	assert.Equal(t, []string{"duo"}, artists[0].Features)
	assert.Empty(t, artists[0].ImageURL, "non-web URLs are dropped")
	assert.Equal(t, "https://www.yoasobi-music.jp/", artists[0].OfficialURL)
	assert.NotContains(t, *set, domain.Category("podcasts"))
}

func TestHTTPProviderRetriesRateLimit(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32

	p := newTestHTTPProvider(t, func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)

			return
		}

		_, _ = w.Write([]byte(`{"fashion":[{"name":"UNIQLO"}]}`))
	})

	set, err := p.FetchRecommendations(context.Background(), "uniqlo")
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
	assert.Len(t, set.Items(domain.CategoryFashion), 1)
}

func TestHTTPProviderGivesUpOnRateLimit(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32

	p := newTestHTTPProvider(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := p.FetchRecommendations(context.Background(), "busy")
	require.ErrorIs(t, err, ErrRateLimited)
	assert.Equal(t, int32(3), calls.Load(), "initial attempt plus two retries")
}

func TestHTTPProviderErrors(t *testing.T) {
	t.Parallel()

	t.Run("server error", func(t *testing.T) {
		t.Parallel()

		p := newTestHTTPProvider(t, func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "boom", http.StatusBadGateway)
		})

		_, err := p.FetchRecommendations(context.Background(), "x")
		require.ErrorIs(t, err, ErrUnexpectedStatus)
		assert.Contains(t, err.Error(), "502")
	})

	t.Run("malformed json", func(t *testing.T) {
		t.Parallel()

		p := newTestHTTPProvider(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"artists": [`))
		})

		_, err := p.FetchRecommendations(context.Background(), "x")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "decode")
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		p := newTestHTTPProvider(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		})

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := p.FetchRecommendations(ctx, "x")
		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("unreachable", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.NotFoundHandler())
		url := server.URL
		server.Close()

		p := NewHTTPProvider(url, network.NewHTTPClient(time.Second), 0)

		_, err := p.FetchRecommendations(context.Background(), "x")
		require.ErrorIs(t, err, domain.ErrNetworkFailure)
	})
}
