// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/janderssonse/osusume/internal/domain"
	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSearch() domain.SearchResult {
	return domain.SearchResult{
		Query: "米津玄師",
		Href:  "/search?q=%E7%B1%B3%E6%B4%A5%E7%8E%84%E5%B8%AB",
		Categories: []domain.CategoryResult{
			{
				Key:    domain.CategoryArtists,
				Label:  "アーティスト",
				SeeAll: "/category/artists?q=%E7%B1%B3%E6%B4%A5%E7%8E%84%E5%B8%AB",
				Items: []domain.ItemResult{
					{Name: "YOASOBI", Reason: "物語を音楽にするユニット", Favorite: true},
					{Name: "Ado", Reason: "Powerful vocals"},
				},
			},
		},
		Total:     2,
		Duration:  120 * time.Millisecond,
		Timestamp: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestOutputAdapter_Success(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		format       OutputFormat
		quiet        bool
		message      string
		data         any
		wantContains string
		wantEmpty    bool
	}{
		{name: "text format with message", format: TextFormat, message: "Favorite added", wantContains: "Favorite added"},
		{name: "quiet mode suppresses message", format: TextFormat, quiet: true, message: "Favorite added", wantEmpty: true},
		{
			name:         "JSON format with data",
			format:       JSONFormat,
			message:      "ignored",
			data:         domain.ToggleResult{Name: "Ado", Favorite: true},
			wantContains: `"favorite": true`,
		},
		{name: "JSON format without data shows message", format: JSONFormat, message: "No data", wantContains: "No data"},
		{
			name:         "quiet JSON still emits data",
			format:       JSONFormat,
			quiet:        true,
			data:         domain.ToggleResult{Name: "Ado"},
			wantContains: `"name": "Ado"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			adapter := NewOutputAdapterWithWriter(&buf, tt.format, tt.quiet)
			require.NoError(t, adapter.Success(tt.message, tt.data))

			if tt.wantEmpty {
				assert.Empty(t, buf.String())
			} else {
				assert.Contains(t, buf.String(), tt.wantContains)
			}
		})
	}
}

func TestOutputAdapter_Error(t *testing.T) {
	t.Parallel()

	var text, jsonBuf, quiet bytes.Buffer

	require.NoError(t, NewOutputAdapterWithWriter(&text, TextFormat, false).Error("fetch failed, retry"))
	require.NoError(t, NewOutputAdapterWithWriter(&jsonBuf, JSONFormat, false).Error("fetch failed, retry"))
	require.NoError(t, NewOutputAdapterWithWriter(&quiet, TextFormat, true).Error("fetch failed, retry"))

	assert.Equal(t, "Error: fetch failed, retry\n", text.String())
	assert.JSONEq(t, `{"error":"fetch failed, retry"}`, jsonBuf.String())
	assert.Empty(t, quiet.String())
}

func TestOutputAdapter_Info(t *testing.T) {
	t.Parallel()

	var text, jsonBuf bytes.Buffer

	require.NoError(t, NewOutputAdapterWithWriter(&text, TextFormat, false).Info("3 favorites"))
	require.NoError(t, NewOutputAdapterWithWriter(&jsonBuf, JSONFormat, false).Info("3 favorites"))

	assert.Equal(t, "3 favorites\n", text.String())
	assert.JSONEq(t, `{"info":"3 favorites"}`, jsonBuf.String())
}

func TestOutputAdapter_Table(t *testing.T) {
	t.Parallel()

	t.Run("aligns wide text by display width", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer

		adapter := NewOutputAdapterWithWriter(&buf, TextFormat, false)
		require.NoError(t, adapter.Table([]string{"NAME", "REASON"}, [][]string{
			{"米津玄師", "Lemon"},
			{"Ado", "うっせぇわ"},
		}))

		lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
		require.Len(t, lines, 4)
		assert.Equal(t, "NAME      REASON", lines[0])
		assert.Equal(t, "----      ------", lines[1])

		assert.Equal(t, "米津玄師  Lemon", lines[2])
		assert.Equal(t, "Ado       うっせぇわ", lines[3])
		assert.Equal(t, runewidth.StringWidth("米津玄師  "), runewidth.StringWidth("Ado       "))
	})

	t.Run("json", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer

		adapter := NewOutputAdapterWithWriter(&buf, JSONFormat, false)
		require.NoError(t, adapter.Table([]string{"NAME"}, [][]string{{"Ado"}}))
		assert.JSONEq(t, `{"headers":["NAME"],"rows":[["Ado"]]}`, buf.String())
	})

	t.Run("quiet", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer

		require.NoError(t, NewOutputAdapterWithWriter(&buf, TextFormat, true).Table([]string{"NAME"}, nil))
		assert.Empty(t, buf.String())
	})
}

func TestOutputAdapter_Progress(t *testing.T) {
	t.Parallel()

	var text, jsonBuf bytes.Buffer

	require.NoError(t, NewOutputAdapterWithWriter(&text, TextFormat, false).Progress("searching..."))
	require.NoError(t, NewOutputAdapterWithWriter(&jsonBuf, JSONFormat, false).Progress("searching..."))

	assert.Equal(t, "\rsearching...", text.String())
	assert.Empty(t, jsonBuf.String())
}

func TestOutputAdapter_SearchResult(t *testing.T) {
	t.Parallel()

	t.Run("text lists sections with see all targets", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer

		require.NoError(t, NewOutputAdapterWithWriter(&buf, TextFormat, false).SearchResult(sampleSearch()))

		out := buf.String()
		assert.Contains(t, out, "アーティスト (2)")
		assert.Contains(t, out, "★  YOASOBI")
		assert.Contains(t, out, "Ado")
		assert.Contains(t, out, "see all: /category/artists?q=%E7%B1%B3%E6%B4%A5%E7%8E%84%E5%B8%AB")
	})

	t.Run("json round trips", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer

		require.NoError(t, NewOutputAdapterWithWriter(&buf, JSONFormat, false).SearchResult(sampleSearch()))
		assert.Contains(t, buf.String(), `"query": "米津玄師"`)

		var decoded domain.SearchResult
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, sampleSearch(), decoded)
	})

	t.Run("quiet prints names only", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer

		require.NoError(t, NewOutputAdapterWithWriter(&buf, TextFormat, true).SearchResult(sampleSearch()))
		assert.Equal(t, "YOASOBI\nAdo\n", buf.String())
	})

	t.Run("empty result", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer

		require.NoError(t, NewOutputAdapterWithWriter(&buf, TextFormat, false).SearchResult(domain.SearchResult{Query: "zzz"}))
		assert.Equal(t, "No recommendations for \"zzz\"\n", buf.String())
	})
}

func TestOutputAdapter_FavoritesResult(t *testing.T) {
	t.Parallel()

	result := domain.FavoritesResult{
		Favorites: []domain.ItemResult{{Name: "Ado", Reason: "vocals", OfficialURL: "https://www.ado-dokidokihimitsukichi-daigakuimo.com/"}},
		Total:     1,
	}

	var text, quiet, empty bytes.Buffer

	require.NoError(t, NewOutputAdapterWithWriter(&text, TextFormat, false).FavoritesResult(result))
	require.NoError(t, NewOutputAdapterWithWriter(&quiet, TextFormat, true).FavoritesResult(result))
	require.NoError(t, NewOutputAdapterWithWriter(&empty, TextFormat, false).FavoritesResult(domain.FavoritesResult{}))

	assert.Contains(t, text.String(), "NAME")
	assert.Contains(t, text.String(), "Ado")
	assert.Equal(t, "Ado\n", quiet.String())
	assert.Equal(t, "No favorites yet\n", empty.String())
}

func TestParseOutputFormat(t *testing.T) {
	t.Parallel()

	for input, want := range map[string]OutputFormat{"": TextFormat, "text": TextFormat, "JSON": JSONFormat} {
		got, err := ParseOutputFormat(input)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseOutputFormat("yaml")
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestOutputFromContext(t *testing.T) {
	t.Parallel()

	adapter := OutputFromContext(true, true)
	assert.Equal(t, JSONFormat, adapter.format)
	assert.True(t, adapter.IsQuiet())

	var _ domain.OutputPort = adapter
}

func TestOutputAdapterReasonWidth(t *testing.T) {
	t.Parallel()

	result := sampleSearch()
	result.Categories[0].Items[1].Reason = "Powerful vocals\nthat carry\tanime themes"

	var full, narrow bytes.Buffer

	require.NoError(t, NewOutputAdapterWithWriter(&full, TextFormat, false).SearchResult(result))
	assert.Contains(t, full.String(), "Powerful vocals that carry anime themes")

	adapter := NewOutputAdapterWithWriter(&narrow, TextFormat, false)
	adapter.SetReasonWidth(12)
	require.NoError(t, adapter.SearchResult(result))
	assert.NotContains(t, narrow.String(), "anime themes")
	assert.Contains(t, narrow.String(), "...")

	for _, line := range strings.Split(strings.TrimSpace(narrow.String()), "\n") {
		assert.NotContains(t, line, "\t")
	}
}
