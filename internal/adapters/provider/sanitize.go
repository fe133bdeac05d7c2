// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package provider

import (
	"html"
	"net/url"
	"strings"
	"unicode"

	"github.com/charmbracelet/x/ansi"
	"github.com/janderssonse/osusume/internal/domain"
	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer strips markup from provider text before it reaches the terminal.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer creates a Sanitizer that removes every HTML element.
func NewSanitizer() *Sanitizer {
	return &Sanitizer{policy: bluemonday.StrictPolicy()}
}

// Text returns s without tags, terminal escape sequences or control
// characters, entities decoded and whitespace trimmed. Tabs and line breaks
// become spaces.
func (s *Sanitizer) Text(text string) string {
	plain := ansi.Strip(html.UnescapeString(s.policy.Sanitize(text)))

	return strings.TrimSpace(strings.Map(func(r rune) rune {
		switch {
		case r == '\n' || r == '\r' || r == '\t':
			return ' '
		case unicode.IsControl(r):
			return -1
		default:
			return r
		}
	}, plain))
}

// Item sanitises every text field of item. URLs that are not http(s) are dropped.
func (s *Sanitizer) Item(item domain.RecommendationItem) domain.RecommendationItem {
	features := make([]string, 0, len(item.Features))

	for _, feature := range item.Features {
		if clean := s.Text(feature); clean != "" {
			features = append(features, clean)
		}
	}

	return domain.RecommendationItem{
		Name:        s.Text(item.Name),
		Reason:      s.Text(item.Reason),
		Features:    features,
		ImageURL:    webURL(item.ImageURL),
		OfficialURL: webURL(item.OfficialURL),
	}
}

// Set sanitises every item of set and normalises the result.
func (s *Sanitizer) Set(set domain.RecommendationSet) domain.RecommendationSet {
	clean := make(domain.RecommendationSet, len(set))

	for category, items := range set {
		sanitized := make([]domain.RecommendationItem, 0, len(items))
		for _, item := range items {
			sanitized = append(sanitized, s.Item(item))
		}

		clean[category] = sanitized
	}

	return clean.Normalize()
}

func webURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" {
		return ""
	}

	switch strings.ToLower(parsed.Scheme) {
	case "http", "https":
		return parsed.String()
	default:
		return ""
	}
}
