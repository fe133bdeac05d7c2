// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package stringutil provides string utility functions for osusume.
package stringutil

import (
	"net/url"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/unicode/norm"
)

// Ellipsis is appended to truncated text.
const Ellipsis = "..."

// NormalizeQuery folds text to NFKC and trims surrounding whitespace.
// Full-width spaces therefore count as blank.
func NormalizeQuery(text string) string {
	return strings.TrimSpace(norm.NFKC.String(text))
}

// OneLine collapses every run of whitespace, newlines included, to a single space.
func OneLine(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// Truncate shortens text to at most width terminal cells, appending Ellipsis when cut.
func Truncate(text string, width int) string {
	if width <= 0 {
		return ""
	}

	if runewidth.StringWidth(text) <= width {
		return text
	}

	if width <= len(Ellipsis) {
		return runewidth.Truncate(text, width, "")
	}

	return runewidth.Truncate(text, width, Ellipsis)
}

// Initials returns the first two characters of name.
func Initials(name string) string {
	runes := []rune(strings.TrimSpace(name))
	if len(runes) > 2 {
		runes = runes[:2]
	}

	return string(runes)
}

// HostLabel strips the scheme from raw and keeps everything before the first slash.
// Text without a scheme is treated the same way. Userinfo is never shown.
func HostLabel(raw string) string {
	label := strings.TrimSpace(raw)

	if parsed, err := url.Parse(label); err == nil && parsed.Host != "" {
		return parsed.Host
	}

	label = strings.TrimPrefix(label, "https://")
	label = strings.TrimPrefix(label, "http://")

	host, _, _ := strings.Cut(label, "/")
	if at := strings.LastIndex(host, "@"); at >= 0 {
		host = host[at+1:]
	}

	return host
}
