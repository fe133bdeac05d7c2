// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package models

import (
	"context"

	"github.com/janderssonse/osusume/internal/adapters/favorites"
	"github.com/janderssonse/osusume/internal/domain"
)

// TestClipboard records copied text instead of touching the system clipboard.
type TestClipboard struct {
	Copied []string
	Err    error
}

// Write implements the session clipboard function.
func (c *TestClipboard) Write(text string) error {
	if c.Err != nil {
		return c.Err
	}

	c.Copied = append(c.Copied, text)

	return nil
}

// NewTestSession creates a session over provider with in-memory favorites
// and a recording clipboard, avoiding the filesystem and the display server.
func NewTestSession(provider domain.RecommendationProvider) (*Session, *favorites.Memory, *TestClipboard) {
	store := favorites.NewMemory()
	clip := &TestClipboard{}

	session := NewSession(context.Background(), provider, store, SessionOptions{
		Locale:    "ja",
		Clipboard: clip.Write,
	})

	return session, store, clip
}
