// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package imagery renders item images for the terminal. Terminals cannot show
// remote pictures, so a loaded image is shown as a framed host label and a
// missing or broken one as a coloured initials badge.
package imagery

import (
	"hash/fnv"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/janderssonse/osusume/internal/domain"
	"github.com/janderssonse/osusume/internal/stringutil"
)

// badgePalette is indexed by a hash of the item identifier.
var badgePalette = []lipgloss.Color{ //nolint:gochecknoglobals
	"#7aa2f7", "#bb9af7", "#9ece6a", "#e0af68",
	"#f7768e", "#7dcfff", "#ff9e64", "#2ac3de",
}

const badgeForeground = lipgloss.Color("#1a1b26")

// Renderer implements domain.ImageRenderer and remembers failed images.
type Renderer struct {
	mu     sync.RWMutex
	failed map[string]struct{}
}

// NewRenderer creates a renderer with no recorded failures.
func NewRenderer() *Renderer {
	return &Renderer{failed: make(map[string]struct{})}
}

// MarkFailed records that the image for identifier could not be loaded.
func (r *Renderer) MarkFailed(identifier string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.failed[identifier] = struct{}{}
}

// Failed reports whether identifier has a recorded failure.
func (r *Renderer) Failed(identifier string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.failed[identifier]

	return ok
}

// Render implements domain.ImageRenderer.
func (r *Renderer) Render(ref domain.ImageRef, width int) string {
	if ref.Src == "" || r.Failed(ref.Identifier) {
		return Badge(ref, width)
	}

	label := stringutil.Truncate("▣ "+stringutil.HostLabel(ref.Src), max(width-2, 1))

	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(BadgeColor(ref.Identifier)).
		Width(max(width-2, 1)).
		Align(lipgloss.Center).
		Render(label)
}

// Badge renders the fallback for ref. The colour depends only on
// ref.Identifier, so repeated renders of one item look the same.
func Badge(ref domain.ImageRef, width int) string {
	text := ref.FallbackText
	if text == "" {
		text = stringutil.Initials(ref.Identifier)
	}

	return lipgloss.NewStyle().
		Background(BadgeColor(ref.Identifier)).
		Foreground(badgeForeground).
		Bold(true).
		Width(max(width, 1)).
		Padding(1, 0).
		Align(lipgloss.Center).
		Render(text)
}

// BadgeColor picks the palette entry for identifier.
func BadgeColor(identifier string) lipgloss.Color {
	h := fnv.New32a()
	_, _ = h.Write([]byte(identifier))

	return badgePalette[h.Sum32()%uint32(len(badgePalette))] //nolint:gosec // palette length is tiny
}
