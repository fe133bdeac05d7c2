// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package models

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/janderssonse/osusume/internal/tui/styles"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHelpSectionNavigation(t *testing.T) {
	t.Parallel()

	help := NewHelp(styles.New())
	help.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	assert.Equal(t, 0, help.currentSection)
	assert.Contains(t, help.View(), "Getting Started")

	help.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 1, help.currentSection)

	help.Update(keyRune('h'))
	help.Update(keyRune('h'))
	assert.Equal(t, 0, help.currentSection, "stops at the first section")

	for range len(help.sections) + 2 {
		help.Update(keyRune('l'))
	}

	assert.Equal(t, len(help.sections)-1, help.currentSection)
}

func TestHelpBackReturnsToSearch(t *testing.T) {
	t.Parallel()

	help := NewHelp(styles.New())

	_, cmd := help.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)

	nav, ok := cmd().(NavigateMsg)
	require.True(t, ok)
	assert.Equal(t, SearchScreen, nav.Screen)
}

func TestRenderFooter(t *testing.T) {
	t.Parallel()

	footer := RenderFooter(styles.New(), 80, []FooterAction{{"enter", "Search"}}, true)

	assert.Contains(t, footer, "[enter] Search")
	assert.Contains(t, footer, "Help")
}
