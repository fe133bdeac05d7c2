// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package models

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/janderssonse/osusume/internal/tui/styles"
)

// HelpSection represents a help documentation section.
type HelpSection struct {
	Title   string
	Content string
}

// Help represents the help screen model.
type Help struct {
	styles         *styles.Styles
	width          int
	height         int
	sections       []HelpSection
	viewport       viewport.Model
	renderer       *glamour.TermRenderer
	currentSection int
	quitting       bool
	keyMap         HelpKeyMap
}

// HelpKeyMap defines key bindings for the help screen.
type HelpKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding
	Tab      key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// DefaultHelpKeyMap returns the default key bindings.
func DefaultHelpKeyMap() HelpKeyMap {
	return HelpKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "previous section"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next section"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "b"),
			key.WithHelp("pgup/b", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "f"),
			key.WithHelp("pgdn/f", "page down"),
		),
		Home: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("home/g", "go to top"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("end/G", "go to bottom"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next section"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back to search"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// NewHelp creates a new help model.
func NewHelp(styleConfig *styles.Styles) *Help {
	sections := []HelpSection{
		{
			Title: "Getting Started",
			Content: `# osusume

Type a name you like (an artist, a show, a brand) and get related
recommendations grouped by category.

## Search screen

| Key | Action |
|-----|--------|
| enter | Search for the text in the box |
| esc / tab | Move to the results |
| ←↑↓→ / hjkl | Move between tiles |
| enter / space | Open the item |
| f | Toggle favorite |
| a | See every item of the category |
| r | Retry a failed search |
| / | Back to the search box |
| F | Favorites |
| q | Quit |

An empty search shows *query required* and nothing is fetched.`,
		},
		{
			Title: "Results",
			Content: `# Results

Results are grouped as **アーティスト**, **芸能人/インフルエンサー**,
**映画/アニメ** and **ファッションブランド**, always in that order. Each category shows its first five
items; empty categories are hidden.

The first two tiles of each category are checked first when image probing
is on. A tile whose image is missing or broken shows a coloured badge with
the first two characters of the name.

While a new search runs, the previous results stay on screen dimmed. If
the search fails you see *fetch failed, retry* and the old results remain.

## Item details

| Key | Action |
|-----|--------|
| enter / s | Search for this item |
| f | Toggle favorite |
| c | Copy the official URL |
| esc | Close |`,
		},
		{
			Title: "Favorites",
			Content: `# Favorites

Press **f** on any tile or in the item details to add or remove a
favorite. Press **F** on the results to open the list.

| Key | Action |
|-----|--------|
| enter | Search for the favorite |
| x | Remove it |
| / | Filter |
| esc | Back |

Favorites live in a TOML file (default) or a SQLite database, see
Configuration.`,
		},
		{
			Title: "Configuration",
			Content: `# Configuration

The config file is ` + "`" + `$XDG_CONFIG_HOME/osusume/config.toml` + "`" + `.
Create it with ` + "`" + `osusume config init` + "`" + `.

` + "```toml" + `
[provider]
kind = "http"          # or "fixture"
endpoint = "http://localhost:3000/api/recommendations"
timeout = "30s"
max_retries = 3

[favorites]
backend = "file"       # file, sqlite or memory

[ui]
locale = "ja"
reason_width = 40
probe_images = false
` + "```" + `

Environment variables ` + "`" + `OSUSUME_PROVIDER` + "`" + `, ` + "`" + `OSUSUME_ENDPOINT` + "`" + `,
` + "`" + `OSUSUME_FAVORITES` + "`" + `, ` + "`" + `OSUSUME_LOCALE` + "`" + ` and ` + "`" + `OSUSUME_PROBE_IMAGES` + "`" + ` override the file.`,
		},
		{
			Title: "Command Line",
			Content: `# Command Line

` + "```bash" + `
osusume                       # start the TUI
osusume tui --query Ado       # start with a search
osusume search 米津玄師        # print recommendations
osusume search Ado --category media
osusume search Ado --json | jq '.categories[].items[].name'
osusume favorites list
osusume favorites toggle Ado
osusume favorites clear
osusume config show
` + "```" + `

Exit codes: 0 success, 1 error, 2 usage, 3 config, 5 not found, 11 network.`,
		},
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		// Fallback to default renderer
		renderer, _ = glamour.NewTermRenderer()
	}

	// Create viewport for scrolling
	viewPort := viewport.New(80, 20)
	viewPort.Style = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styleConfig.Primary).
		Padding(1)

	helpModel := &Help{
		styles:         styleConfig,
		sections:       sections,
		viewport:       viewPort,
		renderer:       renderer,
		currentSection: 0,
		keyMap:         DefaultHelpKeyMap(),
	}

	// Render initial content
	helpModel.updateContent()

	return helpModel
}

// Init initializes the help model.
func (m *Help) Init() tea.Cmd {
	return nil
}

// Update handles messages for the Help model.
func (m *Help) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case tea.WindowSizeMsg:
		return m.handleWindowSizeMsg(msg)
	}

	return m, nil
}

// View renders the help screen.
func (m *Help) View() string {
	if m.quitting {
		return GoodbyeMessage
	}

	var builder strings.Builder

	// Header with navigation
	header := m.renderHeader()
	builder.WriteString(header)
	builder.WriteString("\n\n")

	// Main content viewport
	builder.WriteString(m.viewport.View())
	builder.WriteString("\n\n")

	// Footer with keybindings
	footer := m.renderFooter()
	builder.WriteString(footer)

	return builder.String()
}

// handleKeyMsg processes keyboard input for the help screen.
func (m *Help) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Quit):
		m.quitting = true

		return m, tea.Quit
	case key.Matches(msg, m.keyMap.Back):
		return m, Back
	case key.Matches(msg, m.keyMap.Left):
		return m.handleSectionNavigation(-1)
	case key.Matches(msg, m.keyMap.Right), key.Matches(msg, m.keyMap.Tab):
		return m.handleSectionNavigation(1)
	case key.Matches(msg, m.keyMap.Home):
		m.viewport.GotoTop()

		return m, nil
	case key.Matches(msg, m.keyMap.End):
		m.viewport.GotoBottom()

		return m, nil
	default:
		var cmd tea.Cmd

		m.viewport, cmd = m.viewport.Update(msg)

		return m, cmd
	}
}

// handleSectionNavigation moves between help sections.
func (m *Help) handleSectionNavigation(direction int) (tea.Model, tea.Cmd) {
	newSection := m.currentSection + direction
	if newSection >= 0 && newSection < len(m.sections) {
		m.currentSection = newSection
		m.updateContent()
	}

	return m, nil
}

// handleWindowSizeMsg processes window resize messages.
func (m *Help) handleWindowSizeMsg(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	// Update viewport size
	header := m.renderHeader()
	footer := m.renderFooter()
	verticalMargins := lipgloss.Height(header) + lipgloss.Height(footer)

	m.viewport.Width = msg.Width
	m.viewport.Height = msg.Height - verticalMargins

	// Update content with new dimensions
	m.updateContent()

	return m, nil
}

// renderHeader creates the header with section navigation.
func (m *Help) renderHeader() string {
	var builder strings.Builder

	// Title
	title := m.styles.Title.Render("❓ Help & Documentation")
	builder.WriteString(title)
	builder.WriteString("\n")

	// Section tabs
	tabs := make([]string, 0, len(m.sections))

	for i, section := range m.sections {
		var style lipgloss.Style
		if i == m.currentSection {
			style = m.styles.Selected.
				Padding(0, 1).
				MarginRight(1)
		} else {
			style = m.styles.Unselected.
				Padding(0, 1).
				MarginRight(1).
				Faint(true)
		}

		tabs = append(tabs, style.Render(section.Title))
	}

	tabsLine := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	builder.WriteString(tabsLine)

	return builder.String()
}

// renderFooter creates the footer with keybindings.
func (m *Help) renderFooter() string {
	var keybindings []string

	keybindings = append(keybindings, m.styles.Keybinding("↑↓/jk", "scroll"))
	keybindings = append(keybindings, m.styles.Keybinding("←→/hl", "sections"))
	keybindings = append(keybindings, m.styles.Keybinding("tab", "next section"))
	keybindings = append(keybindings, m.styles.Keybinding("g/G", "top/bottom"))
	keybindings = append(keybindings, m.styles.Keybinding("esc", "back"))
	keybindings = append(keybindings, m.styles.Keybinding("q", "quit"))

	footer := strings.Join(keybindings, "  ")

	return m.styles.Footer.Render(footer)
}

// updateContent renders the current section content and updates the viewport.
func (m *Help) updateContent() {
	if m.currentSection >= len(m.sections) {
		return
	}

	section := m.sections[m.currentSection]

	// Render markdown content using Glamour
	rendered, err := m.renderer.Render(section.Content)
	if err != nil {
		// Fallback to plain text if rendering fails
		rendered = section.Content
	}

	// Set content in viewport
	m.viewport.SetContent(rendered)
}
