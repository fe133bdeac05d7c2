// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package models

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/janderssonse/osusume/internal/application"
	"github.com/janderssonse/osusume/internal/domain"
	"github.com/janderssonse/osusume/internal/tui/styles"
)

// tileItem adapts a tile to the bubbles list.
type tileItem struct {
	tile application.Tile
}

func (i tileItem) Title() string {
	if i.tile.Favorite {
		return "★ " + i.tile.Name
	}

	return i.tile.Name
}

func (i tileItem) Description() string { return i.tile.Reason }
func (i tileItem) FilterValue() string { return i.tile.Name }

// CategoryKeyMap defines key bindings for the category listing.
type CategoryKeyMap struct {
	Open     key.Binding
	Favorite key.Binding
	Back     key.Binding
}

// DefaultCategoryKeyMap returns the default key bindings.
func DefaultCategoryKeyMap() CategoryKeyMap {
	return CategoryKeyMap{
		Open:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		Favorite: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "favorite")),
		Back:     key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
	}
}

// Category lists every item of one category for the query it was opened with.
type Category struct {
	styles  *styles.Styles
	session *Session
	dialog  *DetailDialog
	list    list.Model
	keyMap  CategoryKeyMap

	target  domain.Target
	section application.CategorySection
	loaded  bool
	message string

	width  int
	height int
}

// NewCategory creates the listing for target.
func NewCategory(styleConfig *styles.Styles, session *Session, target domain.Target) *Category {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(styleConfig.Primary).BorderForeground(styleConfig.Primary)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.BorderForeground(styleConfig.Primary)

	items := list.New(nil, delegate, 80, 20)
	items.SetShowHelp(false)
	items.DisableQuitKeybindings()
	items.Styles.Title = styleConfig.Header

	return &Category{
		styles:  styleConfig,
		session: session,
		dialog:  NewDetailDialog(styleConfig, session),
		list:    items,
		keyMap:  DefaultCategoryKeyMap(),
		target:  target,
	}
}

// Init loads the listing, starting a search when the current page answers
// a different query.
func (m *Category) Init() tea.Cmd {
	return m.load(true)
}

// Update implements tea.Model.
func (m *Category) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.list.SetSize(msg.Width, max(msg.Height-2, 3))
		m.dialog.SetWidth(msg.Width)

		return m, nil
	case NavigateMsg:
		if target, ok := msg.Data.(domain.Target); ok && target.Kind == domain.TargetCategoryListing {
			m.target = target

			return m, m.load(true)
		}

		return m, nil
	case ResultsUpdatedMsg:
		return m, m.load(false)
	case FavoriteToggledMsg:
		if msg.Err != nil {
			m.message = "favorite not saved: " + msg.Err.Error()
		} else {
			m.refreshItems()
		}

		return m, nil
	case ToastMsg:
		m.message = msg.Text

		return m, nil
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	var cmd tea.Cmd

	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

// View implements tea.Model.
func (m *Category) View() string {
	if m.dialog.Visible() {
		return m.dialog.View()
	}

	parts := []string{m.list.View()}

	if m.message != "" {
		parts = append(parts, m.styles.MutedText.Render(m.message))
	}

	parts = append(parts, RenderFooter(m.styles, m.width, []FooterAction{
		{"enter", "Details"}, {"f", "Favorite"}, {"/", "Filter"}, {"esc", "Back"},
	}, false))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Section returns the listed section.
func (m *Category) Section() application.CategorySection {
	return m.section
}

// Target returns the listing target.
func (m *Category) Target() domain.Target {
	return m.target
}

// Loaded reports whether the listing shows results for its target.
func (m *Category) Loaded() bool {
	return m.loaded
}

func (m *Category) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.dialog.Visible() {
		return m.dialog.Update(msg)
	}

	if m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd

		m.list, cmd = m.list.Update(msg)

		return cmd
	}

	switch {
	case key.Matches(msg, m.keyMap.Back):
		if m.list.FilterState() == list.FilterApplied {
			m.list.ResetFilter()

			return nil
		}

		return Back
	case key.Matches(msg, m.keyMap.Open):
		if item, ok := m.list.SelectedItem().(tileItem); ok {
			if err := m.session.Presenter.Activate(item.tile); err != nil {
				m.message = err.Error()
			}
		}

		return nil
	case key.Matches(msg, m.keyMap.Favorite):
		if item, ok := m.list.SelectedItem().(tileItem); ok {
			return m.session.Toggle(item.tile.Item)
		}

		return nil
	}

	var cmd tea.Cmd

	m.list, cmd = m.list.Update(msg)

	return cmd
}

// load shows the target's category from the current page. When the page
// belongs to another query and fetch is set, a search for the target
// query is started and the listing fills in on ResultsUpdatedMsg.
func (m *Category) load(fetch bool) tea.Cmd {
	label := m.session.Presenter.Index().Label(m.target.Category)
	m.list.Title = label + " · " + m.target.Query

	page, ok := m.session.Search.Page()
	if ok && page.Query == m.target.Query {
		section, err := m.session.Presenter.Listing(page, m.target.Category)
		if err != nil {
			m.message = err.Error()
			m.loaded = false

			return nil
		}

		m.section = section
		m.loaded = true
		m.message = ""
		m.setItems()

		return nil
	}

	m.loaded = false

	state := m.session.Search.State()

	if state.Text == m.target.Query {
		switch state.Status {
		case domain.StatusError:
			m.message = state.ErrorMessage

			return nil
		case domain.StatusLoading:
			m.message = "searching " + m.target.Query + "..."

			return nil
		case domain.StatusIdle:
		}
	}

	if !fetch {
		return nil
	}

	m.message = "searching " + m.target.Query + "..."

	return m.session.Run(m.target.Query)
}

func (m *Category) refreshItems() {
	sections := []application.CategorySection{m.section}
	m.session.Presenter.Refresh(sections)
	m.section = sections[0]
	m.setItems()
}

func (m *Category) setItems() {
	items := make([]list.Item, 0, len(m.section.Tiles))
	for _, tile := range m.section.Tiles {
		items = append(items, tileItem{tile: tile})
	}

	m.list.SetItems(items)
}
