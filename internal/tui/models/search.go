// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package models

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/janderssonse/osusume/internal/application"
	"github.com/janderssonse/osusume/internal/domain"
	"github.com/janderssonse/osusume/internal/stringutil"
	"github.com/janderssonse/osusume/internal/tui/styles"
)

// SearchPlaceholder is shown in the empty search box.
const SearchPlaceholder = "例: 米津玄師、鬼滅の刃、UNIQLO..."

const (
	minTileWidth = 18
	maxTileWidth = 30
	gridPadding  = 4
)

type searchFocus int

const (
	focusInput searchFocus = iota
	focusGrid
)

// SearchKeyMap defines key bindings for the results grid.
type SearchKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Open      key.Binding
	Favorite  key.Binding
	SeeAll    key.Binding
	Input     key.Binding
	Retry     key.Binding
	Favorites key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// DefaultSearchKeyMap returns the default key bindings.
func DefaultSearchKeyMap() SearchKeyMap {
	return SearchKeyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Open:      key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "details")),
		Favorite:  key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "favorite")),
		SeeAll:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "see all")),
		Input:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Retry:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "retry")),
		Favorites: key.NewBinding(key.WithKeys("F"), key.WithHelp("F", "favorites")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
}

// Search is the main screen: query box, status line and category grids.
type Search struct {
	styles   *styles.Styles
	session  *Session
	dialog   *DetailDialog
	input    textinput.Model
	spinner  spinner.Model
	viewport viewport.Model
	keyMap   SearchKeyMap

	sections   []application.CategorySection
	focus      searchFocus
	sectionIdx int
	tileIdx    int
	toast      string
	toastErr   bool

	initialQuery string
	width        int
	height       int
	quitting     bool
}

// NewSearch creates the search screen. A non-empty initialQuery is
// submitted on Init.
func NewSearch(styleConfig *styles.Styles, session *Session, initialQuery string) *Search {
	input := textinput.New()
	input.Placeholder = SearchPlaceholder
	input.Prompt = "🔍 "
	input.CharLimit = 100
	input.SetValue(initialQuery)
	input.Focus()

	spin := spinner.New(spinner.WithSpinner(spinner.Dot))
	spin.Style = lipgloss.NewStyle().Foreground(styleConfig.Primary)

	return &Search{
		styles:       styleConfig,
		session:      session,
		dialog:       NewDetailDialog(styleConfig, session),
		input:        input,
		spinner:      spin,
		viewport:     viewport.New(80, 20),
		keyMap:       DefaultSearchKeyMap(),
		initialQuery: initialQuery,
	}
}

// Init implements tea.Model.
func (m *Search) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}

	if strings.TrimSpace(m.initialQuery) != "" {
		cmds = append(cmds, m.submit())
	}

	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m *Search) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(msg.Width-gridPadding-4, 10)
		m.dialog.SetWidth(msg.Width)
	case tea.KeyMsg:
		m.toast = ""
		cmd = m.handleKey(msg)
	case spinner.TickMsg:
		if m.session.Search.State().Status == domain.StatusLoading {
			m.spinner, cmd = m.spinner.Update(msg)
		}
	case ResultsUpdatedMsg:
		cmd = m.applyResults()
	case FavoriteToggledMsg:
		m.applyToggle(msg)
	case ToastMsg:
		m.toast, m.toastErr = msg.Text, msg.Error
	case NavigateMsg:
		if target, ok := msg.Data.(domain.Target); ok && target.Kind == domain.TargetSearchResults {
			m.input.SetValue(target.Query)
		}
	default:
		if m.focus == focusInput {
			m.input, cmd = m.input.Update(msg)
		}
	}

	m.refreshViewport()

	return m, cmd
}

// View implements tea.Model.
func (m *Search) View() string {
	if m.quitting {
		return GoodbyeMessage
	}

	parts := []string{
		m.styles.Logo(),
		m.renderInput(),
		m.renderStatus(),
	}

	switch {
	case m.dialog.Visible():
		parts = append(parts, m.dialog.View())
	case len(m.sections) > 0:
		parts = append(parts, m.viewport.View())
	default:
		parts = append(parts, m.styles.MutedText.Render("Type a name and press enter to get recommendations."))
	}

	parts = append(parts, RenderFooter(m.styles, m.width, m.footerActions(), true))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Sections returns the sections currently shown.
func (m *Search) Sections() []application.CategorySection {
	return m.sections
}

// SelectedTile returns the tile under the grid cursor.
func (m *Search) SelectedTile() (application.Tile, bool) {
	if m.sectionIdx >= len(m.sections) {
		return application.Tile{}, false
	}

	tiles := m.sections[m.sectionIdx].Tiles
	if m.tileIdx >= len(tiles) {
		return application.Tile{}, false
	}

	return tiles[m.tileIdx], true
}

// InputFocused reports whether key presses go to the query box.
func (m *Search) InputFocused() bool {
	return m.focus == focusInput
}

// Query returns the text in the query box.
func (m *Search) Query() string {
	return m.input.Value()
}

// Toast returns the current status message.
func (m *Search) Toast() string {
	return m.toast
}

// GetNavigationHints returns the footer hints for the current focus.
func (m *Search) GetNavigationHints() []string {
	actions := m.footerActions()

	hints := make([]string, 0, len(actions))
	for _, action := range actions {
		hints = append(hints, "["+action.Key+"] "+action.Action)
	}

	return hints
}

func (m *Search) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.dialog.Visible() {
		return m.dialog.Update(msg)
	}

	if m.focus == focusInput {
		return m.handleInputKey(msg)
	}

	return m.handleGridKey(msg)
}

func (m *Search) handleInputKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		return m.submit()
	case tea.KeyEsc, tea.KeyTab, tea.KeyDown:
		if len(m.sections) > 0 {
			m.focusGrid()
		}

		return nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return cmd
}

func (m *Search) handleGridKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keyMap.Quit):
		m.quitting = true

		return tea.Quit
	case key.Matches(msg, m.keyMap.Input):
		m.focusInput()

		return textinput.Blink
	case key.Matches(msg, m.keyMap.Left):
		m.tileIdx = max(m.tileIdx-1, 0)
	case key.Matches(msg, m.keyMap.Right):
		if m.sectionIdx < len(m.sections) {
			m.tileIdx = min(m.tileIdx+1, len(m.sections[m.sectionIdx].Tiles)-1)
		}
	case key.Matches(msg, m.keyMap.Up):
		m.moveSection(-1)
	case key.Matches(msg, m.keyMap.Down):
		m.moveSection(1)
	case key.Matches(msg, m.keyMap.Open):
		if tile, ok := m.SelectedTile(); ok {
			if err := m.session.Presenter.Activate(tile); err != nil {
				return toast(err.Error(), true)
			}
		}
	case key.Matches(msg, m.keyMap.Favorite):
		if tile, ok := m.SelectedTile(); ok {
			return m.session.Toggle(tile.Item)
		}
	case key.Matches(msg, m.keyMap.SeeAll):
		if m.sectionIdx < len(m.sections) {
			return NavigateTo(m.sections[m.sectionIdx].SeeAll)
		}
	case key.Matches(msg, m.keyMap.Retry):
		if state := m.session.Search.State(); state.Status == domain.StatusError {
			m.input.SetValue(state.Text)

			return m.submit()
		}
	case key.Matches(msg, m.keyMap.Favorites):
		return func() tea.Msg { return NavigateMsg{Screen: FavoritesScreen} }
	case key.Matches(msg, m.keyMap.Help):
		return func() tea.Msg { return NavigateMsg{Screen: HelpScreen} }
	}

	return nil
}

// submit sends the query box to the search controller. Pressing enter
// again for the query already in flight does nothing.
func (m *Search) submit() tea.Cmd {
	state := m.session.Search.State()
	if state.Status == domain.StatusLoading && stringutil.NormalizeQuery(m.input.Value()) == state.Text {
		return nil
	}

	fetch := m.session.Submit(m.input.Value())
	if fetch == nil {
		return nil
	}

	return tea.Batch(fetch, m.spinner.Tick)
}

func (m *Search) applyResults() tea.Cmd {
	if m.session.Search.State().Status != domain.StatusIdle {
		return nil
	}

	m.sections = m.session.Sections()
	m.sectionIdx, m.tileIdx = 0, 0
	m.viewport.GotoTop()

	if len(m.sections) > 0 {
		m.focusGrid()
	}

	return m.session.ProbeCmd(m.sections)
}

func (m *Search) applyToggle(msg FavoriteToggledMsg) {
	if msg.Err != nil {
		m.toast, m.toastErr = "favorite not saved: "+msg.Err.Error(), true

		return
	}

	m.session.Presenter.Refresh(m.sections)

	if msg.Favorite {
		m.toast, m.toastErr = "★ "+msg.Name, false
	} else {
		m.toast, m.toastErr = "☆ "+msg.Name, false
	}
}

func (m *Search) moveSection(delta int) {
	next := m.sectionIdx + delta
	if next < 0 || next >= len(m.sections) {
		return
	}

	m.sectionIdx = next
	m.tileIdx = min(m.tileIdx, len(m.sections[next].Tiles)-1)
}

func (m *Search) focusGrid() {
	m.focus = focusGrid
	m.input.Blur()
}

func (m *Search) focusInput() {
	m.focus = focusInput
	m.input.Focus()
}

func (m *Search) renderInput() string {
	border := m.styles.Border
	if m.focus != focusInput {
		border = border.BorderForeground(m.styles.Muted)
	}

	return border.Render(m.input.View())
}

func (m *Search) renderStatus() string {
	if m.toast != "" {
		if m.toastErr {
			return m.styles.ErrorText.Render(m.toast)
		}

		return m.styles.SuccessText.Render(m.toast)
	}

	state := m.session.Search.State()

	switch state.Status {
	case domain.StatusLoading:
		return m.spinner.View() + " " + m.styles.PrimaryText.Render("searching "+state.Text+"...")
	case domain.StatusError:
		return m.styles.StatusIcon("error") + " " + m.styles.ErrorText.Render(state.ErrorMessage) +
			m.styles.MutedText.Render("  [r] retry")
	case domain.StatusIdle:
	}

	if page, ok := m.session.Search.Page(); ok {
		return m.styles.MutedText.Render("Results for " + page.Query)
	}

	return ""
}

func (m *Search) footerActions() []FooterAction {
	if m.dialog.Visible() {
		return nil
	}

	if m.focus == focusInput {
		return []FooterAction{{"enter", "Search"}, {"esc", "Results"}, {"ctrl+c", "Quit"}}
	}

	return []FooterAction{
		{"←↑↓→", "Move"}, {"enter", "Details"}, {"f", "Favorite"}, {"a", "See all"},
		{"/", "Search"}, {"F", "Favorites"}, {"q", "Quit"},
	}
}

// refreshViewport re-renders the grid and keeps the selected section visible.
func (m *Search) refreshViewport() {
	if m.width > 0 && m.height > 0 {
		chrome := lipgloss.Height(m.styles.Logo()) + lipgloss.Height(m.renderInput()) + 1 +
			lipgloss.Height(RenderFooter(m.styles, m.width, m.footerActions(), true))
		m.viewport.Width = m.width
		m.viewport.Height = max(m.height-chrome, 3)
	}

	blocks := make([]string, 0, len(m.sections))
	selectedTop, selectedHeight := 0, 0

	for i, section := range m.sections {
		block := m.renderSection(i, section)
		if i == m.sectionIdx {
			selectedTop = lipgloss.Height(strings.Join(blocks, "\n"))
			if len(blocks) == 0 {
				selectedTop = 0
			}

			selectedHeight = lipgloss.Height(block)
		}

		blocks = append(blocks, block)
	}

	m.viewport.SetContent(strings.Join(blocks, "\n"))

	switch {
	case selectedTop < m.viewport.YOffset:
		m.viewport.SetYOffset(selectedTop)
	case selectedTop+selectedHeight > m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(selectedTop + selectedHeight - m.viewport.Height)
	}
}

func (m *Search) renderSection(index int, section application.CategorySection) string {
	header := m.styles.Subtitle.Render(section.Label) +
		m.styles.MutedText.Render("  "+section.SeeAll.Href())

	tileWidth := m.tileWidth()
	perRow := max((max(m.width, tileWidth)-gridPadding)/tileWidth, 1)

	var rows []string

	for start := 0; start < len(section.Tiles); start += perRow {
		end := min(start+perRow, len(section.Tiles))
		tiles := make([]string, 0, end-start)

		for i := start; i < end; i++ {
			selected := m.focus == focusGrid && index == m.sectionIdx && i == m.tileIdx
			tiles = append(tiles, m.renderTile(section.Tiles[i], selected, tileWidth))
		}

		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, tiles...))
	}

	block := lipgloss.JoinVertical(lipgloss.Left, append([]string{header}, rows...)...)

	if !m.session.Search.Current() {
		return lipgloss.NewStyle().Faint(true).Render(block)
	}

	return block
}

func (m *Search) renderTile(tile application.Tile, selected bool, width int) string {
	inner := width - 4

	name := stringutil.Truncate(tile.Name, inner-2) + " " + m.styles.FavoriteMark(tile.Favorite)
	reason := m.styles.MutedText.Render(stringutil.Truncate(tile.Reason, inner))

	style := m.styles.Tile
	if selected {
		style = m.styles.TileSelected
	}

	return style.Width(width - 2).Render(lipgloss.JoinVertical(lipgloss.Left,
		m.session.Images.Render(tile.Image, inner),
		name,
		reason,
	))
}

func (m *Search) tileWidth() int {
	if m.width <= 0 {
		return minTileWidth
	}

	return min(max((m.width-gridPadding)/application.DisplayLimit, minTileWidth), maxTileWidth)
}
