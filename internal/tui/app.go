// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package tui runs the interactive osusume interface.
package tui

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/janderssonse/osusume/internal/domain"
	"github.com/janderssonse/osusume/internal/tui/models"
	"github.com/janderssonse/osusume/internal/tui/styles"
	"golang.org/x/term"
)

// ErrNoTerminal is returned when the TUI is launched in a non-terminal environment.
var ErrNoTerminal = errors.New("TUI requires a terminal environment")

// Screen represents different TUI screens.
type Screen int

// Define screen constants (use models constants for compatibility).
const (
	SearchScreen    Screen = Screen(models.SearchScreen)
	CategoryScreen  Screen = Screen(models.CategoryScreen)
	FavoritesScreen Screen = Screen(models.FavoritesScreen)
	HelpScreen      Screen = Screen(models.HelpScreen)
)

// helpPreloadedMsg is sent when help content has been pre-rendered.
type helpPreloadedMsg struct {
	model tea.Model
}

// App represents the main TUI application following tree-of-models pattern.
// It owns the session and routes messages to the current screen model.
type App struct {
	width         int
	height        int
	styles        *styles.Styles
	session       *models.Session
	currentScreen Screen
	contentModel  tea.Model
	models        map[Screen]tea.Model // Cache of initialized models

	quitting bool
}

// NewApp creates the application on the search screen. A non-empty
// initialQuery is searched immediately.
func NewApp(session *models.Session, initialQuery string) *App {
	app := &App{
		styles:        styles.New(),
		session:       session,
		currentScreen: SearchScreen,
		models:        make(map[Screen]tea.Model),
	}

	search := models.NewSearch(app.styles, session, initialQuery)
	app.contentModel = search
	app.models[SearchScreen] = search

	return app
}

// Run starts the TUI application with the provided context.
func (a *App) Run(ctx context.Context) error {
	program := tea.NewProgram(
		a,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("TUI application failed: %w", err)
	}

	return nil
}

// Init implements the tea.Model interface.
func (a *App) Init() tea.Cmd {
	preloadCmd := func() tea.Msg {
		return helpPreloadedMsg{model: models.NewHelp(a.styles)}
	}

	return tea.Batch(a.contentModel.Init(), preloadCmd)
}

// Update implements the tea.Model interface with global navigation handling.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case helpPreloadedMsg:
		if _, exists := a.models[HelpScreen]; !exists {
			a.models[HelpScreen] = msg.model
		}

		return a, nil
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

		return a, a.forward(msg)
	case models.NavigateMsg:
		return a.handleNavigation(msg)
	case models.FetchDoneMsg:
		if !a.session.Resolve(msg) {
			return a, nil
		}

		return a, a.broadcast(models.ResultsUpdatedMsg{})
	case models.FavoriteToggledMsg:
		return a, a.broadcast(msg)
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			a.quitting = true

			return a, tea.Quit
		}

		return a, a.forward(msg)
	default:
		return a, a.forward(msg)
	}
}

// View implements the tea.Model interface.
func (a *App) View() string {
	if a.quitting {
		return models.GoodbyeMessage
	}

	return a.contentModel.View()
}

// GetCurrentScreen returns the current screen (for testing).
func (a *App) GetCurrentScreen() Screen {
	return a.currentScreen
}

// GetContentModel returns the current content model (for testing).
func (a *App) GetContentModel() tea.Model {
	return a.contentModel
}

// Session returns the shared session.
func (a *App) Session() *models.Session {
	return a.session
}

// LaunchInteractive starts the interactive TUI interface.
func LaunchInteractive(ctx context.Context, session *models.Session, initialQuery string) error {
	if !isTerminal() {
		return fmt.Errorf("terminal check failed: %w", ErrNoTerminal)
	}

	return NewApp(session, initialQuery).Run(ctx)
}

// forward sends msg to the current screen.
func (a *App) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	a.contentModel, cmd = a.contentModel.Update(msg)
	a.models[a.currentScreen] = a.contentModel

	return cmd
}

// broadcast sends msg to the search screen and, when another screen is
// showing, to that screen too.
func (a *App) broadcast(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd

	if a.currentScreen != SearchScreen {
		if search, ok := a.models[SearchScreen]; ok {
			updated, cmd := search.Update(msg)
			a.models[SearchScreen] = updated
			cmds = append(cmds, cmd)
		}
	}

	cmds = append(cmds, a.forward(msg))

	return tea.Batch(cmds...)
}

// handleNavigation handles navigation messages between screens.
//
//nolint:ireturn // Bubble Tea framework requires returning tea.Model interface
func (a *App) handleNavigation(msg models.NavigateMsg) (tea.Model, tea.Cmd) {
	target := Screen(msg.Screen)

	// Listings and favorites are rebuilt on every visit so they reflect the
	// current page and store.
	if target == CategoryScreen || target == FavoritesScreen {
		delete(a.models, target)
	}

	model, cached := a.models[target]
	if !cached {
		model = a.createModelForScreen(target, msg.Data)
		a.models[target] = model
	}

	a.currentScreen = target
	a.contentModel = model

	var cmds []tea.Cmd

	if !cached {
		cmds = append(cmds, model.Init())
	} else if msg.Data != nil {
		cmds = append(cmds, a.forward(msg))
	}

	if a.width > 0 && a.height > 0 {
		cmds = append(cmds, a.forward(tea.WindowSizeMsg{Width: a.width, Height: a.height}))
	}

	return a, tea.Batch(cmds...)
}

// createModelForScreen creates a new model based on the screen type.
//
//nolint:ireturn // Bubble Tea framework requires returning tea.Model interface
func (a *App) createModelForScreen(screen Screen, data any) tea.Model {
	switch screen {
	case CategoryScreen:
		target, _ := data.(domain.Target)

		return models.NewCategory(a.styles, a.session, target)
	case FavoritesScreen:
		return models.NewFavorites(a.styles, a.session)
	case HelpScreen:
		return models.NewHelp(a.styles)
	case SearchScreen:
		return models.NewSearch(a.styles, a.session, "")
	default:
		return models.NewSearch(a.styles, a.session, "")
	}
}

// isTerminal checks if stdout is connected to a terminal.
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd())) //nolint:gosec // file descriptors fit in int
}
