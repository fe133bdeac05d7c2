// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package models

import (
	"context"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/janderssonse/osusume/internal/adapters/imagery"
	"github.com/janderssonse/osusume/internal/application"
	"github.com/janderssonse/osusume/internal/domain"
)

// SessionOptions configures a Session.
type SessionOptions struct {
	Locale      string
	ReasonWidth int

	// Prober checks tile images after each search. Nil disables probing.
	Prober *imagery.Prober

	// Renderer draws images; a fresh one is created when nil.
	Renderer *imagery.Renderer

	// Clipboard defaults to the system clipboard.
	Clipboard func(text string) error
}

// Session is the per-run state shared by all screens. It is only touched
// from the Bubble Tea update loop.
//
//nolint:containedctx // provider calls started from Update need the program context
type Session struct {
	Ctx       context.Context
	Search    *application.SearchController
	Selection *application.SelectionController
	Presenter *application.ResultsPresenter
	Detail    *application.DetailView
	Favorites domain.FavoritesStore
	Images    *imagery.Renderer
	Prober    *imagery.Prober
	Clipboard func(text string) error
}

// NewSession wires the controllers around provider and favorites.
func NewSession(ctx context.Context, provider domain.RecommendationProvider,
	favorites domain.FavoritesStore, opts SessionOptions,
) *Session {
	search := application.NewSearchController(provider)
	selection := application.NewSelectionController()

	renderer := opts.Renderer
	if renderer == nil {
		renderer = imagery.NewRenderer()
	}

	copyText := opts.Clipboard
	if copyText == nil {
		copyText = clipboard.WriteAll
	}

	return &Session{
		Ctx:       ctx,
		Search:    search,
		Selection: selection,
		Presenter: application.NewResultsPresenter(domain.NewCategoryIndex(opts.Locale), favorites, selection, opts.ReasonWidth),
		Detail:    application.NewDetailView(selection, search, favorites),
		Favorites: favorites,
		Images:    renderer,
		Prober:    opts.Prober,
		Clipboard: copyText,
	}
}

// Submit starts a search for raw and returns the command that runs it.
// Validation failures are reflected in the search state and return nil.
func (s *Session) Submit(raw string) tea.Cmd {
	fetch, err := s.Search.Submit(s.Ctx, raw)
	if err != nil {
		return nil
	}

	return fetchCmd(fetch)
}

// Run starts a follow-up search for text, as triggered from the detail
// dialog or the favorites screen.
func (s *Session) Run(text string) tea.Cmd {
	fetch, err := s.Search.RunQuery(s.Ctx, text)
	if err != nil {
		return nil
	}

	return fetchCmd(fetch)
}

// Resolve applies a finished provider call. It reports whether the state changed.
func (s *Session) Resolve(msg FetchDoneMsg) bool {
	return s.Search.Resolve(msg.Completion)
}

// Sections presents the current page, if any.
func (s *Session) Sections() []application.CategorySection {
	page, ok := s.Search.Page()
	if !ok {
		return nil
	}

	return s.Presenter.Present(page)
}

// ProbeCmd checks the images of sections when probing is enabled.
func (s *Session) ProbeCmd(sections []application.CategorySection) tea.Cmd {
	if s.Prober == nil || len(sections) == 0 {
		return nil
	}

	var requests []imagery.Request

	for _, section := range sections {
		for _, tile := range section.Tiles {
			requests = append(requests, imagery.Request{Ref: tile.Image, Eager: tile.Eager})
		}
	}

	ctx := s.Ctx
	prober := s.Prober

	return func() tea.Msg {
		return ImagesProbedMsg{Failures: prober.Probe(ctx, requests)}
	}
}

// Toggle flips the favorite state of item.
func (s *Session) Toggle(item domain.RecommendationItem) tea.Cmd {
	return toggleCmd(s.Favorites, item)
}

// Copy puts text on the clipboard and reports the outcome as a toast.
func (s *Session) Copy(text string) tea.Cmd {
	copyText := s.Clipboard

	return func() tea.Msg {
		if err := copyText(text); err != nil {
			return ToastMsg{Text: "clipboard unavailable: " + err.Error(), Error: true}
		}

		return ToastMsg{Text: "copied " + text}
	}
}
