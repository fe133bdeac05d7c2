// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package models

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/janderssonse/osusume/internal/domain"
	"github.com/janderssonse/osusume/internal/testutil"
)

// collect runs cmd and flattens batches into the messages they produce.
// Timer commands are never returned from the paths under test.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}

	msg := cmd()

	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, c := range batch {
			msgs = append(msgs, collect(c)...)
		}

		return msgs
	}

	return []tea.Msg{msg}
}

func findMsg[T any](msgs []tea.Msg) (T, bool) {
	for _, msg := range msgs {
		if typed, ok := msg.(T); ok {
			return typed, true
		}
	}

	var zero T

	return zero, false
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func typeText(m tea.Model, text string) tea.Model {
	for _, r := range text {
		m, _ = m.Update(keyRune(r))
	}

	return m
}

// resolveAll applies every FetchDoneMsg in msgs the way the App does and
// returns the messages a screen would receive next.
func resolveAll(session *Session, msgs []tea.Msg) []tea.Msg {
	var next []tea.Msg

	for _, msg := range msgs {
		if done, ok := msg.(FetchDoneMsg); ok && session.Resolve(done) {
			next = append(next, ResultsUpdatedMsg{})
		}
	}

	return next
}

func sampleSet() *domain.RecommendationSet {
	return testutil.SetOf(domain.RecommendationSet{
		domain.CategoryArtists:     testutil.Items("artist", 7),
		domain.CategoryCelebrities: testutil.Items("celeb", 2),
		domain.CategoryMedia:       nil,
		domain.CategoryFashion:     testutil.Items("brand", 1),
	})
}
