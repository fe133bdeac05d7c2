// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package cli

import (
	"errors"

	"github.com/charmbracelet/huh"
	"github.com/janderssonse/osusume/internal/domain"
	"github.com/janderssonse/osusume/internal/stringutil"
	"github.com/janderssonse/osusume/internal/tui/models"
)

// Prompter asks the user for input on a terminal.
type Prompter interface {
	Keyword() (string, error)
	Confirm(question string) (bool, error)
}

// huhPrompter prompts with huh forms.
type huhPrompter struct{}

// Keyword asks for a search keyword and rejects blank input.
func (huhPrompter) Keyword() (string, error) {
	var keyword string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("◈ おすすめを探す").
				Description("Artist, celebrity, title or brand").
				Placeholder(models.SearchPlaceholder).
				Validate(func(text string) error {
					if stringutil.NormalizeQuery(text) == "" {
						return domain.ErrEmptyQuery
					}

					return nil
				}).
				Value(&keyword),
		),
	)

	if err := form.Run(); err != nil {
		return "", err
	}

	return keyword, nil
}

// Confirm asks a yes/no question.
func (huhPrompter) Confirm(question string) (bool, error) {
	var confirmed bool

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(question).
				Affirmative("Yes").
				Negative("No").
				Value(&confirmed),
		),
	)

	if err := form.Run(); err != nil {
		return false, err
	}

	return confirmed, nil
}

// canPrompt reports whether questions may be asked. Scripted output modes
// never prompt.
func (app *CLI) canPrompt() bool {
	return !app.json && !app.plain && app.interactive()
}

func promptError(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		return domain.NewExitError(domain.ExitInterrupted, "Cancelled", err)
	}

	return domain.NewExitError(domain.ExitGeneralError, "Prompt failed", err)
}
