// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package models

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/janderssonse/osusume/internal/application"
	"github.com/janderssonse/osusume/internal/tui/styles"
)

const (
	detailWrap       = 60
	detailImageWidth = 24
)

// DetailKeyMap defines key bindings for the detail dialog.
type DetailKeyMap struct {
	Search   key.Binding
	Favorite key.Binding
	Copy     key.Binding
	Close    key.Binding
}

// DefaultDetailKeyMap returns the default key bindings.
func DefaultDetailKeyMap() DetailKeyMap {
	return DetailKeyMap{
		Search: key.NewBinding(
			key.WithKeys("enter", "s"),
			key.WithHelp("enter/s", "search this"),
		),
		Favorite: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "favorite"),
		),
		Copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy URL"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc", "backspace"),
			key.WithHelp("esc", "close"),
		),
	}
}

// DetailDialog shows the selected item over the current screen.
type DetailDialog struct {
	styles   *styles.Styles
	session  *Session
	renderer *glamour.TermRenderer
	keyMap   DetailKeyMap
	width    int
}

// NewDetailDialog creates the dialog for session's selection.
func NewDetailDialog(styleConfig *styles.Styles, session *Session) *DetailDialog {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(detailWrap),
	)
	if err != nil {
		renderer, _ = glamour.NewTermRenderer()
	}

	return &DetailDialog{
		styles:   styleConfig,
		session:  session,
		renderer: renderer,
		keyMap:   DefaultDetailKeyMap(),
	}
}

// Visible reports whether the dialog is open.
func (d *DetailDialog) Visible() bool {
	return d.session.Selection.Visible()
}

// SetWidth sets the available width.
func (d *DetailDialog) SetWidth(width int) {
	d.width = width
}

// Update handles a key while the dialog is open.
func (d *DetailDialog) Update(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, d.keyMap.Close):
		d.session.Selection.Close()

		return nil
	case key.Matches(msg, d.keyMap.Search):
		fetch, target, err := d.session.Detail.ConfirmSearch(d.session.Ctx)
		if err != nil {
			return toast(err.Error(), true)
		}

		return tea.Batch(fetchCmd(fetch), NavigateTo(target))
	case key.Matches(msg, d.keyMap.Favorite):
		detail, err := d.session.Detail.Render()
		if err != nil {
			return nil
		}

		return d.session.Toggle(detail.Item)
	case key.Matches(msg, d.keyMap.Copy):
		detail, err := d.session.Detail.Render()
		if err != nil || detail.OfficialURL == "" {
			return nil
		}

		return d.session.Copy(detail.OfficialURL)
	}

	return nil
}

// View renders the dialog, or nothing when it is closed.
func (d *DetailDialog) View() string {
	detail, err := d.session.Detail.Render()
	if err != nil {
		return ""
	}

	body, err := d.renderer.Render(detailMarkdown(detail))
	if err != nil {
		body = detailMarkdown(detail)
	}

	title := d.styles.Title.Render(detail.Name) + " " + d.styles.FavoriteMark(detail.Favorite)
	image := d.session.Images.Render(detail.Image, detailImageWidth)

	content := lipgloss.JoinVertical(lipgloss.Left,
		title,
		image,
		strings.TrimRight(body, "\n"),
		d.hints(),
	)

	style := d.styles.Modal
	if d.width > 0 {
		style = style.MaxWidth(d.width)
	}

	return style.Render(content)
}

func (d *DetailDialog) hints() string {
	bindings := []key.Binding{d.keyMap.Search, d.keyMap.Favorite, d.keyMap.Copy, d.keyMap.Close}

	parts := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		parts = append(parts, d.styles.Keybinding(binding.Help().Key, binding.Help().Desc))
	}

	return strings.Join(parts, "  ")
}

// detailMarkdown lists the reason, every feature and the official site label.
func detailMarkdown(detail application.Detail) string {
	var builder strings.Builder

	builder.WriteString(detail.Reason)
	builder.WriteString("\n\n")

	if len(detail.Features) > 0 {
		builder.WriteString("## 特徴\n\n")

		for _, feature := range detail.Features {
			builder.WriteString("- ")
			builder.WriteString(feature)
			builder.WriteString("\n")
		}

		builder.WriteString("\n")
	}

	if detail.OfficialLabel != "" {
		builder.WriteString("**公式サイト** ")
		builder.WriteString(detail.OfficialLabel)
		builder.WriteString("\n")
	}

	return builder.String()
}

func toast(text string, isError bool) tea.Cmd {
	return func() tea.Msg {
		return ToastMsg{Text: text, Error: isError}
	}
}
