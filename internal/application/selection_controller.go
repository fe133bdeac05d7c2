// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package application

import "github.com/janderssonse/osusume/internal/domain"

// DialogPhase names the two states of the detail dialog.
type DialogPhase int

// Dialog phases.
const (
	DialogClosed DialogPhase = iota
	DialogOpen
)

// String implements fmt.Stringer.
func (p DialogPhase) String() string {
	if p == DialogOpen {
		return "open"
	}

	return "closed"
}

// dialog is the tagged selection state. An open dialog always holds an item.
type dialog interface {
	phase() DialogPhase
}

// dialogClosed may remember the last item so its content survives a fade-out.
type dialogClosed struct {
	last *domain.RecommendationItem
}

type dialogOpen struct {
	item domain.RecommendationItem
}

func (dialogClosed) phase() DialogPhase { return DialogClosed }
func (dialogOpen) phase() DialogPhase   { return DialogOpen }

// SelectionController is the sole mutator of the detail dialog state.
type SelectionController struct {
	state dialog
}

// NewSelectionController creates a controller in the closed state.
func NewSelectionController() *SelectionController {
	return &SelectionController{state: dialogClosed{}}
}

// Open shows item, replacing any current selection.
func (c *SelectionController) Open(item domain.RecommendationItem) error {
	if item.Name == "" {
		return domain.ErrInvalidItem
	}

	c.state = dialogOpen{item: item}

	return nil
}

// Close hides the dialog and keeps the selected item until the next Open.
func (c *SelectionController) Close() {
	if open, ok := c.state.(dialogOpen); ok {
		item := open.item
		c.state = dialogClosed{last: &item}
	}
}

// Phase returns the current dialog phase.
func (c *SelectionController) Phase() DialogPhase {
	return c.state.phase()
}

// Visible reports whether the dialog is open.
func (c *SelectionController) Visible() bool {
	return c.state.phase() == DialogOpen
}

// Selected returns the selected item, which is retained after Close.
func (c *SelectionController) Selected() (domain.RecommendationItem, bool) {
	switch s := c.state.(type) {
	case dialogOpen:
		return s.item, true
	case dialogClosed:
		if s.last != nil {
			return *s.last, true
		}
	}

	return domain.RecommendationItem{}, false
}

// State returns a snapshot of the selection.
func (c *SelectionController) State() domain.SelectionState {
	item, ok := c.Selected()
	if !ok {
		return domain.SelectionState{}
	}

	return domain.SelectionState{Selected: &item, Visible: c.Visible()}
}
