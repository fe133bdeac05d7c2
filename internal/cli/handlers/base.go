// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package handlers implements CLI command execution logic.
package handlers

import (
	"context"
	"errors"
	"io"
	"time"

	cliAdapter "github.com/janderssonse/osusume/internal/adapters/cli"
	"github.com/janderssonse/osusume/internal/domain"
)

// ResultWriter is the output port plus the structured results osusume prints.
type ResultWriter interface {
	domain.OutputPort
	SearchResult(result domain.SearchResult) error
	FavoritesResult(result domain.FavoritesResult) error
}

// BaseHandler provides common functionality for all command handlers.
type BaseHandler struct {
	Verbose bool
	JSON    bool
	Quiet   bool
	Timeout time.Duration
	Output  ResultWriter
}

// NewBaseHandler creates a base handler writing results to writer.
func NewBaseHandler(verbose, json, quiet bool, timeout time.Duration, writer io.Writer) *BaseHandler {
	format := cliAdapter.TextFormat
	if json {
		format = cliAdapter.JSONFormat
	}

	return &BaseHandler{
		Verbose: verbose,
		JSON:    json,
		Quiet:   quiet,
		Timeout: timeout,
		Output:  cliAdapter.NewOutputAdapterWithWriter(writer, format, quiet),
	}
}

// WithTimeout applies timeout to context if configured.
func (h *BaseHandler) WithTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if h.Timeout > 0 {
		return context.WithTimeout(ctx, h.Timeout)
	}

	return ctx, func() {}
}

// GetOutput returns the output port for CLI rendering.
func (h *BaseHandler) GetOutput() ResultWriter {
	if h.Output == nil {
		h.Output = cliAdapter.OutputFromContext(h.JSON, h.Quiet)
	}

	return h.Output
}

// Fail turns err into an ExitError carrying the user-facing message for it.
func (h *BaseHandler) Fail(code int, err error) error {
	var exitErr *domain.ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}

	return domain.NewExitError(code, domain.FormatErrorMessage(err, h.Verbose), err)
}

// ExitCodeFor picks the exit code that matches err.
func ExitCodeFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrEmptyQuery), errors.Is(err, domain.ErrInvalidItem):
		return domain.ExitUsageError
	case errors.Is(err, domain.ErrUnknownCategory), errors.Is(err, domain.ErrNotFavorite),
		errors.Is(err, domain.ErrUnknownItem):
		return domain.ExitNotFound
	case errors.Is(err, domain.ErrProviderFailure), errors.Is(err, domain.ErrNetworkFailure):
		return domain.ExitNetworkError
	case errors.Is(err, context.Canceled):
		return domain.ExitInterrupted
	default:
		return domain.ExitGeneralError
	}
}
