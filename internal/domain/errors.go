// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package domain

import (
	"errors"
	"fmt"
	"strings"
)

// User-facing messages carried in SearchQueryState.ErrorMessage.
const (
	MessageQueryRequired = "query required"
	MessageFetchFailed   = "fetch failed, retry"
)

// Common domain errors.
var (
	ErrEmptyQuery      = errors.New(MessageQueryRequired)
	ErrProviderFailure = errors.New("recommendation provider failed")
	ErrNoSelection     = errors.New("no item selected")
	ErrInvalidItem     = errors.New("item has no name")
	ErrUnknownCategory = errors.New("unknown category")
	ErrInvalidTarget   = errors.New("invalid navigation target")
	ErrNetworkFailure  = errors.New("network failure")
	ErrNotFavorite     = errors.New("not a favorite")
	ErrUnknownItem     = errors.New("item not found")
)

// Exit codes following Unix conventions.
const (
	ExitSuccess      = 0  // Command completed successfully
	ExitGeneralError = 1  // General errors
	ExitUsageError   = 2  // Invalid arguments/usage
	ExitConfigError  = 3  // Configuration issues
	ExitNotFound     = 5  // Category or favorite not found
	ExitNetworkError = 11 // Provider/network failures
	ExitInterrupted  = 14 // User Ctrl+C interrupt
)

// ExitError provides specific exit codes for different failure modes.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

// NewExitError creates an ExitError with the specified code and message.
func NewExitError(code int, message string, err error) *ExitError {
	return &ExitError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ErrorInfo provides user-friendly error information.
type ErrorInfo struct {
	Message     string   // User-friendly message
	Suggestions []string // Actionable suggestions
	ShowDetails bool     // Whether to show technical details
}

type errorMatcher struct {
	target   error
	patterns []string
	info     ErrorInfo
}

// getErrorMatchers returns sentinel errors and text patterns with their corresponding info.
func getErrorMatchers() []errorMatcher {
	return []errorMatcher{
		{
			target: ErrEmptyQuery,
			info: ErrorInfo{
				Message:     "Query required",
				Suggestions: []string{"Pass a keyword: osusume search <keyword>"},
			},
		},
		{
			target: ErrUnknownCategory,
			info: ErrorInfo{
				Message:     "Unknown category",
				Suggestions: []string{"Use one of: artists, celebrities, media, fashion"},
			},
		},
		{
			target:   ErrNetworkFailure,
			patterns: []string{"network", "connection", "timeout", "no such host", "circuit breaker"},
			info: ErrorInfo{
				Message:     "Network connection failed",
				Suggestions: []string{"Check your internet connection", "Try again in a few moments"},
			},
		},
		{
			target: ErrProviderFailure,
			info: ErrorInfo{
				Message:     "Fetch failed, retry",
				Suggestions: []string{"Try again in a few moments", "Check the provider endpoint: osusume config show"},
			},
		},
		{
			target:   ErrNotFavorite,
			patterns: []string{"not a favorite"},
			info: ErrorInfo{
				Message:     "Not in favorites",
				Suggestions: []string{"Use 'osusume favorites list' to see saved items"},
			},
		},
		{
			target: ErrUnknownItem,
			info: ErrorInfo{
				Message:     "Item not found",
				Suggestions: []string{"Check the exact name with 'osusume search <keyword>'"},
			},
		},
		{
			patterns: []string{"permission", "denied", "read-only"},
			info: ErrorInfo{
				Message:     "Permission denied",
				Suggestions: []string{"Check that the data directory is writable"},
			},
		},
	}
}

// GetErrorInfo analyzes an error and returns user-friendly information.
func GetErrorInfo(err error, verbose bool) ErrorInfo {
	if err == nil {
		return ErrorInfo{}
	}

	errStr := strings.ToLower(err.Error())

	for _, matcher := range getErrorMatchers() {
		if matcher.target != nil && errors.Is(err, matcher.target) {
			return withDetails(matcher.info, verbose)
		}

		for _, pattern := range matcher.patterns {
			if strings.Contains(errStr, pattern) {
				return withDetails(matcher.info, verbose)
			}
		}
	}

	// Generic error - show details in verbose mode
	return ErrorInfo{
		Message:     "Operation failed",
		Suggestions: []string{"Run with --verbose for more details"},
		ShowDetails: verbose,
	}
}

func withDetails(info ErrorInfo, verbose bool) ErrorInfo {
	info.ShowDetails = verbose

	return info
}

// FormatErrorMessage formats an error for display.
func FormatErrorMessage(err error, verbose bool) string {
	info := GetErrorInfo(err, verbose)

	var result strings.Builder

	result.WriteString("✗ ")
	result.WriteString(info.Message)

	if info.ShowDetails && err != nil {
		result.WriteString("\n  Technical details: ")
		result.WriteString(err.Error())
	}

	switch {
	case len(info.Suggestions) > 0 && !verbose:
		result.WriteString(" (")
		result.WriteString(info.Suggestions[0])
		result.WriteString(")")
	case len(info.Suggestions) > 0:
		result.WriteString("\n  Suggestions:")

		for _, suggestion := range info.Suggestions {
			result.WriteString("\n    • ")
			result.WriteString(suggestion)
		}
	}

	return result.String()
}
