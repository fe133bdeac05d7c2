// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package cli provides output adapters for CLI operations.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/janderssonse/osusume/internal/domain"
	"github.com/janderssonse/osusume/internal/stringutil"
	"github.com/mattn/go-runewidth"
)

var (
	// ErrUnsupportedFormat is returned when an unsupported output format is requested.
	ErrUnsupportedFormat = errors.New("unsupported output format")
)

const (
	favoriteMark = "★"
	columnGap    = 2
)

// OutputAdapter implements domain.OutputPort for CLI output.
type OutputAdapter struct {
	writer      io.Writer
	format      OutputFormat
	quiet       bool
	reasonWidth int // 0 prints reasons in full
}

// OutputFormat represents the output format type.
type OutputFormat int

const (
	// TextFormat outputs human-readable text.
	TextFormat OutputFormat = iota
	// JSONFormat outputs machine-readable JSON.
	JSONFormat
)

// NewOutputAdapter creates a new output adapter with the specified configuration.
func NewOutputAdapter(format OutputFormat, quiet bool) *OutputAdapter {
	return NewOutputAdapterWithWriter(os.Stdout, format, quiet)
}

// NewOutputAdapterWithWriter creates a new output adapter with a custom writer for testing.
func NewOutputAdapterWithWriter(writer io.Writer, format OutputFormat, quiet bool) *OutputAdapter {
	return &OutputAdapter{
		writer: writer,
		format: format,
		quiet:  quiet,
	}
}

// SetReasonWidth truncates reasons in text tables to width cells.
func (o *OutputAdapter) SetReasonWidth(width int) {
	o.reasonWidth = width
}

// Success outputs a success message with optional structured data.
func (o *OutputAdapter) Success(message string, data any) error {
	if o.quiet && data == nil {
		return nil
	}

	if o.format == JSONFormat && data != nil {
		return o.outputJSON(data)
	}

	if message != "" && !o.quiet {
		_, _ = fmt.Fprintln(o.writer, message)
	}

	return nil
}

// Error outputs an error message.
func (o *OutputAdapter) Error(message string) error {
	if o.quiet {
		return nil
	}

	if o.format == JSONFormat {
		return o.outputJSON(map[string]string{"error": message})
	}

	_, _ = fmt.Fprintf(o.writer, "Error: %s\n", message)

	return nil
}

// Info outputs an informational message.
func (o *OutputAdapter) Info(message string) error {
	if o.quiet {
		return nil
	}

	if o.format == JSONFormat {
		return o.outputJSON(map[string]string{"info": message})
	}

	_, _ = fmt.Fprintln(o.writer, message)

	return nil
}

// Progress outputs progress information for long-running operations.
func (o *OutputAdapter) Progress(message string) error {
	if o.quiet || o.format == JSONFormat {
		return nil
	}

	_, _ = fmt.Fprintf(o.writer, "\r%s", message)

	return nil
}

// Table outputs tabular data. Columns are aligned by display width so
// wide (CJK) text lines up.
func (o *OutputAdapter) Table(headers []string, rows [][]string) error {
	if o.quiet {
		return nil
	}

	if o.format == JSONFormat {
		return o.outputJSON(map[string]any{
			"headers": headers,
			"rows":    rows,
		})
	}

	widths := make([]int, len(headers))
	for i, header := range headers {
		widths[i] = runewidth.StringWidth(header)
	}

	for _, row := range rows {
		for i := range min(len(row), len(widths)) {
			widths[i] = max(widths[i], runewidth.StringWidth(row[i]))
		}
	}

	separators := make([]string, len(headers))
	for i := range headers {
		separators[i] = strings.Repeat("-", runewidth.StringWidth(headers[i]))
	}

	o.writeRow(widths, headers)
	o.writeRow(widths, separators)

	for _, row := range rows {
		o.writeRow(widths, row)
	}

	return nil
}

// IsQuiet returns true if output should be suppressed.
func (o *OutputAdapter) IsQuiet() bool {
	return o.quiet
}

// SearchResult prints a search outcome: one table per non-empty category
// followed by its "see all" target.
func (o *OutputAdapter) SearchResult(result domain.SearchResult) error {
	if o.format == JSONFormat {
		return o.outputJSON(result)
	}

	if o.quiet {
		for _, category := range result.Categories {
			for _, item := range category.Items {
				_, _ = fmt.Fprintln(o.writer, item.Name)
			}
		}

		return nil
	}

	if len(result.Categories) == 0 {
		_, _ = fmt.Fprintf(o.writer, "No recommendations for %q\n", result.Query)

		return nil
	}

	for i, category := range result.Categories {
		if i > 0 {
			_, _ = fmt.Fprintln(o.writer)
		}

		_, _ = fmt.Fprintf(o.writer, "%s (%d)\n", category.Label, len(category.Items))

		if err := o.Table([]string{"", "NAME", "REASON"}, o.itemRows(category.Items)); err != nil {
			return err
		}

		_, _ = fmt.Fprintf(o.writer, "see all: %s\n", category.SeeAll)
	}

	return nil
}

// FavoritesResult prints the stored favorites.
func (o *OutputAdapter) FavoritesResult(result domain.FavoritesResult) error {
	if o.format == JSONFormat {
		return o.outputJSON(result)
	}

	if o.quiet {
		for _, item := range result.Favorites {
			_, _ = fmt.Fprintln(o.writer, item.Name)
		}

		return nil
	}

	if result.Total == 0 {
		_, _ = fmt.Fprintln(o.writer, "No favorites yet")

		return nil
	}

	rows := make([][]string, 0, len(result.Favorites))
	for _, item := range result.Favorites {
		rows = append(rows, []string{item.Name, item.Reason, item.OfficialURL})
	}

	return o.Table([]string{"NAME", "REASON", "URL"}, rows)
}

func (o *OutputAdapter) itemRows(items []domain.ItemResult) [][]string {
	rows := make([][]string, 0, len(items))

	for _, item := range items {
		mark := ""
		if item.Favorite {
			mark = favoriteMark
		}

		reason := stringutil.OneLine(item.Reason)
		if o.reasonWidth > 0 {
			reason = stringutil.Truncate(reason, o.reasonWidth)
		}

		rows = append(rows, []string{mark, item.Name, reason})
	}

	return rows
}

func (o *OutputAdapter) writeRow(widths []int, cells []string) {
	var line strings.Builder

	for i, cell := range cells {
		if i == len(cells)-1 || i >= len(widths) {
			line.WriteString(cell)

			break
		}

		line.WriteString(runewidth.FillRight(cell, widths[i]+columnGap))
	}

	_, _ = fmt.Fprintln(o.writer, strings.TrimRight(line.String(), " "))
}

// outputJSON outputs data as JSON.
func (o *OutputAdapter) outputJSON(data any) error {
	encoder := json.NewEncoder(o.writer)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)

	return encoder.Encode(data)
}

// ParseOutputFormat parses a string into an OutputFormat.
func ParseOutputFormat(format string) (OutputFormat, error) {
	switch strings.ToLower(format) {
	case "", "text":
		return TextFormat, nil
	case "json":
		return JSONFormat, nil
	default:
		return TextFormat, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// OutputFromContext creates an OutputAdapter from CLI context flags.
func OutputFromContext(jsonFlag, quietFlag bool) *OutputAdapter {
	format := TextFormat
	if jsonFlag {
		format = JSONFormat
	}

	return NewOutputAdapter(format, quietFlag)
}
