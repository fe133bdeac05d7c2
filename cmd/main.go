// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package main provides the CLI entry point for osusume.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/janderssonse/osusume/internal/cli"
	"github.com/janderssonse/osusume/internal/domain"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := cli.NewCLI()

	if err := app.Run(ctx, os.Args); err != nil {
		exitErr := &domain.ExitError{}
		if errors.As(err, &exitErr) {
			fmt.Fprintf(os.Stderr, "%s\n", exitErr.Message)

			return exitErr.Code
		}

		if errors.Is(err, context.Canceled) {
			return domain.ExitInterrupted
		}

		// urfave/cli reports flag parsing problems as plain errors.
		fmt.Fprintf(os.Stderr, "%v\n", err)

		return domain.ExitUsageError
	}

	return domain.ExitSuccess
}
