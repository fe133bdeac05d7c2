// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package cli provides the osusume command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"time"

	"github.com/janderssonse/osusume/internal/adapters/favorites"
	"github.com/janderssonse/osusume/internal/adapters/imagery"
	"github.com/janderssonse/osusume/internal/adapters/network"
	"github.com/janderssonse/osusume/internal/adapters/provider"
	"github.com/janderssonse/osusume/internal/cli/handlers"
	"github.com/janderssonse/osusume/internal/config"
	"github.com/janderssonse/osusume/internal/console"
	"github.com/janderssonse/osusume/internal/domain"
	"github.com/janderssonse/osusume/internal/platform"
	"github.com/janderssonse/osusume/internal/tui"
	"github.com/janderssonse/osusume/internal/tui/models"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// Version is set at build time with -ldflags "-X ...cli.Version=v1.2.3".
var Version = "dev" //nolint:gochecknoglobals

// ErrInvalidArgument is returned when a command argument is invalid.
var ErrInvalidArgument = errors.New("invalid argument")

// Launcher starts the interactive interface.
type Launcher func(ctx context.Context, session *models.Session, initialQuery string) error

// CLI wires configuration, adapters and handlers behind urfave/cli commands.
type CLI struct {
	app        *cli.Command
	verbose    bool
	json       bool
	quiet      bool
	plain      bool
	color      string        // "auto", "always", "never"
	timeout    time.Duration // Provider call timeout
	configPath string
	yes        bool // Auto-accept all prompts

	stdout      io.Writer
	stderr      io.Writer
	getenv      func(string) string
	output      *console.OutputState
	prompter    Prompter
	interactive func() bool
	launch      Launcher
}

// NewCLI creates the osusume command tree.
func NewCLI() *CLI {
	app := &CLI{
		stdout:      os.Stdout,
		stderr:      os.Stderr,
		getenv:      os.Getenv,
		prompter:    huhPrompter{},
		interactive: stdinIsTerminal,
		launch:      tui.LaunchInteractive,
	}
	app.output = &console.OutputState{Out: app.stdout, Err: app.stderr}

	app.app = &cli.Command{
		Name:    "osusume",
		Usage:   "Browse recommendations for artists, celebrities, media and fashion",
		Version: getVersion(),
		Suggest: true,
		Description: `Type a keyword and get recommendations grouped into four categories.

ESSENTIAL COMMANDS:
  osusume                          Launch the interactive browser
  search <keyword>                 Print recommendations
  favorites list                   Show saved items

QUICK START:
  osusume search YOASOBI
  osusume search --category fashion UNIQLO
  osusume tui --query 鬼滅の刃

CONFIGURATION:
  osusume config init              Write the default config file
  osusume config show              Print the effective configuration`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "verbose",
				Usage:       "show progress messages to stderr",
				Aliases:     []string{"v"},
				Destination: &app.verbose,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output structured JSON results",
				Aliases:     []string{"j"},
				Destination: &app.json,
			},
			&cli.BoolFlag{
				Name:        "quiet",
				Usage:       "suppress non-essential output",
				Aliases:     []string{"q"},
				Destination: &app.quiet,
			},
			&cli.BoolFlag{
				Name:        "plain",
				Usage:       "output plain text without formatting for scripts",
				Destination: &app.plain,
			},
			&cli.StringFlag{
				Name:        "color",
				Usage:       "color output mode: auto, always, never",
				Value:       console.ColorAuto,
				Destination: &app.color,
			},
			&cli.DurationFlag{
				Name:        "timeout",
				Usage:       "timeout for provider calls (0 = use the configured timeout)",
				Destination: &app.timeout,
			},
			&cli.StringFlag{
				Name:        "config",
				Usage:       "path to config.toml",
				Aliases:     []string{"c"},
				Destination: &app.configPath,
			},
			&cli.BoolFlag{
				Name:        "yes",
				Aliases:     []string{"y"},
				Usage:       "automatically answer yes to all prompts",
				Destination: &app.yes,
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			return app.initConfig(ctx, cmd)
		},
		Action:   app.defaultAction,
		Commands: app.createAllCommands(),
	}

	return app
}

// Run executes the CLI application.
func (app *CLI) Run(ctx context.Context, args []string) error {
	app.app.Writer = app.stdout
	app.app.ErrWriter = app.stderr
	app.output.Out = app.stdout
	app.output.Err = app.stderr

	return app.app.Run(ctx, args)
}

// App returns the root command.
func App() *cli.Command {
	return NewCLI().app
}

// defaultAction launches the TUI when no command is given.
func (app *CLI) defaultAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Present() {
		app.output.Errorf("'%s' is not a command.", cmd.Args().First())
		_, _ = fmt.Fprintf(app.stderr, "\nRun 'osusume --help' to see available commands.\n")

		return domain.NewExitError(domain.ExitUsageError, "unknown command "+cmd.Args().First(), ErrInvalidArgument)
	}

	return app.runTUI(ctx, "")
}

// initConfig validates global flags and configures diagnostics output.
func (app *CLI) initConfig(ctx context.Context, _ *cli.Command) (context.Context, error) {
	if app.json && app.plain {
		return ctx, domain.NewExitError(domain.ExitUsageError, "cannot use both --json and --plain flags simultaneously", nil)
	}

	switch app.color {
	case console.ColorAuto, console.ColorAlways, console.ColorNever:
	default:
		return ctx, domain.NewExitError(domain.ExitUsageError, "invalid --color value: must be auto, always, or never", nil)
	}

	if app.timeout < 0 {
		return ctx, domain.NewExitError(domain.ExitUsageError, "--timeout must not be negative", nil)
	}

	app.output.SetMode(app.verbose, app.json, app.plain)
	app.output.Quiet = app.quiet
	app.output.Color = app.color

	return ctx, nil
}

// loadConfig reads the config file selected by --config.
func (app *CLI) loadConfig() (config.Config, error) {
	path := config.Path(app.configPath, nil)

	cfg, err := config.LoadWithEnv(path, app.getenv)
	if err != nil {
		return cfg, domain.NewExitError(domain.ExitConfigError, "Configuration error in "+path, err)
	}

	app.output.Progressf("config: %s (provider %s, favorites %s)", path, cfg.Provider.Kind, cfg.Favorites.Backend)

	return cfg, nil
}

// openProvider builds the configured provider. Breaker transitions are
// reported in verbose mode.
func (app *CLI) openProvider(cfg config.Config) (domain.RecommendationProvider, error) {
	recommendations, err := provider.New(cfg, func(name, from, to string) {
		app.output.Progressf("%s: circuit %s -> %s", name, from, to)
	})
	if err != nil {
		return nil, domain.NewExitError(domain.ExitConfigError, "Failed to set up the recommendation provider", err)
	}

	if cfg.Provider.Kind == config.ProviderHTTP {
		if proxy := platform.ProxyForURL(cfg.Provider.Endpoint); proxy != "" {
			app.output.Progressf("provider: %s via proxy %s", cfg.Provider.Endpoint, proxy)
		}
	}

	return recommendations, nil
}

// openStore opens the configured favorites store.
func (app *CLI) openStore(cfg config.Config) (favorites.Store, error) {
	store, err := favorites.Open(cfg)
	if err != nil {
		return nil, domain.NewExitError(domain.ExitGeneralError, "Failed to open favorites", err)
	}

	return store, nil
}

func (app *CLI) closeStore(store favorites.Store) {
	if err := store.Close(); err != nil {
		app.output.Warningf("failed to close favorites: %v", err)
	}
}

// baseHandler builds the shared handler state. --timeout overrides the
// configured provider timeout.
func (app *CLI) baseHandler(cfg config.Config) *handlers.BaseHandler {
	timeout := app.timeout
	if timeout == 0 {
		timeout = cfg.Provider.Timeout.Duration
	}

	return handlers.NewBaseHandler(app.verbose, app.json, app.quiet, timeout, app.stdout)
}

// runTUI opens the adapters and hands them to the interactive interface.
func (app *CLI) runTUI(ctx context.Context, query string) error {
	cfg, err := app.loadConfig()
	if err != nil {
		return err
	}

	recommendations, err := app.openProvider(cfg)
	if err != nil {
		return err
	}

	store, err := app.openStore(cfg)
	if err != nil {
		return err
	}
	defer app.closeStore(store)

	renderer := imagery.NewRenderer()

	var prober *imagery.Prober
	if cfg.UI.ProbeImages {
		prober = imagery.NewProber(network.NewHTTPClient(cfg.UI.ProbeTimeout.Duration), renderer)
	}

	session := models.NewSession(ctx, recommendations, store, models.SessionOptions{
		Locale:      cfg.UI.Locale,
		ReasonWidth: cfg.UI.ReasonWidth,
		Prober:      prober,
		Renderer:    renderer,
	})

	if err := app.launch(ctx, session, query); err != nil {
		if app.verbose {
			return domain.NewExitError(domain.ExitGeneralError, fmt.Sprintf("Failed to launch TUI: %v", err), err)
		}

		return domain.NewExitError(domain.ExitGeneralError, "Failed to launch interactive interface (terminal required)", err)
	}

	return nil
}

// getVersion returns the linked version, or the module version when built
// with go install.
func getVersion() string {
	if Version != "dev" {
		return Version
	}

	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}

	return Version
}

func stdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) //nolint:gosec // file descriptors fit in int
}
