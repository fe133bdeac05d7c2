// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/janderssonse/osusume/internal/cli/handlers"
	"github.com/janderssonse/osusume/internal/config"
	"github.com/janderssonse/osusume/internal/domain"
	"github.com/urfave/cli/v3"
)

// createAllCommands returns the command tree below the root.
func (app *CLI) createAllCommands() []*cli.Command {
	return []*cli.Command{
		app.createTUICommand(),
		app.createSearchCommand(),
		app.createFavoritesCommand(),
		app.createConfigCommand(),
		app.createVersionCommand(),
	}
}

// createTUICommand creates the interactive TUI command.
func (app *CLI) createTUICommand() *cli.Command {
	return &cli.Command{
		Name:  "tui",
		Usage: "Launch the interactive browser",
		Description: `Launch the interactive browser.

Navigation:
- Type a keyword and press Enter to search
- Use arrow keys or h/j/k/l to move between tiles
- Press Enter to open an item, f to mark it as a favorite
- Press ? for help, Ctrl+C to quit`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "query",
				Usage: "search for this keyword on start",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return app.runTUI(ctx, cmd.String("query"))
		},
	}
}

// createSearchCommand creates the one-shot search command.
func (app *CLI) createSearchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Print recommendations for a keyword",
		ArgsUsage: "[keyword...]",
		Description: `Fetch recommendations and print up to five items per category.

With --category only that category is printed, with every item.
Without a keyword on a terminal you are prompted for one.

Examples:
  osusume search YOASOBI
  osusume search --category media 鬼滅の刃
  osusume --json search UNIQLO`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "category",
				Usage: "only list this category: artists, celebrities, media, fashion",
			},
		},
		Action: app.runSearch,
	}
}

func (app *CLI) runSearch(ctx context.Context, cmd *cli.Command) error {
	keyword := strings.Join(cmd.Args().Slice(), " ")

	if strings.TrimSpace(keyword) == "" && app.canPrompt() {
		prompted, err := app.prompter.Keyword()
		if err != nil {
			return promptError(err)
		}

		keyword = prompted
	}

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

	app.output.Progressf("searching %q", keyword)

	handler := handlers.NewSearchHandler(app.baseHandler(cfg), recommendations, store, cfg.UI.Locale, cfg.UI.ReasonWidth)
	handler.Warnf = app.output.Warningf

	return handler.Search(ctx, keyword, cmd.String("category"))
}

// createFavoritesCommand creates the favorites management commands.
func (app *CLI) createFavoritesCommand() *cli.Command {
	return &cli.Command{
		Name:    "favorites",
		Aliases: []string{"fav"},
		Usage:   "Manage saved items",
		Action:  app.withFavorites(func(_ context.Context, _ *cli.Command, h *handlers.FavoritesHandler) error { return h.List() }),
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List saved items",
				Action: app.withFavorites(func(_ context.Context, _ *cli.Command, h *handlers.FavoritesHandler) error { return h.List() }),
			},
			{
				Name:      "toggle",
				Usage:     "Add an item, or remove it when it is already saved",
				ArgsUsage: "<name>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "query",
						Usage: "look the item up in the results for this keyword",
					},
				},
				Action: app.withFavorites(func(ctx context.Context, cmd *cli.Command, h *handlers.FavoritesHandler) error {
					name, err := requireName(cmd)
					if err != nil {
						return err
					}

					return h.Toggle(ctx, name, cmd.String("query"))
				}),
			},
			{
				Name:      "remove",
				Usage:     "Remove a saved item",
				ArgsUsage: "<name>",
				Action: app.withFavorites(func(_ context.Context, cmd *cli.Command, h *handlers.FavoritesHandler) error {
					name, err := requireName(cmd)
					if err != nil {
						return err
					}

					return h.Remove(name)
				}),
			},
			{
				Name:  "clear",
				Usage: "Remove every saved item",
				Action: app.withFavorites(func(_ context.Context, _ *cli.Command, h *handlers.FavoritesHandler) error {
					confirmed, err := app.confirm("Remove every favorite?")
					if err != nil {
						return err
					}

					if !confirmed {
						return h.GetOutput().Info("Cancelled")
					}

					return h.Clear()
				}),
			},
		},
	}
}

// withFavorites opens the store (and the provider for lookups) around action.
func (app *CLI) withFavorites(
	action func(ctx context.Context, cmd *cli.Command, h *handlers.FavoritesHandler) error,
) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		cfg, err := app.loadConfig()
		if err != nil {
			return err
		}

		store, err := app.openStore(cfg)
		if err != nil {
			return err
		}
		defer app.closeStore(store)

		var recommendations domain.RecommendationProvider
		if cmd.String("query") != "" {
			if recommendations, err = app.openProvider(cfg); err != nil {
				return err
			}
		}

		return action(ctx, cmd, handlers.NewFavoritesHandler(app.baseHandler(cfg), store, recommendations))
	}
}

// confirm asks before destructive operations. --yes skips the question; a
// non-interactive session without --yes is refused.
func (app *CLI) confirm(question string) (bool, error) {
	if app.yes {
		return true, nil
	}

	if !app.canPrompt() {
		return false, domain.NewExitError(domain.ExitUsageError, "refusing to continue without --yes in a non-interactive session", nil)
	}

	confirmed, err := app.prompter.Confirm(question)
	if err != nil {
		return false, promptError(err)
	}

	return confirmed, nil
}

// createConfigCommand creates the configuration commands.
func (app *CLI) createConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Inspect or create the configuration file",
		Commands: []*cli.Command{
			{
				Name:  "path",
				Usage: "Print the config file location",
				Action: func(_ context.Context, _ *cli.Command) error {
					path := config.Path(app.configPath, nil)
					if app.json {
						app.output.JSONResult("success", map[string]any{"path": path})

						return nil
					}

					app.output.PlainValue(path)

					return nil
				},
			},
			{
				Name:  "show",
				Usage: "Print the effective configuration",
				Action: func(_ context.Context, _ *cli.Command) error {
					cfg, err := app.loadConfig()
					if err != nil {
						return err
					}

					if app.json {
						app.output.JSONResult("success", map[string]any{"config": cfg})

						return nil
					}

					data, err := cfg.Marshal()
					if err != nil {
						return domain.NewExitError(domain.ExitConfigError, "Failed to encode configuration", err)
					}

					_, _ = fmt.Fprint(app.stdout, string(data))

					return nil
				},
			},
			{
				Name:  "init",
				Usage: "Write the default configuration",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "force",
						Usage: "overwrite an existing file",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					path := config.Path(app.configPath, nil)

					var err error
					if cmd.Bool("force") {
						err = config.Default().Save(path)
					} else {
						err = config.Init(path)
					}

					switch {
					case errors.Is(err, config.ErrConfigExists):
						return domain.NewExitError(domain.ExitConfigError, "Config already exists at "+path+" (use --force to overwrite)", err)
					case err != nil:
						return domain.NewExitError(domain.ExitConfigError, "Failed to write configuration", err)
					}

					app.output.Successf("Wrote %s", path)

					return nil
				},
			},
		},
	}
}

// createVersionCommand creates version command.
func (app *CLI) createVersionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Show version information",
		Action: func(_ context.Context, _ *cli.Command) error {
			app.output.SuccessResult(getVersion(), "")

			return nil
		},
	}
}

func requireName(cmd *cli.Command) (string, error) {
	name := strings.TrimSpace(strings.Join(cmd.Args().Slice(), " "))
	if name == "" {
		return "", domain.NewExitError(domain.ExitUsageError, "an item name is required", ErrInvalidArgument)
	}

	return name, nil
}
