// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/janderssonse/osusume/internal/config"
	"github.com/janderssonse/osusume/internal/domain"
	"github.com/janderssonse/osusume/internal/tui/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testFixture = `
failures: [boom]
default:
  artists:
    - name: YOASOBI
      reason: 物語を音楽にするユニット
      officialUrl: https://www.yoasobi-music.jp/
    - name: Ado
      reason: 圧倒的な歌唱力
  fashion:
    - name: UNIQLO
      reason: 日常着の定番
      features: [ベーシック]
`

type fakePrompter struct {
	keyword   string
	confirmed bool
	err       error
	asked     []string
}

func (p *fakePrompter) Keyword() (string, error) {
	p.asked = append(p.asked, "keyword")

	return p.keyword, p.err
}

func (p *fakePrompter) Confirm(question string) (bool, error) {
	p.asked = append(p.asked, question)

	return p.confirmed, p.err
}

// testCLI builds a fresh CLI for every run, sharing the config, the
// favorites file and the fakes between runs.
type testCLI struct {
	t           *testing.T
	configPath  string
	stdout      *bytes.Buffer
	stderr      *bytes.Buffer
	prompter    *fakePrompter
	interactive bool
	launchErr   error
	launched    []string
}

// newTestCLI builds a CLI around a fixture provider and a file favorites
// store inside a temp dir.
func newTestCLI(t *testing.T) *testCLI {
	t.Helper()

	dir := t.TempDir()
	fixturePath := filepath.Join(dir, "fixture.yaml")
	require.NoError(t, os.WriteFile(fixturePath, []byte(testFixture), 0o600))

	cfg := config.Default()
	cfg.Provider.Fixture = fixturePath
	cfg.Favorites.Path = filepath.Join(dir, "favorites.toml")
	cfg.UI.Locale = "en"

	configPath := filepath.Join(dir, "config.toml")
	require.NoError(t, cfg.Save(configPath))

	return &testCLI{
		t:          t,
		configPath: configPath,
		stdout:     &bytes.Buffer{},
		stderr:     &bytes.Buffer{},
		prompter:   &fakePrompter{},
	}
}

func (tc *testCLI) run(args ...string) error {
	app := NewCLI()
	app.stdout = tc.stdout
	app.stderr = tc.stderr
	app.getenv = func(string) string { return "" }
	app.prompter = tc.prompter
	app.interactive = func() bool { return tc.interactive }
	app.launch = func(_ context.Context, session *models.Session, query string) error {
		require.NotNil(tc.t, session)
		tc.launched = append(tc.launched, query)

		return tc.launchErr
	}

	return app.Run(context.Background(), append([]string{"osusume", "--config", tc.configPath}, args...))
}

func exitCode(t *testing.T, err error) int {
	t.Helper()

	var exitErr *domain.ExitError

	require.ErrorAs(t, err, &exitErr)

	return exitErr.Code
}

func TestNewCLI(t *testing.T) {
	t.Parallel()

	cliApp := NewCLI()

	require.NotNil(t, cliApp.app)
	assert.Equal(t, "osusume", cliApp.app.Name)
	assert.NotEmpty(t, cliApp.app.Usage)
	assert.NotEmpty(t, cliApp.app.Description)

	names := make(map[string]bool)
	for _, cmd := range cliApp.createAllCommands() {
		names[cmd.Name] = true
	}

	for _, expected := range []string{"tui", "search", "favorites", "config", "version"} {
		assert.True(t, names[expected], "command %s should exist", expected)
	}
}

func TestNoArgumentsLaunchesTUI(t *testing.T) {
	t.Parallel()

	tc := newTestCLI(t)

	require.NoError(t, tc.run())
	require.NoError(t, tc.run("tui", "--query", "鬼滅の刃"))

	assert.Equal(t, []string{"", "鬼滅の刃"}, tc.launched)
}

func TestLaunchFailureIsExitError(t *testing.T) {
	t.Parallel()

	tc := newTestCLI(t)
	tc.launchErr = errors.New("no tty")

	err := tc.run("tui")
	assert.Equal(t, domain.ExitGeneralError, exitCode(t, err))
	assert.Contains(t, err.Error(), "terminal required")
}

func TestUnknownCommand(t *testing.T) {
	t.Parallel()

	tc := newTestCLI(t)

	err := tc.run("serach")
	assert.Equal(t, domain.ExitUsageError, exitCode(t, err))
	assert.Contains(t, tc.stderr.String(), "'serach' is not a command.")
	assert.Empty(t, tc.launched)
}

func TestGlobalFlagValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
	}{
		{"json and plain", []string{"--json", "--plain", "version"}},
		{"bad color", []string{"--color", "sometimes", "version"}},
		{"negative timeout", []string{"--timeout", "-1s", "version"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cliApp := newTestCLI(t)

			err := cliApp.run(tc.args...)
			assert.Equal(t, domain.ExitUsageError, exitCode(t, err))
		})
	}
}

func TestSearchCommand(t *testing.T) {
	t.Parallel()

	tc := newTestCLI(t)

	require.NoError(t, tc.run("search", "YOASOBI"))

	out := tc.stdout.String()
	assert.Contains(t, out, "Artists (2)")
	assert.Contains(t, out, "Fashion Brands (1)")
	assert.Contains(t, out, "see all: /category/artists?q=YOASOBI")
	assert.Contains(t, out, "物語を音楽にするユニット")
}

func TestSearchCommandJSONCategory(t *testing.T) {
	t.Parallel()

	tc := newTestCLI(t)

	require.NoError(t, tc.run("--json", "search", "--category", "fashion", "UNIQLO"))

	var result domain.SearchResult
	require.NoError(t, json.Unmarshal(tc.stdout.Bytes(), &result))

	require.Len(t, result.Categories, 1)
	assert.Equal(t, domain.CategoryFashion, result.Categories[0].Key)
	assert.Equal(t, []string{"ベーシック"}, result.Categories[0].Items[0].Features)
}

func TestSearchCommandFailures(t *testing.T) {
	t.Parallel()

	tc := newTestCLI(t)

	err := tc.run("search")
	assert.Equal(t, domain.ExitUsageError, exitCode(t, err), "no prompt without a terminal")
	assert.Empty(t, tc.prompter.asked)

	err = tc.run("search", "boom")
	assert.Equal(t, domain.ExitNetworkError, exitCode(t, err))

	err = tc.run("search", "--category", "games", "Ado")
	assert.Equal(t, domain.ExitNotFound, exitCode(t, err))
}

func TestSearchPromptsForKeyword(t *testing.T) {
	t.Parallel()

	tc := newTestCLI(t)
	tc.interactive = true
	tc.prompter.keyword = "Ado"

	require.NoError(t, tc.run("--quiet", "search"))

	assert.Equal(t, []string{"keyword"}, tc.prompter.asked)
	assert.Equal(t, "YOASOBI\nAdo\nUNIQLO\n", tc.stdout.String())
}

func TestFavoritesCommands(t *testing.T) {
	t.Parallel()

	tc := newTestCLI(t)

	require.NoError(t, tc.run("favorites", "toggle", "--query", "YOASOBI", "YOASOBI"))
	assert.Contains(t, tc.stdout.String(), "Added YOASOBI to favorites")

	require.NoError(t, tc.run("favorites", "toggle", "UNIQLO"))

	tc.stdout.Reset()
	require.NoError(t, tc.run("--quiet", "favorites", "list"))
	assert.Equal(t, "YOASOBI\nUNIQLO\n", tc.stdout.String())

	tc.stdout.Reset()
	require.NoError(t, tc.run("search", "YOASOBI"))
	assert.Contains(t, tc.stdout.String(), "★")

	err := tc.run("favorites", "remove", "Ado")
	assert.Equal(t, domain.ExitNotFound, exitCode(t, err))

	err = tc.run("favorites", "toggle")
	assert.Equal(t, domain.ExitUsageError, exitCode(t, err))
}

func TestFavoritesClearConfirmation(t *testing.T) {
	t.Parallel()

	tc := newTestCLI(t)
	require.NoError(t, tc.run("favorites", "toggle", "Ado"))

	err := tc.run("favorites", "clear")
	assert.Equal(t, domain.ExitUsageError, exitCode(t, err), "refused without a terminal or --yes")

	tc.interactive = true

	tc.stdout.Reset()
	require.NoError(t, tc.run("favorites", "clear"))
	assert.Contains(t, tc.stdout.String(), "Cancelled")
	assert.Equal(t, []string{"Remove every favorite?"}, tc.prompter.asked)

	tc.stdout.Reset()
	require.NoError(t, tc.run("--yes", "favorites", "clear"))
	require.NoError(t, tc.run("favorites"))
	assert.Equal(t, "Cleared favorites\nNo favorites yet\n", tc.stdout.String())
}

func TestConfigCommands(t *testing.T) {
	t.Parallel()

	tc := newTestCLI(t)

	require.NoError(t, tc.run("config", "path"))
	assert.Equal(t, tc.configPath+"\n", tc.stdout.String())

	tc.stdout.Reset()
	require.NoError(t, tc.run("config", "show"))
	assert.Contains(t, tc.stdout.String(), "[provider]")
	assert.Contains(t, tc.stdout.String(), "fixture.yaml")

	err := tc.run("config", "init")
	assert.Equal(t, domain.ExitConfigError, exitCode(t, err))
	require.ErrorIs(t, err, config.ErrConfigExists)

	require.NoError(t, tc.run("config", "init", "--force"))

	cfg, err := config.LoadWithEnv(tc.configPath, func(string) string { return "" })
	require.NoError(t, err)
	assert.Empty(t, cfg.Provider.Fixture, "defaults were written back")
}

func TestInvalidConfigIsConfigError(t *testing.T) {
	t.Parallel()

	tc := newTestCLI(t)
	require.NoError(t, os.WriteFile(tc.configPath, []byte("[provider]\nkind = \"carrier-pigeon\"\n"), 0o600))

	err := tc.run("search", "Ado")
	assert.Equal(t, domain.ExitConfigError, exitCode(t, err))
	require.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	tc := newTestCLI(t)

	require.NoError(t, tc.run("version"))
	assert.Equal(t, getVersion(), strings.TrimSpace(tc.stdout.String()))

	tc.stdout.Reset()
	require.NoError(t, tc.run("--json", "version"))
	assert.Contains(t, tc.stdout.String(), `"status":"success"`)
}
