// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package config loads the osusume TOML configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/janderssonse/osusume/internal/platform"
	"github.com/pelletier/go-toml/v2"
)

// Provider kinds.
const (
	ProviderHTTP    = "http"
	ProviderFixture = "fixture"
)

// Favorites backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Environment overrides.
const (
	EnvProvider  = "OSUSUME_PROVIDER"
	EnvEndpoint  = "OSUSUME_ENDPOINT"
	EnvFavorites = "OSUSUME_FAVORITES"
	EnvLocale    = "OSUSUME_LOCALE"
	EnvProbe     = "OSUSUME_PROBE_IMAGES"
)

// FileName is the config file name inside the config directory.
const FileName = "config.toml"

var (
	// ErrInvalidConfig is returned when a loaded config fails validation.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrConfigExists is returned by Init when a config file is already present.
	ErrConfigExists = errors.New("config file already exists")
)

// Duration is a time.Duration encoded as a string such as "30s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}

	d.Duration = parsed

	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Config is the full osusume configuration.
type Config struct {
	Provider  ProviderConfig  `toml:"provider"`
	Favorites FavoritesConfig `toml:"favorites"`
	UI        UIConfig        `toml:"ui"`
}

// ProviderConfig selects and tunes the recommendation provider.
type ProviderConfig struct {
	Kind            string   `toml:"kind"`
	Endpoint        string   `toml:"endpoint"`
	Timeout         Duration `toml:"timeout"`
	MaxRetries      int      `toml:"max_retries"`
	BreakerFailures uint32   `toml:"breaker_failures"`
	BreakerCooldown Duration `toml:"breaker_cooldown"`
	Fixture         string   `toml:"fixture"`
}

// FavoritesConfig selects the favorites store.
type FavoritesConfig struct {
	Backend string `toml:"backend"`
	Path    string `toml:"path"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Locale       string   `toml:"locale"`
	ReasonWidth  int      `toml:"reason_width"`
	ProbeImages  bool     `toml:"probe_images"`
	ProbeTimeout Duration `toml:"probe_timeout"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Provider: ProviderConfig{
			Kind:            ProviderFixture,
			Endpoint:        "http://localhost:3000/api/recommendations",
			Timeout:         Duration{30 * time.Second},
			MaxRetries:      3,
			BreakerFailures: 5,
			BreakerCooldown: Duration{time.Minute},
		},
		Favorites: FavoritesConfig{
			Backend: BackendFile,
			Path:    "$XDG_DATA_HOME/osusume/favorites.toml",
		},
		UI: UIConfig{
			Locale:       "ja",
			ReasonWidth:  40,
			ProbeTimeout: Duration{5 * time.Second},
		},
	}
}

// PathResolver provides path resolution functions.
type PathResolver interface {
	GetConfigPath() string
}

// DefaultPathResolver resolves the config file under the XDG config home.
type DefaultPathResolver struct{}

// GetConfigPath returns $XDG_CONFIG_HOME/osusume/config.toml.
func (DefaultPathResolver) GetConfigPath() string {
	return filepath.Join(platform.ConfigDir(), FileName)
}

// Path returns the config file to use: explicit wins over the resolver.
func Path(explicit string, resolver PathResolver) string {
	if explicit != "" {
		return platform.ExpandPath(explicit)
	}

	if resolver == nil {
		resolver = DefaultPathResolver{}
	}

	return resolver.GetConfigPath()
}

// Load reads path on top of the defaults and applies environment overrides.
// A missing file is not an error.
func Load(path string) (Config, error) {
	return LoadWithEnv(path, os.Getenv)
}

// LoadWithEnv is Load with a custom environment lookup for testing.
func LoadWithEnv(path string, getenv func(string) string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path) // #nosec G304 -- path is the user's own config file
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	applyEnv(&cfg, getenv)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func applyEnv(cfg *Config, getenv func(string) string) {
	if v := getenv(EnvProvider); v != "" {
		cfg.Provider.Kind = strings.ToLower(v)
	}

	if v := getenv(EnvEndpoint); v != "" {
		cfg.Provider.Endpoint = v
	}

	if v := getenv(EnvFavorites); v != "" {
		cfg.Favorites.Backend = strings.ToLower(v)
	}

	if v := getenv(EnvLocale); v != "" {
		cfg.UI.Locale = v
	}

	if v := getenv(EnvProbe); v != "" {
		if probe, err := strconv.ParseBool(v); err == nil {
			cfg.UI.ProbeImages = probe
		}
	}
}

// Validate checks enumerated values and ranges.
func (c Config) Validate() error {
	switch c.Provider.Kind {
	case ProviderHTTP:
		if c.Provider.Endpoint == "" {
			return fmt.Errorf("%w: provider.endpoint is required for the http provider", ErrInvalidConfig)
		}
	case ProviderFixture:
	default:
		return fmt.Errorf("%w: unknown provider.kind %q", ErrInvalidConfig, c.Provider.Kind)
	}

	switch c.Favorites.Backend {
	case BackendFile, BackendSQLite:
		if c.Favorites.Path == "" {
			return fmt.Errorf("%w: favorites.path is required for the %s backend", ErrInvalidConfig, c.Favorites.Backend)
		}
	case BackendMemory:
	default:
		return fmt.Errorf("%w: unknown favorites.backend %q", ErrInvalidConfig, c.Favorites.Backend)
	}

	if c.Provider.MaxRetries < 0 {
		return fmt.Errorf("%w: provider.max_retries must not be negative", ErrInvalidConfig)
	}

	if c.UI.ReasonWidth < 0 {
		return fmt.Errorf("%w: ui.reason_width must not be negative", ErrInvalidConfig)
	}

	return nil
}

// FavoritesPath returns the expanded favorites path.
func (c Config) FavoritesPath() string {
	return platform.ExpandPath(c.Favorites.Path)
}

// FixturePath returns the expanded fixture path, empty for the built-in demo data.
func (c Config) FixturePath() string {
	if c.Provider.Fixture == "" {
		return ""
	}

	return platform.ExpandPath(c.Provider.Fixture)
}

// Marshal encodes c as TOML.
func (c Config) Marshal() ([]byte, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}

	return data, nil
}

// Save writes c to path, creating parent directories.
func (c Config) Save(path string) error {
	data, err := c.Marshal()
	if err != nil {
		return err
	}

	if err := platform.WriteFileAtomic(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Init writes the defaults to path unless a file already exists there.
func Init(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w: %s", ErrConfigExists, path)
	}

	return Default().Save(path)
}
