// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/vmunix/listbridge/internal/catalog"
)

// Config is the root configuration structure.
type Config struct {
	Log     LogConfig     `toml:"log"`
	Plugin  PluginConfig  `toml:"plugin"`
	Catalog CatalogConfig `toml:"catalog"`
	Kodi    KodiConfig    `toml:"kodi"`
	Library LibraryConfig `toml:"library"`
	Radarr  RadarrConfig  `toml:"radarr"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

// PluginConfig holds the request context used to build item URLs.
type PluginConfig struct {
	BaseURL string `toml:"base_url"`
}

type CatalogConfig struct {
	URL          string `toml:"url"`
	ImageBaseURL string `toml:"image_base_url"`
}

type KodiConfig struct {
	URL      string `toml:"url"`
	Username string `toml:"username"`
	Password string `toml:"password"`
	Notify   bool   `toml:"notify"`
}

type LibraryConfig struct {
	Match string `toml:"match"` // "first" or "closest"
}

type RadarrConfig struct {
	Enabled bool   `toml:"enabled"`
	URL     string `toml:"url"`
	APIKey  string `toml:"api_key"`
}

const (
	DefaultCatalogURL   = catalog.DefaultBaseURL
	DefaultImageBaseURL = catalog.DefaultImageBaseURL
	DefaultKodiURL      = "http://localhost:8080"
	DefaultPluginURL    = "plugin://plugin.video.listbridge/"
)

// Load reads, substitutes, and validates the configuration file.
func Load(path string) (*Config, error) {
	cfg, missing, err := load(path)
	if err != nil {
		return nil, err
	}

	cfgErr := &Error{Path: path, Missing: missing, Errors: cfg.Validate()}
	if cfgErr.HasErrors() {
		return nil, cfgErr
	}
	return cfg, nil
}

// LoadWithoutValidation reads the configuration file and applies defaults,
// ignoring unresolved variables and validation failures.
func LoadWithoutValidation(path string) (*Config, error) {
	cfg, _, err := load(path)
	return cfg, err
}

func load(path string) (*Config, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading config: %w", err)
	}

	content, missing := substituteEnvVars(string(data))

	var cfg Config
	if _, err := toml.Decode(content, &cfg); err != nil {
		return nil, nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.applyDefaults()

	return &cfg, missing, nil
}

func (c *Config) applyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Plugin.BaseURL == "" {
		c.Plugin.BaseURL = DefaultPluginURL
	}
	if c.Catalog.URL == "" {
		c.Catalog.URL = DefaultCatalogURL
	}
	if c.Catalog.ImageBaseURL == "" {
		c.Catalog.ImageBaseURL = DefaultImageBaseURL
	}
	if c.Kodi.URL == "" {
		c.Kodi.URL = DefaultKodiURL
	}
	if c.Library.Match == "" {
		c.Library.Match = "first"
	}
}

// Default returns a configuration with every default applied.
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

// envVarPattern matches ${VAR}, ${VAR:-default} and ${VAR:?message}.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?:(:-|:\?)([^}]*))?\}`)

// substituteEnvVars replaces variable references with environment values.
// Unresolved references are left in place and reported in missing.
func substituteEnvVars(content string) (string, []string) {
	var missing []string
	out := envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		parts := envVarPattern.FindStringSubmatch(match)
		name, op, arg := parts[1], parts[2], parts[3]

		value, ok := os.LookupEnv(name)
		switch op {
		case ":-":
			if !ok || value == "" {
				return arg
			}
			return value
		case ":?":
			if !ok || value == "" {
				missing = append(missing, name+": "+strings.TrimSpace(arg))
				return match
			}
			return value
		}

		if !ok {
			missing = append(missing, name)
			return match
		}
		return value
	})
	return out, missing
}
