package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/listbridge/internal/config"
)

var version = "dev"

var (
	configPath string
	jsonOutput bool
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "listbridge",
	Short: "Browse curated movie lists against your Kodi library",
	Long: `listbridge - curated movie lists for Kodi

Browses movie lists published by a catalog service, marks the titles
already in your Kodi library as playable, and offers a library search or
a Radarr request for the ones that are missing.`,
	SilenceUsage: true,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: discovered)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override log level (debug, info, warn, error)")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("listbridge {{.Version}}\n")
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func newLogger(w io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: parseLogLevel(level),
	}))
}

// loadConfig loads --config, or the discovered config file, or the
// built-in defaults when no file exists at any search path. A
// LISTBRIDGE_CONFIG that cannot be read is an error.
func loadConfig(stderr io.Writer) (*config.Config, *slog.Logger, error) {
	path := configPath
	if path == "" {
		found, err := config.Discover()
		if err != nil && !errors.Is(err, config.ErrNotFound) {
			return nil, nil, err
		}
		if err != nil {
			cfg := config.Default()
			log := newLogger(stderr, firstNonEmpty(logLevel, cfg.Log.Level))
			log.Debug("no config file, using defaults", "reason", err)
			return cfg, log, nil
		}
		path = found
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, fmt.Errorf("config %s: %w", path, err)
	}
	log := newLogger(stderr, firstNonEmpty(logLevel, cfg.Log.Level))
	log.Debug("config loaded", "path", path)
	return cfg, log, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
