package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/listbridge/internal/catalog"
	"github.com/vmunix/listbridge/internal/config"
	"github.com/vmunix/listbridge/internal/host"
	"github.com/vmunix/listbridge/internal/host/terminal"
	"github.com/vmunix/listbridge/internal/kodi"
	"github.com/vmunix/listbridge/internal/library"
	"github.com/vmunix/listbridge/internal/navigation"
	"github.com/vmunix/listbridge/internal/radarr"
)

// app wires the services for one invocation.
type app struct {
	cfg      *config.Config
	log      *slog.Logger
	catalog  *catalog.Client
	kodi     *kodi.Client
	console  *terminal.Console
	notifier host.Notifier
	radarr   *radarr.Client // nil unless [radarr] enabled
	router   *navigation.Router
}

func newApp(cfg *config.Config, log *slog.Logger, in io.Reader, out io.Writer, opts ...terminal.Option) (*app, error) {
	a := &app{
		cfg: cfg,
		log: log,
		catalog: catalog.NewClient(
			catalog.WithBaseURL(cfg.Catalog.URL),
			catalog.WithLogger(log),
		),
		console: terminal.New(in, out, append([]terminal.Option{terminal.WithJSON(jsonOutput)}, opts...)...),
	}

	kc, err := kodi.NewClient(cfg.Kodi.URL,
		kodi.WithCredentials(cfg.Kodi.Username, cfg.Kodi.Password),
		kodi.WithLogger(log),
	)
	if err != nil {
		return nil, fmt.Errorf("kodi: %w", err)
	}
	a.kodi = kc

	notifiers := host.MultiNotifier{a.console, host.LogNotifier{Logger: log}}
	if cfg.Kodi.Notify {
		notifiers = append(notifiers, kc)
	}
	a.notifier = notifiers

	picker, err := library.PickerFor(cfg.Library.Match)
	if err != nil {
		return nil, err
	}
	resolver := library.NewResolver(kc, library.WithPicker(picker), library.WithLogger(log))

	routerOpts := []navigation.Option{
		navigation.WithImageBaseURL(cfg.Catalog.ImageBaseURL),
		navigation.WithLogger(log),
	}
	if cfg.Radarr.Enabled {
		a.radarr = radarr.NewClient(cfg.Radarr.URL, cfg.Radarr.APIKey, log)
		svc := radarr.NewService(a.radarr, a.console, a.notifier, log)
		routerOpts = append(routerOpts, navigation.WithAcquirer(svc))
	}

	a.router = navigation.NewRouter(a.catalog, resolver, navigation.Host{
		Presenter: a.console,
		Player:    kc,
		Dialogs:   a.console,
		Notifier:  a.notifier,
	}, routerOpts...)
	return a, nil
}

// newCommandApp wires an app to cmd's streams. Prompts and notifications go
// to stderr in JSON mode.
func newCommandApp(cmd *cobra.Command, cfg *config.Config, log *slog.Logger) (*app, error) {
	return newApp(cfg, log, cmd.InOrStdin(), cmd.OutOrStdout(), terminal.WithMessageOutput(cmd.ErrOrStderr()))
}

// route dispatches one paramstring such as "action=list_movies&id=42".
func (a *app) route(ctx context.Context, paramstring string) error {
	req, err := navigation.NewRequest(a.cfg.Plugin.BaseURL, 0, paramstring)
	if err != nil {
		return err
	}
	return a.router.Route(ctx, req)
}

// paramstring strips the plugin base from an item URL.
func (a *app) paramstring(itemURL string) string {
	return strings.TrimPrefix(strings.TrimPrefix(itemURL, a.cfg.Plugin.BaseURL), "?")
}
