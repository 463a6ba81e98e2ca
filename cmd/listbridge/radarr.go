package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/vmunix/listbridge/internal/config"
	"github.com/vmunix/listbridge/internal/radarr"
)

var radarrCmd = &cobra.Command{
	Use:   "radarr",
	Short: "Inspect and use the Radarr integration",
}

var radarrStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check the Radarr connection and API key",
	Args:  cobra.NoArgs,
	RunE:  runRadarrStatus,
}

var radarrRootFoldersCmd = &cobra.Command{
	Use:   "rootfolders",
	Short: "List Radarr root folders",
	Args:  cobra.NoArgs,
	RunE:  runRadarrRootFolders,
}

var radarrProfilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List Radarr quality profiles",
	Args:  cobra.NoArgs,
	RunE:  runRadarrProfiles,
}

var radarrAddCmd = &cobra.Command{
	Use:   "add <tmdb-id>",
	Short: "Request a movie, choosing root folder and profile interactively",
	Args:  cobra.ExactArgs(1),
	RunE:  runRadarrAdd,
}

func init() {
	radarrCmd.AddCommand(radarrStatusCmd, radarrRootFoldersCmd, radarrProfilesCmd, radarrAddCmd)
	rootCmd.AddCommand(radarrCmd)
}

var errRadarrNotConfigured = errors.New("radarr not configured: set [radarr] url and api_key")

func radarrClient(cfg *config.Config, a *app) (*radarr.Client, error) {
	if a.radarr != nil {
		return a.radarr, nil
	}
	if cfg.Radarr.URL == "" || cfg.Radarr.APIKey == "" {
		return nil, errRadarrNotConfigured
	}
	return radarr.NewClient(cfg.Radarr.URL, cfg.Radarr.APIKey, a.log), nil
}

func setupRadarr(cmd *cobra.Command) (*app, *radarr.Client, error) {
	cfg, log, err := loadConfig(cmd.ErrOrStderr())
	if err != nil {
		return nil, nil, err
	}
	a, err := newCommandApp(cmd, cfg, log)
	if err != nil {
		return nil, nil, err
	}
	client, err := radarrClient(cfg, a)
	if err != nil {
		return nil, nil, err
	}
	return a, client, nil
}

func runRadarrStatus(cmd *cobra.Command, _ []string) error {
	a, client, err := setupRadarr(cmd)
	if err != nil {
		return err
	}
	ok := client.CheckConnection(cmd.Context())

	out := cmd.OutOrStdout()
	if jsonOutput {
		if err := printJSON(out, map[string]any{"url": a.cfg.Radarr.URL, "enabled": a.cfg.Radarr.Enabled, "ok": ok}); err != nil {
			return err
		}
	} else {
		status := "ok"
		if !ok {
			status = "FAIL unreachable or API key invalid"
		}
		fmt.Fprintf(out, "Radarr:  %s (%s)\n", a.cfg.Radarr.URL, status)
		if !a.cfg.Radarr.Enabled {
			fmt.Fprintln(out, "Note:    [radarr] enabled = false, browse will not offer requests")
		}
	}
	if !ok {
		return errors.New("radarr check failed")
	}
	return nil
}

func runRadarrRootFolders(cmd *cobra.Command, _ []string) error {
	_, client, err := setupRadarr(cmd)
	if err != nil {
		return err
	}
	folders, err := client.RootFolders(cmd.Context())
	if err != nil {
		return err
	}
	if folders == nil {
		return errors.New("radarr returned no root folders (check API key)")
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(out, folders)
	}
	rows := make([]table.Row, 0, len(folders))
	for _, f := range folders {
		rows = append(rows, table.Row{f.ID, f.Path, humanize.IBytes(uint64(max(f.FreeSpace, 0)))})
	}
	fmt.Fprintln(out, renderTable([]column{
		{Title: "ID", Align: text.AlignRight},
		{Title: "Path"},
		{Title: "Free", Align: text.AlignRight},
	}, rows))
	return nil
}

func runRadarrProfiles(cmd *cobra.Command, _ []string) error {
	_, client, err := setupRadarr(cmd)
	if err != nil {
		return err
	}
	profiles, err := client.QualityProfiles(cmd.Context())
	if err != nil {
		return err
	}
	if profiles == nil {
		return errors.New("radarr returned no quality profiles (check API key)")
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(out, profiles)
	}
	rows := make([]table.Row, 0, len(profiles))
	for _, p := range profiles {
		rows = append(rows, table.Row{p.ID, p.Name})
	}
	fmt.Fprintln(out, renderTable([]column{{Title: "ID", Align: text.AlignRight}, {Title: "Name"}}, rows))
	return nil
}

func runRadarrAdd(cmd *cobra.Command, args []string) error {
	tmdbID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || tmdbID <= 0 {
		return fmt.Errorf("invalid TMDB id: %s", args[0])
	}
	a, client, err := setupRadarr(cmd)
	if err != nil {
		return err
	}

	svc := radarr.NewService(client, a.console, a.notifier, a.log)
	added, err := svc.AddMovieWithPrompts(cmd.Context(), tmdbID)
	if err != nil {
		return err
	}
	if !added {
		return errors.New("movie not added")
	}
	return nil
}
