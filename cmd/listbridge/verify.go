package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check that the catalog, Kodi and Radarr are reachable",
	Args:  cobra.NoArgs,
	RunE:  runVerifyCmd,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

// CheckResult is the outcome of one service check.
type CheckResult struct {
	Service  string `json:"service"`
	URL      string `json:"url"`
	Status   string `json:"status"` // ok, fail, disabled
	Error    string `json:"error,omitempty"`
	Duration int64  `json:"duration_ms"`
}

func runVerifyCmd(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadConfig(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	a, err := newCommandApp(cmd, cfg, log)
	if err != nil {
		return err
	}

	results := a.verify(cmd.Context())

	out := cmd.OutOrStdout()
	if jsonOutput {
		if err := printJSON(out, results); err != nil {
			return err
		}
	} else {
		rows := make([]table.Row, 0, len(results))
		for _, r := range results {
			status := r.Status
			if r.Error != "" {
				status += ": " + r.Error
			}
			rows = append(rows, table.Row{r.Service, r.URL, status, fmt.Sprintf("%dms", r.Duration)})
		}
		fmt.Fprintln(out, renderTable([]column{
			{Title: "Service"},
			{Title: "URL"},
			{Title: "Status"},
			{Title: "Time", Align: text.AlignRight},
		}, rows))
	}

	for _, r := range results {
		if r.Status == "fail" {
			return errors.New("verification failed")
		}
	}
	return nil
}

// verify checks every service concurrently. Results keep a fixed order.
func (a *app) verify(ctx context.Context) []CheckResult {
	results := []CheckResult{
		{Service: "catalog", URL: a.cfg.Catalog.URL},
		{Service: "kodi", URL: a.kodi.Endpoint()},
		{Service: "radarr", URL: a.cfg.Radarr.URL},
	}

	checks := []func(context.Context) error{
		a.catalog.Ping,
		a.kodi.Ping,
		nil,
	}
	if a.radarr != nil {
		checks[2] = func(ctx context.Context) error {
			if !a.radarr.CheckConnection(ctx) {
				return errors.New("unreachable or API key invalid")
			}
			return nil
		}
	} else {
		results[2].Status = "disabled"
	}

	var g errgroup.Group
	for i, check := range checks {
		if check == nil {
			continue
		}
		g.Go(func() error {
			start := time.Now()
			err := check(ctx)
			results[i].Duration = time.Since(start).Milliseconds()
			if err != nil {
				a.log.Warn("check failed", "service", results[i].Service, "error", err)
				results[i].Status = "fail"
				results[i].Error = err.Error()
				return nil
			}
			results[i].Status = "ok"
			return nil
		})
	}
	_ = g.Wait()
	return results
}
