package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
)

var browseInteractive bool

var browseCmd = &cobra.Command{
	Use:   "browse [query]",
	Short: "Route one plugin request",
	Long: `Route one plugin request and render the result.

The query is the plugin paramstring, for example "action=list_movies&id=42".
Without a query the master folder list is shown. With --interactive the
listing stays open and items can be opened by number.`,
	Example: `  listbridge browse
  listbridge browse "action=list_movies&id=42"
  listbridge browse -i`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBrowse,
}

func init() {
	browseCmd.Flags().BoolVarP(&browseInteractive, "interactive", "i", false, "Keep browsing until 'q'")
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	a, err := newCommandApp(cmd, cfg, log)
	if err != nil {
		return err
	}

	query := ""
	if len(args) > 0 {
		query = args[0]
	}
	if !browseInteractive {
		return a.route(cmd.Context(), query)
	}
	return a.browse(cmd.Context(), query, cmd.OutOrStdout())
}

// browse renders query, then opens items by number until the user quits.
// Only requests that render a directory become the current listing, so
// playing or the fallback menu return to the same listing.
func (a *app) browse(ctx context.Context, query string, out io.Writer) error {
	if !a.console.Interactive() {
		a.log.Warn("input is not a terminal, dialogs will be cancelled")
	}

	var history []string
	listing := query
	if err := a.route(ctx, listing); err != nil {
		return err
	}

	for {
		line, ok := a.console.ReadLine("item #, b=back, q=quit> ")
		if !ok || line == "q" {
			return nil
		}

		if line == "b" {
			if len(history) == 0 {
				continue
			}
			listing = history[len(history)-1]
			history = history[:len(history)-1]
			if err := a.route(ctx, listing); err != nil {
				return err
			}
			continue
		}

		items := a.console.Last().Items
		n, err := strconv.Atoi(line)
		if err != nil || n < 1 || n > len(items) {
			fmt.Fprintf(out, "invalid selection %q\n", line)
			continue
		}

		target := a.paramstring(items[n-1].URL)
		before := a.console.Renders()
		if err := a.route(ctx, target); err != nil {
			return err
		}
		if a.console.Renders() != before {
			history = append(history, listing)
			listing = target
		}
	}
}
