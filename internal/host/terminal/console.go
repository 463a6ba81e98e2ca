// Package terminal implements the host capabilities on a text terminal.
package terminal

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"github.com/vmunix/listbridge/internal/host"
	"github.com/vmunix/listbridge/pkg/title"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

// Console renders directories as tables and reads dialog answers from its
// input.
type Console struct {
	out         io.Writer
	msgOut      io.Writer
	in          *bufio.Reader
	interactive bool
	colorize    bool
	jsonOutput  bool

	mu      sync.Mutex
	last    host.Directory
	renders int
}

// Option configures a Console.
type Option func(*Console)

// WithJSON renders directories as JSON documents.
func WithJSON(enabled bool) Option {
	return func(c *Console) {
		c.jsonOutput = enabled
	}
}

// WithMessageOutput sets where prompts and notifications go while
// directories are rendered as JSON. Defaults to stderr.
func WithMessageOutput(w io.Writer) Option {
	return func(c *Console) {
		c.msgOut = w
	}
}

// WithInteractive overrides terminal detection on the input.
func WithInteractive(enabled bool) Option {
	return func(c *Console) {
		c.interactive = enabled
	}
}

// WithColor overrides terminal detection on the output.
func WithColor(enabled bool) Option {
	return func(c *Console) {
		c.colorize = enabled
	}
}

// New creates a Console. Dialogs are only answered when in is a terminal,
// otherwise every Select is cancelled.
func New(in io.Reader, out io.Writer, opts ...Option) *Console {
	c := &Console{
		out:         out,
		msgOut:      os.Stderr,
		in:          bufio.NewReader(in),
		interactive: isTerminal(in),
		colorize:    isTerminal(out),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func isTerminal(v any) bool {
	file, ok := v.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Interactive reports whether dialogs can be answered.
func (c *Console) Interactive() bool {
	return c.interactive
}

// messages keeps stdout a stream of JSON documents in JSON mode.
func (c *Console) messages() io.Writer {
	if c.jsonOutput {
		return c.msgOut
	}
	return c.out
}

// Last returns the most recently rendered directory, in display order.
func (c *Console) Last() host.Directory {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

// Renders counts the directories rendered so far.
func (c *Console) Renders() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.renders
}

// Render prints dir, applying its initial sort method.
func (c *Console) Render(_ context.Context, dir host.Directory) error {
	dir.Items = sortItems(dir.Items, initialSort(dir.SortMethods))

	c.mu.Lock()
	c.last = dir
	c.renders++
	c.mu.Unlock()

	if c.jsonOutput {
		enc := json.NewEncoder(c.out)
		enc.SetIndent("", "  ")
		return enc.Encode(dir)
	}

	header := fmt.Sprintf("== %s ==", strings.TrimSpace(dir.Category))
	if c.colorize {
		header = ansiBlue + header + ansiReset
	}
	if _, err := fmt.Fprintln(c.out, header); err != nil {
		return err
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"#", "Title", "Year", "Status", "Note"})
	for i, item := range dir.Items {
		tw.AppendRow(table.Row{i + 1, item.Label, yearCell(item.Info.Year), statusCell(item), noteCell(item)})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})
	_, err := fmt.Fprintln(c.out, tw.Render())
	return err
}

// Select prints numbered options and reads a 1-based choice. An empty or
// invalid answer cancels.
func (c *Console) Select(heading string, options []string) (int, bool) {
	if !c.interactive || len(options) == 0 {
		return -1, false
	}

	w := c.messages()
	fmt.Fprintf(w, "%s\n", heading)
	for i, opt := range options {
		fmt.Fprintf(w, "  %d) %s\n", i+1, opt)
	}
	fmt.Fprintf(w, "Select [1-%d, empty to cancel]: ", len(options))

	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		return -1, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || n < 1 || n > len(options) {
		return -1, false
	}
	return n - 1, true
}

// ReadLine prompts and reads one trimmed line. ok is false at end of input.
func (c *Console) ReadLine(prompt string) (string, bool) {
	fmt.Fprint(c.messages(), prompt)
	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		return "", false
	}
	return strings.TrimSpace(line), true
}

// Notify prints a one-line status message.
func (c *Console) Notify(_ context.Context, n host.Notification) {
	line := fmt.Sprintf("[%s] %s: %s", levelLabel(n.Level), n.Heading, n.Message)
	if c.colorize {
		line = levelColor(n.Level) + line + ansiReset
	}
	fmt.Fprintln(c.messages(), line)
}

func levelLabel(l host.Level) string {
	switch l {
	case host.LevelWarning:
		return "WARN"
	case host.LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

func levelColor(l host.Level) string {
	switch l {
	case host.LevelWarning:
		return ansiYellow
	case host.LevelError:
		return ansiRed
	default:
		return ansiGreen
	}
}

func initialSort(methods []host.SortMethod) host.SortMethod {
	if len(methods) == 0 {
		return host.SortUnsorted
	}
	return methods[0]
}

// sortItems returns items ordered by method. Server order is kept for
// unsorted and none.
func sortItems(items []host.Item, method host.SortMethod) []host.Item {
	sorted := append([]host.Item(nil), items...)
	switch method {
	case host.SortTitle:
		sort.SliceStable(sorted, func(i, j int) bool {
			return title.Clean(sorted[i].Info.Title) < title.Clean(sorted[j].Info.Title)
		})
	case host.SortYear:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Info.Year < sorted[j].Info.Year
		})
	}
	return sorted
}

func yearCell(year int) string {
	if year == 0 {
		return ""
	}
	return strconv.Itoa(year)
}

func statusCell(item host.Item) string {
	switch {
	case item.IsFolder:
		return "list"
	case item.Playable:
		return "in library"
	default:
		return "missing"
	}
}

func noteCell(item host.Item) string {
	return strings.ReplaceAll(item.Info.Tagline, "\n", " / ")
}
