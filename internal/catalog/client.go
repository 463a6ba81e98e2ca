package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the public list server.
	DefaultBaseURL = "http://jlom.fly.dev/"

	// DefaultImageBaseURL prefixes poster and backdrop paths.
	DefaultImageBaseURL = "https://image.tmdb.org/t/p/w500"

	requestTimeout = 5 * time.Second
)

// ErrUnavailable wraps transport failures (timeouts, refused connections, DNS).
var ErrUnavailable = errors.New("catalog unavailable")

// Client is a catalog API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL. A trailing slash is added when missing.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// NewClient creates a new catalog client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		log: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if !strings.HasSuffix(c.baseURL, "/") {
		c.baseURL += "/"
	}
	c.log = c.log.With("component", "catalog")
	return c
}

// FolderList fetches a folder list. A nil list with a nil error means the
// catalog had no data for the id.
func (c *Client) FolderList(ctx context.Context, id string) (*FolderList, error) {
	var list FolderList
	ok, err := c.fetch(ctx, FolderListType, id, &list)
	if err != nil || !ok {
		return nil, err
	}
	return &list, nil
}

// MovieList fetches a movie list. A nil list with a nil error means the
// catalog had no data for the id.
func (c *Client) MovieList(ctx context.Context, id string) (*MovieList, error) {
	var list MovieList
	ok, err := c.fetch(ctx, MovieListType, id, &list)
	if err != nil || !ok {
		return nil, err
	}
	return &list, nil
}

// Ping reports whether the catalog answers the master folder list.
func (c *Client) Ping(ctx context.Context) error {
	list, err := c.FolderList(ctx, MasterID)
	if err != nil {
		return err
	}
	if list == nil {
		return fmt.Errorf("catalog has no %s list", MasterID)
	}
	return nil
}

// fetch returns false without error for any non-200 status; the catalog does
// not distinguish "unknown id" from server failures.
func (c *Client) fetch(ctx context.Context, listType ListType, id string, out any) (bool, error) {
	reqURL := c.baseURL + string(listType) + "?id=" + url.QueryEscape(id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return false, fmt.Errorf("create request: %w", err)
	}

	c.log.Debug("fetching list", "type", listType, "id", id)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		c.log.Debug("list not available", "type", listType, "id", id, "status", resp.StatusCode)
		return false, nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return false, fmt.Errorf("decode %s: %w", listType, err)
	}
	return true, nil
}
