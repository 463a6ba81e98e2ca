// Package radarr integrates with Radarr to request movies that are missing
// from the local library.
package radarr

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const requestTimeout = 5 * time.Second

// ErrUnavailable wraps transport failures talking to Radarr.
var ErrUnavailable = errors.New("radarr unavailable")

// RootFolder is a Radarr library root.
type RootFolder struct {
	ID        int    `json:"id"`
	Path      string `json:"path"`
	FreeSpace int64  `json:"freeSpace"`
}

// QualityProfile is a Radarr quality profile.
type QualityProfile struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// AddOptions controls what Radarr does after adding a movie.
type AddOptions struct {
	SearchForMovie bool `json:"searchForMovie"`
}

// AddMovieRequest is the body of POST /api/v3/movie.
type AddMovieRequest struct {
	TMDBID           int64      `json:"tmdbId"`
	RootFolderPath   string     `json:"rootFolderPath"`
	QualityProfileID int        `json:"qualityProfileId"`
	Monitored        bool       `json:"monitored"`
	AddOptions       AddOptions `json:"addOptions"`
}

// ValidationError is one entry of a 400 response body.
type ValidationError struct {
	PropertyName string `json:"propertyName"`
	ErrorMessage string `json:"errorMessage"`
}

// AddOutcome classifies the answer to an add request.
type AddOutcome int

const (
	Rejected AddOutcome = iota
	Added
	AlreadyExists
)

func (o AddOutcome) String() string {
	switch o {
	case Added:
		return "added"
	case AlreadyExists:
		return "already exists"
	default:
		return "rejected"
	}
}

// AddResult is the classified answer to an add request.
type AddResult struct {
	Outcome AddOutcome
	Status  int
	Message string
}

// Client is an HTTP client for the Radarr v3 API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a new Radarr API client.
func NewClient(baseURL, apiKey string, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		log: log.With("component", "radarr"),
	}
}

// CheckConnection reports whether Radarr is reachable and accepts the API key.
func (c *Client) CheckConnection(ctx context.Context) bool {
	resp, err := c.do(ctx, http.MethodGet, "/api/v3/system/status", nil)
	if err != nil {
		c.log.Warn("connection check failed", "error", err)
		return false
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		c.log.Warn("connection check rejected", "status", resp.StatusCode)
		return false
	}
	return true
}

// RootFolders lists Radarr's root folders. A nil slice with a nil error
// means Radarr answered with a non-200 status.
func (c *Client) RootFolders(ctx context.Context) ([]RootFolder, error) {
	var folders []RootFolder
	ok, err := c.getJSON(ctx, "/api/v3/rootfolder", &folders)
	if err != nil || !ok {
		return nil, err
	}
	return folders, nil
}

// QualityProfiles lists Radarr's quality profiles. A nil slice with a nil
// error means Radarr answered with a non-200 status.
func (c *Client) QualityProfiles(ctx context.Context) ([]QualityProfile, error) {
	var profiles []QualityProfile
	ok, err := c.getJSON(ctx, "/api/v3/qualityprofile", &profiles)
	if err != nil || !ok {
		return nil, err
	}
	return profiles, nil
}

// AddMovie submits a movie. Only transport failures are returned as errors;
// HTTP outcomes are classified in the result.
func (c *Client) AddMovie(ctx context.Context, req AddMovieRequest) (AddResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return AddResult{}, fmt.Errorf("marshal movie: %w", err)
	}

	c.log.Debug("adding movie", "tmdb_id", req.TMDBID, "root", req.RootFolderPath, "profile", req.QualityProfileID)

	resp, err := c.do(ctx, http.MethodPost, "/api/v3/movie", bytes.NewReader(body))
	if err != nil {
		return AddResult{}, err
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, _ := io.ReadAll(resp.Body)
	result := AddResult{Status: resp.StatusCode}

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		result.Outcome = Added
	case http.StatusBadRequest:
		result.Message = validationMessage(respBody)
		if isAlreadyAdded(result.Message) {
			result.Outcome = AlreadyExists
		}
	default:
		result.Message = strings.TrimSpace(string(respBody))
		if result.Message == "" {
			result.Message = http.StatusText(resp.StatusCode)
		}
	}
	return result, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) (bool, error) {
	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return false, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		c.log.Debug("unexpected status", "path", path, "status", resp.StatusCode)
		return false, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return false, fmt.Errorf("decode %s: %w", path, err)
	}
	return true, nil
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return resp, nil
}

// validationMessage joins the errorMessage fields of a 400 body, falling
// back to the raw body when it is not a validation list.
func validationMessage(body []byte) string {
	var errs []ValidationError
	if err := json.Unmarshal(body, &errs); err != nil || len(errs) == 0 {
		return strings.TrimSpace(string(body))
	}
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		if e.ErrorMessage != "" {
			msgs = append(msgs, e.ErrorMessage)
		}
	}
	return strings.Join(msgs, "; ")
}

func isAlreadyAdded(msg string) bool {
	return strings.Contains(strings.ToLower(msg), "already been added")
}
