package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vmunix/listbridge/internal/config"
)

// mockServer creates an httptest.Server with common test patterns.
type mockServer struct {
	t          *testing.T
	handler    http.HandlerFunc
	expectPath string
}

func newMockServer(t *testing.T) *mockServer {
	t.Helper()
	return &mockServer{t: t}
}

// ExpectPath sets the expected request path and verifies it in the handler.
func (m *mockServer) ExpectPath(path string) *mockServer {
	m.expectPath = path
	return m
}

// Handler sets a custom handler function.
func (m *mockServer) Handler(h func(w http.ResponseWriter, r *http.Request)) *mockServer {
	m.handler = h
	return m
}

// RespondJSON sets up a handler that responds with JSON-encoded data.
func (m *mockServer) RespondJSON(v any) *mockServer {
	m.handler = func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(m.t, w, v)
	}
	return m
}

// Build creates the server and closes it when the test ends.
func (m *mockServer) Build() *httptest.Server {
	m.t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.expectPath != "" {
			assert.Equal(m.t, m.expectPath, r.URL.Path, "unexpected request path")
		}
		if m.handler != nil {
			m.handler(w, r)
		}
	}))
	m.t.Cleanup(srv.Close)
	return srv
}

func respondJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Fatalf("failed to encode JSON response: %v", err)
	}
}

// catalogServer serves folder and movie lists keyed by "type:id" and
// records every request in order.
type catalogServer struct {
	mu    sync.Mutex
	calls []string
	lists map[string]any
}

func newCatalogServer(t *testing.T, lists map[string]any) (*catalogServer, *httptest.Server) {
	t.Helper()
	cs := &catalogServer{lists: lists}
	srv := newMockServer(t).Handler(func(w http.ResponseWriter, r *http.Request) {
		key := r.URL.Path[1:] + ":" + r.URL.Query().Get("id")
		cs.mu.Lock()
		cs.calls = append(cs.calls, key)
		cs.mu.Unlock()

		list, ok := cs.lists[key]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		respondJSON(t, w, list)
	}).Build()
	return cs, srv
}

func (cs *catalogServer) Calls() []string {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return append([]string(nil), cs.calls...)
}

// kodiServer answers Kodi JSON-RPC. Movies are found by exact original title.
type kodiServer struct {
	mu      sync.Mutex
	methods []string
	movies  map[string]map[string]any // originaltitle -> moviedetails
}

func newKodiServer(t *testing.T, movies map[string]map[string]any) (*kodiServer, *httptest.Server) {
	t.Helper()
	ks := &kodiServer{movies: movies}
	srv := newMockServer(t).ExpectPath("/jsonrpc").Handler(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     string          `json:"id"`
			Method string          `json:"method"`
			Params json.RawMessage `json:"params"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode rpc: %v", err)
		}
		ks.mu.Lock()
		ks.methods = append(ks.methods, req.Method)
		ks.mu.Unlock()

		respondJSON(t, w, map[string]any{
			"jsonrpc": "2.0",
			"id":      req.ID,
			"result":  ks.result(t, req.Method, req.Params),
		})
	}).Build()
	return ks, srv
}

func (ks *kodiServer) result(t *testing.T, method string, params json.RawMessage) any {
	switch method {
	case "JSONRPC.Ping":
		return "pong"
	case "VideoLibrary.GetMovies":
		var p struct {
			Filter struct {
				And []struct {
					Field string          `json:"field"`
					Value json.RawMessage `json:"value"`
				} `json:"and"`
			} `json:"filter"`
		}
		if err := json.Unmarshal(params, &p); err != nil {
			t.Fatalf("decode GetMovies params: %v", err)
		}
		for _, rule := range p.Filter.And {
			if rule.Field != "originaltitle" {
				continue
			}
			var title string
			_ = json.Unmarshal(rule.Value, &title)
			if d, ok := ks.movies[title]; ok {
				return map[string]any{
					"limits": map[string]any{"total": 1},
					"movies": []any{map[string]any{"movieid": d["movieid"], "title": d["title"], "year": d["year"]}},
				}
			}
		}
		return map[string]any{"limits": map[string]any{"total": 0}}
	case "VideoLibrary.GetMovieDetails":
		var p struct {
			MovieID int `json:"movieid"`
		}
		_ = json.Unmarshal(params, &p)
		for _, d := range ks.movies {
			if d["movieid"] == p.MovieID {
				return map[string]any{"moviedetails": d}
			}
		}
		t.Fatalf("unknown movie id %d", p.MovieID)
	}
	return "OK"
}

func (ks *kodiServer) Methods() []string {
	ks.mu.Lock()
	defer ks.mu.Unlock()
	return append([]string(nil), ks.methods...)
}

func testConfig(catalogURL, kodiURL string) *config.Config {
	cfg := config.Default()
	cfg.Catalog.URL = catalogURL + "/"
	cfg.Kodi.URL = kodiURL
	return cfg
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
