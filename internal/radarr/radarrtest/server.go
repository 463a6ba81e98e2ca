// Package radarrtest provides an in-memory Radarr v3 API for tests.
package radarrtest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
)

// RootFolder mirrors Radarr's root folder payload.
type RootFolder struct {
	ID        int    `json:"id"`
	Path      string `json:"path"`
	FreeSpace int64  `json:"freeSpace"`
}

// QualityProfile mirrors Radarr's quality profile payload.
type QualityProfile struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// AddedMovie is a movie accepted through POST /api/v3/movie.
type AddedMovie struct {
	TMDBID           int64  `json:"tmdbId"`
	RootFolderPath   string `json:"rootFolderPath"`
	QualityProfileID int    `json:"qualityProfileId"`
	Monitored        bool   `json:"monitored"`
	AddOptions       struct {
		SearchForMovie bool `json:"searchForMovie"`
	} `json:"addOptions"`
}

// Server is a fake Radarr. Zero-value fields fall back to a single root
// folder and three quality profiles.
type Server struct {
	*httptest.Server

	APIKey string

	mu          sync.Mutex
	folders     []RootFolder
	profiles    []QualityProfile
	added       []AddedMovie
	movieStatus int
	movieReqs   int
}

// New starts a fake Radarr that accepts apiKey.
func New(apiKey string) *Server {
	s := &Server{
		APIKey: apiKey,
		folders: []RootFolder{
			{ID: 1, Path: "/srv/data/media/movies", FreeSpace: 0},
		},
		profiles: []QualityProfile{
			{ID: 1, Name: "hd"},
			{ID: 2, Name: "uhd"},
			{ID: 3, Name: "any"},
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v3/system/status", s.authMiddleware(s.systemStatus))
	mux.HandleFunc("GET /api/v3/rootfolder", s.authMiddleware(s.listRootFolders))
	mux.HandleFunc("GET /api/v3/qualityprofile", s.authMiddleware(s.listQualityProfiles))
	mux.HandleFunc("POST /api/v3/movie", s.authMiddleware(s.addMovie))
	s.Server = httptest.NewServer(mux)
	return s
}

// SetRootFolders replaces the root folders served.
func (s *Server) SetRootFolders(folders ...RootFolder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.folders = folders
}

// SetQualityProfiles replaces the quality profiles served.
func (s *Server) SetQualityProfiles(profiles ...QualityProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles = profiles
}

// FailMovieAdds makes POST /api/v3/movie answer with status.
func (s *Server) FailMovieAdds(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.movieStatus = status
}

// Added returns the movies accepted so far.
func (s *Server) Added() []AddedMovie {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]AddedMovie(nil), s.added...)
}

// MovieRequests counts every POST /api/v3/movie, accepted or not.
func (s *Server) MovieRequests() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.movieReqs
}

// authMiddleware validates the X-Api-Key header.
func (s *Server) authMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		apiKey := r.Header.Get("X-Api-Key")
		if apiKey == "" {
			apiKey = r.URL.Query().Get("apikey")
		}
		if apiKey != s.APIKey {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid API key"})
			return
		}
		next(w, r)
	}
}

func writeJSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) systemStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"appName": "Radarr",
		"version": "5.0.0.0",
	})
}

func (s *Server) listRootFolders(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.folders)
}

func (s *Server) listQualityProfiles(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.profiles)
}

func (s *Server) addMovie(w http.ResponseWriter, r *http.Request) {
	var req AddedMovie
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, []map[string]string{
			{"propertyName": "", "errorMessage": "Invalid request"},
		})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.movieReqs++

	if s.movieStatus != 0 {
		writeJSON(w, s.movieStatus, map[string]string{"message": http.StatusText(s.movieStatus)})
		return
	}

	for _, m := range s.added {
		if m.TMDBID == req.TMDBID {
			writeJSON(w, http.StatusBadRequest, []map[string]string{
				{"propertyName": "TmdbId", "errorMessage": "This movie has already been added"},
			})
			return
		}
	}

	s.added = append(s.added, req)
	writeJSON(w, http.StatusCreated, map[string]any{
		"id":     len(s.added),
		"tmdbId": req.TMDBID,
	})
}
