package radarr

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vmunix/listbridge/internal/host"
)

const heading = "Radarr"

// API is the subset of Client used by Service.
type API interface {
	CheckConnection(ctx context.Context) bool
	RootFolders(ctx context.Context) ([]RootFolder, error)
	QualityProfiles(ctx context.Context) ([]QualityProfile, error)
	AddMovie(ctx context.Context, req AddMovieRequest) (AddResult, error)
}

// Service drives the user-facing acquisition flow.
type Service struct {
	api      API
	dialogs  host.Dialogs
	notifier host.Notifier
	log      *slog.Logger
}

// NewService creates a Service.
func NewService(api API, dialogs host.Dialogs, notifier host.Notifier, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		api:      api,
		dialogs:  dialogs,
		notifier: notifier,
		log:      log.With("component", "acquisition"),
	}
}

// AddMovie submits req and tells the user how it went. It returns true only
// when Radarr accepted a new movie; an already-present movie returns false
// with an informational notification.
func (s *Service) AddMovie(ctx context.Context, req AddMovieRequest) bool {
	res, err := s.api.AddMovie(ctx, req)
	if err != nil {
		s.log.Error("add movie failed", "tmdb_id", req.TMDBID, "error", err)
		s.notify(ctx, host.LevelError, "Could not reach Radarr")
		return false
	}

	switch res.Outcome {
	case Added:
		s.log.Info("movie added", "tmdb_id", req.TMDBID)
		s.notify(ctx, host.LevelInfo, "Movie added")
		return true
	case AlreadyExists:
		s.log.Info("movie already in radarr", "tmdb_id", req.TMDBID)
		s.notify(ctx, host.LevelInfo, "This movie has already been added")
		return false
	default:
		s.log.Error("movie rejected", "tmdb_id", req.TMDBID, "status", res.Status, "message", res.Message)
		s.notify(ctx, host.LevelError, fmt.Sprintf("Add failed (%d): %s", res.Status, res.Message))
		return false
	}
}

// AddMovieWithPrompts checks the connection, asks for a root folder and a
// quality profile, then submits the movie. Nothing is sent to Radarr's movie
// endpoint unless every step succeeds. Transport failures while listing
// folders or profiles are returned.
func (s *Service) AddMovieWithPrompts(ctx context.Context, tmdbID int64) (bool, error) {
	if !s.api.CheckConnection(ctx) {
		s.notify(ctx, host.LevelError, "Radarr unreachable or API key invalid")
		return false, nil
	}

	folders, err := s.api.RootFolders(ctx)
	if err != nil {
		return false, fmt.Errorf("list root folders: %w", err)
	}
	if len(folders) == 0 {
		s.notify(ctx, host.LevelError, "No root folders available")
		return false, nil
	}
	paths := make([]string, len(folders))
	for i, f := range folders {
		paths[i] = f.Path
	}
	folderIdx, ok := s.dialogs.Select("Root folder", paths)
	if !ok || folderIdx < 0 || folderIdx >= len(folders) {
		s.log.Debug("root folder selection cancelled", "tmdb_id", tmdbID)
		return false, nil
	}

	profiles, err := s.api.QualityProfiles(ctx)
	if err != nil {
		return false, fmt.Errorf("list quality profiles: %w", err)
	}
	if len(profiles) == 0 {
		s.notify(ctx, host.LevelError, "No quality profiles available")
		return false, nil
	}
	names := make([]string, len(profiles))
	for i, p := range profiles {
		names[i] = p.Name
	}
	profileIdx, ok := s.dialogs.Select("Quality profile", names)
	if !ok || profileIdx < 0 || profileIdx >= len(profiles) {
		s.log.Debug("quality profile selection cancelled", "tmdb_id", tmdbID)
		return false, nil
	}

	return s.AddMovie(ctx, AddMovieRequest{
		TMDBID:           tmdbID,
		RootFolderPath:   folders[folderIdx].Path,
		QualityProfileID: profiles[profileIdx].ID,
		Monitored:        true,
		AddOptions:       AddOptions{SearchForMovie: true},
	}), nil
}

func (s *Service) notify(ctx context.Context, level host.Level, msg string) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(ctx, host.Notification{Level: level, Heading: heading, Message: msg})
}
