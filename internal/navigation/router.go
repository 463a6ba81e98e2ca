package navigation

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/vmunix/listbridge/internal/catalog"
	"github.com/vmunix/listbridge/internal/host"
	"github.com/vmunix/listbridge/internal/kodi"
	"github.com/vmunix/listbridge/internal/library"
)

// Catalog fetches lists from the catalog service. A nil list with a nil
// error means the service had no data.
type Catalog interface {
	FolderList(ctx context.Context, id string) (*catalog.FolderList, error)
	MovieList(ctx context.Context, id string) (*catalog.MovieList, error)
}

// Resolver matches catalog movies against the local library.
type Resolver interface {
	Resolve(ctx context.Context, movie catalog.Movie) (library.Resolution, error)
}

// Acquirer requests a movie from the acquisition service.
type Acquirer interface {
	AddMovieWithPrompts(ctx context.Context, tmdbID int64) (bool, error)
}

// Host bundles the host capabilities the router drives.
type Host struct {
	Presenter host.Presenter
	Player    host.Player
	Dialogs   host.Dialogs
	Notifier  host.Notifier
}

// Fallback menu entries.
const (
	fallbackHeading = "Movie not found"
	optionSearch    = "Search in library"
	optionAcquire   = "Add to Radarr"

	// legacyUnresolvedID marks unresolved movies in play URLs built by
	// earlier releases.
	legacyUnresolvedID = "0"
)

// Router dispatches plugin requests. It holds no per-request state.
type Router struct {
	catalog   Catalog
	resolver  Resolver
	host      Host
	acquirer  Acquirer
	imageBase string
	log       *slog.Logger
}

// Option configures a Router.
type Option func(*Router)

// WithAcquirer enables the acquisition entry of the fallback menu.
func WithAcquirer(a Acquirer) Option {
	return func(r *Router) {
		r.acquirer = a
	}
}

// WithImageBaseURL sets the prefix for poster and fanart paths.
func WithImageBaseURL(base string) Option {
	return func(r *Router) {
		r.imageBase = base
	}
}

// WithLogger sets the router's logger.
func WithLogger(log *slog.Logger) Option {
	return func(r *Router) {
		r.log = log
	}
}

// NewRouter creates a Router.
func NewRouter(cat Catalog, res Resolver, h Host, opts ...Option) *Router {
	r := &Router{
		catalog:   cat,
		resolver:  res,
		host:      h,
		imageBase: catalog.DefaultImageBaseURL,
		log:       slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.log = r.log.With("component", "router")
	return r
}

// Route handles one request. Transport failures and protocol errors are
// returned; an empty catalog answer renders nothing and returns nil.
func (r *Router) Route(ctx context.Context, req Request) error {
	action, ok := req.Param(ParamAction)
	if !ok {
		id, ok := req.Param(ParamID)
		if !ok || id == "" {
			id = catalog.MasterID
		}
		return r.listFolders(ctx, req, id)
	}

	r.log.Debug("routing", "action", action, "params", req.Params)

	switch Action(action) {
	case ActionListFolders:
		id, ok := req.Param(ParamID)
		if !ok || id == "" {
			id = catalog.MasterID
		}
		return r.listFolders(ctx, req, id)
	case ActionListMovies:
		id, err := requireParam(req, ActionListMovies, ParamID)
		if err != nil {
			return err
		}
		return r.listMovies(ctx, req, id)
	case ActionPlay:
		return r.play(ctx, req)
	case ActionOther:
		title, err := requireParam(req, ActionOther, ParamTitle)
		if err != nil {
			return err
		}
		id, _ := req.Param(ParamID)
		return r.otherAction(ctx, id, title)
	default:
		return &ProtocolError{Action: Action(action), Err: ErrUnknownAction}
	}
}

func requireParam(req Request, action Action, name string) (string, error) {
	v, ok := req.Param(name)
	if !ok || v == "" {
		return "", &ProtocolError{Action: action, Param: name, Err: ErrMissingParam}
	}
	return v, nil
}

func (r *Router) listFolders(ctx context.Context, req Request, id string) error {
	list, err := r.catalog.FolderList(ctx, id)
	if err != nil {
		return fmt.Errorf("folder list %s: %w", id, err)
	}
	if list == nil {
		r.log.Info("no folder list", "id", id)
		return nil
	}
	return r.host.Presenter.Render(ctx, r.folderDirectory(req, list))
}

func (r *Router) listMovies(ctx context.Context, req Request, id string) error {
	list, err := r.catalog.MovieList(ctx, id)
	if err != nil {
		return fmt.Errorf("movie list %s: %w", id, err)
	}
	if list == nil {
		r.log.Info("no movie list", "id", id)
		return nil
	}

	resolutions := make([]library.Resolution, 0, len(list.Movies))
	for _, m := range list.Movies {
		res, err := r.resolver.Resolve(ctx, m)
		if err != nil {
			return fmt.Errorf("resolve %q: %w", m.OriginalTitle, err)
		}
		resolutions = append(resolutions, res)
	}

	return r.host.Presenter.Render(ctx, r.movieDirectory(req, list, resolutions))
}

func (r *Router) play(ctx context.Context, req Request) error {
	id, err := requireParam(req, ActionPlay, ParamID)
	if err != nil {
		return err
	}
	if id == legacyUnresolvedID {
		title, err := requireParam(req, ActionPlay, ParamTitle)
		if err != nil {
			return err
		}
		return r.otherAction(ctx, "", title)
	}

	movieID, err := strconv.Atoi(id)
	if err != nil || movieID < 0 {
		return &ProtocolError{Action: ActionPlay, Param: ParamID, Value: id, Err: ErrInvalidParam}
	}

	path := kodi.MoviePath(movieID)
	r.log.Info("playing", "movie_id", movieID, "path", path)
	if err := r.host.Player.Play(ctx, path); err != nil {
		return fmt.Errorf("play %s: %w", path, err)
	}
	return nil
}

// otherAction offers the fallback menu for a movie missing from the library.
// The acquisition entry needs both an enabled acquirer and a catalog id.
func (r *Router) otherAction(ctx context.Context, catalogID, title string) error {
	options := []string{optionSearch}
	if r.acquirer != nil && catalogID != "" {
		options = append(options, optionAcquire)
	}

	idx, ok := r.host.Dialogs.Select(fallbackHeading, options)
	if !ok || idx < 0 || idx >= len(options) {
		r.log.Debug("fallback menu cancelled", "title", title)
		return nil
	}

	switch options[idx] {
	case optionSearch:
		if err := r.host.Player.GlobalSearch(ctx, title); err != nil {
			return fmt.Errorf("global search %q: %w", title, err)
		}
		return nil
	case optionAcquire:
		tmdbID, err := strconv.ParseInt(catalogID, 10, 64)
		if err != nil || tmdbID <= 0 {
			r.log.Warn("bad catalog id for acquisition", "id", catalogID, "title", title)
			r.host.Notifier.Notify(ctx, host.Notification{
				Level:   host.LevelError,
				Heading: fallbackHeading,
				Message: fmt.Sprintf("Cannot request %q: invalid catalog id", title),
			})
			return nil
		}
		if _, err := r.acquirer.AddMovieWithPrompts(ctx, tmdbID); err != nil {
			return fmt.Errorf("acquire %q: %w", title, err)
		}
	}
	return nil
}
