package library

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vmunix/listbridge/internal/catalog"
)

// Resolver finds local copies of catalog movies.
type Resolver struct {
	exec   Executor
	picker Picker
	log    *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithPicker replaces the default first-match selection.
func WithPicker(p Picker) Option {
	return func(r *Resolver) {
		r.picker = p
	}
}

// WithLogger sets the logger.
func WithLogger(log *slog.Logger) Option {
	return func(r *Resolver) {
		r.log = log
	}
}

// NewResolver creates a resolver that queries the library through exec.
func NewResolver(exec Executor, opts ...Option) *Resolver {
	r := &Resolver{
		exec:   exec,
		picker: FirstMatch{},
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.log = r.log.With("component", "resolver")
	return r
}

// ResolveID finds a library movie whose original title equals title and
// whose year is within two years of year.
func (r *Resolver) ResolveID(ctx context.Context, title string, year int) (int, bool, error) {
	c, ok, err := r.find(ctx, Query{Title: title, Year: year})
	if err != nil || !ok {
		return 0, false, err
	}
	return c.MovieID, true, nil
}

func (r *Resolver) find(ctx context.Context, q Query) (Candidate, bool, error) {
	var res searchResult
	if err := r.exec.Call(ctx, methodGetMovies, newSearchParams(q.Title, q.Year), &res); err != nil {
		return Candidate{}, false, fmt.Errorf("search library: %w", err)
	}
	if res.Limits.Total < 1 || len(res.Movies) == 0 {
		return Candidate{}, false, nil
	}
	if len(res.Movies) > 1 {
		r.log.Debug("multiple library matches", "title", q.Title, "year", q.Year, "count", len(res.Movies))
	}
	c, ok := r.picker.Pick(q, res.Movies)
	return c, ok, nil
}

// FetchDetail loads the full record of a library movie.
func (r *Resolver) FetchDetail(ctx context.Context, movieID int) (*MovieDetail, error) {
	var res detailResult
	params := detailParams{MovieID: movieID, Properties: detailProperties}
	if err := r.exec.Call(ctx, methodGetMovieDetails, params, &res); err != nil {
		return nil, fmt.Errorf("movie details %d: %w", movieID, err)
	}
	detail := res.MovieDetails
	if detail.MovieID == 0 {
		detail.MovieID = movieID
	}
	return &detail, nil
}

// Resolve matches one catalog movie. Movies without a usable release year
// are never looked up.
func (r *Resolver) Resolve(ctx context.Context, movie catalog.Movie) (Resolution, error) {
	res := Resolution{Movie: movie}

	if movie.ReleaseDate == "" {
		res.Skipped = true
		return res, nil
	}
	year := movie.Year()
	if year == 0 {
		r.log.Debug("unparsable release date", "title", movie.Title, "release_date", movie.ReleaseDate)
		res.Skipped = true
		return res, nil
	}

	c, ok, err := r.find(ctx, Query{Title: movie.OriginalTitle, Year: year, LocalizedTitle: movie.Title})
	if err != nil {
		return res, err
	}
	if !ok {
		return res, nil
	}

	detail, err := r.FetchDetail(ctx, c.MovieID)
	if err != nil {
		return res, err
	}
	res.Detail = detail
	return res, nil
}
