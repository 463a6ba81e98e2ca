package navigation

import (
	"context"

	"github.com/vmunix/listbridge/internal/catalog"
	"github.com/vmunix/listbridge/internal/library"
)

const testBase = "plugin://plugin.video.listbridge/"

type fakeCatalog struct {
	folders map[string]*catalog.FolderList
	movies  map[string]*catalog.MovieList
	err     error
	calls   []string
}

func (f *fakeCatalog) FolderList(_ context.Context, id string) (*catalog.FolderList, error) {
	f.calls = append(f.calls, "folder_list:"+id)
	if f.err != nil {
		return nil, f.err
	}
	return f.folders[id], nil
}

func (f *fakeCatalog) MovieList(_ context.Context, id string) (*catalog.MovieList, error) {
	f.calls = append(f.calls, "movie_list:"+id)
	if f.err != nil {
		return nil, f.err
	}
	return f.movies[id], nil
}

// fakeResolver resolves by original title and skips movies without a
// release date, like library.Resolver.
type fakeResolver struct {
	local map[string]*library.MovieDetail
	err   error
	calls map[string]int
}

func newFakeResolver(local map[string]*library.MovieDetail) *fakeResolver {
	return &fakeResolver{local: local, calls: map[string]int{}}
}

func (f *fakeResolver) Resolve(_ context.Context, m catalog.Movie) (library.Resolution, error) {
	f.calls[m.OriginalTitle]++
	res := library.Resolution{Movie: m}
	if f.err != nil {
		return res, f.err
	}
	if m.ReleaseDate == "" {
		res.Skipped = true
		return res, nil
	}
	res.Detail = f.local[m.OriginalTitle]
	return res, nil
}

type fakeAcquirer struct {
	ids []int64
	err error
}

func (f *fakeAcquirer) AddMovieWithPrompts(_ context.Context, tmdbID int64) (bool, error) {
	f.ids = append(f.ids, tmdbID)
	return f.err == nil, f.err
}

func strPtr(s string) *string { return &s }

func request(params map[string]string) Request {
	return Request{BaseURL: testBase, Handle: 1, Params: params}
}
