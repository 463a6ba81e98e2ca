package navigation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vmunix/listbridge/internal/catalog"
	"github.com/vmunix/listbridge/internal/host"
	"github.com/vmunix/listbridge/internal/host/mocks"
	"github.com/vmunix/listbridge/internal/library"
)

type harness struct {
	catalog   *fakeCatalog
	resolver  *fakeResolver
	presenter *mocks.MockPresenter
	player    *mocks.MockPlayer
	dialogs   *mocks.MockDialogs
	notifier  *mocks.MockNotifier
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	ctrl := gomock.NewController(t)
	return &harness{
		catalog: &fakeCatalog{
			folders: map[string]*catalog.FolderList{},
			movies:  map[string]*catalog.MovieList{},
		},
		resolver:  newFakeResolver(map[string]*library.MovieDetail{}),
		presenter: mocks.NewMockPresenter(ctrl),
		player:    mocks.NewMockPlayer(ctrl),
		dialogs:   mocks.NewMockDialogs(ctrl),
		notifier:  mocks.NewMockNotifier(ctrl),
	}
}

func (h *harness) router(opts ...Option) *Router {
	return NewRouter(h.catalog, h.resolver, Host{
		Presenter: h.presenter,
		Player:    h.player,
		Dialogs:   h.dialogs,
		Notifier:  h.notifier,
	}, opts...)
}

// capture records the next rendered directory.
func (h *harness) capture(dir *host.Directory) {
	h.presenter.EXPECT().Render(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, d host.Directory) error {
		*dir = d
		return nil
	})
}

func masterList() *catalog.FolderList {
	return &catalog.FolderList{
		Title: "Lists",
		Folders: []catalog.Folder{
			{ID: "decades", Title: "By decade", Kind: catalog.FolderListType},
			{ID: "42", Title: "Top 250", Kind: catalog.MovieListType},
			{ID: "x", Title: "Broken", Kind: "podcast_list"},
		},
	}
}

func TestRoute_NoParamsIsMasterFolderList(t *testing.T) {
	h := newHarness(t)
	h.catalog.folders[catalog.MasterID] = masterList()
	r := h.router()

	var implicit, explicit host.Directory
	h.capture(&implicit)
	require.NoError(t, r.Route(context.Background(), request(map[string]string{})))
	h.capture(&explicit)
	require.NoError(t, r.Route(context.Background(), request(map[string]string{"action": "list_folders", "id": "master"})))

	assert.Equal(t, explicit, implicit)
	assert.Equal(t, []string{"folder_list:master", "folder_list:master"}, h.catalog.calls)
}

func TestRoute_IDWithoutAction(t *testing.T) {
	h := newHarness(t)
	h.catalog.folders["decades"] = &catalog.FolderList{Title: "By decade"}

	var dir host.Directory
	h.capture(&dir)
	require.NoError(t, h.router().Route(context.Background(), request(map[string]string{"id": "decades"})))
	assert.Equal(t, "By decade", dir.Category)
}

func TestRoute_ListFolders(t *testing.T) {
	h := newHarness(t)
	h.catalog.folders[catalog.MasterID] = masterList()

	var dir host.Directory
	h.capture(&dir)
	require.NoError(t, h.router().Route(context.Background(), request(nil)))

	assert.Equal(t, "Lists", dir.Category)
	assert.Equal(t, "movies", dir.Content)
	assert.Equal(t, []host.SortMethod{host.SortUnsorted}, dir.SortMethods)
	require.Len(t, dir.Items, 2, "unknown folder kinds are skipped")

	assert.Equal(t, host.Item{
		Label:    "By decade",
		URL:      testBase + "?action=list_folders&id=decades",
		IsFolder: true,
		Info:     host.VideoInfo{MediaType: host.MediaSet, Title: "By decade"},
	}, dir.Items[0])
	assert.Equal(t, testBase+"?action=list_movies&id=42", dir.Items[1].URL)
	assert.True(t, dir.Items[1].IsFolder)
}

func TestRoute_NilListRendersNothing(t *testing.T) {
	tests := []struct {
		name   string
		params map[string]string
	}{
		{"folders", map[string]string{"action": "list_folders", "id": "gone"}},
		{"movies", map[string]string{"action": "list_movies", "id": "gone"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			// no Render expectation: rendering fails the test
			assert.NoError(t, h.router().Route(context.Background(), request(tt.params)))
		})
	}
}

func TestRoute_CatalogErrorPropagates(t *testing.T) {
	h := newHarness(t)
	h.catalog.err = catalog.ErrUnavailable

	err := h.router().Route(context.Background(), request(map[string]string{"action": "list_movies", "id": "42"}))
	assert.ErrorIs(t, err, catalog.ErrUnavailable)
}

func TestRoute_UnknownAction(t *testing.T) {
	h := newHarness(t)

	err := h.router().Route(context.Background(), request(map[string]string{"action": "delete_everything"}))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownAction)

	var perr *ProtocolError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, Action("delete_everything"), perr.Action)
	assert.Empty(t, h.catalog.calls)
}

func TestRoute_MissingParams(t *testing.T) {
	tests := []struct {
		name   string
		params map[string]string
	}{
		{"list_movies without id", map[string]string{"action": "list_movies"}},
		{"play without id", map[string]string{"action": "play"}},
		{"other_action without title", map[string]string{"action": "other_action", "id": "603"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			err := h.router().Route(context.Background(), request(tt.params))
			assert.ErrorIs(t, err, ErrMissingParam)
		})
	}
}

func movieList(order catalog.Ordering) *catalog.MovieList {
	return &catalog.MovieList{
		Title:     "Top 250",
		OrderedBy: order,
		Movies: []catalog.Movie{
			{
				ID: 949, Title: "Heat", OriginalTitle: "Heat", Overview: "Cops and robbers.",
				ReleaseDate: "1995-12-15", PosterPath: strPtr("/heat.jpg"), BackdropPath: strPtr("/heat-bg.jpg"),
			},
			{
				ID: 101, Title: "The Professional", OriginalTitle: "Léon", Overview: "A hitman.",
				ReleaseDate: "1994-09-14",
			},
			{
				ID: 5, Title: "Untitled", OriginalTitle: "Untitled", ReleaseDate: "",
			},
		},
	}
}

func heatDetail() *library.MovieDetail {
	return &library.MovieDetail{
		MovieID:   7,
		Title:     "Heat (Director's Cut)",
		Genre:     []string{"Crime", "Drama"},
		Plot:      "Local plot.",
		Runtime:   10200,
		File:      "/movies/Heat (1995)/heat.mkv",
		Premiered: "1995-12-15",
		Playcount: 2,
	}
}

func TestRoute_ListMovies_SortMethods(t *testing.T) {
	tests := []struct {
		order catalog.Ordering
		want  []host.SortMethod
	}{
		{catalog.OrderNone, []host.SortMethod{host.SortNone, host.SortTitle}},
		{catalog.OrderRank, []host.SortMethod{host.SortUnsorted}},
		{catalog.OrderYear, []host.SortMethod{host.SortYear}},
	}
	for _, tt := range tests {
		t.Run(string(tt.order), func(t *testing.T) {
			h := newHarness(t)
			h.catalog.movies["42"] = movieList(tt.order)

			var dir host.Directory
			h.capture(&dir)
			require.NoError(t, h.router().Route(context.Background(), request(map[string]string{"action": "list_movies", "id": "42"})))
			assert.Equal(t, tt.want, dir.SortMethods)
		})
	}
}

func TestRoute_ListMovies_Ranked(t *testing.T) {
	h := newHarness(t)
	h.catalog.movies["42"] = movieList(catalog.OrderRank)
	h.resolver.local["Heat"] = heatDetail()

	var dir host.Directory
	h.capture(&dir)
	require.NoError(t, h.router().Route(context.Background(), request(map[string]string{"action": "list_movies", "id": "42"})))

	require.Len(t, dir.Items, 3)
	assert.Equal(t, "1 - Heat", dir.Items[0].Label)
	assert.Equal(t, "2 - The Professional", dir.Items[1].Label)
	assert.Equal(t, "3 - Untitled", dir.Items[2].Label)

	assert.Equal(t, "Ranked 1", dir.Items[0].Info.Tagline)
	assert.Equal(t, "Ranked 2\nNot in your library", dir.Items[1].Info.Tagline)
}

func TestRoute_ListMovies_ResolvedItem(t *testing.T) {
	h := newHarness(t)
	h.catalog.movies["42"] = movieList(catalog.OrderNone)
	h.resolver.local["Heat"] = heatDetail()

	var dir host.Directory
	h.capture(&dir)
	require.NoError(t, h.router().Route(context.Background(), request(map[string]string{"action": "list_movies", "id": "42"})))

	assert.Equal(t, "Top 250", dir.Category)
	heat := dir.Items[0]
	assert.Equal(t, "Heat", heat.Label)
	assert.True(t, heat.Playable)
	assert.False(t, heat.IsFolder)
	assert.Equal(t, testBase+"?action=play&id=7&title=Heat", heat.URL)
	assert.Equal(t, host.Art{
		Poster: "https://image.tmdb.org/t/p/w500/heat.jpg",
		Fanart: "https://image.tmdb.org/t/p/w500/heat-bg.jpg",
	}, heat.Art)
	assert.Equal(t, host.VideoInfo{
		MediaType:       host.MediaMovie,
		Title:           "Heat (Director's Cut)",
		Year:            1995,
		Plot:            "Local plot.",
		Genres:          []string{"Crime", "Drama"},
		Duration:        10200,
		DBID:            7,
		Path:            "videodb://movies/titles/7",
		FilenameAndPath: "/movies/Heat (1995)/heat.mkv",
		Premiered:       "1995-12-15",
		Playcount:       2,
	}, heat.Info)
}

func TestRoute_ListMovies_UnresolvedItem(t *testing.T) {
	h := newHarness(t)
	h.catalog.movies["42"] = movieList(catalog.OrderYear)

	var dir host.Directory
	h.capture(&dir)
	require.NoError(t, h.router(WithImageBaseURL("http://img/")).Route(context.Background(),
		request(map[string]string{"action": "list_movies", "id": "42"})))

	leon := dir.Items[1]
	assert.Equal(t, "The Professional", leon.Label)
	assert.False(t, leon.Playable)
	assert.Equal(t, "Not in your library", leon.Info.Tagline)
	assert.Equal(t, "A hitman.", leon.Info.Plot)
	assert.Equal(t, 1994, leon.Info.Year)
	assert.Zero(t, leon.Info.DBID)
	assert.Empty(t, leon.Art.Poster)
	assert.Equal(t, testBase+"?action=other_action&id=101&title=L%C3%A9on", leon.URL)

	assert.Equal(t, "http://img//heat.jpg", dir.Items[0].Art.Poster)
}

func TestRoute_ListMovies_NoReleaseDate(t *testing.T) {
	h := newHarness(t)
	h.catalog.movies["42"] = movieList(catalog.OrderNone)
	// Even a title present locally stays unresolved without a release year.
	h.resolver.local["Untitled"] = &library.MovieDetail{MovieID: 9}

	var dir host.Directory
	h.capture(&dir)
	require.NoError(t, h.router().Route(context.Background(), request(map[string]string{"action": "list_movies", "id": "42"})))

	untitled := dir.Items[2]
	assert.False(t, untitled.Playable)
	assert.Zero(t, untitled.Info.Year)
	assert.Equal(t, "Not in your library", untitled.Info.Tagline)
}

func TestRoute_ListMovies_ResolvesEachMovieOnce(t *testing.T) {
	h := newHarness(t)
	h.catalog.movies["42"] = movieList(catalog.OrderRank)

	h.presenter.EXPECT().Render(gomock.Any(), gomock.Any()).Return(nil)
	require.NoError(t, h.router().Route(context.Background(), request(map[string]string{"action": "list_movies", "id": "42"})))

	assert.Equal(t, map[string]int{"Heat": 1, "Léon": 1, "Untitled": 1}, h.resolver.calls)
}

func TestRoute_ListMovies_ResolverErrorPropagates(t *testing.T) {
	h := newHarness(t)
	h.catalog.movies["42"] = movieList(catalog.OrderNone)
	boom := errors.New("jsonrpc down")
	h.resolver.err = boom

	err := h.router().Route(context.Background(), request(map[string]string{"action": "list_movies", "id": "42"}))
	assert.ErrorIs(t, err, boom)
}

func TestRoute_Play(t *testing.T) {
	h := newHarness(t)
	h.player.EXPECT().Play(gomock.Any(), "videodb://movies/titles/7").Return(nil)

	err := h.router().Route(context.Background(), request(map[string]string{"action": "play", "id": "7", "title": "Heat"}))
	assert.NoError(t, err)
}

func TestRoute_PlayInvalidID(t *testing.T) {
	h := newHarness(t)

	err := h.router().Route(context.Background(), request(map[string]string{"action": "play", "id": "seven"}))
	assert.ErrorIs(t, err, ErrInvalidParam)
}

func TestRoute_PlayLegacyUnresolvedID(t *testing.T) {
	h := newHarness(t)
	gomock.InOrder(
		h.dialogs.EXPECT().Select("Movie not found", []string{"Search in library"}).Return(0, true),
		h.player.EXPECT().GlobalSearch(gomock.Any(), "Léon").Return(nil),
	)

	acq := &fakeAcquirer{}
	err := h.router(WithAcquirer(acq)).Route(context.Background(), request(map[string]string{"action": "play", "id": "0", "title": "Léon"}))
	require.NoError(t, err)
	assert.Empty(t, acq.ids)
}

func TestRoute_OtherAction_Search(t *testing.T) {
	h := newHarness(t)
	gomock.InOrder(
		h.dialogs.EXPECT().Select("Movie not found", []string{"Search in library"}).Return(0, true),
		h.player.EXPECT().GlobalSearch(gomock.Any(), "Léon").Return(nil),
	)

	err := h.router().Route(context.Background(), request(map[string]string{"action": "other_action", "id": "101", "title": "Léon"}))
	assert.NoError(t, err)
}

func TestRoute_OtherAction_Acquire(t *testing.T) {
	h := newHarness(t)
	h.dialogs.EXPECT().Select("Movie not found", []string{"Search in library", "Add to Radarr"}).Return(1, true)

	acq := &fakeAcquirer{}
	err := h.router(WithAcquirer(acq)).Route(context.Background(), request(map[string]string{"action": "other_action", "id": "101", "title": "Léon"}))
	require.NoError(t, err)
	assert.Equal(t, []int64{101}, acq.ids)
}

func TestRoute_OtherAction_AcquireErrorPropagates(t *testing.T) {
	h := newHarness(t)
	h.dialogs.EXPECT().Select(gomock.Any(), gomock.Any()).Return(1, true)

	boom := errors.New("radarr down")
	acq := &fakeAcquirer{err: boom}
	err := h.router(WithAcquirer(acq)).Route(context.Background(), request(map[string]string{"action": "other_action", "id": "101", "title": "Léon"}))
	assert.ErrorIs(t, err, boom)
}

func TestRoute_OtherAction_AcquireBadID(t *testing.T) {
	h := newHarness(t)
	h.dialogs.EXPECT().Select(gomock.Any(), gomock.Any()).Return(1, true)
	h.notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Do(func(_ context.Context, n host.Notification) {
		assert.Equal(t, host.LevelError, n.Level)
	})

	acq := &fakeAcquirer{}
	err := h.router(WithAcquirer(acq)).Route(context.Background(), request(map[string]string{"action": "other_action", "id": "abc", "title": "Léon"}))
	require.NoError(t, err)
	assert.Empty(t, acq.ids)
}

func TestRoute_OtherAction_Cancelled(t *testing.T) {
	h := newHarness(t)
	h.dialogs.EXPECT().Select(gomock.Any(), gomock.Any()).Return(-1, false)

	acq := &fakeAcquirer{}
	err := h.router(WithAcquirer(acq)).Route(context.Background(), request(map[string]string{"action": "other_action", "id": "101", "title": "Léon"}))
	require.NoError(t, err)
	assert.Empty(t, acq.ids)
}
