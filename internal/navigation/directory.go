package navigation

import (
	"fmt"
	"strconv"

	"github.com/vmunix/listbridge/internal/catalog"
	"github.com/vmunix/listbridge/internal/host"
	"github.com/vmunix/listbridge/internal/kodi"
	"github.com/vmunix/listbridge/internal/library"
)

const (
	contentMovies   = "movies"
	taglineMissing  = "Not in your library"
	taglineRankedAs = "Ranked %d"
)

// sortMethodsFor maps a list's ordering policy to the host sort methods.
func sortMethodsFor(o catalog.Ordering) []host.SortMethod {
	switch o {
	case catalog.OrderRank:
		return []host.SortMethod{host.SortUnsorted}
	case catalog.OrderYear:
		return []host.SortMethod{host.SortYear}
	default:
		return []host.SortMethod{host.SortNone, host.SortTitle}
	}
}

func (r *Router) folderDirectory(req Request, list *catalog.FolderList) host.Directory {
	dir := host.Directory{
		Category:    list.Title,
		Content:     contentMovies,
		SortMethods: []host.SortMethod{host.SortUnsorted},
		Items:       make([]host.Item, 0, len(list.Folders)),
	}

	for _, f := range list.Folders {
		var action Action
		switch f.Kind {
		case catalog.FolderListType:
			action = ActionListFolders
		case catalog.MovieListType:
			action = ActionListMovies
		default:
			r.log.Warn("skipping folder of unknown type", "id", f.ID, "title", f.Title, "type", f.Kind)
			continue
		}

		dir.Items = append(dir.Items, host.Item{
			Label:    f.Title,
			URL:      req.URL(map[string]string{ParamAction: string(action), ParamID: f.ID}),
			IsFolder: true,
			Info: host.VideoInfo{
				MediaType: host.MediaSet,
				Title:     f.Title,
			},
		})
	}
	return dir
}

func (r *Router) movieDirectory(req Request, list *catalog.MovieList, resolutions []library.Resolution) host.Directory {
	ranked := list.OrderedBy == catalog.OrderRank
	dir := host.Directory{
		Category:    list.Title,
		Content:     contentMovies,
		SortMethods: sortMethodsFor(list.OrderedBy),
		Items:       make([]host.Item, 0, len(resolutions)),
	}

	for i, res := range resolutions {
		rank := i + 1
		m := res.Movie

		item := host.Item{
			Label: m.Title,
			Art: host.Art{
				Poster: m.PosterURL(r.imageBase),
				Fanart: m.FanartURL(r.imageBase),
			},
			Info: host.VideoInfo{
				MediaType: host.MediaMovie,
				Title:     m.Title,
				Plot:      m.Overview,
			},
		}
		if ranked {
			item.Label = fmt.Sprintf("%d - %s", rank, m.Title)
		}
		if m.ReleaseDate != "" {
			item.Info.Year = m.Year()
		}

		if res.Resolved() {
			d := res.Detail
			item.Playable = true
			item.Info.DBID = d.MovieID
			item.Info.Path = kodi.MoviePath(d.MovieID)
			item.Info.Title = d.Title
			item.Info.Genres = d.Genre
			item.Info.Plot = d.Plot
			item.Info.Duration = d.Runtime
			item.Info.FilenameAndPath = d.File
			item.Info.Premiered = d.Premiered
			item.Info.Playcount = d.Playcount
			if ranked {
				item.Info.Tagline = fmt.Sprintf(taglineRankedAs, rank)
			}
			item.URL = req.URL(map[string]string{
				ParamAction: string(ActionPlay),
				ParamID:     strconv.Itoa(d.MovieID),
				ParamTitle:  m.OriginalTitle,
			})
		} else {
			item.Info.Tagline = taglineMissing
			if ranked {
				item.Info.Tagline = fmt.Sprintf(taglineRankedAs, rank) + "\n" + taglineMissing
			}
			item.URL = req.URL(map[string]string{
				ParamAction: string(ActionOther),
				ParamID:     m.ID.String(),
				ParamTitle:  m.OriginalTitle,
			})
		}

		dir.Items = append(dir.Items, item)
	}
	return dir
}
