// Package catalog provides a client for the curated movie-list service.
package catalog

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// ListType selects the catalog endpoint.
type ListType string

const (
	FolderListType ListType = "folder_list"
	MovieListType  ListType = "movie_list"
)

// Ordering is the presentation policy a movie list declares.
type Ordering string

const (
	OrderNone Ordering = ""
	OrderRank Ordering = "rank"
	OrderYear Ordering = "year"
)

// MasterID is the id of the root folder list.
const MasterID = "master"

// Folder is one entry of a folder list.
type Folder struct {
	ID    string   `json:"id"`
	Title string   `json:"title"`
	Kind  ListType `json:"type"`
}

// UnmarshalJSON accepts the folder id as either a JSON string or a number.
func (f *Folder) UnmarshalJSON(data []byte) error {
	type plain Folder
	var raw struct {
		plain
		ID json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*f = Folder(raw.plain)
	f.ID = ""
	switch {
	case len(raw.ID) == 0 || string(raw.ID) == "null":
	case raw.ID[0] == '"':
		if err := json.Unmarshal(raw.ID, &f.ID); err != nil {
			return err
		}
	default:
		var n json.Number
		if err := json.Unmarshal(raw.ID, &n); err != nil {
			return err
		}
		f.ID = n.String()
	}
	return nil
}

// FolderList is the response of the folder_list endpoint.
type FolderList struct {
	Title   string   `json:"title"`
	Folders []Folder `json:"folders"`
}

// Movie is a catalog movie entry. Poster and backdrop are null when the
// catalog has no artwork.
type Movie struct {
	ID            MovieID `json:"id"`
	Title         string  `json:"title"`
	OriginalTitle string  `json:"original_title"`
	Overview      string  `json:"overview"`
	ReleaseDate   string  `json:"release_date"` // "2024-03-01" or ""
	PosterPath    *string `json:"poster_path"`
	BackdropPath  *string `json:"backdrop_path"`
}

// MovieList is the response of the movie_list endpoint.
type MovieList struct {
	Title     string   `json:"title"`
	OrderedBy Ordering `json:"ordered_by"`
	Movies    []Movie  `json:"movies"`
}

// MovieID is the TMDB id of a catalog movie. The list server has emitted it
// both as a number and as a string.
type MovieID int64

func (id *MovieID) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if len(data) == 0 || string(data) == "null" {
		*id = 0
		return nil
	}
	n, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return err
	}
	*id = MovieID(n)
	return nil
}

func (id MovieID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// Year extracts the year from ReleaseDate, or 0 when it is missing or malformed.
func (m *Movie) Year() int {
	if len(m.ReleaseDate) < 4 {
		return 0
	}
	year, err := strconv.Atoi(m.ReleaseDate[:4])
	if err != nil {
		return 0
	}
	return year
}

// PosterURL returns the full poster image URL for the given image base.
func (m *Movie) PosterURL(imageBase string) string {
	return imageURL(imageBase, m.PosterPath)
}

// FanartURL returns the full backdrop image URL for the given image base.
func (m *Movie) FanartURL(imageBase string) string {
	return imageURL(imageBase, m.BackdropPath)
}

func imageURL(base string, path *string) string {
	if path == nil || *path == "" {
		return ""
	}
	return base + *path
}
