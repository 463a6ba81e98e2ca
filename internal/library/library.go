// Package library matches catalog movies against the host's local movie
// library.
package library

import (
	"context"

	"github.com/vmunix/listbridge/internal/catalog"
)

// Executor sends one JSON-RPC request to the host and decodes its result.
type Executor interface {
	Call(ctx context.Context, method string, params, result any) error
}

// Candidate is a library record returned by a title/year search.
type Candidate struct {
	MovieID    int    `json:"movieid"`
	Label      string `json:"label"`
	Title      string `json:"title"`
	IMDBNumber string `json:"imdbnumber"`
	Year       int    `json:"year"`
}

// MovieDetail is the full library record of a movie.
type MovieDetail struct {
	MovieID       int               `json:"movieid"`
	Title         string            `json:"title"`
	OriginalTitle string            `json:"originaltitle"`
	SortTitle     string            `json:"sorttitle"`
	Genre         []string          `json:"genre"`
	Director      []string          `json:"director"`
	Plot          string            `json:"plot"`
	PlotOutline   string            `json:"plotoutline"`
	Runtime       int               `json:"runtime"` // seconds
	File          string            `json:"file"`
	Premiered     string            `json:"premiered"`
	Playcount     int               `json:"playcount"`
	LastPlayed    string            `json:"lastplayed"`
	Rating        float64           `json:"rating"`
	UserRating    int               `json:"userrating"`
	Votes         string            `json:"votes"`
	IMDBNumber    string            `json:"imdbnumber"`
	SetID         int               `json:"setid"`
	Art           map[string]string `json:"art"`
	Fanart        string            `json:"fanart"`
	Thumbnail     string            `json:"thumbnail"`
}

// Resolution is the outcome of matching one catalog movie.
// Skipped is set when the movie carried no usable release year and the
// library was never queried.
type Resolution struct {
	Movie   catalog.Movie
	Detail  *MovieDetail
	Skipped bool
}

// Resolved reports whether a local copy was found.
func (r Resolution) Resolved() bool {
	return r.Detail != nil
}
