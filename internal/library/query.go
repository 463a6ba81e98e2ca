package library

import "strconv"

const (
	methodGetMovies       = "VideoLibrary.GetMovies"
	methodGetMovieDetails = "VideoLibrary.GetMovieDetails"
)

// yearSlack is how far a library year may drift from the catalog year.
// Catalog release dates and library years often disagree by a year or two.
const yearSlack = 2

var searchProperties = []string{"title", "imdbnumber", "year"}

var detailProperties = []string{
	"director",
	"art",
	"fanart",
	"file",
	"genre",
	"imdbnumber",
	"lastplayed",
	"originaltitle",
	"playcount",
	"plot",
	"plotoutline",
	"premiered",
	"rating",
	"runtime",
	"setid",
	"sorttitle",
	"thumbnail",
	"title",
	"userrating",
	"votes",
}

type rule struct {
	Field    string `json:"field"`
	Operator string `json:"operator"`
	Value    any    `json:"value"`
}

type filter struct {
	And []rule `json:"and"`
}

type searchParams struct {
	Filter     filter   `json:"filter"`
	Properties []string `json:"properties"`
}

type searchResult struct {
	Limits struct {
		Total int `json:"total"`
	} `json:"limits"`
	Movies []Candidate `json:"movies"`
}

type detailParams struct {
	MovieID    int      `json:"movieid"`
	Properties []string `json:"properties"`
}

type detailResult struct {
	MovieDetails MovieDetail `json:"moviedetails"`
}

// yearWindow lists the discrete years accepted for a match, nearest first.
func yearWindow(year int) []string {
	years := []string{strconv.Itoa(year)}
	for d := 1; d <= yearSlack; d++ {
		years = append(years, strconv.Itoa(year-d), strconv.Itoa(year+d))
	}
	return years
}

func newSearchParams(title string, year int) searchParams {
	return searchParams{
		Filter: filter{And: []rule{
			{Field: "originaltitle", Operator: "is", Value: title},
			{Field: "year", Operator: "is", Value: yearWindow(year)},
		}},
		Properties: searchProperties,
	}
}
