package library

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
)

type libraryMovie struct {
	Candidate
	OriginalTitle string
	Detail        MovieDetail
}

// fakeLibrary evaluates GetMovies filters against an in-memory library the
// way Kodi does, round-tripping params and results through JSON.
type fakeLibrary struct {
	movies []libraryMovie
	calls  []string
	err    error
}

func (f *fakeLibrary) Call(_ context.Context, method string, params, result any) error {
	f.calls = append(f.calls, method)
	if f.err != nil {
		return f.err
	}

	raw, err := json.Marshal(params)
	if err != nil {
		return err
	}

	var out any
	switch method {
	case methodGetMovies:
		var p struct {
			Filter struct {
				And []struct {
					Field    string          `json:"field"`
					Operator string          `json:"operator"`
					Value    json.RawMessage `json:"value"`
				} `json:"and"`
			} `json:"filter"`
		}
		if err := json.Unmarshal(raw, &p); err != nil {
			return err
		}
		var titleIs string
		var years []string
		for _, r := range p.Filter.And {
			switch r.Field {
			case "originaltitle":
				_ = json.Unmarshal(r.Value, &titleIs)
			case "year":
				_ = json.Unmarshal(r.Value, &years)
			}
		}
		matches := []Candidate{}
		for _, m := range f.movies {
			if m.OriginalTitle == titleIs && slices.Contains(years, strconv.Itoa(m.Year)) {
				matches = append(matches, m.Candidate)
			}
		}
		out = map[string]any{
			"limits": map[string]any{"start": 0, "end": len(matches), "total": len(matches)},
			"movies": matches,
		}
	case methodGetMovieDetails:
		var p detailParams
		if err := json.Unmarshal(raw, &p); err != nil {
			return err
		}
		for _, m := range f.movies {
			if m.MovieID == p.MovieID {
				out = map[string]any{"moviedetails": m.Detail}
			}
		}
		if out == nil {
			return fmt.Errorf("movie %d not found", p.MovieID)
		}
	default:
		return fmt.Errorf("unexpected method %s", method)
	}

	data, err := json.Marshal(out)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, result)
}

func movie(id int, original, title string, year int) libraryMovie {
	return libraryMovie{
		Candidate:     Candidate{MovieID: id, Title: title, Year: year},
		OriginalTitle: original,
		Detail: MovieDetail{
			MovieID:       id,
			Title:         title,
			OriginalTitle: original,
			Genre:         []string{"Drama"},
			Plot:          "local plot",
			Runtime:       7200,
			File:          fmt.Sprintf("/movies/%s (%d).mkv", title, year),
			Premiered:     fmt.Sprintf("%d-01-01", year),
			Playcount:     1,
		},
	}
}
