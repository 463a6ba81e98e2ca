package host

// MediaType tags an item for the host's info views.
type MediaType string

const (
	MediaSet   MediaType = "set"
	MediaMovie MediaType = "movie"
)

// SortMethod is a sort order the host may offer for a directory. The first
// method is the initial order.
type SortMethod string

const (
	SortUnsorted SortMethod = "unsorted" // server order, no user sorting
	SortNone     SortMethod = "none"     // server order, other methods selectable
	SortTitle    SortMethod = "title"
	SortYear     SortMethod = "year"
)

// Directory is one rendered listing.
type Directory struct {
	Category    string       `json:"category"`
	Content     string       `json:"content"`
	SortMethods []SortMethod `json:"sort_methods"`
	Items       []Item       `json:"items"`
}

// Item is one entry of a directory.
type Item struct {
	Label    string    `json:"label"`
	URL      string    `json:"url"`
	IsFolder bool      `json:"is_folder"`
	Playable bool      `json:"playable"`
	Art      Art       `json:"art"`
	Info     VideoInfo `json:"info"`
}

// Art holds artwork URLs.
type Art struct {
	Poster string `json:"poster,omitempty"`
	Fanart string `json:"fanart,omitempty"`
}

// VideoInfo mirrors the host's video info tag.
type VideoInfo struct {
	MediaType       MediaType `json:"media_type"`
	Title           string    `json:"title"`
	Year            int       `json:"year,omitempty"`
	Plot            string    `json:"plot,omitempty"`
	Tagline         string    `json:"tagline,omitempty"`
	Genres          []string  `json:"genres,omitempty"`
	Duration        int       `json:"duration,omitempty"` // seconds
	DBID            int       `json:"dbid,omitempty"`
	Path            string    `json:"path,omitempty"`
	FilenameAndPath string    `json:"file,omitempty"`
	Premiered       string    `json:"premiered,omitempty"`
	Playcount       int       `json:"playcount,omitempty"`
}
