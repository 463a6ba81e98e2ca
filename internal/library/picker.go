package library

import (
	"fmt"

	"github.com/vmunix/listbridge/pkg/title"
)

// Query describes the catalog movie being matched.
type Query struct {
	Title          string // original title, matched exactly by the library
	Year           int
	LocalizedTitle string // catalog display title, used for tie-breaking
}

// Picker chooses one record from a non-empty candidate list.
type Picker interface {
	Pick(q Query, candidates []Candidate) (Candidate, bool)
}

// FirstMatch keeps the first record the library returned.
type FirstMatch struct{}

func (FirstMatch) Pick(_ Query, candidates []Candidate) (Candidate, bool) {
	if len(candidates) == 0 {
		return Candidate{}, false
	}
	return candidates[0], true
}

// ClosestMatch prefers the record whose year is nearest the catalog year and
// breaks ties by similarity of the library title to the localized title.
type ClosestMatch struct{}

func (ClosestMatch) Pick(q Query, candidates []Candidate) (Candidate, bool) {
	if len(candidates) == 0 {
		return Candidate{}, false
	}

	bestDist := -1
	var nearest []Candidate
	for _, c := range candidates {
		d := c.Year - q.Year
		if d < 0 {
			d = -d
		}
		switch {
		case bestDist < 0 || d < bestDist:
			bestDist = d
			nearest = []Candidate{c}
		case d == bestDist:
			nearest = append(nearest, c)
		}
	}

	if len(nearest) == 1 || q.LocalizedTitle == "" {
		return nearest[0], true
	}

	titles := make([]string, len(nearest))
	for i, c := range nearest {
		titles[i] = c.Title
	}
	idx, _ := title.Best(q.LocalizedTitle, titles)
	return nearest[idx], true
}

// PickerFor maps a configuration name to a Picker.
func PickerFor(name string) (Picker, error) {
	switch name {
	case "", "first":
		return FirstMatch{}, nil
	case "closest":
		return ClosestMatch{}, nil
	default:
		return nil, fmt.Errorf("unknown match strategy %q", name)
	}
}
