package title

import (
	"regexp"

	"github.com/hbollon/go-edlib"
)

var numberPattern = regexp.MustCompile(`\b\d+\b`)

// Similarity scores two titles between 0 and 1 after cleaning them.
// Jaro-Winkler favours shared prefixes, which suits titles with subtitles.
// Differing sequel numbers ("Alien 3" against "Aliens") are penalised.
func Similarity(a, b string) float64 {
	ca, cb := Clean(a), Clean(b)
	if ca == cb {
		return 1
	}
	score := float64(edlib.JaroWinklerSimilarity(ca, cb))
	return adjustForNumbers(score, numberPattern.FindAllString(ca, -1), numberPattern.FindAllString(cb, -1))
}

// Best returns the index and score of the candidate most similar to want,
// or -1 when there are no candidates. Ties keep the earliest candidate.
func Best(want string, candidates []string) (int, float64) {
	best, bestScore := -1, -1.0
	for i, c := range candidates {
		if score := Similarity(want, c); score > bestScore {
			best, bestScore = i, score
		}
	}
	if best < 0 {
		return -1, 0
	}
	return best, bestScore
}

func adjustForNumbers(score float64, a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return score
	}
	if len(a) == 0 || len(b) == 0 {
		return score * 0.85
	}
	seen := make(map[string]bool, len(a))
	for _, n := range a {
		seen[n] = true
	}
	for _, n := range b {
		if seen[n] {
			return min(score*1.05, 1.0)
		}
	}
	return score * 0.90
}
