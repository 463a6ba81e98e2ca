// Package title normalises and compares movie titles across languages and
// library conventions.
package title

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// romanNumeral matches II-IX after a space. A bare "I" or "X" and a numeral
// at the start of the title are left alone ("I, Robot", "American History X").
var romanNumeral = regexp.MustCompile(`(?i) (ii|iii|iv|v|vi|vii|viii|ix)\b`)

var romanValues = map[string]string{
	"ii": "2", "iii": "3", "iv": "4", "v": "5",
	"vi": "6", "vii": "7", "viii": "8", "ix": "9",
}

// Leading articles stripped from each title segment.
var articles = []string{
	"the ", "a ", "an ",
	"le ", "la ", "les ", "l'",
	"der ", "die ", "das ",
	"el ", "los ", "las ",
	"il ", "lo ", "gli ",
}

// Clean folds a title into a comparison key: lower case, accents removed,
// articles stripped, Roman numerals converted, punctuation dropped and
// whitespace collapsed.
func Clean(t string) string {
	s := strings.ToLower(t)
	s = romanNumeral.ReplaceAllStringFunc(s, func(m string) string {
		if v, ok := romanValues[strings.TrimSpace(m)]; ok {
			return " " + v
		}
		return m
	})
	s = foldAccents(s)

	s = strings.NewReplacer("&", " and ", "-", " ", ".", " ", "’", "'").Replace(s)

	// "Léon: The Professional" has an article after the colon too.
	parts := strings.Split(s, ":")
	for i, part := range parts {
		parts[i] = stripArticle(strings.TrimSpace(part))
	}
	s = strings.Join(parts, " ")

	var b strings.Builder
	for _, r := range s {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func foldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func stripArticle(s string) string {
	for _, art := range articles {
		if strings.HasPrefix(s, art) && len(s) > len(art) {
			return strings.TrimPrefix(s, art)
		}
	}
	return s
}
