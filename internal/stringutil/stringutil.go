package stringutil

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify converts a name to a file-name-friendly slug. Accents are folded
// ("João Conceição" becomes "joao-conceicao"), anything else that is not a
// letter or digit becomes a single hyphen, and hyphens are trimmed from both
// ends.
func Slugify(name string) string {
	s := strings.ToLower(FoldAccents(name))
	s = nonAlphanumeric.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// FoldAccents strips combining marks, leaving the base letters.
func FoldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
