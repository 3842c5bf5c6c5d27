package parser

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold returns s with accents removed and case folded, so that "Situação"
// and "SITUACAO" compare equal.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return cases.Fold().String(out)
}

// ContainsFold reports whether substr occurs in s, ignoring case and accents.
func ContainsFold(s, substr string) bool {
	return strings.Contains(Fold(s), Fold(substr))
}

// ContainsAnyFold reports whether any of the keywords occurs in s, ignoring
// case and accents. Blank keywords never match.
func ContainsAnyFold(s string, keywords []string) bool {
	folded := Fold(s)
	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		if strings.Contains(folded, Fold(kw)) {
			return true
		}
	}
	return false
}
