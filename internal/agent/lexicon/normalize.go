// Package lexicon holds the static keyword and phrase tables shared by the
// sentiment, stage, extraction and summary heuristics, plus the matching
// helpers they use.
package lexicon

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var quoteFolder = strings.NewReplacer(
	"‘", "'", "’", "'", "‛", "'",
	"“", "\"", "”", "\"",
	"–", "-", "—", "-",
)

// Normalize lowercases s, strips diacritics and folds typographic quotes and
// dashes to ASCII so keyword tables only need one spelling.
func Normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(quoteFolder.Replace(out))
}

// FoldQuotes only folds typographic quotes, keeping case and accents.
func FoldQuotes(s string) string {
	return quoteFolder.Replace(s)
}

// Words splits normalised text into word tokens, keeping inner apostrophes
// and hyphens ("can't", "self-help").
func Words(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\'' || r == '-')
	})
}
