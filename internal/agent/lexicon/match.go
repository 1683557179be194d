package lexicon

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// ContainsPhrase reports whether phrase occurs in text on word boundaries.
// Both arguments are expected to be normalised.
func ContainsPhrase(text, phrase string) bool {
	if phrase == "" {
		return false
	}
	for start := 0; start <= len(text)-len(phrase); {
		i := strings.Index(text[start:], phrase)
		if i < 0 {
			return false
		}
		i += start
		if boundaryBefore(text, i) && boundaryAfter(text, i+len(phrase)) {
			return true
		}
		_, size := utf8.DecodeRuneInString(text[i:])
		start = i + size
	}
	return false
}

// FirstPhrase returns the first phrase of the ordered list present in text.
func FirstPhrase(text string, phrases []string) (string, bool) {
	for _, p := range phrases {
		if ContainsPhrase(text, p) {
			return p, true
		}
	}
	return "", false
}

// AnyPhrase reports whether any phrase is present.
func AnyPhrase(text string, phrases []string) bool {
	_, ok := FirstPhrase(text, phrases)
	return ok
}

// MatchedPhrases returns every phrase present, in table order.
func MatchedPhrases(text string, phrases []string) []string {
	var out []string
	for _, p := range phrases {
		if ContainsPhrase(text, p) {
			out = append(out, p)
		}
	}
	return out
}

func boundaryBefore(s string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return !isWordRune(r)
}

func boundaryAfter(s string, i int) bool {
	if i >= len(s) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return !isWordRune(r)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
