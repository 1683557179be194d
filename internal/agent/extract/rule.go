// Package extract recovers order fields from a call transcript with ordered,
// declarative pattern rules.
package extract

import (
	"regexp"
	"strings"
)

// Rule is one pattern for one field. Apply returns the cleaned capture of the
// leftmost match that survives cleaning, or false when the rule does not apply.
type Rule struct {
	Name  string
	re    *regexp.Regexp
	clean func(string) (string, bool)
}

func rule(name, pattern string, clean func(string) (string, bool)) Rule {
	if clean == nil {
		clean = trimmed
	}
	return Rule{Name: name, re: regexp.MustCompile(pattern), clean: clean}
}

func (r Rule) Apply(text string) (string, bool) {
	for _, m := range r.re.FindAllStringSubmatch(text, -1) {
		capture := m[0]
		if len(m) > 1 {
			capture = m[1]
		}
		if v, ok := r.clean(capture); ok {
			return v, true
		}
	}
	return "", false
}

// All returns the cleaned captures of every non-overlapping match, left to right.
func (r Rule) All(text string) []string {
	var out []string
	for _, m := range r.re.FindAllStringSubmatch(text, -1) {
		capture := m[0]
		if len(m) > 1 {
			capture = m[1]
		}
		if v, ok := r.clean(capture); ok {
			out = append(out, v)
		}
	}
	return out
}

// Rules is a field's priority-ordered rule list.
type Rules []Rule

// First returns the value of the first rule that applies; later rules are not consulted.
func (rs Rules) First(text string) (string, bool) {
	for _, r := range rs {
		if v, ok := r.Apply(text); ok {
			return v, true
		}
	}
	return "", false
}

var spaces = regexp.MustCompile(`\s+`)

func trimmed(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != ""
}

func trimmedSentence(s string) (string, bool) {
	return trimmed(strings.TrimRight(strings.TrimSpace(s), ".,;!"))
}

func lowerWords(s string) (string, bool) {
	return trimmed(spaces.ReplaceAllString(strings.ToLower(s), " "))
}
