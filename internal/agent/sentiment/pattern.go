package sentiment

import (
	"context"
	"math"

	"github.com/Chative-core-poc-v1/bookseller/internal/agent/lexicon"
)

const patternNegation = -0.5

// PatternPass averages polarity and subjectivity over the opinion words of a
// message. It is the only deterministic source of subjectivity.
type PatternPass struct {
	weight float64
}

func NewPatternPass(weight float64) *PatternPass { return &PatternPass{weight: weight} }

func (p *PatternPass) Name() string    { return "pattern" }
func (p *PatternPass) Weight() float64 { return p.weight }

func (p *PatternPass) Analyze(_ context.Context, text string) (*Partial, error) {
	polarity, subjectivity := Opinion(text)
	partial := PolarityPartial(polarity, math.Abs(polarity))
	partial.Subjectivity = &subjectivity
	return partial, nil
}

// Opinion returns the mean polarity and subjectivity of the opinion words in
// text, both zero when none are found.
func Opinion(text string) (polarity, subjectivity float64) {
	words := lexicon.Words(lexicon.Normalize(text))
	var n int
	for i, w := range words {
		op, ok := lexicon.Opinions[w]
		if !ok {
			continue
		}
		pol, subj := op.Polarity, op.Subjectivity
		if i > 0 {
			if m, ok := lexicon.Intensifiers[words[i-1]]; ok {
				pol = clamp(pol*m, -1, 1)
				subj = clamp(subj*m, 0, 1)
			}
		}
		if negatedNear(words, i) {
			pol *= patternNegation
		}
		polarity += pol
		subjectivity += subj
		n++
	}
	if n == 0 {
		return 0, 0
	}
	return clamp(polarity/float64(n), -1, 1), clamp(subjectivity/float64(n), 0, 1)
}

// negatedNear checks the previous word, or the one before an intensifier.
func negatedNear(words []string, i int) bool {
	if i > 0 && lexicon.Negations[words[i-1]] {
		return true
	}
	if i > 1 {
		if _, ok := lexicon.Intensifiers[words[i-1]]; ok && lexicon.Negations[words[i-2]] {
			return true
		}
	}
	return false
}
