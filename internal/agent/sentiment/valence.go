package sentiment

import (
	"context"
	"math"

	"github.com/jonreiter/govader"

	"github.com/Chative-core-poc-v1/bookseller/internal/agent/lexicon"
)

// vader only reads its lexicon after construction, so passes share it.
var vader = govader.NewSentimentIntensityAnalyzer()

// ValencePass scores text with VADER: lexicon valences adjusted by boosters,
// negation, capitalisation, punctuation and contrastive clauses, normalised
// into a compound score in [-1,1]. Confidence is |compound|.
type ValencePass struct {
	weight float64
}

func NewValencePass(weight float64) *ValencePass { return &ValencePass{weight: weight} }

func (p *ValencePass) Name() string    { return "valence" }
func (p *ValencePass) Weight() float64 { return p.weight }

func (p *ValencePass) Analyze(_ context.Context, text string) (*Partial, error) {
	compound := Compound(text)
	return PolarityPartial(compound, math.Abs(compound)), nil
}

// Compound returns the VADER compound score of text.
func Compound(text string) float64 {
	text = lexicon.FoldQuotes(text)
	if len(lexicon.Words(text)) == 0 {
		return 0
	}
	return vader.PolarityScores(text).Compound
}
