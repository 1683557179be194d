package sentiment

import (
	"context"
	"math"
	"unicode/utf8"

	"github.com/Chative-core-poc-v1/bookseller/internal/agent/lexicon"
	"github.com/Chative-core-poc-v1/bookseller/internal/agent/model"
)

// SalesPass counts sales cue keywords. It carries no polarity weight.
type SalesPass struct{}

func NewSalesPass() *SalesPass { return &SalesPass{} }

func (SalesPass) Name() string    { return "sales" }
func (SalesPass) Weight() float64 { return 0 }

func (SalesPass) Analyze(_ context.Context, text string) (*Partial, error) {
	metrics, cues := SalesSignals(text)
	return &Partial{Sales: &metrics, Cues: cues}, nil
}

// SalesSignals scores the sales cue sets and returns the matched cues in table order.
func SalesSignals(text string) (model.SalesMetrics, []string) {
	norm := lexicon.Normalize(text)
	purchase := lexicon.MatchedPhrases(norm, lexicon.PurchaseCues)
	objection := lexicon.MatchedPhrases(norm, lexicon.ObjectionCues)
	trust := lexicon.MatchedPhrases(norm, lexicon.TrustCues)
	urgency := lexicon.MatchedPhrases(norm, lexicon.UrgencyCues)

	m := model.SalesMetrics{
		PurchaseIntent: cueScore(purchase, lexicon.PurchaseCues, lexicon.PurchaseFactor),
		ObjectionLevel: cueScore(objection, lexicon.ObjectionCues, lexicon.ObjectionFactor),
		TrustLevel:     cueScore(trust, lexicon.TrustCues, lexicon.TrustFactor),
		Urgency:        cueScore(urgency, lexicon.UrgencyCues, lexicon.UrgencyFactor),
		Engagement:     math.Min(float64(utf8.RuneCountInString(text))/lexicon.EngagementChars, 1),
	}

	cues := make([]string, 0, len(purchase)+len(objection)+len(trust)+len(urgency))
	seen := map[string]bool{}
	for _, set := range [][]string{purchase, objection, trust, urgency} {
		for _, c := range set {
			if !seen[c] {
				seen[c] = true
				cues = append(cues, c)
			}
		}
	}
	return m, cues
}

func cueScore(matched, set []string, factor float64) float64 {
	return math.Min(float64(len(matched))/float64(len(set))*factor, 1)
}
