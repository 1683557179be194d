package sentiment

import (
	"math"
	"time"
	"unicode/utf8"

	"github.com/Chative-core-poc-v1/bookseller/internal/agent/model"
)

// combine merges the present partials. Polarity and confidence are weighted
// averages renormalised over the passes that reported a polarity; the first
// pass (in configuration order) that reports subjectivity, sales metrics or
// emotions wins that field.
func combine(results []passResult, text string, at time.Time) model.SentimentScore {
	var (
		weightSum, polSum, confSum float64
		subjectivity               = 0.5
		sales                      = model.DefaultSalesMetrics()
		emotions                   = map[string]float64{}
		cues                       []string
		haveSubj, haveSales        bool
		haveEmotions               bool
	)

	seen := map[string]bool{}
	for _, r := range results {
		p := r.partial
		if p == nil {
			continue
		}
		if p.HasPolarity && r.weight > 0 {
			weightSum += r.weight
			polSum += clamp(p.Polarity, -1, 1) * r.weight
			confSum += clamp(p.Confidence, 0, 1) * r.weight
		}
		if p.Subjectivity != nil && !haveSubj {
			subjectivity, haveSubj = clamp(*p.Subjectivity, 0, 1), true
		}
		if p.Sales != nil && !haveSales {
			sales, haveSales = clampSales(*p.Sales), true
		}
		if len(p.Emotions) > 0 && !haveEmotions {
			for k, v := range p.Emotions {
				emotions[k] = clamp(v, 0, 1)
			}
			haveEmotions = true
		}
		for _, c := range p.Cues {
			if !seen[c] {
				seen[c] = true
				cues = append(cues, c)
			}
		}
	}

	polarity, confidence := 0.0, 0.5
	if weightSum > 0 {
		polarity = clamp(polSum/weightSum, -1, 1)
		confidence = clamp(confSum/weightSum, 0, 1)
	}

	return model.SentimentScore{
		Label:          model.LabelFor(polarity),
		Confidence:     confidence,
		Polarity:       polarity,
		Subjectivity:   subjectivity,
		Intensity:      math.Abs(polarity),
		Emotions:       emotions,
		Urgency:        sales.Urgency,
		Engagement:     sales.Engagement,
		Satisfaction:   math.Max(0, polarity),
		PurchaseIntent: sales.PurchaseIntent,
		ObjectionLevel: sales.ObjectionLevel,
		TrustLevel:     sales.TrustLevel,
		Cues:           cues,
		Timestamp:      at,
		MessageLength:  utf8.RuneCountInString(text),
	}
}

func clampSales(m model.SalesMetrics) model.SalesMetrics {
	return model.SalesMetrics{
		PurchaseIntent: clamp(m.PurchaseIntent, 0, 1),
		ObjectionLevel: clamp(m.ObjectionLevel, 0, 1),
		TrustLevel:     clamp(m.TrustLevel, 0, 1),
		Urgency:        clamp(m.Urgency, 0, 1),
		Engagement:     clamp(m.Engagement, 0, 1),
	}
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		v = 0
	}
	return math.Max(lo, math.Min(hi, v))
}
