// Package sentiment scores customer messages by fanning out to independent
// passes and combining whatever they return into one SentimentScore.
package sentiment

import (
	"context"

	"github.com/Chative-core-poc-v1/bookseller/internal/agent/model"
)

// Pass is one independent scoring strategy. Analyze returns (nil, nil) when the
// pass has nothing to contribute for this message; errors are treated the same way.
type Pass interface {
	Name() string
	// Weight is the share of the combined polarity and confidence. Zero-weight
	// passes only contribute metrics, cues or emotions.
	Weight() float64
	Analyze(ctx context.Context, text string) (*Partial, error)
}

// Partial is the contribution of a single pass.
type Partial struct {
	HasPolarity  bool
	Polarity     float64
	Confidence   float64
	Subjectivity *float64
	Sales        *model.SalesMetrics
	Cues         []string
	Emotions     map[string]float64
}

// PolarityPartial is the common shape of a polarity-only contribution.
func PolarityPartial(polarity, confidence float64) *Partial {
	return &Partial{HasPolarity: true, Polarity: polarity, Confidence: confidence}
}

type passResult struct {
	weight  float64
	partial *Partial
}
