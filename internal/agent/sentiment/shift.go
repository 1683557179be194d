package sentiment

import (
	"math"

	"github.com/Chative-core-poc-v1/bookseller/internal/agent/model"
)

const (
	// ShiftThreshold is the magnitude a pair must exceed to count as a shift.
	ShiftThreshold = 0.3

	// shiftPairs is how many of the most recent adjacent pairs are examined.
	shiftPairs  = 5
	trendWindow = 3
)

// DetectShifts compares the last five adjacent pairs of history, most recent
// first. Magnitude is the mean of |Δpolarity| and |Δconfidence|.
func DetectShifts(history []model.SentimentScore) []model.SentimentShift {
	n := len(history)
	if n < 2 {
		return []model.SentimentShift{}
	}

	shifts := []model.SentimentShift{}
	for i := 1; i < n && i <= shiftPairs; i++ {
		cur, prev := history[n-i], history[n-i-1]
		magnitude := (math.Abs(cur.Polarity-prev.Polarity) + math.Abs(cur.Confidence-prev.Confidence)) / 2
		if magnitude <= ShiftThreshold {
			continue
		}

		direction := model.ShiftNeutral
		switch {
		case cur.Polarity > prev.Polarity:
			direction = model.ShiftPositive
		case cur.Polarity < prev.Polarity:
			direction = model.ShiftNegative
		}

		triggers := append([]string{}, cur.Cues...)
		shifts = append(shifts, model.SentimentShift{
			PreviousLabel:  prev.Label,
			CurrentLabel:   cur.Label,
			Magnitude:      magnitude,
			Direction:      direction,
			TriggerPhrases: triggers,
			Timestamp:      cur.Timestamp,
			Confidence:     math.Min(cur.Confidence, prev.Confidence),
		})
	}
	return shifts
}

// Summarize aggregates a full history. An empty history yields zero averages,
// a zeroed distribution and insufficient_data.
func Summarize(history []model.SentimentScore) model.SentimentSummary {
	dist := make(map[string]int, len(model.AllSentimentLabels))
	for _, l := range model.AllSentimentLabels {
		dist[l.String()] = 0
	}

	summary := model.SentimentSummary{
		MessageCount: len(history),
		Distribution: dist,
		Trend:        Trend(history),
	}
	if len(history) == 0 {
		return summary
	}

	summary.Averages = Averages(history)
	for _, s := range history {
		dist[s.Label.String()]++
	}
	summary.ShiftsDetected = len(DetectShifts(history))
	summary.ConversationStart = history[0].Timestamp
	summary.LastUpdate = history[len(history)-1].Timestamp
	return summary
}

// Averages are arithmetic means over every entry.
func Averages(history []model.SentimentScore) model.SentimentAverages {
	if len(history) == 0 {
		return model.SentimentAverages{}
	}
	var a model.SentimentAverages
	for _, s := range history {
		a.Polarity += s.Polarity
		a.Confidence += s.Confidence
		a.Engagement += s.Engagement
		a.PurchaseIntent += s.PurchaseIntent
		a.TrustLevel += s.TrustLevel
	}
	n := float64(len(history))
	a.Polarity /= n
	a.Confidence /= n
	a.Engagement /= n
	a.PurchaseIntent /= n
	a.TrustLevel /= n
	return a
}

// Trend compares the mean polarity of the first and last three entries.
func Trend(history []model.SentimentScore) model.Trend {
	if len(history) < trendWindow {
		return model.TrendInsufficientData
	}
	early := meanPolarity(history[:trendWindow])
	late := meanPolarity(history[len(history)-trendWindow:])
	switch {
	case late > early:
		return model.TrendImproving
	case late < early:
		return model.TrendDeclining
	default:
		return model.TrendStable
	}
}

func meanPolarity(scores []model.SentimentScore) float64 {
	var sum float64
	for _, s := range scores {
		sum += s.Polarity
	}
	return sum / float64(len(scores))
}
