package nodes

import (
	jsoniter "github.com/json-iterator/go"

	"github.com/Chative-core-poc-v1/bookseller/internal/agent/model"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// clampInt returns v limited to [lo, hi].
func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// countShiftsAt counts the shifts that ended on score, i.e. the ones this turn
// introduced. Older shifts are reported again on every turn.
func countShiftsAt(shifts []model.SentimentShift, score model.SentimentScore) int {
	n := 0
	for _, s := range shifts {
		if s.Timestamp.Equal(score.Timestamp) {
			n++
		}
	}
	return n
}
