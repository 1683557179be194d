package lexicon

import "github.com/Chative-core-poc-v1/bookseller/internal/agent/model"

// ObjectionRule maps a phrase set to a live objection category.
type ObjectionRule struct {
	Category model.ObjectionCategory
	Phrases  []string
}

// ObjectionRules are evaluated in priority order: price, need, trust, time, authority.
var ObjectionRules = []ObjectionRule{
	{model.ObjectionPrice, []string{"too expensive", "too much", "can't afford", "price", "cost"}},
	{model.ObjectionNeed, []string{"don't need", "not interested", "not looking for"}},
	{model.ObjectionTrust, []string{"not sure", "don't know", "unfamiliar", "never heard"}},
	{model.ObjectionTime, []string{"no time", "busy", "later", "not now"}},
	{model.ObjectionAuthority, []string{"need to ask", "check with", "think about"}},
}

// ConcernKeywords is the ordered post-call objection scan list. Only the first
// keyword found in a customer message counts.
var ConcernKeywords = []string{
	"expensive", "cost", "price", "afford", "budget",
	"not sure", "don't know", "maybe", "think about",
	"later", "busy", "no time",
	"already have", "don't need", "not interested",
	"concern", "worried",
}

var concernTypes = map[string]model.ConcernType{
	"expensive":      model.ConcernPrice,
	"cost":           model.ConcernPrice,
	"price":          model.ConcernPrice,
	"afford":         model.ConcernPrice,
	"budget":         model.ConcernPrice,
	"not sure":       model.ConcernUncertainty,
	"don't know":     model.ConcernUncertainty,
	"maybe":          model.ConcernUncertainty,
	"think about":    model.ConcernUncertainty,
	"later":          model.ConcernTiming,
	"busy":           model.ConcernTiming,
	"no time":        model.ConcernTiming,
	"already have":   model.ConcernNeed,
	"don't need":     model.ConcernNeed,
	"not interested": model.ConcernNeed,
}

// ConcernTypeOf categorises a concern keyword; unknown keywords are general concerns.
func ConcernTypeOf(keyword string) model.ConcernType {
	if t, ok := concernTypes[keyword]; ok {
		return t
	}
	return model.ConcernGeneral
}

// Agent behaviour cues used by the call summary.
var (
	HelpfulCues        = []string{"recommend", "suggest", "help", "understand"}
	RecommendationCues = []string{"recommend", "suggest", "might like"}
)
