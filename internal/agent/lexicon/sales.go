package lexicon

// Sales cue sets scored by the keyword pass. Each metric is
// min(matches/len(set)*factor, 1).
var (
	PurchaseCues = []string{
		"buy", "purchase", "order", "get", "want", "need",
		"interested", "price", "cost", "how much", "available", "in stock",
	}
	ObjectionCues = []string{
		"but", "however", "expensive", "too much", "can't afford",
		"not sure", "maybe later", "think about it", "not interested",
	}
	TrustCues = []string{
		"thank you", "great", "perfect", "excellent", "helpful",
		"recommend", "trust", "reliable", "good",
	}
	UrgencyCues = []string{
		"urgent", "asap", "quickly", "soon", "immediately",
		"rush", "deadline", "time sensitive",
	}
)

const (
	PurchaseFactor  = 2.0
	ObjectionFactor = 3.0
	TrustFactor     = 2.0
	UrgencyFactor   = 3.0
	// EngagementChars is the message length treated as fully engaged.
	EngagementChars = 100.0
)
