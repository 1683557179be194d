package lexicon

// Opinion is the polarity and subjectivity of an opinion word.
type Opinion struct {
	Polarity     float64
	Subjectivity float64
}

// Opinions is the adjective lexicon used by the pattern pass.
var Opinions = map[string]Opinion{
	"good": {0.7, 0.6}, "great": {0.8, 0.75}, "excellent": {1.0, 1.0}, "amazing": {0.6, 0.9},
	"awesome": {1.0, 1.0}, "wonderful": {1.0, 1.0}, "fantastic": {0.4, 0.9}, "perfect": {1.0, 1.0},
	"nice": {0.6, 1.0}, "lovely": {0.5, 0.75}, "beautiful": {0.85, 1.0}, "brilliant": {0.9, 1.0},
	"best": {1.0, 0.3}, "better": {0.5, 0.5}, "happy": {0.8, 1.0}, "glad": {0.5, 1.0},
	"interesting": {0.5, 0.5}, "exciting": {0.3, 0.8}, "fun": {0.3, 0.2}, "helpful": {0.5, 0.5},
	"favorite": {0.5, 1.0}, "favourite": {0.5, 1.0}, "popular": {0.6, 0.9}, "classic": {0.17, 0.33},
	"easy": {0.43, 0.83}, "fair": {0.7, 0.9}, "affordable": {0.4, 0.6}, "cheap": {0.4, 0.7},
	"free": {0.4, 0.8}, "new": {0.14, 0.45}, "fresh": {0.3, 0.5}, "fast": {0.2, 0.6},
	"quick": {0.33, 0.5}, "reliable": {0.5, 0.6}, "sure": {0.5, 0.89}, "right": {0.29, 0.54},
	"bad": {-0.7, 0.67}, "terrible": {-1.0, 1.0}, "awful": {-1.0, 1.0}, "horrible": {-1.0, 1.0},
	"worse": {-0.4, 0.6}, "worst": {-1.0, 1.0}, "poor": {-0.4, 0.6}, "boring": {-1.0, 1.0},
	"expensive": {-0.5, 0.7}, "overpriced": {-0.6, 0.8}, "disappointing": {-0.6, 0.7},
	"disappointed": {-0.75, 0.75}, "annoying": {-0.8, 0.9}, "angry": {-0.5, 1.0},
	"sad": {-0.5, 1.0}, "slow": {-0.3, 0.39}, "late": {-0.3, 0.6}, "difficult": {-0.5, 1.0},
	"hard": {-0.29, 0.54}, "confusing": {-0.3, 0.7}, "wrong": {-0.5, 0.9}, "useless": {-0.5, 0.2},
	"long": {-0.05, 0.4}, "busy": {0.1, 0.3}, "unsure": {-0.25, 0.89}, "worried": {-0.4, 0.7},
	"damaged": {-0.5, 0.6}, "broken": {-0.4, 0.4}, "rude": {-0.3, 0.6}, "dull": {-0.31, 0.88},
}

// Intensifiers multiply the polarity of the following opinion word.
var Intensifiers = map[string]float64{
	"very": 1.3, "really": 1.3, "extremely": 1.5, "so": 1.3, "incredibly": 1.5,
	"totally": 1.4, "absolutely": 1.5, "super": 1.3, "quite": 1.1, "too": 1.2,
	"somewhat": 0.7, "slightly": 0.6, "rather": 0.9, "fairly": 0.8, "pretty": 1.1,
}

// Negations flip the opinion word that follows them.
var Negations = map[string]bool{
	"not": true, "no": true, "never": true, "none": true, "nothing": true,
	"neither": true, "nor": true, "nobody": true, "without": true,
	"don't": true, "doesn't": true, "didn't": true, "isn't": true, "aren't": true,
	"wasn't": true, "weren't": true, "can't": true, "cannot": true, "won't": true,
	"wouldn't": true, "shouldn't": true, "couldn't": true, "haven't": true, "hasn't": true,
}
