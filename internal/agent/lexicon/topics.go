package lexicon

// Topic is a named bucket of trigger keywords.
type Topic struct {
	Name     string
	Keywords []string
}

// ConversationTopics drive topics_discussed on the live conversation context.
var ConversationTopics = []Topic{
	{"fiction", []string{"fiction", "novel", "story", "character"}},
	{"non-fiction", []string{"non-fiction", "nonfiction", "fact", "real", "true story"}},
	{"mystery", []string{"mystery", "thriller", "suspense", "crime"}},
	{"romance", []string{"romance", "love", "relationship", "romantic"}},
	{"business", []string{"business", "finance", "money", "investment"}},
	{"self-help", []string{"self-help", "motivation", "improvement", "personal development"}},
	{"price", []string{"price", "cost", "expensive", "cheap", "budget"}},
	{"author", []string{"author", "writer", "wrote"}},
	{"genre", []string{"genre", "type", "category", "kind"}},
}

// PresentationTopics are the topics that show enough discovery to present books.
var PresentationTopics = []string{"genre", "author", "fiction", "non-fiction"}

// CurrentTopics is checked in order against the latest customer response;
// the first match wins and "general" is the fallback.
var CurrentTopics = []Topic{
	{"price", []string{"price", "cost", "expensive", "cheap"}},
	{"genre", []string{"genre", "type", "fiction", "non-fiction"}},
	{"author", []string{"author", "writer"}},
	{"purchase", []string{"buy", "purchase", "order"}},
}

const GeneralTopic = "general"

// SummaryTopics are the post-call key topic buckets, in report order.
var SummaryTopics = []Topic{
	{"Pricing and Payment", []string{"price", "cost", "payment"}},
	{"Delivery Options", []string{"delivery", "shipping"}},
	{"Book Recommendations", []string{"recommend", "suggest"}},
	{"Genre Preferences", []string{"genre", "type of book"}},
	{"Author Preferences", []string{"author", "written by"}},
	{"Order Placement", []string{"order", "buy", "purchase"}},
}

const GeneralInquiryTopic = "General Inquiry"

// TopicsIn returns the names of every topic with a keyword in text.
func TopicsIn(text string, topics []Topic) []string {
	var out []string
	for _, t := range topics {
		if AnyPhrase(text, t.Keywords) {
			out = append(out, t.Name)
		}
	}
	return out
}

// FirstTopic returns the first topic with a keyword in text.
func FirstTopic(text string, topics []Topic) (string, bool) {
	for _, t := range topics {
		if AnyPhrase(text, t.Keywords) {
			return t.Name, true
		}
	}
	return "", false
}

// Genres is the closed genre vocabulary harvested from finished calls.
var Genres = []string{
	"fiction", "non-fiction", "mystery", "thriller", "romance", "sci-fi",
	"science fiction", "fantasy", "biography", "history", "self-help",
	"business", "children", "young adult", "horror", "poetry", "drama",
	"adventure", "crime",
}
