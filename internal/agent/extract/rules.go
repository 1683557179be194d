package extract

import (
	"strconv"
	"strings"
)

const (
	nameWords   = `[A-Za-z][A-Za-z']+(?:[ \t]+[A-Z][A-Za-z']+){0,2}`
	properWords = `[A-Z][A-Za-z']+(?:[ \t]+[A-Z][A-Za-z']+){0,2}`
	titleTail   = `(?:\s+by\s|\s*author|[.,?!]|\n|$)`
	countNouns  = `(?:copies|copy|units?|books?|pieces?)`
)

var (
	doubleQuoted = rule("double_quoted", `"([^"\n]{2,80}?)"`, nil)
	// singleQuoted allows an apostrophe inside the title when a letter follows it.
	singleQuoted = rule("single_quoted", `(?:^|[\s(])'((?:[^'\n]|'[A-Za-z]){2,80}?)'(?:[\s.,!?)]|$)`, nil)

	// authorMention needs at least two capitalised words so "by Friday" is not an author.
	authorMention = rule("mentioned", `\b(?i:written\s+by|by)[ \t]+([A-Z][a-z]+(?:[ \t]+[A-Z][a-z]+){1,3})`, nil)

	NameRules = Rules{
		rule("stated", `(?i:customer\s*name\s*[:\-]\s*|\bmy\s+name\s+is\s+|\bcall\s+me\s+)(`+nameWords+`)`, personName),
		rule("introduced", `\b(?i:i\s+am|i'm|this\s+is)[ \t]+(`+properWords+`)`, personName),
		rule("greeted", `\b(?i:hello|hi|hey|good\s+(?:morning|afternoon|evening))[ \t,]+(`+properWords+`)\b`, personName),
		rule("addressed", `\b(?i:speaking\s+with|talking\s+to)[ \t]+(`+properWords+`)`, personName),
	}

	ContactRules = Rules{
		rule("labelled", `(?i)\b(?:id|contact(?:\s*number)?|phone(?:\s*number)?|mobile(?:\s*number)?)(?:\s+is)?\s*[:\-]?\s*([\d\- ]{6,20})`, contactDigits),
	}

	TitleRules = Rules{
		doubleQuoted,
		singleQuoted,
		rule("book_is", `(?i)\bbook\s*(?:is\s+called|is\s+titled|title|called|is)\s*[:\-]?\s*([a-z][^\n]{1,80}?)`+titleTail, nil),
		rule("looking_for", `(?i)(?:\blooking\s+for\s+|\bwant\s+(?:the\s+)?book\s+|\binterested\s+in\s+)([a-z][^\n]{1,80}?)`+titleTail, nil),
		rule("recommended", `(?i)\b(?:recommend|suggest)\s+([a-z][^\n]{1,80}?)`+titleTail, nil),
		rule("suggested", `(?i)(?:\bhave\s+you\s+read\s+|\bwhat\s+about\s+)([a-z][^\n]{1,80}?)`+titleTail, nil),
	}

	AuthorRules = Rules{
		rule("by", `\b(?i:author\s*[:\-]?\s*|written\s+by\s+|by\s+)([A-Z][A-Za-z'.\-]+(?:[ \t]+[A-Z][A-Za-z'.\-]+){0,3})`, nil),
		rule("possessive", `\b([A-Z][a-z]+(?:[ \t]+[A-Z][a-z]+)*)'s\s+(?i:book|novel|work)`, nil),
	}

	GenreRules = Rules{
		rule("labelled", `(?i)\b(?:genre|category)\s*[:\-]?\s*(`+genreAlternation+`)\b`, lowerWords),
		rule("described", `(?i)\b(?:a|an|some)\s+(`+genreAlternation+`)\s+(?:book|novel|title)s?\b`, lowerWords),
	}

	QuantityRules = Rules{
		rule("stated", `(?i)(?:\bquantity\s*[:\-]?\s*|\bneed\s+|\bwant\s+|\border\s+)(\d{1,3})\s*`+countNouns+`\b`, positiveInt),
		rule("of_please", `(?i)\b(\d{1,3})\s*`+countNouns+`\s*(?:of|please)\b`, positiveInt),
		rule("buy_n", `(?i)\b(?:buy|purchase|get)\s+(\d{1,3})\s*(?:copies|copy|units?|books?)\b`, positiveInt),
		rule("n_copies", `(?i)\b(\d{1,3})\s*`+countNouns+`\b`, positiveInt),
		rule("spelled", `(?i)\b(one|two|three|four|five|six|seven|eight|nine|ten)\s+(?:copies|copy|books?)\b`, spelledInt),
	}

	PaymentRules = Rules{
		rule("stated", `(?i)(?:\bpayment\s*(?:method|option)?\s*[:\-]?\s*|\bpay\s*(?:by|with|using)\s*|\bpaying\s*(?:by|with)\s*)(online|credit\s*card|debit\s*card|card|cash(?:\s*on\s*delivery)?|cod|upi|netbanking|paypal|gpay|phonepe|paytm)\b`, lowerWords),
		rule("mentioned", `(?i)\b(credit\s*card|debit\s*card|cash|upi|netbanking|paypal|gpay|phonepe|paytm|cod)\b`, lowerWords),
		rule("accepted", `(?i)\b(?:accept|take)\s+(credit\s*card|debit\s*card|cash|upi|digital\s*payment)\b`, lowerWords),
	}

	AddressRules = Rules{
		rule("stated", `(?i)(?:\baddress\s*(?:is\s*)?[:\-]?\s*|\bdeliver\s*(?:it\s*)?to\s*|\bship\s*(?:it\s*)?to\s*)([^\n]{10,120})`, trimmedSentence),
		rule("lives_at", `(?i)\b(?:live|staying)\s*(?:at|in)\s*([^\n]{10,120})`, trimmedSentence),
	}

	SpecialRequestRules = Rules{
		rule("noted", `(?i)(?:\bspecial\s*requests?\s*[:\-]?\s*|\bplease\s*note\s*[:\-]?\s*|\bnote\s*[:\-]?\s*|\binstructions?\s*[:\-]?\s*)([^\n]{5,200})`, trimmed),
		rule("also", `(?i)\b(?:also|additionally|by\s+the\s+way|oh\s+and)\s*([^\n]{5,200})`, trimmed),
		rule("make_sure", `(?i)\b(?:make\s+sure|ensure|remember\s+to)\s*([^\n]{5,200})`, trimmed),
	}
)

// Genres the extractor recognises.
var extractGenres = []string{
	"non-fiction", "fiction", "mystery", "romance", "thriller", "sci-fi", "fantasy",
	"biography", "history", "self-help", "business", "children", "young-adult",
}

var genreAlternation = strings.Join(extractGenres, "|")

// notNames are capitalised words that follow greetings and introductions
// without being a name.
var notNames = map[string]bool{
	"welcome": true, "thanks": true, "thank": true, "i": true, "i'd": true, "i'm": true,
	"i'll": true, "i've": true, "it's": true, "it": true, "this": true, "that": true,
	"there": true, "we": true, "we're": true, "you": true, "your": true, "my": true,
	"can": true, "could": true, "how": true, "what": true, "is": true, "are": true,
	"please": true, "yes": true, "no": true, "good": true, "great": true, "sorry": true,
	"everyone": true, "sir": true, "madam": true, "looking": true, "just": true,
	"calling": true, "here": true, "and": true, "so": true, "the": true, "a": true,
}

var spelledNumbers = map[string]string{
	"one": "1", "two": "2", "three": "3", "four": "4", "five": "5",
	"six": "6", "seven": "7", "eight": "8", "nine": "9", "ten": "10",
}

func contactDigits(s string) (string, bool) {
	s = strings.TrimSpace(s)
	digits := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return s, digits >= 6
}

// personName rejects a capture starting with a non-name word and cuts one at
// the first non-name word after the name.
func personName(s string) (string, bool) {
	words := strings.Fields(s)
	for i, w := range words {
		if notNames[strings.ToLower(w)] {
			words = words[:i]
			break
		}
	}
	return trimmed(strings.Join(words, " "))
}

func positiveInt(s string) (string, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return "", false
	}
	return strconv.Itoa(n), true
}

func spelledInt(s string) (string, bool) {
	n, ok := spelledNumbers[strings.ToLower(s)]
	return n, ok
}
