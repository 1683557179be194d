package stage

import (
	"slices"

	"github.com/Chative-core-poc-v1/bookseller/internal/agent/lexicon"
	"github.com/Chative-core-poc-v1/bookseller/internal/agent/model"
)

// ClassifyObjection returns the first category whose phrases appear in text,
// in price, need, trust, time, authority order. Unmatched text is a price objection.
func ClassifyObjection(text string) model.ObjectionCategory {
	norm := lexicon.Normalize(text)
	for _, r := range lexicon.ObjectionRules {
		if lexicon.AnyPhrase(norm, r.Phrases) {
			return r.Category
		}
	}
	return model.ObjectionPrice
}

var objectionResponses = map[model.ObjectionCategory][]model.ObjectionResponse{
	model.ObjectionPrice: {
		{
			Response:           "I understand price is important. Let me show you the value this book provides. It's not just about the price, but about the knowledge and enjoyment you'll get from reading it.",
			Technique:          "Value justification",
			FollowUps:          []string{"What would you consider a fair price for a book that could change your perspective?"},
			ConfidenceBuilders: []string{"This book has helped thousands of readers", "The author is a recognized expert"},
		},
		{
			Response:           "I hear you on the price. What if I told you this book could save you money in the long run by teaching you valuable skills?",
			Technique:          "ROI justification",
			FollowUps:          []string{"What's the most you've ever spent on something that changed your life?"},
			ConfidenceBuilders: []string{"Many readers say this book paid for itself within weeks"},
		},
	},
	model.ObjectionNeed: {
		{
			Response:           "I understand you might not see the immediate need. But based on what you've told me about your interests, this book could open up new possibilities you haven't considered.",
			Technique:          "Need creation",
			FollowUps:          []string{"What if this book could help you discover something you didn't know you were looking for?"},
			ConfidenceBuilders: []string{"Many readers discover new passions through this book"},
		},
	},
	model.ObjectionTrust: {
		{
			Response:           "I completely understand wanting to be sure about your purchase. This author has a proven track record and thousands of satisfied readers. Would you like to see some reviews?",
			Technique:          "Social proof",
			FollowUps:          []string{"What would help you feel more confident about this choice?"},
			ConfidenceBuilders: []string{"The author has won multiple awards", "This is a bestseller"},
		},
	},
	model.ObjectionTime: {
		{
			Response:           "I understand you're busy. This book is actually designed for busy people - it's easy to read in short sessions. What's your typical reading schedule?",
			Technique:          "Time reframing",
			FollowUps:          []string{"How much time do you usually spend reading each week?"},
			ConfidenceBuilders: []string{"Many busy professionals love this book's format"},
		},
	},
	model.ObjectionAuthority: {
		{
			Response:           "Of course, it makes sense to talk it over first. I can hold a copy for you and send the details so you can share them before deciding.",
			Technique:          "Decision support",
			FollowUps:          []string{"Who else would you like to check with, and what will matter most to them?"},
			ConfidenceBuilders: []string{"Holding a copy is free and there is no obligation", "Easy returns within 30 days"},
		},
	},
}

// Respond returns the canned response for category. The context is accepted for
// future selection strategies; the first entry of the category is always used.
func Respond(category model.ObjectionCategory, _ model.ConversationContext) model.ObjectionResponse {
	pool := objectionResponses[category]
	if len(pool) == 0 {
		pool = objectionResponses[model.ObjectionPrice]
	}
	r := pool[0]
	r.Category = category
	r.FollowUps = slices.Clone(r.FollowUps)
	r.ConfidenceBuilders = slices.Clone(r.ConfidenceBuilders)
	return r
}
