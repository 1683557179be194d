package stage

import (
	"slices"

	"github.com/Chative-core-poc-v1/bookseller/internal/agent/model"
)

// objectionTemplateFloor is the objection level below which objection-handling
// templates are not offered.
const objectionTemplateFloor = 0.3

// GenericQuestion is asked when a stage has nothing suitable left.
const GenericQuestion = "Tell me more about what you're looking for in a book."

var templates = map[model.Stage][]model.Question{
	model.StageOpening: {
		{
			ID:               "OPEN_001",
			Text:             "Hello! I'm here to help you find the perfect book. What brings you in today?",
			Type:             model.QuestionOpenEnded,
			ContextHints:     []string{"Initial greeting and discovery", "specific interest", "book mention", "genre preference"},
			ExpectedResponse: "customer_need",
			FollowUps:        []string{"What type of books do you usually enjoy reading?"},
		},
		{
			ID:               "OPEN_002",
			Text:             "Are you looking for something specific today, or would you like me to recommend some great books?",
			Type:             model.QuestionClosedEnded,
			ContextHints:     []string{"Directive opening"},
			ExpectedResponse: "yes_no_or_specific",
			FollowUps:        []string{"What genre interests you most?"},
		},
	},
	model.StageDiscovery: {
		{
			ID:               "DISC_001",
			Text:             "What's your favorite genre of books?",
			Type:             model.QuestionOpenEnded,
			ContextHints:     []string{"Genre preference discovery"},
			ExpectedResponse: "genre_preference",
			FollowUps:        []string{"Who are some of your favorite authors in that genre?"},
		},
		{
			ID:               "DISC_002",
			Text:             "Are you looking for fiction or non-fiction today?",
			Type:             model.QuestionClosedEnded,
			ContextHints:     []string{"Fiction vs non-fiction preference"},
			ExpectedResponse: "fiction_or_nonfiction",
			FollowUps:        []string{"What topics interest you most in non-fiction?"},
		},
		{
			ID:               "DISC_003",
			Text:             "What's the last book you read that you really enjoyed?",
			Type:             model.QuestionOpenEnded,
			ContextHints:     []string{"Reading history and preferences"},
			ExpectedResponse: "book_title_and_reason",
			FollowUps:        []string{"What did you like most about that book?"},
		},
		{
			ID:               "DISC_004",
			Text:             "Are you looking for something light and entertaining, or more serious and thought-provoking?",
			Type:             model.QuestionClosedEnded,
			ContextHints:     []string{"Reading mood and tone preference"},
			ExpectedResponse: "mood_preference",
			FollowUps:        []string{"What kind of stories usually capture your attention?"},
		},
	},
	model.StagePresentation: {
		{
			ID:               "PRES_001",
			Text:             "Based on what you've told me, I think you'd really enjoy this book. Would you like me to tell you more about it?",
			Type:             model.QuestionClosedEnded,
			ContextHints:     []string{"Book recommendation presentation"},
			ExpectedResponse: "yes_no",
			FollowUps:        []string{"What aspects of the book would you like to know more about?"},
		},
		{
			ID:               "PRES_002",
			Text:             "This book has received excellent reviews. Would you like to hear what other readers are saying about it?",
			Type:             model.QuestionClosedEnded,
			ContextHints:     []string{"Social proof presentation"},
			ExpectedResponse: "yes_no",
			FollowUps:        []string{"Would you like to see some specific reviews?"},
		},
	},
	model.StageObjectionHandling: {
		{
			ID:                "OBJ_001",
			Text:              "I understand your concern about the price. What if I could show you how this book provides value that far exceeds its cost?",
			Type:              model.QuestionObjectionHandling,
			ContextHints:      []string{"Price objection handling"},
			ExpectedResponse:  "objection_response",
			ObjectionHandling: true,
		},
		{
			ID:                "OBJ_002",
			Text:              "That's a valid point. What specific aspects of the book are you unsure about?",
			Type:              model.QuestionProbing,
			ContextHints:      []string{"Objection clarification"},
			ExpectedResponse:  "specific_concerns",
			ObjectionHandling: true,
		},
	},
	model.StageClosing: {
		{
			ID:               "CLOSE_001",
			Text:             "This book seems like a perfect match for you. Would you like to take it home today?",
			Type:             model.QuestionClosing,
			ContextHints:     []string{"Direct close"},
			ExpectedResponse: "yes_no",
			FollowUps:        []string{"What payment method would you prefer?"},
		},
		{
			ID:               "CLOSE_002",
			Text:             "I can see you're really interested in this book. Shall we go ahead and get it for you?",
			Type:             model.QuestionClosing,
			ContextHints:     []string{"Assumptive close"},
			ExpectedResponse: "yes_no_or_concern",
		},
	},
}

func init() {
	for stage, pool := range templates {
		for i := range pool {
			pool[i].Stage = stage
			pool[i].Priority = i + 1
		}
	}
}

// Templates returns a copy of the stage's template pool in priority order.
func Templates(stage model.Stage) []model.Question {
	pool := make([]model.Question, len(templates[stage]))
	for i, q := range templates[stage] {
		pool[i] = cloneQuestion(q)
	}
	return pool
}

func cloneQuestion(q model.Question) model.Question {
	q.ContextHints = slices.Clone(q.ContextHints)
	q.FollowUps = slices.Clone(q.FollowUps)
	return q
}

// SelectQuestion returns the first template of the context's stage that has
// not been asked yet, skipping objection templates while objections are low.
// It falls back to GenericQuestion.
func SelectQuestion(c model.ConversationContext) model.Question {
	for _, q := range templates[c.Stage] {
		if slices.Contains(c.QuestionsAsked, q.Text) {
			continue
		}
		if q.ObjectionHandling && c.ObjectionLevel < objectionTemplateFloor {
			continue
		}
		return cloneQuestion(q)
	}
	return model.Question{
		ID:               "GENERIC_001",
		Text:             GenericQuestion,
		Type:             model.QuestionOpenEnded,
		Stage:            c.Stage,
		ContextHints:     []string{"Generic follow-up"},
		ExpectedResponse: "general",
	}
}
