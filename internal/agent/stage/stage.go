// Package stage tracks where a sales conversation is in the funnel and picks
// what the agent should ask next.
package stage

import (
	"slices"
	"time"

	"github.com/Chative-core-poc-v1/bookseller/internal/agent/lexicon"
	"github.com/Chative-core-poc-v1/bookseller/internal/agent/model"
)

const (
	objectionThreshold      = 0.6
	closingIntent           = 0.7
	closingTrust            = 0.6
	closingQuestions        = 3
	presentationTopics      = 3
	discoveryQuestionBudget = 3

	// DefaultContextWindow is how many recent transcript entries feed an update.
	DefaultContextWindow = 10
)

// NextStage classifies the context from scratch. The stored stage is not an
// input, so a conversation can move back to an earlier stage.
func NextStage(c model.ConversationContext) model.Stage {
	asked := len(c.QuestionsAsked)
	switch {
	case c.ObjectionLevel > objectionThreshold:
		return model.StageObjectionHandling
	case c.PurchaseIntent > closingIntent && c.TrustLevel > closingTrust && asked > closingQuestions:
		return model.StageClosing
	case distinct(c.TopicsDiscussed) >= presentationTopics && discussedAny(c.TopicsDiscussed, lexicon.PresentationTopics):
		return model.StagePresentation
	case asked < discoveryQuestionBudget:
		return model.StageDiscovery
	default:
		return model.StagePresentation
	}
}

// UpdateContext folds the latest score and the recent transcript window into c
// and re-derives the stage. Topics of every message in the window are
// appended; customer responses are replaced by the window's customer messages.
func UpdateContext(c *model.ConversationContext, recent []model.TranscriptEntry, score *model.SentimentScore, now time.Time) {
	if score != nil {
		c.CustomerSentiment = score.Label
		c.EngagementLevel = score.Engagement
		c.PurchaseIntent = score.PurchaseIntent
		c.ObjectionLevel = score.ObjectionLevel
		c.TrustLevel = score.TrustLevel
	}

	if len(recent) > DefaultContextWindow {
		recent = recent[len(recent)-DefaultContextWindow:]
	}
	responses := make([]string, 0, len(recent))
	for _, e := range recent {
		c.TopicsDiscussed = append(c.TopicsDiscussed, lexicon.TopicsIn(lexicon.Normalize(e.Message), lexicon.ConversationTopics)...)
		if e.Role == model.RoleUser {
			responses = append(responses, e.Message)
		}
	}
	c.CustomerResponses = responses

	c.Stage = NextStage(*c)
	if n := len(c.CustomerResponses); n > 0 {
		c.CurrentTopic = CurrentTopic(c.CustomerResponses[n-1])
	}
	if !c.StartedAt.IsZero() && now.After(c.StartedAt) {
		c.Duration = now.Sub(c.StartedAt)
	}
}

// CurrentTopic picks the topic of a customer message: price, genre, author,
// purchase, else general.
func CurrentTopic(message string) string {
	if t, ok := lexicon.FirstTopic(lexicon.Normalize(message), lexicon.CurrentTopics); ok {
		return t
	}
	return lexicon.GeneralTopic
}

func distinct(topics []string) int {
	seen := make(map[string]struct{}, len(topics))
	for _, t := range topics {
		seen[t] = struct{}{}
	}
	return len(seen)
}

func discussedAny(topics, wanted []string) bool {
	for _, w := range wanted {
		if slices.Contains(topics, w) {
			return true
		}
	}
	return false
}
