package model

import (
	"context"
	"time"
)

// TranscriptEntry is one utterance of a call. Timestamp is Unix seconds.
type TranscriptEntry struct {
	Role      Role    `json:"role" db:"role"`
	Message   string  `json:"message" db:"message"`
	Timestamp float64 `json:"timestamp" db:"timestamp"`
}

// ConversationContext is the mutable per-room state behind question selection.
type ConversationContext struct {
	RoomID            string         `json:"room_id"`
	Stage             Stage          `json:"stage"`
	CustomerSentiment SentimentLabel `json:"customer_sentiment"`
	EngagementLevel   float64        `json:"engagement_level"`
	PurchaseIntent    float64        `json:"purchase_intent"`
	ObjectionLevel    float64        `json:"objection_level"`
	TrustLevel        float64        `json:"trust_level"`
	// TopicsDiscussed is append-only; duplicates are kept.
	TopicsDiscussed   []string      `json:"topics_discussed"`
	QuestionsAsked    []string      `json:"questions_asked"`
	CustomerResponses []string      `json:"customer_responses"`
	CurrentTopic      string        `json:"current_topic"`
	StartedAt         time.Time     `json:"started_at"`
	Duration          time.Duration `json:"conversation_duration"`
}

// NewConversationContext returns the defaults used for a room seen for the first time.
func NewConversationContext(roomID string, now time.Time) ConversationContext {
	return ConversationContext{
		RoomID:            roomID,
		Stage:             StageOpening,
		CustomerSentiment: Neutral,
		EngagementLevel:   0.5,
		PurchaseIntent:    0.5,
		ObjectionLevel:    0,
		TrustLevel:        0.5,
		TopicsDiscussed:   []string{},
		QuestionsAsked:    []string{},
		CustomerResponses: []string{},
		CurrentTopic:      "general",
		StartedAt:         now,
	}
}

// Question is a suggested next prompt for the agent.
type Question struct {
	ID                string       `json:"question_id" validate:"required"`
	Text              string       `json:"question_text" validate:"required,min=5,max=400"`
	Type              QuestionType `json:"question_type"`
	Stage             Stage        `json:"stage"`
	Priority          int          `json:"priority"`
	ContextHints      []string     `json:"context_hints,omitempty"`
	ExpectedResponse  string       `json:"expected_response_type,omitempty"`
	FollowUps         []string     `json:"follow_up_questions,omitempty"`
	ObjectionHandling bool         `json:"objection_handling"`
}

// ObjectionResponse is the canned answer for one objection category.
type ObjectionResponse struct {
	Category           ObjectionCategory `json:"objection_type"`
	Response           string            `json:"response_text"`
	Technique          string            `json:"technique"`
	FollowUps          []string          `json:"follow_up_questions"`
	ConfidenceBuilders []string          `json:"confidence_builders"`
}

// ContextStore holds one ConversationContext per room. Callers must serialise
// writers per room; implementations do not merge concurrent updates.
type ContextStore interface {
	// Get returns the stored context and whether it existed.
	Get(ctx context.Context, roomID string) (ConversationContext, bool, error)
	Put(ctx context.Context, roomID string, c ConversationContext) error
	Evict(ctx context.Context, roomID string) error
}

// SentimentHistory is the capped, arrival-ordered score log of each room.
type SentimentHistory interface {
	// Record appends a score, evicting the oldest entries beyond the cap.
	Record(ctx context.Context, roomID string, score SentimentScore) error
	// Scores returns the retained scores oldest first.
	Scores(ctx context.Context, roomID string) ([]SentimentScore, error)
	Evict(ctx context.Context, roomID string) error
}
