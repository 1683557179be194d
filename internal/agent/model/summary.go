package model

import (
	"context"
	"time"
)

// BookMention is a quoted title harvested from the transcript.
type BookMention struct {
	Title       string `json:"title"`
	MentionedBy Role   `json:"mentioned_by"`
}

// Objection is a customer message flagged by the post-call keyword scan.
type Objection struct {
	Type      ConcernType `json:"type"`
	Keyword   string      `json:"keyword"`
	Message   string      `json:"message"`
	Index     int         `json:"index"`
	Timestamp float64     `json:"timestamp"`
}

// AddressedConcern pairs an objection with the agent reply that followed it.
type AddressedConcern struct {
	Type      ConcernType `json:"objection_type"`
	Objection string      `json:"objection"`
	Response  string      `json:"response"`
}

// JourneyPoint is one step of the sentiment journey.
type JourneyPoint struct {
	Sequence   int            `json:"sequence"`
	Sentiment  SentimentLabel `json:"sentiment"`
	Confidence float64        `json:"confidence"`
}

// CallSummary is the post-call debrief, unique per room.
type CallSummary struct {
	SummaryID           string             `json:"summary_id"`
	RoomID              string             `json:"room_id"`
	DurationSeconds     float64            `json:"call_duration_seconds"`
	TotalMessages       int                `json:"total_messages"`
	CustomerMessages    int                `json:"customer_messages"`
	AgentMessages       int                `json:"agent_messages"`
	WordCount           int                `json:"word_count"`
	CustomerName        *string            `json:"customer_name"`
	CustomerContact     *string            `json:"customer_contact"`
	Outcome             Outcome            `json:"call_outcome"`
	OrderPlaced         bool               `json:"order_placed"`
	OrderValue          *float64           `json:"order_value"`
	ConversationSummary string             `json:"conversation_summary"`
	KeyTopics           []string           `json:"key_topics"`
	BooksDiscussed      []BookMention      `json:"books_discussed"`
	GenresInterested    []string           `json:"genres_interested"`
	AuthorsMentioned    []string           `json:"authors_mentioned"`
	ObjectionsRaised    []Objection        `json:"objections_raised"`
	ConcernsAddressed   []AddressedConcern `json:"concerns_addressed"`
	UnresolvedConcerns  []string           `json:"unresolved_concerns"`
	OverallSentiment    SentimentLabel     `json:"overall_sentiment"`
	SentimentTrend      Trend              `json:"sentiment_trend"`
	SentimentJourney    []JourneyPoint     `json:"sentiment_journey"`
	EngagementLevel     Level              `json:"engagement_level"`
	Satisfaction        float64            `json:"customer_satisfaction"`
	AgentQuality        QualityTier        `json:"agent_response_quality"`
	QuestionsAsked      int                `json:"questions_asked"`
	RecommendationsMade int                `json:"recommendations_made"`
	ObjectionScore      float64            `json:"objection_handling_score"`
	Closing             Closing            `json:"closing_effectiveness"`
	Strengths           []string           `json:"strengths"`
	ImprovementAreas    []string           `json:"improvement_areas"`
	FollowUpActions     []string           `json:"follow_up_actions"`
	CoachingPoints      []string           `json:"coaching_points"`
	CallTimestamp       *time.Time         `json:"call_timestamp"`
	GeneratedAt         time.Time          `json:"generated_at"`
	Notes               *string            `json:"manual_notes"`
}

// SentimentAggregate is the sentiment section of a call report.
type SentimentAggregate struct {
	Averages       SentimentAverages  `json:"average_metrics"`
	Journey        []JourneyPoint     `json:"sentiment_journey"`
	FinalSentiment SentimentLabel     `json:"final_sentiment"`
	LabelChanges   int                `json:"sentiment_changes"`
	FinalEmotions  map[string]float64 `json:"final_emotions"`
	Trend          Trend              `json:"trend"`
}

// CallReport bundles everything produced when a call ends.
type CallReport struct {
	RoomID     string             `json:"room_id"`
	Summary    CallSummary        `json:"summary"`
	Sentiment  SentimentAggregate `json:"sentiment"`
	Transcript []TranscriptEntry  `json:"transcript"`
	Order      OrderDraft         `json:"order"`
	EndedAt    time.Time          `json:"ended_at"`
}

// ReportArchiver stores finished reports outside the primary database.
type ReportArchiver interface {
	Archive(ctx context.Context, report CallReport) (string, error)
}
