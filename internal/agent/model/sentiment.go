package model

import "time"

// SalesMetrics are the keyword-derived sales signals, each in [0,1].
type SalesMetrics struct {
	PurchaseIntent float64 `json:"purchase_intent"`
	ObjectionLevel float64 `json:"objection_level"`
	TrustLevel     float64 `json:"trust_level"`
	Urgency        float64 `json:"urgency"`
	Engagement     float64 `json:"engagement"`
}

// DefaultSalesMetrics is used when no sales signal could be computed.
func DefaultSalesMetrics() SalesMetrics {
	return SalesMetrics{
		PurchaseIntent: 0.5,
		ObjectionLevel: 0,
		TrustLevel:     0.5,
		Urgency:        0,
		Engagement:     0.5,
	}
}

// SentimentScore is the immutable analysis of one customer message.
type SentimentScore struct {
	Label          SentimentLabel     `json:"overall_sentiment"`
	Confidence     float64            `json:"confidence"`
	Polarity       float64            `json:"polarity"`
	Subjectivity   float64            `json:"subjectivity"`
	Intensity      float64            `json:"intensity"`
	Emotions       map[string]float64 `json:"emotions"`
	Urgency        float64            `json:"urgency"`
	Engagement     float64            `json:"engagement"`
	Satisfaction   float64            `json:"satisfaction"`
	PurchaseIntent float64            `json:"purchase_intent"`
	ObjectionLevel float64            `json:"objection_level"`
	TrustLevel     float64            `json:"trust_level"`
	// Cues are the sales keywords matched in the message.
	Cues           []string      `json:"cues,omitempty"`
	Timestamp      time.Time     `json:"timestamp"`
	MessageLength  int           `json:"message_length"`
	ProcessingTime time.Duration `json:"processing_time"`
}

// NeutralScore is returned for blank input.
func NeutralScore(at time.Time) SentimentScore {
	m := DefaultSalesMetrics()
	return SentimentScore{
		Label:          Neutral,
		Confidence:     0.5,
		Polarity:       0,
		Subjectivity:   0.5,
		Intensity:      0,
		Emotions:       map[string]float64{},
		Urgency:        m.Urgency,
		Engagement:     m.Engagement,
		Satisfaction:   0.5,
		PurchaseIntent: m.PurchaseIntent,
		ObjectionLevel: m.ObjectionLevel,
		TrustLevel:     m.TrustLevel,
		Timestamp:      at,
	}
}

// SentimentShift is derived from two adjacent history entries.
type SentimentShift struct {
	PreviousLabel  SentimentLabel `json:"previous_sentiment"`
	CurrentLabel   SentimentLabel `json:"current_sentiment"`
	Magnitude      float64        `json:"shift_magnitude"`
	Direction      ShiftDirection `json:"shift_direction"`
	TriggerPhrases []string       `json:"trigger_phrases"`
	Timestamp      time.Time      `json:"timestamp"`
	Confidence     float64        `json:"confidence"`
}

// SentimentAverages are means over a full history.
type SentimentAverages struct {
	Polarity       float64 `json:"polarity"`
	Confidence     float64 `json:"confidence"`
	Engagement     float64 `json:"engagement"`
	PurchaseIntent float64 `json:"purchase_intent"`
	TrustLevel     float64 `json:"trust_level"`
}

// SentimentSummary aggregates a room's history.
type SentimentSummary struct {
	MessageCount      int               `json:"message_count"`
	Averages          SentimentAverages `json:"average_sentiment"`
	Distribution      map[string]int    `json:"sentiment_distribution"`
	Trend             Trend             `json:"sentiment_trend"`
	ShiftsDetected    int               `json:"shifts_detected"`
	ConversationStart time.Time         `json:"conversation_start,omitempty"`
	LastUpdate        time.Time         `json:"last_update,omitempty"`
}

// SentimentJudgement is the parsed answer of a model-backed sentiment or
// emotion pass. HasSentiment is false when no sentiment record was usable.
type SentimentJudgement struct {
	HasSentiment    bool               `json:"-"`
	Label           SentimentLabel     `json:"label"`
	Polarity        float64            `json:"polarity" validate:"gte=-1,lte=1"`
	Confidence      float64            `json:"confidence" validate:"gte=0,lte=1"`
	Subjectivity    *float64           `json:"subjectivity,omitempty" validate:"omitempty,gte=0,lte=1"`
	KeyPhrases      []string           `json:"key_phrases" validate:"max=10,dive,required"`
	Emotions        map[string]float64 `json:"emotions" validate:"dive,gte=0,lte=1"`
	ParsingMetadata map[string]any     `json:"parsing_metadata,omitempty"`
}
