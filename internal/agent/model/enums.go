package model

import "fmt"

// enum is the shared text codec for the closed uint8 enumerations below.
// Index 0 of names is the zero value.
type enum[T ~uint8] struct {
	kind  string
	names []string
}

func (e enum[T]) name(v T) string {
	if int(v) < len(e.names) {
		return e.names[v]
	}
	return fmt.Sprintf("%s(%d)", e.kind, uint8(v))
}

func (e enum[T]) parse(s string) (T, error) {
	for i, n := range e.names {
		if n == s {
			return T(i), nil
		}
	}
	return 0, fmt.Errorf("unknown %s %q", e.kind, s)
}

// ================ Sentiment ================

// SentimentLabel is the five-point sentiment scale.
type SentimentLabel uint8

const (
	Neutral SentimentLabel = iota
	VeryNegative
	Negative
	Positive
	VeryPositive
)

var sentimentLabels = enum[SentimentLabel]{"sentiment label", []string{
	"neutral", "very_negative", "negative", "positive", "very_positive",
}}

// AllSentimentLabels lists labels from most negative to most positive.
var AllSentimentLabels = []SentimentLabel{VeryNegative, Negative, Neutral, Positive, VeryPositive}

func (l SentimentLabel) String() string { return sentimentLabels.name(l) }

func (l SentimentLabel) MarshalText() ([]byte, error) { return []byte(l.String()), nil }

func (l *SentimentLabel) UnmarshalText(b []byte) error {
	v, err := sentimentLabels.parse(string(b))
	*l = v
	return err
}

// ParseSentimentLabel accepts the canonical names plus a few provider spellings.
func ParseSentimentLabel(s string) (SentimentLabel, error) {
	switch s {
	case "very positive", "very-positive":
		return VeryPositive, nil
	case "very negative", "very-negative":
		return VeryNegative, nil
	}
	return sentimentLabels.parse(s)
}

// IsPositive reports positive or very_positive.
func (l SentimentLabel) IsPositive() bool { return l == Positive || l == VeryPositive }

// LabelFor maps a combined polarity onto the five-point scale.
func LabelFor(polarity float64) SentimentLabel {
	switch {
	case polarity > 0.5:
		return VeryPositive
	case polarity > 0.1:
		return Positive
	case polarity < -0.5:
		return VeryNegative
	case polarity < -0.1:
		return Negative
	default:
		return Neutral
	}
}

// ShiftDirection is the sign of a sentiment shift.
type ShiftDirection uint8

const (
	ShiftNeutral ShiftDirection = iota
	ShiftPositive
	ShiftNegative
)

var shiftDirections = enum[ShiftDirection]{"shift direction", []string{"neutral", "positive", "negative"}}

func (d ShiftDirection) String() string { return shiftDirections.name(d) }

func (d ShiftDirection) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

func (d *ShiftDirection) UnmarshalText(b []byte) error {
	v, err := shiftDirections.parse(string(b))
	*d = v
	return err
}

// Trend compares early and late polarity of a history.
type Trend uint8

const (
	TrendInsufficientData Trend = iota
	TrendImproving
	TrendDeclining
	TrendStable
)

var trends = enum[Trend]{"trend", []string{"insufficient_data", "improving", "declining", "stable"}}

func (t Trend) String() string { return trends.name(t) }

func (t Trend) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *Trend) UnmarshalText(b []byte) error {
	v, err := trends.parse(string(b))
	*t = v
	return err
}

// ================ Conversation ================

// Stage is the sales funnel phase of a conversation.
type Stage uint8

const (
	StageOpening Stage = iota
	StageDiscovery
	StagePresentation
	StageObjectionHandling
	StageClosing
	StageFollowUp
)

var stages = enum[Stage]{"stage", []string{
	"opening", "discovery", "presentation", "objection_handling", "closing", "follow_up",
}}

func (s Stage) String() string { return stages.name(s) }

func (s Stage) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Stage) UnmarshalText(b []byte) error {
	v, err := stages.parse(string(b))
	*s = v
	return err
}

// ObjectionCategory classifies customer resistance in the live conversation.
type ObjectionCategory uint8

const (
	ObjectionPrice ObjectionCategory = iota
	ObjectionNeed
	ObjectionTrust
	ObjectionTime
	ObjectionAuthority
)

var objectionCategories = enum[ObjectionCategory]{"objection category", []string{
	"price", "need", "trust", "time", "authority",
}}

func (c ObjectionCategory) String() string { return objectionCategories.name(c) }

func (c ObjectionCategory) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *ObjectionCategory) UnmarshalText(b []byte) error {
	v, err := objectionCategories.parse(string(b))
	*c = v
	return err
}

// QuestionType describes the shape of a suggested question.
type QuestionType uint8

const (
	QuestionOpenEnded QuestionType = iota
	QuestionClosedEnded
	QuestionProbing
	QuestionClarifying
	QuestionObjectionHandling
	QuestionClosing
	QuestionFollowUp
)

var questionTypes = enum[QuestionType]{"question type", []string{
	"open_ended", "closed_ended", "probing", "clarifying", "objection_handling", "closing", "follow_up",
}}

func (q QuestionType) String() string { return questionTypes.name(q) }

func (q QuestionType) MarshalText() ([]byte, error) { return []byte(q.String()), nil }

func (q *QuestionType) UnmarshalText(b []byte) error {
	v, err := questionTypes.parse(string(b))
	*q = v
	return err
}

// ParseQuestionType parses a question type name.
func ParseQuestionType(s string) (QuestionType, error) { return questionTypes.parse(s) }

// Role is the speaker of a transcript entry.
type Role uint8

const (
	RoleUser Role = iota
	RoleAssistant
)

var roles = enum[Role]{"role", []string{"user", "assistant"}}

func (r Role) String() string { return roles.name(r) }

func (r Role) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

func (r *Role) UnmarshalText(b []byte) error {
	switch string(b) {
	case "customer":
		*r = RoleUser
		return nil
	case "agent":
		*r = RoleAssistant
		return nil
	}
	v, err := roles.parse(string(b))
	*r = v
	return err
}

// ================ Order ================

// DeliveryOption is how the customer receives the books.
type DeliveryOption uint8

const (
	HomeDelivery DeliveryOption = iota
	StorePickup
	ExpressDelivery
)

var deliveryOptions = enum[DeliveryOption]{"delivery option", []string{
	"home_delivery", "store_pickup", "express_delivery",
}}

func (d DeliveryOption) String() string { return deliveryOptions.name(d) }

func (d DeliveryOption) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

func (d *DeliveryOption) UnmarshalText(b []byte) error {
	v, err := deliveryOptions.parse(string(b))
	*d = v
	return err
}

// OrderStatus is draft until an explicit confirmation.
type OrderStatus uint8

const (
	OrderDraftStatus OrderStatus = iota
	OrderConfirmed
)

var orderStatuses = enum[OrderStatus]{"order status", []string{"draft", "confirmed"}}

func (s OrderStatus) String() string { return orderStatuses.name(s) }

func (s OrderStatus) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *OrderStatus) UnmarshalText(b []byte) error {
	v, err := orderStatuses.parse(string(b))
	*s = v
	return err
}

// ================ Summary ================

// Outcome classifies how a call ended.
type Outcome uint8

const (
	OutcomeInformationOnly Outcome = iota
	OutcomePartialSuccess
	OutcomeSuccess
	OutcomeNoSale
)

var outcomes = enum[Outcome]{"outcome", []string{
	"information_only", "partial_success", "success", "no_sale",
}}

func (o Outcome) String() string { return outcomes.name(o) }

func (o Outcome) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

func (o *Outcome) UnmarshalText(b []byte) error {
	v, err := outcomes.parse(string(b))
	*o = v
	return err
}

// ParseOutcome parses an outcome name.
func ParseOutcome(s string) (Outcome, error) { return outcomes.parse(s) }

// Level is a coarse low/medium/high rating.
type Level uint8

const (
	LevelLow Level = iota
	LevelMedium
	LevelHigh
)

var levels = enum[Level]{"level", []string{"low", "medium", "high"}}

func (l Level) String() string { return levels.name(l) }

func (l Level) MarshalText() ([]byte, error) { return []byte(l.String()), nil }

func (l *Level) UnmarshalText(b []byte) error {
	v, err := levels.parse(string(b))
	*l = v
	return err
}

// QualityTier rates the agent's responses.
type QualityTier uint8

const (
	QualityNeedsImprovement QualityTier = iota
	QualityGood
	QualityExcellent
)

var qualityTiers = enum[QualityTier]{"quality tier", []string{"needs_improvement", "good", "excellent"}}

func (q QualityTier) String() string { return qualityTiers.name(q) }

func (q QualityTier) MarshalText() ([]byte, error) { return []byte(q.String()), nil }

func (q *QualityTier) UnmarshalText(b []byte) error {
	v, err := qualityTiers.parse(string(b))
	*q = v
	return err
}

// Closing rates how well the agent closed.
type Closing uint8

const (
	ClosingWeak Closing = iota
	ClosingModerate
	ClosingStrong
)

var closings = enum[Closing]{"closing", []string{"weak", "moderate", "strong"}}

func (c Closing) String() string { return closings.name(c) }

func (c Closing) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *Closing) UnmarshalText(b []byte) error {
	v, err := closings.parse(string(b))
	*c = v
	return err
}

// ConcernType is the post-call objection taxonomy, which differs from the
// live ObjectionCategory set.
type ConcernType uint8

const (
	ConcernGeneral ConcernType = iota
	ConcernPrice
	ConcernUncertainty
	ConcernTiming
	ConcernNeed
)

var concernTypes = enum[ConcernType]{"concern type", []string{
	"general_concern", "price", "uncertainty", "timing", "need",
}}

func (c ConcernType) String() string { return concernTypes.name(c) }

func (c ConcernType) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *ConcernType) UnmarshalText(b []byte) error {
	v, err := concernTypes.parse(string(b))
	*c = v
	return err
}
