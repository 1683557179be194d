package summary

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/Chative-core-poc-v1/bookseller/internal/agent/model"
)

var fixedNow = time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)

func entry(role model.Role, ts float64, msg string) model.TranscriptEntry {
	return model.TranscriptEntry{Role: role, Message: msg, Timestamp: ts}
}

func ptr[T any](v T) *T { return &v }

func salesCall() []model.TranscriptEntry {
	return []model.TranscriptEntry{
		entry(model.RoleUser, 1700000000, "Hi, my name is Priya. I'm looking for a mystery novel."),
		entry(model.RoleAssistant, 1700000010, `I'd recommend "The Silent Patient" by Alex Michaelides. Would you like it?`),
		entry(model.RoleUser, 1700000020, "Sounds good but it's a bit expensive."),
		entry(model.RoleAssistant, 1700000030, "I understand. We have a paperback edition that costs less."),
		entry(model.RoleUser, 1700000040, "Okay, maybe later."),
	}
}

func labelled(labels ...model.SentimentLabel) []model.SentimentScore {
	out := make([]model.SentimentScore, len(labels))
	for i, l := range labels {
		out[i] = model.SentimentScore{Label: l, Confidence: 0.6, Polarity: 0.1}
	}
	return out
}

func TestSummarizeSalesCall(t *testing.T) {
	t.Parallel()

	order := model.NewOrderDraft()
	order.CustomerName = ptr("Priya")
	order.BookTitle = ptr("The Silent Patient")

	s := Summarize(Input{
		RoomID:     "room-1",
		Transcript: salesCall(),
		Order:      order,
		Sentiment:  labelled(model.Neutral, model.Negative, model.Positive),
		Notes:      ptr("asked about paperbacks"),
	}, fixedNow)

	if !strings.HasPrefix(s.SummaryID, "CS-20261018-") || len(s.SummaryID) != len("CS-20261018-")+8 {
		t.Fatalf("SummaryID got %q", s.SummaryID)
	}
	if s.TotalMessages != 5 || s.CustomerMessages != 3 || s.AgentMessages != 2 {
		t.Fatalf("counts got %d/%d/%d want 5/3/2", s.TotalMessages, s.CustomerMessages, s.AgentMessages)
	}
	if s.DurationSeconds != 40 {
		t.Fatalf("DurationSeconds got %v want 40", s.DurationSeconds)
	}
	if s.CallTimestamp == nil || !s.CallTimestamp.Equal(time.Unix(1700000000, 0)) {
		t.Fatalf("CallTimestamp got %v", s.CallTimestamp)
	}
	if s.CustomerName == nil || *s.CustomerName != "Priya" {
		t.Fatalf("CustomerName got %v", s.CustomerName)
	}
	if s.Outcome != model.OutcomePartialSuccess || s.OrderPlaced || s.Satisfaction != 0.6 || s.Closing != model.ClosingModerate {
		t.Fatalf("outcome got %v placed=%v sat=%v closing=%v", s.Outcome, s.OrderPlaced, s.Satisfaction, s.Closing)
	}

	wantSummary := "The call consisted of 5 message exchanges. The agent asked 1 questions and made 1 book recommendations."
	if s.ConversationSummary != wantSummary {
		t.Fatalf("ConversationSummary got %q", s.ConversationSummary)
	}
	if want := []string{"Book Recommendations"}; !reflect.DeepEqual(s.KeyTopics, want) {
		t.Fatalf("KeyTopics got %q want %q", s.KeyTopics, want)
	}
	if want := []model.BookMention{{Title: "The Silent Patient", MentionedBy: model.RoleAssistant}}; !reflect.DeepEqual(s.BooksDiscussed, want) {
		t.Fatalf("BooksDiscussed got %+v", s.BooksDiscussed)
	}
	if want := []string{"Mystery"}; !reflect.DeepEqual(s.GenresInterested, want) {
		t.Fatalf("GenresInterested got %q", s.GenresInterested)
	}
	if want := []string{"Alex Michaelides"}; !reflect.DeepEqual(s.AuthorsMentioned, want) {
		t.Fatalf("AuthorsMentioned got %q", s.AuthorsMentioned)
	}

	if len(s.ObjectionsRaised) != 2 {
		t.Fatalf("ObjectionsRaised got %+v", s.ObjectionsRaised)
	}
	if o := s.ObjectionsRaised[0]; o.Type != model.ConcernPrice || o.Keyword != "expensive" || o.Index != 2 || o.Timestamp != 1700000020 {
		t.Fatalf("first objection got %+v", o)
	}
	if o := s.ObjectionsRaised[1]; o.Type != model.ConcernUncertainty || o.Keyword != "maybe" {
		t.Fatalf("second objection got %+v", o)
	}
	if len(s.ConcernsAddressed) != 1 || s.ConcernsAddressed[0].Response != "I understand. We have a paperback edition that costs less." {
		t.Fatalf("ConcernsAddressed got %+v", s.ConcernsAddressed)
	}
	if want := []string{"uncertainty: maybe"}; !reflect.DeepEqual(s.UnresolvedConcerns, want) {
		t.Fatalf("UnresolvedConcerns got %q", s.UnresolvedConcerns)
	}
	if s.ObjectionScore != 0.5 {
		t.Fatalf("ObjectionScore got %v want 0.5", s.ObjectionScore)
	}

	if s.OverallSentiment != model.Positive || s.SentimentTrend != model.TrendStable || len(s.SentimentJourney) != 3 {
		t.Fatalf("sentiment got %v %v %d", s.OverallSentiment, s.SentimentTrend, len(s.SentimentJourney))
	}
	if j := s.SentimentJourney[1]; j.Sequence != 2 || j.Sentiment != model.Negative || j.Confidence != 0.6 {
		t.Fatalf("journey[1] got %+v", j)
	}
	if s.EngagementLevel != model.LevelLow || s.AgentQuality != model.QualityExcellent || s.RecommendationsMade != 1 || s.QuestionsAsked != 1 {
		t.Fatalf("ratings got engagement=%v quality=%v recs=%d questions=%d", s.EngagementLevel, s.AgentQuality, s.RecommendationsMade, s.QuestionsAsked)
	}

	checkList(t, "Strengths", s.Strengths, "Maintained positive customer sentiment")
	checkList(t, "ImprovementAreas", s.ImprovementAreas, "Improve objection handling", "Increase customer engagement")
	checkList(t, "FollowUpActions", s.FollowUpActions,
		"Follow up on unresolved customer concerns",
		"Send follow-up email with personalized book recommendations",
		"Send information about discussed books",
	)
	checkList(t, "CoachingPoints", s.CoachingPoints,
		"Practice objection handling techniques",
		"Focus on: Improve objection handling, Increase customer engagement",
	)
	if s.Notes == nil || *s.Notes != "asked about paperbacks" || !s.GeneratedAt.Equal(fixedNow) {
		t.Fatalf("metadata got notes=%v generated=%v", s.Notes, s.GeneratedAt)
	}
}

func checkList(t *testing.T, name string, got []string, want ...string) {
	t.Helper()
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("%s got %q want %q", name, got, want)
	}
}

func TestSummarizeOutcome(t *testing.T) {
	t.Parallel()

	confirmed, err := func() (model.OrderDraft, error) {
		o := model.NewOrderDraft()
		o.BookTitle = ptr("Dune")
		o.SetQuantity(2)
		return o.Confirm("ORD-1", fixedNow)
	}()
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	titled := model.NewOrderDraft()
	titled.BookTitle = ptr("Dune")

	cases := []struct {
		name    string
		order   model.OrderDraft
		want    model.Outcome
		placed  bool
		closing model.Closing
	}{
		{"confirmed", confirmed, model.OutcomeSuccess, true, model.ClosingStrong},
		{"titled", titled, model.OutcomePartialSuccess, false, model.ClosingModerate},
		{"empty", model.NewOrderDraft(), model.OutcomeInformationOnly, false, model.ClosingWeak},
	}
	for _, tc := range cases {
		s := Summarize(Input{RoomID: "r", Transcript: salesCall(), Order: tc.order}, fixedNow)
		if s.Outcome != tc.want || s.OrderPlaced != tc.placed || s.Closing != tc.closing {
			t.Fatalf("%s: got %v placed=%v closing=%v want %v placed=%v closing=%v",
				tc.name, s.Outcome, s.OrderPlaced, s.Closing, tc.want, tc.placed, tc.closing)
		}
	}

	s := Summarize(Input{Order: confirmed}, fixedNow)
	if s.OrderValue == nil || *s.OrderValue != 31.98 {
		t.Fatalf("OrderValue got %v want 31.98", s.OrderValue)
	}
	checkList(t, "Strengths", s.Strengths, "Effectively addressed customer concerns", "Successfully closed the sale")
}

func TestSummarizeEmptyCall(t *testing.T) {
	t.Parallel()

	s := Summarize(Input{RoomID: "quiet", Order: model.NewOrderDraft()}, fixedNow)

	if s.ConversationSummary != "No conversation data available." {
		t.Fatalf("ConversationSummary got %q", s.ConversationSummary)
	}
	checkList(t, "KeyTopics", s.KeyTopics, "General Inquiry")
	if s.CallTimestamp != nil || s.DurationSeconds != 0 {
		t.Fatalf("timing got %v %v", s.CallTimestamp, s.DurationSeconds)
	}
	if s.AgentQuality != model.QualityNeedsImprovement || s.ObjectionScore != 1 || s.OverallSentiment != model.Neutral {
		t.Fatalf("ratings got %v %v %v", s.AgentQuality, s.ObjectionScore, s.OverallSentiment)
	}
	if s.SentimentTrend != model.TrendInsufficientData {
		t.Fatalf("trend got %v", s.SentimentTrend)
	}
	if s.BooksDiscussed == nil || s.ObjectionsRaised == nil || s.UnresolvedConcerns == nil {
		t.Fatalf("list fields must be empty, not nil")
	}
	checkList(t, "FollowUpActions", s.FollowUpActions, DefaultFollowUp)
	checkList(t, "CoachingPoints", s.CoachingPoints,
		"Work on closing skills and asking for the order",
		"Focus on: Increase customer engagement, Work on closing techniques",
	)
}

func TestListDefaults(t *testing.T) {
	t.Parallel()

	s := model.CallSummary{
		Outcome:          model.OutcomePartialSuccess,
		EngagementLevel:  model.LevelHigh,
		ObjectionScore:   0.75,
		Closing:          model.ClosingStrong,
		OverallSentiment: model.Neutral,
	}
	s.Strengths = strengths(s)
	checkList(t, "Strengths", s.Strengths, DefaultStrength)

	s.ImprovementAreas = improvements(s)
	checkList(t, "ImprovementAreas", s.ImprovementAreas, DefaultImprovement)
	checkList(t, "CoachingPoints", coaching(s), DefaultCoaching)
}

func TestSummarizeCapsAndDedupsBooks(t *testing.T) {
	t.Parallel()

	var transcript []model.TranscriptEntry
	for i := 0; i < 12; i++ {
		transcript = append(transcript, entry(model.RoleAssistant, float64(i), fmt.Sprintf(`Try "Volume %02d" by Ann Lee%c`, i, 'a'+i)))
	}
	transcript = append([]model.TranscriptEntry{
		entry(model.RoleUser, 0, `I loved "volume 00" and "Emma" but not "Ivy"`),
	}, transcript...)

	s := Summarize(Input{Transcript: transcript, Order: model.NewOrderDraft()}, fixedNow)

	if len(s.BooksDiscussed) != 10 {
		t.Fatalf("BooksDiscussed got %d want 10", len(s.BooksDiscussed))
	}
	if b := s.BooksDiscussed[0]; b.Title != "volume 00" || b.MentionedBy != model.RoleUser {
		t.Fatalf("first book got %+v", b)
	}
	if b := s.BooksDiscussed[1]; b.Title != "Emma" {
		t.Fatalf("second book got %+v", b)
	}
	for _, b := range s.BooksDiscussed {
		if b.Title == "Volume 00" || b.Title == "Ivy" {
			t.Fatalf("unexpected book %+v", b)
		}
	}
	if len(s.AuthorsMentioned) != 10 || s.AuthorsMentioned[0] != "Ann Leea" {
		t.Fatalf("AuthorsMentioned got %q", s.AuthorsMentioned)
	}
}
