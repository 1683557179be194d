// Package summary turns a finished call into a scored debrief.
//
// Summarize is a deterministic batch pass over data that is already
// materialised; CallEndHandler loads that data from the repositories, stores
// the result and assembles the CallReport.
package summary

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Chative-core-poc-v1/bookseller/internal/agent/extract"
	"github.com/Chative-core-poc-v1/bookseller/internal/agent/lexicon"
	"github.com/Chative-core-poc-v1/bookseller/internal/agent/model"
	"github.com/Chative-core-poc-v1/bookseller/internal/agent/sentiment"
)

const (
	maxBooks   = 10
	maxAuthors = 10

	objectionChars          = 200
	addressedObjectionChars = 100
	addressedResponseChars  = 200

	highEngagementMessages   = 8
	mediumEngagementMessages = 4

	recommendationStrength = 3
	objectionStrength      = 0.8
	objectionCoaching      = 0.7
)

// Default list entries used when no rule fires.
const (
	DefaultStrength    = "Completed customer interaction"
	DefaultImprovement = "Maintain current performance"
	DefaultFollowUp    = "No immediate follow-up required"
	DefaultCoaching    = "Continue current performance"

	noConversation = "No conversation data available."
)

var titleCase = cases.Title(language.English)

// Input is everything known about a finished call.
type Input struct {
	RoomID     string
	Transcript []model.TranscriptEntry
	Order      model.OrderDraft
	Sentiment  []model.SentimentScore
	Notes      *string
}

// Summarize builds the CallSummary for one call. It makes no network calls
// and never fails; empty input yields an information_only summary.
func Summarize(in Input, now time.Time) model.CallSummary {
	s := model.CallSummary{
		SummaryID:       model.NewSummaryID(now),
		RoomID:          in.RoomID,
		CustomerName:    in.Order.CustomerName,
		CustomerContact: in.Order.CustomerContact,
		GeneratedAt:     now,
		Notes:           in.Notes,
	}

	countMessages(&s, in.Transcript)
	classifyOutcome(&s, in.Order)
	analyzeContent(&s, in.Transcript)
	analyzeObjections(&s, in.Transcript)
	analyzeSentiment(&s, in.Sentiment)
	rateAgent(&s, in.Transcript)

	s.Strengths = strengths(s)
	s.ImprovementAreas = improvements(s)
	s.FollowUpActions = followUps(s)
	s.CoachingPoints = coaching(s)
	return s
}

func countMessages(s *model.CallSummary, transcript []model.TranscriptEntry) {
	s.TotalMessages = len(transcript)
	for _, e := range transcript {
		if e.Role == model.RoleUser {
			s.CustomerMessages++
		} else {
			s.AgentMessages++
		}
		s.WordCount += len(strings.Fields(e.Message))
		if strings.Contains(e.Message, "?") {
			s.QuestionsAsked++
		}
	}
	if len(transcript) == 0 {
		return
	}

	first, last := transcript[0].Timestamp, transcript[len(transcript)-1].Timestamp
	s.DurationSeconds = math.Max(0, last-first)
	if first > 0 {
		at := unixTime(first)
		s.CallTimestamp = &at
	}
}

func classifyOutcome(s *model.CallSummary, order model.OrderDraft) {
	switch {
	case order.Status != model.OrderDraftStatus:
		s.Outcome = model.OutcomeSuccess
		s.OrderPlaced = true
		s.OrderValue = order.TotalAmount
	case order.BookTitle != nil:
		s.Outcome = model.OutcomePartialSuccess
	default:
		s.Outcome = model.OutcomeInformationOnly
	}

	switch s.Outcome {
	case model.OutcomeSuccess:
		s.Satisfaction, s.Closing = 0.8, model.ClosingStrong
	case model.OutcomePartialSuccess:
		s.Satisfaction, s.Closing = 0.6, model.ClosingModerate
	default:
		s.Satisfaction, s.Closing = 0.5, model.ClosingWeak
	}
}

func analyzeContent(s *model.CallSummary, transcript []model.TranscriptEntry) {
	s.KeyTopics = []string{}
	s.BooksDiscussed = []model.BookMention{}
	s.GenresInterested = []string{}
	s.AuthorsMentioned = []string{}

	if len(transcript) == 0 {
		s.ConversationSummary = noConversation
		s.KeyTopics = append(s.KeyTopics, lexicon.GeneralInquiryTopic)
		return
	}

	normalized := make([]string, len(transcript))
	seenTitles := map[string]bool{}
	seenAuthors := map[string]bool{}
	for i, e := range transcript {
		normalized[i] = lexicon.Normalize(e.Message)

		if e.Role == model.RoleAssistant && lexicon.AnyPhrase(normalized[i], lexicon.RecommendationCues) {
			s.RecommendationsMade++
		}
		for _, title := range extract.QuotedTitles(e.Message) {
			key := strings.ToLower(title)
			if utf8.RuneCountInString(title) <= 3 || seenTitles[key] || len(s.BooksDiscussed) >= maxBooks {
				continue
			}
			seenTitles[key] = true
			s.BooksDiscussed = append(s.BooksDiscussed, model.BookMention{Title: title, MentionedBy: e.Role})
		}
		for _, author := range extract.Authors(e.Message) {
			if seenAuthors[author] || len(s.AuthorsMentioned) >= maxAuthors {
				continue
			}
			seenAuthors[author] = true
			s.AuthorsMentioned = append(s.AuthorsMentioned, author)
		}
	}

	all := strings.Join(normalized, "\n")
	s.KeyTopics = append(s.KeyTopics, lexicon.TopicsIn(all, lexicon.SummaryTopics)...)
	if len(s.KeyTopics) == 0 {
		s.KeyTopics = append(s.KeyTopics, lexicon.GeneralInquiryTopic)
	}
	for _, g := range lexicon.Genres {
		if lexicon.ContainsPhrase(all, g) {
			s.GenresInterested = append(s.GenresInterested, titleCase.String(g))
		}
	}

	s.ConversationSummary = fmt.Sprintf(
		"The call consisted of %d message exchanges. The agent asked %d questions and made %d book recommendations.",
		len(transcript), s.QuestionsAsked, s.RecommendationsMade,
	)
}

// analyzeObjections scans customer messages for concern keywords. A concern is
// addressed when the very next entry is an agent reply.
func analyzeObjections(s *model.CallSummary, transcript []model.TranscriptEntry) {
	s.ObjectionsRaised = []model.Objection{}
	s.ConcernsAddressed = []model.AddressedConcern{}
	s.UnresolvedConcerns = []string{}

	addressed := map[model.ConcernType]bool{}
	for i, e := range transcript {
		if e.Role != model.RoleUser {
			continue
		}
		keyword, ok := lexicon.FirstPhrase(lexicon.Normalize(e.Message), lexicon.ConcernKeywords)
		if !ok {
			continue
		}
		obj := model.Objection{
			Type:      lexicon.ConcernTypeOf(keyword),
			Keyword:   keyword,
			Message:   truncate(e.Message, objectionChars),
			Index:     i,
			Timestamp: e.Timestamp,
		}
		s.ObjectionsRaised = append(s.ObjectionsRaised, obj)

		if i+1 < len(transcript) && transcript[i+1].Role == model.RoleAssistant {
			addressed[obj.Type] = true
			s.ConcernsAddressed = append(s.ConcernsAddressed, model.AddressedConcern{
				Type:      obj.Type,
				Objection: truncate(e.Message, addressedObjectionChars),
				Response:  truncate(transcript[i+1].Message, addressedResponseChars),
			})
		}
	}

	seen := map[string]bool{}
	for _, obj := range s.ObjectionsRaised {
		if addressed[obj.Type] {
			continue
		}
		entry := obj.Type.String() + ": " + obj.Keyword
		if !seen[entry] {
			seen[entry] = true
			s.UnresolvedConcerns = append(s.UnresolvedConcerns, entry)
		}
	}

	s.ObjectionScore = 1
	if n := len(s.ObjectionsRaised); n > 0 {
		s.ObjectionScore = round2(float64(len(s.ConcernsAddressed)) / float64(n))
	}
}

func analyzeSentiment(s *model.CallSummary, history []model.SentimentScore) {
	s.OverallSentiment = model.Neutral
	if n := len(history); n > 0 {
		s.OverallSentiment = history[n-1].Label
	}
	s.SentimentTrend = sentiment.Trend(history)
	s.SentimentJourney = Journey(history)
}

func rateAgent(s *model.CallSummary, transcript []model.TranscriptEntry) {
	switch {
	case s.CustomerMessages > highEngagementMessages:
		s.EngagementLevel = model.LevelHigh
	case s.CustomerMessages > mediumEngagementMessages:
		s.EngagementLevel = model.LevelMedium
	default:
		s.EngagementLevel = model.LevelLow
	}

	s.AgentQuality = model.QualityNeedsImprovement
	if s.AgentMessages == 0 {
		return
	}
	helpful := 0
	for _, e := range transcript {
		if e.Role == model.RoleAssistant && lexicon.AnyPhrase(lexicon.Normalize(e.Message), lexicon.HelpfulCues) {
			helpful++
		}
	}
	switch ratio := float64(helpful) / float64(s.AgentMessages); {
	case ratio > 0.7:
		s.AgentQuality = model.QualityExcellent
	case ratio > 0.5:
		s.AgentQuality = model.QualityGood
	}
}

// Journey numbers the scores from 1 in arrival order.
func Journey(history []model.SentimentScore) []model.JourneyPoint {
	out := make([]model.JourneyPoint, len(history))
	for i, sc := range history {
		out[i] = model.JourneyPoint{Sequence: i + 1, Sentiment: sc.Label, Confidence: sc.Confidence}
	}
	return out
}

func strengths(s model.CallSummary) []string {
	var out []string
	if s.RecommendationsMade >= recommendationStrength {
		out = append(out, fmt.Sprintf("Made %d personalized book recommendations", s.RecommendationsMade))
	}
	if s.ObjectionScore >= objectionStrength {
		out = append(out, "Effectively addressed customer concerns")
	}
	if s.OverallSentiment.IsPositive() {
		out = append(out, "Maintained positive customer sentiment")
	}
	if s.Outcome == model.OutcomeSuccess {
		out = append(out, "Successfully closed the sale")
	}
	return orDefault(out, DefaultStrength)
}

func improvements(s model.CallSummary) []string {
	var out []string
	if len(s.ObjectionsRaised) > len(s.ConcernsAddressed) {
		out = append(out, "Improve objection handling")
	}
	if s.EngagementLevel == model.LevelLow {
		out = append(out, "Increase customer engagement")
	}
	if s.Outcome == model.OutcomeInformationOnly {
		out = append(out, "Work on closing techniques")
	}
	return orDefault(out, DefaultImprovement)
}

func followUps(s model.CallSummary) []string {
	var out []string
	if len(s.UnresolvedConcerns) > 0 {
		out = append(out, "Follow up on unresolved customer concerns")
	}
	if s.Outcome == model.OutcomePartialSuccess {
		out = append(out, "Send follow-up email with personalized book recommendations")
	}
	if len(s.BooksDiscussed) > 0 && s.Outcome != model.OutcomeSuccess {
		out = append(out, "Send information about discussed books")
	}
	return orDefault(out, DefaultFollowUp)
}

// coaching must run after improvements.
func coaching(s model.CallSummary) []string {
	var out []string
	if s.ObjectionScore < objectionCoaching {
		out = append(out, "Practice objection handling techniques")
	}
	if s.Closing == model.ClosingWeak {
		out = append(out, "Work on closing skills and asking for the order")
	}
	if areas := s.ImprovementAreas; len(areas) > 0 && areas[0] != DefaultImprovement {
		out = append(out, "Focus on: "+strings.Join(areas[:min(2, len(areas))], ", "))
	}
	return orDefault(out, DefaultCoaching)
}

func orDefault(list []string, def string) []string {
	if len(list) == 0 {
		return []string{def}
	}
	return list
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func unixTime(ts float64) time.Time {
	return time.UnixMilli(int64(math.Round(ts * 1000))).UTC()
}
