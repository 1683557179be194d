package summary

import (
	"context"
	"time"

	"github.com/Chative-core-poc-v1/bookseller/internal/agent/extract"
	"github.com/Chative-core-poc-v1/bookseller/internal/agent/model"
	"github.com/Chative-core-poc-v1/bookseller/internal/agent/sentiment"
	errx "github.com/Chative-core-poc-v1/bookseller/internal/core/error"
	logx "github.com/Chative-core-poc-v1/bookseller/pkg/logger"
	"github.com/Chative-core-poc-v1/bookseller/pkg/metrics"
)

// CallEndHandler runs the "call ended" trigger: it loads what was persisted
// for a room, summarises it and stores the summary. Running it twice for the
// same room overwrites the earlier summary.
type CallEndHandler struct {
	transcripts model.TranscriptRepository
	summaries   model.SummaryRepository
	orders      model.OrderRepository
	scores      model.SentimentRepository
	history     model.SentimentHistory
	archiver    model.ReportArchiver
	metrics     *metrics.Metrics
	now         func() time.Time
}

type Option func(*CallEndHandler)

// WithOrders reads the stored order; without it, or when the room has none,
// the order is extracted from the transcript.
func WithOrders(r model.OrderRepository) Option {
	return func(h *CallEndHandler) { h.orders = r }
}

// WithSentimentRepository takes precedence over WithHistory.
func WithSentimentRepository(r model.SentimentRepository) Option {
	return func(h *CallEndHandler) { h.scores = r }
}

func WithHistory(hist model.SentimentHistory) Option {
	return func(h *CallEndHandler) { h.history = hist }
}

func WithArchiver(a model.ReportArchiver) Option {
	return func(h *CallEndHandler) { h.archiver = a }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(h *CallEndHandler) { h.metrics = m }
}

func WithClock(now func() time.Time) Option {
	return func(h *CallEndHandler) { h.now = now }
}

func NewCallEndHandler(transcripts model.TranscriptRepository, summaries model.SummaryRepository, opts ...Option) *CallEndHandler {
	h := &CallEndHandler{transcripts: transcripts, summaries: summaries, now: time.Now}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// End builds and stores the call report for roomID. Archive failures are
// logged and do not fail the call.
func (h *CallEndHandler) End(ctx context.Context, roomID string, notes *string) (model.CallReport, error) {
	now := h.now()

	transcript, err := h.transcripts.ListEntries(ctx, roomID)
	if err != nil {
		return model.CallReport{}, err
	}
	if transcript == nil {
		transcript = []model.TranscriptEntry{}
	}

	order, err := h.loadOrder(ctx, roomID, transcript)
	if err != nil {
		return model.CallReport{}, err
	}

	scores, err := h.loadScores(ctx, roomID)
	if err != nil {
		return model.CallReport{}, err
	}

	summary := Summarize(Input{
		RoomID:     roomID,
		Transcript: transcript,
		Order:      order,
		Sentiment:  scores,
		Notes:      notes,
	}, now)
	if err := h.summaries.UpsertSummary(ctx, summary); err != nil {
		return model.CallReport{}, err
	}
	h.metrics.RecordSummary(summary.Outcome.String())

	report := model.CallReport{
		RoomID:     roomID,
		Summary:    summary,
		Sentiment:  Aggregate(scores),
		Transcript: transcript,
		Order:      order,
		EndedAt:    now,
	}

	if h.archiver != nil {
		key, err := h.archiver.Archive(ctx, report)
		if err != nil {
			logx.Warn().Err(err).Str("room_id", roomID).Msg("report archive failed")
		} else {
			logx.Debug().Str("room_id", roomID).Str("key", key).Msg("report archived")
		}
	}

	logx.Info().
		Str("room_id", roomID).
		Str("summary_id", summary.SummaryID).
		Str("outcome", summary.Outcome.String()).
		Int("messages", summary.TotalMessages).
		Msg("call summary generated")
	return report, nil
}

func (h *CallEndHandler) loadOrder(ctx context.Context, roomID string, transcript []model.TranscriptEntry) (model.OrderDraft, error) {
	if h.orders != nil {
		order, err := h.orders.GetOrder(ctx, roomID)
		if err == nil {
			return order, nil
		}
		if !errx.IsNotFound(err) {
			return model.OrderDraft{}, err
		}
	}
	return extract.Extract(transcript), nil
}

func (h *CallEndHandler) loadScores(ctx context.Context, roomID string) ([]model.SentimentScore, error) {
	switch {
	case h.scores != nil:
		return h.scores.ListScores(ctx, roomID)
	case h.history != nil:
		return h.history.Scores(ctx, roomID)
	default:
		return nil, nil
	}
}

// Aggregate is the sentiment section of the report. Averages are rounded to
// two places; an empty history reports neutral defaults.
func Aggregate(history []model.SentimentScore) model.SentimentAggregate {
	agg := model.SentimentAggregate{
		Averages: model.SentimentAverages{
			Confidence:     0.5,
			Engagement:     0.5,
			PurchaseIntent: 0.3,
			TrustLevel:     0.5,
		},
		Journey:        Journey(history),
		FinalSentiment: model.Neutral,
		FinalEmotions:  map[string]float64{},
		Trend:          sentiment.Trend(history),
	}
	if len(history) == 0 {
		return agg
	}

	avg := sentiment.Averages(history)
	agg.Averages = model.SentimentAverages{
		Polarity:       round2(avg.Polarity),
		Confidence:     round2(avg.Confidence),
		Engagement:     round2(avg.Engagement),
		PurchaseIntent: round2(avg.PurchaseIntent),
		TrustLevel:     round2(avg.TrustLevel),
	}

	last := history[len(history)-1]
	agg.FinalSentiment = last.Label
	for k, v := range last.Emotions {
		agg.FinalEmotions[k] = v
	}
	for i := 1; i < len(history); i++ {
		if history[i].Label != history[i-1].Label {
			agg.LabelChanges++
		}
	}
	return agg
}
