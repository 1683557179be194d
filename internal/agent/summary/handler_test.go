package summary

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/Chative-core-poc-v1/bookseller/internal/agent/model"
	errx "github.com/Chative-core-poc-v1/bookseller/internal/core/error"
	"github.com/Chative-core-poc-v1/bookseller/pkg/metrics"
)

type fakeRepos struct {
	transcript    []model.TranscriptEntry
	transcriptErr error
	order         *model.OrderDraft
	scores        []model.SentimentScore
	summaries     map[string]model.CallSummary
}

func newFakeRepos(transcript []model.TranscriptEntry) *fakeRepos {
	return &fakeRepos{transcript: transcript, summaries: map[string]model.CallSummary{}}
}

func (f *fakeRepos) AppendEntry(context.Context, string, model.TranscriptEntry) error { return nil }

func (f *fakeRepos) ListEntries(context.Context, string) ([]model.TranscriptEntry, error) {
	return f.transcript, f.transcriptErr
}

func (f *fakeRepos) CountEntries(context.Context, string) (int, error) { return len(f.transcript), nil }
func (f *fakeRepos) ClearEntries(context.Context, string) error        { return nil }

func (f *fakeRepos) UpsertOrder(_ context.Context, _ string, o model.OrderDraft) error {
	f.order = &o
	return nil
}

func (f *fakeRepos) GetOrder(_ context.Context, roomID string) (model.OrderDraft, error) {
	if f.order == nil {
		return model.OrderDraft{}, errx.NotFound("order", roomID)
	}
	return *f.order, nil
}

func (f *fakeRepos) ConfirmOrder(_ context.Context, _, orderID string, at time.Time) (model.OrderDraft, error) {
	o, err := f.order.Confirm(orderID, at)
	f.order = &o
	return o, err
}

func (f *fakeRepos) AppendScore(_ context.Context, _ string, s model.SentimentScore) error {
	f.scores = append(f.scores, s)
	return nil
}

func (f *fakeRepos) ListScores(context.Context, string) ([]model.SentimentScore, error) {
	return f.scores, nil
}

func (f *fakeRepos) UpsertSummary(_ context.Context, s model.CallSummary) error {
	f.summaries[s.RoomID] = s
	return nil
}

func (f *fakeRepos) GetSummary(_ context.Context, roomID string) (model.CallSummary, error) {
	s, ok := f.summaries[roomID]
	if !ok {
		return s, errx.NotFound("summary", roomID)
	}
	return s, nil
}

type archiverFunc func(ctx context.Context, r model.CallReport) (string, error)

func (f archiverFunc) Archive(ctx context.Context, r model.CallReport) (string, error) { return f(ctx, r) }

func TestCallEndExtractsOrderWhenNoneStored(t *testing.T) {
	t.Parallel()

	repos := newFakeRepos([]model.TranscriptEntry{
		entry(model.RoleUser, 100, "Hi, my name is Priya. I'd like 2 copies of \"Dune\"."),
		entry(model.RoleAssistant, 110, "Great choice. How would you like to pay?"),
		entry(model.RoleUser, 120, "I'll pay by card"),
	})
	repos.scores = []model.SentimentScore{
		{Label: model.Neutral, Confidence: 0.5, Engagement: 0.4, PurchaseIntent: 0.5, TrustLevel: 0.5},
		{Label: model.Positive, Confidence: 0.8, Polarity: 0.4, Engagement: 0.6, PurchaseIntent: 0.9, TrustLevel: 0.6,
			Emotions: map[string]float64{"joy": 0.7}},
	}

	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)
	var archived model.CallReport
	h := NewCallEndHandler(repos, repos,
		WithOrders(repos),
		WithSentimentRepository(repos),
		WithMetrics(m),
		WithClock(func() time.Time { return fixedNow }),
		WithArchiver(archiverFunc(func(_ context.Context, r model.CallReport) (string, error) {
			archived = r
			return "call-reports/room-7.json", nil
		})),
	)

	report, err := h.End(context.Background(), "room-7", nil)
	if err != nil {
		t.Fatalf("End: %v", err)
	}

	if report.Order.CustomerName == nil || *report.Order.CustomerName != "Priya" {
		t.Fatalf("order name got %v", report.Order.CustomerName)
	}
	if report.Order.Status != model.OrderDraftStatus || report.Summary.Outcome != model.OutcomePartialSuccess {
		t.Fatalf("order status %v outcome %v", report.Order.Status, report.Summary.Outcome)
	}
	if report.Summary.DurationSeconds != 20 || len(report.Transcript) != 3 || !report.EndedAt.Equal(fixedNow) {
		t.Fatalf("report got duration=%v transcript=%d ended=%v", report.Summary.DurationSeconds, len(report.Transcript), report.EndedAt)
	}

	agg := report.Sentiment
	if agg.Averages.Confidence != 0.65 || agg.Averages.PurchaseIntent != 0.7 || agg.Averages.Polarity != 0.2 {
		t.Fatalf("averages got %+v", agg.Averages)
	}
	if agg.FinalSentiment != model.Positive || agg.LabelChanges != 1 || agg.FinalEmotions["joy"] != 0.7 || len(agg.Journey) != 2 {
		t.Fatalf("aggregate got %+v", agg)
	}

	stored, err := repos.GetSummary(context.Background(), "room-7")
	if err != nil || stored.SummaryID != report.Summary.SummaryID {
		t.Fatalf("stored summary got %v err %v", stored.SummaryID, err)
	}
	if archived.RoomID != "room-7" {
		t.Fatalf("archiver not called with the report")
	}
	if got := testutil.ToFloat64(m.SummariesTotal.WithLabelValues("partial_success")); got != 1 {
		t.Fatalf("summaries metric got %v want 1", got)
	}
}

func TestCallEndUsesStoredOrderAndOverwrites(t *testing.T) {
	t.Parallel()

	repos := newFakeRepos([]model.TranscriptEntry{entry(model.RoleUser, 1, "I'll take it")})
	draft := model.NewOrderDraft()
	draft.BookTitle = ptr("Dune")
	if err := repos.UpsertOrder(context.Background(), "room-8", draft); err != nil {
		t.Fatalf("UpsertOrder: %v", err)
	}

	h := NewCallEndHandler(repos, repos, WithOrders(repos), WithArchiver(archiverFunc(func(context.Context, model.CallReport) (string, error) {
		return "", errors.New("bucket unavailable")
	})))

	first, err := h.End(context.Background(), "room-8", nil)
	if err != nil {
		t.Fatalf("End: %v", err)
	}
	if first.Summary.Outcome != model.OutcomePartialSuccess {
		t.Fatalf("first outcome got %v", first.Summary.Outcome)
	}

	if _, err := repos.ConfirmOrder(context.Background(), "room-8", "ORD-1", fixedNow); err != nil {
		t.Fatalf("ConfirmOrder: %v", err)
	}
	second, err := h.End(context.Background(), "room-8", ptr("confirmed by phone"))
	if err != nil {
		t.Fatalf("End: %v", err)
	}
	if second.Summary.Outcome != model.OutcomeSuccess || second.Summary.OrderValue == nil || *second.Summary.OrderValue != 15.99 {
		t.Fatalf("second summary got %v value %v", second.Summary.Outcome, second.Summary.OrderValue)
	}

	stored, _ := repos.GetSummary(context.Background(), "room-8")
	if stored.Outcome != model.OutcomeSuccess || stored.Notes == nil {
		t.Fatalf("stored summary not overwritten: %+v", stored)
	}
	if second.Sentiment.Averages.Confidence != 0.5 || second.Sentiment.FinalSentiment != model.Neutral {
		t.Fatalf("empty history aggregate got %+v", second.Sentiment)
	}
}

func TestCallEndPropagatesStoreErrors(t *testing.T) {
	t.Parallel()

	repos := newFakeRepos(nil)
	repos.transcriptErr = errx.WrapDB(errors.New("connection reset"))

	h := NewCallEndHandler(repos, repos)
	if _, err := h.End(context.Background(), "room-9", nil); err == nil {
		t.Fatalf("End got nil error, want store error")
	}
	if len(repos.summaries) != 0 {
		t.Fatalf("summary stored despite failure")
	}
}
