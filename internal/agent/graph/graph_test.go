package graph

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/Chative-core-poc-v1/bookseller/internal/agent/graph/tools"
	"github.com/Chative-core-poc-v1/bookseller/internal/agent/model"
	"github.com/Chative-core-poc-v1/bookseller/internal/agent/repo"
	"github.com/Chative-core-poc-v1/bookseller/internal/agent/sentiment"
	"github.com/Chative-core-poc-v1/bookseller/internal/agent/stage"
	errx "github.com/Chative-core-poc-v1/bookseller/internal/core/error"
	"github.com/Chative-core-poc-v1/bookseller/pkg/metrics"
)

// keywordPass scores "love" strongly positive and "hate" strongly negative.
type keywordPass struct{}

func (keywordPass) Name() string    { return "keyword" }
func (keywordPass) Weight() float64 { return 1 }
func (keywordPass) Analyze(_ context.Context, text string) (*sentiment.Partial, error) {
	switch {
	case strings.Contains(strings.ToLower(text), "love"):
		return sentiment.PolarityPartial(0.9, 0.9), nil
	case strings.Contains(strings.ToLower(text), "hate"):
		return sentiment.PolarityPartial(-0.9, 0.9), nil
	}
	return nil, nil
}

type fixture struct {
	runner  Runner
	repos   *repo.MemoryRepository
	metrics *metrics.Metrics
}

func newFixture(t *testing.T, catalog []model.Book) fixture {
	t.Helper()

	var tick atomic.Int64
	clock := func() time.Time {
		return time.Unix(1_700_000_000, 0).Add(time.Duration(tick.Add(1)) * time.Second)
	}

	m := metrics.NewMetrics(prometheus.NewRegistry())
	repos := repo.NewMemoryRepository()
	scorer := sentiment.NewScorer(
		[]sentiment.Pass{sentiment.NewSalesPass(), keywordPass{}},
		sentiment.WithHistory(repo.NewMemorySentimentHistory(50)),
		sentiment.WithMetrics(m),
		sentiment.WithClock(clock),
	)
	svc := stage.NewService(repo.NewMemoryContextStore(), stage.WithMetrics(m), stage.WithClock(clock))

	runner, err := BuildTurnGraph(context.Background(), Config{
		Transcripts: repos,
		Scorer:      scorer,
		Stage:       svc,
		Scores:      repos,
		Catalog:     catalog,
		Metrics:     m,
	})
	if err != nil {
		t.Fatalf("BuildTurnGraph: %v", err)
	}
	return fixture{runner: runner, repos: repos, metrics: m}
}

func turn(room string, role model.Role, msg string, ts float64) model.TurnInput {
	return model.TurnInput{RoomID: room, Role: role, Message: msg, Timestamp: ts}
}

func TestAgentAndBlankTurnsAreNotScored(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	ctx := context.Background()

	out, err := f.runner.Invoke(ctx, turn("room-1", model.RoleAssistant, "Welcome to the bookstore!", 1))
	if err != nil {
		t.Fatalf("Invoke agent turn: %v", err)
	}
	if !out.Recorded || out.Score != nil || out.Question != nil {
		t.Fatalf("agent turn got %+v", out)
	}

	out, err = f.runner.Invoke(ctx, turn("room-1", model.RoleUser, "   ", 2))
	if err != nil {
		t.Fatalf("Invoke blank turn: %v", err)
	}
	if out.Recorded || out.Score != nil {
		t.Fatalf("blank turn got %+v", out)
	}

	n, _ := f.repos.CountEntries(ctx, "room-1")
	if n != 1 {
		t.Fatalf("transcript entries got %d want 1", n)
	}
	scores, _ := f.repos.ListScores(ctx, "room-1")
	if len(scores) != 0 {
		t.Fatalf("scores got %d want 0", len(scores))
	}
}

func TestCustomerTurnScoresAndAsks(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	ctx := context.Background()

	out, err := f.runner.Invoke(ctx, turn("room-2", model.RoleUser, "Hi, I'm looking for a good book", 1))
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if !out.Recorded || out.Score == nil || out.Question == nil || out.Context == nil {
		t.Fatalf("customer turn got %+v", out)
	}
	if out.Context.Stage != model.StageDiscovery {
		t.Fatalf("stage got %v want discovery", out.Context.Stage)
	}
	if len(out.Context.QuestionsAsked) != 1 || out.Context.QuestionsAsked[0] != out.Question.Text {
		t.Fatalf("questions asked got %v", out.Context.QuestionsAsked)
	}
	if out.Objection != nil || len(out.Recommendations) != 0 {
		t.Fatalf("unexpected objection or recommendations: %+v", out)
	}

	scores, _ := f.repos.ListScores(ctx, "room-2")
	if len(scores) != 1 {
		t.Fatalf("persisted scores got %d want 1", len(scores))
	}
}

func TestObjectionTurnAttachesResponse(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	out, err := f.runner.Invoke(context.Background(), turn("room-3", model.RoleUser, "That is too expensive, I can't afford it", 1))
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if out.Context.Stage != model.StageObjectionHandling {
		t.Fatalf("stage got %v want objection_handling", out.Context.Stage)
	}
	if out.Objection == nil || out.Objection.Category != model.ObjectionPrice {
		t.Fatalf("objection got %+v", out.Objection)
	}
	if out.Question.ID != "OBJ_001" || !out.Question.ObjectionHandling {
		t.Fatalf("question got %+v", out.Question)
	}
}

func TestPresentationTurnRecommendsBooks(t *testing.T) {
	t.Parallel()

	f := newFixture(t, tools.SampleCatalog)
	out, err := f.runner.Invoke(context.Background(),
		turn("room-4", model.RoleUser, "I love a good mystery novel, which author do you recommend?", 1))
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if out.Context.Stage != model.StagePresentation {
		t.Fatalf("stage got %v want presentation", out.Context.Stage)
	}
	if len(out.Recommendations) != 2 || out.Recommendations[0].ID != "bk-003" || out.Recommendations[1].ID != "bk-002" {
		t.Fatalf("recommendations got %+v", out.Recommendations)
	}
	if out.Question == nil || out.Score == nil {
		t.Fatalf("turn result lost fields: %+v", out)
	}
}

func TestShiftsAreCountedOnce(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	ctx := context.Background()
	for i, msg := range []string{"I love this shop", "I hate waiting", "I hate it"} {
		out, err := f.runner.Invoke(ctx, turn("room-5", model.RoleUser, msg, float64(i)))
		if err != nil {
			t.Fatalf("Invoke %d: %v", i, err)
		}
		if i > 0 && len(out.Shifts) != 1 {
			t.Fatalf("turn %d shifts got %d want 1", i, len(out.Shifts))
		}
	}
	if got := testutil.ToFloat64(f.metrics.ShiftsTotal); got != 1 {
		t.Fatalf("shift metric got %v want 1", got)
	}
}

func TestInvokeRejectsBlankRoom(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	_, err := f.runner.Invoke(context.Background(), turn(" ", model.RoleUser, "hello", 1))
	if errx.StatusOf(err) != 400 {
		t.Fatalf("blank room got err %v", err)
	}
}

func TestBuildGraphValidatesConfig(t *testing.T) {
	t.Parallel()

	if _, err := BuildGraph(context.Background(), nil); err == nil {
		t.Fatalf("nil config accepted")
	}
	if _, err := BuildGraph(context.Background(), &Config{Transcripts: repo.NewMemoryRepository()}); err == nil {
		t.Fatalf("config without scorer accepted")
	}
}
