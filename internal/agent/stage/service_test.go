package stage

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/Chative-core-poc-v1/bookseller/internal/agent/model"
	"github.com/Chative-core-poc-v1/bookseller/pkg/metrics"
)

type mapStore struct {
	mu   sync.Mutex
	data map[string]model.ConversationContext
}

func newMapStore() *mapStore { return &mapStore{data: map[string]model.ConversationContext{}} }

func (m *mapStore) Get(_ context.Context, roomID string) (model.ConversationContext, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.data[roomID]
	return c, ok, nil
}

func (m *mapStore) Put(_ context.Context, roomID string, c model.ConversationContext) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[roomID] = c
	return nil
}

func (m *mapStore) Evict(_ context.Context, roomID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, roomID)
	return nil
}

type generatorFunc func(ctx context.Context, c model.ConversationContext, recent []model.TranscriptEntry) (*model.Question, error)

func (f generatorFunc) Generate(ctx context.Context, c model.ConversationContext, recent []model.TranscriptEntry) (*model.Question, error) {
	return f(ctx, c, recent)
}

func TestServiceTemplateFlow(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newMapStore()
	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)
	svc := NewService(store, WithMetrics(m))

	c, err := svc.Observe(ctx, "room-1", []model.TranscriptEntry{{Role: model.RoleUser, Message: "hi"}}, &model.SentimentScore{PurchaseIntent: 0.5, TrustLevel: 0.5})
	if err != nil {
		t.Fatalf("Observe: %v", err)
	}
	if c.Stage != model.StageDiscovery {
		t.Fatalf("stage = %v, want discovery", c.Stage)
	}
	if v := testutil.ToFloat64(m.StageTransitions.WithLabelValues("opening", "discovery")); v != 1 {
		t.Fatalf("stage transitions = %v, want 1", v)
	}

	q1, c, err := svc.NextQuestion(ctx, "room-1", nil)
	if err != nil {
		t.Fatalf("NextQuestion: %v", err)
	}
	q2, c, err := svc.NextQuestion(ctx, "room-1", nil)
	if err != nil {
		t.Fatalf("NextQuestion: %v", err)
	}
	if q1.ID != "DISC_001" || q2.ID != "DISC_002" {
		t.Fatalf("questions = %s, %s, want DISC_001, DISC_002", q1.ID, q2.ID)
	}
	if len(c.QuestionsAsked) != 2 {
		t.Fatalf("questions asked = %v", c.QuestionsAsked)
	}
	if v := testutil.ToFloat64(m.QuestionsTotal.WithLabelValues("discovery", "template")); v != 2 {
		t.Fatalf("template questions = %v, want 2", v)
	}
}

func TestServicePrefersValidGeneratedQuestion(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	var seen int
	gen := generatorFunc(func(_ context.Context, c model.ConversationContext, recent []model.TranscriptEntry) (*model.Question, error) {
		seen = len(recent)
		return &model.Question{ID: "AI_1", Text: "Would a cozy mystery suit your evenings?", Type: model.QuestionClosedEnded}, nil
	})
	svc := NewService(newMapStore(), WithGenerator(gen), WithQuestionWindow(2))

	recent := []model.TranscriptEntry{{Message: "a"}, {Message: "b"}, {Message: "c"}}
	q, _, err := svc.NextQuestion(ctx, "room-1", recent)
	if err != nil {
		t.Fatalf("NextQuestion: %v", err)
	}
	if q.ID != "AI_1" || q.Stage != model.StageOpening {
		t.Fatalf("question = %+v, want generated question in the opening stage", q)
	}
	if seen != 2 {
		t.Fatalf("generator saw %d turns, want 2", seen)
	}
}

func TestServiceFallsBackOnGeneratorFailure(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cases := map[string]generatorFunc{
		"error": func(context.Context, model.ConversationContext, []model.TranscriptEntry) (*model.Question, error) {
			return nil, errors.New("quota exceeded")
		},
		"invalid": func(context.Context, model.ConversationContext, []model.TranscriptEntry) (*model.Question, error) {
			return &model.Question{ID: "AI_2", Text: "ok?"}, nil
		},
		"absent": func(context.Context, model.ConversationContext, []model.TranscriptEntry) (*model.Question, error) {
			return nil, nil
		},
	}
	for name, gen := range cases {
		svc := NewService(newMapStore(), WithGenerator(gen))
		q, _, err := svc.NextQuestion(ctx, "room-1", nil)
		if err != nil {
			t.Fatalf("%s: NextQuestion: %v", name, err)
		}
		if q.ID != "OPEN_001" {
			t.Fatalf("%s: question = %s, want OPEN_001", name, q.ID)
		}
	}
}

func TestServiceObjectionFollowUpAndReset(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newMapStore()
	svc := NewService(store)

	resp, err := svc.HandleObjection(ctx, "room-1", "I have no time right now")
	if err != nil {
		t.Fatalf("HandleObjection: %v", err)
	}
	if resp.Category != model.ObjectionTime {
		t.Fatalf("category = %v, want time", resp.Category)
	}
	c, _ := svc.Context(ctx, "room-1")
	if c.ObjectionLevel != objectionRaise {
		t.Fatalf("objection level = %v, want %v", c.ObjectionLevel, objectionRaise)
	}
	if NextStage(c) != model.StageObjectionHandling {
		t.Fatalf("stage after objection = %v", NextStage(c))
	}

	if err := svc.MarkFollowUp(ctx, "room-1"); err != nil {
		t.Fatalf("MarkFollowUp: %v", err)
	}
	if c, _ := svc.Context(ctx, "room-1"); c.Stage != model.StageFollowUp {
		t.Fatalf("stage = %v, want follow_up", c.Stage)
	}

	if err := svc.Reset(ctx, "room-1"); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if _, ok, _ := store.Get(ctx, "room-1"); ok {
		t.Fatal("context still stored after Reset")
	}
}
