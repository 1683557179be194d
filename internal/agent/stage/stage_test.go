package stage

import (
	"testing"
	"time"

	"github.com/Chative-core-poc-v1/bookseller/internal/agent/model"
)

var t0 = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func ctxWith(mut func(c *model.ConversationContext)) model.ConversationContext {
	c := model.NewConversationContext("room-1", t0)
	mut(&c)
	return c
}

func asked(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = "question"
	}
	return out
}

func TestNextStage(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		ctx  model.ConversationContext
		want model.Stage
	}{
		{"objection wins over everything", ctxWith(func(c *model.ConversationContext) {
			c.ObjectionLevel, c.PurchaseIntent, c.TrustLevel, c.QuestionsAsked = 0.8, 0.9, 0.9, asked(5)
		}), model.StageObjectionHandling},
		{"closing", ctxWith(func(c *model.ConversationContext) {
			c.ObjectionLevel, c.PurchaseIntent, c.TrustLevel, c.QuestionsAsked = 0.1, 0.9, 0.9, asked(5)
		}), model.StageClosing},
		{"closing needs more than three questions", ctxWith(func(c *model.ConversationContext) {
			c.PurchaseIntent, c.TrustLevel, c.QuestionsAsked = 0.9, 0.9, asked(3)
		}), model.StagePresentation},
		{"presentation after discovery topics", ctxWith(func(c *model.ConversationContext) {
			c.TopicsDiscussed = []string{"mystery", "price", "genre"}
		}), model.StagePresentation},
		{"duplicate topics do not count", ctxWith(func(c *model.ConversationContext) {
			c.TopicsDiscussed = []string{"genre", "genre", "genre", "price"}
		}), model.StageDiscovery},
		{"three topics without a discovery signal", ctxWith(func(c *model.ConversationContext) {
			c.TopicsDiscussed = []string{"mystery", "price", "romance"}
		}), model.StageDiscovery},
		{"fresh context is discovery", model.NewConversationContext("room-1", t0), model.StageDiscovery},
		{"fallback", ctxWith(func(c *model.ConversationContext) { c.QuestionsAsked = asked(3) }), model.StagePresentation},
	}
	for _, tc := range cases {
		if got := NextStage(tc.ctx); got != tc.want {
			t.Fatalf("%s: NextStage = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestNextStageIsStateless(t *testing.T) {
	t.Parallel()

	c := ctxWith(func(c *model.ConversationContext) { c.Stage = model.StageClosing })
	if got := NextStage(c); got != model.StageDiscovery {
		t.Fatalf("NextStage = %v, want discovery regardless of stored stage", got)
	}
}

func TestUpdateContext(t *testing.T) {
	t.Parallel()

	c := model.NewConversationContext("room-1", t0)
	recent := []model.TranscriptEntry{
		{Role: model.RoleAssistant, Message: "What genre do you enjoy?"},
		{Role: model.RoleUser, Message: "I love a good mystery novel"},
		{Role: model.RoleAssistant, Message: "Any favourite author?"},
		{Role: model.RoleUser, Message: "How much does it cost?"},
	}
	score := &model.SentimentScore{Label: model.Positive, Engagement: 0.3, PurchaseIntent: 0.6, ObjectionLevel: 0.1, TrustLevel: 0.4}

	UpdateContext(&c, recent, score, t0.Add(90*time.Second))

	if c.CustomerSentiment != model.Positive || c.PurchaseIntent != 0.6 || c.TrustLevel != 0.4 || c.EngagementLevel != 0.3 {
		t.Fatalf("sentiment fields not copied: %+v", c)
	}
	wantTopics := []string{"genre", "fiction", "mystery", "romance", "author", "price"}
	if len(c.TopicsDiscussed) != len(wantTopics) {
		t.Fatalf("topics = %v, want %v", c.TopicsDiscussed, wantTopics)
	}
	for i, w := range wantTopics {
		if c.TopicsDiscussed[i] != w {
			t.Fatalf("topics = %v, want %v", c.TopicsDiscussed, wantTopics)
		}
	}
	if len(c.CustomerResponses) != 2 || c.CustomerResponses[1] != "How much does it cost?" {
		t.Fatalf("customer responses = %v", c.CustomerResponses)
	}
	if c.CurrentTopic != "price" {
		t.Fatalf("current topic = %q, want price", c.CurrentTopic)
	}
	if c.Stage != model.StagePresentation {
		t.Fatalf("stage = %v, want presentation", c.Stage)
	}
	if c.Duration != 90*time.Second {
		t.Fatalf("duration = %v", c.Duration)
	}

	UpdateContext(&c, recent, score, t0.Add(time.Minute*2))
	if len(c.TopicsDiscussed) != 2*len(wantTopics) {
		t.Fatalf("topics should be append-only with duplicates, got %d", len(c.TopicsDiscussed))
	}
}

func TestCurrentTopic(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"is it expensive? who is the author": "price",
		"I prefer non-fiction":               "genre",
		"who is the writer":                  "author",
		"I'd like to order it":               "purchase",
		"hello there":                        "general",
	}
	for msg, want := range cases {
		if got := CurrentTopic(msg); got != want {
			t.Fatalf("CurrentTopic(%q) = %q, want %q", msg, got, want)
		}
	}
}

func TestSelectQuestion(t *testing.T) {
	t.Parallel()

	c := model.NewConversationContext("room-1", t0)
	c.Stage = model.StageDiscovery
	if q := SelectQuestion(c); q.ID != "DISC_001" || q.Stage != model.StageDiscovery {
		t.Fatalf("first question = %s (%v), want DISC_001", q.ID, q.Stage)
	}

	for _, q := range Templates(model.StageDiscovery)[:3] {
		c.QuestionsAsked = append(c.QuestionsAsked, q.Text)
	}
	if q := SelectQuestion(c); q.ID != "DISC_004" {
		t.Fatalf("question = %s, want DISC_004", q.ID)
	}

	c.QuestionsAsked = append(c.QuestionsAsked, Templates(model.StageDiscovery)[3].Text)
	if q := SelectQuestion(c); q.ID != "GENERIC_001" || q.Text != GenericQuestion {
		t.Fatalf("question = %s, want generic fallback", q.ID)
	}
}

func TestSelectQuestionSkipsObjectionTemplatesWhenLow(t *testing.T) {
	t.Parallel()

	c := model.NewConversationContext("room-1", t0)
	c.Stage = model.StageObjectionHandling
	c.ObjectionLevel = 0.2
	if q := SelectQuestion(c); q.ID != "GENERIC_001" {
		t.Fatalf("question = %s, want generic fallback", q.ID)
	}
	c.ObjectionLevel = 0.3
	if q := SelectQuestion(c); q.ID != "OBJ_001" || !q.ObjectionHandling {
		t.Fatalf("question = %s, want OBJ_001", q.ID)
	}
}

func TestClassifyObjection(t *testing.T) {
	t.Parallel()

	cases := map[string]model.ObjectionCategory{
		"That's too expensive for me":           model.ObjectionPrice,
		"I don't need another book":             model.ObjectionNeed,
		"I'm not sure about this author":        model.ObjectionTrust,
		"I have no time to read":                model.ObjectionTime,
		"I need to ask my wife":                 model.ObjectionAuthority,
		"Let me think about it":                 model.ObjectionAuthority,
		"The weather is nice":                   model.ObjectionPrice,
		"Not now, and it costs too much anyway": model.ObjectionPrice,
	}
	for text, want := range cases {
		if got := ClassifyObjection(text); got != want {
			t.Fatalf("ClassifyObjection(%q) = %v, want %v", text, got, want)
		}
	}
}

func TestRespondUsesFirstEntry(t *testing.T) {
	t.Parallel()

	c := model.NewConversationContext("room-1", t0)
	for _, cat := range []model.ObjectionCategory{
		model.ObjectionPrice, model.ObjectionNeed, model.ObjectionTrust, model.ObjectionTime, model.ObjectionAuthority,
	} {
		r := Respond(cat, c)
		if r.Category != cat || r.Response == "" || len(r.FollowUps) == 0 || len(r.ConfidenceBuilders) == 0 {
			t.Fatalf("Respond(%v) = %+v", cat, r)
		}
	}
	if r := Respond(model.ObjectionPrice, c); r.Technique != "Value justification" {
		t.Fatalf("price technique = %q, want the first entry", r.Technique)
	}
}
