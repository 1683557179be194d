package stage

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Chative-core-poc-v1/bookseller/internal/agent/model"
	logx "github.com/Chative-core-poc-v1/bookseller/pkg/logger"
	"github.com/Chative-core-poc-v1/bookseller/pkg/metrics"
)

const (
	// DefaultQuestionWindow is how many recent turns a generator sees.
	DefaultQuestionWindow = 6
	// objectionRaise is the level HandleObjection lifts the context to, enough
	// to put the next classification into objection handling. The raise is a
	// service extension: ClassifyObjection and Respond never touch the context.
	objectionRaise = 0.7
)

// Generator produces a fresh question from the context and the recent turns.
// Any error, or an invalid question, falls back to the template pools.
type Generator interface {
	Generate(ctx context.Context, c model.ConversationContext, recent []model.TranscriptEntry) (*model.Question, error)
}

// Service applies the stage logic to contexts held in a ContextStore. Callers
// must not run two operations for the same room concurrently.
type Service struct {
	store          model.ContextStore
	generator      Generator
	validate       *validator.Validate
	metrics        *metrics.Metrics
	questionWindow int
	now            func() time.Time
}

type Option func(*Service)

func WithGenerator(g Generator) Option {
	return func(s *Service) { s.generator = g }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithQuestionWindow(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.questionWindow = n
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(store model.ContextStore, opts ...Option) *Service {
	s := &Service{
		store:          store,
		validate:       validator.New(validator.WithRequiredStructEnabled()),
		questionWindow: DefaultQuestionWindow,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Context returns the stored context, or fresh defaults for an unknown room.
func (s *Service) Context(ctx context.Context, roomID string) (model.ConversationContext, error) {
	c, ok, err := s.store.Get(ctx, roomID)
	if err != nil {
		return model.ConversationContext{}, err
	}
	if !ok {
		return model.NewConversationContext(roomID, s.now()), nil
	}
	return c, nil
}

// Observe folds a scored customer turn into the room's context and stores it.
func (s *Service) Observe(ctx context.Context, roomID string, recent []model.TranscriptEntry, score *model.SentimentScore) (model.ConversationContext, error) {
	c, err := s.Context(ctx, roomID)
	if err != nil {
		return c, err
	}
	previous := c.Stage
	UpdateContext(&c, recent, score, s.now())
	if previous != c.Stage {
		logx.Debug().Str("room_id", roomID).Str("from", previous.String()).Str("stage", c.Stage.String()).Msg("stage changed")
		s.metrics.RecordStage(previous.String(), c.Stage.String())
	}
	return c, s.store.Put(ctx, roomID, c)
}

// NextQuestion picks the next question for the room's current stage and records
// it as asked. A configured generator is tried first.
func (s *Service) NextQuestion(ctx context.Context, roomID string, recent []model.TranscriptEntry) (model.Question, model.ConversationContext, error) {
	c, err := s.Context(ctx, roomID)
	if err != nil {
		return model.Question{}, c, err
	}

	q, source := s.generated(ctx, c, recent)
	if q == nil {
		selected := SelectQuestion(c)
		q, source = &selected, "template"
		if selected.ID == "GENERIC_001" {
			source = "fallback"
		}
	}
	s.metrics.RecordQuestion(c.Stage.String(), source)

	c.QuestionsAsked = append(c.QuestionsAsked, q.Text)
	if err := s.store.Put(ctx, roomID, c); err != nil {
		return *q, c, err
	}
	return *q, c, nil
}

func (s *Service) generated(ctx context.Context, c model.ConversationContext, recent []model.TranscriptEntry) (*model.Question, string) {
	if s.generator == nil {
		return nil, ""
	}
	if len(recent) > s.questionWindow {
		recent = recent[len(recent)-s.questionWindow:]
	}
	q, err := s.generator.Generate(ctx, c, recent)
	if err != nil {
		logx.Warn().Err(err).Str("room_id", c.RoomID).Msg("question generator failed, using templates")
		return nil, ""
	}
	if q == nil {
		return nil, ""
	}
	q.Stage = c.Stage
	if err := s.validate.Struct(q); err != nil {
		logx.Warn().Err(err).Str("room_id", c.RoomID).Msg("generated question rejected")
		return nil, ""
	}
	return q, "generated"
}

// HandleObjection classifies text, returns the canned response and raises the
// room's objection level.
func (s *Service) HandleObjection(ctx context.Context, roomID, text string) (model.ObjectionResponse, error) {
	c, err := s.Context(ctx, roomID)
	if err != nil {
		return model.ObjectionResponse{}, err
	}
	category := ClassifyObjection(text)
	resp := Respond(category, c)

	if c.ObjectionLevel < objectionRaise {
		c.ObjectionLevel = objectionRaise
	}
	return resp, s.store.Put(ctx, roomID, c)
}

// MarkFollowUp moves the room to follow_up. Only post-call triggers use it;
// the live classification never produces that stage.
func (s *Service) MarkFollowUp(ctx context.Context, roomID string) error {
	c, err := s.Context(ctx, roomID)
	if err != nil {
		return err
	}
	s.metrics.RecordStage(c.Stage.String(), model.StageFollowUp.String())
	c.Stage = model.StageFollowUp
	return s.store.Put(ctx, roomID, c)
}

// Reset drops the room's context.
func (s *Service) Reset(ctx context.Context, roomID string) error {
	return s.store.Evict(ctx, roomID)
}
