package llm

import (
	"context"
	"fmt"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/go-playground/validator/v10"
	"golang.org/x/time/rate"

	"github.com/Chative-core-poc-v1/bookseller/internal/agent/graph/parsers"
	"github.com/Chative-core-poc-v1/bookseller/internal/agent/graph/prompts"
	"github.com/Chative-core-poc-v1/bookseller/internal/agent/model"
	"github.com/Chative-core-poc-v1/bookseller/internal/agent/sentiment"
	errx "github.com/Chative-core-poc-v1/bookseller/internal/core/error"
)

// PassConfig is shared by the chat-model backed passes.
type PassConfig struct {
	ModelName string
	Weight    float64
	Prompt    model.PromptConfig
	Limiter   *rate.Limiter
}

type judgementPass struct {
	name     string
	chat     einomodel.BaseChatModel
	cfg      PassConfig
	validate *validator.Validate
	render   func(context.Context, model.PromptConfig) (string, error)
}

func (p *judgementPass) judge(ctx context.Context, text string) (*model.SentimentJudgement, error) {
	if err := wait(ctx, p.cfg.Limiter); err != nil {
		return nil, err
	}
	system, err := p.render(ctx, p.cfg.Prompt)
	if err != nil {
		return nil, err
	}
	out, err := p.chat.Generate(ctx, []*schema.Message{
		schema.SystemMessage(system),
		schema.UserMessage(text),
	})
	if err != nil {
		return nil, errx.WrapLLM(err)
	}
	if out == nil {
		return nil, errx.WrapLLM(fmt.Errorf("%s model returned no message", p.name))
	}
	logUsage(p.name, p.cfg.ModelName, out)

	j, err := parsers.ParseJudgement(out.Content)
	if err != nil {
		return nil, err
	}
	if err := p.validate.Struct(j); err != nil {
		return nil, fmt.Errorf("%s judgement rejected: %w", p.name, err)
	}
	return j, nil
}

// GeminiSentimentPass asks a chat model for label, polarity, confidence and
// key phrases. It is the heaviest-weighted pass when configured.
type GeminiSentimentPass struct {
	judgementPass
}

func NewGeminiSentimentPass(chat einomodel.BaseChatModel, cfg PassConfig) *GeminiSentimentPass {
	return &GeminiSentimentPass{judgementPass{
		name:     "llm",
		chat:     chat,
		cfg:      cfg,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		render:   prompts.RenderSentimentSystem,
	}}
}

func (p *GeminiSentimentPass) Name() string    { return p.name }
func (p *GeminiSentimentPass) Weight() float64 { return p.cfg.Weight }

func (p *GeminiSentimentPass) Analyze(ctx context.Context, text string) (*sentiment.Partial, error) {
	j, err := p.judge(ctx, text)
	if err != nil {
		return nil, err
	}
	if !j.HasSentiment {
		return nil, nil
	}
	partial := sentiment.PolarityPartial(j.Polarity, j.Confidence)
	partial.Subjectivity = j.Subjectivity
	partial.Cues = j.KeyPhrases
	return partial, nil
}

// GeminiEmotionPass fills the emotion mapping and never votes on polarity.
type GeminiEmotionPass struct {
	judgementPass
}

func NewGeminiEmotionPass(chat einomodel.BaseChatModel, cfg PassConfig) *GeminiEmotionPass {
	cfg.Weight = 0
	return &GeminiEmotionPass{judgementPass{
		name:     "emotion",
		chat:     chat,
		cfg:      cfg,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		render:   prompts.RenderEmotionSystem,
	}}
}

func (p *GeminiEmotionPass) Name() string    { return p.name }
func (p *GeminiEmotionPass) Weight() float64 { return 0 }

func (p *GeminiEmotionPass) Analyze(ctx context.Context, text string) (*sentiment.Partial, error) {
	j, err := p.judge(ctx, text)
	if err != nil {
		return nil, err
	}
	if len(j.Emotions) == 0 {
		return nil, nil
	}
	return &sentiment.Partial{Emotions: j.Emotions}, nil
}

var (
	_ sentiment.Pass = (*GeminiSentimentPass)(nil)
	_ sentiment.Pass = (*GeminiEmotionPass)(nil)
)
