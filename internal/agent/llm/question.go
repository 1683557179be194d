package llm

import (
	"context"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/Chative-core-poc-v1/bookseller/internal/agent/graph/conversations"
	"github.com/Chative-core-poc-v1/bookseller/internal/agent/graph/parsers"
	"github.com/Chative-core-poc-v1/bookseller/internal/agent/graph/prompts"
	"github.com/Chative-core-poc-v1/bookseller/internal/agent/model"
	"github.com/Chative-core-poc-v1/bookseller/internal/agent/stage"
	errx "github.com/Chative-core-poc-v1/bookseller/internal/core/error"
)

// QuestionGenerator asks a chat model for the next question. The stage
// service validates the result again and falls back to templates on error.
type QuestionGenerator struct {
	chat      einomodel.BaseChatModel
	modelName string
	prompt    model.PromptConfig
	limiter   *rate.Limiter
	validate  *validator.Validate
}

func NewQuestionGenerator(chat einomodel.BaseChatModel, modelName string, prompt model.PromptConfig, limiter *rate.Limiter) *QuestionGenerator {
	return &QuestionGenerator{
		chat:      chat,
		modelName: modelName,
		prompt:    prompt,
		limiter:   limiter,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (g *QuestionGenerator) Generate(ctx context.Context, c model.ConversationContext, recent []model.TranscriptEntry) (*model.Question, error) {
	if err := wait(ctx, g.limiter); err != nil {
		return nil, err
	}
	system, err := prompts.RenderQuestionSystem(ctx, g.prompt, c)
	if err != nil {
		return nil, err
	}
	out, err := g.chat.Generate(ctx, []*schema.Message{
		schema.SystemMessage(system),
		schema.UserMessage(conversations.BuildTurnContext(recent)),
	})
	if err != nil {
		return nil, errx.WrapLLM(err)
	}
	if out == nil {
		return nil, errx.WrapLLM(fmt.Errorf("question model returned no message"))
	}
	logUsage("question", g.modelName, out)

	suggestion, err := parsers.ParseQuestion(out.Content)
	if err != nil {
		return nil, err
	}
	if err := g.validate.Struct(suggestion); err != nil {
		return nil, fmt.Errorf("question suggestion rejected: %w", err)
	}
	qType, err := model.ParseQuestionType(suggestion.Type)
	if err != nil {
		return nil, err
	}
	for _, asked := range c.QuestionsAsked {
		if strings.EqualFold(asked, suggestion.Text) {
			return nil, fmt.Errorf("question already asked: %q", suggestion.Text)
		}
	}

	return &model.Question{
		ID:                "GEN_" + strings.ToUpper(uuid.NewString()[:8]),
		Text:              suggestion.Text,
		Type:              qType,
		Stage:             c.Stage,
		Priority:          1,
		ContextHints:      suggestion.ContextHints,
		ExpectedResponse:  suggestion.ExpectedResponse,
		FollowUps:         suggestion.FollowUps,
		ObjectionHandling: qType == model.QuestionObjectionHandling,
	}, nil
}

var _ stage.Generator = (*QuestionGenerator)(nil)
