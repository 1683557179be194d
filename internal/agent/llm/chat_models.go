// Package llm adapts hosted language models to the optional sentiment passes
// and the question generator. Every adapter degrades to "absent" on failure.
package llm

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	"google.golang.org/genai"

	"github.com/Chative-core-poc-v1/bookseller/internal/agent/model"
	logx "github.com/Chative-core-poc-v1/bookseller/pkg/logger"
)

// ChatModelConfig holds the configuration for chat model creation
type ChatModelConfig struct {
	APIKey    string
	BaseURL   string
	Sentiment *model.SentimentModelConfig
	Question  *model.QuestionModelConfig
}

// ChatModels holds the Gemini models; a nil config leaves its model nil.
type ChatModels struct {
	Sentiment          *gemini.ChatModel
	Question           *gemini.ChatModel
	SentimentModelName string
	QuestionModelName  string
}

// NewChatModels creates the sentiment and question chat models over one client.
func NewChatModels(ctx context.Context, config ChatModelConfig) (*ChatModels, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if config.BaseURL != "" {
		clientCfg.HTTPOptions.BaseURL = config.BaseURL
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		logx.Error().Err(err).Msg("Error creating Gemini client")
		return nil, fmt.Errorf("error creating Gemini client: %w", err)
	}

	cms := &ChatModels{}
	if c := config.Sentiment; c != nil {
		cms.Sentiment, err = gemini.NewChatModel(ctx, &gemini.Config{
			Client:      client,
			Model:       c.Model,
			Temperature: &c.Temperature,
			MaxTokens:   &c.MaxTokens,
			ThinkingConfig: &genai.ThinkingConfig{
				IncludeThoughts: false,
				ThinkingBudget:  genai.Ptr(c.ThinkingBudget),
			},
		})
		if err != nil {
			logx.Error().Err(err).Msg("Error creating sentiment model")
			return nil, fmt.Errorf("error creating sentiment model: %w", err)
		}
		cms.SentimentModelName = c.Model
	}

	if c := config.Question; c != nil {
		cms.Question, err = gemini.NewChatModel(ctx, &gemini.Config{
			Client:      client,
			Model:       c.Model,
			Temperature: &c.Temperature,
			MaxTokens:   &c.MaxTokens,
			ThinkingConfig: &genai.ThinkingConfig{
				IncludeThoughts: false,
				ThinkingBudget:  genai.Ptr(c.ThinkingBudget),
			},
		})
		if err != nil {
			logx.Error().Err(err).Msg("Error creating question model")
			return nil, fmt.Errorf("error creating question model: %w", err)
		}
		cms.QuestionModelName = c.Model
	}

	logx.Debug().
		Str("sentiment_model", cms.SentimentModelName).
		Str("question_model", cms.QuestionModelName).
		Msg("Gemini chat models ready")
	return cms, nil
}
