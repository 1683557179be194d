package main

import (
	"context"

	"github.com/Chative-core-poc-v1/bookseller/internal/agent/llm"
	"github.com/Chative-core-poc-v1/bookseller/internal/agent/sentiment"
	"github.com/Chative-core-poc-v1/bookseller/internal/agent/stage"
	logx "github.com/Chative-core-poc-v1/bookseller/pkg/logger"
)

// buildModels assembles the sentiment passes and the optional question
// generator. The lexicon passes always run; model-backed passes join only
// when their API key is configured.
func buildModels(ctx context.Context, cfg AppConfig) ([]sentiment.Pass, stage.Generator, error) {
	passes := []sentiment.Pass{
		sentiment.NewSalesPass(),
		sentiment.NewValencePass(cfg.Scorer.ValenceWeight),
		sentiment.NewPatternPass(cfg.Scorer.PatternWeight),
	}
	limiter := llm.NewLimiter(cfg.RateLimit)

	if cfg.Classifier.APIKey != "" {
		passes = append(passes, llm.NewOpenAIClassifierPass(cfg.Classifier, cfg.Scorer.ClassifierWeight, limiter))
	}

	if cfg.APIKey == "" {
		logx.Info().Int("passes", len(passes)).Msg("GEMINI_API_KEY not set; running without the language-model pass and question generator")
		return passes, nil, nil
	}

	cms, err := llm.NewChatModels(ctx, llm.ChatModelConfig{
		APIKey:    cfg.APIKey,
		BaseURL:   cfg.BaseURL,
		Sentiment: &cfg.Sentiment,
		Question:  &cfg.Question,
	})
	if err != nil {
		return nil, nil, err
	}

	passCfg := llm.PassConfig{
		ModelName: cms.SentimentModelName,
		Weight:    cfg.Scorer.LLMWeight,
		Prompt:    cfg.Prompt,
		Limiter:   limiter,
	}
	passes = append(passes, llm.NewGeminiSentimentPass(cms.Sentiment, passCfg))
	if cfg.Sentiment.Emotions {
		passes = append(passes, llm.NewGeminiEmotionPass(cms.Sentiment, passCfg))
	}

	generator := llm.NewQuestionGenerator(cms.Question, cms.QuestionModelName, cfg.Prompt, limiter)
	logx.Info().Int("passes", len(passes)).Msg("sentiment passes ready")
	return passes, generator, nil
}
