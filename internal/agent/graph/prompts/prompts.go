package prompts

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	"github.com/Chative-core-poc-v1/bookseller/internal/agent/graph/parsers"
	"github.com/Chative-core-poc-v1/bookseller/internal/agent/model"
)

//go:embed template/sentiment_prompt.txt
var sentimentSystemPrompt string

//go:embed template/emotion_prompt.txt
var emotionSystemPrompt string

//go:embed template/classifier_prompt.txt
var classifierInstructions string

func delimiters(cfg model.PromptConfig) *strings.Replacer {
	return strings.NewReplacer(
		"{TD}", parsers.TupleDelimiter,
		"{RD}", parsers.RecordDelimiter,
		"{CD}", parsers.CompletionDelimiter,
		"{store_name}", cfg.StoreName,
	)
}

// RenderSentimentSystem renders the sentiment pass system prompt via the Eino
// prompt component so prompt callbacks fire.
func RenderSentimentSystem(ctx context.Context, cfg model.PromptConfig) (string, error) {
	return renderPlaceholder(ctx, "sentiment", delimiters(cfg).Replace(sentimentSystemPrompt))
}

// RenderEmotionSystem renders the emotion pass system prompt.
func RenderEmotionSystem(ctx context.Context, cfg model.PromptConfig) (string, error) {
	return renderPlaceholder(ctx, "emotion", delimiters(cfg).Replace(emotionSystemPrompt))
}

// ClassifierInstructions are the instructions of the structured-output classifier.
func ClassifierInstructions() string {
	return strings.TrimSpace(classifierInstructions)
}

// renderPlaceholder only substitutes known tokens, so JSON braces in the
// template survive; the messages placeholder still emits prompt callbacks.
func renderPlaceholder(ctx context.Context, name, content string) (string, error) {
	tpl := prompt.FromMessages(
		schema.FString,
		schema.MessagesPlaceholder("system_messages", false),
	)
	msgs, err := tpl.Format(ctx, map[string]any{
		"system_messages": []*schema.Message{schema.SystemMessage(content)},
	})
	if err != nil {
		return "", fmt.Errorf("%s prompt callbacks: %w", name, err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("%s prompt callbacks: empty result", name)
	}
	return msgs[0].Content, nil
}
