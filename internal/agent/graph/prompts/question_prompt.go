package prompts

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	"github.com/Chative-core-poc-v1/bookseller/internal/agent/model"
)

//go:embed template/question_prompt.txt
var questionSystemPrompt string

// maxAskedInPrompt bounds how many earlier questions are listed.
const maxAskedInPrompt = 10

// RenderQuestionSystem renders the question generator prompt for the given
// context snapshot.
func RenderQuestionSystem(ctx context.Context, cfg model.PromptConfig, c model.ConversationContext) (string, error) {
	asked := c.QuestionsAsked
	if len(asked) > maxAskedInPrompt {
		asked = asked[len(asked)-maxAskedInPrompt:]
	}

	tpl := prompt.FromMessages(
		schema.GoTemplate,
		schema.SystemMessage(questionSystemPrompt),
	)
	vars := map[string]any{
		"AgentName":      cfg.AgentName,
		"StoreName":      cfg.StoreName,
		"Stage":          c.Stage.String(),
		"Sentiment":      c.CustomerSentiment.String(),
		"PurchaseIntent": c.PurchaseIntent,
		"TrustLevel":     c.TrustLevel,
		"ObjectionLevel": c.ObjectionLevel,
		"CurrentTopic":   c.CurrentTopic,
		"Topics":         strings.Join(distinct(c.TopicsDiscussed), ", "),
		"Asked":          asked,
	}
	msgs, err := tpl.Format(ctx, vars)
	if err != nil {
		return "", fmt.Errorf("question prompt render: %w", err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("question prompt render: empty result")
	}
	return msgs[0].Content, nil
}

func distinct(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
