package observers

import (
	"context"
	"strings"

	einocb "github.com/cloudwego/eino/callbacks"
	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	callbackHelper "github.com/cloudwego/eino/utils/callbacks"

	"github.com/Chative-core-poc-v1/bookseller/internal/agent/model"
	logx "github.com/Chative-core-poc-v1/bookseller/pkg/logger"
)

const maxLoggedContent = 200

func newModelHandler() *callbackHelper.ModelCallbackHandler {
	return &callbackHelper.ModelCallbackHandler{
		OnStart: func(ctx context.Context, info *einocb.RunInfo, input *einomodel.CallbackInput) context.Context {
			ev := logx.Debug().Str("component", info.Name).Str("type", info.Type)
			if input != nil {
				ev = ev.Int("messages", len(input.Messages)).Str("user", snippet(lastUserContent(input.Messages)))
			}
			ev.Msg("model start")
			return ctx
		},
		OnEnd: func(ctx context.Context, info *einocb.RunInfo, output *einomodel.CallbackOutput) context.Context {
			ev := logx.Debug().Str("component", info.Name)
			if output == nil {
				ev.Msg("model end")
				return ctx
			}
			if output.Message != nil {
				ev = ev.Str("assistant", snippet(output.Message.Content))
			}
			if output.TokenUsage != nil {
				modelName := ""
				if output.Config != nil {
					modelName = output.Config.Model
				}
				_, _, total := model.ComputeTokenCost(
					int64(output.TokenUsage.PromptTokens),
					int64(output.TokenUsage.CompletionTokens),
					model.ResolvePricing(modelName),
				)
				ev = ev.Str("model", modelName).
					Int("prompt_tokens", output.TokenUsage.PromptTokens).
					Int("completion_tokens", output.TokenUsage.CompletionTokens).
					Int("total_tokens", output.TokenUsage.TotalTokens).
					Float64("total_cost_usd", total)
			}
			ev.Msg("model end")
			return ctx
		},
		OnError: func(ctx context.Context, info *einocb.RunInfo, err error) context.Context {
			logx.Warn().Err(err).Str("component", info.Name).Msg("model error")
			return ctx
		},
	}
}

func lastUserContent(msgs []*schema.Message) string {
	for i := len(msgs) - 1; i >= 0; i-- {
		m := msgs[i]
		if m == nil {
			continue
		}
		if m.Role == schema.User {
			return strings.TrimSpace(m.Content)
		}
	}
	return ""
}

func snippet(s string) string {
	s = strings.TrimSpace(s)
	if len(s) <= maxLoggedContent {
		return s
	}
	return s[:maxLoggedContent] + "..."
}
