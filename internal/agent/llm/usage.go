package llm

import (
	"github.com/cloudwego/eino/schema"

	"github.com/Chative-core-poc-v1/bookseller/internal/agent/model"
	logx "github.com/Chative-core-poc-v1/bookseller/pkg/logger"
)

// logUsage computes and logs the cost of one Gemini call.
func logUsage(component, modelName string, out *schema.Message) {
	if out == nil || out.ResponseMeta == nil || out.ResponseMeta.Usage == nil {
		return
	}
	usage := out.ResponseMeta.Usage
	inC, outC, totalC := model.ComputeCost(usage, model.ResolvePricing(modelName))
	logx.Debug().
		Str("component", component).
		Str("model", modelName).
		Int("prompt_tokens", usage.PromptTokens).
		Int("completion_tokens", usage.CompletionTokens).
		Int("total_tokens", usage.TotalTokens).
		Float64("input_cost_usd", inC).
		Float64("output_cost_usd", outC).
		Float64("total_cost_usd", totalC).
		Msg("LLM usage")
}

// logTokenUsage is logUsage for providers reporting raw token counts.
func logTokenUsage(component, modelName string, promptTokens, completionTokens int64) {
	inC, outC, totalC := model.ComputeTokenCost(promptTokens, completionTokens, model.ResolvePricing(modelName))
	logx.Debug().
		Str("component", component).
		Str("model", modelName).
		Int64("prompt_tokens", promptTokens).
		Int64("completion_tokens", completionTokens).
		Float64("input_cost_usd", inC).
		Float64("output_cost_usd", outC).
		Float64("total_cost_usd", totalC).
		Msg("LLM usage")
}
