package model

import (
	"math"
	"testing"

	"github.com/cloudwego/eino/schema"
)

func TestComputeCost(t *testing.T) {
	t.Parallel()

	in, out, total := ComputeCost(&schema.TokenUsage{PromptTokens: 1_000_000, CompletionTokens: 500_000}, ResolvePricing("gemini-2.5-flash"))
	if math.Abs(in-0.30) > 1e-9 || math.Abs(out-1.25) > 1e-9 || math.Abs(total-1.55) > 1e-9 {
		t.Fatalf("cost got (%v, %v, %v) want (0.30, 1.25, 1.55)", in, out, total)
	}

	if _, _, total := ComputeCost(nil, ResolvePricing("gemini-2.5-flash")); total != 0 {
		t.Fatalf("nil usage should cost nothing, got %v", total)
	}
	if p := ResolvePricing("unknown-model"); p != (Pricing{}) {
		t.Fatalf("unknown model pricing got %+v want zero", p)
	}
}
