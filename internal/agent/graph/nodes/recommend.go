package nodes

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/Chative-core-poc-v1/bookseller/internal/agent/graph/tools"
	"github.com/Chative-core-poc-v1/bookseller/internal/agent/lexicon"
	"github.com/Chative-core-poc-v1/bookseller/internal/agent/model"
	logx "github.com/Chative-core-poc-v1/bookseller/pkg/logger"
)

// MaxRecommendations caps the books attached to one turn.
const MaxRecommendations = 3

// genreAliases maps spoken genres onto catalog genres.
var genreAliases = map[string]string{
	"science fiction": "sci-fi",
	"crime":           "mystery",
}

// NewRecommendCondition sends presentation-stage turns to the catalog search.
func NewRecommendCondition() func(context.Context, *model.TurnResult) (string, error) {
	return func(ctx context.Context, in *model.TurnResult) (string, error) {
		if in != nil && in.Context != nil && in.Context.Stage == model.StagePresentation {
			logx.Debug().Str("room_id", in.RoomID).Msg("routing to book recommendations")
			return NodePlanRecommendations, nil
		}
		return compose.END, nil
	}
}

// NewPlanRecommendationsNode turns the customer's stated genre into a
// search_books tool call.
func NewPlanRecommendationsNode() *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, in *model.TurnResult) (*schema.Message, error) {
		var recent []model.TranscriptEntry
		if err := compose.ProcessState(ctx, func(_ context.Context, s *model.TurnState) error {
			recent = s.Recent
			return nil
		}); err != nil {
			return nil, err
		}

		args, err := json.Marshal(tools.SearchBooksInput{
			Genre:      GenreOf(recent),
			MaxResults: MaxRecommendations,
		})
		if err != nil {
			return nil, fmt.Errorf("marshal search arguments: %w", err)
		}
		return &schema.Message{
			Role: schema.Assistant,
			ToolCalls: []schema.ToolCall{{
				ID:   "call_1",
				Type: "function",
				Function: schema.FunctionCall{
					Name:      tools.ToolSearchBooks,
					Arguments: string(args),
				},
			}},
		}, nil
	})
}

// GenreOf returns the genre most recently named by the customer, or "" when
// none was named. The longest match wins, so "science fiction" beats "fiction".
func GenreOf(recent []model.TranscriptEntry) string {
	for i := len(recent) - 1; i >= 0; i-- {
		if recent[i].Role != model.RoleUser {
			continue
		}
		best := ""
		for _, g := range lexicon.MatchedPhrases(lexicon.Normalize(recent[i].Message), lexicon.Genres) {
			if len(g) > len(best) {
				best = g
			}
		}
		if best == "" {
			continue
		}
		if alias, ok := genreAliases[best]; ok {
			return alias
		}
		return best
	}
	return ""
}

// NewAttachRecommendationsNode decodes the tool results onto the turn result.
// Undecodable results are logged and skipped.
func NewAttachRecommendationsNode() *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, msgs []*schema.Message) (*model.TurnResult, error) {
		var result *model.TurnResult
		if err := compose.ProcessState(ctx, func(_ context.Context, s *model.TurnState) error {
			result = s.Result
			return nil
		}); err != nil {
			return nil, err
		}
		if result == nil {
			return nil, fmt.Errorf("missing turn result in state")
		}

		for _, m := range msgs {
			if m == nil || strings.TrimSpace(m.Content) == "" {
				continue
			}
			var out tools.SearchBooksOutput
			if err := json.Unmarshal([]byte(m.Content), &out); err != nil {
				logx.Warn().Err(err).Str("room_id", result.RoomID).Str("tool_call_id", m.ToolCallID).Msg("undecodable tool result")
				continue
			}
			for _, b := range out.Books {
				if len(result.Recommendations) >= MaxRecommendations {
					break
				}
				result.Recommendations = append(result.Recommendations, b)
			}
		}
		logx.Debug().Str("room_id", result.RoomID).Int("books", len(result.Recommendations)).Msg("recommendations attached")
		return result, nil
	})
}

// NewToolArgumentsHandler sanitises tool arguments before execution and never
// fails: arguments that are not JSON pass through unchanged.
func NewToolArgumentsHandler() func(context.Context, string, string) (string, error) {
	return func(ctx context.Context, name, arguments string) (string, error) {
		var m map[string]any
		if err := json.Unmarshal([]byte(arguments), &m); err != nil {
			return arguments, nil
		}

		if name == tools.ToolSearchBooks {
			for _, key := range []string{"query", "genre"} {
				v, ok := m[key]
				if !ok {
					continue
				}
				switch vv := v.(type) {
				case string:
					m[key] = strings.TrimSpace(vv)
				default:
					m[key] = strings.TrimSpace(fmt.Sprint(v))
				}
			}
			if v, ok := m["max_results"]; ok {
				switch vv := v.(type) {
				case float64:
					m["max_results"] = clampInt(int(vv), 1, tools.MaxResults)
				case string:
					if n, err := strconv.Atoi(strings.TrimSpace(vv)); err == nil {
						m["max_results"] = clampInt(n, 1, tools.MaxResults)
					} else {
						delete(m, "max_results")
					}
				default:
					delete(m, "max_results")
				}
			}
		}

		b, err := json.Marshal(m)
		if err != nil {
			return arguments, nil
		}
		return string(b), nil
	}
}

// NewUnknownToolsHandler answers calls to tools that do not exist with a
// structured error instead of failing the run.
func NewUnknownToolsHandler() func(context.Context, string, string) (string, error) {
	return func(ctx context.Context, name, input string) (string, error) {
		logx.Warn().
			Str("tool_name", name).
			Str("arguments", input).
			Msg("Unknown or invalid tool call; returning fallback result")
		return fmt.Sprintf("{\"error\":\"unknown_tool\",\"name\":%q,\"note\":\"ignored\"}", name), nil
	}
}
