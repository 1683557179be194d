package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	jsoniter "github.com/json-iterator/go"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"
	"golang.org/x/time/rate"

	"github.com/Chative-core-poc-v1/bookseller/internal/agent/graph/parsers"
	"github.com/Chative-core-poc-v1/bookseller/internal/agent/graph/prompts"
	"github.com/Chative-core-poc-v1/bookseller/internal/agent/model"
	"github.com/Chative-core-poc-v1/bookseller/internal/agent/sentiment"
	errx "github.com/Chative-core-poc-v1/bookseller/internal/core/error"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Responder is the part of the OpenAI Responses service the classifier uses.
type Responder interface {
	New(ctx context.Context, body responses.ResponseNewParams, opts ...option.RequestOption) (*responses.Response, error)
}

// Classification is the structured output of the classifier pass.
type Classification struct {
	Label      string  `json:"label" jsonschema:"enum=negative,enum=neutral,enum=positive" validate:"required,oneof=negative neutral positive"`
	Confidence float64 `json:"confidence" validate:"gte=0,lte=1"`
}

var classificationSchema = GenerateSchema[Classification]()

// OpenAIClassifierPass is the three-way classifier pass. Polarity is the
// confidence signed by the label, zero for neutral.
type OpenAIClassifierPass struct {
	client    Responder
	modelName string
	maxTokens int64
	weight    float64
	limiter   *rate.Limiter
	validate  *validator.Validate
}

func NewOpenAIClassifierPass(cfg model.ClassifierConfig, weight float64, limiter *rate.Limiter) *OpenAIClassifierPass {
	client := openai.NewClient(option.WithAPIKey(cfg.APIKey))
	return NewOpenAIClassifierPassWithClient(&client.Responses, cfg, weight, limiter)
}

func NewOpenAIClassifierPassWithClient(r Responder, cfg model.ClassifierConfig, weight float64, limiter *rate.Limiter) *OpenAIClassifierPass {
	return &OpenAIClassifierPass{
		client:    r,
		modelName: cfg.Model,
		maxTokens: cfg.MaxOutputTokens,
		weight:    weight,
		limiter:   limiter,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (p *OpenAIClassifierPass) Name() string    { return "classifier" }
func (p *OpenAIClassifierPass) Weight() float64 { return p.weight }

func (p *OpenAIClassifierPass) Analyze(ctx context.Context, text string) (*sentiment.Partial, error) {
	if err := wait(ctx, p.limiter); err != nil {
		return nil, err
	}

	format := responses.ResponseFormatTextConfigUnionParam{
		OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
			Name:        "SentimentClassification",
			Schema:      classificationSchema,
			Strict:      openai.Bool(true),
			Description: openai.String("Three-way sentiment label with confidence"),
			Type:        "json_schema",
		},
	}
	params := responses.ResponseNewParams{
		Model:           p.modelName,
		MaxOutputTokens: openai.Int(p.maxTokens),
		Instructions:    openai.String(prompts.ClassifierInstructions()),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: []responses.ResponseInputItemUnionParam{
				responses.ResponseInputItemParamOfMessage(text, responses.EasyInputMessageRoleUser),
			},
		},
		Text: responses.ResponseTextConfigParam{
			Format: format,
		},
	}

	resp, err := p.client.New(ctx, params)
	if err != nil {
		return nil, errx.WrapLLM(err)
	}
	if resp == nil {
		return nil, errx.WrapLLM(fmt.Errorf("classifier returned no response"))
	}
	logTokenUsage("classifier", p.modelName, resp.Usage.InputTokens, resp.Usage.OutputTokens)

	var out Classification
	if err := parsers.DecodeModelJSON(resp.OutputText(), &out); err != nil {
		return nil, fmt.Errorf("unmarshal classification: %w", err)
	}
	out.Label = strings.ToLower(strings.TrimSpace(out.Label))
	if err := p.validate.Struct(out); err != nil {
		return nil, fmt.Errorf("classification rejected: %w", err)
	}

	polarity := 0.0
	switch out.Label {
	case "positive":
		polarity = out.Confidence
	case "negative":
		polarity = -out.Confidence
	}
	return sentiment.PolarityPartial(polarity, out.Confidence), nil
}

// GenerateSchema reflects T into a strict structured-output schema.
func GenerateSchema[T any]() map[string]any {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties:  false,
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
	}
	var v T
	s := reflector.Reflect(v)
	b, err := s.MarshalJSON()
	if err != nil {
		panic(err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		panic(err)
	}
	ensureStrict(m)
	return m
}

// ensureStrict closes every object and marks all of its properties required.
func ensureStrict(schema map[string]any) {
	if t, ok := schema["type"].(string); ok && t == "object" {
		schema["additionalProperties"] = false
		if props, ok := schema["properties"].(map[string]any); ok {
			required := make([]string, 0, len(props))
			for name := range props {
				required = append(required, name)
			}
			if len(required) > 0 {
				schema["required"] = required
			}
		}
	}
	if props, ok := schema["properties"].(map[string]any); ok {
		for _, prop := range props {
			if m, ok := prop.(map[string]any); ok {
				ensureStrict(m)
			}
		}
	}
	if items, ok := schema["items"].(map[string]any); ok {
		ensureStrict(items)
	}
}

var _ sentiment.Pass = (*OpenAIClassifierPass)(nil)
