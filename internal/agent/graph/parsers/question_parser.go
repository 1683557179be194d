package parsers

import (
	"fmt"
	"io"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// QuestionSuggestion is the JSON object the question model answers with.
type QuestionSuggestion struct {
	Text             string   `json:"question_text" validate:"required,min=5,max=400"`
	Type             string   `json:"question_type" validate:"required,oneof=open_ended closed_ended probing clarifying objection_handling closing follow_up"`
	ContextHints     []string `json:"context_hints" validate:"max=5"`
	ExpectedResponse string   `json:"expected_response_type"`
	FollowUps        []string `json:"follow_up_questions" validate:"max=5,dive,required"`
}

// ParseQuestion decodes a suggestion, tolerating prose or code fences around
// the first top-level JSON object.
func ParseQuestion(content string) (*QuestionSuggestion, error) {
	var q QuestionSuggestion
	if err := DecodeModelJSON(content, &q); err != nil {
		return nil, err
	}
	q.Text = strings.TrimSpace(q.Text)
	q.Type = strings.ToLower(strings.TrimSpace(q.Type))
	return &q, nil
}

// DecodeModelJSON unmarshals JSON from a model response.
func DecodeModelJSON(outputText string, v any) error {
	s := strings.TrimSpace(outputText)
	if s == "" {
		return io.ErrUnexpectedEOF
	}
	if err := json.Unmarshal([]byte(s), v); err == nil {
		return nil
	}

	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start == -1 || end == -1 || end <= start {
		return fmt.Errorf("no JSON object found in model output (len=%d)", len(s))
	}
	sub := s[start : end+1]
	if err := json.Unmarshal([]byte(sub), v); err != nil {
		return fmt.Errorf("failed to unmarshal extracted JSON (len=%d): %w", len(sub), err)
	}
	return nil
}
