package model

import "time"

// ================ Config ================
type ConversationConfig struct {
	TTL            time.Duration `envconfig:"CONVERSATION_TTL" default:"2h"`
	HistoryCap     int           `envconfig:"CONVERSATION_HISTORY_CAP" default:"50"`
	ContextWindow  int           `envconfig:"CONVERSATION_CONTEXT_WINDOW" default:"10"`
	QuestionWindow int           `envconfig:"CONVERSATION_QUESTION_WINDOW" default:"6"`
}

type ScorerConfig struct {
	LLMWeight        float64       `envconfig:"SCORER_LLM_WEIGHT" default:"0.3"`
	ClassifierWeight float64       `envconfig:"SCORER_CLASSIFIER_WEIGHT" default:"0.25"`
	ValenceWeight    float64       `envconfig:"SCORER_VALENCE_WEIGHT" default:"0.25"`
	PatternWeight    float64       `envconfig:"SCORER_PATTERN_WEIGHT" default:"0.2"`
	PassTimeout      time.Duration `envconfig:"SCORER_PASS_TIMEOUT" default:"8s"`
}

type SentimentModelConfig struct {
	Model          string  `envconfig:"SENTIMENT_MODEL" default:"gemini-2.5-flash-lite"`
	MaxTokens      int     `envconfig:"SENTIMENT_MAX_TOKENS" default:"512"`
	Temperature    float32 `envconfig:"SENTIMENT_TEMPERATURE" default:"0.1"`
	ThinkingBudget int32   `envconfig:"SENTIMENT_THINKING_BUDGET" default:"0"`
	Emotions       bool    `envconfig:"SENTIMENT_EMOTIONS" default:"true"`
}

type QuestionModelConfig struct {
	Model          string  `envconfig:"QUESTION_MODEL" default:"gemini-2.5-flash"`
	MaxTokens      int     `envconfig:"QUESTION_MAX_TOKENS" default:"1024"`
	Temperature    float32 `envconfig:"QUESTION_TEMPERATURE" default:"0.4"`
	ThinkingBudget int32   `envconfig:"QUESTION_THINKING_BUDGET" default:"512"`
}

type ClassifierConfig struct {
	APIKey          string `envconfig:"OPENAI_API_KEY"`
	Model           string `envconfig:"CLASSIFIER_MODEL" default:"gpt-4o-mini"`
	MaxOutputTokens int64  `envconfig:"CLASSIFIER_MAX_OUTPUT_TOKENS" default:"200"`
}

type RateLimitConfig struct {
	PerSecond float64 `envconfig:"LLM_RATE_PER_SECOND" default:"5"`
	Burst     int     `envconfig:"LLM_RATE_BURST" default:"10"`
}

type PromptConfig struct {
	StoreName string `envconfig:"PROMPT_STORE_NAME" default:"Springboard Books"`
	AgentName string `envconfig:"PROMPT_AGENT_NAME" default:"Maya"`
}

type ArchiveConfig struct {
	Bucket   string `envconfig:"ARCHIVE_BUCKET"`
	Region   string `envconfig:"ARCHIVE_REGION" default:"us-east-1"`
	Endpoint string `envconfig:"ARCHIVE_ENDPOINT"`
	Prefix   string `envconfig:"ARCHIVE_PREFIX" default:"call-reports/"`
}
