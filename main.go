package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	jsoniter "github.com/json-iterator/go"
	"github.com/kelseyhightower/envconfig"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Chative-core-poc-v1/bookseller/internal/agent/graph"
	"github.com/Chative-core-poc-v1/bookseller/internal/agent/graph/tools"
	"github.com/Chative-core-poc-v1/bookseller/internal/agent/model"
	"github.com/Chative-core-poc-v1/bookseller/internal/agent/repo"
	"github.com/Chative-core-poc-v1/bookseller/internal/agent/sentiment"
	"github.com/Chative-core-poc-v1/bookseller/internal/agent/stage"
	"github.com/Chative-core-poc-v1/bookseller/internal/agent/summary"
	"github.com/Chative-core-poc-v1/bookseller/internal/core"
	"github.com/Chative-core-poc-v1/bookseller/pkg/database"
	logx "github.com/Chative-core-poc-v1/bookseller/pkg/logger"
	"github.com/Chative-core-poc-v1/bookseller/pkg/metrics"
	pkgredis "github.com/Chative-core-poc-v1/bookseller/pkg/redis"
)

// AppConfig defines all configurable parameters of the assistant,
// sourced from environment variables (loaded from .env for local runs).
type AppConfig struct {
	Env core.Environment `envconfig:"APP_ENV" default:"development"`
	Log logx.FileOpts

	// Infrastructure
	StoreBackend string `envconfig:"STORE_BACKEND" default:"memory"`
	Redis        pkgredis.Config
	Database     database.Config
	Archive      model.ArchiveConfig
	MetricsAddr  string `envconfig:"METRICS_ADDR"`

	// LLM providers; every model-backed component is optional
	APIKey     string `envconfig:"GEMINI_API_KEY"`
	BaseURL    string `envconfig:"GEMINI_BASE_URL"`
	Sentiment  model.SentimentModelConfig
	Question   model.QuestionModelConfig
	Classifier model.ClassifierConfig
	RateLimit  model.RateLimitConfig

	// Agent configs
	Scorer       model.ScorerConfig
	Prompt       model.PromptConfig
	Conversation model.ConversationConfig
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not load .env file: %v\n", err)
	}

	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to process environment config: %v\n", err)
		os.Exit(1)
	}
	logx.Init(logx.LoggerOpts{Environment: cfg.Env, File: cfg.Log})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logx.Error().Err(err).Msg("bookseller stopped")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg AppConfig) error {
	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)
	if cfg.MetricsAddr != "" {
		srv := metrics.NewServer(cfg.MetricsAddr, reg)
		go func() {
			if err := srv.Start(); err != nil {
				logx.Error().Err(err).Msg("metrics server failed")
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	st, err := openStores(ctx, cfg, m)
	if err != nil {
		return err
	}
	defer st.Close()

	passes, generator, err := buildModels(ctx, cfg)
	if err != nil {
		return err
	}

	scorer := sentiment.NewScorer(passes,
		sentiment.WithHistory(st.history),
		sentiment.WithPassTimeout(cfg.Scorer.PassTimeout),
		sentiment.WithMetrics(m),
	)
	stageOpts := []stage.Option{
		stage.WithMetrics(m),
		stage.WithQuestionWindow(cfg.Conversation.QuestionWindow),
	}
	if generator != nil {
		stageOpts = append(stageOpts, stage.WithGenerator(generator))
	}
	svc := stage.NewService(st.contexts, stageOpts...)

	runner, err := graph.BuildTurnGraph(ctx, graph.Config{
		Transcripts:  st.transcripts,
		Scorer:       scorer,
		Stage:        svc,
		Scores:       st.scores,
		Catalog:      tools.SampleCatalog,
		Conversation: cfg.Conversation,
		Metrics:      m,
	})
	if err != nil {
		return err
	}

	handlerOpts := []summary.Option{
		summary.WithOrders(st.orders),
		summary.WithSentimentRepository(st.scores),
		summary.WithMetrics(m),
	}
	if cfg.Archive.Bucket != "" {
		archiver, err := repo.NewS3ReportArchiver(cfg.Archive)
		if err != nil {
			return err
		}
		handlerOpts = append(handlerOpts, summary.WithArchiver(archiver))
	}
	handler := summary.NewCallEndHandler(st.transcripts, st.summaries, handlerOpts...)

	roomID := model.NewRoomID()
	report, err := replayDemoCall(ctx, runner, handler, svc, roomID)
	if err != nil {
		return err
	}

	out, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
