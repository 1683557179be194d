package main

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/Chative-core-poc-v1/bookseller/internal/agent/model"
	"github.com/Chative-core-poc-v1/bookseller/internal/agent/repo"
	logx "github.com/Chative-core-poc-v1/bookseller/pkg/logger"
	"github.com/Chative-core-poc-v1/bookseller/pkg/metrics"
)

const (
	backendMemory = "memory"
	backendRedis  = "redis"
	backendSQL    = "sql"
)

type stores struct {
	transcripts model.TranscriptRepository
	orders      model.OrderRepository
	scores      model.SentimentRepository
	summaries   model.SummaryRepository
	contexts    model.ContextStore
	history     model.SentimentHistory
	closers     []func() error
}

func (s *stores) Close() {
	for _, c := range s.closers {
		if err := c(); err != nil {
			logx.Warn().Err(err).Msg("failed to close store")
		}
	}
}

// openStores picks the backend named by STORE_BACKEND.
//   - memory: everything in process.
//   - redis: live state (transcript, context, score history) in Redis, durable
//     records in memory.
//   - sql: live state in Redis, durable records in SQL; the transcript is kept
//     in SQL so the call report survives the Redis TTL.
func openStores(ctx context.Context, cfg AppConfig, m *metrics.Metrics) (*stores, error) {
	mem := repo.NewMemoryRepository()
	st := &stores{
		transcripts: mem,
		orders:      mem,
		scores:      mem,
		summaries:   mem,
		contexts:    repo.NewMemoryContextStore(),
		history:     repo.NewMemorySentimentHistory(cfg.Conversation.HistoryCap),
	}

	switch cfg.StoreBackend {
	case backendMemory, "":
		logx.Info().Msg("using in-memory stores")
		return st, nil
	case backendRedis, backendSQL:
	default:
		return nil, fmt.Errorf("unsupported store backend %q", cfg.StoreBackend)
	}

	rdb, err := cfg.Redis.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	st.closers = append(st.closers, rdb.Close)
	useRedis(st, rdb, cfg, m)

	if cfg.StoreBackend == backendSQL {
		db, err := cfg.Database.New(ctx)
		if err != nil {
			st.Close()
			return nil, fmt.Errorf("connect database: %w", err)
		}
		st.closers = append(st.closers, db.Close)
		if err := useSQL(ctx, st, db, m); err != nil {
			st.Close()
			return nil, err
		}
	}

	logx.Info().Str("backend", cfg.StoreBackend).Msg("stores ready")
	return st, nil
}

func useRedis(st *stores, rdb *redis.Client, cfg AppConfig, m *metrics.Metrics) {
	ttl := cfg.Conversation.TTL
	st.transcripts = repo.NewRedisTranscriptRepository(rdb, ttl, m)
	st.contexts = repo.NewRedisContextStore(rdb, ttl, m)
	st.history = repo.NewRedisSentimentHistory(rdb, cfg.Conversation.HistoryCap, ttl, m)
}

func useSQL(ctx context.Context, st *stores, db *sqlx.DB, m *metrics.Metrics) error {
	sqlRepo := repo.NewSQLRepository(db, m)
	if err := sqlRepo.EnsureSchema(ctx); err != nil {
		return err
	}
	st.transcripts = sqlRepo
	st.orders = sqlRepo
	st.scores = sqlRepo
	st.summaries = sqlRepo
	return nil
}
