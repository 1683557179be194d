package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Chative-core-poc-v1/bookseller/internal/agent/model"
	errx "github.com/Chative-core-poc-v1/bookseller/internal/core/error"
	logx "github.com/Chative-core-poc-v1/bookseller/pkg/logger"
	"github.com/Chative-core-poc-v1/bookseller/pkg/metrics"
)

// DefaultHistoryCap is the number of scores kept per room.
const DefaultHistoryCap = 50

// RedisSentimentHistory is a capped list per room. Append and trim run in one
// MULTI so readers never see more than cap entries.
type RedisSentimentHistory struct {
	rdb     redis.Cmdable
	limit   int64
	ttl     time.Duration
	metrics *metrics.Metrics
}

func NewRedisSentimentHistory(rdb redis.Cmdable, capacity int, ttl time.Duration, m *metrics.Metrics) *RedisSentimentHistory {
	if capacity <= 0 {
		capacity = DefaultHistoryCap
	}
	return &RedisSentimentHistory{rdb: rdb, limit: int64(capacity), ttl: ttl, metrics: m}
}

func (r *RedisSentimentHistory) Record(ctx context.Context, roomID string, score model.SentimentScore) (err error) {
	defer func() { r.metrics.RecordStore("redis_history", "record", err) }()

	b, err := json.Marshal(score)
	if err != nil {
		logx.Error().Err(err).Str("room_id", roomID).Msg("failed to marshal sentiment score")
		return fmt.Errorf("marshal score: %w", err)
	}
	key := conversationKey(roomID, "sentiment")

	_, err = r.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.RPush(ctx, key, b)
		p.LTrim(ctx, key, -r.limit, -1)
		if r.ttl > 0 {
			p.Expire(ctx, key, r.ttl)
		}
		return nil
	})
	if err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to record sentiment score in redis")
		return errx.WrapRedis(err)
	}
	return nil
}

func (r *RedisSentimentHistory) Scores(ctx context.Context, roomID string) (scores []model.SentimentScore, err error) {
	defer func() { r.metrics.RecordStore("redis_history", "scores", err) }()

	key := conversationKey(roomID, "sentiment")
	rows, err := r.rdb.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to load sentiment history from redis")
		return nil, errx.WrapRedis(err)
	}

	scores = make([]model.SentimentScore, 0, len(rows))
	for i, s := range rows {
		var sc model.SentimentScore
		if err := json.Unmarshal([]byte(s), &sc); err != nil {
			logx.Error().Err(err).Str("room_id", roomID).Int("index", i).Msg("failed to unmarshal sentiment score")
			return nil, fmt.Errorf("unmarshal score at index %d: %w", i, err)
		}
		scores = append(scores, sc)
	}
	return scores, nil
}

func (r *RedisSentimentHistory) Evict(ctx context.Context, roomID string) (err error) {
	defer func() { r.metrics.RecordStore("redis_history", "evict", err) }()

	key := conversationKey(roomID, "sentiment")
	if err := r.rdb.Del(ctx, key).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to delete sentiment history from redis")
		return errx.WrapRedis(err)
	}
	return nil
}

var _ model.SentimentHistory = (*RedisSentimentHistory)(nil)
