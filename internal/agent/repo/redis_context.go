package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Chative-core-poc-v1/bookseller/internal/agent/model"
	errx "github.com/Chative-core-poc-v1/bookseller/internal/core/error"
	logx "github.com/Chative-core-poc-v1/bookseller/pkg/logger"
	"github.com/Chative-core-poc-v1/bookseller/pkg/metrics"
)

// RedisContextStore keeps each room's ConversationContext as one JSON value.
// Every Put refreshes the TTL, so idle rooms expire on their own.
type RedisContextStore struct {
	rdb     redis.Cmdable
	ttl     time.Duration
	metrics *metrics.Metrics
}

func NewRedisContextStore(rdb redis.Cmdable, ttl time.Duration, m *metrics.Metrics) *RedisContextStore {
	return &RedisContextStore{rdb: rdb, ttl: ttl, metrics: m}
}

func (r *RedisContextStore) Get(ctx context.Context, roomID string) (c model.ConversationContext, ok bool, err error) {
	defer func() { r.metrics.RecordStore("redis_context", "get", err) }()

	key := conversationKey(roomID, "context")
	b, err := r.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return c, false, nil
	}
	if err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to load conversation context from redis")
		return c, false, errx.WrapRedis(err)
	}
	if err := json.Unmarshal(b, &c); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to unmarshal conversation context")
		return c, false, fmt.Errorf("unmarshal context: %w", err)
	}
	return c, true, nil
}

func (r *RedisContextStore) Put(ctx context.Context, roomID string, c model.ConversationContext) (err error) {
	defer func() { r.metrics.RecordStore("redis_context", "put", err) }()

	b, err := json.Marshal(c)
	if err != nil {
		logx.Error().Err(err).Str("room_id", roomID).Msg("failed to marshal conversation context")
		return fmt.Errorf("marshal context: %w", err)
	}
	key := conversationKey(roomID, "context")
	if err := r.rdb.Set(ctx, key, b, r.ttl).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to store conversation context in redis")
		return errx.WrapRedis(err)
	}
	return nil
}

func (r *RedisContextStore) Evict(ctx context.Context, roomID string) (err error) {
	defer func() { r.metrics.RecordStore("redis_context", "evict", err) }()

	key := conversationKey(roomID, "context")
	if err := r.rdb.Del(ctx, key).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to delete conversation context from redis")
		return errx.WrapRedis(err)
	}
	return nil
}

var _ model.ContextStore = (*RedisContextStore)(nil)
