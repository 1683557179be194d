package repo

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Chative-core-poc-v1/bookseller/internal/agent/model"
	errx "github.com/Chative-core-poc-v1/bookseller/internal/core/error"
	logx "github.com/Chative-core-poc-v1/bookseller/pkg/logger"
	"github.com/Chative-core-poc-v1/bookseller/pkg/metrics"
)

type RedisTranscriptRepository struct {
	rdb     redis.Cmdable
	ttl     time.Duration
	metrics *metrics.Metrics
}

func NewRedisTranscriptRepository(rdb redis.Cmdable, ttl time.Duration, m *metrics.Metrics) *RedisTranscriptRepository {
	return &RedisTranscriptRepository{rdb: rdb, ttl: ttl, metrics: m}
}

func (r *RedisTranscriptRepository) AppendEntry(ctx context.Context, roomID string, entry model.TranscriptEntry) (err error) {
	defer func() { r.metrics.RecordStore("redis_transcript", "append", err) }()

	b, err := json.Marshal(entry)
	if err != nil {
		logx.Error().Err(err).Str("room_id", roomID).Msg("failed to marshal transcript entry")
		return fmt.Errorf("marshal entry: %w", err)
	}
	key := conversationKey(roomID, "transcript")

	// append entry
	if err := r.rdb.RPush(ctx, key, b).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to push transcript entry to redis")
		return errx.WrapRedis(err)
	}
	// extend TTL on touch
	if r.ttl > 0 {
		if ok, err := r.rdb.Expire(ctx, key, r.ttl).Result(); err != nil {
			logx.Error().Err(err).Str("key", key).Msg("failed to set expire")
			return errx.WrapRedis(err)
		} else if !ok {
			logx.Warn().Str("key", key).Dur("ttl", r.ttl).Msg("failed to set TTL on transcript key")
		}
	}
	return nil
}

// ListEntries returns the room's entries ordered by timestamp; entries with
// equal timestamps keep their arrival order.
func (r *RedisTranscriptRepository) ListEntries(ctx context.Context, roomID string) (entries []model.TranscriptEntry, err error) {
	defer func() { r.metrics.RecordStore("redis_transcript", "list", err) }()

	key := conversationKey(roomID, "transcript")
	rows, err := r.rdb.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to load transcript from redis")
		return nil, errx.WrapRedis(err)
	}

	entries = make([]model.TranscriptEntry, 0, len(rows))
	for i, s := range rows {
		var e model.TranscriptEntry
		if err := json.Unmarshal([]byte(s), &e); err != nil {
			logx.Error().Err(err).Str("room_id", roomID).Int("index", i).Msg("failed to unmarshal transcript entry")
			return nil, fmt.Errorf("unmarshal entry at index %d: %w", i, err)
		}
		entries = append(entries, e)
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Timestamp < entries[j].Timestamp })
	return entries, nil
}

func (r *RedisTranscriptRepository) ClearEntries(ctx context.Context, roomID string) (err error) {
	defer func() { r.metrics.RecordStore("redis_transcript", "clear", err) }()

	key := conversationKey(roomID, "transcript")
	if err := r.rdb.Del(ctx, key).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to delete transcript from redis")
		return errx.WrapRedis(err)
	}
	return nil
}

func (r *RedisTranscriptRepository) CountEntries(ctx context.Context, roomID string) (int, error) {
	key := conversationKey(roomID, "transcript")
	n, err := r.rdb.LLen(ctx, key).Result()
	if err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to get transcript length from redis")
		return 0, errx.WrapRedis(err)
	}
	return int(n), nil
}

var _ model.TranscriptRepository = (*RedisTranscriptRepository)(nil)
