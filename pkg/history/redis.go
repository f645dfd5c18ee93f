package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pathlight/pathlight/pkg/errors"
)

// RedisStore keeps each session's visits in a capped Redis list with a TTL.
// Visits are LPUSHed, so reads come back newest first without sorting.
type RedisStore struct {
	client *redis.Client
	cap    int
	ttl    time.Duration
}

// RedisConfig configures a [RedisStore].
type RedisConfig struct {
	Addr     string        // host:port, e.g. "localhost:6379"
	Password string        // optional
	DB       int           // optional
	Cap      int           // max visits per session, <= 0 means DefaultRedisCap
	TTL      time.Duration // session list TTL, <= 0 means DefaultRedisTTL
}

// Defaults for RedisConfig.
const (
	DefaultRedisCap = 200
	DefaultRedisTTL = 24 * time.Hour
)

// NewRedisStore connects to Redis and verifies the connection with a ping.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	if cfg.Cap <= 0 {
		cfg.Cap = DefaultRedisCap
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultRedisTTL
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStoreUnavailable, err, "ping redis at %s", cfg.Addr)
	}

	return &RedisStore{client: client, cap: cfg.Cap, ttl: cfg.TTL}, nil
}

func redisKey(sessionID string) string {
	return "pathlight:history:" + sessionID
}

// Append records a visit and trims the session list to the cap.
func (s *RedisStore) Append(ctx context.Context, v Visit) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal visit: %w", err)
	}

	key := redisKey(v.SessionID)
	pipe := s.client.TxPipeline()
	pipe.LPush(ctx, key, data)
	pipe.LTrim(ctx, key, 0, int64(s.cap-1))
	pipe.Expire(ctx, key, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Wrap(errors.ErrCodeStoreUnavailable, err, "append visit for %s", v.SessionID)
	}
	return nil
}

// Recent returns up to n visits for the session, newest first.
func (s *RedisStore) Recent(ctx context.Context, sessionID string, n int) ([]Visit, error) {
	if n <= 0 || n > s.cap {
		n = s.cap
	}

	raw, err := s.client.LRange(ctx, redisKey(sessionID), 0, int64(n-1)).Result()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStoreUnavailable, err, "read history for %s", sessionID)
	}

	out := make([]Visit, 0, len(raw))
	for _, item := range raw {
		var v Visit
		if err := json.Unmarshal([]byte(item), &v); err != nil {
			// Skip entries written by an incompatible version.
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

// Clear removes the session's list.
func (s *RedisStore) Clear(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, redisKey(sessionID)).Err(); err != nil {
		return errors.Wrap(errors.ErrCodeStoreUnavailable, err, "clear history for %s", sessionID)
	}
	return nil
}

// Close closes the Redis client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Ensure RedisStore implements Store.
var _ Store = (*RedisStore)(nil)
