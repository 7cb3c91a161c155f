package session

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisTokenStore keeps session ids in Redis so that logouts and expiry
// are shared by every server instance that talks to the same Redis.
type RedisTokenStore struct {
	redis *redis.Client
}

func NewRedisTokenStore(client *redis.Client) *RedisTokenStore {
	if client == nil {
		panic("session.NewRedisTokenStore: client is nil")
	}
	return &RedisTokenStore{redis: client}
}

func (s *RedisTokenStore) Put(ctx context.Context, sessionID string, ttl time.Duration) error {
	return s.redis.Set(ctx, sessionKey(sessionID), 1, ttl).Err()
}

func (s *RedisTokenStore) Exists(ctx context.Context, sessionID string) (bool, error) {
	n, err := s.redis.Exists(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (s *RedisTokenStore) Delete(ctx context.Context, sessionID string) error {
	return s.redis.Del(ctx, sessionKey(sessionID)).Err()
}

func sessionKey(sessionID string) string {
	return "taskboard:session:" + sessionID
}
