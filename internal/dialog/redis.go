package dialog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore хранит сессии в Redis, просрочку делает сам Redis через TTL ключа.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func redisKey(userID int64) string {
	return fmt.Sprintf("dialog:user:%d", userID)
}

func (r *RedisStore) Get(ctx context.Context, userID int64) (*Session, error) {
	raw, err := r.client.Get(ctx, redisKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return NewSession(userID), nil
		}
		return nil, fmt.Errorf("get dialog state: %w", err)
	}
	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decode dialog state: %w", err)
	}
	s.UserID = userID
	return &s, nil
}

func (r *RedisStore) Set(ctx context.Context, s *Session) error {
	c := s.Clone()
	c.UpdatedAt = time.Now()
	raw, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode dialog state: %w", err)
	}
	// ttl 0 в go-redis = ключ без срока жизни
	if err := r.client.Set(ctx, redisKey(s.UserID), raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("set dialog state: %w", err)
	}
	return nil
}

func (r *RedisStore) Reset(ctx context.Context, userID int64) error {
	return r.client.Del(ctx, redisKey(userID)).Err()
}
