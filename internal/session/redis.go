package session

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "mindease:session:"

// RedisStore keeps conversation history in Redis, one list per session.
// Entries expire after TTL of inactivity.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Redis-backed conversation store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func redisKey(id string) string {
	return redisKeyPrefix + id
}

// Append pushes a turn onto the session's list and refreshes its TTL.
func (s *RedisStore) Append(ctx context.Context, id string, turn Turn) error {
	payload, err := json.Marshal(turn)
	if err != nil {
		return fmt.Errorf("encoding turn: %w", err)
	}

	key := redisKey(id)
	if err := s.client.RPush(ctx, key, payload).Err(); err != nil {
		return fmt.Errorf("appending turn: %w", err)
	}
	if err := s.client.Expire(ctx, key, TTL).Err(); err != nil {
		return fmt.Errorf("refreshing session expiry: %w", err)
	}
	return nil
}

// Turns returns the session's history in append order.
func (s *RedisStore) Turns(ctx context.Context, id string) ([]Turn, error) {
	raw, err := s.client.LRange(ctx, redisKey(id), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("reading session history: %w", err)
	}

	turns := make([]Turn, 0, len(raw))
	for _, item := range raw {
		var turn Turn
		if err := json.Unmarshal([]byte(item), &turn); err != nil {
			return nil, fmt.Errorf("decoding turn: %w", err)
		}
		turns = append(turns, turn)
	}
	return turns, nil
}

// Clear removes the session's history.
func (s *RedisStore) Clear(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, redisKey(id)).Err(); err != nil {
		return fmt.Errorf("clearing session history: %w", err)
	}
	return nil
}

var _ Store = (*RedisStore)(nil)
