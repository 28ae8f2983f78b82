// internal/domain/cart/store.go
package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LineStore is the durable session storage for cart lines: loaded on every
// read, saved after every mutation. A crash between mutation and save loses
// at most the last action.
type LineStore interface {
	Load(ctx context.Context, sessionID string) ([]Line, error)
	Save(ctx context.Context, sessionID string, lines []Line) error
	Clear(ctx context.Context, sessionID string) error
}

// RedisLineStore persists cart lines in Redis as a JSON document per session
type RedisLineStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisLineStore creates a Redis-backed line store
func NewRedisLineStore(client *redis.Client, ttl time.Duration) *RedisLineStore {
	return &RedisLineStore{
		client: client,
		ttl:    ttl,
	}
}

func (s *RedisLineStore) cartKey(sessionID string) string {
	return fmt.Sprintf("cart:session:%s", sessionID)
}

// Load retrieves the session's cart lines; a missing cart is an empty cart
func (s *RedisLineStore) Load(ctx context.Context, sessionID string) ([]Line, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session ID required")
	}

	data, err := s.client.Get(ctx, s.cartKey(sessionID)).Result()
	if err == redis.Nil {
		return []Line{}, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	var lines []Line
	if err := json.Unmarshal([]byte(data), &lines); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}

	return lines, nil
}

// Save stores the session's cart lines, refreshing the TTL
func (s *RedisLineStore) Save(ctx context.Context, sessionID string, lines []Line) error {
	if sessionID == "" {
		return fmt.Errorf("session ID required")
	}

	data, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}

	if err := s.client.Set(ctx, s.cartKey(sessionID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}

	return nil
}

// Clear removes the session's cart entirely
func (s *RedisLineStore) Clear(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return fmt.Errorf("session ID required")
	}

	if err := s.client.Del(ctx, s.cartKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	return nil
}
