package synclog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps the log in a Redis list. Each append pushes to the head
// and trims the list in the same transaction, so readers never observe more
// than capacity entries.
type RedisStore struct {
	client   redis.UniversalClient
	key      string
	capacity int
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore constructs a store for the list named key.
func NewRedisStore(client redis.UniversalClient, key string, capacity int) (*RedisStore, error) {
	if client == nil {
		return nil, errors.New("synclog: redis store requires a client")
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, ErrKeyRequired
	}
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	return &RedisStore{client: client, key: key, capacity: capacity}, nil
}

// Append implements Store.
func (s *RedisStore) Append(ctx context.Context, attempt Attempt) error {
	data, err := json.Marshal(attempt)
	if err != nil {
		return fmt.Errorf("synclog: encode attempt: %w", err)
	}
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, s.key, data)
		pipe.LTrim(ctx, s.key, 0, int64(s.capacity-1))
		return nil
	})
	if err != nil {
		return fmt.Errorf("synclog: append to %s: %w", s.key, err)
	}
	return nil
}

// ReadAll implements Store.
func (s *RedisStore) ReadAll(ctx context.Context) ([]Attempt, error) {
	values, err := s.client.LRange(ctx, s.key, 0, int64(s.capacity-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("synclog: read %s: %w", s.key, err)
	}
	out := make([]Attempt, 0, len(values))
	for _, value := range values {
		var attempt Attempt
		if err := json.Unmarshal([]byte(value), &attempt); err != nil {
			return nil, fmt.Errorf("synclog: decode attempt: %w", err)
		}
		out = append(out, attempt)
	}
	return out, nil
}

// Key returns the Redis list name.
func (s *RedisStore) Key() string {
	return s.key
}
