package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fanbase/gatehouse/core"
	"github.com/fanbase/gatehouse/ports"
)

// RedisStore is a Redis implementation of the SessionStore interface.
// Sessions are JSON-encoded under a prefixed key; the store's TTL is the
// session's TTL.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a new Redis session store.
func NewRedisStore(client *redis.Client) ports.SessionStore {
	return &RedisStore{
		client: client,
		prefix: "gatehouse:session:",
	}
}

// Get loads and decodes a session by id.
func (s *RedisStore) Get(ctx context.Context, id string) (*core.Session, error) {
	data, err := s.client.Get(ctx, s.prefix+id).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, core.ErrSessionNotFound
		}
		return nil, fmt.Errorf("%w: %v", core.ErrStoreOperationFailed, err)
	}

	var session core.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}

	return &session, nil
}

// Put encodes and stores a session with the given TTL.
func (s *RedisStore) Put(ctx context.Context, session *core.Session, ttl time.Duration) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if err := s.client.Set(ctx, s.prefix+session.ID, data, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", core.ErrStoreOperationFailed, err)
	}

	return nil
}

// Delete removes a session. Absent keys are not an error.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.prefix+id).Err(); err != nil {
		return fmt.Errorf("%w: %v", core.ErrStoreOperationFailed, err)
	}
	return nil
}
