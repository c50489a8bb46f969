package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps the session under "<prefix>:token" and "<prefix>:user".
// Several machines pointed at the same prefix share one login.
type RedisStore struct {
	rdb    redis.UniversalClient
	prefix string
	ttl    time.Duration
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore returns a store using rdb. A zero ttl keeps keys forever.
func NewRedisStore(rdb redis.UniversalClient, prefix string, ttl time.Duration) *RedisStore {
	if prefix == "" {
		prefix = "pioneersx:session"
	}
	return &RedisStore{rdb: rdb, prefix: prefix, ttl: ttl}
}

func (r *RedisStore) key(name string) string {
	return r.prefix + ":" + name
}

func (r *RedisStore) Token(ctx context.Context) (string, error) {
	tok, err := r.rdb.Get(ctx, r.key(KeyToken)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("session.RedisStore.Token: %w", err)
	}
	return tok, nil
}

func (r *RedisStore) SetToken(ctx context.Context, token string) error {
	if err := r.rdb.Set(ctx, r.key(KeyToken), token, r.ttl).Err(); err != nil {
		return fmt.Errorf("session.RedisStore.SetToken: %w", err)
	}
	return nil
}

func (r *RedisStore) User(ctx context.Context) (json.RawMessage, error) {
	data, err := r.rdb.Get(ctx, r.key(KeyUser)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session.RedisStore.User: %w", err)
	}
	return decodeUser(data), nil
}

func (r *RedisStore) SetUser(ctx context.Context, user json.RawMessage) error {
	if err := validateUser(user); err != nil {
		return err
	}
	if err := r.rdb.Set(ctx, r.key(KeyUser), []byte(user), r.ttl).Err(); err != nil {
		return fmt.Errorf("session.RedisStore.SetUser: %w", err)
	}
	return nil
}

func (r *RedisStore) Clear(ctx context.Context) error {
	if err := r.rdb.Del(ctx, r.key(KeyToken), r.key(KeyUser)).Err(); err != nil {
		return fmt.Errorf("session.RedisStore.Clear: %w", err)
	}
	return nil
}
