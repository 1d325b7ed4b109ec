package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "ledger:"

// KV stores key-value slots in Redis without expiry.
// Key format: ledger:<key>
type KV struct {
	client redis.Cmdable
}

// NewKV wraps a Redis client (or any Cmdable, e.g. a pipeline or cluster client).
func NewKV(client redis.Cmdable) *KV {
	return &KV{client: client}
}

// Get returns the slot value; found is false when the key does not exist.
func (k *KV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	v, err := k.client.Get(ctx, k.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return v, true, nil
}

// Set overwrites the slot.
func (k *KV) Set(ctx context.Context, key string, value []byte) error {
	if err := k.client.Set(ctx, k.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (k *KV) key(key string) string {
	return keyPrefix + key
}
