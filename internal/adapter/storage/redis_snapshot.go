package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rl1809/cart-store/internal/core/domain"
)

const cartSnapshotKey = "cart:snapshot"

// RedisSnapshotStore persists the serialized cart under a single key, so
// every write is one atomic SET and a reader can never observe a partial
// snapshot.
type RedisSnapshotStore struct {
	client *redis.Client
	key    string
}

func NewRedisSnapshotStore(client *redis.Client) *RedisSnapshotStore {
	return &RedisSnapshotStore{client: client, key: cartSnapshotKey}
}

func (r *RedisSnapshotStore) Load(ctx context.Context) ([]domain.CartItem, error) {
	payload, err := r.client.Get(ctx, r.key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get snapshot: %w", err)
	}

	var cart []domain.CartItem
	if err := json.Unmarshal([]byte(payload), &cart); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}

	return cart, nil
}

func (r *RedisSnapshotStore) Save(ctx context.Context, cart []domain.CartItem) error {
	payload, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	if err := r.client.Set(ctx, r.key, payload, 0).Err(); err != nil {
		return fmt.Errorf("set snapshot: %w", err)
	}

	return nil
}
