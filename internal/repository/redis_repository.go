package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/nikolayk812/cartsync-demo/internal/domain"
	"github.com/nikolayk812/cartsync-demo/internal/port"
	"github.com/redis/go-redis/v9"
)

type redisCartRepository struct {
	client redis.Cmdable
	key    string
}

// NewRedisCart stores the cart as one JSON document under "<prefix>:<key>".
func NewRedisCart(client redis.Cmdable, prefix, key string) (port.CartStore, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is nil")
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, fmt.Errorf("storage key is empty")
	}

	return &redisCartRepository{
		client: client,
		key:    buildKey(prefix, key),
	}, nil
}

func (r *redisCartRepository) Load(ctx context.Context) ([]domain.CartLine, error) {
	payload, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("client.Get: %w", err)
	}

	var lines []domain.CartLine
	if err := json.Unmarshal(payload, &lines); err != nil {
		return nil, fmt.Errorf("json.Unmarshal: %w", err)
	}

	return lines, nil
}

func (r *redisCartRepository) Save(ctx context.Context, lines []domain.CartLine) error {
	if lines == nil {
		lines = []domain.CartLine{}
	}

	payload, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	if err := r.client.Set(ctx, r.key, payload, 0).Err(); err != nil {
		return fmt.Errorf("client.Set: %w", err)
	}

	return nil
}

func buildKey(prefix, key string) string {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return key
	}
	return fmt.Sprintf("%s:%s", prefix, key)
}
