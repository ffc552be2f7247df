package contracts

import (
	"context"
	"time"
)

type RedisRepository interface {
	Delete(ctx context.Context, key string) error
	Set(ctx context.Context, key string, value interface{}, exp time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error)
	Expire(ctx context.Context, key string, exp time.Duration) (bool, error)
	// IncrementWithTTL increments key and sets exp when the key is new.
	IncrementWithTTL(ctx context.Context, key string, exp time.Duration) (int, error)
	Publish(ctx context.Context, channel string, payload interface{}) error
	Subscribe(ctx context.Context, channel string) (Subscription, error)
}

// Subscription delivers raw payloads of one pub/sub channel until Close.
type Subscription interface {
	Messages() <-chan string
	Close() error
}
