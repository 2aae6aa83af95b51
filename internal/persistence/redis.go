package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/sitiket/tiketops/internal/config"
)

// ConfigUpdateChannel carries settings-change notifications between
// processes sharing the same Redis.
const ConfigUpdateChannel = "sitiket:config-updated"

// RedisStore adapts a Redis client to the settings key-value and
// broadcast collaborators.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(ctx context.Context, cfg config.RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisStore{client: client}, nil
}

// Load returns (nil, nil) when the key does not exist.
func (s *RedisStore) Load(ctx context.Context, key string) ([]byte, error) {
	raw, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return raw, nil
}

func (s *RedisStore) Save(ctx context.Context, key string, value []byte) error {
	return s.client.Set(ctx, key, value, 0).Err()
}

// Broadcast publishes the changed key on the shared channel.
func (s *RedisStore) Broadcast(ctx context.Context, key string) error {
	return s.client.Publish(ctx, ConfigUpdateChannel, key).Err()
}

// ListenConfigUpdates invokes onUpdate for every settings-change
// message until ctx is canceled. Runs in its own goroutine.
func (s *RedisStore) ListenConfigUpdates(ctx context.Context, logger *zap.Logger, onUpdate func(key string)) {
	sub := s.client.Subscribe(ctx, ConfigUpdateChannel)
	go func() {
		defer sub.Close()
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				logger.Debug("config update received", zap.String("key", msg.Payload))
				onUpdate(msg.Payload)
			}
		}
	}()
}

// Ping verifies the connection for readiness checks.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
