package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/Sherwin-Cui/three-kindoms/pkg/state"
)

// RedisStorage implements Storage on Redis. Snapshots are stored as JSON
// blobs under "session:<id>" and "save:<id>:<slot>".
type RedisStorage struct {
	client *redis.Client
	logger *slog.Logger
}

var _ Storage = (*RedisStorage)(nil)

// NewRedisStorage creates a Redis storage instance from a redis:// URL.
func NewRedisStorage(redisURL string, logger *slog.Logger) (*RedisStorage, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	return &RedisStorage{
		client: redis.NewClient(opts),
		logger: logger,
	}, nil
}

func (r *RedisStorage) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisStorage) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}
	return nil
}

// WaitForConnection waits for Redis to become available during startup.
func (r *RedisStorage) WaitForConnection(ctx context.Context) error {
	const maxRetries = 30
	const retryDelay = 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		if err := r.Ping(ctx); err != nil {
			r.logger.Debug("Redis not ready yet", "error", err, "attempt", i+1)
			select {
			case <-ctx.Done():
				return fmt.Errorf("context cancelled while waiting for redis: %w", ctx.Err())
			case <-time.After(retryDelay):
				continue
			}
		}
		r.logger.Info("Redis connection established")
		return nil
	}
	return fmt.Errorf("redis did not become available after %d attempts", maxRetries)
}

func sessionKey(id uuid.UUID) string { return "session:" + id.String() }

func slotKey(id uuid.UUID, slot string) string {
	return fmt.Sprintf("save:%s:%s", id.String(), slot)
}

func (r *RedisStorage) SaveSession(ctx context.Context, id uuid.UUID, snap *state.Snapshot) error {
	return r.set(ctx, sessionKey(id), snap)
}

func (r *RedisStorage) LoadSession(ctx context.Context, id uuid.UUID) (*state.Snapshot, error) {
	return r.get(ctx, sessionKey(id))
}

func (r *RedisStorage) DeleteSession(ctx context.Context, id uuid.UUID) error {
	if err := r.client.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (r *RedisStorage) SaveSlot(ctx context.Context, id uuid.UUID, slot string, snap *state.Snapshot) error {
	return r.set(ctx, slotKey(id, slot), snap)
}

func (r *RedisStorage) LoadSlot(ctx context.Context, id uuid.UUID, slot string) (*state.Snapshot, error) {
	return r.get(ctx, slotKey(id, slot))
}

func (r *RedisStorage) set(ctx context.Context, key string, snap *state.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	if err := r.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to store snapshot: %w", err)
	}
	return nil
}

func (r *RedisStorage) get(ctx context.Context, key string) (*state.Snapshot, error) {
	data, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	var snap state.Snapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return &snap, nil
}
