package gourdianauth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const refreshTokenPrefix = "refresh:"

// RedisRefreshTokenRepository is a Redis-backed implementation of
// RefreshTokenRepository. Expiry is delegated to Redis key TTLs.
type RedisRefreshTokenRepository struct {
	client *redis.Client
}

// NewRedisRefreshTokenRepository creates a new Redis-based refresh token
// repository and verifies the connection.
func NewRedisRefreshTokenRepository(client *redis.Client) (*RedisRefreshTokenRepository, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client cannot be nil")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	return &RedisRefreshTokenRepository{
		client: client,
	}, nil
}

// Save stores the refresh token for a subject with the given TTL, replacing
// any previous one.
func (r *RedisRefreshTokenRepository) Save(ctx context.Context, subject, token string, ttl time.Duration) error {
	if subject == "" {
		return fmt.Errorf("subject cannot be empty")
	}
	if token == "" {
		return fmt.Errorf("token cannot be empty")
	}
	if ttl <= 0 {
		return fmt.Errorf("ttl must be positive")
	}

	return r.client.Set(ctx, refreshTokenPrefix+subject, token, ttl).Err()
}

// Find returns the stored refresh token for a subject, or ErrTokenNotFound
// once the key has expired or was deleted.
func (r *RedisRefreshTokenRepository) Find(ctx context.Context, subject string) (string, error) {
	if subject == "" {
		return "", fmt.Errorf("subject cannot be empty")
	}

	token, err := r.client.Get(ctx, refreshTokenPrefix+subject).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrTokenNotFound
		}
		return "", fmt.Errorf("redis error: %w", err)
	}

	return token, nil
}

// Delete removes the stored refresh token for a subject. Deleting an absent
// key is not an error.
func (r *RedisRefreshTokenRepository) Delete(ctx context.Context, subject string) error {
	if subject == "" {
		return fmt.Errorf("subject cannot be empty")
	}

	if err := r.client.Del(ctx, refreshTokenPrefix+subject).Err(); err != nil {
		return fmt.Errorf("redis error: %w", err)
	}

	return nil
}
