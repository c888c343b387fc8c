package cache

import (
	"context"
	"errors"
	"time"

	"github.com/VoltEdgeBuilds/learn/internal/domain"

	"github.com/redis/go-redis/v9"
)

// TokenCache tracks live refresh tokens so they can be rotated and revoked.
type TokenCache struct {
	client *redis.Client
}

func NewTokenCache(client *redis.Client) *TokenCache {
	return &TokenCache{client: client}
}

func refreshKey(token string) string {
	return "refresh_token:" + token
}

func (c *TokenCache) SaveRefresh(ctx context.Context, phone, refreshToken string, ttl time.Duration) error {
	return c.client.Set(ctx, refreshKey(refreshToken), phone, ttl).Err()
}

// CheckRefresh returns the phone the token was issued to, or domain.ErrTokenRevoked.
func (c *TokenCache) CheckRefresh(ctx context.Context, refreshToken string) (string, error) {
	val, err := c.client.Get(ctx, refreshKey(refreshToken)).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrTokenRevoked
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (c *TokenCache) DeleteRefresh(ctx context.Context, refreshToken string) error {
	return c.client.Del(ctx, refreshKey(refreshToken)).Err()
}
