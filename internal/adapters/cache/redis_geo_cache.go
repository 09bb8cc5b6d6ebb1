// Package cache holds Redis-backed caches.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/SscSPs/wallet_fx_engine/internal/core/ports/gateways"
	"github.com/redis/go-redis/v9"
)

const geoKeyPrefix = "fx:geo:"

// RedisGeoCache stores geo-IP results as JSON strings.
type RedisGeoCache struct {
	client *redis.Client
}

var _ gateways.GeoCache = (*RedisGeoCache)(nil)

func NewRedisGeoCache(client *redis.Client) *RedisGeoCache {
	return &RedisGeoCache{client: client}
}

func (c *RedisGeoCache) Get(ctx context.Context, ip string) (*gateways.GeoLocation, bool, error) {
	data, err := c.client.Get(ctx, geoKeyPrefix+ip).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var loc gateways.GeoLocation
	if err := json.Unmarshal([]byte(data), &loc); err != nil {
		return nil, false, err
	}
	return &loc, true, nil
}

func (c *RedisGeoCache) Set(ctx context.Context, ip string, loc gateways.GeoLocation, ttl time.Duration) error {
	data, err := json.Marshal(loc)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, geoKeyPrefix+ip, data, ttl).Err()
}

// NewRedisClient parses a redis:// URL and checks the connection.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}
