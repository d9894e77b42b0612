package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gosimple/slug"
	"github.com/redis/go-redis/v9"
)

// RedisCache keeps successful geocode results in redis
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{
		client: client,
		ttl:    ttl,
	}
}

// CacheKey maps an address to its redis key
func CacheKey(address string) string {
	return "geocode:" + slug.Make(NormalizeAddress(address))
}

func (c *RedisCache) Get(ctx context.Context, address string) (*Result, error) {
	data, err := c.client.Get(ctx, CacheKey(address)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read geocode cache: %w", err)
	}

	var result Result
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached geocode: %w", err)
	}
	return &result, nil
}

func (c *RedisCache) Set(ctx context.Context, address string, result *Result) error {
	if result == nil || !result.Success {
		return nil
	}

	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshaling geocode result: %w", err)
	}
	return c.client.Set(ctx, CacheKey(address), data, c.ttl).Err()
}
