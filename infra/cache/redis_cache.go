package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/amirasaad/amanah/pkg/cache"
	"github.com/redis/go-redis/v9"
)

// RedisMetalPriceCache implements cache.MetalPriceCache using Redis.
type RedisMetalPriceCache struct {
	client redis.Cmdable
	prefix string
	logger *slog.Logger
}

// NewRedisMetalPriceCache creates a cache on top of an existing client.
func NewRedisMetalPriceCache(
	client redis.Cmdable,
	prefix string,
	logger *slog.Logger,
) *RedisMetalPriceCache {
	return &RedisMetalPriceCache{client: client, prefix: prefix, logger: logger.With("cache", "redis")}
}

// NewRedisMetalPriceCacheFromURL parses a redis:// URL and connects.
func NewRedisMetalPriceCacheFromURL(
	url, prefix string,
	logger *slog.Logger,
) (*RedisMetalPriceCache, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return NewRedisMetalPriceCache(redis.NewClient(opt), prefix, logger), nil
}

func (r *RedisMetalPriceCache) key(metal cache.Metal) string {
	return r.prefix + string(metal)
}

func (r *RedisMetalPriceCache) Get(ctx context.Context, metal cache.Metal) (*cache.MetalPrice, error) {
	val, err := r.client.Get(ctx, r.key(metal)).Result()
	if errors.Is(err, redis.Nil) {
		r.logger.Debug("Redis cache miss", "metal", metal)
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Redis cache get error", "metal", metal, "error", err)
		return nil, err
	}
	var price cache.MetalPrice
	if err := json.Unmarshal([]byte(val), &price); err != nil {
		r.logger.Error("Redis cache unmarshal error", "metal", metal, "error", err)
		return nil, err
	}
	r.logger.Debug("Redis cache hit", "metal", metal, "price", price.PricePerGram)
	return &price, nil
}

func (r *RedisMetalPriceCache) Set(
	ctx context.Context,
	price *cache.MetalPrice,
	ttl time.Duration,
) error {
	data, err := json.Marshal(price)
	if err != nil {
		r.logger.Error("Redis cache marshal error", "metal", price.Metal, "error", err)
		return err
	}
	if err := r.client.Set(ctx, r.key(price.Metal), data, ttl).Err(); err != nil {
		r.logger.Error("Redis cache set error", "metal", price.Metal, "error", err)
		return err
	}
	r.logger.Debug("Redis cache set", "metal", price.Metal, "price", price.PricePerGram, "ttl", ttl)
	return nil
}

func (r *RedisMetalPriceCache) Delete(ctx context.Context, metal cache.Metal) error {
	if err := r.client.Del(ctx, r.key(metal)).Err(); err != nil {
		r.logger.Error("Redis cache delete error", "metal", metal, "error", err)
		return err
	}
	return nil
}

var _ cache.MetalPriceCache = (*RedisMetalPriceCache)(nil)

// Ping checks that the Redis server is reachable.
func (r *RedisMetalPriceCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
