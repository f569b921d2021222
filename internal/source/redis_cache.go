package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/evyataryagoni/travelgeo/internal/geometry"
	"github.com/evyataryagoni/travelgeo/internal/logger"
	"github.com/evyataryagoni/travelgeo/internal/models"
	"github.com/redis/go-redis/v9"
)

// Redis key prefixes
const (
	featureKeyPrefix    = "geo:feature:"
	resolutionKeyPrefix = "geo:resolve:"
)

// NewRedisClient connects to Redis and verifies the connection
func NewRedisClient(addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return client, nil
}

// RedisFeatureCache is a read-through FeatureSource: it serves country
// documents from Redis and fills Redis from the inner source on a miss.
// Redis failures fall through to the inner source.
type RedisFeatureCache struct {
	client *redis.Client
	inner  FeatureSource
	logger *logger.Logger
}

// NewRedisFeatureCache wraps inner with a Redis cache layer
func NewRedisFeatureCache(client *redis.Client, inner FeatureSource, log *logger.Logger) *RedisFeatureCache {
	if log == nil {
		log = logger.NewDefault()
	}
	return &RedisFeatureCache{
		client: client,
		inner:  inner,
		logger: log.WithComponent("RedisFeatureCache"),
	}
}

// LoadFeature implements FeatureSource
//
// Key format: geo:feature:<code>, value: GeoJSON Feature, no expiry
func (c *RedisFeatureCache) LoadFeature(ctx context.Context, code string) (*geometry.CountryFeature, error) {
	key := featureKeyPrefix + code

	data, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		f, derr := geometry.DecodeFeature(code, data)
		if derr == nil {
			return f, nil
		}
		c.logger.Warn().Err(derr).Str("key", key).Msg("Dropping undecodable cached feature")
	case !errors.Is(err, redis.Nil):
		c.logger.Warn().Err(err).Str("key", key).Msg("Redis read failed, using inner source")
	}

	f, err := c.inner.LoadFeature(ctx, code)
	if err != nil {
		return nil, err
	}

	if encoded, err := geometry.ToGeoJSON(f); err == nil {
		if err := c.client.Set(ctx, key, encoded, 0).Err(); err != nil {
			c.logger.Warn().Err(err).Str("key", key).Msg("Failed to cache feature in Redis")
		}
	}

	return f, nil
}

// RedisResultCache persists coordinate resolutions, including "no match"
type RedisResultCache struct {
	client *redis.Client
}

// NewRedisResultCache creates a result cache on the given client
func NewRedisResultCache(client *redis.Client) *RedisResultCache {
	return &RedisResultCache{client: client}
}

// Get returns the cached resolution for key; hit is false when nothing is stored
func (c *RedisResultCache) Get(ctx context.Context, key string) (models.Resolution, bool, error) {
	val, err := c.client.Get(ctx, resolutionKeyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return models.Resolution{}, false, nil
		}
		return models.Resolution{}, false, fmt.Errorf("Redis query failed: %w", err)
	}

	var res models.Resolution
	if err := json.Unmarshal(val, &res); err != nil {
		return models.Resolution{}, false, fmt.Errorf("failed to decode resolution: %w", err)
	}
	return res, true, nil
}

// Set stores a resolution without expiry
func (c *RedisResultCache) Set(ctx context.Context, key string, res models.Resolution) error {
	data, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("failed to encode resolution: %w", err)
	}
	if err := c.client.Set(ctx, resolutionKeyPrefix+key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to store in Redis: %w", err)
	}
	return nil
}
