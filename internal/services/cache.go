package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// keyPrefix namespaces every cache entry this service writes
const keyPrefix = "remessa:"

// CacheService stores parse results in Redis, degrading to an in-process
// map when Redis is unreachable so the API keeps working without it.
type CacheService struct {
	client *redis.Client
	ttl    time.Duration
	logger *logrus.Logger

	memCache map[string]cacheItem
	memMutex sync.RWMutex
}

type cacheItem struct {
	value     string
	expiresAt time.Time
}

// NewCacheService creates a new cache service. A nil client means Redis is
// disabled and only the memory fallback is used.
func NewCacheService(client *redis.Client, ttl time.Duration, logger *logrus.Logger) CacheServiceInterface {
	return &CacheService{
		client:   client,
		ttl:      ttl,
		logger:   logger,
		memCache: make(map[string]cacheItem),
	}
}

// Get retrieves a value, trying Redis first
func (c *CacheService) Get(ctx context.Context, key string) (string, error) {
	key = keyPrefix + key

	if c.client != nil {
		val, err := c.client.Get(ctx, key).Result()
		if err == nil {
			c.logger.WithField("key", key).Debug("Cache hit (Redis)")
			return val, nil
		}
		if err != redis.Nil {
			c.logger.WithError(err).WithField("key", key).Warn("Redis get failed, trying memory cache")
		}
	}

	c.memMutex.RLock()
	item, exists := c.memCache[key]
	c.memMutex.RUnlock()

	if !exists || time.Now().After(item.expiresAt) {
		if exists {
			c.memMutex.Lock()
			delete(c.memCache, key)
			c.memMutex.Unlock()
		}
		return "", fmt.Errorf("key not found")
	}

	c.logger.WithField("key", key).Debug("Cache hit (memory)")
	return item.value, nil
}

// Set stores a value with the configured TTL
func (c *CacheService) Set(ctx context.Context, key string, value string) error {
	key = keyPrefix + key

	if c.client != nil {
		if err := c.client.Set(ctx, key, value, c.ttl).Err(); err == nil {
			return nil
		} else {
			c.logger.WithError(err).WithField("key", key).Warn("Redis set failed, using memory cache")
		}
	}

	c.memMutex.Lock()
	c.memCache[key] = cacheItem{value: value, expiresAt: time.Now().Add(c.ttl)}
	c.memMutex.Unlock()

	return nil
}

// Delete removes a value from both layers
func (c *CacheService) Delete(ctx context.Context, key string) error {
	key = keyPrefix + key

	if c.client != nil {
		if err := c.client.Del(ctx, key).Err(); err != nil {
			c.logger.WithError(err).WithField("key", key).Warn("Redis delete failed")
		}
	}

	c.memMutex.Lock()
	delete(c.memCache, key)
	c.memMutex.Unlock()

	return nil
}

// Clear drops every entry under the service prefix
func (c *CacheService) Clear(ctx context.Context) error {
	if c.client != nil {
		iter := c.client.Scan(ctx, 0, keyPrefix+"*", 0).Iterator()
		for iter.Next(ctx) {
			if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
				c.logger.WithError(err).Warn("Redis clear failed")
				break
			}
		}
		if err := iter.Err(); err != nil {
			c.logger.WithError(err).Warn("Redis scan failed during clear")
		}
	}

	c.memMutex.Lock()
	for key := range c.memCache {
		if strings.HasPrefix(key, keyPrefix) {
			delete(c.memCache, key)
		}
	}
	c.memMutex.Unlock()

	return nil
}

// GetStats returns cache statistics
func (c *CacheService) GetStats(ctx context.Context) (map[string]interface{}, error) {
	stats := map[string]interface{}{
		"backend": "memory",
		"ttl":     c.ttl.String(),
	}

	c.memMutex.RLock()
	stats["memory_entries"] = len(c.memCache)
	c.memMutex.RUnlock()

	if c.client != nil {
		stats["backend"] = "redis"
		count := 0
		iter := c.client.Scan(ctx, 0, keyPrefix+"*", 0).Iterator()
		for iter.Next(ctx) {
			count++
		}
		if err := iter.Err(); err != nil {
			return stats, fmt.Errorf("failed to scan redis keys: %w", err)
		}
		stats["redis_entries"] = count
	}

	return stats, nil
}

// Health returns cache service health status
func (c *CacheService) Health() map[string]interface{} {
	if c.client == nil {
		return map[string]interface{}{"status": "degraded", "backend": "memory"}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := c.client.Ping(ctx).Err(); err != nil {
		return map[string]interface{}{"status": "degraded", "backend": "memory", "error": err.Error()}
	}
	return map[string]interface{}{"status": "healthy", "backend": "redis"}
}
