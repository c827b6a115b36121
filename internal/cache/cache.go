package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/cache/v8"
	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

// DefaultTTL bounds how long cached reads may lag behind the store.
const DefaultTTL = 5 * time.Minute

func UserSubscriptionsKey(userID string) string {
	return fmt.Sprintf("user:%s:subscriptions", userID)
}

// SubscriptionKey is scoped by user so a cached record can never be served
// to anyone but its owner: the repository's ownership check only runs on a
// cache miss.
func SubscriptionKey(userID, subscriptionID string) string {
	return fmt.Sprintf("user:%s:subscription:%s", userID, subscriptionID)
}

func UserStatsKey(userID string) string {
	return fmt.Sprintf("user:%s:stats", userID)
}

// Cache is a thin read-through layer over Redis. Every operation degrades to
// a no-op on cache errors so a broken Redis never breaks a request.
type Cache struct {
	codec *cache.Cache
}

func New(rdb *redis.Client) *Cache {
	return &Cache{
		codec: cache.New(&cache.Options{
			Redis: rdb,
		}),
	}
}

// Get loads the cached value for key into value. It returns false on a miss
// or on any cache error.
func (c *Cache) Get(ctx context.Context, key string, value any) bool {
	err := c.codec.Get(ctx, key, value)
	if err == nil {
		log.Tracef("cache hit: %s", key)
		return true
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		log.Warnf("cache get failed for %s: %v", key, err)
	}
	return false
}

// Set stores value under key with the default TTL.
func (c *Cache) Set(ctx context.Context, key string, value any) {
	err := c.codec.Set(&cache.Item{
		Ctx:   ctx,
		Key:   key,
		Value: value,
		TTL:   DefaultTTL,
	})
	if err != nil {
		log.Warnf("cache set failed for %s: %v", key, err)
	}
}

// Delete removes the given keys.
func (c *Cache) Delete(ctx context.Context, keys ...string) {
	for _, key := range keys {
		if err := c.codec.Delete(ctx, key); err != nil && !errors.Is(err, cache.ErrCacheMiss) {
			log.Warnf("cache delete failed for %s: %v", key, err)
		}
	}
}
