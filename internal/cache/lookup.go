// Package cache keeps single-row lookups in Redis. Rows are never updated
// once written, so entries only expire.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const keyPrefix = "som:"

// LookupCache is safe to use with a nil client, in which case every Get
// misses and Set does nothing.
type LookupCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *logrus.Logger
}

func NewLookupCache(client *redis.Client, ttl time.Duration, logger *logrus.Logger) *LookupCache {
	return &LookupCache{client: client, ttl: ttl, logger: logger}
}

func Key(entity string, id interface{}) string {
	return fmt.Sprintf("%s%s:%v", keyPrefix, entity, id)
}

// Get decodes the cached value for key into dest and reports whether it
// was found. Redis failures count as misses.
func (c *LookupCache) Get(ctx context.Context, key string, dest interface{}) bool {
	if c == nil || c.client == nil {
		return false
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.WithError(err).WithField("key", key).Warn("Cache read failed")
		}
		return false
	}

	if err := json.Unmarshal(data, dest); err != nil {
		c.logger.WithError(err).WithField("key", key).Warn("Cache entry is corrupt")
		return false
	}
	return true
}

func (c *LookupCache) Set(ctx context.Context, key string, value interface{}) {
	if c == nil || c.client == nil {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		c.logger.WithError(err).WithField("key", key).Warn("Cache encode failed")
		return
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.WithError(err).WithField("key", key).Warn("Cache write failed")
	}
}
