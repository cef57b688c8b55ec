package storage

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
)

type cache struct {
	*redis.Client
	disabled bool
	log      *logger
}

func newCache(conn *redis.Client, disabled bool, log *logger) *cache {
	return &cache{
		Client:   conn,
		disabled: disabled || conn == nil,
		log:      log,
	}
}

func (c *cache) get(ctx context.Context, key string, value interface{}) error {
	if c.disabled {
		return redis.Nil
	}

	str, err := c.Get(ctx, key).Bytes()
	if err != nil {
		// returns err redis.Nil if key does not exist
		return err
	}

	return json.Unmarshal(str, value)
}

func (c *cache) set(ctx context.Context, key string, value interface{}, expiration int) error {
	if c.disabled {
		return nil
	}

	str, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.log.debug("set() key: %s value: %s", key, string(str))

	return c.Set(ctx, key, str, time.Duration(expiration)*time.Second).Err()
}

func (c *cache) del(ctx context.Context, keys ...string) error {
	if c.disabled || len(keys) == 0 {
		return nil
	}
	c.log.debug("del() keys: %v", keys)
	return c.Del(ctx, keys...).Err()
}

// setList caches a list result and records its key in the query's metadata set so a write can find it again
func (c *cache) setList(ctx context.Context, q *Query, key string, value interface{}, expiration int) error {
	if c.disabled {
		return nil
	}

	str, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.log.debug("setList() key: %s metadata: %s", key, q.cacheListMetadataKey)

	ttl := time.Duration(expiration) * time.Second
	_, err = c.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, key, str, ttl)
		pipe.SAdd(ctx, q.cacheListMetadataKey, key)
		// the metadata must outlive every key it points at
		if ttl > 0 {
			pipe.Expire(ctx, q.cacheListMetadataKey, ttl)
		}
		return nil
	})
	return err
}

// flushList deletes every cached result of a list query along with its metadata
func (c *cache) flushList(ctx context.Context, q *Query) error {
	if c.disabled {
		return nil
	}

	// As Logan says: deleting the key is never the wrong move.
	keys, err := c.SMembers(ctx, q.cacheListMetadataKey).Result()
	if err != nil && err != redis.Nil {
		return err
	}

	keys = append(keys, q.cacheListMetadataKey)
	c.log.debug("flushList() deleting: %v", keys)
	return c.Del(ctx, keys...).Err()
}

func (c *cache) ping(ctx context.Context) error {
	if c.disabled {
		return nil
	}
	return c.Ping(ctx).Err()
}
