package cache

//go:generate go run go.uber.org/mock/mockgen -source=./cache.go -destination=./mocks/cache_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"roomstack/infras/otel"
)

const (
	otelScopeName         = "cache"
	otelCacheKeyAttribute = "cache.key"
	Nil                   = redis.Nil
	scanBatchSize         = 100
)

// RedisCache is the cache-aside store shared by the services. A miss is reported as an error
// wrapping Nil.
type RedisCache interface {
	Save(ctx context.Context, key string, value any, duration int) (err error)
	Get(ctx context.Context, key string, value any) (err error)
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context, pattern string) error
}

type redisCache struct {
	client *redis.Client
	otel   otel.Otel
}

func NewRedisCache(client *redis.Client, ot otel.Otel) RedisCache {
	return &redisCache{
		client: client,
		otel:   ot,
	}
}

// Save stores value for duration seconds. Strings are stored as is, anything else as JSON.
func (c *redisCache) Save(ctx context.Context, key string, value any, duration int) (err error) {
	ctx, done := c.observe(ctx, "Save", key, &err)
	defer done()

	payload, err := encode(value)
	if err != nil {
		return c.fail("Save", key, "marshal", err)
	}

	if err = c.client.Set(ctx, key, payload, time.Duration(duration)*time.Second).Err(); err != nil {
		return c.fail("Save", key, "set", err)
	}

	log.Debug().Str("key", key).Msg("cache saved")

	return nil
}

// Get decodes the value under key into value, which must be a pointer.
func (c *redisCache) Get(ctx context.Context, key string, value any) (err error) {
	ctx, done := c.observe(ctx, "Get", key, &err)
	defer done()

	payload, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, Nil) {
		return fmt.Errorf("cache miss for %s: %w", key, err)
	}

	if err != nil {
		return c.fail("Get", key, "get", err)
	}

	if err = decode(payload, value); err != nil {
		return c.fail("Get", key, "unmarshal", err)
	}

	return nil
}

func (c *redisCache) Delete(ctx context.Context, key string) (err error) {
	ctx, done := c.observe(ctx, "Delete", key, &err)
	defer done()

	if err = c.client.Del(ctx, key).Err(); err != nil {
		return c.fail("Delete", key, "delete", err)
	}

	return nil
}

// Clear unlinks every key matching pattern, a batch per scan page.
func (c *redisCache) Clear(ctx context.Context, pattern string) (err error) {
	ctx, done := c.observe(ctx, "Clear", pattern, &err)
	defer done()

	var cursor uint64

	for {
		keys, next, scanErr := c.client.Scan(ctx, cursor, pattern, scanBatchSize).Result()
		if scanErr != nil {
			return c.fail("Clear", pattern, "scan", scanErr)
		}

		if len(keys) > 0 {
			if err = c.client.Unlink(ctx, keys...).Err(); err != nil {
				return c.fail("Clear", pattern, "unlink", err)
			}
		}

		if next == 0 {
			return nil
		}

		cursor = next
	}
}

// observe opens a span for op. The returned func records *errp on the span, except misses.
func (c *redisCache) observe(ctx context.Context, op, key string, errp *error) (context.Context, func()) {
	ctx, scope := c.otel.NewScope(ctx, otelScopeName, otelScopeName+"."+op)
	scope.SetAttribute(otelCacheKeyAttribute, key)

	return ctx, func() {
		if !errors.Is(*errp, Nil) {
			scope.TraceIfError(*errp)
		}

		scope.End()
	}
}

func (c *redisCache) fail(op, key, action string, err error) error {
	log.Error().Err(err).Str("op", op).Str("key", key).Msgf("failed to %s cache", action)

	return fmt.Errorf("failed to %s cache value: %w", action, err)
}

func encode(value any) ([]byte, error) {
	switch v := value.(type) {
	case string:
		return []byte(v), nil
	case []byte:
		return v, nil
	default:
		return json.Marshal(v)
	}
}

func decode(payload []byte, value any) error {
	if s, ok := value.(*string); ok {
		*s = string(payload)

		return nil
	}

	return json.Unmarshal(payload, value)
}
