package cache

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix     = "stadiums:search"
	generationKey = keyPrefix + ":gen"
)

// SearchCache stores encoded search results. Entries are namespaced by a
// generation number; bumping the generation makes every older entry
// unreachable without scanning keys.
//
// Get reports the generation it read under and Set writes under the
// generation it is handed, so a result computed before an Invalidate lands
// in the retired generation and is never served.
type SearchCache interface {
	Get(ctx context.Context, key string) (value []byte, gen int64, ok bool, err error)
	Set(ctx context.Context, gen int64, key string, value []byte) error
	Invalidate(ctx context.Context) error
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TLS      bool
	TTL      time.Duration
}

type RedisSearchCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient connects and pings. A nil client with an error means the
// caller should run without the cache.
func NewRedisClient(cfg RedisConfig) (*redis.Client, error) {
	opts := &redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
	if cfg.TLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	return client, nil
}

func NewRedisSearchCache(client *redis.Client, ttl time.Duration) *RedisSearchCache {
	return &RedisSearchCache{client: client, ttl: ttl}
}

func (c *RedisSearchCache) generation(ctx context.Context) (int64, error) {
	v, err := c.client.Get(ctx, generationKey).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(v, 10, 64)
}

func entryKey(gen int64, key string) string {
	return fmt.Sprintf("%s:%d:%s", keyPrefix, gen, key)
}

func (c *RedisSearchCache) Get(ctx context.Context, key string) ([]byte, int64, bool, error) {
	gen, err := c.generation(ctx)
	if err != nil {
		return nil, 0, false, err
	}
	b, err := c.client.Get(ctx, entryKey(gen, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, gen, false, nil
	}
	if err != nil {
		return nil, gen, false, err
	}
	return b, gen, true, nil
}

func (c *RedisSearchCache) Set(ctx context.Context, gen int64, key string, value []byte) error {
	return c.client.Set(ctx, entryKey(gen, key), value, c.ttl).Err()
}

// Invalidate bumps the generation.
func (c *RedisSearchCache) Invalidate(ctx context.Context) error {
	return c.client.Incr(ctx, generationKey).Err()
}

// NoopSearchCache never hits. Used when REDIS_ADDR is unset or unreachable.
type NoopSearchCache struct{}

func (NoopSearchCache) Get(context.Context, string) ([]byte, int64, bool, error) {
	return nil, 0, false, nil
}
func (NoopSearchCache) Set(context.Context, int64, string, []byte) error { return nil }
func (NoopSearchCache) Invalidate(context.Context) error { return nil }

// FromConfig returns a Redis-backed cache when addr is set and reachable,
// otherwise the no-op cache. The returned close func is always non-nil.
func FromConfig(cfg RedisConfig) (SearchCache, func() error) {
	if cfg.Addr == "" || cfg.TTL <= 0 {
		return NoopSearchCache{}, func() error { return nil }
	}
	client, err := NewRedisClient(cfg)
	if err != nil {
		log.Printf("search cache disabled: %v", err)
		return NoopSearchCache{}, func() error { return nil }
	}
	log.Printf("search cache enabled: addr=%s ttl=%s", cfg.Addr, cfg.TTL)
	return NewRedisSearchCache(client, cfg.TTL), client.Close
}
