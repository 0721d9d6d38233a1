package cache

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Mukund-Vijay/pennywise-todo/internal/config"
	"github.com/Mukund-Vijay/pennywise-todo/pkg/logger"
)

var (
	client *redis.Client
	once   sync.Once
)

// Client returns the global Redis client (initialized on first use).
func Client(ctx context.Context) *redis.Client {
	once.Do(func() {
		cfg := config.Get()
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Error(ctx, "Invalid REDIS_URL", "error", err, "url", cfg.RedisURL)
			return
		}
		opts.PoolSize = cfg.RedisPoolSize
		client = redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Error(ctx, "Redis ping failed", "error", err)
			return
		}
		logger.Info(ctx, "Redis client initialized", "pool_size", cfg.RedisPoolSize)
	})
	return client
}

func todosKey(userID string) string {
	return "todos:user:" + userID
}

// GetRawTodos reads a user's todo list from Redis as raw JSON bytes.
// Returns (nil, false) on miss or error.
func GetRawTodos(ctx context.Context, userID string) ([]byte, bool) {
	c := Client(ctx)
	if c == nil {
		return nil, false
	}
	b, err := c.Get(ctx, todosKey(userID)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		logger.Debug(ctx, "Redis get todos failed", "error", err)
		return nil, false
	}
	return b, true
}

// SetRawTodos caches a user's todo list with the configured TTL.
func SetRawTodos(ctx context.Context, userID string, b []byte) {
	c := Client(ctx)
	if c == nil {
		return
	}
	ttl := time.Duration(config.Get().CacheTTL) * time.Second
	if err := c.Set(ctx, todosKey(userID), b, ttl).Err(); err != nil {
		logger.Debug(ctx, "Redis set todos failed", "error", err)
	}
}

// InvalidateTodos drops a user's cached todo list so the next read goes to DB.
func InvalidateTodos(ctx context.Context, userID string) {
	c := Client(ctx)
	if c == nil {
		return
	}
	if err := c.Del(ctx, todosKey(userID)).Err(); err != nil {
		logger.Debug(ctx, "Redis invalidate todos failed", "error", err)
	}
}
