package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config holds Redis configuration
type Config struct {
	Host        string
	Port        string
	Password    string
	DB          int
	MaxRetries  int
	PoolSize    int
	MinIdleConn int
	DialTimeout time.Duration
	ReadTimeout time.Duration
}

// NewRedisClient creates a new Redis client
func NewRedisClient(cfg Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		MaxRetries:   cfg.MaxRetries,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConn,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: 3 * time.Second,
		PoolTimeout:  4 * time.Second,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return client, nil
}

// Close gracefully closes the Redis client
func Close(client *redis.Client) error {
	if client != nil {
		return client.Close()
	}
	return nil
}

// WindowCounter counts hits per key in fixed time windows
type WindowCounter struct {
	client redis.Cmdable
	prefix string
}

// NewWindowCounter creates a counter whose keys start with prefix
func NewWindowCounter(client redis.Cmdable, prefix string) *WindowCounter {
	return &WindowCounter{client: client, prefix: prefix}
}

// Key returns the Redis key used for id
func (w *WindowCounter) Key(id string) string {
	return w.prefix + ":" + id
}

// Hit records one hit for id and returns the hits so far in the current
// window and the time until the window resets.
func (w *WindowCounter) Hit(ctx context.Context, id string, window time.Duration) (int64, time.Duration, error) {
	key := w.Key(id)

	var incr *redis.IntCmd
	var ttl *redis.DurationCmd
	_, err := w.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		// starts the window only when the key is new
		pipe.SetNX(ctx, key, 0, window)
		incr = pipe.Incr(ctx, key)
		ttl = pipe.PTTL(ctx, key)
		return nil
	})
	if err != nil {
		return 0, 0, fmt.Errorf("rate counter %s: %w", key, err)
	}

	reset := ttl.Val()
	if reset < 0 {
		reset = window
	}
	return incr.Val(), reset, nil
}
