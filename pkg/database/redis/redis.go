package redis

import (
	"context"
	"fmt"
	"time"

	"crimeChronicles/pkg/config"

	"github.com/redis/go-redis/v9"
)

const (
	defaultPoolSize    = 10
	defaultDialTimeout = 5 * time.Second
	ioTimeout          = 3 * time.Second
)

// clientOptions maps the redis section of the config onto go-redis options.
// Unset pool settings fall back to the package defaults.
func clientOptions(rc config.RedisConfig) *redis.Options {
	poolSize := rc.PoolSize
	if poolSize <= 0 {
		poolSize = defaultPoolSize
	}

	minIdle := rc.MinIdleConns
	if minIdle > poolSize {
		minIdle = poolSize
	}

	dialTimeout := rc.DialTimeout
	if dialTimeout <= 0 {
		dialTimeout = defaultDialTimeout
	}

	return &redis.Options{
		Addr:         fmt.Sprintf("%s:%s", rc.RedisHost, rc.RedisPort),
		Username:     rc.RedisUsername,
		Password:     rc.RedisPassword,
		DB:           rc.RedisDB,
		DialTimeout:  dialTimeout,
		ReadTimeout:  ioTimeout,
		WriteTimeout: ioTimeout,
		PoolSize:     poolSize,
		MinIdleConns: minIdle,
	}
}

// NewRedisClient connects to the catalog cache and pings it once.
func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	opts := clientOptions(cfg.Redis)
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), opts.DialTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", opts.Addr, err)
	}

	return client, nil
}

func CloseRedisClient(client *redis.Client) error {
	if client != nil {
		return client.Close()
	}

	return nil
}
