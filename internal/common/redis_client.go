package common

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Shamanth-8/drones/internal/config"
	"github.com/Shamanth-8/drones/internal/logging"
)

// NewRedisClient builds the client shared by the redis cache and the ops
// event stream. A failed ping is logged; the pool keeps retrying.
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	redisDB := 0 // Default DB

	addr := cfg.Addr()
	logging.Info("Initializing Redis client", "addr", addr, "db", redisDB)

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     cfg.Password,
		DB:           redisDB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logging.Warn("Failed to ping Redis", "addr", addr, "error", err)
		return client
	}

	logging.Info("Connected to Redis", "addr", addr)
	return client
}
