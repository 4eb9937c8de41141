package app

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"task-api/internal/config"
)

var globalRedisClient *redis.Client

// MustConnectRedis connects the optional list cache. When REDIS_ADDR
// is not set, the service runs without caching.
func MustConnectRedis() {
	cfg := config.Global().Redis
	if cfg.Addr == "" {
		globalLogger.Info().Msg("redis not configured, list cache disabled")
		return
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err := client.Ping(ctx).Err()
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to ping redis")
		panic(err)
	}

	globalRedisClient = client
	globalLogger.Info().
		Str("addr", cfg.Addr).
		Msg("connected to redis")
}

func DisconnectRedis() {
	if globalRedisClient == nil {
		return
	}

	err := globalRedisClient.Close()
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to disconnect from redis")
		return
	}
	globalLogger.Info().Msg("disconnected from redis")
}
