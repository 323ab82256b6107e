// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"jetset/config"

	"github.com/go-redis/redis/v8"
)

var (
	// DraftCacheClient backs the Redis booking draft store.
	DraftCacheClient *redis.Client
	// RouterCacheClient holds router stickiness state and summary context.
	RouterCacheClient *redis.Client
)

// InitDraftCache initializes the Redis client for booking drafts.
func InitDraftCache() {
	DraftCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisDraftDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := DraftCacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Drafts): %v", err)
	}
}

// GetDraftCacheClient returns the draft cache client.
func GetDraftCacheClient() *redis.Client {
	if DraftCacheClient == nil {
		InitDraftCache()
	}
	return DraftCacheClient
}

// InitRouterCache initializes the Redis client for router/assistant state.
func InitRouterCache() {
	RouterCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisRouterDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := RouterCacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Router): %v", err)
	}
}

// GetRouterCacheClient returns the router state client.
func GetRouterCacheClient() *redis.Client {
	if RouterCacheClient == nil {
		InitRouterCache()
	}
	return RouterCacheClient
}
