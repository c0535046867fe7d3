// In file: internal/store/store.go

// Package store keeps the service's shared state in Redis: cached LLM analyses,
// per-model quota cooldowns and per-model outcome counters.
package store

import (
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	quotaKeyPrefix = "quota:"
	statsKeyPrefix = "stats:"
)

// RedisStore is safe for concurrent use; all state lives in Redis.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func quotaKey(modelID string) string {
	return quotaKeyPrefix + modelID
}

func statsKey(modelID string) string {
	return fmt.Sprintf("%s%s", statsKeyPrefix, modelID)
}
