// In file: internal/store/cache.go
package store

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/dileep-u-k/code-detective/internal/api"

	"github.com/redis/go-redis/v9"
)

// GetResult looks up a cached analysis. Redis or decode errors are logged and
// reported as a miss.
func (s *RedisStore) GetResult(ctx context.Context, key string) (*api.AnalysisResult, bool) {
	val, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	} else if err != nil {
		log.Printf("Redis GET error for result cache: %v", err)
		return nil, false
	}

	var result api.AnalysisResult
	if err := json.Unmarshal(val, &result); err != nil {
		log.Printf("Error unmarshalling cached result %s: %v", key, err)
		return nil, false
	}
	return &result, true
}

// SetResult stores an analysis for ttl.
func (s *RedisStore) SetResult(ctx context.Context, key string, result *api.AnalysisResult, ttl time.Duration) {
	payload, err := json.Marshal(result)
	if err != nil {
		log.Printf("WARNING: Failed to marshal result for caching: %v", err)
		return
	}
	if err := s.rdb.Set(ctx, key, payload, ttl).Err(); err != nil {
		log.Printf("Redis SET error for result cache: %v", err)
	}
}
