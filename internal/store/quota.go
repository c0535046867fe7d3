// In file: internal/store/quota.go
package store

import (
	"context"
	"log"
	"time"
)

// MarkQuotaExhausted opens a cooldown window for a model. While it is open the
// service skips the LLM and answers from the fallback analyzer.
func (s *RedisStore) MarkQuotaExhausted(ctx context.Context, modelID string, cooldown time.Duration) {
	if cooldown <= 0 {
		return
	}
	if err := s.rdb.Set(ctx, quotaKey(modelID), time.Now().UTC().Format(time.RFC3339), cooldown).Err(); err != nil {
		log.Printf("WARNING: Failed to record quota cooldown for %s: %v", modelID, err)
	}
}

// QuotaCooldown returns the time left in a model's cooldown window, if one is open.
func (s *RedisStore) QuotaCooldown(ctx context.Context, modelID string) (time.Duration, bool) {
	ttl, err := s.rdb.TTL(ctx, quotaKey(modelID)).Result()
	if err != nil {
		log.Printf("Redis TTL error for quota key of %s: %v", modelID, err)
		return 0, false
	}
	// Redis reports missing keys and keys without expiry as negative TTLs.
	if ttl <= 0 {
		return 0, false
	}
	return ttl, true
}
