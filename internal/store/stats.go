// In file: internal/store/stats.go
package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Outcome names one counter in a model's stats hash.
type Outcome string

const (
	OutcomeSuccess        Outcome = "successes"
	OutcomeFailure        Outcome = "failures"
	OutcomeQuotaExhausted Outcome = "quota_exhausted"
	OutcomeFallback       Outcome = "fallbacks"
	OutcomeCacheHit       Outcome = "cache_hits"
)

// latencyAlpha weights the newest sample in the latency moving average.
const latencyAlpha = 0.1

// ModelStats is the aggregated request history of one model.
type ModelStats struct {
	ModelID           string    `json:"model_id"`
	Successes         int64     `json:"successes"`
	Failures          int64     `json:"failures"`
	QuotaExhausted    int64     `json:"quota_exhausted"`
	Fallbacks         int64     `json:"fallbacks"`
	CacheHits         int64     `json:"cache_hits"`
	AvgLatencyMS      int64     `json:"avg_latency_ms"`
	TotalInputTokens  int64     `json:"total_input_tokens"`
	TotalOutputTokens int64     `json:"total_output_tokens"`
	LastUpdated       time.Time `json:"last_updated"`
}

// RecordOutcome increments one counter for a model.
func (s *RedisStore) RecordOutcome(ctx context.Context, modelID string, outcome Outcome) {
	key := statsKey(modelID)
	pipe := s.rdb.Pipeline()
	pipe.HIncrBy(ctx, key, string(outcome), 1)
	pipe.HSet(ctx, key, "last_updated", time.Now().UTC().Format(time.RFC3339Nano))
	if _, err := pipe.Exec(ctx); err != nil {
		log.Printf("Error recording %s for %s: %v", outcome, modelID, err)
	}
}

// RecordSuccess counts a successful LLM call and folds its latency and token
// usage into the model's stats.
func (s *RedisStore) RecordSuccess(ctx context.Context, modelID string, latency time.Duration, promptTokens, completionTokens int) {
	key := statsKey(modelID)

	err := s.rdb.Watch(ctx, func(tx *redis.Tx) error {
		currentStr, err := tx.HGet(ctx, key, "avg_latency_ms").Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		newLatency := latency.Milliseconds()
		if current, parseErr := strconv.ParseInt(currentStr, 10, 64); parseErr == nil {
			newLatency = int64(latencyAlpha*float64(latency.Milliseconds()) + (1.0-latencyAlpha)*float64(current))
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, "avg_latency_ms", newLatency)
			return nil
		})
		return err
	}, key)
	if err != nil {
		log.Printf("Error updating latency for %s: %v", modelID, err)
	}

	pipe := s.rdb.Pipeline()
	pipe.HIncrBy(ctx, key, string(OutcomeSuccess), 1)
	pipe.HIncrBy(ctx, key, "total_input_tokens", int64(promptTokens))
	pipe.HIncrBy(ctx, key, "total_output_tokens", int64(completionTokens))
	pipe.HSet(ctx, key, "last_updated", time.Now().UTC().Format(time.RFC3339Nano))
	if _, err := pipe.Exec(ctx); err != nil {
		log.Printf("Error in success update pipeline for %s: %v", modelID, err)
	}
}

// GetStats reads a model's stats. A model with no history yields zeroed stats.
func (s *RedisStore) GetStats(ctx context.Context, modelID string) (*ModelStats, error) {
	data, err := s.rdb.HGetAll(ctx, statsKey(modelID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read stats for %s: %w", modelID, err)
	}

	stats := &ModelStats{ModelID: modelID}
	stats.Successes, _ = strconv.ParseInt(data[string(OutcomeSuccess)], 10, 64)
	stats.Failures, _ = strconv.ParseInt(data[string(OutcomeFailure)], 10, 64)
	stats.QuotaExhausted, _ = strconv.ParseInt(data[string(OutcomeQuotaExhausted)], 10, 64)
	stats.Fallbacks, _ = strconv.ParseInt(data[string(OutcomeFallback)], 10, 64)
	stats.CacheHits, _ = strconv.ParseInt(data[string(OutcomeCacheHit)], 10, 64)
	stats.AvgLatencyMS, _ = strconv.ParseInt(data["avg_latency_ms"], 10, 64)
	stats.TotalInputTokens, _ = strconv.ParseInt(data["total_input_tokens"], 10, 64)
	stats.TotalOutputTokens, _ = strconv.ParseInt(data["total_output_tokens"], 10, 64)
	stats.LastUpdated, _ = time.Parse(time.RFC3339Nano, data["last_updated"])
	return stats, nil
}
