// In file: internal/intent/service.go

// Package intent answers "what was this code trying to do?". It asks the LLM
// first and falls back to the deterministic detective analyzer when the
// model's quota is exhausted.
package intent

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/dileep-u-k/code-detective/internal/api"
	"github.com/dileep-u-k/code-detective/internal/detective"
	"github.com/dileep-u-k/code-detective/internal/llm"
	"github.com/dileep-u-k/code-detective/internal/store"
	cacheversion "github.com/dileep-u-k/code-detective/internal/version"
)

const cachePrefix = "intentcache"

// Store is the shared state the service uses. Implementations must never let a
// storage failure surface as an error; a broken store only costs caching.
type Store interface {
	GetResult(ctx context.Context, key string) (*api.AnalysisResult, bool)
	SetResult(ctx context.Context, key string, result *api.AnalysisResult, ttl time.Duration)
	MarkQuotaExhausted(ctx context.Context, modelID string, cooldown time.Duration)
	QuotaCooldown(ctx context.Context, modelID string) (time.Duration, bool)
	RecordOutcome(ctx context.Context, modelID string, outcome store.Outcome)
	RecordSuccess(ctx context.Context, modelID string, latency time.Duration, promptTokens, completionTokens int)
}

// Config tunes the service.
type Config struct {
	ModelID        string
	MaxLines       int
	RequestTimeout time.Duration
	CacheTTL       time.Duration
	QuotaCooldown  time.Duration
	Temperature    *float32
	MaxTokens      int
}

// Service is safe for concurrent use.
type Service struct {
	client llm.LLMClient
	store  Store
	config Config
}

// NewService wires the service. st may be nil, which disables caching,
// cooldowns and stats.
func NewService(client llm.LLMClient, st Store, config Config) *Service {
	if config.ModelID == "" {
		config.ModelID = llm.DefaultModel
	}
	return &Service{client: client, store: st, config: config}
}

// ModelID is the model the service sends analyses to.
func (s *Service) ModelID() string {
	return s.config.ModelID
}

// Analyze returns the intent analysis for a snippet. Quota exhaustion is not an
// error: the fallback result is returned instead. Any other LLM failure is.
func (s *Service) Analyze(ctx context.Context, code, language string) (*api.AnalysisResult, error) {
	language = strings.TrimSpace(language)
	cacheKey := cacheversion.GenerateVersionedCacheKey(cachePrefix, strings.ToLower(language), code)

	if s.store != nil {
		if cached, found := s.store.GetResult(ctx, cacheKey); found {
			log.Println("✅ Cache HIT")
			s.store.RecordOutcome(ctx, s.config.ModelID, store.OutcomeCacheHit)
			return cached, nil
		}
		if left, open := s.store.QuotaCooldown(ctx, s.config.ModelID); open {
			log.Printf("⏳ Quota cooldown for %s (%s left). Using fallback analyzer.", s.config.ModelID, left.Round(time.Second))
			return s.fallback(ctx, code, language), nil
		}
	}

	startTime := time.Now()
	result, usage, err := s.analyzeWithLLM(ctx, code, language)
	if err != nil {
		if llm.IsQuotaExhausted(err) {
			log.Printf("🚨 Quota exhausted for %s: %v", s.config.ModelID, err)
			s.openCooldown(ctx, err)
			return s.fallback(ctx, code, language), nil
		}
		if s.store != nil {
			s.store.RecordOutcome(ctx, s.config.ModelID, store.OutcomeFailure)
		}
		return nil, err
	}

	if s.store != nil {
		s.store.RecordSuccess(ctx, s.config.ModelID, time.Since(startTime), usage.PromptTokens, usage.CompletionTokens)
		s.store.SetResult(ctx, cacheKey, result, s.config.CacheTTL)
	}
	return result, nil
}

func (s *Service) analyzeWithLLM(ctx context.Context, code, language string) (*api.AnalysisResult, llm.Usage, error) {
	if s.client == nil {
		return nil, llm.Usage{}, fmt.Errorf("no LLM client configured for model %s", s.config.ModelID)
	}
	if s.config.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.RequestTimeout)
		defer cancel()
	}

	messages := llm.BuildAnalysisMessages(language, code, s.config.MaxLines)
	genConfig := &llm.GenerationConfig{
		Model:       s.config.ModelID,
		Temperature: s.config.Temperature,
		MaxTokens:   s.config.MaxTokens,
		JSONOutput:  true,
	}

	gen, err := s.client.Generate(ctx, messages, genConfig)
	if err != nil {
		return nil, llm.Usage{}, fmt.Errorf("LLM generation failed for model %s: %w", s.config.ModelID, err)
	}

	var result api.AnalysisResult
	if err := llm.ExtractJSON(gen.Content, &result); err != nil {
		return nil, gen.Usage, fmt.Errorf("model %s returned an unusable analysis: %w", s.config.ModelID, err)
	}
	result.AIUsed = true
	result.Normalize()
	return &result, gen.Usage, nil
}

func (s *Service) openCooldown(ctx context.Context, err error) {
	if s.store == nil {
		return
	}
	s.store.RecordOutcome(ctx, s.config.ModelID, store.OutcomeQuotaExhausted)
	cooldown := llm.ExtractRetryDelay(err)
	if cooldown <= 0 {
		cooldown = s.config.QuotaCooldown
	}
	s.store.MarkQuotaExhausted(ctx, s.config.ModelID, cooldown)
}

// fallback results are never cached, so the LLM is retried once quota returns.
func (s *Service) fallback(ctx context.Context, code, language string) *api.AnalysisResult {
	if s.store != nil {
		s.store.RecordOutcome(ctx, s.config.ModelID, store.OutcomeFallback)
	}
	return detective.Analyze(code, language)
}
