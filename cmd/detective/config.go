// In file: cmd/detective/config.go
package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/dileep-u-k/code-detective/internal/llm"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultPort           = "8000"
	defaultMaxLines       = 150
	defaultRequestTimeout = 60 * time.Second
	defaultCacheTTL       = 24 * time.Hour
	defaultQuotaCooldown  = 60 * time.Second
)

// AnalyzerConfig controls how snippets are sent to the model.
type AnalyzerConfig struct {
	Model          string        `yaml:"model"`
	MaxLines       int           `yaml:"max_lines"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	Temperature    *float32      `yaml:"temperature"`
	MaxTokens      int           `yaml:"max_tokens"`
}

// CacheConfig controls how long LLM analyses are reused.
type CacheConfig struct {
	TTL time.Duration `yaml:"ttl"`
}

// QuotaConfig controls the cooldown applied after the model reports quota exhaustion.
type QuotaConfig struct {
	// Cooldown is used when the provider does not suggest a retry delay.
	Cooldown time.Duration `yaml:"cooldown"`
}

// AppConfig holds all configuration for the service, loaded from the environment and config.yaml.
type AppConfig struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Analyzer AnalyzerConfig `yaml:"analyzer"`
	Cache    CacheConfig    `yaml:"cache"`
	Quota    QuotaConfig    `yaml:"quota"`

	// Secrets and deployment wiring come from the environment only.
	GeminiAPIKey string `yaml:"-"`
	RedisAddr    string `yaml:"-"`
}

// LoadConfig loads configuration from a .env file, environment variables, and the YAML file at path.
func LoadConfig(path string) (*AppConfig, error) {
	// In Docker (GIN_MODE=release) configuration arrives as real environment variables.
	if os.Getenv("GIN_MODE") != "release" {
		if err := godotenv.Load(); err != nil {
			log.Println("WARNING: No .env file found for local development.")
		}
	}

	cfg := &AppConfig{}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	applyEnvOverrides(cfg)
	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *AppConfig) {
	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	if cfg.GeminiAPIKey == "" {
		cfg.GeminiAPIKey = os.Getenv("GOOGLE_API_KEY")
	}
	cfg.RedisAddr = os.Getenv("REDIS_ADDR")
	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Port = port
	}
	if model := os.Getenv("GEMINI_MODEL"); model != "" {
		cfg.Analyzer.Model = model
	}
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = defaultPort
	}
	if cfg.Analyzer.Model == "" {
		cfg.Analyzer.Model = llm.DefaultModel
	}
	if cfg.Analyzer.MaxLines == 0 {
		cfg.Analyzer.MaxLines = defaultMaxLines
	}
	if cfg.Analyzer.RequestTimeout == 0 {
		cfg.Analyzer.RequestTimeout = defaultRequestTimeout
	}
	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = defaultCacheTTL
	}
	if cfg.Quota.Cooldown == 0 {
		cfg.Quota.Cooldown = defaultQuotaCooldown
	}
}

func (cfg *AppConfig) validate() error {
	if cfg.GeminiAPIKey == "" {
		return errors.New("Gemini API key not found: set GEMINI_API_KEY or GOOGLE_API_KEY")
	}
	if cfg.Analyzer.MaxLines < 0 {
		return fmt.Errorf("analyzer.max_lines must be positive, got %d", cfg.Analyzer.MaxLines)
	}
	if cfg.Analyzer.RequestTimeout < 0 || cfg.Cache.TTL < 0 || cfg.Quota.Cooldown < 0 {
		return errors.New("durations in config must not be negative")
	}
	return nil
}
