// In file: cmd/detective/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dileep-u-k/code-detective/internal/intent"
	"github.com/dileep-u-k/code-detective/internal/llm"
	"github.com/dileep-u-k/code-detective/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// main is the composition root: it loads configuration, initializes all
// services, injects dependencies, and starts the server.
func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	buildInfo := GetBuildInfo()
	log.Printf("🚀 Starting Code Detective | Version: %s | Commit: %s", buildInfo.Version, buildInfo.GitCommit)

	// 1. LOAD CONFIGURATION
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := LoadConfig(configPath)
	if err != nil {
		log.Fatalf("❌ FATAL: Configuration Error: %v", err)
	}
	log.Println("✅ Configuration loaded.")

	// 2. INITIALIZE SERVICES
	ctx := context.Background()
	gemini, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.Analyzer.Model)
	if err != nil {
		log.Fatalf("❌ FATAL: %v", err)
	}
	defer gemini.Close()

	redisStore, rdb := initializeStore(ctx, cfg)
	if rdb != nil {
		defer rdb.Close()
	}

	// A nil *RedisStore must not reach the service as a non-nil interface.
	var serviceStore intent.Store
	var statsReader StatsReader
	if redisStore != nil {
		serviceStore = redisStore
		statsReader = redisStore
	}

	service := intent.NewService(gemini, serviceStore, intent.Config{
		ModelID:        cfg.Analyzer.Model,
		MaxLines:       cfg.Analyzer.MaxLines,
		RequestTimeout: cfg.Analyzer.RequestTimeout,
		CacheTTL:       cfg.Cache.TTL,
		QuotaCooldown:  cfg.Quota.Cooldown,
		Temperature:    cfg.Analyzer.Temperature,
		MaxTokens:      cfg.Analyzer.MaxTokens,
	})
	handler := NewDetectiveHandler(service, statsReader, cfg.Analyzer.MaxLines)
	log.Println("✅ All services initialized.")

	// 3. SETUP AND RUN THE WEB SERVER
	gin.SetMode(os.Getenv("GIN_MODE"))
	engine := gin.Default()
	handler.RegisterRoutes(engine)

	srv := &http.Server{Addr: fmt.Sprintf(":%s", cfg.Server.Port), Handler: engine}
	runServerWithGracefulShutdown(srv)
}

// initializeStore connects to Redis when REDIS_ADDR is set. Without Redis the
// service still works, only without caching, cooldowns and stats.
func initializeStore(ctx context.Context, cfg *AppConfig) (*store.RedisStore, *redis.Client) {
	if cfg.RedisAddr == "" {
		log.Println("WARNING: REDIS_ADDR not set. Running without result cache, quota cooldown and stats.")
		return nil, nil
	}
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if _, err := rdb.Ping(pingCtx).Result(); err != nil {
		log.Fatalf("❌ FATAL: Could not connect to Redis: %v", err)
	}
	log.Printf("✅ Connected to Redis at %s.", cfg.RedisAddr)
	return store.NewRedisStore(rdb), rdb
}

// runServerWithGracefulShutdown handles the server lifecycle.
func runServerWithGracefulShutdown(srv *http.Server) {
	go func() {
		log.Printf("👂 Code Detective is listening on http://localhost%s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ Listen error: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("❌ Server shutdown failed:", err)
	}

	log.Println("👋 Server exited gracefully.")
}
