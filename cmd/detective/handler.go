// In file: cmd/detective/handler.go
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/dileep-u-k/code-detective/internal/api"
	"github.com/dileep-u-k/code-detective/internal/store"

	"github.com/gin-gonic/gin"
)

// Analyzer produces an intent analysis. *intent.Service is the production implementation.
type Analyzer interface {
	Analyze(ctx context.Context, code, language string) (*api.AnalysisResult, error)
	ModelID() string
}

// StatsReader exposes per-model counters. *store.RedisStore is the production implementation.
type StatsReader interface {
	GetStats(ctx context.Context, modelID string) (*store.ModelStats, error)
}

type DetectiveHandler struct {
	analyzer Analyzer
	stats    StatsReader
	maxLines int
}

// NewDetectiveHandler builds the HTTP handlers. stats may be nil when Redis is not configured.
func NewDetectiveHandler(analyzer Analyzer, stats StatsReader, maxLines int) *DetectiveHandler {
	return &DetectiveHandler{analyzer: analyzer, stats: stats, maxLines: maxLines}
}

// RegisterRoutes mounts every endpoint on the engine.
func (h *DetectiveHandler) RegisterRoutes(engine *gin.Engine) {
	engine.GET("/", h.HandleRoot)
	engine.POST("/analyze", h.HandleAnalyze)
	engine.GET("/stats", h.HandleStats)
	engine.GET("/version", h.HandleVersion)
}

func (h *DetectiveHandler) HandleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "message": "The API is running"})
}

func (h *DetectiveHandler) HandleAnalyze(c *gin.Context) {
	startTime := time.Now()
	var req api.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Detail: "Invalid request: " + err.Error()})
		return
	}

	code := *req.Code
	if countLines(code) > h.maxLines {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Detail: fmt.Sprintf("Code exceeds %d lines limit", h.maxLines)})
		return
	}

	var language string
	if req.Language != nil {
		language = *req.Language
	}
	log.Printf("--- New Analysis (Language: %q, Lines: %d) ---", language, countLines(code))

	result, err := h.analyzer.Analyze(c.Request.Context(), code, language)
	if err != nil {
		log.Printf("❌ Analysis failed: %v", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Detail: err.Error()})
		return
	}

	log.Printf("✅ Analysis done (AI used: %v) in %dms", result.AIUsed, time.Since(startTime).Milliseconds())
	c.JSON(http.StatusOK, result)
}

func (h *DetectiveHandler) HandleStats(c *gin.Context) {
	if h.stats == nil {
		c.JSON(http.StatusServiceUnavailable, api.ErrorResponse{Detail: "stats require Redis (set REDIS_ADDR)"})
		return
	}
	stats, err := h.stats.GetStats(c.Request.Context(), h.analyzer.ModelID())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Detail: err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *DetectiveHandler) HandleVersion(c *gin.Context) {
	c.JSON(http.StatusOK, GetBuildInfo())
}

// countLines counts lines the way a text editor does: a trailing line break
// does not start a new line and empty input has no lines. Besides \n, a lone
// \r, \r\n and the Unicode line and paragraph separators all end a line.
func countLines(code string) int {
	n := 0
	open := false
	prevCR := false
	for _, r := range code {
		if r == '\n' && prevCR {
			prevCR = false
			continue
		}
		prevCR = r == '\r'
		if isLineBreak(r) {
			n++
			open = false
			continue
		}
		open = true
	}
	if open {
		n++
	}
	return n
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}
