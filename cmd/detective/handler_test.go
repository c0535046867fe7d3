package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dileep-u-k/code-detective/internal/api"
	"github.com/dileep-u-k/code-detective/internal/detective"
	"github.com/dileep-u-k/code-detective/internal/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubAnalyzer struct {
	err          error
	gotCode      string
	gotLanguage  string
	calls        int
	resultFromFn func(code, language string) *api.AnalysisResult
}

func (s *stubAnalyzer) Analyze(_ context.Context, code, language string) (*api.AnalysisResult, error) {
	s.calls++
	s.gotCode, s.gotLanguage = code, language
	if s.err != nil {
		return nil, s.err
	}
	return s.resultFromFn(code, language), nil
}

func (s *stubAnalyzer) ModelID() string { return "gemini-test" }

type stubStats struct {
	err error
}

func (s stubStats) GetStats(_ context.Context, modelID string) (*store.ModelStats, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &store.ModelStats{ModelID: modelID, Fallbacks: 3}, nil
}

func newTestRouter(a Analyzer, stats StatsReader) *gin.Engine {
	router := gin.New()
	NewDetectiveHandler(a, stats, 150).RegisterRoutes(router)
	return router
}

func fallbackAnalyzer() *stubAnalyzer {
	return &stubAnalyzer{resultFromFn: detective.Analyze}
}

func postAnalyze(router *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/analyze", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

// =============================================================================
// Root
// =============================================================================

func TestHandleRoot(t *testing.T) {
	router := newTestRouter(fallbackAnalyzer(), nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok": true, "message": "The API is running"}`, w.Body.String())
}

// =============================================================================
// Analyze
// =============================================================================

func TestHandleAnalyze_ReturnsResultVerbatim(t *testing.T) {
	analyzer := fallbackAnalyzer()
	router := newTestRouter(analyzer, nil)

	w := postAnalyze(router, `{"code": "x = d[\"k\"] / 0", "language": "Python"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `x = d["k"] / 0`, analyzer.gotCode)
	assert.Equal(t, "Python", analyzer.gotLanguage)

	var got api.AnalysisResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, detective.Analyze(`x = d["k"] / 0`, "Python"), &got)
	assert.Equal(t, "python", got.LanguageDetected)
}

func TestHandleAnalyze_NullLanguage(t *testing.T) {
	analyzer := fallbackAnalyzer()
	router := newTestRouter(analyzer, nil)

	w := postAnalyze(router, `{"code": "const x = () => 1;", "language": null}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "", analyzer.gotLanguage)
	assert.Contains(t, w.Body.String(), `"language_detected":"javascript"`)
}

func TestHandleAnalyze_EmptyCodeIsAllowed(t *testing.T) {
	router := newTestRouter(fallbackAnalyzer(), nil)

	w := postAnalyze(router, `{"code": ""}`)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandleAnalyze_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing code", `{"language": "go"}`},
		{"malformed json", `{"code": `},
		{"wrong type", `{"code": 42}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analyzer := fallbackAnalyzer()
			router := newTestRouter(analyzer, nil)

			w := postAnalyze(router, tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), `"detail"`)
			assert.Zero(t, analyzer.calls)
		})
	}
}

func TestHandleAnalyze_LineLimit(t *testing.T) {
	analyzer := fallbackAnalyzer()
	router := newTestRouter(analyzer, nil)

	atLimit, _ := json.Marshal(map[string]string{"code": strings.Repeat("x = 1\n", 150)})
	w := postAnalyze(router, string(atLimit))
	assert.Equal(t, http.StatusOK, w.Code)

	overLimit, _ := json.Marshal(map[string]string{"code": strings.Repeat("x = 1\n", 151)})
	w = postAnalyze(router, string(overLimit))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"detail": "Code exceeds 150 lines limit"}`, w.Body.String())
	assert.Equal(t, 1, analyzer.calls)
}

func TestHandleAnalyze_AnalyzerErrorIs500(t *testing.T) {
	router := newTestRouter(&stubAnalyzer{err: errors.New("LLM generation failed: permission denied")}, nil)

	w := postAnalyze(router, `{"code": "x = 1"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"detail": "LLM generation failed: permission denied"}`, w.Body.String())
}

// =============================================================================
// Stats & Version
// =============================================================================

func TestHandleStats(t *testing.T) {
	router := newTestRouter(fallbackAnalyzer(), stubStats{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/stats", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var stats store.ModelStats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, "gemini-test", stats.ModelID)
	assert.Equal(t, int64(3), stats.Fallbacks)
}

func TestHandleStats_Unavailable(t *testing.T) {
	router := newTestRouter(fallbackAnalyzer(), nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/stats", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestHandleStats_Error(t *testing.T) {
	router := newTestRouter(fallbackAnalyzer(), stubStats{err: errors.New("redis down")})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/stats", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestHandleVersion(t *testing.T) {
	router := newTestRouter(fallbackAnalyzer(), nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/version", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"version":"dev"`)
	assert.Contains(t, w.Body.String(), `"go_version"`)
}

func TestCountLines(t *testing.T) {
	assert.Equal(t, 0, countLines(""))
	assert.Equal(t, 1, countLines("a"))
	assert.Equal(t, 1, countLines("a\n"))
	assert.Equal(t, 2, countLines("a\nb"))
	assert.Equal(t, 2, countLines("a\r\nb\r\n"))
	assert.Equal(t, 3, countLines("\n\n\n"))
	assert.Equal(t, 2, countLines("a\rb"))
	assert.Equal(t, 3, countLines("a\r\rb\r"))
	assert.Equal(t, 3, countLines("a\vb\fc"))
	assert.Equal(t, 3, countLines("a\u2028b\u2029c\u0085"))
	assert.Equal(t, 4, countLines("a\x1cb\x1dc\x1ed"))
}

func TestHandleAnalyze_LineLimitCountsCarriageReturns(t *testing.T) {
	analyzer := fallbackAnalyzer()
	router := newTestRouter(analyzer, nil)

	body, _ := json.Marshal(map[string]string{"code": strings.Repeat("x = 1\r", 200)})
	w := postAnalyze(router, string(body))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"detail": "Code exceeds 150 lines limit"}`, w.Body.String())
	assert.Zero(t, analyzer.calls)
}
