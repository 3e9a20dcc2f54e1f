package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seo-optimizer/llm-service/logging"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func perform(r http.Handler, method, path string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for key, values := range header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body["error"]
}

func TestErrorHandler(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), ErrorHandler(discardLogger()))
	r.GET("/panic", func(c *gin.Context) {
		panic("scorer exploded")
	})
	r.GET("/error", func(c *gin.Context) {
		c.Error(errors.New("provider misconfigured"))
	})
	r.GET("/ok", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	w := perform(r, http.MethodGet, "/panic", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "scorer exploded", decodeError(t, w))

	w = perform(r, http.MethodGet, "/error", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "provider misconfigured", decodeError(t, w))

	w = perform(r, http.MethodGet, "/ok", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimiter(t *testing.T) {
	limiter := NewRateLimiter(0.001, 2)

	r := gin.New()
	r.Use(limiter.RateLimit())
	r.GET("/generate", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	assert.Equal(t, http.StatusOK, perform(r, http.MethodGet, "/generate", nil).Code)
	assert.Equal(t, http.StatusOK, perform(r, http.MethodGet, "/generate", nil).Code)

	w := perform(r, http.MethodGet, "/generate", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, decodeError(t, w), "Rate limit exceeded")
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(RequestIDKey))
	})

	w := perform(r, http.MethodGet, "/", nil)
	id := w.Header().Get(RequestIDHeader)
	_, err := uuid.Parse(id)
	assert.NoError(t, err)
	assert.Equal(t, id, w.Body.String())

	w = perform(r, http.MethodGet, "/", http.Header{RequestIDHeader: {"abc-123"}})
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS())
	r.POST("/analyze-seo", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := perform(r, http.MethodOptions, "/analyze-seo", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetrics(t *testing.T) {
	metrics := NewMetrics()

	r := gin.New()
	r.Use(metrics.Instrument())
	r.GET("/health", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.GET("/metrics", metrics.Handler())

	perform(r, http.MethodGet, "/health", nil)
	metrics.ObserveGeneration("keywords", "fallback")
	metrics.ObserveScore(55.5)

	w := perform(r, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `seo_http_requests_total{route="/health",status="200"} 1`)
	assert.Contains(t, body, `seo_generations_total{source="fallback",task="keywords"} 1`)
	assert.Contains(t, body, "seo_overall_score_count 1")

	// a second instance must not clash with the first registration
	assert.NotPanics(t, func() { NewMetrics() })
}

func TestStatsMiddleware(t *testing.T) {
	stats := logging.NewStatistics(true)

	r := gin.New()
	r.Use(StatsMiddleware(stats))
	r.POST("/analyze-seo", func(c *gin.Context) {
		c.Status(http.StatusBadRequest)
	})

	perform(r, http.MethodPost, "/analyze-seo", nil)
	perform(r, http.MethodGet, "/nowhere", nil)

	assert.Equal(t, 2, stats.TotalRequests())
	assert.InDelta(t, 100.0, stats.GetErrorRate(), 1e-9)

	endpoints := stats.GetPopularEndpoints(5)
	names := make([]string, 0, len(endpoints))
	for _, e := range endpoints {
		names = append(names, e.Endpoint)
	}
	assert.Equal(t, "GET unmatched,POST /analyze-seo", strings.Join(names, ","))
}
