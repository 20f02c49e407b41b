package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// stubLimiter scripts the admit decision and records the keys it was asked
// about.
type stubLimiter struct {
	allowed    bool
	retryAfter time.Duration
	err        error
	keys       []string
}

func (s *stubLimiter) CheckLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, time.Duration, error) {
	s.keys = append(s.keys, key)
	return s.allowed, s.retryAfter, s.err
}

func setupRateLimitedRouter(limiter *stubLimiter, scope string, limit int, window time.Duration) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(ErrorHandler())
	router.Use(RateLimiter(limiter, scope, limit, window))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	return router
}

func TestRateLimiter(t *testing.T) {
	t.Run("admits allowed requests", func(t *testing.T) {
		limiter := &stubLimiter{allowed: true}
		router := setupRateLimitedRouter(limiter, ScopeAPI, 100, 15*time.Minute)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/test", nil)
		req.RemoteAddr = "192.0.2.1:1234"
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("rejects with 429 and scope message", func(t *testing.T) {
		limiter := &stubLimiter{allowed: false, retryAfter: 30 * time.Minute}
		router := setupRateLimitedRouter(limiter, ScopeContact, 5, time.Hour)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/test", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Contains(t, w.Body.String(), "Too many contact form submissions")
		assert.Equal(t, "1800", w.Header().Get("Retry-After"))
		assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	})

	t.Run("general scope uses its own message", func(t *testing.T) {
		limiter := &stubLimiter{allowed: false, retryAfter: time.Minute}
		router := setupRateLimitedRouter(limiter, ScopeAPI, 100, 15*time.Minute)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/test", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Contains(t, w.Body.String(), "Too many requests from this IP")
	})

	t.Run("keys counters by scope and client address", func(t *testing.T) {
		limiter := &stubLimiter{allowed: true}
		router := setupRateLimitedRouter(limiter, ScopeContact, 5, time.Hour)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/test", nil)
		req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
		router.ServeHTTP(w, req)

		assert.Equal(t, []string{"contact:203.0.113.7"}, limiter.keys)
	})

	t.Run("fails open when limiter is unavailable", func(t *testing.T) {
		limiter := &stubLimiter{err: assert.AnError}
		router := setupRateLimitedRouter(limiter, ScopeAPI, 100, 15*time.Minute)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/test", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
