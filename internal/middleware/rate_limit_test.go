package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestShardedRateLimiter_CheckRateLimit(t *testing.T) {
	rl := NewShardedRateLimiter(3, time.Minute, 4)
	defer rl.Stop()

	for i := 2; i >= 0; i-- {
		allowed, remaining := rl.checkRateLimit("10.0.0.1")
		assert.True(t, allowed)
		assert.Equal(t, i, remaining)
	}

	allowed, remaining := rl.checkRateLimit("10.0.0.1")
	assert.False(t, allowed)
	assert.Equal(t, 0, remaining)

	// A different identifier has its own budget.
	allowed, _ = rl.checkRateLimit("10.0.0.2")
	assert.True(t, allowed)
}

func TestShardedRateLimiter_WindowReset(t *testing.T) {
	rl := NewShardedRateLimiter(1, 30*time.Millisecond, 4)
	defer rl.Stop()

	allowed, _ := rl.checkRateLimit("10.0.0.1")
	assert.True(t, allowed)
	allowed, _ = rl.checkRateLimit("10.0.0.1")
	assert.False(t, allowed)

	time.Sleep(50 * time.Millisecond)

	allowed, _ = rl.checkRateLimit("10.0.0.1")
	assert.True(t, allowed)
}

func TestShardedRateLimiter_Middleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rl := NewShardedRateLimiter(2, time.Minute, 4)
	defer rl.Stop()

	router := gin.New()
	router.Use(RequestID(), rl.RateLimit())
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}
