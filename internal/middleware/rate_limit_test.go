// internal/middleware/rate_limit_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func TestRateLimiterBurstThenDeny(t *testing.T) {
	rl := NewRateLimiter(rate.Every(time.Minute), 2)
	limiter := rl.getVisitor("10.0.0.1")

	// The burst is spent immediately; refill is one token per minute.
	assert.True(t, limiter.Allow())
	assert.True(t, limiter.Allow())
	assert.False(t, limiter.Allow())
}

func TestRateLimiterPerVisitor(t *testing.T) {
	rl := NewRateLimiter(rate.Every(time.Minute), 1)

	assert.True(t, rl.getVisitor("10.0.0.1").Allow())
	assert.False(t, rl.getVisitor("10.0.0.1").Allow())
	assert.True(t, rl.getVisitor("10.0.0.2").Allow())
}

func TestRateLimiterMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rl := NewRateLimiter(rate.Every(time.Minute), 1)

	r := gin.New()
	r.Use(rl.Middleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"message":"Rate limit exceeded. Please try again later."}`, w.Body.String())
}
