package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimiter is a single process-wide token bucket. It protects the
// provider quota, it does not separate clients.
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter allows perSecond requests with bursts of bucketSize
func NewRateLimiter(perSecond float64, bucketSize int) *RateLimiter {
	if bucketSize < 1 {
		bucketSize = 1
	}
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(perSecond), bucketSize),
	}
}

// RateLimit rejects requests with 429 once the bucket is empty
func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded. Please try again later.",
			})
			return
		}

		c.Next()
	}
}
