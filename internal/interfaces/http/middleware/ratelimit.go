package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"tavern/internal/infrastructure/ratelimit"
	"tavern/internal/shared/utils"
)

// RateLimiter enforces per-IP request ceilings on the endpoints it wraps.
type RateLimiter struct {
	limiter ratelimit.RateLimiter
	limits  ratelimit.Limits
}

func NewRateLimiter(limiter ratelimit.RateLimiter, requestsPerMinute int) *RateLimiter {
	return &RateLimiter{
		limiter: limiter,
		limits:  ratelimit.Limits{RequestsPerMinute: requestsPerMinute},
	}
}

// Limit returns a Gin middleware that rate limits by client IP.
func (rl *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("ip:%s", c.ClientIP())

		allowed, err := rl.limiter.Allow(c.Request.Context(), key, rl.limits)
		if err != nil {
			// if Redis is unavailable, allow the request rather than block all traffic
			c.Next()
			return
		}

		if !allowed {
			utils.ErrorResponse(c, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
