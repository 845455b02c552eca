package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"

	"gtd-capture/pkg/response"
)

// clientLimiter keeps one token bucket per client IP. Idle clients age
// out of the LRU.
type clientLimiter struct {
	limiters *expirable.LRU[string, *rate.Limiter]
	rate     rate.Limit
	burst    int
}

func newClientLimiter(requestsPerMin int) *clientLimiter {
	burst := requestsPerMin / 10
	if burst < 1 {
		burst = 1
	}
	return &clientLimiter{
		limiters: expirable.NewLRU[string, *rate.Limiter](1000, nil, time.Minute*5),
		rate:     rate.Limit(float64(requestsPerMin) / 60.0),
		burst:    burst,
	}
}

func (cl *clientLimiter) allow(key string) bool {
	limiter, ok := cl.limiters.Get(key)
	if !ok {
		limiter = rate.NewLimiter(cl.rate, cl.burst)
		cl.limiters.Add(key, limiter)
	}
	return limiter.Allow()
}

// RateLimit rejects clients exceeding the per-minute budget with 429.
func (m Middleware) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.limiter == nil {
			c.Next()
			return
		}

		ip := c.ClientIP()
		if !m.limiter.allow(ip) {
			m.l.Warnf(c.Request.Context(), "RateLimit: rejecting %s", ip)
			response.TooManyRequests(c)
			c.Abort()
			return
		}
		c.Next()
	}
}
