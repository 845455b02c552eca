package middleware

import (
	"gtd-capture/pkg/log"
)

// Middleware bundles the HTTP middlewares shared across routes.
type Middleware struct {
	l       log.Logger
	limiter *clientLimiter
}

// New creates the middleware set. requestsPerMin bounds each client IP;
// zero disables rate limiting.
func New(l log.Logger, requestsPerMin int) Middleware {
	var limiter *clientLimiter
	if requestsPerMin > 0 {
		limiter = newClientLimiter(requestsPerMin)
	}
	return Middleware{
		l:       l,
		limiter: limiter,
	}
}
