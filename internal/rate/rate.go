package rate

import (
	"context"
	"sync"

	"golang.org/x/time/rate"

	"marketgate/logger"
)

// Guard paces private (signed) request dispatch per credential set. Most
// exchanges charge a rejected signature against the same quota as a valid
// request, so signing is only worth doing when a slot is available.
type Guard struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter

	perSecond rate.Limit
	burst     int
}

func NewGuard(requestsPerSecond float64, burst int) *Guard {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 5
	}
	if burst <= 0 {
		burst = 1
	}
	return &Guard{
		limiters:  make(map[string]*rate.Limiter),
		perSecond: rate.Limit(requestsPerSecond),
		burst:     burst,
	}
}

// Wait blocks until the credential identified by key may dispatch another
// signed request, or the context is cancelled.
func (g *Guard) Wait(ctx context.Context, key string) error {
	return g.limiter(key).Wait(ctx)
}

// Allow reports whether a signed request may dispatch immediately.
func (g *Guard) Allow(key string) bool {
	return g.limiter(key).Allow()
}

func (g *Guard) limiter(key string) *rate.Limiter {
	g.mu.Lock()
	defer g.mu.Unlock()
	l, ok := g.limiters[key]
	if !ok {
		l = rate.NewLimiter(g.perSecond, g.burst)
		g.limiters[key] = l
	}
	return l
}

// ReportExceeded records a quota rejection reported by an exchange so the
// metric lands in CloudWatch alongside the log entry.
func ReportExceeded(log *logger.Log, exchange, key string) {
	l := log.WithComponent("rate_guard")
	fields := logger.Fields{
		"exchange":   exchange,
		"credential": key,
	}
	l.LogMetric("rate_guard", "rate_limit_exceeded", int64(1), "counter", fields)
	l.WithFields(fields).Warn("rate limit exceeded")
}
