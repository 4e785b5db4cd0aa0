package http

import (
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// rateLimiter throttles mutating requests per client IP over a fixed window.
// Reads are never throttled; the view and summary pages poll their partials
// and must stay cheap.
type rateLimiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	clients map[string]*clientWindow

	stopCleanup chan struct{}
	stopOnce    sync.Once
}

// clientWindow counts requests since the start of a client's current window.
type clientWindow struct {
	windowStart time.Time
	count       int
}

// newRateLimiter allows up to limit mutating requests per window for each
// client IP. A background goroutine drops clients idle for several windows.
func newRateLimiter(limit int, window time.Duration) *rateLimiter {
	rl := &rateLimiter{
		limit:       limit,
		window:      window,
		clients:     make(map[string]*clientWindow),
		stopCleanup: make(chan struct{}),
	}
	go rl.runCleanup(5 * window)
	return rl
}

func (rl *rateLimiter) runCleanup(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.dropIdleClients()
		case <-rl.stopCleanup:
			return
		}
	}
}

// dropIdleClients forgets clients whose window ended long ago.
func (rl *rateLimiter) dropIdleClients() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-10 * rl.window)
	for ip, c := range rl.clients {
		if c.windowStart.Before(cutoff) {
			delete(rl.clients, ip)
		}
	}
}

// stop shuts down the cleanup goroutine.
func (rl *rateLimiter) stop() {
	rl.stopOnce.Do(func() {
		close(rl.stopCleanup)
	})
}

// allowRequest reports whether the request may proceed. Only POST and DELETE
// count against the limit; everything else passes through untouched.
func (rl *rateLimiter) allowRequest(method, clientIP string, metrics *securityMetrics) bool {
	if method != http.MethodPost && method != http.MethodDelete {
		return true
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	c, exists := rl.clients[clientIP]
	if !exists || now.Sub(c.windowStart) >= rl.window {
		rl.clients[clientIP] = &clientWindow{windowStart: now, count: 1}
		return true
	}

	c.count++
	if c.count > rl.limit {
		if metrics != nil {
			atomic.AddInt64(&metrics.rateLimitHits, 1)
		}
		return false
	}
	return true
}
