package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/lifehubapp/backend/internal/httputil"
	"github.com/lifehubapp/backend/internal/metrics"
)

const sweepInterval = time.Minute

type rateEntry struct {
	count int
	reset time.Time
}

// RateLimiter is a per-client sliding-window request counter. State lives in
// process memory only: each server instance counts independently and nothing
// survives a restart.
type RateLimiter struct {
	window   time.Duration
	max      int
	disabled bool

	mu      sync.Mutex
	entries map[string]*rateEntry

	now  func() time.Time
	stop chan struct{}
}

// NewRateLimiter creates a limiter allowing max requests per window per
// client key. When disabled is true the limiter allows everything, so
// automated tests are not throttled.
func NewRateLimiter(window time.Duration, max int, disabled bool) *RateLimiter {
	return &RateLimiter{
		window:   window,
		max:      max,
		disabled: disabled,
		entries:  make(map[string]*rateEntry),
		now:      time.Now,
		stop:     make(chan struct{}),
	}
}

// clientKey buckets requests by forwarded address. Clients without the
// header all share the "unknown" bucket; that is an accepted limitation.
func clientKey(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			return strings.TrimSpace(fwd[:i])
		}
		return strings.TrimSpace(fwd)
	}
	return "unknown"
}

// allow applies the window state machine for one request from key.
// It returns whether the request may proceed and how many requests remain.
func (l *RateLimiter) allow(key string) (bool, int) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[key]
	if !ok || !now.Before(e.reset) {
		l.entries[key] = &rateEntry{count: 1, reset: now.Add(l.window)}
		return true, l.max - 1
	}
	if e.count >= l.max {
		return false, 0
	}
	e.count++
	return true, l.max - e.count
}

// Handler wraps next with rate limiting. Rejected requests get 429 and are
// never passed downstream.
func (l *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if l.disabled {
			next.ServeHTTP(w, r)
			return
		}

		ok, remaining := l.allow(clientKey(r))
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(l.max))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		if !ok {
			metrics.RateLimited.Inc()
			httputil.TooManyRequests(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// StartSweeper launches the background goroutine that drops expired entries
// so the map does not grow without bound. Stop terminates it.
func (l *RateLimiter) StartSweeper() {
	go func() {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				l.sweep()
			case <-l.stop:
				return
			}
		}
	}()
}

// Stop terminates the sweeper goroutine.
func (l *RateLimiter) Stop() {
	close(l.stop)
}

func (l *RateLimiter) sweep() {
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, e := range l.entries {
		if !now.Before(e.reset) {
			delete(l.entries, key)
		}
	}
}
