package limiter

import (
	"context"
	"sync"
	"time"
)

// idleTimeout is how long an untouched bucket is kept
const idleTimeout = 5 * time.Minute

// bucket is a token bucket for one client; it starts full
type bucket struct {
	tokens   float64
	lastSeen time.Time
}

// MemoryLimiter is a per-client token bucket limiter for single-instance
// deployments. Each client may burst up to Limit requests and regains
// Limit tokens per Window.
type MemoryLimiter struct {
	mu          sync.Mutex
	buckets     map[string]*bucket
	capacity    float64
	perSecond   float64
	lastCleanup time.Time
	now         func() time.Time
}

// NewMemoryLimiter creates an in-memory limiter allowing limit requests per window
func NewMemoryLimiter(limit int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		buckets:     make(map[string]*bucket),
		capacity:    float64(limit),
		perSecond:   float64(limit) / window.Seconds(),
		lastCleanup: time.Now(),
		now:         time.Now,
	}
}

// Allow implements Limiter
func (l *MemoryLimiter) Allow(ctx context.Context, key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{tokens: l.capacity, lastSeen: now}
		l.buckets[key] = b
	} else {
		elapsed := now.Sub(b.lastSeen).Seconds()
		b.tokens = min(b.tokens+elapsed*l.perSecond, l.capacity)
		b.lastSeen = now
	}

	l.cleanup(now)

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// Len returns the number of tracked clients
func (l *MemoryLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// cleanup drops idle buckets at most once per idleTimeout; l.mu must be held
func (l *MemoryLimiter) cleanup(now time.Time) {
	if now.Sub(l.lastCleanup) < idleTimeout {
		return
	}
	for key, b := range l.buckets {
		if now.Sub(b.lastSeen) >= idleTimeout {
			delete(l.buckets, key)
		}
	}
	l.lastCleanup = now
}

// Close implements Limiter; there is nothing to release
func (l *MemoryLimiter) Close() error {
	return nil
}
