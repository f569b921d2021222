package limiter

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/evyataryagoni/travelgeo/internal/logger"
	"github.com/redis/go-redis/v9"
)

// fakeClock is a manually advanced time source
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
}

// TestMemoryLimiter_BasicRateLimit tests burst and refill
func TestMemoryLimiter_BasicRateLimit(t *testing.T) {
	clock := newClock()
	limiter := NewMemoryLimiter(5, time.Second)
	limiter.now = clock.Now
	ctx := context.Background()

	// First 5 requests should be allowed
	for i := 0; i < 5; i++ {
		if !limiter.Allow(ctx, "192.168.1.1") {
			t.Errorf("Request %d should be allowed", i+1)
		}
	}

	// 6th request should be blocked
	if limiter.Allow(ctx, "192.168.1.1") {
		t.Error("Request 6 should be rate limited")
	}

	// 0.4s refills two tokens
	clock.Advance(400 * time.Millisecond)
	allowed := 0
	for i := 0; i < 5; i++ {
		if limiter.Allow(ctx, "192.168.1.1") {
			allowed++
		}
	}
	if allowed != 2 {
		t.Errorf("Expected 2 requests after partial refill, got %d", allowed)
	}
}

// TestMemoryLimiter_Window tests limits spread over a longer window
func TestMemoryLimiter_Window(t *testing.T) {
	clock := newClock()
	limiter := NewMemoryLimiter(2, 10*time.Second)
	limiter.now = clock.Now
	ctx := context.Background()

	limiter.Allow(ctx, "a")
	limiter.Allow(ctx, "a")
	if limiter.Allow(ctx, "a") {
		t.Error("Third request should be rate limited")
	}

	clock.Advance(4 * time.Second)
	if limiter.Allow(ctx, "a") {
		t.Error("Request should still be limited before a token refills")
	}

	clock.Advance(2 * time.Second)
	if !limiter.Allow(ctx, "a") {
		t.Error("Request should be allowed once a token refilled")
	}
}

// TestMemoryLimiter_PerClientIsolation tests that different clients have separate limits
func TestMemoryLimiter_PerClientIsolation(t *testing.T) {
	limiter := NewMemoryLimiter(3, time.Hour)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		limiter.Allow(ctx, "192.168.1.1")
	}
	if limiter.Allow(ctx, "192.168.1.1") {
		t.Error("First client should be rate limited")
	}

	for i := 0; i < 3; i++ {
		if !limiter.Allow(ctx, "192.168.1.2") {
			t.Errorf("Request %d for second client should be allowed", i+1)
		}
	}
}

// TestMemoryLimiter_Concurrency tests thread safety
func TestMemoryLimiter_Concurrency(t *testing.T) {
	limiter := NewMemoryLimiter(100, time.Hour)
	ctx := context.Background()

	var allowed int
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if limiter.Allow(ctx, "192.168.1.1") {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if allowed != 100 {
		t.Errorf("Expected exactly 100 allowed requests, got %d", allowed)
	}
}

// TestMemoryLimiter_Cleanup tests that idle clients are dropped
func TestMemoryLimiter_Cleanup(t *testing.T) {
	clock := newClock()
	limiter := NewMemoryLimiter(1, time.Second)
	limiter.now = clock.Now
	limiter.lastCleanup = clock.Now()
	ctx := context.Background()

	limiter.Allow(ctx, "idle")
	clock.Advance(idleTimeout)
	limiter.Allow(ctx, "active")

	if limiter.Len() != 1 {
		t.Errorf("Expected idle client to be dropped, tracking %d", limiter.Len())
	}
}

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

// TestRedisLimiter_FixedWindow tests counting within and across windows
func TestRedisLimiter_FixedWindow(t *testing.T) {
	_, client := setupRedis(t)
	clock := newClock()
	limiter := NewRedisLimiter(client, 3, time.Second, logger.Nop())
	limiter.now = clock.Now
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if !limiter.Allow(ctx, "10.0.0.1") {
			t.Errorf("Request %d should be allowed", i+1)
		}
	}
	if limiter.Allow(ctx, "10.0.0.1") {
		t.Error("Request 4 should be rate limited")
	}
	if !limiter.Allow(ctx, "10.0.0.2") {
		t.Error("Another client should be allowed")
	}

	clock.Advance(time.Second)
	if !limiter.Allow(ctx, "10.0.0.1") {
		t.Error("Request in the next window should be allowed")
	}
}

// TestRedisLimiter_KeyExpiry tests that window keys get a TTL
func TestRedisLimiter_KeyExpiry(t *testing.T) {
	mr, client := setupRedis(t)
	clock := newClock()
	limiter := NewRedisLimiter(client, 3, time.Second, logger.Nop())
	limiter.now = clock.Now

	limiter.Allow(context.Background(), "10.0.0.1")

	keys := mr.Keys()
	if len(keys) != 1 {
		t.Fatalf("expected 1 key, got %v", keys)
	}
	if ttl := mr.TTL(keys[0]); ttl <= 0 {
		t.Errorf("expected a TTL on %s, got %v", keys[0], ttl)
	}
}

// TestRedisLimiter_FailOpen tests that Redis errors allow requests
func TestRedisLimiter_FailOpen(t *testing.T) {
	mr, client := setupRedis(t)
	limiter := NewRedisLimiter(client, 1, time.Second, logger.Nop())
	mr.Close()

	for i := 0; i < 3; i++ {
		if !limiter.Allow(context.Background(), "10.0.0.1") {
			t.Error("Request should be allowed when Redis is down")
		}
	}
}

// TestLimiterInterface tests that both limiters implement Limiter
func TestLimiterInterface(t *testing.T) {
	var _ Limiter = (*MemoryLimiter)(nil)
	var _ Limiter = (*RedisLimiter)(nil)
	var _ Limiter = (*MockLimiter)(nil)
}

// TestNewLimiter tests the factory function
func TestNewLimiter(t *testing.T) {
	_, client := setupRedis(t)

	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"explicit memory type", Config{Type: "memory", Limit: 10, Window: time.Second}, false},
		{"uppercase memory type", Config{Type: "MEMORY", Limit: 10}, false},
		{"empty type defaults to memory", Config{Limit: 10}, false},
		{"redis with client", Config{Type: "redis", Limit: 10, Redis: client, Logger: logger.Nop()}, false},
		{"redis without client", Config{Type: "redis", Limit: 10}, true},
		{"zero limit", Config{Type: "memory"}, true},
		{"invalid type", Config{Type: "invalid", Limit: 10}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limiter, err := NewLimiter(tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewLimiter() error = %v", err)
			}
			defer limiter.Close()

			if !limiter.Allow(context.Background(), "192.168.1.1") {
				t.Error("First request should be allowed")
			}
		})
	}
}

// BenchmarkMemoryLimiter_Allow benchmarks the Allow method
func BenchmarkMemoryLimiter_Allow(b *testing.B) {
	limiter := NewMemoryLimiter(1000000, time.Second)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		limiter.Allow(ctx, "192.168.1.1")
	}
}
