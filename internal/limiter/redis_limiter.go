package limiter

import (
	"context"
	"fmt"
	"time"

	"github.com/evyataryagoni/travelgeo/internal/logger"
	"github.com/redis/go-redis/v9"
)

// fixedWindow increments the counter for the current window and sets its
// expiry on first use. It returns the count after the increment.
var fixedWindow = redis.NewScript(`
local current = redis.call('INCR', KEYS[1])
if current == 1 then
	redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
return current
`)

// RedisLimiter is a fixed-window limiter shared by every instance using the
// same Redis. Key format: "ratelimit:{client}:{window index}".
type RedisLimiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
	logger *logger.Logger
	now    func() time.Time
}

// NewRedisLimiter creates a limiter allowing limit requests per window
func NewRedisLimiter(client *redis.Client, limit int, window time.Duration, log *logger.Logger) *RedisLimiter {
	if log == nil {
		log = logger.NewDefault()
	}
	if window < time.Millisecond {
		window = time.Second
	}
	return &RedisLimiter{
		client: client,
		limit:  int64(limit),
		window: window,
		logger: log.WithComponent("RedisLimiter"),
		now:    time.Now,
	}
}

// Allow implements Limiter. Redis failures allow the request.
func (l *RedisLimiter) Allow(ctx context.Context, key string) bool {
	index := l.now().UnixMilli() / l.window.Milliseconds()
	redisKey := fmt.Sprintf("ratelimit:%s:%d", key, index)

	count, err := fixedWindow.Run(ctx, l.client, []string{redisKey}, l.window.Milliseconds()*2).Int64()
	if err != nil {
		l.logger.Warn().Err(err).Str("client", key).Msg("Rate limit check failed, allowing request")
		return true
	}

	return count <= l.limit
}

// Close implements Limiter; the shared client is closed by its owner
func (l *RedisLimiter) Close() error {
	return nil
}
